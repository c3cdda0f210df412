// Package oui 提供 IEEE OUI（MA-L）厂商注册表相关的子包。
//
// 子包列表：
//   - xregistry: 注册表原始文本解析，产出 Record 序列
//   - xstore: 以厂商前缀为键的内存快照，支持原子整体替换
//   - xsource: 注册表文本获取（HTTP / 文件 / 静态）
//   - xlookup: 查询服务，负责懒加载、单飞刷新与过期数据兜底
//
// 数据流：原始文本 → xregistry → []Record → xstore → xlookup ← xmac（规范化查询）。
package oui

// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，目录创建、路径净化、原子写入
//   - xlru: LRU 缓存，泛型支持、自动 TTL 过期
//   - xmac: MAC 地址工具库，多格式解析、规范化、私有地址判断
//
// 设计原则：
//   - 无业务语义，可被任意子包引用
//   - 安全处理路径遍历
package util

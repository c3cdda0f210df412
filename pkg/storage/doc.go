// Package storage 提供数据存储相关的子包。
//
// 子包列表：
//   - xcache: 注册表记录与原始文本的持久缓存，支持本地文件和 Redis 后端
//
// 设计原则：
//   - 提供统一的接口抽象，支持多种存储后端
//   - 写入原子化，读取失败不影响在线快照
package storage

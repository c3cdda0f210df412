// Package xlru 提供带 TTL 的泛型 LRU 缓存。
//
// 基于 github.com/hashicorp/golang-lru/v2/expirable 封装，
// 在 OUI 查询路径上用作 MAC → 结果的本地备忘录，
// 注册表更新后由调用方 Clear。
//
// # 注意事项
//
//   - TTL 从 Set 时刻计算，Set 覆盖已有 key 时刷新 TTL
//   - Get 不刷新 TTL
//   - Len 可能包含已过期但尚未被后台清理的条目
//   - 使用完毕后调用 Close 释放清理 goroutine
package xlru

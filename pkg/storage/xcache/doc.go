// Package xcache 持久化 OUI 注册表的解析结果与原始文本。
//
// # 核心接口
//
//   - RecordCache：解析后的记录（JSON 数组，字段 mac/company_id/organization/address）
//   - RawCache：注册表原始文本，供离线重新解析
//   - Cache：两者的组合，附带 Close
//
// 记录不存在时 LoadRecords / LoadRaw 返回 [ErrNotFound]；
// 内容无法解码时返回包装 [ErrCorrupt] 的错误，调用方应视同未命中并重新获取。
//
// # 后端
//
//   - NewFile：本地文件。写入采用临时文件 + rename，读者不会看到半写入的内容；
//     父目录不存在时自动创建（xfile.WriteAtomic）
//   - NewRedis：go-redis UniversalClient，记录与原始文本各占一个 key
//
// # 文件监视
//
// WatchFile 基于 fsnotify 监视缓存文件，其他进程重写缓存后触发回调。
// 监视的是父目录而非文件本身，rename 写入不会丢失事件；多次事件按 debounce 合并。
package xcache

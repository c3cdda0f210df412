package xlookup

import "errors"

var (
	// ErrEmptyRegistry 表示解析或加载结果不含任何记录，存储保持不变。
	ErrEmptyRegistry = errors.New("xlookup: empty registry")

	// ErrPersistFailed 表示记录已生效但写入缓存失败。
	ErrPersistFailed = errors.New("xlookup: persist failed")

	// ErrNoRecordCache 表示未配置记录缓存。
	ErrNoRecordCache = errors.New("xlookup: no record cache configured")

	// ErrNoRawCache 表示未配置原始文本缓存。
	ErrNoRawCache = errors.New("xlookup: no raw cache configured")

	// ErrClosed 表示服务已关闭。
	ErrClosed = errors.New("xlookup: service closed")
)

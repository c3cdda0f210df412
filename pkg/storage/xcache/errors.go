package xcache

import "errors"

// =============================================================================
// 通用错误
// =============================================================================

var (
	// ErrNilClient 表示传入的客户端为 nil。
	ErrNilClient = errors.New("xcache: nil client")

	// ErrNotFound 表示缓存中没有对应内容。
	ErrNotFound = errors.New("xcache: not found")

	// ErrCorrupt 表示缓存内容无法解码。
	ErrCorrupt = errors.New("xcache: corrupt content")

	// ErrClosed 表示缓存已关闭。
	ErrClosed = errors.New("xcache: closed")
)

// =============================================================================
// 配置错误
// =============================================================================

var (
	// ErrEmptyKey 表示 Redis key 为空字符串。
	ErrEmptyKey = errors.New("xcache: empty key")

	// ErrEmptyPath 表示文件路径为空。
	ErrEmptyPath = errors.New("xcache: empty path")

	// ErrRawDisabled 表示未配置原始文本缓存。
	ErrRawDisabled = errors.New("xcache: raw cache not configured")
)

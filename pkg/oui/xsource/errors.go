package xsource

import "errors"

var (
	// ErrFetchFailed 表示获取注册表文本失败。
	ErrFetchFailed = errors.New("xsource: fetch failed")

	// ErrBodyTooLarge 表示响应体超过上限。
	ErrBodyTooLarge = errors.New("xsource: body too large")
)

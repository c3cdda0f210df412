package xrun

import "errors"

var (
	// ErrNilFunc 任务函数为 nil
	ErrNilFunc = errors.New("xrun: nil func")

	// ErrNilServer HTTP server 为 nil
	ErrNilServer = errors.New("xrun: nil server")

	// ErrInvalidInterval Ticker 间隔必须为正
	ErrInvalidInterval = errors.New("xrun: interval must be positive")
)

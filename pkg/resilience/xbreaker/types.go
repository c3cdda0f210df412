package xbreaker

import "github.com/sony/gobreaker/v2"

// 从 gobreaker 导出的类型与常量，调用方无需直接依赖 gobreaker。
type (
	// State 熔断器状态
	State = gobreaker.State
	// Counts 统计窗口内的请求计数
	Counts = gobreaker.Counts
)

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

var (
	// ErrOpenState 熔断器打开，请求被拒绝
	ErrOpenState = gobreaker.ErrOpenState
	// ErrTooManyRequests 半开状态下超过试探请求数
	ErrTooManyRequests = gobreaker.ErrTooManyRequests
)

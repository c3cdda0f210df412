package xretry

import (
	"context"
	"time"
)

// RetryPolicy 决定失败后是否继续重试。
type RetryPolicy interface {
	// MaxAttempts 最大尝试次数（含首次），0 表示不限。
	MaxAttempts() int

	// ShouldRetry 在第 attempt 次（从 1 开始）失败后调用。
	ShouldRetry(ctx context.Context, attempt int, err error) bool
}

// BackoffPolicy 计算第 attempt 次（从 1 开始）失败后的等待时间。
type BackoffPolicy interface {
	NextDelay(attempt int) time.Duration
}

// FixedRetryPolicy 固定次数重试
type FixedRetryPolicy struct {
	maxAttempts int
}

var _ RetryPolicy = (*FixedRetryPolicy)(nil)

// NewFixedRetry 创建固定次数重试策略，maxAttempts 最小为 1。
func NewFixedRetry(maxAttempts int) *FixedRetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &FixedRetryPolicy{maxAttempts: maxAttempts}
}

func (p *FixedRetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

func (p *FixedRetryPolicy) ShouldRetry(ctx context.Context, attempt int, err error) bool {
	if ctx.Err() != nil || attempt >= p.maxAttempts {
		return false
	}
	return IsRetryable(err)
}

package xretry

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"
)

// Retryer 组合 RetryPolicy 与 BackoffPolicy，底层由 avast/retry-go/v5 执行。
//
// Retryer 无状态，可在多个 goroutine 间复用。
type Retryer struct {
	retryPolicy   RetryPolicy
	backoffPolicy BackoffPolicy
	onRetry       func(attempt int, err error)
}

// RetryerOption 执行器配置选项
type RetryerOption func(*Retryer)

// WithRetryPolicy 设置重试策略，nil 忽略。
func WithRetryPolicy(p RetryPolicy) RetryerOption {
	return func(r *Retryer) {
		if p != nil {
			r.retryPolicy = p
		}
	}
}

// WithBackoffPolicy 设置退避策略，nil 忽略。
func WithBackoffPolicy(p BackoffPolicy) RetryerOption {
	return func(r *Retryer) {
		if p != nil {
			r.backoffPolicy = p
		}
	}
}

// WithOnRetry 设置每次失败后、等待前的回调，attempt 从 1 开始。
func WithOnRetry(f func(attempt int, err error)) RetryerOption {
	return func(r *Retryer) {
		if f != nil {
			r.onRetry = f
		}
	}
}

// NewRetryer 创建重试执行器，默认 FixedRetry(3) + ExponentialBackoff。
func NewRetryer(opts ...RetryerOption) *Retryer {
	r := &Retryer{
		retryPolicy:   NewFixedRetry(3),
		backoffPolicy: NewExponentialBackoff(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do 执行 fn，失败时按策略重试，返回最后一次的错误。
func (r *Retryer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := DoWithResult(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoWithResult 是带返回值的 Do。泛型方法不被支持，因此为包级函数。
func DoWithResult[T any](ctx context.Context, r *Retryer, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	switch {
	case r == nil:
		return zero, ErrNilRetryer
	case ctx == nil:
		return zero, ErrNilContext
	case fn == nil:
		return zero, ErrNilFunc
	}
	return retry.NewWithData[T](r.options(ctx)...).Do(func() (T, error) {
		return fn(ctx)
	})
}

func (r *Retryer) options(ctx context.Context) []retry.Option {
	policy := r.retryPolicy
	if policy == nil {
		policy = NewFixedRetry(3)
	}
	backoff := r.backoffPolicy
	if backoff == nil {
		backoff = NewExponentialBackoff()
	}

	opts := []retry.Option{retry.Context(ctx), retry.LastErrorOnly(true)}
	if n := policy.MaxAttempts(); n <= 0 {
		opts = append(opts, retry.UntilSucceeded())
	} else {
		opts = append(opts, retry.Attempts(uint(n)))
	}

	// Attempts 是硬上限，ShouldRetry 可以提前终止
	var failures atomic.Int64
	opts = append(opts,
		retry.RetryIf(func(err error) bool {
			count := int(failures.Add(1))
			return retry.IsRecoverable(err) && policy.ShouldRetry(ctx, count, err)
		}),
		// retry-go v5 的 n 从 1 开始
		retry.DelayType(func(n uint, _ error, _ retry.DelayContext) time.Duration {
			return backoff.NextDelay(clampInt(n))
		}),
	)
	if r.onRetry != nil {
		// OnRetry 的 n 从 0 开始
		opts = append(opts, retry.OnRetry(func(n uint, err error) {
			r.onRetry(clampInt(n)+1, err)
		}))
	}
	return opts
}

func clampInt(n uint) int {
	if n > uint(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

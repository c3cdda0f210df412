package xbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	defaultThreshold   = 5
	defaultTimeout     = 60 * time.Second
	defaultMaxRequests = 1
)

// Breaker 连续失败熔断器，封装 gobreaker。并发安全。
//
// 连续失败达到阈值后进入 Open，Timeout 后转入 HalfOpen 放行试探请求，
// 试探成功则恢复 Closed。
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[any]
}

// Option 熔断器配置选项
type Option func(*options)

type options struct {
	threshold     uint32
	timeout       time.Duration
	maxRequests   uint32
	ignore        func(error) bool
	onStateChange func(name string, from, to State)
}

// WithThreshold 设置触发熔断的连续失败次数，默认 5。0 被忽略。
func WithThreshold(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.threshold = n
		}
	}
}

// WithTimeout 设置 Open 到 HalfOpen 的等待时间，默认 60 秒。
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxRequests 设置 HalfOpen 状态放行的请求数，默认 1。
func WithMaxRequests(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRequests = n
		}
	}
}

// WithIgnore 设置不计为失败的错误，默认忽略 context.Canceled。
func WithIgnore(fn func(error) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.ignore = fn
		}
	}
}

// WithOnStateChange 设置状态变化回调
func WithOnStateChange(fn func(name string, from, to State)) Option {
	return func(o *options) {
		o.onStateChange = fn
	}
}

// NewBreaker 创建熔断器，name 用于日志与错误信息。
func NewBreaker(name string, opts ...Option) *Breaker {
	o := &options{
		threshold:   defaultThreshold,
		timeout:     defaultTimeout,
		maxRequests: defaultMaxRequests,
		ignore:      func(err error) bool { return errors.Is(err, context.Canceled) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: o.maxRequests,
		Timeout:     o.timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= o.threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || o.ignore(err)
		},
	}
	if o.onStateChange != nil {
		st.OnStateChange = o.onStateChange
	}
	return &Breaker{name: name, cb: gobreaker.NewCircuitBreaker[any](st)}
}

// Do 在熔断器保护下执行 fn。ctx 只做入口检查。
func (b *Breaker) Do(ctx context.Context, fn func() error) error {
	if fn == nil {
		return ErrNilFunc
	}
	_, err := Execute(ctx, b, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Execute 是带返回值的 Do。熔断拒绝时返回 *BreakerError。
func Execute[T any](ctx context.Context, b *Breaker, fn func() (T, error)) (T, error) {
	var zero T
	if b == nil {
		return zero, ErrNilBreaker
	}
	if fn == nil {
		return zero, ErrNilFunc
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, wrapBreakerError(err, b.name, b.State())
	}
	typed, _ := result.(T)
	return typed, nil
}

// Name 返回熔断器名称
func (b *Breaker) Name() string { return b.name }

// State 返回当前状态
func (b *Breaker) State() State { return b.cb.State() }

// Counts 返回当前计数
func (b *Breaker) Counts() Counts { return b.cb.Counts() }

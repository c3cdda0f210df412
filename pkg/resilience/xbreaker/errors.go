package xbreaker

import (
	"errors"
	"fmt"

	"github.com/sony/gobreaker/v2"
)

var (
	// ErrNilBreaker Breaker 为 nil
	ErrNilBreaker = errors.New("xbreaker: nil breaker")

	// ErrNilFunc 待执行函数为 nil
	ErrNilFunc = errors.New("xbreaker: nil func")
)

// BreakerError 包装熔断器拒绝请求的错误。
//
// Retryable 返回 false，与 xretry 组合时熔断拒绝不会被重试。
type BreakerError struct {
	Err   error
	Name  string
	State State
}

func (e *BreakerError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("breaker %s: %v", e.Name, e.Err)
	}
	return e.Err.Error()
}

func (e *BreakerError) Unwrap() error { return e.Err }

// Retryable 实现 xretry.RetryableError。
func (e *BreakerError) Retryable() bool { return false }

// wrapBreakerError 只包装熔断器自身的拒绝错误，业务错误原样返回。
func wrapBreakerError(err error, name string, state State) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &BreakerError{Err: err, Name: name, State: state}
	}
	return err
}

// IsOpen 判断 err 是否因熔断器打开或半开限流而被拒绝。
func IsOpen(err error) bool {
	var be *BreakerError
	return errors.As(err, &be)
}

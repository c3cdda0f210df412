package xretry

import "errors"

var (
	// ErrNilRetryer Retryer 为 nil
	ErrNilRetryer = errors.New("xretry: nil retryer")

	// ErrNilContext ctx 为 nil
	ErrNilContext = errors.New("xretry: nil context")

	// ErrNilFunc 待执行函数为 nil
	ErrNilFunc = errors.New("xretry: nil func")
)

// RetryableError 自行声明是否可重试的错误
type RetryableError interface {
	error
	Retryable() bool
}

// PermanentError 永久性错误，不再重试。
type PermanentError struct {
	Err error
}

// NewPermanentError 包装为永久性错误
func NewPermanentError(err error) *PermanentError {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error { return e.Err }

func (e *PermanentError) Retryable() bool { return false }

// IsRetryable 判断 err 是否可重试：nil 不重试，实现 RetryableError 的按其声明，其余默认可重试。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var re RetryableError
	if errors.As(err, &re) {
		return re.Retryable()
	}
	return true
}

// IsPermanent 判断 err 是否为永久性错误
func IsPermanent(err error) bool {
	return err != nil && !IsRetryable(err)
}

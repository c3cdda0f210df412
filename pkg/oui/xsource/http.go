package xsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/resilience/xbreaker"
	"github.com/omeyang/xoui/pkg/resilience/xretry"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultAttempts  = 3
	defaultMaxBytes  = 64 << 20
	defaultUserAgent = "xoui/1.0 (+https://github.com/omeyang/xoui)"
)

// HTTPOptions 定义 HTTPFetcher 的配置。
type HTTPOptions struct {
	// Timeout 单次请求超时，默认 30 秒。
	Timeout time.Duration
	// Attempts 最大尝试次数（含首次），默认 3。
	Attempts int
	// Backoff 重试退避策略，默认指数退避。
	Backoff xretry.BackoffPolicy
	// Client 自定义 HTTP 客户端，为 nil 时按 Timeout 创建。
	Client *http.Client
	// UserAgent 请求头，IEEE 站点会拒绝空 User-Agent。
	UserAgent string
	// MaxBytes 响应体上限，默认 64 MiB。
	MaxBytes int64
	// Logger 日志记录器，默认 xlog.Default()。
	Logger xlog.Logger
	// Breaker 包裹整个重试序列的熔断器，为 nil 时不启用。
	Breaker *xbreaker.Breaker
}

// HTTPOption 定义配置 HTTPFetcher 的函数类型。
type HTTPOption func(*HTTPOptions)

func defaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		Timeout:   defaultTimeout,
		Attempts:  defaultAttempts,
		UserAgent: defaultUserAgent,
		MaxBytes:  defaultMaxBytes,
	}
}

// WithTimeout 设置单次请求超时。非正值被忽略。
func WithTimeout(d time.Duration) HTTPOption {
	return func(o *HTTPOptions) {
		if d > 0 {
			o.Timeout = d
		}
	}
}

// WithAttempts 设置最大尝试次数。小于 1 的值被忽略。
func WithAttempts(n int) HTTPOption {
	return func(o *HTTPOptions) {
		if n >= 1 {
			o.Attempts = n
		}
	}
}

// WithBackoff 设置重试退避策略。
func WithBackoff(b xretry.BackoffPolicy) HTTPOption {
	return func(o *HTTPOptions) {
		o.Backoff = b
	}
}

// WithHTTPClient 设置 HTTP 客户端。设置后 Timeout 不再生效。
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(o *HTTPOptions) {
		o.Client = c
	}
}

// WithUserAgent 设置 User-Agent 请求头。
func WithUserAgent(ua string) HTTPOption {
	return func(o *HTTPOptions) {
		if ua != "" {
			o.UserAgent = ua
		}
	}
}

// WithMaxBytes 设置响应体上限。
func WithMaxBytes(n int64) HTTPOption {
	return func(o *HTTPOptions) {
		if n > 0 {
			o.MaxBytes = n
		}
	}
}

// WithLogger 设置日志记录器。
func WithLogger(l xlog.Logger) HTTPOption {
	return func(o *HTTPOptions) {
		o.Logger = l
	}
}

// WithBreaker 设置熔断器。熔断打开期间 Fetch 直接失败，不发起请求。
func WithBreaker(b *xbreaker.Breaker) HTTPOption {
	return func(o *HTTPOptions) {
		o.Breaker = b
	}
}

// HTTPFetcher 通过 HTTP GET 下载注册表文本。并发安全。
type HTTPFetcher struct {
	client  *http.Client
	retryer *xretry.Retryer
	opts    *HTTPOptions
	logger  xlog.Logger
}

// NewHTTPFetcher 创建 HTTPFetcher。
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	o := defaultHTTPOptions()
	for _, opt := range opts {
		opt(o)
	}

	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	}
	logger := o.Logger
	if logger == nil {
		logger = xlog.Default()
	}

	f := &HTTPFetcher{client: client, opts: o, logger: logger}
	f.retryer = xretry.NewRetryer(
		xretry.WithRetryPolicy(xretry.NewFixedRetry(o.Attempts)),
		xretry.WithBackoffPolicy(o.Backoff),
		xretry.WithOnRetry(func(attempt int, err error) {
			f.logger.Warn(context.Background(), "registry fetch failed, retrying",
				xlog.Component("xsource"),
				slog.Int("attempt", attempt),
				xlog.Err(err),
			)
		}),
	)
	return f
}

// Fetch 实现 [Fetcher]。url 为空时使用 [DefaultURL]。
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		url = DefaultURL
	}
	start := time.Now()
	fetch := func() (string, error) {
		return xretry.DoWithResult(ctx, f.retryer, func(ctx context.Context) (string, error) {
			return f.fetchOnce(ctx, url)
		})
	}
	var (
		body string
		err  error
	)
	if f.opts.Breaker != nil {
		body, err = xbreaker.Execute(ctx, f.opts.Breaker, fetch)
	} else {
		body, err = fetch()
	}
	if err != nil {
		if xbreaker.IsOpen(err) {
			err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		return "", err
	}
	f.logger.Debug(ctx, "registry fetched",
		xlog.Component("xsource"),
		xlog.URL(url),
		slog.Int("bytes", len(body)),
		xlog.Duration(time.Since(start)),
	)
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", xretry.NewPermanentError(fmt.Errorf("%w: %w", ErrFetchFailed, err))
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/plain")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 排空响应体以复用连接
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		statusErr := fmt.Errorf("%w: %s returned %s", ErrFetchFailed, url, resp.Status)
		// 4xx 不重试，429 除外
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", xretry.NewPermanentError(statusErr)
		}
		return "", statusErr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	if int64(len(data)) > f.opts.MaxBytes {
		return "", xretry.NewPermanentError(fmt.Errorf("%w: %w: limit %d", ErrFetchFailed, ErrBodyTooLarge, f.opts.MaxBytes))
	}
	return string(data), nil
}

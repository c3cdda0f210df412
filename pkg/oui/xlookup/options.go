package xlookup

import (
	"time"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/observability/xmetrics"
	"github.com/omeyang/xoui/pkg/oui/xsource"
	"github.com/omeyang/xoui/pkg/storage/xcache"
)

// DefaultRefreshTimeout 是单次刷新的默认超时。
const DefaultRefreshTimeout = 60 * time.Second

// Options 定义 Service 的配置。
type Options struct {
	// Fetcher 获取注册表文本，nil 时使用默认 HTTP 实现。
	Fetcher xsource.Fetcher
	// URL 注册表地址，空串时由 Fetcher 决定。
	URL string
	// Records 记录缓存，nil 时每次冷启动都会下载。
	Records xcache.RecordCache
	// Raw 原始文本缓存，可为 nil。
	Raw xcache.RawCache
	// Logger 日志记录器，nil 时使用 xlog.Default()。
	Logger xlog.Logger
	// RefreshTimeout 单次刷新（下载+解析+持久化）的超时。
	RefreshTimeout time.Duration
	// StrictParse 为 true 时任一畸形条目都使刷新失败。
	StrictParse bool

	// MemoSize 查询备忘录容量，0 表示不启用。
	MemoSize int
	// MemoTTL 备忘录条目过期时间，0 表示不过期。
	MemoTTL time.Duration

	// WatchPath 非空时监视该缓存文件，被其他进程改写后自动 Reload。
	WatchPath string
	// WatchDebounce 文件监视防抖时间。
	WatchDebounce time.Duration

	// Observer 刷新类操作的观测器。
	Observer xmetrics.Observer
	// LookupCounter 按结果类型统计查询次数。
	LookupCounter xmetrics.Counter
}

// Option 定义配置 Service 的函数类型。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		RefreshTimeout: DefaultRefreshTimeout,
		Observer:       xmetrics.NoopObserver{},
		LookupCounter:  xmetrics.NoopCounter{},
	}
}

// WithFetcher 设置注册表获取器。
func WithFetcher(f xsource.Fetcher) Option {
	return func(o *Options) {
		o.Fetcher = f
	}
}

// WithURL 设置注册表地址。
func WithURL(url string) Option {
	return func(o *Options) {
		o.URL = url
	}
}

// WithRecordCache 设置记录缓存。
func WithRecordCache(c xcache.RecordCache) Option {
	return func(o *Options) {
		o.Records = c
	}
}

// WithRawCache 设置原始文本缓存。
func WithRawCache(c xcache.RawCache) Option {
	return func(o *Options) {
		o.Raw = c
	}
}

// WithCache 同时设置记录缓存与原始文本缓存。
func WithCache(c xcache.Cache) Option {
	return func(o *Options) {
		o.Records = c
		o.Raw = c
	}
}

// WithLogger 设置日志记录器。
func WithLogger(l xlog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRefreshTimeout 设置刷新超时，非正值忽略。
func WithRefreshTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.RefreshTimeout = d
		}
	}
}

// WithStrictParse 设置严格解析。
func WithStrictParse(strict bool) Option {
	return func(o *Options) {
		o.StrictParse = strict
	}
}

// WithMemo 启用查询备忘录。
func WithMemo(size int, ttl time.Duration) Option {
	return func(o *Options) {
		o.MemoSize = size
		o.MemoTTL = ttl
	}
}

// WithCacheWatch 监视缓存文件，debounce 为 0 时使用默认值。
func WithCacheWatch(path string, debounce time.Duration) Option {
	return func(o *Options) {
		o.WatchPath = path
		o.WatchDebounce = debounce
	}
}

// WithObserver 设置观测器。
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithLookupCounter 设置查询计数器。
func WithLookupCounter(c xmetrics.Counter) Option {
	return func(o *Options) {
		if c != nil {
			o.LookupCounter = c
		}
	}
}

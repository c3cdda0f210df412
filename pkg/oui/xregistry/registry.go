package xregistry

import (
	"context"
	"log/slog"
	"strings"

	"github.com/omeyang/xoui/pkg/observability/xlog"
)

// MalformedHook 在跳过畸形条目时被调用。
type MalformedHook func(err *EntryError)

// Options 定义 ParseRegistry 的配置。
type Options struct {
	// Strict 为 true 时遇到第一个畸形条目即中止。
	Strict bool
	// OnMalformed 在每个被跳过的畸形条目上调用，可为 nil。
	OnMalformed MalformedHook
	// Logger 用于报告被跳过的条目，nil 时使用 xlog.Default()。
	Logger xlog.Logger
}

// Option 定义配置 ParseRegistry 的函数类型。
type Option func(*Options)

// WithStrict 设置严格模式。
func WithStrict(strict bool) Option {
	return func(o *Options) {
		o.Strict = strict
	}
}

// OnMalformed 设置畸形条目钩子。严格模式下不会调用。
func OnMalformed(hook MalformedHook) Option {
	return func(o *Options) {
		o.OnMalformed = hook
	}
}

// WithLogger 设置日志记录器。
func WithLogger(logger xlog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// Report 是一次注册表解析的结果。
type Report struct {
	// Records 为成功解析的条目，保持注册表顺序。
	Records []Record
	// Total 为条目总数（不含表头）。
	Total int
	// Errors 为被跳过的畸形条目。
	Errors []*EntryError
}

// Skipped 返回被跳过的条目数。
func (r *Report) Skipped() int {
	return len(r.Errors)
}

// ParseRegistry 解析完整注册表文本，返回按注册表顺序排列的记录。
//
// 默认跳过畸形条目；严格模式下返回 [*EntryError]。
func ParseRegistry(ctx context.Context, raw string, opts ...Option) ([]Record, error) {
	report, err := ParseRegistryReport(ctx, raw, opts...)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

// ParseRegistryReport 与 [ParseRegistry] 相同，但返回包含跳过明细的 [Report]。
func ParseRegistryReport(ctx context.Context, raw string, opts ...Option) (*Report, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.Logger
	if logger == nil {
		logger = xlog.Default()
	}

	entries := dropHeader(SplitEntries(raw))
	report := &Report{
		Records: make([]Record, 0, len(entries)),
		Total:   len(entries),
	}
	for i, entry := range entries {
		rec, err := ParseEntry(entry)
		if err == nil {
			report.Records = append(report.Records, rec)
			continue
		}

		entryErr := &EntryError{Index: i, Entry: entry, Err: err}
		if options.Strict {
			return nil, entryErr
		}
		report.Errors = append(report.Errors, entryErr)
		logger.Warn(ctx, "skip malformed registry entry",
			xlog.Component("xregistry"),
			slog.Int("index", i),
			xlog.Err(err),
		)
		if options.OnMalformed != nil {
			options.OnMalformed(entryErr)
		}
	}

	if n := report.Skipped(); n > 0 {
		logger.Info(ctx, "registry parsed with skipped entries",
			xlog.Component("xregistry"),
			xlog.Count(int64(len(report.Records))),
			slog.Int("skipped", n),
		)
	}
	return report, nil
}

// dropHeader 丢弃表头。输入缺少表头、首个元素本身就是合法条目时保留。
func dropHeader(entries []string) []string {
	if len(entries) == 0 {
		return entries
	}
	if strings.Contains(entries[0], hexMarker) {
		if _, err := ParseEntry(entries[0]); err == nil {
			return entries
		}
	}
	return entries[1:]
}

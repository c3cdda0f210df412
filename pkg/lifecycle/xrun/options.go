package xrun

import "github.com/omeyang/xoui/pkg/observability/xlog"

// Option Group 配置选项
type Option func(*groupOptions)

type groupOptions struct {
	logger xlog.Logger
	name   string
}

func defaultOptions() *groupOptions {
	return &groupOptions{logger: xlog.Default(), name: "xrun"}
}

// WithLogger 设置任务生命周期日志，nil 忽略。
func WithLogger(logger xlog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置日志中的 group 名称。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

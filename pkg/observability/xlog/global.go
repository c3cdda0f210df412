package xlog

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// 全局 Logger 面向 CLI 等简单场景，库代码通过 WithLogger 选项注入。
var (
	globalLogger atomic.Pointer[LoggerWithLevel]
	globalMu     sync.Mutex
)

// Default 返回全局默认 Logger（惰性初始化：stderr、Info 级别、text 格式）。
func Default() LoggerWithLevel {
	if l := globalLogger.Load(); l != nil {
		return *l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if l := globalLogger.Load(); l != nil {
		return *l
	}
	logger, _, err := New().Build()
	if err != nil {
		// 默认参数不应失败，兜底为最小可用 logger
		levelVar := new(slog.LevelVar)
		logger = newXLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}), levelVar, false, nil)
	}
	globalLogger.Store(&logger)
	return logger
}

// SetDefault 替换全局默认 Logger，nil 被忽略。
func SetDefault(l LoggerWithLevel) {
	if l == nil {
		return
	}
	globalLogger.Store(&l)
}

// ResetDefault 重置全局 Logger，下次 Default 重新初始化（仅用于测试）。
func ResetDefault() {
	globalMu.Lock()
	globalLogger.Store(nil)
	globalMu.Unlock()
}

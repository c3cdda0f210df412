package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 Key
const (
	KeyError      = "error"
	KeyDuration   = "duration"
	KeyCount      = "count"
	KeyComponent  = "component"
	KeyOperation  = "operation"
	KeyStatusCode = "status_code"
	KeyURL        = "url"
	KeyTraceID    = "trace_id"
	KeySpanID     = "span_id"
	KeyService    = "service"
)

// Err 创建错误属性。err 为 nil 时返回空属性，slog 会忽略它。
//
//	if err != nil {
//	    logger.Error(ctx, "refresh failed", xlog.Err(err))
//	}
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性，输出人类可读格式（如 "1.5s"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 创建组件名属性。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性。
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 创建计数属性。
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// StatusCode 创建 HTTP 状态码属性。
func StatusCode(code int) slog.Attr {
	return slog.Int(KeyStatusCode, code)
}

// URL 创建地址属性。
func URL(u string) slog.Attr {
	return slog.String(KeyURL, u)
}

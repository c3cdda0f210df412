// Package xrotate 为 xlog 提供按大小轮转的日志文件输出。
//
// [NewLumberjack] 基于 lumberjack v2：超过单文件上限时自动轮转，按数量与天数清理备份，
// 可选 gzip 压缩。备份数量与天数不能同时为 0。
//
//	rotator, err := xrotate.NewLumberjack("/var/log/xoui/xoui.log",
//		xrotate.WithMaxSize(50),
//		xrotate.WithFileMode(0o644),
//	)
package xrotate

// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、轮转）
//   - 自动从 context 中的 OpenTelemetry span 注入 trace_id、span_id（默认启用）
//   - 动态级别调整
//   - 固定 service 属性
//   - 全局 Logger（CLI 等简单场景）
//
// # 创建 Logger
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xoui/xoui.log", xrotate.WithMaxSize(100)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// Builder 为一次性使用，first-error-wins。
//
// # 便捷属性
//
// [Err]、[Duration]、[Component]、[Operation]、[Count]、[StatusCode]、[URL]。
package xlog

// Package xmetrics 提供统一的可观测性接口（metrics + tracing）。
//
// # 设计理念
//
// xmetrics 仅定义最小化接口：Observer/Span/Counter/Attr，
// 业务代码只依赖接口；具体实现可替换。
// 默认实现基于 OpenTelemetry，未配置 Provider 时使用全局 Provider（默认为空实现）。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xlookup",
//		Operation: "refresh",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标命名
//
// 统一指标：
//   - xoui.operation.total
//   - xoui.operation.duration
//
// 统一属性：component / operation / status。
// 按结果计数的业务指标（如 xoui.lookup.total）通过 NewOTelCounter 创建。
package xmetrics

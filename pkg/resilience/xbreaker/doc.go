// Package xbreaker 提供基于 sony/gobreaker 的连续失败熔断器。
//
// 注册表下载在上游持续不可用时，熔断器让周期刷新快速失败，
// 直到 Timeout 后再放行一次试探请求：
//
//	b := xbreaker.NewBreaker("registry", xbreaker.WithThreshold(3), xbreaker.WithTimeout(10*time.Minute))
//	body, err := xbreaker.Execute(ctx, b, func() (string, error) {
//	    return fetch(ctx)
//	})
//	if xbreaker.IsOpen(err) {
//	    // 熔断中，沿用旧数据
//	}
//
// 熔断拒绝以 [*BreakerError] 返回，实现 Retryable() == false，
// 外层 xretry 不会对其重试。
package xbreaker

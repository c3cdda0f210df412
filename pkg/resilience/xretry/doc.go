// Package xretry 为注册表下载等网络操作提供重试执行器。
//
// [RetryPolicy] 决定是否继续，[BackoffPolicy] 决定等多久，[Retryer] 把两者交给
// [avast/retry-go/v5] 执行：
//
//	retryer := xretry.NewRetryer(
//		xretry.WithRetryPolicy(xretry.NewFixedRetry(3)),
//		xretry.WithBackoffPolicy(xretry.NewExponentialBackoff()),
//	)
//	body, err := xretry.DoWithResult(ctx, retryer, fetch)
//
// 用 [NewPermanentError] 包装的错误立即返回，不再重试（例如 HTTP 4xx）。
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry

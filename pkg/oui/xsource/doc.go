// Package xsource 获取 IEEE OUI 注册表原始文本。
//
// [Fetcher] 是获取注册表文本的抽象，内置三种实现：
//   - [HTTPFetcher]：从 IEEE 站点下载，带超时与有界重试（xretry）
//   - [FileFetcher]：从本地文件读取，用于离线环境
//   - [StaticFetcher]：返回固定文本，用于测试
//
// # 重试语义
//
// HTTPFetcher 默认最多尝试 3 次，指数退避。
// 网络错误、5xx 与 429 视为临时错误并重试；其余 4xx 视为永久错误，立即返回。
// 所有错误都包装 [ErrFetchFailed]。
//
// [WithBreaker] 在整个重试序列外再套一层熔断（xbreaker），
// 周期刷新遇到上游持续故障时快速失败。
package xsource

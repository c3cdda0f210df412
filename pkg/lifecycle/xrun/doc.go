// Package xrun 管理常驻进程中的后台任务：定时刷新与 HTTP 服务。
//
// [Group] 基于 golang.org/x/sync/errgroup，任一任务失败即取消其余任务。
// [Ticker] 与 [HTTPServer] 把常见循环包装成 Group 任务。
// 信号处理由调用方负责，取消传入的 ctx 即可触发优雅关闭。
package xrun

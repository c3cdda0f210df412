// xoui 按 MAC 地址查询 IEEE OUI 注册厂商。
//
// 用法:
//
//	xoui [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config    YAML/JSON 配置文件
//	    --url       注册表下载地址
//	    --file      从本地文件读取注册表（离线）
//	    --backend   缓存后端: file | redis | none
//	    --log-level 日志级别
//
// 命令:
//
//	lookup [mac...]   查询厂商，无参数时从标准输入逐行读取
//	update            下载注册表并刷新缓存（--from-raw 只用原始文本缓存）
//	fetch-raw         只下载并保存原始文本
//	parse <file>      解析本地注册表文件并报告畸形条目
//	serve             HTTP 查询服务（GET /lookup/{mac}、/healthz），定期刷新注册表
//
// 退出码:
//
//	0: 成功
//	1: 执行失败（lookup --fail-on-miss 时存在未命中）
//	2: 参数或配置错误
//
// 示例:
//
//	xoui lookup 30:23:03:aa:bb:cc 0-1b-63-0-0-1
//	xoui --backend redis update
//	xoui parse --json oui.txt > records.json
//	xoui serve --listen :8080 --refresh-interval 12h
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息，通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xoui",
		Usage:     "IEEE OUI 厂商查询",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML/JSON 配置文件",
				Sources: cli.EnvVars("XOUI_CONFIG"),
			},
			&cli.StringFlag{Name: "url", Usage: "注册表下载地址（覆盖 registry.url）"},
			&cli.StringFlag{Name: "file", Usage: "本地注册表文件（覆盖 registry.file）"},
			&cli.StringFlag{Name: "backend", Usage: "缓存后端 file|redis|none（覆盖 cache.backend）"},
			&cli.StringFlag{Name: "log-level", Usage: "日志级别（覆盖 log.level）"},
		},
		Commands: createCommands(),
		// run 统一映射退出码，不让 urfave/cli 直接 os.Exit
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := createApp(stdin, stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// setupSignalHandler 第一次信号取消 ctx，第二次强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}

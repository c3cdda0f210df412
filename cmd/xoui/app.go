package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/observability/xrotate"
	"github.com/omeyang/xoui/pkg/oui/xlookup"
	"github.com/omeyang/xoui/pkg/oui/xsource"
	"github.com/omeyang/xoui/pkg/resilience/xbreaker"
	"github.com/omeyang/xoui/pkg/storage/xcache"
)

// app 持有一次命令执行所需的组件。
type app struct {
	cfg      appConfig
	logger   xlog.LoggerWithLevel
	service  *xlookup.Service
	cache    xcache.Cache
	closeLog func() error
}

// resolveConfig 读取配置文件并应用命令行覆盖项。
func resolveConfig(cmd *cli.Command) (appConfig, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return cfg, &usageError{msg: err.Error()}
	}
	if v := cmd.String("url"); v != "" {
		cfg.Registry.URL = v
	}
	if v := cmd.String("file"); v != "" {
		cfg.Registry.File = v
	}
	if v := cmd.String("backend"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, cfg.validate()
}

func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(cmd, cfg.Log)
	if err != nil {
		return nil, err
	}

	cache, err := newCache(cfg.Cache)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	opts := []xlookup.Option{
		xlookup.WithLogger(logger),
		xlookup.WithFetcher(newFetcher(cfg.Registry, logger)),
		xlookup.WithURL(cfg.Registry.URL),
		xlookup.WithRefreshTimeout(cfg.Registry.RefreshTimeout),
		xlookup.WithStrictParse(cfg.Registry.Strict),
		xlookup.WithMemo(cfg.Lookup.MemoSize, cfg.Lookup.MemoTTL),
	}
	if cache != nil {
		opts = append(opts, xlookup.WithCache(cache))
	}
	svc, err := xlookup.New(opts...)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		_ = closeLog()
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, service: svc, cache: cache, closeLog: closeLog}, nil
}

// newLogger 日志写到 ErrWriter，配置了 log.file 时改写轮转文件。
func newLogger(cmd *cli.Command, cfg logConfig) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(cmd.Root().ErrWriter).
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format).
		SetService("xoui")
	if cfg.File != "" {
		b.SetRotation(cfg.File, xrotate.WithMaxSize(20))
	}
	logger, closeLog, err := b.Build()
	if err != nil {
		return nil, nil, &usageError{msg: err.Error()}
	}
	return logger, closeLog, nil
}

func newFetcher(cfg registryConfig, logger xlog.Logger) xsource.Fetcher {
	if cfg.File != "" {
		return xsource.FileFetcher{Path: cfg.File}
	}
	opts := []xsource.HTTPOption{
		xsource.WithTimeout(cfg.Timeout),
		xsource.WithAttempts(cfg.Retries),
		xsource.WithUserAgent("xoui/" + Version),
		xsource.WithLogger(logger),
	}
	if cfg.BreakerFailures > 0 {
		opts = append(opts, xsource.WithBreaker(xbreaker.NewBreaker("registry",
			xbreaker.WithThreshold(uint32(cfg.BreakerFailures)),
			xbreaker.WithTimeout(cfg.BreakerTimeout),
			xbreaker.WithOnStateChange(func(name string, from, to xbreaker.State) {
				logger.Warn(context.Background(), "registry breaker state changed",
					xlog.Component(name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			}),
		)))
	}
	return xsource.NewHTTPFetcher(opts...)
}

// newCache 按后端创建缓存，none 返回 nil。
func newCache(cfg cacheConfig) (xcache.Cache, error) {
	switch cfg.Backend {
	case backendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache, err := xcache.NewRedis(client,
			xcache.WithKeyPrefix(cfg.RedisKey),
			xcache.WithTTL(cfg.RedisTTL),
		)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return cache, nil
	case backendFile:
		var opts []xcache.FileOption
		if cfg.RawPath != "" {
			opts = append(opts, xcache.WithRawPath(cfg.RawPath))
		}
		return xcache.NewFile(cfg.RecordsPath, opts...)
	default:
		return nil, nil
	}
}

// Close 依次关闭服务、缓存与日志文件。
func (a *app) Close() error {
	errs := []error{a.service.Close()}
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	errs = append(errs, a.closeLog())
	return errors.Join(errs...)
}

// withApp 为 action 创建并释放 app。
func withApp(fn func(ctx context.Context, cmd *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil {
				a.logger.Warn(ctx, "close failed", xlog.Err(cerr))
			}
		}()
		return fn(ctx, cmd, a)
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omeyang/xoui/pkg/config/xconf"
)

// 缓存后端
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

type appConfig struct {
	Registry registryConfig `koanf:"registry"`
	Cache    cacheConfig    `koanf:"cache"`
	Lookup   lookupConfig   `koanf:"lookup"`
	Log      logConfig      `koanf:"log"`
}

type registryConfig struct {
	// URL 下载地址，空串使用 IEEE 默认地址。
	URL string `koanf:"url"`
	// File 非空时从本地文件读取注册表，不访问网络。
	File           string        `koanf:"file"`
	Timeout        time.Duration `koanf:"timeout"`
	Retries        int           `koanf:"retries"`
	RefreshTimeout time.Duration `koanf:"refresh_timeout"`
	Strict         bool          `koanf:"strict"`
	// BreakerFailures 连续失败多少次后熔断下载，0 关闭熔断。
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

type cacheConfig struct {
	Backend     string        `koanf:"backend"`
	RecordsPath string        `koanf:"records_path"`
	RawPath     string        `koanf:"raw_path"`
	RedisAddr   string        `koanf:"redis_addr"`
	RedisKey    string        `koanf:"redis_key"`
	RedisTTL    time.Duration `koanf:"redis_ttl"`
}

type lookupConfig struct {
	MemoSize int           `koanf:"memo_size"`
	MemoTTL  time.Duration `koanf:"memo_ttl"`
}

type logConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

func defaultConfig() appConfig {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	dir = filepath.Join(dir, "xoui")
	return appConfig{
		Registry: registryConfig{
			Timeout:         30 * time.Second,
			Retries:         3,
			RefreshTimeout:  time.Minute,
			BreakerFailures: 3,
			BreakerTimeout:  10 * time.Minute,
		},
		Cache: cacheConfig{
			Backend:     backendFile,
			RecordsPath: filepath.Join(dir, "oui.json"),
			RawPath:     filepath.Join(dir, "oui.txt"),
			RedisAddr:   "localhost:6379",
			RedisKey:    "xoui:",
		},
		Lookup: lookupConfig{
			MemoSize: 1024,
			MemoTTL:  10 * time.Minute,
		},
		Log: logConfig{
			Level:  "error",
			Format: "text",
		},
	}
}

// loadConfig 读取配置文件，path 为空时返回默认配置。
func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		c, err := xconf.New(path)
		if err != nil {
			return cfg, err
		}
		if err := c.Unmarshal("", &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (c *appConfig) validate() error {
	switch c.Cache.Backend {
	case backendFile:
		if c.Cache.RecordsPath == "" {
			return &usageError{msg: "cache.records_path is required for the file backend"}
		}
	case backendRedis:
		if c.Cache.RedisAddr == "" {
			return &usageError{msg: "cache.redis_addr is required for the redis backend"}
		}
	case backendNone:
	default:
		return &usageError{msg: fmt.Sprintf("unknown cache backend %q (want file, redis or none)", c.Cache.Backend)}
	}
	if c.Registry.Retries < 1 {
		return &usageError{msg: fmt.Sprintf("registry.retries must be >= 1, got %d", c.Registry.Retries)}
	}
	if c.Registry.BreakerFailures < 0 {
		return &usageError{msg: fmt.Sprintf("registry.breaker_failures must be >= 0, got %d", c.Registry.BreakerFailures)}
	}
	if c.Lookup.MemoSize < 0 {
		return &usageError{msg: fmt.Sprintf("lookup.memo_size must be >= 0, got %d", c.Lookup.MemoSize)}
	}
	return nil
}

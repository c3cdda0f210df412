package xcache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

// =============================================================================
// Redis 配置选项
// =============================================================================

// RedisOptions 定义 Redis 缓存的配置选项。
type RedisOptions struct {
	// RecordsKey 存放记录 JSON 的 key，默认 "xoui:records"。
	RecordsKey string

	// RawKey 存放原始文本的 key，默认 "xoui:raw"。
	RawKey string

	// TTL 写入的过期时间，0 表示不过期。
	TTL time.Duration
}

// RedisOption 定义配置 Redis 缓存的函数类型。
type RedisOption func(*RedisOptions)

// defaultRedisOptions 返回默认的 Redis 配置。
func defaultRedisOptions() *RedisOptions {
	return &RedisOptions{
		RecordsKey: "xoui:records",
		RawKey:     "xoui:raw",
	}
}

// WithKeyPrefix 以 prefix 派生记录与原始文本的 key（prefix+"records"、prefix+"raw"）。
func WithKeyPrefix(prefix string) RedisOption {
	return func(o *RedisOptions) {
		o.RecordsKey = prefix + "records"
		o.RawKey = prefix + "raw"
	}
}

// WithRecordsKey 设置记录 key。
func WithRecordsKey(key string) RedisOption {
	return func(o *RedisOptions) {
		o.RecordsKey = key
	}
}

// WithRawKey 设置原始文本 key。
func WithRawKey(key string) RedisOption {
	return func(o *RedisOptions) {
		o.RawKey = key
	}
}

// WithTTL 设置写入过期时间。负值被忽略。
func WithTTL(ttl time.Duration) RedisOption {
	return func(o *RedisOptions) {
		if ttl >= 0 {
			o.TTL = ttl
		}
	}
}

// =============================================================================
// 工厂函数
// =============================================================================

// NewRedis 创建 Redis 缓存实例。
// client 必须是已初始化的 redis.UniversalClient，Close 会关闭它。
func NewRedis(client redis.UniversalClient, opts ...RedisOption) (Cache, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	options := defaultRedisOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.RecordsKey == "" || options.RawKey == "" {
		return nil, ErrEmptyKey
	}

	return &redisCache{
		client:  client,
		options: options,
	}, nil
}

// =============================================================================
// Redis 实现
// =============================================================================

// redisCache 实现 Cache 接口，记录与原始文本各占一个 string key。
type redisCache struct {
	client  redis.UniversalClient
	options *RedisOptions
	closed  atomic.Bool
}

// Client 返回底层的 redis.UniversalClient。
func (c *redisCache) Client() redis.UniversalClient {
	return c.client
}

func (c *redisCache) LoadRecords(ctx context.Context) ([]xregistry.Record, error) {
	data, err := c.get(ctx, c.options.RecordsKey)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

func (c *redisCache) SaveRecords(ctx context.Context, records []xregistry.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return c.set(ctx, c.options.RecordsKey, data)
}

func (c *redisCache) LoadRaw(ctx context.Context) (string, error) {
	data, err := c.get(ctx, c.options.RawKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *redisCache) SaveRaw(ctx context.Context, raw string) error {
	return c.set(ctx, c.options.RawKey, []byte(raw))
}

func (c *redisCache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return c.client.Close()
}

func (c *redisCache) get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("xcache: redis get %s: %w", key, err)
	}
	return data, nil
}

func (c *redisCache) set(ctx context.Context, key string, data []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.client.Set(ctx, key, data, c.options.TTL).Err(); err != nil {
		return fmt.Errorf("xcache: redis set %s: %w", key, err)
	}
	return nil
}

package xrotate

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/xoui/pkg/util/xfile"
)

// 默认值面向 CLI 与单机服务：日志量不大，保留近一个月。
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 28
	DefaultCompress   = true

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

type config struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
	fileMode   os.FileMode
	onError    func(error)
}

// Option 轮转配置选项
type Option func(*config)

// WithMaxSize 单个文件最大大小（MB），超过后自动轮转。
func WithMaxSize(mb int) Option {
	return func(c *config) { c.maxSizeMB = mb }
}

// WithMaxBackups 保留的备份数量，0 表示不按数量清理。
func WithMaxBackups(n int) Option {
	return func(c *config) { c.maxBackups = n }
}

// WithMaxAge 备份保留天数，0 表示不按天数清理。
func WithMaxAge(days int) Option {
	return func(c *config) { c.maxAgeDays = days }
}

// WithCompress 是否 gzip 压缩备份。
func WithCompress(compress bool) Option {
	return func(c *config) { c.compress = compress }
}

// WithLocalTime 备份文件名使用本地时间，默认 UTC。
func WithLocalTime(local bool) Option {
	return func(c *config) { c.localTime = local }
}

// WithFileMode 设置日志文件权限。
//
// lumberjack 以 0600 创建文件，这里在首次写入和每次手动轮转后 chmod，
// 期间存在短暂的 0600 窗口。
func WithFileMode(mode os.FileMode) Option {
	return func(c *config) { c.fileMode = mode }
}

// WithOnError 接收 chmod 等内部错误。
//
// 回调不得写入同一个 Rotator，否则会递归。
func WithOnError(fn func(error)) Option {
	return func(c *config) { c.onError = fn }
}

type lumberjackRotator struct {
	logger   *lumberjack.Logger
	path     string
	fileMode os.FileMode
	onError  func(error)

	mu          sync.Mutex // 串行化 chmod
	modeApplied atomic.Bool
	closed      atomic.Bool
}

// NewLumberjack 创建按大小轮转的文件输出。
//
// filename 经 xfile.SanitizePath 校验，父目录不存在时自动创建。
func NewLumberjack(filename string, opts ...Option) (Rotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	cfg := config{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		compress:   DefaultCompress,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	path, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(path); err != nil {
		return nil, err
	}

	return &lumberjackRotator{
		logger: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.maxSizeMB,
			MaxBackups: cfg.maxBackups,
			MaxAge:     cfg.maxAgeDays,
			Compress:   cfg.compress,
			LocalTime:  cfg.localTime,
		},
		path:     path,
		fileMode: cfg.fileMode,
		onError:  cfg.onError,
	}, nil
}

func (c *config) validate() error {
	if c.maxSizeMB <= 0 || c.maxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: got %d, want 1~%d", ErrInvalidMaxSize, c.maxSizeMB, maxSizeMB)
	}
	if c.maxBackups < 0 || c.maxBackups > maxBackups {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxBackups, c.maxBackups, maxBackups)
	}
	if c.maxAgeDays < 0 || c.maxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: got %d, want 0~%d", ErrInvalidMaxAge, c.maxAgeDays, maxAgeDays)
	}
	if c.maxBackups == 0 && c.maxAgeDays == 0 {
		return ErrNoCleanupPolicy
	}
	if c.fileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o", ErrInvalidFileMode, c.fileMode)
	}
	return nil
}

func (r *lumberjackRotator) Write(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	n, err := r.logger.Write(p)
	if err != nil {
		// Close 可能在写入期间完成
		if r.closed.Load() {
			return n, ErrClosed
		}
		return n, err
	}
	if r.fileMode != 0 && !r.modeApplied.Load() {
		r.report(r.applyFileMode())
	}
	return n, nil
}

func (r *lumberjackRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	if err := r.logger.Rotate(); err != nil {
		if r.closed.Load() {
			return ErrClosed
		}
		return err
	}
	if r.fileMode != 0 {
		r.modeApplied.Store(false)
		r.report(r.applyFileMode())
	}
	return nil
}

func (r *lumberjackRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	return r.logger.Close()
}

func (r *lumberjackRotator) applyFileMode() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, err := os.Stat(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode().Perm() != r.fileMode {
		//#nosec G302 -- 权限由调用方配置
		if err := os.Chmod(r.path, r.fileMode); err != nil {
			return err
		}
	}
	r.modeApplied.Store(true)
	return nil
}

// report 不经过日志库，避免 Rotator 作为日志输出时递归写入。
func (r *lumberjackRotator) report(err error) {
	if err == nil || r.onError == nil {
		return
	}
	defer func() { _ = recover() }()
	r.onError(err)
}

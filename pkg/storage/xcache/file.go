package xcache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
	"github.com/omeyang/xoui/pkg/util/xfile"
)

// defaultFilePerm 缓存文件权限。
const defaultFilePerm = 0o640

// FileOptions 定义文件缓存的配置选项。
type FileOptions struct {
	// RecordsPath 记录 JSON 文件路径，必填。
	RecordsPath string

	// RawPath 原始文本文件路径，为空时禁用原始文本缓存。
	RawPath string

	// Perm 文件权限，默认 0640。
	Perm os.FileMode
}

// FileOption 定义配置文件缓存的函数类型。
type FileOption func(*FileOptions)

// WithRawPath 设置原始文本文件路径。
func WithRawPath(path string) FileOption {
	return func(o *FileOptions) {
		o.RawPath = path
	}
}

// WithFilePerm 设置文件权限。
func WithFilePerm(perm os.FileMode) FileOption {
	return func(o *FileOptions) {
		if perm != 0 {
			o.Perm = perm
		}
	}
}

// NewFile 创建文件缓存。recordsPath 为记录 JSON 文件路径。
func NewFile(recordsPath string, opts ...FileOption) (Cache, error) {
	if recordsPath == "" {
		return nil, ErrEmptyPath
	}
	options := &FileOptions{RecordsPath: recordsPath, Perm: defaultFilePerm}
	for _, opt := range opts {
		opt(options)
	}
	return &fileCache{options: options}, nil
}

// fileCache 实现 Cache 接口，内容存放在本地文件。
type fileCache struct {
	options *FileOptions
	closed  atomic.Bool
}

func (c *fileCache) LoadRecords(ctx context.Context) ([]xregistry.Record, error) {
	data, err := c.read(ctx, c.options.RecordsPath)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

func (c *fileCache) SaveRecords(ctx context.Context, records []xregistry.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return c.write(ctx, c.options.RecordsPath, data)
}

func (c *fileCache) LoadRaw(ctx context.Context) (string, error) {
	if c.options.RawPath == "" {
		return "", ErrNotFound
	}
	data, err := c.read(ctx, c.options.RawPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *fileCache) SaveRaw(ctx context.Context, raw string) error {
	if c.options.RawPath == "" {
		return ErrRawDisabled
	}
	return c.write(ctx, c.options.RawPath, []byte(raw))
}

func (c *fileCache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return nil
}

func (c *fileCache) read(ctx context.Context, path string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("xcache: read %s: %w", path, err)
	}
	return data, nil
}

func (c *fileCache) write(ctx context.Context, path string, data []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := xfile.WriteAtomic(path, data, c.options.Perm); err != nil {
		return fmt.Errorf("xcache: %w", err)
	}
	return nil
}

package xsource

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
)

// DefaultURL 是 IEEE MA-L 注册表地址。
const DefaultURL = "https://standards-oui.ieee.org"

// Fetcher 获取注册表原始文本。
// url 为空时由实现决定默认来源。
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FileFetcher 从本地文件读取注册表文本。
// Path 为空时把 url 当作文件路径。
type FileFetcher struct {
	Path string
}

// Fetch 实现 [Fetcher]。
func (f FileFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := f.Path
	if path == "" {
		path = url
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return string(data), nil
}

// StaticFetcher 返回固定文本或固定错误，并记录调用次数。
type StaticFetcher struct {
	Text  string
	Err   error
	calls atomic.Int64
}

// NewStaticFetcher 创建返回 text 的 StaticFetcher。
func NewStaticFetcher(text string) *StaticFetcher {
	return &StaticFetcher{Text: text}
}

// Fetch 实现 [Fetcher]。
func (f *StaticFetcher) Fetch(ctx context.Context, _ string) (string, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Text, nil
}

// Calls 返回 Fetch 被调用的次数。
func (f *StaticFetcher) Calls() int64 {
	return f.calls.Load()
}

var (
	_ Fetcher = FileFetcher{}
	_ Fetcher = (*StaticFetcher)(nil)
	_ Fetcher = (*HTTPFetcher)(nil)
)

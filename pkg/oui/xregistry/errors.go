package xregistry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedEntry 表示条目结构不符合注册表格式。
var ErrMalformedEntry = errors.New("xregistry: malformed entry")

// EntryError 描述单个条目的解析失败。
type EntryError struct {
	// Index 是条目在注册表中的序号（从 0 开始，不含表头）。
	Index int
	// Entry 是条目原文。
	Entry string
	// Err 是底层错误，总是包装 ErrMalformedEntry。
	Err error
}

func (e *EntryError) Error() string {
	first, _, _ := strings.Cut(e.Entry, "\n")
	return fmt.Sprintf("xregistry: entry %d %q: %v", e.Index, strings.TrimSpace(first), e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

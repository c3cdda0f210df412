// Package xstore 提供以厂商前缀为键的 OUI 记录内存快照。
//
// Store 持有一个不可变快照（前缀索引 + 有序记录），读取通过 atomic.Pointer 无锁完成；
// ReplaceAll 构建新快照后原子替换，读者要么看到完整的旧快照，要么看到完整的新快照。
// 前缀重复时，存储顺序中的第一条记录生效。
package xstore

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

// snapshot 是一次 ReplaceAll 的不可变结果。
type snapshot struct {
	index    map[string]int
	records  []xregistry.Record
	loadedAt time.Time
}

// Store 是并发安全的厂商记录存储。零值可用，表示未加载。
type Store struct {
	snap atomic.Pointer[snapshot]
	now  func() time.Time
}

// New 创建空的 Store。
func New() *Store {
	return &Store{}
}

// Lookup 按前缀（大写冒号格式，如 "30:23:03"）精确查找。
func (s *Store) Lookup(prefix string) (xregistry.Record, bool) {
	snap := s.snap.Load()
	if snap == nil {
		return xregistry.Record{}, false
	}
	i, ok := snap.index[prefix]
	if !ok {
		return xregistry.Record{}, false
	}
	return snap.records[i], true
}

// ReplaceAll 用 records 整体替换当前内容，不与旧内容合并。
// records 会被复制，调用方之后修改切片不影响 Store。
func (s *Store) ReplaceAll(records []xregistry.Record) {
	snap := &snapshot{
		index:    make(map[string]int, len(records)),
		records:  slices.Clone(records),
		loadedAt: s.clock(),
	}
	if snap.records == nil {
		snap.records = []xregistry.Record{}
	}
	for i, r := range snap.records {
		if _, dup := snap.index[r.MAC]; !dup {
			snap.index[r.MAC] = i
		}
	}
	s.snap.Store(snap)
}

// IsLoaded 报告是否执行过 ReplaceAll（即使结果为空）。
func (s *Store) IsLoaded() bool {
	return s.snap.Load() != nil
}

// Len 返回记录数（含重复前缀）。
func (s *Store) Len() int {
	if snap := s.snap.Load(); snap != nil {
		return len(snap.records)
	}
	return 0
}

// Records 按存储顺序返回全部记录的副本。
func (s *Store) Records() []xregistry.Record {
	if snap := s.snap.Load(); snap != nil {
		return slices.Clone(snap.records)
	}
	return nil
}

// LoadedAt 返回当前快照的替换时间，未加载时返回零值。
func (s *Store) LoadedAt() time.Time {
	if snap := s.snap.Load(); snap != nil {
		return snap.loadedAt
	}
	return time.Time{}
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

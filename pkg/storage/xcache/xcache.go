package xcache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

// RecordCache 持久化解析后的注册表记录。
type RecordCache interface {
	// LoadRecords 读取全部记录，保持写入顺序。
	// 不存在时返回 ErrNotFound，无法解码时返回包装 ErrCorrupt 的错误。
	LoadRecords(ctx context.Context) ([]xregistry.Record, error)

	// SaveRecords 整体覆盖写入记录。
	SaveRecords(ctx context.Context, records []xregistry.Record) error
}

// RawCache 持久化注册表原始文本。
type RawCache interface {
	// LoadRaw 读取原始文本，不存在时返回 ErrNotFound。
	LoadRaw(ctx context.Context) (string, error)

	// SaveRaw 整体覆盖写入原始文本。
	SaveRaw(ctx context.Context, raw string) error
}

// Cache 组合记录缓存与原始文本缓存。
type Cache interface {
	RecordCache
	RawCache

	// Close 释放后端资源。重复调用返回 ErrClosed。
	Close() error
}

// =============================================================================
// 编解码
// =============================================================================

func encodeRecords(records []xregistry.Record) ([]byte, error) {
	if records == nil {
		records = []xregistry.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("xcache: encode records: %w", err)
	}
	return data, nil
}

func decodeRecords(data []byte) ([]xregistry.Record, error) {
	var records []xregistry.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if records == nil {
		// "null" 不是合法的写入结果
		return nil, fmt.Errorf("%w: null record list", ErrCorrupt)
	}
	return records, nil
}

package xlookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/observability/xmetrics"
	"github.com/omeyang/xoui/pkg/oui/xregistry"
	"github.com/omeyang/xoui/pkg/oui/xsource"
	"github.com/omeyang/xoui/pkg/oui/xstore"
	"github.com/omeyang/xoui/pkg/storage/xcache"
	"github.com/omeyang/xoui/pkg/util/xlru"
	"github.com/omeyang/xoui/pkg/util/xmac"
)

const component = "xlookup"

// singleflight 键
const (
	flightUpdate  = "update"
	flightReload  = "reload"
	flightRaw     = "raw"
	flightFromRaw = "from-raw"
	flightLoad    = "load"
)

// memoEntry 记录结果及其所属的快照代数，旧代数的条目视为未命中。
type memoEntry struct {
	gen    uint64
	result Result
}

// Service 是 MAC 厂商查询服务。
//
// 读路径只访问不可变快照；刷新类操作（Update、Reload、UpdateFromRaw、UpdateRaw）
// 各自至多一个在途，并发调用方共享同一结果。刷新失败时继续使用旧快照。
type Service struct {
	opts    *Options
	logger  xlog.Logger
	fetcher xsource.Fetcher
	store   *xstore.Store
	memo    *xlru.Cache[string, memoEntry]
	gen     atomic.Uint64
	sf      singleflight.Group
	watcher *xcache.Watcher

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// New 创建查询服务。
//
// 服务创建时不加载数据，首次非私有查询触发懒加载。
func New(opts ...Option) (*Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	s := &Service{
		opts:    o,
		logger:  o.Logger,
		fetcher: o.Fetcher,
		store:   xstore.New(),
	}
	if s.logger == nil {
		s.logger = xlog.Default()
	}
	if s.fetcher == nil {
		s.fetcher = xsource.NewHTTPFetcher(xsource.WithLogger(s.logger))
	}

	if o.MemoSize > 0 {
		memo, err := xlru.New[string, memoEntry](xlru.Config{Size: o.MemoSize, TTL: o.MemoTTL})
		if err != nil {
			return nil, fmt.Errorf("xlookup: memo: %w", err)
		}
		s.memo = memo
	}

	if o.WatchPath != "" {
		w, err := xcache.WatchFile(o.WatchPath, s.onCacheChanged, xcache.WithDebounce(o.WatchDebounce))
		if err != nil {
			if s.memo != nil {
				s.memo.Close()
			}
			return nil, fmt.Errorf("xlookup: watch: %w", err)
		}
		s.watcher = w
		w.StartAsync()
	}
	return s, nil
}

// =============================================================================
// 查询
// =============================================================================

// Lookup 查询 text 对应的厂商。
//
// 无效输入返回 [NoMatch]，不会返回错误。私有地址不访问存储与网络。
// 存储未加载时先从缓存加载，缓存缺失或损坏时下载；加载失败记录日志并返回 NoMatch。
func (s *Service) Lookup(ctx context.Context, text string) Result {
	r := s.lookup(ctx, text)
	s.opts.LookupCounter.Inc(ctx, xmetrics.String("result", r.Kind().String()))
	return r
}

// LookupMany 依次查询，结果与输入一一对应。
func (s *Service) LookupMany(ctx context.Context, texts []string) []Result {
	results := make([]Result, len(texts))
	for i, text := range texts {
		results[i] = s.Lookup(ctx, text)
	}
	return results
}

func (s *Service) lookup(ctx context.Context, text string) Result {
	addr, err := xmac.ParseLoose(text)
	if err != nil {
		s.logger.Debug(ctx, "invalid mac", xlog.Component(component), xlog.Err(err))
		return NoMatch()
	}
	prefix := addr.CanonicalPrefix()
	if addr.IsPrivate() {
		return privateResult(prefix)
	}

	if r, ok := s.memoGet(prefix); ok {
		return r
	}

	if !s.store.IsLoaded() {
		if err := s.ensureLoaded(ctx); err != nil {
			s.logger.Warn(ctx, "registry unavailable",
				xlog.Component(component), slog.String("prefix", prefix), xlog.Err(err))
		}
		if !s.store.IsLoaded() {
			return NoMatch()
		}
	}

	gen := s.gen.Load()
	r := NoMatch()
	if rec, ok := s.store.Lookup(prefix); ok {
		r = vendorResult(rec)
	}
	s.memoSet(prefix, gen, r)
	return r
}

func (s *Service) memoGet(prefix string) (Result, bool) {
	if s.memo == nil {
		return Result{}, false
	}
	e, ok := s.memo.Get(prefix)
	if !ok || e.gen != s.gen.Load() {
		return Result{}, false
	}
	return e.result, true
}

func (s *Service) memoSet(prefix string, gen uint64, r Result) {
	if s.memo == nil {
		return
	}
	s.memo.Set(prefix, memoEntry{gen: gen, result: r})
}

// ensureLoaded 优先从记录缓存加载，失败时下载。
func (s *Service) ensureLoaded(ctx context.Context) error {
	return s.flight(ctx, flightLoad, func(ctx context.Context) error {
		if s.store.IsLoaded() {
			return nil
		}
		err := s.flight(ctx, flightReload, s.reload)
		if err == nil {
			return nil
		}
		switch {
		case errors.Is(err, ErrNoRecordCache):
		case errors.Is(err, xcache.ErrNotFound):
			s.logger.Info(ctx, "record cache empty, downloading registry", xlog.Component(component))
		default:
			s.logger.Warn(ctx, "record cache unusable, downloading registry",
				xlog.Component(component), xlog.Err(err))
		}
		return s.flight(ctx, flightUpdate, s.update)
	})
}

// =============================================================================
// 刷新
// =============================================================================

// Update 下载、解析并持久化注册表，然后整体替换存储。
//
// 成功时清空查询备忘录。解析结果为空返回 [ErrEmptyRegistry]，存储保持不变。
// 持久化失败时新数据仍然生效，返回包装 [ErrPersistFailed] 的错误。
// 调用方 ctx 取消只影响等待，不会中断在途刷新。
func (s *Service) Update(ctx context.Context) error {
	return s.flight(ctx, flightUpdate, s.update)
}

// Reload 从记录缓存替换存储，不访问网络。
func (s *Service) Reload(ctx context.Context) error {
	return s.flight(ctx, flightReload, s.reload)
}

// UpdateFromRaw 从原始文本缓存解析并替换存储，不访问网络。
func (s *Service) UpdateFromRaw(ctx context.Context) error {
	return s.flight(ctx, flightFromRaw, s.updateFromRaw)
}

// UpdateRaw 下载注册表并只写入原始文本缓存，存储保持不变。
func (s *Service) UpdateRaw(ctx context.Context) error {
	return s.flight(ctx, flightRaw, s.updateRaw)
}

// flight 以 key 去重执行 fn。fn 在脱离调用方取消、受 RefreshTimeout 约束的 ctx 中运行。
func (s *Service) flight(ctx context.Context, key string, fn func(context.Context) error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	ch := s.sf.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.RefreshTimeout)
		defer cancel()
		return nil, fn(rctx)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (s *Service) update(ctx context.Context) (err error) {
	ctx, span := xmetrics.Start(ctx, s.opts.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "update",
	})
	start := time.Now()
	var count int
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Int("records", count)}})
		s.logResult(ctx, "update", count, start, err)
	}()

	raw, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	if s.opts.Raw != nil {
		if rawErr := s.opts.Raw.SaveRaw(ctx, raw); rawErr != nil {
			s.logger.Warn(ctx, "save raw registry failed", xlog.Component(component), xlog.Err(rawErr))
		}
	}

	records, err := s.parse(ctx, raw)
	if err != nil {
		return err
	}
	count = len(records)
	return s.commit(ctx, records, true)
}

func (s *Service) reload(ctx context.Context) (err error) {
	if s.opts.Records == nil {
		return ErrNoRecordCache
	}
	ctx, span := xmetrics.Start(ctx, s.opts.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "reload",
	})
	var count int
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Int("records", count)}})
	}()

	records, err := s.opts.Records.LoadRecords(ctx)
	if err != nil {
		return err
	}
	count = len(records)
	return s.commit(ctx, records, false)
}

func (s *Service) updateFromRaw(ctx context.Context) (err error) {
	if s.opts.Raw == nil {
		return ErrNoRawCache
	}
	ctx, span := xmetrics.Start(ctx, s.opts.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "update_from_raw",
	})
	start := time.Now()
	var count int
	defer func() {
		span.End(xmetrics.Result{Err: err})
		s.logResult(ctx, "update_from_raw", count, start, err)
	}()

	raw, err := s.opts.Raw.LoadRaw(ctx)
	if err != nil {
		return err
	}
	records, err := s.parse(ctx, raw)
	if err != nil {
		return err
	}
	count = len(records)
	return s.commit(ctx, records, true)
}

func (s *Service) updateRaw(ctx context.Context) (err error) {
	if s.opts.Raw == nil {
		return ErrNoRawCache
	}
	ctx, span := xmetrics.Start(ctx, s.opts.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "update_raw",
	})
	defer func() {
		span.End(xmetrics.Result{Err: err})
	}()

	raw, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	return s.opts.Raw.SaveRaw(ctx, raw)
}

func (s *Service) fetch(ctx context.Context) (raw string, err error) {
	ctx, span := xmetrics.Start(ctx, s.opts.Observer, xmetrics.SpanOptions{
		Component: component,
		Operation: "fetch",
		Kind:      xmetrics.KindClient,
	})
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{xmetrics.Int("bytes", len(raw))}})
	}()
	return s.fetcher.Fetch(ctx, s.opts.URL)
}

func (s *Service) parse(ctx context.Context, raw string) ([]xregistry.Record, error) {
	return xregistry.ParseRegistry(ctx, raw,
		xregistry.WithStrict(s.opts.StrictParse),
		xregistry.WithLogger(s.logger),
	)
}

// commit 替换存储；persist 为 true 时先写入记录缓存。
func (s *Service) commit(ctx context.Context, records []xregistry.Record, persist bool) error {
	if len(records) == 0 {
		return ErrEmptyRegistry
	}

	var persistErr error
	if persist && s.opts.Records != nil {
		if err := s.opts.Records.SaveRecords(ctx, records); err != nil {
			persistErr = fmt.Errorf("%w: %w", ErrPersistFailed, err)
		}
	}

	s.store.ReplaceAll(records)
	s.gen.Add(1)
	if s.memo != nil {
		s.memo.Clear()
	}
	return persistErr
}

func (s *Service) logResult(ctx context.Context, op string, count int, start time.Time, err error) {
	if err != nil {
		s.logger.Error(ctx, "registry refresh failed",
			xlog.Component(component), xlog.Operation(op), xlog.Duration(time.Since(start)), xlog.Err(err))
		return
	}
	s.logger.Info(ctx, "registry refreshed",
		xlog.Component(component), xlog.Operation(op),
		xlog.Count(int64(count)), xlog.Duration(time.Since(start)))
}

// onCacheChanged 是缓存文件监视回调。
func (s *Service) onCacheChanged(err error) {
	ctx := context.Background()
	if err != nil {
		s.logger.Warn(ctx, "cache watch error", xlog.Component(component), xlog.Err(err))
		return
	}
	if err := s.Reload(ctx); err != nil {
		s.logger.Warn(ctx, "reload after cache change failed", xlog.Component(component), xlog.Err(err))
	}
}

// =============================================================================
// 状态
// =============================================================================

// Len 返回当前快照的记录数。
func (s *Service) Len() int {
	return s.store.Len()
}

// LoadedAt 返回当前快照的生效时间，未加载时为零值。
func (s *Service) LoadedAt() time.Time {
	return s.store.LoadedAt()
}

// Records 返回当前快照的记录副本。
func (s *Service) Records() []xregistry.Record {
	return s.store.Records()
}

// MemoStats 返回备忘录命中统计，未启用时为零值。
func (s *Service) MemoStats() xlru.Stats {
	if s.memo == nil {
		return xlru.Stats{}
	}
	return s.memo.Stats()
}

// Close 停止文件监视并释放备忘录。幂等。
//
// Close 后查询仍读取已加载的快照，刷新类操作返回 [ErrClosed]。
// 缓存后端由调用方关闭。
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		if s.watcher != nil {
			s.closeErr = s.watcher.Stop()
		}
		if s.memo != nil {
			s.memo.Close()
		}
	})
	return s.closeErr
}

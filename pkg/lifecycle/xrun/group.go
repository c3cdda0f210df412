package xrun

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xoui/pkg/observability/xlog"
)

// Group 基于 errgroup 运行一组协作的后台任务。
//
// 任一任务返回错误或父 ctx 取消时，其余任务都会收到取消信号。
// Go、GoWithName、Cancel 并发安全；Wait 只应调用一次。
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("serve"))
//	g.GoWithName("refresh", xrun.Ticker(24*time.Hour, false, refresh))
//	g.GoWithName("http", xrun.HTTPServer(server, 10*time.Second))
//	err := g.Wait()
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回的 ctx 在任一任务失败或 Cancel 时取消。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     options,
	}, egCtx
}

// Go 启动任务，fn 应在 ctx.Done() 后尽快返回。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 与 Go 相同，额外记录任务的启动与退出。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		attrs := []slog.Attr{slog.String("group", g.opts.name), slog.String("task", name)}
		g.opts.logger.Debug(g.ctx, "task starting", attrs...)

		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Warn(g.ctx, "task exited with error", append(attrs, xlog.Err(err))...)
		} else {
			g.opts.logger.Debug(g.ctx, "task stopped", attrs...)
		}
		return err
	})
}

// Wait 等待全部任务结束。
//
// 父 ctx 取消或超时引起的 ctx 错误被过滤；Cancel(cause) 设置的原因会被返回，
// 即使所有任务都返回 nil。Group 未被取消时，任务自身返回的 ctx 错误原样返回。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	ctxErr := g.causeCtx.Err()
	if ctxErr == nil {
		return err
	}
	cause := context.Cause(g.causeCtx)
	explicit := cause != nil && !errors.Is(cause, ctxErr)

	switch {
	case errors.Is(err, ctxErr):
		if explicit {
			return cause
		}
		return nil
	case err == nil && explicit:
		return cause
	default:
		return err
	}
}

// Cancel 以 cause 取消所有任务。cause 不应包装 context.Canceled，否则会被 Wait 过滤。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

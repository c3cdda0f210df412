package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xoui/pkg/lifecycle/xrun"
	"github.com/omeyang/xoui/pkg/observability/xlog"
	"github.com/omeyang/xoui/pkg/oui/xlookup"
)

func createServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "启动 HTTP 查询服务并定期刷新注册表",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "listen", Value: "127.0.0.1:8080", Usage: "监听地址"},
			&cli.DurationFlag{Name: "refresh-interval", Value: 24 * time.Hour, Usage: "刷新间隔，0 表示不刷新"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			return serve(ctx, a, cmd.String("listen"), cmd.Duration("refresh-interval"))
		}),
	}
}

func serve(ctx context.Context, a *app, addr string, interval time.Duration) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           withRequestLog(newLookupHandler(a.service), a.logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, _ := xrun.NewGroup(ctx, xrun.WithName("serve"), xrun.WithLogger(a.logger))
	if interval > 0 {
		g.GoWithName("refresh", xrun.Ticker(interval, false, func(ctx context.Context) error {
			// 刷新失败保留旧数据，下个周期重试
			if err := a.service.Update(ctx); err != nil {
				a.logger.Warn(ctx, "periodic refresh failed", xlog.Err(err))
			}
			return nil
		}))
	}
	g.GoWithName("http", xrun.HTTPServer(server, 10*time.Second))

	a.logger.Info(ctx, "serving lookups", slog.String("listen", addr))
	return g.Wait()
}

// newLookupHandler 暴露查询与健康检查接口：
//
//	GET /lookup/{mac}
//	GET /lookup?mac=...
//	GET /healthz
func newLookupHandler(svc *xlookup.Service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lookup/{mac}", func(w http.ResponseWriter, r *http.Request) {
		writeLookup(w, r, svc, r.PathValue("mac"))
	})
	mux.HandleFunc("GET /lookup", func(w http.ResponseWriter, r *http.Request) {
		mac := r.URL.Query().Get("mac")
		if mac == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing mac parameter"})
			return
		}
		writeLookup(w, r, svc, mac)
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		body := map[string]any{"records": svc.Len()}
		if t := svc.LoadedAt(); !t.IsZero() {
			body["loaded_at"] = t.UTC().Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, body)
	})
	return mux
}

func writeLookup(w http.ResponseWriter, r *http.Request, svc *xlookup.Service, input string) {
	res := svc.Lookup(r.Context(), input)
	writeJSON(w, http.StatusOK, jsonResult{Input: input, Kind: res.Kind().String(), Result: res})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// withRequestLog 为每个请求分配 X-Request-ID（沿用客户端传入的值）并记录访问日志。
func withRequestLog(next http.Handler, logger xlog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug(r.Context(), "request served",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			xlog.Duration(time.Since(start)),
		)
	})
}

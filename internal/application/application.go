package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"deal_dashboard/internal/config"
	"deal_dashboard/internal/domain/service/dashboard"
	"deal_dashboard/internal/domain/value"
	"deal_dashboard/internal/infrastructure/ingest"
	"deal_dashboard/internal/infrastructure/store"
	"deal_dashboard/internal/server"
	"deal_dashboard/pkg/application/connectors"
	"deal_dashboard/pkg/application/modules"
	"deal_dashboard/pkg/contextx"
	"deal_dashboard/pkg/logx"
	"deal_dashboard/pkg/metrics"
	"deal_dashboard/pkg/middlewarex"
	"deal_dashboard/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run serves the API, probe and metrics servers until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dealStore, ready, closeStore, err := newDealStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newDealStore: %w", err)
	}
	defer closeStore()

	defaults, err := newDefaults(cfg.Dashboard)
	if err != nil {
		return fmt.Errorf("newDefaults: %w", err)
	}

	svc := dashboard.NewService(dealStore, ingest.Decoder{}, metrics.NewDashboard(registry)).
		WithDefaults(defaults)

	srv := server.NewServer(
		server.NewDealServer(svc).WithMaxUploadBytes(cfg.HTTP.MaxUploadBytes),
		server.NewViewServer(svc),
	)

	router := chi.NewRouter()
	router.Use(middlewares(cfg.Log)...)
	srv.RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
		Ready:         ready,
	}.Run(ctx, g)
	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricsListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	logger(ctx).Info(
		"application started",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
		slog.String("store", string(cfg.Store.Backend)),
	)

	if err = g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

func newDealStore(
	ctx context.Context,
	cfg config.Config,
) (dashboard.DealStore, probe.ReadinessCheck, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(cfg.Store.SessionTTL), nil, func() {}, nil
	case config.StoreBackendRedis:
		r := &connectors.Redis{
			Address:            cfg.Redis.Address,
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}

		return store.NewRedisStore(r.Client(ctx), cfg.Store.SessionTTL),
			r.Ping,
			func() { r.Close(context.WithoutCancel(ctx)) },
			nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newDefaults(cfg config.Dashboard) (dashboard.Defaults, error) {
	mode, err := value.ParseRollingAverageMode(cfg.RollingMode)
	if err != nil {
		return dashboard.Defaults{}, fmt.Errorf("value.ParseRollingAverageMode: %w", err)
	}

	return dashboard.Defaults{
		MinDeals:        cfg.MinDeals,
		WindowDays:      cfg.WindowDays,
		LimitPoints:     cfg.LimitPoints,
		WeeklyThreshold: cfg.WeeklyThreshold,
		RollingMode:     mode,
	}, nil
}

func middlewares(cfg config.Log) []func(http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{
		middlewarex.TraceID,
		middlewarex.SessionID,
		middlewarex.Logger,
	}

	if cfg.DumpBodies {
		var masker logx.SensitiveDataMaskerInterface = logx.NewNopSensitiveDataMasker()
		if cfg.MaskSensitive {
			masker = logx.NewSensitiveDataMasker()
		}

		mws = append(mws,
			middlewarex.RequestLogging(masker, cfg.MaxBodyLen),
			middlewarex.ResponseLogging(masker, cfg.MaxBodyLen),
		)
	}

	return append(mws, middlewarex.Recovery)
}

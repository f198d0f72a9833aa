// Package app wires the application together: configuration, storage,
// cache, validation, the creation pipeline, and the HTTP server with its
// middleware chain and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/averlon/catalog-api/internal/cache"
	"github.com/averlon/catalog-api/internal/catalog"
	"github.com/averlon/catalog-api/internal/handler"
	"github.com/averlon/catalog-api/internal/storage/postgres"
	"github.com/averlon/catalog-api/internal/validation"
	"github.com/averlon/catalog-api/pkg/health"
	"github.com/averlon/catalog-api/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Redis cache.
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return errors.Wrap(err, "parse redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()

	productCache := cache.New(redisClient, cfg.Catalog.CacheTTL)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthSvc.AddReadinessCheck("redis", 5*time.Second, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)

	// Repository + SKU pre-filter warmup.
	productRepo := postgres.NewProductRepository(pool)

	skuFilter := validation.NewSKUFilter(cfg.Catalog.SKUFilterSize, cfg.Catalog.SKUFilterFPR)
	skus, err := productRepo.ListSKUs(ctx)
	if err != nil {
		return errors.Wrap(err, "warm sku filter")
	}
	skuFilter.Warm(skus)
	lg.Info("SKU filter warmed", zap.Int("skus", len(skus)))

	// Validation engine + creation pipeline.
	engine := validation.NewEngine(productRepo, skuFilter, cfg.Catalog.DailyCreateLimit)

	metricsSink, err := catalog.NewTelemetrySink(m.MeterProvider().Meter("catalog-api"))
	if err != nil {
		return errors.Wrap(err, "create metrics sink")
	}

	creationSvc := catalog.NewService(productRepo, engine, skuFilter, productCache, metricsSink)

	// HTTP surface: health endpoints + product routes on one mux.
	h := handler.NewHandler(productRepo, creationSvc, productCache)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

	chain := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{
			AllowOrigins:     cfg.CORS.Origins,
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           86400,
		}),
		httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
	)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(chain, "catalog-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	healthSvc.SetReady(true)

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, router := setupRouter(ctx, cfg, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	defer sessions.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.L().Error("shutdown", zap.Error(err))
		}
	}()

	logger.L().Info("storefront running",
		zap.String("addr", "http://localhost:"+cfg.AppPort+"/"),
		zap.Bool("premium", cfg.Premium),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.L().Fatal("serve", zap.Error(err))
	}
}

func setupRouter(
	ctx context.Context,
	cfg *config.Config,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
) (*session.Registry, http.Handler) {
	m := metrics.New(reg)
	sessions := session.NewRegistry(cfg.MaxSessions, cfg.SessionTTL, cfg.Premium, m)

	return sessions, web.NewRouter(web.Deps{
		Registry:   sessions,
		Metrics:    m,
		Gatherer:   gatherer,
		Limiter:    middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimit), cfg.RateBurst),
		SessionTTL: cfg.SessionTTL,
		AssetsDir:  cfg.AssetsDir,
	})
}

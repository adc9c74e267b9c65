package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/cache"
	"github.com/nikolayk812/storefront/internal/config"
	httptransport "github.com/nikolayk812/storefront/internal/http"
	"github.com/nikolayk812/storefront/internal/kafka"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/outbox"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "storefront"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := logging.New(serviceName, cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging.New: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var productCache port.ProductCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping[%s]: %w", cfg.RedisAddr, err)
		}
		productCache = cache.NewProductCache(rdb, cfg.ProductCacheTTL)
		logger.Info("product cache enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	tx := repository.NewTxManager(pool,
		repository.WithTimeout(cfg.TxTimeout),
		repository.WithLockTimeout(cfg.LockTimeout),
	)

	users := repository.NewUser(pool)
	carts := repository.NewCart(pool)
	orders := repository.NewOrder(pool)

	handler := httptransport.NewHandler(httptransport.Services{
		Accounts: service.NewAccounts(users),
		Catalog:  service.NewCatalog(repository.NewProduct(pool), repository.NewCategory(pool), productCache, logger, m),
		Carts:    service.NewCarts(tx, carts, users),
		Checkout: service.NewCheckout(tx, logger, m,
			service.WithMaxRetries(cfg.CheckoutMaxRetries),
			service.WithProductCache(productCache),
		),
		Orders: service.NewOrders(orders),
	}, logger, m,
		httptransport.WithDefaultCurrency(cfg.DefaultCurrency),
		httptransport.WithRequestTimeout(cfg.RequestTimeout),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/", handler.Router())

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http_server_start", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
		return nil
	})

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic)
		defer func() { _ = publisher.Close() }()

		relay := outbox.NewRelay(repository.NewOutbox(pool), publisher, logger, m,
			outbox.WithInterval(cfg.OutboxPollInterval),
		)

		g.Go(func() error {
			logger.Info("outbox relay start",
				zap.Strings("brokers", cfg.KafkaBrokers),
				zap.String("topic", cfg.OrderEventsTopic),
			)
			return relay.Run(gctx)
		})
	} else {
		logger.Warn("KAFKA_BROKERS not set, order events stay in the outbox")
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		logger.Info("http_server_stopped")
		return nil
	})

	return g.Wait()
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	shopv1 "github.com/vladislavdragonenkov/shop/api/shop/v1"
	"github.com/vladislavdragonenkov/shop/internal/cache"
	"github.com/vladislavdragonenkov/shop/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shop/internal/health"
	"github.com/vladislavdragonenkov/shop/internal/httpapi"
	"github.com/vladislavdragonenkov/shop/internal/metrics"
	"github.com/vladislavdragonenkov/shop/internal/service/cart"
	"github.com/vladislavdragonenkov/shop/internal/service/checkout"
	grpcsvc "github.com/vladislavdragonenkov/shop/internal/service/grpc"
	"github.com/vladislavdragonenkov/shop/internal/service/idempotency"
	"github.com/vladislavdragonenkov/shop/internal/service/orders"
	"github.com/vladislavdragonenkov/shop/internal/service/outbox"
	"github.com/vladislavdragonenkov/shop/internal/version"
)

const grpcHealthInterval = 10 * time.Second

// services хранит граф сервисов поверх выбранного хранилища.
type services struct {
	cart     *cart.Service
	checkout *checkout.Engine
	orders   *orders.Service
	guard    *idempotency.Guard
}

// Run поднимает HTTP API, gRPC, метрики и фоновые воркеры и ждёт отмены ctx.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.closeFn(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	healthHandler := healthcheck.NewHandler(version.Current().Version)
	healthHandler.RegisterChecker("storage", deps.storageChecker)

	displays, redisClient := initDisplayCache(ctx, cfg, deps.catalog, healthHandler, logger)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	if cfg.OutboxMaxPending > 0 {
		healthHandler.RegisterOptional("outbox", outboxBacklogChecker(deps.outboxRepo, cfg.OutboxMaxPending))
	}

	svc := buildServices(cfg, deps, displays, logger)

	producer, err := initKafkaProducer(cfg.kafkaBrokers(), cfg.KafkaClientID, logger)
	if err != nil {
		logger.Warn("continuing without kafka")
	}
	defer closeKafka(producer, logger)
	publisher, dlq := outboxPublishers(cfg, producer, logger)

	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	var workers sync.WaitGroup
	startWorker(&workers, func() {
		outbox.NewWorker(deps.outboxRepo, publisher,
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
			outbox.WithDLQPublisher(dlq),
			outbox.WithPollInterval(cfg.OutboxPollInterval),
			outbox.WithBatchSize(cfg.OutboxBatchSize),
			outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
			outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
		).Run(workersCtx)
	})
	startWorker(&workers, func() {
		idempotency.NewCleanupWorker(deps.idempotencyRepo,
			idempotency.WithLogger(logger.WithField("component", "idempotency-cleanup")),
			idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
			idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
		).Run(workersCtx)
	})
	defer shutdownWorkers(stopWorkers, &workers, logger)

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	defer shutdownHTTP(metricsSrv, logger)

	errCh := make(chan error, 2)

	var apiSrv *http.Server
	if cfg.HTTPAddr != "" {
		apiSrv, err = startAPIServer(cfg, svc, logger, errCh)
		if err != nil {
			return err
		}
		defer shutdownHTTP(apiSrv, logger)
	}

	var grpcServer *grpc.Server
	var healthServer *health.Server
	if cfg.GRPCAddr != "" {
		grpcServer, healthServer, err = startGRPCServer(cfg, svc, logger, errCh)
		if err != nil {
			return err
		}
		defer stopGRPC(grpcServer, healthServer, cfg.ShutdownTimeout, logger)
		startWorker(&workers, func() {
			healthHandler.Mirror(workersCtx, healthServer, grpcHealthInterval, "", shopv1.ShopService_ServiceDesc.ServiceName)
		})
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func buildServices(cfg Config, deps runtimeDependencies, displays domain.ProductDisplayReader, logger *log.Entry) services {
	checkoutMetrics := metrics.NewCheckoutMetrics()

	retry := checkout.DefaultRetryConfig()
	retry.MaxAttempts = cfg.CheckoutMaxAttempts

	return services{
		cart: cart.NewService(deps.carts, deps.catalog, checkoutMetrics, logger.WithField("component", "cart")),
		checkout: checkout.NewEngine(deps.checkoutStore, displays, deps.timelineRepo,
			checkout.WithCurrency(cfg.Currency),
			checkout.WithRetryConfig(retry),
			checkout.WithTimeout(cfg.CheckoutTimeout),
			checkout.WithMetrics(checkoutMetrics),
			checkout.WithLogger(logger.WithField("component", "checkout")),
		),
		orders: orders.NewService(deps.orders, deps.outboxRepo, deps.timelineRepo, displays,
			checkoutMetrics, logger.WithField("component", "orders")),
		guard: idempotency.NewGuard(deps.idempotencyRepo, cfg.IdempotencyTTL, logger.WithField("component", "idempotency")),
	}
}

// initDisplayCache включает Redis-кеш карточек товаров, если задан адрес.
// Недоступный Redis не мешает старту: кеш сам откатывается на источник.
func initDisplayCache(
	ctx context.Context,
	cfg Config,
	source domain.ProductDisplayReader,
	healthHandler *healthcheck.Handler,
	logger *log.Entry,
) (domain.ProductDisplayReader, *redis.Client) {
	if cfg.RedisAddr == "" {
		return source, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	displayCache := cache.NewProductDisplayCache(client, source, cfg.RedisDisplayTTL, logger.WithField("component", "display-cache"))

	pingCtx, cancel := context.WithTimeout(ctx, healthcheck.DefaultCheckTimeout)
	defer cancel()
	if err := displayCache.Ping(pingCtx); err != nil {
		logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis is not reachable, display cache will fall back to storage")
	} else {
		logger.WithField("addr", cfg.RedisAddr).Info("redis display cache enabled")
	}

	healthHandler.RegisterOptional("redis", healthcheck.NewPingChecker("redis", displayCache.Ping))
	return displayCache, client
}

func outboxBacklogChecker(repo domain.OutboxRepository, maxPending int) healthcheck.Checker {
	return healthcheck.NewPingChecker("outbox", func(ctx context.Context) error {
		stats, err := repo.Stats(ctx)
		if err != nil {
			return err
		}
		if stats.PendingCount > maxPending {
			return fmt.Errorf("outbox backlog %d exceeds %d", stats.PendingCount, maxPending)
		}
		return nil
	})
}

func startWorker(wg *sync.WaitGroup, run func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		run()
	}()
}

func shutdownWorkers(stop context.CancelFunc, wg *sync.WaitGroup, logger *log.Entry) {
	stop()
	wg.Wait()
	logger.Info("background workers stopped")
}

func startAPIServer(cfg Config, svc services, logger *log.Entry, errCh chan<- error) (*http.Server, error) {
	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listen http: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cart:        svc.cart,
		Checkout:    svc.checkout,
		Orders:      svc.orders,
		Idempotency: svc.guard,
	}, httpapi.Options{
		Currency:       cfg.Currency,
		RequestTimeout: cfg.HTTPRequestTimeout,
		Logger:         logger.WithField("component", "http-api"),
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Infof("HTTP API слушает %s", lis.Addr())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return srv, nil
}

func startGRPCServer(cfg Config, svc services, logger *log.Entry, errCh chan<- error) (*grpc.Server, *health.Server, error) {
	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen grpc: %w", err)
	}

	grpcMetrics := promgrpc.NewServerMetrics()
	if err := prometheus.Register(grpcMetrics); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok2 := are.ExistingCollector.(*promgrpc.ServerMetrics); ok2 {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(grpcMetrics.UnaryServerInterceptor()),
	)
	shopService := grpcsvc.NewShopService(svc.cart, svc.checkout, svc.orders, svc.guard, cfg.Currency,
		logger.WithField("layer", "grpc"))
	shopv1.RegisterShopServiceServer(grpcServer, shopService)
	grpcMetrics.InitializeMetrics(grpcServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(shopv1.ShopService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// reflection нужен grpcurl и нагрузочным утилитам
	reflection.Register(grpcServer)

	go func() {
		logger.Infof("gRPC сервер слушает %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	return grpcServer, healthServer, nil
}

func stopGRPC(srv *grpc.Server, healthServer *health.Server, timeout time.Duration, logger *log.Entry) {
	healthServer.Shutdown()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeout):
		logger.Warn("graceful stop превысил таймаут, принудительно останавливаем")
		srv.Stop()
	}
}

// startMetricsServer запускает /metrics и health-эндпоинты на отдельном адресе.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/healthz", healthHandler)
	r.Get("/livez", healthcheck.LivenessHandler)
	r.Get("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/auth"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/config"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/event"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/graphql"
	handler "github.com/jl-simplyintel/CompanyName-FrontEnd/internal/handler/http"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository/redis"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository/upstream"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/database"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/health"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httpclient"
	pkgkafka "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/kafka"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/middleware"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/tracing"
)

// serviceVersion is reported to the tracing backend.
const serviceVersion = "0.1.0"

// App wires together all dependencies and runs the directory service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	stopRouter     context.CancelFunc
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// Redis and Kafka are optional: an empty address or broker list disables
// the listing cache or event publishing.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
		Insecure:       cfg.TracingInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Content API client behind a circuit breaker.
	headers := map[string]string{"User-Agent": cfg.ServiceName + "/" + serviceVersion}
	if cfg.UpstreamToken != "" {
		headers["Authorization"] = "Bearer " + cfg.UpstreamToken
	}
	hc := httpclient.New(httpclient.Config{
		Timeout:         cfg.UpstreamTimeout,
		MaxRetries:      cfg.UpstreamMaxRetries,
		RetryWaitMin:    200 * time.Millisecond,
		RetryWaitMax:    2 * time.Second,
		MaxConnsPerHost: 50,
		Headers:         headers,
	})
	cbCfg := httpclient.DefaultBreakerConfig("content-api")
	cbCfg.Cooldown = cfg.BreakerTimeout
	cbCfg.FailureRatio = cfg.BreakerFailureRatio
	cbCfg.MinRequests = cfg.BreakerMinRequests
	gql := graphql.NewClient(cfg.UpstreamURL, httpclient.NewBreaker(hc, cbCfg, logger), logger, graphql.Options{
		SlowThreshold: cfg.UpstreamSlowThreshold,
	})
	logger.Info("content API client initialized", slog.String("endpoint", cfg.UpstreamURL))

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("content_api", gql.Ping)

	// Optional Redis listing cache.
	var (
		redisClient *goredis.Client
		cache       repository.ListingCache
	)
	redisCfg := database.RedisConfig{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	}
	if redisCfg.Enabled() {
		redisClient, err = database.NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		cache = redis.NewListingCache(redisClient, cfg.ListingCacheTTL)
		healthHandler.RegisterNonCritical("redis", database.RedisPing(redisClient))
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("listing cache disabled")
	}

	// Optional Kafka producer.
	var (
		producer *pkgkafka.Producer
		events   service.EventPublisher
	)
	if len(cfg.KafkaBrokers) > 0 {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewProducer(producer, logger)
		healthHandler.RegisterNonCritical("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("event publishing disabled")
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	businessRepo := upstream.NewBusinessRepository(gql)
	directoryService := service.NewDirectoryService(
		businessRepo,
		upstream.NewProductRepository(gql),
		upstream.NewJobRepository(gql),
		cache,
		cfg.PublicBaseURL,
		logger,
	)
	services := handler.Services{
		Directory: directoryService,
		Feedback:  service.NewFeedbackService(upstream.NewFeedbackRepository(gql), events, logger),
		Contact:   service.NewContactService(events, logger),
		Account:   service.NewAccountService(upstream.NewUserRepository(gql), jwtManager, logger),
		Sitemap:   service.NewSitemapService(directoryService, cfg.PublicBaseURL),
		Bulk:      service.NewBulkImportService(businessRepo, cache, events, logger),
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	routerCtx, stopRouter := context.WithCancel(context.Background())
	router := handler.NewRouter(routerCtx, services, jwtManager.Validator(), healthHandler, logger, handler.RouterConfig{
		ServiceName:       cfg.ServiceName,
		CORS:              corsCfg,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
		TrustedProxies:    cfg.TrustedProxies,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		redis:          redisClient,
		producer:       producer,
		httpServer:     httpServer,
		stopRouter:     stopRouter,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. Redis client
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests.
	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	a.stopRouter()

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 4. Close Redis client.
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

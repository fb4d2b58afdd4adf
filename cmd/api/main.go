package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/eliteproperties/realty-platform/cmd/mainconfig"
	"github.com/eliteproperties/realty-platform/internal/api/router"
	"github.com/eliteproperties/realty-platform/internal/assistant"
	"github.com/eliteproperties/realty-platform/internal/bookings"
	"github.com/eliteproperties/realty-platform/internal/brokers"
	"github.com/eliteproperties/realty-platform/internal/calendar"
	appconfig "github.com/eliteproperties/realty-platform/internal/config"
	"github.com/eliteproperties/realty-platform/internal/insights"
	"github.com/eliteproperties/realty-platform/internal/notify"
	"github.com/eliteproperties/realty-platform/internal/observability/metrics"
	"github.com/eliteproperties/realty-platform/internal/properties"
	"github.com/eliteproperties/realty-platform/internal/webchat"
	"github.com/eliteproperties/realty-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting realty-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	chatMetrics := metrics.NewChatMetrics(reg)
	bookingMetrics := metrics.NewBookingMetrics(reg)

	// Repositories: Postgres when configured, seeded in-memory otherwise.
	var (
		listingRepo  properties.Repository
		bookingRepo  bookings.Repository
		calendarRepo calendar.Repository
		pool         *pgxpool.Pool
	)
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		listingRepo = properties.NewPostgresRepository(pool)
		bookingRepo = bookings.NewPostgresRepository(pool)
		calendarRepo = calendar.NewPostgresRepository(pool)
		logger.Info("using postgres repositories")
	} else {
		listingRepo = properties.NewInMemoryRepository(properties.SeedListings())
		bookingRepo = bookings.NewInMemoryRepository()
		calendarRepo = calendar.NewInMemoryRepository()
		logger.Info("DATABASE_URL not set, using seeded in-memory repositories")
	}
	brokerRepo := brokers.NewInMemoryRepository(brokers.SeedBrokers())
	insightRepo := insights.NewInMemoryRepository(insights.SeedInsights())

	// Session store: Redis when configured, in-memory otherwise.
	var sessions assistant.SessionStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		sessions = assistant.NewRedisSessionStore(client, cfg.SessionTTL, nil)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessions = assistant.NewMemorySessionStore()
		logger.Info("REDIS_ADDR not set, using in-memory session store")
	}

	// Email confirmations
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		sender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(sender, logger)

	bookingService := bookings.NewService(bookingRepo, calendarRepo, notifier, cfg.BookingSlotDuration, logger,
		bookings.WithMetrics(bookingMetrics))

	matcher := assistant.NewMatcher(cfg.LuxuryPriceThreshold, cfg.LowBudgetCutoff, cfg.ShortlistSize)
	engine := assistant.NewEngine(listingRepo, brokerRepo, insightRepo, matcher, logger)
	chatService := assistant.NewChatService(engine, sessions, bookingService, logger,
		assistant.WithChatMetrics(chatMetrics))

	// Chat turns flow through a queue so the transport handlers stay thin.
	// Development uses the in-memory queue; production points at SQS.
	var chat assistant.Service
	var dispatcher *assistant.Orchestrator
	if !cfg.UseMemoryQueue && cfg.ChatQueueURL != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		queue := assistant.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.ChatQueueURL)
		dispatcher = assistant.NewOrchestrator(chatService, queue, logger,
			assistant.WithWorkerCount(cfg.WorkerCount))
		chat = dispatcher
		logger.Info("chat dispatch via SQS", "queue_url", cfg.ChatQueueURL)
	} else {
		dispatcher = assistant.NewOrchestrator(chatService, assistant.NewMemoryQueue(0), logger,
			assistant.WithWorkerCount(cfg.WorkerCount))
		chat = dispatcher
		logger.Info("chat dispatch via in-memory queue")
	}

	routerCfg := &router.Config{
		Logger:             logger,
		PropertiesHandler:  properties.NewHandler(listingRepo, logger),
		BrokersHandler:     brokers.NewHandler(brokerRepo, logger),
		InsightsHandler:    insights.NewHandler(insightRepo, logger),
		CalendarHandler:    calendar.NewHandler(calendarRepo, cfg.BookingSlotDuration, logger),
		BookingsHandler:    bookings.NewHandler(bookingService, bookingRepo, logger),
		ChatHandler:        webchat.NewHandler(chat, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if err := dispatcher.Shutdown(ctx); err != nil {
		logger.Error("dispatcher forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/application/service"
	"github.com/sangkips/bebidas-pos/internal/config"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/cache"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/events"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/observability"
	"github.com/sangkips/bebidas-pos/internal/pkg/logging"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/handler"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/middleware"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/routes"
	"github.com/sangkips/bebidas-pos/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logging.MustNewLogger(cfg.App.Name, cfg.App.Env, cfg.Log.Level, cfg.Log.File)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("driver", cfg.App.Storage), zap.Error(err))
	}
	defer func() { _ = repos.close() }()

	// Daily report cache
	var reports service.ReportCache = cache.Nop{}
	var redisPing handler.Pinger
	if rdb := cache.NewRedisClient(&cfg.Redis); rdb != nil {
		reportCache := cache.NewReportCache(rdb, cfg.Redis.ReportTTL)
		reports = reportCache
		redisPing = handler.PingFunc(reportCache.Ping)
		defer func() { _ = rdb.Close() }()
		log.Info("report cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Domain events
	var publisher event.Publisher = events.NewLogPublisher(log)
	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(&cfg.Kafka, cfg.App.Name, log)
		producer.Start(ctx)
		publisher = producer
		log.Info("publishing events to kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry, "bebidas")

	rt := service.Runtime{
		Log:      log,
		Metrics:  metrics,
		Events:   publisher,
		Reports:  reports,
		Location: cfg.App.Location(),
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Options{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter, _ = printer.New(printer.Options{Type: printer.TypeNone})
	}
	defer func() { _ = thermalPrinter.Close() }()

	// Initialize services
	productService := service.NewProductService(repos.products)
	customerService := service.NewCustomerService(repos.customers)
	supplierService := service.NewSupplierService(repos.suppliers)
	settingsService := service.NewSettingsService(repos.settings)
	orderService := service.NewOrderService(repos.tx, repos.orders, repos.products, repos.customers, repos.ledger, repos.fiado, rt)
	sessionService := service.NewCashSessionService(repos.tx, repos.sessions, repos.reports, rt)
	reportService := service.NewReportService(repos.reports, repos.sessions, rt)
	fiadoService := service.NewFiadoService(repos.tx, repos.fiado, repos.orders, repos.customers, repos.ledger, rt)
	invoiceService := service.NewInvoiceService(repos.tx, repos.invoices, repos.products, repos.suppliers, repos.ledger, rt)
	ledgerService := service.NewLedgerService(repos.ledger, rt)
	dashboardService := service.NewDashboardService(reportService, repos.reports, repos.products, repos.fiado, repos.ledger, repos.sessions, rt)
	printerService := service.NewPrinterService(thermalPrinter, repos.orders, settingsService, cfg.Printer.Type, cfg.Printer.Width, rt)

	loc := cfg.App.Location()
	handlers := &routes.Handlers{
		Health: handler.NewHealthHandler(cfg.App.Storage, map[string]handler.Pinger{
			"database": handler.PingFunc(repos.ping),
			"redis":    redisPing,
		}),
		Product:     handler.NewProductHandler(productService),
		Order:       handler.NewOrderHandler(orderService, printerService, loc),
		CashSession: handler.NewCashSessionHandler(sessionService),
		Report:      handler.NewReportHandler(reportService),
		Fiado:       handler.NewFiadoHandler(fiadoService, loc),
		Customer:    handler.NewCustomerHandler(customerService),
		Supplier:    handler.NewSupplierHandler(supplierService),
		Invoice:     handler.NewInvoiceHandler(invoiceService, loc),
		Ledger:      handler.NewLedgerHandler(ledgerService, loc),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Settings:    handler.NewSettingsHandler(settingsService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFor(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))
	defer rateLimiter.Stop()

	go middleware.PurgeIdempotencyKeys(ctx, repos.idempotency, time.Hour, log)

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Log:             log,
		Metrics:         metrics,
		Gatherer:        registry,
		IdempotencyRepo: repos.idempotency,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("storage", cfg.App.Storage),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/coffee-passport/internal/api/http"
	"github.com/spec-kit/coffee-passport/internal/api/http/handlers"
	"github.com/spec-kit/coffee-passport/internal/auth"
	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/events"
	"github.com/spec-kit/coffee-passport/internal/gateway"
	"github.com/spec-kit/coffee-passport/internal/observability"
	"github.com/spec-kit/coffee-passport/internal/persistence"
	"github.com/spec-kit/coffee-passport/internal/repository"
	"github.com/spec-kit/coffee-passport/internal/service"
	"github.com/spec-kit/coffee-passport/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	passportService := service.NewPassportService(service.PassportDependencies{
		CustomerRepo: customerRepo,
		StaffRepo:    staffRepo,
		AuditRepo:    auditRepo,
		Authorizer:   service.NewStaffAuthorizer(staffRepo, cfg.Loyalty),
		Guard:        service.NewStampGuard(redis, cfg.Loyalty.StampWindow()),
		Dispatcher:   dispatcher,
		Metrics:      metrics,
	}, cfg.Loyalty, logger)

	customerService := service.NewCustomerService(customerRepo)
	staffService := service.NewStaffService(staffRepo)
	statsService := service.NewStatsService(customerRepo, auditRepo, cfg.Loyalty)
	authService := service.NewAuthService(cfg.Auth)
	gatewayClient := gateway.NewClient(cfg.Notification)
	notificationService := service.NewNotificationService(dispatcher, gatewayClient, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Messages:       handlers.NewMessagesHandler(passportService, gatewayClient),
		Customers:      handlers.NewCustomersHandler(customerService),
		Staff:          handlers.NewStaffHandler(staffService),
		Analytics:      handlers.NewAnalyticsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/avinashingale116-sys/mydeal/internal/advisor"
	httptransport "github.com/avinashingale116-sys/mydeal/internal/api/http"
	"github.com/avinashingale116-sys/mydeal/internal/api/http/handlers"
	"github.com/avinashingale116-sys/mydeal/internal/auth"
	"github.com/avinashingale116-sys/mydeal/internal/config"
	"github.com/avinashingale116-sys/mydeal/internal/events"
	"github.com/avinashingale116-sys/mydeal/internal/observability"
	"github.com/avinashingale116-sys/mydeal/internal/persistence"
	"github.com/avinashingale116-sys/mydeal/internal/repository"
	"github.com/avinashingale116-sys/mydeal/internal/resolver"
	"github.com/avinashingale116-sys/mydeal/internal/service"
	"github.com/avinashingale116-sys/mydeal/internal/store"
	"github.com/avinashingale116-sys/mydeal/internal/worker"
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

	var (
		userRepo         repository.UserRepository
		requirementRepo  repository.RequirementRepository
		notificationRepo repository.NotificationRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		requirementRepo = repository.NewRequirementRepository(pool)
		notificationRepo = repository.NewNotificationRepository(pool)
	} else {
		marketStore := store.NewMarketStore()
		userRepo = marketStore.Users()
		requirementRepo = marketStore.Requirements()
		notificationRepo = store.NewNotificationStore()
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	identityService := service.NewIdentityService(cfg.Auth, userRepo)
	marketService := service.NewMarketService(service.MarketDependencies{
		RequirementRepo: requirementRepo,
		Dispatcher:      dispatcher,
	})
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	resolverClient := resolver.NewClient(cfg.Resolver, redis, logger)
	advisorClient := advisor.NewClient(cfg.Advisor)

	authMiddleware := auth.NewAuthMiddleware(identityService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Sessions:       handlers.NewSessionHandler(identityService),
		Requirements:   handlers.NewRequirementsHandler(marketService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Assist:         handlers.NewAssistHandler(resolverClient, advisorClient),
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

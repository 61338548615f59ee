package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/nexa-sys/internal/api/http"
	"github.com/spec-kit/nexa-sys/internal/api/http/handlers"
	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/observability"
	"github.com/spec-kit/nexa-sys/internal/persistence"
	"github.com/spec-kit/nexa-sys/internal/repository"
	"github.com/spec-kit/nexa-sys/internal/repository/memory"
	"github.com/spec-kit/nexa-sys/internal/service"
	"github.com/spec-kit/nexa-sys/internal/worker"
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

	pg, repos, storage := openStorage(ctx, cfg, logger)
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	if cfg.Auth.SeedDefaultUsers {
		seeder := service.NewSeeder(repos, cfg.Auth, logger)
		if _, err := seeder.SeedUsers(ctx); err != nil {
			logger.Fatal("failed to seed users", zap.Error(err))
		}
		if storage == "memory" {
			if err := seeder.SeedSamples(ctx); err != nil {
				logger.Fatal("failed to seed sample data", zap.Error(err))
			}
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	policies := auth.DefaultPolicies()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: repos.Users, Metrics: metrics})
	userService := service.NewUserService(*cfg, service.UserDependencies{UserRepo: repos.Users, Policies: policies})
	clientService := service.NewClientService(repos.Clients, policies)
	fieldService := service.NewFieldService(repos.Fields)
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: repos.Projects,
		ClientRepo:  repos.Clients,
		TaskRepo:    repos.Tasks,
		UserRepo:    repos.Users,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:    repos.Tasks,
		ProjectRepo: repos.Projects,
		UserRepo:    repos.Users,
		Policies:    policies,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		ClientRepo: repos.Clients,
		TaskRepo:   repos.Tasks,
		Cache:      redis.Handle(),
		TTL:        cfg.Dashboard.CacheTTL(),
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification)
	worker.StartNotificationWorker(notificationService, dispatcher, dashboardService)

	guard := auth.NewGuard(authService.TokenManager(), policies)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		App:       cfg.App,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
		Metrics:   metrics,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, storage, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:         handlers.NewAuthHandler(authService),
		Users:        handlers.NewUsersHandler(userService),
		Clients:      handlers.NewClientsHandler(clientService, fieldService),
		Projects:     handlers.NewProjectsHandler(projectService, taskService, fieldService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService),
		Guard:        guard,
		LoginLimiter: httptransport.NewLoginLimiter(redis.Handle(), cfg.RateLimit, metrics, logger),
		Metrics:      metrics,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("storage", storage))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// openStorage selects the repository backend. Without a DSN, or when Postgres
// is unreachable and fallback is enabled, repositories live in memory.
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*persistence.Postgres, repository.Repositories, string) {
	if cfg.Postgres.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; using in-memory storage")
		return nil, memory.NewRepositories(), "memory"
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		if !cfg.Postgres.FallbackToMemory {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		logger.Warn("postgres unavailable; using in-memory storage", zap.Error(err))
		return nil, memory.NewRepositories(), "memory"
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	return pg, repository.NewPostgresRepositories(pg.PoolHandle()), "postgres"
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

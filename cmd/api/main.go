package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/spec-kit/laundry-service/internal/api/http"
	"github.com/spec-kit/laundry-service/internal/api/http/handlers"
	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/cache"
	"github.com/spec-kit/laundry-service/internal/config"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/observability"
	"github.com/spec-kit/laundry-service/internal/persistence"
	"github.com/spec-kit/laundry-service/internal/repository"
	"github.com/spec-kit/laundry-service/internal/repository/memory"
	"github.com/spec-kit/laundry-service/internal/service"
	"github.com/spec-kit/laundry-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

type repositories struct {
	users      repository.UserRepository
	orders     repository.OrderRepository
	complaints repository.ComplaintRepository
	history    repository.OrderHistoryRepository
}

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	repos := buildRepositories(pg)
	metrics := observability.NewMetrics()
	dashboards := cache.NewRedisDashboardCache(redis.Client, cfg.Redis.DashboardTTL())

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartEventSubscribers(service.NewEventSubscribers(dispatcher, dashboards, metrics, logger).WithUsers(repos.users), logger)

	policy := service.NewTransitionPolicy(cfg.Lifecycle.StrictTransitions)
	if policy.Strict() {
		logger.Info("strict status transitions enabled")
	}

	tokens := auth.NewTokenManager(cfg.Auth)
	identitySvc := service.NewIdentityService(service.IdentityDependencies{
		UserRepo:    repos.users,
		EmailDomain: cfg.Identity.EmailDomain,
		BcryptCost:  cfg.Auth.BcryptCost,
	})
	authSvc := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: repos.users,
		Tokens:   tokens,
	})
	orderSvc := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   repos.orders,
		UserRepo:    repos.users,
		HistoryRepo: repos.history,
		Dispatcher:  dispatcher,
		Policy:      policy,
		Logger:      logger,
	})
	complaintSvc := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: repos.complaints,
		UserRepo:      repos.users,
		Dispatcher:    dispatcher,
		Policy:        policy,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardDependencies{
		OrderRepo: repos.orders,
		UserRepo:  repos.users,
		Cache:     dashboards,
		Metrics:   metrics,
		Logger:    logger,
	})

	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:               handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics:              adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})),
		Users:                handlers.NewUsersHandler(identitySvc, authSvc),
		DepartmentAuth:       handlers.NewDepartmentAuthHandler(authSvc),
		Laundry:              handlers.NewLaundryHandler(orderSvc, dashboardSvc),
		DepartmentLaundry:    handlers.NewDepartmentLaundryHandler(orderSvc),
		Complaints:           handlers.NewComplaintsHandler(complaintSvc),
		DepartmentComplaints: handlers.NewDepartmentComplaintsHandler(complaintSvc),
		AuthMiddleware:       auth.NewAuthMiddleware(tokens),
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting laundry service", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("fiber shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("service terminated with error", zap.Error(err))
	}
}

func buildRepositories(pg *persistence.Postgres) repositories {
	if !pg.Enabled() {
		return repositories{
			users:      memory.NewUserStore(),
			orders:     memory.NewOrderStore(),
			complaints: memory.NewComplaintStore(),
			history:    memory.NewOrderHistoryStore(),
		}
	}
	pool := pg.PoolHandle()
	return repositories{
		users:      repository.NewUserRepository(pool),
		orders:     repository.NewOrderRepository(pool),
		complaints: repository.NewComplaintRepository(pool),
		history:    repository.NewOrderHistoryRepository(pool),
	}
}

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

	"github.com/queueshq/queues-service/internal/api/http/handlers"
	"github.com/queueshq/queues-service/internal/auth"
	"github.com/queueshq/queues-service/internal/cache"
	"github.com/queueshq/queues-service/internal/config"
	"github.com/queueshq/queues-service/internal/events"
	"github.com/queueshq/queues-service/internal/observability"
	"github.com/queueshq/queues-service/internal/persistence"
	"github.com/queueshq/queues-service/internal/repository"
	"github.com/queueshq/queues-service/internal/service"
	"github.com/queueshq/queues-service/internal/worker"

	httpapi "github.com/queueshq/queues-service/internal/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations && postgres.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := postgres.PoolHandle()
	agentRepo := repository.NewAgentRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)
	priorityRepo := repository.NewPriorityRepository(pool)
	organizationRepo := repository.NewOrganizationRepository(pool)
	helpTopicRepo := repository.NewHelpTopicRepository(pool)
	kbRepo := repository.NewKnowledgebaseRepository(pool)
	cannedRepo := repository.NewCannedResponseRepository(pool)
	customFieldRepo := repository.NewCustomFieldRepository(pool)
	reportCategoryRepo := repository.NewReportCategoryRepository(pool)

	counts := cache.NewTicketCounts(cache.NewRedisStore(redis.Client), cfg.Cache.CountsTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	identityService := service.NewIdentityService(agentRepo, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		Identity:    identityService,
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		HistoryRepo: historyRepo,
		AgentRepo:   agentRepo,
		Counts:      counts,
		Dispatcher:  dispatcher,
	})
	taxonomyService := service.NewTaxonomyService(service.TaxonomyDependencies{
		CategoryRepo:       categoryRepo,
		StatusRepo:         statusRepo,
		PriorityRepo:       priorityRepo,
		HelpTopicRepo:      helpTopicRepo,
		CustomFieldRepo:    customFieldRepo,
		ReportCategoryRepo: reportCategoryRepo,
		Counts:             counts,
	})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		OrganizationRepo: organizationRepo,
		AgentRepo:        agentRepo,
		UserRepo:         userRepo,
	})
	kbService := service.NewKnowledgebaseService(kbRepo, cannedRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokens)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
		ErrorHandler: httpapi.ErrorHandler(logger, metrics),
	})
	httpapi.RegisterMiddlewares(app, logger, metrics)
	httpapi.RegisterRoutes(app, httpapi.RouteConfig{
		Auth:      authMiddleware,
		Health:    handlers.NewHealthHandler(postgres, redis, metrics, cfg.App.Version),
		Tickets:   handlers.NewTicketsHandler(ticketService, logger),
		Taxonomy:  handlers.NewTaxonomyHandler(taxonomyService, logger),
		Directory: handlers.NewDirectoryHandler(directoryService, logger),
		KB:        handlers.NewKnowledgebaseHandler(kbService, logger),
	})

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

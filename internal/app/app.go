// Package app 組裝連線、service 與 HTTP server，並管理它們的生命週期
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"event-platform/config"
	"event-platform/internal/auth"
	"event-platform/internal/database"
	"event-platform/internal/handler"
	"event-platform/internal/metrics"
	"event-platform/internal/queue"
	"event-platform/internal/repository"
	"event-platform/internal/service"
	"event-platform/internal/worker"
	"event-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dbStatsInterval = 15 * time.Second

type App struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	rdb      *redis.Client
	services handler.Services
	worker   worker.ActivityWorker
	router   *gin.Engine
	log      *zap.Logger
}

// Options 啟動時的額外行為
type Options struct {
	Migrate bool
}

func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	log := logger.WithComponent("app")
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.Warn("invalid log level, keep default", zap.String("level", cfg.Log.Level))
	}
	gin.SetMode(cfg.Server.Mode)
	metrics.Init()

	if opts.Migrate {
		if err := database.MigrateUp(cfg.Database.URL()); err != nil {
			return nil, err
		}
		log.Info("migrations applied")
	}

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{cfg: cfg, pool: pool, log: log}

	activities, err := a.newQueue(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.services = NewServices(cfg, pool, activities)
	a.worker = worker.NewActivityWorker(repository.NewActivityRepository(pool), activities)
	a.router = handler.NewRouter(a.services, handler.RouterOptions{
		Tokens:         newTokenManager(cfg),
		DB:             pool,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
	})
	return a, nil
}

// NewServices 以同一組 repository 建立所有 service，queue 可為 nil
func NewServices(cfg *config.Config, pool *pgxpool.Pool, activities queue.ActivityQueue) handler.Services {
	tx := database.NewTransactor(pool)
	users := repository.NewUserRepository(pool)
	events := repository.NewEventRepository(pool)
	tickets := repository.NewTicketRepository(pool)

	userService := service.NewUserService(tx, users, events, tickets,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost), activities, nil)

	return handler.Services{
		Users:      userService,
		Auth:       service.NewAuthService(userService, newTokenManager(cfg)),
		Events:     service.NewEventService(tx, events, users, activities, nil),
		Tickets:    service.NewTicketService(tx, tickets, events, activities, nil),
		Activities: service.NewActivityService(repository.NewActivityRepository(pool), users),
	}
}

func newTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
}

func (a *App) newQueue(ctx context.Context) (queue.ActivityQueue, error) {
	if a.cfg.Queue.Backend != "redis" {
		return queue.NewMemoryActivityQueue(a.cfg.Queue.BufferSize, nil), nil
	}

	rdb, err := database.InitRedis(ctx, &a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	a.rdb = rdb

	q, err := queue.NewRedisStreamActivityQueue(ctx, rdb, a.cfg.Queue.ConsumerID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize activity queue: %w", err)
	}
	return q, nil
}

func (a *App) Services() handler.Services {
	return a.services
}

func (a *App) Handler() http.Handler {
	return a.router
}

// Run 啟動 HTTP server、活動 worker 與連線池統計，ctx 結束後依序關閉
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return a.worker.Run(gctx)
	})

	g.Go(func() error {
		return metrics.NewDBCollector(a.pool).Start(gctx, dbStatsInterval)
	})

	return g.Wait()
}

func (a *App) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn("close redis failed", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	logger.Sync()
}

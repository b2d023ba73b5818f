package main

import (
	"context"
	"fmt"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/gotodo/backend/api/handler"
	"github.com/gotodo/backend/internal/config"
	boltInfra "github.com/gotodo/backend/internal/infrastructure/bolt"
	"github.com/gotodo/backend/internal/infrastructure/monitor"
	pgInfra "github.com/gotodo/backend/internal/infrastructure/postgres"
	redisInfra "github.com/gotodo/backend/internal/infrastructure/redis"
	"github.com/gotodo/backend/internal/router"
	"github.com/gotodo/backend/internal/services/lifecycle"
	"github.com/gotodo/backend/pkg/httpcontext"
	"github.com/gotodo/backend/pkg/logger"
	"github.com/gotodo/backend/repository"
	boltRepo "github.com/gotodo/backend/repository/bolt"
	memoryRepo "github.com/gotodo/backend/repository/memory"
	pgRepo "github.com/gotodo/backend/repository/postgres"
	redisRepo "github.com/gotodo/backend/repository/redis"
	todoUC "github.com/gotodo/backend/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	todoRepo, storePing, err := buildStore(appCtx, cfg, manager, zapLogger)
	if err != nil {
		zapLogger.Fatal("store setup failed", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}

	mon := monitor.New(cfg.Store.Driver, storePing, cfg.Store.CheckInterval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	todoUseCase := todoUC.New(todoRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Home:   apiHandler.NewHomeHandler(ctxAdapter, zapLogger),
		Todo:   apiHandler.NewTodoHandler(todoUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("store_driver", cfg.Store.Driver),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}

// buildStore constructs the repository for the configured driver and
// registers its shutdown hook. The returned ping function probes the
// backing client for the health monitor.
func buildStore(ctx context.Context, cfg *config.Config, manager *lifecycle.Manager, zapLogger *zap.Logger) (repository.TodoRepository, monitor.PingFunc, error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		client, err := redisInfra.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		manager.Register("redis", func(ctx context.Context) error {
			return client.Close()
		})
		return redisRepo.NewTodoRepository(client), func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}, nil

	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			return nil, nil, err
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
		if err != nil {
			return nil, nil, err
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		return pgRepo.NewTodoRepository(pool), func(ctx context.Context) error {
			return pool.Ping(ctx)
		}, nil

	case config.DriverBolt:
		db, err := boltInfra.Open(cfg.Bolt.Path, boltRepo.Bucket)
		if err != nil {
			return nil, nil, err
		}
		manager.Register("bolt", func(ctx context.Context) error {
			return db.Close()
		})
		return boltRepo.NewTodoRepository(db), func(ctx context.Context) error {
			// bbolt is in-process; reachable as long as the handle is open.
			return nil
		}, nil

	case config.DriverMemory:
		return memoryRepo.NewTodoRepository(), func(ctx context.Context) error {
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

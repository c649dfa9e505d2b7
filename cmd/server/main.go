package main

import (
	"context"
	"fmt"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/clanwatch/backend/api/handler"
	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/internal/config"
	"github.com/clanwatch/backend/internal/infrastructure/monitor"
	pgInfra "github.com/clanwatch/backend/internal/infrastructure/postgres"
	redisInfra "github.com/clanwatch/backend/internal/infrastructure/redis"
	"github.com/clanwatch/backend/internal/router"
	"github.com/clanwatch/backend/internal/services"
	"github.com/clanwatch/backend/internal/services/lifecycle"
	"github.com/clanwatch/backend/pkg/httpcontext"
	"github.com/clanwatch/backend/pkg/logger"
	boltStore "github.com/clanwatch/backend/storage/bolt"
	fileStore "github.com/clanwatch/backend/storage/file"
	objectStore "github.com/clanwatch/backend/storage/object"
	pgStore "github.com/clanwatch/backend/storage/postgres"
	redisStore "github.com/clanwatch/backend/storage/redis"
	"github.com/clanwatch/backend/storage/replicated"
	statsUC "github.com/clanwatch/backend/usecase/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	replicas, err := buildReplicas(appCtx, cfg, zapLogger, manager)
	if err != nil {
		zapLogger.Fatal("storage backend setup failed", zap.Error(err))
	}

	names := make([]string, 0, len(replicas))
	for _, replica := range replicas {
		names = append(names, replica.Name)
	}
	mon := monitor.New(zapLogger, names...)

	backend, err := replicated.New(zapLogger, mon, replicas...)
	if err != nil {
		zapLogger.Fatal("replicated backend setup failed", zap.Error(err))
	}

	clanTags := make([]domain.ClanTag, 0, len(cfg.Clans.Tags))
	for _, raw := range cfg.Clans.Tags {
		tag, err := domain.ParseClanTag(raw)
		if err != nil {
			zapLogger.Fatal("invalid clan tag in configuration", zap.String("tag", raw), zap.Error(err))
		}
		clanTags = append(clanTags, tag)
	}

	stats := statsUC.New(backend, zapLogger)

	bootstrapCtx, bootstrapCancel := context.WithTimeout(appCtx, cfg.Snapshot.Timeout)
	defer bootstrapCancel()
	if err := stats.Bootstrap(bootstrapCtx, clanTags); err != nil {
		zapLogger.Fatal("bootstrap failed", zap.Error(err))
	}

	// Registered before the scheduler so the reverse-order shutdown runs
	// one last save after the scheduler stopped.
	manager.Register("final_snapshot", func(ctx context.Context) error {
		return stats.Save(ctx)
	})

	snapshots := services.NewSnapshotService(stats, zapLogger, services.SnapshotConfig{
		Interval: cfg.Snapshot.Interval,
		Timeout:  cfg.Snapshot.Timeout,
	})
	snapshots.Start()
	manager.Register("snapshot_service", func(ctx context.Context) error {
		snapshots.Stop(ctx)
		return nil
	})

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Clan:   apiHandler.NewClanHandler(stats, ctxAdapter, zapLogger),
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
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
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

// buildReplicas instantiates the configured storage adapters in priority
// order and registers their shutdown hooks.
func buildReplicas(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger, manager *lifecycle.Manager) ([]replicated.Replica, error) {
	var replicas []replicated.Replica

	for _, name := range cfg.Storage.Backends {
		switch name {
		case "file":
			replicas = append(replicas, replicated.Replica{
				Name:    "file",
				Backend: fileStore.New(cfg.Storage.File.Path),
			})

		case "bolt":
			db, err := boltStore.Open(cfg.Storage.Bolt.Path, cfg.Storage.Bolt.Bucket)
			if err != nil {
				return nil, fmt.Errorf("opening bolt store: %w", err)
			}
			manager.Register("bolt", func(ctx context.Context) error {
				return db.Close()
			})
			replicas = append(replicas, replicated.Replica{Name: "bolt", Backend: db})

		case "redis":
			client, err := redisInfra.NewClient(cfg.Storage.Redis)
			if err != nil {
				return nil, fmt.Errorf("connecting to redis: %w", err)
			}
			manager.Register("redis", func(ctx context.Context) error {
				return client.Close()
			})
			replicas = append(replicas, replicated.Replica{
				Name:    "redis",
				Backend: redisStore.New(client, cfg.Storage.Redis.Key),
			})

		case "postgres":
			if err := pgInfra.RunMigrations(cfg.Storage.Postgres, zapLogger); err != nil {
				return nil, fmt.Errorf("running migrations: %w", err)
			}
			pool, err := pgInfra.NewPool(ctx, cfg.Storage.Postgres, zapLogger)
			if err != nil {
				return nil, fmt.Errorf("connecting to postgres: %w", err)
			}
			manager.Register("postgres", func(ctx context.Context) error {
				pool.Close()
				return nil
			})
			replicas = append(replicas, replicated.Replica{
				Name:    "postgres",
				Backend: pgStore.New(pool),
			})

		case "object":
			client, err := minio.New(cfg.Storage.Object.Endpoint, &minio.Options{
				Creds:  credentials.NewStaticV4(cfg.Storage.Object.AccessKey, cfg.Storage.Object.SecretKey, ""),
				Secure: cfg.Storage.Object.UseSSL,
				Region: cfg.Storage.Object.Region,
			})
			if err != nil {
				return nil, fmt.Errorf("creating object store client: %w", err)
			}
			replicas = append(replicas, replicated.Replica{
				Name:    "object",
				Backend: objectStore.New(client, cfg.Storage.Object.Bucket, cfg.Storage.Object.Key),
			})

		default:
			return nil, fmt.Errorf("unknown storage backend %q", name)
		}
	}

	return replicas, nil
}

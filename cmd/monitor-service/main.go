package main

import (
	health_prober "GameHub_Monitor/internal/health-prober"
	"GameHub_Monitor/internal/monitor-service/api/handler"
	"GameHub_Monitor/internal/monitor-service/api/routes"
	"GameHub_Monitor/internal/monitor-service/config"
	"GameHub_Monitor/internal/monitor-service/registry"
	"GameHub_Monitor/internal/monitor-service/repository"
	"GameHub_Monitor/internal/monitor-service/repository/memstore"
	"GameHub_Monitor/internal/monitor-service/service"
	"GameHub_Monitor/migrations"
	"GameHub_Monitor/pkg/infra"
	"GameHub_Monitor/pkg/logger"
	"GameHub_Monitor/pkg/middleware"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	appConfig, err := config.LoadConfig("./.env")
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}

	// set up logger
	fileSyncer, err := logger.NewReopenableWriteSyncer(appConfig.Server.LogFile)
	if err != nil {
		log.Fatal(fmt.Sprintf("open log file error: %v", err))
	}
	zapLogger := logger.NewLogger(appConfig.Server.LogLevel, fileSyncer).With(zap.String("service.name", "monitor-service"))
	defer zapLogger.Sync()
	stopReload := logger.ReloadOnSIGHUP(fileSyncer, zapLogger)
	defer stopReload()

	// set up storage
	var (
		uow        repository.UnitOfWork
		repos      repository.Repositories
		serverRepo repository.ServerRepository
		locks      repository.SyncLockRepository
		eventIndex repository.EventIndexRepository
		cache      repository.ServerCache
	)
	switch appConfig.Server.StorageDriver {
	case config.StorageDriverMemory:
		store := memstore.New()
		uow = store
		repos = store.Repositories()
		serverRepo = repos.Servers
		locks = store
		zapLogger.Warn("using in-memory storage, data is lost on restart")
	case config.StorageDriverPostgres:
		db, e := infra.NewPostgresConnection(infra.PostgresConfig{
			Host:         appConfig.Postgres.Host,
			Port:         appConfig.Postgres.Port,
			User:         appConfig.Postgres.User,
			Password:     appConfig.Postgres.Password,
			DBName:       appConfig.Postgres.DBName,
			MaxOpenConns: appConfig.Postgres.MaxOpenConns,
		})
		if e != nil {
			zapLogger.Fatal("failed to connect to postgres", zap.Error(e))
		} else {
			zapLogger.Info("connected to postgres successfully")
		}
		sqlDB, e := db.DB()
		if e != nil {
			zapLogger.Fatal("failed to get sql.DB from gorm:", zap.Error(e))
		}
		defer sqlDB.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		applied, e := infra.ApplyMigrations(ctx, db, migrations.Files)
		cancel()
		if e != nil {
			zapLogger.Fatal("failed to apply migrations", zap.Error(e))
		}
		zapLogger.Info("applied migrations", zap.Strings("files", applied))

		uow = repository.NewUnitOfWork(db)
		repos = repository.NewRepositories(db)
		serverRepo = repos.Servers
		locks = memstore.New()

		if appConfig.Redis.Host != "" {
			redisClient, e := infra.NewRedisConnection(infra.RedisConfig{
				Host:     appConfig.Redis.Host,
				Port:     appConfig.Redis.Port,
				Password: appConfig.Redis.Password,
				DB:       appConfig.Redis.DB,
			})
			if e != nil {
				zapLogger.Fatal("failed to connect to redis", zap.Error(e))
			} else {
				zapLogger.Info("connected to redis successfully")
			}
			defer redisClient.Close()
			serverRepo = repository.NewCachedServerRepository(redisClient, repos.Servers, appConfig.Server.CacheTTL)
			repos.Servers = serverRepo
			cache = repository.NewServerCache(redisClient)
			locks = repository.NewSyncLockRepository(redisClient)
		}
	default:
		zapLogger.Fatal("unknown storage driver", zap.String("driver", appConfig.Server.StorageDriver))
	}

	// set up elasticsearch
	if len(appConfig.Elasticsearch.Addresses) > 0 {
		esClient, e := infra.NewElasticSearchConnection(infra.ElasticsearchConfig{
			Addresses: appConfig.Elasticsearch.Addresses,
		})
		if e != nil {
			zapLogger.Fatal("failed to connect to elasticsearch", zap.Error(e))
		} else {
			zapLogger.Info("connected to elasticsearch successfully")
		}
		index := repository.NewEventIndexRepository(esClient)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		e = index.EnsureIndex(ctx)
		cancel()
		if e != nil {
			zapLogger.Fatal("failed to create health event index", zap.Error(e))
		}
		eventIndex = index
	}

	// set up registry
	source, err := registry.LoadFile(appConfig.Sync.RegistryFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			zapLogger.Fatal("failed to load registry file", zap.Error(err))
		}
		zapLogger.Warn("registry file not found, only request supplied entries can be synced", zap.String("path", appConfig.Sync.RegistryFile))
		source = registry.NewStaticSource(nil)
	}

	// set up dependencies
	ingestionService := service.NewIngestionService(uow, eventIndex, cache, service.IngestionConfig{
		AutoRegisterEnabled: appConfig.Ingestion.AutoRegisterEnabled,
		AutoRegisterAPIKey:  appConfig.Ingestion.AutoRegisterAPIKey,
	}, zapLogger)
	queryService := service.NewQueryService(repos, eventIndex)

	var publisher service.OutcomePublisher
	if appConfig.Sync.PublishOutcomes {
		if len(appConfig.Kafka.Brokers) > 0 {
			writer := infra.NewKafkaWriter(infra.KafkaConfig{
				Brokers: appConfig.Kafka.Brokers,
				Topic:   appConfig.Kafka.Topic,
			})
			defer writer.Close()
			publisher = service.NewKafkaOutcomePublisher(writer)
			zapLogger.Info("publishing probe outcomes to kafka", zap.String("topic", appConfig.Kafka.Topic))
		} else {
			publisher = service.NewIngestionOutcomePublisher(ingestionService)
		}
	}
	syncService := service.NewRegistrySyncService(serverRepo, locks, health_prober.NewProber(appConfig.Sync.ProbeTimeout), source, publisher, service.RegistrySyncConfig{
		ProbeConcurrency: appConfig.Sync.ProbeConcurrency,
		LockTTL:          appConfig.Sync.LockTTL,
	}, zapLogger)

	healthHandler := handler.NewHealthHandler(ingestionService, queryService, zapLogger)
	registryHandler := handler.NewRegistryHandler(syncService, appConfig.Sync.ActiveOnly, zapLogger)
	m := middleware.NewScopeMiddleware()

	// periodic registry sync
	cronJob := cron.New()
	if appConfig.Sync.Cron != "" {
		_, err = cronJob.AddFunc(appConfig.Sync.Cron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), appConfig.Sync.LockTTL)
			defer cancel()
			zapLogger.Debug("registry sync cronjob called")
			syncService.SyncAll(ctx, appConfig.Sync.ActiveOnly)
		})
		if err != nil {
			zapLogger.Fatal("failed to create cron job for registry sync", zap.Error(err))
		}
	}
	cronJob.Start()

	// Set up http server
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	routes.SetUpHealthRoutes(r, healthHandler, registryHandler, m)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Server.Port),
		Handler: r,
	}
	go func() {
		zapLogger.Info(fmt.Sprintf("starting server on %s", srv.Addr))
		if e := srv.ListenAndServe(); e != nil && !errors.Is(e, http.ErrServerClosed) {
			zapLogger.Fatal("failed to start server", zap.Error(e))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down server...")
	<-cronJob.Stop().Done()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown:", zap.Error(err))
	}
	zapLogger.Info("server exiting")
}

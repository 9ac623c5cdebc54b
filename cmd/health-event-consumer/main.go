package main

import (
	health_event_consumer "GameHub_Monitor/internal/health-event-consumer"
	"GameHub_Monitor/internal/monitor-service/repository"
	"GameHub_Monitor/internal/monitor-service/service"
	"GameHub_Monitor/pkg/infra"
	"GameHub_Monitor/pkg/logger"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	appConfig, err := health_event_consumer.LoadConfig("./.env")
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}

	// set up logger
	fileSyncer, err := logger.NewReopenableWriteSyncer(appConfig.Server.LogFile)
	if err != nil {
		log.Fatal(fmt.Sprintf("open log file error: %v", err))
	}
	zapLogger := logger.NewLogger(appConfig.Server.LogLevel, fileSyncer).With(zap.String("service.name", "health-event-consumer"))
	defer zapLogger.Sync()
	stopReload := logger.ReloadOnSIGHUP(fileSyncer, zapLogger)
	defer stopReload()

	//set up database
	db, err := infra.NewPostgresConnection(infra.PostgresConfig{
		Host:         appConfig.Postgres.Host,
		Port:         appConfig.Postgres.Port,
		User:         appConfig.Postgres.User,
		Password:     appConfig.Postgres.Password,
		DBName:       appConfig.Postgres.DBName,
		MaxOpenConns: appConfig.Postgres.MaxOpenConns,
	})
	if err != nil {
		zapLogger.Fatal("failed to connect to postgres", zap.Error(err))
	} else {
		zapLogger.Info("connected to postgres successfully")
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("failed to get sql.DB from gorm:", zap.Error(err))
	}
	defer sqlDB.Close()

	var eventIndex repository.EventIndexRepository
	if len(appConfig.Elasticsearch.Addresses) > 0 {
		esClient, e := infra.NewElasticSearchConnection(infra.ElasticsearchConfig{
			Addresses: appConfig.Elasticsearch.Addresses,
		})
		if e != nil {
			zapLogger.Fatal("failed to connect to elasticsearch", zap.Error(e))
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

	var cache repository.ServerCache
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
		cache = repository.NewServerCache(redisClient)
	}

	ingestionService := service.NewIngestionService(repository.NewUnitOfWork(db), eventIndex, cache, service.IngestionConfig{
		AutoRegisterEnabled: appConfig.Ingestion.AutoRegisterEnabled,
		AutoRegisterAPIKey:  appConfig.Ingestion.AutoRegisterAPIKey,
	}, zapLogger)

	consumers := make([]health_event_consumer.HealthEventConsumer, appConfig.Kafka.ConsumerCnt)
	for i := 0; i < appConfig.Kafka.ConsumerCnt; i++ {
		reader := infra.NewKafkaReader(infra.KafkaConfig{
			Brokers: appConfig.Kafka.Brokers,
			Topic:   appConfig.Kafka.Topic,
			GroupID: appConfig.Kafka.ConsumerGroupID,
		})
		consumers[i] = health_event_consumer.NewHealthEventConsumer(reader, ingestionService, appConfig.Ingestion.AutoRegisterAPIKey, zapLogger)
		consumers[i].Start()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("shutting down consumers...")
	for _, c := range consumers {
		c.Stop()
	}
	for _, c := range consumers {
		<-c.Done()
	}
	zapLogger.Info("consumer exiting")
}

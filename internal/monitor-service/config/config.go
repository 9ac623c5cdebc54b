package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type AppConfig struct {
	Server        ServerConfig
	Ingestion     IngestionConfig
	Sync          SyncConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Elasticsearch ElasticsearchConfig
}

type ServerConfig struct {
	Port          string        `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile       string        `envconfig:"LOG_FILE" default:"./log/monitor-service.log"`
	StorageDriver string        `envconfig:"STORAGE_DRIVER" default:"postgres"`
	CacheTTL      time.Duration `envconfig:"SERVER_CACHE_TTL" default:"5m"`
}

type IngestionConfig struct {
	AutoRegisterEnabled bool   `envconfig:"AUTO_REGISTER_ENABLED" default:"false"`
	AutoRegisterAPIKey  string `envconfig:"AUTO_REGISTER_API_KEY"`
}

type SyncConfig struct {
	RegistryFile     string        `envconfig:"REGISTRY_FILE" default:"./registry.yaml"`
	Cron             string        `envconfig:"SYNC_CRON" default:"*/1 * * * *"`
	ActiveOnly       bool          `envconfig:"SYNC_ACTIVE_ONLY" default:"true"`
	ProbeTimeout     time.Duration `envconfig:"PROBE_TIMEOUT" default:"2s"`
	ProbeConcurrency int           `envconfig:"SYNC_PROBE_CONCURRENCY" default:"32"`
	LockTTL          time.Duration `envconfig:"SYNC_LOCK_TTL" default:"5m"`
	PublishOutcomes  bool          `envconfig:"SYNC_PUBLISH_OUTCOMES" default:"true"`
}

// Postgres, Redis and Kafka are only required when the matching feature is in use,
// so nothing here is marked required.
type PostgresConfig struct {
	Host         string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port         int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User         string `envconfig:"POSTGRES_USER"`
	Password     string `envconfig:"POSTGRES_PASSWORD"`
	DBName       string `envconfig:"POSTGRES_DB"`
	MaxOpenConns int    `envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"0"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"HEALTH_EVENTS_TOPIC" default:"health-events"`
}

type ElasticsearchConfig struct {
	Addresses []string `envconfig:"ELASTICSEARCH_ADDRESSES"`
}

func LoadConfig(path string) (AppConfig, error) {
	_ = godotenv.Load(path)

	var cfg AppConfig
	err := envconfig.Process("", &cfg)
	return cfg, err
}

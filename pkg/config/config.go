package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Store     StoreConfig
	Catalog   CatalogConfig
	Lifecycle LifecycleConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// StoreConfig selects the persistence backend for queues, requests, ratings
// and collector aggregates.
type StoreConfig struct {
	Type string `envconfig:"STORE_TYPE" default:"memory"` // memory, sqlite, mysql, postgres, redis, mongo, firestore

	SQLitePath string `envconfig:"SQLITE_PATH" default:"./data/recyclemart.db"`

	MySQLHost     string `envconfig:"MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"MYSQL_NAME" default:"recyclemart"`
	MySQLUser     string `envconfig:"MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"MYSQL_PASS" default:""`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresName     string `envconfig:"POSTGRES_NAME" default:"recyclemart"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASS" default:""`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	RedisHost      string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort      int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"recyclemart"`

	// MongoDB batches use transactions and need a replica set.
	MongoURI        string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/?replicaSet=rs0"`
	MongoDatabase   string `envconfig:"MONGO_DATABASE" default:"recyclemart"`
	MongoCollection string `envconfig:"MONGO_COLLECTION" default:"collections"`

	FirebaseProject            string `envconfig:"FIREBASE_PROJECT_ID" default:""`
	FirebaseServiceAccountPath string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH" default:""`
	FirebaseServiceAccountJSON string `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON" default:""`
	FirestoreCollection        string `envconfig:"FIRESTORE_COLLECTION" default:"recyclemart_collections"`
}

type CatalogConfig struct {
	// Path overrides the embedded catalog when set.
	Path string `envconfig:"CATALOG_PATH" default:""`
}

type LifecycleConfig struct {
	CollectionLeadTime time.Duration `envconfig:"COLLECTION_LEAD_TIME" default:"24h"`
	FeedbackMaxLength  int           `envconfig:"FEEDBACK_MAX_LENGTH" default:"500"`
}

type RateLimitConfig struct {
	Enabled bool    `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	PerSec  float64 `envconfig:"RATE_LIMIT_PER_SEC" default:"2"`
	Burst   int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

type TelemetryConfig struct {
	TracingEnabled bool   `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName    string `envconfig:"SERVICE_NAME" default:"recyclemart"`
}

func (s *StoreConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.MySQLUser, s.MySQLPassword, s.MySQLHost, s.MySQLPort, s.MySQLName)
}

func (s *StoreConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		s.PostgresUser, s.PostgresPassword, s.PostgresHost, s.PostgresPort, s.PostgresName, s.PostgresSSLMode)
}

func (s *StoreConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", s.RedisHost, s.RedisPort)
}

func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Lifecycle.FeedbackMaxLength <= 0 {
		return nil, fmt.Errorf("FEEDBACK_MAX_LENGTH must be positive, got %d", cfg.Lifecycle.FeedbackMaxLength)
	}
	if cfg.Lifecycle.CollectionLeadTime < 0 {
		return nil, fmt.Errorf("COLLECTION_LEAD_TIME must not be negative, got %s", cfg.Lifecycle.CollectionLeadTime)
	}

	return &cfg, nil
}

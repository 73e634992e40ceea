package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Dataset   DatasetConfig
	Catalog   CatalogConfig
	Events    EventsConfig
	Keywords  KeywordsConfig
	LinkCheck LinkCheckConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	// MaxUploadBytes bounds resume uploads.
	MaxUploadBytes int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// Enabled reports whether enough settings exist to open a connection.
func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

const (
	DatasetSourceFile     = "file"
	DatasetSourceS3       = "s3"
	DatasetSourcePostgres = "postgres"

	CatalogSourceDefault  = "default"
	CatalogSourcePostgres = "postgres"
)

type DatasetConfig struct {
	Source string
	Path   string
	S3     S3Config
}

type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type CatalogConfig struct {
	Source string
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

// LinkCheckConfig schedules the catalog link check inside the server.
// An empty Schedule disables it.
type LinkCheckConfig struct {
	Schedule string
	Workers  int
	RPS      int
}

type KeywordsConfig struct {
	File string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optSeconds := func(key string, def time.Duration) time.Duration {
		return time.Duration(optInt(key, int(def/time.Second))) * time.Second
	}

	cfg.App = AppConfig{
		AppName:        req("APP_NAME"),
		Environment:    req("APP_ENV"),
		HTTPPort:       req("HTTP_PORT"),
		MaxUploadBytes: optInt("MAX_UPLOAD_BYTES", 5<<20),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optSeconds("REDIS_TTL", 600*time.Second),
	}

	cfg.Dataset = DatasetConfig{
		Source: strings.ToLower(optDefault("DATASET_SOURCE", DatasetSourceFile)),
		Path:   optDefault("DATASET_PATH", "data/career_dataset.csv"),
		S3: S3Config{
			Bucket:    opt("DATASET_S3_BUCKET"),
			Key:       opt("DATASET_S3_KEY"),
			Region:    optDefault("DATASET_S3_REGION", "auto"),
			Endpoint:  opt("DATASET_S3_ENDPOINT"),
			AccessKey: opt("DATASET_S3_ACCESS_KEY"),
			SecretKey: opt("DATASET_S3_SECRET_KEY"),
		},
	}
	switch cfg.Dataset.Source {
	case DatasetSourceFile:
	case DatasetSourceS3:
		if cfg.Dataset.S3.Bucket == "" {
			missing = append(missing, "DATASET_S3_BUCKET")
		}
		if cfg.Dataset.S3.Key == "" {
			missing = append(missing, "DATASET_S3_KEY")
		}
	case DatasetSourcePostgres:
		if !cfg.Database.Enabled() {
			missing = append(missing, "DB_HOST", "DB_NAME")
		}
	default:
		invalid = append(invalid, "DATASET_SOURCE")
	}

	cfg.Catalog = CatalogConfig{Source: strings.ToLower(optDefault("CATALOG_SOURCE", CatalogSourceDefault))}
	switch cfg.Catalog.Source {
	case CatalogSourceDefault:
	case CatalogSourcePostgres:
		if !cfg.Database.Enabled() {
			missing = append(missing, "DB_HOST", "DB_NAME")
		}
	default:
		invalid = append(invalid, "CATALOG_SOURCE")
	}

	cfg.Events = EventsConfig{
		AMQPURL:  opt("RABBITMQ_URL"),
		Exchange: optDefault("RABBITMQ_EXCHANGE", "career_model_events"),
	}

	cfg.Keywords = KeywordsConfig{File: opt("KEYWORDS_FILE")}

	cfg.LinkCheck = LinkCheckConfig{
		Schedule: opt("LINKCHECK_SCHEDULE"),
		Workers:  optInt("LINKCHECK_WORKERS", 4),
		RPS:      optInt("LINKCHECK_RPS", 2),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(dedupe(missing), ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(dedupe(invalid), ", "))
	}

	return cfg, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

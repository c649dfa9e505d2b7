package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the service.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Storage     StorageConfig
	Snapshot    SnapshotConfig
	Clans       ClansConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects and configures the snapshot backends. Backends
// lists the enabled adapters in priority order; more than one entry
// turns on the replicated wrapper.
type StorageConfig struct {
	Backends []string
	File     FileConfig
	Object   ObjectConfig
	Redis    RedisConfig
	Bolt     BoltConfig
	Postgres PostgresConfig
}

type FileConfig struct {
	Path string
}

type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	Key       string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	Key      string
}

type BoltConfig struct {
	Path   string
	Bucket string
}

type PostgresConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	Migrations      MigrationsConfig
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

type SnapshotConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// ClansConfig lists the clan tags registered at startup.
type ClansConfig struct {
	Tags []string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "clanwatch"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Storage: StorageConfig{
			Backends: getStrings("STORAGE_BACKENDS", []string{"file"}),
			File: FileConfig{
				Path: getString("FILE_STORAGE_PATH", "./data/storage.json"),
			},
			Object: ObjectConfig{
				Endpoint:  getString("S3_ENDPOINT", "s3.amazonaws.com"),
				AccessKey: os.Getenv("S3_ACCESS_KEY"),
				SecretKey: os.Getenv("S3_SECRET_KEY"),
				UseSSL:    getBool("S3_USE_SSL", true),
				Region:    getString("S3_REGION", "us-east-1"),
				Bucket:    getString("S3_BUCKET", "clanwatch"),
				Key:       getString("S3_KEY", "storage.json"),
			},
			Redis: RedisConfig{
				URL:      getString("REDIS_URL", "redis://localhost:6379"),
				Password: os.Getenv("REDIS_PASSWORD"),
				DB:       getInt("REDIS_DB", 0),
				Key:      getString("REDIS_SNAPSHOT_KEY", "clanwatch:snapshot"),
			},
			Bolt: BoltConfig{
				Path:   getString("BOLTDB_PATH", "./data/snapshots.db"),
				Bucket: getString("BOLTDB_BUCKET", "snapshots"),
			},
			Postgres: PostgresConfig{
				URL:             os.Getenv("DATABASE_URL"),
				Host:            getString("DB_HOST", "localhost"),
				Port:            getString("DB_PORT", "5432"),
				Name:            getString("DB_NAME", "clanwatch"),
				User:            getString("DB_USER", "clanwatch"),
				Password:        os.Getenv("DB_PASSWORD"),
				SSLMode:         getString("DB_SSLMODE", "disable"),
				MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
				MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
				MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
				Migrations: MigrationsConfig{
					Enabled: getBool("RUN_MIGRATIONS", true),
					Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
				},
			},
		},
		Snapshot: SnapshotConfig{
			Interval: getDuration("SNAPSHOT_INTERVAL", 5*time.Minute),
			Timeout:  getDuration("SNAPSHOT_TIMEOUT", 30*time.Second),
		},
		Clans: ClansConfig{
			Tags: getStrings("CLAN_TAGS", nil),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if cfg.Storage.Postgres.URL == "" {
		cfg.Storage.Postgres.URL = buildPostgresURL(cfg.Storage.Postgres)
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func buildPostgresURL(cfg PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getStrings(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

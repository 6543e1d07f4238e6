package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Queue     QueueConfig     `yaml:"queue"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	Mode            string        `yaml:"mode" validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     string `yaml:"port" validate:"required,numeric"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname" validate:"required"`
	SSLMode  string `yaml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" validate:"required,min=16"`
	TokenTTL   time.Duration `yaml:"token_ttl" validate:"gt=0"`
	Issuer     string        `yaml:"issuer"`
	BcryptCost int           `yaml:"bcrypt_cost" validate:"min=4,max=31"`
}

type QueueConfig struct {
	// memory 或 redis
	Backend    string `yaml:"backend" validate:"oneof=memory redis"`
	BufferSize int    `yaml:"buffer_size" validate:"min=1"`
	ConsumerID string `yaml:"consumer_id"`
}

type RateLimitConfig struct {
	// 0 表示不限制
	LoginPerMinute int `yaml:"login_per_minute" validate:"min=0"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

var AppConfig *Config

// LoadConfig 讀取設定：預設值 -> YAML 檔（path 非空時） -> 環境變數，最後做驗證
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = cfg
	return cfg, nil
}

func LoadTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Server.Mode = "test"
	cfg.Database = DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}
	cfg.Redis = RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}
	cfg.Auth.JWTSecret = "test-secret-key-for-event-platform"
	cfg.Auth.BcryptCost = 4
	return cfg
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// URL 給 golang-migrate 使用的連線字串
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "postgres",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Auth: AuthConfig{
			TokenTTL:   120 * time.Minute,
			Issuer:     "event-platform",
			BcryptCost: 10,
		},
		Queue: QueueConfig{
			Backend:    "memory",
			BufferSize: 1024,
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: 10,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func applyEnv(cfg *Config) error {
	cfg.Server.Addr = getEnv("SERVER_ADDR", cfg.Server.Addr)
	cfg.Server.Mode = getEnv("GIN_MODE", cfg.Server.Mode)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", cfg.Database.SSLMode)

	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnv("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.Issuer = getEnv("JWT_ISSUER", cfg.Auth.Issuer)

	cfg.Queue.Backend = getEnv("QUEUE_BACKEND", cfg.Queue.Backend)
	cfg.Queue.ConsumerID = getEnv("QUEUE_CONSUMER_ID", cfg.Queue.ConsumerID)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return err
	}
	if cfg.Auth.BcryptCost, err = getEnvInt("BCRYPT_COST", cfg.Auth.BcryptCost); err != nil {
		return err
	}
	if cfg.RateLimit.LoginPerMinute, err = getEnvInt("LOGIN_RATE_PER_MINUTE", cfg.RateLimit.LoginPerMinute); err != nil {
		return err
	}
	if cfg.Auth.TokenTTL, err = getEnvDuration("JWT_TTL", cfg.Auth.TokenTTL); err != nil {
		return err
	}
	if cfg.Server.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

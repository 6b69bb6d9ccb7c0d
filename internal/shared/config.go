package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// loads .env into the process environment before anything reads it
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

const envPrefix = "REVIEWS_"

// Config is read from REVIEWS_* environment variables, e.g.
// REVIEWS_DB_DSN -> db_dsn.
type Config struct {
	AppEnv      string        `koanf:"app_env" validate:"required"`
	HTTPAddr    string        `koanf:"http_addr" validate:"required"`
	MetricsAddr string        `koanf:"metrics_addr"`
	DBDriver    string        `koanf:"db_driver" validate:"oneof=mysql sqlite3"`
	DBDSN       string        `koanf:"db_dsn" validate:"required"`
	AutoSchema  bool          `koanf:"auto_schema"`
	RedisAddr   string        `koanf:"redis_addr"`
	RedisDB     int           `koanf:"redis_db" validate:"gte=0"`
	RedisPass   string        `koanf:"redis_password"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`

	// Empty DirectoryURL means employees are looked up in the employee table.
	DirectoryURL string `koanf:"directory_url" validate:"omitempty,url"`
	DirectoryKey string `koanf:"directory_key"`
	DirectoryRPS int    `koanf:"directory_rps" validate:"gte=0"`

	ImportFile    string `koanf:"import_file"`
	ImportWorkers int    `koanf:"import_workers" validate:"gte=1"`
}

func defaults() Config {
	return Config{
		AppEnv:        "prod",
		HTTPAddr:      ":8080",
		DBDriver:      "mysql",
		DBDSN:         "root:root@tcp(localhost:3306)/staff?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		AutoSchema:    true,
		RedisAddr:     "",
		CacheTTL:      5 * time.Minute,
		DirectoryRPS:  5,
		ImportWorkers: 8,
	}
}

// Load layers REVIEWS_* variables over the defaults and validates the result.
func Load() (Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	c := defaults()
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REVIEWS_REDIS_ADDR is empty; read cache disabled")
	}
	return c, nil
}

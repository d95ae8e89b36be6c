package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"dareboard/internal/apiutil"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, LogLevel string }

// APICfg points the client at the platform API.
type APICfg struct {
	BaseURL    string
	Token      string
	TimeoutSec int
	MaxRetries int
}

type PagingCfg struct {
	DefaultLimit int
	AutoFetch    bool
}

type DBCfg struct{ DSN string }

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type ServerCfg struct {
	Port  string
	Token string // optional bearer token guarding /api/v1
}

type Cfg struct {
	App    AppCfg
	API    APICfg
	Paging PagingCfg
	DB     DBCfg
	Redis  RedisCfg
	Server ServerCfg
}

// Load reads .env (if present) and the process environment.
func Load() Cfg {
	// 1) .env into process env; real env vars win
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not parse .env")
	}

	// 2) Read from env via viper
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT_SEC", 30)
	v.SetDefault("API_MAX_RETRIES", 3)
	v.SetDefault("PAGE_SIZE", apiutil.DefaultPageSize)
	v.SetDefault("AUTO_FETCH", true)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("APP_PORT", "8080")

	cfg := Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		API: APICfg{
			BaseURL:    strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Token:      strings.TrimSpace(v.GetString("API_TOKEN")),
			TimeoutSec: v.GetInt("API_TIMEOUT_SEC"),
			MaxRetries: v.GetInt("API_MAX_RETRIES"),
		},
		Paging: PagingCfg{
			DefaultLimit: apiutil.ClampLimit(v.GetInt("PAGE_SIZE")),
			AutoFetch:    v.GetBool("AUTO_FETCH"),
		},
		DB: DBCfg{DSN: v.GetString("DB_DSN")},
		Redis: RedisCfg{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		Server: ServerCfg{
			Port:  v.GetString("APP_PORT"),
			Token: strings.TrimSpace(v.GetString("SERVER_TOKEN")),
		},
	}
	return cfg
}

// Validate fails fast on settings the caller cannot run without. The feed
// server needs a database; the CLI only needs a usable API URL.
func (c Cfg) Validate(requireDB bool) error {
	if requireDB && c.DB.DSN == "" {
		return errors.New("DB_DSN is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.TimeoutSec < 0 {
		return errors.New("API_TIMEOUT_SEC must not be negative")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("API_MAX_RETRIES must not be negative")
	}
	if c.Redis.Addr != "" && c.Redis.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	return nil
}

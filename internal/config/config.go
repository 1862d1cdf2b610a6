package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		API
		Downloads
		Refresh
		Log
	}

	API struct {
		BaseURL string
		Timeout time.Duration
	}
	Downloads struct {
		Dir string
	}
	Refresh struct {
		Enabled  bool
		Schedule string // Cron format: "*/15 * * * *" = every 15 minutes
	}
	Log struct {
		Level string
	}
)

func NewConfig() *Config {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("libtool_api_url", "http://localhost:8000")
	v.SetDefault("libtool_api_timeout", "30s")
	v.SetDefault("libtool_downloads_dir", "./downloads")
	v.SetDefault("libtool_refresh_enabled", false)
	v.SetDefault("libtool_refresh_schedule", "*/15 * * * *")
	v.SetDefault("libtool_log_level", "info")

	return &Config{
		API: API{
			BaseURL: v.GetString("LIBTOOL_API_URL"),
			Timeout: v.GetDuration("LIBTOOL_API_TIMEOUT"),
		},
		Downloads: Downloads{
			Dir: v.GetString("LIBTOOL_DOWNLOADS_DIR"),
		},
		Refresh: Refresh{
			Enabled:  v.GetBool("LIBTOOL_REFRESH_ENABLED"),
			Schedule: v.GetString("LIBTOOL_REFRESH_SCHEDULE"),
		},
		Log: Log{
			Level: v.GetString("LIBTOOL_LOG_LEVEL"),
		},
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Sleeper     SleeperAPI
	Store       Store
	TelegramBot TelegramBot
	Schedule    Schedule
	Defaults    Defaults
	HTTP        HTTP
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

type SleeperAPI struct {
	BaseURL     string        `envconfig:"SLEEPER_BASE_URL" default:"https://api.sleeper.app/v1"`
	StatsURL    string        `envconfig:"SLEEPER_STATS_URL" default:"https://api.sleeper.com"`
	Timeout     time.Duration `envconfig:"SLEEPER_TIMEOUT" default:"10s"`
	Concurrency int           `envconfig:"SLEEPER_CONCURRENCY" default:"4"`
}

type Store struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"nfl_players.db"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type Schedule struct {
	RefreshCron string `envconfig:"REFRESH_CRON" default:"0 6 * * 2"`
	ReportCron  string `envconfig:"REPORT_CRON" default:"30 7 * * 0"`
	Timezone    string `envconfig:"SCHEDULE_TZ" default:"America/Chicago"`
}

type Defaults struct {
	Username        string `envconfig:"SLEEPER_USERNAME"`
	League          string `envconfig:"SLEEPER_LEAGUE"`
	MatchupStarters bool   `envconfig:"MATCHUP_STARTERS" default:"false"`
}

type HTTP struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "sqlite", "memory":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Sleeper.Concurrency < 1 {
		c.Sleeper.Concurrency = 1
	}

	if _, err := cron.ParseStandard(c.Schedule.RefreshCron); err != nil {
		return fmt.Errorf("invalid REFRESH_CRON %q: %w", c.Schedule.RefreshCron, err)
	}
	if _, err := cron.ParseStandard(c.Schedule.ReportCron); err != nil {
		return fmt.Errorf("invalid REPORT_CRON %q: %w", c.Schedule.ReportCron, err)
	}

	return nil
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		CSVPath     string `yaml:"csv_path"`
		DateColumn  string `yaml:"date_column"`
		CloseColumn string `yaml:"close_column"`
		DateLayout  string `yaml:"date_layout"`
	} `yaml:"data"`
	Model struct {
		Path string `yaml:"path"`
	} `yaml:"model"`
	Features struct {
		Windows  []int `yaml:"windows"`
		Lookback int   `yaml:"lookback"`
	} `yaml:"features"`
	Display struct {
		Title    string `yaml:"title"`
		Currency string `yaml:"currency"`
	} `yaml:"display"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Output struct {
		HTMLPath string `yaml:"html_path"`
	} `yaml:"output"`
	Schedule struct {
		ReportCron string `yaml:"report_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error; defaults and the environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKLENS_CSV_PATH"); v != "" {
		cfg.Data.CSVPath = v
	}
	if v := os.Getenv("STOCKLENS_MODEL_PATH"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REPORT_CRON"); v != "" {
		cfg.Schedule.ReportCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Data.DateColumn == "" {
		cfg.Data.DateColumn = "Date"
	}
	if cfg.Data.CloseColumn == "" {
		cfg.Data.CloseColumn = "Close"
	}
	if len(cfg.Features.Windows) == 0 {
		cfg.Features.Windows = []int{20, 50}
	}
	if cfg.Features.Lookback == 0 {
		cfg.Features.Lookback = 60
	}
	if cfg.Display.Title == "" {
		cfg.Display.Title = "Stock Analysis Dashboard"
	}
	if cfg.Display.Currency == "" {
		cfg.Display.Currency = "₹"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path is required")
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	// the model takes close plus exactly two averages
	if len(c.Features.Windows) != 2 {
		return fmt.Errorf("features.windows must list exactly 2 periods, got %d", len(c.Features.Windows))
	}
	for i, w := range c.Features.Windows {
		if w <= 0 {
			return fmt.Errorf("features.windows must be positive, got %d", w)
		}
		if i > 0 && w <= c.Features.Windows[i-1] {
			return fmt.Errorf("features.windows must be ascending, got %v", c.Features.Windows)
		}
	}
	if c.Features.Lookback < 1 {
		return fmt.Errorf("features.lookback must be at least 1")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Schedule.ReportCron != "" && c.Telegram.BotToken == "" && c.Database.SQLitePath == "" {
		return fmt.Errorf("schedule.report_cron needs telegram or database.sqlite_path to deliver reports")
	}
	return nil
}

// TelegramEnabled reports whether a bot is configured.
func (c *Config) TelegramEnabled() bool {
	return strings.TrimSpace(c.Telegram.BotToken) != ""
}

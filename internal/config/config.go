package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken  string `yaml:"bot_token" validate:"required"`
		ChatID    string `yaml:"chat_id" validate:"required"`
		APIBase   string `yaml:"api_base" default:"https://api.telegram.org" validate:"url"`
		ParseMode string `yaml:"parse_mode" default:"Markdown" validate:"oneof=Markdown MarkdownV2 HTML"`
		Polling   bool   `yaml:"polling"`
	} `yaml:"telegram"`
	Instrument struct {
		Label       string `yaml:"label" default:"XAUUSD" validate:"required"`
		YahooSymbol string `yaml:"yahoo_symbol" default:"XAUUSD=X" validate:"required"`
		Range       string `yaml:"range" default:"5d" validate:"required"`
		Interval    string `yaml:"interval" default:"15m" validate:"required"`
	} `yaml:"instrument"`
	Sources struct {
		Timeout             time.Duration `yaml:"timeout" default:"20s" validate:"gt=0"`
		PlausibleMin        float64       `yaml:"plausible_min" default:"900" validate:"gt=0"`
		PlausibleMax        float64       `yaml:"plausible_max" default:"10000" validate:"gtfield=PlausibleMin"`
		YahooBaseURL        string        `yaml:"yahoo_base_url" default:"https://query2.finance.yahoo.com" validate:"url"`
		GoldAPIKey          string        `yaml:"goldapi_key"`
		GoldAPIURL          string        `yaml:"goldapi_url" default:"https://www.goldapi.io/api/XAU/USD" validate:"url"`
		KitcoURL            string        `yaml:"kitco_url" default:"https://www.kitco.com/gold-price-today-usa/" validate:"url"`
		KitcoDisabled       bool          `yaml:"kitco_disabled"`
		MetalsDailyURL      string        `yaml:"metalsdaily_url" default:"https://www.metalsdaily.com/gold-price-today" validate:"url"`
		MetalsDailyDisabled bool          `yaml:"metalsdaily_disabled"`
	} `yaml:"sources"`
	Schedule struct {
		Cron    string `yaml:"cron" default:"0 */15 * * * *" validate:"required"`
		RunOnce bool   `yaml:"run_once"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

var validate = validator.New()

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	// The first non-empty variable wins.
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	str(&cfg.Telegram.BotToken, "TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")
	str(&cfg.Telegram.ChatID, "CHAT_ID", "TELEGRAM_CHAT_ID")
	str(&cfg.Sources.GoldAPIKey, "GOLDAPI_KEY")
	str(&cfg.Proxy, "HTTPS_PROXY")
	str(&cfg.Schedule.Cron, "CRON_SCHEDULE")
	str(&cfg.Log.Level, "LOG_LEVEL")
	str(&cfg.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("RUN_ONCE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Schedule.RunOnce = b
		}
	}
	if v := os.Getenv("TELEGRAM_POLLING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telegram.Polling = b
		}
	}
}

// Validate checks that all required fields are set and well formed.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

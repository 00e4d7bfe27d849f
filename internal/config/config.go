// Package config loads the immutable process configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"FXSentinel/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken    string        `yaml:"bot_token" validate:"required"`
		ChatID      int64         `yaml:"chat_id" validate:"required"`
		PollTimeout time.Duration `yaml:"poll_timeout" default:"10s" validate:"gt=0"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Suffix  string        `yaml:"symbol_suffix" default:"=X"`
		Window  string        `yaml:"history_range" default:"1mo" validate:"required"`
		Timeout time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"data_source"`
	Pairs    []string `yaml:"pairs" validate:"min=1,dive,required"`
	Schedule struct {
		IntervalMinutes int           `yaml:"interval_minutes" default:"5" validate:"gte=1"`
		Warning         time.Duration `yaml:"warning" default:"60s" validate:"gte=0"`
		Timeframe       string        `yaml:"timeframe" default:"1m" validate:"required"`
		Cron            string        `yaml:"cron"`
		RunOnStart      bool          `yaml:"run_on_start"`
		Disabled        bool          `yaml:"disabled"`
	} `yaml:"schedule"`
	Assets struct {
		BuyImage  string `yaml:"buy_image" default:"assets/buy.png" validate:"required"`
		SellImage string `yaml:"sell_image" default:"assets/sell.png" validate:"required"`
	} `yaml:"assets"`
	Delivery struct {
		MaxRetries int           `yaml:"max_retries" default:"3" validate:"gte=0"`
		BackoffMin time.Duration `yaml:"backoff_min" default:"1s" validate:"gt=0"`
		BackoffMax time.Duration `yaml:"backoff_max" default:"8s" validate:"gtefield=BackoffMin"`
	} `yaml:"delivery"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"json" validate:"oneof=json console"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

var validate = validator.New()

// Load fills defaults, then applies the YAML file, .env and environment variable overrides
// on top. Values set explicitly, including zero, are kept. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if len(cfg.Pairs) == 0 {
		cfg.Pairs = append([]string(nil), model.DefaultPairs...)
	}

	return cfg, nil
}

// Environment variable overrides
func (c *Config) applyEnv() error {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("SIGNAL_PAIRS"); v != "" {
		c.Pairs = strings.Split(v, ",")
	}
	if v := os.Getenv("SIGNAL_INTERVAL_MINUTES"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("SIGNAL_INTERVAL_MINUTES: %w", err)
		}
		c.Schedule.IntervalMinutes = n
	}
	if v := os.Getenv("SIGNAL_CRON"); v != "" {
		c.Schedule.Cron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("RUN_ON_START: %w", err)
		}
		c.Schedule.RunOnStart = b
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	return nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.PairConfig().Len() == 0 {
		return errors.New("invalid config: pairs has no usable symbol")
	}
	return nil
}

// PairConfig returns the normalized supported pair list.
func (c *Config) PairConfig() model.PairConfig {
	return model.NewPairConfig(c.Pairs)
}

// RestBetweenPasses is how long the recurring loop waits after a full pass.
func (c *Config) RestBetweenPasses() time.Duration {
	return time.Duration(c.Schedule.IntervalMinutes-1) * time.Minute
}

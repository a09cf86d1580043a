package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/errors"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const DefaultRankingURL = "https://api.producthunt.com/v2/api/graphql"

// minTimeout rejects unit-less durations from config files, which decode as nanoseconds.
const minTimeout = time.Millisecond

type Config struct {
	OpenAIAPIKey      string        `koanf:"openai_api_key"`
	OpenAIBaseURL     string        `koanf:"openai_base_url"`
	OpenAIModel       string        `koanf:"openai_model"`
	MaxTokens         int           `koanf:"max_tokens"`
	Temperature       float32       `koanf:"temperature"`
	GenerationTimeout time.Duration `koanf:"generation_timeout"`
	DigestStrict      bool          `koanf:"digest_strict"`

	PHToken      string        `koanf:"ph_token"`
	PHAPIURL     string        `koanf:"ph_api_url"`
	PageSize     int           `koanf:"page_size"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	TelegramBotToken string `koanf:"telegram_bot_token"`
	TelegramAPIURL   string `koanf:"telegram_api_url"`
	TelegramChatID   string `koanf:"telegram_chat_id"`

	Schedule string `koanf:"schedule"`
	HTTPPort string `koanf:"http_port"`
	LogLevel string `koanf:"log_level"`
	AppEnv   AppEnv `koanf:"app_env"`
}

// configFiles are probed in order; the first one found is loaded.
var configFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
	".env",
}

func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads the first config file found in dir, then the environment,
// then fills defaults for anything still unset.
func LoadFrom(dir string) (*Config, error) {
	k := koanf.New(".")

	configFile, found := lo.Find(configFiles, func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	})

	if found {
		var parser koanf.Parser
		switch filepath.Ext(configFile) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		case ".env":
			parser = dotenv.ParserEnv("", ".", strings.ToLower)
		default:
			return nil, oops.Errorf("unsupported config file: %s", configFile)
		}

		path := filepath.Join(dir, configFile)
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, oops.With("config_file", path).Wrap(err)
		}
	}

	// Environment variables override config file values
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	setDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(k *koanf.Koanf) {
	defaults := map[string]any{
		"openai_model":       "gpt-3.5-turbo",
		"max_tokens":         3500,
		"temperature":        0.3,
		"generation_timeout": "60s",
		"digest_strict":      false,
		"ph_api_url":         DefaultRankingURL,
		"page_size":          10,
		"fetch_timeout":      "30s",
		"telegram_api_url":   "https://api.telegram.org",
		"log_level":          "info",
		"app_env":            "production",
	}
	for key, value := range defaults {
		if !k.Exists(key) || k.String(key) == "" {
			k.Set(key, value)
		}
	}
}

// Validate checks the tunables. Credentials are deliberately left alone:
// a missing token surfaces as a failed call in the stage that uses it.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return oops.With("page_size", c.PageSize).Wrap(errors.ErrInvalidPageSize)
	}
	if c.MaxTokens <= 0 {
		return oops.With("max_tokens", c.MaxTokens).Wrap(errors.ErrInvalidMaxTokens)
	}
	if c.FetchTimeout < minTimeout || c.GenerationTimeout < minTimeout {
		return oops.
			With("fetch_timeout", c.FetchTimeout, "generation_timeout", c.GenerationTimeout).
			Wrap(errors.ErrInvalidTimeout)
	}
	if c.Scheduled() {
		if _, err := cron.ParseStandard(strings.TrimSpace(c.Schedule)); err != nil {
			return oops.With("schedule", c.Schedule, "cause", err.Error()).Wrap(errors.ErrInvalidSchedule)
		}
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, oops.With("log_level", c.LogLevel).Wrap(err)
	}
	return level, nil
}

// Scheduled reports whether the process should stay up and run on a cron schedule.
func (c *Config) Scheduled() bool {
	return strings.TrimSpace(c.Schedule) != ""
}

// CredentialStatus reports which credentials are present, never their values.
func (c *Config) CredentialStatus() map[string]bool {
	return map[string]bool{
		"openai_api_key":     c.OpenAIAPIKey != "",
		"telegram_bot_token": c.TelegramBotToken != "",
		"telegram_chat_id":   c.TelegramChatID != "",
		"ph_token":           c.PHToken != "",
	}
}

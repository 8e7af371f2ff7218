package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFileENV     = "FINFX_CONFIG_FILE"
	backendURLENV     = "FINFX_BACKEND_URL"
	adminEmailENV     = "FINFX_ADMIN_EMAIL"
	adminPasswordENV  = "FINFX_ADMIN_PASSWORD"
	tokenFileENV      = "FINFX_TOKEN_FILE"
	requestTimeoutENV = "FINFX_REQUEST_TIMEOUT"

	defaultBackendURL     = "http://localhost:3000"
	defaultTokenFile      = "token.txt"
	defaultRequestTimeout = "30s"
)

// MissingEnvError is returned when a required environment variable is absent.
type MissingEnvError struct {
	Key string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("environment variable %s is required", e.Key)
}

// Config ...
type Config struct {
	BaseURL        string
	AdminEmail     string
	AdminPassword  string
	TokenFile      string
	RequestTimeout time.Duration

	// Telegram (optional, used by the demo notifier)
	TelegramBotToken string
	TelegramChatID   int64
}

// fileConfig is the optional YAML overlay; env variables win over it.
type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	TokenFile      string `yaml:"token_file"`
	RequestTimeout string `yaml:"request_timeout"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:        defaultBackendURL,
		TokenFile:      defaultTokenFile,
		RequestTimeout: mustDuration(defaultRequestTimeout),
	}

	if name := os.Getenv(configFileENV); name != "" {
		if err := cfg.applyFile(name); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(backendURLENV); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(tokenFileENV); v != "" {
		cfg.TokenFile = v
	}
	cfg.RequestTimeout = durationFromEnv(requestTimeoutENV, cfg.RequestTimeout)

	cfg.AdminEmail = os.Getenv(adminEmailENV)
	if cfg.AdminEmail == "" {
		return nil, &MissingEnvError{Key: adminEmailENV}
	}
	cfg.AdminPassword = os.Getenv(adminPasswordENV)
	if cfg.AdminPassword == "" {
		return nil, &MissingEnvError{Key: adminPasswordENV}
	}

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func (c *Config) applyFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var fc fileConfig
	if err := yaml.NewDecoder(file).Decode(&fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	if fc.BaseURL != "" {
		c.BaseURL = fc.BaseURL
	}
	if fc.TokenFile != "" {
		c.TokenFile = fc.TokenFile
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("config file request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	return nil
}

func durationFromEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

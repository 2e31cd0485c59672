package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything postdeck reads from its config file.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	RetryAttempts  int
	RateLimit      float64
	LogFile        string
	LogLevel       string
	Email          EmailConfig
}

// EmailConfig holds the transactional email provider settings used by share.
type EmailConfig struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	FromName   string
}

// Enabled reports whether enough fields are present to send mail.
func (e EmailConfig) Enabled() bool {
	return strings.TrimSpace(e.ServiceID) != "" &&
		strings.TrimSpace(e.TemplateID) != "" &&
		strings.TrimSpace(e.PublicKey) != ""
}

const (
	defaultConfigPath     = "~/.config/postdeck/config.toml"
	defaultLogFile        = "~/.local/state/postdeck/postdeck.log"
	defaultAPIBaseURL     = "https://jsonplaceholder.typicode.com"
	defaultEmailEndpoint  = "https://api.emailjs.com/api/v1.0/email/send"
	defaultRequestTimeout = 10 * time.Second
	defaultRetryAttempts  = 3
	defaultRateLimit      = 10.0
	defaultLogLevel       = "info"
	defaultFromName       = "postdeck"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		RequestTimeout: defaultRequestTimeout,
		RetryAttempts:  defaultRetryAttempts,
		RateLimit:      defaultRateLimit,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		Email: EmailConfig{
			Endpoint: defaultEmailEndpoint,
			FromName: defaultFromName,
		},
	}
}

// Load locates and parses the postdeck config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL     string  `toml:"api_base_url"`
		RequestTimeout string  `toml:"request_timeout"`
		RetryAttempts  int     `toml:"retry_attempts"`
		RateLimit      float64 `toml:"rate_limit"`
		LogFile        string  `toml:"log_file"`
		LogLevel       string  `toml:"log_level"`
		Email          struct {
			Endpoint   string `toml:"endpoint"`
			ServiceID  string `toml:"service_id"`
			TemplateID string `toml:"template_id"`
			PublicKey  string `toml:"public_key"`
			FromName   string `toml:"from_name"`
		} `toml:"email"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		// Zero disables the client timeout entirely.
		cfg.RequestTimeout = max(timeout, 0)
	}
	if raw.RetryAttempts > 0 {
		cfg.RetryAttempts = raw.RetryAttempts
	}
	if raw.RateLimit > 0 {
		cfg.RateLimit = raw.RateLimit
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}

	if v := strings.TrimSpace(raw.Email.Endpoint); v != "" {
		cfg.Email.Endpoint = v
	}
	cfg.Email.ServiceID = strings.TrimSpace(raw.Email.ServiceID)
	cfg.Email.TemplateID = strings.TrimSpace(raw.Email.TemplateID)
	cfg.Email.PublicKey = strings.TrimSpace(raw.Email.PublicKey)
	if v := strings.TrimSpace(raw.Email.FromName); v != "" {
		cfg.Email.FromName = v
	}

	return cfg, nil
}

// StateDir returns the directory holding the log file.
func (c Config) StateDir() string {
	if strings.TrimSpace(c.LogFile) == "" {
		return filepath.Dir(mustExpand(defaultLogFile))
	}
	return filepath.Dir(c.LogFile)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

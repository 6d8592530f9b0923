package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings foreman needs to reach the attendance API.
type Config struct {
	APIBase         string `validate:"required,url"`
	CompanyID       string `validate:"required"`
	APIToken        string
	LogFile         string `validate:"required"`
	LogLevel        string `validate:"oneof=trace debug info warn error"`
	SaveConcurrency int    `validate:"min=1,max=64"`
	RequestTimeout  time.Duration
}

const (
	defaultConfigPath      = "~/.config/foreman/config.toml"
	defaultLogFile         = "~/.local/share/foreman/foreman.log"
	defaultAPIBase         = "http://127.0.0.1:8089"
	defaultCompanyID       = "demo"
	defaultLogLevel        = "info"
	defaultSaveConcurrency = 6
	defaultRequestTimeout  = 10 * time.Second
)

// Env var names that override file values.
const (
	EnvAPIBase         = "FOREMAN_API_BASE"
	EnvCompanyID       = "FOREMAN_COMPANY_ID"
	EnvAPIToken        = "FOREMAN_API_TOKEN"
	EnvLogFile         = "FOREMAN_LOG_FILE"
	EnvLogLevel        = "FOREMAN_LOG_LEVEL"
	EnvSaveConcurrency = "FOREMAN_SAVE_CONCURRENCY"
	EnvRequestTimeout  = "FOREMAN_REQUEST_TIMEOUT_SECONDS"
)

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:         defaultAPIBase,
		CompanyID:       defaultCompanyID,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
		SaveConcurrency: defaultSaveConcurrency,
		RequestTimeout:  defaultRequestTimeout,
	}
}

// Load reads the config file, falling back to defaults when it is missing,
// then applies .env and FOREMAN_* overrides and validates the result.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	// A missing .env is normal; real environment values win over it.
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.LogFile = mustExpand(cfg.LogFile)
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase         string `toml:"api_base"`
		CompanyID       string `toml:"company_id"`
		APIToken        string `toml:"api_token"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
		SaveConcurrency int    `toml:"save_concurrency"`
		RequestTimeout  int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.APIBase, raw.APIBase)
	setString(&cfg.CompanyID, raw.CompanyID)
	setString(&cfg.APIToken, raw.APIToken)
	setString(&cfg.LogFile, raw.LogFile)
	setString(&cfg.LogLevel, strings.ToLower(raw.LogLevel))
	if raw.SaveConcurrency > 0 {
		cfg.SaveConcurrency = raw.SaveConcurrency
	}
	if raw.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeout) * time.Second
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.APIBase, os.Getenv(EnvAPIBase))
	setString(&cfg.CompanyID, os.Getenv(EnvCompanyID))
	setString(&cfg.APIToken, os.Getenv(EnvAPIToken))
	setString(&cfg.LogFile, os.Getenv(EnvLogFile))
	setString(&cfg.LogLevel, strings.ToLower(os.Getenv(EnvLogLevel)))

	if v := strings.TrimSpace(os.Getenv(EnvSaveConcurrency)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSaveConcurrency, err)
		}
		cfg.SaveConcurrency = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvRequestTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = time.Duration(n) * time.Second
	}
	return nil
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
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

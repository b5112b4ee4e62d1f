package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"seo_meta_audit/internal/domain/adaptors"
	"seo_meta_audit/internal/pkg/errors"

	"github.com/joho/godotenv"
)

const (
	ModeCLI   = "cli"
	ModeServe = "serve"

	defaultInputFile    = "csvData.csv"
	defaultFetchTimeout = 30 * time.Second
)

type AppConfig struct {
	LogLevel         string
	Mode             string
	InputFile        string
	FetchTimeout     time.Duration
	IsolateRowErrors bool
	MetricsFile      string
	MetricsHost      string
}

// NewAppConfig reads config.env when present, then the environment.
func NewAppConfig() (*AppConfig, error) {
	return NewAppConfigFromFile(`config.env`)
}

func NewAppConfigFromFile(envFile string) (*AppConfig, error) {
	err := godotenv.Load(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, `failed to load `+envFile)
	}

	var errMsg []string
	cfg := AppConfig{
		LogLevel:    getEnv("APP_LOG_LEVEL", string(adaptors.Info)),
		Mode:        getEnv("APP_MODE", ModeCLI),
		InputFile:   getEnv("SEO_AUDIT_INPUT_FILE", defaultInputFile),
		MetricsFile: os.Getenv("SEO_AUDIT_METRICS_FILE"),
		MetricsHost: getEnv("HTTP_APP_METRICS_HOST", ":9090"),
	}

	if cfg.FetchTimeout, err = parseDuration("SEO_AUDIT_FETCH_TIMEOUT", defaultFetchTimeout); err != nil {
		errMsg = append(errMsg, err.Error())
	}

	if v := os.Getenv("SEO_AUDIT_ISOLATE_ROW_ERRORS"); v != "" {
		if cfg.IsolateRowErrors, err = strconv.ParseBool(v); err != nil {
			errMsg = append(errMsg, fmt.Sprintf(`SEO_AUDIT_ISOLATE_ROW_ERRORS: invalid bool %q`, v))
		}
	}

	errMsg = append(errMsg, validate(&cfg)...)
	if len(errMsg) != 0 {
		return nil, fmt.Errorf(`validation failed: %s`, strings.Join(errMsg, "\n"))
	}

	return &cfg, nil
}

func validate(cfg *AppConfig) []string {
	var errMsg []string
	if !adaptors.LogLevel(cfg.LogLevel).Valid() {
		errMsg = append(errMsg, fmt.Sprintf(`log level %q is invalid`, cfg.LogLevel))
	}

	if cfg.Mode != ModeCLI && cfg.Mode != ModeServe {
		errMsg = append(errMsg, fmt.Sprintf(`mode %q is invalid`, cfg.Mode))
	}

	if cfg.InputFile == "" {
		errMsg = append(errMsg, `input file is empty`)
	}

	if cfg.FetchTimeout <= 0 {
		errMsg = append(errMsg, `fetch timeout must be positive`)
	}
	return errMsg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration format: %w", key, err)
	}
	return duration, nil
}

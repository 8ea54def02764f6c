package config

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/wistia/wistia"
)

// Config holds the settings the wistia CLI reads from its TOML file.
type Config struct {
	AccessToken string
	APIURL      string
	UploadURL   string
	Timeout     time.Duration
	LogLevel    string
	LogFormat   string
}

const (
	defaultConfigPath = "~/.config/wistia/config.toml"
	defaultLogLevel   = "warn"
	defaultLogFormat  = "console"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:    wistia.DataAPI,
		UploadURL: wistia.UploadAPI,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// Load locates and parses the wistia config, falling back to defaults when missing.
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
		AccessToken    string `toml:"access_token"`
		APIURL         string `toml:"api_url"`
		UploadURL      string `toml:"upload_url"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		LogLevel       string `toml:"log_level"`
		LogFormat      string `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if raw.TimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: timeout_seconds must not be negative, got %d", raw.TimeoutSeconds)
	}

	cfg.AccessToken = strings.TrimSpace(raw.AccessToken)
	cfg.APIURL = orDefault(raw.APIURL, wistia.DataAPI)
	cfg.UploadURL = orDefault(raw.UploadURL, wistia.UploadAPI)
	cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	cfg.LogLevel = orDefault(raw.LogLevel, defaultLogLevel)
	cfg.LogFormat = orDefault(raw.LogFormat, defaultLogFormat)

	return cfg, nil
}

// Token returns the access token from the config file, then from
// WISTIA_API_TOKEN. Neither being set yields *wistia.EnvVarNotFoundError.
func (c Config) Token() (string, error) {
	if token := strings.TrimSpace(c.AccessToken); token != "" {
		return token, nil
	}
	if token := strings.TrimSpace(os.Getenv(wistia.EnvVarName)); token != "" {
		return token, nil
	}
	return "", &wistia.EnvVarNotFoundError{Name: wistia.EnvVarName}
}

// ClientOptions translates the config into wistia client options. A zero
// Timeout leaves the HTTP client without a deadline.
func (c Config) ClientOptions() []wistia.Option {
	return []wistia.Option{
		wistia.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		wistia.WithDataURL(c.APIURL),
		wistia.WithUploadURL(c.UploadURL),
	}
}

// LoadDotenv loads KEY=value pairs from the given .env files into the
// process environment. Variables that are already set win. Missing files are
// skipped; with no paths, ./.env is tried.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		resolved, err := expandPath(p)
		if err != nil {
			return err
		}
		if _, err := os.Stat(resolved); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(resolved); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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

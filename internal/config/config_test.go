package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/wistia/wistia"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load = %+v, want %+v", cfg, Default())
	}
	if cfg.APIURL != wistia.DataAPI {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, wistia.DataAPI)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
access_token = "  tok123  "
api_url = " http://localhost:8080 "
upload_url = "http://localhost:8081/upload"
timeout_seconds = 30
log_level = "debug"
log_format = "json"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Config{
		AccessToken: "tok123",
		APIURL:      "http://localhost:8080",
		UploadURL:   "http://localhost:8081/upload",
		Timeout:     30 * time.Second,
		LogLevel:    "debug",
		LogFormat:   "json",
	}
	if cfg != want {
		t.Fatalf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
log_level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != wistia.DataAPI {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, wistia.DataAPI)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.Timeout != 0 {
		t.Fatalf("Timeout = %v, want 0", cfg.Timeout)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_NegativeTimeoutFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`timeout_seconds = -1`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want timeout error")
	}
}

func TestToken_PrefersConfigThenEnv(t *testing.T) {
	t.Setenv(wistia.EnvVarName, "from-env")

	got, err := Config{AccessToken: "from-file"}.Token()
	if err != nil || got != "from-file" {
		t.Fatalf("Token = %q, %v, want from-file", got, err)
	}

	got, err = Config{}.Token()
	if err != nil || got != "from-env" {
		t.Fatalf("Token = %q, %v, want from-env", got, err)
	}
}

func TestToken_MissingEverywhere(t *testing.T) {
	t.Setenv(wistia.EnvVarName, "  ")

	_, err := Config{}.Token()
	var notFound *wistia.EnvVarNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Token error = %v, want *wistia.EnvVarNotFoundError", err)
	}
	if notFound.Name != wistia.EnvVarName {
		t.Fatalf("Name = %q, want %q", notFound.Name, wistia.EnvVarName)
	}
}

func TestClientOptions_ApplyToClient(t *testing.T) {
	cfg := Default()
	cfg.Timeout = 5 * time.Second
	if got := len(cfg.ClientOptions()); got != 3 {
		t.Fatalf("len(ClientOptions) = %d, want 3", got)
	}
	if c := wistia.NewClient("tok", cfg.ClientOptions()...); c == nil {
		t.Fatalf("NewClient returned nil")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("WISTIA_DOTENV_TEST=from-dotenv\nWISTIA_DOTENV_KEEP=overridden\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("WISTIA_DOTENV_TEST", "")
	if err := os.Unsetenv("WISTIA_DOTENV_TEST"); err != nil {
		t.Fatalf("Unsetenv: %v", err)
	}
	t.Setenv("WISTIA_DOTENV_KEEP", "original")

	if err := LoadDotenv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotenv returned error: %v", err)
	}
	if got := os.Getenv("WISTIA_DOTENV_TEST"); got != "from-dotenv" {
		t.Fatalf("WISTIA_DOTENV_TEST = %q, want from-dotenv", got)
	}
	if got := os.Getenv("WISTIA_DOTENV_KEEP"); got != "original" {
		t.Fatalf("WISTIA_DOTENV_KEEP = %q, want original", got)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

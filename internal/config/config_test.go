package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadFromDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Quiz.DefaultCount != 5 {
		t.Errorf("DefaultCount = %d, want 5", cfg.Quiz.DefaultCount)
	}
	if cfg.Quiz.Tiers.Top != 0.85 || cfg.Quiz.Tiers.Mid != 0.60 {
		t.Errorf("Tiers = %+v, want top=0.85 mid=0.60", cfg.Quiz.Tiers)
	}
	if cfg.Quiz.IntroInterval != 720*time.Hour {
		t.Errorf("IntroInterval = %v, want 720h", cfg.Quiz.IntroInterval)
	}
	if cfg.Provider.Source != SourceFile {
		t.Errorf("Provider.Source = %q, want %q", cfg.Provider.Source, SourceFile)
	}
	if len(cfg.Quiz.Difficulties) != 3 {
		t.Errorf("Difficulties = %v, want 3 entries", cfg.Quiz.Difficulties)
	}
	if cfg.DB.Enabled() {
		t.Error("database should be disabled without DATABASE_URL")
	}
	if cfg.Redis.Enabled() {
		t.Error("redis should be disabled without REDIS_ADDR")
	}
	if cfg.Maintenance.SessionTTL != 2*time.Hour || cfg.Maintenance.EvictSchedule == "" {
		t.Errorf("Maintenance = %+v", cfg.Maintenance)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
env: production
quiz:
  default_count: 21
  tiers:
    top: 0.9
    mid: 0.5
provider:
  source: http
  base_url: https://quiz.example.org
`)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.Quiz.DefaultCount != 21 {
		t.Errorf("DefaultCount = %d, want 21", cfg.Quiz.DefaultCount)
	}
	if cfg.Quiz.Tiers.Top != 0.9 || cfg.Quiz.Tiers.Mid != 0.5 {
		t.Errorf("Tiers = %+v", cfg.Quiz.Tiers)
	}
	if cfg.Provider.BaseURL != "https://quiz.example.org" {
		t.Errorf("BaseURL = %q", cfg.Provider.BaseURL)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.TelegramAPIToken != "token" {
		t.Errorf("TelegramAPIToken = %q, want token", cfg.TelegramAPIToken)
	}
}

func TestLoadFromRejectsInvalidSource(t *testing.T) {
	dir := writeConfig(t, "provider:\n  source: ftp\n")

	_, err := LoadFrom(dir)
	if !errors.Is(err, ErrInvalidProviderSource) {
		t.Fatalf("err = %v, want ErrInvalidProviderSource", err)
	}
}

func TestLoadFromPostgresSourceNeedsDatabase(t *testing.T) {
	dir := writeConfig(t, "provider:\n  source: postgres\n")
	t.Setenv("DATABASE_URL", "")

	_, err := LoadFrom(dir)
	if !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}

func TestLoadFromRejectsInvalidTiers(t *testing.T) {
	tests := []struct {
		name     string
		top, mid string
	}{
		{name: "mid above top", top: "0.5", mid: "0.7"},
		{name: "top above one", top: "1.2", mid: "0.6"},
		{name: "negative mid", top: "0.85", mid: "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, "quiz:\n  tiers:\n    top: "+tt.top+"\n    mid: "+tt.mid+"\n")

			_, err := LoadFrom(dir)
			if err == nil || !strings.Contains(err.Error(), "quiz.tiers") {
				t.Fatalf("err = %v, want quiz.tiers error", err)
			}
		})
	}
}

func TestLoadRequiresTelegramToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}

// ABOUTME: Tests for ecoeats configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, backend selection, and path expansion.
package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "postgres"}
	if got := cfg.GetBackend(); got != "postgres" {
		t.Errorf("GetBackend() = %q, want %q", got, "postgres")
	}
}

func TestGetDataDir(t *testing.T) {
	if got := (&Config{}).GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
	if got := (&Config{DataDir: "/tmp/ecoeats-test"}).GetDataDir(); got != "/tmp/ecoeats-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/ecoeats-test")
	}

	home, _ := os.UserHomeDir()
	if got := (&Config{DataDir: "~/eco"}).GetDataDir(); got != filepath.Join(home, "eco") {
		t.Errorf("GetDataDir() = %q, want expanded home path", got)
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("USER", "kim")
	cfg := &Config{}

	if got := cfg.GetUsername(); got != "kim" {
		t.Errorf("GetUsername() = %q, want kim", got)
	}
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("GetLogLevel() = %q, want warn", got)
	}
	if got := cfg.GetAddr(); got != ":8080" {
		t.Errorf("GetAddr() = %q, want :8080", got)
	}
	if got := cfg.TokenTTL(); got != 72*time.Hour {
		t.Errorf("TokenTTL() = %v, want 72h", got)
	}
	if got := cfg.CacheTTL(); got != time.Hour {
		t.Errorf("CacheTTL() = %v, want 1h", got)
	}

	cfg.AI.CacheMinutes = -1
	if got := cfg.CacheTTL(); got != 0 {
		t.Errorf("CacheTTL() with negative minutes = %v, want 0", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data", filepath.Join(home, "data")},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ECOEATS_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GetBackend() != "sqlite" {
		t.Errorf("expected default backend, got %q", cfg.Backend)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ECOEATS_USER", "")
	t.Setenv("ECOEATS_AI_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg := &Config{
		Username: "alice",
		DataDir:  "/tmp/eco",
		AI:       AIConfig{Provider: "openai", Model: "gpt-test", OpenAIKey: "sk-secret"},
		Server:   ServerConfig{Addr: ":9000", JWTSecret: "super-secret-value"},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, err := os.ReadFile(GetConfigPath())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(raw), "sk-secret") || strings.Contains(string(raw), "super-secret-value") {
		t.Error("secrets must not be written to the config file")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Username != "alice" || loaded.AI.Model != "gpt-test" || loaded.GetAddr() != ":9000" {
		t.Errorf("loaded config = %+v", loaded)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "ecoeats", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ECOEATS_BACKEND", "postgres")
	t.Setenv("ECOEATS_DATABASE_URL", "postgres://localhost/eco")
	t.Setenv("ECOEATS_USER", "envuser")
	t.Setenv("ECOEATS_AI_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ECOEATS_JWT_SECRET", "env-secret-0123456789")
	t.Setenv("ECOEATS_TOKEN_HOURS", "12")
	t.Setenv("ECOEATS_REKOGNITION", "true")
	t.Setenv("ECOEATS_ADMIN_USER", "admin")
	t.Setenv("ECOEATS_ADMIN_PASSWORD", "pw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GetBackend() != "postgres" || cfg.DatabaseURL != "postgres://localhost/eco" {
		t.Errorf("backend override = %q %q", cfg.Backend, cfg.DatabaseURL)
	}
	if cfg.GetUsername() != "envuser" {
		t.Errorf("username override = %q", cfg.Username)
	}
	if cfg.Server.JWTSecret != "env-secret-0123456789" || cfg.TokenTTL() != 12*time.Hour {
		t.Errorf("server override = %+v", cfg.Server)
	}
	if !cfg.Classifier.Enabled {
		t.Error("classifier should be enabled from env")
	}
	if cfg.Admin.Username != "admin" || cfg.Admin.Password != "pw" {
		t.Errorf("admin override = %+v", cfg.Admin)
	}

	opts := cfg.AIOptions()
	if opts.Provider != "gemini" || opts.APIKey != "g-key" {
		t.Errorf("AIOptions = %+v", opts)
	}
}

func TestAIOptions(t *testing.T) {
	tests := []struct {
		name         string
		ai           AIConfig
		wantProvider string
		wantKey      string
	}{
		{"openai default", AIConfig{OpenAIKey: "o"}, "", "o"},
		{"gemini explicit", AIConfig{Provider: "Gemini", OpenAIKey: "o", GeminiKey: "g"}, "gemini", "g"},
		{"gemini inferred", AIConfig{GeminiKey: "g"}, "gemini", "g"},
		{"offline", AIConfig{Provider: "offline"}, "offline", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := (&Config{AI: tt.ai}).AIOptions()
			if opts.Provider != tt.wantProvider || opts.APIKey != tt.wantKey {
				t.Errorf("AIOptions = %+v, want provider %q key %q", opts, tt.wantProvider, tt.wantKey)
			}
		})
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{DataDir: dir}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() error = %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(dir, "ecoeats.db")); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}

func TestOpenStorageErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"postgres without url", &Config{Backend: "postgres"}},
		{"unknown backend", &Config{Backend: "markdown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.OpenStorage(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOpenImageStore(t *testing.T) {
	store, err := (&Config{}).OpenImageStore(context.Background())
	if err != nil {
		t.Fatalf("OpenImageStore() error = %v", err)
	}
	if store.Backend() != "database" {
		t.Errorf("Backend() = %q, want database", store.Backend())
	}

	if _, err := (&Config{Images: ImageConfig{Backend: "ftp"}}).OpenImageStore(context.Background()); err == nil {
		t.Error("expected error for unknown image backend")
	}
	if _, err := (&Config{Images: ImageConfig{Backend: "s3"}}).OpenImageStore(context.Background()); err == nil {
		t.Error("expected error for s3 without bucket")
	}
}

func TestOpenClassifierDisabled(t *testing.T) {
	c, err := (&Config{}).OpenClassifier(context.Background())
	if err != nil || c != nil {
		t.Errorf("OpenClassifier() = %v, %v; want nil, nil", c, err)
	}
}

func TestOpenAssistantOffline(t *testing.T) {
	a, err := (&Config{AI: AIConfig{Provider: "offline"}}).OpenAssistant(context.Background(), nil)
	if err != nil {
		t.Fatalf("OpenAssistant() error = %v", err)
	}
	defer a.Close()
	if a.ProviderName() != "offline" {
		t.Errorf("ProviderName() = %q", a.ProviderName())
	}
}

func TestConfigJSONSerialization(t *testing.T) {
	cfg := &Config{Backend: "sqlite", Username: "alice", Admin: AdminConfig{Username: "root", Password: "pw"}}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "root") {
		t.Error("admin credentials must not be serialized")
	}

	var decoded Config
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Username != "alice" {
		t.Errorf("Username = %q", decoded.Username)
	}
}

// ABOUTME: EcoEats configuration management with backend selection.
// ABOUTME: JSON file settings, .env and environment overrides, and factories for storage, AI and images.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/harperreed/ecoeats/internal/ai"
	"github.com/harperreed/ecoeats/internal/media"
	"github.com/harperreed/ecoeats/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config stores ecoeats configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "postgres".
	Backend string `json:"backend,omitempty" env:"ECOEATS_BACKEND"`

	// DataDir is the root directory for the SQLite database.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/ecoeats.
	DataDir string `json:"data_dir,omitempty" env:"ECOEATS_DATA_DIR"`

	// DatabaseURL is the Postgres DSN used when Backend is "postgres".
	DatabaseURL string `json:"database_url,omitempty" env:"ECOEATS_DATABASE_URL"`

	// Username is the account the CLI and MCP server act as.
	Username string `json:"username,omitempty" env:"ECOEATS_USER"`

	LogLevel string `json:"log_level,omitempty" env:"ECOEATS_LOG_LEVEL"`

	AI         AIConfig         `json:"ai,omitempty"`
	Server     ServerConfig     `json:"server,omitempty"`
	Images     ImageConfig      `json:"images,omitempty"`
	Classifier ClassifierConfig `json:"classifier,omitempty"`

	// Admin is seeded from the environment only and never written to disk.
	Admin AdminConfig `json:"-"`
}

// AIConfig selects the language model provider.
type AIConfig struct {
	Provider       string `json:"provider,omitempty" env:"ECOEATS_AI_PROVIDER"`
	Model          string `json:"model,omitempty" env:"ECOEATS_AI_MODEL"`
	VisionModel    string `json:"vision_model,omitempty" env:"ECOEATS_AI_VISION_MODEL"`
	BaseURL        string `json:"base_url,omitempty" env:"OPENAI_BASE_URL"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" env:"ECOEATS_AI_TIMEOUT"`
	CacheMinutes   int    `json:"cache_minutes,omitempty" env:"ECOEATS_AI_CACHE_MINUTES"`
	OpenAIKey      string `json:"-" env:"OPENAI_API_KEY"`
	GeminiKey      string `json:"-" env:"GEMINI_API_KEY"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr       string `json:"addr,omitempty" env:"ECOEATS_ADDR"`
	JWTSecret  string `json:"-" env:"ECOEATS_JWT_SECRET"`
	TokenHours int    `json:"token_hours,omitempty" env:"ECOEATS_TOKEN_HOURS"`
}

// ImageConfig selects where uploaded photos are kept.
type ImageConfig struct {
	Backend string `json:"backend,omitempty" env:"ECOEATS_IMAGE_BACKEND"`
	Bucket  string `json:"bucket,omitempty" env:"ECOEATS_S3_BUCKET"`
	Prefix  string `json:"prefix,omitempty" env:"ECOEATS_S3_PREFIX"`
	Region  string `json:"region,omitempty" env:"AWS_REGION"`
}

// ClassifierConfig enables Rekognition label detection.
type ClassifierConfig struct {
	Enabled bool   `json:"enabled,omitempty" env:"ECOEATS_REKOGNITION"`
	Region  string `json:"region,omitempty" env:"AWS_REGION"`
}

// AdminConfig seeds an account that can log in over HTTP.
type AdminConfig struct {
	Username string `env:"ECOEATS_ADMIN_USER"`
	Password string `env:"ECOEATS_ADMIN_PASSWORD"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUsername returns the CLI identity, defaulting to the OS user.
func (c *Config) GetUsername() string {
	if c.Username != "" {
		return c.Username
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// GetAddr returns the HTTP listen address.
func (c *Config) GetAddr() string {
	if c.Server.Addr == "" {
		return ":8080"
	}
	return c.Server.Addr
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Server.TokenHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(c.Server.TokenHours) * time.Hour
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (*storage.DB, error) {
	switch backend := c.GetBackend(); backend {
	case "sqlite":
		return storage.Open(filepath.Join(c.GetDataDir(), "ecoeats.db"))
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires database_url or ECOEATS_DATABASE_URL")
		}
		return storage.OpenPostgres(c.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// AIOptions translates the AI section into provider options.
func (c *Config) AIOptions() ai.Options {
	provider := strings.ToLower(c.AI.Provider)
	key := c.AI.OpenAIKey
	if provider == "gemini" {
		key = c.AI.GeminiKey
	} else if provider == "" && key == "" && c.AI.GeminiKey != "" {
		provider, key = "gemini", c.AI.GeminiKey
	}
	return ai.Options{
		Provider:    provider,
		APIKey:      key,
		BaseURL:     c.AI.BaseURL,
		Model:       c.AI.Model,
		VisionModel: c.AI.VisionModel,
		Timeout:     time.Duration(c.AI.TimeoutSeconds) * time.Second,
	}
}

// CacheTTL returns how long AI responses are cached.
func (c *Config) CacheTTL() time.Duration {
	if c.AI.CacheMinutes < 0 {
		return 0
	}
	if c.AI.CacheMinutes == 0 {
		return time.Hour
	}
	return time.Duration(c.AI.CacheMinutes) * time.Minute
}

// OpenAssistant builds the AI assistant for the configured provider.
func (c *Config) OpenAssistant(ctx context.Context, logger *zap.Logger) (*ai.Assistant, error) {
	provider, err := ai.NewProvider(ctx, c.AIOptions())
	if err != nil {
		return nil, err
	}
	return ai.NewAssistant(provider, ai.WithLogger(logger), ai.WithCacheTTL(c.CacheTTL()))
}

// OpenImageStore returns the configured photo store.
func (c *Config) OpenImageStore(ctx context.Context) (media.Store, error) {
	switch backend := strings.ToLower(c.Images.Backend); backend {
	case "", "database":
		return media.NewDatabaseStore(), nil
	case "s3":
		return media.OpenS3Store(ctx, c.Images.Region, c.Images.Bucket, c.Images.Prefix)
	default:
		return nil, fmt.Errorf("unknown image backend: %q", backend)
	}
}

// OpenClassifier returns the Rekognition classifier, or nil when disabled.
func (c *Config) OpenClassifier(ctx context.Context) (*ai.Classifier, error) {
	if !c.Classifier.Enabled {
		return nil, nil
	}
	return ai.NewRekognitionClassifier(ctx, c.Classifier.Region)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "ecoeats", "config.json")
}

// Load reads config from disk, then applies .env and environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv loads a .env file from the working directory when present and
// overlays ECOEATS_* and provider variables onto the config.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	targets := []interface{}{c, &c.AI, &c.Server, &c.Images, &c.Classifier, &c.Admin}
	for _, target := range targets {
		if err := env.Parse(target); err != nil {
			return fmt.Errorf("parse environment: %w", err)
		}
	}
	return nil
}

// Save writes config to disk. Secrets are never written.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ABOUTME: Assistant wraps a Provider with the app's system prompt, caching and fallbacks.
// ABOUTME: Generation never fails; errors are logged and replaced with canned apologies.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"
)

const (
	// SystemPrompt frames every text completion.
	SystemPrompt = "You are a helpful assistant for an eco-friendly food tracking app."

	FallbackResponse = "I'm sorry, I couldn't generate a response at this time."
	FallbackImage    = "I'm sorry, I couldn't analyze the image at this time."
	FallbackGrocery  = "I'm sorry, I couldn't analyze the grocery list at this time."

	DefaultMaxTokens = 150
	VisionMaxTokens  = 300

	defaultCacheTTL = time.Hour
)

// Assistant generates app copy through a Provider.
type Assistant struct {
	provider Provider
	logger   *zap.Logger
	system   string
	cache    *ristretto.Cache
	cacheTTL time.Duration
}

// Option customises an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger used for provider failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCacheTTL sets how long text completions are cached; zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(a *Assistant) { a.cacheTTL = ttl }
}

// WithSystemPrompt replaces the default system prompt.
func WithSystemPrompt(system string) Option {
	return func(a *Assistant) { a.system = system }
}

// NewAssistant creates an Assistant around a provider.
func NewAssistant(p Provider, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		provider: p,
		logger:   zap.NewNop(),
		system:   SystemPrompt,
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.cacheTTL > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: 10_000,
			MaxCost:     4 << 20,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("create response cache: %w", err)
		}
		a.cache = cache
	}
	return a, nil
}

// ProviderName reports which provider backs the assistant.
func (a *Assistant) ProviderName() string {
	return a.provider.Name()
}

// Generate answers a text prompt. maxTokens <= 0 uses DefaultMaxTokens.
func (a *Assistant) Generate(ctx context.Context, prompt string, maxTokens int) string {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	key := fmt.Sprintf("%s|%d|%s", a.provider.Name(), maxTokens, prompt)
	if a.cache != nil {
		if v, ok := a.cache.Get(key); ok {
			return v.(string)
		}
	}

	text, err := a.provider.Complete(ctx, a.system, prompt, maxTokens)
	if err != nil || text == "" {
		a.logger.Warn("ai response generation failed",
			zap.String("provider", a.provider.Name()),
			zap.Error(err))
		return FallbackResponse
	}

	if a.cache != nil {
		a.cache.SetWithTTL(key, text, int64(len(text)), a.cacheTTL)
	}
	return text
}

// AnalyzeImage answers a task about an image.
func (a *Assistant) AnalyzeImage(ctx context.Context, image []byte, mimeType, task string) string {
	return a.describe(ctx, image, mimeType, task, FallbackImage)
}

// AnalyzeGroceryList reviews a photographed grocery list for sustainability.
func (a *Assistant) AnalyzeGroceryList(ctx context.Context, image []byte, mimeType string) string {
	return a.describe(ctx, image, mimeType, GroceryListTask, FallbackGrocery)
}

func (a *Assistant) describe(ctx context.Context, image []byte, mimeType, task, fallback string) string {
	text, err := a.provider.Describe(ctx, image, mimeType, task, VisionMaxTokens)
	if err != nil || text == "" {
		a.logger.Warn("ai image analysis failed",
			zap.String("provider", a.provider.Name()),
			zap.Int("image_bytes", len(image)),
			zap.Error(err))
		return fallback
	}
	return text
}

// IsFallback reports whether text is one of the canned apologies.
func IsFallback(text string) bool {
	return text == FallbackResponse || text == FallbackImage || text == FallbackGrocery
}

// Close releases the response cache.
func (a *Assistant) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

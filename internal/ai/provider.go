// ABOUTME: Provider interface for hosted language models and the factory that picks one.
// ABOUTME: Supports OpenAI, Gemini and an offline provider with canned copy.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoVision is returned by providers that cannot look at images.
var ErrNoVision = errors.New("provider does not support image analysis")

// Provider generates text from prompts and images.
type Provider interface {
	// Name identifies the provider in logs and cache keys.
	Name() string
	// Complete answers a text prompt under the given system prompt.
	Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error)
	// Describe answers a task about an image.
	Describe(ctx context.Context, image []byte, mimeType, task string, maxTokens int) (string, error)
}

// Options selects and configures a provider.
type Options struct {
	Provider    string // openai, gemini or offline
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
	Timeout     time.Duration
}

// NewProvider builds the provider named in opts. A missing API key selects
// the offline provider so the app stays usable without credentials.
func NewProvider(ctx context.Context, opts Options) (Provider, error) {
	name := strings.ToLower(strings.TrimSpace(opts.Provider))
	if name != "offline" && opts.APIKey == "" {
		return NewOfflineProvider(), nil
	}

	switch name {
	case "", "openai":
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:      opts.APIKey,
			BaseURL:     opts.BaseURL,
			Model:       opts.Model,
			VisionModel: opts.VisionModel,
			Timeout:     opts.Timeout,
		}), nil
	case "gemini":
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:  opts.APIKey,
			Model:   opts.Model,
			Timeout: opts.Timeout,
		})
	case "offline":
		return NewOfflineProvider(), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q (use openai, gemini or offline)", opts.Provider)
	}
}

// withTimeout applies a deadline when the caller did not set one.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

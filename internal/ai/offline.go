// ABOUTME: Offline provider returning canned sustainability copy.
// ABOUTME: Used when no API key is configured and in tests.
package ai

import (
	"context"
	"hash/fnv"
)

// CannedResponses are the offline answers, chosen by prompt.
var CannedResponses = []string{
	"Remember to always be mindful of your food consumption to reduce waste.",
	"Eating a balanced diet is key to maintaining good health.",
	"Small changes in your eating habits can lead to big improvements in sustainability.",
	"Stay hydrated and eat plenty of fruits and vegetables for optimal health.",
	"Planning your meals in advance can help reduce food waste significantly.",
}

// OfflineProvider answers without any network access.
type OfflineProvider struct{}

// NewOfflineProvider returns the offline provider.
func NewOfflineProvider() *OfflineProvider {
	return &OfflineProvider{}
}

// Name implements Provider.
func (p *OfflineProvider) Name() string { return "offline" }

// Complete returns a canned response; the same prompt always gets the same answer.
func (p *OfflineProvider) Complete(_ context.Context, _, prompt string, _ int) (string, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return CannedResponses[int(h.Sum32()%uint32(len(CannedResponses)))], nil
}

// Describe implements Provider; offline mode cannot see images.
func (p *OfflineProvider) Describe(context.Context, []byte, string, string, int) (string, error) {
	return "", ErrNoVision
}

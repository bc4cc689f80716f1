// ABOUTME: Tests for logger construction.
// ABOUTME: Verifies level parsing and the no-op fallback.
package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		json    bool
		enabled zapcore.Level
		wantErr bool
	}{
		{"debug", false, zapcore.DebugLevel, false},
		{"warn", true, zapcore.WarnLevel, false},
		{"error", false, zapcore.ErrorLevel, false},
		{"loud", false, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, err := New(tt.level, tt.json)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for invalid level")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if !logger.Core().Enabled(tt.enabled) {
				t.Errorf("level %s should be enabled", tt.enabled)
			}
			if tt.enabled > zapcore.DebugLevel && logger.Core().Enabled(tt.enabled-1) {
				t.Errorf("level %s should be disabled", tt.enabled-1)
			}
		})
	}
}

func TestMustFallsBackToNop(t *testing.T) {
	logger := Must("nonsense", false)
	if logger == nil {
		t.Fatal("Must returned nil")
	}
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("fallback logger should be a no-op")
	}
}

package main

import (
	"errors"
	"fmt"
	"testing"

	"GoldSentinel/internal/notifier"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"delivery failed", fmt.Errorf("deliver signal: %w", notifier.ErrDeliveryFailed), 1},
		{"indicator error", errors.New("compute indicators: insufficient data"), 0},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

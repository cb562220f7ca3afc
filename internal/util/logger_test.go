package util

import "testing"

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		logger, err := NewLogger(level, "")
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", level, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%q) returned nil logger", level)
		}
	}
}

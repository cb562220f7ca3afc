package command

import (
	"testing"

	"github.com/schnose/schnose-bot-go/internal/domain"
)

func TestFormatUnfinishedLine(t *testing.T) {
	m := &domain.GlobalMap{Name: "kz_eventide", Tier: 3}

	got := formatUnfinishedLine(1, m, domain.ModeSimpleKZ, 0)
	want := "1. [kz_eventide](https://kzgo.eu/maps/kz_eventide?skz=) (T3)"
	if got != want {
		t.Errorf("formatUnfinishedLine = %q, want %q", got, want)
	}

	// Tier-filtered lists drop the redundant suffix.
	got = formatUnfinishedLine(2, m, domain.ModeSimpleKZ, 3)
	want = "2. [kz_eventide](https://kzgo.eu/maps/kz_eventide?skz=)"
	if got != want {
		t.Errorf("formatUnfinishedLine tier filter = %q, want %q", got, want)
	}
}

func TestFormatHolderLine(t *testing.T) {
	if got := formatHolderLine(1, "AlphaKeks", 42); got != "1. AlphaKeks (42 records)" {
		t.Errorf("formatHolderLine = %q", got)
	}
	if got := formatHolderLine(100, "jucci", 1); got != "100. jucci (1 record)" {
		t.Errorf("formatHolderLine singular = %q", got)
	}
}

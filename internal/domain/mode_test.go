package domain

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
	}{
		{"KZTimer", ModeKZTimer},
		{"kzt", ModeKZTimer},
		{"kz_timer", ModeKZTimer},
		{"SimpleKZ", ModeSimpleKZ},
		{"SKZ", ModeSimpleKZ},
		{"kz_simple", ModeSimpleKZ},
		{"Vanilla", ModeVanilla},
		{"vnl", ModeVanilla},
		{"kz_vanilla", ModeVanilla},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if err != nil {
			t.Errorf("ParseMode(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseMode("kreedz"); err == nil {
		t.Error("ParseMode(kreedz) succeeded, want error")
	}
}

func TestModeWireRoundTrip(t *testing.T) {
	for _, mode := range Modes() {
		parsed, err := ParseMode(mode.APIName())
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", mode.APIName(), err)
		}
		if parsed != mode {
			t.Errorf("wire round trip changed mode: %v != %v", parsed, mode)
		}

		fromID, err := ModeFromID(uint8(mode))
		if err != nil {
			t.Fatalf("ModeFromID(%d) returned error: %v", uint8(mode), err)
		}
		if fromID != mode {
			t.Errorf("id round trip changed mode: %v != %v", fromID, mode)
		}
	}

	if _, err := ModeFromID(199); err == nil {
		t.Error("ModeFromID(199) succeeded, want error")
	}
}

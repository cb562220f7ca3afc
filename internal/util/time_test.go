package util

import "testing"

func TestFormatRunTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"sub minute", 31.248, "00:31.248"},
		{"whole seconds", 62.0, "01:02.000"},
		{"minutes", 123.456, "02:03.456"},
		{"just under an hour", 3599.999, "59:59.999"},
		{"over an hour", 3723.001, "01:02:03.001"},
		{"zero", 0, "00:00.000"},
		{"negative clamps to zero", -5, "00:00.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRunTime(tt.seconds); got != tt.want {
				t.Errorf("FormatRunTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestNocrouch(t *testing.T) {
	got := Nocrouch(268.5, 320)
	want := 268.5 + 10.0
	if got != want {
		t.Errorf("Nocrouch(268.5, 320) = %v, want %v", got, want)
	}
}

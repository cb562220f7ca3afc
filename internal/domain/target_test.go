package domain

import (
	"errors"
	"testing"

	boterrors "github.com/schnose/schnose-bot-go/pkg/errors"
)

func strptr(s string) *string {
	return &s
}

func TestParseTargetOmitted(t *testing.T) {
	target, err := ParseTarget(nil, 291585142164815873)
	if err != nil {
		t.Fatalf("ParseTarget(nil) returned error: %v", err)
	}
	if target.Kind != TargetUnspecified {
		t.Errorf("Kind = %v, want TargetUnspecified", target.Kind)
	}
	if target.UserID != 291585142164815873 {
		t.Errorf("UserID = %d, want caller id", target.UserID)
	}
}

func TestParseTargetEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := ParseTarget(strptr(input), 1)
		if err == nil {
			t.Fatalf("ParseTarget(%q) succeeded, want EmptyInputError", input)
		}

		var emptyErr *boterrors.EmptyInputError
		if !errors.As(err, &emptyErr) {
			t.Fatalf("ParseTarget(%q) error type = %T, want EmptyInputError", input, err)
		}
		if emptyErr.Expected != "User identifier" {
			t.Errorf("Expected = %q, want %q", emptyErr.Expected, "User identifier")
		}
	}
}

func TestParseTargetSteamID(t *testing.T) {
	// Every accepted encoding must collapse into the same canonical id.
	for _, input := range []string{"STEAM_1:1:161178172", "76561198282622073", "322356345", "U:1:322356345"} {
		target, err := ParseTarget(strptr(input), 1)
		if err != nil {
			t.Fatalf("ParseTarget(%q) returned error: %v", input, err)
		}
		if target.Kind != TargetSteamID {
			t.Fatalf("ParseTarget(%q) Kind = %v, want TargetSteamID", input, target.Kind)
		}
		if got := target.SteamID.String(); got != "STEAM_1:1:161178172" {
			t.Errorf("ParseTarget(%q) canonical id = %q, want STEAM_1:1:161178172", input, got)
		}
	}
}

func TestParseTargetMention(t *testing.T) {
	target, err := ParseTarget(strptr("<@291585142164815873>"), 1)
	if err != nil {
		t.Fatalf("ParseTarget returned error: %v", err)
	}
	if target.Kind != TargetMention {
		t.Fatalf("Kind = %v, want TargetMention", target.Kind)
	}
	if target.UserID != 291585142164815873 {
		t.Errorf("UserID = %d, want 291585142164815873", target.UserID)
	}

	// Whitespace inside the token is not tolerated; it falls through to Name.
	loose, err := ParseTarget(strptr("<@ 123>"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if loose.Kind != TargetName {
		t.Errorf("Kind = %v, want TargetName for malformed mention", loose.Kind)
	}
}

func TestParseTargetName(t *testing.T) {
	target, err := ParseTarget(strptr("  AlphaKeks  "), 1)
	if err != nil {
		t.Fatalf("ParseTarget returned error: %v", err)
	}
	if target.Kind != TargetName {
		t.Fatalf("Kind = %v, want TargetName", target.Kind)
	}
	if target.Name != "AlphaKeks" {
		t.Errorf("Name = %q, want trimmed input", target.Name)
	}
}

func TestParseTargetIdempotent(t *testing.T) {
	inputs := []string{"STEAM_1:1:161178172", "<@291585142164815873>", "AlphaKeks"}

	for _, input := range inputs {
		first, err := ParseTarget(strptr(input), 1)
		if err != nil {
			t.Fatal(err)
		}

		canonical := first.String()
		second, err := ParseTarget(&canonical, 1)
		if err != nil {
			t.Fatalf("re-parsing %q returned error: %v", canonical, err)
		}
		if second != first {
			t.Errorf("re-parsing %q changed target: %+v != %+v", canonical, second, first)
		}
	}
}

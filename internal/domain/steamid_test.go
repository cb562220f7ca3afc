package domain

import "testing"

func TestParseSteamIDEncodings(t *testing.T) {
	// All encodings of the same account.
	inputs := []string{
		"STEAM_1:1:161178172",
		"STEAM_0:1:161178172",
		"U:1:322356345",
		"[U:1:322356345]",
		"76561198282622073",
		"322356345",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			sid, err := ParseSteamID(input)
			if err != nil {
				t.Fatalf("ParseSteamID(%q) returned error: %v", input, err)
			}
			if got := sid.String(); got != "STEAM_1:1:161178172" {
				t.Errorf("canonical form = %q, want STEAM_1:1:161178172", got)
			}
			if got := sid.ID32(); got != 322356345 {
				t.Errorf("ID32() = %d, want 322356345", got)
			}
			if got := sid.ID64(); got != 76561198282622073 {
				t.Errorf("ID64() = %d, want 76561198282622073", got)
			}
		})
	}
}

func TestParseSteamIDInvalid(t *testing.T) {
	inputs := []string{
		"",
		"AlphaKeks",
		"STEAM_1:2:123",
		"U:1:0",
		"0",
		"76561197960265728", // offset itself, account id 0
		"not:a:steamid",
	}

	for _, input := range inputs {
		if _, err := ParseSteamID(input); err == nil {
			t.Errorf("ParseSteamID(%q) succeeded, want error", input)
		}
	}
}

func TestSteamIDRoundTrip(t *testing.T) {
	sid, err := ParseSteamID("STEAM_1:0:123456")
	if err != nil {
		t.Fatal(err)
	}

	again, err := ParseSteamID(sid.String())
	if err != nil {
		t.Fatalf("re-parsing canonical form failed: %v", err)
	}
	if again != sid {
		t.Errorf("round trip changed value: %v != %v", again, sid)
	}

	from64, err := SteamIDFromID64(sid.ID64())
	if err != nil {
		t.Fatal(err)
	}
	if from64 != sid {
		t.Errorf("SteamIDFromID64 mismatch: %v != %v", from64, sid)
	}
}

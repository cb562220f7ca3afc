package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// steamID64Offset is the base account id of the public Steam universe.
const steamID64Offset uint64 = 76561197960265728

var (
	legacySteamIDPattern    = regexp.MustCompile(`^STEAM_[0-5]:[01]:\d+$`)
	communitySteamIDPattern = regexp.MustCompile(`^\[?U:1:(\d+)\]?$`)
)

// SteamID is a player's global account id (the 32-bit form). The canonical
// textual encoding is the legacy `STEAM_1:Y:Z` form; `U:1:N`, the 64-bit
// decimal form and the plain 32-bit decimal form are accepted on parse.
type SteamID uint32

// ParseSteamID parses any of the accepted textual encodings.
func ParseSteamID(input string) (SteamID, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty steam id")
	}

	if legacySteamIDPattern.MatchString(input) {
		parts := strings.Split(strings.TrimPrefix(input, "STEAM_"), ":")
		y, err := strconv.ParseUint(parts[1], 10, 1)
		if err != nil {
			return 0, fmt.Errorf("invalid steam id %q: %w", input, err)
		}
		z, err := strconv.ParseUint(parts[2], 10, 31)
		if err != nil {
			return 0, fmt.Errorf("invalid steam id %q: %w", input, err)
		}
		return SteamID(z*2 + y), nil
	}

	if match := communitySteamIDPattern.FindStringSubmatch(input); match != nil {
		id32, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil || id32 == 0 {
			return 0, fmt.Errorf("invalid steam id %q", input)
		}
		return SteamID(id32), nil
	}

	n, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid steam id %q", input)
	}

	if n >= steamID64Offset {
		id32 := n - steamID64Offset
		if id32 == 0 || id32 > uint64(^uint32(0)) {
			return 0, fmt.Errorf("steam id %q out of range", input)
		}
		return SteamID(id32), nil
	}

	if n == 0 || n > uint64(^uint32(0)) {
		return 0, fmt.Errorf("steam id %q out of range", input)
	}
	return SteamID(n), nil
}

// SteamIDFromID64 converts a 64-bit Steam id.
func SteamIDFromID64(id64 uint64) (SteamID, error) {
	if id64 < steamID64Offset {
		return 0, fmt.Errorf("invalid steam id64 %d", id64)
	}
	id32 := id64 - steamID64Offset
	if id32 == 0 || id32 > uint64(^uint32(0)) {
		return 0, fmt.Errorf("invalid steam id64 %d", id64)
	}
	return SteamID(id32), nil
}

// SteamIDFromID32 converts a 32-bit account id.
func SteamIDFromID32(id32 uint32) SteamID {
	return SteamID(id32)
}

func (s SteamID) IsValid() bool {
	return s != 0
}

func (s SteamID) ID32() uint32 {
	return uint32(s)
}

func (s SteamID) ID64() uint64 {
	return steamID64Offset + uint64(s)
}

// String returns the canonical legacy encoding.
func (s SteamID) String() string {
	return fmt.Sprintf("STEAM_1:%d:%d", uint32(s)&1, uint32(s)>>1)
}

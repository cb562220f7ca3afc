package domain

import (
	"fmt"
	"strings"
)

// Mode is a KZ game mode. The numeric values match the GlobalAPI mode ids.
type Mode uint8

const (
	ModeKZTimer  Mode = 200
	ModeSimpleKZ Mode = 201
	ModeVanilla  Mode = 202
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeKZTimer, ModeSimpleKZ, ModeVanilla}
}

func (m Mode) String() string {
	switch m {
	case ModeKZTimer:
		return "KZTimer"
	case ModeSimpleKZ:
		return "SimpleKZ"
	case ModeVanilla:
		return "Vanilla"
	default:
		return "unknown"
	}
}

// Short returns the community abbreviation.
func (m Mode) Short() string {
	switch m {
	case ModeKZTimer:
		return "KZT"
	case ModeSimpleKZ:
		return "SKZ"
	case ModeVanilla:
		return "VNL"
	default:
		return "?"
	}
}

// APIName returns the GlobalAPI wire name (modes_list_string).
func (m Mode) APIName() string {
	switch m {
	case ModeKZTimer:
		return "kz_timer"
	case ModeSimpleKZ:
		return "kz_simple"
	case ModeVanilla:
		return "kz_vanilla"
	default:
		return ""
	}
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeKZTimer, ModeSimpleKZ, ModeVanilla:
		return true
	default:
		return false
	}
}

// ParseMode maps any accepted textual encoding (display name, abbreviation,
// wire name) back to a Mode.
func ParseMode(input string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "kztimer", "kzt", "kz_timer":
		return ModeKZTimer, nil
	case "simplekz", "skz", "kz_simple":
		return ModeSimpleKZ, nil
	case "vanilla", "vnl", "kz_vanilla":
		return ModeVanilla, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", input)
	}
}

// ModeFromID converts a stored numeric mode id.
func ModeFromID(id uint8) (Mode, error) {
	mode := Mode(id)
	if !mode.IsValid() {
		return 0, fmt.Errorf("unknown mode id %d", id)
	}
	return mode, nil
}

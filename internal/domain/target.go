package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/schnose/schnose-bot-go/pkg/errors"
)

// TargetKind enumerates the ways a user can point a command at a player.
type TargetKind uint8

const (
	// TargetUnspecified means no target was given; the caller is the target.
	TargetUnspecified TargetKind = iota

	// TargetMention means the caller @mention'd another Discord user.
	TargetMention

	// TargetSteamID means the caller supplied a parseable SteamID.
	TargetSteamID

	// TargetName means the caller supplied free text we treat as a name.
	TargetName
)

var mentionPattern = regexp.MustCompile(`^<@(\d+)>$`)

// Target is the parsed form of a command's `player` option.
type Target struct {
	Kind    TargetKind
	UserID  uint64
	SteamID SteamID
	Name    string
}

// ParseTarget interprets the raw `player` option. A nil input means the option
// was omitted entirely and the calling user becomes the target. For a present
// input, interpretations are tried in strict priority order: SteamID, then
// mention, then plain name. A present-but-blank input is an error.
func ParseTarget(input *string, callerID uint64) (Target, error) {
	if input == nil {
		return Target{Kind: TargetUnspecified, UserID: callerID}, nil
	}

	text := strings.TrimSpace(*input)
	if text == "" {
		return Target{}, errors.NewEmptyInputError("User identifier")
	}

	if steamID, err := ParseSteamID(text); err == nil {
		return Target{Kind: TargetSteamID, SteamID: steamID}, nil
	}

	if match := mentionPattern.FindStringSubmatch(text); match != nil {
		// The pattern guarantees digits only, so this parse cannot fail
		// except on overflow, which no real Discord snowflake hits.
		userID, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			return Target{}, fmt.Errorf("invalid mention %q: %w", text, err)
		}
		return Target{Kind: TargetMention, UserID: userID}, nil
	}

	return Target{Kind: TargetName, Name: text}, nil
}

// String returns the canonical textual form of the target.
func (t Target) String() string {
	switch t.Kind {
	case TargetUnspecified, TargetMention:
		return fmt.Sprintf("<@%d>", t.UserID)
	case TargetSteamID:
		return t.SteamID.String()
	case TargetName:
		return t.Name
	default:
		return ""
	}
}

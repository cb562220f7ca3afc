package discord

import (
	"context"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// GuildMemberLookup resolves guild member display names through the gateway
// state, falling back to the REST API on a cache miss.
type GuildMemberLookup struct {
	session *discordgo.Session
}

func NewGuildMemberLookup(session *discordgo.Session) *GuildMemberLookup {
	return &GuildMemberLookup{session: session}
}

// MemberDisplayName returns the member's guild nick when set, otherwise their
// username. The second return is false when the member cannot be found or the
// lookup happens outside a guild.
func (l *GuildMemberLookup) MemberDisplayName(ctx context.Context, guildID string, userID uint64) (string, bool) {
	if l == nil || l.session == nil || guildID == "" {
		return "", false
	}

	id := strconv.FormatUint(userID, 10)

	member, err := l.session.State.Member(guildID, id)
	if err != nil {
		member, err = l.session.GuildMember(guildID, id, discordgo.WithContext(ctx))
		if err != nil {
			return "", false
		}
	}

	if member.Nick != "" {
		return member.Nick, true
	}
	if member.User != nil && member.User.Username != "" {
		return member.User.Username, true
	}
	return "", false
}

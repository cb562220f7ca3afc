package service

import (
	"context"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"go.uber.org/zap"
)

// UserStore is the preference lookup consumed by the resolver. All methods
// return (nil, nil) for "not found"; errors are treated the same way.
type UserStore interface {
	GetByDiscordID(ctx context.Context, discordID uint64) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	GetBySteamID(ctx context.Context, steamID domain.SteamID) (*domain.User, error)
}

// MemberLookup resolves a guild member's display name, best-effort.
type MemberLookup interface {
	MemberDisplayName(ctx context.Context, guildID string, userID uint64) (string, bool)
}

// Resolver turns parsed targets into concrete player query keys. Resolution
// is total: every branch terminates in a usable identifier, and lookup
// failures degrade to the next fallback instead of propagating.
type Resolver struct {
	users   UserStore
	members MemberLookup
	logger  *zap.Logger
}

func NewResolver(users UserStore, members MemberLookup, logger *zap.Logger) *Resolver {
	return &Resolver{
		users:   users,
		members: members,
		logger:  logger,
	}
}

// ResolvePlayer expands a target into the query key for record fetches.
//
// For Unspecified and Mention targets the fallback chain is: saved SteamID,
// saved username, guild display name, caller's own name. SteamID and Name
// targets are used directly without any lookup.
func (r *Resolver) ResolvePlayer(ctx context.Context, target domain.Target, guildID, callerName string) domain.PlayerIdentifier {
	switch target.Kind {
	case domain.TargetSteamID:
		return domain.PlayerFromSteamID(target.SteamID)

	case domain.TargetName:
		return domain.PlayerFromName(target.Name)

	default: // TargetUnspecified, TargetMention
		user, err := r.users.GetByDiscordID(ctx, target.UserID)
		if err != nil {
			r.logger.Debug("Preference lookup failed, falling back",
				zap.Uint64("user_id", target.UserID),
				zap.Error(err),
			)
			user = nil
		}

		if user != nil {
			if user.HasSteamID() {
				return domain.PlayerFromSteamID(*user.SteamID)
			}
			if user.Name != "" {
				return domain.PlayerFromName(user.Name)
			}
		}

		if r.members != nil && guildID != "" {
			if name, ok := r.members.MemberDisplayName(ctx, guildID, target.UserID); ok {
				return domain.PlayerFromName(name)
			}
		}

		return domain.PlayerFromName(callerName)
	}
}

// ResolveMode applies the mode fallback chain shared by every record command:
// an explicit parameter wins, then the caller's saved preference, then the
// KZTimer default.
func (r *Resolver) ResolveMode(ctx context.Context, explicit *domain.Mode, callerID uint64) domain.Mode {
	if explicit != nil && explicit.IsValid() {
		return *explicit
	}

	user, err := r.users.GetByDiscordID(ctx, callerID)
	if err != nil {
		r.logger.Debug("Mode preference lookup failed, using default",
			zap.Uint64("user_id", callerID),
			zap.Error(err),
		)
		user = nil
	}

	if user.HasMode() {
		return *user.Mode
	}
	return domain.ModeKZTimer
}

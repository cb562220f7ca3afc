package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// RecentCommand shows a player's most recent personal best.
type RecentCommand struct {
	deps *Dependencies
}

func NewRecentCommand(deps *Dependencies) *RecentCommand {
	return &RecentCommand{deps: deps}
}

func (c *RecentCommand) Name() string {
	return "recent"
}

func (c *RecentCommand) Description() string {
	return "Check a player's most recent personal best"
}

func (c *RecentCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{playerOption()}
}

func (c *RecentCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	target, err := resolveTarget(cmdCtx, opts)
	if err != nil {
		return c.deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	player := c.deps.Resolver.ResolvePlayer(ctx, target, cmdCtx.GuildID, cmdCtx.CallerName)

	records, err := c.deps.GlobalAPI.GetRecent(ctx, player, 1)
	if err != nil {
		return c.deps.RespondError(cmdCtx, userErrorMessage(err))
	}
	if len(records) == 0 {
		return c.deps.RespondError(cmdCtx, noRecordsMessage)
	}

	rec := &records[0]
	entry := c.deps.Records.NormalizeWithPlacement(ctx, rec, rec.Teleports > 0)
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatRecentRun(rec, entry))
}

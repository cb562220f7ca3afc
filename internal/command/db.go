package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// DBCommand shows the caller's saved preferences.
type DBCommand struct {
	deps *Dependencies
}

func NewDBCommand(deps *Dependencies) *DBCommand {
	return &DBCommand{deps: deps}
}

func (c *DBCommand) Name() string {
	return "db"
}

func (c *DBCommand) Description() string {
	return "Check your current saved preferences"
}

func (c *DBCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

func (c *DBCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	user, err := c.deps.Users.GetByDiscordID(ctx, cmdCtx.CallerID)
	if err != nil {
		return c.deps.RespondError(cmdCtx, userErrorMessage(err))
	}
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatUserSettings(cmdCtx.CallerTag, user))
}

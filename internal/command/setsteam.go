package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/domain"
)

// SetSteamCommand saves the caller's SteamID for later commands.
type SetSteamCommand struct {
	deps *Dependencies
}

func NewSetSteamCommand(deps *Dependencies) *SetSteamCommand {
	return &SetSteamCommand{deps: deps}
}

func (c *SetSteamCommand) Name() string {
	return "setsteam"
}

func (c *SetSteamCommand) Description() string {
	return "Save your SteamID in the bot's database"
}

func (c *SetSteamCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "steam_id",
			Description: "e.g. STEAM_1:1:161178172, U:1:322356345 or 76561198282622073 (\"none\" to clear)",
			Required:    true,
		},
	}
}

func (c *SetSteamCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	raw := opts.String("steam_id")
	if raw == nil {
		return c.deps.RespondError(cmdCtx, "Please provide a SteamID.")
	}

	if *raw == "none" {
		if _, err := c.deps.Users.SetSteamID(ctx, cmdCtx.CallerID, cmdCtx.CallerName, nil); err != nil {
			return c.deps.RespondError(cmdCtx, userErrorMessage(err))
		}
		return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation("Successfully cleared your SteamID."))
	}

	steamID, err := domain.ParseSteamID(*raw)
	if err != nil {
		return c.deps.RespondError(cmdCtx, fmt.Sprintf("`%s` is not a valid SteamID.", *raw))
	}

	hadPrevious, err := c.deps.Users.SetSteamID(ctx, cmdCtx.CallerID, cmdCtx.CallerName, &steamID)
	if err != nil {
		return c.deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	message := fmt.Sprintf("Successfully set SteamID `%s` for <@%d>!", steamID, cmdCtx.CallerID)
	if hadPrevious {
		message = fmt.Sprintf("Successfully updated SteamID for <@%d>! New value: `%s`", cmdCtx.CallerID, steamID)
	}
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation(message))
}

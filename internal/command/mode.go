package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ModeCommand saves or clears the caller's preferred mode.
type ModeCommand struct {
	deps *Dependencies
}

func NewModeCommand(deps *Dependencies) *ModeCommand {
	return &ModeCommand{deps: deps}
}

func (c *ModeCommand) Name() string {
	return "mode"
}

func (c *ModeCommand) Description() string {
	return "Save your preferred mode in the bot's database"
}

func (c *ModeCommand) Options() []*discordgo.ApplicationCommandOption {
	opt := modeOption()
	opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
		Name:  "None",
		Value: "none",
	})
	return []*discordgo.ApplicationCommandOption{opt}
}

func (c *ModeCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	raw := opts.String("mode")
	if raw == nil {
		// No option shows the current preference.
		user, err := c.deps.Users.GetByDiscordID(ctx, cmdCtx.CallerID)
		if err != nil {
			return c.deps.RespondError(cmdCtx, userErrorMessage(err))
		}
		if user == nil || !user.HasMode() {
			return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation("You have no preferred mode saved."))
		}
		return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation(
			fmt.Sprintf("Your preferred mode is `%s`.", user.Mode)))
	}

	if *raw == "none" {
		if _, err := c.deps.Users.SetMode(ctx, cmdCtx.CallerID, cmdCtx.CallerName, nil); err != nil {
			return c.deps.RespondError(cmdCtx, userErrorMessage(err))
		}
		return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation("Successfully cleared your preferred mode."))
	}

	mode := opts.Mode("mode")
	if mode == nil {
		return c.deps.RespondError(cmdCtx, fmt.Sprintf("`%s` is not a valid mode.", *raw))
	}

	if _, err := c.deps.Users.SetMode(ctx, cmdCtx.CallerID, cmdCtx.CallerName, mode); err != nil {
		return c.deps.RespondError(cmdCtx, userErrorMessage(err))
	}
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation(
		fmt.Sprintf("Successfully set mode `%s` for <@%d>!", mode, cmdCtx.CallerID)))
}

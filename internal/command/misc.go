package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// PingCommand answers with pong.
type PingCommand struct {
	deps *Dependencies
}

func NewPingCommand(deps *Dependencies) *PingCommand {
	return &PingCommand{deps: deps}
}

func (c *PingCommand) Name() string {
	return "ping"
}

func (c *PingCommand) Description() string {
	return "Pong!"
}

func (c *PingCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

func (c *PingCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatConfirmation("🏓 Pong!"))
}

// HelpCommand shows the command overview.
type HelpCommand struct {
	deps *Dependencies
}

func NewHelpCommand(deps *Dependencies) *HelpCommand {
	return &HelpCommand{deps: deps}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List all commands"
}

func (c *HelpCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

func (c *HelpCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatHelp())
}

// InviteCommand shows the bot's invite link.
type InviteCommand struct {
	deps *Dependencies
}

func NewInviteCommand(deps *Dependencies) *InviteCommand {
	return &InviteCommand{deps: deps}
}

func (c *InviteCommand) Name() string {
	return "invite"
}

func (c *InviteCommand) Description() string {
	return "Invite the bot to your server"
}

func (c *InviteCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

func (c *InviteCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatInvite(cmdCtx.Interaction.AppID))
}

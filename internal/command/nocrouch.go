package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/util"
)

// NocrouchCommand approximates the potential distance of an uncrouched jump.
type NocrouchCommand struct {
	deps *Dependencies
}

func NewNocrouchCommand(deps *Dependencies) *NocrouchCommand {
	return &NocrouchCommand{deps: deps}
}

func (c *NocrouchCommand) Name() string {
	return "nocrouch"
}

func (c *NocrouchCommand) Description() string {
	return "Approximate the potential distance of an uncrouched jump"
}

func (c *NocrouchCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "distance",
			Description: "The distance of the jump",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "max",
			Description: "The speed at the moment of the jump",
			Required:    true,
		},
	}
}

func (c *NocrouchCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	distance := opts.Float("distance")
	maxSpeed := opts.Float("max")
	if distance == nil || maxSpeed == nil {
		return c.deps.RespondError(cmdCtx, "Please provide both distance and max speed.")
	}

	potential := util.Nocrouch(*distance, *maxSpeed)
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatNocrouch(*distance, *maxSpeed, potential))
}

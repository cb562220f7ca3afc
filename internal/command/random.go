package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// RandomCommand suggests a random global map, optionally filtered by tier.
type RandomCommand struct {
	deps *Dependencies
}

func NewRandomCommand(deps *Dependencies) *RandomCommand {
	return &RandomCommand{deps: deps}
}

func (c *RandomCommand) Name() string {
	return "random"
}

func (c *RandomCommand) Description() string {
	return "Get a random map to play"
}

func (c *RandomCommand) Options() []*discordgo.ApplicationCommandOption {
	minValue := 1.0
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "tier",
			Description: "Filter by map tier",
			MinValue:    &minValue,
			MaxValue:    7,
		},
	}
}

func (c *RandomCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	tier := 0
	if v := opts.Int("tier"); v != nil {
		tier = *v
	}

	m, ok := c.deps.Maps.Random(tier)
	if !ok {
		return c.deps.RespondError(cmdCtx, fmt.Sprintf("No global maps with tier %d.", tier))
	}
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatRandomMap(m))
}

package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// MapCommand shows details about a global map.
type MapCommand struct {
	deps *Dependencies
}

func NewMapCommand(deps *Dependencies) *MapCommand {
	return &MapCommand{deps: deps}
}

func (c *MapCommand) Name() string {
	return "map"
}

func (c *MapCommand) Description() string {
	return "Get detailed information on a map"
}

func (c *MapCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption()}
}

func (c *MapCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	m, err := resolveMap(c.deps, opts)
	if err != nil {
		return c.deps.RespondError(cmdCtx, userErrorMessage(err))
	}
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatMapInfo(m))
}

package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// APIStatusCommand reports the GlobalAPI health summary.
type APIStatusCommand struct {
	deps *Dependencies
}

func NewAPIStatusCommand(deps *Dependencies) *APIStatusCommand {
	return &APIStatusCommand{deps: deps}
}

func (c *APIStatusCommand) Name() string {
	return "apistatus"
}

func (c *APIStatusCommand) Description() string {
	return "Check the GlobalAPI's current health status"
}

func (c *APIStatusCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

func (c *APIStatusCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	report, err := c.deps.GlobalAPI.CheckHealth(ctx)
	if err != nil {
		return c.deps.RespondError(cmdCtx, "Failed to reach the health endpoint.")
	}
	return c.deps.Respond(cmdCtx, c.deps.Formatter.FormatHealthReport(report))
}

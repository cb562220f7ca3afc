package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/constants"
)

const wrTopLimit = 100

// TopCommand shows the top 100 world record holders.
type TopCommand struct {
	deps *Dependencies
}

func NewTopCommand(deps *Dependencies) *TopCommand {
	return &TopCommand{deps: deps}
}

func (c *TopCommand) Name() string {
	return "top"
}

func (c *TopCommand) Description() string {
	return "Check the top 100 world record holders"
}

func (c *TopCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{modeOption(), runtypeOption()}
}

func (c *TopCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executeTop(ctx, c.deps, cmdCtx, opts, false)
}

// BTopCommand shows the top 100 bonus world record holders.
type BTopCommand struct {
	deps *Dependencies
}

func NewBTopCommand(deps *Dependencies) *BTopCommand {
	return &BTopCommand{deps: deps}
}

func (c *BTopCommand) Name() string {
	return "btop"
}

func (c *BTopCommand) Description() string {
	return "Check the top 100 bonus world record holders"
}

func (c *BTopCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{modeOption(), runtypeOption()}
}

func (c *BTopCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executeTop(ctx, c.deps, cmdCtx, opts, true)
}

func executeTop(ctx context.Context, deps *Dependencies, cmdCtx *Context, opts Options, bonus bool) error {
	mode := deps.Resolver.ResolveMode(ctx, opts.Mode("mode"), cmdCtx.CallerID)

	// Holder counts default to the PRO leaderboard.
	hasTeleports := false
	runtypeLabel := "PRO"
	if rt := opts.String("runtype"); rt != nil && *rt == "tp" {
		hasTeleports = true
		runtypeLabel = "TP"
	}

	holders, err := deps.GlobalAPI.GetWorldRecordTop(ctx, mode, hasTeleports, bonus, wrTopLimit)
	if err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	lines := make([]string, 0, len(holders))
	for i, holder := range holders {
		lines = append(lines, formatHolderLine(i+1, holder.PlayerName, holder.Count))
	}

	scope := "WR holders"
	if bonus {
		scope = "bonus WR holders"
	}
	title := fmt.Sprintf("[%s %s] Top %d %s", mode.Short(), runtypeLabel, len(holders), scope)
	url := fmt.Sprintf("%s?%s=", constants.URLConfig.KZGOLeaderboard, strings.ToLower(mode.Short()))

	pages := deps.Formatter.FormatLeaderboardPages(title, url, lines)
	return deps.Paginate(cmdCtx, pages)
}

func formatHolderLine(place int, name string, count int) string {
	records := "records"
	if count == 1 {
		records = "record"
	}
	return fmt.Sprintf("%d. %s (%d %s)", place, name, count, records)
}

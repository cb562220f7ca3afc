package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/constants"
	"github.com/schnose/schnose-bot-go/internal/domain"
)

// UnfinishedCommand lists the maps a player has not completed yet.
type UnfinishedCommand struct {
	deps *Dependencies
}

func NewUnfinishedCommand(deps *Dependencies) *UnfinishedCommand {
	return &UnfinishedCommand{deps: deps}
}

func (c *UnfinishedCommand) Name() string {
	return "unfinished"
}

func (c *UnfinishedCommand) Description() string {
	return "Check which maps you still have to finish"
}

func (c *UnfinishedCommand) Options() []*discordgo.ApplicationCommandOption {
	minValue := 1.0
	tier := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "tier",
		Description: "Filter by map tier",
		MinValue:    &minValue,
		MaxValue:    7,
	}
	return []*discordgo.ApplicationCommandOption{modeOption(), runtypeOption(), tier, playerOption()}
}

func (c *UnfinishedCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	deps := c.deps

	target, err := resolveTarget(cmdCtx, opts)
	if err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	mode := deps.Resolver.ResolveMode(ctx, opts.Mode("mode"), cmdCtx.CallerID)
	player := deps.Resolver.ResolvePlayer(ctx, target, cmdCtx.GuildID, cmdCtx.CallerName)

	// Completion defaults to the PRO leaderboard.
	hasTeleports := false
	runtypeLabel := "PRO"
	if rt := opts.String("runtype"); rt != nil && *rt == "tp" {
		hasTeleports = true
		runtypeLabel = "TP"
	}

	tier := 0
	if v := opts.Int("tier"); v != nil {
		tier = *v
	}

	completed, err := deps.GlobalAPI.GetCompletedMapIDs(ctx, player, mode, hasTeleports)
	if err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	unfinished := deps.Maps.Unfinished(completed, mode, hasTeleports, tier)
	if len(unfinished) == 0 {
		embed := deps.Formatter.FormatConfirmation("Congrats! You have no maps left to finish! 🥳")
		return deps.Respond(cmdCtx, embed)
	}

	lines := make([]string, 0, len(unfinished))
	for i, m := range unfinished {
		lines = append(lines, formatUnfinishedLine(i+1, &m, mode, tier))
	}

	title := fmt.Sprintf("[%s %s] %d unfinished maps for %s", mode.Short(), runtypeLabel, len(unfinished), player.String())
	if tier > 0 {
		title = fmt.Sprintf("%s [T%d]", title, tier)
	}

	url := ""
	if player.IsSteamID() {
		url = fmt.Sprintf("%s%s?%s=", constants.URLConfig.KZGOPlayerURL, player.SteamID.String(), strings.ToLower(mode.Short()))
	}

	pages := deps.Formatter.FormatLeaderboardPages(title, url, lines)
	return deps.Paginate(cmdCtx, pages)
}

// formatUnfinishedLine renders one map entry. The tier suffix is dropped when
// the list is already filtered to a single tier.
func formatUnfinishedLine(place int, m *domain.GlobalMap, mode domain.Mode, tier int) string {
	link := fmt.Sprintf("[%s](%s?%s=)", m.Name, m.KzgoLink(), strings.ToLower(mode.Short()))
	if tier > 0 || m.Tier == 0 {
		return fmt.Sprintf("%d. %s", place, link)
	}
	return fmt.Sprintf("%d. %s (T%d)", place, link, m.Tier)
}

package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service"
	"github.com/schnose/schnose-bot-go/internal/util"
)

const mapTopLimit = 100

// MapTopCommand shows the top 100 runs on a map's main course.
type MapTopCommand struct {
	deps *Dependencies
}

func NewMapTopCommand(deps *Dependencies) *MapTopCommand {
	return &MapTopCommand{deps: deps}
}

func (c *MapTopCommand) Name() string {
	return "maptop"
}

func (c *MapTopCommand) Description() string {
	return "Check the top 100 on a map"
}

func (c *MapTopCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption(), runtypeOption(), modeOption()}
}

func (c *MapTopCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executeMapTop(ctx, c.deps, cmdCtx, opts, 0)
}

// BMapTopCommand shows the top 100 runs on a bonus course.
type BMapTopCommand struct {
	deps *Dependencies
}

func NewBMapTopCommand(deps *Dependencies) *BMapTopCommand {
	return &BMapTopCommand{deps: deps}
}

func (c *BMapTopCommand) Name() string {
	return "bmaptop"
}

func (c *BMapTopCommand) Description() string {
	return "Check the top 100 on a bonus course"
}

func (c *BMapTopCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption(), courseOption(), runtypeOption(), modeOption()}
}

func (c *BMapTopCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executeMapTop(ctx, c.deps, cmdCtx, opts, 1)
}

func runtypeOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "runtype",
		Description: "TP or PRO leaderboard",
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "TP", Value: "tp"},
			{Name: "PRO", Value: "pro"},
		},
	}
}

func executeMapTop(ctx context.Context, deps *Dependencies, cmdCtx *Context, opts Options, defaultCourse int) error {
	m, err := resolveMap(deps, opts)
	if err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	course := 0
	if defaultCourse > 0 {
		if course, err = resolveCourse(m, opts); err != nil {
			return deps.RespondError(cmdCtx, userErrorMessage(err))
		}
	}

	mode := deps.Resolver.ResolveMode(ctx, opts.Mode("mode"), cmdCtx.CallerID)

	hasTeleports := true
	runtypeLabel := "TP"
	if rt := opts.String("runtype"); rt != nil && *rt == "pro" {
		hasTeleports = false
		runtypeLabel = "PRO"
	}

	records, err := deps.GlobalAPI.GetMapTop(ctx, m.ID, mode, hasTeleports, course, mapTopLimit)
	if err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}
	if len(records) == 0 {
		return deps.RespondError(cmdCtx, noRecordsMessage)
	}

	lines := make([]string, 0, len(records))
	for i, rec := range records {
		lines = append(lines, formatLeaderboardLine(i+1, &rec))
	}

	title := fmt.Sprintf("[%s %s] Top %d on %s", mode.Short(), runtypeLabel, len(records), m.Name)
	if course > 0 {
		title = fmt.Sprintf("%s B%d", title, course)
	}

	pages := deps.Formatter.FormatLeaderboardPages(title, m.KzgoLink(), lines)
	return deps.Paginate(cmdCtx, pages)
}

func formatLeaderboardLine(place int, rec *domain.RunRecord) string {
	line := fmt.Sprintf("%d. `%s` %s", place, util.FormatRunTime(rec.Time), rec.PlayerName)
	if annotation := service.TeleportAnnotation(rec.Teleports); annotation != "" {
		line = fmt.Sprintf("%s %s", line, annotation)
	}
	return line
}

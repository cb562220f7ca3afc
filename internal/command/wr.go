package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service"
)

// WRCommand shows the world records on a map's main course.
type WRCommand struct {
	deps *Dependencies
}

func NewWRCommand(deps *Dependencies) *WRCommand {
	return &WRCommand{deps: deps}
}

func (c *WRCommand) Name() string {
	return "wr"
}

func (c *WRCommand) Description() string {
	return "Check the world record on a map"
}

func (c *WRCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption(), modeOption()}
}

func (c *WRCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executeWR(ctx, c.deps, cmdCtx, opts, 0)
}

// BWRCommand shows the world records on a bonus course.
type BWRCommand struct {
	deps *Dependencies
}

func NewBWRCommand(deps *Dependencies) *BWRCommand {
	return &BWRCommand{deps: deps}
}

func (c *BWRCommand) Name() string {
	return "bwr"
}

func (c *BWRCommand) Description() string {
	return "Check the world record on a bonus course"
}

func (c *BWRCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption(), courseOption(), modeOption()}
}

func (c *BWRCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executeWR(ctx, c.deps, cmdCtx, opts, 1)
}

func executeWR(ctx context.Context, deps *Dependencies, cmdCtx *Context, opts Options, defaultCourse int) error {
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

	tp, tpErr, pro, proErr := fetchPair(func(hasTeleports bool) (*domain.RunRecord, error) {
		return deps.GlobalAPI.GetWR(ctx, m.ID, mode, hasTeleports, course)
	})
	if err := pairError(tp, tpErr, pro, proErr); err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	tpEntry, proEntry := deps.Records.NormalizePair(ctx, tp, tpErr, pro, proErr)

	title := fmt.Sprintf("[%s] WR on %s", mode.Short(), m.Name)
	if course > 0 {
		title = fmt.Sprintf("%s B%d", title, course)
	}

	embed := deps.Formatter.FormatRecordPair(title, m.KzgoLink(), m.Thumbnail(), tpEntry, proEntry,
		service.FormatReplayLinks(tpEntry.Links, proEntry.Links))
	return deps.Respond(cmdCtx, embed)
}

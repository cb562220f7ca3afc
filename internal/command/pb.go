package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service"
)

// PBCommand shows a player's personal best on a map's main course.
type PBCommand struct {
	deps *Dependencies
}

func NewPBCommand(deps *Dependencies) *PBCommand {
	return &PBCommand{deps: deps}
}

func (c *PBCommand) Name() string {
	return "pb"
}

func (c *PBCommand) Description() string {
	return "Check a player's personal best on a map"
}

func (c *PBCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption(), modeOption(), playerOption()}
}

func (c *PBCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executePB(ctx, c.deps, cmdCtx, opts, 0)
}

// BPBCommand shows a player's personal best on a bonus course.
type BPBCommand struct {
	deps *Dependencies
}

func NewBPBCommand(deps *Dependencies) *BPBCommand {
	return &BPBCommand{deps: deps}
}

func (c *BPBCommand) Name() string {
	return "bpb"
}

func (c *BPBCommand) Description() string {
	return "Check a player's personal best on a bonus course"
}

func (c *BPBCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{mapOption(), courseOption(), modeOption(), playerOption()}
}

func (c *BPBCommand) Execute(ctx context.Context, cmdCtx *Context, opts Options) error {
	return executePB(ctx, c.deps, cmdCtx, opts, 1)
}

func executePB(ctx context.Context, deps *Dependencies, cmdCtx *Context, opts Options, defaultCourse int) error {
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

	target, err := resolveTarget(cmdCtx, opts)
	if err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	mode := deps.Resolver.ResolveMode(ctx, opts.Mode("mode"), cmdCtx.CallerID)
	player := deps.Resolver.ResolvePlayer(ctx, target, cmdCtx.GuildID, cmdCtx.CallerName)

	tp, tpErr, pro, proErr := fetchPair(func(hasTeleports bool) (*domain.RunRecord, error) {
		return deps.GlobalAPI.GetPB(ctx, player, m.ID, mode, hasTeleports, course)
	})
	if err := pairError(tp, tpErr, pro, proErr); err != nil {
		return deps.RespondError(cmdCtx, userErrorMessage(err))
	}

	tpEntry, proEntry := deps.Records.NormalizePair(ctx, tp, tpErr, pro, proErr)

	title := fmt.Sprintf("[%s] %s on %s", mode.Short(), recordHolder(tp, pro, player), m.Name)
	if course > 0 {
		title = fmt.Sprintf("%s B%d", title, course)
	}

	embed := deps.Formatter.FormatRecordPair(title, m.KzgoLink(), m.Thumbnail(), tpEntry, proEntry,
		service.FormatReplayLinks(tpEntry.Links, proEntry.Links),
		service.PlayerProfileLinks(tp, pro))
	return deps.Respond(cmdCtx, embed)
}

// recordHolder returns the display name of whoever holds the shown records.
func recordHolder(tp, pro *domain.RunRecord, fallback domain.PlayerIdentifier) string {
	if tp != nil && tp.PlayerName != "" {
		return tp.PlayerName
	}
	if pro != nil && pro.PlayerName != "" {
		return pro.PlayerName
	}
	return fallback.String()
}

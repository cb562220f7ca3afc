package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/schnose/schnose-bot-go/internal/adapter"
	"github.com/schnose/schnose-bot-go/internal/config"
	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service"
)

// Context carries the per-interaction state a handler needs.
type Context struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	CallerID    uint64
	CallerTag   string
	CallerName  string // guild nick when set, username otherwise
	GuildID     string
}

// Command is a single slash command.
type Command interface {
	Name() string
	Description() string
	Options() []*discordgo.ApplicationCommandOption
	Execute(ctx context.Context, cmdCtx *Context, opts Options) error
}

// Dependencies is the shared service bundle handed to every command.
type Dependencies struct {
	Config    *config.Config
	Users     *service.UserRepository
	GlobalAPI *service.GlobalAPIService
	Maps      *service.MapCatalog
	Resolver  *service.Resolver
	Records   *service.RecordFormatter
	Formatter *adapter.EmbedFormatter

	// Respond swaps the deferred interaction response for the given embed.
	Respond func(cmdCtx *Context, embed *discordgo.MessageEmbed) error
	// RespondError renders message as a user-facing error embed.
	RespondError func(cmdCtx *Context, message string) error
	// Paginate turns the deferred response into a button-driven page set.
	Paginate func(cmdCtx *Context, pages []*discordgo.MessageEmbed) error

	Logger *zap.Logger
}

// Options gives typed access to the interaction's option values.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// ParseOptions flattens an interaction's options by name.
func ParseOptions(i *discordgo.InteractionCreate) Options {
	data := i.ApplicationCommandData()
	opts := make(Options, len(data.Options))
	for _, opt := range data.Options {
		opts[opt.Name] = opt
	}
	return opts
}

// String returns a string option, or nil when absent.
func (o Options) String(name string) *string {
	opt, ok := o[name]
	if !ok {
		return nil
	}
	v := opt.StringValue()
	return &v
}

// Int returns an integer option, or nil when absent.
func (o Options) Int(name string) *int {
	opt, ok := o[name]
	if !ok {
		return nil
	}
	v := int(opt.IntValue())
	return &v
}

// Float returns a number option, or nil when absent.
func (o Options) Float(name string) *float64 {
	opt, ok := o[name]
	if !ok {
		return nil
	}
	v := opt.FloatValue()
	return &v
}

// Mode returns the mode option parsed into a domain mode, or nil when absent.
func (o Options) Mode(name string) *domain.Mode {
	raw := o.String(name)
	if raw == nil {
		return nil
	}
	mode, err := domain.ParseMode(*raw)
	if err != nil {
		return nil
	}
	return &mode
}

// Shared option builders. The map option is autocompleted from the catalog.

func mapOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "map",
		Description:  "Choose a map",
		Required:     true,
		Autocomplete: true,
	}
}

func modeOption() *discordgo.ApplicationCommandOption {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Modes()))
	for _, mode := range domain.Modes() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  mode.String(),
			Value: mode.Short(),
		})
	}
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "mode",
		Description: "Choose a mode",
		Choices:     choices,
	}
}

func playerOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Specify a player by SteamID, @mention or name",
	}
}

func courseOption() *discordgo.ApplicationCommandOption {
	minValue := 1.0
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "course",
		Description: "Choose a bonus course",
		MinValue:    &minValue,
	}
}

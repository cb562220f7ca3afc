package discord

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/schnose/schnose-bot-go/internal/adapter"
	"github.com/schnose/schnose-bot-go/internal/command"
	"github.com/schnose/schnose-bot-go/internal/config"
	"github.com/schnose/schnose-bot-go/internal/service"
	"github.com/schnose/schnose-bot-go/pkg/metrics"
)

const (
	commandTimeout      = 30 * time.Second
	autocompleteChoices = 25
)

// Dependencies bundles everything the gateway layer needs.
type Dependencies struct {
	Config    *config.Config
	Session   *discordgo.Session
	Registry  *command.Registry
	Paginator *adapter.Paginator
	Maps      *service.MapCatalog
	Formatter *adapter.EmbedFormatter
	Metrics   *metrics.Manager
	Logger    *zap.Logger
}

// Bot connects the command registry to the Discord gateway.
type Bot struct {
	deps *Dependencies
}

func NewBot(deps *Dependencies) (*Bot, error) {
	if deps == nil || deps.Session == nil || deps.Registry == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	if deps.Paginator == nil || deps.Maps == nil || deps.Formatter == nil || deps.Logger == nil {
		return nil, fmt.Errorf("bot services not configured")
	}
	return &Bot{deps: deps}, nil
}

// Start opens the gateway session and registers the slash commands. It blocks
// until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	session := b.deps.Session
	session.Identify.Intents = discordgo.IntentsGuilds

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway session: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		_ = session.Close()
		return err
	}

	b.deps.Logger.Info("Bot is up",
		zap.Int("commands", b.deps.Registry.Count()),
		zap.String("guild_scope", b.deps.Config.Discord.GuildID))

	<-ctx.Done()
	return nil
}

// Shutdown stops pagination timers and closes the gateway session.
func (b *Bot) Shutdown(ctx context.Context) error {
	b.deps.Paginator.Shutdown()
	return b.deps.Session.Close()
}

// registerCommands bulk-overwrites the application commands. A configured
// guild ID scopes them to that guild, which propagates instantly. Global
// registration can take up to an hour to roll out.
func (b *Bot) registerCommands() error {
	session := b.deps.Session
	appID := session.State.User.ID

	_, err := session.ApplicationCommandBulkOverwrite(appID, b.deps.Config.Discord.GuildID, b.deps.Registry.Definitions())
	if err != nil {
		return fmt.Errorf("failed to register application commands: %w", err)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.deps.Logger.Info("Gateway session ready",
		zap.String("username", r.User.Username),
		zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	case discordgo.InteractionMessageComponent:
		if !b.deps.Paginator.HandleComponent(s, i) {
			b.deps.Logger.Warn("Unhandled component interaction",
				zap.String("custom_id", i.MessageComponentData().CustomID))
		}
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	started := time.Now()

	// Acknowledge immediately, handlers have 3 seconds otherwise.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.deps.Logger.Error("Failed to defer interaction response",
			zap.String("command", name), zap.Error(err))
		return
	}

	cmdCtx := b.buildContext(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	execErr := b.deps.Registry.Execute(ctx, cmdCtx, name, command.ParseOptions(i))

	status := "ok"
	if execErr != nil {
		status = "error"
		b.deps.Logger.Error("Command execution failed",
			zap.String("command", name),
			zap.Uint64("caller", cmdCtx.CallerID),
			zap.Error(execErr))

		respondErr := ErrorResponder(b.deps.Formatter)(cmdCtx, "Something went wrong, please try again later.")
		if respondErr != nil {
			b.deps.Logger.Warn("Failed to deliver error response", zap.Error(respondErr))
		}
	}
	b.deps.Metrics.ObserveCommand(name, status, time.Since(started))
}

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var focused string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			focused = opt.StringValue()
			break
		}
	}

	matches := b.deps.Maps.FuzzyMatch(focused, autocompleteChoices)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(matches))
	for _, m := range matches {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  m.Name,
			Value: m.Name,
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		b.deps.Logger.Debug("Failed to deliver autocomplete choices", zap.Error(err))
	}
}

func (b *Bot) buildContext(s *discordgo.Session, i *discordgo.InteractionCreate) *command.Context {
	cmdCtx := &command.Context{
		Session:     s,
		Interaction: i,
		GuildID:     i.GuildID,
	}

	user := interactionUser(i)
	if user != nil {
		cmdCtx.CallerID, _ = strconv.ParseUint(user.ID, 10, 64)
		cmdCtx.CallerTag = user.Username
		cmdCtx.CallerName = user.Username
	}
	if i.Member != nil && i.Member.Nick != "" {
		cmdCtx.CallerName = i.Member.Nick
	}
	return cmdCtx
}

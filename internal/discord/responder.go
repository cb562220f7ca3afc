package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/adapter"
	"github.com/schnose/schnose-bot-go/internal/command"
)

// Responder swaps a deferred interaction response for the given embed.
func Responder() func(cmdCtx *command.Context, embed *discordgo.MessageEmbed) error {
	return func(cmdCtx *command.Context, embed *discordgo.MessageEmbed) error {
		_, err := cmdCtx.Session.InteractionResponseEdit(cmdCtx.Interaction.Interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{embed},
		})
		return err
	}
}

// ErrorResponder renders a message through the error embed.
func ErrorResponder(formatter *adapter.EmbedFormatter) func(cmdCtx *command.Context, message string) error {
	respond := Responder()
	return func(cmdCtx *command.Context, message string) error {
		return respond(cmdCtx, formatter.FormatError(message))
	}
}

// PaginateResponder hands a page set to the paginator, keyed to the caller so
// only they can flip pages.
func PaginateResponder(paginator *adapter.Paginator) func(cmdCtx *command.Context, pages []*discordgo.MessageEmbed) error {
	return func(cmdCtx *command.Context, pages []*discordgo.MessageEmbed) error {
		ownerID := ""
		if user := interactionUser(cmdCtx.Interaction); user != nil {
			ownerID = user.ID
		}
		return paginator.Start(cmdCtx.Session, cmdCtx.Interaction.Interaction, ownerID, pages)
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

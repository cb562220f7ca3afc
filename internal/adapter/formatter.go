package adapter

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/schnose/schnose-bot-go/internal/constants"
	"github.com/schnose/schnose-bot-go/internal/domain"
	"github.com/schnose/schnose-bot-go/internal/service"
	"github.com/schnose/schnose-bot-go/internal/util"
)

// EmbedFormatter builds Discord embeds for bot responses
type EmbedFormatter struct{}

// NewEmbedFormatter creates a new EmbedFormatter
func NewEmbedFormatter() *EmbedFormatter {
	return &EmbedFormatter{}
}

func (f *EmbedFormatter) footer() *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    constants.BotInfo.Name,
		IconURL: constants.BotInfo.IconURL,
	}
}

func (f *EmbedFormatter) base() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:  constants.BotInfo.EmbedColor,
		Footer: f.footer(),
	}
}

// FormatRecordPair builds the two-column TP / PRO embed shared by the pb, wr
// and bonus variants. extra rows (replay links, profile links) go into the
// description below the title.
func (f *EmbedFormatter) FormatRecordPair(title, url, thumbnail string, tp, pro service.NormalizedEntry, extra ...string) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = util.TruncateString(title, constants.StringLimits.EmbedTitle)
	embed.URL = url

	if thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnail}
	}

	var desc []string
	for _, line := range extra {
		if strings.TrimSpace(line) != "" {
			desc = append(desc, line)
		}
	}
	if len(desc) > 0 {
		embed.Description = util.TruncateString(strings.Join(desc, "\n"), constants.StringLimits.EmbedDescription)
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "TP",
			Value:  util.TruncateString(tp.Line, constants.StringLimits.EmbedFieldValue),
			Inline: true,
		},
		{
			Name:   "PRO",
			Value:  util.TruncateString(pro.Line, constants.StringLimits.EmbedFieldValue),
			Inline: true,
		},
	}

	return embed
}

// FormatRecentRun formats a single recent run with its submission timestamp.
func (f *EmbedFormatter) FormatRecentRun(rec *domain.RunRecord, entry service.NormalizedEntry) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = fmt.Sprintf("[%s] %s", rec.Mode.Short(), rec.MapName)
	embed.URL = constants.URLConfig.KZGOMapURL + rec.MapName
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
		URL: constants.URLConfig.MapThumbnailURL + rec.MapName + ".jpg",
	}

	category := "PRO"
	if rec.Teleports > 0 {
		category = "TP"
	}

	desc := entry.Line
	if links := service.FormatReplayLinks(entry.Links, nil); links != "" {
		desc += "\n\n" + strings.ReplaceAll(links, "TP Replay", "Replay")
	}
	if !rec.CreatedOn.IsZero() {
		desc += fmt.Sprintf("\n\n<t:%d:R>", rec.CreatedOn.Unix())
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:  category,
			Value: util.TruncateString(desc, constants.StringLimits.EmbedFieldValue),
		},
	}
	return embed
}

// FormatMapInfo formats the global map detail embed.
func (f *EmbedFormatter) FormatMapInfo(m *domain.GlobalMap) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = m.Name
	embed.URL = m.KzgoLink()
	embed.Image = &discordgo.MessageEmbedImage{URL: m.Thumbnail()}

	var sb strings.Builder
	if m.Tier > 0 {
		sb.WriteString(fmt.Sprintf("🢂 Tier: %d\n", m.Tier))
	}
	if m.Courses > 0 {
		sb.WriteString(fmt.Sprintf("🢂 Bonuses: %d\n", m.Courses))
	}
	sb.WriteString(fmt.Sprintf("🢂 Filters: %s\n", f.formatModeFilters(m)))
	if len(m.Mappers) > 0 {
		sb.WriteString(fmt.Sprintf("🢂 Mapper(s): %s\n", strings.Join(m.Mappers, ", ")))
	}
	if m.UpdatedOn != "" {
		if updated, err := time.Parse("2006-01-02T15:04:05", m.UpdatedOn); err == nil {
			sb.WriteString(fmt.Sprintf("🢂 Last Updated: <t:%d:D>\n", updated.Unix()))
		}
	}
	embed.Description = util.TruncateString(strings.TrimSuffix(sb.String(), "\n"), constants.StringLimits.EmbedDescription)

	return embed
}

func (f *EmbedFormatter) formatModeFilters(m *domain.GlobalMap) string {
	var filters []string
	if m.KZT {
		filters = append(filters, domain.ModeKZTimer.Short())
	}
	if m.SKZ {
		filters = append(filters, domain.ModeSimpleKZ.Short())
	}
	if m.VNL {
		filters = append(filters, domain.ModeVanilla.Short())
	}
	if len(filters) == 0 {
		return "none"
	}
	return strings.Join(filters, ", ")
}

// FormatRandomMap formats the random map suggestion.
func (f *EmbedFormatter) FormatRandomMap(m *domain.GlobalMap) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = fmt.Sprintf("🎲 %s (T%d)", m.Name, m.Tier)
	embed.URL = m.KzgoLink()
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: m.Thumbnail()}
	return embed
}

// FormatHealthReport formats the GlobalAPI status page summary. Both counters
// are out of the 10 most recent healthchecks.
func (f *EmbedFormatter) FormatHealthReport(report *service.HealthReport) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = "GlobalAPI Health Report"
	embed.URL = constants.URLConfig.HealthStatusPage
	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: constants.BotInfo.IconURL}

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Successful Healthchecks",
			Value:  fmt.Sprintf("%d / %d", report.SuccessfulResponses, 10),
			Inline: true,
		},
		{
			Name:   "Fast Responses",
			Value:  fmt.Sprintf("%d / %d", report.FastResponses, 10),
			Inline: true,
		},
	}
	return embed
}

// FormatUserSettings formats the db command output, showing the caller's saved
// preferences.
func (f *EmbedFormatter) FormatUserSettings(tag string, user *domain.User) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = fmt.Sprintf("%s's settings", tag)

	steamID := "none"
	if user != nil && user.HasSteamID() {
		steamID = user.SteamID.String()
	}
	mode := "none"
	if user != nil && user.HasMode() {
		mode = user.Mode.String()
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "SteamID", Value: steamID, Inline: true},
		{Name: "Mode", Value: mode, Inline: true},
	}
	return embed
}

// FormatNocrouch formats the nocrouch jump potential estimate.
func (f *EmbedFormatter) FormatNocrouch(distance, maxSpeed, potential float64) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = "Approximated Potential Distance"
	embed.Description = fmt.Sprintf("%.4f units\n(%.4f @ %.0f u/s without crouch)", potential, distance, maxSpeed)
	return embed
}

// FormatLeaderboardPages chunks ranked lines into paginated embeds.
func (f *EmbedFormatter) FormatLeaderboardPages(title, url string, lines []string) []*discordgo.MessageEmbed {
	perPage := constants.PaginationConfig.ItemsPerPage
	pages := make([]*discordgo.MessageEmbed, 0, (len(lines)+perPage-1)/perPage)

	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}

		embed := f.base()
		embed.Title = util.TruncateString(title, constants.StringLimits.EmbedTitle)
		embed.URL = url
		embed.Description = util.TruncateString(strings.Join(lines[start:end], "\n"), constants.StringLimits.EmbedDescription)
		pages = append(pages, embed)
	}
	return pages
}

// FormatConfirmation formats a plain success message.
func (f *EmbedFormatter) FormatConfirmation(message string) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Description = util.TruncateString(message, constants.StringLimits.EmbedDescription)
	return embed
}

// FormatError formats an error message toward the user.
func (f *EmbedFormatter) FormatError(message string) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Description = fmt.Sprintf("❌ %s", message)
	return embed
}

// FormatHelp formats the command overview.
func (f *EmbedFormatter) FormatHelp() *discordgo.MessageEmbed {
	embed := f.base()
	embed.Title = "Commands"
	embed.Description = strings.Join([]string{
		"📊 Records",
		"  `/pb` - personal best on a map",
		"  `/bpb` - personal best on a bonus course",
		"  `/wr` - world record on a map",
		"  `/bwr` - world record on a bonus course",
		"  `/maptop` - top 100 on a map",
		"  `/bmaptop` - top 100 on a bonus course",
		"  `/top` - top 100 world record holders",
		"  `/btop` - top 100 bonus world record holders",
		"  `/recent` - most recent personal best",
		"  `/unfinished` - maps you still have to finish",
		"",
		"🗺️ Maps",
		"  `/map` - global map details",
		"  `/random` - random global map, optionally by tier",
		"",
		"⚙️ Preferences",
		"  `/setsteam` - save your SteamID",
		"  `/mode` - save your preferred mode",
		"  `/db` - show your saved preferences",
		"",
		"🔧 Misc",
		"  `/apistatus` - GlobalAPI health",
		"  `/nocrouch` - nocrouch jump potential",
		"  `/ping` - pong",
		"  `/invite` - invite the bot to your server",
	}, "\n")
	return embed
}

// FormatInvite formats the bot invite link.
func (f *EmbedFormatter) FormatInvite(applicationID string) *discordgo.MessageEmbed {
	embed := f.base()
	embed.Description = fmt.Sprintf("[Click here](https://discord.com/api/oauth2/authorize?client_id=%s&permissions=0&scope=%s) to invite the bot.",
		applicationID, constants.BotInfo.InviteScope)
	return embed
}

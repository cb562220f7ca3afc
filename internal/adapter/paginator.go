package adapter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/schnose/schnose-bot-go/internal/constants"
)

// pagerSession is one live paginated message.
type pagerSession struct {
	mu      sync.Mutex
	pages   []*discordgo.MessageEmbed
	index   int
	ownerID string
	expiry  *time.Timer
}

// Paginator drives button-based embed pagination. Sessions expire after
// PaginationConfig.Timeout, leaving the last shown page with dead buttons
// removed.
type Paginator struct {
	sessions sync.Map // session id -> *pagerSession
	logger   *zap.Logger
}

// NewPaginator creates a new Paginator
func NewPaginator(logger *zap.Logger) *Paginator {
	return &Paginator{logger: logger}
}

func pagerCustomID(sessionID, action string) string {
	return fmt.Sprintf("pager:%s:%s", sessionID, action)
}

func (p *Paginator) components(sessionID string, index, total int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "⏮️"},
					Style:    discordgo.SecondaryButton,
					CustomID: pagerCustomID(sessionID, "first"),
					Disabled: index == 0,
				},
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "◀️"},
					Style:    discordgo.SecondaryButton,
					CustomID: pagerCustomID(sessionID, "prev"),
					Disabled: index == 0,
				},
				discordgo.Button{
					Label:    fmt.Sprintf("%d / %d", index+1, total),
					Style:    discordgo.SecondaryButton,
					CustomID: pagerCustomID(sessionID, "page"),
					Disabled: true,
				},
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "▶️"},
					Style:    discordgo.SecondaryButton,
					CustomID: pagerCustomID(sessionID, "next"),
					Disabled: index == total-1,
				},
				discordgo.Button{
					Emoji:    &discordgo.ComponentEmoji{Name: "⏭️"},
					Style:    discordgo.SecondaryButton,
					CustomID: pagerCustomID(sessionID, "last"),
					Disabled: index == total-1,
				},
			},
		},
	}
}

// Start replaces the deferred interaction response with the first page. A
// single page is sent without buttons and never registered.
func (p *Paginator) Start(s *discordgo.Session, interaction *discordgo.Interaction, ownerID string, pages []*discordgo.MessageEmbed) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to display")
	}

	if len(pages) == 1 {
		_, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
			Embeds: &[]*discordgo.MessageEmbed{pages[0]},
		})
		return err
	}

	sessionID := uuid.NewString()
	session := &pagerSession{
		pages:   pages,
		ownerID: ownerID,
	}
	session.expiry = time.AfterFunc(constants.PaginationConfig.Timeout, func() {
		p.expire(s, interaction, sessionID)
	})
	p.sessions.Store(sessionID, session)

	components := p.components(sessionID, 0, len(pages))
	_, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{pages[0]},
		Components: &components,
	})
	if err != nil {
		session.expiry.Stop()
		p.sessions.Delete(sessionID)
	}
	return err
}

// HandleComponent routes a button press. It returns false when the custom ID
// does not belong to the paginator.
func (p *Paginator) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	parts := strings.SplitN(i.MessageComponentData().CustomID, ":", 3)
	if len(parts) != 3 || parts[0] != "pager" {
		return false
	}
	sessionID, action := parts[1], parts[2]

	value, ok := p.sessions.Load(sessionID)
	if !ok {
		// Expired session, acknowledge so the click does not error out.
		p.ack(s, i)
		return true
	}
	session := value.(*pagerSession)

	presser := i.User
	if i.Member != nil {
		presser = i.Member.User
	}
	if presser == nil || presser.ID != session.ownerID {
		p.ack(s, i)
		return true
	}

	session.mu.Lock()
	switch action {
	case "first":
		session.index = 0
	case "prev":
		if session.index > 0 {
			session.index--
		}
	case "next":
		if session.index < len(session.pages)-1 {
			session.index++
		}
	case "last":
		session.index = len(session.pages) - 1
	}
	index := session.index
	page := session.pages[index]
	total := len(session.pages)
	session.expiry.Reset(constants.PaginationConfig.Timeout)
	session.mu.Unlock()

	components := p.components(sessionID, index, total)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{page},
			Components: components,
		},
	})
	if err != nil {
		p.logger.Warn("Failed to update paginated message", zap.Error(err))
	}
	return true
}

func (p *Paginator) ack(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		p.logger.Warn("Failed to acknowledge component press", zap.Error(err))
	}
}

// expire drops the session and strips the buttons off the message.
func (p *Paginator) expire(s *discordgo.Session, interaction *discordgo.Interaction, sessionID string) {
	value, ok := p.sessions.LoadAndDelete(sessionID)
	if !ok {
		return
	}
	session := value.(*pagerSession)

	session.mu.Lock()
	page := session.pages[session.index]
	session.mu.Unlock()

	components := []discordgo.MessageComponent{}
	_, err := s.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{page},
		Components: &components,
	})
	if err != nil {
		p.logger.Debug("Failed to strip pagination buttons", zap.Error(err))
	}
}

// Shutdown stops all expiry timers. Pending messages keep their buttons, the
// presses will be acknowledged and ignored after restart.
func (p *Paginator) Shutdown() {
	p.sessions.Range(func(key, value any) bool {
		value.(*pagerSession).expiry.Stop()
		p.sessions.Delete(key)
		return true
	})
}

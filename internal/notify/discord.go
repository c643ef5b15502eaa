package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Discord embed colors by worst present severity.
const (
	embedColorCritical = 0xd00000
	embedColorHigh     = 0xff9f00
)

// session abstracts the discordgo methods we use, enabling test mocks.
// Sending embeds works over plain REST; no gateway connection is opened.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Close() error
}

// DiscordNotifier posts analysis summaries to one Discord channel.
type DiscordNotifier struct {
	sess      session
	channelID string
}

// DiscordOpts holds parameters for creating a DiscordNotifier. Session is
// injectable for tests; when nil, a real session is built from BotToken.
type DiscordOpts struct {
	BotToken  string
	ChannelID string
	Session   session
}

// NewDiscord creates a Discord notifier.
func NewDiscord(opts DiscordOpts) (*DiscordNotifier, error) {
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: discord channel ID is required")
	}
	sess := opts.Session
	if sess == nil {
		if opts.BotToken == "" {
			return nil, fmt.Errorf("notify: discord bot token is required")
		}
		real, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("notify: discord session: %w", err)
		}
		sess = real
	}
	return &DiscordNotifier{sess: sess, channelID: opts.ChannelID}, nil
}

// Send posts the summary as one embed.
func (n *DiscordNotifier) Send(ctx context.Context, s Summary) error {
	color := embedColorHigh
	if s.Critical > 0 {
		color = embedColorCritical
	}

	embed := &discordgo.MessageEmbed{
		Title:       s.Title(),
		Description: strings.Join(s.Headlines, "\n"),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Transcripts", Value: fmt.Sprintf("%d", s.Transcripts), Inline: true},
			{Name: "Run", Value: s.RunID, Inline: true},
		},
	}

	if _, err := n.sess.ChannelMessageSendEmbed(n.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("notify: discord post: %w", err)
	}
	return nil
}

// Close releases the underlying session.
func (n *DiscordNotifier) Close() error { return n.sess.Close() }

package notify

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"
)

// Attachment sidebar colors by worst present severity.
const (
	colorCritical = "#d00000"
	colorHigh     = "#ff9f00"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackNotifier posts analysis summaries to one Slack channel.
type SlackNotifier struct {
	client  slackClient
	channel string
}

// SlackOpts holds parameters for creating a SlackNotifier. Client is
// injectable for tests; when nil, a real API client is built from Token.
type SlackOpts struct {
	Token   string
	Channel string
	Client  slackClient
}

// NewSlack creates a Slack notifier.
func NewSlack(opts SlackOpts) (*SlackNotifier, error) {
	if opts.Channel == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}
	client := opts.Client
	if client == nil {
		if opts.Token == "" {
			return nil, fmt.Errorf("notify: slack token is required")
		}
		client = slackapi.New(opts.Token)
	}
	return &SlackNotifier{client: client, channel: opts.Channel}, nil
}

// Send posts the summary as a message with one colored attachment.
func (n *SlackNotifier) Send(ctx context.Context, s Summary) error {
	color := colorHigh
	if s.Critical > 0 {
		color = colorCritical
	}

	attachment := slackapi.Attachment{
		Color: color,
		Title: s.Title(),
		Text:  strings.Join(s.Headlines, "\n"),
		Fields: []slackapi.AttachmentField{
			{Title: "Transcripts", Value: fmt.Sprintf("%d", s.Transcripts), Short: true},
			{Title: "Run", Value: s.RunID, Short: true},
		},
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slackapi.MsgOptionText(s.Title(), false),
		slackapi.MsgOptionAttachments(attachment),
	)
	if err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}

// Close is a no-op; the Slack Web API client holds no connection.
func (n *SlackNotifier) Close() error { return nil }

package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	channelID string
	embed     *discordgo.MessageEmbed
	err       error
	calls     int
	closed    bool
}

func (m *mockSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.calls++
	m.channelID = channelID
	m.embed = embed
	if m.err != nil {
		return nil, m.err
	}
	return &discordgo.Message{ID: "1"}, nil
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

func TestNewDiscord_Validation(t *testing.T) {
	if _, err := NewDiscord(DiscordOpts{BotToken: "tok"}); err == nil {
		t.Error("expected error for missing channel ID")
	}
	if _, err := NewDiscord(DiscordOpts{ChannelID: "42"}); err == nil {
		t.Error("expected error for missing token without injected session")
	}
	if _, err := NewDiscord(DiscordOpts{ChannelID: "42", Session: &mockSession{}}); err != nil {
		t.Errorf("unexpected error with injected session: %v", err)
	}
}

func TestDiscordNotifier_Send(t *testing.T) {
	mock := &mockSession{}
	n, err := NewDiscord(DiscordOpts{ChannelID: "987654", Session: mock})
	if err != nil {
		t.Fatalf("NewDiscord: %v", err)
	}

	s := Summary{RunID: "r1", Transcripts: 10, Critical: 1, High: 2, Headlines: []string{"Critical: Hallucination"}}
	if err := n.Send(context.Background(), s); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if mock.calls != 1 {
		t.Errorf("calls = %d, want 1", mock.calls)
	}
	if mock.channelID != "987654" {
		t.Errorf("channelID = %q", mock.channelID)
	}
	if mock.embed == nil {
		t.Fatal("embed not sent")
	}
	if mock.embed.Color != embedColorCritical {
		t.Errorf("embed color = %#x, want critical", mock.embed.Color)
	}
	if mock.embed.Title != s.Title() {
		t.Errorf("embed title = %q, want %q", mock.embed.Title, s.Title())
	}
}

func TestDiscordNotifier_SendHighColor(t *testing.T) {
	mock := &mockSession{}
	n, _ := NewDiscord(DiscordOpts{ChannelID: "1", Session: mock})
	if err := n.Send(context.Background(), Summary{High: 3}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if mock.embed.Color != embedColorHigh {
		t.Errorf("embed color = %#x, want high", mock.embed.Color)
	}
}

func TestDiscordNotifier_SendError(t *testing.T) {
	mock := &mockSession{err: errors.New("unknown channel")}
	n, _ := NewDiscord(DiscordOpts{ChannelID: "1", Session: mock})
	if err := n.Send(context.Background(), Summary{Critical: 1}); err == nil {
		t.Error("expected error from failed send")
	}
}

func TestDiscordNotifier_Close(t *testing.T) {
	mock := &mockSession{}
	n, _ := NewDiscord(DiscordOpts{ChannelID: "1", Session: mock})
	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !mock.closed {
		t.Error("session not closed")
	}
}

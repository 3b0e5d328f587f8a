package notify

import (
	"context"
	"errors"
	"fmt"

	stream_chat "github.com/GetStream/stream-chat-go/v5"

	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
)

// StreamSender manda el recordatorio por un canal 1:1 de mensajería,
// usando los dígitos del teléfono como id del usuario destino.
type StreamSender struct {
	client *stream_chat.Client
	botID  string
}

func NewStreamSender(cfg *config.Config) (*StreamSender, error) {
	if cfg.StreamAPIKey == "" || cfg.StreamAPISecret == "" {
		return nil, nil
	}

	client, err := stream_chat.NewClient(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		return nil, fmt.Errorf("init stream client: %w", err)
	}

	return &StreamSender{
		client: client,
		botID:  "lab-recordatorios",
	}, nil
}

func (s *StreamSender) Configured() bool {
	return s != nil && s.client != nil
}

func (s *StreamSender) Send(ctx context.Context, to, text string) error {
	if !s.Configured() {
		return errors.New("chat channel not configured")
	}

	_, err := s.client.UpsertUsers(ctx,
		&stream_chat.User{ID: s.botID},
		&stream_chat.User{ID: to},
	)
	if err != nil {
		return fmt.Errorf("upsert chat users: %w", err)
	}

	channelID := fmt.Sprintf("recordatorio-%s", to)
	resp, err := s.client.CreateChannel(ctx, "messaging", channelID, s.botID, &stream_chat.ChannelRequest{
		Members: []string{s.botID, to},
	})
	if err != nil {
		return fmt.Errorf("create chat channel: %w", err)
	}

	_, err = resp.Channel.SendMessage(ctx, &stream_chat.Message{Text: text}, s.botID)
	if err != nil {
		return fmt.Errorf("send chat message: %w", err)
	}

	return nil
}

package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/logging"
)

type MessageService interface {
	Conversations(ctx context.Context) ([]models.Conversation, error)
	Messages(ctx context.Context, conversationID int64) ([]models.Message, error)
	Send(ctx context.Context, conversationID int64, content string) (models.Message, error)
}

type messageService struct {
	gw  client.Gateway
	log logging.Logger
}

func NewMessageService(gw client.Gateway, log logging.Logger) MessageService {
	return &messageService{gw: gw, log: log.With("service", "messages")}
}

func (s *messageService) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out []models.Conversation
	if err := decodeWrapped(s.gw.Call(ctx, "/messages/conversations", nil), "conversations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *messageService) Messages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	path := "/messages/conversations/" + strconv.FormatInt(conversationID, 10) + "/messages"
	var out []models.Message
	if err := decodeWrapped(s.gw.Call(ctx, path, nil), "messages", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Send posts a trimmed message. Blank content is rejected locally.
func (s *messageService) Send(ctx context.Context, conversationID int64, content string) (models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Message{}, invalid("Message cannot be empty")
	}

	res := s.gw.Call(ctx, "/messages", &client.RequestOptions{
		Method: http.MethodPost,
		Body: map[string]any{
			"conversation_id": conversationID,
			"content":         content,
		},
		FallbackError: "Failed to send message",
	})

	var m models.Message
	if err := decodeWrapped(res, "message", &m); err != nil {
		return models.Message{}, err
	}
	if m.ConversationID == 0 {
		m.ConversationID = conversationID
	}
	if m.Content == "" {
		m.Content = content
	}
	return m, nil
}

package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService(t *testing.T) {
	var sent map[string]any
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/messages/conversations":
			writeJSON(w, http.StatusOK, map[string]any{"conversations": []map[string]any{
				{"id": 4, "unread_count": 2, "participants": []map[string]any{{"id": 1}, {"id": 8, "username": "seller"}}},
			}})
		case r.URL.Path == "/api/messages/conversations/4/messages":
			writeJSON(w, http.StatusOK, map[string]any{"messages": []map[string]any{
				{"id": 1, "sender_id": 8, "content": "Still available?"},
				{"id": 2, "sender_id": 1, "content": "Yes"},
			}})
		case r.URL.Path == "/api/messages" && r.Method == http.MethodPost:
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &sent)
			writeJSON(w, http.StatusCreated, map[string]any{"message": map[string]any{"id": 3, "sender_id": 1, "content": "Great"}})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})
	env.loginAs(t, "T1", 1)
	svc := NewMessageService(env.gw, logging.Nop())
	ctx := context.Background()

	convs, err := svc.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	other, ok := convs[0].OtherParticipant(1)
	require.True(t, ok)
	assert.Equal(t, "seller", other.Username)

	msgs, err := svc.Messages(ctx, 4)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Still available?", msgs[0].Content)

	m, err := svc.Send(ctx, 4, "  Great  ")
	require.NoError(t, err)
	assert.Equal(t, int64(3), m.ID)
	assert.Equal(t, int64(4), m.ConversationID)
	assert.Equal(t, "Great", sent["content"])
	assert.Equal(t, float64(4), sent["conversation_id"])
}

func TestMessageService_SendBlank(t *testing.T) {
	env := newTestEnv(t, notCalled(t))
	svc := NewMessageService(env.gw, logging.Nop())

	_, err := svc.Send(context.Background(), 4, " \n\t ")
	assert.True(t, IsValidation(err))
	assert.Zero(t, env.calls.Load())
}

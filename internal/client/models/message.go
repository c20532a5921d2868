package models

// Conversation is a message thread between a buyer and a seller about one
// item.
type Conversation struct {
	ID           int64    `json:"id"`
	Item         *Item    `json:"item,omitempty"`
	Participants []User   `json:"participants,omitempty"`
	LastMessage  *Message `json:"last_message,omitempty"`
	UnreadCount  int      `json:"unread_count,omitempty"`
	UpdatedAt    string   `json:"updated_at,omitempty"`
}

// OtherParticipant returns the first participant that is not selfID.
func (c Conversation) OtherParticipant(selfID int64) (User, bool) {
	for _, p := range c.Participants {
		if p.ID != selfID {
			return p, true
		}
	}
	return User{}, false
}

// Preview is the last message text or a placeholder for an empty thread.
func (c Conversation) Preview() string {
	if c.LastMessage == nil || c.LastMessage.Content == "" {
		return "No messages yet"
	}
	return c.LastMessage.Content
}

// Message is a single entry of a conversation.
type Message struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id,omitempty"`
	SenderID       int64  `json:"sender_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at,omitempty"`
}

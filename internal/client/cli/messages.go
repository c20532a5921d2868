package cli

import (
	"context"
	"errors"
	"strings"
)

func (a *App) Conversations(ctx context.Context) error {
	if a.messages == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	convs, err := a.messages.Conversations(ctx)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		a.printf("No conversations yet\n")
		return nil
	}

	self, _ := a.session.User()
	for _, c := range convs {
		with := "unknown"
		if p, ok := c.OtherParticipant(self.ID); ok {
			with = p.DisplayName()
		}
		about := ""
		if c.Item != nil {
			about = " about " + c.Item.Title
		}
		unread := ""
		if c.UnreadCount > 0 {
			unread = " *"
		}
		a.printf("#%d %s%s%s: %s\n", c.ID, with, about, unread, c.Preview())
	}
	return nil
}

// Messages prints a thread: messages <conversation-id>.
func (a *App) Messages(ctx context.Context, args []string) error {
	if a.messages == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, "messages <conversation-id>")
	if err != nil {
		return err
	}

	msgs, err := a.messages.Messages(ctx, id)
	if err != nil {
		return err
	}
	self, _ := a.session.User()
	for _, m := range msgs {
		who := "them"
		if m.SenderID == self.ID {
			who = "me"
		}
		a.printf("[%s] %s: %s\n", m.CreatedAt, who, m.Content)
	}
	return nil
}

// Send posts a message: send <conversation-id> <text...>.
func (a *App) Send(ctx context.Context, args []string) error {
	if a.messages == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New("usage: send <conversation-id> <text>")
	}
	id, err := parseID(args, "send <conversation-id> <text>")
	if err != nil {
		return err
	}

	m, err := a.messages.Send(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	a.printf("Sent #%d\n", m.ID)
	return nil
}

// Package slack posts messages to Slack channels and users.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/koscakluka/aeris/core/actions/messaging"
)

var _ messaging.Platform = (*Sender)(nil)

type Sender struct {
	client   *slack.Client
	contacts messaging.Contacts
}

func New(token string, contacts messaging.Contacts, opts ...slack.Option) (*Sender, error) {
	if token == "" {
		return nil, fmt.Errorf("slack bot token not configured")
	}
	return &Sender{client: slack.New(token, opts...), contacts: contacts}, nil
}

func (s *Sender) Send(ctx context.Context, receiver, text string) error {
	channel, err := s.contacts.Resolve(receiver)
	if err != nil {
		return err
	}

	if _, _, err := s.client.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	return nil
}

// Package discord sends messages to Discord channels through a bot.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/koscakluka/aeris/core/actions/messaging"
)

var _ messaging.Platform = (*Sender)(nil)

type Sender struct {
	session  *discordgo.Session
	contacts messaging.Contacts
}

// New creates a sender for the bot token. No connection is opened, messages
// go through the REST API.
func New(token string, contacts messaging.Contacts) (*Sender, error) {
	if token == "" {
		return nil, fmt.Errorf("discord bot token not configured")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &Sender{session: session, contacts: contacts}, nil
}

func (s *Sender) Send(ctx context.Context, receiver, text string) error {
	channelID, err := s.contacts.Resolve(receiver)
	if err != nil {
		return err
	}
	channelID = strings.TrimPrefix(channelID, "#")

	if _, err := s.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	return nil
}

// Package telegram sends messages through a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/koscakluka/aeris/core/actions/messaging"
)

var _ messaging.Platform = (*Sender)(nil)

// Sender connects lazily on the first message, since creating the bot
// already calls the Telegram API.
type Sender struct {
	token    string
	endpoint string
	contacts messaging.Contacts

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

type Option func(*Sender)

// WithAPIEndpoint overrides the bot API endpoint, e.g. for a local Bot API
// server. The format is the one of tgbotapi.APIEndpoint.
func WithAPIEndpoint(endpoint string) Option {
	return func(s *Sender) {
		s.endpoint = endpoint
	}
}

func New(token string, contacts messaging.Contacts, opts ...Option) *Sender {
	s := &Sender{
		token:    token,
		endpoint: tgbotapi.APIEndpoint,
		contacts: contacts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sender) Send(ctx context.Context, receiver, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	address, err := s.contacts.Resolve(receiver)
	if err != nil {
		return err
	}
	chatID, err := strconv.ParseInt(address, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", address, err)
	}

	bot, err := s.client()
	if err != nil {
		return err
	}

	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func (s *Sender) client() (*tgbotapi.BotAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bot != nil {
		return s.bot, nil
	}
	if s.token == "" {
		return nil, fmt.Errorf("telegram bot token not configured")
	}

	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(s.token, s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	s.bot = bot
	return bot, nil
}

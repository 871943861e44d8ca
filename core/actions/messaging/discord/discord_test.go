package discord

import (
	"context"
	"testing"

	"github.com/koscakluka/aeris/core/actions/messaging"
)

func TestNewRequiresToken(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestSendRejectsUnknownContact(t *testing.T) {
	sender, err := New("token", messaging.Contacts{"Ana": "123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sender.Send(context.Background(), "Bob", "hi"); err == nil {
		t.Fatalf("expected unknown contact error")
	}
}

package messaging

import (
	"fmt"
	"strings"
)

// Contacts maps spoken receiver names to platform addresses (chat or
// channel IDs).
type Contacts map[string]string

// Resolve looks receiver up case-insensitively. A receiver that is not in
// the book but already looks like an address is returned as is.
func (c Contacts) Resolve(receiver string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(receiver))
	for contact, address := range c {
		if strings.ToLower(contact) == name {
			return address, nil
		}
	}

	if looksLikeAddress(receiver) {
		return strings.TrimSpace(receiver), nil
	}
	return "", fmt.Errorf("unknown contact %q", receiver)
}

func looksLikeAddress(receiver string) bool {
	receiver = strings.TrimSpace(receiver)
	if receiver == "" {
		return false
	}
	return strings.HasPrefix(receiver, "@") ||
		strings.HasPrefix(receiver, "#") ||
		strings.IndexFunc(receiver, func(r rune) bool { return r != '-' && (r < '0' || r > '9') }) == -1
}

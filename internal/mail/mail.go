// Package mail shares posts by email through a transactional provider.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotConfigured is returned by Noop when no provider credentials exist.
	ErrNotConfigured = errors.New("email sharing is not configured")
	// ErrInvalidRecipient is returned before any request when the address is malformed.
	ErrInvalidRecipient = errors.New("invalid recipient address")
)

// Message is one shared post.
type Message struct {
	To        string
	PostTitle string
	PostBody  string
	FromName  string
}

// Sender delivers a Message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Noop is the Sender used when the provider is unconfigured.
type Noop struct{}

// Send always fails with ErrNotConfigured.
func (Noop) Send(context.Context, Message) error {
	return ErrNotConfigured
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRecipient checks addr and returns it trimmed.
func ValidateRecipient(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if err := validate.Var(trimmed, "required,email"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, addr)
	}
	return trimmed, nil
}

// Package mail delivers contact form messages through an email provider.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Message is a single outgoing email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Receipt identifies a message the provider accepted.
type Receipt struct {
	ID string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// ProviderError is a failure the provider reported about a request it
// received and understood.
type ProviderError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *ProviderError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
}

// ErrUnexpectedResponse is returned when the provider answers in a shape
// that is neither a receipt nor a provider error.
var ErrUnexpectedResponse = errors.New("unexpected provider response")

// AsProviderError unwraps err into a ProviderError if it is one.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

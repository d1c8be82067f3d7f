package mail

import (
	"context"

	"folio/logging"

	"github.com/google/uuid"
)

// Discard accepts every message without sending it. It is used when no
// provider is configured.
type Discard struct {
	Logger logging.Logger
}

// Send logs the message envelope and returns a synthetic receipt. The
// subject and reply-to carry visitor details and are left out.
func (d Discard) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	id := "discarded-" + uuid.NewString()
	if d.Logger != nil {
		d.Logger.WithFields(logging.Fields{
			"id":       id,
			"to":       msg.To,
			"reply_to": logging.RedactEmail(msg.ReplyTo),
		}).Info("Discarded outgoing email")
	}
	return Receipt{ID: id}, nil
}

package mail

import "context"

type noopMailer struct{}

// NewNoopMailer returns a Mailer that drops every message. Used when no
// mail queue is configured.
func NewNoopMailer() Mailer {
	return noopMailer{}
}

func (noopMailer) Send(ctx context.Context, msg Message) error { return nil }

func (noopMailer) Close() error { return nil }

// Package mail hands outbound email off to the mail worker via a Redis
// stream. Delivery is best-effort; callers treat failures as non-fatal.
package mail

import "context"

// Message is a templated email for the mail worker to render and send.
type Message struct {
	To       string
	Template string
	Payload  map[string]string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Package identity abstracts the external SSO identity provider so services
// can be tested without network calls.
package identity

import "context"

// Identity is the profile asserted by the external provider after a
// successful code exchange.
type Identity struct {
	Email     string
	FirstName string
	LastName  string
}

// Provider issues authorization URLs for a specific SSO connection and
// exchanges callback codes for verified identities.
type Provider interface {
	AuthorizationURL(state, connectionID string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*Identity, error)
}

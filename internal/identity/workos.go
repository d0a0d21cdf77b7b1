package identity

import (
	"context"
	"fmt"

	"github.com/workos/workos-go/v6/pkg/usermanagement"
)

// WorkOSProvider implements Provider against the WorkOS User Management API.
type WorkOSProvider struct {
	clientID    string
	redirectURI string
}

func NewWorkOSProvider(apiKey, clientID, redirectURI string) *WorkOSProvider {
	usermanagement.SetAPIKey(apiKey)
	return &WorkOSProvider{
		clientID:    clientID,
		redirectURI: redirectURI,
	}
}

func (p *WorkOSProvider) AuthorizationURL(state, connectionID string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:     p.clientID,
		RedirectURI:  p.redirectURI,
		State:        state,
		ConnectionID: connectionID,
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (p *WorkOSProvider) ExchangeCode(ctx context.Context, code string) (*Identity, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.clientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticating with code: %w", err)
	}
	return &Identity{
		Email:     resp.User.Email,
		FirstName: resp.User.FirstName,
		LastName:  resp.User.LastName,
	}, nil
}

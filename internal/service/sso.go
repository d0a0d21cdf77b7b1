package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parley.chat/api-server/common/id"
	"parley.chat/api-server/common/logger"
	"parley.chat/api-server/internal/identity"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/store"
)

const SessionDuration = 7 * 24 * time.Hour

var (
	ErrSSONotConfigured = errors.New("sso is not configured for this organization")
	ErrSSOFailed        = errors.New("sso authentication failed")
)

// ssoState rides through the identity provider round-trip so the callback
// knows which organization the login started from.
type ssoState struct {
	OrganizationID int64 `json:"organization_id,string"`
}

func encodeSSOState(orgID int64) string {
	raw, _ := json.Marshal(ssoState{OrganizationID: orgID})
	return base64.StdEncoding.EncodeToString(raw)
}

func decodeSSOState(state string) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(state)
	if err != nil {
		return 0, fmt.Errorf("decoding state: %w", err)
	}
	var s ssoState
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("parsing state: %w", err)
	}
	return s.OrganizationID, nil
}

// CallbackResult is everything the HTTP layer needs after a successful SSO
// round-trip.
type CallbackResult struct {
	User         *model.User
	Organization *model.Organization
	Session      *model.Session
}

type SSOService interface {
	// Start returns the identity provider authorization URL for the
	// organization's SSO connection.
	Start(ctx context.Context, orgID int64) (string, error)
	// Callback exchanges the provider code, enforces the organization's
	// verified-domain list, then finds or provisions the user, joins them
	// to the organization, and opens a session.
	Callback(ctx context.Context, code, state string) (*CallbackResult, error)
}

type ssoService struct {
	provider     identity.Provider
	userStore    store.UserStore
	orgStore     store.OrganizationStore
	sessionStore store.SessionStore
	txRunner     TxRunner
}

func NewSSOService(
	provider identity.Provider,
	userStore store.UserStore,
	orgStore store.OrganizationStore,
	sessionStore store.SessionStore,
	txRunner TxRunner,
) SSOService {
	return &ssoService{
		provider:     provider,
		userStore:    userStore,
		orgStore:     orgStore,
		sessionStore: sessionStore,
		txRunner:     txRunner,
	}
}

func (s *ssoService) Start(ctx context.Context, orgID int64) (string, error) {
	if s.provider == nil {
		return "", ErrSSONotConfigured
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrSSONotConfigured
		}
		return "", fmt.Errorf("getting organization: %w", err)
	}
	if !org.SSOEnabled() {
		return "", ErrSSONotConfigured
	}

	url, err := s.provider.AuthorizationURL(encodeSSOState(orgID), *org.SSOConnectionID)
	if err != nil {
		return "", fmt.Errorf("building authorization URL: %w", err)
	}
	return url, nil
}

func (s *ssoService) Callback(ctx context.Context, code, state string) (*CallbackResult, error) {
	if s.provider == nil {
		return nil, ErrSSONotConfigured
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "parley.sso.broker"})

	orgID, err := decodeSSOState(state)
	if err != nil {
		slog.WarnContext(ctx, "rejected sso callback with bad state", "error", err)
		return nil, ErrSSOFailed
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSSOFailed
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	if !org.SSOEnabled() {
		return nil, ErrSSOFailed
	}

	ident, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "sso code exchange failed", "error", err, "org_id", orgID)
		return nil, ErrSSOFailed
	}

	email := strings.ToLower(strings.TrimSpace(ident.Email))

	// The domain gate runs on every callback, before any account is looked
	// up or provisioned. An empty allowlist means the organization does not
	// restrict by domain.
	if len(org.VerifiedDomains) > 0 && !org.HasVerifiedDomain(emailDomain(email)) {
		slog.WarnContext(ctx, "rejected sso login from unverified domain", "org_id", org.ID)
		return nil, ErrSSOFailed
	}

	user, err := s.findOrCreateUser(ctx, ident, email)
	if err != nil {
		return nil, err
	}

	if err := s.ensureMembership(ctx, user, org); err != nil {
		return nil, err
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(SessionDuration),
	}
	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "sso login completed",
		"user_id", user.ID,
		"org_id", org.ID,
		"session_id", session.ID,
	)

	return &CallbackResult{User: user, Organization: org, Session: session}, nil
}

func (s *ssoService) findOrCreateUser(ctx context.Context, ident *identity.Identity, email string) (*model.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user = &model.User{
		ID:            id.New(),
		Name:          buildUserName(ident, email),
		Email:         email,
		Provider:      "sso",
		EmailVerified: true,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost a provisioning race; the other login created the user.
			return s.userStore.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "provisioned user from sso", "user_id", user.ID)
	return user, nil
}

// ensureMembership admits the user to the organization. Existing members
// pass through; new users are auto-joined as members. The caller has
// already verified the email domain.
func (s *ssoService) ensureMembership(ctx context.Context, user *model.User, org *model.Organization) error {
	return s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		_, err := stores.Memberships().GetByUserAndOrg(ctx, user.ID, org.ID)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("getting membership: %w", err)
		}

		membership := &model.Membership{
			ID:             id.New(),
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           model.RoleMember,
		}
		if err := stores.Memberships().Create(ctx, membership); err != nil && !errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("creating membership: %w", err)
		}

		if err := stores.Users().SetDefaultOrgIfUnset(ctx, user.ID, org.ID); err != nil {
			return fmt.Errorf("setting default org: %w", err)
		}
		return nil
	})
}

func buildUserName(ident *identity.Identity, email string) string {
	name := strings.TrimSpace(strings.TrimSpace(ident.FirstName) + " " + strings.TrimSpace(ident.LastName))
	if name == "" {
		return email
	}
	return name
}

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}

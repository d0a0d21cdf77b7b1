package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"parley.chat/api-server/common/crypto"
	"parley.chat/api-server/common/id"
	"parley.chat/api-server/internal/mail"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/store"
)

const (
	InviteTokenBytes = 32
	InviteExpiryDays = 7

	inviteMailTemplate = "invite_user"
)

var (
	// ErrInviteInvalid covers every unusable-token case: unknown, expired,
	// or already accepted. Kept deliberately vague so callers can't
	// enumerate token state.
	ErrInviteInvalid = errors.New("invalid or expired invite")

	ErrAlreadyMember = errors.New("user is already a member of this organization")
	ErrInvitePending = errors.New("a pending invite already exists for this email")
)

type InviteService interface {
	// Issue creates an invite and returns it along with the plaintext token.
	// The token is never stored; only its hash is.
	Issue(ctx context.Context, orgID, inviterID int64, email string, role model.Role) (*model.OrganizationInvite, string, error)
	// Accept redeems a token for the authenticated user, creating the
	// membership and stamping the invite. Possession of the token is the
	// credential; the acceptor's email need not match the invitee's.
	// Accepting an invite for an organization the user already belongs to
	// succeeds without change.
	Accept(ctx context.Context, token string, user *model.User) (*model.Organization, error)
	// PurgeExpired removes invites that expired without being accepted.
	PurgeExpired(ctx context.Context) (int64, error)
}

type inviteService struct {
	inviteStore     store.InviteStore
	membershipStore store.MembershipStore
	orgStore        store.OrganizationStore
	userStore       store.UserStore
	txRunner        TxRunner
	mailer          mail.Mailer
	clientOrigin    string
	appName         string
}

func NewInviteService(
	inviteStore store.InviteStore,
	membershipStore store.MembershipStore,
	orgStore store.OrganizationStore,
	userStore store.UserStore,
	txRunner TxRunner,
	mailer mail.Mailer,
	clientOrigin string,
	appName string,
) InviteService {
	return &inviteService{
		inviteStore:     inviteStore,
		membershipStore: membershipStore,
		orgStore:        orgStore,
		userStore:       userStore,
		txRunner:        txRunner,
		mailer:          mailer,
		clientOrigin:    clientOrigin,
		appName:         appName,
	}
}

func (s *inviteService) Issue(ctx context.Context, orgID, inviterID int64, email string, role model.Role) (*model.OrganizationInvite, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// Invites grant member or admin; ownership is never delegated this way.
	if role != model.RoleAdmin {
		role = model.RoleMember
	}

	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		return nil, "", fmt.Errorf("getting organization: %w", err)
	}

	if existing, err := s.userStore.GetByEmail(ctx, email); err == nil {
		_, err := s.membershipStore.GetByUserAndOrg(ctx, existing.ID, orgID)
		if err == nil {
			return nil, "", ErrAlreadyMember
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, "", fmt.Errorf("checking membership: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if _, err := s.inviteStore.GetPendingByEmailAndOrg(ctx, email, orgID); err == nil {
		return nil, "", ErrInvitePending
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("checking pending invite: %w", err)
	}

	token, err := crypto.NewToken(InviteTokenBytes)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	inv := &model.OrganizationInvite{
		ID:             id.New(),
		Email:          email,
		OrganizationID: orgID,
		InviterID:      inviterID,
		Role:           role,
		TokenHash:      crypto.HashToken(token),
		ExpiresAt:      time.Now().Add(InviteExpiryDays * 24 * time.Hour),
	}

	if err := s.inviteStore.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("creating invite: %w", err)
	}

	link := fmt.Sprintf("%s/register?token=%s&organization=%d", s.clientOrigin, url.QueryEscape(token), orgID)
	s.sendInviteMail(ctx, inv, org, inviterID, link)

	slog.InfoContext(ctx, "invite issued",
		"invite_id", inv.ID,
		"org_id", orgID,
		"email", email,
		"role", role,
		"expires_at", inv.ExpiresAt,
	)

	return inv, token, nil
}

func (s *inviteService) Accept(ctx context.Context, token string, user *model.User) (*model.Organization, error) {
	inv, err := s.inviteStore.GetUsableByHash(ctx, crypto.HashToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteInvalid
		}
		return nil, fmt.Errorf("getting invite: %w", err)
	}

	org, err := s.orgStore.GetByID(ctx, inv.OrganizationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Organization was deleted after the invite went out.
			return nil, ErrInviteInvalid
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		membership := &model.Membership{
			ID:             id.New(),
			UserID:         user.ID,
			OrganizationID: inv.OrganizationID,
			Role:           inv.Role,
		}
		if err := stores.Memberships().Create(ctx, membership); err != nil {
			// Concurrent joins race on the membership uniqueness constraint;
			// the loser still counts as joined.
			if !errors.Is(err, store.ErrConflict) {
				return fmt.Errorf("creating membership: %w", err)
			}
		}

		if err := stores.Users().SetDefaultOrgIfUnset(ctx, user.ID, inv.OrganizationID); err != nil {
			return fmt.Errorf("setting default org: %w", err)
		}

		if err := stores.Invites().MarkAccepted(ctx, inv.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("marking invite accepted: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invite accepted",
		"invite_id", inv.ID,
		"user_id", user.ID,
		"org_id", inv.OrganizationID,
	)

	return org, nil
}

func (s *inviteService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.inviteStore.PurgeExpired(ctx)
}

// sendInviteMail is best-effort: the invite stands even if the email never
// goes out, since the link is also returned to the caller.
func (s *inviteService) sendInviteMail(ctx context.Context, inv *model.OrganizationInvite, org *model.Organization, inviterID int64, link string) {
	inviterName := ""
	if inviter, err := s.userStore.GetByID(ctx, inviterID); err == nil {
		inviterName = inviter.Name
	}

	err := s.mailer.Send(ctx, mail.Message{
		To:       inv.Email,
		Template: inviteMailTemplate,
		Payload: map[string]string{
			"app":          s.appName,
			"link":         link,
			"organization": org.Name,
			"role":         string(inv.Role),
			"inviter":      inviterName,
		},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to enqueue invite mail", "error", err, "invite_id", inv.ID)
	}
}

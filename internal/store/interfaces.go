package store

import (
	"context"
	"errors"

	"parley.chat/api-server/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert loses a uniqueness race, e.g. two
// concurrent joins creating the same membership.
var ErrConflict = errors.New("conflict")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	SetDefaultOrg(ctx context.Context, userID int64, orgID *int64) error
	SetDefaultOrgIfUnset(ctx context.Context, userID int64, orgID int64) error
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error)
}

// MembershipStore defines the contract for membership data access
type MembershipStore interface {
	GetByUserAndOrg(ctx context.Context, userID, orgID int64) (*model.Membership, error)
	Create(ctx context.Context, m *model.Membership) error
	FirstForUser(ctx context.Context, userID int64) (*model.Membership, error)
}

// InviteStore defines the contract for organization invite data access
type InviteStore interface {
	Create(ctx context.Context, inv *model.OrganizationInvite) error
	GetUsableByHash(ctx context.Context, tokenHash string) (*model.OrganizationInvite, error)
	GetPendingByEmailAndOrg(ctx context.Context, email string, orgID int64) (*model.OrganizationInvite, error)
	MarkAccepted(ctx context.Context, id int64) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValid(ctx context.Context, id int64) (*model.Session, error)
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/store"
)

// AccessCheck is the outcome of a membership authority decision. When
// HasAccess is false, Membership may still be set if the user belongs to
// the organization but below the required role.
type AccessCheck struct {
	HasAccess  bool
	Membership *model.Membership
}

// AuthzService decides whether a user may act inside an organization.
type AuthzService interface {
	// CheckAccess verifies the user's membership in the organization and,
	// when required is non-nil, that the membership's role ranks at least
	// as high. A missing membership denies access rather than erroring.
	CheckAccess(ctx context.Context, userID, orgID int64, required *model.Role) (AccessCheck, error)
}

type authzService struct {
	membershipStore store.MembershipStore
}

func NewAuthzService(membershipStore store.MembershipStore) AuthzService {
	return &authzService{membershipStore: membershipStore}
}

func (s *authzService) CheckAccess(ctx context.Context, userID, orgID int64, required *model.Role) (AccessCheck, error) {
	membership, err := s.membershipStore.GetByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AccessCheck{}, nil
		}
		return AccessCheck{}, fmt.Errorf("getting membership: %w", err)
	}

	if required != nil && !membership.Role.Meets(*required) {
		return AccessCheck{Membership: membership}, nil
	}

	return AccessCheck{HasAccess: true, Membership: membership}, nil
}

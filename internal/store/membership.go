package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"parley.chat/api-server/core/db/sqlc"
	"parley.chat/api-server/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) GetByUserAndOrg(ctx context.Context, userID, orgID int64) (*model.Membership, error) {
	row, err := s.queries.GetMembershipByUserAndOrg(ctx, sqlc.GetMembershipByUserAndOrgParams{
		UserID:         userID,
		OrganizationID: orgID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	row, err := s.queries.CreateMembership(ctx, sqlc.CreateMembershipParams{
		ID:             m.ID,
		UserID:         m.UserID,
		OrganizationID: m.OrganizationID,
		Role:           string(m.Role),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*m = *toMembershipModel(row)
	return nil
}

// FirstForUser returns the user's earliest membership by creation time.
func (s *membershipStore) FirstForUser(ctx context.Context, userID int64) (*model.Membership, error) {
	row, err := s.queries.GetFirstMembershipForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toMembershipModel(row), nil
}

func toMembershipModel(row sqlc.Membership) *model.Membership {
	return &model.Membership{
		ID:             row.ID,
		UserID:         row.UserID,
		OrganizationID: row.OrganizationID,
		Role:           model.Role(row.Role),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

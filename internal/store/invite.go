package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"parley.chat/api-server/core/db/sqlc"
	"parley.chat/api-server/internal/model"
)

type inviteStore struct {
	queries *sqlc.Queries
}

func newInviteStore(queries *sqlc.Queries) InviteStore {
	return &inviteStore{queries: queries}
}

func (s *inviteStore) Create(ctx context.Context, inv *model.OrganizationInvite) error {
	row, err := s.queries.CreateOrganizationInvite(ctx, sqlc.CreateOrganizationInviteParams{
		ID:             inv.ID,
		Email:          inv.Email,
		OrganizationID: inv.OrganizationID,
		InviterID:      inv.InviterID,
		Role:           string(inv.Role),
		TokenHash:      inv.TokenHash,
		ExpiresAt:      pgtype.Timestamptz{Time: inv.ExpiresAt, Valid: true},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*inv = *toInviteModel(row)
	return nil
}

func (s *inviteStore) GetUsableByHash(ctx context.Context, tokenHash string) (*model.OrganizationInvite, error) {
	row, err := s.queries.GetUsableInviteByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInviteModel(row), nil
}

func (s *inviteStore) GetPendingByEmailAndOrg(ctx context.Context, email string, orgID int64) (*model.OrganizationInvite, error) {
	row, err := s.queries.GetPendingInviteByEmailAndOrg(ctx, sqlc.GetPendingInviteByEmailAndOrgParams{
		Lower:          email,
		OrganizationID: orgID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInviteModel(row), nil
}

// MarkAccepted stamps the invite as accepted. Returns ErrNotFound if the
// invite does not exist or was already accepted.
func (s *inviteStore) MarkAccepted(ctx context.Context, id int64) error {
	affected, err := s.queries.AcceptOrganizationInvite(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *inviteStore) PurgeExpired(ctx context.Context) (int64, error) {
	return s.queries.PurgeExpiredInvites(ctx)
}

func toInviteModel(row sqlc.OrganizationInvite) *model.OrganizationInvite {
	inv := &model.OrganizationInvite{
		ID:             row.ID,
		Email:          row.Email,
		OrganizationID: row.OrganizationID,
		InviterID:      row.InviterID,
		Role:           model.Role(row.Role),
		TokenHash:      row.TokenHash,
		ExpiresAt:      row.ExpiresAt.Time,
		CreatedAt:      row.CreatedAt.Time,
	}
	if row.AcceptedAt.Valid {
		inv.AcceptedAt = &row.AcceptedAt.Time
	}
	return inv
}

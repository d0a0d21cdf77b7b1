package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"parley.chat/api-server/core/db/sqlc"
	"parley.chat/api-server/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	row, err := s.queries.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:              org.ID,
		OwnerUserID:     org.OwnerUserID,
		Name:            org.Name,
		Slug:            org.Slug,
		SsoConnectionID: org.SSOConnectionID,
		VerifiedDomains: org.VerifiedDomains,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.UpdateOrganization(ctx, sqlc.UpdateOrganizationParams{
		ID:              org.ID,
		Name:            org.Name,
		SsoConnectionID: org.SSOConnectionID,
		VerifiedDomains: org.VerifiedDomains,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteOrganization(ctx, id)
}

func (s *organizationStore) ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error) {
	rows, err := s.queries.ListOrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]model.UserOrganization, len(rows))
	for i, row := range rows {
		result[i] = model.UserOrganization{
			Organization: *toOrganizationModel(row.Organization),
			Role:         model.Role(row.Role),
		}
	}
	return result, nil
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:              row.ID,
		OwnerUserID:     row.OwnerUserID,
		Name:            row.Name,
		Slug:            row.Slug,
		SSOConnectionID: row.SsoConnectionID,
		VerifiedDomains: row.VerifiedDomains,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

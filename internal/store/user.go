package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"parley.chat/api-server/core/db/sqlc"
	"parley.chat/api-server/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Provider:      user.Provider,
		EmailVerified: user.EmailVerified,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) SetDefaultOrg(ctx context.Context, userID int64, orgID *int64) error {
	return s.queries.SetUserDefaultOrg(ctx, sqlc.SetUserDefaultOrgParams{
		ID:           userID,
		DefaultOrgID: orgID,
	})
}

func (s *userStore) SetDefaultOrgIfUnset(ctx context.Context, userID int64, orgID int64) error {
	return s.queries.SetUserDefaultOrgIfUnset(ctx, sqlc.SetUserDefaultOrgIfUnsetParams{
		ID:           userID,
		DefaultOrgID: &orgID,
	})
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Provider:      row.Provider,
		EmailVerified: row.EmailVerified,
		DefaultOrgID:  row.DefaultOrgID,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/store"
)

var ErrSessionInvalid = errors.New("session is invalid or expired")

type SessionService interface {
	// ValidateSession resolves a session ID to its user, rejecting expired
	// or unknown sessions.
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, error)
	Logout(ctx context.Context, sessionID int64) error
	// PurgeExpired removes sessions past their expiry.
	PurgeExpired(ctx context.Context) (int64, error)
}

type sessionService struct {
	sessionStore store.SessionStore
	userStore    store.UserStore
}

func NewSessionService(sessionStore store.SessionStore, userStore store.UserStore) SessionService {
	return &sessionService{
		sessionStore: sessionStore,
		userStore:    userStore,
	}
}

func (s *sessionService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *sessionService) Logout(ctx context.Context, sessionID int64) error {
	return s.sessionStore.Delete(ctx, sessionID)
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessionStore.DeleteExpired(ctx)
}

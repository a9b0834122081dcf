// Package sessions owns login sessions and resolves bearer tokens to account
// ids. It knows nothing about accounts beyond their opaque id.
package sessions

import (
	"context"

	"github.com/google/uuid"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Session binds an opaque bearer token to an account id.
type Session struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

type Service struct {
	col *docstore.Collection[Session]
}

func NewService(b docstore.Backend) *Service {
	return &Service{col: docstore.NewCollection[Session](b, "sessions")}
}

// Start opens a session for a user and returns the bearer token.
func (s *Service) Start(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()
	if _, err := s.col.CreateOne(ctx, Session{Token: token, User: userID}); err != nil {
		return "", err
	}
	return token, nil
}

// CurrentUser resolves a token to the logged-in account id.
func (s *Service) CurrentUser(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.NewNotAllowed("must be logged in")
	}
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"token": token})
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", apperr.NewNotAllowed("session is expired or invalid")
	}
	return rec.Doc.User, nil
}

// AssertLoggedOut fails when the token still resolves to a live session,
// e.g. registering while logged in.
func (s *Service) AssertLoggedOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"token": token})
	if err != nil {
		return err
	}
	if rec != nil {
		return apperr.NewNotAllowed("must be logged out")
	}
	return nil
}

// End closes the session for a token. Ending an already-ended session is a
// no-op.
func (s *Service) End(ctx context.Context, token string) error {
	_, err := s.col.DeleteOne(ctx, docstore.Filter{"token": token})
	return err
}

// EndAllForUser closes every session of a user, used when the account is
// deleted.
func (s *Service) EndAllForUser(ctx context.Context, userID string) error {
	recs, err := s.col.ReadMany(ctx, docstore.Filter{"user": userID})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err := s.col.DeleteOne(ctx, docstore.Filter{"id": rec.ID}); err != nil {
			return err
		}
	}
	return nil
}

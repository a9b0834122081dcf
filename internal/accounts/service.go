// Package accounts owns user accounts and the username namespace.
package accounts

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Account is the persisted document. Credential is a bcrypt hash and must
// never leave this package in API responses.
type Account struct {
	Username   string `json:"username"`
	Credential string `json:"credential"`
}

// Service enforces username uniqueness; the store itself does not.
type Service struct {
	col *docstore.Collection[Account]
}

func NewService(b docstore.Backend) *Service {
	return &Service{col: docstore.NewCollection[Account](b, "accounts")}
}

// Register creates a new account with a unique username.
func (s *Service) Register(ctx context.Context, username, password string) (*docstore.Record[Account], error) {
	if username == "" || password == "" {
		return nil, apperr.NewValidation("username", "username and password must be non-empty")
	}
	if err := s.assertUsernameUnique(ctx, username); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rec, err := s.col.CreateOne(ctx, Account{Username: username, Credential: string(hash)})
	if err != nil {
		return nil, err
	}
	log.Info().Str("accountID", rec.ID).Str("username", username).Msg("Account registered")
	return rec, nil
}

// Authenticate verifies a username/password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*docstore.Record[Account], error) {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NewNotAllowed("username or password is incorrect")
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Doc.Credential), []byte(password)) != nil {
		return nil, apperr.NewNotAllowed("username or password is incorrect")
	}
	return rec, nil
}

// ByID returns the account for an id.
func (s *Service) ByID(ctx context.Context, id string) (*docstore.Record[Account], error) {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NewNotFound("account", id)
	}
	return rec, nil
}

// ByUsername returns the account for a username.
func (s *Service) ByUsername(ctx context.Context, username string) (*docstore.Record[Account], error) {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NewNotFound("account", username)
	}
	return rec, nil
}

// IDForUsername resolves a username to its opaque account id.
func (s *Service) IDForUsername(ctx context.Context, username string) (string, error) {
	rec, err := s.ByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// UsernamesForIDs resolves ids to usernames, keeping order. Unknown ids map
// to "DELETED_USER" so historical references stay renderable.
func (s *Service) UsernamesForIDs(ctx context.Context, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		rec, err := s.col.ReadOne(ctx, docstore.Filter{"id": id})
		if err != nil {
			return nil, err
		}
		if rec == nil {
			out = append(out, "DELETED_USER")
			continue
		}
		out = append(out, rec.Doc.Username)
	}
	return out, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*docstore.Record[Account], error) {
	return s.col.ReadMany(ctx, docstore.Filter{})
}

// UpdateUsername renames an account, keeping the namespace unique.
func (s *Service) UpdateUsername(ctx context.Context, id, username string) (*docstore.Record[Account], error) {
	if username == "" {
		return nil, apperr.NewValidation("username", "username must be non-empty")
	}
	if err := s.assertUsernameUnique(ctx, username); err != nil {
		return nil, err
	}
	rec, err := s.col.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Fields{"username": username})
	if err == docstore.ErrNotFound {
		return nil, apperr.NewNotFound("account", id)
	}
	return rec, err
}

// UpdatePassword replaces the credential after verifying the current one.
func (s *Service) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	rec, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Doc.Credential), []byte(currentPassword)) != nil {
		return apperr.NewNotAllowed("current password is incorrect")
	}
	if newPassword == "" {
		return apperr.NewValidation("password", "new password must be non-empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.col.PartialUpdateOne(ctx, docstore.Filter{"id": id}, docstore.Fields{"credential": string(hash)})
	return err
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.col.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NewNotFound("account", id)
	}
	log.Info().Str("accountID", id).Msg("Account deleted")
	return nil
}

func (s *Service) assertUsernameUnique(ctx context.Context, username string) error {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"username": username})
	if err != nil {
		return err
	}
	if rec != nil {
		return apperr.NewNotAllowed("username " + username + " is already taken")
	}
	return nil
}

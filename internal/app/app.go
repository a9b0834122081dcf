// Package app is the synchronization layer: every user-facing action is a
// stateless composition of concept operations. It is the only place that may
// talk to more than one concept, and it owns no collections of its own.
//
// Compositions run their steps strictly sequentially and do not roll back
// earlier steps when a later one fails; where that produces a meaningful
// partial success the result type says so explicitly.
package app

import (
	"context"

	"github.com/meshwork-social/meshwork/internal/accounts"
	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/feeds"
	"github.com/meshwork-social/meshwork/internal/friends"
	"github.com/meshwork-social/meshwork/internal/genai"
	"github.com/meshwork-social/meshwork/internal/moderation"
	"github.com/meshwork-social/meshwork/internal/notify"
	"github.com/meshwork-social/meshwork/internal/posts"
	"github.com/meshwork-social/meshwork/internal/reactions"
	"github.com/meshwork-social/meshwork/internal/sessions"
)

// App holds one explicitly constructed instance of every concept service.
type App struct {
	Accounts   *accounts.Service
	Sessions   *sessions.Service
	Posts      *posts.Service
	Friends    *friends.Service
	Reactions  *reactions.Service
	Feeds      *feeds.Service
	Notify     *notify.Service
	Moderation *moderation.Service
}

// New wires every concept against the shared backend. Each concept creates
// its own private collections; nothing is shared between them but the ids
// they exchange through this layer.
func New(b docstore.Backend, gen genai.Generator, cls genai.Classifier) *App {
	return &App{
		Accounts:   accounts.NewService(b),
		Sessions:   sessions.NewService(b),
		Posts:      posts.NewService(b),
		Friends:    friends.NewService(b),
		Reactions:  reactions.NewService(b),
		Feeds:      feeds.NewService(b),
		Notify:     notify.NewService(b, gen),
		Moderation: moderation.NewService(b, cls),
	}
}

// UserView is the public shape of an account.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func userView(rec *docstore.Record[accounts.Account]) UserView {
	return UserView{ID: rec.ID, Username: rec.Doc.Username}
}

// Register creates an account. The caller must not be logged in.
func (a *App) Register(ctx context.Context, token, username, password string) (UserView, error) {
	if err := a.Sessions.AssertLoggedOut(ctx, token); err != nil {
		return UserView{}, err
	}
	rec, err := a.Accounts.Register(ctx, username, password)
	if err != nil {
		return UserView{}, err
	}
	return userView(rec), nil
}

// Login authenticates and opens a session, returning the bearer token.
func (a *App) Login(ctx context.Context, username, password string) (string, error) {
	rec, err := a.Accounts.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return a.Sessions.Start(ctx, rec.ID)
}

// Logout ends the session for a token.
func (a *App) Logout(ctx context.Context, token string) error {
	return a.Sessions.End(ctx, token)
}

// SessionUser returns the account behind a session token.
func (a *App) SessionUser(ctx context.Context, token string) (UserView, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return UserView{}, err
	}
	rec, err := a.Accounts.ByID(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return userView(rec), nil
}

// Users lists every account.
func (a *App) Users(ctx context.Context) ([]UserView, error) {
	recs, err := a.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, userView(rec))
	}
	return out, nil
}

// UserByUsername resolves one account by username.
func (a *App) UserByUsername(ctx context.Context, username string) (UserView, error) {
	rec, err := a.Accounts.ByUsername(ctx, username)
	if err != nil {
		return UserView{}, err
	}
	return userView(rec), nil
}

// UpdateUsername renames the logged-in account.
func (a *App) UpdateUsername(ctx context.Context, token, username string) (UserView, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return UserView{}, err
	}
	rec, err := a.Accounts.UpdateUsername(ctx, userID, username)
	if err != nil {
		return UserView{}, err
	}
	return userView(rec), nil
}

// UpdatePassword changes the logged-in account's credential.
func (a *App) UpdatePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	return a.Accounts.UpdatePassword(ctx, userID, currentPassword, newPassword)
}

// DeleteUser ends the session and removes the account.
func (a *App) DeleteUser(ctx context.Context, token string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	if err := a.Sessions.EndAllForUser(ctx, userID); err != nil {
		return err
	}
	return a.Accounts.Delete(ctx, userID)
}

// notFoundOK swallows NotFound errors in sweeps that tolerate concurrent
// deletion.
func notFoundOK(err error) error {
	if err == nil || apperr.IsNotFound(err) {
		return nil
	}
	return err
}

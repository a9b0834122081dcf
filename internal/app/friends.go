package app

import (
	"context"
	"time"
)

// FriendRequestView is a request with both parties resolved to usernames.
type FriendRequestView struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// FriendsOf lists the usernames of the logged-in user's friends.
func (a *App) FriendsOf(ctx context.Context, token string) ([]string, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	ids, err := a.Friends.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.Accounts.UsernamesForIDs(ctx, ids)
}

// FriendRequestsOf lists every request involving the logged-in user.
func (a *App) FriendRequestsOf(ctx context.Context, token string) ([]FriendRequestView, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	recs, err := a.Friends.Requests(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]FriendRequestView, 0, len(recs))
	for _, rec := range recs {
		names, err := a.Accounts.UsernamesForIDs(ctx, []string{rec.Doc.From, rec.Doc.To})
		if err != nil {
			return nil, err
		}
		out = append(out, FriendRequestView{
			From:      names[0],
			To:        names[1],
			Status:    rec.Doc.Status,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

// SendFriendRequest opens a request from the logged-in user to a username.
func (a *App) SendFriendRequest(ctx context.Context, token, to string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	toID, err := a.Accounts.IDForUsername(ctx, to)
	if err != nil {
		return err
	}
	_, err = a.Friends.SendRequest(ctx, userID, toID)
	return err
}

// RemoveFriendRequest withdraws a pending request to a username.
func (a *App) RemoveFriendRequest(ctx context.Context, token, to string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	toID, err := a.Accounts.IDForUsername(ctx, to)
	if err != nil {
		return err
	}
	return a.Friends.RemoveRequest(ctx, userID, toID)
}

// AcceptFriendRequest accepts a pending request from a username.
func (a *App) AcceptFriendRequest(ctx context.Context, token, from string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	fromID, err := a.Accounts.IDForUsername(ctx, from)
	if err != nil {
		return err
	}
	return a.Friends.AcceptRequest(ctx, fromID, userID)
}

// RejectFriendRequest rejects a pending request from a username.
func (a *App) RejectFriendRequest(ctx context.Context, token, from string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	fromID, err := a.Accounts.IDForUsername(ctx, from)
	if err != nil {
		return err
	}
	return a.Friends.RejectRequest(ctx, fromID, userID)
}

// RemoveFriend dissolves the friendship with a username.
func (a *App) RemoveFriend(ctx context.Context, token, friend string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	friendID, err := a.Accounts.IDForUsername(ctx, friend)
	if err != nil {
		return err
	}
	return a.Friends.RemoveFriend(ctx, userID, friendID)
}

package app

import (
	"context"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/reactions"
)

// ReactionView is the public shape of a reaction.
type ReactionView struct {
	ID   string `json:"id"`
	User string `json:"user"`
	Item string `json:"item"`
	Kind string `json:"kind"`
}

func reactionView(rec *docstore.Record[reactions.Reaction]) ReactionView {
	return ReactionView{ID: rec.ID, User: rec.Doc.User, Item: rec.Doc.Item, Kind: rec.Doc.Kind}
}

// AddReaction records the logged-in user's reaction on an item.
func (a *App) AddReaction(ctx context.Context, token, itemID, kind string) (ReactionView, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return ReactionView{}, err
	}
	rec, err := a.Reactions.Add(ctx, userID, itemID, kind)
	if err != nil {
		return ReactionView{}, err
	}
	return reactionView(rec), nil
}

// RemoveReaction clears the logged-in user's reaction on an item.
func (a *App) RemoveReaction(ctx context.Context, token, itemID string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	return a.Reactions.Remove(ctx, userID, itemID)
}

// ReactionCounts tallies reactions on an item by kind.
func (a *App) ReactionCounts(ctx context.Context, itemID string) (map[string]int, error) {
	return a.Reactions.Counts(ctx, itemID)
}

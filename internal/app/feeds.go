package app

import (
	"context"
	"time"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/feeds"
)

// FeedView is the public shape of a feed.
type FeedView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PostIDs     []string  `json:"postIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

func feedView(rec *docstore.Record[feeds.Feed]) FeedView {
	return FeedView{
		ID:          rec.ID,
		Name:        rec.Doc.Name,
		Description: rec.Doc.Description,
		PostIDs:     rec.Doc.PostIDs,
		CreatedAt:   rec.CreatedAt,
	}
}

// CreateFeed makes a new feed.
func (a *App) CreateFeed(ctx context.Context, name, description string) (FeedView, error) {
	rec, err := a.Feeds.Create(ctx, name, description)
	if err != nil {
		return FeedView{}, err
	}
	return feedView(rec), nil
}

// ListFeeds lists every feed.
func (a *App) ListFeeds(ctx context.Context) ([]FeedView, error) {
	recs, err := a.Feeds.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FeedView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, feedView(rec))
	}
	return out, nil
}

// FeedByName returns one feed resolved by name.
func (a *App) FeedByName(ctx context.Context, name string) (FeedView, error) {
	feedID, err := a.Feeds.IDByName(ctx, name)
	if err != nil {
		return FeedView{}, err
	}
	rec, err := a.Feeds.Get(ctx, feedID)
	if err != nil {
		return FeedView{}, err
	}
	return feedView(rec), nil
}

// RemovePostFromFeed detaches a post id from a named feed.
func (a *App) RemovePostFromFeed(ctx context.Context, name, postID string) (FeedView, error) {
	feedID, err := a.Feeds.IDByName(ctx, name)
	if err != nil {
		return FeedView{}, err
	}
	rec, err := a.Feeds.RemovePost(ctx, feedID, postID)
	if err != nil {
		return FeedView{}, err
	}
	return feedView(rec), nil
}

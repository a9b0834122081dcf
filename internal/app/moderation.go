package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/moderation"
)

// FlagView is the public shape of a flag report.
type FlagView struct {
	ID        string    `json:"id"`
	Item      string    `json:"item"`
	Reporters []string  `json:"reporters"`
	Reasons   []string  `json:"reasons"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewView is the public shape of a review outcome.
type ReviewView struct {
	ID        string    `json:"id"`
	Item      string    `json:"item"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"createdAt"`
}

// FlagPost reports a post. The content snapshot is pulled from Posts here;
// Moderation itself never resolves item ids.
func (a *App) FlagPost(ctx context.Context, token, postID, reason string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	content, err := a.Posts.Content(ctx, postID)
	if err != nil {
		return err
	}
	return a.Moderation.FlagItem(ctx, postID, userID, content, reason)
}

// FlaggedItems lists every currently flagged item.
func (a *App) FlaggedItems(ctx context.Context) ([]FlagView, error) {
	recs, err := a.Moderation.Flagged(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]FlagView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, FlagView{
			ID:        rec.ID,
			Item:      rec.Doc.Item,
			Reporters: rec.Doc.Reporters,
			Reasons:   rec.Doc.Reasons,
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
	return out, nil
}

// ReviewedItems lists every recorded review outcome.
func (a *App) ReviewedItems(ctx context.Context) ([]ReviewView, error) {
	recs, err := a.Moderation.Reviewed(ctx)
	if err != nil {
		return nil, err
	}
	return reviewViews(recs), nil
}

// ReviewFlaggedPosts runs the moderation review sweep, then deletes every
// post whose outcome is "remove". Moderation has no notion of posts; only
// this layer bridges the two. A post already gone is tolerated.
func (a *App) ReviewFlaggedPosts(ctx context.Context) ([]ReviewView, error) {
	outcomes, err := a.Moderation.ReviewFlagged(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range outcomes {
		if rec.Doc.Outcome != moderation.OutcomeRemove {
			continue
		}
		if err := notFoundOK(a.removePostEverywhere(ctx, rec.Doc.Item)); err != nil {
			log.Error().Err(err).Str("item", rec.Doc.Item).Msg("failed to remove post after review")
			return nil, err
		}
	}
	return reviewViews(outcomes), nil
}

func reviewViews(recs []*docstore.Record[moderation.Review]) []ReviewView {
	out := make([]ReviewView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ReviewView{ID: rec.ID, Item: rec.Doc.Item, Outcome: rec.Doc.Outcome, CreatedAt: rec.CreatedAt})
	}
	return out
}

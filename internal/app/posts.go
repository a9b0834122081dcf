package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/posts"
)

// PostView is the public shape of a post, with the author resolved back to a
// username for display.
type PostView struct {
	ID        string         `json:"id"`
	Author    string         `json:"author"`
	Content   string         `json:"content"`
	Options   *posts.Options `json:"options,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (a *App) postView(ctx context.Context, rec *docstore.Record[posts.Post]) (PostView, error) {
	names, err := a.Accounts.UsernamesForIDs(ctx, []string{rec.Doc.Author})
	if err != nil {
		return PostView{}, err
	}
	return PostView{
		ID:        rec.ID,
		Author:    names[0],
		Content:   rec.Doc.Content,
		Options:   rec.Doc.Options,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// CreatePostResult reports the outcome of CreatePostInFeed. The post step
// and the feed step are separate concept calls with no rollback between
// them, so the post may exist while the feed attach failed; FeedError is set
// in that case and the caller must surface the partial success.
type CreatePostResult struct {
	Post         PostView `json:"post"`
	FeedAttached bool     `json:"feedAttached"`
	FeedError    string   `json:"feedError,omitempty"`
}

// CreatePostInFeed creates a post and, when a feed is named, attaches it.
func (a *App) CreatePostInFeed(ctx context.Context, token, content, feedName string, options *posts.Options) (CreatePostResult, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return CreatePostResult{}, err
	}
	rec, err := a.Posts.Create(ctx, userID, content, options)
	if err != nil {
		return CreatePostResult{}, err
	}
	view, err := a.postView(ctx, rec)
	if err != nil {
		return CreatePostResult{}, err
	}
	result := CreatePostResult{Post: view}

	// No feed requested: the composition ends after the post step.
	if feedName == "" {
		return result, nil
	}
	if err := a.attachToFeed(ctx, rec.ID, feedName); err != nil {
		log.Warn().Err(err).Str("postID", rec.ID).Str("feed", feedName).Msg("post created but feed attach failed")
		result.FeedError = err.Error()
		return result, nil
	}
	result.FeedAttached = true
	return result, nil
}

func (a *App) attachToFeed(ctx context.Context, postID, feedName string) error {
	feedID, err := a.Feeds.IDByName(ctx, feedName)
	if err != nil {
		return err
	}
	return a.Feeds.AddPost(ctx, feedID, postID)
}

// ListPosts lists posts, optionally restricted to an author username and/or
// intersected with the member set of a named feed. The intersection is
// computed here; neither concept knows about the other.
func (a *App) ListPosts(ctx context.Context, author, feedName string) ([]PostView, error) {
	var recs []*docstore.Record[posts.Post]
	var err error
	if author != "" {
		authorID, rerr := a.Accounts.IDForUsername(ctx, author)
		if rerr != nil {
			return nil, rerr
		}
		recs, err = a.Posts.ListByAuthor(ctx, authorID)
	} else {
		recs, err = a.Posts.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if feedName != "" {
		feedID, err := a.Feeds.IDByName(ctx, feedName)
		if err != nil {
			return nil, err
		}
		feed, err := a.Feeds.Get(ctx, feedID)
		if err != nil {
			return nil, err
		}
		members := make(map[string]bool, len(feed.Doc.PostIDs))
		for _, id := range feed.Doc.PostIDs {
			members[id] = true
		}
		filtered := recs[:0]
		for _, rec := range recs {
			if members[rec.ID] {
				filtered = append(filtered, rec)
			}
		}
		recs = filtered
	}

	out := make([]PostView, 0, len(recs))
	for _, rec := range recs {
		view, err := a.postView(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, view)
	}
	return out, nil
}

// UpdatePost edits a post owned by the logged-in user.
func (a *App) UpdatePost(ctx context.Context, token, postID string, content *string, options *posts.Options) (PostView, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return PostView{}, err
	}
	if err := a.Posts.AssertAuthor(ctx, postID, userID); err != nil {
		return PostView{}, err
	}
	rec, err := a.Posts.Update(ctx, postID, content, options)
	if err != nil {
		return PostView{}, err
	}
	return a.postView(ctx, rec)
}

// DeletePost removes a post owned by the logged-in user. Feed membership and
// reactions are purged before the post record is deleted, so a failure
// between the steps cannot leave dangling references behind a live post.
func (a *App) DeletePost(ctx context.Context, token, postID string) error {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return err
	}
	if err := a.Posts.AssertAuthor(ctx, postID, userID); err != nil {
		return err
	}
	return a.removePostEverywhere(ctx, postID)
}

// removePostEverywhere purges a post id from feeds and reactions, then
// deletes the post itself. Order matters: purge first, delete last.
func (a *App) removePostEverywhere(ctx context.Context, postID string) error {
	if err := a.Feeds.RemovePostFromAll(ctx, postID); err != nil {
		return err
	}
	if err := a.Reactions.RemoveAllForItem(ctx, postID); err != nil {
		return err
	}
	return a.Posts.Delete(ctx, postID)
}

// PostContent returns a post's text.
func (a *App) PostContent(ctx context.Context, postID string) (string, error) {
	return a.Posts.Content(ctx, postID)
}

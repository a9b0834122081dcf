// Package posts owns authored posts. Authors are opaque account ids.
package posts

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Options carries presentation options chosen by the author.
type Options struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Post is the persisted document.
type Post struct {
	Author  string   `json:"author"`
	Content string   `json:"content"`
	Options *Options `json:"options,omitempty"`
}

type Service struct {
	col *docstore.Collection[Post]
}

func NewService(b docstore.Backend) *Service {
	return &Service{col: docstore.NewCollection[Post](b, "posts")}
}

// Create persists a new post for an author.
func (s *Service) Create(ctx context.Context, author, content string, options *Options) (*docstore.Record[Post], error) {
	if content == "" {
		return nil, apperr.NewValidation("content", "post content must be non-empty")
	}
	rec, err := s.col.CreateOne(ctx, Post{Author: author, Content: content, Options: options})
	if err != nil {
		return nil, err
	}
	log.Info().Str("postID", rec.ID).Str("author", author).Msg("Post created")
	return rec, nil
}

// ByID returns a post.
func (s *Service) ByID(ctx context.Context, id string) (*docstore.Record[Post], error) {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NewNotFound("post", id)
	}
	return rec, nil
}

// Content returns the text of a post, used by callers that snapshot it.
func (s *Service) Content(ctx context.Context, id string) (string, error) {
	rec, err := s.ByID(ctx, id)
	if err != nil {
		return "", err
	}
	return rec.Doc.Content, nil
}

// List returns all posts.
func (s *Service) List(ctx context.Context) ([]*docstore.Record[Post], error) {
	return s.col.ReadMany(ctx, docstore.Filter{})
}

// ListByAuthor returns all posts by one author.
func (s *Service) ListByAuthor(ctx context.Context, author string) ([]*docstore.Record[Post], error) {
	return s.col.ReadMany(ctx, docstore.Filter{"author": author})
}

// Update rewrites content and/or options of a post.
func (s *Service) Update(ctx context.Context, id string, content *string, options *Options) (*docstore.Record[Post], error) {
	fields := docstore.Fields{}
	if content != nil {
		if *content == "" {
			return nil, apperr.NewValidation("content", "post content must be non-empty")
		}
		fields["content"] = *content
	}
	if options != nil {
		fields["options"] = options
	}
	if len(fields) == 0 {
		return s.ByID(ctx, id)
	}
	rec, err := s.col.PartialUpdateOne(ctx, docstore.Filter{"id": id}, fields)
	if err == docstore.ErrNotFound {
		return nil, apperr.NewNotFound("post", id)
	}
	return rec, err
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.col.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NewNotFound("post", id)
	}
	log.Info().Str("postID", id).Msg("Post deleted")
	return nil
}

// AssertAuthor fails with NotAllowed unless the post was authored by user.
func (s *Service) AssertAuthor(ctx context.Context, id, user string) error {
	rec, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Doc.Author != user {
		return apperr.NewNotAllowed("user is not the author of post " + id)
	}
	return nil
}

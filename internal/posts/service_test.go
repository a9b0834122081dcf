package posts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
)

func TestCreateAndRead(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	rec, err := svc.Create(ctx, "u1", "hello world", &Options{BackgroundColor: "blue"})
	require.NoError(t, err)

	got, err := svc.ByID(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "u1", got.Doc.Author)
	require.Equal(t, "hello world", got.Doc.Content)
	require.Equal(t, "blue", got.Doc.Options.BackgroundColor)

	content, err := svc.Content(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, "hello world", content)

	_, err = svc.Create(ctx, "u1", "", nil)
	require.True(t, apperr.IsValidation(err))
}

func TestListByAuthor(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	_, err := svc.Create(ctx, "u1", "one", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", "two", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "three", nil)
	require.NoError(t, err)

	mine, err := svc.ListByAuthor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "one", mine[0].Doc.Content)
	require.Equal(t, "three", mine[1].Doc.Content)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	rec, err := svc.Create(ctx, "u1", "original", nil)
	require.NoError(t, err)

	newContent := "edited"
	updated, err := svc.Update(ctx, rec.ID, &newContent, nil)
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Doc.Content)

	// Options-only update keeps content.
	updated, err = svc.Update(ctx, rec.ID, nil, &Options{BackgroundColor: "red"})
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Doc.Content)
	require.Equal(t, "red", updated.Doc.Options.BackgroundColor)

	empty := ""
	_, err = svc.Update(ctx, rec.ID, &empty, nil)
	require.True(t, apperr.IsValidation(err))

	_, err = svc.Update(ctx, "missing", &newContent, nil)
	require.True(t, apperr.IsNotFound(err))
}

func TestAssertAuthor(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	rec, err := svc.Create(ctx, "u1", "mine", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AssertAuthor(ctx, rec.ID, "u1"))
	require.True(t, apperr.IsNotAllowed(svc.AssertAuthor(ctx, rec.ID, "u2")))
	require.True(t, apperr.IsNotFound(svc.AssertAuthor(ctx, "missing", "u1")))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	rec, err := svc.Create(ctx, "u1", "gone soon", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.True(t, apperr.IsNotFound(svc.Delete(ctx, rec.ID)))
}

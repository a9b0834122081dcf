package reactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
)

func TestAddReplacesExistingReaction(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	first, err := svc.Add(ctx, "u1", "item1", "like")
	require.NoError(t, err)

	second, err := svc.Add(ctx, "u1", "item1", "love")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "same (user,item) must reuse the record")
	require.Equal(t, "love", second.Doc.Kind)

	counts, err := svc.Counts(ctx, "item1")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"love": 1}, counts)
}

func TestCountsTallyByKind(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	_, err := svc.Add(ctx, "u1", "item1", "like")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", "item1", "like")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u3", "item1", "wow")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", "item2", "like")
	require.NoError(t, err)

	counts, err := svc.Counts(ctx, "item1")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"like": 2, "wow": 1}, counts)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	_, err := svc.Add(ctx, "u1", "item1", "like")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "u1", "item1"))
	require.True(t, apperr.IsNotFound(svc.Remove(ctx, "u1", "item1")))
}

func TestRemoveAllForItem(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	_, err := svc.Add(ctx, "u1", "item1", "like")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", "item1", "wow")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", "item2", "like")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveAllForItem(ctx, "item1"))

	counts, err := svc.Counts(ctx, "item1")
	require.NoError(t, err)
	require.Empty(t, counts)

	counts, err = svc.Counts(ctx, "item2")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"like": 1}, counts)
}

func TestAddRejectsEmptyKind(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	_, err := svc.Add(ctx, "u1", "item1", "")
	require.True(t, apperr.IsValidation(err))
}

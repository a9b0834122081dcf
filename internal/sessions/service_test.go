package sessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
)

func TestStartAndResolve(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	token, err := svc.Start(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "u1", user)
}

func TestCurrentUserRejectsMissingOrStaleToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	_, err := svc.CurrentUser(ctx, "")
	require.True(t, apperr.IsNotAllowed(err))

	_, err = svc.CurrentUser(ctx, "stale-token")
	require.True(t, apperr.IsNotAllowed(err))
}

func TestEndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	token, err := svc.Start(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, token))
	require.NoError(t, svc.End(ctx, token), "ending an ended session is a no-op")

	_, err = svc.CurrentUser(ctx, token)
	require.True(t, apperr.IsNotAllowed(err))
}

func TestAssertLoggedOut(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	require.NoError(t, svc.AssertLoggedOut(ctx, ""))
	require.NoError(t, svc.AssertLoggedOut(ctx, "stale-token"))

	token, err := svc.Start(ctx, "u1")
	require.NoError(t, err)
	require.True(t, apperr.IsNotAllowed(svc.AssertLoggedOut(ctx, token)))
}

func TestEndAllForUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	t1, err := svc.Start(ctx, "u1")
	require.NoError(t, err)
	t2, err := svc.Start(ctx, "u1")
	require.NoError(t, err)
	other, err := svc.Start(ctx, "u2")
	require.NoError(t, err)

	require.NoError(t, svc.EndAllForUser(ctx, "u1"))

	_, err = svc.CurrentUser(ctx, t1)
	require.True(t, apperr.IsNotAllowed(err))
	_, err = svc.CurrentUser(ctx, t2)
	require.True(t, apperr.IsNotAllowed(err))

	user, err := svc.CurrentUser(ctx, other)
	require.NoError(t, err)
	require.Equal(t, "u2", user)
}

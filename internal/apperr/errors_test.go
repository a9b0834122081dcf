package apperr

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	nf := NewNotFound("post", "abc")
	na := NewNotAllowed("duplicate feed name")
	ve := NewValidation("scheduledAt", "must be in the future")

	require.True(t, IsNotFound(nf))
	require.False(t, IsNotFound(na))
	require.False(t, IsNotFound(ve))

	require.True(t, IsNotAllowed(na))
	require.False(t, IsNotAllowed(nf))

	require.True(t, IsValidation(ve))
	require.False(t, IsValidation(na))

	require.False(t, IsNotFound(nil))
	require.False(t, IsNotFound(errors.New("plain")))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := pkgerrors.Wrap(NewNotFound("feed", "Home"), "loading feed")
	require.True(t, IsNotFound(wrapped))
	require.Contains(t, wrapped.Error(), "feed not found")
}

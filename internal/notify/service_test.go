package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func newFrozenService(gen *fakeGenerator, at time.Time) *Service {
	svc := NewService(memory.New(), nil)
	if gen != nil {
		svc.gen = gen
	}
	svc.now = func() time.Time { return at }
	return svc
}

func TestCreateRequiresFutureTime(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFrozenService(nil, at)

	// Strictly future is fine.
	rec, err := svc.Create(ctx, "u1", "meeting", at.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, StatusPending, rec.Doc.Status)

	// Exactly now is rejected.
	_, err = svc.Create(ctx, "u1", "meeting", at)
	require.True(t, apperr.IsValidation(err))

	// Past is rejected.
	_, err = svc.Create(ctx, "u1", "meeting", at.Add(-time.Minute))
	require.True(t, apperr.IsValidation(err))
}

func TestCreateRejectsEmptySubject(t *testing.T) {
	ctx := context.Background()
	svc := newFrozenService(nil, time.Now())

	_, err := svc.Create(ctx, "u1", "", time.Now().Add(time.Hour))
	require.True(t, apperr.IsValidation(err))
}

func TestCreateComposesContentWithGenerator(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFrozenService(&fakeGenerator{text: "You have a lovely meeting ahead!"}, at)

	rec, err := svc.Create(ctx, "u1", "meeting", at.Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, "You have a lovely meeting ahead!", rec.Doc.Content)
	require.Equal(t, "meeting", rec.Doc.Subject)
}

func TestCreateFallsBackToSubjectOnGeneratorFailure(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFrozenService(&fakeGenerator{err: errors.New("provider down")}, at)

	rec, err := svc.Create(ctx, "u1", "meeting", at.Add(time.Hour))
	require.NoError(t, err, "generation failure must not block scheduling")
	require.Equal(t, "meeting", rec.Doc.Content)
}

func TestDeliverPendingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFrozenService(nil, at)

	_, err := svc.Create(ctx, "u1", "soon", at.Add(time.Minute))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "later", at.Add(time.Hour))
	require.NoError(t, err)

	// Nothing due yet.
	n, err := svc.DeliverPending(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	// Advance past the first schedule; only that one delivers.
	svc.now = func() time.Time { return at.Add(2 * time.Minute) }
	n, err = svc.DeliverPending(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// A second sweep with no further time elapsed delivers nothing.
	n, err = svc.DeliverPending(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, n)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "later", pending[0].Doc.Subject)

	delivered, err := svc.Delivered(ctx)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	require.Equal(t, "soon", delivered[0].Doc.Subject)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newFrozenService(nil, at)

	rec, err := svc.Create(ctx, "u1", "meeting", at.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.True(t, apperr.IsNotFound(svc.Delete(ctx, rec.ID)))
}

package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
)

// fakeClassifier flags texts listed in harmful and fails on texts listed in
// broken.
type fakeClassifier struct {
	harmful map[string]bool
	broken  map[string]bool
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (bool, error) {
	if f.broken[text] {
		return false, errors.New("classifier unavailable")
	}
	return f.harmful[text], nil
}

func TestFlagItemAccumulates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), &fakeClassifier{})

	require.NoError(t, svc.FlagItem(ctx, "p1", "alice", "bad words", "spam"))
	require.NoError(t, svc.FlagItem(ctx, "p1", "bob", "bad words", "abuse"))
	// Same reporter again: reporter deduplicated, reason still recorded.
	require.NoError(t, svc.FlagItem(ctx, "p1", "alice", "bad words", "spam again"))

	flagged, err := svc.Flagged(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1, "repeat flags must not create a second record")
	require.Equal(t, []string{"alice", "bob"}, flagged[0].Doc.Reporters)
	require.Equal(t, []string{"spam", "abuse", "spam again"}, flagged[0].Doc.Reasons)
	require.Equal(t, "bad words", flagged[0].Doc.Content)
}

func TestFlagItemRejectsEmptyReason(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), &fakeClassifier{})

	err := svc.FlagItem(ctx, "p1", "alice", "text", "")
	require.True(t, apperr.IsValidation(err))
}

func TestReviewFlaggedClassifiesEachItemOnce(t *testing.T) {
	ctx := context.Background()
	cls := &fakeClassifier{harmful: map[string]bool{"awful text": true}}
	svc := NewService(memory.New(), cls)

	require.NoError(t, svc.FlagItem(ctx, "p1", "alice", "awful text", "abuse"))
	require.NoError(t, svc.FlagItem(ctx, "p2", "alice", "fine text", "spam"))

	produced, err := svc.ReviewFlagged(ctx)
	require.NoError(t, err)
	require.Len(t, produced, 2)

	outcomes := map[string]string{}
	for _, rec := range produced {
		outcomes[rec.Doc.Item] = rec.Doc.Outcome
	}
	require.Equal(t, OutcomeRemove, outcomes["p1"])
	require.Equal(t, OutcomeApprove, outcomes["p2"])

	// Reviewed flags are cleared; nothing left to review.
	flagged, err := svc.Flagged(ctx)
	require.NoError(t, err)
	require.Empty(t, flagged)

	produced, err = svc.ReviewFlagged(ctx)
	require.NoError(t, err)
	require.Empty(t, produced)
}

func TestReviewFlaggedIsolatesClassifierFailures(t *testing.T) {
	ctx := context.Background()
	cls := &fakeClassifier{broken: map[string]bool{"stuck text": true}}
	svc := NewService(memory.New(), cls)

	require.NoError(t, svc.FlagItem(ctx, "p1", "alice", "stuck text", "abuse"))
	require.NoError(t, svc.FlagItem(ctx, "p2", "alice", "fine text", "spam"))

	produced, err := svc.ReviewFlagged(ctx)
	require.NoError(t, err, "one failing item must not abort the sweep")
	require.Len(t, produced, 1)
	require.Equal(t, "p2", produced[0].Doc.Item)

	// The failing item stays flagged for a later run.
	flagged, err := svc.Flagged(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	require.Equal(t, "p1", flagged[0].Doc.Item)
}

func TestReflaggingAfterReviewStartsFreshCycle(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New(), &fakeClassifier{})

	require.NoError(t, svc.FlagItem(ctx, "p1", "alice", "text", "spam"))
	_, err := svc.ReviewFlagged(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.FlagItem(ctx, "p1", "bob", "text", "still spam"))

	flagged, err := svc.Flagged(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	require.Equal(t, []string{"bob"}, flagged[0].Doc.Reporters)

	reviewed, err := svc.Reviewed(ctx)
	require.NoError(t, err)
	require.Len(t, reviewed, 1)
}

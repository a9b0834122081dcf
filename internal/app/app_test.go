package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore/memory"
)

// fakeText implements both text capabilities. Classify flags texts listed in
// harmful; Generate echoes a canned string or fails.
type fakeText struct {
	generated string
	genErr    error
	harmful   map[string]bool
}

func (f *fakeText) Generate(ctx context.Context, prompt string) (string, error) {
	return f.generated, f.genErr
}

func (f *fakeText) Classify(ctx context.Context, text string) (bool, error) {
	return f.harmful[text], nil
}

func newTestApp(text *fakeText) *App {
	if text == nil {
		text = &fakeText{}
	}
	return New(memory.New(), text, text)
}

// register + login, returning the session token.
func login(t *testing.T, a *App, username string) string {
	t.Helper()
	ctx := context.Background()
	_, err := a.Register(ctx, "", username, "pw")
	require.NoError(t, err)
	token, err := a.Login(ctx, username, "pw")
	require.NoError(t, err)
	return token
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(nil)

	token := login(t, a, "alice")

	user, err := a.SessionUser(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	// Registering while logged in is refused.
	_, err = a.Register(ctx, token, "bob", "pw")
	require.True(t, apperr.IsNotAllowed(err))

	require.NoError(t, a.Logout(ctx, token))
	_, err = a.SessionUser(ctx, token)
	require.True(t, apperr.IsNotAllowed(err))
}

func TestCreatePostInFeedAndFilteredListing(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(nil)
	alice := login(t, a, "alice")
	bob := login(t, a, "bob")

	_, err := a.CreateFeed(ctx, "Home", "the home feed")
	require.NoError(t, err)

	res, err := a.CreatePostInFeed(ctx, alice, "hi", "Home", nil)
	require.NoError(t, err)
	require.True(t, res.FeedAttached)
	require.Equal(t, "alice", res.Post.Author)

	_, err = a.CreatePostInFeed(ctx, bob, "yo", "Home", nil)
	require.NoError(t, err)

	// A post outside the feed.
	other, err := a.CreatePostInFeed(ctx, alice, "offside", "", nil)
	require.NoError(t, err)
	require.False(t, other.FeedAttached)

	feed, err := a.FeedByName(ctx, "Home")
	require.NoError(t, err)
	require.Len(t, feed.PostIDs, 2)

	// Feed filter: only the two attached posts.
	inFeed, err := a.ListPosts(ctx, "", "Home")
	require.NoError(t, err)
	require.Len(t, inFeed, 2)

	// Author and feed intersect.
	aliceInFeed, err := a.ListPosts(ctx, "alice", "Home")
	require.NoError(t, err)
	require.Len(t, aliceInFeed, 1)
	require.Equal(t, "hi", aliceInFeed[0].Content)

	all, err := a.ListPosts(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestCreatePostInUnknownFeedIsPartialSuccess(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(nil)
	alice := login(t, a, "alice")

	res, err := a.CreatePostInFeed(ctx, alice, "hello", "Nope", nil)
	require.NoError(t, err, "the composition reports partial success, not failure")
	require.False(t, res.FeedAttached)
	require.NotEmpty(t, res.FeedError)

	// The post exists despite the failed attach.
	all, err := a.ListPosts(ctx, "alice", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "hello", all[0].Content)
}

func TestDeletePostPurgesFeedsAndReactions(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(nil)
	alice := login(t, a, "alice")
	bob := login(t, a, "bob")

	_, err := a.CreateFeed(ctx, "A", "")
	require.NoError(t, err)
	_, err = a.CreateFeed(ctx, "B", "")
	require.NoError(t, err)

	res, err := a.CreatePostInFeed(ctx, alice, "everywhere", "A", nil)
	require.NoError(t, err)
	postID := res.Post.ID

	feedB, err := a.Feeds.IDByName(ctx, "B")
	require.NoError(t, err)
	require.NoError(t, a.Feeds.AddPost(ctx, feedB, postID))

	_, err = a.AddReaction(ctx, bob, postID, "like")
	require.NoError(t, err)

	// Only the author may delete.
	require.True(t, apperr.IsNotAllowed(a.DeletePost(ctx, bob, postID)))

	require.NoError(t, a.DeletePost(ctx, alice, postID))

	for _, name := range []string{"A", "B"} {
		feed, err := a.FeedByName(ctx, name)
		require.NoError(t, err)
		require.Empty(t, feed.PostIDs, "feed %s must not keep the deleted post", name)
	}

	counts, err := a.ReactionCounts(ctx, postID)
	require.NoError(t, err)
	require.Empty(t, counts)

	_, err = a.PostContent(ctx, postID)
	require.True(t, apperr.IsNotFound(err))
}

func TestFlagAndReviewRemovesHarmfulPosts(t *testing.T) {
	ctx := context.Background()
	text := &fakeText{harmful: map[string]bool{"awful": true}}
	a := newTestApp(text)
	alice := login(t, a, "alice")
	bob := login(t, a, "bob")

	_, err := a.CreateFeed(ctx, "Home", "")
	require.NoError(t, err)

	bad, err := a.CreatePostInFeed(ctx, alice, "awful", "Home", nil)
	require.NoError(t, err)
	fine, err := a.CreatePostInFeed(ctx, alice, "lovely", "Home", nil)
	require.NoError(t, err)

	require.NoError(t, a.FlagPost(ctx, bob, bad.Post.ID, "abuse"))
	require.NoError(t, a.FlagPost(ctx, alice, bad.Post.ID, "regret"))
	require.NoError(t, a.FlagPost(ctx, bob, fine.Post.ID, "spam"))

	// Both reports on the bad post collapse into one flag.
	flags, err := a.FlaggedItems(ctx)
	require.NoError(t, err)
	require.Len(t, flags, 2)

	reviews, err := a.ReviewFlaggedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	// The harmful post is gone, including its feed membership.
	_, err = a.PostContent(ctx, bad.Post.ID)
	require.True(t, apperr.IsNotFound(err))
	feed, err := a.FeedByName(ctx, "Home")
	require.NoError(t, err)
	require.Equal(t, []string{fine.Post.ID}, feed.PostIDs)

	// The approved post survives.
	content, err := a.PostContent(ctx, fine.Post.ID)
	require.NoError(t, err)
	require.Equal(t, "lovely", content)

	flags, err = a.FlaggedItems(ctx)
	require.NoError(t, err)
	require.Empty(t, flags)
}

func TestFriendFlowByUsername(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(nil)
	alice := login(t, a, "alice")
	bob := login(t, a, "bob")

	require.NoError(t, a.SendFriendRequest(ctx, alice, "bob"))

	reqs, err := a.FriendRequestsOf(ctx, bob)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.Equal(t, "alice", reqs[0].From)
	require.Equal(t, "pending", reqs[0].Status)

	require.NoError(t, a.AcceptFriendRequest(ctx, bob, "alice"))

	friends, err := a.FriendsOf(ctx, alice)
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, friends)

	require.NoError(t, a.RemoveFriend(ctx, bob, "alice"))
	friends, err = a.FriendsOf(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, friends)
}

func TestNotificationFlow(t *testing.T) {
	ctx := context.Background()
	text := &fakeText{generated: "A warm reminder!"}
	a := newTestApp(text)
	alice := login(t, a, "alice")

	view, err := a.CreateNotification(ctx, alice, "standup", time.Now().Add(50*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, "A warm reminder!", view.Content)

	_, err = a.CreateNotification(ctx, alice, "yesterday", time.Now().Add(-time.Hour))
	require.True(t, apperr.IsValidation(err))

	time.Sleep(60 * time.Millisecond)
	n, err := a.DeliverNotifications(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	delivered, err := a.DeliveredNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	require.Equal(t, "standup", delivered[0].Subject)
}

func TestNotificationGenerationFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	text := &fakeText{genErr: errors.New("provider down")}
	a := newTestApp(text)
	alice := login(t, a, "alice")

	view, err := a.CreateNotification(ctx, alice, "standup", time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, "standup", view.Content)
}

func TestDeleteUserEndsSessions(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(nil)
	alice := login(t, a, "alice")

	require.NoError(t, a.DeleteUser(ctx, alice))

	_, err := a.SessionUser(ctx, alice)
	require.True(t, apperr.IsNotAllowed(err))

	users, err := a.Users(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

// Package friends owns the friendship graph: pending requests and accepted
// links between opaque account ids. Callers resolve usernames to ids before
// calling in.
package friends

import (
	"context"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Request statuses. A request is asymmetric until accepted.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Request is a friend request from one account to another.
type Request struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status"`
}

// Link is an established friendship. Orientation carries no meaning.
type Link struct {
	User1 string `json:"user1"`
	User2 string `json:"user2"`
}

type Service struct {
	requests *docstore.Collection[Request]
	links    *docstore.Collection[Link]
}

func NewService(b docstore.Backend) *Service {
	return &Service{
		requests: docstore.NewCollection[Request](b, "friend_requests"),
		links:    docstore.NewCollection[Link](b, "friend_links"),
	}
}

// SendRequest opens a pending request from one account to another.
func (s *Service) SendRequest(ctx context.Context, from, to string) (*docstore.Record[Request], error) {
	if from == to {
		return nil, apperr.NewNotAllowed("cannot send a friend request to yourself")
	}
	if err := s.assertNotFriends(ctx, from, to); err != nil {
		return nil, err
	}
	if err := s.assertNoPendingRequest(ctx, from, to); err != nil {
		return nil, err
	}
	return s.requests.CreateOne(ctx, Request{From: from, To: to, Status: StatusPending})
}

// RemoveRequest withdraws a pending request.
func (s *Service) RemoveRequest(ctx context.Context, from, to string) error {
	return s.removePending(ctx, from, to)
}

// AcceptRequest resolves a pending request into a friendship link.
func (s *Service) AcceptRequest(ctx context.Context, from, to string) error {
	if err := s.removePending(ctx, from, to); err != nil {
		return err
	}
	// Keep the resolved request for history, then establish the link.
	if _, err := s.requests.CreateOne(ctx, Request{From: from, To: to, Status: StatusAccepted}); err != nil {
		return err
	}
	_, err := s.links.CreateOne(ctx, Link{User1: from, User2: to})
	return err
}

// RejectRequest resolves a pending request without creating a link.
func (s *Service) RejectRequest(ctx context.Context, from, to string) error {
	if err := s.removePending(ctx, from, to); err != nil {
		return err
	}
	_, err := s.requests.CreateOne(ctx, Request{From: from, To: to, Status: StatusRejected})
	return err
}

// RemoveFriend dissolves a friendship in either orientation.
func (s *Service) RemoveFriend(ctx context.Context, user, friend string) error {
	removed, err := s.links.DeleteOne(ctx, docstore.Filter{"user1": user, "user2": friend})
	if err != nil {
		return err
	}
	if !removed {
		removed, err = s.links.DeleteOne(ctx, docstore.Filter{"user1": friend, "user2": user})
		if err != nil {
			return err
		}
	}
	if !removed {
		return apperr.NewNotFound("friendship", "no friendship between the two accounts")
	}
	return nil
}

// Friends returns the ids of every friend of a user.
func (s *Service) Friends(ctx context.Context, user string) ([]string, error) {
	var out []string
	asUser1, err := s.links.ReadMany(ctx, docstore.Filter{"user1": user})
	if err != nil {
		return nil, err
	}
	for _, rec := range asUser1 {
		out = append(out, rec.Doc.User2)
	}
	asUser2, err := s.links.ReadMany(ctx, docstore.Filter{"user2": user})
	if err != nil {
		return nil, err
	}
	for _, rec := range asUser2 {
		out = append(out, rec.Doc.User1)
	}
	return out, nil
}

// Requests returns every request involving a user, in either direction and
// any status.
func (s *Service) Requests(ctx context.Context, user string) ([]*docstore.Record[Request], error) {
	sent, err := s.requests.ReadMany(ctx, docstore.Filter{"from": user})
	if err != nil {
		return nil, err
	}
	received, err := s.requests.ReadMany(ctx, docstore.Filter{"to": user})
	if err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}

func (s *Service) removePending(ctx context.Context, from, to string) error {
	removed, err := s.requests.DeleteOne(ctx, docstore.Filter{"from": from, "to": to, "status": StatusPending})
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NewNotFound("friend request", "no pending request between the two accounts")
	}
	return nil
}

func (s *Service) assertNotFriends(ctx context.Context, u1, u2 string) error {
	for _, f := range []docstore.Filter{
		{"user1": u1, "user2": u2},
		{"user1": u2, "user2": u1},
	} {
		rec, err := s.links.ReadOne(ctx, f)
		if err != nil {
			return err
		}
		if rec != nil {
			return apperr.NewNotAllowed("accounts are already friends")
		}
	}
	return nil
}

func (s *Service) assertNoPendingRequest(ctx context.Context, u1, u2 string) error {
	for _, f := range []docstore.Filter{
		{"from": u1, "to": u2, "status": StatusPending},
		{"from": u2, "to": u1, "status": StatusPending},
	} {
		rec, err := s.requests.ReadOne(ctx, f)
		if err != nil {
			return err
		}
		if rec != nil {
			return apperr.NewNotAllowed("a friend request between the two accounts is already pending")
		}
	}
	return nil
}

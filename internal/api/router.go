package api

import (
	"github.com/gorilla/mux"

	"github.com/meshwork-social/meshwork/internal/api/recovery"
	"github.com/meshwork-social/meshwork/internal/app"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// NewRouter wires every user-facing action to its route. The handlers are
// transport glue only; every composition lives in the app layer.
func NewRouter(a *app.App, backend docstore.Backend) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler(backend)
	userHandler := NewUserHandler(a)
	postHandler := NewPostHandler(a)
	feedHandler := NewFeedHandler(a)
	friendHandler := NewFriendHandler(a)
	reactionHandler := NewReactionHandler(a)
	notificationHandler := NewNotificationHandler(a)
	moderationHandler := NewModerationHandler(a)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStoreHealth).Methods("GET")

	// Session and account endpoints
	router.HandleFunc("/api/session", userHandler.SessionUser).Methods("GET")
	router.HandleFunc("/api/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/api/logout", userHandler.Logout).Methods("POST")
	router.HandleFunc("/api/users", userHandler.Register).Methods("POST")
	router.HandleFunc("/api/users", userHandler.ListUsers).Methods("GET")
	router.HandleFunc("/api/users", userHandler.DeleteUser).Methods("DELETE")
	router.HandleFunc("/api/users/username", userHandler.UpdateUsername).Methods("PATCH")
	router.HandleFunc("/api/users/password", userHandler.UpdatePassword).Methods("PATCH")
	router.HandleFunc("/api/users/{username}", userHandler.GetUser).Methods("GET")

	// Post endpoints
	router.HandleFunc("/api/posts", postHandler.ListPosts).Methods("GET")
	router.HandleFunc("/api/posts", postHandler.CreatePost).Methods("POST")
	router.HandleFunc("/api/posts/{postId}", postHandler.UpdatePost).Methods("PATCH")
	router.HandleFunc("/api/posts/{postId}", postHandler.DeletePost).Methods("DELETE")
	router.HandleFunc("/api/posts/{postId}/content", postHandler.PostContent).Methods("GET")

	// Feed endpoints
	router.HandleFunc("/api/feeds", feedHandler.CreateFeed).Methods("POST")
	router.HandleFunc("/api/feeds", feedHandler.ListFeeds).Methods("GET")
	router.HandleFunc("/api/feeds/{name}", feedHandler.GetFeed).Methods("GET")
	router.HandleFunc("/api/feeds/{name}/posts/remove", feedHandler.RemovePostFromFeed).Methods("PATCH")

	// Friend endpoints
	router.HandleFunc("/api/friends", friendHandler.ListFriends).Methods("GET")
	router.HandleFunc("/api/friends/{friend}", friendHandler.RemoveFriend).Methods("DELETE")
	router.HandleFunc("/api/friend/requests", friendHandler.ListRequests).Methods("GET")
	router.HandleFunc("/api/friend/requests/{to}", friendHandler.SendRequest).Methods("POST")
	router.HandleFunc("/api/friend/requests/{to}", friendHandler.RemoveRequest).Methods("DELETE")
	router.HandleFunc("/api/friend/accept/{from}", friendHandler.AcceptRequest).Methods("PUT")
	router.HandleFunc("/api/friend/reject/{from}", friendHandler.RejectRequest).Methods("PUT")

	// Reaction endpoints
	router.HandleFunc("/api/reactions", reactionHandler.AddReaction).Methods("POST")
	router.HandleFunc("/api/reactions", reactionHandler.RemoveReaction).Methods("DELETE")
	router.HandleFunc("/api/reactions/{itemId}", reactionHandler.ReactionCounts).Methods("GET")

	// Notification endpoints
	router.HandleFunc("/api/notifications", notificationHandler.CreateNotification).Methods("POST")
	router.HandleFunc("/api/notifications/deliver", notificationHandler.Deliver).Methods("POST")
	router.HandleFunc("/api/notifications/pending", notificationHandler.ListPending).Methods("GET")
	router.HandleFunc("/api/notifications/delivered", notificationHandler.ListDelivered).Methods("GET")
	router.HandleFunc("/api/notifications/{notificationId}", notificationHandler.DeleteNotification).Methods("DELETE")

	// Moderation endpoints
	router.HandleFunc("/api/reports", moderationHandler.FlagPost).Methods("POST")
	router.HandleFunc("/api/reports", moderationHandler.ListFlagged).Methods("GET")
	router.HandleFunc("/api/reports/review", moderationHandler.Review).Methods("POST")
	router.HandleFunc("/api/reports/reviewed", moderationHandler.ListReviewed).Methods("GET")

	return router
}

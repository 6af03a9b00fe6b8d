package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *AuthHandler
	Topics   *TopicsHandler
	Ideas    *IdeasHandler
	Comments *CommentsHandler
	Health   *HealthHandler
}

// NewRouter mounts all REST routes on a fresh mux. Ownership checks live in
// the services; the router only shapes URLs.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	mux.HandleFunc("GET /auth/google/url", h.Auth.LoginURL)
	mux.HandleFunc("POST /auth/google", h.Auth.Login)
	mux.HandleFunc("POST /auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /me", h.Auth.Me)

	mux.HandleFunc("GET /topics", h.Topics.List)
	mux.HandleFunc("POST /topics", h.Topics.Create)
	mux.HandleFunc("GET /topics/{id}", h.Topics.Get)
	mux.HandleFunc("PATCH /topics/{id}", h.Topics.Update)
	mux.HandleFunc("DELETE /topics/{id}", h.Topics.Delete)

	mux.HandleFunc("GET /topics/{id}/ideas", h.Ideas.List)
	mux.HandleFunc("POST /topics/{id}/ideas", h.Ideas.Create)
	mux.HandleFunc("PATCH /ideas/{id}", h.Ideas.Update)
	mux.HandleFunc("DELETE /ideas/{id}", h.Ideas.Delete)
	mux.HandleFunc("POST /ideas/{id}/like", h.Ideas.ToggleLike)
	mux.HandleFunc("GET /ideas/{id}/likes", h.Ideas.ListLikes)

	mux.HandleFunc("GET /ideas/{id}/comments", h.Comments.List)
	mux.HandleFunc("POST /ideas/{id}/comments", h.Comments.Create)
	mux.HandleFunc("PATCH /comments/{id}", h.Comments.Update)
	mux.HandleFunc("DELETE /comments/{id}", h.Comments.Delete)

	return mux
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced; owner is the
// identity resumes are scoped to. sseHandler, if non-nil, is mounted at
// GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token, owner string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token, owner))

	// Resumes CRUD + search.
	r.Get("/resumes", h.ListResumes)
	r.Post("/resumes", h.CreateResume)
	r.Get("/resumes/search", h.SearchResumes)
	r.Get("/resumes/{id}", h.GetResume)
	r.Put("/resumes/{id}", h.UpdateResume)
	r.Delete("/resumes/{id}", h.DeleteResume)

	// Editing sessions and conversational edits.
	r.Post("/sessions", h.CreateSession)
	r.Get("/sessions/{id}", h.GetSession)
	r.Delete("/sessions/{id}", h.DeleteSession)
	r.Post("/sessions/{id}/chat", h.Chat)
	r.Post("/sessions/{id}/retry", h.Retry)
	r.Get("/sessions/{id}/transcript", h.Transcript)

	// Direct compile and format relays.
	r.Post("/compile", h.Compile)
	r.Post("/format", h.Format)

	// Compiled PDF artifacts.
	r.Get("/artifacts", h.ListArtifacts)
	r.Get("/artifacts/{name}", h.GetArtifact)

	// Templates.
	r.Get("/templates", h.ListTemplates)
	r.Get("/templates/{style}", h.GetTemplate)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

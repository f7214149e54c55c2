package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/resumeforge/resumeforge/internal/apperr"
	"github.com/resumeforge/resumeforge/internal/compiler"
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/session"
	"github.com/resumeforge/resumeforge/internal/sse"
	"github.com/resumeforge/resumeforge/internal/storage"
	"github.com/resumeforge/resumeforge/internal/template"
)

// Handler holds API route handlers and their dependencies.
type Handler struct {
	resumes   resume.Store
	sessions  *session.Manager
	compiler  *compiler.Client
	artifacts storage.Provider
	templates *template.Registry
	broker    *sse.Broker
	logger    *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(
	resumes resume.Store,
	sessions *session.Manager,
	comp *compiler.Client,
	artifacts storage.Provider,
	templates *template.Registry,
	broker *sse.Broker,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		resumes:   resumes,
		sessions:  sessions,
		compiler:  comp,
		artifacts: artifacts,
		templates: templates,
		broker:    broker,
		logger:    logger,
	}
}

// ListResumes handles GET /api/resumes.
func (h *Handler) ListResumes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, total, err := h.resumes.List(r.Context(), ownerFrom(r), limit, offset)
	if err != nil {
		h.logger.Error("list resumes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ResumeListResponse{Resumes: items, Total: total})
}

// GetResume handles GET /api/resumes/{id}.
func (h *Handler) GetResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.resumes.Get(r.Context(), ownerFrom(r), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			h.logger.Error("get resume failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateResume handles POST /api/resumes. An empty content field seeds the
// resume from the requested template style (default style when omitted).
func (h *Handler) CreateResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}

	content := req.Content
	if content == "" {
		style := req.Style
		if style == "" {
			style = template.DefaultStyle
		}
		tpl, err := h.templates.Get(style)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("unknown template style: "+style))
			return
		}
		content = tpl
	}

	res, err := h.resumes.Create(r.Context(), ownerFrom(r), req.Title, content)
	if err != nil {
		h.logger.Error("create resume failed", slog.String("title", req.Title), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.broker.PublishResumeEvent("created", res.ID)
	writeJSON(w, http.StatusCreated, res)
}

// UpdateResume handles PUT /api/resumes/{id} with optimistic concurrency.
func (h *Handler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id := chi.URLParam(r, "id")

	var req UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	ifMatch := r.Header.Get("If-Match")
	// Strip surrounding quotes if present (standard ETag format).
	ifMatch = strings.Trim(ifMatch, `"`)

	res, err := h.resumes.Update(r.Context(), ownerFrom(r), id, req.Title, req.Content, ifMatch)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		case errors.Is(err, apperr.ErrConflict):
			writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
		default:
			h.logger.Error("update resume failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	h.broker.PublishResumeEvent("updated", res.ID)
	writeJSON(w, http.StatusOK, res)
}

// DeleteResume handles DELETE /api/resumes/{id}.
func (h *Handler) DeleteResume(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.resumes.Delete(r.Context(), ownerFrom(r), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		h.logger.Error("delete resume failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.broker.PublishResumeEvent("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// SearchResumes handles GET /api/resumes/search.
func (h *Handler) SearchResumes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.resumes.Search(r.Context(), ownerFrom(r), q, limit)
	if err != nil {
		h.logger.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// ListTemplates handles GET /api/templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TemplateListResponse{Styles: h.templates.Styles()})
}

// GetTemplate handles GET /api/templates/{style}.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	style := chi.URLParam(r, "style")
	tpl, err := h.templates.Get(style)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("unknown template style: "+style))
		return
	}
	writeJSON(w, http.StatusOK, TemplateResponse{Style: style, Content: tpl})
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resumeforge/resumeforge/internal/agent"
	"github.com/resumeforge/resumeforge/internal/apperr"
	"github.com/resumeforge/resumeforge/internal/session"
	"github.com/resumeforge/resumeforge/internal/template"
)

// CreateSession handles POST /api/sessions. The session document is seeded
// from a stored resume when resumeId is given, otherwise from a template
// style (default style when both are empty).
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	var seed string
	switch {
	case req.ResumeID != "":
		res, err := h.resumes.Get(r.Context(), ownerFrom(r), req.ResumeID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorBody("resume not found"))
				return
			}
			h.logger.Error("seed session failed", slog.String("resume_id", req.ResumeID), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
		seed = res.Content
	default:
		style := req.Style
		if style == "" {
			style = template.DefaultStyle
		}
		tpl, err := h.templates.Get(style)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("unknown template style: "+style))
			return
		}
		seed = tpl
	}

	s, err := h.sessions.Create(req.SessionID, seed)
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorBody("session already exists"))
			return
		}
		h.logger.Error("create session failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID: s.ID,
		Document:  s.Document().Content,
		Mode:      string(s.Mode()),
	})
}

// GetSession handles GET /api/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("session not found"))
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		SessionID: s.ID,
		Document:  s.Document().Content,
		Mode:      string(s.Mode()),
	})
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Chat handles POST /api/sessions/{id}/chat: one conversational edit turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("session not found"))
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := s.Submit(r.Context(), req.Message, agent.Mode(req.Mode))
	h.respondChat(w, r, s, res, err)
}

// Retry handles POST /api/sessions/{id}/retry: re-issues the most recent
// instruction against the current document.
func (h *Handler) Retry(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("session not found"))
		return
	}

	res, err := s.Retry(r.Context())
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusBadRequest, errorBody("nothing to retry"))
		return
	}
	h.respondChat(w, r, s, res, err)
}

// Transcript handles GET /api/sessions/{id}/transcript.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("session not found"))
		return
	}
	writeJSON(w, http.StatusOK, TranscriptResponse{Turns: s.Turns()})
}

// respondChat translates an orchestrator result into the chat response.
// Upstream failures already carry an error outcome and a human-readable
// explanation, so they answer 200 like any other turn.
func (h *Handler) respondChat(w http.ResponseWriter, r *http.Request, s *session.Session, res agent.Result, err error) {
	switch {
	case errors.Is(err, apperr.ErrBusy):
		writeJSON(w, http.StatusConflict, errorBody("a request is already in flight for this session"))
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client gone; nothing useful to write.
		return
	}

	resp := ChatResponse{
		Outcome:     string(res.Outcome),
		Explanation: res.Explanation,
		ToolsUsed:   res.ToolsUsed,
	}
	if res.Applied() {
		doc := res.Document
		resp.Document = &doc
		resp.Compilation = h.compileApplied(r.Context(), s.ID, doc)
		h.broker.PublishResumeEvent("applied", s.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

// compileApplied runs the compile relay for a freshly applied document and
// persists the PDF artifact. Failures are reported as data on the response,
// never as a request error.
func (h *Handler) compileApplied(ctx context.Context, sessionID, document string) *CompilationStatus {
	cres, err := h.compiler.Compile(ctx, document)
	if err != nil {
		h.logger.Warn("compile relay unreachable",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()))
		return &CompilationStatus{Success: false, Log: err.Error()}
	}

	status := &CompilationStatus{
		Success: cres.Success,
		Log:     cres.Log,
		Errors:  cres.Diagnostics,
	}
	if cres.Success {
		name := sessionID + ".pdf"
		if err := h.artifacts.Write(name, cres.PDF); err != nil {
			h.logger.Warn("artifact write failed",
				slog.String("name", name),
				slog.String("error", err.Error()))
		} else {
			status.Artifact = name
		}
	}
	h.broker.PublishCompileEvent(sessionID, cres.Success)
	return status
}

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/resumeforge/resumeforge/internal/latex"
)

// Compile handles POST /api/compile: a direct relay to the LaTeX compilation
// service. On success the PDF is persisted as an artifact and returned
// inline; on compilation failure the diagnostics come back as JSON.
func (h *Handler) Compile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	res, err := h.compiler.Compile(r.Context(), req.Content)
	if err != nil {
		h.logger.Error("compile relay failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("compilation service unavailable"))
		return
	}

	if !res.Success {
		writeJSON(w, http.StatusUnprocessableEntity, CompileFailureResponse{
			Success: false,
			Log:     res.Log,
			Errors:  res.Diagnostics,
		})
		return
	}

	name := req.Filename
	if name == "" {
		name = "resume.pdf"
	}
	if !strings.HasSuffix(name, ".pdf") {
		name += ".pdf"
	}
	if err := h.artifacts.Write(name, res.PDF); err != nil {
		h.logger.Warn("artifact write failed", slog.String("name", name), slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

// Format handles POST /api/format: whitespace normalization, optionally
// preceded by structural repair.
func (h *Handler) Format(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	content := req.Content
	var fixes []string
	if req.Repair {
		content, fixes = latex.AutoRepair(content)
	}
	writeJSON(w, http.StatusOK, FormatResponse{
		Content: latex.Format(content),
		Fixes:   fixes,
	})
}

// ListArtifacts handles GET /api/artifacts.
func (h *Handler) ListArtifacts(w http.ResponseWriter, _ *http.Request) {
	infos, err := h.artifacts.List()
	if err != nil {
		h.logger.Error("list artifacts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"artifacts": infos})
}

// GetArtifact handles GET /api/artifacts/{name}: serves a compiled PDF.
func (h *Handler) GetArtifact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := h.artifacts.Read(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

package api

import (
	"github.com/resumeforge/resumeforge/internal/resume"
	"github.com/resumeforge/resumeforge/internal/session"
)

// CreateResumeRequest is the request body for creating a resume.
type CreateResumeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Style   string `json:"style"`
}

// UpdateResumeRequest is the request body for updating a resume.
type UpdateResumeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ResumeDetail is the full resume response type (aliased from the domain layer).
type ResumeDetail = resume.Resume

// ResumeListResponse wraps paginated resume listings.
type ResumeListResponse struct {
	Resumes []resume.ListItem `json:"resumes"`
	Total   int               `json:"total"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []resume.SearchResult `json:"results"`
}

// CreateSessionRequest is the request body for opening an editing session.
// Exactly one of ResumeID or Style seeds the document; both empty seeds from
// the default template style.
type CreateSessionRequest struct {
	SessionID string `json:"sessionId"`
	ResumeID  string `json:"resumeId"`
	Style     string `json:"style"`
}

// SessionResponse describes an editing session and its current document.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Document  string `json:"document"`
	Mode      string `json:"mode"`
}

// ChatRequest is the request body for a conversational edit turn.
type ChatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

// ChatResponse is the outcome of one conversational edit turn. Document is
// null unless the outcome is "applied", in which case it carries the full
// updated document.
type ChatResponse struct {
	Outcome     string             `json:"outcome"`
	Explanation string             `json:"explanation"`
	Document    *string            `json:"document"`
	ToolsUsed   []string           `json:"toolsUsed,omitempty"`
	Compilation *CompilationStatus `json:"compilation,omitempty"`
}

// CompilationStatus reports the compile relay result that follows an applied
// edit.
type CompilationStatus struct {
	Success  bool     `json:"success"`
	Artifact string   `json:"artifact,omitempty"`
	Log      string   `json:"log,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// TranscriptResponse wraps the full conversation transcript.
type TranscriptResponse struct {
	Turns []session.Turn `json:"turns"`
}

// CompileRequest is the request body for a direct compile relay.
type CompileRequest struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
}

// CompileFailureResponse is returned when compilation fails.
type CompileFailureResponse struct {
	Success bool     `json:"success"`
	Log     string   `json:"log"`
	Errors  []string `json:"errors"`
}

// FormatRequest is the request body for document formatting.
type FormatRequest struct {
	Content string `json:"content"`
	Repair  bool   `json:"repair"`
}

// FormatResponse carries the formatted document and any structural fixes
// applied during repair.
type FormatResponse struct {
	Content string   `json:"content"`
	Fixes   []string `json:"fixes,omitempty"`
}

// TemplateResponse is a single named template.
type TemplateResponse struct {
	Style   string `json:"style"`
	Content string `json:"content"`
}

// TemplateListResponse wraps the available template styles.
type TemplateListResponse struct {
	Styles []string `json:"styles"`
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

const chatSeedDoc = `\documentclass{article}
\begin{document}
\section*{Experience}
Engineer at Acme.
\end{document}`

func editPayload(explanation, document string) string {
	doc := strings.ReplaceAll(document, `\`, `\\`)
	doc = strings.ReplaceAll(doc, "\n", `\n`)
	doc = strings.ReplaceAll(doc, "\t", `\t`)
	return `{"explanation": "` + explanation + `", "modifiedDocument": "` + doc + `", "hasChanges": true}`
}

func createSession(t *testing.T, env *testEnv, body map[string]string) SessionResponse {
	t.Helper()
	w := env.do(t, http.MethodPost, "/sessions", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SessionResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func TestCreateSessionFromTemplate(t *testing.T) {
	env := newTestEnv(t, "")

	resp := createSession(t, env, nil)
	if resp.SessionID == "" {
		t.Error("missing session id")
	}
	if !strings.Contains(resp.Document, `\documentclass`) {
		t.Error("default template seed missing")
	}
	if resp.Mode != "ask" {
		t.Errorf("mode = %q, want ask default", resp.Mode)
	}
}

func TestCreateSessionFromResume(t *testing.T) {
	env := newTestEnv(t, "")

	w := env.do(t, http.MethodPost, "/resumes", map[string]string{"title": "seed", "content": chatSeedDoc}, nil)
	var created ResumeDetail
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	resp := createSession(t, env, map[string]string{"resumeId": created.ID})
	if resp.Document != chatSeedDoc {
		t.Error("session not seeded from resume content")
	}

	// Unknown resume is a 404.
	w = env.do(t, http.MethodPost, "/sessions", map[string]string{"resumeId": "nope"}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown resume = %d, want 404", w.Code)
	}
}

func TestChatAppliedCompilesAndStoresArtifact(t *testing.T) {
	env := newTestEnv(t, "")
	s := createSession(t, env, nil)

	updated := strings.Replace(s.Document, `\begin{document}`, "\\begin{document}\n% updated", 1)
	env.llm.Responses = []string{editPayload("tweaked", updated)}

	w := env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/chat",
		map[string]string{"message": "add a comment", "mode": "edit"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("chat = %d, body = %s", w.Code, w.Body.String())
	}

	var resp ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Outcome != "applied" {
		t.Fatalf("outcome = %s (%s)", resp.Outcome, resp.Explanation)
	}
	if resp.Document == nil || !strings.Contains(*resp.Document, "% updated") {
		t.Error("applied response missing document")
	}
	if resp.Compilation == nil || !resp.Compilation.Success {
		t.Fatalf("compilation = %+v", resp.Compilation)
	}
	if resp.Compilation.Artifact == "" {
		t.Fatal("missing artifact name")
	}

	// Artifact is downloadable.
	w = env.do(t, http.MethodGet, "/artifacts/"+resp.Compilation.Artifact, nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("artifact fetch = %d", w.Code)
	}

	// Session document advanced.
	var got SessionResponse
	w = env.do(t, http.MethodGet, "/sessions/"+s.SessionID, nil, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if !strings.Contains(got.Document, "% updated") {
		t.Error("session document not replaced")
	}
}

func TestChatNoOpHasNullDocument(t *testing.T) {
	env := newTestEnv(t, "")
	s := createSession(t, env, nil)
	env.llm.Responses = []string{`{"explanation": "already present", "hasChanges": false}`}

	w := env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/chat",
		map[string]string{"message": "add an experience section", "mode": "edit"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("chat = %d", w.Code)
	}

	// The document field must be literal null, not an empty string.
	var raw map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if string(raw["document"]) != "null" {
		t.Errorf("document = %s, want null", raw["document"])
	}
	var resp ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Outcome != "no_op" || resp.Compilation != nil {
		t.Errorf("resp = %+v", resp)
	}
}

func TestChatAskMode(t *testing.T) {
	env := newTestEnv(t, "")
	s := createSession(t, env, nil)
	env.llm.Responses = []string{"Use \\section*{...} for unnumbered headings."}

	w := env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/chat",
		map[string]string{"message": "how do I make headings?", "mode": "ask"}, nil)
	var resp ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Outcome != "no_op" {
		t.Errorf("ask outcome = %s", resp.Outcome)
	}
	if resp.Document != nil {
		t.Error("ask must never return a document")
	}
	if resp.Explanation == "" {
		t.Error("ask reply lost")
	}
}

func TestChatUnknownSession(t *testing.T) {
	env := newTestEnv(t, "")
	w := env.do(t, http.MethodPost, "/sessions/nope/chat", map[string]string{"message": "hi"}, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown session = %d, want 404", w.Code)
	}
}

func TestRetryFlow(t *testing.T) {
	env := newTestEnv(t, "")
	s := createSession(t, env, nil)

	// Nothing submitted yet.
	w := env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/retry", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("retry with no history = %d, want 400", w.Code)
	}

	first := strings.Replace(s.Document, `\begin{document}`, "\\begin{document}\n% rev one", 1)
	second := strings.Replace(s.Document, `\begin{document}`, "\\begin{document}\n% rev two", 1)
	env.llm.Responses = []string{editPayload("one", first), editPayload("two", second)}

	env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/chat",
		map[string]string{"message": "add a revision marker", "mode": "edit"}, nil)

	w = env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/retry", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("retry = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Outcome != "applied" || resp.Document == nil || !strings.Contains(*resp.Document, "% rev two") {
		t.Errorf("retry resp = %+v", resp)
	}
}

func TestTranscriptEndpoint(t *testing.T) {
	env := newTestEnv(t, "")
	s := createSession(t, env, nil)
	env.llm.Responses = []string{`{"explanation": "nothing to do", "hasChanges": false}`}

	env.do(t, http.MethodPost, "/sessions/"+s.SessionID+"/chat",
		map[string]string{"message": "add nothing", "mode": "edit"}, nil)

	w := env.do(t, http.MethodGet, "/sessions/"+s.SessionID+"/transcript", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("transcript = %d", w.Code)
	}
	var resp TranscriptResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(resp.Turns))
	}
	if resp.Turns[0].Role != "user" || resp.Turns[1].Role != "assistant" {
		t.Errorf("roles = %s/%s", resp.Turns[0].Role, resp.Turns[1].Role)
	}
	if resp.Turns[0].ID == "" || resp.Turns[0].CreatedAt.IsZero() {
		t.Error("turn metadata missing")
	}
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t, "")
	s := createSession(t, env, nil)

	w := env.do(t, http.MethodDelete, "/sessions/"+s.SessionID, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/sessions/"+s.SessionID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

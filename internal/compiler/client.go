// Package compiler relays LaTeX source to the external compilation service
// and normalises its responses into PDF bytes or diagnostic lines.
package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Result is the outcome of one compilation. A failed compilation is data,
// not an error: Diagnostics carries the service's error lines for the UI.
type Result struct {
	Success     bool     `json:"success"`
	PDF         []byte   `json:"-"`
	Log         string   `json:"log,omitempty"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Client talks to the compilation service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// failurePayload is the structured error body the service may return.
type failurePayload struct {
	Success bool     `json:"success"`
	Log     string   `json:"log"`
	Errors  []string `json:"errors"`
}

// Compile posts source to the service. The returned error covers transport
// failures only; compilation failures come back as a Result with
// Success=false and diagnostics.
func (c *Client) Compile(ctx context.Context, source string) (*Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "resume.tex")
	if err != nil {
		return nil, fmt.Errorf("compiler: build request: %w", err)
	}
	if _, err := io.WriteString(part, source); err != nil {
		return nil, fmt.Errorf("compiler: build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("compiler: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/compile", &body)
	if err != nil {
		return nil, fmt.Errorf("compiler: new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("compiler: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("compiler: read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode == http.StatusOK && strings.HasPrefix(contentType, "application/pdf") {
		return &Result{Success: true, PDF: data}, nil
	}

	// Structured failure body, or a raw log to sift for error lines.
	var fp failurePayload
	if err := json.Unmarshal(data, &fp); err == nil && (len(fp.Errors) > 0 || fp.Log != "") {
		return &Result{Success: false, Log: fp.Log, Diagnostics: fp.Errors}, nil
	}
	log := string(data)
	return &Result{Success: false, Log: log, Diagnostics: errorLines(log)}, nil
}

// errorLines extracts pdflatex-style error lines (starting with "!").
func errorLines(log string) []string {
	var out []string
	for _, line := range strings.Split(log, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "!") {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}

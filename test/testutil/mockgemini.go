package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
)

// MockGemini is an httptest.Server that simulates the Gemini models endpoint
// for both generateContent and streamGenerateContent calls.
type MockGemini struct {
	Server *httptest.Server

	// Text is returned as the candidate's text part. For streaming calls it
	// is split into words and sent as one chunk per word.
	Text string
	// ImageMime / ImageData, when set, add an inlineData part to buffered
	// responses.
	ImageMime string
	ImageData string
	// StatusCode, when non-zero, makes every call fail with that status.
	StatusCode int
	// NoCandidates makes buffered responses return an empty candidate list.
	NoCandidates bool

	// LastRequest captures the most recent request body, decoded.
	LastRequest map[string]any
	// LastPath captures the path of the most recent request.
	LastPath string
	// LastQuery captures the query string of the most recent request.
	LastQuery string
}

// NewMockGemini creates and starts a mock Gemini server returning the given text.
func NewMockGemini(text string) *MockGemini {
	m := &MockGemini{Text: text}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// Close shuts down the mock server.
func (m *MockGemini) Close() {
	m.Server.Close()
}

// URL returns the base URL of the mock server.
func (m *MockGemini) URL() string {
	return m.Server.URL
}

func (m *MockGemini) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	m.LastRequest = body
	m.LastPath = r.URL.Path
	m.LastQuery = r.URL.RawQuery

	if m.StatusCode != 0 {
		http.Error(w, `{"error":{"message":"forced failure"}}`, m.StatusCode)
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, ":streamGenerateContent"):
		m.writeStreaming(w)
	case strings.HasSuffix(r.URL.Path, ":generateContent"):
		m.writeBuffered(w)
	default:
		http.NotFound(w, r)
	}
}

func chunkFor(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"index": 0,
			},
		},
	}
}

func (m *MockGemini) writeBuffered(w http.ResponseWriter) {
	resp := map[string]any{"candidates": []any{}}
	if !m.NoCandidates {
		parts := []any{}
		if m.Text != "" {
			parts = append(parts, map[string]any{"text": m.Text})
		}
		if m.ImageData != "" {
			parts = append(parts, map[string]any{
				"inlineData": map[string]any{
					"mimeType": m.ImageMime,
					"data":     m.ImageData,
				},
			})
		}
		resp = map[string]any{
			"candidates": []any{
				map[string]any{
					"content":      map[string]any{"role": "model", "parts": parts},
					"finishReason": "STOP",
					"index":        0,
				},
			},
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (m *MockGemini) writeStreaming(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, hasFlusher := w.(http.Flusher)

	// One chunk per word for a realistic stream.
	words := strings.Fields(m.Text)
	for i, word := range words {
		if i > 0 {
			word = " " + word
		}
		data, _ := json.Marshal(chunkFor(word))
		fmt.Fprintf(w, "data: %s\n\n", data)
		if hasFlusher {
			flusher.Flush()
		}
	}
}

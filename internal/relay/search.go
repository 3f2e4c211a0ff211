package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	apierrors "github.com/lepenai/lepen-backend/internal/errors"
	"github.com/lepenai/lepen-backend/internal/gemini"
)

// SearchRequest is the body of both POST /api/web-search and
// POST /api/map-search.
type SearchRequest struct {
	Query string `json:"query"`
}

// webSearchResult carries the answer under two keys; older frontend builds
// read "results", current ones read "content".
type webSearchResult struct {
	Content string `json:"content"`
	Results string `json:"results"`
}

// BuildWebSearchRequest wraps a query into a search-grounded Gemini envelope.
func BuildWebSearchRequest(query string) *gemini.GenerateContentRequest {
	return &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{{Text: "Search and provide detailed information about: " + query}},
		}},
		Tools: []gemini.Tool{{GoogleSearch: &gemini.GoogleSearch{}}},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 4096,
		},
	}
}

// WebSearch serves POST /api/web-search.
func (h *Handler) WebSearch(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfigured(w) {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	resp, err := h.client.GenerateContent(r.Context(), h.chatModel, BuildWebSearchRequest(req.Query))
	if err != nil {
		slog.Error("web search failed", "error", err)
		apierrors.WriteJSONError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	content, ok := resp.FirstCandidateText()
	if !ok {
		apierrors.WriteJSONError(w, http.StatusInternalServerError, "No search results")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(webSearchResult{Content: content, Results: content})
}

// mapSearchResult is the map-search response. MapData is present only when
// the model's answer parsed as JSON; otherwise Content carries the raw text.
type mapSearchResult struct {
	MapData map[string]any `json:"mapData,omitempty"`
	Content string         `json:"content"`
}

// BuildMapSearchRequest wraps a query into a Gemini envelope whose system
// instruction demands strict JSON location output.
func BuildMapSearchRequest(query string) *gemini.GenerateContentRequest {
	return &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{
			Parts: []gemini.Part{{Text: "Find location information for: " + query}},
		}},
		SystemInstruction: &gemini.Content{
			Parts: []gemini.Part{{Text: mapSystemPrompt}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.2,
			MaxOutputTokens: 2048,
		},
	}
}

// MapSearch serves POST /api/map-search. Models often wrap the JSON answer
// in a fenced code block; the fence is stripped before parsing, and a parse
// failure degrades to returning the text instead of failing the request.
func (h *Handler) MapSearch(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfigured(w) {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	resp, err := h.client.GenerateContent(r.Context(), h.chatModel, BuildMapSearchRequest(req.Query))
	if err != nil {
		slog.Error("map search failed", "error", err)
		apierrors.WriteJSONError(w, http.StatusInternalServerError, "Location search failed")
		return
	}

	text, ok := resp.FirstCandidateText()
	if !ok {
		apierrors.WriteJSONError(w, http.StatusInternalServerError, "No location results")
		return
	}

	extracted := ExtractFenced(text)

	var mapData map[string]any
	result := mapSearchResult{Content: extracted}
	if err := json.Unmarshal([]byte(strings.TrimSpace(extracted)), &mapData); err == nil && mapData != nil {
		message, _ := mapData["message"].(string)
		result = mapSearchResult{MapData: mapData, Content: message}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lepenai/lepen-backend/internal/dataurl"
	apierrors "github.com/lepenai/lepen-backend/internal/errors"
	"github.com/lepenai/lepen-backend/internal/gemini"
	"github.com/lepenai/lepen-backend/internal/httputil"
)

// ChatMessage is one conversation turn from the frontend.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	ImageData string `json:"imageData,omitempty"`
}

// ChatRequest is the POST /api/chat body. The top-level ImageData, when set,
// is attached to the final message only.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	Mode      string        `json:"mode,omitempty"`
	ImageData string        `json:"imageData,omitempty"`
}

// deltaEvent is one outbound streaming chunk:
// {"choices":[{"delta":{"content":"..."}}]}
type deltaEvent struct {
	Choices []deltaChoice `json:"choices"`
}

type deltaChoice struct {
	Delta deltaContent `json:"delta"`
}

type deltaContent struct {
	Content string `json:"content"`
}

type errorEvent struct {
	Error string `json:"error"`
}

// BuildChatRequest translates a chat request into a Gemini envelope:
// user turns keep the user role, everything else becomes model; a data-URI
// image on a turn (or the request-level image, final turn only) is decoded
// into an inline-data part ahead of the text part.
func BuildChatRequest(req *ChatRequest) *gemini.GenerateContentRequest {
	contents := make([]gemini.Content, 0, len(req.Messages))
	for i, msg := range req.Messages {
		role := "model"
		if msg.Role == "user" {
			role = "user"
		}

		image := msg.ImageData
		if image == "" && i == len(req.Messages)-1 {
			image = req.ImageData
		}

		var parts []gemini.Part
		if mime, payload, ok := dataurl.Parse(image); ok {
			parts = append(parts, gemini.Part{
				InlineData: &gemini.InlineData{MimeType: mime, Data: payload},
			})
		}
		parts = append(parts, gemini.Part{Text: msg.Content})

		contents = append(contents, gemini.Content{Role: role, Parts: parts})
	}

	return &gemini.GenerateContentRequest{
		Contents: contents,
		SystemInstruction: &gemini.Content{
			Parts: []gemini.Part{{Text: systemPrompt(req.Mode)}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 8192,
		},
	}
}

// Chat serves POST /api/chat as a server-sent event stream. The stream
// always ends with exactly one [DONE] sentinel, whether the upstream call
// succeeded, failed to start, or broke off mid-stream.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfigured(w) {
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	upstream := BuildChatRequest(&req)

	// Commit the event-stream response before calling upstream; from here
	// on failures are reported inline as error events.
	fw := httputil.NewFlushWriter(w)
	httputil.SetSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	fw.Flush()

	stream, err := h.client.StreamGenerateContent(r.Context(), h.chatModel, upstream)
	if err != nil {
		slog.Error("chat upstream call failed", "error", err)
		_ = httputil.WriteEvent(fw, errorEvent{Error: "AI API error"})
		finishStream(fw)
		return
	}

	for chunk := range stream {
		if chunk.Err != nil {
			slog.Error("chat stream interrupted", "error", chunk.Err)
			_ = httputil.WriteEvent(fw, errorEvent{Error: "stream interrupted"})
			break
		}
		text, ok := chunk.FirstCandidateText()
		if !ok {
			continue
		}
		event := deltaEvent{Choices: []deltaChoice{{Delta: deltaContent{Content: text}}}}
		if err := httputil.WriteEvent(fw, event); err != nil {
			// Client went away; the connection teardown stops the
			// upstream iteration via the request context.
			break
		}
		fw.Flush()
	}

	finishStream(fw)
}

func finishStream(fw *httputil.FlushWriter) {
	_ = httputil.WriteRawEvent(fw, httputil.DoneEvent)
	fw.Flush()
}

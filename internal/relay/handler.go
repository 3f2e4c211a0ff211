// Package relay implements the AI-backed endpoints: it reshapes inbound
// request bodies into Gemini generateContent envelopes, forwards them, and
// translates the responses back into the shapes the frontend expects.
package relay

import (
	"net/http"

	apierrors "github.com/lepenai/lepen-backend/internal/errors"
	"github.com/lepenai/lepen-backend/internal/gemini"
)

// Handler serves the /api/chat, /api/generate-image, /api/web-search, and
// /api/map-search endpoints.
type Handler struct {
	client     *gemini.Client
	chatModel  string
	imageModel string
}

// NewHandler constructs a Handler. chatModel is used for chat and both
// search endpoints; imageModel for image generation and editing.
func NewHandler(client *gemini.Client, chatModel, imageModel string) *Handler {
	return &Handler{client: client, chatModel: chatModel, imageModel: imageModel}
}

// requireConfigured answers with a configuration error and returns false
// when no upstream API key is present. Checked before any network call.
func (h *Handler) requireConfigured(w http.ResponseWriter) bool {
	if h.client.Configured() {
		return true
	}
	apierrors.WriteConfigError(w)
	return false
}

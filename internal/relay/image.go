package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lepenai/lepen-backend/internal/dataurl"
	apierrors "github.com/lepenai/lepen-backend/internal/errors"
	"github.com/lepenai/lepen-backend/internal/gemini"
)

// ImageRequest is the POST /api/generate-image body.
type ImageRequest struct {
	Prompt    string `json:"prompt"`
	ImageData string `json:"imageData,omitempty"`
}

// ImageResult is the response: a data-URI image (null when the model
// returned no inline image) and an accompanying caption.
type ImageResult struct {
	ImageURL *string `json:"imageUrl"`
	Text     string  `json:"text"`
}

// BuildImageRequest translates an image request into a Gemini envelope.
// A parseable imageData turns the call into an edit: the source image part
// followed by an edit instruction. Otherwise it is a plain generation.
// isEdit reports which variant was built.
func BuildImageRequest(req *ImageRequest) (_ *gemini.GenerateContentRequest, isEdit bool) {
	var parts []gemini.Part
	if mime, payload, ok := dataurl.Parse(req.ImageData); ok {
		isEdit = true
		parts = append(parts,
			gemini.Part{InlineData: &gemini.InlineData{MimeType: mime, Data: payload}},
			gemini.Part{Text: "Edit this image: " + req.Prompt},
		)
	} else {
		parts = append(parts, gemini.Part{Text: "Generate an image: " + req.Prompt})
	}

	return &gemini.GenerateContentRequest{
		Contents: []gemini.Content{{Parts: parts}},
		GenerationConfig: &gemini.GenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}, isEdit
}

// GenerateImage serves POST /api/generate-image.
func (h *Handler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	if !h.requireConfigured(w) {
		return
	}

	var req ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.WriteJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Prompt == "" {
		apierrors.WriteJSONError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	upstream, isEdit := BuildImageRequest(&req)
	resp, err := h.client.GenerateContent(r.Context(), h.imageModel, upstream)
	if err != nil {
		slog.Error("image generation failed", "error", err)
		apierrors.WriteJSONError(w, http.StatusInternalServerError, "Image generation failed")
		return
	}

	parts, ok := resp.FirstCandidateParts()
	if !ok {
		apierrors.WriteJSONError(w, http.StatusInternalServerError, "No image generated")
		return
	}

	result := ImageResult{Text: "Here's your generated image!"}
	if isEdit {
		result.Text = "Here's your edited image!"
	}
	for _, part := range parts {
		switch {
		case part.InlineData != nil:
			url := dataurl.Format(part.InlineData.MimeType, part.InlineData.Data)
			result.ImageURL = &url
		case part.Text != "":
			result.Text = part.Text
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

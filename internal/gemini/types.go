package gemini

// GenerateContentRequest is the generateContent / streamGenerateContent
// request body. Built fresh per call and never mutated after sending.
type GenerateContentRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
}

// Content is a single turn in a conversation. Role is "user" or "model";
// it may be omitted for single-shot requests like image generation.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part carries either text or inline binary data, never both.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is a MIME-typed, base64-encoded blob embedded in a request or
// response part.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	// ResponseModalities requests non-text output, e.g. ["TEXT", "IMAGE"]
	// for the image generation model.
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type Tool struct {
	GoogleSearch *GoogleSearch `json:"googleSearch,omitempty"`
}

// GoogleSearch enables Gemini's search grounding. It has no options.
type GoogleSearch struct{}

// GenerateContentResponse is the buffered response body. Streaming chunks
// carry the same shape, one partial candidate at a time.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
	Index        int     `json:"index"`
}

// FirstCandidateParts returns the parts of the first candidate.
// ok is false when the response carries no candidate at all.
func (r *GenerateContentResponse) FirstCandidateParts() ([]Part, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return nil, false
	}
	return r.Candidates[0].Content.Parts, true
}

// FirstCandidateText returns the text of the first part of the first
// candidate. ok is false when no candidate, no part, or no text is present.
func (r *GenerateContentResponse) FirstCandidateText() (string, bool) {
	parts, ok := r.FirstCandidateParts()
	if !ok || len(parts) == 0 || parts[0].Text == "" {
		return "", false
	}
	return parts[0].Text, true
}

// StreamChunk is one decoded SSE event from streamGenerateContent.
// Err is set when the stream reader itself fails; such a chunk is always
// the last one sent on the channel.
type StreamChunk struct {
	GenerateContentResponse
	Err error `json:"-"`
}

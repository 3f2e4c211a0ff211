package relay

import (
	"strings"
	"testing"
)

func TestBuildChatRequest_RoleMapping(t *testing.T) {
	req := &ChatRequest{Messages: []ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "system", Content: "be nice"},
	}}
	upstream := BuildChatRequest(req)

	roles := make([]string, 0, len(upstream.Contents))
	for _, c := range upstream.Contents {
		roles = append(roles, c.Role)
	}
	want := []string{"user", "model", "model"}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("turn %d: role %q, want %q", i, roles[i], want[i])
		}
	}
}

func TestBuildChatRequest_TurnImagePrecedesText(t *testing.T) {
	req := &ChatRequest{Messages: []ChatMessage{
		{Role: "user", Content: "what is this?", ImageData: "data:image/png;base64,QUJD"},
	}}
	upstream := BuildChatRequest(req)

	parts := upstream.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/png" || parts[0].InlineData.Data != "QUJD" {
		t.Errorf("expected inline image first, got %+v", parts[0])
	}
	if parts[1].Text != "what is this?" {
		t.Errorf("expected text part second, got %+v", parts[1])
	}
}

func TestBuildChatRequest_MalformedImageSkipped(t *testing.T) {
	req := &ChatRequest{Messages: []ChatMessage{
		{Role: "user", Content: "hi", ImageData: "not-a-data-uri"},
	}}
	upstream := BuildChatRequest(req)

	parts := upstream.Contents[0].Parts
	if len(parts) != 1 || parts[0].Text != "hi" {
		t.Errorf("malformed image should be skipped, got %+v", parts)
	}
}

func TestBuildChatRequest_TopLevelImageOnFinalTurnOnly(t *testing.T) {
	req := &ChatRequest{
		Messages: []ChatMessage{
			{Role: "user", Content: "first"},
			{Role: "user", Content: "second"},
		},
		ImageData: "data:image/png;base64,QUJD",
	}
	upstream := BuildChatRequest(req)

	if got := len(upstream.Contents[0].Parts); got != 1 {
		t.Errorf("first turn should have no image, got %d parts", got)
	}
	last := upstream.Contents[1].Parts
	if len(last) != 2 || last[0].InlineData == nil {
		t.Errorf("final turn should carry the top-level image, got %+v", last)
	}
}

func TestBuildChatRequest_GenerationConfig(t *testing.T) {
	upstream := BuildChatRequest(&ChatRequest{Messages: []ChatMessage{{Role: "user", Content: "hi"}}})
	gc := upstream.GenerationConfig
	if gc == nil || gc.Temperature != 0.7 || gc.MaxOutputTokens != 8192 {
		t.Errorf("unexpected generation config: %+v", gc)
	}
	if upstream.SystemInstruction == nil || !strings.Contains(upstream.SystemInstruction.Parts[0].Text, "Lepen AI") {
		t.Error("expected the chat system prompt")
	}
}

func TestSystemPrompt_CodeMode(t *testing.T) {
	if p := systemPrompt("code"); !strings.HasSuffix(p, codeModeSuffix) {
		t.Error("code mode should append build guidance")
	}
	if p := systemPrompt("chat"); strings.Contains(p, "Build mode") {
		t.Error("chat mode should not carry build guidance")
	}
}

func TestBuildImageRequest_Generate(t *testing.T) {
	upstream, isEdit := BuildImageRequest(&ImageRequest{Prompt: "a red circle"})
	if isEdit {
		t.Error("expected a generate request")
	}
	parts := upstream.Contents[0].Parts
	if len(parts) != 1 || parts[0].Text != "Generate an image: a red circle" {
		t.Errorf("unexpected parts: %+v", parts)
	}
	if gc := upstream.GenerationConfig; gc == nil || len(gc.ResponseModalities) != 2 {
		t.Errorf("expected TEXT and IMAGE modalities, got %+v", upstream.GenerationConfig)
	}
}

func TestBuildImageRequest_Edit(t *testing.T) {
	upstream, isEdit := BuildImageRequest(&ImageRequest{
		Prompt:    "make it blue",
		ImageData: "data:image/jpeg;base64,QUJD",
	})
	if !isEdit {
		t.Error("expected an edit request")
	}
	parts := upstream.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MimeType != "image/jpeg" {
		t.Errorf("expected the source image first, got %+v", parts[0])
	}
	if parts[1].Text != "Edit this image: make it blue" {
		t.Errorf("unexpected instruction: %q", parts[1].Text)
	}
}

func TestBuildImageRequest_MalformedImageFallsBackToGenerate(t *testing.T) {
	upstream, isEdit := BuildImageRequest(&ImageRequest{
		Prompt:    "a red circle",
		ImageData: "garbage",
	})
	if isEdit {
		t.Error("malformed imageData must not produce an edit")
	}
	if parts := upstream.Contents[0].Parts; parts[0].Text != "Generate an image: a red circle" {
		t.Errorf("unexpected parts: %+v", parts)
	}
}

func TestBuildWebSearchRequest(t *testing.T) {
	upstream := BuildWebSearchRequest("go release")
	if len(upstream.Tools) != 1 || upstream.Tools[0].GoogleSearch == nil {
		t.Errorf("expected the googleSearch tool, got %+v", upstream.Tools)
	}
	if upstream.GenerationConfig.Temperature != 0.3 || upstream.GenerationConfig.MaxOutputTokens != 4096 {
		t.Errorf("unexpected generation config: %+v", upstream.GenerationConfig)
	}
	if text := upstream.Contents[0].Parts[0].Text; !strings.HasSuffix(text, "go release") {
		t.Errorf("unexpected instruction: %q", text)
	}
}

func TestBuildMapSearchRequest(t *testing.T) {
	upstream := BuildMapSearchRequest("paris")
	if upstream.SystemInstruction == nil || !strings.Contains(upstream.SystemInstruction.Parts[0].Text, "Only return valid JSON") {
		t.Error("expected the strict-JSON system instruction")
	}
	if upstream.GenerationConfig.Temperature != 0.2 || upstream.GenerationConfig.MaxOutputTokens != 2048 {
		t.Errorf("unexpected generation config: %+v", upstream.GenerationConfig)
	}
	if len(upstream.Tools) != 0 {
		t.Errorf("map search should not request tools, got %+v", upstream.Tools)
	}
}

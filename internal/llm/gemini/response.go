package gemini

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/smartcatalog/catalog-extractor/internal/llm"
)

// firstCandidateText pulls the first text part of the first candidate out of
// a generate-content response. Anything else counts as an empty response.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", llm.ErrEmptyResponse
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", llm.ErrEmptyResponse
	}
	text, ok := content.Parts[0].(genai.Text)
	if !ok || len(text) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return string(text), nil
}

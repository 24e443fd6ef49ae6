package gemini

import (
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"

	"github.com/smartcatalog/catalog-extractor/internal/llm"
)

func TestFirstCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`[{"product_name": "Flora"}]`)}}},
		},
	}
	got, err := firstCandidateText(resp)
	if err != nil {
		t.Fatalf("firstCandidateText: %v", err)
	}
	if got != `[{"product_name": "Flora"}]` {
		t.Fatalf("got %q", got)
	}
}

func TestFirstCandidateTextEmpty(t *testing.T) {
	cases := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"nil content":   {Candidates: []*genai.Candidate{{}}},
		"no parts":      {Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
		"blank text": {Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("")}}},
		}},
		"non-text part": {Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
		}},
	}
	for name, resp := range cases {
		if _, err := firstCandidateText(resp); !errors.Is(err, llm.ErrEmptyResponse) {
			t.Errorf("%s: got %v, want ErrEmptyResponse", name, err)
		}
	}
}

func TestConfigWithDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Config{}.withDefaults()
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey: got %q, want env fallback", cfg.APIKey)
	}
	if cfg.Model != "gemini-1.5-pro-002" {
		t.Errorf("Model: got %q", cfg.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout: got %v", cfg.Timeout)
	}

	explicit := Config{APIKey: "direct", Model: "gemini-1.5-flash", Timeout: time.Second}.withDefaults()
	if explicit.APIKey != "direct" || explicit.Model != "gemini-1.5-flash" || explicit.Timeout != time.Second {
		t.Errorf("explicit values must win: %+v", explicit)
	}
}

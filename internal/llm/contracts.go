package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse signals that the model answered but supplied no usable
// content (no candidates, or a first candidate without a text part).
var ErrEmptyResponse = errors.New("model returned no content")

// TextGenerator is the interface the pipeline depends on: submit a prompt,
// get back the raw text of the model's first response candidate.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/smartcatalog/catalog-extractor/internal/entity"
)

// ErrNoJSONArray means the model response contained no bracket-delimited
// array of objects at all.
var ErrNoJSONArray = errors.New("no JSON array found in model response")

// jsonArrayPattern locates the first JSON-array-of-objects shaped substring,
// greedy across newlines. Models often wrap the array in prose or markdown
// fences; everything around the brackets is ignored.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*\}\s*\]`)

// DecodeProducts extracts and decodes the first JSON array found in a raw
// model response.
func DecodeProducts(response string) ([]entity.Product, error) {
	match := jsonArrayPattern.FindString(response)
	if match == "" {
		return nil, ErrNoJSONArray
	}
	var products []entity.Product
	if err := json.Unmarshal([]byte(match), &products); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return products, nil
}

// ApplyPageReference post-processes decoded records so every one carries a
// page_reference with the run's file path. Page numbers the model supplied
// are trusted and preserved as-is; only records without a page_reference fall
// back to the batch's first page number.
func ApplyPageReference(products []entity.Product, filePath string, fallbackPage int) {
	for _, p := range products {
		p.EnsurePageReference(filePath, fallbackPage)
	}
}

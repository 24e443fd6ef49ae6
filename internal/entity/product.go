package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PageReference ties a product record back to its source file and page numbers.
type PageReference struct {
	FilePath    string `json:"file_path"`
	PageNumbers []int  `json:"page_numbers"`
}

// Product is one catalog record as emitted by the model. Keys other than
// page_reference come straight from the model; no schema is enforced on them.
type Product map[string]any

// Recognized keys. The model is instructed to emit these, but nothing
// guarantees it does.
const (
	KeyProductName   = "product_name"
	KeyBrandName     = "brand_name"
	KeyDesigner      = "designer"
	KeyYear          = "year"
	KeyTypeOfProduct = "type_of_product"
	KeyAllColors     = "all_colors"
	KeyPageReference = "page_reference"
)

// EnsurePageReference guarantees the record carries a page_reference whose
// file_path is filePath. Page numbers supplied by the model are kept verbatim,
// even when they look wrong; only when page_reference is missing (or not an
// object) is it synthesized from fallbackPage.
func (p Product) EnsurePageReference(filePath string, fallbackPage int) {
	if ref, ok := p[KeyPageReference].(map[string]any); ok {
		ref["file_path"] = filePath
		return
	}
	p[KeyPageReference] = map[string]any{
		"file_path":    filePath,
		"page_numbers": []any{fallbackPage},
	}
}

// PageRef returns the record's page reference in typed form.
func (p Product) PageRef() (PageReference, bool) {
	ref, ok := p[KeyPageReference].(map[string]any)
	if !ok {
		return PageReference{}, false
	}
	out := PageReference{}
	out.FilePath, _ = ref["file_path"].(string)
	if nums, ok := ref["page_numbers"].([]any); ok {
		for _, n := range nums {
			switch v := n.(type) {
			case float64:
				out.PageNumbers = append(out.PageNumbers, int(v))
			case int:
				out.PageNumbers = append(out.PageNumbers, v)
			}
		}
	}
	return out, true
}

// stringField returns a recognized key as a trimmed string, tolerating the
// model emitting numbers where strings were asked for.
func (p Product) stringField(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func (p Product) ProductName() string   { return p.stringField(KeyProductName) }
func (p Product) BrandName() string     { return p.stringField(KeyBrandName) }
func (p Product) Designer() string      { return p.stringField(KeyDesigner) }
func (p Product) Year() string          { return p.stringField(KeyYear) }
func (p Product) TypeOfProduct() string { return p.stringField(KeyTypeOfProduct) }

// AllColors returns the record's color list, dropping non-string entries.
func (p Product) AllColors() []string {
	raw, ok := p[KeyAllColors].([]any)
	if !ok {
		return nil
	}
	colors := make([]string, 0, len(raw))
	for _, c := range raw {
		if s, ok := c.(string); ok && strings.TrimSpace(s) != "" {
			colors = append(colors, strings.TrimSpace(s))
		}
	}
	return colors
}

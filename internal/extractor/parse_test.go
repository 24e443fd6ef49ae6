package extractor

import (
	"errors"
	"testing"

	"github.com/smartcatalog/catalog-extractor/internal/entity"
)

func TestDecodeProductsPlainArray(t *testing.T) {
	products, err := DecodeProducts(`[{"product_name": "Flora", "brand_name": "Moroso"}]`)
	if err != nil {
		t.Fatalf("DecodeProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	if got := products[0].ProductName(); got != "Flora" {
		t.Fatalf("product_name: got %q, want %q", got, "Flora")
	}
}

func TestDecodeProductsIgnoresSurroundingProse(t *testing.T) {
	response := "Sure! Here is the data you asked for:\n```json\n" +
		`[{"product_name": "Luna"},` + "\n" +
		` {"product_name": "Stella"}]` + "\n```\nLet me know if you need anything else."
	products, err := DecodeProducts(response)
	if err != nil {
		t.Fatalf("DecodeProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[1].ProductName() != "Stella" {
		t.Fatalf("second product: got %q, want %q", products[1].ProductName(), "Stella")
	}
}

func TestDecodeProductsNoArray(t *testing.T) {
	_, err := DecodeProducts("I could not find any products on these pages.")
	if !errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("got %v, want ErrNoJSONArray", err)
	}
}

func TestDecodeProductsEmptyArrayIsNoMatch(t *testing.T) {
	// The pattern requires at least one object, so a bare [] is not a match.
	_, err := DecodeProducts("[]")
	if !errors.Is(err, ErrNoJSONArray) {
		t.Fatalf("got %v, want ErrNoJSONArray", err)
	}
}

func TestDecodeProductsMalformedJSON(t *testing.T) {
	_, err := DecodeProducts(`[{"product_name": "Flora",}]`)
	if err == nil {
		t.Fatal("malformed JSON should fail to decode")
	}
	if errors.Is(err, ErrNoJSONArray) {
		t.Fatal("malformed JSON is a decode error, not a missing array")
	}
}

func TestApplyPageReferenceOverwritesFilePath(t *testing.T) {
	products := []entity.Product{
		{
			"product_name": "Flora",
			"page_reference": map[string]any{
				"file_path":    "/model/made/this/up.pdf",
				"page_numbers": []any{float64(11), float64(12)},
			},
		},
	}
	ApplyPageReference(products, "/catalogs/moroso.pdf", 3)

	ref, ok := products[0].PageRef()
	if !ok {
		t.Fatal("page_reference missing after post-processing")
	}
	if ref.FilePath != "/catalogs/moroso.pdf" {
		t.Fatalf("file_path: got %q, want the run's path", ref.FilePath)
	}
	if len(ref.PageNumbers) != 2 || ref.PageNumbers[0] != 11 || ref.PageNumbers[1] != 12 {
		t.Fatalf("page_numbers: got %v, want the model's [11 12] preserved", ref.PageNumbers)
	}
}

func TestApplyPageReferenceSynthesizesMissingReference(t *testing.T) {
	products := []entity.Product{{"product_name": "Luna"}}
	ApplyPageReference(products, "/catalogs/moroso.pdf", 5)

	ref, ok := products[0].PageRef()
	if !ok {
		t.Fatal("page_reference not synthesized")
	}
	if ref.FilePath != "/catalogs/moroso.pdf" {
		t.Fatalf("file_path: got %q", ref.FilePath)
	}
	if len(ref.PageNumbers) != 1 || ref.PageNumbers[0] != 5 {
		t.Fatalf("page_numbers: got %v, want [5] (batch first page)", ref.PageNumbers)
	}
}

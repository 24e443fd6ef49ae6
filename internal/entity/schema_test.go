package entity

import (
	"testing"
)

func TestValidateImportJSONAccepts(t *testing.T) {
	data := []byte(`[
		{
			"product_name": "Flora",
			"brand_name": "Moroso",
			"year": 1972,
			"all_colors": ["rosso", "blu"],
			"page_reference": {"file_path": "a.pdf", "page_numbers": [1, 2]}
		}
	]`)
	products, err := ValidateImportJSON(data)
	if err != nil {
		t.Fatalf("ValidateImportJSON: %v", err)
	}
	if len(products) != 1 || products[0].ProductName() != "Flora" {
		t.Fatalf("got %v", products)
	}
}

func TestValidateImportJSONRejectsMissingPageReference(t *testing.T) {
	data := []byte(`[{"product_name": "Flora"}]`)
	if _, err := ValidateImportJSON(data); err == nil {
		t.Fatal("record without page_reference must be rejected")
	}
}

func TestValidateImportJSONRejectsWrongShape(t *testing.T) {
	cases := map[string]string{
		"not an array":       `{"product_name": "Flora"}`,
		"colors not strings": `[{"all_colors": [1, 2], "page_reference": {"file_path": "a.pdf"}}]`,
		"no file_path":       `[{"page_reference": {"page_numbers": [1]}}]`,
		"not json":           `products: []`,
	}
	for name, data := range cases {
		if _, err := ValidateImportJSON([]byte(data)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestValidateImportJSONKeepsUnknownKeys(t *testing.T) {
	data := []byte(`[{"price_eur": 1250, "page_reference": {"file_path": "a.pdf"}}]`)
	products, err := ValidateImportJSON(data)
	if err != nil {
		t.Fatalf("unknown keys must be allowed: %v", err)
	}
	if _, ok := products[0]["price_eur"]; !ok {
		t.Fatal("unknown key dropped during decode")
	}
}

package extractor

import (
	"strings"
	"testing"
)

func TestBuildPromptContainsAttributesAndPages(t *testing.T) {
	b := Batch{
		PageNumbers: []int{3, 4},
		Texts:       []string{"Divano Flora, design 1972", "Tavolo Luna, rovere"},
	}
	prompt := BuildPrompt(b, "Italian")

	for _, attr := range []string{
		"product_name",
		"brand_name",
		"designer",
		"year",
		"type_of_product",
		"all_colors",
		"page_reference",
	} {
		if !strings.Contains(prompt, attr) {
			t.Errorf("prompt missing attribute %q", attr)
		}
	}

	if !strings.Contains(prompt, "pages 3, 4") {
		t.Error("prompt missing page number list")
	}
	if !strings.Contains(prompt, "(Italian)") {
		t.Error("prompt missing language")
	}
	if !strings.Contains(prompt, "TEXT FROM PAGE 3:") || !strings.Contains(prompt, "TEXT FROM PAGE 4:") {
		t.Error("prompt missing per-page labels")
	}
	if !strings.Contains(prompt, "Divano Flora") || !strings.Contains(prompt, "Tavolo Luna") {
		t.Error("prompt missing page text")
	}
}

func TestBuildPromptKeepsPageTextVerbatim(t *testing.T) {
	text := "Divano Flora\nDesigner: N. N.\nColori: \"rosso\", blu"
	b := Batch{PageNumbers: []int{1}, Texts: []string{text}}
	prompt := BuildPrompt(b, "Italian")

	if !strings.Contains(prompt, "TEXT FROM PAGE 1:\n\""+text+"\"") {
		t.Fatal("page text must appear verbatim between plain quotes")
	}
	if strings.Contains(prompt, `\n`) {
		t.Error("newlines in page text must not be escaped")
	}
	if strings.Contains(prompt, `\"`) {
		t.Error("quotes in page text must not be escaped")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	b := Batch{PageNumbers: []int{1, 2}, Texts: []string{"alpha", "beta"}}
	first := BuildPrompt(b, "Italian")
	second := BuildPrompt(b, "Italian")
	if first != second {
		t.Fatal("identical input produced different prompts")
	}
}

func TestBuildPromptDefaultLanguage(t *testing.T) {
	b := Batch{PageNumbers: []int{1}, Texts: []string{"text"}}
	prompt := BuildPrompt(b, "")
	if !strings.Contains(prompt, "(Italian)") {
		t.Fatal("empty language should fall back to Italian")
	}
}

func TestBuildPromptLanguageOverride(t *testing.T) {
	b := Batch{PageNumbers: []int{1}, Texts: []string{"text"}}
	prompt := BuildPrompt(b, "German")
	if !strings.Contains(prompt, "(German)") {
		t.Fatal("language override not applied")
	}
	if strings.Contains(prompt, "(Italian)") {
		t.Fatal("default language leaked into overridden prompt")
	}
}

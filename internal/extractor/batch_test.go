package extractor

import (
	"fmt"
	"testing"

	"github.com/smartcatalog/catalog-extractor/internal/pdftext"
)

func makePages(n int) []pdftext.Page {
	pages := make([]pdftext.Page, n)
	for i := range pages {
		pages[i] = pdftext.Page{Number: i + 1, Text: fmt.Sprintf("page %d text", i+1)}
	}
	return pages
}

func TestBatchPagesCounts(t *testing.T) {
	cases := []struct {
		pages   int
		size    int
		batches int
		lastLen int
	}{
		{pages: 5, size: 2, batches: 3, lastLen: 1},
		{pages: 4, size: 2, batches: 2, lastLen: 2},
		{pages: 1, size: 2, batches: 1, lastLen: 1},
		{pages: 7, size: 3, batches: 3, lastLen: 1},
		{pages: 3, size: 10, batches: 1, lastLen: 3},
		{pages: 0, size: 2, batches: 0, lastLen: 0},
	}
	for _, tc := range cases {
		got := BatchPages(makePages(tc.pages), tc.size)
		if len(got) != tc.batches {
			t.Errorf("BatchPages(%d pages, size %d): got %d batches, want %d",
				tc.pages, tc.size, len(got), tc.batches)
			continue
		}
		if tc.batches == 0 {
			continue
		}
		last := got[len(got)-1]
		if len(last.PageNumbers) != tc.lastLen {
			t.Errorf("BatchPages(%d pages, size %d): last batch has %d pages, want %d",
				tc.pages, tc.size, len(last.PageNumbers), tc.lastLen)
		}
	}
}

func TestBatchPagesCoversAllPagesInOrder(t *testing.T) {
	pages := makePages(9)
	batches := BatchPages(pages, 4)

	var numbers []int
	for _, b := range batches {
		if len(b.PageNumbers) == 0 {
			t.Fatal("empty batch produced")
		}
		if len(b.PageNumbers) != len(b.Texts) {
			t.Fatalf("batch has %d page numbers but %d texts", len(b.PageNumbers), len(b.Texts))
		}
		if len(b.PageNumbers) > 4 {
			t.Fatalf("batch has %d pages, want at most 4", len(b.PageNumbers))
		}
		numbers = append(numbers, b.PageNumbers...)
	}

	if len(numbers) != len(pages) {
		t.Fatalf("batches cover %d pages, want %d", len(numbers), len(pages))
	}
	for i, n := range numbers {
		if n != i+1 {
			t.Fatalf("page order broken at index %d: got %d, want %d", i, n, i+1)
		}
	}
}

func TestBatchPagesInvalidSizeUsesDefault(t *testing.T) {
	batches := BatchPages(makePages(4), 0)
	if len(batches) != 2 {
		t.Fatalf("size 0: got %d batches, want 2 (default batch size)", len(batches))
	}
	batches = BatchPages(makePages(4), -3)
	if len(batches) != 2 {
		t.Fatalf("size -3: got %d batches, want 2 (default batch size)", len(batches))
	}
}

func TestBatchFirstPage(t *testing.T) {
	b := Batch{PageNumbers: []int{7, 8}, Texts: []string{"a", "b"}}
	if got := b.FirstPage(); got != 7 {
		t.Fatalf("FirstPage: got %d, want 7", got)
	}
	var empty Batch
	if got := empty.FirstPage(); got != 0 {
		t.Fatalf("FirstPage on empty batch: got %d, want 0", got)
	}
}

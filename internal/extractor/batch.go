package extractor

import (
	"github.com/smartcatalog/catalog-extractor/internal/pdftext"
)

// DefaultBatchSize is the number of pages sent to the model per call.
const DefaultBatchSize = 2

// Batch is a contiguous group of pages processed in a single model call.
// PageNumbers and Texts are parallel and always the same length.
type Batch struct {
	PageNumbers []int
	Texts       []string
}

// FirstPage returns the batch's first page number, the fallback used when the
// model omits a page reference.
func (b Batch) FirstPage() int {
	if len(b.PageNumbers) == 0 {
		return 0
	}
	return b.PageNumbers[0]
}

// BatchPages partitions pages into contiguous batches of at most size pages,
// preserving page order. The final batch may be short; a batch is never
// empty. Pure function, no error conditions.
func BatchPages(pages []pdftext.Page, size int) []Batch {
	if size < 1 {
		size = DefaultBatchSize
	}
	batches := make([]Batch, 0, (len(pages)+size-1)/size)
	for start := 0; start < len(pages); start += size {
		end := min(start+size, len(pages))
		b := Batch{
			PageNumbers: make([]int, 0, end-start),
			Texts:       make([]string, 0, end-start),
		}
		for _, p := range pages[start:end] {
			b.PageNumbers = append(b.PageNumbers, p.Number)
			b.Texts = append(b.Texts, p.Text)
		}
		batches = append(batches, b)
	}
	return batches
}

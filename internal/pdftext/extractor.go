package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Page is one page of extracted text. Pages are emitted in ascending,
// 1-indexed document order; Text may be empty for blank or image-only pages
// (no OCR is performed).
type Page struct {
	Number int
	Text   string
}

type Config struct {
	MaxPages int // 0 = no limit
}

// Extractor pulls the embedded text layer out of a PDF, page by page.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// ExtractPages opens the document at path and returns the text of every page.
// Any failure to open or read the document is fatal to the caller's run; the
// document handle is released on all paths.
func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]Page, error) {
	start := time.Now()

	// Preflight with pdfcpu: catches corrupt or encrypted documents before
	// the text-layer walk, and gives us an authoritative page count to log.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	declared, err := api.PageCount(f, nil)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("read pdf page count: %w", err)
	}

	rc, reader, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf text layer: %w", err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			e.logger.Warn("pdftext.close_failed", "path", path, "error", cerr)
		}
	}()

	total := reader.NumPage()
	if e.cfg.MaxPages > 0 && total > e.cfg.MaxPages {
		e.logger.Warn("pdftext.page_cap", "path", path, "pages", total, "cap", e.cfg.MaxPages)
		total = e.cfg.MaxPages
	}

	pages := make([]Page, 0, total)
	fonts := make(map[string]*lpdf.Font)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, Page{Number: i, Text: text})
	}

	e.logger.Debug("pdftext.extract.ok",
		"path", path,
		"pages", len(pages),
		"declared_pages", declared,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}

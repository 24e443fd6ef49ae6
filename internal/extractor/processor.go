package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smartcatalog/catalog-extractor/internal/entity"
	"github.com/smartcatalog/catalog-extractor/internal/llm"
	"github.com/smartcatalog/catalog-extractor/internal/pdftext"
)

// PageSource yields the per-page text of a document. Satisfied by
// *pdftext.Extractor; stubbed in tests.
type PageSource interface {
	ExtractPages(ctx context.Context, path string) ([]pdftext.Page, error)
}

// Config holds pipeline behavior knobs.
type Config struct {
	BatchSize int    // pages per model call; default 2
	Language  string // language of the catalog text; default Italian
}

// Stats summarizes one extraction run. Batches can fail silently as far as
// the record output is concerned, so the counts are the only place data loss
// shows up.
type Stats struct {
	Pages         int `json:"pages"`
	Batches       int `json:"batches"`
	FailedBatches int `json:"failed_batches"`
	Products      int `json:"products"`
}

// Processor runs the extract -> batch -> prompt -> model -> parse pipeline
// for one document at a time. Batches are processed sequentially; one batch's
// result never affects another's.
type Processor struct {
	cfg    Config
	pages  PageSource
	gen    llm.TextGenerator
	logger *slog.Logger
}

func NewProcessor(cfg Config, pages PageSource, gen llm.TextGenerator, logger *slog.Logger) *Processor {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{cfg: cfg, pages: pages, gen: gen, logger: logger}
}

// ExtractProducts processes the PDF at pdfPath and returns every product
// record the model produced, in batch order. Failure to read the document is
// fatal; a failing batch is logged, counted, and dropped while the run
// continues.
func (p *Processor) ExtractProducts(ctx context.Context, pdfPath string) ([]entity.Product, Stats, error) {
	start := time.Now()

	pages, err := p.pages.ExtractPages(ctx, pdfPath)
	if err != nil {
		p.logger.Error("extract.pages.failed", "path", pdfPath, "error", err)
		return nil, Stats{}, fmt.Errorf("extract text from pdf: %w", err)
	}

	batches := BatchPages(pages, p.cfg.BatchSize)
	stats := Stats{Pages: len(pages), Batches: len(batches)}

	var products []entity.Product
	for _, batch := range batches {
		recs, err := p.processBatch(ctx, pdfPath, batch)
		if err != nil {
			stats.FailedBatches++
			p.logger.Warn("extract.batch.failed",
				"path", pdfPath,
				"pages", batch.PageNumbers,
				"error", err,
			)
			continue
		}
		products = append(products, recs...)
	}
	stats.Products = len(products)

	p.logger.Info("extract.run.ok",
		"path", pdfPath,
		"pages", stats.Pages,
		"batches", stats.Batches,
		"failed_batches", stats.FailedBatches,
		"products", stats.Products,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return products, stats, nil
}

func (p *Processor) processBatch(ctx context.Context, pdfPath string, batch Batch) ([]entity.Product, error) {
	prompt := BuildPrompt(batch, p.cfg.Language)

	response, err := p.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call: %w", err)
	}

	products, err := DecodeProducts(response)
	if err != nil {
		return nil, err
	}

	ApplyPageReference(products, pdfPath, batch.FirstPage())
	return products, nil
}

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

// Service is a tiny façade over the product repository that produces export
// payloads (XLSX workbook or a JSON dump) of everything stored.
type Service struct {
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewService(products repository.ProductRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{products: products, logger: logger}
}

// ExportProductsXLSX returns an XLSX workbook (as bytes) of all stored
// products.
func (s *Service) ExportProductsXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	recs, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Products"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Product Name",
		"Brand",
		"Designer",
		"Year",
		"Type",
		"Colors",
		"Source PDF",
		"Pages",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, rec := range recs {
		values := []any{
			rec.ProductName,
			rec.BrandName,
			rec.Designer,
			rec.Year,
			rec.TypeOfProduct,
			strings.Join(rec.AllColors, ", "),
			rec.FilePath,
			joinInts(rec.PageNumbers),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Drop the default sheet excelize creates.
	if sheet != "Sheet1" {
		if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
			_ = f.DeleteSheet("Sheet1")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok", "products", len(recs), "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

// ExportProductsJSON returns all stored products as a pretty-printed JSON
// array.
func (s *Service) ExportProductsJSON(ctx context.Context) ([]byte, error) {
	recs, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	if recs == nil {
		recs = []*repository.ProductRecord{}
	}
	out, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal products: %w", err)
	}
	s.logger.Info("export.json.ok", "products", len(recs))
	return out, nil
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/smartcatalog/catalog-extractor/internal/common"
	"github.com/smartcatalog/catalog-extractor/internal/entity"
)

const maxUploadBytes = 64 << 20 // 64 MB

// handleUpload accepts a multipart PDF, runs the extraction pipeline on it,
// and stores the resulting product records. The staged file is removed once
// the run finishes, success or not.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.formFile(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		s.writeError(w, common.NewAppError("BAD_UPLOAD", "only PDF uploads are supported", common.ErrInvalidInput))
		return
	}

	tempDir, err := os.MkdirTemp(s.cfg.UploadDir, "catalog-upload-*")
	if err != nil {
		s.writeError(w, common.WrapError(err, "stage upload"))
		return
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			s.logger.Warn("failed to remove staged upload", "dir", tempDir, "error", err)
		}
	}()

	tempPath := filepath.Join(tempDir, filepath.Base(header.Filename))
	dst, err := os.Create(tempPath)
	if err != nil {
		s.writeError(w, common.WrapError(err, "stage upload"))
		return
	}
	if _, err := io.Copy(dst, file); err != nil {
		_ = dst.Close()
		s.writeError(w, common.WrapError(err, "stage upload"))
		return
	}
	if err := dst.Close(); err != nil {
		s.writeError(w, common.WrapError(err, "stage upload"))
		return
	}

	products, stats, err := s.pipeline.ExtractProducts(r.Context(), tempPath)
	if err != nil {
		s.writeError(w, common.WrapError(err, "process pdf"))
		return
	}

	stored, err := s.products.AddProducts(r.Context(), products)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Processed %d products from %s", stored, header.Filename),
		"stats":   stats,
	})
}

// handleImportJSON ingests an operator-supplied JSON array of product
// records, validated against the import schema before anything is stored.
func (s *Server) handleImportJSON(w http.ResponseWriter, r *http.Request) {
	file, header, err := s.formFile(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer file.Close()

	s.logger.Info("import.json.start", "filename", header.Filename)

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.writeError(w, common.WrapError(err, "read import file"))
		return
	}

	products, err := entity.ValidateImportJSON(data)
	if err != nil {
		s.writeError(w, common.NewAppError("IMPORT_INVALID", err.Error(), common.ErrValidation))
		return
	}

	stored, err := s.products.AddProducts(r.Context(), products)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("import.json.ok", "filename", header.Filename, "stored", stored)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("Imported %d products from %s", stored, header.Filename),
		"imported": stored,
	})
}

func (s *Server) formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, nil, common.NewAppError("BAD_UPLOAD", "expected multipart form with a 'file' field", common.ErrInvalidInput)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, nil, common.NewAppError("BAD_UPLOAD", "missing 'file' field", common.ErrInvalidInput)
	}
	return file, header, nil
}

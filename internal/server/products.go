package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/smartcatalog/catalog-extractor/internal/common"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	productType := r.URL.Query().Get("category")

	recs, err := s.products.SearchProducts(r.Context(), query, productType)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recordsOrEmpty(recs))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, common.NewAppError("BAD_PRODUCT_ID", "product id must be a UUID", common.ErrInvalidInput))
		return
	}
	rec, err := s.products.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	recs, err := s.products.ListProducts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"products": recordsOrEmpty(recs)})
}

func (s *Server) handleClearProducts(w http.ResponseWriter, r *http.Request) {
	n, err := s.products.ClearProducts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("products cleared via api", "count", n)
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "All products cleared successfully"})
}

// recordsOrEmpty keeps the JSON shape an array even with no rows.
func recordsOrEmpty(recs []*repository.ProductRecord) []*repository.ProductRecord {
	if recs == nil {
		return []*repository.ProductRecord{}
	}
	return recs
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/smartcatalog/catalog-extractor/internal/common"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("http.write_response_failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, common.HTTPStatus(err), map[string]string{"detail": err.Error()})
}

package server

import "net/http"

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /import-json", s.handleImportJSON)

	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("GET /products/{id}", s.handleGetProduct)

	mux.HandleFunc("GET /debug/products", s.handleListProducts)
	mux.HandleFunc("DELETE /debug/products", s.handleClearProducts)

	return mux
}

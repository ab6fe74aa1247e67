package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/categories", s.HandleCategories)
	mux.HandleFunc("GET /health", s.HandleHealth)

	// Paths used by the legacy frontend, which calls /results without a
	// trailing slash. Register both so it gets a direct 200 instead of a
	// redirect.
	mux.HandleFunc("GET /results", s.HandleSearch)
	mux.HandleFunc("GET /results/", s.HandleSearch)
}

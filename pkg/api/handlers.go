package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/mediadex/mediadex/pkg/catalog"
	"github.com/mediadex/mediadex/pkg/search"
	"github.com/mediadex/mediadex/pkg/version"
)

// HandleSearch serves the read endpoint. Validation problems come back as a
// soft error inside a 200 envelope so the frontend never sees a transport
// failure for a fixable request; only store faults produce a 500.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseParams(r.URL.Query())
	if err == nil {
		var page *search.Page
		page, err = s.service.Search(r.Context(), params)
		if err == nil {
			s.writeJSON(w, http.StatusOK, SearchResponse{
				Result:     page.Results,
				TotalCount: page.TotalCount,
			})
			return
		}
	}

	var verr *search.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, http.StatusOK, SearchResponse{
			Result: []search.Result{},
			Error:  verr.Error(),
		})
		return
	}

	s.logger.Errorf("search failed: %v", err)
	s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
}

func (s *Server) HandleCategories(w http.ResponseWriter, r *http.Request) {
	labels := catalog.CategoryLabels()
	s.writeJSON(w, http.StatusOK, CategoriesResponse{
		Categories: labels,
		Count:      len(labels),
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version.APIVersion(),
	})
}

package api

import (
	"time"

	"github.com/mediadex/mediadex/pkg/search"
)

// SearchResponse is the search envelope. Result is always present, even when
// empty; Error carries validation failures as a soft error.
type SearchResponse struct {
	Result     []search.Result `json:"result"`
	TotalCount int             `json:"total_count"`
	Error      string          `json:"error,omitempty"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Count      int      `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

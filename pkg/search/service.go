package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/mediadex/mediadex/pkg/catalog"
	"github.com/mediadex/mediadex/pkg/log"
)

const (
	// DefaultPage is used when no page parameter is supplied.
	DefaultPage = 1
	// DefaultPerPage is used when no per_page parameter is supplied.
	DefaultPerPage = 20
	// MaxPerPage bounds the page size.
	MaxPerPage = 100
	// MinQueryLength is the shortest accepted search query, in characters
	// rather than bytes. Shorter terms
	// are rejected before any store access; FTS engines choke on them and
	// this check gives a clean error path instead.
	MinQueryLength = 3
)

// Params represents one search request. Absent fields take the documented
// defaults; fields that are present but out of range fail validation.
type Params struct {
	Query    string
	Page     int
	PerPage  int
	Category string
	SortCol  string
	SortDir  string
}

// Result is one projected catalog record in response shape.
type Result struct {
	Title string `json:"title"`
	Cat   string `json:"cat"`
	Date  string `json:"date"`
	Size  *int64 `json:"size"`
	// Magnet is omitted when the record has no content hash.
	Magnet string `json:"magnet,omitempty"`
}

// Page is the result envelope for one request: the projected records for the
// requested window plus the total match count across all pages.
type Page struct {
	Results    []Result
	TotalCount int
}

// ValidationError marks a request the caller can fix: too-short query or
// out-of-range pagination. It surfaces as a soft error in the response body,
// never as a transport failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Service executes catalog searches. It holds the shared store handle and
// the configured match mode; request handling itself is stateless.
type Service struct {
	store  *catalog.Store
	mode   catalog.MatchMode
	logger *log.Logger
}

func NewService(store *catalog.Store, mode catalog.MatchMode) *Service {
	return &Service{
		store:  store,
		mode:   mode,
		logger: log.ForService("search"),
	}
}

// ParseParams parses HTTP query parameters into Params. Missing parameters
// take defaults; parameters that are present but malformed or out of range
// return a ValidationError. Sort and category values pass through as given,
// the compiler and resolver fail open to safe defaults for unknown values.
func ParseParams(values url.Values) (Params, error) {
	p := Params{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		SortCol: "title",
		SortDir: "asc",
	}

	p.Query = values.Get("search_query")

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, &ValidationError{msg: fmt.Sprintf("page must be a positive integer, got %q", raw)}
		}
		p.Page = n
	}

	if raw := values.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxPerPage {
			return p, &ValidationError{msg: fmt.Sprintf("per_page must be between 1 and %d, got %q", MaxPerPage, raw)}
		}
		p.PerPage = n
	}

	p.Category = values.Get("category")
	if v := values.Get("sort_col"); v != "" {
		p.SortCol = v
	}
	if v := values.Get("sort_dir"); v != "" {
		p.SortDir = v
	}

	return p, nil
}

func (p Params) validate() error {
	if utf8.RuneCountInString(p.Query) < MinQueryLength {
		return &ValidationError{msg: fmt.Sprintf("search query must be at least %d characters", MinQueryLength)}
	}
	if p.Page < 1 {
		return &ValidationError{msg: "page must be >= 1"}
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return &ValidationError{msg: fmt.Sprintf("per_page must be between 1 and %d", MaxPerPage)}
	}
	return nil
}

// Search runs one request: validate, compile, count, fetch the window,
// project. A zero count short-circuits before the page query. Validation
// failures return a *ValidationError without touching the store.
func (s *Service) Search(ctx context.Context, p Params) (*Page, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	categories := catalog.ResolveCategory(p.Category)

	sel := catalog.Selection{
		Term:       p.Query,
		Categories: categories,
		SortCol:    p.SortCol,
		SortDir:    p.SortDir,
		Limit:      p.PerPage,
		Offset:     (p.Page - 1) * p.PerPage,
	}
	queries := catalog.CompileSearch(sel, s.mode)
	s.logger.Debugf("count query: %s %v", queries.CountSQL, queries.CountArgs)

	count, err := s.store.CountMatches(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("executing count query: %w", err)
	}
	if count == 0 {
		return &Page{Results: []Result{}, TotalCount: 0}, nil
	}

	s.logger.Debugf("page query: %s %v", queries.PageSQL, queries.PageArgs)
	records, err := s.store.FetchPage(ctx, queries)
	if err != nil {
		return nil, fmt.Errorf("executing page query: %w", err)
	}

	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, projectRecord(rec))
	}

	return &Page{Results: results, TotalCount: count}, nil
}

// projectRecord maps a stored record to its response shape. The date is a
// textual truncation of the stored timestamp to its calendar prefix, not a
// calendar-aware parse.
func projectRecord(rec catalog.Record) Result {
	date := rec.Timestamp
	if len(date) > 10 {
		date = date[:10]
	}

	res := Result{
		Title: rec.Title,
		Cat:   rec.Category,
		Date:  date,
		Size:  rec.Size,
	}
	if rec.Hash != "" {
		res.Magnet = fmt.Sprintf("magnet:?xt=urn:btih:%s&dn=%s", rec.Hash, rec.Title)
	}
	return res
}

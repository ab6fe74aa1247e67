package catalog

import (
	"strings"
	"testing"
)

func TestCompileSearchFTS(t *testing.T) {
	q := CompileSearch(Selection{
		Term:    "ubuntu",
		SortCol: "title",
		SortDir: "asc",
		Limit:   20,
		Offset:  0,
	}, MatchFTS)

	if !strings.Contains(q.CountSQL, "items_fts MATCH ?") {
		t.Errorf("count query missing MATCH clause: %s", q.CountSQL)
	}
	if !strings.Contains(q.PageSQL, "JOIN items i ON i.rowid = items_fts.rowid") {
		t.Errorf("page query missing join back to items: %s", q.PageSQL)
	}
	if len(q.CountArgs) != 1 || q.CountArgs[0] != "ubuntu" {
		t.Errorf("unexpected count args: %v", q.CountArgs)
	}
	if len(q.PageArgs) != 3 || q.PageArgs[1] != 20 || q.PageArgs[2] != 0 {
		t.Errorf("expected term, limit, offset in page args, got %v", q.PageArgs)
	}
}

func TestCompileSearchLike(t *testing.T) {
	q := CompileSearch(Selection{Term: "ubuntu", Limit: 20}, MatchLike)

	if strings.Contains(q.PageSQL, "items_fts") {
		t.Errorf("LIKE mode must not touch the FTS table: %s", q.PageSQL)
	}
	if !strings.Contains(q.PageSQL, "i.title LIKE ?") {
		t.Errorf("page query missing LIKE clause: %s", q.PageSQL)
	}
	if q.CountArgs[0] != "%ubuntu%" {
		t.Errorf("expected wildcarded term, got %v", q.CountArgs[0])
	}
}

func TestCompileSearchLikeEscapesWildcards(t *testing.T) {
	q := CompileSearch(Selection{Term: `50%_off\`, Limit: 20}, MatchLike)

	want := `%50\%\_off\\%`
	if q.CountArgs[0] != want {
		t.Errorf("escaped term = %v, want %v", q.CountArgs[0], want)
	}
}

func TestCompileSearchCategoryFilter(t *testing.T) {
	q := CompileSearch(Selection{
		Term:       "ubuntu",
		Categories: []string{"software_pc_iso", "ebooks"},
		Limit:      20,
	}, MatchFTS)

	if !strings.Contains(q.CountSQL, "i.cat IN (?,?)") {
		t.Errorf("count query missing IN clause: %s", q.CountSQL)
	}
	if len(q.CountArgs) != 3 {
		t.Errorf("expected term + 2 category args, got %v", q.CountArgs)
	}
	if q.CountArgs[1] != "software_pc_iso" || q.CountArgs[2] != "ebooks" {
		t.Errorf("category args out of order: %v", q.CountArgs)
	}
	// Page args carry the same predicate values plus the window.
	if len(q.PageArgs) != 5 {
		t.Errorf("expected 5 page args, got %v", q.PageArgs)
	}
}

func TestCompileSearchNoCategoryClauseWhenEmpty(t *testing.T) {
	q := CompileSearch(Selection{Term: "ubuntu", Limit: 20}, MatchFTS)
	if strings.Contains(q.CountSQL, "IN (") {
		t.Errorf("unexpected category clause: %s", q.CountSQL)
	}
}

func TestCompileSearchSortAllowList(t *testing.T) {
	tests := []struct {
		name    string
		sortCol string
		sortDir string
		want    string
	}{
		{"default", "title", "asc", "ORDER BY i.title ASC"},
		{"date desc", "date", "desc", "ORDER BY i.dt DESC"},
		{"size", "size", "asc", "ORDER BY i.size ASC"},
		{"direction case insensitive", "title", "DESC", "ORDER BY i.title DESC"},
		{"unknown column falls back to title", "rowid", "asc", "ORDER BY i.title ASC"},
		{"unknown direction falls back to asc", "date", "sideways", "ORDER BY i.dt ASC"},
		{"injection attempt in column", "title; DROP TABLE items--", "asc", "ORDER BY i.title ASC"},
		{"injection attempt in direction", "title", "asc; DROP TABLE items--", "ORDER BY i.title ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := CompileSearch(Selection{
				Term:    "x",
				SortCol: tt.sortCol,
				SortDir: tt.sortDir,
				Limit:   20,
			}, MatchFTS)
			if !strings.Contains(q.PageSQL, tt.want) {
				t.Errorf("page query = %s, want it to contain %q", q.PageSQL, tt.want)
			}
			if strings.Contains(q.PageSQL, "DROP") {
				t.Errorf("request-derived text leaked into query: %s", q.PageSQL)
			}
		})
	}
}

func TestCompileSearchCountHasNoWindow(t *testing.T) {
	q := CompileSearch(Selection{Term: "x", Limit: 20, Offset: 40}, MatchFTS)
	if strings.Contains(q.CountSQL, "LIMIT") || strings.Contains(q.CountSQL, "OFFSET") {
		t.Errorf("count query must not be windowed: %s", q.CountSQL)
	}
}

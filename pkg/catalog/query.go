package catalog

import (
	"strings"
)

// MatchMode selects how the search term is matched against titles. The two
// strategies share the same compiled query shape and are never mixed within
// one request.
type MatchMode string

const (
	// MatchFTS matches against the items_fts full-text index.
	MatchFTS MatchMode = "fts"
	// MatchLike matches the term as a substring of the raw title column.
	// No index required; useful when the catalog ships without items_fts.
	MatchLike MatchMode = "like"
)

// Valid reports whether m is a known match mode.
func (m MatchMode) Valid() bool {
	return m == MatchFTS || m == MatchLike
}

// Selection is a validated search selection ready for compilation. Term,
// Categories, Limit and Offset become bound parameters; SortCol and SortDir
// are mapped through closed allow-lists before touching the query text.
type Selection struct {
	Term       string
	Categories []string
	SortCol    string
	SortDir    string
	Limit      int
	Offset     int
}

// Queries holds the compiled count and page statements for one selection.
// Both share the same filter predicate; the count query carries no window so
// total_count stays exact regardless of pagination.
type Queries struct {
	CountSQL  string
	CountArgs []any
	PageSQL   string
	PageArgs  []any
}

// sortColumns is the only path from a request value into the ORDER BY
// clause. Anything not listed falls back to the title column.
var sortColumns = map[string]string{
	"title": "i.title",
	"date":  "i.dt",
	"size":  "i.size",
}

const defaultSortColumn = "i.title"

// CompileSearch builds the count and page queries for a selection. All
// request-derived data values are bound parameters; only the allow-listed
// sort column and direction tokens are substituted into the query text.
func CompileSearch(sel Selection, mode MatchMode) Queries {
	var from, match string
	var args []any

	if mode == MatchLike {
		from = "FROM items i"
		match = `i.title LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(sel.Term)+"%")
	} else {
		from = "FROM items_fts JOIN items i ON i.rowid = items_fts.rowid"
		match = "items_fts MATCH ?"
		args = append(args, sel.Term)
	}

	where := " WHERE " + match
	if len(sel.Categories) > 0 {
		where += " AND i.cat IN (" + placeholders(len(sel.Categories)) + ")"
		for _, cat := range sel.Categories {
			args = append(args, cat)
		}
	}

	orderCol, ok := sortColumns[sel.SortCol]
	if !ok {
		orderCol = defaultSortColumn
	}
	orderDir := "ASC"
	if strings.EqualFold(sel.SortDir, "desc") {
		orderDir = "DESC"
	}

	countArgs := make([]any, len(args))
	copy(countArgs, args)

	pageArgs := append(args, sel.Limit, sel.Offset)

	return Queries{
		CountSQL:  "SELECT COUNT(*) " + from + where,
		CountArgs: countArgs,
		PageSQL: "SELECT i.title, i.cat, i.dt, i.size, i.hash " + from + where +
			" ORDER BY " + orderCol + " " + orderDir + " LIMIT ? OFFSET ?",
		PageArgs: pageArgs,
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// escapeLike neutralizes LIKE wildcards in the term so the substring match
// treats it literally. The escape character must match the ESCAPE clause.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

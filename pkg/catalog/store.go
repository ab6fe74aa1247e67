// Package catalog provides read access to the media catalog database: the
// items table populated by an external ingestion process, the items_fts
// full-text index derived from it, and the compiler that turns a validated
// search selection into bound-parameter SQL.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/mediadex/mediadex/pkg/log"
)

// Record is one catalog row as stored. Timestamp is the raw ISO-8601 string
// from the dt column; Size and Hash may be absent.
type Record struct {
	Title     string
	Category  string
	Timestamp string
	Size      *int64
	Hash      string
}

// Store wraps the shared database handle. It is opened once per process and
// safe for concurrent readers; EnsureIndex is the only write it ever issues.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = memory",
		"PRAGMA mmap_size = 268435456", // 256MB mmap
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	return &Store{
		db:     db,
		logger: log.ForService("catalog"),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureIndex makes the items_fts full-text index exist and match the items
// table. It creates the virtual table if missing, bulk-loads it when empty,
// and rebuilds it when the row counts disagree. Idempotent; must complete
// before the service accepts traffic, and any error is fatal to startup.
func (s *Store) EnsureIndex(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE VIRTUAL TABLE IF NOT EXISTS items_fts USING fts5(
			title,
			content='items',
			content_rowid='rowid')`)
	if err != nil {
		return fmt.Errorf("creating items_fts: %w", err)
	}

	var items, indexed int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&items); err != nil {
		return fmt.Errorf("counting items: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items_fts").Scan(&indexed); err != nil {
		return fmt.Errorf("counting items_fts rows: %w", err)
	}

	switch {
	case indexed == items:
		s.logger.Debugf("items_fts in sync (%d rows)", indexed)
		return nil
	case indexed == 0:
		s.logger.Infof("items_fts empty, indexing %d titles", items)
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO items_fts(rowid, title)
			SELECT rowid, title FROM items`)
		if err != nil {
			return fmt.Errorf("populating items_fts: %w", err)
		}
	default:
		// Partial index, likely from an interrupted build or a replaced
		// catalog file. Rebuild from the content table.
		s.logger.Warnf("items_fts has %d rows but items has %d, rebuilding", indexed, items)
		_, err = s.db.ExecContext(ctx, "INSERT INTO items_fts(items_fts) VALUES('rebuild')")
		if err != nil {
			return fmt.Errorf("rebuilding items_fts: %w", err)
		}
	}

	s.logger.Infof("items_fts index ready")
	return nil
}

// CountMatches runs the compiled count query.
func (s *Store) CountMatches(ctx context.Context, q Queries) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, q.CountSQL, q.CountArgs...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting matches: %w", err)
	}
	return count, nil
}

// FetchPage runs the compiled page query and scans the result rows.
func (s *Store) FetchPage(ctx context.Context, q Queries) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q.PageSQL, q.PageArgs...)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	var records []Record
	for rows.Next() {
		var title, cat string
		var dt, hash sql.NullString
		var size sql.NullInt64

		if err := rows.Scan(&title, &cat, &dt, &size, &hash); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		rec := Record{
			Title:     title,
			Category:  cat,
			Timestamp: dt.String,
			Hash:      hash.String,
		}
		if size.Valid {
			v := size.Int64
			rec.Size = &v
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Stats holds catalog statistics for the stats command.
type Stats struct {
	TotalItems  int
	IndexedRows int
	ByCategory  map[string]int
}

func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByCategory: make(map[string]int)}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&stats.TotalItems); err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}

	// The index may not exist yet when stats runs before serve ever did.
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items_fts").Scan(&stats.IndexedRows)
	if err != nil {
		stats.IndexedRows = 0
	}

	rows, err := s.db.QueryContext(ctx, "SELECT cat, COUNT(*) FROM items GROUP BY cat")
	if err != nil {
		return nil, fmt.Errorf("counting items per category: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	for rows.Next() {
		var cat string
		var count int
		if err := rows.Scan(&cat, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		stats.ByCategory[cat] = count
	}

	return stats, rows.Err()
}

// Package sqlite provides a SQLite-backed implementation of the
// storage.Journal interface using Go's standard database/sql package.
//
// The journal lives in an in-memory SQLite database: it is gone when the
// process exits, like every registry. Only in-memory DSNs are accepted.
//
// IN-MEMORY SQLITE AND THE CONNECTION POOL:
// ──────────────────────────────────────────
// Every new connection to ":memory:" opens a brand-new, empty database.
// database/sql keeps a pool of connections, so without care a query could
// land on a connection that never saw the CREATE TABLE. We cap the pool at
// one connection so every statement sees the same database.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aanand-mishra/college-console/internal/storage"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// MemoryDSN is the default data source name.
const MemoryDSN = ":memory:"

// SQLite is the concrete implementation of storage.Journal.
type SQLite struct {
	Db *sql.DB
}

// New opens the in-memory journal database at dsn and creates the
// journal table.
func New(dsn string) (*SQLite, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	if !IsMemoryDSN(dsn) {
		return nil, fmt.Errorf("sqlite.New: %q is not an in-memory database", dsn)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	// Keep the single connection forever; closing it would drop the data.
	db.SetConnMaxLifetime(0)
	db.SetMaxIdleConns(1)

	// Schema:
	//   id        — auto-incremented primary key, also the ordering key
	//   kind      — entity kind ("student", "course", "faculty")
	//   action    — added | removed | rejected
	//   record_id — registry id of the record (0 for rejected drafts)
	//   detail    — free text, e.g. the rejection message
	//   at        — RFC 3339 timestamp with nanoseconds
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS journal (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			kind      TEXT    NOT NULL,
			action    TEXT    NOT NULL,
			record_id INTEGER NOT NULL DEFAULT 0,
			detail    TEXT    NOT NULL DEFAULT '',
			at        TEXT    NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database, either
// ":memory:" or a URI with mode=memory.
func IsMemoryDSN(dsn string) bool {
	if dsn == MemoryDSN {
		return true
	}
	return strings.HasPrefix(dsn, "file:") && strings.Contains(dsn, "mode=memory")
}

// Record inserts a new journal row and returns its ID.
func (s *SQLite) Record(ctx context.Context, e storage.Entry) (int64, error) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO journal (kind, action, record_id, detail, at) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("Record: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, e.Kind, string(e.Action), e.RecordID, e.Detail,
		e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("Record: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("Record: last insert id: %w", err)
	}

	return lastID, nil
}

// Entries returns journal rows newest first.
func (s *SQLite) Entries(ctx context.Context, kind string, limit int) ([]storage.Entry, error) {
	if limit <= 0 {
		limit = storage.DefaultLimit
	}

	// "? = ''" lets one statement serve both the filtered and the
	// unfiltered listing.
	stmt, err := s.Db.PrepareContext(ctx, `
		SELECT id, kind, action, record_id, detail, at
		FROM journal
		WHERE ? = '' OR kind = ?
		ORDER BY id DESC
		LIMIT ?
	`)
	if err != nil {
		return nil, fmt.Errorf("Entries: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("Entries: query: %w", err)
	}
	defer rows.Close()

	entries := make([]storage.Entry, 0)

	for rows.Next() {
		var (
			e      storage.Entry
			action string
			at     string
		)
		if err := rows.Scan(&e.ID, &e.Kind, &action, &e.RecordID, &e.Detail, &at); err != nil {
			return nil, fmt.Errorf("Entries: scan row: %w", err)
		}
		e.Action = storage.Action(action)
		e.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("Entries: parse time of row %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Entries: rows iteration: %w", err)
	}

	return entries, nil
}

// Close closes the database, discarding the journal.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

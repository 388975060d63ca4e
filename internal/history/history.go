// Package history keeps a local record of finished crawls in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one finished crawl.
type Entry struct {
	ID        uuid.UUID
	URL       string
	Author    string
	Title     string
	Chapters  int
	Format    string
	Output    string
	CreatedAt time.Time
}

// Store is a history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawls (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		author TEXT NOT NULL,
		title TEXT NOT NULL,
		chapters INTEGER NOT NULL,
		format TEXT NOT NULL,
		output TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS crawls_created_at ON crawls (created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores e. A zero ID or CreatedAt is filled in. The stored entry is
// returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	query := `INSERT INTO crawls (id, url, author, title, chapters, format, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		e.ID.String(), e.URL, e.Author, e.Title, e.Chapters, e.Format, e.Output, e.CreatedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record crawl: %w", err)
	}

	return e, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, url, author, title, chapters, format, output, created_at
		FROM crawls ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			id      string
			created int64
		)
		if err := rows.Scan(&id, &e.URL, &e.Author, &e.Title, &e.Chapters, &e.Format, &e.Output, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("bad history id %q: %w", id, err)
		}
		e.CreatedAt = time.Unix(0, created)

		out = append(out, e)
	}

	return out, rows.Err()
}

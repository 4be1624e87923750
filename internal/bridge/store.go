// Package bridge provides SQLite-backed access to the genre bridge table,
// the mapping between book genre names and movie catalog genre IDs.
package bridge

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no bridge row matches a lookup.
var ErrNotFound = errors.New("bridge: no mapping found")

// Mapping is one row of the genre bridge table.
type Mapping struct {
	BookGenreName string
	MovieGenreID  int
}

// Store provides read access to the genre bridge table, plus the write
// operations used by the administrative seed tool.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the bridge database at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// MovieGenreID returns the movie genre ID mapped to the given book genre
// name. When multiple rows match, the first in storage order wins.
func (s *Store) MovieGenreID(ctx context.Context, bookGenreName string) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx,
		`SELECT movie_genre_id FROM genre_map WHERE book_genre_name = ? ORDER BY rowid LIMIT 1`,
		bookGenreName,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query movie genre id: %w", err)
	}
	return id, nil
}

// BookGenreName returns the book genre name mapped to the given movie genre
// ID. When multiple rows match, the first in storage order wins.
func (s *Store) BookGenreName(ctx context.Context, movieGenreID int) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT book_genre_name FROM genre_map WHERE movie_genre_id = ? ORDER BY rowid LIMIT 1`,
		movieGenreID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query book genre name: %w", err)
	}
	return name, nil
}

// ListBookGenres returns all distinct book genre names in the table, sorted.
func (s *Store) ListBookGenres(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT book_genre_name FROM genre_map ORDER BY book_genre_name`)
	if err != nil {
		return nil, fmt.Errorf("query book genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		genres = append(genres, name)
	}
	return genres, rows.Err()
}

// PutMapping inserts one bridge row. Administrative use only; request
// traffic never writes to the table.
func (s *Store) PutMapping(ctx context.Context, m Mapping) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO genre_map (book_genre_name, movie_genre_id) VALUES (?, ?)`,
		m.BookGenreName, m.MovieGenreID,
	)
	if err != nil {
		return fmt.Errorf("insert mapping: %w", err)
	}
	return nil
}

// Reset deletes every row, allowing an idempotent reseed.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM genre_map`); err != nil {
		return fmt.Errorf("reset genre map: %w", err)
	}
	return nil
}

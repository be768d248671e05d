// Package sqlite provides a SQLite-backed store.Store.
//
// It keeps the same observable behavior as the in-memory store: records are
// returned in insertion order, ids are not required to be unique and deletes
// never cascade.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/graph-gophers/gamereviews/internal/store"
	"github.com/graph-gophers/gamereviews/internal/store/sqlite/migrations"
)

// Store persists authors, games and reviews in SQLite.
type Store struct {
	db    *sql.DB
	newID store.IDGenerator
}

var _ store.Store = (*Store)(nil)

// Open opens the database at path, applying migrations. A nil gen defaults
// to store.NewKSUID.
func Open(ctx context.Context, path string, gen store.IDGenerator) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if gen == nil {
		gen = store.NewKSUID
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, newID: gen}, nil
}

func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)
	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed loads ds when the database holds no records yet. It reports whether
// anything was written.
func (s *Store) Seed(ctx context.Context, ds store.Dataset) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var n int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM authors) + (SELECT COUNT(*) FROM games) + (SELECT COUNT(*) FROM reviews)`,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count records: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	for _, a := range ds.Authors {
		if err := insertAuthor(ctx, tx, a); err != nil {
			return false, err
		}
	}
	for _, g := range ds.Games {
		if err := insertGame(ctx, tx, g); err != nil {
			return false, err
		}
	}
	for _, r := range ds.Reviews {
		if err := insertReview(ctx, tx, r); err != nil {
			return false, err
		}
	}
	return true, tx.Commit()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

const (
	authorColumns = `id, name, verified`
	gameColumns   = `id, title, platform`
	reviewColumns = `id, rating, content, author_id, game_id`
)

func insertAuthor(ctx context.Context, db execer, a store.Author) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO authors (`+authorColumns+`) VALUES (?, ?, ?)`,
		a.ID, a.Name, a.Verified,
	)
	if err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func insertGame(ctx context.Context, db execer, g store.Game) error {
	platform, err := encodePlatform(g.Platform)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO games (`+gameColumns+`) VALUES (?, ?, ?)`,
		g.ID, g.Title, platform,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func insertReview(ctx context.Context, db execer, r store.Review) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO reviews (`+reviewColumns+`) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Rating, r.Content, r.AuthorID, r.GameID,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func scanAuthor(row scanner) (store.Author, error) {
	var a store.Author
	err := row.Scan(&a.ID, &a.Name, &a.Verified)
	return a, err
}

func scanGame(row scanner) (store.Game, error) {
	var (
		g        store.Game
		platform string
	)
	if err := row.Scan(&g.ID, &g.Title, &platform); err != nil {
		return store.Game{}, err
	}
	if err := json.Unmarshal([]byte(platform), &g.Platform); err != nil {
		return store.Game{}, fmt.Errorf("decode platform of game %q: %w", g.ID, err)
	}
	return g, nil
}

func scanReview(row scanner) (store.Review, error) {
	var r store.Review
	err := row.Scan(&r.ID, &r.Rating, &r.Content, &r.AuthorID, &r.GameID)
	return r, err
}

func encodePlatform(p []string) (string, error) {
	if p == nil {
		p = []string{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode platform: %w", err)
	}
	return string(b), nil
}

// list runs query and scans every row. The result is never nil.
func list[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// first returns the earliest inserted row of query, or nil.
func first[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Store) Authors(ctx context.Context) ([]store.Author, error) {
	out, err := list(ctx, s.db, scanAuthor, `SELECT `+authorColumns+` FROM authors ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return out, nil
}

func (s *Store) Author(ctx context.Context, id string) (*store.Author, error) {
	a, err := first(ctx, s.db, scanAuthor, `SELECT `+authorColumns+` FROM authors WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if err != nil {
		return nil, fmt.Errorf("get author %q: %w", id, err)
	}
	return a, nil
}

func (s *Store) AddAuthor(ctx context.Context, in store.AuthorInput) (store.Author, error) {
	a := store.Author{ID: s.newID(), Name: in.Name, Verified: in.Verified}
	if err := insertAuthor(ctx, s.db, a); err != nil {
		return store.Author{}, err
	}
	return a, nil
}

func (s *Store) DeleteAuthor(ctx context.Context, id string) ([]store.Author, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete author %q: %w", id, err)
	}
	return s.Authors(ctx)
}

func (s *Store) Games(ctx context.Context) ([]store.Game, error) {
	out, err := list(ctx, s.db, scanGame, `SELECT `+gameColumns+` FROM games ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

func (s *Store) Game(ctx context.Context, id string) (*store.Game, error) {
	g, err := first(ctx, s.db, scanGame, `SELECT `+gameColumns+` FROM games WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if err != nil {
		return nil, fmt.Errorf("get game %q: %w", id, err)
	}
	return g, nil
}

func (s *Store) AddGame(ctx context.Context, in store.GameInput) (store.Game, error) {
	g := store.Game{ID: s.newID(), Title: in.Title, Platform: in.Platform}.Clone()
	if err := insertGame(ctx, s.db, g); err != nil {
		return store.Game{}, err
	}
	return g, nil
}

// UpdateGame overlays edits on the earliest game with the given id.
func (s *Store) UpdateGame(ctx context.Context, id string, edits store.GameEdits) (store.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Game{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT seq, `+gameColumns+` FROM games WHERE id = ? ORDER BY seq LIMIT 1`, id)
	var seq int64
	g, err := scanGame(scanFunc(func(dest ...any) error {
		return row.Scan(append([]any{&seq}, dest...)...)
	}))
	if errors.Is(err, sql.ErrNoRows) {
		return store.Game{}, fmt.Errorf("update game %q: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return store.Game{}, fmt.Errorf("update game %q: %w", id, err)
	}

	g = edits.Apply(g)
	platform, err := encodePlatform(g.Platform)
	if err != nil {
		return store.Game{}, err
	}
	_, err = tx.ExecContext(ctx, `UPDATE games SET title = ?, platform = ? WHERE seq = ?`, g.Title, platform, seq)
	if err != nil {
		return store.Game{}, fmt.Errorf("update game %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return store.Game{}, err
	}
	return g, nil
}

type scanFunc func(dest ...any) error

func (f scanFunc) Scan(dest ...any) error { return f(dest...) }

func (s *Store) DeleteGame(ctx context.Context, id string) ([]store.Game, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete game %q: %w", id, err)
	}
	return s.Games(ctx)
}

func (s *Store) Reviews(ctx context.Context) ([]store.Review, error) {
	out, err := list(ctx, s.db, scanReview, `SELECT `+reviewColumns+` FROM reviews ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

func (s *Store) Review(ctx context.Context, id string) (*store.Review, error) {
	r, err := first(ctx, s.db, scanReview, `SELECT `+reviewColumns+` FROM reviews WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if err != nil {
		return nil, fmt.Errorf("get review %q: %w", id, err)
	}
	return r, nil
}

func (s *Store) ReviewsByGame(ctx context.Context, gameID string) ([]store.Review, error) {
	out, err := list(ctx, s.db, scanReview, `SELECT `+reviewColumns+` FROM reviews WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of game %q: %w", gameID, err)
	}
	return out, nil
}

func (s *Store) ReviewsByAuthor(ctx context.Context, authorID string) ([]store.Review, error) {
	out, err := list(ctx, s.db, scanReview, `SELECT `+reviewColumns+` FROM reviews WHERE author_id = ? ORDER BY seq`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list reviews of author %q: %w", authorID, err)
	}
	return out, nil
}

func (s *Store) AddReview(ctx context.Context, in store.ReviewInput, authorID, gameID string) (store.Review, error) {
	r := store.Review{
		ID:       s.newID(),
		Rating:   in.Rating,
		Content:  in.Content,
		AuthorID: authorID,
		GameID:   gameID,
	}
	if err := insertReview(ctx, s.db, r); err != nil {
		return store.Review{}, err
	}
	return r, nil
}

func (s *Store) DeleteReview(ctx context.Context, id string) ([]store.Review, error) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete review %q: %w", id, err)
	}
	return s.Reviews(ctx)
}

// Package cache stores inferred format trees in SQLite, keyed by a digest of
// the samples they were inferred from.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	log "github.com/sirupsen/logrus"

	ft "github.com/shibukawa/ojformat/formattree"
)

// Sentinel errors
var (
	// ErrOpen is returned when the cache database cannot be opened or migrated.
	ErrOpen = errors.New("failed to open cache")
	// ErrCorrupted is returned when a stored tree cannot be decoded.
	ErrCorrupted = errors.New("corrupted cache entry")
)

const schema = `CREATE TABLE IF NOT EXISTS format_trees (
	id TEXT PRIMARY KEY,
	key TEXT NOT NULL UNIQUE,
	tree TEXT,
	created_at TIMESTAMP NOT NULL
)`

// Entry is one cached search result. Tree is nil when the search found
// nothing, so failures are not repeated either.
type Entry struct {
	ID        uuid.UUID
	Key       string
	Tree      ft.Node
	CreatedAt time.Time
}

// Store is a SQLite backed cache.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key digests a search mode and its inputs. Parts are length-prefixed so
// different splits never collide.
func Key(mode string, parts ...string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s", len(mode), mode)

	for _, p := range parts {
		fmt.Fprintf(h, "%d:%s", len(p), p)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Get looks up key.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		id        string
		tree      sql.NullString
		createdAt time.Time
	)

	row := s.db.QueryRowContext(ctx, `SELECT id, tree, created_at FROM format_trees WHERE key = ?`, key)
	if err := row.Scan(&id, &tree, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}

		return Entry{}, false, err
	}

	entry := Entry{Key: key, CreatedAt: createdAt}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: id %q: %w", ErrCorrupted, id, err)
	}

	entry.ID = parsed

	if tree.Valid {
		var doc ft.Document
		if err := json.Unmarshal([]byte(tree.String), &doc); err != nil {
			return Entry{}, false, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}

		node, err := ft.Decode(&doc)
		if err != nil {
			return Entry{}, false, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}

		entry.Tree = node
	}

	log.WithField("key", key).Debug("cache hit")

	return entry, true, nil
}

// Put stores tree under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, tree ft.Node) (uuid.UUID, error) {
	var encoded sql.NullString

	if tree != nil {
		data, err := json.Marshal(ft.Encode(tree))
		if err != nil {
			return uuid.Nil, err
		}

		encoded = sql.NullString{String: string(data), Valid: true}
	}

	id := uuid.New()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO format_trees (id, key, tree, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET id = excluded.id, tree = excluded.tree, created_at = excluded.created_at`,
		id.String(), key, encoded, time.Now().UTC())
	if err != nil {
		return uuid.Nil, err
	}

	return id, nil
}

// Len counts the stored entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM format_trees`).Scan(&n)

	return n, err
}

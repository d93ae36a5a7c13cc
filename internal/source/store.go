package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/phanxgames/famexplorer"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	position           INTEGER NOT NULL,
	handle             TEXT PRIMARY KEY,
	handle_lower       TEXT NOT NULL,
	name               TEXT NOT NULL,
	name_lower         TEXT NOT NULL,
	profile_image_url  TEXT NOT NULL,
	followers_count    INTEGER NOT NULL DEFAULT 0,
	fam_follower_count INTEGER NOT NULL DEFAULT 0,
	bio                TEXT NOT NULL DEFAULT '',
	links              TEXT NOT NULL DEFAULT '[]',
	profile_url        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS profiles_position ON profiles(position);
`

const selectColumns = `handle, name, profile_image_url, followers_count,
	fam_follower_count, bio, links, profile_url`

// Store is a SQLite-backed profile collection. Row order is the collection
// order, so tiles keep their positions across reloads.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the store at path. ":memory:" gives a
// private in-memory store.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Import replaces the stored collection with profiles, in one transaction.
// Profiles with an empty handle are skipped; a later duplicate handle
// replaces the earlier one. It returns the number of rows written.
func (s *Store) Import(ctx context.Context, profiles []famexplorer.Profile) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profiles"); err != nil {
		return 0, fmt.Errorf("failed to clear profiles: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO profiles (
		position, handle, handle_lower, name, name_lower, profile_image_url,
		followers_count, fam_follower_count, bio, links, profile_url
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	n := 0
	for i, p := range profiles {
		if p.Handle == "" {
			continue
		}
		links, err := json.Marshal(p.Links)
		if err != nil {
			return 0, fmt.Errorf("encode links for %s: %w", p.Handle, err)
		}
		if p.Links == nil {
			links = []byte("[]")
		}
		if _, err := stmt.ExecContext(ctx, i, p.Handle, strings.ToLower(p.Handle),
			p.Name, strings.ToLower(p.Name), p.ProfileImageURL, p.FollowersCount,
			p.FamFollowerCount, p.Bio, string(links), p.ProfileURL); err != nil {
			return 0, fmt.Errorf("insert %s: %w", p.Handle, err)
		}
		n++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// Count returns the number of stored profiles.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&n)
	return n, err
}

// List returns every profile in collection order.
func (s *Store) List(ctx context.Context) ([]famexplorer.Profile, error) {
	return s.query(ctx, "SELECT "+selectColumns+" FROM profiles ORDER BY position")
}

// Search returns the profiles whose name or handle contains the normalized
// query, in collection order. It matches famexplorer.Filter.
func (s *Store) Search(ctx context.Context, query string) ([]famexplorer.Profile, error) {
	q := famexplorer.NormalizeQuery(query)
	if q == "" {
		return s.List(ctx)
	}
	return s.query(ctx, "SELECT "+selectColumns+` FROM profiles
		WHERE instr(name_lower, ?) > 0 OR instr(handle_lower, ?) > 0
		ORDER BY position`, q, q)
}

// Get returns the profile with the given handle, compared case-insensitively.
func (s *Store) Get(ctx context.Context, handle string) (famexplorer.Profile, bool, error) {
	rows, err := s.query(ctx, "SELECT "+selectColumns+" FROM profiles WHERE handle_lower = ? LIMIT 1",
		strings.ToLower(handle))
	if err != nil || len(rows) == 0 {
		return famexplorer.Profile{}, false, err
	}
	return rows[0], true, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]famexplorer.Profile, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	profiles := []famexplorer.Profile{}
	for rows.Next() {
		var p famexplorer.Profile
		var links string
		if err := rows.Scan(&p.Handle, &p.Name, &p.ProfileImageURL, &p.FollowersCount,
			&p.FamFollowerCount, &p.Bio, &links, &p.ProfileURL); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(links), &p.Links); err != nil {
			return nil, fmt.Errorf("decode links for %s: %w", p.Handle, err)
		}
		if len(p.Links) == 0 {
			p.Links = nil
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

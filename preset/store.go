// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preset

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no preset exists for an id.
var ErrNotFound = errors.New("preset: not found")

// Preset is a named, persisted parameter bundle.
type Preset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Params    Params    `json:"params"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS presets (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    params     TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_presets_name ON presets(name);
`

// Store persists presets in a sqlite database. Safe for concurrent use;
// database/sql serializes access.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the preset database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("preset: create store directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("preset: open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: connect store: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preset: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts or updates a preset. An empty ID gets a fresh uuid and
// CreatedAt; updates keep CreatedAt and refresh UpdatedAt. The stored
// preset is returned.
func (s *Store) Save(p Preset) (Preset, error) {
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	} else if p.CreatedAt.IsZero() {
		if existing, err := s.Get(p.ID); err == nil {
			p.CreatedAt = existing.CreatedAt
		} else {
			p.CreatedAt = now
		}
	}
	p.UpdatedAt = now

	params, err := json.Marshal(p.Params)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: encode params: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO presets (id, name, params, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			params = excluded.params,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, string(params), p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano())
	if err != nil {
		return Preset{}, fmt.Errorf("preset: save %q: %w", p.Name, err)
	}
	return p, nil
}

// Get returns the preset with the given id, or ErrNotFound.
func (s *Store) Get(id string) (Preset, error) {
	row := s.db.QueryRow(
		"SELECT id, name, params, created_at, updated_at FROM presets WHERE id = ?", id)
	p, err := scanPreset(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("preset: id %q: %w", id, ErrNotFound)
	}
	return p, err
}

// List returns every preset ordered by name.
func (s *Store) List() ([]Preset, error) {
	rows, err := s.db.Query(
		"SELECT id, name, params, created_at, updated_at FROM presets ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("preset: list: %w", err)
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a preset. Deleting a missing id is a no-op.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM presets WHERE id = ?", id); err != nil {
		return fmt.Errorf("preset: delete %q: %w", id, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanPreset(scan func(...any) error) (Preset, error) {
	var p Preset
	var params string
	var created, updated int64
	if err := scan(&p.ID, &p.Name, &params, &created, &updated); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal([]byte(params), &p.Params); err != nil {
		return Preset{}, fmt.Errorf("preset: decode params for %q: %w", p.ID, err)
	}
	p.CreatedAt = time.Unix(0, created).UTC()
	p.UpdatedAt = time.Unix(0, updated).UTC()
	return p, nil
}

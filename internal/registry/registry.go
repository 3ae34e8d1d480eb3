// Package registry maintains the SQLite player search index, rebuilt from
// the monthly stats files.
package registry

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB for the player registry.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the registry database at the given path and
// applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Entry is one indexed player.
type Entry struct {
	ID        string
	Name      string
	Type      string // "batter", "pitcher", or "two-way"
	Team      string
	Level     string
	LastYear  int
	LastMonth int
}

// Upsert inserts or replaces a batch of entries in one transaction.
func (db *DB) Upsert(entries []Entry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO players (id, name, type, team, level, last_year, last_month)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.ID, e.Name, e.Type, e.Team, e.Level, e.LastYear, e.LastMonth); err != nil {
			return fmt.Errorf("upsert player %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// SearchByName returns entries whose name contains the query,
// case-insensitively, up to limit rows.
func (db *DB) SearchByName(query string, limit int) ([]Entry, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, type, COALESCE(team, ''), COALESCE(level, ''), last_year, last_month
		FROM players
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY name
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.Team, &e.Level, &e.LastYear, &e.LastMonth); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByID returns one entry, or (nil, nil) if the id is not indexed.
func (db *DB) GetByID(id string) (*Entry, error) {
	var e Entry
	err := db.conn.QueryRow(`
		SELECT id, name, type, COALESCE(team, ''), COALESCE(level, ''), last_year, last_month
		FROM players WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.Type, &e.Team, &e.Level, &e.LastYear, &e.LastMonth)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player %s: %w", id, err)
	}
	return &e, nil
}

// Count returns the number of indexed players.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

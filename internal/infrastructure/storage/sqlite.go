package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"svw.info/numble/internal/domain"
)

// SQLite stores progress in a single table, upserting by name.
type SQLite struct{ db *sql.DB }

const schema = `CREATE TABLE IF NOT EXISTS progress (
	name       TEXT PRIMARY KEY,
	level      INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, p domain.Progress) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("invalid progress: missing name")
	}
	if p.UpdatedAt == 0 {
		p.UpdatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (name, level, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`,
		p.Name, p.Level, p.UpdatedAt)
	return err
}

func (s *SQLite) Load(ctx context.Context, name string) (domain.Progress, error) {
	var p domain.Progress
	err := s.db.QueryRowContext(ctx,
		`SELECT name, level, updated_at FROM progress WHERE name = ?`, name).
		Scan(&p.Name, &p.Level, &p.UpdatedAt)
	if err != nil {
		return domain.Progress{}, err
	}
	return p, nil
}

func (s *SQLite) List(ctx context.Context) ([]domain.Progress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, level, updated_at FROM progress ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Progress
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(&p.Name, &p.Level, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

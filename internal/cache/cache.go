// Package cache keeps fetched contribution calendars in SQLite so repeated
// renders do not hit the GitHub API.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/san-kum/gravlens/internal/grid"
)

const schema = `
CREATE TABLE IF NOT EXISTS contributions (
	username   TEXT    NOT NULL,
	date       TEXT    NOT NULL,
	count      INTEGER NOT NULL,
	level      INTEGER NOT NULL,
	fetched_at INTEGER NOT NULL,
	PRIMARY KEY (username, date)
);
CREATE INDEX IF NOT EXISTS idx_contributions_user ON contributions(username);
`

type Cache struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open creates or opens the cache database at path.
func Open(path string, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	logger.Debug("cache opened", zap.String("path", path))
	return &Cache{db: db, logger: logger, now: time.Now}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Put replaces the cached calendar of user.
func (c *Cache) Put(ctx context.Context, user string, days []grid.Day) error {
	if user == "" {
		return ErrEmptyUser
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM contributions WHERE username = ?`, user); err != nil {
		return fmt.Errorf("clear %s: %w", user, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contributions (username, date, count, level, fetched_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	fetched := c.now().Unix()
	for _, d := range days {
		if _, err := stmt.ExecContext(ctx, user, d.Date, d.Count, d.Level, fetched); err != nil {
			return fmt.Errorf("insert %s %s: %w", user, d.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	c.logger.Debug("cached contributions", zap.String("user", user), zap.Int("days", len(days)))
	return nil
}

// Get returns the cached calendar of user in date order. ok is false when
// nothing is cached or the entry is older than maxAge; maxAge <= 0 accepts
// any age.
func (c *Cache) Get(ctx context.Context, user string, maxAge time.Duration) (days []grid.Day, ok bool, err error) {
	var oldest sql.NullInt64
	err = c.db.QueryRowContext(ctx,
		`SELECT MIN(fetched_at) FROM contributions WHERE username = ?`, user).Scan(&oldest)
	if err != nil {
		return nil, false, fmt.Errorf("query %s: %w", user, err)
	}
	if !oldest.Valid {
		return nil, false, nil
	}
	if maxAge > 0 && c.now().Sub(time.Unix(oldest.Int64, 0)) > maxAge {
		c.logger.Debug("cache entry expired", zap.String("user", user))
		return nil, false, nil
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT date, count, level FROM contributions WHERE username = ? ORDER BY date`, user)
	if err != nil {
		return nil, false, fmt.Errorf("query %s: %w", user, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d grid.Day
		if err := rows.Scan(&d.Date, &d.Count, &d.Level); err != nil {
			return nil, false, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return days, true, nil
}

// Delete drops the cached calendar of user.
func (c *Cache) Delete(ctx context.Context, user string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM contributions WHERE username = ?`, user)
	return err
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Check is one recorded evaluation: an expansion, an identity test or a
// geometric predicate.
type Check struct {
	ID        string
	Kind      string
	Input     string
	Result    string
	Holds     bool
	CreatedAt int64
}

// CheckRepo handles persistence for Check entries.
type CheckRepo struct{}

// Record inserts a check. An empty ID is filled with a fresh UUID and a zero
// CreatedAt with the current Unix time; the stored values are returned.
func (r *CheckRepo) Record(ctx context.Context, db *sql.DB, c Check) (Check, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}
	const q = `INSERT INTO checks (id, kind, input, result, holds, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, q,
		c.ID,
		c.Kind,
		c.Input,
		c.Result,
		c.Holds,
		c.CreatedAt,
	)
	if err != nil {
		return Check{}, fmt.Errorf("record check: %w", err)
	}
	return c, nil
}

// List returns the most recent checks, newest first. An empty kind matches
// every kind; limit <= 0 means no limit.
func (r *CheckRepo) List(ctx context.Context, db *sql.DB, kind string, limit int) ([]Check, error) {
	if limit <= 0 {
		limit = -1
	}
	const q = `SELECT id, kind, input, result, holds, created_at
FROM checks
WHERE (? = '' OR kind = ?)
ORDER BY created_at DESC, rowid DESC
LIMIT ?`

	rows, err := db.QueryContext(ctx, q, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var c Check
		if err := rows.Scan(&c.ID, &c.Kind, &c.Input, &c.Result, &c.Holds, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// Clear deletes every recorded check and reports how many were removed.
func (r *CheckRepo) Clear(ctx context.Context, db *sql.DB) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM checks`)
	if err != nil {
		return 0, fmt.Errorf("clear checks: %w", err)
	}
	return res.RowsAffected()
}

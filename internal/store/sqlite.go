package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/vlkhvn/nearby-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// UpsertUser inserts a user or overwrites name and location of an existing
// row. The reminder time survives location updates.
func (r *SQLiteRepo) UpsertUser(ctx context.Context, chatID int64, name string, lat, lon float64) error {
	now := time.Now().UTC().Unix()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (chat_id, name, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			name      = excluded.name,
			latitude  = excluded.latitude,
			longitude = excluded.longitude`,
		chatID, name, lat, lon, now,
	)
	return err
}

// GetUser returns a user's record by chatID or ErrUserNotFound.
func (r *SQLiteRepo) GetUser(ctx context.Context, chatID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, name, latitude, longitude, reminder_time, created_at
		FROM users
		WHERE chat_id = ?`,
		chatID,
	)
	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns every registered user.
func (r *SQLiteRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, name, latitude, longitude, reminder_time, created_at
		FROM users`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ListWithReminder returns the (chat, time) pairs of users with a reminder set.
func (r *SQLiteRepo) ListWithReminder(ctx context.Context) ([]domain.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT chat_id, reminder_time
		FROM users
		WHERE reminder_time IS NOT NULL`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Reminder
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(&rem.ChatID, &rem.HHMM); err != nil {
			return nil, err
		}
		res = append(res, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// SetReminderTime updates the reminder time of an existing user only.
func (r *SQLiteRepo) SetReminderTime(ctx context.Context, chatID int64, hhmm string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET reminder_time = ?
		WHERE chat_id = ?`,
		hhmm, chatID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(scan func(dest ...any) error) (*domain.User, error) {
	var (
		chatID    int64
		name      string
		lat, lon  float64
		remNS     sql.NullString
		createdAt int64
	)
	if err := scan(&chatID, &name, &lat, &lon, &remNS, &createdAt); err != nil {
		return nil, err
	}
	return &domain.User{
		ChatID:       chatID,
		Name:         name,
		Latitude:     lat,
		Longitude:    lon,
		ReminderHHMM: remNS.String,
		CreatedAt:    time.Unix(createdAt, 0).UTC(),
	}, nil
}

package store

import (
	"context"
	"errors"

	"github.com/vlkhvn/nearby-bot/internal/domain"
)

// ErrUserNotFound is returned when an operation targets a chat that never
// shared a location.
var ErrUserNotFound = errors.New("user not found")

// Repo defines storage operations for the location registry.
type Repo interface {
	// UpsertUser inserts a user or overwrites name and location of an
	// existing one, keyed by chatID. The reminder time is left untouched
	// on update.
	UpsertUser(ctx context.Context, chatID int64, name string, lat, lon float64) error
	// GetUser returns a single user or ErrUserNotFound.
	GetUser(ctx context.Context, chatID int64) (*domain.User, error)
	// ListUsers returns a snapshot of every registered user. Order is not
	// significant.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// ListWithReminder returns the (chat, time) pairs with a reminder set.
	ListWithReminder(ctx context.Context) ([]domain.Reminder, error)
	// SetReminderTime overwrites the reminder time of an existing user,
	// or returns ErrUserNotFound. hhmm must already be validated.
	SetReminderTime(ctx context.Context, chatID int64, hhmm string) error
	Close() error
}

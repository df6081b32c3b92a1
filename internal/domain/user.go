package domain

import "time"

// User represents a registered chat participant and their last shared location.
type User struct {
	ChatID       int64
	Name         string
	Latitude     float64
	Longitude    float64
	ReminderHHMM string    // "HH:MM", empty when no reminder is set
	CreatedAt    time.Time // UTC
}

// Reminder is the (chat, time) pair the scheduler matches against the clock.
type Reminder struct {
	ChatID int64
	HHMM   string
}

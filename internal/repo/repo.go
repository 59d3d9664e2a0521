package repo

import (
	"context"
	"errors"
	"time"

	"github.com/milad/energymonitor/internal/domain"
)

var ErrNotFound = errors.New("reading not found")

// ReadingRepository provides access to a user's meter readings.
type ReadingRepository interface {
	// List returns readings of meterType (all types when empty) in ascending
	// time order, optionally filtered by [start, end).
	// The returned slice must be treated as read-only by callers.
	List(ctx context.Context, meterType domain.MeterType, startInclusive *time.Time, endExclusive *time.Time) ([]domain.MeterReading, error)
	// Add stores r and returns it with its assigned ID.
	Add(ctx context.Context, r domain.MeterReading) (domain.MeterReading, error)
	// Delete removes the reading with the given ID or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

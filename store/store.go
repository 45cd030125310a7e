// Package store defines the persistence interfaces consumed by the API and
// CLI layers. The engine itself never touches a store: records are loaded
// here and handed to the calculator as plain values.
package store

import (
	"context"
	"errors"

	"github.com/ponto/worktime-engine/worktime"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Store persists shifts and non-accounting days. List operations are scoped
// by user and period: shifts match on their start day, leaves on range
// overlap, so a leave straddling the period boundary is still returned.
type Store interface {
	SaveShift(ctx context.Context, s worktime.Shift) error
	GetShift(ctx context.Context, id string) (*worktime.Shift, error)
	DeleteShift(ctx context.Context, id string) error
	ListShifts(ctx context.Context, userID string, p worktime.Period) ([]worktime.Shift, error)

	SaveNonAccountingDay(ctx context.Context, d worktime.NonAccountingDay) error
	GetNonAccountingDay(ctx context.Context, id string) (*worktime.NonAccountingDay, error)
	DeleteNonAccountingDay(ctx context.Context, id string) error
	ListNonAccountingDays(ctx context.Context, userID string, p worktime.Period) ([]worktime.NonAccountingDay, error)

	Close() error
}

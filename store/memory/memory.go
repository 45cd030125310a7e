// Package memory provides an in-memory Store implementation (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ponto/worktime-engine/store"
	"github.com/ponto/worktime-engine/worktime"
)

// Store keeps all records in maps guarded by a RWMutex. List results are
// copies sorted by start date, matching the SQLite implementation's order.
type Store struct {
	mu     sync.RWMutex
	shifts map[string]worktime.Shift
	leaves map[string]worktime.NonAccountingDay
}

func New() *Store {
	return &Store{
		shifts: make(map[string]worktime.Shift),
		leaves: make(map[string]worktime.NonAccountingDay),
	}
}

// =============================================================================
// SHIFTS
// =============================================================================

func (m *Store) SaveShift(_ context.Context, s worktime.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[s.ID] = s
	return nil
}

func (m *Store) GetShift(_ context.Context, id string) (*worktime.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shifts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (m *Store) DeleteShift(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shifts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.shifts, id)
	return nil
}

func (m *Store) ListShifts(_ context.Context, userID string, p worktime.Period) ([]worktime.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []worktime.Shift{}
	for _, s := range m.shifts {
		if s.UserID == userID && p.Contains(s.StartTime) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// =============================================================================
// NON-ACCOUNTING DAYS
// =============================================================================

func (m *Store) SaveNonAccountingDay(_ context.Context, d worktime.NonAccountingDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaves[d.ID] = d
	return nil
}

func (m *Store) GetNonAccountingDay(_ context.Context, id string) (*worktime.NonAccountingDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.leaves[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (m *Store) DeleteNonAccountingDay(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leaves[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.leaves, id)
	return nil
}

func (m *Store) ListNonAccountingDays(_ context.Context, userID string, p worktime.Period) ([]worktime.NonAccountingDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []worktime.NonAccountingDay{}
	for _, d := range m.leaves {
		if d.UserID == userID && d.Overlaps(p) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (m *Store) Close() error { return nil }

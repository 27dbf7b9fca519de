// Package memory provides an in-memory payroll.Store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	employees map[string]payroll.Employee
	records   map[string]payroll.Record
	byPeriod  map[periodKey]string
}

type periodKey struct {
	EmployeeID string
	Month      int
	Year       int
}

func keyOf(r payroll.Record) periodKey {
	return periodKey{EmployeeID: r.EmployeeID, Month: r.Month, Year: r.Year}
}

func New() *Store {
	return &Store{
		employees: make(map[string]payroll.Employee),
		records:   make(map[string]payroll.Record),
		byPeriod:  make(map[periodKey]string),
	}
}

var _ payroll.Store = (*Store)(nil)

// SaveEmployee inserts or replaces an employee.
func (s *Store) SaveEmployee(_ context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	emp, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return &emp, nil
}

// ListEmployees returns employees sorted by name.
func (s *Store) ListEmployees(_ context.Context, filter payroll.EmployeeFilter) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []payroll.Employee
	for _, e := range s.employees {
		if filter.Status == "" || e.Status == filter.Status {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetRecord(_ context.Context, id string) (*payroll.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) ListRecords(_ context.Context, filter payroll.RecordFilter) ([]payroll.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []payroll.Record
	for _, r := range s.records {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.EmployeeID < b.EmployeeID
	})
	return out, nil
}

// SaveRecords upserts atomically. A record whose (employee, month, year)
// belongs to a different ID is rejected and nothing is written.
func (s *Store) SaveRecords(_ context.Context, records []payroll.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check all period keys first (atomic check)
	seen := make(map[periodKey]string, len(records))
	for _, r := range records {
		k := keyOf(r)
		if id, ok := s.byPeriod[k]; ok && id != r.ID {
			return fmt.Errorf("record for employee %s %d/%d already exists as %s", r.EmployeeID, r.Month, r.Year, id)
		}
		if id, ok := seen[k]; ok && id != r.ID {
			return fmt.Errorf("duplicate record for employee %s %d/%d in batch", r.EmployeeID, r.Month, r.Year)
		}
		seen[k] = r.ID
	}

	for _, r := range records {
		if prev, ok := s.records[r.ID]; ok {
			delete(s.byPeriod, keyOf(prev))
		}
		s.records[r.ID] = r
		s.byPeriod[keyOf(r)] = r.ID
	}
	return nil
}

func (s *Store) TogglePaid(_ context.Context, id string) (*payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", payroll.ErrRecordNotFound, id)
	}
	rec.IsPaid = !rec.IsPaid
	s.records[id] = rec
	return &rec, nil
}

func (s *Store) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return fmt.Errorf("%w: %s", payroll.ErrRecordNotFound, id)
	}
	delete(s.records, id)
	delete(s.byPeriod, keyOf(rec))
	return nil
}

// Reset clears all data.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = make(map[string]payroll.Employee)
	s.records = make(map[string]payroll.Record)
	s.byPeriod = make(map[periodKey]string)
	return nil
}

package payroll

import "context"

// Store persists employees and payroll records.
//
// Getters return (nil, nil) when nothing matches. Implementations:
//   - store/sqlite: SQLite
//   - store/memory: in-memory, for tests and demos
type Store interface {
	SaveEmployee(ctx context.Context, emp Employee) error
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)

	GetRecord(ctx context.Context, id string) (*Record, error)
	// ListRecords orders by year, month, then employee ID.
	ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error)

	// SaveRecords upserts by record ID atomically: all records or none.
	SaveRecords(ctx context.Context, records []Record) error

	// TogglePaid flips IsPaid and returns the updated record, or
	// ErrRecordNotFound.
	TogglePaid(ctx context.Context, id string) (*Record, error)

	// DeleteRecord removes a record, or returns ErrRecordNotFound.
	DeleteRecord(ctx context.Context, id string) error
}

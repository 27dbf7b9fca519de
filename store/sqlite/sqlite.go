/*
Package sqlite provides a SQLite-backed payroll.Store.

KEY TABLES:
  employees:       master data read by payroll runs
  payroll_records: one row per employee per month, UNIQUE(employee_id, month, year)

MONEY:
  Amounts are stored as TEXT decimal strings and scanned straight back into
  decimal.Decimal, so no value ever passes through float64.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SaveRecords runs in a single SQL
  transaction, so a batch is written completely or not at all.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging): readers don't
  block the single writer.

USAGE:
  store, err := sqlite.New("./data/payroll.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  proc := payroll.NewProcessor(store, statutory.Default())

MIGRATION:
  Schema is auto-migrated on New().
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

const dateLayout = "2006-01-02"

// Store implements payroll.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ payroll.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every pooled connection to ":memory:" would be a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		nric TEXT NOT NULL,
		position TEXT NOT NULL DEFAULT '',
		basic_salary TEXT NOT NULL,
		status TEXT NOT NULL,
		epf_number TEXT NOT NULL DEFAULT '',
		tax_number TEXT NOT NULL DEFAULT '',
		bank_account_number TEXT NOT NULL DEFAULT '',
		join_date TEXT,
		resignation_date TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_status
		ON employees(status);

	CREATE TABLE IF NOT EXISTS payroll_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id),
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		year INTEGER NOT NULL,
		basic_salary TEXT NOT NULL,
		allowance TEXT NOT NULL,
		bonus TEXT NOT NULL,
		overtime TEXT NOT NULL,
		other_deductions TEXT NOT NULL,
		unpaid_leave_days TEXT NOT NULL,
		unpaid_leave_deduction TEXT NOT NULL,
		gross_salary TEXT NOT NULL,
		epf_employee TEXT NOT NULL,
		epf_employer TEXT NOT NULL,
		socso_employee TEXT NOT NULL,
		socso_employer TEXT NOT NULL,
		eis_employee TEXT NOT NULL,
		eis_employer TEXT NOT NULL,
		pcb TEXT NOT NULL,
		net_salary TEXT NOT NULL,
		is_paid INTEGER NOT NULL DEFAULT 0,
		working_days INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(employee_id, month, year)
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_records_period
		ON payroll_records(year, month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

const employeeColumns = `id, name, nric, position, basic_salary, status, epf_number,
	tax_number, bank_account_number, join_date, resignation_date, created_at`

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp payroll.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			nric = excluded.nric,
			position = excluded.position,
			basic_salary = excluded.basic_salary,
			status = excluded.status,
			epf_number = excluded.epf_number,
			tax_number = excluded.tax_number,
			bank_account_number = excluded.bank_account_number,
			join_date = excluded.join_date,
			resignation_date = excluded.resignation_date
	`

	var resigned sql.NullString
	if emp.ResignationDate != nil {
		resigned = sql.NullString{String: emp.ResignationDate.Format(dateLayout), Valid: true}
	}
	createdAt := emp.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.NRIC, emp.Position, emp.BasicSalary, string(emp.Status),
		emp.EPFNumber, emp.TaxNumber, emp.BankAccountNumber,
		nullDate(emp.JoinDate), resigned,
		formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id string) (*payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListEmployees returns employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context, filter payroll.EmployeeFilter) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + employeeColumns + " FROM employees"
	var args []any
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY name, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func scanEmployee(row scanner) (payroll.Employee, error) {
	var emp payroll.Employee
	var status, createdAt string
	var joinDate, resigned sql.NullString

	err := row.Scan(&emp.ID, &emp.Name, &emp.NRIC, &emp.Position, &emp.BasicSalary, &status,
		&emp.EPFNumber, &emp.TaxNumber, &emp.BankAccountNumber, &joinDate, &resigned, &createdAt)
	if err != nil {
		return emp, err
	}

	emp.Status = payroll.EmployeeStatus(status)
	if joinDate.Valid {
		emp.JoinDate, _ = time.Parse(dateLayout, joinDate.String)
	}
	if resigned.Valid {
		if t, err := time.Parse(dateLayout, resigned.String); err == nil {
			emp.ResignationDate = &t
		}
	}
	emp.CreatedAt = parseTime(createdAt)
	return emp, nil
}

// =============================================================================
// PAYROLL RECORDS
// =============================================================================

const recordColumns = `id, employee_id, month, year, basic_salary, allowance, bonus, overtime,
	other_deductions, unpaid_leave_days, unpaid_leave_deduction, gross_salary,
	epf_employee, epf_employer, socso_employee, socso_employer, eis_employee, eis_employer,
	pcb, net_salary, is_paid, working_days, created_at, updated_at`

// GetRecord retrieves a payroll record by ID.
func (s *Store) GetRecord(ctx context.Context, id string) (*payroll.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRecord(ctx, s.db, id)
}

func (s *Store) getRecord(ctx context.Context, db querier, id string) (*payroll.Record, error) {
	row := db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM payroll_records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecords returns records ordered by period then employee.
func (s *Store) ListRecords(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var where []string
	var args []any
	if filter.EmployeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, filter.EmployeeID)
	}
	if filter.Year != nil {
		where = append(where, "year = ?")
		args = append(args, *filter.Year)
	}
	if filter.Month != nil {
		where = append(where, "month = ?")
		args = append(args, *filter.Month)
	}
	if filter.PaidOnly {
		where = append(where, "is_paid = 1")
	}

	query := "SELECT " + recordColumns + " FROM payroll_records"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY year, month, employee_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SaveRecords upserts records in one transaction.
func (s *Store) SaveRecords(ctx context.Context, records []payroll.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	query := `
		INSERT INTO payroll_records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			month = excluded.month,
			year = excluded.year,
			basic_salary = excluded.basic_salary,
			allowance = excluded.allowance,
			bonus = excluded.bonus,
			overtime = excluded.overtime,
			other_deductions = excluded.other_deductions,
			unpaid_leave_days = excluded.unpaid_leave_days,
			unpaid_leave_deduction = excluded.unpaid_leave_deduction,
			gross_salary = excluded.gross_salary,
			epf_employee = excluded.epf_employee,
			epf_employer = excluded.epf_employer,
			socso_employee = excluded.socso_employee,
			socso_employer = excluded.socso_employer,
			eis_employee = excluded.eis_employee,
			eis_employer = excluded.eis_employer,
			pcb = excluded.pcb,
			net_salary = excluded.net_salary,
			is_paid = excluded.is_paid,
			working_days = excluded.working_days,
			updated_at = excluded.updated_at
	`

	for _, r := range records {
		_, err := sqlTx.ExecContext(ctx, query,
			r.ID, r.EmployeeID, r.Month, r.Year,
			r.BasicSalary, r.Allowance, r.Bonus, r.Overtime,
			r.OtherDeductions, r.UnpaidLeaveDays, r.UnpaidLeaveDeduction, r.GrossSalary,
			r.EPFEmployee, r.EPFEmployer, r.SOCSOEmployee, r.SOCSOEmployer, r.EISEmployee, r.EISEmployer,
			r.PCB, r.NetSalary, r.IsPaid, r.WorkingDays,
			formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("record for employee %s %d/%d already exists: %w", r.EmployeeID, r.Month, r.Year, err)
			}
			return fmt.Errorf("failed to save payroll record %s: %w", r.ID, err)
		}
	}

	return sqlTx.Commit()
}

// TogglePaid flips is_paid and returns the updated record.
func (s *Store) TogglePaid(ctx context.Context, id string) (*payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "UPDATE payroll_records SET is_paid = 1 - is_paid WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle paid status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s", payroll.ErrRecordNotFound, id)
	}
	return s.getRecord(ctx, s.db, id)
}

// DeleteRecord removes a payroll record.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM payroll_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", payroll.ErrRecordNotFound, id)
	}
	return nil
}

func scanRecord(row scanner) (payroll.Record, error) {
	var r payroll.Record
	var createdAt, updatedAt string

	err := row.Scan(&r.ID, &r.EmployeeID, &r.Month, &r.Year,
		&r.BasicSalary, &r.Allowance, &r.Bonus, &r.Overtime,
		&r.OtherDeductions, &r.UnpaidLeaveDays, &r.UnpaidLeaveDeduction, &r.GrossSalary,
		&r.EPFEmployee, &r.EPFEmployer, &r.SOCSOEmployee, &r.SOCSOEmployer, &r.EISEmployee, &r.EISEmployer,
		&r.PCB, &r.NetSalary, &r.IsPaid, &r.WorkingDays,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return r, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"payroll_records", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

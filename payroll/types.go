/*
Package payroll runs the monthly statutory payroll batch.

PURPOSE:
  Turns the active workforce plus this month's variable inputs (allowance,
  bonus, overtime, unpaid leave, PCB) into one payroll Record per employee,
  and aggregates paid records into the yearly EA form.

KEY CONCEPTS:
  Employee:  master data the batch reads (basic salary, NRIC, status)
  RunInputs: variable amounts for one employee in one run
  Record:    the persisted result, unique per (employee, month, year)
  EAForm:    yearly totals of paid records, for the employee's tax filing

RERUNS:
  Running a month again recomputes every active employee and updates the
  existing record in place. The record keeps its ID and creation time and
  goes back to unpaid.

SEE ALSO:
  - processor.go: batch orchestration
  - statutory package: the contribution calculations
  - store/sqlite, store/memory: Store implementations
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

// EmployeeStatus is ACTIVE or RESIGNED. Only active employees are paid.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "ACTIVE"
	StatusResigned EmployeeStatus = "RESIGNED"
)

// Employee is the master data a payroll run needs.
type Employee struct {
	ID                string
	Name              string
	NRIC              string
	Position          string
	BasicSalary       decimal.Decimal
	Status            EmployeeStatus
	EPFNumber         string
	TaxNumber         string
	BankAccountNumber string
	JoinDate          time.Time
	ResignationDate   *time.Time
	CreatedAt         time.Time
}

// EmployeeFilter narrows ListEmployees. Zero value lists everyone.
type EmployeeFilter struct {
	Status EmployeeStatus
}

// =============================================================================
// RUN INPUTS
// =============================================================================

// RunInputs are one employee's variable amounts for a run. The zero value is
// a plain full month.
type RunInputs struct {
	Allowance       decimal.Decimal
	Bonus           decimal.Decimal
	Overtime        decimal.Decimal
	OtherDeductions decimal.Decimal
	PCB             decimal.Decimal

	// DaysWorked pro-rates the basic salary. 0 means the whole month.
	DaysWorked int
	UnpaidDays decimal.Decimal
}

// RunRequest asks for a batch over all active employees.
type RunRequest struct {
	Month int
	Year  int
	// Inputs by employee ID. Missing employees get zero RunInputs.
	Inputs map[string]RunInputs
}

// RunSummary reports what a batch did.
type RunSummary struct {
	Month        int
	Year         int
	DaysInMonth  int
	Created      int
	Updated      int
	Records      []Record
	TotalGross   decimal.Decimal
	TotalNet     decimal.Decimal
	EmployerCost decimal.Decimal
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one employee's payroll for one month.
type Record struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int

	// BasicSalary is the pro-rated basic actually paid.
	BasicSalary     decimal.Decimal
	Allowance       decimal.Decimal
	Bonus           decimal.Decimal
	Overtime        decimal.Decimal
	OtherDeductions decimal.Decimal
	UnpaidLeaveDays decimal.Decimal

	statutory.Result

	IsPaid      bool
	WorkingDays int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordFilter narrows ListRecords. Nil fields match everything.
type RecordFilter struct {
	EmployeeID string
	Year       *int
	Month      *int
	PaidOnly   bool
}

// Matches reports whether r passes the filter.
func (f RecordFilter) Matches(r Record) bool {
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Year != nil && r.Year != *f.Year {
		return false
	}
	if f.Month != nil && r.Month != *f.Month {
		return false
	}
	return !f.PaidOnly || r.IsPaid
}

// =============================================================================
// EA FORM
// =============================================================================

// Company identifies the employer on payslips and EA forms.
type Company struct {
	Name               string
	RegistrationNumber string
}

// EAForm is the yearly remuneration statement. Totals cover paid records
// only and are employee shares.
type EAForm struct {
	Year     int
	Company  Company
	Employee Employee

	Gross decimal.Decimal
	EPF   decimal.Decimal
	SOCSO decimal.Decimal
	EIS   decimal.Decimal
	PCB   decimal.Decimal

	MonthsPaid []int
}

/*
Package statutory computes Malaysian statutory payroll contributions.

PURPOSE:
  Converts one pay period's earnings into the mandated employer/employee
  contributions and the employee's net pay:
    - EPF / KWSP    retirement fund (Third Schedule, Part A and Part E)
    - SOCSO / PERKESO social security (First Category, Jenis Pertama)
    - EIS / SIP     employment insurance
  PCB (monthly tax deduction) is supplied by the caller and passed through.

KEY CONCEPTS IN THIS FILE (types.go):
  - Inputs:       one employee's earnings for one period
  - Result:       the computed statutory record
  - Contribution: an employee/employer pair for a single scheme

DESIGN PRINCIPLES:
  1. Pure: no I/O, no clock, no shared mutable state. Safe for concurrent use.
  2. Total: every numeric input produces a result. Non-positive gross pay
     yields zero contributions, never an error.
  3. Precision: decimal.Decimal for every amount. EPF rounds up to whole
     ringgit, everything else rounds half away from zero to 2 places.
  4. Data, not branches: rates and brackets live in a Schedule value
     (schedule.go) so a gazette change is a data change.

USAGE:
  result := statutory.Calculate(statutory.Inputs{
      ActualBasicSalary: decimal.NewFromInt(3000),
      DaysInMonth:       30,
      AgeYears:          30,
  })
  // result.EPFEmployee == 330, result.EPFEmployer == 390

SEE ALSO:
  - schedule.go:   rate tables
  - calculator.go: aggregate calculation
  - nric package:  age derivation from an identity number
*/
package statutory

import "github.com/shopspring/decimal"

// =============================================================================
// INPUTS
// =============================================================================

// Inputs are the earnings of one employee for one pay period.
type Inputs struct {
	// ActualBasicSalary is the basic salary already pro-rated for days worked.
	ActualBasicSalary decimal.Decimal
	Allowance         decimal.Decimal
	Bonus             decimal.Decimal
	Overtime          decimal.Decimal

	// UnpaidLeaveDays is deducted at ActualBasicSalary / DaysInMonth per day.
	UnpaidLeaveDays decimal.Decimal

	OtherDeductions decimal.Decimal

	// ManualPCB is the monthly tax deduction. Not computed here.
	ManualPCB decimal.Decimal

	// DaysInMonth of the pay period. Values <= 0 are treated as DefaultDaysInMonth.
	DaysInMonth int

	// AgeYears decides the EPF senior (Part E) branch.
	AgeYears int
}

// DefaultDaysInMonth is used when Inputs.DaysInMonth is not positive.
const DefaultDaysInMonth = 30

// =============================================================================
// RESULT
// =============================================================================

// Result is the statutory breakdown for one employee and one period.
// All amounts are non-negative except NetSalary and GrossSalary, which follow
// their formulas even when deductions exceed earnings.
type Result struct {
	GrossSalary          decimal.Decimal
	UnpaidLeaveDeduction decimal.Decimal

	EPFEmployee decimal.Decimal
	EPFEmployer decimal.Decimal

	SOCSOEmployee decimal.Decimal
	SOCSOEmployer decimal.Decimal

	EISEmployee decimal.Decimal
	EISEmployer decimal.Decimal

	PCB       decimal.Decimal
	NetSalary decimal.Decimal
}

// EmployeeDeductions is the statutory part withheld from the employee.
func (r Result) EmployeeDeductions() decimal.Decimal {
	return r.EPFEmployee.Add(r.SOCSOEmployee).Add(r.EISEmployee)
}

// EmployerContributions is what the employer pays on top of gross salary.
func (r Result) EmployerContributions() decimal.Decimal {
	return r.EPFEmployer.Add(r.SOCSOEmployer).Add(r.EISEmployer)
}

// EmployerCost is gross salary plus employer contributions.
func (r Result) EmployerCost() decimal.Decimal {
	return r.GrossSalary.Add(r.EmployerContributions())
}

// Contribution is one scheme's employee/employer pair.
type Contribution struct {
	Employee decimal.Decimal
	Employer decimal.Decimal
}

// Total is the combined contribution.
func (c Contribution) Total() decimal.Decimal { return c.Employee.Add(c.Employer) }

var zeroContribution = Contribution{Employee: decimal.Zero, Employer: decimal.Zero}

package statutory

import "github.com/shopspring/decimal"

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator applies one Schedule. It holds a private copy of its tables and
// is safe for concurrent use.
type Calculator struct {
	schedule Schedule
}

// NewCalculator returns a calculator bound to a copy of schedule.
func NewCalculator(schedule Schedule) *Calculator {
	return &Calculator{schedule: schedule.Clone()}
}

// Schedule returns a copy of the tables in use.
func (c *Calculator) Schedule() Schedule {
	return c.schedule.Clone()
}

// EPF returns the EPF employee/employer shares.
func (c *Calculator) EPF(gross decimal.Decimal, age int) Contribution {
	return c.schedule.EPF.Contribute(gross, age)
}

// SOCSO returns the SOCSO employee/employer shares.
func (c *Calculator) SOCSO(gross decimal.Decimal) Contribution {
	return c.schedule.SOCSO.Contribute(gross)
}

// EIS returns the EIS amount paid by each party.
func (c *Calculator) EIS(gross decimal.Decimal) decimal.Decimal {
	return c.schedule.EIS.Contribute(gross)
}

// Calculate produces the full statutory record for one pay period.
//
// Contributions are taken on the unrounded gross. The reported gross is
// rounded to cents and net pay is derived from the reported figures, so
// NetSalary = GrossSalary - employee shares - OtherDeductions - PCB holds
// exactly on the returned value.
func (c *Calculator) Calculate(in Inputs) Result {
	days := in.DaysInMonth
	if days <= 0 {
		days = DefaultDaysInMonth
	}

	unpaid := decimal.Zero
	if in.UnpaidLeaveDays.IsPositive() {
		unpaid = in.ActualBasicSalary.Div(decimal.NewFromInt(int64(days))).Mul(in.UnpaidLeaveDays)
	}

	gross := in.ActualBasicSalary.
		Add(in.Allowance).
		Add(in.Bonus).
		Add(in.Overtime).
		Sub(unpaid)

	epf := c.EPF(gross, in.AgeYears)
	socso := c.SOCSO(gross)
	eis := c.EIS(gross)

	reportedGross := RoundCents(gross)
	net := reportedGross.
		Sub(epf.Employee).
		Sub(socso.Employee).
		Sub(eis).
		Sub(in.OtherDeductions).
		Sub(in.ManualPCB)

	return Result{
		GrossSalary:          reportedGross,
		UnpaidLeaveDeduction: RoundCents(unpaid),
		EPFEmployee:          epf.Employee,
		EPFEmployer:          epf.Employer,
		SOCSOEmployee:        socso.Employee,
		SOCSOEmployer:        socso.Employer,
		EISEmployee:          eis,
		EISEmployer:          eis,
		PCB:                  in.ManualPCB,
		NetSalary:            RoundCents(net),
	}
}

// =============================================================================
// DEFAULT-SCHEDULE SHORTCUTS
// =============================================================================

var defaultCalculator = NewCalculator(DefaultSchedule())

// Default returns the calculator for the current statutory rates.
func Default() *Calculator { return defaultCalculator }

// EPF computes EPF shares with the current rates.
func EPF(gross decimal.Decimal, age int) Contribution { return defaultCalculator.EPF(gross, age) }

// SOCSO computes SOCSO shares with the current rates.
func SOCSO(gross decimal.Decimal) Contribution { return defaultCalculator.SOCSO(gross) }

// EIS computes the EIS amount with the current rates.
func EIS(gross decimal.Decimal) decimal.Decimal { return defaultCalculator.EIS(gross) }

// Calculate runs the aggregate calculation with the current rates.
func Calculate(in Inputs) Result { return defaultCalculator.Calculate(in) }

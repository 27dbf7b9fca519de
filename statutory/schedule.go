/*
schedule.go - Statutory rate tables as immutable data

PURPOSE:
  Holds every rate, threshold and bracket the calculators read. Values are
  the gazetted schedules in force for this engine:
    EPF   Third Schedule: RM20 wage bands up to RM5,000, RM100 bands up to
          RM20,000, actual wages above. Part A 11% / 13% (12% above RM5,000).
          Part E (age 60+) employee nil, employer 4%.
    SOCSO First Category, wage ceiling RM5,000.
    EIS   0.2% each side, wage ceiling RM4,000.

IMMUTABILITY:
  DefaultSchedule returns a fresh value on every call and NewCalculator
  deep-copies its schedule, so no caller can change the tables another
  calculator is using.

SEE ALSO:
  - factory/schedule.go: JSON loading of a Schedule
  - epf.go, socso.go, eis.go: readers of these tables
*/
package statutory

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Schedule bundles the three contribution tables.
type Schedule struct {
	EPF   EPFTable
	SOCSO SOCSOTable
	EIS   EISTable
}

// =============================================================================
// EPF
// =============================================================================

// EPFBand rounds wages up to a multiple of Step while wage <= UpTo.
type EPFBand struct {
	UpTo decimal.Decimal
	Step decimal.Decimal
}

// EPFTable describes EPF contributions. Wages above the last band are
// contributed on the actual amount.
type EPFTable struct {
	// MinimumWage and below contribute nothing.
	MinimumWage decimal.Decimal
	Bands       []EPFBand

	EmployeeRate decimal.Decimal

	// EmployerRateLow applies while the contribution wage <= EmployerLowUpTo.
	EmployerRateLow  decimal.Decimal
	EmployerLowUpTo  decimal.Decimal
	EmployerRateHigh decimal.Decimal

	SeniorAge          int
	SeniorEmployeeRate decimal.Decimal
	SeniorEmployerRate decimal.Decimal
}

// =============================================================================
// SOCSO
// =============================================================================

// SOCSOBracket is a fixed contribution pair for wages <= UpTo.
type SOCSOBracket struct {
	UpTo     decimal.Decimal
	Employer decimal.Decimal
	Employee decimal.Decimal
}

// SOCSOTable describes SOCSO contributions. Above the last fixed bracket the
// amounts grow by one step per StepSize of wages, alternating the employer
// increment by bracket parity.
type SOCSOTable struct {
	WageCeiling decimal.Decimal
	Brackets    []SOCSOBracket

	StepSize         decimal.Decimal
	EmployeeStep     decimal.Decimal
	EmployerStepOdd  decimal.Decimal
	EmployerStepEven decimal.Decimal
}

// =============================================================================
// EIS
// =============================================================================

// EISTable describes the EIS contribution, identical for both parties.
type EISTable struct {
	WageCeiling      decimal.Decimal
	MinimumWage      decimal.Decimal
	BaseUpTo         decimal.Decimal
	BaseContribution decimal.Decimal
	StepSize         decimal.Decimal
	StepIncrement    decimal.Decimal
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultSchedule returns the current statutory rates.
func DefaultSchedule() Schedule {
	return Schedule{
		EPF: EPFTable{
			MinimumWage: decimal.NewFromInt(10),
			Bands: []EPFBand{
				{UpTo: decimal.NewFromInt(5000), Step: decimal.NewFromInt(20)},
				{UpTo: decimal.NewFromInt(20000), Step: decimal.NewFromInt(100)},
			},
			EmployeeRate:       decimal.RequireFromString("0.11"),
			EmployerRateLow:    decimal.RequireFromString("0.13"),
			EmployerLowUpTo:    decimal.NewFromInt(5000),
			EmployerRateHigh:   decimal.RequireFromString("0.12"),
			SeniorAge:          60,
			SeniorEmployeeRate: decimal.Zero,
			SeniorEmployerRate: decimal.RequireFromString("0.04"),
		},
		SOCSO: SOCSOTable{
			WageCeiling: decimal.NewFromInt(5000),
			Brackets: []SOCSOBracket{
				{UpTo: decimal.NewFromInt(30), Employer: decimal.RequireFromString("0.40"), Employee: decimal.RequireFromString("0.10")},
				{UpTo: decimal.NewFromInt(50), Employer: decimal.RequireFromString("0.70"), Employee: decimal.RequireFromString("0.20")},
				{UpTo: decimal.NewFromInt(70), Employer: decimal.RequireFromString("1.10"), Employee: decimal.RequireFromString("0.30")},
				{UpTo: decimal.NewFromInt(100), Employer: decimal.RequireFromString("1.50"), Employee: decimal.RequireFromString("0.40")},
				{UpTo: decimal.NewFromInt(140), Employer: decimal.RequireFromString("2.10"), Employee: decimal.RequireFromString("0.60")},
				{UpTo: decimal.NewFromInt(200), Employer: decimal.RequireFromString("2.95"), Employee: decimal.RequireFromString("0.85")},
				{UpTo: decimal.NewFromInt(300), Employer: decimal.RequireFromString("4.35"), Employee: decimal.RequireFromString("1.25")},
			},
			StepSize:         decimal.NewFromInt(100),
			EmployeeStep:     decimal.RequireFromString("0.50"),
			EmployerStepOdd:  decimal.RequireFromString("1.80"),
			EmployerStepEven: decimal.RequireFromString("1.70"),
		},
		EIS: EISTable{
			WageCeiling:      decimal.NewFromInt(4000),
			MinimumWage:      decimal.NewFromInt(10),
			BaseUpTo:         decimal.NewFromInt(1000),
			BaseContribution: decimal.RequireFromString("1.90"),
			StepSize:         decimal.NewFromInt(100),
			StepIncrement:    decimal.RequireFromString("0.20"),
		},
	}
}

// Clone returns a deep copy.
func (s Schedule) Clone() Schedule {
	out := s
	out.EPF.Bands = append([]EPFBand(nil), s.EPF.Bands...)
	out.SOCSO.Brackets = append([]SOCSOBracket(nil), s.SOCSO.Brackets...)
	return out
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the tables are usable by the calculators.
func (s Schedule) Validate() error {
	if err := s.EPF.validate(); err != nil {
		return err
	}
	if err := s.SOCSO.validate(); err != nil {
		return err
	}
	return s.EIS.validate()
}

func (t EPFTable) validate() error {
	for _, r := range []decimal.Decimal{t.MinimumWage, t.EmployeeRate, t.EmployerRateLow,
		t.EmployerLowUpTo, t.EmployerRateHigh, t.SeniorEmployeeRate, t.SeniorEmployerRate} {
		if r.IsNegative() {
			return scheduleErr("epf", "negative rate or threshold")
		}
	}
	if t.SeniorAge <= 0 {
		return scheduleErr("epf", "senior age must be positive")
	}
	prev := t.MinimumWage
	for i, b := range t.Bands {
		if !b.Step.IsPositive() {
			return scheduleErr("epf", fmt.Sprintf("band %d: step must be positive", i))
		}
		if !b.UpTo.GreaterThan(prev) {
			return scheduleErr("epf", fmt.Sprintf("band %d: bounds must ascend", i))
		}
		prev = b.UpTo
	}
	return nil
}

func (t SOCSOTable) validate() error {
	if len(t.Brackets) == 0 {
		return scheduleErr("socso", "at least one fixed bracket is required")
	}
	if !t.WageCeiling.IsPositive() || !t.StepSize.IsPositive() {
		return scheduleErr("socso", "wage ceiling and step size must be positive")
	}
	if !t.StepSize.IsInteger() {
		return scheduleErr("socso", "step size must be a whole amount")
	}
	prev := decimal.Zero
	for i, b := range t.Brackets {
		if !b.UpTo.GreaterThan(prev) {
			return scheduleErr("socso", fmt.Sprintf("bracket %d: bounds must ascend", i))
		}
		if b.Employee.IsNegative() || b.Employer.IsNegative() {
			return scheduleErr("socso", fmt.Sprintf("bracket %d: negative contribution", i))
		}
		prev = b.UpTo
	}
	if t.EmployeeStep.IsNegative() || t.EmployerStepOdd.IsNegative() || t.EmployerStepEven.IsNegative() {
		return scheduleErr("socso", "negative step increment")
	}
	return nil
}

func (t EISTable) validate() error {
	if !t.WageCeiling.IsPositive() || !t.StepSize.IsPositive() {
		return scheduleErr("eis", "wage ceiling and step size must be positive")
	}
	if t.BaseUpTo.LessThan(t.MinimumWage) {
		return scheduleErr("eis", "base bracket ends below the minimum wage")
	}
	if t.BaseContribution.IsNegative() || t.StepIncrement.IsNegative() {
		return scheduleErr("eis", "negative contribution")
	}
	return nil
}

/*
Package factory converts JSON rate schedules into statutory.Schedule values.

PURPOSE:
  Statutory rates change by gazette. Operators keep the current tables in a
  JSON file (RATE_SCHEDULE_FILE) and the engine loads them at start-up, so a
  rate change is a file edit rather than a release.

JSON SCHEMA:
  {
    "name": "2024 gazette",
    "epf": {
      "minimum_wage": "10",
      "bands": [{"up_to": "5000", "step": "20"}, {"up_to": "20000", "step": "100"}],
      "employee_rate": "0.11",
      "employer_rate_low": "0.13",
      "employer_low_up_to": "5000",
      "employer_rate_high": "0.12",
      "senior_age": 60,
      "senior_employee_rate": "0",
      "senior_employer_rate": "0.04"
    },
    "socso": {
      "wage_ceiling": "5000",
      "brackets": [{"up_to": "30", "employer": "0.4", "employee": "0.1"}],
      "step_size": "100",
      "employee_step": "0.5",
      "employer_step_odd": "1.8",
      "employer_step_even": "1.7"
    },
    "eis": {
      "wage_ceiling": "4000",
      "minimum_wage": "10",
      "base_up_to": "1000",
      "base_contribution": "1.9",
      "step_size": "100",
      "step_increment": "0.2"
    }
  }

  Amounts are decimal strings (plain JSON numbers are accepted too). Any
  section or field left out keeps the current statutory value.

USAGE:
  f := factory.NewScheduleFactory()
  schedule, err := f.LoadFile("rates.json")
  calc := statutory.NewCalculator(schedule)

SEE ALSO:
  - statutory/schedule.go: Schedule definition and defaults
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScheduleJSON is the JSON representation of a rate schedule.
type ScheduleJSON struct {
	Name  string     `json:"name,omitempty"`
	EPF   *EPFJSON   `json:"epf,omitempty"`
	SOCSO *SOCSOJSON `json:"socso,omitempty"`
	EIS   *EISJSON   `json:"eis,omitempty"`
}

// EPFJSON represents the EPF table.
type EPFJSON struct {
	MinimumWage        *decimal.Decimal `json:"minimum_wage,omitempty"`
	Bands              []BandJSON       `json:"bands,omitempty"`
	EmployeeRate       *decimal.Decimal `json:"employee_rate,omitempty"`
	EmployerRateLow    *decimal.Decimal `json:"employer_rate_low,omitempty"`
	EmployerLowUpTo    *decimal.Decimal `json:"employer_low_up_to,omitempty"`
	EmployerRateHigh   *decimal.Decimal `json:"employer_rate_high,omitempty"`
	SeniorAge          *int             `json:"senior_age,omitempty"`
	SeniorEmployeeRate *decimal.Decimal `json:"senior_employee_rate,omitempty"`
	SeniorEmployerRate *decimal.Decimal `json:"senior_employer_rate,omitempty"`
}

// BandJSON is one EPF wage band.
type BandJSON struct {
	UpTo decimal.Decimal `json:"up_to"`
	Step decimal.Decimal `json:"step"`
}

// SOCSOJSON represents the SOCSO table.
type SOCSOJSON struct {
	WageCeiling      *decimal.Decimal `json:"wage_ceiling,omitempty"`
	Brackets         []BracketJSON    `json:"brackets,omitempty"`
	StepSize         *decimal.Decimal `json:"step_size,omitempty"`
	EmployeeStep     *decimal.Decimal `json:"employee_step,omitempty"`
	EmployerStepOdd  *decimal.Decimal `json:"employer_step_odd,omitempty"`
	EmployerStepEven *decimal.Decimal `json:"employer_step_even,omitempty"`
}

// BracketJSON is one fixed SOCSO bracket.
type BracketJSON struct {
	UpTo     decimal.Decimal `json:"up_to"`
	Employer decimal.Decimal `json:"employer"`
	Employee decimal.Decimal `json:"employee"`
}

// EISJSON represents the EIS table.
type EISJSON struct {
	WageCeiling      *decimal.Decimal `json:"wage_ceiling,omitempty"`
	MinimumWage      *decimal.Decimal `json:"minimum_wage,omitempty"`
	BaseUpTo         *decimal.Decimal `json:"base_up_to,omitempty"`
	BaseContribution *decimal.Decimal `json:"base_contribution,omitempty"`
	StepSize         *decimal.Decimal `json:"step_size,omitempty"`
	StepIncrement    *decimal.Decimal `json:"step_increment,omitempty"`
}

// =============================================================================
// SCHEDULE FACTORY
// =============================================================================

// ScheduleFactory converts JSON schedules to statutory.Schedule values.
type ScheduleFactory struct{}

// NewScheduleFactory creates a new schedule factory.
func NewScheduleFactory() *ScheduleFactory {
	return &ScheduleFactory{}
}

// ParseSchedule parses and validates a JSON schedule.
func (f *ScheduleFactory) ParseSchedule(jsonStr string) (statutory.Schedule, error) {
	var sj ScheduleJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return statutory.Schedule{}, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	return f.FromJSON(sj)
}

// LoadFile reads a JSON schedule from disk.
func (f *ScheduleFactory) LoadFile(path string) (statutory.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return statutory.Schedule{}, fmt.Errorf("failed to read schedule file: %w", err)
	}
	schedule, err := f.ParseSchedule(string(data))
	if err != nil {
		return statutory.Schedule{}, fmt.Errorf("%s: %w", path, err)
	}
	return schedule, nil
}

// FromJSON overlays sj on the current statutory rates and validates the result.
func (f *ScheduleFactory) FromJSON(sj ScheduleJSON) (statutory.Schedule, error) {
	s := statutory.DefaultSchedule()

	if sj.EPF != nil {
		applyEPF(&s.EPF, *sj.EPF)
	}
	if sj.SOCSO != nil {
		applySOCSO(&s.SOCSO, *sj.SOCSO)
	}
	if sj.EIS != nil {
		applyEIS(&s.EIS, *sj.EIS)
	}

	if err := s.Validate(); err != nil {
		return statutory.Schedule{}, err
	}
	return s, nil
}

// ToJSON converts a Schedule to its fully populated JSON form.
func (f *ScheduleFactory) ToJSON(s statutory.Schedule) ScheduleJSON {
	epf := &EPFJSON{
		MinimumWage:        ptr(s.EPF.MinimumWage),
		EmployeeRate:       ptr(s.EPF.EmployeeRate),
		EmployerRateLow:    ptr(s.EPF.EmployerRateLow),
		EmployerLowUpTo:    ptr(s.EPF.EmployerLowUpTo),
		EmployerRateHigh:   ptr(s.EPF.EmployerRateHigh),
		SeniorAge:          &s.EPF.SeniorAge,
		SeniorEmployeeRate: ptr(s.EPF.SeniorEmployeeRate),
		SeniorEmployerRate: ptr(s.EPF.SeniorEmployerRate),
	}
	for _, b := range s.EPF.Bands {
		epf.Bands = append(epf.Bands, BandJSON{UpTo: b.UpTo, Step: b.Step})
	}

	socso := &SOCSOJSON{
		WageCeiling:      ptr(s.SOCSO.WageCeiling),
		StepSize:         ptr(s.SOCSO.StepSize),
		EmployeeStep:     ptr(s.SOCSO.EmployeeStep),
		EmployerStepOdd:  ptr(s.SOCSO.EmployerStepOdd),
		EmployerStepEven: ptr(s.SOCSO.EmployerStepEven),
	}
	for _, b := range s.SOCSO.Brackets {
		socso.Brackets = append(socso.Brackets, BracketJSON{UpTo: b.UpTo, Employer: b.Employer, Employee: b.Employee})
	}

	return ScheduleJSON{
		EPF:   epf,
		SOCSO: socso,
		EIS: &EISJSON{
			WageCeiling:      ptr(s.EIS.WageCeiling),
			MinimumWage:      ptr(s.EIS.MinimumWage),
			BaseUpTo:         ptr(s.EIS.BaseUpTo),
			BaseContribution: ptr(s.EIS.BaseContribution),
			StepSize:         ptr(s.EIS.StepSize),
			StepIncrement:    ptr(s.EIS.StepIncrement),
		},
	}
}

// DefaultScheduleJSON renders the current statutory rates as indented JSON.
func DefaultScheduleJSON() string {
	sj := NewScheduleFactory().ToJSON(statutory.DefaultSchedule())
	sj.Name = "current statutory rates"
	data, _ := json.MarshalIndent(sj, "", "  ")
	return string(data)
}

// =============================================================================
// OVERLAY HELPERS
// =============================================================================

func applyEPF(t *statutory.EPFTable, j EPFJSON) {
	set(&t.MinimumWage, j.MinimumWage)
	set(&t.EmployeeRate, j.EmployeeRate)
	set(&t.EmployerRateLow, j.EmployerRateLow)
	set(&t.EmployerLowUpTo, j.EmployerLowUpTo)
	set(&t.EmployerRateHigh, j.EmployerRateHigh)
	set(&t.SeniorEmployeeRate, j.SeniorEmployeeRate)
	set(&t.SeniorEmployerRate, j.SeniorEmployerRate)
	if j.SeniorAge != nil {
		t.SeniorAge = *j.SeniorAge
	}
	if j.Bands != nil {
		t.Bands = make([]statutory.EPFBand, 0, len(j.Bands))
		for _, b := range j.Bands {
			t.Bands = append(t.Bands, statutory.EPFBand{UpTo: b.UpTo, Step: b.Step})
		}
	}
}

func applySOCSO(t *statutory.SOCSOTable, j SOCSOJSON) {
	set(&t.WageCeiling, j.WageCeiling)
	set(&t.StepSize, j.StepSize)
	set(&t.EmployeeStep, j.EmployeeStep)
	set(&t.EmployerStepOdd, j.EmployerStepOdd)
	set(&t.EmployerStepEven, j.EmployerStepEven)
	if j.Brackets != nil {
		t.Brackets = make([]statutory.SOCSOBracket, 0, len(j.Brackets))
		for _, b := range j.Brackets {
			t.Brackets = append(t.Brackets, statutory.SOCSOBracket{UpTo: b.UpTo, Employer: b.Employer, Employee: b.Employee})
		}
	}
}

func applyEIS(t *statutory.EISTable, j EISJSON) {
	set(&t.WageCeiling, j.WageCeiling)
	set(&t.MinimumWage, j.MinimumWage)
	set(&t.BaseUpTo, j.BaseUpTo)
	set(&t.BaseContribution, j.BaseContribution)
	set(&t.StepSize, j.StepSize)
	set(&t.StepIncrement, j.StepIncrement)
}

func set(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

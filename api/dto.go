/*
dto.go - Data Transfer Objects for the HTTP API

PURPOSE:
  Defines request/response shapes for the REST API. Amounts cross the wire
  as strings with two decimal places ("1234.50"); requests accept either
  JSON numbers or strings for amounts.

NAMING:
  - *Request: incoming request bodies
  - *DTO:     outgoing response objects
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

const dateLayout = "2006-01-02"

// =============================================================================
// STATUTORY CALCULATION
// =============================================================================

// CalculateRequest is a one-off statutory calculation.
//
// Age decides the EPF branch. When it is absent the age is derived from NRIC
// as of ReferenceYear (default: current year); without either, 30 is used.
type CalculateRequest struct {
	ActualBasicSalary decimal.Decimal `json:"actual_basic_salary" validate:"gte=0"`
	Allowance         decimal.Decimal `json:"allowance" validate:"gte=0"`
	Bonus             decimal.Decimal `json:"bonus" validate:"gte=0"`
	Overtime          decimal.Decimal `json:"overtime" validate:"gte=0"`
	UnpaidLeaveDays   decimal.Decimal `json:"unpaid_leave_days" validate:"gte=0"`
	OtherDeductions   decimal.Decimal `json:"other_deductions" validate:"gte=0"`
	PCB               decimal.Decimal `json:"pcb" validate:"gte=0"`
	DaysInMonth       int             `json:"days_in_month" validate:"gte=0,lte=31"`
	Age               *int            `json:"age" validate:"omitempty,gte=0,lte=150"`
	NRIC              string          `json:"nric"`
	ReferenceYear     int             `json:"reference_year" validate:"omitempty,gte=1900,lte=9999"`
}

// StatutoryResultDTO is a statutory.Result plus its totals.
type StatutoryResultDTO struct {
	GrossSalary                string `json:"gross_salary"`
	UnpaidLeaveDeduction       string `json:"unpaid_leave_deduction"`
	EPFEmployee                string `json:"epf_employee"`
	EPFEmployer                string `json:"epf_employer"`
	SOCSOEmployee              string `json:"socso_employee"`
	SOCSOEmployer              string `json:"socso_employer"`
	EISEmployee                string `json:"eis_employee"`
	EISEmployer                string `json:"eis_employer"`
	PCB                        string `json:"pcb"`
	NetSalary                  string `json:"net_salary"`
	TotalEmployeeDeductions    string `json:"total_employee_deductions"`
	TotalEmployerContributions string `json:"total_employer_contributions"`
	EmployerCost               string `json:"employer_cost"`
}

// CalculateResponse is the result of a one-off calculation.
type CalculateResponse struct {
	AgeYears int `json:"age_years"`
	StatutoryResultDTO
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	NRIC              string    `json:"nric"`
	Position          string    `json:"position"`
	BasicSalary       string    `json:"basic_salary"`
	Status            string    `json:"status"`
	EPFNumber         string    `json:"epf_number,omitempty"`
	TaxNumber         string    `json:"tax_number,omitempty"`
	BankAccountNumber string    `json:"bank_account_number,omitempty"`
	JoinDate          string    `json:"join_date,omitempty"`
	ResignationDate   string    `json:"resignation_date,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateEmployeeRequest struct {
	ID                string          `json:"id"`
	Name              string          `json:"name" validate:"required"`
	NRIC              string          `json:"nric" validate:"required"`
	Position          string          `json:"position"`
	BasicSalary       decimal.Decimal `json:"basic_salary" validate:"gte=0"`
	Status            string          `json:"status" validate:"omitempty,oneof=ACTIVE RESIGNED"`
	EPFNumber         string          `json:"epf_number"`
	TaxNumber         string          `json:"tax_number"`
	BankAccountNumber string          `json:"bank_account_number"`
	JoinDate          string          `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	ResignationDate   string          `json:"resignation_date" validate:"omitempty,datetime=2006-01-02"`
}

// =============================================================================
// PAYROLL RUNS
// =============================================================================

type RunPayrollRequest struct {
	Month  int                     `json:"month" validate:"required,gte=1,lte=12"`
	Year   int                     `json:"year" validate:"required,gte=1900,lte=9999"`
	Inputs map[string]RunInputsDTO `json:"inputs" validate:"omitempty,dive"`
}

// RunInputsDTO carries one employee's variable amounts. DaysWorked 0 means
// the whole month.
type RunInputsDTO struct {
	Allowance       decimal.Decimal `json:"allowance" validate:"gte=0"`
	Bonus           decimal.Decimal `json:"bonus" validate:"gte=0"`
	Overtime        decimal.Decimal `json:"overtime" validate:"gte=0"`
	OtherDeductions decimal.Decimal `json:"other_deductions" validate:"gte=0"`
	PCB             decimal.Decimal `json:"pcb" validate:"gte=0"`
	DaysWorked      int             `json:"days_worked" validate:"gte=0,lte=31"`
	UnpaidLeaveDays decimal.Decimal `json:"unpaid_leave_days" validate:"gte=0"`
}

type RunSummaryDTO struct {
	Month        int         `json:"month"`
	Year         int         `json:"year"`
	Period       string      `json:"period"`
	DaysInMonth  int         `json:"days_in_month"`
	Created      int         `json:"created"`
	Updated      int         `json:"updated"`
	TotalGross   string      `json:"total_gross"`
	TotalNet     string      `json:"total_net"`
	EmployerCost string      `json:"employer_cost"`
	Records      []RecordDTO `json:"records"`
}

type RecordDTO struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
	BasicSalary     string `json:"basic_salary"`
	Allowance       string `json:"allowance"`
	Bonus           string `json:"bonus"`
	Overtime        string `json:"overtime"`
	OtherDeductions string `json:"other_deductions"`
	UnpaidLeaveDays string `json:"unpaid_leave_days"`
	WorkingDays     int    `json:"working_days"`
	IsPaid          bool   `json:"is_paid"`
	StatutoryResultDTO
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EAFormDTO is the yearly remuneration statement.
type EAFormDTO struct {
	Year         int    `json:"year"`
	CompanyName  string `json:"company_name"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	NRIC         string `json:"nric"`
	TaxNumber    string `json:"tax_number,omitempty"`
	Gross        string `json:"gross"`
	EPF          string `json:"epf"`
	SOCSO        string `json:"socso"`
	EIS          string `json:"eis"`
	PCB          string `json:"pcb"`
	MonthsPaid   []int  `json:"months_paid"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toResultDTO(r statutory.Result) StatutoryResultDTO {
	return StatutoryResultDTO{
		GrossSalary:                money(r.GrossSalary),
		UnpaidLeaveDeduction:       money(r.UnpaidLeaveDeduction),
		EPFEmployee:                money(r.EPFEmployee),
		EPFEmployer:                money(r.EPFEmployer),
		SOCSOEmployee:              money(r.SOCSOEmployee),
		SOCSOEmployer:              money(r.SOCSOEmployer),
		EISEmployee:                money(r.EISEmployee),
		EISEmployer:                money(r.EISEmployer),
		PCB:                        money(r.PCB),
		NetSalary:                  money(r.NetSalary),
		TotalEmployeeDeductions:    money(r.EmployeeDeductions()),
		TotalEmployerContributions: money(r.EmployerContributions()),
		EmployerCost:               money(r.EmployerCost()),
	}
}

func toEmployeeDTO(e payroll.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                e.ID,
		Name:              e.Name,
		NRIC:              e.NRIC,
		Position:          e.Position,
		BasicSalary:       money(e.BasicSalary),
		Status:            string(e.Status),
		EPFNumber:         e.EPFNumber,
		TaxNumber:         e.TaxNumber,
		BankAccountNumber: e.BankAccountNumber,
		CreatedAt:         e.CreatedAt,
	}
	if !e.JoinDate.IsZero() {
		dto.JoinDate = e.JoinDate.Format(dateLayout)
	}
	if e.ResignationDate != nil {
		dto.ResignationDate = e.ResignationDate.Format(dateLayout)
	}
	return dto
}

// toEmployee assumes req has passed validation, so dates parse.
func (req CreateEmployeeRequest) toEmployee() payroll.Employee {
	emp := payroll.Employee{
		ID:                req.ID,
		Name:              req.Name,
		NRIC:              req.NRIC,
		Position:          req.Position,
		BasicSalary:       req.BasicSalary,
		Status:            payroll.EmployeeStatus(req.Status),
		EPFNumber:         req.EPFNumber,
		TaxNumber:         req.TaxNumber,
		BankAccountNumber: req.BankAccountNumber,
	}
	if req.JoinDate != "" {
		emp.JoinDate, _ = time.Parse(dateLayout, req.JoinDate)
	}
	if req.ResignationDate != "" {
		d, _ := time.Parse(dateLayout, req.ResignationDate)
		emp.ResignationDate = &d
	}
	return emp
}

func (req RunPayrollRequest) toRunRequest() payroll.RunRequest {
	out := payroll.RunRequest{Month: req.Month, Year: req.Year}
	if len(req.Inputs) > 0 {
		out.Inputs = make(map[string]payroll.RunInputs, len(req.Inputs))
		for id, in := range req.Inputs {
			out.Inputs[id] = payroll.RunInputs{
				Allowance:       in.Allowance,
				Bonus:           in.Bonus,
				Overtime:        in.Overtime,
				OtherDeductions: in.OtherDeductions,
				PCB:             in.PCB,
				DaysWorked:      in.DaysWorked,
				UnpaidDays:      in.UnpaidLeaveDays,
			}
		}
	}
	return out
}

func toRecordDTO(r payroll.Record) RecordDTO {
	return RecordDTO{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		Month:              r.Month,
		Year:               r.Year,
		BasicSalary:        money(r.BasicSalary),
		Allowance:          money(r.Allowance),
		Bonus:              money(r.Bonus),
		Overtime:           money(r.Overtime),
		OtherDeductions:    money(r.OtherDeductions),
		UnpaidLeaveDays:    r.UnpaidLeaveDays.String(),
		WorkingDays:        r.WorkingDays,
		IsPaid:             r.IsPaid,
		StatutoryResultDTO: toResultDTO(r.Result),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toRecordDTOs(records []payroll.Record) []RecordDTO {
	out := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordDTO(r))
	}
	return out
}

func toRunSummaryDTO(s payroll.RunSummary) RunSummaryDTO {
	return RunSummaryDTO{
		Month:        s.Month,
		Year:         s.Year,
		Period:       payroll.PeriodLabel(s.Month, s.Year),
		DaysInMonth:  s.DaysInMonth,
		Created:      s.Created,
		Updated:      s.Updated,
		TotalGross:   money(s.TotalGross),
		TotalNet:     money(s.TotalNet),
		EmployerCost: money(s.EmployerCost),
		Records:      toRecordDTOs(s.Records),
	}
}

func toEAFormDTO(f payroll.EAForm) EAFormDTO {
	months := f.MonthsPaid
	if months == nil {
		months = []int{}
	}
	return EAFormDTO{
		Year:         f.Year,
		CompanyName:  f.Company.Name,
		EmployeeID:   f.Employee.ID,
		EmployeeName: f.Employee.Name,
		NRIC:         f.Employee.NRIC,
		TaxNumber:    f.Employee.TaxNumber,
		Gross:        money(f.Gross),
		EPF:          money(f.EPF),
		SOCSO:        money(f.SOCSO),
		EIS:          money(f.EIS),
		PCB:          money(f.PCB),
		MonthsPaid:   months,
	}
}

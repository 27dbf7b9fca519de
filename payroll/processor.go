package payroll

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/nric"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

// DefaultWorkers bounds concurrent calculations in a run.
const DefaultWorkers = 4

// Processor orchestrates payroll runs against a Store.
//
// Exported fields may be set after NewProcessor and before first use.
type Processor struct {
	Store      Store
	Calculator *statutory.Calculator
	Company    Company
	Workers    int
	Logger     zerolog.Logger

	// Now and NewID are replaceable for deterministic tests.
	Now   func() time.Time
	NewID func() string

	// periodLocks holds one *sync.Mutex per (year, month) being run.
	periodLocks sync.Map
}

// NewProcessor creates a processor with default settings.
func NewProcessor(store Store, calc *statutory.Calculator) *Processor {
	if calc == nil {
		calc = statutory.Default()
	}
	return &Processor{
		Store:      store,
		Calculator: calc,
		Workers:    DefaultWorkers,
		Logger:     zerolog.Nop(),
		Now:        time.Now,
		NewID:      uuid.NewString,
	}
}

// =============================================================================
// BATCH RUN
// =============================================================================

// Run computes and saves the month's payroll for every active employee.
//
// Existing records for the same employee and period are updated in place and
// reset to unpaid. Records are saved in a single atomic batch, so a failed
// run leaves the store unchanged. Concurrent runs of the same period are
// serialised; the later one updates what the earlier one saved.
func (p *Processor) Run(ctx context.Context, req RunRequest) (*RunSummary, error) {
	if err := ValidatePeriod(req.Month, req.Year); err != nil {
		return nil, err
	}

	unlock := p.lockPeriod(req.Month, req.Year)
	defer unlock()

	employees, err := p.Store.ListEmployees(ctx, EmployeeFilter{Status: StatusActive})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, ErrNoActiveEmployees
	}
	p.warnUnknownInputs(employees, req.Inputs)

	month, year := req.Month, req.Year
	existing, err := p.Store.ListRecords(ctx, RecordFilter{Month: &month, Year: &year})
	if err != nil {
		return nil, fmt.Errorf("failed to load existing records: %w", err)
	}
	byEmployee := make(map[string]Record, len(existing))
	for _, r := range existing {
		byEmployee[r.EmployeeID] = r
	}

	days := DaysInMonth(month, year)
	records := make([]Record, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, emp := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := p.compute(emp, req.Inputs[emp.ID], month, year, days)
			if err != nil {
				return &RunError{EmployeeID: emp.ID, Err: err}
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &RunSummary{
		Month:        month,
		Year:         year,
		DaysInMonth:  days,
		TotalGross:   decimal.Zero,
		TotalNet:     decimal.Zero,
		EmployerCost: decimal.Zero,
	}
	now := p.Now()
	for i := range records {
		rec := &records[i]
		if prev, ok := byEmployee[rec.EmployeeID]; ok {
			rec.ID = prev.ID
			rec.CreatedAt = prev.CreatedAt
			summary.Updated++
		} else {
			rec.ID = p.NewID()
			rec.CreatedAt = now
			summary.Created++
		}
		rec.UpdatedAt = now

		summary.TotalGross = summary.TotalGross.Add(rec.GrossSalary)
		summary.TotalNet = summary.TotalNet.Add(rec.NetSalary)
		summary.EmployerCost = summary.EmployerCost.Add(rec.EmployerCost())
	}

	if err := p.Store.SaveRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save payroll records: %w", err)
	}
	summary.Records = records

	p.Logger.Info().
		Int("month", month).
		Int("year", year).
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Str("total_net", summary.TotalNet.StringFixed(2)).
		Msg("payroll run complete")

	return summary, nil
}

// Preview computes a record without saving it. The result has no ID.
func (p *Processor) Preview(emp Employee, in RunInputs, month, year int) (Record, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return Record{}, err
	}
	return p.compute(emp, in, month, year, DaysInMonth(month, year))
}

func (p *Processor) compute(emp Employee, in RunInputs, month, year, days int) (Record, error) {
	if err := validateInputs(in, days); err != nil {
		return Record{}, err
	}

	worked := in.DaysWorked
	if worked == 0 {
		worked = days
	}
	actualBasic := statutory.RoundCents(
		emp.BasicSalary.Mul(decimal.NewFromInt(int64(worked))).Div(decimal.NewFromInt(int64(days))),
	)

	result := p.Calculator.Calculate(statutory.Inputs{
		ActualBasicSalary: actualBasic,
		Allowance:         in.Allowance,
		Bonus:             in.Bonus,
		Overtime:          in.Overtime,
		UnpaidLeaveDays:   in.UnpaidDays,
		OtherDeductions:   in.OtherDeductions,
		ManualPCB:         in.PCB,
		DaysInMonth:       days,
		AgeYears:          nric.DeriveAge(emp.NRIC, year),
	})

	return Record{
		EmployeeID:      emp.ID,
		Month:           month,
		Year:            year,
		BasicSalary:     actualBasic,
		Allowance:       in.Allowance,
		Bonus:           in.Bonus,
		Overtime:        in.Overtime,
		OtherDeductions: in.OtherDeductions,
		UnpaidLeaveDays: in.UnpaidDays,
		Result:          result,
		IsPaid:          false,
		WorkingDays:     worked,
	}, nil
}

func validateInputs(in RunInputs, days int) error {
	if in.DaysWorked < 0 || in.DaysWorked > days {
		return fmt.Errorf("%w: days worked %d outside 0-%d", ErrInvalidInputs, in.DaysWorked, days)
	}
	if in.UnpaidDays.IsNegative() || in.UnpaidDays.GreaterThan(decimal.NewFromInt(int64(days))) {
		return fmt.Errorf("%w: unpaid days %s outside 0-%d", ErrInvalidInputs, in.UnpaidDays, days)
	}
	for name, v := range map[string]decimal.Decimal{
		"allowance":        in.Allowance,
		"bonus":            in.Bonus,
		"overtime":         in.Overtime,
		"other deductions": in.OtherDeductions,
		"pcb":              in.PCB,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: negative %s", ErrInvalidInputs, name)
		}
	}
	return nil
}

func (p *Processor) warnUnknownInputs(employees []Employee, inputs map[string]RunInputs) {
	if len(inputs) == 0 {
		return
	}
	active := make(map[string]bool, len(employees))
	for _, e := range employees {
		active[e.ID] = true
	}
	for id := range inputs {
		if !active[id] {
			p.Logger.Warn().Str("employee_id", id).Msg("inputs ignored: employee not active")
		}
	}
}

func (p *Processor) lockPeriod(month, year int) func() {
	v, _ := p.periodLocks.LoadOrStore(year*100+month, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (p *Processor) workers() int {
	if p.Workers < 1 {
		return 1
	}
	return p.Workers
}

// =============================================================================
// RECORD OPERATIONS
// =============================================================================

// GetRecord returns a record or ErrRecordNotFound.
func (p *Processor) GetRecord(ctx context.Context, id string) (*Record, error) {
	rec, err := p.Store.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return rec, nil
}

// ListRecords returns records matching filter.
func (p *Processor) ListRecords(ctx context.Context, filter RecordFilter) ([]Record, error) {
	return p.Store.ListRecords(ctx, filter)
}

// TogglePaid flips a record between paid and unpaid.
func (p *Processor) TogglePaid(ctx context.Context, id string) (*Record, error) {
	rec, err := p.Store.TogglePaid(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Logger.Info().Str("record_id", id).Bool("is_paid", rec.IsPaid).Msg("payment status changed")
	return rec, nil
}

// DeleteRecord permanently removes a record.
func (p *Processor) DeleteRecord(ctx context.Context, id string) error {
	if err := p.Store.DeleteRecord(ctx, id); err != nil {
		return err
	}
	p.Logger.Info().Str("record_id", id).Msg("payroll record deleted")
	return nil
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// AddEmployee saves a new employee, assigning an ID and defaults.
func (p *Processor) AddEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	if emp.ID == "" {
		emp.ID = p.NewID()
	}
	if emp.Status == "" {
		emp.Status = StatusActive
	}
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = p.Now()
	}
	if err := p.Store.SaveEmployee(ctx, emp); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	return &emp, nil
}

// GetEmployee returns an employee or ErrEmployeeNotFound.
func (p *Processor) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	emp, err := p.Store.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	return emp, nil
}

// =============================================================================
// EA FORM
// =============================================================================

// EAForm totals an employee's paid records for year.
func (p *Processor) EAForm(ctx context.Context, employeeID string, year int) (*EAForm, error) {
	if err := ValidatePeriod(1, year); err != nil {
		return nil, err
	}
	emp, err := p.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := p.Store.ListRecords(ctx, RecordFilter{EmployeeID: employeeID, Year: &year, PaidOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	form := &EAForm{
		Year:     year,
		Company:  p.Company,
		Employee: *emp,
		Gross:    decimal.Zero,
		EPF:      decimal.Zero,
		SOCSO:    decimal.Zero,
		EIS:      decimal.Zero,
		PCB:      decimal.Zero,
	}
	for _, r := range records {
		form.Gross = form.Gross.Add(r.GrossSalary)
		form.EPF = form.EPF.Add(r.EPFEmployee)
		form.SOCSO = form.SOCSO.Add(r.SOCSOEmployee)
		form.EIS = form.EIS.Add(r.EISEmployee)
		form.PCB = form.PCB.Add(r.PCB)
		form.MonthsPaid = append(form.MonthsPaid, r.Month)
	}
	sort.Ints(form.MonthsPaid)
	return form, nil
}

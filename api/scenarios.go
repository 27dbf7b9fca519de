/*
scenarios.go - Demo data for the payroll service

PURPOSE:
  Loads a small tuition centre's workforce (and optionally a quarter of
  payroll history) so the API can be explored without manual setup.

SCENARIOS:
  empty                   Clears all data
  tuition-centre          Five staff: full-time, part-time, a senior over 60
                          and one resigned tutor
  tuition-centre-history  Same staff plus January to March runs of the
                          current year, January and February marked paid

Loading a scenario resets the store first. Only stores with a Reset method
support scenarios.
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

var scenarios = []ScenarioDTO{
	{
		ID:          "empty",
		Name:        "Empty Company",
		Description: "No employees and no payroll records",
		Category:    "basic",
	},
	{
		ID:          "tuition-centre",
		Name:        "Tuition Centre",
		Description: "Four active staff including a part-timer and a senior administrator, one resigned tutor",
		Category:    "basic",
	},
	{
		ID:          "tuition-centre-history",
		Name:        "Tuition Centre With History",
		Description: "Tuition centre staff with January to March payroll, the first two months paid",
		Category:    "payroll",
	},
}

type resetter interface {
	Reset(ctx context.Context) error
}

var errResetUnsupported = errors.New("store does not support reset")

// ListScenarios returns all available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario resets the store and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}

	var load func(context.Context) error
	switch req.ScenarioID {
	case "empty":
		load = func(context.Context) error { return nil }
	case "tuition-centre":
		load = h.loadTuitionCentre
	case "tuition-centre-history":
		load = h.loadTuitionCentreHistory
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("no scenario %q", req.ScenarioID))
		return
	}

	ctx := r.Context()
	store, ok := h.Processor.Store.(resetter)
	if !ok {
		writeError(w, http.StatusNotImplemented, "Scenarios unavailable", errResetUnsupported)
		return
	}
	if err := store.Reset(ctx); err != nil {
		h.handleError(w, err, "Failed to reset data")
		return
	}
	if err := load(ctx); err != nil {
		h.handleError(w, err, "Failed to load scenario")
		return
	}

	h.Logger.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadTuitionCentre(ctx context.Context) error {
	resigned := date(2024, 12, 31)
	staff := []payroll.Employee{
		{
			ID: "emp-aina", Name: "Aina Zulkifli", NRIC: "950214-10-5522",
			Position: "Senior Tutor", BasicSalary: decimal.NewFromInt(3200),
			EPFNumber: "21457788", TaxNumber: "SG 10234567080", BankAccountNumber: "1640 2201 7788",
			JoinDate: date(2021, 3, 1),
		},
		{
			ID: "emp-bala", Name: "Balakrishnan a/l Muthu", NRIC: "880705-08-6131",
			Position: "Centre Manager", BasicSalary: decimal.NewFromInt(5200),
			EPFNumber: "19882301", TaxNumber: "SG 20988123010", BankAccountNumber: "5140 8812 3301",
			JoinDate: date(2019, 1, 2),
		},
		{
			ID: "emp-mei", Name: "Tan Mei Ling", NRIC: "020930-14-0288",
			Position: "Part-time Tutor", BasicSalary: decimal.NewFromInt(1500),
			EPFNumber: "24410962", BankAccountNumber: "7012 4410 9620",
			JoinDate: date(2024, 6, 17),
		},
		{
			ID: "emp-hassan", Name: "Hassan bin Omar", NRIC: "580312-06-5011",
			Position: "Administrator", BasicSalary: decimal.NewFromInt(2400),
			EPFNumber: "07731145", TaxNumber: "SG 04451129030", BankAccountNumber: "1620 7731 1450",
			JoinDate: date(2015, 8, 10),
		},
		{
			ID: "emp-farah", Name: "Farah Idris", NRIC: "970118-12-7744",
			Position: "Tutor", BasicSalary: decimal.NewFromInt(2800),
			Status: payroll.StatusResigned, ResignationDate: &resigned,
			EPFNumber: "22019876", BankAccountNumber: "5640 2201 9876",
			JoinDate: date(2022, 2, 14),
		},
	}

	for _, emp := range staff {
		if _, err := h.Processor.AddEmployee(ctx, emp); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadTuitionCentreHistory(ctx context.Context) error {
	if err := h.loadTuitionCentre(ctx); err != nil {
		return err
	}

	year := h.Now().Year()
	runs := []payroll.RunRequest{
		{Month: 1, Year: year, Inputs: map[string]payroll.RunInputs{
			"emp-mei":  {DaysWorked: 20},
			"emp-bala": {PCB: decimal.NewFromInt(85)},
		}},
		{Month: 2, Year: year, Inputs: map[string]payroll.RunInputs{
			"emp-aina": {Allowance: decimal.NewFromInt(150), UnpaidDays: decimal.NewFromInt(1)},
			"emp-bala": {PCB: decimal.NewFromInt(85)},
		}},
		{Month: 3, Year: year, Inputs: map[string]payroll.RunInputs{
			"emp-aina":   {Bonus: decimal.NewFromInt(500)},
			"emp-bala":   {PCB: decimal.NewFromInt(85), Overtime: decimal.NewFromInt(240)},
			"emp-hassan": {OtherDeductions: decimal.NewFromInt(50)},
		}},
	}

	for _, req := range runs {
		summary, err := h.Processor.Run(ctx, req)
		if err != nil {
			return fmt.Errorf("run %s: %w", payroll.PeriodLabel(req.Month, req.Year), err)
		}
		if req.Month == 3 {
			continue
		}
		for _, rec := range summary.Records {
			if _, err := h.Processor.TogglePaid(ctx, rec.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

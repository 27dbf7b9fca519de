package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

// inputsFile is the --inputs document: variable amounts keyed by employee ID.
type inputsFile map[string]struct {
	Allowance       decimal.Decimal `json:"allowance"`
	Bonus           decimal.Decimal `json:"bonus"`
	Overtime        decimal.Decimal `json:"overtime"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	PCB             decimal.Decimal `json:"pcb"`
	DaysWorked      int             `json:"days_worked"`
	UnpaidLeaveDays decimal.Decimal `json:"unpaid_leave_days"`
}

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a month's payroll for all active employees",
		Long: `Compute and save the payroll for every active employee for one month.

Running a month again updates the existing records and marks them unpaid.
Variable amounts come from an optional JSON file keyed by employee ID:

  {"emp-aina": {"bonus": "500", "days_worked": 20, "pcb": "12.50"}}`,
		Example: `  paycalc run --month 3 --year 2025
  paycalc run --month 3 --year 2025 --inputs march.json --mark-paid`,
		Args: cobra.NoArgs,
		RunE: a.runPayroll,
	}

	f := cmd.Flags()
	f.Int("month", 0, "Month (1-12, default: this month)")
	f.Int("year", 0, "Year (default: this year)")
	f.String("inputs", "", "JSON file with per-employee variable amounts")
	f.Bool("mark-paid", false, "Mark the saved records as paid")
	return cmd
}

func (a *app) runPayroll(cmd *cobra.Command, _ []string) error {
	now := a.now()
	req := payroll.RunRequest{Month: int(now.Month()), Year: now.Year()}
	if m, _ := cmd.Flags().GetInt("month"); m != 0 {
		req.Month = m
	}
	if y, _ := cmd.Flags().GetInt("year"); y != 0 {
		req.Year = y
	}

	if path, _ := cmd.Flags().GetString("inputs"); path != "" {
		inputs, err := readInputs(path)
		if err != nil {
			return err
		}
		req.Inputs = inputs
	}

	p, store, err := a.openProcessor()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	summary, err := p.Run(ctx, req)
	if err != nil {
		return err
	}

	if markPaid, _ := cmd.Flags().GetBool("mark-paid"); markPaid {
		for i, rec := range summary.Records {
			updated, err := p.TogglePaid(ctx, rec.ID)
			if err != nil {
				return err
			}
			summary.Records[i] = *updated
		}
	}

	names := map[string]string{}
	employees, err := store.ListEmployees(ctx, payroll.EmployeeFilter{Status: payroll.StatusActive})
	if err != nil {
		return err
	}
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Payroll %s (%d days): %d created, %d updated\n",
		payroll.PeriodLabel(summary.Month, summary.Year), summary.DaysInMonth, summary.Created, summary.Updated)
	for _, r := range summary.Records {
		status := "unpaid"
		if r.IsPaid {
			status = "paid"
		}
		fmt.Fprintf(w, "  %-28s gross %10s  net %10s  %s\n",
			names[r.EmployeeID], r.GrossSalary.StringFixed(2), r.NetSalary.StringFixed(2), status)
	}
	fmt.Fprintf(w, "Total gross %s, total net %s, employer cost %s\n",
		summary.TotalGross.StringFixed(2), summary.TotalNet.StringFixed(2), summary.EmployerCost.StringFixed(2))
	return nil
}

func readInputs(path string) (map[string]payroll.RunInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs: %w", err)
	}
	var file inputsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse inputs %s: %w", path, err)
	}

	out := make(map[string]payroll.RunInputs, len(file))
	for id, in := range file {
		out[id] = payroll.RunInputs{
			Allowance:       in.Allowance,
			Bonus:           in.Bonus,
			Overtime:        in.Overtime,
			OtherDeductions: in.OtherDeductions,
			PCB:             in.PCB,
			DaysWorked:      in.DaysWorked,
			UnpaidDays:      in.UnpaidLeaveDays,
		}
	}
	return out, nil
}

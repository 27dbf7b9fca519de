package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/nric"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

func (a *app) calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate statutory contributions for one month's earnings",
		Long: `Calculate EPF, SOCSO and EIS for one employee and one month.

The employee's age decides the EPF rate. Give it with --age, or pass --nric to
derive it as of --year (default: this year). Without either, 30 is assumed.`,
		Example: `  # Full month on RM3,000
  paycalc calc --basic 3000

  # Senior employee with allowance, one unpaid day in a 30-day month
  paycalc calc --basic 2500 --allowance 200 --unpaid-days 1 --days 30 --nric 580312-06-5011

  # Machine-readable output
  paycalc calc --basic 4200 --pcb 85.50 --json`,
		Args: cobra.NoArgs,
		RunE: a.runCalc,
	}

	f := cmd.Flags()
	f.String("basic", "0", "Basic salary actually earned this month (RM)")
	f.String("allowance", "0", "Allowance (RM)")
	f.String("bonus", "0", "Bonus (RM)")
	f.String("overtime", "0", "Overtime pay (RM)")
	f.String("unpaid-days", "0", "Unpaid leave days")
	f.String("other-deductions", "0", "Other deductions (RM)")
	f.String("pcb", "0", "Monthly tax deduction (RM)")
	f.Int("days", 0, "Days in month (default 30)")
	f.Int("age", -1, "Age in years")
	f.String("nric", "", "NRIC to derive the age from")
	f.Int("year", 0, "Reference year for --nric (default: this year)")
	f.Bool("json", false, "Print JSON instead of a table")
	return cmd
}

func (a *app) runCalc(cmd *cobra.Command, _ []string) error {
	in := statutory.Inputs{}
	for _, p := range []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"basic", &in.ActualBasicSalary},
		{"allowance", &in.Allowance},
		{"bonus", &in.Bonus},
		{"overtime", &in.Overtime},
		{"unpaid-days", &in.UnpaidLeaveDays},
		{"other-deductions", &in.OtherDeductions},
		{"pcb", &in.ManualPCB},
	} {
		d, err := decimalFlag(cmd, p.flag)
		if err != nil {
			return err
		}
		*p.dst = d
	}
	in.DaysInMonth, _ = cmd.Flags().GetInt("days")
	in.AgeYears = a.resolveAge(cmd)

	calc, err := a.calculator()
	if err != nil {
		return err
	}
	result := calc.Calculate(in)

	a.log.Debug().
		Str("gross", result.GrossSalary.String()).
		Int("age", in.AgeYears).
		Msg("calculated")

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeResultJSON(cmd.OutOrStdout(), in.AgeYears, result)
	}
	printResult(cmd.OutOrStdout(), in.AgeYears, result)
	return nil
}

func (a *app) resolveAge(cmd *cobra.Command) int {
	if age, _ := cmd.Flags().GetInt("age"); age >= 0 {
		return age
	}
	id, _ := cmd.Flags().GetString("nric")
	if id == "" {
		return nric.DefaultAge
	}
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = a.now().Year()
	}
	return nric.DeriveAge(id, year)
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s must not be negative", name)
	}
	return d, nil
}

func printResult(w io.Writer, age int, r statutory.Result) {
	line := func(label string, d decimal.Decimal) {
		fmt.Fprintf(w, "%-28s %12s\n", label, d.StringFixed(2))
	}
	fmt.Fprintf(w, "%-28s %12d\n", "Age", age)
	line("Gross salary", r.GrossSalary)
	line("Unpaid leave deduction", r.UnpaidLeaveDeduction)
	fmt.Fprintln(w)
	line("EPF employee", r.EPFEmployee)
	line("SOCSO employee", r.SOCSOEmployee)
	line("EIS employee", r.EISEmployee)
	line("PCB", r.PCB)
	line("Net salary", r.NetSalary)
	fmt.Fprintln(w)
	line("EPF employer", r.EPFEmployer)
	line("SOCSO employer", r.SOCSOEmployer)
	line("EIS employer", r.EISEmployer)
	line("Employer cost", r.EmployerCost())
}

type resultJSON struct {
	AgeYears      int    `json:"age_years"`
	GrossSalary   string `json:"gross_salary"`
	UnpaidLeave   string `json:"unpaid_leave_deduction"`
	EPFEmployee   string `json:"epf_employee"`
	EPFEmployer   string `json:"epf_employer"`
	SOCSOEmployee string `json:"socso_employee"`
	SOCSOEmployer string `json:"socso_employer"`
	EISEmployee   string `json:"eis_employee"`
	EISEmployer   string `json:"eis_employer"`
	PCB           string `json:"pcb"`
	NetSalary     string `json:"net_salary"`
	EmployerCost  string `json:"employer_cost"`
}

func writeResultJSON(w io.Writer, age int, r statutory.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resultJSON{
		AgeYears:      age,
		GrossSalary:   r.GrossSalary.StringFixed(2),
		UnpaidLeave:   r.UnpaidLeaveDeduction.StringFixed(2),
		EPFEmployee:   r.EPFEmployee.StringFixed(2),
		EPFEmployer:   r.EPFEmployer.StringFixed(2),
		SOCSOEmployee: r.SOCSOEmployee.StringFixed(2),
		SOCSOEmployer: r.SOCSOEmployer.StringFixed(2),
		EISEmployee:   r.EISEmployee.StringFixed(2),
		EISEmployer:   r.EISEmployer.StringFixed(2),
		PCB:           r.PCB.StringFixed(2),
		NetSalary:     r.NetSalary.StringFixed(2),
		EmployerCost:  r.EmployerCost().StringFixed(2),
	})
}

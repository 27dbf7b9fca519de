package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

func (a *app) eaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ea",
		Short: "Print an employee's yearly EA form totals",
		Long: `Total an employee's paid payroll records for one year, as reported on the
EA form. Unpaid records are not counted. With --pdf the form is also written
as a PDF.`,
		Example: `  paycalc ea --employee emp-aina --year 2025
  paycalc ea --employee emp-aina --year 2025 --pdf ea-2025.pdf`,
		Args: cobra.NoArgs,
		RunE: a.runEA,
	}

	f := cmd.Flags()
	f.String("employee", "", "Employee ID")
	f.Int("year", 0, "Year (default: this year)")
	f.String("pdf", "", "Write the EA form PDF to this file")
	cmd.MarkFlagRequired("employee")
	return cmd
}

func (a *app) runEA(cmd *cobra.Command, _ []string) error {
	employeeID, _ := cmd.Flags().GetString("employee")
	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year = a.now().Year()
	}

	p, store, err := a.openProcessor()
	if err != nil {
		return err
	}
	defer store.Close()

	form, err := p.EAForm(cmd.Context(), employeeID, year)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "EA %d: %s (%s)\n", form.Year, form.Employee.Name, form.Employee.NRIC)
	fmt.Fprintf(w, "%-20s %12s\n", "Gross remuneration", form.Gross.StringFixed(2))
	fmt.Fprintf(w, "%-20s %12s\n", "EPF", form.EPF.StringFixed(2))
	fmt.Fprintf(w, "%-20s %12s\n", "SOCSO", form.SOCSO.StringFixed(2))
	fmt.Fprintf(w, "%-20s %12s\n", "EIS", form.EIS.StringFixed(2))
	fmt.Fprintf(w, "%-20s %12s\n", "PCB", form.PCB.StringFixed(2))
	fmt.Fprintf(w, "%-20s %s\n", "Months paid", monthNames(form.MonthsPaid))

	path, _ := cmd.Flags().GetString("pdf")
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := payroll.RenderEAForm(f, *form); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.log.Info().Str("file", path).Msg("EA form written")
	return nil
}

func monthNames(months []int) string {
	if len(months) == 0 {
		return "none"
	}
	out := ""
	for i, m := range months {
		if i > 0 {
			out += ", "
		}
		out += time.Month(m).String()[:3]
	}
	return out
}

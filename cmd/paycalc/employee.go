package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

func (a *app) employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Add and list employees",
	}
	cmd.AddCommand(a.employeeAddCmd(), a.employeeListCmd())
	return cmd
}

func (a *app) employeeAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an employee",
		Example: `  paycalc employee add --name "Aina Zulkifli" --nric 950214-10-5522 --basic 3200 --position Tutor`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			basic, err := decimalFlag(cmd, "basic")
			if err != nil {
				return err
			}
			f := cmd.Flags()
			emp := payroll.Employee{BasicSalary: basic}
			emp.ID, _ = f.GetString("id")
			emp.Name, _ = f.GetString("name")
			emp.NRIC, _ = f.GetString("nric")
			emp.Position, _ = f.GetString("position")
			emp.EPFNumber, _ = f.GetString("epf-number")
			emp.TaxNumber, _ = f.GetString("tax-number")
			emp.BankAccountNumber, _ = f.GetString("bank-account")
			if joined, _ := f.GetString("join-date"); joined != "" {
				emp.JoinDate, err = time.Parse("2006-01-02", joined)
				if err != nil {
					return fmt.Errorf("invalid join date format. Use YYYY-MM-DD: %w", err)
				}
			}

			p, store, err := a.openProcessor()
			if err != nil {
				return err
			}
			defer store.Close()

			saved, err := p.AddEmployee(cmd.Context(), emp)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", saved.Name, saved.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("id", "", "Employee ID (generated if empty)")
	f.String("name", "", "Full name")
	f.String("nric", "", "NRIC number")
	f.String("position", "", "Job title")
	f.String("basic", "0", "Monthly basic salary (RM)")
	f.String("epf-number", "", "EPF membership number")
	f.String("tax-number", "", "Income tax number")
	f.String("bank-account", "", "Bank account number")
	f.String("join-date", "", "Join date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("nric")
	return cmd
}

func (a *app) employeeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, store, err := a.openProcessor()
			if err != nil {
				return err
			}
			defer store.Close()

			filter := payroll.EmployeeFilter{}
			if all, _ := cmd.Flags().GetBool("all"); !all {
				filter.Status = payroll.StatusActive
			}
			employees, err := p.Store.ListEmployees(cmd.Context(), filter)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, e := range employees {
				fmt.Fprintf(w, "%-38s %-28s %-16s %10s %s\n",
					e.ID, e.Name, e.NRIC, e.BasicSalary.StringFixed(2), e.Status)
			}
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "Include resigned employees")
	return cmd
}

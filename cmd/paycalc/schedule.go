package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/factory"
)

func (a *app) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the rate schedule in use as JSON",
		Long: `Print the statutory rate schedule as JSON: the built-in tables, or the file
given by --schedule / RATE_SCHEDULE_FILE merged over them. The output is a
valid schedule file and can be edited and passed back with --schedule.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := a.calculator()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(factory.NewScheduleFactory().ToJSON(calc.Schedule()))
		},
	}
}

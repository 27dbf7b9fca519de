package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/config"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/logger"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/store/sqlite"
)

var version = "1.0.0"

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfg    config.Config
	closer io.Closer
	log    zerolog.Logger
	now    func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "paycalc",
		Short: "Malaysian statutory payroll from the command line",
		Long: `paycalc computes EPF, SOCSO and EIS contributions and runs the monthly
payroll against the same SQLite database the HTTP server uses.

Configuration comes from the environment (and .env), the same keys the server
reads. DB_PATH and RATE_SCHEDULE_FILE can be overridden with --db and --schedule.
Logs go to stderr so command output can be piped.`,
		Version:            version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.String("env", ".env", "Environment file to load (skipped if missing)")
	flags.String("db", "", "SQLite database path (overrides DB_PATH)")
	flags.String("schedule", "", "Rate schedule JSON file (overrides RATE_SCHEDULE_FILE)")
	flags.String("log-level", "", "Log level (overrides LOG_LEVEL)")

	root.AddCommand(
		a.calcCmd(),
		a.scheduleCmd(),
		a.employeeCmd(),
		a.runCmd(),
		a.eaCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	envFile, _ := cmd.Flags().GetString("env")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("schedule"); v != "" {
		cfg.RateScheduleFile = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if cfg.LogOutput == "stdout" {
		cfg.LogOutput = "stderr"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	closer, err := logger.Setup(cfg.LogConfig())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.closer = closer
	a.log = logger.WithComponent(cmd.Name())
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *app) calculator() (*statutory.Calculator, error) {
	schedule, err := a.cfg.Schedule()
	if err != nil {
		return nil, fmt.Errorf("failed to load rate schedule: %w", err)
	}
	return statutory.NewCalculator(schedule), nil
}

// openProcessor opens the configured database. The caller closes the store.
func (a *app) openProcessor() (*payroll.Processor, *sqlite.Store, error) {
	calc, err := a.calculator()
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.New(a.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	p := payroll.NewProcessor(store, calc)
	p.Company = a.cfg.Company()
	p.Workers = a.cfg.RunWorkers
	p.Logger = a.log
	p.Now = a.now
	return p, store, nil
}

/*
scheduler.go - Automated monthly payroll run

PURPOSE:
  Periodically checks whether the current month's payroll is due and, if
  no records exist for it yet, runs it for all active employees with no
  variable inputs. Months already run (manually or by a previous tick) are
  left alone, so manual adjustments are never overwritten.

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - PayDay:        Day of month from which the run is due (default: 25)

USAGE:
  scheduler := NewRunScheduler(processor)
  scheduler.Start()
  // ... later
  scheduler.Stop()
*/
package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
)

// RunScheduler runs the monthly payroll on pay day.
type RunScheduler struct {
	Processor     *payroll.Processor
	CheckInterval time.Duration
	PayDay        int
	Logger        zerolog.Logger
	Now           func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRunScheduler creates a scheduler with default settings.
func NewRunScheduler(processor *payroll.Processor) *RunScheduler {
	return &RunScheduler{
		Processor:     processor,
		CheckInterval: time.Hour,
		PayDay:        25,
		Logger:        zerolog.Nop(),
		Now:           time.Now,
	}
}

// Start begins checking in the background. Calling Start twice is a no-op.
func (rs *RunScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		return
	}
	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.stop = make(chan struct{})
	rs.wg.Add(1)
	go rs.run()

	rs.Logger.Info().
		Dur("interval", rs.CheckInterval).
		Int("pay_day", rs.PayDay).
		Msg("payroll scheduler started")
}

// Stop halts the scheduler and waits for an in-flight check to finish.
func (rs *RunScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker == nil {
		return
	}
	rs.ticker.Stop()
	close(rs.stop)
	rs.wg.Wait()
	rs.ticker = nil
	rs.Logger.Info().Msg("payroll scheduler stopped")
}

func (rs *RunScheduler) run() {
	defer rs.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-rs.stop
		cancel()
	}()

	rs.check(ctx)
	for {
		select {
		case <-rs.ticker.C:
			rs.check(ctx)
		case <-rs.stop:
			return
		}
	}
}

func (rs *RunScheduler) check(ctx context.Context) {
	ran, err := rs.CheckAndRun(ctx)
	if err != nil {
		rs.Logger.Error().Err(err).Msg("scheduled payroll run failed")
		return
	}
	if !ran {
		rs.Logger.Debug().Msg("no payroll run due")
	}
}

// CheckAndRun runs the current month if pay day has arrived and the month has
// no records yet. It reports whether a run happened.
func (rs *RunScheduler) CheckAndRun(ctx context.Context) (bool, error) {
	now := rs.Now()
	if now.Day() < rs.PayDay {
		return false, nil
	}

	month, year := int(now.Month()), now.Year()
	existing, err := rs.Processor.ListRecords(ctx, payroll.RecordFilter{Month: &month, Year: &year})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	summary, err := rs.Processor.Run(ctx, payroll.RunRequest{Month: month, Year: year})
	if errors.Is(err, payroll.ErrNoActiveEmployees) {
		rs.Logger.Warn().Int("month", month).Int("year", year).Msg("payroll due but no active employees")
		return false, nil
	}
	if err != nil {
		return false, err
	}

	rs.Logger.Info().
		Int("month", month).
		Int("year", year).
		Int("records", len(summary.Records)).
		Msg("scheduled payroll run complete")
	return true, nil
}

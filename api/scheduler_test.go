package api

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/store/memory"
)

func newScheduler(t *testing.T, day int) (*RunScheduler, *memory.Store) {
	t.Helper()
	store := memory.New()
	p := payroll.NewProcessor(store, nil)
	rs := NewRunScheduler(p)
	rs.Now = func() time.Time { return time.Date(2025, 3, day, 10, 0, 0, 0, time.UTC) }
	return rs, store
}

func addEmployee(t *testing.T, store payroll.Store, id string) {
	t.Helper()
	require.NoError(t, store.SaveEmployee(context.Background(), payroll.Employee{
		ID: id, Name: id, NRIC: "900101-14-5678",
		BasicSalary: decimal.NewFromInt(2500), Status: payroll.StatusActive,
	}))
}

func TestRunScheduler_WaitsForPayDay(t *testing.T) {
	rs, store := newScheduler(t, 10)
	addEmployee(t, store, "e1")

	ran, err := rs.CheckAndRun(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestRunScheduler_RunsOncePerMonth(t *testing.T) {
	ctx := context.Background()
	rs, store := newScheduler(t, 25)
	addEmployee(t, store, "e1")
	addEmployee(t, store, "e2")

	// WHEN: pay day arrives
	ran, err := rs.CheckAndRun(ctx)

	// THEN: March is run for everyone
	require.NoError(t, err)
	assert.True(t, ran)
	month, year := 3, 2025
	records, err := store.ListRecords(ctx, payroll.RecordFilter{Month: &month, Year: &year})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// AND: later checks leave the month alone
	rs.Now = func() time.Time { return time.Date(2025, 3, 28, 10, 0, 0, 0, time.UTC) }
	ran, err = rs.CheckAndRun(ctx)
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestRunScheduler_NoActiveEmployeesIsNotAnError(t *testing.T) {
	rs, _ := newScheduler(t, 26)
	ran, err := rs.CheckAndRun(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestRunScheduler_StartStop(t *testing.T) {
	rs, store := newScheduler(t, 25)
	addEmployee(t, store, "e1")
	rs.CheckInterval = time.Hour

	rs.Start()
	rs.Start()
	require.Eventually(t, func() bool {
		records, err := store.ListRecords(context.Background(), payroll.RecordFilter{})
		return err == nil && len(records) == 1
	}, 2*time.Second, 10*time.Millisecond)
	rs.Stop()
	rs.Stop()
}

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func employee(id, name string, status payroll.EmployeeStatus) payroll.Employee {
	return payroll.Employee{
		ID:          id,
		Name:        name,
		NRIC:        "900101-14-5678",
		Position:    "Tutor",
		BasicSalary: decimal.RequireFromString("3000.50"),
		Status:      status,
		EPFNumber:   "EPF-" + id,
		JoinDate:    time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2023, 1, 10, 9, 0, 0, 0, time.UTC),
	}
}

func record(id, employeeID string, month, year int) payroll.Record {
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: decimal.NewFromInt(3000),
		ManualPCB:         decimal.RequireFromString("12.34"),
		DaysInMonth:       30,
		AgeYears:          30,
	})
	now := time.Date(2025, time.Month(month), 28, 10, 0, 0, 0, time.UTC)
	return payroll.Record{
		ID:          id,
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		BasicSalary: decimal.NewFromInt(3000),
		Result:      result,
		WorkingDays: 30,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestEmployees_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	resigned := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	left := employee("e2", "Bala", payroll.StatusResigned)
	left.ResignationDate = &resigned

	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))
	require.NoError(t, store.SaveEmployee(ctx, left))

	got, err := store.GetEmployee(ctx, "e2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Bala", got.Name)
	assert.True(t, decimal.RequireFromString("3000.50").Equal(got.BasicSalary))
	require.NotNil(t, got.ResignationDate)
	assert.True(t, resigned.Equal(*got.ResignationDate))
	assert.True(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC).Equal(got.JoinDate))

	active, err := store.ListEmployees(ctx, payroll.EmployeeFilter{Status: payroll.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "e1", active[0].ID)

	all, err := store.ListEmployees(ctx, payroll.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	missing, err := store.GetEmployee(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecords_SaveAndQuery(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))
	require.NoError(t, store.SaveEmployee(ctx, employee("e2", "Bala", payroll.StatusActive)))

	// GIVEN: records across two months
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{
		record("r1", "e1", 1, 2025),
		record("r2", "e2", 1, 2025),
		record("r3", "e1", 2, 2025),
	}))

	// THEN: amounts survive exactly
	got, err := store.GetRecord(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(330).Equal(got.EPFEmployee))
	assert.True(t, decimal.RequireFromString("51.65").Equal(got.SOCSOEmployer))
	assert.True(t, decimal.RequireFromString("12.34").Equal(got.PCB))
	assert.True(t, decimal.RequireFromString("2637.01").Equal(got.NetSalary))
	assert.False(t, got.IsPaid)

	// AND: filters apply
	jan := 1
	year := 2025
	records, err := store.ListRecords(ctx, payroll.RecordFilter{Month: &jan, Year: &year})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = store.ListRecords(ctx, payroll.RecordFilter{EmployeeID: "e1"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Month)
	assert.Equal(t, 2, records[1].Month)
}

func TestRecords_UpsertByID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))

	rec := record("r1", "e1", 3, 2025)
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec}))

	// WHEN: the same ID is saved with new figures
	rec.Bonus = decimal.NewFromInt(500)
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec}))

	// THEN: one row, updated
	records, err := store.ListRecords(ctx, payroll.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(records[0].Bonus))
}

func TestRecords_DuplicatePeriodRejectedAtomically(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))
	require.NoError(t, store.SaveEmployee(ctx, employee("e2", "Bala", payroll.StatusActive)))
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{record("r1", "e1", 3, 2025)}))

	// WHEN: a batch contains a fresh record and a second record for e1 in March
	err := store.SaveRecords(ctx, []payroll.Record{
		record("r2", "e2", 3, 2025),
		record("r3", "e1", 3, 2025),
	})

	// THEN: the batch fails and nothing from it is written
	require.Error(t, err)
	got, err := store.GetRecord(ctx, "r2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecords_TogglePaidAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{record("r1", "e1", 3, 2025)}))

	rec, err := store.TogglePaid(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, rec.IsPaid)

	paid, err := store.ListRecords(ctx, payroll.RecordFilter{PaidOnly: true})
	require.NoError(t, err)
	assert.Len(t, paid, 1)

	rec, err = store.TogglePaid(ctx, "r1")
	require.NoError(t, err)
	assert.False(t, rec.IsPaid)

	_, err = store.TogglePaid(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)

	require.NoError(t, store.DeleteRecord(ctx, "r1"))
	assert.ErrorIs(t, store.DeleteRecord(ctx, "r1"), payroll.ErrRecordNotFound)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{record("r1", "e1", 3, 2025)}))

	require.NoError(t, store.Reset(ctx))

	employees, err := store.ListEmployees(ctx, payroll.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestFileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "payroll.db")

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveEmployee(ctx, employee("e1", "Aina", payroll.StatusActive)))
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Ping(ctx))

	got, err := reopened.GetEmployee(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Aina", got.Name)
}

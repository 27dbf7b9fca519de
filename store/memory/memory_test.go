package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/store/memory"
)

func rec(id, employeeID string, month, year int) payroll.Record {
	return payroll.Record{ID: id, EmployeeID: employeeID, Month: month, Year: year, BasicSalary: decimal.NewFromInt(1000)}
}

func TestMemory_EmployeesFilteredAndSorted(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveEmployee(ctx, payroll.Employee{ID: "2", Name: "Zul", Status: payroll.StatusActive}))
	require.NoError(t, store.SaveEmployee(ctx, payroll.Employee{ID: "1", Name: "Amir", Status: payroll.StatusActive}))
	require.NoError(t, store.SaveEmployee(ctx, payroll.Employee{ID: "3", Name: "Mei", Status: payroll.StatusResigned}))

	active, err := store.ListEmployees(ctx, payroll.EmployeeFilter{Status: payroll.StatusActive})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Amir", active[0].Name)
	assert.Equal(t, "Zul", active[1].Name)
}

func TestMemory_SaveRecordsIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec("r1", "e1", 5, 2025)}))

	// WHEN: a batch collides with an existing period under another ID
	err := store.SaveRecords(ctx, []payroll.Record{rec("r2", "e2", 5, 2025), rec("r3", "e1", 5, 2025)})

	// THEN: nothing from the batch lands
	require.Error(t, err)
	got, err := store.GetRecord(ctx, "r2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_UpsertMovesPeriodIndex(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec("r1", "e1", 5, 2025)}))

	// GIVEN: r1 is moved to June
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec("r1", "e1", 6, 2025)}))

	// THEN: May is free for a new record
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec("r2", "e1", 5, 2025)}))

	all, err := store.ListRecords(ctx, payroll.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "r2", all[0].ID)
	assert.Equal(t, "r1", all[1].ID)
}

func TestMemory_ToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec("r1", "e1", 5, 2025)}))

	got, err := store.TogglePaid(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, got.IsPaid)

	require.NoError(t, store.DeleteRecord(ctx, "r1"))
	assert.ErrorIs(t, store.DeleteRecord(ctx, "r1"), payroll.ErrRecordNotFound)
	_, err = store.TogglePaid(ctx, "r1")
	assert.True(t, payroll.IsNotFound(err))

	// The freed period accepts a new record.
	require.NoError(t, store.SaveRecords(ctx, []payroll.Record{rec("r9", "e1", 5, 2025)}))
}

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/store/sqlite"
)

func TestListScenarios(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[[]ScenarioDTO](t, rec)
	require.Len(t, got, 3)
	for _, sc := range got {
		assert.NotEmpty(t, sc.ID)
		assert.NotEmpty(t, sc.Name)
	}
}

func TestLoadScenario_TuitionCentre(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "tuition-centre"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	all := decodeBody[[]EmployeeDTO](t, s.do(t, http.MethodGet, "/api/employees", nil))
	assert.Len(t, all, 5)
	active := decodeBody[[]EmployeeDTO](t, s.do(t, http.MethodGet, "/api/employees?status=ACTIVE", nil))
	assert.Len(t, active, 4)
}

func TestLoadScenario_HistoryOnSQLite(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()
	s := newTestServer(t, store)

	// GIVEN: some unrelated data that the load must clear
	s.createEmployee(t, "Stale", "900101-14-5678", 1000)

	// WHEN: the history scenario is loaded
	rec := s.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "tuition-centre-history"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: three months for four active staff, the first two paid
	records := decodeBody[[]RecordDTO](t, s.do(t, http.MethodGet, "/api/payroll/records?year=2025", nil))
	assert.Len(t, records, 12)
	paid := decodeBody[[]RecordDTO](t, s.do(t, http.MethodGet, "/api/payroll/records?year=2025&paid=true", nil))
	assert.Len(t, paid, 8)

	form := decodeBody[EAFormDTO](t, s.do(t, http.MethodGet, "/api/employees/emp-aina/ea-form?year=2025", nil))
	assert.Equal(t, []int{1, 2}, form.MonthsPaid)

	// AND: the senior administrator pays no employee EPF
	hassan := decodeBody[[]RecordDTO](t, s.do(t, http.MethodGet, "/api/payroll/records?employee_id=emp-hassan", nil))
	require.Len(t, hassan, 3)
	for _, r := range hassan {
		assert.Equal(t, "0.00", r.EPFEmployee)
	}

	employees, err := store.ListEmployees(context.Background(), payroll.EmployeeFilter{})
	require.NoError(t, err)
	for _, e := range employees {
		assert.NotEqual(t, "Stale", e.Name)
	}
}

func TestLoadScenario_Empty(t *testing.T) {
	s := newTestServer(t, nil)
	s.createEmployee(t, "Aina", "950214-10-5522", 3000)

	rec := s.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "empty"})
	require.Equal(t, http.StatusOK, rec.Code)

	all := decodeBody[[]EmployeeDTO](t, s.do(t, http.MethodGet, "/api/employees", nil))
	assert.Empty(t, all)
}

func TestLoadScenario_Errors(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "payroll-bureau"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unknown scenario", decodeBody[ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodPost, "/api/scenarios/load", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Scenario Id is required", decodeBody[ErrorResponse](t, rec).Error)
}

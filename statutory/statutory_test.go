package statutory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func rm(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, rm(want).Equal(got), append([]any{fmt.Sprintf("want %s, got %s", want, got)}, msgAndArgs...)...)
}

// =============================================================================
// EPF
// =============================================================================

func TestEPF_Table(t *testing.T) {
	tests := []struct {
		name     string
		gross    string
		age      int
		employee string
		employer string
	}{
		{"zero wage", "0", 30, "0", "0"},
		{"negative wage", "-500", 30, "0", "0"},
		{"at minimum wage", "10", 30, "0", "0"},
		{"just above minimum rounds to RM20 band", "10.50", 30, "3", "3"},
		{"exact RM20 multiple", "3000", 30, "330", "390"},
		{"inside RM20 band", "3001", 30, "333", "393"},
		{"top of low employer rate", "5000", 30, "550", "650"},
		{"RM100 band switches employer rate", "5010", 30, "561", "612"},
		{"top of bands", "20000", 30, "2200", "2400"},
		{"actual wage above bands", "20000.01", 30, "2201", "2401"},
		{"high earner", "25000", 30, "2750", "3000"},
		{"senior employee nil", "3000", 62, "0", "120"},
		{"senior exactly 60", "3000", 60, "0", "120"},
		{"senior in RM100 band", "5010", 65, "0", "204"},
		{"senior high earner", "25000", 70, "0", "1000"},
		{"age 59 is not senior", "3000", 59, "330", "390"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statutory.EPF(rm(tt.gross), tt.age)
			assertAmount(t, tt.employee, got.Employee, "employee share")
			assertAmount(t, tt.employer, got.Employer, "employer share")
		})
	}
}

func TestEPF_HighEarnerUsesActualWage(t *testing.T) {
	// 25000 * 0.11 = 2750: no bucket rounding above RM20,000.
	got := statutory.EPF(rm("25000"), 30)
	assertAmount(t, "2750", got.Employee)
	assertAmount(t, "3000", got.Employer)
}

func TestEPF_SharesAreWholeRinggit(t *testing.T) {
	for gross := 11; gross <= 30000; gross += 137 {
		for _, age := range []int{25, 61} {
			got := statutory.EPF(decimal.NewFromInt(int64(gross)).Add(rm("0.37")), age)
			assert.True(t, got.Employee.IsInteger(), "employee share at %d must be whole", gross)
			assert.True(t, got.Employer.IsInteger(), "employer share at %d must be whole", gross)
		}
	}
}

func TestEPF_Monotonic(t *testing.T) {
	lowRateTop := rm("5000")
	for _, age := range []int{30, 60} {
		prev := statutory.EPF(decimal.Zero, age)
		prevGross := decimal.Zero
		for cents := int64(0); cents <= 2_600_000; cents += 1_999 {
			gross := decimal.New(cents, -2)
			got := statutory.EPF(gross, age)
			require.True(t, got.Employee.GreaterThanOrEqual(prev.Employee),
				"employee share decreased at %s (age %d)", gross, age)

			// The employer rate drops from 13% to 12% above RM5,000, so the
			// employer share only rises within one rate.
			crossesRate := age < 60 && prevGross.LessThanOrEqual(lowRateTop) && gross.GreaterThan(lowRateTop)
			if !crossesRate {
				require.True(t, got.Employer.GreaterThanOrEqual(prev.Employer),
					"employer share decreased at %s (age %d)", gross, age)
			}
			prev, prevGross = got, gross
		}
	}
}

func TestEPF_EmployerShareDropsAboveLowRateCeiling(t *testing.T) {
	// GIVEN: wages either side of RM5,000
	atCeiling := statutory.EPF(rm("5000"), 30)
	justAbove := statutory.EPF(rm("5000.01"), 30)

	// THEN: 13% of 5000 then 12% of the 5100 band
	assertAmount(t, "650", atCeiling.Employer)
	assertAmount(t, "612", justAbove.Employer)
	assertAmount(t, "550", atCeiling.Employee)
	assertAmount(t, "561", justAbove.Employee)
}

func TestEPF_SeniorEmployeeShareAlwaysZero(t *testing.T) {
	for _, gross := range []string{"1", "11", "2500", "5000", "12345.67", "20000", "99999"} {
		got := statutory.EPF(rm(gross), 60)
		assert.True(t, got.Employee.IsZero(), "senior employee share at %s", gross)
	}
}

// =============================================================================
// SOCSO
// =============================================================================

func TestSOCSO_Table(t *testing.T) {
	tests := []struct {
		gross    string
		employee string
		employer string
	}{
		{"0", "0", "0"},
		{"-1", "0", "0"},
		{"30", "0.10", "0.40"},
		{"30.01", "0.20", "0.70"},
		{"50", "0.20", "0.70"},
		{"70", "0.30", "1.10"},
		{"100", "0.40", "1.50"},
		{"140", "0.60", "2.10"},
		{"200", "0.85", "2.95"},
		{"250", "1.25", "4.35"},
		{"300", "1.25", "4.35"},
		{"300.01", "1.75", "6.15"},
		{"400", "1.75", "6.15"},
		{"401", "2.25", "7.85"},
		{"3000", "14.75", "51.65"},
		{"4950", "24.75", "86.65"},
		{"5000", "24.75", "86.65"},
		{"12000", "24.75", "86.65"},
	}

	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			got := statutory.SOCSO(rm(tt.gross))
			assertAmount(t, tt.employee, got.Employee, "employee share")
			assertAmount(t, tt.employer, got.Employer, "employer share")
		})
	}
}

func TestSOCSO_BoundedAboveCeiling(t *testing.T) {
	// GIVEN: the contribution at the wage ceiling
	ceiling := statutory.SOCSO(rm("5000"))

	// THEN: no wage produces more
	for cents := int64(0); cents <= 1_500_000; cents += 3_333 {
		got := statutory.SOCSO(decimal.New(cents, -2))
		require.True(t, got.Employee.LessThanOrEqual(ceiling.Employee))
		require.True(t, got.Employer.LessThanOrEqual(ceiling.Employer))
	}
}

// =============================================================================
// EIS
// =============================================================================

func TestEIS_Table(t *testing.T) {
	tests := []struct {
		gross string
		want  string
	}{
		{"0", "0"},
		{"-20", "0"},
		{"10", "0"},
		{"10.01", "1.90"},
		{"1000", "1.90"},
		{"1000.01", "2.10"},
		{"1250", "2.50"},
		{"3000", "5.90"},
		{"4000", "7.90"},
		{"9000", "7.90"},
	}

	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			assertAmount(t, tt.want, statutory.EIS(rm(tt.gross)))
		})
	}
}

func TestEIS_NeverExceedsCeilingValue(t *testing.T) {
	max := statutory.EIS(rm("4000"))
	for cents := int64(0); cents <= 1_000_000; cents += 2_777 {
		got := statutory.EIS(decimal.New(cents, -2))
		require.True(t, got.LessThanOrEqual(max), "EIS above ceiling at %d cents", cents)
	}
}

// =============================================================================
// AGGREGATE CALCULATION
// =============================================================================

func TestCalculate_FullMonth(t *testing.T) {
	// GIVEN: RM3,000 basic, full month, age 30
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: rm("3000"),
		DaysInMonth:       30,
		AgeYears:          30,
	})

	// THEN: every scheme applies on RM3,000
	assertAmount(t, "3000", result.GrossSalary)
	assertAmount(t, "0", result.UnpaidLeaveDeduction)
	assertAmount(t, "330", result.EPFEmployee)
	assertAmount(t, "390", result.EPFEmployer)
	assertAmount(t, "14.75", result.SOCSOEmployee)
	assertAmount(t, "51.65", result.SOCSOEmployer)
	assertAmount(t, "5.90", result.EISEmployee)
	assertAmount(t, "5.90", result.EISEmployer)
	assertAmount(t, "2649.35", result.NetSalary)
}

func TestCalculate_UnpaidLeaveReducesGross(t *testing.T) {
	// GIVEN: RM3,100 over 31 days with 2 unpaid days and RM100 allowance
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: rm("3100"),
		Allowance:         rm("100"),
		UnpaidLeaveDays:   rm("2"),
		DaysInMonth:       31,
		AgeYears:          40,
	})

	// THEN: RM200 is deducted before contributions
	assertAmount(t, "200", result.UnpaidLeaveDeduction)
	assertAmount(t, "3000", result.GrossSalary)
	assertAmount(t, "330", result.EPFEmployee)
}

func TestCalculate_AllEarningComponentsCount(t *testing.T) {
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: rm("2000"),
		Allowance:         rm("300"),
		Bonus:             rm("500"),
		Overtime:          rm("200"),
		DaysInMonth:       30,
		AgeYears:          30,
	})
	assertAmount(t, "3000", result.GrossSalary)
}

func TestCalculate_ZeroGross(t *testing.T) {
	// GIVEN: no earnings but other deductions and PCB
	result := statutory.Calculate(statutory.Inputs{
		OtherDeductions: rm("50"),
		ManualPCB:       rm("20"),
		DaysInMonth:     30,
		AgeYears:        30,
	})

	// THEN: contributions are zero and net is the negated deductions
	assertAmount(t, "0", result.EPFEmployee)
	assertAmount(t, "0", result.EPFEmployer)
	assertAmount(t, "0", result.SOCSOEmployee)
	assertAmount(t, "0", result.SOCSOEmployer)
	assertAmount(t, "0", result.EISEmployee)
	assertAmount(t, "-70", result.NetSalary)
}

func TestCalculate_NegativeGrossNeverPanics(t *testing.T) {
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: rm("1000"),
		UnpaidLeaveDays:   rm("45"),
		DaysInMonth:       30,
	})
	assert.True(t, result.GrossSalary.IsNegative())
	assert.True(t, result.EmployeeDeductions().IsZero())
	assert.True(t, result.EmployerContributions().IsZero())
}

func TestCalculate_PCBPassesThrough(t *testing.T) {
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: rm("8000"),
		ManualPCB:         rm("412.35"),
		DaysInMonth:       30,
		AgeYears:          35,
	})
	assertAmount(t, "412.35", result.PCB)
}

func TestCalculate_ZeroDaysInMonthUsesDefault(t *testing.T) {
	result := statutory.Calculate(statutory.Inputs{
		ActualBasicSalary: rm("3000"),
		UnpaidLeaveDays:   rm("1"),
	})
	assertAmount(t, "100", result.UnpaidLeaveDeduction)
}

func TestCalculate_NetIsGrossLessDeductions(t *testing.T) {
	// GIVEN: awkward pro-rated amounts that do not divide evenly
	for days := 28; days <= 31; days++ {
		for _, basic := range []string{"1234.56", "2999.99", "4321.09", "7777.77", "21000.5"} {
			for _, unpaid := range []string{"0", "0.5", "1", "3"} {
				in := statutory.Inputs{
					ActualBasicSalary: rm(basic),
					Allowance:         rm("123.45"),
					Overtime:          rm("67.89"),
					UnpaidLeaveDays:   rm(unpaid),
					OtherDeductions:   rm("10.10"),
					ManualPCB:         rm("55.55"),
					DaysInMonth:       days,
					AgeYears:          45,
				}
				r := statutory.Calculate(in)

				// THEN: net is exactly gross minus every employee-side deduction
				want := r.GrossSalary.
					Sub(r.EPFEmployee).
					Sub(r.SOCSOEmployee).
					Sub(r.EISEmployee).
					Sub(in.OtherDeductions).
					Sub(r.PCB)
				require.True(t, want.Equal(r.NetSalary),
					"basic %s days %d unpaid %s: want %s got %s", basic, days, unpaid, want, r.NetSalary)
				require.True(t, r.GrossSalary.Equal(r.GrossSalary.Round(2)))
			}
		}
	}
}

func TestCalculate_ConcurrentCallsAreIndependent(t *testing.T) {
	calc := statutory.Default()
	want := calc.Calculate(statutory.Inputs{ActualBasicSalary: rm("4567.89"), DaysInMonth: 30, AgeYears: 33})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := calc.Calculate(statutory.Inputs{ActualBasicSalary: rm("4567.89"), DaysInMonth: 30, AgeYears: 33})
			assert.True(t, want.NetSalary.Equal(got.NetSalary))
		}()
	}
	wg.Wait()
}

func TestResult_Totals(t *testing.T) {
	r := statutory.Calculate(statutory.Inputs{ActualBasicSalary: rm("3000"), DaysInMonth: 30, AgeYears: 30})
	assertAmount(t, "350.65", r.EmployeeDeductions())
	assertAmount(t, "447.55", r.EmployerContributions())
	assertAmount(t, "3447.55", r.EmployerCost())
}

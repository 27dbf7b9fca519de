package statutory

import "github.com/shopspring/decimal"

// Contribute computes the EPF pair for a gross wage and age.
//
// Wages up to the last band are first rounded up to their band's step
// ("upper bound" of the Third Schedule row); wages above it are used as-is.
// Both shares are then rounded up to whole ringgit.
func (t EPFTable) Contribute(gross decimal.Decimal, age int) Contribution {
	if !gross.IsPositive() || gross.LessThanOrEqual(t.MinimumWage) {
		return zeroContribution
	}

	wage := t.contributionWage(gross)

	if age >= t.SeniorAge {
		return Contribution{
			Employee: CeilRinggit(wage.Mul(t.SeniorEmployeeRate)),
			Employer: CeilRinggit(wage.Mul(t.SeniorEmployerRate)),
		}
	}

	employerRate := t.EmployerRateHigh
	if wage.LessThanOrEqual(t.EmployerLowUpTo) {
		employerRate = t.EmployerRateLow
	}
	return Contribution{
		Employee: CeilRinggit(wage.Mul(t.EmployeeRate)),
		Employer: CeilRinggit(wage.Mul(employerRate)),
	}
}

// contributionWage returns the band upper bound, or the actual wage beyond the bands.
func (t EPFTable) contributionWage(gross decimal.Decimal) decimal.Decimal {
	for _, b := range t.Bands {
		if gross.LessThanOrEqual(b.UpTo) {
			return ceilToMultiple(gross, b.Step)
		}
	}
	return gross
}

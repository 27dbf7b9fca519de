package statutory

import "github.com/shopspring/decimal"

// Contribute computes the EIS amount for a gross wage. The same amount is
// paid by the employee and by the employer.
func (t EISTable) Contribute(gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	s := decimal.Min(gross, t.WageCeiling)

	switch {
	case s.LessThanOrEqual(t.MinimumWage):
		return decimal.Zero
	case s.LessThanOrEqual(t.BaseUpTo):
		return t.BaseContribution
	}

	brackets := s.Sub(t.BaseUpTo).Div(t.StepSize).Ceil()
	return RoundCents(t.BaseContribution.Add(brackets.Mul(t.StepIncrement)))
}

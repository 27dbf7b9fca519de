package statutory

import "github.com/shopspring/decimal"

// CentsPlaces is the precision of every non-EPF output.
const CentsPlaces = 2

// RoundCents rounds half away from zero to 2 decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentsPlaces)
}

// CeilRinggit rounds up to the next whole ringgit.
func CeilRinggit(d decimal.Decimal) decimal.Decimal {
	return d.Ceil()
}

// ceilToMultiple rounds d up to the next multiple of step (step > 0).
func ceilToMultiple(d, step decimal.Decimal) decimal.Decimal {
	return d.Div(step).Ceil().Mul(step)
}

// MustDecimal parses s, returning zero for malformed input.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

package statutory

import "github.com/shopspring/decimal"

// Contribute computes the SOCSO pair for a gross wage.
//
// The step section walks the published table one bracket at a time from the
// last fixed bracket. The employer increment alternates with the parity of
// the bracket's starting hundred, which is how the gazetted table is built;
// the walk reproduces it exactly.
func (t SOCSOTable) Contribute(gross decimal.Decimal) Contribution {
	if !gross.IsPositive() {
		return zeroContribution
	}
	s := decimal.Min(gross, t.WageCeiling)

	for _, b := range t.Brackets {
		if s.LessThanOrEqual(b.UpTo) {
			return Contribution{Employee: b.Employee, Employer: b.Employer}
		}
	}

	last := t.Brackets[len(t.Brackets)-1]
	employee, employer := last.Employee, last.Employer
	start := last.UpTo
	two := decimal.NewFromInt(2)

	for start.LessThan(s) && start.LessThan(t.WageCeiling) {
		employee = employee.Add(t.EmployeeStep)
		if start.Div(t.StepSize).Floor().Mod(two).Equal(decimal.NewFromInt(1)) {
			employer = employer.Add(t.EmployerStepOdd)
		} else {
			employer = employer.Add(t.EmployerStepEven)
		}
		start = start.Add(t.StepSize)
	}

	return Contribution{Employee: RoundCents(employee), Employer: RoundCents(employer)}
}

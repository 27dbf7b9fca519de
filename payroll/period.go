package payroll

import (
	"fmt"
	"time"
)

const (
	minYear = 1900
	maxYear = 9999
)

// DaysInMonth returns the number of calendar days in month of year.
func DaysInMonth(month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidatePeriod checks month and year.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	return nil
}

// PeriodLabel formats a period like "March 2025".
func PeriodLabel(month, year int) string {
	return fmt.Sprintf("%s %d", time.Month(month), year)
}

package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned for a month outside 1-12 or an implausible year.
	ErrInvalidPeriod = errors.New("invalid payroll period")

	// ErrInvalidInputs is returned when run inputs cannot describe a month.
	ErrInvalidInputs = errors.New("invalid payroll inputs")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrRecordNotFound is returned when a referenced payroll record doesn't exist.
	ErrRecordNotFound = errors.New("payroll record not found")

	// ErrNoActiveEmployees is returned by Run when there is nobody to pay.
	ErrNoActiveEmployees = errors.New("no active employees")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// RunError ties a batch failure to the employee it happened on.
type RunError struct {
	EmployeeID string
	Err        error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("employee %s: %v", e.EmployeeID, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidInputs) ||
		errors.Is(err, ErrNoActiveEmployees)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}

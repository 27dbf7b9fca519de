package statutory

import (
	"errors"
	"fmt"
)

// ErrInvalidSchedule is returned when a rate schedule cannot drive the calculators.
// The calculators themselves never fail.
var ErrInvalidSchedule = errors.New("invalid statutory schedule")

// ScheduleError names the table and rule a schedule violates.
type ScheduleError struct {
	Table  string // epf, socso, eis
	Reason string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("invalid %s table: %s", e.Table, e.Reason)
}

func (e *ScheduleError) Unwrap() error {
	return ErrInvalidSchedule
}

func scheduleErr(table, reason string) error {
	return &ScheduleError{Table: table, Reason: reason}
}

// Package nric reads the birth date encoded in a Malaysian identity card
// number (YYMMDD-PB-###G).
//
// The year is only two digits. A year not after the reference year's last two
// digits is read as 20yy, anything else as 19yy. People aged 100 or more are
// therefore read as a century younger; the format carries no way to tell.
package nric

import (
	"strings"
	"time"
)

// DefaultAge is returned when an identity number is too short or its year
// digits are not numeric.
const DefaultAge = 30

// Normalize strips dashes and whitespace.
func Normalize(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, id)
}

// DeriveAge returns the age in whole years at referenceYear, or DefaultAge when
// id cannot be read.
func DeriveAge(id string, referenceYear int) int {
	id = Normalize(id)
	if len(id) < 6 {
		return DefaultAge
	}
	yy, ok := twoDigits(id[0:2])
	if !ok {
		return DefaultAge
	}
	return referenceYear - birthYear(yy, referenceYear)
}

// BirthDate parses the YYMMDD prefix. ok is false if the prefix is not a real
// calendar date.
func BirthDate(id string, referenceYear int) (date time.Time, ok bool) {
	id = Normalize(id)
	if len(id) < 6 {
		return time.Time{}, false
	}
	yy, ok1 := twoDigits(id[0:2])
	mm, ok2 := twoDigits(id[2:4])
	dd, ok3 := twoDigits(id[4:6])
	if !ok1 || !ok2 || !ok3 || mm < 1 || mm > 12 || dd < 1 {
		return time.Time{}, false
	}

	year := birthYear(yy, referenceYear)
	date = time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	// time.Date normalises 31 Feb into March.
	if date.Month() != time.Month(mm) || date.Day() != dd {
		return time.Time{}, false
	}
	return date, true
}

func birthYear(yy, referenceYear int) int {
	if yy <= referenceYear%100 {
		return referenceYear - referenceYear%100 + yy
	}
	return referenceYear - referenceYear%100 - 100 + yy
}

// twoDigits accepts exactly two ASCII digits. A partly numeric prefix such as
// "9A" is rejected rather than read as 9.
func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

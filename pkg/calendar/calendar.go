// Package calendar provides Gregorian calendar predicates and helpers.
//
// All functions are pure and total: any integer year, including negative
// (proleptic) years, is evaluated by the same arithmetic rules. No
// timezone conversion is performed beyond what the caller's time.Time
// already carries.
package calendar

import "time"

// LeapYear reports whether year is a Gregorian leap year:
// divisible by 4 and not by 100, or divisible by 400.
func LeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

// IsLeapYear reports whether the calendar year of t is a leap year.
// Only the year component is consulted; month, day, and time of day
// are irrelevant.
func IsLeapYear(t time.Time) bool {
	return LeapYear(t.Year())
}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if LeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if LeapYear(year) {
		return 366
	}
	return 365
}

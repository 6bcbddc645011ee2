// Package identity decodes Korean resident registration numbers. The number
// is 13 decimal digits: YYMMDD birth date, a century/sex code, and six
// opaque digits.
package identity

import (
	"time"

	dErrors "member-gateway/pkg/domain-errors"
)

// BirthDate decodes the birth date embedded in a resident number. Century is
// taken from the 7th digit: 1,2 mean the 1900s, 3,4 the 2000s. Any other
// code is invalid input.
func BirthDate(residentNumber string) (time.Time, error) {
	if len(residentNumber) != 13 || !allDigits(residentNumber) {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "resident number must be 13 digits")
	}

	var century int
	switch residentNumber[6] {
	case '1', '2':
		century = 1900
	case '3', '4':
		century = 2000
	default:
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "invalid resident number format")
	}

	year := century + digits(residentNumber[0:2])
	month := digits(residentNumber[2:4])
	day := digits(residentNumber[4:6])

	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (e.g. month 13), so an
	// impossible calendar date only shows up as a mismatch after the fact.
	if birth.Year() != year || birth.Month() != time.Month(month) || birth.Day() != day {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "invalid resident number format")
	}
	return birth, nil
}

// Age computes the full-years age for a resident number as of today. The age
// is the year difference, minus one when today falls before this year's
// anniversary of the birth date.
func Age(residentNumber string, today time.Time) (int, error) {
	birth, err := BirthDate(residentNumber)
	if err != nil {
		return 0, err
	}

	age := today.Year() - birth.Year()
	if beforeAnniversary(birth, today) {
		age--
	}
	return age, nil
}

// beforeAnniversary reports whether today precedes this year's anniversary
// of the birth date. A Feb 29 birth date clamps to Feb 28 in non-leap years
// rather than rolling over to Mar 1.
func beforeAnniversary(birth, today time.Time) bool {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeapYear(today.Year()) {
		day = 28
	}
	anniversary := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
	return today.Before(anniversary)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

package calendar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrInvalidDate indicates the year/month/day combination does not exist
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrInvalidFormat indicates the date string is not YYYY-MM-DD
	ErrInvalidFormat = errors.New("date must be in YYYY-MM-DD format")
)

// dateRegex matches YYYY-MM-DD with a 4-digit year
var dateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// daysPerMonth holds day counts for a non-leap year, index 1-12
var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Date is an immutable calendar date. Comparison goes through Ordinal only.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsLeapYear reports whether the year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	if year%400 == 0 {
		return true
	}
	if year%100 == 0 {
		return false
	}
	return year%4 == 0
}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}

// IsValidDate reports whether year/month/day form a real calendar date.
// Year must be at least 1.
func IsValidDate(year, month, day int) bool {
	if year < 1 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= DaysInMonth(year, month)
}

// New builds a validated Date.
func New(year, month, day int) (Date, error) {
	if !IsValidDate(year, month, day) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Parse parses a YYYY-MM-DD string into a validated Date.
func Parse(s string) (Date, error) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return Date{}, ErrInvalidFormat
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return New(year, month, day)
}

// Ordinal counts days from year 1, January 1 (ordinal 0) to d. The value has
// no epoch meaning; it exists so date differences and comparisons are exact.
func (d Date) Ordinal() int64 {
	var days int64
	for y := 1; y < d.Year; y++ {
		if IsLeapYear(y) {
			days += 366
		} else {
			days += 365
		}
	}
	for m := 1; m < d.Month; m++ {
		days += int64(DaysInMonth(d.Year, m))
	}
	return days + int64(d.Day-1)
}

// Next returns the following calendar day, rolling over month and year.
func (d Date) Next() Date {
	day := d.Day + 1
	month := d.Month
	year := d.Year
	if day > DaysInMonth(year, month) {
		day = 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return Date{Year: year, Month: month, Day: day}
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Ordinal() < other.Ordinal()
}

// Equal reports whether both dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// DaysUntil returns the exact number of calendar days from d to other.
// Negative when other is earlier.
func (d Date) DaysUntil(other Date) int64 {
	return other.Ordinal() - d.Ordinal()
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the literal wire format for all date fields.
const DateFormat = "02-01-2006" // dd-MM-yyyy

// Date is a calendar date carried on the wire as dd-MM-yyyy.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a dd-MM-yyyy string into a Date.
func ParseDate(value string) (Date, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("must be in dd-MM-yyyy format")
	}
	return Date{Time: t}, nil
}

// MarshalJSON renders the date as a dd-MM-yyyy JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

// UnmarshalJSON parses a dd-MM-yyyy JSON string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// String returns the wire representation.
func (d Date) String() string {
	return d.Format(DateFormat)
}

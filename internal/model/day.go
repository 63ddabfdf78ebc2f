package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// dayFormat is the wire and storage format for calendar days.
const dayFormat = "2006-01-02"

// Day is a calendar date with no time component.
//
// Days are stored canonically as UTC midnight, so two Day values naming the
// same calendar date always compare equal and Day is safe to use as a map
// key. Always construct through NewDay, DayOf, Today or ParseDay.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates t to the calendar date in t's location.
func DayOf(t time.Time) Day {
	year, month, day := t.Date()
	return NewDay(year, month, day)
}

// Today returns the current calendar date in the server's local time.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses a day in YYYY-MM-DD form.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return d.t.Format(dayFormat)
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

func (d Day) Date() (year int, month time.Month, day int) {
	return d.t.Date()
}

// IsZero reports whether d is the zero Day, which is not a valid date.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	day, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// Value implements driver.Valuer; days are stored as TEXT YYYY-MM-DD.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for TEXT and time-typed columns.
func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case string:
		day, err := ParseDay(v)
		if err != nil {
			return err
		}
		*d = day
		return nil
	case []byte:
		day, err := ParseDay(string(v))
		if err != nil {
			return err
		}
		*d = day
		return nil
	case time.Time:
		*d = DayOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Day", src)
	}
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

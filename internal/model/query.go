package model

import (
	"time"

	"github.com/maxbolgarin/errm"
)

// DateLayout is the layout of dates in queries and commit records
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate     = errm.New("date must be in YYYY-MM-DD format")
	ErrInvalidRange    = errm.New("since date is after until date")
	ErrInvalidMaxCount = errm.New("max count must not be negative")
)

// Validate checks dates and limits of the query
func (q LogQuery) Validate() error {
	since, err := parseDate(q.Since)
	if err != nil {
		return errm.Wrap(err, "since")
	}
	until, err := parseDate(q.Until)
	if err != nil {
		return errm.Wrap(err, "until")
	}
	if !since.IsZero() && !until.IsZero() && since.After(until) {
		return ErrInvalidRange
	}
	if q.MaxCount < 0 {
		return ErrInvalidMaxCount
	}
	return nil
}

// SinceTime returns start of the since day in local time, nil when unbounded
func (q LogQuery) SinceTime() *time.Time {
	t, err := parseDate(q.Since)
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

// UntilTime returns the last second of the until day in local time, nil when unbounded
func (q LogQuery) UntilTime() *time.Time {
	t, err := parseDate(q.Until)
	if err != nil || t.IsZero() {
		return nil
	}
	t = t.Add(24*time.Hour - time.Second)
	return &t
}

// Range returns the dates of the query as a range
func (q LogQuery) Range() DateRange {
	return DateRange{Start: q.Since, End: q.Until}
}

// ValidateDate checks that a non-empty value is a YYYY-MM-DD date
func ValidateDate(value string) error {
	_, err := parseDate(value)
	return err
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, errm.Wrap(ErrInvalidDate, value)
	}
	return t, nil
}

// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds1302

import (
	"fmt"
	"time"
)

// century is the year added to the chip's two digit year when converting to
// and from time.Time.
const century = 2000

// DateTime is the content of the clock registers.
//
// Year holds the two digit year kept by the chip. Weekday is numbered 1 to 7;
// the chip only increments it at midnight and gives it no meaning. FromTime
// and Time use 1 for Sunday.
type DateTime struct {
	Year    int
	Month   int
	Day     int
	Weekday int
	Hour    Hour
	Minute  int
	Second  int
}

func (d DateTime) String() string {
	s := fmt.Sprintf("%02d-%02d-%02d %02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour.Value, d.Minute, d.Second)
	if d.Hour.Format == Format12 {
		if d.Hour.PM {
			return s + " PM"
		}
		return s + " AM"
	}
	return s
}

// IsLeapYear reports whether the two digit year is a leap year.
//
// The chip does not store the century, so year 0 is always treated as a leap
// year through the divisible by 400 rule. This matches the chip itself, which
// adds February 29th every four years until 2100.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days of a month of a two digit year.
//
// DaysInMonth panics if month is not in [1, 12].
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	panic(fmt.Sprintf("ds1302: invalid month %d", month))
}

var fieldRanges = [...]struct{ min, max int }{
	Seconds:    {0, 59},
	Minutes:    {0, 59},
	Hours24:    {0, 23},
	Hours12:    {1, 12},
	Weekday:    {1, 7},
	Date:       {1, 31},
	Month:      {1, 12},
	Year:       {0, 99},
	FormatFlag: {0, 1},
	AMPMFlag:   {0, 1},
}

// Min returns the smallest legal value of the field.
//
// Min panics on an unknown field.
func (f Field) Min() int {
	if int(f) >= len(fieldRanges) {
		panic(fmt.Sprintf("ds1302: unknown field %s", f))
	}
	return fieldRanges[f].min
}

// Max returns the largest legal value of the field.
//
// Max panics for Date, whose maximum depends on the month: use DaysInMonth.
func (f Field) Max() int {
	if f == Date {
		panic("ds1302: Date has no fixed maximum, use DaysInMonth")
	}
	if int(f) >= len(fieldRanges) {
		panic(fmt.Sprintf("ds1302: unknown field %s", f))
	}
	return fieldRanges[f].max
}

func checkRange(f Field, v, hi int) error {
	if v < f.Min() || v > hi {
		return fmt.Errorf("%w: %s %d not in [%d, %d]", ErrOutOfRange, f, v, f.Min(), hi)
	}
	return nil
}

// Validate returns an error wrapping ErrOutOfRange for the first field that
// the chip cannot hold.
func (d DateTime) Validate() error {
	if d.Hour.Format != Format24 && d.Hour.Format != Format12 {
		return fmt.Errorf("%w: hour format %d", ErrOutOfRange, d.Hour.Format)
	}
	hf := d.Hour.field()
	for _, c := range []struct {
		f Field
		v int
	}{
		{Year, d.Year},
		{Month, d.Month},
		{Weekday, d.Weekday},
		{hf, d.Hour.Value},
		{Minutes, d.Minute},
		{Seconds, d.Second},
	} {
		if err := checkRange(c.f, c.v, c.f.Max()); err != nil {
			return err
		}
	}
	return checkRange(Date, d.Day, DaysInMonth(d.Year, d.Month))
}

// Time returns the date and time in loc, assuming the 21st century.
func (d DateTime) Time(loc *time.Location) time.Time {
	return time.Date(century+d.Year, time.Month(d.Month), d.Day, d.Hour.In24(), d.Minute, d.Second, 0, loc)
}

// FromTime returns the DateTime for t in 24 hour format. It returns an error
// wrapping ErrOutOfRange when t is not between 2000 and 2099.
func FromTime(t time.Time) (DateTime, error) {
	y := t.Year() - century
	if y < Year.Min() || y > Year.Max() {
		return DateTime{}, fmt.Errorf("%w: year %d", ErrOutOfRange, t.Year())
	}
	return DateTime{
		Year:    y,
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()) + 1,
		Hour:    H24(t.Hour()),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}, nil
}

package bcd

import (
	"fmt"
	"time"
)

// CenturyFlag is bit 7 of the month register.
const CenturyFlag = 0x80

// Years that read back unchanged from the year register and century flag.
const (
	FirstYear = 2000
	LastYear  = 2199
)

const secondsPerDay = 24 * 60 * 60

// Date is a packed BCD date: bits 31..16 hold the four-digit year, bits 15..8
// the month and bits 7..0 the day of the month.
//
//	2023-09-15 => 0x20230915
type Date uint32

// NewDate packs a calendar date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(uint32(EncodeWord(year))<<16 | uint32(Encode(int(month)))<<8 | uint32(Encode(day)))
}

// Year returns the four-digit year.
func (d Date) Year() int { return DecodeWord(uint16(d >> 16)) }

// Month returns the month.
func (d Date) Month() time.Month { return time.Month(Decode(byte(d >> 8))) }

// Day returns the day of the month.
func (d Date) Day() int { return Decode(byte(d)) }

// Days returns the number of days between 1970-01-01 and d.
func (d Date) Days() int64 {
	return daysFromCivil(d.Year(), int(d.Month()), d.Day())
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	// 1970-01-01 was a Thursday.
	w := (d.Days() + 4) % 7
	if w < 0 {
		w += 7
	}
	return time.Weekday(w)
}

// Valid reports whether d holds BCD digits and names an existing day.
func (d Date) Valid() bool {
	if !ValidWord(uint16(d>>16)) || !Valid(byte(d>>8)) || !Valid(byte(d)) {
		return false
	}
	m, day := d.Month(), d.Day()
	if m < time.January || m > time.December || day < 1 {
		return false
	}
	return day <= daysIn(m, d.Year())
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// Time is a packed BCD time of day: bits 23..16 hold the hour, bits 15..8 the
// minute and bits 7..0 the second.
//
//	12:30:45 => 0x123045
type Time uint32

// NewTime packs a time of day.
func NewTime(hour, minute, second int) Time {
	return Time(uint32(Encode(hour))<<16 | uint32(Encode(minute))<<8 | uint32(Encode(second)))
}

func (t Time) Hour() int   { return Decode(byte(t >> 16)) }
func (t Time) Minute() int { return Decode(byte(t >> 8)) }
func (t Time) Second() int { return Decode(byte(t)) }

// Seconds returns the number of seconds since midnight.
func (t Time) Seconds() int64 {
	return int64(t.Hour())*3600 + int64(t.Minute())*60 + int64(t.Second())
}

// Valid reports whether t holds BCD digits within a 24-hour day.
func (t Time) Valid() bool {
	if t>>24 != 0 || !Valid(byte(t>>16)) || !Valid(byte(t>>8)) || !Valid(byte(t)) {
		return false
	}
	return t.Hour() < 24 && t.Minute() < 60 && t.Second() < 60
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// DateTime is a date and a time of day read from the clock as one unit.
type DateTime struct {
	Date Date
	Time Time
}

// FromTime packs t, converted to UTC.
func FromTime(t time.Time) DateTime {
	t = t.UTC()
	return DateTime{
		Date: NewDate(t.Year(), t.Month(), t.Day()),
		Time: NewTime(t.Hour(), t.Minute(), t.Second()),
	}
}

// FromEpoch packs the UTC date and time sec seconds after 1970-01-01.
func FromEpoch(sec int64) DateTime {
	return FromTime(time.Unix(sec, 0))
}

// Epoch returns the number of seconds between 1970-01-01 UTC and dt.
func (dt DateTime) Epoch() int64 {
	return dt.Date.Days()*secondsPerDay + dt.Time.Seconds()
}

// UTC returns dt as a time.Time in UTC.
func (dt DateTime) UTC() time.Time {
	return time.Unix(dt.Epoch(), 0).UTC()
}

// Valid reports whether both the date and the time are valid.
func (dt DateTime) Valid() bool {
	return dt.Date.Valid() && dt.Time.Valid()
}

func (dt DateTime) String() string {
	return dt.Date.String() + " " + dt.Time.String()
}

// Layout is the format used by DateTime.String and Parse.
const Layout = "2006-01-02 15:04:05"

// Parse reads a DateTime in Layout. Out-of-range fields are reported as
// ErrInvalid.
func Parse(s string) (DateTime, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return DateTime{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromTime(t), nil
}

// InRange reports whether the year of d lies in FirstYear..LastYear.
func (d Date) InRange() bool {
	y := d.Year()
	return y >= FirstYear && y <= LastYear
}

// DecodeYear returns the year held by a BCD year register. The register
// counts from 2000; a set century flag adds 100.
func DecodeYear(y byte, century bool) int {
	year := 2000 + Decode(y)
	if century {
		year += 100
	}
	return year
}

// CenturyBit returns the month-register flag for year. The flag is clear
// for centuries divisible by four (2000-2099, 2400-2499, ...), so it repeats
// every 400 years.
func CenturyBit(year int) byte {
	if (year/100)%4 == 0 {
		return 0
	}
	return CenturyFlag
}

func daysIn(m time.Month, year int) int {
	switch m {
	case time.February:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// daysFromCivil counts days from 1970-01-01 in the proleptic Gregorian
// calendar, with years starting in March so leap days fall last.
func daysFromCivil(y, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 {
		era = (y - 399) / 400
	}
	yoe := y - era*400
	doy := (153*((m+9)%12)+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return int64(era)*146097 + int64(doe) - 719468
}

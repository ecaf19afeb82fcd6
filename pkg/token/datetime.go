package token

import (
	"regexp"
	"strconv"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/scanerr"
)

var (
	dateRe     = regexp.MustCompile(`^(\d{1,4})-(\d{2})-(\d{2})$`)
	dateTimeRe = regexp.MustCompile(`^(\d{1,4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
	timeRe     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
)

// classifyDateTime tries, in order, Date then DateTime then bare Time
// against the stripped (underscore-free) numeric run. It returns ok=false
// if none match, leaving the caller to report InvalidNumber.
func (s *Scanner) classifyDateTime(start pos.Pos, run, stripped string) (Token, bool) {
	if m := dateRe.FindStringSubmatch(stripped); m != nil {
		d, ok := parseDate(m[1], m[2], m[3])
		if !ok {
			return s.errorToken(start, scanerr.InvalidDate), true
		}
		return Token{Kind: Date, Lexeme: run, Pos: start, DateVal: d, HasDate: true}, true
	}

	if m := dateTimeRe.FindStringSubmatch(stripped); m != nil {
		d, ok := parseDate(m[1], m[2], m[3])
		if !ok {
			return s.errorToken(start, scanerr.InvalidDate), true
		}
		t, ok := parseTime(m[4], m[5], m[6], m[7])
		if !ok {
			return s.errorToken(start, scanerr.InvalidTime), true
		}
		tok := Token{Kind: DateTime, Lexeme: run, Pos: start, DateVal: d, HasDate: true, TimeVal: t, HasTime: true}
		if m[8] != "" {
			off, ok := parseOffset(m[8])
			if !ok {
				return s.errorToken(start, scanerr.InvalidTime), true
			}
			tok.Offset = off
			tok.HasOffset = true
		}
		return tok, true
	}

	if m := timeRe.FindStringSubmatch(stripped); m != nil {
		t, ok := parseTime(m[1], m[2], m[3], m[4])
		if !ok {
			return s.errorToken(start, scanerr.InvalidTime), true
		}
		tok := Token{Kind: Time, Lexeme: run, Pos: start, TimeVal: t, HasTime: true}
		if m[5] != "" {
			off, ok := parseOffset(m[5])
			if !ok {
				return s.errorToken(start, scanerr.InvalidTime), true
			}
			tok.Offset = off
			tok.HasOffset = true
		}
		return tok, true
	}

	return Token{}, false
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// parseDate validates year/month/day: year > 9999 is invalid; month
// outside [1, 12]; day outside [1, 31]; day 31 in a 30-day month; Feb 30;
// Feb 29 in a non-leap year. Bounds are inclusive on both ends.
func parseDate(yearS, monthS, dayS string) (DateValue, bool) {
	year, _ := strconv.Atoi(yearS)
	month, _ := strconv.Atoi(monthS)
	day, _ := strconv.Atoi(dayS)

	if year > 9999 || year < 0 {
		return DateValue{}, false
	}
	if month < 1 || month > 12 {
		return DateValue{}, false
	}
	if day < 1 || day > 31 {
		return DateValue{}, false
	}

	max := daysInMonth[month-1]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	if day > max {
		return DateValue{}, false
	}

	return DateValue{Year: year, Month: month, Day: day}, true
}

// parseTime validates hour/minute/second and converts an optional
// fractional-seconds suffix (e.g. ".125") to nanoseconds.
func parseTime(hourS, minS, secS, fracS string) (TimeValue, bool) {
	hour, _ := strconv.Atoi(hourS)
	min, _ := strconv.Atoi(minS)
	sec, _ := strconv.Atoi(secS)

	if hour > 23 || min > 59 || sec > 59 {
		return TimeValue{}, false
	}

	nanos := 0
	if fracS != "" {
		digits := fracS[1:] // drop leading '.'
		for len(digits) < 9 {
			digits += "0"
		}
		digits = digits[:9]
		n, err := strconv.Atoi(digits)
		if err != nil {
			return TimeValue{}, false
		}
		nanos = n
	}

	return TimeValue{Hour: hour, Minute: min, Second: sec, Nanosecond: nanos}, true
}

// parseOffset parses "Z" or a signed "HH:MM" offset into a minute count
// in [-1440, 1440].
func parseOffset(s string) (Offset, bool) {
	if s == "Z" {
		return Offset{UTC: true}, true
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	hh, err1 := strconv.Atoi(s[1:3])
	mm, err2 := strconv.Atoi(s[4:6])
	if err1 != nil || err2 != nil {
		return Offset{}, false
	}

	minutes := sign * (hh*60 + mm)
	if minutes < -1440 || minutes > 1440 {
		return Offset{}, false
	}

	return Offset{Minutes: minutes}, true
}

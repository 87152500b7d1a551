package transform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

// dateOrder lists the components of a date in the order they are
// written: d for day, m for month, y for year.
type dateOrder string

const (
	orderDMY dateOrder = "dmy"
	orderMDY dateOrder = "mdy"
	orderYMD dateOrder = "ymd"
	orderYDM dateOrder = "ydm"
	orderDM  dateOrder = "dm"
	orderMD  dateOrder = "md"
	orderMY  dateOrder = "my"
	orderYM  dateOrder = "ym"
)

func (o dateOrder) kind() DateKind {
	switch {
	case !strings.ContainsRune(string(o), 'y'):
		return MonthDay
	case !strings.ContainsRune(string(o), 'd'):
		return YearMonth
	}
	return FullDate
}

// maxDayInMonth is not leap aware: a day-month pair without a year may
// always name the 29th of February.
var maxDayInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// yearFunc turns the year text of a date into a four-digit year. Month
// and day are passed for pivots that depend on them.
type yearFunc func(year string, month, day int) (int, error)

// expandYear treats one- and two-digit years as years of the 2000s.
func expandYear(year string, _, _ int) (int, error) {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0, err
	}
	switch len(year) {
	case 1, 2:
		return 2000 + n, nil
	}
	return n, nil
}

// indianYear pivots two-digit years around 21: later years, and the 21st
// year from the 11th of October, belong to the 1900s.
func indianYear(year string, month, day int) (int, error) {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0, err
	}
	if len(year) != 2 {
		return n, nil
	}
	if n > 21 || (n == 21 && month >= 10 && day >= 11) {
		return 1900 + n, nil
	}
	return 2000 + n, nil
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// buildDate validates the components against the calendar for kind.
func buildDate(kind DateKind, year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d out of range", month)
	}
	switch kind {
	case MonthDay:
		if day < 1 || day > maxDayInMonth[month-1] {
			return Date{}, fmt.Errorf("day %d out of range for month %d", day, month)
		}
		return Date{Kind: MonthDay, Month: month, Day: day}, nil
	case YearMonth:
		return Date{Kind: YearMonth, Year: year, Month: month}, nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day || int(t.Month()) != month {
		return Date{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, month, day)
	}
	return Date{Kind: FullDate, Year: year, Month: month, Day: day}, nil
}

// dateParts holds the textual components captured by a date pattern.
type dateParts struct {
	year, month, day string
}

// assemble converts captured components into a Date.
func (p dateParts) assemble(kind DateKind, month int, years yearFunc) (Date, error) {
	var day int
	if p.day != "" {
		n, err := strconv.Atoi(p.day)
		if err != nil {
			return Date{}, err
		}
		day = n
	}
	var year int
	if p.year != "" {
		n, err := years(p.year, month, day)
		if err != nil {
			return Date{}, err
		}
		year = n
	}
	return buildDate(kind, year, month, day)
}

// numericDateParser reads dates written entirely in digits with any
// non-digit separators, e.g. "05/01/2019", "05.01.19" or "2019年1月5日".
type numericDateParser struct {
	order   dateOrder
	pattern *regexp.Regexp
}

func newNumericDate(order dateOrder) *numericDateParser {
	parts := make([]string, 0, len(order))
	for _, c := range order {
		if c == 'y' {
			parts = append(parts, `(\d{4}|\d{1,2})`)
		} else {
			parts = append(parts, `(\d{1,2})`)
		}
	}
	return &numericDateParser{
		order:   order,
		pattern: regexp.MustCompile(`^\s*` + strings.Join(parts, `[^0-9]+`) + `[^0-9]*$`),
	}
}

func (p *numericDateParser) Family() Family { return FamilyDate }

func (p *numericDateParser) Parse(raw string, d Descriptor) (Value, error) {
	kind := p.order.kind()
	fail := func(err error) (Value, error) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: Date{Kind: kind}.Type(), Err: err}
	}
	m := p.pattern.FindStringSubmatch(foldDigits(raw))
	if m == nil {
		return fail(nil)
	}
	var parts dateParts
	var month string
	for i, c := range p.order {
		switch c {
		case 'd':
			parts.day = m[i+1]
		case 'm':
			month = m[i+1]
		case 'y':
			parts.year = m[i+1]
		}
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return fail(err)
	}
	date, err := parts.assemble(kind, mo, expandYear)
	if err != nil {
		return fail(err)
	}
	return DateValue(date), nil
}

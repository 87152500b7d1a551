package transform

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

// eraStart maps Japanese era names to the Gregorian year before the
// era's first year.
var eraStart = map[string]int{
	"令和": 2018, "令": 2018,
	"平成": 1988, "平": 1988,
	"昭和": 1925, "昭": 1925,
	"大正": 1911, "大": 1911,
	"明治": 1867, "明": 1867,
}

// eraParser reads Japanese imperial era dates such as "令和元年5月1日".
type eraParser struct {
	withDay bool
	pattern *regexp.Regexp
}

func newEraDate(withDay bool) *eraParser {
	expr := `^\s*(明治|明|大正|大|昭和|昭|平成|平|令和|令)\s*([0-9]{1,2}|元)\s*年\s*([0-9]{1,2})\s*月`
	if withDay {
		expr += `\s*([0-9]{1,2})\s*日`
	}
	return &eraParser{withDay: withDay, pattern: regexp.MustCompile(expr + `\s*$`)}
}

func (p *eraParser) Family() Family { return FamilyCalendar }

func (p *eraParser) Parse(raw string, d Descriptor) (Value, error) {
	kind := YearMonth
	if p.withDay {
		kind = FullDate
	}
	fail := func(err error) (Value, error) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: Date{Kind: kind}.Type(), Err: err}
	}
	m := p.pattern.FindStringSubmatch(foldDigits(raw))
	if m == nil {
		return fail(nil)
	}
	year := 1
	if m[2] != "元" {
		year, _ = strconv.Atoi(m[2])
	}
	year += eraStart[m[1]]
	month, _ := strconv.Atoi(m[3])
	day := 0
	if p.withDay {
		day, _ = strconv.Atoi(m[4])
	}
	date, err := buildDate(kind, year, month, day)
	if err != nil {
		return fail(err)
	}
	return DateValue(date), nil
}

// cjkParser reads Gregorian dates written with the 年, 月 and 日 markers.
type cjkParser struct {
	withDay bool
	pattern *regexp.Regexp
}

func newCJKDate(withDay bool) *cjkParser {
	expr := `^\s*(\d{4}|\d{1,2})\s*年\s*(\d{1,2})\s*月`
	if withDay {
		expr += `\s*(\d{1,2})\s*日`
	}
	return &cjkParser{withDay: withDay, pattern: regexp.MustCompile(expr + `\s*$`)}
}

func (p *cjkParser) Family() Family { return FamilyCalendar }

func (p *cjkParser) Parse(raw string, d Descriptor) (Value, error) {
	kind := YearMonth
	if p.withDay {
		kind = FullDate
	}
	fail := func(err error) (Value, error) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: Date{Kind: kind}.Type(), Err: err}
	}
	m := p.pattern.FindStringSubmatch(foldDigits(raw))
	if m == nil {
		return fail(nil)
	}
	month, _ := strconv.Atoi(m[2])
	parts := dateParts{year: m[1]}
	if p.withDay {
		parts.day = m[3]
	}
	date, err := parts.assemble(kind, month, expandYear)
	if err != nil {
		return fail(err)
	}
	return DateValue(date), nil
}

var (
	sakaYearOffset  = 78
	sakaMonthLength = [12]int{30, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 30}
	// Gregorian month, day and year offset on which each Saka month starts.
	sakaMonthOffset = [12][3]int{
		{3, 22, 0}, {4, 21, 0}, {5, 22, 0}, {6, 22, 0}, {7, 23, 0}, {8, 23, 0},
		{9, 23, 0}, {10, 23, 0}, {11, 22, 0}, {12, 22, 0}, {1, 21, 1}, {2, 20, 1},
	}
	gregorianMonthLength = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

var errSakaRange = errors.New("saka date out of range")

func gregorianLastDay(year, month int) int {
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return gregorianMonthLength[month-1]
}

// sakaToGregorian converts a date of the Indian national (Saka) calendar.
// Chaitra has 31 days, and starts a day earlier, when the Gregorian year
// it falls in is a leap year.
func sakaToGregorian(sYear, sMonth, sDay int) (int, int, int, error) {
	gYear := sYear + sakaYearOffset
	if gYear < 0 {
		return 0, 0, 0, fmt.Errorf("%w: year %d", errSakaRange, sYear)
	}
	if sMonth < 1 || sMonth > 12 {
		return 0, 0, 0, fmt.Errorf("%w: month %d", errSakaRange, sMonth)
	}
	leap := isLeapYear(gYear)
	length := sakaMonthLength[sMonth-1]
	if leap && sMonth == 1 {
		length++
	}
	if sDay < 1 || sDay > length {
		return 0, 0, 0, fmt.Errorf("%w: day %d of month %d", errSakaRange, sDay, sMonth)
	}
	offset := sakaMonthOffset[sMonth-1]
	gMonth, gDay := offset[0], offset[1]
	if leap && sMonth == 1 {
		gDay--
	}
	gYear += offset[2]
	gDay += sDay - 1
	for gDay > gregorianLastDay(gYear, gMonth) {
		gDay -= gregorianLastDay(gYear, gMonth)
		gMonth++
		if gMonth > 12 {
			gMonth = 1
			gYear++
		}
	}
	return gYear, gMonth, gDay, nil
}

var sakaMonths = regexp.MustCompile(`(?i)(C\S*ait|चैत्र)|(Vai|वैशाख|बैसाख)|(Jy|ज्येष्ठ)|(dha|ḍha|आषाढ|आषाढ़)|(vana|Śrāvaṇa|श्रावण|सावन)|(Bh\S+dra|Proṣṭhapada|भाद्रपद|भादो)|(in|आश्विन)|(K\S+rti|कार्तिक)|(M\S+rga|Agra|मार्गशीर्ष|अगहन)|(Pau|पौष)|(M\S+gh|माघ)|(Ph\S+lg|फाल्गुन)`)

// sakaParser reads day, Saka month name and Saka year, in Latin or
// Devanagari script, and yields the Gregorian date.
type sakaParser struct {
	pattern *regexp.Regexp
}

func newSakaDate() *sakaParser {
	return &sakaParser{pattern: regexp.MustCompile(`^\s*(\d{1,2})([^0-9]+)(\d{4}|\d{1,2})[^0-9]*$`)}
}

func (p *sakaParser) Family() Family { return FamilyCalendar }

func (p *sakaParser) Parse(raw string, d Descriptor) (Value, error) {
	fail := func(err error) (Value, error) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: "xs:date", Err: err}
	}
	m := p.pattern.FindStringSubmatch(foldDigits(raw))
	if m == nil {
		return fail(nil)
	}
	idx := sakaMonths.FindStringSubmatchIndex(m[2])
	month := 0
	for g := 1; idx != nil && g <= 12; g++ {
		if idx[2*g] >= 0 {
			month = g
			break
		}
	}
	if month == 0 {
		return fail(nil)
	}
	day, _ := strconv.Atoi(m[1])
	year, err := indianYear(m[3], month, day)
	if err != nil {
		return fail(err)
	}
	gy, gm, gd, err := sakaToGregorian(year, month, day)
	if err != nil {
		return fail(err)
	}
	date, err := buildDate(FullDate, gy, gm, gd)
	if err != nil {
		return fail(err)
	}
	return DateValue(date), nil
}

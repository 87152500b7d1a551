package transform

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

var ordinalSuffix = regexp.MustCompile(`(?i)(\d)(?:st|nd|rd|th)\b`)

// monthNameParser reads dates whose month is written as a word of one
// language, e.g. "05 January 2019", "January 05, 2019" or "5. März".
type monthNameParser struct {
	locale  *monthLocale
	order   dateOrder
	pattern *regexp.Regexp
	groups  map[byte]int
}

func newMonthName(locale *monthLocale, order dateOrder) *monthNameParser {
	names := make([]string, 0, len(locale.months))
	for k := range locale.months {
		names = append(names, regexp.QuoteMeta(k))
	}
	// Longest first, so "june" is preferred over "jun" at the same offset.
	slices.SortFunc(names, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	month := `(?i:(` + strings.Join(names, "|") + `))`
	// Separators next to the month may swallow stray letters, except for
	// exact vocabularies where "xiii" must not read as "iii".
	around, tail := `[^0-9]*?`, `[^0-9]*$`
	if locale.exact {
		around = `[^0-9\p{L}]*?`
		if order[len(order)-1] == 'm' {
			tail = `[^0-9\p{L}]*$`
		}
	}

	var b strings.Builder
	b.WriteString(`^\s*`)
	groups := make(map[byte]int, len(order))
	for i := 0; i < len(order); i++ {
		c := order[i]
		if i > 0 {
			if c != 'm' && order[i-1] != 'm' {
				b.WriteString(`[^0-9]+`)
			} else {
				b.WriteString(around)
			}
		}
		switch c {
		case 'm':
			b.WriteString(month)
		case 'y':
			b.WriteString(`(\d{4}|\d{1,2})`)
		case 'd':
			b.WriteString(`(\d{1,2})`)
		}
		groups[c] = i + 1
	}
	b.WriteString(tail)

	return &monthNameParser{
		locale:  locale,
		order:   order,
		pattern: regexp.MustCompile(b.String()),
		groups:  groups,
	}
}

func (p *monthNameParser) Family() Family { return FamilyDate }

func (p *monthNameParser) Parse(raw string, d Descriptor) (Value, error) {
	kind := p.order.kind()
	fail := func(err error) (Value, error) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: Date{Kind: kind}.Type(), Err: err}
	}
	s := ordinalSuffix.ReplaceAllString(foldDigits(raw), "$1")
	m := p.pattern.FindStringSubmatch(s)
	if m == nil {
		return fail(nil)
	}
	month, ok := p.lookup(m[p.groups['m']])
	if !ok {
		return fail(nil)
	}
	var parts dateParts
	if i, ok := p.groups['d']; ok {
		parts.day = m[i]
	}
	if i, ok := p.groups['y']; ok {
		parts.year = m[i]
	}
	date, err := parts.assemble(kind, month, p.locale.years)
	if err != nil {
		return fail(err)
	}
	return DateValue(date), nil
}

// lookup finds the month number of a matched name, folding case with
// the rules of the locale's language.
func (p *monthNameParser) lookup(name string) (int, bool) {
	key := cases.Lower(p.locale.tag).String(name)
	if n, ok := p.locale.months[key]; ok {
		return n, true
	}
	for k, n := range p.locale.months {
		if strings.EqualFold(k, name) {
			return n, true
		}
	}
	return 0, false
}

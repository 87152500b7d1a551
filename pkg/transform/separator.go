package transform

import (
	"regexp"
	"strings"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

const apostrophes = `'´’′`

// separatorParser reads numbers written with grouping separators and a
// single decimal mark, e.g. "1,234.56" or "1.234,56".
type separatorParser struct {
	decimal  string
	groups   string
	pattern  *regexp.Regexp
	expected string
}

// newDotDecimal accepts "." as the decimal mark and commas or spaces as
// grouping; with apos it also accepts apostrophes as grouping.
func newDotDecimal(apos bool) *separatorParser {
	groups := ", "
	if apos {
		groups += apostrophes
	}
	return newSeparatorParser(".", groups, "ixt:numdotdecimalType")
}

// newCommaDecimal accepts "," as the decimal mark and dots or spaces as
// grouping; with apos it also accepts apostrophes as grouping.
func newCommaDecimal(apos bool) *separatorParser {
	groups := ". "
	if apos {
		groups += apostrophes
	}
	return newSeparatorParser(",", groups, "ixt:numcommadecimalType")
}

func newSeparatorParser(decimal, groups, expected string) *separatorParser {
	cls := regexp.QuoteMeta(groups)
	return &separatorParser{
		decimal:  decimal,
		groups:   groups,
		pattern:  regexp.MustCompile(`^[` + cls + `0-9]*(` + regexp.QuoteMeta(decimal) + `[ 0-9]+)?$`),
		expected: expected,
	}
}

func (p *separatorParser) Family() Family { return FamilySeparator }

func (p *separatorParser) Parse(raw string, d Descriptor) (Value, error) {
	s := strings.TrimSpace(foldDigits(raw))
	if s == "" || s == "-" {
		return NumberValue(0), nil
	}
	if !p.pattern.MatchString(s) || !hasDigit(s) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: p.expected}
	}
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(p.groups, r) {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.Replace(s, p.decimal, ".", 1)
	n, ok := parseCanonical(s)
	if !ok {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: p.expected}
	}
	return NumberValue(applyScaleSign(n, d)), nil
}

// unitDecimalParser reads amounts written as a major unit and a minor
// unit, e.g. "1,234 dollars 56 cents", producing 1234.56.
type unitDecimalParser struct {
	separators string
	pattern    *regexp.Regexp
}

func newUnitDecimal(apos bool) *unitDecimalParser {
	seps := ".,"
	if apos {
		seps += apostrophes
	}
	cls := regexp.QuoteMeta(seps)
	return &unitDecimalParser{
		separators: seps,
		pattern:    regexp.MustCompile(`^([0-9` + cls + `]+)([^0-9` + cls + `][^0-9]*)([0-9]{1,2})[^0-9]*$`),
	}
}

func (p *unitDecimalParser) Family() Family { return FamilyUnitDecimal }

func (p *unitDecimalParser) Parse(raw string, d Descriptor) (Value, error) {
	s := strings.TrimSpace(foldDigits(raw))
	m := p.pattern.FindStringSubmatch(s)
	if m == nil || !hasDigit(m[1]) {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: "ixt:numunitdecimalType"}
	}
	major := strings.Map(func(r rune) rune {
		if strings.ContainsRune(p.separators, r) {
			return -1
		}
		return r
	}, m[1])
	minor := m[3]
	if len(minor) == 1 {
		minor = "0" + minor
	}
	n, ok := parseCanonical(major + "." + minor)
	if !ok {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: "ixt:numunitdecimalType"}
	}
	return NumberValue(applyScaleSign(n, d)), nil
}

package transform

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

// applyScaleSign flips the sign when requested and multiplies by ten to
// the power of scale. Zero stays positive so it never serializes as -0.
func applyScaleSign(n float64, d Descriptor) float64 {
	if n == 0 {
		return 0
	}
	if d.Negative() {
		n = -n
	}
	return n * math.Pow10(d.Scale)
}

// canonicalNumber reduces a plain decimal string to its minimal form:
// leading integer zeros and trailing fractional zeros are removed, at
// least one integer digit is kept, and so is a leading minus.
func canonicalNumber(s string) (string, bool) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	if intPart == "" && frac == "" {
		return "", false
	}
	if !isDigits(intPart) || !isDigits(frac) {
		return "", false
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	frac = strings.TrimRight(frac, "0")
	out := intPart
	if frac != "" {
		out += "." + frac
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' }) >= 0
}

// parseCanonical canonicalizes s and converts it to a float.
func parseCanonical(s string) (float64, bool) {
	c, ok := canonicalNumber(s)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(c, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// foldDigits maps full-width forms and Devanagari digits to ASCII, and
// every unicode space to a plain space, so patterns only see 0-9 and ' '.
func foldDigits(s string) string {
	s = width.Narrow.String(s)
	return strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		if unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, s)
}

// baseParser handles facts that declare no format at all.
type baseParser struct{}

func (baseParser) Family() Family { return FamilyBase }

func (baseParser) Parse(raw string, d Descriptor) (Value, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return NumberValue(0), nil
	}
	s = strings.NewReplacer(" ", "", ",", "", "\u00a0", "").Replace(s)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: "a decimal number"}
	}
	return NumberValue(applyScaleSign(n, d)), nil
}

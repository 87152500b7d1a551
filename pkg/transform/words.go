package transform

import (
	"strings"

	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var magnitudeWords = map[string]float64{
	"thousand": 1e3,
	"million":  1e6,
	"billion":  1e9,
	"trillion": 1e12,
}

// wordsParser reads English number words such as "eighty-five" or
// "two thousand and twelve".
type wordsParser struct{}

func (wordsParser) Family() Family { return FamilyWords }

func (wordsParser) Parse(raw string, d Descriptor) (Value, error) {
	n, ok := parseNumberWords(raw)
	if !ok {
		return Value{}, &xbrlerr.ConversionError{Value: raw, Format: d.Format(), Expected: "English number words"}
	}
	return NumberValue(applyScaleSign(n, d)), nil
}

func parseNumberWords(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "no" || s == "none" {
		return 0, true
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == ',' || r == '\t' || r == '\n'
	})
	var total, current float64
	seen := false
	for _, w := range words {
		switch {
		case w == "and":
			continue
		case w == "hundred":
			if current == 0 {
				current = 1
			}
			current *= 100
		case magnitudeWords[w] > 0:
			if current == 0 {
				current = 1
			}
			total += current * magnitudeWords[w]
			current = 0
		default:
			n, ok := numberWords[w]
			if !ok {
				return 0, false
			}
			current += float64(n)
		}
		seen = true
	}
	if !seen {
		return 0, false
	}
	return total + current, true
}

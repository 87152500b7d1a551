// Package transform implements the inline XBRL transformation registry:
// the catalogue of named formats ("ixt:num-dot-decimal",
// "ixt:date-day-monthname-year-de", ...) that turn the text a human sees
// in a filing into a typed value.
//
// A Registry maps canonical format names to Parser implementations. The
// built-in catalogue covers transformation registries 1 to 5 and the SEC
// extension set; further formats are contributed by Providers, either per
// registry through RegistryOpts or process-wide through Register.
package transform

import "fmt"

// Parser converts the raw text of a fact into a Value. Implementations
// must be safe for concurrent use once constructed.
type Parser interface {
	Family() Family
	Parse(raw string, d Descriptor) (Value, error)
}

// Family groups parsers by the kind of input they accept.
type Family int

const (
	FamilyBase Family = iota
	FamilyFixed
	FamilySeparator
	FamilyUnitDecimal
	FamilyWords
	FamilyDate
	FamilyCalendar
	FamilyCustom
)

var familyNames = map[Family]string{
	FamilyBase:        "base",
	FamilyFixed:       "fixed",
	FamilySeparator:   "separator",
	FamilyUnitDecimal: "unit-decimal",
	FamilyWords:       "words",
	FamilyDate:        "date",
	FamilyCalendar:    "calendar",
	FamilyCustom:      "custom",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParserFunc adapts a function to the Parser interface. Parsers built
// this way report FamilyCustom.
type ParserFunc func(raw string, d Descriptor) (Value, error)

func (f ParserFunc) Family() Family { return FamilyCustom }

func (f ParserFunc) Parse(raw string, d Descriptor) (Value, error) {
	return f(raw, d)
}

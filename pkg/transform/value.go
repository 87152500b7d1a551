package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which field of a Value is meaningful.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindDate
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the typed result of normalizing a raw fact string.
type Value struct {
	Kind   Kind
	Number float64
	Bool   bool
	Date   Date
	Text   string
}

func NullValue() Value { return Value{Kind: KindNull} }
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func DateValue(d Date) Value { return Value{Kind: KindDate, Date: d} }
func StringValue(s string) Value { return Value{Kind: KindString, Text: s} }

// IsNull reports whether the value carries nothing.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Interface returns the value as a serializable primitive: nil, float64,
// bool or string. Dates are rendered in their ISO 8601 lexical form.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindBool:
		return v.Bool
	case KindDate:
		return v.Date.String()
	case KindString:
		return v.Text
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return v.Date.String()
	case KindString:
		return v.Text
	}
	return ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// DateKind is the XML schema type produced by a date format.
type DateKind int

const (
	FullDate  DateKind = iota // xs:date
	MonthDay                  // xs:gMonthDay
	YearMonth                 // xs:gYearMonth
)

// Date is a calendar date that may omit its year or its day.
type Date struct {
	Kind  DateKind
	Year  int
	Month int
	Day   int
}

// Type returns the XML schema type name of the date.
func (d Date) Type() string {
	switch d.Kind {
	case MonthDay:
		return "xs:gMonthDay"
	case YearMonth:
		return "xs:gYearMonth"
	}
	return "xs:date"
}

func (d Date) String() string {
	switch d.Kind {
	case MonthDay:
		return fmt.Sprintf("--%02d-%02d", d.Month, d.Day)
	case YearMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

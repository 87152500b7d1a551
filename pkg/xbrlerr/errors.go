// Package xbrlerr defines the error taxonomy shared by the document
// extractor and the transformation registry.
//
// Every typed error unwraps to one of the sentinels below, so callers can
// branch with errors.Is and still reach the details with errors.As.
package xbrlerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStructural indicates a required element or attribute is missing or malformed.
	ErrStructural = errors.New("structural error")
	// ErrConversion indicates a raw value does not match the pattern of its format.
	ErrConversion = errors.New("conversion error")
	// ErrUnknownFormat indicates a format name with no registered parser.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrAmbiguousFormat indicates two providers claimed the same format name.
	ErrAmbiguousFormat = errors.New("ambiguous format")
)

// StructuralError describes a document that does not have the shape the
// extractor needs, such as a context without a period.
type StructuralError struct {
	Element string // qualified tag name of the offending element
	Attr    string // attribute involved, if any
	Message string
	Err     error
}

func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString("structural error")
	if e.Element != "" {
		fmt.Fprintf(&b, " in <%s>", e.Element)
	}
	if e.Attr != "" {
		fmt.Fprintf(&b, " (attribute %q)", e.Attr)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *StructuralError) Unwrap() error {
	if e.Err != nil {
		return errors.Join(ErrStructural, e.Err)
	}
	return ErrStructural
}

// ConversionError is returned when a raw string cannot be converted by the
// parser selected for its format.
type ConversionError struct {
	Value    string // the raw input
	Format   string // the format name as written in the document
	Expected string // the value type or pattern the parser expected
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q", e.Value)
	if e.Format != "" {
		msg += fmt.Sprintf(" using format %q", e.Format)
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s", e.Expected)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	if e.Err != nil {
		return errors.Join(ErrConversion, e.Err)
	}
	return ErrConversion
}

// UnknownFormatError names a format that no provider implements.
type UnknownFormatError struct {
	Format    string
	Namespace string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("format %q not implemented (namespace %q)", e.Format, e.Namespace)
}

func (e *UnknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}

// AmbiguousFormatError is raised in strict registries when a second
// provider claims a canonical name already taken.
type AmbiguousFormatError struct {
	Name     string
	Claimed  string // provider that registered the name first
	Conflict string // provider that tried to register it again
}

func (e *AmbiguousFormatError) Error() string {
	return fmt.Sprintf("format %q registered by both %q and %q", e.Name, e.Claimed, e.Conflict)
}

func (e *AmbiguousFormatError) Unwrap() error {
	return ErrAmbiguousFormat
}

// IsStructural reports whether err is, or wraps, a structural error.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsConversion reports whether err is, or wraps, a conversion error.
func IsConversion(err error) bool {
	return errors.Is(err, ErrConversion)
}

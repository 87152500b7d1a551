package transform

import (
	"fmt"
	"strconv"
	"strings"
)

// Descriptor carries the formatting metadata attached to a fact: the
// transformation format and the numeric post-processing attributes.
type Descriptor struct {
	Namespace string
	Name      string
	// Decimals is nil when the document declares infinite precision.
	Decimals *int
	Scale    int
	Sign     string
}

// NewDescriptor builds a Descriptor from the raw attribute values of a
// fact element. Empty decimals and scale default to zero.
func NewDescriptor(format, decimals, scale, sign string) (Descriptor, error) {
	ns, name := SplitFormat(format)
	d := Descriptor{Namespace: ns, Name: name, Sign: strings.TrimSpace(sign)}

	decimals = strings.TrimSpace(decimals)
	switch {
	case strings.EqualFold(decimals, "inf"):
	case decimals == "":
		zero := 0
		d.Decimals = &zero
	default:
		n, err := strconv.Atoi(decimals)
		if err != nil {
			return Descriptor{}, fmt.Errorf("invalid decimals %q: %w", decimals, err)
		}
		d.Decimals = &n
	}

	if scale = strings.TrimSpace(scale); scale != "" {
		n, err := strconv.Atoi(scale)
		if err != nil {
			return Descriptor{}, fmt.Errorf("invalid scale %q: %w", scale, err)
		}
		d.Scale = n
	}
	return d, nil
}

// Format returns the format as it would be written in a document.
func (d Descriptor) Format() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + ":" + d.Name
}

// Negative reports whether the sign attribute flips the value.
func (d Descriptor) Negative() bool {
	return d.Sign == "-"
}

// SplitFormat splits "ns:name" on the first colon. A bare name has an
// empty namespace.
func SplitFormat(format string) (namespace, name string) {
	format = strings.TrimSpace(format)
	if ns, n, ok := strings.Cut(format, ":"); ok {
		return ns, n
	}
	return "", format
}

// CanonicalName returns the registry key for a format: the namespace
// prefix is dropped, hyphens removed and the rest lower-cased, so that
// "ixt:num-dot-decimal" and "numdotdecimal" share a key.
func CanonicalName(format string) string {
	_, name := SplitFormat(format)
	return strings.ToLower(strings.ReplaceAll(name, "-", ""))
}

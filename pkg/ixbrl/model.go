package ixbrl

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/saranrapjs/ixbrlparse/pkg/doctree"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

// DateLayout is the only date form accepted in context periods.
const DateLayout = "2006-01-02"

// Entity identifies the reporting entity of a context.
type Entity struct {
	Scheme     string `json:"scheme,omitempty"`
	Identifier string `json:"identifier,omitempty"`
}

// Segment is one dimensional qualifier of a context, typically an
// xbrldi:explicitMember or xbrldi:typedMember.
type Segment struct {
	Tag       string            `json:"tag"`
	Dimension string            `json:"dimension,omitempty"`
	Value     string            `json:"value"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Context represents xbrli:context elements: the entity, dimensions and
// period a fact is reported for. A context has either an Instant or a
// StartDate and EndDate, never both.
type Context struct {
	ID        string
	Entity    Entity
	Segments  []Segment
	Instant   *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// IsInstant reports whether the context is a point in time.
func (c *Context) IsInstant() bool {
	return c.Instant != nil
}

// Period renders the period as "2006-01-02" or "2006-01-02 thru 2006-12-31".
func (c *Context) Period() string {
	if c.Instant != nil {
		return c.Instant.Format(DateLayout)
	}
	return fmt.Sprintf("%s thru %s", c.StartDate.Format(DateLayout), c.EndDate.Format(DateLayout))
}

// End returns the instant, or the end of the interval.
func (c *Context) End() time.Time {
	if c.Instant != nil {
		return *c.Instant
	}
	return *c.EndDate
}

func (c *Context) String() string {
	s := fmt.Sprintf("%s [%s]", c.ID, strings.Replace(c.Period(), "thru", "to", 1))
	if len(c.Segments) > 0 {
		s += " (with segments)"
	}
	return s
}

// ContextRef is how a fact points at its context. References to ids
// that were never declared are kept as the bare id.
type ContextRef struct {
	id  string
	ctx *Context
}

func resolvedRef(c *Context) ContextRef { return ContextRef{id: c.ID, ctx: c} }
func danglingRef(id string) ContextRef  { return ContextRef{id: id} }

// ID returns the referenced context id.
func (r ContextRef) ID() string { return r.id }

// Context returns the resolved context, if the id was declared.
func (r ContextRef) Context() (*Context, bool) { return r.ctx, r.ctx != nil }

// MarshalJSON writes the resolved context, or the bare id.
func (r ContextRef) MarshalJSON() ([]byte, error) {
	if r.ctx != nil {
		return json.Marshal(contextJSON(r.ctx))
	}
	return json.Marshal(r.id)
}

// Unit represents xbrli:unit elements. Measure is nil when the unit has
// no measure element; divide units report their numerator.
type Unit struct {
	ID      string
	Measure *string
}

// Fact is the part common to numeric and non-numeric facts.
type Fact struct {
	// Schema is the prefix of the concept name, or "unknown".
	Schema  string
	Name    string
	Context ContextRef
	// Text is the raw text the value was read from.
	Text    string
	Element doctree.Node
}

// QName joins Schema and Name back together.
func (f *Fact) QName() string {
	if f.Schema == unknownSchema {
		return f.Name
	}
	return f.Schema + ":" + f.Name
}

const unknownSchema = "unknown"

func splitName(name string) (schema, local string) {
	if s, l, ok := strings.Cut(name, ":"); ok {
		return s, l
	}
	return unknownSchema, name
}

// NumericFact represents ix:nonFraction elements and instance facts
// carrying a unitRef.
type NumericFact struct {
	Fact
	UnitRef string
	// Unit is nil when UnitRef names no declared unit.
	Unit   *Unit
	Format transform.Descriptor
	// Value is a number, a bool or null.
	Value transform.Value
}

// UnitString returns the unit's measure, or the raw unitRef when the
// unit was not declared.
func (f *NumericFact) UnitString() *string {
	if f.Unit != nil {
		return f.Unit.Measure
	}
	if f.UnitRef == "" {
		return nil
	}
	ref := f.UnitRef
	return &ref
}

// NonNumericFact represents ix:nonNumeric elements and instance facts
// without a unitRef.
type NonNumericFact struct {
	Fact
	// Format is nil when the element declares none.
	Format *transform.Descriptor
	// Value is the text itself, or the parsed value when a format applies.
	Value transform.Value
}

// Display renders the element the fact was read from the way a browser
// shows it, keeping paragraph breaks that Text drops.
func (f *NonNumericFact) Display() string {
	if f.Element == nil {
		return f.Text
	}
	return doctree.DisplayText(f.Element)
}

// ErrorRecord is a failure recorded while collecting in Collect mode.
type ErrorRecord struct {
	Err       error
	Element   doctree.Node
	ContextID string
}

func (r ErrorRecord) Error() string {
	if r.Element == nil {
		return r.Err.Error()
	}
	return fmt.Sprintf("<%s>: %v", r.Element.Name(), r.Err)
}

func (r ErrorRecord) Unwrap() error { return r.Err }

package ixbrl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

// DocumentJSON is the serializable form of a Document.
type DocumentJSON struct {
	Schema     string                 `json:"schema"`
	Namespaces map[string][]string    `json:"namespaces"`
	Contexts   map[string]ContextJSON `json:"contexts"`
	Units      map[string]*string     `json:"units"`
	NonNumeric []NonNumericJSON       `json:"nonnumeric"`
	Numeric    []NumericJSON          `json:"numeric"`
	// Errors counts the records in Document.Errors.
	Errors int `json:"errors"`
}

type ContextJSON struct {
	ID        string    `json:"id"`
	Entity    Entity    `json:"entity"`
	Segments  []Segment `json:"segments"`
	Instant   *string   `json:"instant"`
	StartDate *string   `json:"startdate"`
	EndDate   *string   `json:"enddate"`
}

type FormatJSON struct {
	Format    string `json:"format"`
	Namespace string `json:"namespace"`
	Decimals  *int   `json:"decimals"`
	Scale     int    `json:"scale"`
	Sign      string `json:"sign"`
}

type NumericJSON struct {
	Schema  string          `json:"schema"`
	Name    string          `json:"name"`
	Context ContextRef      `json:"context"`
	Unit    *string         `json:"unit"`
	Text    string          `json:"text"`
	Format  FormatJSON      `json:"format"`
	Value   transform.Value `json:"value"`
}

type NonNumericJSON struct {
	Schema  string          `json:"schema"`
	Name    string          `json:"name"`
	Context ContextRef      `json:"context"`
	Text    string          `json:"text"`
	Format  *FormatJSON     `json:"format"`
	Value   transform.Value `json:"value"`
}

func isoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func contextJSON(c *Context) ContextJSON {
	out := ContextJSON{ID: c.ID, Entity: c.Entity, Segments: c.Segments}
	if out.Segments == nil {
		out.Segments = []Segment{}
	}
	out.Instant = isoDate(c.Instant)
	out.StartDate = isoDate(c.StartDate)
	out.EndDate = isoDate(c.EndDate)
	return out
}

func formatJSON(d transform.Descriptor) FormatJSON {
	return FormatJSON{
		Format:    d.Name,
		Namespace: d.Namespace,
		Decimals:  d.Decimals,
		Scale:     d.Scale,
		Sign:      d.Sign,
	}
}

// ToJSON projects the document into its serializable form. Dates are
// rendered as ISO 8601 strings.
func (d *Document) ToJSON() DocumentJSON {
	out := DocumentJSON{
		Schema:     d.Schema,
		Namespaces: d.Namespaces,
		Contexts:   make(map[string]ContextJSON, len(d.Contexts)),
		Units:      make(map[string]*string, len(d.Units)),
		NonNumeric: make([]NonNumericJSON, 0, len(d.NonNumeric)),
		Numeric:    make([]NumericJSON, 0, len(d.Numeric)),
		Errors:     len(d.Errors),
	}
	for id, c := range d.Contexts {
		out.Contexts[id] = contextJSON(c)
	}
	for id, u := range d.Units {
		out.Units[id] = u.Measure
	}
	for _, f := range d.NonNumeric {
		nj := NonNumericJSON{Schema: f.Schema, Name: f.Name, Context: f.Context, Text: f.Text, Value: f.Value}
		if f.Format != nil {
			fj := formatJSON(*f.Format)
			nj.Format = &fj
		}
		out.NonNumeric = append(out.NonNumeric, nj)
	}
	for _, f := range d.Numeric {
		out.Numeric = append(out.Numeric, NumericJSON{
			Schema:  f.Schema,
			Name:    f.Name,
			Context: f.Context,
			Unit:    f.UnitString(),
			Text:    f.Text,
			Format:  formatJSON(f.Format),
			Value:   f.Value,
		})
	}
	return out
}

// Fields selects which facts ToTable projects.
type Fields string

const (
	FieldsNumeric    Fields = "numeric"
	FieldsNonNumeric Fields = "nonnumeric"
	FieldsAll        Fields = "all"
)

// ParseFields reads "numeric", "nonnumeric" or "all".
func ParseFields(s string) (Fields, error) {
	switch f := Fields(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldsNumeric, FieldsNonNumeric, FieldsAll:
		return f, nil
	case "":
		return FieldsNumeric, nil
	}
	return "", fmt.Errorf("unknown fields %q: want numeric, nonnumeric or all", s)
}

// Row is one fact flattened for tabular output. Values are nil, string,
// float64 or bool.
type Row map[string]any

// BaseColumns are present in every row, in this order.
var BaseColumns = []string{"schema", "name", "value", "unit", "instant", "startdate", "enddate"}

const segmentPrefix = "segment:"

// ToTable flattens facts into rows. FieldsAll lists the non-numeric
// facts first.
func (d *Document) ToTable(fields Fields) []Row {
	var rows []Row
	if fields == FieldsNonNumeric || fields == FieldsAll {
		for _, f := range d.NonNumeric {
			rows = append(rows, d.row(&f.Fact, f.Value, nil))
		}
	}
	if fields == FieldsNumeric || fields == FieldsAll {
		for _, f := range d.Numeric {
			rows = append(rows, d.row(&f.Fact, f.Value, f.UnitString()))
		}
	}
	return rows
}

func (d *Document) row(f *Fact, v transform.Value, unit *string) Row {
	r := Row{
		"schema":    d.schemaURI(f.Schema),
		"name":      f.Name,
		"value":     v.Interface(),
		"unit":      nil,
		"instant":   nil,
		"startdate": nil,
		"enddate":   nil,
	}
	if unit != nil {
		r["unit"] = *unit
	}
	c, ok := f.Context.Context()
	if ok {
		for key, t := range map[string]*time.Time{"instant": c.Instant, "startdate": c.StartDate, "enddate": c.EndDate} {
			if t != nil {
				r[key] = t.Format(DateLayout)
			}
		}
	}
	if !ok || len(c.Segments) == 0 {
		r[segmentPrefix+"0"] = ""
		return r
	}
	for i, s := range c.Segments {
		r[segmentPrefix+strconv.Itoa(i)] = strings.TrimSpace(fmt.Sprintf("%s %s %s", s.Tag, s.Dimension, s.Value))
	}
	return r
}

// schemaURI resolves a concept prefix to the namespace bound to it on
// the root element, or returns the prefix when none is bound.
func (d *Document) schemaURI(prefix string) string {
	if uris, ok := d.Namespaces["xmlns:"+prefix]; ok {
		return strings.Join(uris, " ")
	}
	for k, uris := range d.Namespaces {
		if strings.EqualFold(k, "xmlns:"+prefix) {
			return strings.Join(uris, " ")
		}
	}
	return prefix
}

// Columns returns the union of the keys of rows: the base columns, then
// segments in numeric order, then anything else sorted.
func Columns(rows []Row) []string {
	keys := lo.Uniq(lo.FlatMap(rows, func(r Row, _ int) []string { return lo.Keys(map[string]any(r)) }))
	segments := lo.Filter(keys, func(k string, _ int) bool { return strings.HasPrefix(k, segmentPrefix) })
	slices.SortFunc(segments, func(a, b string) int {
		return segmentIndex(a) - segmentIndex(b)
	})
	rest := lo.Filter(keys, func(k string, _ int) bool {
		return !strings.HasPrefix(k, segmentPrefix) && !slices.Contains(BaseColumns, k)
	})
	slices.Sort(rest)

	cols := slices.Clone(BaseColumns)
	cols = append(cols, segments...)
	return append(cols, rest...)
}

func segmentIndex(key string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(key, segmentPrefix))
	return n
}

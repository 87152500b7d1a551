package ixbrl

import (
	"fmt"
	"strings"
	"time"

	"github.com/saranrapjs/ixbrlparse/pkg/doctree"
	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

var (
	contextNames    = []string{"xbrli:context", "context"}
	identifierNames = []string{"xbrli:identifier", "identifier"}
	segmentNames    = []string{"xbrli:segment", "segment"}
	instantNames    = []string{"xbrli:instant", "instant"}
	startDateNames  = []string{"xbrli:startDate", "startDate"}
	endDateNames    = []string{"xbrli:endDate", "endDate"}
)

// buildContext reads one context element. Elements without an id are
// skipped with a nil context and no error.
func buildContext(el doctree.Node) (*Context, error) {
	id, _ := el.Attr("id")
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	c := &Context{ID: id}

	if ident := el.FindFirst(identifierNames...); ident != nil {
		scheme, _ := ident.Attr("scheme")
		c.Entity = Entity{
			Scheme:     strings.TrimSpace(scheme),
			Identifier: strings.TrimSpace(ident.Text()),
		}
	}

	if seg := el.FindFirst(segmentNames...); seg != nil {
		for _, member := range seg.FindAll() {
			s := Segment{Tag: member.Name(), Value: strings.TrimSpace(member.Text())}
			for _, a := range member.Attrs() {
				if strings.EqualFold(a.Name, "dimension") {
					s.Dimension = a.Value
					continue
				}
				if s.Attrs == nil {
					s.Attrs = make(map[string]string)
				}
				s.Attrs[a.Name] = a.Value
			}
			c.Segments = append(c.Segments, s)
		}
	}

	var err error
	date := func(names []string) *time.Time {
		n := el.FindFirst(names...)
		if n == nil || err != nil {
			return nil
		}
		text := strings.TrimSpace(n.Text())
		if text == "" {
			return nil
		}
		t, perr := time.Parse(DateLayout, text)
		if perr != nil {
			err = &xbrlerr.StructuralError{Element: n.Name(), Message: fmt.Sprintf("invalid date %q", text), Err: perr}
			return nil
		}
		return &t
	}
	c.Instant = date(instantNames)
	c.StartDate = date(startDateNames)
	c.EndDate = date(endDateNames)
	if err != nil {
		return nil, err
	}

	interval := c.StartDate != nil || c.EndDate != nil
	switch {
	case c.Instant != nil && interval:
		return nil, &xbrlerr.StructuralError{Element: el.Name(), Message: fmt.Sprintf("context %q has both an instant and an interval", id)}
	case c.Instant == nil && !interval:
		return nil, &xbrlerr.StructuralError{Element: el.Name(), Message: fmt.Sprintf("context %q has no period", id)}
	case c.Instant == nil && (c.StartDate == nil || c.EndDate == nil):
		return nil, &xbrlerr.StructuralError{Element: el.Name(), Message: fmt.Sprintf("context %q has an incomplete interval", id)}
	}
	return c, nil
}

package ixbrl

import (
	"strings"

	"github.com/saranrapjs/ixbrlparse/pkg/doctree"
)

var (
	unitNames    = []string{"xbrli:unit", "unit"}
	measureNames = []string{"xbrli:measure", "measure"}
)

func buildUnit(el doctree.Node) *Unit {
	id, _ := el.Attr("id")
	if id = strings.TrimSpace(id); id == "" {
		return nil
	}
	u := &Unit{ID: id}
	if m := el.FindFirst(measureNames...); m != nil {
		measure := strings.TrimSpace(m.Text())
		u.Measure = &measure
	}
	return u
}

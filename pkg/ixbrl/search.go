package ixbrl

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Search returns the first fact matching predicate, or nil.
func Search[F any](facts []*F, predicate func(f *F) bool) *F {
	f, _ := lo.Find(facts, predicate)
	return f
}

// Filter returns every fact matching predicate, in document order.
func Filter[F any](facts []*F, predicate func(f *F) bool) []*F {
	return lo.Filter(facts, func(f *F, _ int) bool { return predicate(f) })
}

// Concept returns the numeric facts reported for a concept, given as
// "prefix:Name". Matching ignores case.
func (d *Document) Concept(qname string) []*NumericFact {
	return Filter(d.Numeric, func(f *NumericFact) bool {
		return strings.EqualFold(f.QName(), qname)
	})
}

// Concepts lists the distinct numeric concept names, sorted.
func (d *Document) Concepts() []string {
	names := lo.Uniq(lo.Map(d.Numeric, func(f *NumericFact, _ int) string { return f.QName() }))
	slices.Sort(names)
	return names
}

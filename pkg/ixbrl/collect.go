package ixbrl

import (
	"fmt"
	"strings"

	"github.com/saranrapjs/ixbrlparse/pkg/doctree"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

// strategy knows where a document type keeps its contexts, units and
// facts.
type strategy interface {
	contexts(root doctree.Node) []doctree.Node
	units(root doctree.Node) []doctree.Node
	collect(p *parser, root doctree.Node) error
}

// inline reads iXBRL: contexts and units live in ix:resources, facts are
// ix:nonNumeric and ix:nonFraction elements anywhere in the body.
type inline struct{}

var (
	resourcesNames    = []string{"ix:resources", "resources"}
	nonNumericNames   = []string{"ix:nonNumeric", "nonNumeric"}
	nonFractionNames  = []string{"ix:nonFraction", "nonFraction"}
	continuationNames = []string{"ix:continuation", "continuation"}
	excludeNames      = []string{"ix:exclude", "exclude"}
)

func (inline) contexts(root doctree.Node) []doctree.Node {
	if res := root.FindFirst(resourcesNames...); res != nil {
		return res.FindAll(contextNames...)
	}
	return nil
}

func (inline) units(root doctree.Node) []doctree.Node {
	if res := root.FindFirst(resourcesNames...); res != nil {
		return res.FindAll(unitNames...)
	}
	return nil
}

func (inline) collect(p *parser, root doctree.Node) error {
	continuations := make(map[string]doctree.Node)
	for _, c := range root.FindAll(continuationNames...) {
		if id, ok := c.Attr("id"); ok {
			continuations[id] = c
		}
	}
	for _, el := range root.FindAll(nonNumericNames...) {
		text := continuedText(el, continuations)
		if err := p.addNonNumeric(el, text); err != nil {
			return err
		}
	}
	for _, el := range root.FindAll(nonFractionNames...) {
		if err := p.addNumeric(el); err != nil {
			return err
		}
	}
	return nil
}

// continuedText joins the text of el and of the ix:continuation chain
// its continuedAt attribute starts, leaving out ix:exclude content.
func continuedText(el doctree.Node, continuations map[string]doctree.Node) string {
	var b strings.Builder
	seen := make(map[string]bool)
	for n := el; n != nil; {
		b.WriteString(n.Text(excludeNames...))
		next, ok := n.Attr("continuedAt")
		if !ok || seen[next] {
			break
		}
		seen[next] = true
		n = continuations[next]
	}
	return b.String()
}

// instance reads XBRL instances: any element below the root carrying a
// contextRef is a fact, numeric when it also has a unitRef.
type instance struct{}

func (instance) contexts(root doctree.Node) []doctree.Node { return root.FindAll(contextNames...) }

func (instance) units(root doctree.Node) []doctree.Node { return root.FindAll(unitNames...) }

func (instance) collect(p *parser, root doctree.Node) error {
	var numeric []doctree.Node
	for _, el := range root.FindAll() {
		if ref, _ := el.Attr("contextRef"); ref == "" {
			continue
		}
		if unit, _ := el.Attr("unitRef"); unit != "" {
			numeric = append(numeric, el)
			continue
		}
		if err := p.addNonNumeric(el, el.Text()); err != nil {
			return err
		}
	}
	for _, el := range numeric {
		if err := p.addNumeric(el); err != nil {
			return err
		}
	}
	return nil
}

func missingAttr(el doctree.Node, attr string) error {
	return &xbrlerr.StructuralError{Element: el.Name(), Attr: attr, Message: "missing required attribute"}
}

// factName is the name attribute for inline facts and the tag itself for
// instance facts.
func (p *parser) factName(el doctree.Node) (string, error) {
	if p.doc.FileType == FileTypeXBRL {
		return el.Name(), nil
	}
	name, _ := el.Attr("name")
	if name = strings.TrimSpace(name); name == "" {
		return "", missingAttr(el, "name")
	}
	return name, nil
}

func (p *parser) baseFact(el doctree.Node, text string) (Fact, error) {
	name, err := p.factName(el)
	if err != nil {
		return Fact{}, err
	}
	ref, _ := el.Attr("contextRef")
	if ref = strings.TrimSpace(ref); ref == "" {
		return Fact{}, missingAttr(el, "contextRef")
	}
	schema, local := splitName(name)
	return Fact{
		Schema:  schema,
		Name:    local,
		Context: p.contextRef(ref),
		Text:    text,
		Element: el,
	}, nil
}

func (p *parser) addNonNumeric(el doctree.Node, raw string) error {
	text := strings.ReplaceAll(strings.TrimSpace(raw), "\n", "")
	fact, err := p.baseFact(el, text)
	if err != nil {
		ref, _ := el.Attr("contextRef")
		return p.fail(el, ref, err)
	}
	f := &NonNumericFact{Fact: fact, Value: transform.StringValue(text)}

	if format, _ := el.Attr("format"); strings.TrimSpace(format) != "" {
		d, err := transform.NewDescriptor(format, "", "", "")
		if err != nil {
			return p.fail(el, fact.Context.ID(), err)
		}
		f.Format = &d
		v, err := p.registry.Parse(text, d)
		if err != nil {
			// The fact is kept with its text as the value.
			if err := p.fail(el, fact.Context.ID(), err); err != nil {
				return err
			}
		} else {
			f.Value = v
		}
	}
	p.doc.NonNumeric = append(p.doc.NonNumeric, f)
	return nil
}

func (p *parser) addNumeric(el doctree.Node) error {
	fact, err := p.baseFact(el, el.Text())
	if err != nil {
		ref, _ := el.Attr("contextRef")
		return p.fail(el, ref, err)
	}
	unitRef, _ := el.Attr("unitRef")
	unitRef = strings.TrimSpace(unitRef)
	if unitRef == "" && p.doc.FileType == FileTypeIXBRL {
		return p.fail(el, fact.Context.ID(), missingAttr(el, "unitRef"))
	}

	format, _ := el.Attr("format")
	decimals, _ := el.Attr("decimals")
	scale, _ := el.Attr("scale")
	sign, _ := el.Attr("sign")
	d, err := transform.NewDescriptor(format, decimals, scale, sign)
	if err != nil {
		return p.fail(el, fact.Context.ID(), &xbrlerr.StructuralError{Element: el.Name(), Message: "invalid numeric attributes", Err: err})
	}

	f := &NumericFact{Fact: fact, UnitRef: unitRef, Unit: p.doc.Units[unitRef], Format: d}
	if isNil(el) {
		f.Value = transform.NullValue()
	} else {
		v, err := p.registry.Parse(strings.TrimSpace(fact.Text), d)
		if err == nil {
			err = checkNumeric(fact.Text, d, v)
		}
		if err != nil {
			return p.fail(el, fact.Context.ID(), err)
		}
		f.Value = v
	}
	p.doc.Numeric = append(p.doc.Numeric, f)
	return nil
}

func isNil(el doctree.Node) bool {
	v, _ := el.Attr("xsi:nil")
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

// checkNumeric rejects formats that produce dates or text for a numeric
// fact.
func checkNumeric(raw string, d transform.Descriptor, v transform.Value) error {
	switch v.Kind {
	case transform.KindNumber, transform.KindBool, transform.KindNull:
		return nil
	}
	return &xbrlerr.ConversionError{
		Value:    raw,
		Format:   d.Format(),
		Expected: "a number",
		Err:      fmt.Errorf("format yields a %s", v.Kind),
	}
}

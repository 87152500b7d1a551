package doctree

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// xmlNode is an element of a tree built by xmlquery. Names keep the
// prefix and case written in the source.
type xmlNode struct {
	n *xmlquery.Node
}

func (x *xmlNode) Name() string {
	if x.n.Prefix != "" {
		return x.n.Prefix + ":" + x.n.Data
	}
	return x.n.Data
}

func (x *xmlNode) Attr(name string) (string, bool) {
	return lookupAttr(x.Attrs(), name)
}

func (x *xmlNode) Attrs() []Attr {
	attrs := make([]Attr, 0, len(x.n.Attr))
	for _, a := range x.n.Attr {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + a.Name.Local
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Value})
	}
	return attrs
}

func (x *xmlNode) Text(exclude ...string) string {
	if len(exclude) == 0 {
		return x.n.InnerText()
	}
	var b strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				b.WriteString(c.Data)
			case xmlquery.ElementNode:
				if matches((&xmlNode{n: c}).Name(), exclude) {
					continue
				}
				walk(c)
			}
		}
	}
	walk(x.n)
	return b.String()
}

func (x *xmlNode) Children() []Node {
	var out []Node
	for c := x.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, &xmlNode{n: c})
		}
	}
	return out
}

func (x *xmlNode) FindFirst(names ...string) Node { return findFirst(x, names) }

func (x *xmlNode) FindAll(names ...string) []Node { return findAll(x, names) }

func isInlineXMLNode(node *xmlquery.Node) bool {
	if node.Type != xmlquery.ElementNode {
		return true
	}
	return inlineTag((&xmlNode{n: node}).Name())
}

// extractXMLText mirrors extractText for XHTML read as XML. Comments and
// processing instructions are skipped.
func extractXMLText(node *xmlquery.Node, builder *strings.Builder) {
	switch node.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		builder.WriteString(node.Data)
		return
	case xmlquery.ElementNode:
	default:
		return
	}
	var cb strings.Builder
	allInline := true
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if !isInlineXMLNode(child) {
			allInline = false
			break
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if !allInline && (child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode) {
			continue
		}
		extractXMLText(child, &cb)
	}
	if allInline {
		builder.WriteString(strings.Join(strings.Fields(cb.String()), " "))
	} else {
		builder.WriteString(cb.String())
	}
	if !isInlineXMLNode(node) {
		builder.WriteString("\n")
	}
}

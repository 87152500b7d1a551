package doctree

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlNode is an element of a tree built by the HTML5 parser, which lower
// cases tag and attribute names ("ix:nonnumeric", "contextref").
type htmlNode struct {
	n *html.Node
}

func (h *htmlNode) Name() string { return h.n.Data }

func (h *htmlNode) Attr(name string) (string, bool) {
	return lookupAttr(h.Attrs(), name)
}

func (h *htmlNode) Attrs() []Attr {
	attrs := make([]Attr, 0, len(h.n.Attr))
	for _, a := range h.n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, Attr{Name: name, Value: a.Val})
	}
	return attrs
}

func (h *htmlNode) Text(exclude ...string) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if len(exclude) > 0 && matches(c.Data, exclude) {
					continue
				}
				walk(c)
			}
		}
	}
	walk(h.n)
	return b.String()
}

func (h *htmlNode) Children() []Node {
	var out []Node
	for c := h.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &htmlNode{n: c})
		}
	}
	return out
}

func (h *htmlNode) FindFirst(names ...string) Node { return findFirst(h, names) }

func (h *htmlNode) FindAll(names ...string) []Node { return findAll(h, names) }

// DisplayText renders the text of nodes the way a browser would show it:
// block elements end with a line return, runs of inline content have
// their whitespace collapsed, and whitespace between blocks is dropped.
func DisplayText(nodes ...Node) string {
	var b strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case *htmlNode:
			extractText(n.n, &b)
		case *xmlNode:
			extractXMLText(n.n, &b)
		case nil:
		default:
			b.WriteString(strings.Join(strings.Fields(n.Text()), " "))
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

func inlineTag(name string) bool {
	name = strings.ToLower(name)
	switch name {
	case "span", "em", "strong", "b", "i", "u", "sup", "sub", "a", "br", "font":
		return true
	}
	// Inline XBRL tags sit inside running text.
	return strings.HasPrefix(name, "ix:")
}

func isInlineNode(node *html.Node) bool {
	if node.Type != html.ElementNode {
		return true
	}
	return inlineTag(node.Data)
}

// extractText recursively extracts text content from a node and its descendants
func extractText(node *html.Node, builder *strings.Builder) {
	if node == nil {
		return
	}

	if node.Type == html.TextNode {
		builder.WriteString(node.Data)
	}
	var cb strings.Builder
	allInlineChildren := onlyInlineChildren(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if !allInlineChildren && child.Type == html.TextNode {
			continue
		}
		extractText(child, &cb)
	}
	if allInlineChildren {
		builder.WriteString(strings.Join(strings.Fields(cb.String()), " "))
	} else {
		builder.WriteString(cb.String())
	}
	if node.Type == html.ElementNode && !isInlineNode(node) {
		builder.WriteString("\n")
	}
}

func onlyInlineChildren(node *html.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if !isInlineNode(child) {
			return false
		}
	}
	return true
}

// Match is a leaf element whose display text satisfied a search.
type Match struct {
	Node Node
	Text string
}

// SearchText visits every element without element children and reports
// those whose display text the predicate maps to a non-empty string.
func SearchText(root Node, predicate func(text string) string) []Match {
	var matches []Match
	searchRecursive(root, predicate, &matches)
	return matches
}

func searchRecursive(node Node, predicate func(text string) string, matches *[]Match) {
	if node == nil {
		return
	}
	children := node.Children()
	if len(children) == 0 {
		if text := DisplayText(node); text != "" {
			if match := predicate(text); match != "" {
				*matches = append(*matches, Match{Node: node, Text: match})
			}
		}
		return
	}
	for _, child := range children {
		searchRecursive(child, predicate, matches)
	}
}

// Package doctree wraps the two markup trees a filing can arrive as, XML
// (XBRL instances and well-formed XHTML inline filings) and HTML (inline
// filings too sloppy to be XML), behind one Node interface with
// case-insensitive, prefix-tolerant element lookup.
package doctree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Node is an element of a parsed document.
type Node interface {
	// Name is the qualified tag name, "prefix:local" or "local".
	Name() string
	// Attr looks up an attribute by qualified name, ignoring case.
	Attr(name string) (string, bool)
	Attrs() []Attr
	// Text concatenates the character data below the node, skipping the
	// sub-trees of elements named in exclude.
	Text(exclude ...string) string
	// Children returns the element children in document order.
	Children() []Node
	// FindFirst returns the first descendant, depth first, whose name is
	// one of names, or nil. Without names any element matches.
	FindFirst(names ...string) Node
	// FindAll returns every matching descendant in document order.
	FindAll(names ...string) []Node
}

// Attr is an attribute with its qualified name.
type Attr struct {
	Name  string
	Value string
}

// Kind tells which backend a Document was parsed with.
type Kind int

const (
	KindXML Kind = iota
	KindHTML
)

func (k Kind) String() string {
	if k == KindHTML {
		return "html"
	}
	return "xml"
}

// Document is a parsed tree and its root element.
type Document struct {
	Kind Kind
	Root Node
}

// Parse reads a whole document. Anything that is well-formed XML,
// XHTML inline filings included, is parsed with xmlquery so element names
// keep their case and self-closing elements stay empty. Documents that
// look like HTML but are not well-formed XML fall back to the HTML5
// parser.
func Parse(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, xmlErr := ParseXML(bytes.NewReader(src))
	if xmlErr == nil {
		return doc, nil
	}
	if !looksLikeHTML(src) {
		return nil, fmt.Errorf("failed to parse document: %w", xmlErr)
	}
	return ParseHTML(bytes.NewReader(src))
}

var xmlOptions = xmlquery.ParserOptions{
	Decoder: &xmlquery.DecoderOptions{
		Strict:        true,
		Entity:        xml.HTMLEntity,
		CharsetReader: charset.NewReaderLabel,
	},
}

// ParseXML parses r as namespace-aware XML. HTML named entities such as
// &nbsp; are accepted, and so are encodings other than UTF-8 declared in
// the XML prolog.
func ParseXML(r io.Reader) (*Document, error) {
	root, err := xmlquery.ParseWithOptions(r, xmlOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to parse xml: %w", err)
	}
	el := firstXMLElement(root)
	if el == nil {
		return nil, fmt.Errorf("failed to parse xml: no root element")
	}
	return &Document{Kind: KindXML, Root: &xmlNode{n: el}}, nil
}

// ParseHTML parses r with the HTML5 parser regardless of its content.
func ParseHTML(r io.Reader) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	var root *html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			root = c
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("failed to parse html: no root element")
	}
	return &Document{Kind: KindHTML, Root: &htmlNode{n: root}}, nil
}

func firstXMLElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func looksLikeHTML(src []byte) bool {
	head := src
	if len(head) > 4096 {
		head = head[:4096]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<html"))
}

// LocalName strips the prefix from a qualified name.
func LocalName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func matches(name string, names []string) bool {
	if len(names) == 0 {
		return true
	}
	for _, n := range names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}

// find walks the element descendants of n depth first. It stops early when
// first is set.
func find(n Node, names []string, first bool, out *[]Node) bool {
	for _, c := range n.Children() {
		if matches(c.Name(), names) {
			*out = append(*out, c)
			if first {
				return true
			}
		}
		if find(c, names, first, out) && first {
			return true
		}
	}
	return false
}

func findFirst(n Node, names []string) Node {
	var out []Node
	if find(n, names, true, &out); len(out) == 0 {
		return nil
	}
	return out[0]
}

func findAll(n Node, names []string) []Node {
	var out []Node
	find(n, names, false, &out)
	return out
}

func lookupAttr(attrs []Attr, name string) (string, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

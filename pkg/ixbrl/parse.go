// Package ixbrl extracts facts from inline XBRL (iXBRL) documents, the
// XHTML filings published by businesses to regulators such as the SEC's
// EDGAR system and Companies House, and from plain XBRL instance
// documents.
//
// Parsing resolves contexts and units first, then collects numeric and
// non-numeric facts and normalizes their text through a
// transform.Registry.
package ixbrl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/doctree"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

// Mode decides what happens when a fact or context cannot be read.
type Mode int

const (
	// FailFast aborts the parse with the first error.
	FailFast Mode = iota
	// Collect records the error in Document.Errors and carries on.
	Collect
)

func (m Mode) String() string {
	if m == Collect {
		return "collect"
	}
	return "failfast"
}

// ParseMode reads "collect" or "failfast".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "collect":
		return Collect, nil
	case "failfast", "fail-fast", "":
		return FailFast, nil
	}
	return FailFast, fmt.Errorf("unknown mode %q", s)
}

// FileType is the kind of document that was parsed.
type FileType string

const (
	FileTypeIXBRL FileType = "ixbrl"
	FileTypeXBRL  FileType = "xbrl"
)

// Document holds everything extracted from one filing.
type Document struct {
	FileType FileType
	// Schema is the href of the first link:schemaRef, if any.
	Schema string
	// Namespaces maps root attributes such as "xmlns:us-gaap" to their
	// space separated values.
	Namespaces map[string][]string
	Contexts   map[string]*Context
	Units      map[string]*Unit
	NonNumeric []*NonNumericFact
	Numeric    []*NumericFact
	// Errors is only populated in Collect mode.
	Errors []ErrorRecord
	Tree   *doctree.Document
}

// Option configures a parse.
type Option func(*parser)

// WithRegistry selects the format registry. The default is
// transform.Default().
func WithRegistry(r *transform.Registry) Option {
	return func(p *parser) { p.registry = r }
}

// WithMode selects FailFast (the default) or Collect.
func WithMode(m Mode) Option {
	return func(p *parser) { p.mode = m }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(p *parser) { p.log = l }
}

type parser struct {
	registry *transform.Registry
	mode     Mode
	log      *zap.Logger
	doc      *Document
}

// Parse reads an iXBRL or XBRL document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	tree, err := doctree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return ParseTree(tree, opts...)
}

// Open parses the file at path.
func Open(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

// ParseTree extracts facts from an already parsed tree.
func ParseTree(tree *doctree.Document, opts ...Option) (*Document, error) {
	p := &parser{
		doc: &Document{
			Namespaces: make(map[string][]string),
			Contexts:   make(map[string]*Context),
			Units:      make(map[string]*Unit),
			Tree:       tree,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = transform.Default()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}

	root, fileType, err := detect(tree.Root)
	if err != nil {
		return nil, err
	}
	p.doc.FileType = fileType

	var s strategy = inline{}
	if fileType == FileTypeXBRL {
		s = instance{}
	}
	p.readSchema(root)
	if err := p.readContexts(s.contexts(root)); err != nil {
		return nil, err
	}
	p.readUnits(s.units(root))
	if err := s.collect(p, root); err != nil {
		return nil, err
	}

	p.log.Debug("parsed document",
		zap.String("filetype", string(fileType)),
		zap.Int("contexts", len(p.doc.Contexts)),
		zap.Int("units", len(p.doc.Units)),
		zap.Int("nonnumeric", len(p.doc.NonNumeric)),
		zap.Int("numeric", len(p.doc.Numeric)),
		zap.Int("errors", len(p.doc.Errors)))
	return p.doc, nil
}

// detect finds the element that identifies the document type: an html
// root for inline documents, an xbrl root for instances.
func detect(root doctree.Node) (doctree.Node, FileType, error) {
	switch strings.ToLower(doctree.LocalName(root.Name())) {
	case "html":
		return root, FileTypeIXBRL, nil
	case "xbrl":
		return root, FileTypeXBRL, nil
	}
	if n := root.FindFirst("html"); n != nil {
		return n, FileTypeIXBRL, nil
	}
	if n := root.FindFirst("xbrli:xbrl", "xbrl"); n != nil {
		return n, FileTypeXBRL, nil
	}
	return nil, "", &xbrlerr.StructuralError{Element: root.Name(), Message: "filetype not recognised"}
}

// fail either returns err, in FailFast mode, or records it.
func (p *parser) fail(el doctree.Node, contextID string, err error) error {
	if p.mode == FailFast {
		return err
	}
	p.doc.Errors = append(p.doc.Errors, ErrorRecord{Err: err, Element: el, ContextID: contextID})
	name := ""
	if el != nil {
		name = el.Name()
	}
	p.log.Debug("recorded error",
		zap.String("element", name),
		zap.String("context", contextID),
		zap.Error(err))
	return nil
}

func (p *parser) readSchema(root doctree.Node) {
	if ref := root.FindFirst("link:schemaRef", "schemaRef"); ref != nil {
		if href, ok := ref.Attr("xlink:href"); ok {
			p.doc.Schema = strings.TrimSpace(href)
		}
	}
	for _, a := range root.Attrs() {
		if strings.HasPrefix(strings.ToLower(a.Name), "xmlns") || strings.Contains(a.Name, ":") {
			p.doc.Namespaces[a.Name] = strings.Split(a.Value, " ")
		}
	}
}

func (p *parser) readContexts(elements []doctree.Node) error {
	for _, el := range elements {
		c, err := buildContext(el)
		if err != nil {
			id, _ := el.Attr("id")
			if err := p.fail(el, id, err); err != nil {
				return err
			}
			continue
		}
		if c != nil {
			p.doc.Contexts[c.ID] = c
		}
	}
	return nil
}

func (p *parser) readUnits(elements []doctree.Node) {
	for _, el := range elements {
		if u := buildUnit(el); u != nil {
			p.doc.Units[u.ID] = u
		}
	}
}

func (p *parser) contextRef(id string) ContextRef {
	if c, ok := p.doc.Contexts[id]; ok {
		return resolvedRef(c)
	}
	return danglingRef(id)
}

package htmlprint

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is a content unit: any value that can write its markup.
//
// Render must not modify the receiver. It is called once per print
// operation, so the markup always reflects the value at call time.
type HTML interface {
	Render(w io.Writer) error
}

// Document is a document unit: a full page made of a head and a body.
//
// A Document that also implements Lang() string gets a lang attribute
// on its root element. One implementing HTMLAttrs() []Attr or
// BodyAttrs() []Attr gets those attributes on the html and body elements.
type Document interface {
	Head() HTML
	Body() HTML
}

// Raw is markup written verbatim, without escaping.
type Raw string

// Render implements [HTML].
func (r Raw) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(r))
	return err
}

// Text is character data. It is escaped when rendered.
type Text string

// Render implements [HTML].
func (t Text) Render(w io.Writer) error {
	_, err := io.WriteString(w, html.EscapeString(string(t)))
	return err
}

// Group renders its children one after another.
type Group []HTML

// Render implements [HTML].
func (g Group) Render(w io.Writer) error {
	for _, child := range g {
		if child == nil {
			continue
		}
		if err := child.Render(w); err != nil {
			return err
		}
	}
	return nil
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Elem is an element with attributes and children.
type Elem struct {
	Tag      string
	Attrs    []Attr
	Children []HTML
}

// Element returns an element with the given tag and children.
//
//	htmlprint.Element("h1", nil, htmlprint.Text("Hello"))
func Element(tag string, attrs []Attr, children ...HTML) *Elem {
	return &Elem{Tag: tag, Attrs: attrs, Children: children}
}

// Render implements [HTML]. Void elements such as br or img never
// render children or a closing tag.
func (e *Elem) Render(w io.Writer) error {
	if e == nil {
		return nil
	}
	if e.Tag == "" || strings.ContainsAny(e.Tag, " \t\n\f\r/>\"'=<") {
		return fmt.Errorf("htmlprint: invalid tag name %q", e.Tag)
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Tag)
	writeAttrs(&b, e.Attrs)
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if isVoid(e.Tag) {
		return nil
	}
	if err := Group(e.Children).Render(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+e.Tag+">")
	return err
}

func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
}

func isVoid(tag string) bool {
	switch atom.Lookup([]byte(strings.ToLower(tag))) {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Source,
		atom.Track, atom.Wbr:
		return true
	}
	return false
}

type nodeHTML struct {
	n *html.Node
}

// FromNode adapts a parsed [html.Node] tree into a content unit.
func FromNode(n *html.Node) HTML {
	return nodeHTML{n: n}
}

func (n nodeHTML) Render(w io.Writer) error {
	if n.n == nil {
		return nil
	}
	return html.Render(w, n.n)
}

// Page is a [Document] assembled from a head and a body.
type Page struct {
	Language string
	Header   HTML
	Content  HTML
}

// Head implements [Document].
func (p *Page) Head() HTML { return p.Header }

// Body implements [Document].
func (p *Page) Body() HTML { return p.Content }

// Lang returns the document language, if any.
func (p *Page) Lang() string { return p.Language }

// ParseDocument parses a full HTML document from r.
//
// Missing html, head or body elements are synthesized by the parser, so
// any input that is valid UTF-8 yields a Document.
func ParseDocument(r io.Reader) (Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmlprint: parsing document: %w", err)
	}
	doc := &parsedDocument{
		head: findElement(root, atom.Head),
		body: findElement(root, atom.Body),
	}
	if h := findElement(root, atom.Html); h != nil {
		doc.htmlAttrs = convertAttrs(h.Attr)
	}
	if doc.body != nil {
		doc.bodyAttrs = convertAttrs(doc.body.Attr)
	}
	return doc, nil
}

func convertAttrs(attrs []html.Attribute) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		out = append(out, Attr{Name: name, Value: a.Val})
	}
	return out
}

type parsedDocument struct {
	htmlAttrs []Attr
	bodyAttrs []Attr
	head      *html.Node
	body      *html.Node
}

func (d *parsedDocument) Head() HTML { return childrenHTML{d.head} }
func (d *parsedDocument) Body() HTML { return childrenHTML{d.body} }

// HTMLAttrs returns the attributes of the html element, lang included.
func (d *parsedDocument) HTMLAttrs() []Attr { return d.htmlAttrs }

// BodyAttrs returns the attributes of the body element.
func (d *parsedDocument) BodyAttrs() []Attr { return d.bodyAttrs }

// childrenHTML renders the children of a node but not the node itself.
type childrenHTML struct {
	parent *html.Node
}

func (c childrenHTML) Render(w io.Writer) error {
	if c.parent == nil {
		return nil
	}
	for n := c.parent.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(w, n); err != nil {
			return err
		}
	}
	return nil
}

// findElement returns the first element with the given atom in
// depth-first order.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// renderDocument writes d as a complete HTML document.
func renderDocument(w io.Writer, d Document) error {
	var rootAttrs, bodyAttrs []Attr
	if a, ok := d.(interface{ HTMLAttrs() []Attr }); ok {
		rootAttrs = a.HTMLAttrs()
	}
	if l, ok := d.(interface{ Lang() string }); ok && l.Lang() != "" && !hasAttr(rootAttrs, "lang") {
		rootAttrs = append([]Attr{{Name: "lang", Value: l.Lang()}}, rootAttrs...)
	}
	if a, ok := d.(interface{ BodyAttrs() []Attr }); ok {
		bodyAttrs = a.BodyAttrs()
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html")
	writeAttrs(&b, rootAttrs)
	b.WriteString("><head>")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if head := d.Head(); head != nil {
		if err := head.Render(w); err != nil {
			return err
		}
	}
	b.Reset()
	b.WriteString("</head><body")
	writeAttrs(&b, bodyAttrs)
	b.WriteByte('>')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if body := d.Body(); body != nil {
		if err := body.Render(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</body></html>")
	return err
}

func hasAttr(attrs []Attr, name string) bool {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

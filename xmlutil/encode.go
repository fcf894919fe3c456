package xmlutil

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
)

// Encode writes the XML declaration followed by the tree rooted at n to w.
// Nested elements are indented by indent, and elements without content
// are written as empty-element tags. Whitespace-only text beside child
// elements, such as the formatting of a previously parsed document, is
// dropped; whitespace-only text forming an element's whole content is
// kept.
//
// Element and attribute names are written using their prefixes as found
// in the tree, so the namespace declarations present on the tree are
// reproduced exactly.
func Encode(w io.Writer, n *xmlquery.Node, indent string) error {
	p := &printer{indent: indent}
	p.WriteString(xml.Header)
	p.node(n)
	p.WriteByte('\n')
	_, err := p.WriteTo(w)
	return errors.WithStack(err)
}

// EncodeString returns the encoding of the tree rooted at n as a string.
func EncodeString(n *xmlquery.Node, indent string) (string, error) {
	var b strings.Builder
	if err := Encode(&b, n, indent); err != nil {
		return "", err
	}
	return b.String(), nil
}

type printer struct {
	bytes.Buffer
	indent string
	depth  int
}

// newline starts a new line at the current depth. Without an indent the
// document is written on one line.
func (p *printer) newline() {
	if p.indent == "" {
		return
	}
	p.WriteByte('\n')
	p.WriteString(strings.Repeat(p.indent, p.depth))
}

func (p *printer) escape(s string) {
	// writes to a bytes.Buffer never fail
	_ = xml.EscapeText(p, []byte(s))
}

func (p *printer) node(n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for i, c := range content(n) {
			if i > 0 {
				p.WriteByte('\n')
			}
			p.node(c)
		}

	case xmlquery.ElementNode:
		if p.depth > 0 && hasElements(n.Parent) {
			p.newline()
		}
		name := QualifiedName(n.Prefix, n.Data)
		p.WriteByte('<')
		p.WriteString(name)
		for _, a := range n.Attr {
			p.WriteByte(' ')
			p.WriteString(QualifiedName(a.Name.Space, a.Name.Local))
			p.WriteString(`="`)
			p.escape(a.Value)
			p.WriteByte('"')
		}
		children := content(n)
		if len(children) == 0 {
			p.WriteString("/>")
			return
		}
		p.WriteByte('>')
		nested := hasElements(n)
		p.depth++
		for _, c := range children {
			p.node(c)
		}
		p.depth--
		if nested {
			p.newline()
		}
		p.WriteString("</" + name + ">")

	case xmlquery.TextNode, xmlquery.CharDataNode:
		p.escape(n.Data)

	case xmlquery.CommentNode:
		if p.depth > 0 && hasElements(n.Parent) {
			p.newline()
		}
		p.WriteString("<!--" + n.Data + "-->")
	}
}

// content returns the children of n which are written, leaving out the
// XML declaration, empty text and formatting whitespace between elements.
func content(n *xmlquery.Node) []*xmlquery.Node {
	nested := hasElements(n)
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.DeclarationNode:
			continue
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if c.Data == "" || (nested && strings.TrimSpace(c.Data) == "") {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func hasElements(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

package xmlutil

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Parse reads a complete XML document from r into an xmlquery tree.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return doc, nil
}

// NewDocument returns an empty document node.
func NewDocument() *xmlquery.Node { return &xmlquery.Node{Type: xmlquery.DocumentNode} }

// NewElement returns a detached element named prefix:local in the namespace nsURI.
func NewElement(prefix, local, nsURI string) *xmlquery.Node {
	return &xmlquery.Node{
		Type:         xmlquery.ElementNode,
		Data:         local,
		Prefix:       prefix,
		NamespaceURI: nsURI,
	}
}

// AppendElement creates a new element and adds it as the last child of parent.
func AppendElement(parent *xmlquery.Node, prefix, local, nsURI string) *xmlquery.Node {
	e := NewElement(prefix, local, nsURI)
	xmlquery.AddChild(parent, e)
	return e
}

// AppendText adds a text node holding text as the last child of parent.
func AppendText(parent *xmlquery.Node, text string) {
	xmlquery.AddChild(parent, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
}

// SetAttr sets the attribute prefix:local in namespace nsURI on n,
// replacing any existing attribute of the same namespace and local name.
func SetAttr(n *xmlquery.Node, prefix, local, nsURI, value string) {
	attr := xmlquery.Attr{
		Name:         xml.Name{Space: prefix, Local: local},
		Value:        value,
		NamespaceURI: nsURI,
	}
	for i := range n.Attr {
		if n.Attr[i].NamespaceURI == nsURI && n.Attr[i].Name.Local == local {
			n.Attr[i] = attr
			return
		}
	}
	n.Attr = append(n.Attr, attr)
}

// Attr returns the value of the attribute local in namespace nsURI on n,
// and whether the attribute was present.
func Attr(n *xmlquery.Node, nsURI, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.NamespaceURI == nsURI && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// ChildSelector returns a compiled XPath selector matching the child
// elements of the context node with local name local in namespace nsURI.
func ChildSelector(nsURI, local string) *xpath.Expr {
	return xpath.MustCompile(fmt.Sprintf(`*[local-name()='%s' and namespace-uri()='%s']`, local, nsURI))
}

// RootSelector returns a compiled XPath selector matching the document
// element local in namespace nsURI.
func RootSelector(nsURI, local string) *xpath.Expr {
	return xpath.MustCompile(fmt.Sprintf(`/*[local-name()='%s' and namespace-uri()='%s']`, local, nsURI))
}

// Children returns the nodes selected by sel relative to n, in document order.
func Children(n *xmlquery.Node, sel *xpath.Expr) []*xmlquery.Node {
	return xmlquery.QuerySelectorAll(n, sel)
}

// QualifiedName returns the prefix:local form of a name, or just local
// when prefix is empty.
func QualifiedName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

package xmlutil

import (
	"sort"

	"github.com/antchfx/xmlquery"
)

// PrefixMap is a namespace prefix to namespace URI map.
type PrefixMap map[string]string

// NodePrefixMap returns the namespace prefixes declared on the element n.
func NodePrefixMap(n *xmlquery.Node) PrefixMap {
	pmap := PrefixMap{}
	if n == nil {
		return pmap
	}
	for _, a := range n.Attr {
		if a.Name.Space == "xmlns" {
			pmap[a.Name.Local] = a.Value
		}
	}
	return pmap
}

// Prefixes returns the map's prefixes, sorted lexically.
func (m PrefixMap) Prefixes() []string {
	pfxes := make([]string, 0, len(m))
	for k := range m {
		pfxes = append(pfxes, k)
	}
	sort.Strings(pfxes)
	return pfxes
}

// Declare adds an xmlns:<prefix> declaration to the element n for each
// entry of the map, in prefix order.
func (m PrefixMap) Declare(n *xmlquery.Node) {
	for _, pfx := range m.Prefixes() {
		SetAttr(n, "xmlns", pfx, "xmlns", m[pfx])
	}
}

// Covers returns true if every entry of want is declared in m with the
// same namespace URI.
func (m PrefixMap) Covers(want PrefixMap) bool {
	for pfx, ns := range want {
		if m[pfx] != ns {
			return false
		}
	}
	return true
}

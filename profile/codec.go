package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/rtserr"
	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Mapping is the plain nested mapping form of a profile node, as decoded
// from and encoded to YAML.
type Mapping = map[string]interface{}

// Node is the codec contract implemented by every profile entity.
//
// ParseXML and ParseYAML replace the receiver's state with the contents of
// the document node; on error the receiver is left unchanged. SaveXML writes
// the entity's attributes and children onto an element created by the
// caller, and ToDict returns the YAML mapping form.
type Node interface {
	ParseXML(n *xmlquery.Node) error
	ParseYAML(m Mapping) error
	SaveXML(e *xmlquery.Node)
	ToDict() Mapping
}

// dateLayout is the timestamp layout written to documents.
const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// dateLayouts are accepted when reading timestamps.
var dateLayouts = []string{
	dateLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// XML attribute access

func rtsAttr(n *xmlquery.Node, local string) (string, bool) {
	return xmlutil.Attr(n, NamespaceRTS, local)
}

func extAttr(n *xmlquery.Node, local string) (string, bool) {
	return xmlutil.Attr(n, NamespaceRTSExt, local)
}

func setRTS(e *xmlquery.Node, local, value string) {
	xmlutil.SetAttr(e, prefixRTS, local, NamespaceRTS, value)
}

func setExt(e *xmlquery.Node, local, value string) {
	xmlutil.SetAttr(e, prefixRTSExt, local, NamespaceRTSExt, value)
}

func appendRTS(e *xmlquery.Node, local string) *xmlquery.Node {
	return xmlutil.AppendElement(e, prefixRTS, local, NamespaceRTS)
}

func appendExt(e *xmlquery.Node, local string) *xmlquery.Node {
	return xmlutil.AppendElement(e, prefixRTSExt, local, NamespaceRTSExt)
}

// singleChild returns the only child of n selected by sel. More than one
// match is always an error; no match is an error when required is true,
// otherwise it returns nil.
func singleChild(n *xmlquery.Node, sel *xpath.Expr, element string, required bool) (*xmlquery.Node, error) {
	children := xmlutil.Children(n, sel)
	switch {
	case len(children) > 1:
		return nil, errors.WithStack(rtserr.InvalidDocumentStructure(element,
			rtserr.WithMessage(fmt.Sprintf("occurs %d times", len(children)))))
	case len(children) == 0 && required:
		return nil, errRequiredChild(element)
	case len(children) == 0:
		return nil, nil
	}
	return children[0], nil
}

func parseIntText(v, field string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.WithStack(rtserr.InvalidType(field, "string", validate.Ints.Names(),
			rtserr.WithMessage(strconv.Quote(v))))
	}
	return i, nil
}

func parseFloatText(v, field string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, errors.WithStack(rtserr.InvalidType(field, "string", validate.Numbers.Names(),
			rtserr.WithMessage(strconv.Quote(v))))
	}
	return f, nil
}

// intAttr returns the integer value of an attribute, or def when the
// attribute is absent or empty.
func intAttr(v string, ok bool, field string, def int) (int, error) {
	if !ok || v == "" {
		return def, nil
	}
	return parseIntText(v, field)
}

func floatAttr(v string, ok bool, field string, def float64) (float64, error) {
	if !ok || v == "" {
		return def, nil
	}
	return parseFloatText(v, field)
}

// boolAttr follows the xsd:boolean lexical space; anything else is false.
func boolAttr(v string, ok bool, def bool) bool {
	if !ok || v == "" {
		return def
	}
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "true", "1":
		return true
	}
	return false
}

func formatBool(b bool) string { return strconv.FormatBool(b) }

// formatFloat writes whole numbers with a trailing ".0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Timestamps

func parseDate(v, field string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.WithStack(rtserr.InvalidType(field, "string", []string{"dateTime"},
		rtserr.WithMessage(strconv.Quote(v))))
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

// YAML field access. Absent keys and null values are treated alike.

func yamlValue(m Mapping, key string) (interface{}, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func yamlString(m Mapping, key, field string, required bool) (string, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		if required {
			return "", errors.WithStack(rtserr.RequiredAttribute(field))
		}
		return "", nil
	}
	if err := validate.Attribute(v, field, validate.Strings, required); err != nil {
		return "", err
	}
	return v.(string), nil
}

func yamlInt(m Mapping, key, field string, def int) (int, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return def, nil
	}
	if err := validate.Attribute(v, field, validate.Ints, false); err != nil {
		return 0, err
	}
	return v.(int), nil
}

func yamlFloat(m Mapping, key, field string, def float64) (float64, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return def, nil
	}
	if err := validate.Attribute(v, field, validate.Numbers, false); err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case int:
		return float64(x), nil
	default:
		return x.(float64), nil
	}
}

func yamlBool(m Mapping, key, field string, def bool) (bool, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return def, nil
	}
	if err := validate.Attribute(v, field, validate.Bools, false); err != nil {
		return false, err
	}
	return v.(bool), nil
}

func yamlDate(m Mapping, key, field string) (time.Time, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return time.Time{}, nil
	}
	if err := validate.Attribute(v, field, validate.Dates, false); err != nil {
		return time.Time{}, err
	}
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	return parseDate(v.(string), field)
}

func yamlMapping(m Mapping, key, field string) (Mapping, bool, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return nil, false, nil
	}
	if err := validate.Attribute(v, field, validate.Mappings, false); err != nil {
		return nil, false, err
	}
	return v.(map[string]interface{}), true, nil
}

// yamlMappings returns the list under key, each entry of which must be a mapping.
func yamlMappings(m Mapping, key, field string) ([]Mapping, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return nil, nil
	}
	if err := validate.Attribute(v, field, validate.Lists, false); err != nil {
		return nil, err
	}
	var out []Mapping
	for _, item := range v.([]interface{}) {
		if err := validate.Attribute(item, field, validate.Mappings, false); err != nil {
			return nil, err
		}
		out = append(out, item.(map[string]interface{}))
	}
	return out, nil
}

func yamlStrings(m Mapping, key, field string) ([]string, error) {
	v, ok := yamlValue(m, key)
	if !ok {
		return nil, nil
	}
	if err := validate.Attribute(v, field, validate.Lists, false); err != nil {
		return nil, err
	}
	var out []string
	for _, item := range v.([]interface{}) {
		if err := validate.Attribute(item, field, validate.Strings, false); err != nil {
			return nil, err
		}
		out = append(out, item.(string))
	}
	return out, nil
}

// Extension properties

func parsePropertiesXML(n *xmlquery.Node) props.Bag {
	var b props.Bag
	for _, p := range xmlutil.Children(n, xpExtProperties) {
		name, _ := extAttr(p, "name")
		value, _ := extAttr(p, "value")
		b.Set(name, value)
	}
	return b
}

func savePropertiesXML(e *xmlquery.Node, b props.Bag) {
	b.Range(func(name, value string) bool {
		p := appendExt(e, "Properties")
		setExt(p, "name", name)
		if value != "" {
			setExt(p, "value", value)
		}
		return true
	})
}

func parsePropertiesYAML(m Mapping, field string) (props.Bag, error) {
	var b props.Bag
	entries, err := yamlMappings(m, YAMLExtPrefix+"properties", field)
	if err != nil {
		return b, err
	}
	for _, p := range entries {
		name, err := yamlString(p, "name", field+".name", true)
		if err != nil {
			return props.Bag{}, err
		}
		value, err := yamlString(p, "value", field+".value", false)
		if err != nil {
			return props.Bag{}, err
		}
		b.Set(name, value)
	}
	return b, nil
}

// propertiesToDict adds the properties of b to d, if there are any.
func propertiesToDict(d Mapping, b props.Bag) {
	if b.Len() == 0 {
		return
	}
	var list []interface{}
	b.Range(func(name, value string) bool {
		p := Mapping{"name": name}
		if value != "" {
			p["value"] = value
		}
		list = append(list, p)
		return true
	})
	d[YAMLExtPrefix+"properties"] = list
}

// Rendering

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	if s == "" {
		return ""
	}
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func propertiesString(b props.Bag) string {
	if b.Len() == 0 {
		return ""
	}
	var s strings.Builder
	s.WriteString("Extra properties:\n")
	b.Range(func(name, value string) bool {
		fmt.Fprintf(&s, "  %s: %s\n", name, value)
		return true
	})
	return s.String()
}

// Collections

func errRequiredChild(element string) error {
	return errors.WithStack(rtserr.InvalidDocumentStructure(element, rtserr.WithMessage("missing")))
}

// cloneSlice returns a copy of s, or nil when s is empty.
func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append([]T(nil), s...)
}

// parseEachXML parses each of nodes into a new T.
func parseEachXML[T any, PT interface {
	*T
	ParseXML(*xmlquery.Node) error
}](nodes []*xmlquery.Node) ([]T, error) {
	var out []T
	for _, n := range nodes {
		var v T
		if err := PT(&v).ParseXML(n); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseEachYAML parses each of entries into a new T.
func parseEachYAML[T any, PT interface {
	*T
	ParseYAML(Mapping) error
}](entries []Mapping) ([]T, error) {
	var out []T
	for _, m := range entries {
		var v T
		if err := PT(&v).ParseYAML(m); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// dictList returns the mapping form of each item, or nil when there are none.
func dictList[T interface{ ToDict() Mapping }](items []T) []interface{} {
	if len(items) == 0 {
		return nil
	}
	list := make([]interface{}, 0, len(items))
	for _, it := range items {
		list = append(list, it.ToDict())
	}
	return list
}

package profile

import (
	"strings"
	"testing"
	"time"

	"github.com/andaru/rtsprofile/rtserr"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestElement(local string) *xmlquery.Node {
	return xmlutil.NewElement(prefixRTS, local, NamespaceRTS)
}

// childrenOf returns the extension namespace children of e named local.
func childrenOf(e *xmlquery.Node, local string) []*xmlquery.Node {
	return xmlutil.Children(e, xmlutil.ChildSelector(NamespaceRTSExt, local))
}

// parseElement parses s and returns its document element.
func parseElement(t *testing.T, s string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlutil.Parse(strings.NewReader(s))
	require.NoError(t, err)
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	t.Fatalf("no element in %q", s)
	return nil
}

func TestFormatFloat(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1000, "1000.0"},
		{0.5, "0.5"},
		{-12.25, "-12.25"},
		{1e21, "1000000000000000000000.0"},
	} {
		assert.Equal(t, tc.want, formatFloat(tc.in))
	}
}

func TestParseDate(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: time.Time{}},
		{in: "2024-05-06T07:08:09Z", want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{in: "2024-05-06T07:08:09.123+01:00", want: time.Date(2024, 5, 6, 6, 8, 9, 123e6, time.UTC)},
		{in: "2024-05-06T07:08:09", want: time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{in: " 2024-05-06 ", want: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
		{in: "06/05/2024", wantErr: true},
	} {
		got, err := parseDate(tc.in, "f")
		if tc.wantErr {
			assert.True(t, rtserr.IsKind(err, rtserr.KindInvalidType), tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), "%s: got %v", tc.in, got)
	}
	assert.Equal(t, "0001-01-01T00:00:00Z", formatDate(time.Time{}))
}

func TestAttrValues(t *testing.T) {
	check := assert.New(t)
	check.True(boolAttr("true", true, false))
	check.True(boolAttr("1", true, false))
	check.True(boolAttr(" TRUE ", true, false))
	check.False(boolAttr("yes", true, true))
	check.True(boolAttr("", true, true))
	check.False(boolAttr("", false, false))

	i, err := intAttr("", false, "f", 7)
	check.NoError(err)
	check.Equal(7, i)
	i, err = intAttr(" 12 ", true, "f", 7)
	check.NoError(err)
	check.Equal(12, i)
	_, err = intAttr("1.5", true, "conditions.sequence", 0)
	e, ok := rtserr.As(err)
	require.True(t, ok)
	check.Equal(rtserr.KindInvalidType, e.Kind)
	check.Equal("conditions.sequence", e.Field)

	f, err := floatAttr("100", true, "f", 0)
	check.NoError(err)
	check.Equal(100.0, f)
	_, err = floatAttr("fast", true, "f", 0)
	check.True(rtserr.IsKind(err, rtserr.KindInvalidType))
}

func TestYAMLValues(t *testing.T) {
	check := assert.New(t)
	m := Mapping{
		"s":     "str",
		"empty": "",
		"i":     3,
		"f":     2.5,
		"b":     true,
		"null":  nil,
		"list":  []interface{}{Mapping{"a": 1}, "x"},
		"names": []interface{}{"a", "b"},
		"map":   Mapping{"k": "v"},
	}

	s, err := yamlString(m, "s", "f", true)
	check.NoError(err)
	check.Equal("str", s)
	_, err = yamlString(m, "empty", "f", true)
	check.True(rtserr.IsKind(err, rtserr.KindRequiredAttribute))
	_, err = yamlString(m, "null", "f", true)
	check.True(rtserr.IsKind(err, rtserr.KindRequiredAttribute))
	s, err = yamlString(m, "missing", "f", false)
	check.NoError(err)
	check.Empty(s)
	_, err = yamlString(m, "i", "f", false)
	check.True(rtserr.IsKind(err, rtserr.KindInvalidType))

	i, err := yamlInt(m, "i", "f", 0)
	check.NoError(err)
	check.Equal(3, i)
	_, err = yamlInt(m, "f", "f", 0)
	check.True(rtserr.IsKind(err, rtserr.KindInvalidType))

	f, err := yamlFloat(m, "i", "f", 0)
	check.NoError(err)
	check.Equal(3.0, f)
	f, err = yamlFloat(m, "missing", "f", 1.5)
	check.NoError(err)
	check.Equal(1.5, f)

	b, err := yamlBool(m, "b", "f", false)
	check.NoError(err)
	check.True(b)
	_, err = yamlBool(m, "s", "f", false)
	check.True(rtserr.IsKind(err, rtserr.KindInvalidType))

	_, err = yamlMappings(m, "list", "f")
	check.True(rtserr.IsKind(err, rtserr.KindInvalidType))
	_, err = yamlMappings(m, "map", "f")
	check.True(rtserr.IsKind(err, rtserr.KindInvalidType))
	names, err := yamlStrings(m, "names", "f")
	check.NoError(err)
	check.Equal([]string{"a", "b"}, names)

	mm, ok, err := yamlMapping(m, "map", "f")
	check.NoError(err)
	check.True(ok)
	check.Equal(Mapping{"k": "v"}, mm)
	_, ok, err = yamlMapping(m, "null", "f")
	check.NoError(err)
	check.False(ok)

	d, err := yamlDate(m, "missing", "f")
	check.NoError(err)
	check.True(d.IsZero())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d, err = yamlDate(Mapping{"d": now}, "d", "f")
	check.NoError(err)
	check.True(now.Equal(d))
}

func TestPropertiesYAML(t *testing.T) {
	check := assert.New(t)
	b, err := parsePropertiesYAML(Mapping{
		YAMLExtPrefix + "properties": []interface{}{
			Mapping{"name": "a", "value": "1"},
			Mapping{"name": "b"},
		},
	}, "x.ext.properties")
	require.NoError(t, err)
	check.Equal([]string{"a", "b"}, b.Names())
	v, ok := b.Get("b")
	check.True(ok)
	check.Empty(v)

	d := Mapping{}
	propertiesToDict(d, b)
	check.Equal([]interface{}{
		Mapping{"name": "a", "value": "1"},
		Mapping{"name": "b"},
	}, d[YAMLExtPrefix+"properties"])

	_, err = parsePropertiesYAML(Mapping{
		YAMLExtPrefix + "properties": []interface{}{Mapping{"value": "1"}},
	}, "x.ext.properties")
	e, ok := rtserr.As(err)
	require.True(t, ok)
	check.Equal(rtserr.KindRequiredAttribute, e.Kind)
	check.Equal("x.ext.properties.name", e.Field)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", indent("", 2))
	assert.Equal(t, "  a\n\n  b\n", indent("a\n\nb\n", 2))
	assert.Equal(t, "    a\n", indent("a", 4))
}

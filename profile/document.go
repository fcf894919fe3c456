package profile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andaru/rtsprofile/rtserr"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultIndent is the indent of saved XML documents.
const DefaultIndent = "    "

// Format is a profile document format.
type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the Format named s, "xml" or "yaml" ("yml" is
// also accepted).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xml":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, errors.Errorf("unknown profile format %q", s)
}

// FormatOf returns the Format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, errors.Errorf("%s: no file extension to infer profile format from", path)
	}
	return ParseFormat(ext)
}

type source struct {
	format Format
	r      io.Reader
}

// Option is a New option function, supplying the document source.
type Option func(*[]source)

// FromXML reads the profile from an XML document on r.
func FromXML(r io.Reader) Option {
	return func(s *[]source) { *s = append(*s, source{FormatXML, r}) }
}

// FromXMLString reads the profile from the XML document doc.
func FromXMLString(doc string) Option { return FromXML(strings.NewReader(doc)) }

// FromYAML reads the profile from a YAML document on r.
func FromYAML(r io.Reader) Option {
	return func(s *[]source) { *s = append(*s, source{FormatYAML, r}) }
}

// FromYAMLString reads the profile from the YAML document doc.
func FromYAMLString(doc string) Option { return FromYAML(strings.NewReader(doc)) }

// New returns a Profile read from the source given in opts, or an empty
// Profile when there is none. Supplying more than one source is an error.
func New(opts ...Option) (*Profile, error) {
	var sources []source
	for _, opt := range opts {
		opt(&sources)
	}
	p := &Profile{}
	switch len(sources) {
	case 0:
		return p, nil
	case 1:
		if err := p.Read(sources[0].r, sources[0].format); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, errors.WithStack(rtserr.MultipleSources(
		rtserr.WithMessage(fmt.Sprintf("%d document sources given", len(sources)))))
}

// Read replaces p with the profile document in format f on r.
func (p *Profile) Read(r io.Reader, f Format) error {
	switch f {
	case FormatXML:
		return p.ParseXMLReader(r)
	case FormatYAML:
		return p.ParseYAMLReader(r)
	}
	return errors.Errorf("unsupported profile format %v", f)
}

// Write writes p to w as a document in format f.
func (p *Profile) Write(w io.Writer, f Format) error {
	switch f {
	case FormatXML:
		return p.WriteXML(w)
	case FormatYAML:
		return p.WriteYAML(w)
	}
	return errors.Errorf("unsupported profile format %v", f)
}

// ParseXMLReader replaces p with the XML profile document on r.
func (p *Profile) ParseXMLReader(r io.Reader) error {
	doc, err := xmlutil.Parse(r)
	if err != nil {
		return err
	}
	return p.ParseXML(doc)
}

// ParseXMLString replaces p with the XML profile document s.
func (p *Profile) ParseXMLString(s string) error { return p.ParseXMLReader(strings.NewReader(s)) }

// ParseYAMLReader replaces p with the YAML profile document on r.
func (p *Profile) ParseYAMLReader(r io.Reader) error {
	var m Mapping
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return errors.WithStack(err)
	}
	return p.ParseYAML(m)
}

// ParseYAMLString replaces p with the YAML profile document s.
func (p *Profile) ParseYAMLString(s string) error { return p.ParseYAMLReader(strings.NewReader(s)) }

// XMLDocument returns a new XML document holding p.
func (p *Profile) XMLDocument() *xmlquery.Node {
	doc := xmlutil.NewDocument()
	p.SaveXML(xmlutil.AppendElement(doc, prefixRTS, "RtsProfile", NamespaceRTS))
	return doc
}

// WriteXML writes p to w as an XML document indented by DefaultIndent.
func (p *Profile) WriteXML(w io.Writer) error { return p.WriteXMLIndent(w, DefaultIndent) }

// WriteXMLIndent writes p to w as an XML document indented by indent.
func (p *Profile) WriteXMLIndent(w io.Writer, indent string) error {
	return xmlutil.Encode(w, p.XMLDocument(), indent)
}

// SaveXMLString returns p as an XML document.
func (p *Profile) SaveXMLString() (string, error) {
	return xmlutil.EncodeString(p.XMLDocument(), DefaultIndent)
}

// YAMLDocument returns the YAML document mapping holding p.
func (p *Profile) YAMLDocument() Mapping { return Mapping{"rtsProfile": p.ToDict()} }

// WriteYAML writes p to w as a YAML document.
func (p *Profile) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p.YAMLDocument()); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(enc.Close())
}

// SaveYAMLString returns p as a YAML document.
func (p *Profile) SaveYAMLString() (string, error) {
	var b strings.Builder
	if err := p.WriteYAML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

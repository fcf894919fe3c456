package profile

import (
	"fmt"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/validate"
	"github.com/antchfx/xmlquery"
)

// port holds the fields shared by data and service ports. The kind
// arguments of its methods name the port type in error fields, e.g.
// "data_port".
type port struct {
	name       string
	comment    string
	visible    bool
	properties props.Bag
}

func newPort(name string) port { return port{name: name, visible: true} }

func (p port) Name() string          { return p.name }
func (p port) Comment() string       { return p.comment }
func (p port) Visible() bool         { return p.visible }
func (p port) Properties() props.Bag { return p.properties.Clone() }

func (p *port) setName(name, kind string) error {
	if err := validate.Attribute(name, kind+".name", validate.Strings, true); err != nil {
		return err
	}
	p.name = name
	return nil
}

func (p *port) setComment(comment, kind string) error {
	if err := validate.Attribute(comment, kind+".ext.comment", validate.Strings, false); err != nil {
		return err
	}
	p.comment = comment
	return nil
}

func (p *port) parseXML(n *xmlquery.Node, kind string) error {
	fresh := newPort("")
	name, _ := rtsAttr(n, "name")
	if err := fresh.setName(name, kind); err != nil {
		return err
	}
	fresh.comment, _ = extAttr(n, "comment")
	v, ok := extAttr(n, "visible")
	fresh.visible = boolAttr(v, ok, true)
	fresh.properties = parsePropertiesXML(n)
	*p = fresh
	return nil
}

func (p *port) parseYAML(m Mapping, kind string) (err error) {
	fresh := newPort("")
	if fresh.name, err = yamlString(m, "name", kind+".name", true); err != nil {
		return err
	}
	if fresh.comment, err = yamlString(m, YAMLExtPrefix+"comment", kind+".ext.comment", false); err != nil {
		return err
	}
	if fresh.visible, err = yamlBool(m, YAMLExtPrefix+"visible", kind+".ext.visible", true); err != nil {
		return err
	}
	if fresh.properties, err = parsePropertiesYAML(m, kind+".ext.properties"); err != nil {
		return err
	}
	*p = fresh
	return nil
}

func (p port) saveXML(e *xmlquery.Node) {
	setRTS(e, "name", p.name)
	if p.comment != "" {
		setExt(e, "comment", p.comment)
	}
	setExt(e, "visible", formatBool(p.visible))
	savePropertiesXML(e, p.properties)
}

func (p port) toDict() Mapping {
	d := Mapping{
		"name":                    p.name,
		YAMLExtPrefix + "visible": p.visible,
	}
	if p.comment != "" {
		d[YAMLExtPrefix+"comment"] = p.comment
	}
	propertiesToDict(d, p.properties)
	return d
}

func (p port) string(heading string) string {
	s := fmt.Sprintf("%s: %s\n", heading, p.name)
	if p.comment != "" {
		s += fmt.Sprintf("  Comment: %s\n", p.comment)
	}
	s += fmt.Sprintf("  Visible: %t\n", p.visible)
	if ps := propertiesString(p.properties); ps != "" {
		s += indent(ps, 2)
	}
	return s
}

// DataPort is a data port of a component.
type DataPort struct{ port }

// NewDataPort returns a visible data port named name.
func NewDataPort(name string) DataPort { return DataPort{newPort(name)} }

func (p *DataPort) SetName(name string) error       { return p.setName(name, "data_port") }
func (p *DataPort) SetComment(comment string) error { return p.setComment(comment, "data_port") }
func (p *DataPort) SetVisible(visible bool)         { p.visible = visible }
func (p *DataPort) SetProperties(b props.Bag)       { p.properties = b.Clone() }

func (p *DataPort) ParseXML(n *xmlquery.Node) error { return p.parseXML(n, "data_port") }
func (p *DataPort) ParseYAML(m Mapping) error       { return p.parseYAML(m, "data_port") }
func (p DataPort) SaveXML(e *xmlquery.Node)         { p.saveXML(e) }
func (p DataPort) ToDict() Mapping                  { return p.toDict() }
func (p DataPort) String() string                   { return p.string("Data port") }

// ServicePort is a service port of a component.
type ServicePort struct{ port }

// NewServicePort returns a visible service port named name.
func NewServicePort(name string) ServicePort { return ServicePort{newPort(name)} }

func (p *ServicePort) SetName(name string) error       { return p.setName(name, "service_port") }
func (p *ServicePort) SetComment(comment string) error { return p.setComment(comment, "service_port") }
func (p *ServicePort) SetVisible(visible bool)         { p.visible = visible }
func (p *ServicePort) SetProperties(b props.Bag)       { p.properties = b.Clone() }

func (p *ServicePort) ParseXML(n *xmlquery.Node) error { return p.parseXML(n, "service_port") }
func (p *ServicePort) ParseYAML(m Mapping) error       { return p.parseYAML(m, "service_port") }
func (p ServicePort) SaveXML(e *xmlquery.Node)         { p.saveXML(e) }
func (p ServicePort) ToDict() Mapping                  { return p.toDict() }
func (p ServicePort) String() string                   { return p.string("Service port") }

package profile

import (
	"fmt"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/validate"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// connector holds the fields shared by data and service port connectors.
type connector struct {
	connectorID string
	name        string
	source      TargetPort
	target      TargetPort
	comment     string
	visible     bool
	properties  props.Bag
}

func newConnector(id, name string, source, target TargetPort) connector {
	return connector{connectorID: id, name: name, source: source, target: target, visible: true}
}

func (c connector) ConnectorID() string   { return c.connectorID }
func (c connector) Name() string          { return c.name }
func (c connector) Comment() string       { return c.comment }
func (c connector) Visible() bool         { return c.visible }
func (c connector) Properties() props.Bag { return c.properties.Clone() }

// Endpoints returns the source and target ports of the connection.
func (c connector) Endpoints() (source, target TargetPort) { return c.source, c.target }

func (c *connector) setConnectorID(id, kind string) error {
	if err := validate.Attribute(id, kind+".connectorId", validate.Strings, true); err != nil {
		return err
	}
	c.connectorID = id
	return nil
}

func (c *connector) setName(name, kind string) error {
	if err := validate.Attribute(name, kind+".name", validate.Strings, true); err != nil {
		return err
	}
	c.name = name
	return nil
}

// parseXML reads the fields common to both connector kinds; srcSel and
// dstSel select the endpoint elements named src and dst.
func (c *connector) parseXML(n *xmlquery.Node, kind string, srcSel, dstSel *xpath.Expr, src, dst string) error {
	id, _ := rtsAttr(n, "connectorId")
	if err := c.setConnectorID(id, kind); err != nil {
		return err
	}
	name, _ := rtsAttr(n, "name")
	if err := c.setName(name, kind); err != nil {
		return err
	}
	sn, err := singleChild(n, srcSel, src, true)
	if err != nil {
		return err
	}
	if err := c.source.ParseXML(sn); err != nil {
		return err
	}
	tn, err := singleChild(n, dstSel, dst, true)
	if err != nil {
		return err
	}
	if err := c.target.ParseXML(tn); err != nil {
		return err
	}
	c.comment, _ = extAttr(n, "comment")
	v, ok := extAttr(n, "visible")
	c.visible = boolAttr(v, ok, true)
	c.properties = parsePropertiesXML(n)
	return nil
}

func (c *connector) parseYAML(m Mapping, kind, src, dst string) (err error) {
	if c.connectorID, err = yamlString(m, "connectorId", kind+".connectorId", true); err != nil {
		return err
	}
	if c.name, err = yamlString(m, "name", kind+".name", true); err != nil {
		return err
	}
	for _, ep := range []struct {
		key string
		dst *TargetPort
	}{
		{src, &c.source},
		{dst, &c.target},
	} {
		em, ok, err := yamlMapping(m, lowerFirst(ep.key), kind+"."+lowerFirst(ep.key))
		if err != nil {
			return err
		}
		if !ok {
			return errRequiredChild(ep.key)
		}
		if err := ep.dst.ParseYAML(em); err != nil {
			return err
		}
	}
	if c.comment, err = yamlString(m, YAMLExtPrefix+"comment", kind+".ext.comment", false); err != nil {
		return err
	}
	if c.visible, err = yamlBool(m, YAMLExtPrefix+"visible", kind+".ext.visible", true); err != nil {
		return err
	}
	c.properties, err = parsePropertiesYAML(m, kind+".ext.properties")
	return err
}

func (c connector) saveEndpoints(e *xmlquery.Node, src, dst string) {
	c.source.SaveXML(appendRTS(e, src))
	c.target.SaveXML(appendRTS(e, dst))
}

func (c connector) saveExt(e *xmlquery.Node) {
	if c.comment != "" {
		setExt(e, "comment", c.comment)
	}
	setExt(e, "visible", formatBool(c.visible))
	savePropertiesXML(e, c.properties)
}

func (c connector) dict(src, dst string) Mapping {
	return Mapping{
		"connectorId":             c.connectorID,
		"name":                    c.name,
		lowerFirst(src):           c.source.ToDict(),
		lowerFirst(dst):           c.target.ToDict(),
		YAMLExtPrefix + "visible": c.visible,
	}
}

func (c connector) dictExt(d Mapping) {
	if c.comment != "" {
		d[YAMLExtPrefix+"comment"] = c.comment
	}
	propertiesToDict(d, c.properties)
}

func (c connector) string(heading string) string {
	s := fmt.Sprintf("%s: %s\n", heading, c.connectorID)
	s += fmt.Sprintf("  Name: %s\n", c.name)
	s += "  Source: " + c.source.String()
	s += "  Target: " + c.target.String()
	if c.comment != "" {
		s += fmt.Sprintf("  Comment: %s\n", c.comment)
	}
	s += fmt.Sprintf("  Visible: %t\n", c.visible)
	if p := propertiesString(c.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// DataPortConnector is a connection between two data ports.
//
// Interface, dataflow and subscription types are free-form, e.g.
// "corba_cdr", "push" and "flush".
type DataPortConnector struct {
	connector
	dataType         string
	interfaceType    string
	dataflowType     string
	subscriptionType string
	pushInterval     float64
}

func NewDataPortConnector(id, name string, source, target TargetPort) DataPortConnector {
	return DataPortConnector{connector: newConnector(id, name, source, target)}
}

func (c DataPortConnector) DataType() string         { return c.dataType }
func (c DataPortConnector) InterfaceType() string    { return c.interfaceType }
func (c DataPortConnector) DataflowType() string     { return c.dataflowType }
func (c DataPortConnector) SubscriptionType() string { return c.subscriptionType }
func (c DataPortConnector) PushInterval() float64    { return c.pushInterval }

func (c *DataPortConnector) SetConnectorID(id string) error { return c.setConnectorID(id, "data_port_connector") }
func (c *DataPortConnector) SetName(name string) error      { return c.setName(name, "data_port_connector") }

func (c *DataPortConnector) SetDataType(t string) error {
	return c.setAttr(&c.dataType, t, "dataType", true)
}

func (c *DataPortConnector) SetInterfaceType(t string) error {
	return c.setAttr(&c.interfaceType, t, "interfaceType", true)
}

func (c *DataPortConnector) SetDataflowType(t string) error {
	return c.setAttr(&c.dataflowType, t, "dataflowType", true)
}

func (c *DataPortConnector) SetSubscriptionType(t string) error {
	return c.setAttr(&c.subscriptionType, t, "subscriptionType", false)
}

func (c *DataPortConnector) SetPushInterval(i float64) { c.pushInterval = i }

func (c *DataPortConnector) SetEndpoints(source, target TargetPort) {
	c.source, c.target = source, target
}

func (c *DataPortConnector) SetComment(comment string) error {
	return c.setAttr(&c.comment, comment, "ext.comment", false)
}

func (c *DataPortConnector) SetVisible(visible bool)   { c.visible = visible }
func (c *DataPortConnector) SetProperties(b props.Bag) { c.properties = b.Clone() }

func (c *DataPortConnector) setAttr(dst *string, v, field string, required bool) error {
	if err := validate.Attribute(v, "data_port_connector."+field, validate.Strings, required); err != nil {
		return err
	}
	*dst = v
	return nil
}

func (c *DataPortConnector) ParseXML(n *xmlquery.Node) (err error) {
	var fresh DataPortConnector
	if err = fresh.connector.parseXML(n, "data_port_connector",
		xpSourceDataPort, xpTargetDataPort, "SourceDataPort", "TargetDataPort"); err != nil {
		return err
	}
	for _, f := range []struct {
		name     string
		dst      *string
		required bool
	}{
		{"dataType", &fresh.dataType, true},
		{"interfaceType", &fresh.interfaceType, true},
		{"dataflowType", &fresh.dataflowType, true},
		{"subscriptionType", &fresh.subscriptionType, false},
	} {
		v, _ := rtsAttr(n, f.name)
		if err = fresh.setAttr(f.dst, v, f.name, f.required); err != nil {
			return err
		}
	}
	v, ok := rtsAttr(n, "pushInterval")
	if fresh.pushInterval, err = floatAttr(v, ok, "data_port_connector.pushInterval", 0); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c *DataPortConnector) ParseYAML(m Mapping) (err error) {
	var fresh DataPortConnector
	if err = fresh.connector.parseYAML(m, "data_port_connector", "SourceDataPort", "TargetDataPort"); err != nil {
		return err
	}
	for _, f := range []struct {
		name     string
		dst      *string
		required bool
	}{
		{"dataType", &fresh.dataType, true},
		{"interfaceType", &fresh.interfaceType, true},
		{"dataflowType", &fresh.dataflowType, true},
		{"subscriptionType", &fresh.subscriptionType, false},
	} {
		if *f.dst, err = yamlString(m, f.name, "data_port_connector."+f.name, f.required); err != nil {
			return err
		}
	}
	if fresh.pushInterval, err = yamlFloat(m, "pushInterval", "data_port_connector.pushInterval", 0); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c DataPortConnector) SaveXML(e *xmlquery.Node) {
	setRTS(e, "connectorId", c.connectorID)
	setRTS(e, "name", c.name)
	setRTS(e, "dataType", c.dataType)
	setRTS(e, "interfaceType", c.interfaceType)
	setRTS(e, "dataflowType", c.dataflowType)
	if c.subscriptionType != "" {
		setRTS(e, "subscriptionType", c.subscriptionType)
	}
	if c.pushInterval != 0 {
		setRTS(e, "pushInterval", formatFloat(c.pushInterval))
	}
	c.saveEndpoints(e, "SourceDataPort", "TargetDataPort")
	c.saveExt(e)
}

func (c DataPortConnector) ToDict() Mapping {
	d := c.dict("SourceDataPort", "TargetDataPort")
	d["dataType"] = c.dataType
	d["interfaceType"] = c.interfaceType
	d["dataflowType"] = c.dataflowType
	if c.subscriptionType != "" {
		d["subscriptionType"] = c.subscriptionType
	}
	if c.pushInterval != 0 {
		d["pushInterval"] = c.pushInterval
	}
	c.dictExt(d)
	return d
}

func (c DataPortConnector) String() string {
	s := c.string("Data port connector")
	s += fmt.Sprintf("  Data type: %s\n", c.dataType)
	s += fmt.Sprintf("  Interface type: %s\n", c.interfaceType)
	s += fmt.Sprintf("  Dataflow type: %s\n", c.dataflowType)
	if c.subscriptionType != "" {
		s += fmt.Sprintf("  Subscription type: %s\n", c.subscriptionType)
	}
	if c.pushInterval != 0 {
		s += fmt.Sprintf("  Push interval: %s\n", formatFloat(c.pushInterval))
	}
	return s
}

// ServicePortConnector is a connection between two service ports.
type ServicePortConnector struct {
	connector
	transMethod string
}

func NewServicePortConnector(id, name string, source, target TargetPort) ServicePortConnector {
	return ServicePortConnector{connector: newConnector(id, name, source, target)}
}

func (c ServicePortConnector) TransMethod() string { return c.transMethod }

func (c *ServicePortConnector) SetConnectorID(id string) error { return c.setConnectorID(id, "service_port_connector") }
func (c *ServicePortConnector) SetName(name string) error      { return c.setName(name, "service_port_connector") }

func (c *ServicePortConnector) SetTransMethod(m string) error {
	if err := validate.Attribute(m, "service_port_connector.transMethod", validate.Strings, false); err != nil {
		return err
	}
	c.transMethod = m
	return nil
}

func (c *ServicePortConnector) SetEndpoints(source, target TargetPort) {
	c.source, c.target = source, target
}

func (c *ServicePortConnector) SetComment(comment string) error {
	if err := validate.Attribute(comment, "service_port_connector.ext.comment", validate.Strings, false); err != nil {
		return err
	}
	c.comment = comment
	return nil
}

func (c *ServicePortConnector) SetVisible(visible bool)   { c.visible = visible }
func (c *ServicePortConnector) SetProperties(b props.Bag) { c.properties = b.Clone() }

func (c *ServicePortConnector) ParseXML(n *xmlquery.Node) error {
	var fresh ServicePortConnector
	if err := fresh.connector.parseXML(n, "service_port_connector",
		xpSourceServicePort, xpTargetServicePort, "SourceServicePort", "TargetServicePort"); err != nil {
		return err
	}
	fresh.transMethod, _ = rtsAttr(n, "transMethod")
	*c = fresh
	return nil
}

func (c *ServicePortConnector) ParseYAML(m Mapping) (err error) {
	var fresh ServicePortConnector
	if err = fresh.connector.parseYAML(m, "service_port_connector", "SourceServicePort", "TargetServicePort"); err != nil {
		return err
	}
	if fresh.transMethod, err = yamlString(m, "transMethod", "service_port_connector.transMethod", false); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c ServicePortConnector) SaveXML(e *xmlquery.Node) {
	setRTS(e, "connectorId", c.connectorID)
	setRTS(e, "name", c.name)
	if c.transMethod != "" {
		setRTS(e, "transMethod", c.transMethod)
	}
	c.saveEndpoints(e, "SourceServicePort", "TargetServicePort")
	c.saveExt(e)
}

func (c ServicePortConnector) ToDict() Mapping {
	d := c.dict("SourceServicePort", "TargetServicePort")
	if c.transMethod != "" {
		d["transMethod"] = c.transMethod
	}
	c.dictExt(d)
	return d
}

func (c ServicePortConnector) String() string {
	s := c.string("Service port connector")
	if c.transMethod != "" {
		s += fmt.Sprintf("  Transport method: %s\n", c.transMethod)
	}
	return s
}

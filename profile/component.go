package profile

import (
	"fmt"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
)

// Component is a component instance in an RT system.
//
// A component is addressed throughout the profile by its (ID, instance
// name) pair. The composite type is one of "None", "PortShared",
// "Grouping" or "FullyShared", but is not checked.
type Component struct {
	id                     string
	pathURI                string
	activeConfigurationSet string
	instanceName           string
	compositeType          string
	isRequired             bool

	dataPorts         []DataPort
	servicePorts      []ServicePort
	configurationSets []ConfigurationSet
	executionContexts []ExecutionContext
	participants      []TargetComponent

	comment    string
	visible    bool
	location   Location
	properties props.Bag
}

// NewComponent returns a visible, non-composite component instance.
func NewComponent(id, instanceName string) Component {
	return Component{
		id:            id,
		instanceName:  instanceName,
		compositeType: "None",
		visible:       true,
	}
}

func (c Component) ID() string                            { return c.id }
func (c Component) PathURI() string                       { return c.pathURI }
func (c Component) ActiveConfigurationSet() string        { return c.activeConfigurationSet }
func (c Component) InstanceName() string                  { return c.instanceName }
func (c Component) CompositeType() string                 { return c.compositeType }
func (c Component) IsRequired() bool                      { return c.isRequired }
func (c Component) DataPorts() []DataPort                 { return c.dataPorts }
func (c Component) ServicePorts() []ServicePort           { return c.servicePorts }
func (c Component) ConfigurationSets() []ConfigurationSet { return c.configurationSets }
func (c Component) ExecutionContexts() []ExecutionContext { return c.executionContexts }
func (c Component) Participants() []TargetComponent       { return c.participants }
func (c Component) Comment() string                       { return c.comment }
func (c Component) Visible() bool                         { return c.visible }
func (c Component) Location() Location                    { return c.location }
func (c Component) Properties() props.Bag                 { return c.properties.Clone() }

// ComponentID returns the component's ID, so a Component is a ComponentRef.
func (c Component) ComponentID() string { return c.id }

func (c *Component) SetID(id string) error {
	if err := validate.Attribute(id, "component.id", validate.Strings, true); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Component) SetPathURI(uri string) error {
	if err := validate.Attribute(uri, "component.pathUri", validate.Strings, false); err != nil {
		return err
	}
	c.pathURI = uri
	return nil
}

func (c *Component) SetActiveConfigurationSet(id string) error {
	if err := validate.Attribute(id, "component.activeConfigurationSet", validate.Strings, false); err != nil {
		return err
	}
	c.activeConfigurationSet = id
	return nil
}

func (c *Component) SetInstanceName(name string) error {
	if err := validate.Attribute(name, "component.instanceName", validate.Strings, true); err != nil {
		return err
	}
	c.instanceName = name
	return nil
}

func (c *Component) SetCompositeType(t string) error {
	if err := validate.Attribute(t, "component.compositeType", validate.Strings, false); err != nil {
		return err
	}
	c.compositeType = t
	return nil
}

func (c *Component) SetIsRequired(required bool) { c.isRequired = required }

func (c *Component) SetDataPorts(ports []DataPort) { c.dataPorts = cloneSlice(ports) }

func (c *Component) SetServicePorts(ports []ServicePort) { c.servicePorts = cloneSlice(ports) }

func (c *Component) SetConfigurationSets(sets []ConfigurationSet) {
	c.configurationSets = cloneSlice(sets)
}

func (c *Component) SetExecutionContexts(ecs []ExecutionContext) {
	c.executionContexts = cloneSlice(ecs)
}

func (c *Component) SetParticipants(p []TargetComponent) { c.participants = cloneSlice(p) }

func (c *Component) SetComment(comment string) error {
	if err := validate.Attribute(comment, "component.ext.comment", validate.Strings, false); err != nil {
		return err
	}
	c.comment = comment
	return nil
}

func (c *Component) SetVisible(visible bool)   { c.visible = visible }
func (c *Component) SetLocation(l Location)    { c.location = l }
func (c *Component) SetProperties(b props.Bag) { c.properties = b.Clone() }

// DataPort returns the data port named name, or nil.
func (c *Component) DataPort(name string) *DataPort {
	for i := range c.dataPorts {
		if c.dataPorts[i].name == name {
			return &c.dataPorts[i]
		}
	}
	return nil
}

// ServicePort returns the service port named name, or nil.
func (c *Component) ServicePort(name string) *ServicePort {
	for i := range c.servicePorts {
		if c.servicePorts[i].name == name {
			return &c.servicePorts[i]
		}
	}
	return nil
}

func (c *Component) ParseXML(n *xmlquery.Node) (err error) {
	fresh := NewComponent("", "")
	id, _ := rtsAttr(n, "id")
	if err = fresh.SetID(id); err != nil {
		return err
	}
	inst, _ := rtsAttr(n, "instanceName")
	if err = fresh.SetInstanceName(inst); err != nil {
		return err
	}
	fresh.pathURI, _ = rtsAttr(n, "pathUri")
	fresh.activeConfigurationSet, _ = rtsAttr(n, "activeConfigurationSet")
	if v, ok := rtsAttr(n, "compositeType"); ok {
		fresh.compositeType = v
	}
	v, ok := rtsAttr(n, "isRequired")
	fresh.isRequired = boolAttr(v, ok, false)

	if fresh.dataPorts, err = parseEachXML[DataPort](xmlutil.Children(n, xpDataPorts)); err != nil {
		return err
	}
	if fresh.servicePorts, err = parseEachXML[ServicePort](xmlutil.Children(n, xpServicePorts)); err != nil {
		return err
	}
	if fresh.configurationSets, err = parseEachXML[ConfigurationSet](xmlutil.Children(n, xpConfigurationSets)); err != nil {
		return err
	}
	if fresh.executionContexts, err = parseEachXML[ExecutionContext](xmlutil.Children(n, xpExecutionContexts)); err != nil {
		return err
	}
	for _, pn := range xmlutil.Children(n, xpParticipants) {
		target, err := singleChild(pn, xpParticipant, "Participant", true)
		if err != nil {
			return err
		}
		var t TargetComponent
		if err := t.ParseXML(target); err != nil {
			return err
		}
		fresh.participants = append(fresh.participants, t)
	}

	fresh.comment, _ = extAttr(n, "comment")
	v, ok = extAttr(n, "visible")
	fresh.visible = boolAttr(v, ok, true)
	ln, err := singleChild(n, xpExtLocation, "Location", false)
	if err != nil {
		return err
	}
	if ln != nil {
		if err := fresh.location.ParseXML(ln); err != nil {
			return err
		}
	}
	fresh.properties = parsePropertiesXML(n)
	*c = fresh
	return nil
}

func (c *Component) ParseYAML(m Mapping) (err error) {
	fresh := NewComponent("", "")
	if fresh.id, err = yamlString(m, "id", "component.id", true); err != nil {
		return err
	}
	if fresh.instanceName, err = yamlString(m, "instanceName", "component.instanceName", true); err != nil {
		return err
	}
	if fresh.pathURI, err = yamlString(m, "pathUri", "component.pathUri", false); err != nil {
		return err
	}
	if fresh.activeConfigurationSet, err = yamlString(m, "activeConfigurationSet", "component.activeConfigurationSet", false); err != nil {
		return err
	}
	if _, ok := yamlValue(m, "compositeType"); ok {
		if fresh.compositeType, err = yamlString(m, "compositeType", "component.compositeType", false); err != nil {
			return err
		}
	}
	if fresh.isRequired, err = yamlBool(m, "isRequired", "component.isRequired", false); err != nil {
		return err
	}

	entries, err := yamlMappings(m, "dataPorts", "component.dataPorts")
	if err != nil {
		return err
	}
	if fresh.dataPorts, err = parseEachYAML[DataPort](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "servicePorts", "component.servicePorts"); err != nil {
		return err
	}
	if fresh.servicePorts, err = parseEachYAML[ServicePort](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "configurationSets", "component.configurationSets"); err != nil {
		return err
	}
	if fresh.configurationSets, err = parseEachYAML[ConfigurationSet](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "executionContexts", "component.executionContexts"); err != nil {
		return err
	}
	if fresh.executionContexts, err = parseEachYAML[ExecutionContext](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "participants", "component.participants"); err != nil {
		return err
	}
	for _, pm := range entries {
		target, ok, err := yamlMapping(pm, "participant", "component.participants.participant")
		if err != nil {
			return err
		}
		if !ok {
			return errRequiredChild("Participant")
		}
		var t TargetComponent
		if err := t.ParseYAML(target); err != nil {
			return err
		}
		fresh.participants = append(fresh.participants, t)
	}

	if fresh.comment, err = yamlString(m, YAMLExtPrefix+"comment", "component.ext.comment", false); err != nil {
		return err
	}
	if fresh.visible, err = yamlBool(m, YAMLExtPrefix+"visible", "component.ext.visible", true); err != nil {
		return err
	}
	lm, ok, err := yamlMapping(m, YAMLExtPrefix+"location", "component.ext.location")
	if err != nil {
		return err
	}
	if ok {
		if err := fresh.location.ParseYAML(lm); err != nil {
			return err
		}
	}
	if fresh.properties, err = parsePropertiesYAML(m, "component.ext.properties"); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c Component) SaveXML(e *xmlquery.Node) {
	setRTS(e, "id", c.id)
	setRTS(e, "pathUri", c.pathURI)
	if c.activeConfigurationSet != "" {
		setRTS(e, "activeConfigurationSet", c.activeConfigurationSet)
	}
	setRTS(e, "instanceName", c.instanceName)
	setRTS(e, "compositeType", c.compositeType)
	setRTS(e, "isRequired", formatBool(c.isRequired))
	if c.comment != "" {
		setExt(e, "comment", c.comment)
	}
	setExt(e, "visible", formatBool(c.visible))

	for _, p := range c.dataPorts {
		p.SaveXML(appendRTS(e, "DataPorts"))
	}
	for _, p := range c.servicePorts {
		p.SaveXML(appendRTS(e, "ServicePorts"))
	}
	for _, cs := range c.configurationSets {
		cs.SaveXML(appendRTS(e, "ConfigurationSets"))
	}
	for _, ec := range c.executionContexts {
		ec.SaveXML(appendRTS(e, "ExecutionContexts"))
	}
	for _, p := range c.participants {
		p.SaveXML(appendRTS(appendRTS(e, "Participants"), "Participant"))
	}
	if !c.location.IsZero() {
		c.location.SaveXML(appendExt(e, "Location"))
	}
	savePropertiesXML(e, c.properties)
}

func (c Component) ToDict() Mapping {
	d := Mapping{
		"id":                      c.id,
		"pathUri":                 c.pathURI,
		"instanceName":            c.instanceName,
		"compositeType":           c.compositeType,
		"isRequired":              c.isRequired,
		YAMLExtPrefix + "visible": c.visible,
	}
	if c.activeConfigurationSet != "" {
		d["activeConfigurationSet"] = c.activeConfigurationSet
	}
	if l := dictList(c.dataPorts); l != nil {
		d["dataPorts"] = l
	}
	if l := dictList(c.servicePorts); l != nil {
		d["servicePorts"] = l
	}
	if l := dictList(c.configurationSets); l != nil {
		d["configurationSets"] = l
	}
	if l := dictList(c.executionContexts); l != nil {
		d["executionContexts"] = l
	}
	if len(c.participants) > 0 {
		var list []interface{}
		for _, p := range c.participants {
			list = append(list, Mapping{"participant": p.ToDict()})
		}
		d["participants"] = list
	}
	if c.comment != "" {
		d[YAMLExtPrefix+"comment"] = c.comment
	}
	if !c.location.IsZero() {
		d[YAMLExtPrefix+"location"] = c.location.ToDict()
	}
	propertiesToDict(d, c.properties)
	return d
}

func (c Component) String() string {
	s := fmt.Sprintf("Component: %s\n", c.id)
	s += fmt.Sprintf("  Instance name: %s\n", c.instanceName)
	s += fmt.Sprintf("  Path URI: %s\n", c.pathURI)
	s += fmt.Sprintf("  Active configuration set: %s\n", c.activeConfigurationSet)
	s += fmt.Sprintf("  Composite type: %s\n", c.compositeType)
	s += fmt.Sprintf("  Is required: %t\n", c.isRequired)
	if c.comment != "" {
		s += fmt.Sprintf("  Comment: %s\n", c.comment)
	}
	s += fmt.Sprintf("  Visible: %t\n", c.visible)
	if !c.location.IsZero() {
		s += fmt.Sprintf("  Location: %s\n", c.location)
	}
	s += indent(listString("Data ports", c.dataPorts), 2)
	s += indent(listString("Service ports", c.servicePorts), 2)
	s += indent(listString("Configuration sets", c.configurationSets), 2)
	s += indent(listString("Execution contexts", c.executionContexts), 2)
	s += indent(listString("Participants", c.participants), 2)
	if p := propertiesString(c.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

package profile

import (
	"fmt"
	"strings"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/validate"
	"github.com/antchfx/xmlquery"
)

// ComponentRef is implemented by anything which addresses a component
// instance by its (component ID, instance name) key.
type ComponentRef interface {
	ComponentID() string
	InstanceName() string
}

// TargetComponent is a reference to a component instance.
type TargetComponent struct {
	componentID  string
	instanceName string
	properties   props.Bag
}

// NewTargetComponent returns a reference to the component instance
// identified by componentID and instanceName.
func NewTargetComponent(componentID, instanceName string) TargetComponent {
	return TargetComponent{componentID: componentID, instanceName: instanceName}
}

func (t TargetComponent) ComponentID() string   { return t.componentID }
func (t TargetComponent) InstanceName() string  { return t.instanceName }
func (t TargetComponent) Properties() props.Bag { return t.properties.Clone() }

// Matches returns true if t addresses the same component instance as ref.
func (t TargetComponent) Matches(ref ComponentRef) bool {
	return t.componentID == ref.ComponentID() && t.instanceName == ref.InstanceName()
}

func (t *TargetComponent) SetComponentID(id string) error {
	if err := validate.Attribute(id, "target_component.componentId", validate.Strings, true); err != nil {
		return err
	}
	t.componentID = id
	return nil
}

func (t *TargetComponent) SetInstanceName(name string) error {
	if err := validate.Attribute(name, "target_component.instanceName", validate.Strings, true); err != nil {
		return err
	}
	t.instanceName = name
	return nil
}

func (t *TargetComponent) SetProperties(b props.Bag) { t.properties = b.Clone() }

func (t *TargetComponent) ParseXML(n *xmlquery.Node) error {
	var fresh TargetComponent
	if err := fresh.parseXML(n); err != nil {
		return err
	}
	*t = fresh
	return nil
}

func (t *TargetComponent) parseXML(n *xmlquery.Node) error {
	id, _ := rtsAttr(n, "componentId")
	if err := t.SetComponentID(id); err != nil {
		return err
	}
	inst, _ := rtsAttr(n, "instanceName")
	if err := t.SetInstanceName(inst); err != nil {
		return err
	}
	t.properties = parsePropertiesXML(n)
	return nil
}

func (t *TargetComponent) ParseYAML(m Mapping) error {
	var fresh TargetComponent
	if err := fresh.parseYAML(m); err != nil {
		return err
	}
	*t = fresh
	return nil
}

func (t *TargetComponent) parseYAML(m Mapping) (err error) {
	if t.componentID, err = yamlString(m, "componentId", "target_component.componentId", true); err != nil {
		return err
	}
	if t.instanceName, err = yamlString(m, "instanceName", "target_component.instanceName", true); err != nil {
		return err
	}
	t.properties, err = parsePropertiesYAML(m, "target_component.ext.properties")
	return err
}

func (t TargetComponent) SaveXML(e *xmlquery.Node) {
	t.saveAttrs(e)
	savePropertiesXML(e, t.properties)
}

func (t TargetComponent) saveAttrs(e *xmlquery.Node) {
	setRTS(e, "componentId", t.componentID)
	setRTS(e, "instanceName", t.instanceName)
}

func (t TargetComponent) ToDict() Mapping {
	d := t.dict()
	propertiesToDict(d, t.properties)
	return d
}

func (t TargetComponent) dict() Mapping {
	return Mapping{
		"componentId":  t.componentID,
		"instanceName": t.instanceName,
	}
}

func (t TargetComponent) String() string {
	s := fmt.Sprintf("%s/%s\n", t.componentID, t.instanceName)
	if p := propertiesString(t.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

// TargetPort is a reference to a named port of a component instance.
type TargetPort struct {
	TargetComponent
	portName string
}

// NewTargetPort returns a reference to the port portName of the
// component instance identified by componentID and instanceName.
func NewTargetPort(componentID, instanceName, portName string) TargetPort {
	return TargetPort{TargetComponent: NewTargetComponent(componentID, instanceName), portName: portName}
}

func (t TargetPort) PortName() string { return t.portName }

func (t *TargetPort) SetPortName(name string) error {
	if err := validate.Attribute(name, "target_port.portName", validate.Strings, true); err != nil {
		return err
	}
	t.portName = name
	return nil
}

func (t *TargetPort) ParseXML(n *xmlquery.Node) error {
	var fresh TargetPort
	if err := fresh.TargetComponent.parseXML(n); err != nil {
		return err
	}
	name, _ := rtsAttr(n, "portName")
	if err := fresh.SetPortName(name); err != nil {
		return err
	}
	*t = fresh
	return nil
}

func (t *TargetPort) ParseYAML(m Mapping) (err error) {
	var fresh TargetPort
	if err = fresh.TargetComponent.parseYAML(m); err != nil {
		return err
	}
	if fresh.portName, err = yamlString(m, "portName", "target_port.portName", true); err != nil {
		return err
	}
	*t = fresh
	return nil
}

func (t TargetPort) SaveXML(e *xmlquery.Node) {
	t.saveAttrs(e)
	setRTS(e, "portName", t.portName)
	savePropertiesXML(e, t.properties)
}

func (t TargetPort) ToDict() Mapping {
	d := t.dict()
	d["portName"] = t.portName
	propertiesToDict(d, t.properties)
	return d
}

func (t TargetPort) String() string {
	s := fmt.Sprintf("%s/%s:%s\n", t.componentID, t.instanceName, t.portName)
	if p := propertiesString(t.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

// TargetExecutionContext is a reference to an execution context of a
// component instance.
type TargetExecutionContext struct {
	TargetComponent
	id string
}

// NewTargetExecutionContext returns a reference to the execution context
// id of the component instance identified by componentID and instanceName.
func NewTargetExecutionContext(componentID, instanceName, id string) TargetExecutionContext {
	return TargetExecutionContext{TargetComponent: NewTargetComponent(componentID, instanceName), id: id}
}

func (t TargetExecutionContext) ID() string { return t.id }

func (t *TargetExecutionContext) SetID(id string) error {
	if err := validate.Attribute(id, "target_executioncontext.id", validate.Strings, false); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *TargetExecutionContext) ParseXML(n *xmlquery.Node) error {
	var fresh TargetExecutionContext
	if err := fresh.TargetComponent.parseXML(n); err != nil {
		return err
	}
	fresh.id, _ = rtsAttr(n, "id")
	*t = fresh
	return nil
}

func (t *TargetExecutionContext) ParseYAML(m Mapping) (err error) {
	var fresh TargetExecutionContext
	if err = fresh.TargetComponent.parseYAML(m); err != nil {
		return err
	}
	if fresh.id, err = yamlString(m, "id", "target_executioncontext.id", false); err != nil {
		return err
	}
	*t = fresh
	return nil
}

func (t TargetExecutionContext) SaveXML(e *xmlquery.Node) {
	t.saveAttrs(e)
	setRTS(e, "id", t.id)
	savePropertiesXML(e, t.properties)
}

func (t TargetExecutionContext) ToDict() Mapping {
	d := t.dict()
	d["id"] = t.id
	propertiesToDict(d, t.properties)
	return d
}

func (t TargetExecutionContext) String() string {
	s := fmt.Sprintf("%s/%s:%s\n", t.componentID, t.instanceName, t.id)
	if p := propertiesString(t.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

func parseECTargetsXML(nodes []*xmlquery.Node) ([]TargetExecutionContext, error) {
	return parseEachXML[TargetExecutionContext](nodes)
}

func parseECTargetsYAML(entries []Mapping) ([]TargetExecutionContext, error) {
	return parseEachYAML[TargetExecutionContext](entries)
}

func parseComponentTargetsXML(nodes []*xmlquery.Node) ([]TargetComponent, error) {
	return parseEachXML[TargetComponent](nodes)
}

func parseComponentTargetsYAML(entries []Mapping) ([]TargetComponent, error) {
	return parseEachYAML[TargetComponent](entries)
}

// listString renders each item indented by two spaces under a heading.
func listString[T fmt.Stringer](heading string, items []T) string {
	if len(items) == 0 {
		return ""
	}
	var s strings.Builder
	s.WriteString(heading + ":\n")
	for _, it := range items {
		s.WriteString(indent(it.String(), 2))
	}
	return s.String()
}

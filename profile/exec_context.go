package profile

import (
	"fmt"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
)

// executionContextType is the xsi:type of every saved execution context.
const executionContextType = prefixRTSExt + ":execution_context_ext"

// ExecutionContext describes an execution context owned by a component.
//
// Kind is free-form, e.g. "PeriodicExecutionContext". A rate of zero means
// the context is not periodic, or its rate is unspecified.
type ExecutionContext struct {
	id           string
	kind         string
	rate         float64
	participants []TargetExecutionContext
	properties   props.Bag
}

func NewExecutionContext(id, kind string, rate float64) ExecutionContext {
	return ExecutionContext{id: id, kind: kind, rate: rate}
}

func (ec ExecutionContext) ID() string                             { return ec.id }
func (ec ExecutionContext) Kind() string                           { return ec.kind }
func (ec ExecutionContext) Rate() float64                          { return ec.rate }
func (ec ExecutionContext) Participants() []TargetExecutionContext { return ec.participants }
func (ec ExecutionContext) Properties() props.Bag                  { return ec.properties.Clone() }

func (ec *ExecutionContext) SetID(id string) error {
	if err := validate.Attribute(id, "execution_context.id", validate.Strings, true); err != nil {
		return err
	}
	ec.id = id
	return nil
}

func (ec *ExecutionContext) SetKind(kind string) error {
	if err := validate.Attribute(kind, "execution_context.kind", validate.Strings, true); err != nil {
		return err
	}
	ec.kind = kind
	return nil
}

func (ec *ExecutionContext) SetRate(rate float64) { ec.rate = rate }

func (ec *ExecutionContext) SetParticipants(p []TargetExecutionContext) {
	ec.participants = cloneSlice(p)
}

func (ec *ExecutionContext) SetProperties(b props.Bag) { ec.properties = b.Clone() }

func (ec *ExecutionContext) ParseXML(n *xmlquery.Node) (err error) {
	var fresh ExecutionContext
	id, _ := rtsAttr(n, "id")
	if err = fresh.SetID(id); err != nil {
		return err
	}
	kind, _ := rtsAttr(n, "kind")
	if err = fresh.SetKind(kind); err != nil {
		return err
	}
	v, ok := rtsAttr(n, "rate")
	if fresh.rate, err = floatAttr(v, ok, "execution_context.rate", 0); err != nil {
		return err
	}
	if fresh.participants, err = parseECTargetsXML(xmlutil.Children(n, xpParticipants)); err != nil {
		return err
	}
	fresh.properties = parsePropertiesXML(n)
	*ec = fresh
	return nil
}

func (ec *ExecutionContext) ParseYAML(m Mapping) (err error) {
	var fresh ExecutionContext
	if fresh.id, err = yamlString(m, "id", "execution_context.id", true); err != nil {
		return err
	}
	if fresh.kind, err = yamlString(m, "kind", "execution_context.kind", true); err != nil {
		return err
	}
	if fresh.rate, err = yamlFloat(m, "rate", "execution_context.rate", 0); err != nil {
		return err
	}
	entries, err := yamlMappings(m, "participants", "execution_context.participants")
	if err != nil {
		return err
	}
	if fresh.participants, err = parseECTargetsYAML(entries); err != nil {
		return err
	}
	if fresh.properties, err = parsePropertiesYAML(m, "execution_context.ext.properties"); err != nil {
		return err
	}
	*ec = fresh
	return nil
}

func (ec ExecutionContext) SaveXML(e *xmlquery.Node) {
	xmlutil.SetAttr(e, prefixXSI, "type", NamespaceXSI, executionContextType)
	setRTS(e, "id", ec.id)
	setRTS(e, "kind", ec.kind)
	if ec.rate != 0 {
		setRTS(e, "rate", formatFloat(ec.rate))
	}
	for _, p := range ec.participants {
		p.SaveXML(appendRTS(e, "Participants"))
	}
	savePropertiesXML(e, ec.properties)
}

func (ec ExecutionContext) ToDict() Mapping {
	d := Mapping{"id": ec.id, "kind": ec.kind}
	if ec.rate != 0 {
		d["rate"] = ec.rate
	}
	if l := dictList(ec.participants); l != nil {
		d["participants"] = l
	}
	propertiesToDict(d, ec.properties)
	return d
}

func (ec ExecutionContext) String() string {
	s := fmt.Sprintf("Execution context: %s\n", ec.id)
	s += fmt.Sprintf("  Kind: %s\n", ec.kind)
	s += fmt.Sprintf("  Rate: %s\n", formatFloat(ec.rate))
	s += indent(listString("Participants", ec.participants), 2)
	if p := propertiesString(ec.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

package profile

import (
	"fmt"
	"strconv"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/golang/glog"
)

// ConditionKind identifies the concrete type of a Condition.
type ConditionKind int

const (
	// KindCondition is a plain condition with no ordering constraint
	// beyond its sequence number.
	KindCondition ConditionKind = iota
	// KindWaitTime is a condition which waits for a fixed time before
	// sending its message.
	KindWaitTime
	// KindPreceding is a condition which waits for other components to
	// finish before sending its message.
	KindPreceding
)

func (k ConditionKind) String() string {
	switch k {
	case KindCondition:
		return "Condition"
	case KindWaitTime:
		return "WaitTime"
	case KindPreceding:
		return "Preceding"
	default:
		return "ConditionKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Condition is an entry of a lifecycle section: the execution context of
// a component which receives a lifecycle message, and when it receives it.
//
// The concrete type is one of *ConditionBase, *WaitTime or *Preceding.
type Condition interface {
	Node
	fmt.Stringer
	Kind() ConditionKind
	// Base returns the fields common to every condition.
	Base() *ConditionBase
}

// ConditionBase is a plain Condition, and the common part of the others.
type ConditionBase struct {
	sequence        int
	targetComponent TargetExecutionContext
	properties      props.Bag
}

// NewCondition returns a plain condition for target at position sequence.
func NewCondition(sequence int, target TargetExecutionContext) *ConditionBase {
	return &ConditionBase{sequence: sequence, targetComponent: target}
}

func (c *ConditionBase) Kind() ConditionKind                     { return KindCondition }
func (c *ConditionBase) Base() *ConditionBase                    { return c }
func (c *ConditionBase) Sequence() int                           { return c.sequence }
func (c *ConditionBase) TargetComponent() TargetExecutionContext { return c.targetComponent }
func (c *ConditionBase) Properties() props.Bag                   { return c.properties.Clone() }

func (c *ConditionBase) SetSequence(seq int) { c.sequence = seq }

func (c *ConditionBase) SetTargetComponent(t TargetExecutionContext) error {
	if err := validate.Attribute(t.componentID, "conditions.TargetComponent", validate.Strings, true); err != nil {
		return err
	}
	c.targetComponent = t
	return nil
}

func (c *ConditionBase) SetProperties(b props.Bag) { c.properties = b.Clone() }

func (c *ConditionBase) ParseXML(n *xmlquery.Node) error {
	var fresh ConditionBase
	if err := fresh.parseXML(n); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c *ConditionBase) parseXML(n *xmlquery.Node) (err error) {
	v, ok := rtsAttr(n, "sequence")
	if c.sequence, err = intAttr(v, ok, "conditions.sequence", 0); err != nil {
		return err
	}
	tn, err := singleChild(n, xpTargetComponent, "TargetComponent", true)
	if err != nil {
		return err
	}
	if err := c.targetComponent.ParseXML(tn); err != nil {
		return err
	}
	c.properties = parsePropertiesXML(n)
	return nil
}

func (c *ConditionBase) ParseYAML(m Mapping) error {
	var fresh ConditionBase
	if err := fresh.parseYAML(m); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c *ConditionBase) parseYAML(m Mapping) (err error) {
	if c.sequence, err = yamlInt(m, "sequence", "conditions.sequence", 0); err != nil {
		return err
	}
	tm, ok, err := yamlMapping(m, "targetComponent", "conditions.targetComponent")
	if err != nil {
		return err
	}
	if !ok {
		return errRequiredChild("TargetComponent")
	}
	if err := c.targetComponent.ParseYAML(tm); err != nil {
		return err
	}
	c.properties, err = parsePropertiesYAML(m, "conditions.ext.properties")
	return err
}

func (c *ConditionBase) SaveXML(e *xmlquery.Node) {
	c.saveXML(e)
	c.saveTarget(e)
}

func (c *ConditionBase) saveXML(e *xmlquery.Node) {
	setRTS(e, "sequence", strconv.Itoa(c.sequence))
}

// saveTarget writes the child elements; these follow every attribute.
func (c *ConditionBase) saveTarget(e *xmlquery.Node) {
	c.targetComponent.SaveXML(appendRTS(e, "TargetComponent"))
	savePropertiesXML(e, c.properties)
}

func (c *ConditionBase) ToDict() Mapping {
	d := Mapping{
		"sequence":        c.sequence,
		"targetComponent": c.targetComponent.ToDict(),
	}
	propertiesToDict(d, c.properties)
	return d
}

func (c *ConditionBase) String() string { return c.string(KindCondition) }

func (c *ConditionBase) string(k ConditionKind) string {
	s := fmt.Sprintf("%s %d: %s", k, c.sequence, c.targetComponent)
	if p := propertiesString(c.properties); p != "" {
		s += indent(p, 2)
	}
	return s
}

// WaitTime is a Condition which waits WaitTime milliseconds before the
// message is sent.
type WaitTime struct {
	ConditionBase
	waitTime int
}

func NewWaitTime(waitTime, sequence int, target TargetExecutionContext) *WaitTime {
	return &WaitTime{ConditionBase: *NewCondition(sequence, target), waitTime: waitTime}
}

func (w *WaitTime) Kind() ConditionKind  { return KindWaitTime }
func (w *WaitTime) WaitTime() int        { return w.waitTime }
func (w *WaitTime) SetWaitTime(wait int) { w.waitTime = wait }

func (w *WaitTime) ParseXML(n *xmlquery.Node) (err error) {
	var fresh WaitTime
	if err = fresh.parseXML(n); err != nil {
		return err
	}
	v, ok := rtsAttr(n, "waitTime")
	if fresh.waitTime, err = intAttr(v, ok, "conditions.waitTime", 0); err != nil {
		return err
	}
	*w = fresh
	return nil
}

func (w *WaitTime) ParseYAML(m Mapping) (err error) {
	var fresh WaitTime
	if err = fresh.parseYAML(m); err != nil {
		return err
	}
	if fresh.waitTime, err = yamlInt(m, "waitTime", "conditions.waitTime", 0); err != nil {
		return err
	}
	*w = fresh
	return nil
}

func (w *WaitTime) SaveXML(e *xmlquery.Node) {
	w.saveXML(e)
	setRTS(e, "waitTime", strconv.Itoa(w.waitTime))
	w.saveTarget(e)
}

func (w *WaitTime) ToDict() Mapping {
	d := w.ConditionBase.ToDict()
	d["waitTime"] = w.waitTime
	return d
}

func (w *WaitTime) String() string {
	return w.string(KindWaitTime) + fmt.Sprintf("  Wait time: %d\n", w.waitTime)
}

// Preceding is a Condition which is held until the preceding components
// have completed, or the timeout expires. A zero timeout waits forever.
//
// SendingTiming is free-form; documents use "SYNC" to wait for the
// preceding components and "ASYNC" to send without waiting. Empty means
// "SYNC".
type Preceding struct {
	ConditionBase
	timeout             int
	sendingTiming       string
	precedingComponents []TargetExecutionContext
}

func NewPreceding(sequence int, target TargetExecutionContext) *Preceding {
	return &Preceding{ConditionBase: *NewCondition(sequence, target)}
}

func (p *Preceding) Kind() ConditionKind                           { return KindPreceding }
func (p *Preceding) Timeout() int                                  { return p.timeout }
func (p *Preceding) SendingTiming() string                         { return p.sendingTiming }
func (p *Preceding) PrecedingComponents() []TargetExecutionContext { return p.precedingComponents }
func (p *Preceding) SetTimeout(timeout int)                        { p.timeout = timeout }

func (p *Preceding) SetSendingTiming(timing string) error {
	if err := validate.Attribute(timing, "conditions.sendingTiming", validate.Strings, false); err != nil {
		return err
	}
	p.sendingTiming = timing
	return nil
}

func (p *Preceding) SetPrecedingComponents(targets []TargetExecutionContext) {
	p.precedingComponents = cloneSlice(targets)
}

func (p *Preceding) ParseXML(n *xmlquery.Node) (err error) {
	var fresh Preceding
	if err = fresh.parseXML(n); err != nil {
		return err
	}
	v, ok := rtsAttr(n, "timeout")
	if fresh.timeout, err = intAttr(v, ok, "conditions.timeout", 0); err != nil {
		return err
	}
	fresh.sendingTiming, _ = rtsAttr(n, "sendingTiming")
	if fresh.precedingComponents, err = parseECTargetsXML(xmlutil.Children(n, xpPrecedingComponents)); err != nil {
		return err
	}
	*p = fresh
	return nil
}

func (p *Preceding) ParseYAML(m Mapping) (err error) {
	var fresh Preceding
	if err = fresh.parseYAML(m); err != nil {
		return err
	}
	if fresh.timeout, err = yamlInt(m, "timeout", "conditions.timeout", 0); err != nil {
		return err
	}
	if fresh.sendingTiming, err = yamlString(m, "sendingTiming", "conditions.sendingTiming", false); err != nil {
		return err
	}
	entries, err := yamlMappings(m, "precedingComponents", "conditions.precedingComponents")
	if err != nil {
		return err
	}
	if fresh.precedingComponents, err = parseECTargetsYAML(entries); err != nil {
		return err
	}
	*p = fresh
	return nil
}

func (p *Preceding) SaveXML(e *xmlquery.Node) {
	p.saveXML(e)
	setRTS(e, "timeout", strconv.Itoa(p.timeout))
	if p.sendingTiming != "" {
		setRTS(e, "sendingTiming", p.sendingTiming)
	}
	p.saveTarget(e)
	for _, pc := range p.precedingComponents {
		pc.SaveXML(appendRTS(e, "PrecedingComponents"))
	}
}

func (p *Preceding) ToDict() Mapping {
	d := p.ConditionBase.ToDict()
	d["timeout"] = p.timeout
	if p.sendingTiming != "" {
		d["sendingTiming"] = p.sendingTiming
	}
	if l := dictList(p.precedingComponents); l != nil {
		d["precedingComponents"] = l
	}
	return d
}

func (p *Preceding) String() string {
	s := p.string(KindPreceding)
	s += fmt.Sprintf("  Timeout: %d\n", p.timeout)
	if p.sendingTiming != "" {
		s += fmt.Sprintf("  Sending timing: %s\n", p.sendingTiming)
	}
	s += indent(listString("Preceding components", p.precedingComponents), 2)
	return s
}

// ConditionKindXML returns the kind of condition the element n describes.
// A waitTime attribute makes it a WaitTime. Otherwise a timeout or
// sendingTiming attribute, or any PrecedingComponents child, makes it a
// Preceding. Empty attributes are ignored.
func ConditionKindXML(n *xmlquery.Node) ConditionKind {
	if v, _ := rtsAttr(n, "waitTime"); v != "" {
		return KindWaitTime
	}
	if v, _ := rtsAttr(n, "timeout"); v != "" {
		return KindPreceding
	}
	if v, _ := rtsAttr(n, "sendingTiming"); v != "" {
		return KindPreceding
	}
	if len(xmlutil.Children(n, xpPrecedingComponents)) > 0 {
		return KindPreceding
	}
	return KindCondition
}

// ConditionKindYAML returns the kind of condition the mapping m
// describes, by the same rules as ConditionKindXML. Null values are
// ignored.
func ConditionKindYAML(m Mapping) ConditionKind {
	if _, ok := yamlValue(m, "waitTime"); ok {
		return KindWaitTime
	}
	for _, key := range []string{"timeout", "sendingTiming", "precedingComponents"} {
		if _, ok := yamlValue(m, key); ok {
			return KindPreceding
		}
	}
	return KindCondition
}

func newCondition(k ConditionKind) Condition {
	switch k {
	case KindWaitTime:
		return &WaitTime{}
	case KindPreceding:
		return &Preceding{}
	default:
		return &ConditionBase{}
	}
}

// ParseConditionXML returns the Condition described by the element n.
func ParseConditionXML(n *xmlquery.Node) (Condition, error) {
	k := ConditionKindXML(n)
	c := newCondition(k)
	if err := c.ParseXML(n); err != nil {
		return nil, err
	}
	t := c.Base().targetComponent
	glog.V(2).Infof("condition for %s/%s parsed as %s", t.componentID, t.instanceName, k)
	return c, nil
}

// ParseConditionYAML returns the Condition described by the mapping m.
func ParseConditionYAML(m Mapping) (Condition, error) {
	k := ConditionKindYAML(m)
	c := newCondition(k)
	if err := c.ParseYAML(m); err != nil {
		return nil, err
	}
	t := c.Base().targetComponent
	glog.V(2).Infof("condition for %s/%s parsed as %s", t.componentID, t.instanceName, k)
	return c, nil
}

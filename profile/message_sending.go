package profile

import (
	"fmt"
	"strconv"

	"github.com/andaru/rtsprofile/rtserr"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Section identifies a lifecycle section of a profile.
type Section int

const (
	StartUp Section = iota
	ShutDown
	Activation
	Deactivation
	Resetting
	Initializing
	Finalizing

	numSections
)

var sectionInfo = [numSections]struct {
	element string
	key     string
}{
	StartUp:      {"StartUp", "startUp"},
	ShutDown:     {"ShutDown", "shutDown"},
	Activation:   {"Activation", "activation"},
	Deactivation: {"Deactivation", "deactivation"},
	Resetting:    {"Resetting", "resetting"},
	Initializing: {"Initializing", "initializing"},
	Finalizing:   {"Finalizing", "finalizing"},
}

// sectionSelectors select each section's element below the RtsProfile element.
var sectionSelectors = func() (sels [numSections]*xpath.Expr) {
	for s := Section(0); s < numSections; s++ {
		sels[s] = xmlutil.ChildSelector(NamespaceRTS, sectionInfo[s].element)
	}
	return sels
}()

// Sections returns every lifecycle section, in document order.
func Sections() []Section {
	out := make([]Section, 0, numSections)
	for s := Section(0); s < numSections; s++ {
		out = append(out, s)
	}
	return out
}

// String returns the section's XML element name, e.g. "StartUp".
func (s Section) String() string {
	if s.valid() {
		return sectionInfo[s].element
	}
	return "Section(" + strconv.Itoa(int(s)) + ")"
}

// Key returns the section's YAML key, e.g. "startUp".
func (s Section) Key() string {
	if s.valid() {
		return sectionInfo[s].key
	}
	return ""
}

func (s Section) valid() bool { return s >= 0 && s < numSections }

// MessageSending is the ordered list of conditions of one lifecycle
// section. Every section shares this type; only the section differs.
type MessageSending struct {
	section Section
	targets []Condition
}

func NewMessageSending(section Section, targets ...Condition) *MessageSending {
	return &MessageSending{section: section, targets: cloneSlice(targets)}
}

func (ms *MessageSending) Section() Section     { return ms.section }
func (ms *MessageSending) Targets() []Condition { return ms.targets }

// SetTargets replaces the conditions of the section. Nil entries are
// rejected.
func (ms *MessageSending) SetTargets(targets []Condition) error {
	for i, c := range targets {
		if c == nil {
			return errors.WithStack(rtserr.RequiredAttribute(
				fmt.Sprintf("message_sending.targets[%d]", i)))
		}
	}
	ms.targets = cloneSlice(targets)
	return nil
}

// AddTarget appends c to the section.
func (ms *MessageSending) AddTarget(c Condition) error {
	if c == nil {
		return errors.WithStack(rtserr.RequiredAttribute("message_sending.targets"))
	}
	ms.targets = append(ms.targets, c)
	return nil
}

func (ms *MessageSending) ParseXML(n *xmlquery.Node) error {
	var targets []Condition
	for _, tn := range xmlutil.Children(n, xpTargets) {
		c, err := ParseConditionXML(tn)
		if err != nil {
			return err
		}
		targets = append(targets, c)
	}
	ms.targets = targets
	return nil
}

func (ms *MessageSending) ParseYAML(m Mapping) error {
	entries, err := yamlMappings(m, "targets", ms.section.Key()+".targets")
	if err != nil {
		return err
	}
	var targets []Condition
	for _, tm := range entries {
		c, err := ParseConditionYAML(tm)
		if err != nil {
			return err
		}
		targets = append(targets, c)
	}
	ms.targets = targets
	return nil
}

func (ms *MessageSending) SaveXML(e *xmlquery.Node) {
	for _, c := range ms.targets {
		c.SaveXML(appendRTS(e, "Targets"))
	}
}

func (ms *MessageSending) ToDict() Mapping {
	d := Mapping{}
	if l := dictList(ms.targets); l != nil {
		d["targets"] = l
	}
	return d
}

func (ms *MessageSending) String() string {
	if len(ms.targets) == 0 {
		return ms.section.String() + ":\n"
	}
	return listString(ms.section.String(), ms.targets)
}

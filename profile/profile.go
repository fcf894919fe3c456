// Package profile implements the RtsProfile document model: an RT
// system's components, their ports and connections, execution contexts
// and lifecycle ordering, with parsers and writers for its XML and YAML
// forms.
package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/rtserr"
	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Profile is an RtsProfile document.
//
// A Profile owns its whole tree. Components are referenced elsewhere in
// the tree by (component ID, instance name) only, and are resolved with
// FindComponent. A Profile is not safe for concurrent use.
type Profile struct {
	id           string
	abstract     string
	creationDate time.Time
	updateDate   time.Time
	version      string

	components            []Component
	groups                []ComponentGroup
	dataPortConnectors    []DataPortConnector
	servicePortConnectors []ServicePortConnector
	sections              [numSections]*MessageSending

	comment      string
	versionUpLog []string
	properties   props.Bag
}

func (p *Profile) ID() string                                    { return p.id }
func (p *Profile) Abstract() string                              { return p.abstract }
func (p *Profile) CreationDate() time.Time                       { return p.creationDate }
func (p *Profile) UpdateDate() time.Time                         { return p.updateDate }
func (p *Profile) Version() string                               { return p.version }
func (p *Profile) Components() []Component                       { return p.components }
func (p *Profile) Groups() []ComponentGroup                      { return p.groups }
func (p *Profile) DataPortConnectors() []DataPortConnector       { return p.dataPortConnectors }
func (p *Profile) ServicePortConnectors() []ServicePortConnector { return p.servicePortConnectors }
func (p *Profile) Comment() string                               { return p.comment }
func (p *Profile) VersionUpLog() []string                        { return p.versionUpLog }
func (p *Profile) Properties() props.Bag                         { return p.properties.Clone() }

// Section returns the lifecycle section s, or nil when the profile has none.
func (p *Profile) Section(s Section) *MessageSending {
	if !s.valid() {
		return nil
	}
	return p.sections[s]
}

// SetSection sets the lifecycle section ms.Section() to ms.
func (p *Profile) SetSection(ms *MessageSending) error {
	if ms == nil || !ms.section.valid() {
		return errors.WithStack(rtserr.RequiredAttribute("rts_profile.section"))
	}
	p.sections[ms.section] = ms
	return nil
}

// ClearSection removes the lifecycle section s.
func (p *Profile) ClearSection(s Section) {
	if s.valid() {
		p.sections[s] = nil
	}
}

func (p *Profile) SetID(id string) error             { return p.SetField("id", id) }
func (p *Profile) SetAbstract(abstract string) error { return p.SetField("abstract", abstract) }
func (p *Profile) SetCreationDate(t time.Time) error { return p.SetField("creationDate", t) }
func (p *Profile) SetUpdateDate(t time.Time) error   { return p.SetField("updateDate", t) }
func (p *Profile) SetVersion(version string) error   { return p.SetField("version", version) }
func (p *Profile) SetComment(comment string) error   { return p.SetField("comment", comment) }
func (p *Profile) SetProperties(b props.Bag)         { p.properties = b.Clone() }
func (p *Profile) SetVersionUpLog(log []string)      { p.versionUpLog = cloneSlice(log) }
func (p *Profile) SetComponents(c []Component)       { p.components = cloneSlice(c) }
func (p *Profile) SetGroups(g []ComponentGroup)      { p.groups = cloneSlice(g) }

func (p *Profile) SetDataPortConnectors(c []DataPortConnector) {
	p.dataPortConnectors = cloneSlice(c)
}

func (p *Profile) SetServicePortConnectors(c []ServicePortConnector) {
	p.servicePortConnectors = cloneSlice(c)
}

// SetField assigns the named scalar field from a dynamically typed value,
// applying the field's type and required checks. name is the field's
// document name, e.g. "id" or "creationDate"; timestamps accept a
// time.Time or a string.
func (p *Profile) SetField(name string, value interface{}) error {
	switch name {
	case "id", "version":
		if err := validate.Attribute(value, "rts_profile."+name, validate.Strings, true); err != nil {
			return err
		}
		if name == "id" {
			p.id = value.(string)
		} else {
			p.version = value.(string)
		}
	case "abstract":
		if err := validate.Attribute(value, "rts_profile.abstract", validate.Strings, false); err != nil {
			return err
		}
		p.abstract = value.(string)
	case "comment":
		if err := validate.Attribute(value, "rts_profile.ext.comment", validate.Strings, false); err != nil {
			return err
		}
		p.comment = value.(string)
	case "creationDate", "updateDate":
		field := "rts_profile." + name
		if err := validate.Attribute(value, field, validate.Dates, false); err != nil {
			return err
		}
		t, ok := value.(time.Time)
		if !ok {
			var err error
			if t, err = parseDate(value.(string), field); err != nil {
				return err
			}
		}
		if name == "creationDate" {
			p.creationDate = t
		} else {
			p.updateDate = t
		}
	default:
		return errors.Errorf("rts_profile has no field %q", name)
	}
	return nil
}

// FindComponent returns the component with the given ID and instance
// name. The returned component belongs to p.
func (p *Profile) FindComponent(componentID, instanceName string) (*Component, error) {
	for i := range p.components {
		c := &p.components[i]
		if c.id == componentID && c.instanceName == instanceName {
			return c, nil
		}
	}
	return nil, errors.WithStack(rtserr.MissingComponent(componentID, instanceName))
}

// FindComponentByTarget returns the component addressed by ref.
func (p *Profile) FindComponentByTarget(ref ComponentRef) (*Component, error) {
	return p.FindComponent(ref.ComponentID(), ref.InstanceName())
}

// RequiredDataConnections returns the data port connectors whose source
// and target components are both required.
func (p *Profile) RequiredDataConnections() ([]DataPortConnector, error) {
	return partition(p, p.dataPortConnectors, true)
}

// OptionalDataConnections returns the data port connectors with at least
// one endpoint on a component which is not required.
func (p *Profile) OptionalDataConnections() ([]DataPortConnector, error) {
	return partition(p, p.dataPortConnectors, false)
}

// RequiredServiceConnections returns the service port connectors whose
// source and target components are both required.
func (p *Profile) RequiredServiceConnections() ([]ServicePortConnector, error) {
	return partition(p, p.servicePortConnectors, true)
}

// OptionalServiceConnections returns the service port connectors with at
// least one endpoint on a component which is not required.
func (p *Profile) OptionalServiceConnections() ([]ServicePortConnector, error) {
	return partition(p, p.servicePortConnectors, false)
}

// partition returns the connectors of conns which are required, or not.
// An endpoint naming a component missing from p is an error.
func partition[T interface{ Endpoints() (TargetPort, TargetPort) }](p *Profile, conns []T, required bool) ([]T, error) {
	var out []T
	for _, c := range conns {
		src, dst := c.Endpoints()
		sc, err := p.FindComponentByTarget(src)
		if err != nil {
			return nil, err
		}
		dc, err := p.FindComponentByTarget(dst)
		if err != nil {
			return nil, err
		}
		if (sc.isRequired && dc.isRequired) == required {
			out = append(out, c)
		}
	}
	return out, nil
}

// ParseXML replaces p with the profile in n, which is either a parsed
// document or its RtsProfile element. On error p is unchanged.
func (p *Profile) ParseXML(n *xmlquery.Node) error {
	root := n
	if n.Type == xmlquery.DocumentNode {
		roots := xmlutil.Children(n, xpRtsProfile)
		if len(roots) == 0 {
			return errRequiredChild("RtsProfile")
		}
		root = roots[0]
	}
	var fresh Profile
	if err := fresh.parseXML(root); err != nil {
		return err
	}
	if !xmlutil.NodePrefixMap(root).Covers(namespaces) {
		glog.V(1).Infof("profile %q binds non-standard namespace prefixes; saving rebinds %v",
			fresh.id, namespaces.Prefixes())
	}
	*p = fresh
	p.logSummary("XML")
	return nil
}

func (p *Profile) parseXML(n *xmlquery.Node) (err error) {
	id, _ := rtsAttr(n, "id")
	if err = p.SetID(id); err != nil {
		return err
	}
	p.abstract, _ = rtsAttr(n, "abstract")
	v, _ := rtsAttr(n, "creationDate")
	if p.creationDate, err = parseDate(v, "rts_profile.creationDate"); err != nil {
		return err
	}
	v, _ = rtsAttr(n, "updateDate")
	if p.updateDate, err = parseDate(v, "rts_profile.updateDate"); err != nil {
		return err
	}
	v, _ = rtsAttr(n, "version")
	if err = p.SetVersion(v); err != nil {
		return err
	}

	if p.components, err = parseEachXML[Component](xmlutil.Children(n, xpComponents)); err != nil {
		return err
	}
	if p.groups, err = parseEachXML[ComponentGroup](xmlutil.Children(n, xpGroups)); err != nil {
		return err
	}
	if p.dataPortConnectors, err = parseEachXML[DataPortConnector](xmlutil.Children(n, xpDataPortConnectors)); err != nil {
		return err
	}
	if p.servicePortConnectors, err = parseEachXML[ServicePortConnector](xmlutil.Children(n, xpServicePortConnectors)); err != nil {
		return err
	}
	for _, s := range Sections() {
		sn, err := singleChild(n, sectionSelectors[s], s.String(), false)
		if err != nil {
			return err
		}
		if sn == nil {
			continue
		}
		ms := NewMessageSending(s)
		if err := ms.ParseXML(sn); err != nil {
			return err
		}
		p.sections[s] = ms
	}

	p.comment, _ = extAttr(n, "comment")
	for _, ln := range xmlutil.Children(n, xpExtVersionUpLog) {
		p.versionUpLog = append(p.versionUpLog, ln.InnerText())
	}
	p.properties = parsePropertiesXML(n)
	return nil
}

// ParseYAML replaces p with the profile in m. m is either the document
// mapping, with the profile under the "rtsProfile" key, or the profile
// mapping itself. On error p is unchanged.
func (p *Profile) ParseYAML(m Mapping) error {
	inner, ok, err := yamlMapping(m, "rtsProfile", "rtsProfile")
	if err != nil {
		return err
	}
	if ok {
		m = inner
	}
	var fresh Profile
	if err := fresh.parseYAML(m); err != nil {
		return err
	}
	*p = fresh
	p.logSummary("YAML")
	return nil
}

func (p *Profile) parseYAML(m Mapping) (err error) {
	if p.id, err = yamlString(m, "id", "rts_profile.id", true); err != nil {
		return err
	}
	if p.abstract, err = yamlString(m, "abstract", "rts_profile.abstract", false); err != nil {
		return err
	}
	if p.creationDate, err = yamlDate(m, "creationDate", "rts_profile.creationDate"); err != nil {
		return err
	}
	if p.updateDate, err = yamlDate(m, "updateDate", "rts_profile.updateDate"); err != nil {
		return err
	}
	if p.version, err = yamlString(m, "version", "rts_profile.version", true); err != nil {
		return err
	}

	entries, err := yamlMappings(m, "components", "rts_profile.components")
	if err != nil {
		return err
	}
	if p.components, err = parseEachYAML[Component](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "groups", "rts_profile.groups"); err != nil {
		return err
	}
	if p.groups, err = parseEachYAML[ComponentGroup](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "dataPortConnectors", "rts_profile.dataPortConnectors"); err != nil {
		return err
	}
	if p.dataPortConnectors, err = parseEachYAML[DataPortConnector](entries); err != nil {
		return err
	}
	if entries, err = yamlMappings(m, "servicePortConnectors", "rts_profile.servicePortConnectors"); err != nil {
		return err
	}
	if p.servicePortConnectors, err = parseEachYAML[ServicePortConnector](entries); err != nil {
		return err
	}
	for _, s := range Sections() {
		sm, ok, err := yamlMapping(m, s.Key(), "rts_profile."+s.Key())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		ms := NewMessageSending(s)
		if err := ms.ParseYAML(sm); err != nil {
			return err
		}
		p.sections[s] = ms
	}

	if p.comment, err = yamlString(m, YAMLExtPrefix+"comment", "rts_profile.ext.comment", false); err != nil {
		return err
	}
	if p.versionUpLog, err = yamlStrings(m, YAMLExtPrefix+"versionUpLog", "rts_profile.ext.versionUpLog"); err != nil {
		return err
	}
	p.properties, err = parsePropertiesYAML(m, "rts_profile.ext.properties")
	return err
}

func (p *Profile) logSummary(format string) {
	glog.V(1).Infof("parsed %s profile %q: %d components, %d groups, %d data connectors, %d service connectors",
		format, p.id, len(p.components), len(p.groups), len(p.dataPortConnectors), len(p.servicePortConnectors))
}

// SaveXML writes the profile onto the RtsProfile element e, including
// the namespace declarations.
func (p *Profile) SaveXML(e *xmlquery.Node) {
	namespaces.Declare(e)
	setRTS(e, "id", p.id)
	setRTS(e, "abstract", p.abstract)
	setRTS(e, "creationDate", formatDate(p.creationDate))
	setRTS(e, "updateDate", formatDate(p.updateDate))
	setRTS(e, "version", p.version)
	if p.comment != "" {
		setExt(e, "comment", p.comment)
	}

	for _, c := range p.components {
		c.SaveXML(appendRTS(e, "Components"))
	}
	for _, g := range p.groups {
		g.SaveXML(appendRTS(e, "Groups"))
	}
	for _, c := range p.dataPortConnectors {
		c.SaveXML(appendRTS(e, "DataPortConnectors"))
	}
	for _, c := range p.servicePortConnectors {
		c.SaveXML(appendRTS(e, "ServicePortConnectors"))
	}
	for _, ms := range p.sections {
		if ms != nil {
			ms.SaveXML(appendRTS(e, ms.section.String()))
		}
	}
	for _, l := range p.versionUpLog {
		xmlutil.AppendText(appendExt(e, "VersionUpLog"), l)
	}
	savePropertiesXML(e, p.properties)
}

func (p *Profile) ToDict() Mapping {
	d := Mapping{
		"id":           p.id,
		"abstract":     p.abstract,
		"creationDate": formatDate(p.creationDate),
		"updateDate":   formatDate(p.updateDate),
		"version":      p.version,
	}
	if l := dictList(p.components); l != nil {
		d["components"] = l
	}
	if l := dictList(p.groups); l != nil {
		d["groups"] = l
	}
	if l := dictList(p.dataPortConnectors); l != nil {
		d["dataPortConnectors"] = l
	}
	if l := dictList(p.servicePortConnectors); l != nil {
		d["servicePortConnectors"] = l
	}
	for _, ms := range p.sections {
		if ms != nil {
			d[ms.section.Key()] = ms.ToDict()
		}
	}
	if p.comment != "" {
		d[YAMLExtPrefix+"comment"] = p.comment
	}
	if len(p.versionUpLog) > 0 {
		var list []interface{}
		for _, l := range p.versionUpLog {
			list = append(list, l)
		}
		d[YAMLExtPrefix+"versionUpLog"] = list
	}
	propertiesToDict(d, p.properties)
	return d
}

func (p *Profile) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "ID: %s\n", p.id)
	fmt.Fprintf(&s, "Abstract: %s\n", p.abstract)
	fmt.Fprintf(&s, "Created: %s\n", formatDate(p.creationDate))
	fmt.Fprintf(&s, "Updated: %s\n", formatDate(p.updateDate))
	fmt.Fprintf(&s, "Version: %s\n", p.version)
	if p.comment != "" {
		fmt.Fprintf(&s, "Comment: %s\n", p.comment)
	}
	s.WriteString(listString("Components", p.components))
	s.WriteString(listString("Groups", p.groups))
	s.WriteString(listString("Data port connectors", p.dataPortConnectors))
	s.WriteString(listString("Service port connectors", p.servicePortConnectors))
	for _, ms := range p.sections {
		if ms != nil {
			s.WriteString(ms.String())
		}
	}
	if len(p.versionUpLog) > 0 {
		s.WriteString("Version up log:\n")
		for _, l := range p.versionUpLog {
			fmt.Fprintf(&s, "  %s\n", l)
		}
	}
	s.WriteString(propertiesString(p.properties))
	return s.String()
}

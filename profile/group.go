package profile

import (
	"fmt"

	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
	"github.com/golang/glog"
)

// ComponentGroup is a named group of component instances.
//
// SetMembers requires at least one member, but a parsed group may have
// none when its document lists none.
type ComponentGroup struct {
	groupID string
	members []TargetComponent
}

func NewComponentGroup(groupID string, members ...TargetComponent) ComponentGroup {
	return ComponentGroup{groupID: groupID, members: cloneSlice(members)}
}

func (g ComponentGroup) GroupID() string            { return g.groupID }
func (g ComponentGroup) Members() []TargetComponent { return g.members }

func (g *ComponentGroup) SetGroupID(id string) error {
	if err := validate.Attribute(id, "component_group.groupId", validate.Strings, true); err != nil {
		return err
	}
	g.groupID = id
	return nil
}

func (g *ComponentGroup) SetMembers(members []TargetComponent) error {
	if err := validate.Attribute(members, "component_group.members", nil, true); err != nil {
		return err
	}
	g.members = cloneSlice(members)
	return nil
}

func (g *ComponentGroup) ParseXML(n *xmlquery.Node) (err error) {
	var fresh ComponentGroup
	id, _ := rtsAttr(n, "groupId")
	if err = fresh.SetGroupID(id); err != nil {
		return err
	}
	if fresh.members, err = parseComponentTargetsXML(xmlutil.Children(n, xpMembers)); err != nil {
		return err
	}
	fresh.warnEmpty()
	*g = fresh
	return nil
}

func (g *ComponentGroup) ParseYAML(m Mapping) (err error) {
	var fresh ComponentGroup
	if fresh.groupID, err = yamlString(m, "groupId", "component_group.groupId", true); err != nil {
		return err
	}
	entries, err := yamlMappings(m, "members", "component_group.members")
	if err != nil {
		return err
	}
	if fresh.members, err = parseComponentTargetsYAML(entries); err != nil {
		return err
	}
	fresh.warnEmpty()
	*g = fresh
	return nil
}

func (g ComponentGroup) warnEmpty() {
	if len(g.members) == 0 {
		glog.Warningf("component group %q has no members", g.groupID)
	}
}

func (g ComponentGroup) SaveXML(e *xmlquery.Node) {
	setRTS(e, "groupId", g.groupID)
	for _, m := range g.members {
		m.SaveXML(appendRTS(e, "Members"))
	}
}

func (g ComponentGroup) ToDict() Mapping {
	d := Mapping{"groupId": g.groupID}
	if l := dictList(g.members); l != nil {
		d["members"] = l
	}
	return d
}

func (g ComponentGroup) String() string {
	return fmt.Sprintf("Group: %s\n", g.groupID) + indent(listString("Members", g.members), 2)
}

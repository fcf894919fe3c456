package profile

import (
	"fmt"

	"github.com/andaru/rtsprofile/validate"
	"github.com/andaru/rtsprofile/xmlutil"
	"github.com/antchfx/xmlquery"
)

// ConfigurationData is a single named configuration parameter value.
type ConfigurationData struct {
	name string
	data string
}

func NewConfigurationData(name, data string) ConfigurationData {
	return ConfigurationData{name: name, data: data}
}

func (c ConfigurationData) Name() string { return c.name }
func (c ConfigurationData) Data() string { return c.data }

func (c *ConfigurationData) SetName(name string) error {
	if err := validate.Attribute(name, "configuration_data.name", validate.Strings, true); err != nil {
		return err
	}
	c.name = name
	return nil
}

func (c *ConfigurationData) SetData(data string) { c.data = data }

func (c *ConfigurationData) ParseXML(n *xmlquery.Node) error {
	var fresh ConfigurationData
	name, _ := rtsAttr(n, "name")
	if err := fresh.SetName(name); err != nil {
		return err
	}
	fresh.data, _ = rtsAttr(n, "data")
	*c = fresh
	return nil
}

func (c *ConfigurationData) ParseYAML(m Mapping) (err error) {
	var fresh ConfigurationData
	if fresh.name, err = yamlString(m, "name", "configuration_data.name", true); err != nil {
		return err
	}
	if fresh.data, err = yamlString(m, "data", "configuration_data.data", false); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c ConfigurationData) SaveXML(e *xmlquery.Node) {
	setRTS(e, "name", c.name)
	setRTS(e, "data", c.data)
}

func (c ConfigurationData) ToDict() Mapping {
	return Mapping{"name": c.name, "data": c.data}
}

func (c ConfigurationData) String() string { return fmt.Sprintf("%s: %s\n", c.name, c.data) }

// ConfigurationSet is a named set of configuration parameter values.
type ConfigurationSet struct {
	id   string
	data []ConfigurationData
}

func NewConfigurationSet(id string, data ...ConfigurationData) ConfigurationSet {
	c := ConfigurationSet{id: id}
	c.SetData(data)
	return c
}

func (c ConfigurationSet) ID() string                { return c.id }
func (c ConfigurationSet) Data() []ConfigurationData { return c.data }

func (c *ConfigurationSet) SetID(id string) error {
	if err := validate.Attribute(id, "configuration_set.id", validate.Strings, true); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *ConfigurationSet) SetData(data []ConfigurationData) { c.data = cloneSlice(data) }

func (c *ConfigurationSet) ParseXML(n *xmlquery.Node) (err error) {
	var fresh ConfigurationSet
	id, _ := rtsAttr(n, "id")
	if err = fresh.SetID(id); err != nil {
		return err
	}
	if fresh.data, err = parseEachXML[ConfigurationData](xmlutil.Children(n, xpConfigurationData)); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c *ConfigurationSet) ParseYAML(m Mapping) (err error) {
	var fresh ConfigurationSet
	if fresh.id, err = yamlString(m, "id", "configuration_set.id", true); err != nil {
		return err
	}
	entries, err := yamlMappings(m, "configurationData", "configuration_set.configurationData")
	if err != nil {
		return err
	}
	if fresh.data, err = parseEachYAML[ConfigurationData](entries); err != nil {
		return err
	}
	*c = fresh
	return nil
}

func (c ConfigurationSet) SaveXML(e *xmlquery.Node) {
	setRTS(e, "id", c.id)
	for _, d := range c.data {
		d.SaveXML(appendRTS(e, "ConfigurationData"))
	}
}

func (c ConfigurationSet) ToDict() Mapping {
	d := Mapping{"id": c.id}
	if l := dictList(c.data); l != nil {
		d["configurationData"] = l
	}
	return d
}

func (c ConfigurationSet) String() string {
	s := fmt.Sprintf("Configuration set: %s\n", c.id)
	for _, d := range c.data {
		s += indent(d.String(), 2)
	}
	return s
}

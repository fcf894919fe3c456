package profile

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/andaru/rtsprofile/props"
	"github.com/andaru/rtsprofile/rtserr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sensorID   = "RTC:vendorA:sensor:1.0"
	actuatorID = "RTC:vendorA:actuator:1.0"
)

// cmpOpts compares profile trees field by field.
var cmpOpts = cmp.Options{
	cmp.AllowUnexported(
		Profile{}, Component{}, port{}, DataPort{}, ServicePort{},
		ConfigurationSet{}, ConfigurationData{}, ExecutionContext{},
		TargetComponent{}, TargetPort{}, TargetExecutionContext{},
		ComponentGroup{}, connector{}, DataPortConnector{}, ServicePortConnector{},
		MessageSending{}, ConditionBase{}, WaitTime{}, Preceding{},
	),
}

func loadSample(t *testing.T) *Profile {
	t.Helper()
	f, err := os.Open("testdata/sample.xml")
	require.NoError(t, err)
	defer f.Close()
	p, err := New(FromXML(f))
	require.NoError(t, err)
	return p
}

// profileXML returns a minimal profile document holding body.
func profileXML(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rts:RtsProfile xmlns:rts="` + NamespaceRTS + `" xmlns:rtsExt="` + NamespaceRTSExt +
		`" xmlns:xsi="` + NamespaceXSI + `" rts:id="vendorA.sysX.1" rts:version="0.2">` +
		body + `</rts:RtsProfile>`
}

func TestParseSample(t *testing.T) {
	check := assert.New(t)
	p := loadSample(t)

	check.Equal("RTSystem:vendorA.sysX:1.0", p.ID())
	check.Equal("sensor to actuator", p.Abstract())
	check.Equal("0.2", p.Version())
	check.Equal("demo system", p.Comment())
	check.True(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(p.CreationDate()))
	check.True(time.Date(2024, 3, 2, 2, 30, 0, 5e8, time.UTC).Equal(p.UpdateDate()))
	check.Equal([]string{"2024-03-01 created", "2024-03-02 added actuator"}, p.VersionUpLog())
	check.Equal([]string{"owner", "flag"}, p.Properties().Names())
	check.True(p.Properties().Has("flag"))

	require.Len(t, p.Components(), 2)
	sensor := p.Components()[0]
	check.Equal(sensorID, sensor.ID())
	check.Equal("sensor0", sensor.InstanceName())
	check.Equal("localhost/sensor0.rtc", sensor.PathURI())
	check.Equal("default", sensor.ActiveConfigurationSet())
	check.True(sensor.IsRequired())
	check.True(sensor.Visible())
	check.Equal(Location{X: 10, Y: 20, Height: 40, Width: 80, Direction: "RIGHT"}, sensor.Location())
	require.Len(t, sensor.DataPorts(), 1)
	check.Equal("sensor0.out", sensor.DataPorts()[0].Name())
	v, _ := sensor.DataPorts()[0].Properties().Get("port.port_type")
	check.Equal("DataOutPort", v)
	require.Len(t, sensor.ConfigurationSets(), 1)
	check.Equal([]ConfigurationData{NewConfigurationData("gain", "1.5"), NewConfigurationData("offset", "")},
		sensor.ConfigurationSets()[0].Data())
	require.Len(t, sensor.ExecutionContexts(), 1)
	ec := sensor.ExecutionContexts()[0]
	check.Equal("PeriodicExecutionContext", ec.Kind())
	check.Equal(1000.0, ec.Rate())
	check.Equal(1, ec.Properties().Len())

	actuator := p.Components()[1]
	check.False(actuator.IsRequired())
	check.False(actuator.Visible())
	check.Equal("optional arm", actuator.Comment())
	check.Equal("None", actuator.CompositeType())
	check.True(actuator.Location().IsZero())
	require.Len(t, actuator.ServicePorts(), 1)
	check.Equal("motor service", actuator.ServicePorts()[0].Comment())
	check.Equal([]TargetComponent{NewTargetComponent(sensorID, "sensor0")}, actuator.Participants())

	require.Len(t, p.Groups(), 1)
	check.Equal("g1", p.Groups()[0].GroupID())
	check.Len(p.Groups()[0].Members(), 2)

	require.Len(t, p.DataPortConnectors(), 1)
	dc := p.DataPortConnectors()[0]
	check.Equal("flush", dc.SubscriptionType())
	check.Equal("corba_cdr", dc.InterfaceType())
	check.Zero(dc.PushInterval())
	src, dst := dc.Endpoints()
	check.Equal("sensor0.out", src.PortName())
	check.Equal("actuator0", dst.InstanceName())

	require.Len(t, p.ServicePortConnectors(), 1)
	check.Equal("corba", p.ServicePortConnectors()[0].TransMethod())

	startUp := p.Section(StartUp)
	require.NotNil(t, startUp)
	require.Len(t, startUp.Targets(), 2)
	check.Equal(KindCondition, startUp.Targets()[0].Kind())
	check.Equal(KindWaitTime, startUp.Targets()[1].Kind())
	check.Equal(500, startUp.Targets()[1].(*WaitTime).WaitTime())
	check.Equal(1, startUp.Targets()[1].Base().Sequence())

	activation := p.Section(Activation)
	require.NotNil(t, activation)
	require.Len(t, activation.Targets(), 1)
	pre, ok := activation.Targets()[0].(*Preceding)
	require.True(t, ok)
	check.Equal(1000, pre.Timeout())
	check.Equal("SYNC", pre.SendingTiming())
	check.Equal([]TargetExecutionContext{NewTargetExecutionContext(sensorID, "sensor0", "0")}, pre.PrecedingComponents())

	for _, s := range []Section{ShutDown, Deactivation, Resetting, Initializing, Finalizing} {
		check.Nil(p.Section(s), s.String())
	}
}

func TestRoundTripXML(t *testing.T) {
	p := loadSample(t)
	doc, err := p.SaveXMLString()
	require.NoError(t, err)
	q, err := New(FromXMLString(doc))
	require.NoError(t, err)
	if diff := cmp.Diff(p, q, cmpOpts); diff != "" {
		t.Errorf("XML round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := q.SaveXMLString()
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestRoundTripYAML(t *testing.T) {
	p := loadSample(t)
	doc, err := p.SaveYAMLString()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "rtsProfile:\n"), doc)
	q, err := New(FromYAMLString(doc))
	require.NoError(t, err)
	if diff := cmp.Diff(p, q, cmpOpts); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}

	// the bare profile mapping is accepted too
	var r Profile
	require.NoError(t, r.ParseYAML(p.ToDict()))
	if diff := cmp.Diff(p, &r, cmpOpts); diff != "" {
		t.Errorf("mapping round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveXMLShape(t *testing.T) {
	check := assert.New(t)
	doc, err := loadSample(t).SaveXMLString()
	require.NoError(t, err)

	check.True(strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
		`<rts:RtsProfile xmlns:rts="http://www.openrtp.org/namespaces/rts"`+
		` xmlns:rtsExt="http://www.openrtp.org/namespaces/rts_ext"`+
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`+
		` rts:id="RTSystem:vendorA.sysX:1.0"`), doc)
	for _, want := range []string{
		"\n    <rts:Components rts:id=\"RTC:vendorA:sensor:1.0\"",
		"\n        <rts:ExecutionContexts xsi:type=\"rtsExt:execution_context_ext\" rts:id=\"0\" rts:kind=\"PeriodicExecutionContext\" rts:rate=\"1000.0\">",
		`rts:creationDate="2024-03-01T10:00:00Z"`,
		`rts:updateDate="2024-03-02T11:30:00.5+09:00"`,
		`<rts:Targets rts:sequence="1" rts:waitTime="500">`,
		`<rts:Targets rts:sequence="0" rts:timeout="1000" rts:sendingTiming="SYNC">`,
		`<rtsExt:VersionUpLog>2024-03-02 added actuator</rtsExt:VersionUpLog>`,
		`<rtsExt:Properties rtsExt:name="flag"/>`,
		`<rtsExt:Location rtsExt:x="10" rtsExt:y="20" rtsExt:height="40" rtsExt:width="80" rtsExt:direction="RIGHT"/>`,
	} {
		check.Contains(doc, want)
	}
	check.NotContains(doc, "ShutDown")
}

func TestSingletonSection(t *testing.T) {
	var p Profile
	err := p.ParseXMLString(profileXML(`<rts:StartUp></rts:StartUp><rts:StartUp></rts:StartUp>`))
	require.Error(t, err)
	e, ok := rtserr.As(err)
	require.True(t, ok)
	assert.Equal(t, rtserr.KindInvalidDocumentStructure, e.Kind)
	assert.Equal(t, "StartUp", e.Element)

	require.NoError(t, p.ParseXMLString(profileXML(`<rts:StartUp></rts:StartUp><rts:ShutDown></rts:ShutDown>`)))
	assert.NotNil(t, p.Section(StartUp))
	assert.NotNil(t, p.Section(ShutDown))
	assert.Empty(t, p.Section(StartUp).Targets())
}

func TestDocumentStructure(t *testing.T) {
	target := `<rts:TargetComponent rts:componentId="a" rts:instanceName="a0" rts:id="0"/>`
	port := func(elem, inst string) string {
		return `<rts:` + elem + ` rts:componentId="a" rts:instanceName="` + inst + `" rts:portName="p"/>`
	}
	for _, tc := range []struct {
		name    string
		body    string
		element string
	}{
		{
			name:    "duplicate condition target",
			body:    `<rts:Activation><rts:Targets>` + target + target + `</rts:Targets></rts:Activation>`,
			element: "TargetComponent",
		},
		{
			name:    "missing condition target",
			body:    `<rts:Activation><rts:Targets rts:sequence="1"></rts:Targets></rts:Activation>`,
			element: "TargetComponent",
		},
		{
			name: "missing target data port",
			body: `<rts:DataPortConnectors rts:connectorId="c" rts:name="n" rts:dataType="d" rts:interfaceType="i" rts:dataflowType="push">` +
				port("SourceDataPort", "a0") + `</rts:DataPortConnectors>`,
			element: "TargetDataPort",
		},
		{
			name: "duplicate source service port",
			body: `<rts:ServicePortConnectors rts:connectorId="c" rts:name="n">` +
				port("SourceServicePort", "a0") + port("SourceServicePort", "a1") + port("TargetServicePort", "a2") +
				`</rts:ServicePortConnectors>`,
			element: "SourceServicePort",
		},
		{
			name: "empty participants",
			body: `<rts:Components rts:id="a" rts:instanceName="a0"><rts:Participants></rts:Participants></rts:Components>`,
			element: "Participant",
		},
		{
			name:    "duplicate location",
			body:    `<rts:Components rts:id="a" rts:instanceName="a0"><rtsExt:Location/><rtsExt:Location/></rts:Components>`,
			element: "Location",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var p Profile
			err := p.ParseXMLString(profileXML(tc.body))
			require.Error(t, err)
			e, ok := rtserr.As(err)
			require.True(t, ok, err.Error())
			assert.Equal(t, rtserr.KindInvalidDocumentStructure, e.Kind)
			assert.Equal(t, tc.element, e.Element)
		})
	}
}

func TestNotAProfile(t *testing.T) {
	var p Profile
	err := p.ParseXMLString(`<rts:Other xmlns:rts="` + NamespaceRTS + `"/>`)
	assert.True(t, rtserr.IsKind(err, rtserr.KindInvalidDocumentStructure), "%v", err)

	err = p.ParseXMLString(`<RtsProfile id="x" version="0.2"/>`)
	assert.True(t, rtserr.IsKind(err, rtserr.KindInvalidDocumentStructure), "%v", err)

	err = p.ParseXMLString(`<rts:RtsProfile xmlns:rts="` + NamespaceRTS + `"`)
	assert.Error(t, err)
}

func TestRequiredFields(t *testing.T) {
	check := assert.New(t)
	var p Profile

	err := p.SetID("")
	e, ok := rtserr.As(err)
	require.True(t, ok)
	check.Equal(rtserr.KindRequiredAttribute, e.Kind)
	check.Equal("rts_profile.id", e.Field)

	err = p.SetField("id", 42)
	e, ok = rtserr.As(err)
	require.True(t, ok)
	check.Equal(rtserr.KindInvalidType, e.Kind)
	check.Equal("rts_profile.id", e.Field)
	check.Equal("int", e.Actual)
	check.Equal([]string{"string"}, e.Expected)

	check.NoError(p.SetField("id", "vendorA.sysX.1"))
	check.Equal("vendorA.sysX.1", p.ID())
	check.NoError(p.SetField("creationDate", "2024-01-02T03:04:05"))
	check.True(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(p.CreationDate()))
	check.True(rtserr.IsKind(p.SetField("updateDate", "yesterday"), rtserr.KindInvalidType))
	check.True(rtserr.IsKind(p.SetField("updateDate", 3.5), rtserr.KindInvalidType))
	check.Error(p.SetField("nope", "x"))

	err = p.ParseXMLString(`<rts:RtsProfile xmlns:rts="` + NamespaceRTS + `" rts:version="0.2"/>`)
	check.True(rtserr.IsKind(err, rtserr.KindRequiredAttribute), "%v", err)

	err = p.ParseYAMLString("rtsProfile:\n  id: 42\n  version: '0.2'\n")
	e, ok = rtserr.As(err)
	require.True(t, ok, "%v", err)
	check.Equal(rtserr.KindInvalidType, e.Kind)
	check.Equal("rts_profile.id", e.Field)

	err = p.ParseYAMLString("id: a.b.1\n")
	e, ok = rtserr.As(err)
	require.True(t, ok, "%v", err)
	check.Equal(rtserr.KindRequiredAttribute, e.Kind)
	check.Equal("rts_profile.version", e.Field)
}

func TestFailedParseKeepsProfile(t *testing.T) {
	p := loadSample(t)
	want := loadSample(t)

	require.Error(t, p.ParseXMLString(profileXML(`<rts:StartUp/><rts:StartUp/>`)))
	require.Error(t, p.ParseYAMLString("id: x\nversion: '1'\ncomponents: [{id: c}]\n"))
	require.Error(t, p.ParseXMLString("not xml"))
	if diff := cmp.Diff(want, p, cmpOpts); diff != "" {
		t.Errorf("profile changed by failed parse (-want +got):\n%s", diff)
	}

	require.NoError(t, p.ParseXMLString(profileXML("")))
	assert.Equal(t, "vendorA.sysX.1", p.ID())
	assert.Empty(t, p.Components())
	assert.Nil(t, p.Section(StartUp))
}

func TestMultipleSources(t *testing.T) {
	for _, opts := range [][]Option{
		{FromXMLString(profileXML("")), FromYAMLString("id: a\nversion: b\n")},
		{FromXMLString(profileXML("")), FromXMLString(profileXML(""))},
		{FromYAML(strings.NewReader("")), FromYAML(strings.NewReader("")), FromXML(strings.NewReader(""))},
	} {
		p, err := New(opts...)
		assert.Nil(t, p)
		assert.True(t, rtserr.IsKind(err, rtserr.KindMultipleSources), "%v", err)
	}

	p, err := New()
	require.NoError(t, err)
	assert.Empty(t, p.ID())
}

func TestFindComponent(t *testing.T) {
	p := loadSample(t)

	c, err := p.FindComponent(sensorID, "sensor0")
	require.NoError(t, err)
	assert.Equal(t, "localhost/sensor0.rtc", c.PathURI())

	src, _ := p.DataPortConnectors()[0].Endpoints()
	c, err = p.FindComponentByTarget(src)
	require.NoError(t, err)
	assert.Equal(t, "sensor0", c.InstanceName())

	_, err = p.FindComponent(sensorID, "sensor1")
	e, ok := rtserr.As(err)
	require.True(t, ok)
	assert.Equal(t, rtserr.KindMissingComponent, e.Kind)
	assert.Equal(t, sensorID, e.ComponentID)
	assert.Equal(t, "sensor1", e.InstanceName)

	// the returned component is the profile's own
	c, err = p.FindComponent(actuatorID, "actuator0")
	require.NoError(t, err)
	c.SetIsRequired(true)
	assert.True(t, p.Components()[1].IsRequired())
}

func TestConnectionPartitioning(t *testing.T) {
	a := NewComponent("vendorA.sysX.1", "A")
	a.SetIsRequired(true)
	b := NewComponent("vendorB.sysX.1", "B")
	var p Profile
	p.SetComponents([]Component{a, b})
	p.SetDataPortConnectors([]DataPortConnector{NewDataPortConnector("c1", "a_b",
		NewTargetPort(a.ID(), "A", "A.out"), NewTargetPort(b.ID(), "B", "B.in"))})
	p.SetServicePortConnectors([]ServicePortConnector{NewServicePortConnector("c2", "b_a",
		NewTargetPort(b.ID(), "B", "B.svc"), NewTargetPort(a.ID(), "A", "A.svc"))})

	split := func() (reqData, optData []DataPortConnector, reqSvc, optSvc []ServicePortConnector) {
		var err error
		reqData, err = p.RequiredDataConnections()
		require.NoError(t, err)
		optData, err = p.OptionalDataConnections()
		require.NoError(t, err)
		reqSvc, err = p.RequiredServiceConnections()
		require.NoError(t, err)
		optSvc, err = p.OptionalServiceConnections()
		require.NoError(t, err)
		return
	}

	reqData, optData, reqSvc, optSvc := split()
	assert.Empty(t, reqData)
	require.Len(t, optData, 1)
	assert.Equal(t, "c1", optData[0].ConnectorID())
	assert.Empty(t, reqSvc)
	assert.Len(t, optSvc, 1)

	cb, err := p.FindComponent(b.ID(), "B")
	require.NoError(t, err)
	cb.SetIsRequired(true)

	reqData, optData, reqSvc, optSvc = split()
	require.Len(t, reqData, 1)
	assert.Equal(t, "c1", reqData[0].ConnectorID())
	assert.Empty(t, optData)
	assert.Len(t, reqSvc, 1)
	assert.Empty(t, optSvc)

	p.SetComponents([]Component{a})
	_, err = p.RequiredDataConnections()
	assert.True(t, rtserr.IsKind(err, rtserr.KindMissingComponent), "%v", err)
	_, err = p.OptionalServiceConnections()
	assert.True(t, rtserr.IsKind(err, rtserr.KindMissingComponent), "%v", err)
}

func TestSections(t *testing.T) {
	check := assert.New(t)
	check.Len(Sections(), 7)
	check.Equal("Finalizing", Finalizing.String())
	check.Equal("shutDown", ShutDown.Key())
	check.Equal("Section(9)", Section(9).String())

	var p Profile
	target := NewTargetExecutionContext("a", "a0", "0")
	check.NoError(p.SetSection(NewMessageSending(Resetting, NewCondition(0, target))))
	check.Len(p.Section(Resetting).Targets(), 1)
	check.Error(p.SetSection(nil))
	check.Error(p.SetSection(NewMessageSending(Section(-1))))
	check.Nil(p.Section(Section(42)))

	ms := p.Section(Resetting)
	check.True(rtserr.IsKind(ms.AddTarget(nil), rtserr.KindRequiredAttribute))
	check.True(rtserr.IsKind(ms.SetTargets([]Condition{NewCondition(1, target), nil}), rtserr.KindRequiredAttribute))
	check.Len(ms.Targets(), 1)
	check.NoError(ms.SetTargets(nil))
	check.Nil(ms.Targets())

	p.ClearSection(Resetting)
	check.Nil(p.Section(Resetting))
}

func TestProfileString(t *testing.T) {
	s := loadSample(t).String()
	for _, want := range []string{
		"ID: RTSystem:vendorA.sysX:1.0\n",
		"Components:\n  Component: RTC:vendorA:sensor:1.0\n",
		"    Location: 10,20 80x40 RIGHT\n",
		"StartUp:\n  Condition 0: RTC:vendorA:sensor:1.0/sensor0:0\n",
		"  WaitTime 1: RTC:vendorA:actuator:1.0/actuator0:0\n    Wait time: 500\n",
		"Version up log:\n  2024-03-01 created\n",
		"Extra properties:\n  owner: lab\n  flag: \n",
	} {
		assert.Contains(t, s, want)
	}
}

func TestFormat(t *testing.T) {
	check := assert.New(t)
	for _, tc := range []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "sys.xml", want: FormatXML},
		{path: "dir/sys.YAML", want: FormatYAML},
		{path: "sys.yml", want: FormatYAML},
		{path: "sys.json", wantErr: true},
		{path: "sys", wantErr: true},
	} {
		got, err := FormatOf(tc.path)
		if tc.wantErr {
			check.Error(err, tc.path)
			continue
		}
		check.NoError(err, tc.path)
		check.Equal(tc.want, got, tc.path)
	}
	check.Equal("yaml", FormatYAML.String())
}

func TestReadWrite(t *testing.T) {
	p := loadSample(t)
	for _, f := range []Format{FormatXML, FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			var b strings.Builder
			require.NoError(t, p.Write(&b, f))
			var q Profile
			require.NoError(t, q.Read(strings.NewReader(b.String()), f))
			if diff := cmp.Diff(p, &q, cmpOpts); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
	assert.Error(t, p.Write(&strings.Builder{}, Format(7)))
}

func TestPropertiesOmission(t *testing.T) {
	check := assert.New(t)

	empty := NewDataPort("out")
	e := newTestElement("DataPorts")
	empty.SaveXML(e)
	check.Empty(childrenOf(e, "Properties"))
	check.NotContains(empty.ToDict(), YAMLExtPrefix+"properties")

	withProp := NewDataPort("out")
	withProp.SetProperties(props.New("k", "v"))
	e = newTestElement("DataPorts")
	withProp.SaveXML(e)
	ps := childrenOf(e, "Properties")
	require.Len(t, ps, 1)
	name, _ := extAttr(ps[0], "name")
	value, _ := extAttr(ps[0], "value")
	check.Equal("k", name)
	check.Equal("v", value)
	check.Equal([]interface{}{Mapping{"name": "k", "value": "v"}}, withProp.ToDict()[YAMLExtPrefix+"properties"])

	var empties Profile
	require.NoError(t, empties.SetID("a.b.1"))
	require.NoError(t, empties.SetVersion(SpecVersion))
	doc, err := empties.SaveXMLString()
	require.NoError(t, err)
	check.NotContains(doc, "Properties")
	yml, err := empties.SaveYAMLString()
	require.NoError(t, err)
	check.NotContains(yml, "properties")
	check.NotContains(yml, "versionUpLog")
}

func TestForeignPrefixes(t *testing.T) {
	check := assert.New(t)
	var p Profile
	require.NoError(t, p.ParseXMLString(`<r:RtsProfile xmlns:r="`+NamespaceRTS+`" xmlns:x="`+NamespaceRTSExt+
		`" r:id="vendorA.sysX.1" r:version="0.2" x:comment="bound elsewhere">`+
		`<r:Components r:id="c" r:instanceName="c0"/></r:RtsProfile>`))
	check.Equal("vendorA.sysX.1", p.ID())
	check.Equal("bound elsewhere", p.Comment())
	check.Len(p.Components(), 1)

	doc, err := p.SaveXMLString()
	require.NoError(t, err)
	check.Contains(doc, `<rts:RtsProfile xmlns:rts="`+NamespaceRTS+`"`)
	check.Contains(doc, `rtsExt:comment="bound elsewhere"`)
	check.NotContains(doc, "<r:")
}

func TestPropertiesOwnership(t *testing.T) {
	check := assert.New(t)
	var p Profile
	p.SetProperties(props.New("a", "1"))
	b := p.Properties()
	b.Set("k", "v")
	b.Set("a", "changed")

	check.False(p.Properties().Has("k"))
	check.Equal(1, p.Properties().Len())
	v, _ := p.Properties().Get("a")
	check.Equal("1", v)

	c := NewComponent("c", "c0")
	c.SetProperties(props.New("x", ""))
	cb := c.Properties()
	cb.Delete("x")
	check.True(c.Properties().Has("x"))

	tc := NewTargetComponent("c", "c0")
	tb := tc.Properties()
	tb.Set("added", "1")
	check.Equal(0, tc.Properties().Len())
}

func TestVersionUpLogWhitespace(t *testing.T) {
	var p Profile
	require.NoError(t, p.SetID("vendorA.sysX.1"))
	require.NoError(t, p.SetVersion(SpecVersion))
	p.SetVersionUpLog([]string{"  ", " padded ", "a <b> & \"c\"\nd"})

	doc, err := p.SaveXMLString()
	require.NoError(t, err)
	q, err := New(FromXMLString(doc))
	require.NoError(t, err, doc)
	assert.Equal(t, p.VersionUpLog(), q.VersionUpLog(), doc)

	ydoc, err := p.SaveYAMLString()
	require.NoError(t, err)
	q, err = New(FromYAMLString(ydoc))
	require.NoError(t, err, ydoc)
	assert.Equal(t, p.VersionUpLog(), q.VersionUpLog(), ydoc)
}

package profile

import "github.com/andaru/rtsprofile/xmlutil"

const (
	// RTSProfileVersion is the version of this RtsProfile implementation.
	RTSProfileVersion = "4.1.0"
	// SpecVersion is the RtsProfile schema version written by default.
	SpecVersion = "0.2"

	// NamespaceRTS is the primary RtsProfile schema namespace.
	NamespaceRTS = "http://www.openrtp.org/namespaces/rts"
	// NamespaceRTSExt is the vendor extension namespace.
	NamespaceRTSExt = "http://www.openrtp.org/namespaces/rts_ext"
	// NamespaceXSI is the XML schema instance namespace.
	NamespaceXSI = "http://www.w3.org/2001/XMLSchema-instance"

	prefixRTS    = "rts"
	prefixRTSExt = "rtsExt"
	prefixXSI    = "xsi"

	// YAMLExtPrefix marks extension fields in the YAML form.
	YAMLExtPrefix = "rtsExt::"
)

// namespaces are declared on the root element of every saved document.
var namespaces = xmlutil.PrefixMap{
	prefixRTS:    NamespaceRTS,
	prefixRTSExt: NamespaceRTSExt,
	prefixXSI:    NamespaceXSI,
}

// child element selectors, relative to the parent element
var (
	xpRtsProfile = xmlutil.RootSelector(NamespaceRTS, "RtsProfile")

	xpComponents            = xmlutil.ChildSelector(NamespaceRTS, "Components")
	xpGroups                = xmlutil.ChildSelector(NamespaceRTS, "Groups")
	xpDataPortConnectors    = xmlutil.ChildSelector(NamespaceRTS, "DataPortConnectors")
	xpServicePortConnectors = xmlutil.ChildSelector(NamespaceRTS, "ServicePortConnectors")

	xpDataPorts         = xmlutil.ChildSelector(NamespaceRTS, "DataPorts")
	xpServicePorts      = xmlutil.ChildSelector(NamespaceRTS, "ServicePorts")
	xpConfigurationSets = xmlutil.ChildSelector(NamespaceRTS, "ConfigurationSets")
	xpConfigurationData = xmlutil.ChildSelector(NamespaceRTS, "ConfigurationData")
	xpExecutionContexts = xmlutil.ChildSelector(NamespaceRTS, "ExecutionContexts")
	xpParticipants      = xmlutil.ChildSelector(NamespaceRTS, "Participants")
	xpParticipant       = xmlutil.ChildSelector(NamespaceRTS, "Participant")
	xpMembers           = xmlutil.ChildSelector(NamespaceRTS, "Members")

	xpSourceDataPort    = xmlutil.ChildSelector(NamespaceRTS, "SourceDataPort")
	xpTargetDataPort    = xmlutil.ChildSelector(NamespaceRTS, "TargetDataPort")
	xpSourceServicePort = xmlutil.ChildSelector(NamespaceRTS, "SourceServicePort")
	xpTargetServicePort = xmlutil.ChildSelector(NamespaceRTS, "TargetServicePort")

	xpTargets             = xmlutil.ChildSelector(NamespaceRTS, "Targets")
	xpTargetComponent     = xmlutil.ChildSelector(NamespaceRTS, "TargetComponent")
	xpPrecedingComponents = xmlutil.ChildSelector(NamespaceRTS, "PrecedingComponents")

	xpExtProperties   = xmlutil.ChildSelector(NamespaceRTSExt, "Properties")
	xpExtLocation     = xmlutil.ChildSelector(NamespaceRTSExt, "Location")
	xpExtVersionUpLog = xmlutil.ChildSelector(NamespaceRTSExt, "VersionUpLog")
)

/*
Package rtsprofile is a set of RT system profile (RtsProfile) libraries.

An RtsProfile document describes a robotic system built from component
instances: their ports, configuration sets and execution contexts, the
connections between their ports, and the ordering of the lifecycle
messages (start up, activation, and so on) sent to them.

The profile package holds the document model, with an XML codec and a
YAML codec which round-trip every entity. Documents are read with
profile.New and written with Profile.Write.

The supporting packages are rtserr (the typed error kinds reported by the
model and codecs), validate (field type and required checks), props (the
ordered extension property bag) and xmlutil (namespace-aware tree helpers
over xmlquery).

See cmd/rtsprofile for a command line tool which shows, validates and
converts profiles.
*/
package rtsprofile

// Package validate provides the field-level contracts applied by every
// RtsProfile setter and by the YAML decoder.
//
// A contract has two parts: an optional set of allowed types, and a
// required flag. Required values must not be empty, where empty means
// nil, an empty string, or an empty slice or map. Numeric zero and
// false are never treated as empty.
package validate

import (
	"reflect"
	"time"

	"github.com/andaru/rtsprofile/rtserr"
	"github.com/pkg/errors"
)

// TypeSet is the set of types a field accepts. A nil TypeSet disables
// type checking.
type TypeSet []reflect.Type

var (
	typeString  = reflect.TypeOf("")
	typeInt     = reflect.TypeOf(int(0))
	typeFloat   = reflect.TypeOf(float64(0))
	typeBool    = reflect.TypeOf(false)
	typeTime    = reflect.TypeOf(time.Time{})
	typeList    = reflect.TypeOf([]interface{}(nil))
	typeMapping = reflect.TypeOf(map[string]interface{}(nil))
)

// Predefined type sets used by the profile model.
var (
	Strings  = TypeSet{typeString}
	Ints     = TypeSet{typeInt}
	Numbers  = TypeSet{typeInt, typeFloat}
	Bools    = TypeSet{typeBool}
	Dates    = TypeSet{typeString, typeTime}
	Lists    = TypeSet{typeList}
	Mappings = TypeSet{typeMapping}
)

// Of returns a TypeSet containing the dynamic types of the given sample values.
func Of(samples ...interface{}) TypeSet {
	ts := make(TypeSet, 0, len(samples))
	for _, s := range samples {
		ts = append(ts, reflect.TypeOf(s))
	}
	return ts
}

// Has returns true if t is a member of the set.
func (ts TypeSet) Has(t reflect.Type) bool {
	for _, et := range ts {
		if et == t {
			return true
		}
	}
	return false
}

// Names returns the type names of the set members.
func (ts TypeSet) Names() []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, typeName(t))
	}
	return names
}

// Attribute validates value against the field contract. field names the
// attribute in any returned error.
func Attribute(value interface{}, field string, expected TypeSet, required bool) error {
	if expected != nil {
		if t := reflect.TypeOf(value); !expected.Has(t) {
			return errors.WithStack(rtserr.InvalidType(field, typeName(t), expected.Names()))
		}
	}
	if required && IsEmpty(value) {
		return errors.WithStack(rtserr.RequiredAttribute(field))
	}
	return nil
}

// IsEmpty reports whether v is nil, an empty string, or an empty
// slice, array or map.
func IsEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

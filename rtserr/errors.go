package rtserr

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind represents the RtsProfile error kind enumerate
type Kind int

const (
	// KindInvalidType is reported when a field receives a value of a type
	// outside of its allowed set
	KindInvalidType Kind = iota
	// KindRequiredAttribute is reported when a required field is empty or absent
	KindRequiredAttribute
	// KindMultipleSources is reported when more than one document source
	// is supplied to a single parse
	KindMultipleSources
	// KindInvalidDocumentStructure is reported when a singleton child element
	// occurs more than once, or a required child element is missing
	KindInvalidDocumentStructure
	// KindMissingComponent is reported when a component reference lookup
	// finds no match
	KindMissingComponent
)

func (k Kind) String() string {
	switch k {
	case KindInvalidType:
		return "invalid-type"
	case KindRequiredAttribute:
		return "required-attribute"
	case KindMultipleSources:
		return "multiple-sources"
	case KindInvalidDocumentStructure:
		return "invalid-document-structure"
	case KindMissingComponent:
		return "missing-component"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "invalid-type":
		*k = KindInvalidType
	case "required-attribute":
		*k = KindRequiredAttribute
	case "multiple-sources":
		*k = KindMultipleSources
	case "invalid-document-structure":
		*k = KindInvalidDocumentStructure
	case "missing-component":
		*k = KindMissingComponent
	default:
		return errors.New("unknown value")
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error represents an RtsProfile model or codec error.
//
// Field names follow the "entity.attribute" convention, with extension
// fields written "entity.ext.attribute", e.g. "rts_profile.id" or
// "data_port.ext.visible".
type Error struct {
	XMLName      xml.Name `xml:"error" json:"-"`
	Kind         Kind     `xml:"kind" json:"kind"`
	Field        string   `xml:"field,omitempty" json:"field,omitempty"`
	Element      string   `xml:"element,omitempty" json:"element,omitempty"`
	Actual       string   `xml:"actual-type,omitempty" json:"actual-type,omitempty"`
	Expected     []string `xml:"expected-type,omitempty" json:"expected-type,omitempty"`
	ComponentID  string   `xml:"component-id,omitempty" json:"component-id,omitempty"`
	InstanceName string   `xml:"instance-name,omitempty" json:"instance-name,omitempty"`
	Message      string   `xml:"message,omitempty" json:"message,omitempty"`
}

func (e Error) Error() string {
	s := e.Kind.String()
	if e.Field != "" {
		s += " field:" + e.Field
	}
	if e.Element != "" {
		s += " element:" + e.Element
	}
	if e.Actual != "" {
		s += " actual:" + e.Actual
	}
	if len(e.Expected) > 0 {
		s += " expected:[" + strings.Join(e.Expected, " ") + "]"
	}
	if e.ComponentID != "" || e.InstanceName != "" {
		s += fmt.Sprintf(" component:%s/%s", e.ComponentID, e.InstanceName)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// IsKind returns true if err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}

// As returns the first *Error found in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Option is an Error option function
type Option func(*Error)

// WithMessage sets the free-form detail of the error.
func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }

func InvalidType(field, actual string, expected []string, opts ...Option) *Error {
	e := &Error{
		Kind:     KindInvalidType,
		Field:    field,
		Actual:   actual,
		Expected: expected,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func RequiredAttribute(field string, opts ...Option) *Error {
	e := &Error{Kind: KindRequiredAttribute, Field: field}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MultipleSources(opts ...Option) *Error {
	e := &Error{Kind: KindMultipleSources}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func InvalidDocumentStructure(elementName string, opts ...Option) *Error {
	e := &Error{Kind: KindInvalidDocumentStructure, Element: elementName}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MissingComponent(componentID, instanceName string, opts ...Option) *Error {
	e := &Error{
		Kind:         KindMissingComponent,
		ComponentID:  componentID,
		InstanceName: instanceName,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

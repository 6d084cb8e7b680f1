// Package schema holds the immutable type registry a schema executes
// against: compiled scalar bindings with their resolved operation
// slots, plus the root object metadata exposed to introspection.
package schema

import (
	"fmt"
	"reflect"

	"github.com/leafql/leafql/value"
)

// NamedType is a type registered under a unique schema name.
type NamedType interface {
	Kind() string
	TypeName() string
	Description() *string
}

// Scalar is a compiled scalar binding: static metadata plus the three
// operation slots. The slots are resolved once, at schema construction
// time, and the record is immutable afterwards, so it is safe to share
// across concurrent executions without locking.
type Scalar struct {
	Name           string
	Desc           string
	SpecifiedByURL string
	GoType         reflect.Type

	// MarshalFn is total. A panic inside it is a programming defect;
	// the executor contains it and reports a field error.
	MarshalFn    func(v interface{}) value.Output
	UnmarshalFn  func(in value.Input) (interface{}, error)
	ParseTokenFn func(t value.ScalarToken) error
}

func (*Scalar) Kind() string       { return "SCALAR" }
func (s *Scalar) TypeName() string { return s.Name }

func (s *Scalar) Description() *string {
	if s.Desc == "" {
		return nil
	}
	desc := s.Desc
	return &desc
}

// SpecifiedBy returns the scalar's specification URL, if any.
func (s *Scalar) SpecifiedBy() *string {
	if s.SpecifiedByURL == "" {
		return nil
	}
	url := s.SpecifiedByURL
	return &url
}

// Field is the metadata of an object field.
type Field struct {
	Name string
	Desc string
}

// Object describes a composite type, in practice the query root.
type Object struct {
	Name   string
	Desc   string
	GoType reflect.Type
	Fields []*Field
}

func (*Object) Kind() string       { return "OBJECT" }
func (o *Object) TypeName() string { return o.Name }

func (o *Object) Description() *string {
	if o.Desc == "" {
		return nil
	}
	desc := o.Desc
	return &desc
}

// Schema is the registry of named types. It is populated during schema
// construction and read-only from then on.
type Schema struct {
	Types     map[string]NamedType
	QueryType *Object
	Source    value.Source

	byGoType map[reflect.Type]*Scalar
}

func New() *Schema {
	return &Schema{
		Types:    make(map[string]NamedType),
		Source:   value.DefaultSource{},
		byGoType: make(map[reflect.Type]*Scalar),
	}
}

// Register adds a named type. A name collision is a schema construction
// error; the schema is never produced from a colliding registration.
func (s *Schema) Register(t NamedType) error {
	name := t.TypeName()
	if name == "" {
		return fmt.Errorf("graphql: cannot register a type with an empty name")
	}
	if _, exists := s.Types[name]; exists {
		return fmt.Errorf("graphql: type %q registered more than once", name)
	}
	s.Types[name] = t
	return nil
}

// RegisterScalar completes the binding's operation slots and adds it to
// the registry, indexed both by schema name and by native Go type.
func (s *Schema) RegisterScalar(sc *Scalar) error {
	if err := Complete(sc); err != nil {
		return err
	}
	if prev, ok := s.byGoType[sc.GoType]; ok {
		return fmt.Errorf("graphql: native type %s already bound to scalar %q", sc.GoType, prev.Name)
	}
	if err := s.Register(sc); err != nil {
		return err
	}
	s.byGoType[sc.GoType] = sc
	return nil
}

// Alias maps an additional native Go type onto an already registered
// binding. Used for built-ins like Int, which serves both int32 and int.
func (s *Schema) Alias(t reflect.Type, sc *Scalar) {
	s.byGoType[t] = sc
}

// ScalarFor returns the binding for a native Go type, or nil.
func (s *Schema) ScalarFor(t reflect.Type) *Scalar {
	return s.byGoType[t]
}

// Resolve returns the type registered under name, or nil. A scalar
// whose name was overridden is reachable only under the override.
func (s *Schema) Resolve(name string) NamedType {
	return s.Types[name]
}

// Package introspection exposes the schema's type metadata through
// resolver-style wrappers. These are pure metadata reads; they never
// invoke a scalar's conversion operations.
package introspection

import (
	"sort"

	"github.com/leafql/leafql/internal/schema"
)

type Schema struct {
	schema *schema.Schema
}

// WrapSchema is only used internally.
func WrapSchema(s *schema.Schema) *Schema {
	return &Schema{s}
}

func (r *Schema) Types() []*Type {
	var names []string
	for name := range r.schema.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	l := make([]*Type, len(names))
	for i, name := range names {
		l[i] = &Type{r.schema.Types[name]}
	}
	return l
}

func (r *Schema) QueryType() *Type {
	if r.schema.QueryType == nil {
		return nil
	}
	return &Type{r.schema.QueryType}
}

type Type struct {
	typ schema.NamedType
}

// WrapType is only used internally.
func WrapType(t schema.NamedType) *Type {
	return &Type{t}
}

func (r *Type) Kind() string {
	return r.typ.Kind()
}

func (r *Type) Name() *string {
	name := r.typ.TypeName()
	return &name
}

func (r *Type) Description() *string {
	return r.typ.Description()
}

func (r *Type) SpecifiedByUrl() *string {
	if sc, ok := r.typ.(*schema.Scalar); ok {
		return sc.SpecifiedBy()
	}
	return nil
}

func (r *Type) Fields(args *struct{ IncludeDeprecated bool }) *[]*Field {
	obj, ok := r.typ.(*schema.Object)
	if !ok {
		return nil
	}
	l := make([]*Field, len(obj.Fields))
	for i, f := range obj.Fields {
		l[i] = &Field{f}
	}
	return &l
}

type Field struct {
	field *schema.Field
}

func (r *Field) Name() string {
	return r.field.Name
}

func (r *Field) Description() *string {
	if r.field.Desc == "" {
		return nil
	}
	desc := r.field.Desc
	return &desc
}

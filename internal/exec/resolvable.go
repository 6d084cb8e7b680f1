package exec

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leafql/leafql/internal/schema"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// methodSig describes a resolver method's shape.
type methodSig struct {
	Index      int
	HasContext bool
	ArgsType   reflect.Type // the argument struct, or nil
	ArgsPtr    bool
	HasError   bool
}

// fieldName converts a Go method or struct field name to its GraphQL
// counterpart by lowering the first rune.
func fieldName(goName string) string {
	r, size := utf8.DecodeRuneInString(goName)
	return string(unicode.ToLower(r)) + goName[size:]
}

// methodForField finds the exported method on t that resolves the given
// field. Matching is case-insensitive, so e.g. SpecifiedByURL resolves
// the specifiedByUrl field.
func methodForField(t reflect.Type, field string) (*methodSig, error) {
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.PkgPath != "" || !strings.EqualFold(m.Name, field) {
			continue
		}
		return analyzeMethod(i, m)
	}
	return nil, fmt.Errorf("unknown field %q on %s", field, t)
}

// analyzeMethod validates a resolver method's shape: an optional
// context first, an optional argument struct (or pointer to one), one
// result plus an optional error.
func analyzeMethod(index int, m reflect.Method) (*methodSig, error) {
	sig := &methodSig{Index: index}
	mt := m.Type

	in := 1 // skip the receiver
	if in < mt.NumIn() && mt.In(in) == contextType {
		sig.HasContext = true
		in++
	}
	if in < mt.NumIn() {
		at := mt.In(in)
		if at.Kind() == reflect.Ptr && at.Elem().Kind() == reflect.Struct {
			sig.ArgsPtr = true
			at = at.Elem()
		}
		if at.Kind() != reflect.Struct {
			return nil, fmt.Errorf("method %s: arguments must be a struct, got %s", m.Name, at)
		}
		sig.ArgsType = at
		in++
	}
	if in != mt.NumIn() {
		return nil, fmt.Errorf("method %s: unexpected extra parameters", m.Name)
	}

	switch mt.NumOut() {
	case 1:
	case 2:
		if mt.Out(1) != errorType {
			return nil, fmt.Errorf("method %s: second result must be error", m.Name)
		}
		sig.HasError = true
	default:
		return nil, fmt.Errorf("method %s: must return one result and an optional error", m.Name)
	}
	return sig, nil
}

// FieldsOf lists the GraphQL fields a resolver type exposes and checks
// every method's shape, so malformed resolvers are rejected at schema
// construction time.
func FieldsOf(t reflect.Type) ([]*schema.Field, error) {
	var fields []*schema.Field
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.PkgPath != "" {
			continue
		}
		if _, err := analyzeMethod(i, m); err != nil {
			return nil, fmt.Errorf("graphql: %s", err)
		}
		fields = append(fields, &schema.Field{Name: fieldName(m.Name)})
	}
	return fields, nil
}

package leafql

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/leafql/leafql/internal/schema"
	"github.com/leafql/leafql/value"
)

// ScalarDef is a scalar registration accepted by the Scalars schema
// option. Use ScalarConfig to produce one.
type ScalarDef interface {
	define(s *schema.Schema) error
}

// ScalarConfig declares a custom scalar backed by the native type T.
// Every field is optional: an unset operation falls back to a method
// from package decode on T, then to the default derived from T's
// wrapped primitive. An unset Name falls back to T's type identifier.
type ScalarConfig[T any] struct {
	Name           string
	Description    string
	SpecifiedByURL string

	Marshal    func(v T) value.Output
	Unmarshal  func(in value.Input) (T, error)
	ParseToken func(t value.ScalarToken) error
}

func (c ScalarConfig[T]) define(s *schema.Schema) error {
	t := reflect.TypeOf((*T)(nil)).Elem()

	name := c.Name
	if name == "" {
		name = t.Name()
		// instantiated generics carry their type arguments in Name
		if i := strings.Index(name, "["); i >= 0 {
			name = name[:i]
		}
	}
	if name == "" {
		return fmt.Errorf("graphql: scalar for %s needs an explicit name", t)
	}

	sc := &schema.Scalar{
		Name:           name,
		Desc:           c.Description,
		SpecifiedByURL: c.SpecifiedByURL,
		GoType:         t,
	}
	if c.Marshal != nil {
		fn := c.Marshal
		sc.MarshalFn = func(v interface{}) value.Output { return fn(v.(T)) }
	}
	if c.Unmarshal != nil {
		fn := c.Unmarshal
		sc.UnmarshalFn = func(in value.Input) (interface{}, error) { return fn(in) }
	}
	if c.ParseToken != nil {
		sc.ParseTokenFn = c.ParseToken
	}
	return s.RegisterScalar(sc)
}

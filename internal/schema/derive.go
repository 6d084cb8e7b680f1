package schema

import (
	"fmt"
	"math"
	"reflect"

	"github.com/leafql/leafql/decode"
	"github.com/leafql/leafql/value"
)

var (
	marshalerType   = reflect.TypeOf((*decode.Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*decode.Unmarshaler)(nil)).Elem()
	tokenParserType = reflect.TypeOf((*decode.TokenParser)(nil)).Elem()
)

// Complete resolves the binding's unset operation slots. Resolution
// order per slot: a method from package decode on the native type,
// otherwise delegation to the wrapped field. Slots already set (the
// explicit functions from the declaration) are left untouched; an
// explicit operation fully replaces its default, there is no merging.
// A slot that cannot be resolved is a schema construction error.
func Complete(sc *Scalar) error {
	t := sc.GoType

	if sc.MarshalFn == nil && t.Implements(marshalerType) {
		sc.MarshalFn = func(v interface{}) value.Output {
			return v.(decode.Marshaler).MarshalGraphQL()
		}
	}
	if sc.UnmarshalFn == nil && reflect.PtrTo(t).Implements(unmarshalerType) {
		typ := t
		sc.UnmarshalFn = func(in value.Input) (interface{}, error) {
			p := reflect.New(typ)
			if err := p.Interface().(decode.Unmarshaler).UnmarshalGraphQL(in); err != nil {
				return nil, err
			}
			return p.Elem().Interface(), nil
		}
	}
	if sc.ParseTokenFn == nil && t.Implements(tokenParserType) {
		parser := reflect.Zero(t).Interface().(decode.TokenParser)
		sc.ParseTokenFn = parser.ParseGraphQLToken
	}

	if sc.MarshalFn != nil && sc.UnmarshalFn != nil && sc.ParseTokenFn != nil {
		return nil
	}

	prim, err := wrappedPrimitive(t)
	if err != nil {
		var missing string
		switch {
		case sc.MarshalFn == nil:
			missing = "marshal"
		case sc.UnmarshalFn == nil:
			missing = "unmarshal"
		default:
			missing = "token"
		}
		return fmt.Errorf("graphql: scalar %q has no %s operation and no default can be derived: %s", sc.Name, missing, err)
	}

	if sc.MarshalFn == nil {
		sc.MarshalFn = func(v interface{}) value.Output {
			return prim.encode(reflect.ValueOf(v))
		}
	}
	if sc.UnmarshalFn == nil {
		typ := t
		sc.UnmarshalFn = func(in value.Input) (interface{}, error) {
			p := reflect.New(typ).Elem()
			if err := prim.decode(in, p); err != nil {
				return nil, err
			}
			return p.Interface(), nil
		}
	}
	if sc.ParseTokenFn == nil {
		sc.ParseTokenFn = prim.rule
	}
	return nil
}

// primitive is the conversion seed a wrapper type delegates to.
type primitive struct {
	rule   func(t value.ScalarToken) error
	encode func(v reflect.Value) value.Output
	decode func(in value.Input, into reflect.Value) error
}

// wrappedPrimitive walks newtype wrappers and single-field structs down
// to a supported primitive. Decode errors from the wrapped field
// propagate unchanged.
func wrappedPrimitive(t reflect.Type) (*primitive, error) {
	switch t.Kind() {
	case reflect.Int32, reflect.Int:
		return &primitive{
			rule: value.IntTokenRule,
			encode: func(v reflect.Value) value.Output {
				n := v.Int()
				// plain int admits values Int cannot carry; never truncate
				if n < math.MinInt32 || n > math.MaxInt32 {
					panic(fmt.Sprintf("Int value out of range: %d", n))
				}
				return value.IntOutput(int32(n))
			},
			decode: func(in value.Input, into reflect.Value) error {
				i, err := in.Int()
				if err != nil {
					return err
				}
				into.SetInt(int64(i))
				return nil
			},
		}, nil
	case reflect.Float64:
		return &primitive{
			rule: value.FloatTokenRule,
			encode: func(v reflect.Value) value.Output {
				return value.FloatOutput(v.Float())
			},
			decode: func(in value.Input, into reflect.Value) error {
				f, err := in.Float()
				if err != nil {
					return err
				}
				into.SetFloat(f)
				return nil
			},
		}, nil
	case reflect.String:
		return &primitive{
			rule: value.StringTokenRule,
			encode: func(v reflect.Value) value.Output {
				return value.StringOutput(v.String())
			},
			decode: func(in value.Input, into reflect.Value) error {
				s, err := in.Str()
				if err != nil {
					return err
				}
				into.SetString(s)
				return nil
			},
		}, nil
	case reflect.Bool:
		return &primitive{
			rule: value.BooleanTokenRule,
			encode: func(v reflect.Value) value.Output {
				return value.BooleanOutput(v.Bool())
			},
			decode: func(in value.Input, into reflect.Value) error {
				b, err := in.Boolean()
				if err != nil {
					return err
				}
				into.SetBool(b)
				return nil
			},
		}, nil
	case reflect.Struct:
		if t.NumField() != 1 {
			return nil, fmt.Errorf("%s has %d fields, a derived scalar needs exactly one", t, t.NumField())
		}
		f := t.Field(0)
		if f.PkgPath != "" {
			return nil, fmt.Errorf("%s.%s is unexported and cannot be set by reflection", t, f.Name)
		}
		inner, err := wrappedPrimitive(f.Type)
		if err != nil {
			return nil, err
		}
		return &primitive{
			rule: inner.rule,
			encode: func(v reflect.Value) value.Output {
				return inner.encode(v.Field(0))
			},
			decode: func(in value.Input, into reflect.Value) error {
				return inner.decode(in, into.Field(0))
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported native type %s", t)
}

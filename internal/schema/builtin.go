package schema

import "reflect"

// RegisterBuiltins installs the four spec-defined scalars backed by the
// matching Go primitives. Their operation slots all come from the
// standard derivation rules.
func (s *Schema) RegisterBuiltins() error {
	intScalar := &Scalar{
		Name:   "Int",
		Desc:   "The `Int` scalar type represents non-fractional signed whole numeric values. Int can represent values between -(2^31) and 2^31 - 1.",
		GoType: reflect.TypeOf(int32(0)),
	}
	builtins := []*Scalar{
		intScalar,
		{
			Name:   "Float",
			Desc:   "The `Float` scalar type represents signed double-precision fractional values as specified by IEEE 754.",
			GoType: reflect.TypeOf(float64(0)),
		},
		{
			Name:   "String",
			Desc:   "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
			GoType: reflect.TypeOf(""),
		},
		{
			Name:   "Boolean",
			Desc:   "The `Boolean` scalar type represents `true` or `false`.",
			GoType: reflect.TypeOf(false),
		},
	}
	for _, sc := range builtins {
		if err := s.RegisterScalar(sc); err != nil {
			return err
		}
	}
	// plain int resolver results and arguments go through Int
	s.Alias(reflect.TypeOf(int(0)), intScalar)
	return nil
}

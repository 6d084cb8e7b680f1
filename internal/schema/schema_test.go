package schema_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafql/leafql/internal/schema"
	"github.com/leafql/leafql/value"
)

type counter int32

type wrappedCounter struct {
	Value int32
}

type deepCounter struct {
	Inner wrappedCounter
}

type hiddenCounter struct {
	value int32
}

type twoFields struct {
	A int32
	B int32
}

func derive(t *testing.T, goType interface{}) *schema.Scalar {
	t.Helper()
	sc := &schema.Scalar{Name: "Test", GoType: reflect.TypeOf(goType)}
	require.NoError(t, schema.Complete(sc))
	return sc
}

func TestDeriveNewtype(t *testing.T) {
	sc := derive(t, counter(0))

	out := sc.MarshalFn(counter(3))
	require.Equal(t, value.OutputScalar, out.Kind)
	i, ok := out.Scalar.AsInt()
	require.True(t, ok)
	assert.Equal(t, int32(3), i)

	v, err := sc.UnmarshalFn(value.ScalarInput(value.Int(5)))
	require.NoError(t, err)
	assert.Equal(t, counter(5), v)

	assert.NoError(t, sc.ParseTokenFn(value.ScalarToken{Kind: value.TokenInt, Text: "5"}))
	assert.Error(t, sc.ParseTokenFn(value.ScalarToken{Kind: value.TokenString, Text: "5"}))
}

func TestDeriveIntOverflow(t *testing.T) {
	sc := derive(t, int(0))

	out := sc.MarshalFn(int(7))
	i, ok := out.Scalar.AsInt()
	require.True(t, ok)
	assert.Equal(t, int32(7), i)

	// out-of-range values must not truncate; the executor contains the
	// panic as a field error
	assert.PanicsWithValue(t, "Int value out of range: 1099511627776", func() {
		sc.MarshalFn(int(1 << 40))
	})
	assert.PanicsWithValue(t, "Int value out of range: -1099511627776", func() {
		sc.MarshalFn(int(-1 << 40))
	})
}

func TestDeriveSingleFieldStruct(t *testing.T) {
	sc := derive(t, wrappedCounter{})

	out := sc.MarshalFn(wrappedCounter{Value: 7})
	i, ok := out.Scalar.AsInt()
	require.True(t, ok)
	assert.Equal(t, int32(7), i)

	v, err := sc.UnmarshalFn(value.ScalarInput(value.Int(9)))
	require.NoError(t, err)
	assert.Equal(t, wrappedCounter{Value: 9}, v)
}

func TestDeriveNestedWrapper(t *testing.T) {
	sc := derive(t, deepCounter{})

	v, err := sc.UnmarshalFn(value.ScalarInput(value.Int(2)))
	require.NoError(t, err)
	assert.Equal(t, deepCounter{Inner: wrappedCounter{Value: 2}}, v)
}

func TestDeriveErrorsPropagateUnchanged(t *testing.T) {
	sc := derive(t, wrappedCounter{})

	_, err := sc.UnmarshalFn(value.ScalarInput(value.String("abc")))
	require.Error(t, err)
	assert.Equal(t, `expected Int, found: "abc"`, err.Error())
	assert.IsType(t, &value.TypeMismatchError{}, err)
}

func TestDeriveUnexportedField(t *testing.T) {
	sc := &schema.Scalar{Name: "Hidden", GoType: reflect.TypeOf(hiddenCounter{})}
	err := schema.Complete(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexported")
}

func TestDeriveMultiFieldStruct(t *testing.T) {
	sc := &schema.Scalar{Name: "Pair", GoType: reflect.TypeOf(twoFields{})}
	err := schema.Complete(sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no marshal operation")
}

func TestExplicitSlotReplacesDefault(t *testing.T) {
	sc := &schema.Scalar{
		Name:   "Increment",
		GoType: reflect.TypeOf(counter(0)),
		MarshalFn: func(v interface{}) value.Output {
			return value.IntOutput(int32(v.(counter)) + 1)
		},
	}
	require.NoError(t, schema.Complete(sc))

	out := sc.MarshalFn(counter(1))
	i, _ := out.Scalar.AsInt()
	assert.Equal(t, int32(2), i)

	// the other slots still come from the derivation
	v, err := sc.UnmarshalFn(value.ScalarInput(value.Int(1)))
	require.NoError(t, err)
	assert.Equal(t, counter(1), v)
}

func TestRegisterDuplicateName(t *testing.T) {
	s := schema.New()
	require.NoError(t, s.RegisterScalar(&schema.Scalar{Name: "Counter", GoType: reflect.TypeOf(counter(0))}))

	err := s.RegisterScalar(&schema.Scalar{Name: "Counter", GoType: reflect.TypeOf(wrappedCounter{})})
	require.Error(t, err)
	assert.Equal(t, `graphql: type "Counter" registered more than once`, err.Error())
}

func TestRegisterDuplicateGoType(t *testing.T) {
	s := schema.New()
	require.NoError(t, s.RegisterScalar(&schema.Scalar{Name: "A", GoType: reflect.TypeOf(counter(0))}))

	err := s.RegisterScalar(&schema.Scalar{Name: "B", GoType: reflect.TypeOf(counter(0))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `already bound to scalar "A"`)
}

func TestBuiltins(t *testing.T) {
	s := schema.New()
	require.NoError(t, s.RegisterBuiltins())

	for _, name := range []string{"Int", "Float", "String", "Boolean"} {
		typ := s.Resolve(name)
		require.NotNil(t, typ, name)
		assert.Equal(t, "SCALAR", typ.Kind())
		assert.NotNil(t, typ.Description())
	}

	// plain int aliases to Int
	intScalar := s.ScalarFor(reflect.TypeOf(int32(0)))
	require.NotNil(t, intScalar)
	assert.Equal(t, intScalar, s.ScalarFor(reflect.TypeOf(int(0))))

	assert.Nil(t, s.Resolve("Unknown"))
}

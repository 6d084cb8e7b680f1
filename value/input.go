package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// InputKind discriminates the nodes of an input value tree.
type InputKind int

const (
	InputNull InputKind = iota
	InputScalar
	InputList
	InputObject
	InputVariable
	InputEnum
)

// Input is a node of the tree produced by argument and variable
// coercion and consumed by scalar decoders. Exactly the field selected
// by Kind is meaningful.
type Input struct {
	Kind   InputKind
	Scalar Scalar
	List   []Input
	Object map[string]Input
	Name   string // variable or enum name
}

func NullInput() Input              { return Input{Kind: InputNull} }
func ScalarInput(s Scalar) Input    { return Input{Kind: InputScalar, Scalar: s} }
func ListInput(items ...Input) Input {
	return Input{Kind: InputList, List: items}
}
func ObjectInput(fields map[string]Input) Input {
	return Input{Kind: InputObject, Object: fields}
}
func VariableInput(name string) Input { return Input{Kind: InputVariable, Name: name} }
func EnumInput(name string) Input     { return Input{Kind: InputEnum, Name: name} }

func (v Input) IsNull() bool { return v.Kind == InputNull }

// String renders the input as a GraphQL literal for diagnostics.
// Object keys are sorted so the rendering is deterministic.
func (v Input) String() string {
	switch v.Kind {
	case InputNull:
		return "null"
	case InputScalar:
		if s, ok := v.Scalar.AsString(); ok {
			return strconv.Quote(s)
		}
		return v.Scalar.String()
	case InputVariable:
		return "$" + v.Name
	case InputEnum:
		return v.Name
	case InputList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case InputObject:
		keys := make([]string, 0, len(v.Object))
		for k := range v.Object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.Object[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("InputKind(%d)", int(v.Kind))
}

// TypeMismatchError reports an input value whose runtime shape does not
// match the expected primitive kind. Value carries the offending
// input's literal rendering.
type TypeMismatchError struct {
	Expected string
	Value    string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, found: %s", e.Expected, e.Value)
}

// Mismatch builds a TypeMismatchError for v.
func Mismatch(expected string, v Input) *TypeMismatchError {
	return &TypeMismatchError{Expected: expected, Value: v.String()}
}

// Int extracts an int32 from a scalar input.
func (v Input) Int() (int32, error) {
	if v.Kind == InputScalar {
		if i, ok := v.Scalar.AsInt(); ok {
			return i, nil
		}
	}
	return 0, Mismatch("Int", v)
}

// Float extracts a float64 from a scalar input. Integer variants
// qualify.
func (v Input) Float() (float64, error) {
	if v.Kind == InputScalar {
		if f, ok := v.Scalar.AsFloat(); ok {
			return f, nil
		}
	}
	return 0, Mismatch("Float", v)
}

// Str extracts a string from a scalar input.
func (v Input) Str() (string, error) {
	if v.Kind == InputScalar {
		if s, ok := v.Scalar.AsString(); ok {
			return s, nil
		}
	}
	return "", Mismatch("String", v)
}

// Boolean extracts a bool from a scalar input.
func (v Input) Boolean() (bool, error) {
	if v.Kind == InputScalar {
		if b, ok := v.Scalar.AsBoolean(); ok {
			return b, nil
		}
	}
	return false, Mismatch("Boolean", v)
}

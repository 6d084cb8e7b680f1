// Package value defines the wire value model exchanged at the engine
// boundary: the pluggable scalar union, the input and output value
// trees, and raw lexical tokens.
//
// The engine never names a concrete union variant. Everything is
// written against the Scalar capability interface and the Source
// constructor set, so a host application may substitute its own union
// (for example one with a 64-bit integer variant) without touching
// engine internals.
package value

import "strconv"

// Scalar is the minimum capability set of a wire-level primitive value.
// Exactly one of the As* accessors reports true for a given value,
// except that integer variants may also report as floats.
type Scalar interface {
	AsInt() (int32, bool)
	AsFloat() (float64, bool)
	AsString() (string, bool)
	AsBoolean() (bool, bool)

	// String renders the value as text for diagnostics.
	String() string
}

// Int is the default integer variant, int32-range per the GraphQL spec.
type Int int32

func (v Int) AsInt() (int32, bool)     { return int32(v), true }
func (v Int) AsFloat() (float64, bool) { return float64(v), true }
func (v Int) AsString() (string, bool) { return "", false }
func (v Int) AsBoolean() (bool, bool)  { return false, false }
func (v Int) String() string           { return strconv.FormatInt(int64(v), 10) }

// Float is the default floating point variant.
type Float float64

func (v Float) AsInt() (int32, bool)     { return 0, false }
func (v Float) AsFloat() (float64, bool) { return float64(v), true }
func (v Float) AsString() (string, bool) { return "", false }
func (v Float) AsBoolean() (bool, bool)  { return false, false }
func (v Float) String() string           { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// String is the default text variant.
type String string

func (v String) AsInt() (int32, bool)     { return 0, false }
func (v String) AsFloat() (float64, bool) { return 0, false }
func (v String) AsString() (string, bool) { return string(v), true }
func (v String) AsBoolean() (bool, bool)  { return false, false }
func (v String) String() string           { return string(v) }

// Boolean is the default boolean variant.
type Boolean bool

func (v Boolean) AsInt() (int32, bool)     { return 0, false }
func (v Boolean) AsFloat() (float64, bool) { return 0, false }
func (v Boolean) AsString() (string, bool) { return "", false }
func (v Boolean) AsBoolean() (bool, bool)  { return bool(v), true }
func (v Boolean) String() string           { return strconv.FormatBool(bool(v)) }

// Source constructs union values from native primitives. A schema is
// configured with exactly one Source; the engine routes every
// primitive it materializes (literals, variables, defaults) through it.
type Source interface {
	Int(v int32) Scalar
	Float(v float64) Scalar
	String(v string) Scalar
	Boolean(v bool) Scalar
}

// LiteralSource is an optional extension of Source. A union that wants
// to admit lexical literals outside the default ranges (say integers
// beyond int32) implements it and takes over raw token conversion.
type LiteralSource interface {
	Source
	ScalarLiteral(t ScalarToken) (Scalar, error)
}

// DefaultSource produces the default union variants.
type DefaultSource struct{}

func (DefaultSource) Int(v int32) Scalar     { return Int(v) }
func (DefaultSource) Float(v float64) Scalar { return Float(v) }
func (DefaultSource) String(v string) Scalar { return String(v) }
func (DefaultSource) Boolean(v bool) Scalar  { return Boolean(v) }

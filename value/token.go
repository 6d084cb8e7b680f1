package value

import (
	"fmt"
	"strconv"
)

// TokenKind is the lexical class of a scalar literal.
type TokenKind int

const (
	TokenInt TokenKind = iota
	TokenFloat
	TokenString
)

func (k TokenKind) String() string {
	switch k {
	case TokenInt:
		return "Int"
	case TokenFloat:
		return "Float"
	case TokenString:
		return "String"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// ScalarToken is a raw scalar literal as produced by the lexer, before
// any semantic interpretation. Text holds the literal's source text
// with string quoting already stripped.
type ScalarToken struct {
	Kind TokenKind
	Text string
}

func (t ScalarToken) String() string {
	if t.Kind == TokenString {
		return strconv.Quote(t.Text)
	}
	return t.Text
}

// IntTokenRule accepts Int tokens within int32 range. It is the
// default token rule for integer-backed scalars.
func IntTokenRule(t ScalarToken) error {
	if t.Kind != TokenInt {
		return fmt.Errorf("expected Int literal, found %s literal %s", t.Kind, t)
	}
	if _, err := strconv.ParseInt(t.Text, 10, 32); err != nil {
		return fmt.Errorf("Int literal out of range: %s", t.Text)
	}
	return nil
}

// FloatTokenRule accepts Float and Int tokens.
func FloatTokenRule(t ScalarToken) error {
	if t.Kind != TokenFloat && t.Kind != TokenInt {
		return fmt.Errorf("expected Float literal, found %s literal %s", t.Kind, t)
	}
	if _, err := strconv.ParseFloat(t.Text, 64); err != nil {
		return fmt.Errorf("invalid Float literal: %s", t.Text)
	}
	return nil
}

// StringTokenRule accepts String tokens only.
func StringTokenRule(t ScalarToken) error {
	if t.Kind != TokenString {
		return fmt.Errorf("expected String literal, found %s literal %s", t.Kind, t)
	}
	return nil
}

// BooleanTokenRule rejects every scalar token. Boolean literals are
// lexed as the names true and false, never as scalar tokens, so a
// boolean-backed scalar has no acceptable lexical literal here.
func BooleanTokenRule(t ScalarToken) error {
	return fmt.Errorf("expected Boolean literal, found %s literal %s", t.Kind, t)
}

// ScalarFromToken converts a raw literal into a union value. If src
// implements LiteralSource the union performs the conversion itself,
// otherwise the default rules apply: Int tokens must fit int32, Float
// tokens parse as float64 and String tokens are taken verbatim.
func ScalarFromToken(src Source, t ScalarToken) (Scalar, error) {
	if ls, ok := src.(LiteralSource); ok {
		return ls.ScalarLiteral(t)
	}
	switch t.Kind {
	case TokenInt:
		i, err := strconv.ParseInt(t.Text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("Int literal out of range: %s", t.Text)
		}
		return src.Int(int32(i)), nil
	case TokenFloat:
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid Float literal: %s", t.Text)
		}
		return src.Float(f), nil
	case TokenString:
		return src.String(t.Text), nil
	}
	return nil, fmt.Errorf("unknown token kind %d", int(t.Kind))
}

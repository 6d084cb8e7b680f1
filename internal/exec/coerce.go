package exec

import (
	"fmt"
	"math"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/leafql/leafql/value"
)

// tokenForLiteral maps a lexical AST literal onto a ScalarToken. The
// bool result reports whether the value has a token form at all;
// booleans, enums and null do not.
func tokenForLiteral(v *ast.Value) (value.ScalarToken, bool) {
	switch v.Kind {
	case ast.IntValue:
		return value.ScalarToken{Kind: value.TokenInt, Text: v.Raw}, true
	case ast.FloatValue:
		return value.ScalarToken{Kind: value.TokenFloat, Text: v.Raw}, true
	case ast.StringValue, ast.BlockValue:
		return value.ScalarToken{Kind: value.TokenString, Text: v.Raw}, true
	}
	return value.ScalarToken{}, false
}

// inputFromAST coerces a document literal into an input value tree,
// resolving variable references from vars through the active source.
func inputFromAST(src value.Source, v *ast.Value, vars map[string]interface{}) (value.Input, error) {
	switch v.Kind {
	case ast.Variable:
		g, ok := vars[v.Raw]
		if !ok {
			return value.NullInput(), nil
		}
		return inputFromGo(src, g)
	case ast.NullValue:
		return value.NullInput(), nil
	case ast.BooleanValue:
		return value.ScalarInput(src.Boolean(v.Raw == "true")), nil
	case ast.EnumValue:
		return value.EnumInput(v.Raw), nil
	case ast.ListValue:
		items := make([]value.Input, len(v.Children))
		for i, child := range v.Children {
			item, err := inputFromAST(src, child.Value, vars)
			if err != nil {
				return value.NullInput(), err
			}
			items[i] = item
		}
		return value.ListInput(items...), nil
	case ast.ObjectValue:
		fields := make(map[string]value.Input, len(v.Children))
		for _, child := range v.Children {
			f, err := inputFromAST(src, child.Value, vars)
			if err != nil {
				return value.NullInput(), err
			}
			fields[child.Name] = f
		}
		return value.ObjectInput(fields), nil
	}

	tok, ok := tokenForLiteral(v)
	if !ok {
		return value.NullInput(), fmt.Errorf("invalid literal %s", v.String())
	}
	s, err := value.ScalarFromToken(src, tok)
	if err != nil {
		return value.NullInput(), err
	}
	return value.ScalarInput(s), nil
}

// inputFromGo coerces a JSON-shaped variable value. Whole numbers
// become integer scalars so that Int-typed arguments accept them.
func inputFromGo(src value.Source, g interface{}) (value.Input, error) {
	switch g := g.(type) {
	case nil:
		return value.NullInput(), nil
	case bool:
		return value.ScalarInput(src.Boolean(g)), nil
	case string:
		return value.ScalarInput(src.String(g)), nil
	case int:
		return intOrFloatInput(src, int64(g)), nil
	case int32:
		return value.ScalarInput(src.Int(g)), nil
	case int64:
		return intOrFloatInput(src, g), nil
	case float64:
		if g == math.Trunc(g) && g >= math.MinInt32 && g <= math.MaxInt32 {
			return value.ScalarInput(src.Int(int32(g))), nil
		}
		return value.ScalarInput(src.Float(g)), nil
	case []interface{}:
		items := make([]value.Input, len(g))
		for i, item := range g {
			in, err := inputFromGo(src, item)
			if err != nil {
				return value.NullInput(), err
			}
			items[i] = in
		}
		return value.ListInput(items...), nil
	case map[string]interface{}:
		fields := make(map[string]value.Input, len(g))
		for name, item := range g {
			in, err := inputFromGo(src, item)
			if err != nil {
				return value.NullInput(), err
			}
			fields[name] = in
		}
		return value.ObjectInput(fields), nil
	}
	return value.NullInput(), fmt.Errorf("unsupported variable value of type %T", g)
}

func intOrFloatInput(src value.Source, v int64) value.Input {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return value.ScalarInput(src.Int(int32(v)))
	}
	return value.ScalarInput(src.Float(float64(v)))
}

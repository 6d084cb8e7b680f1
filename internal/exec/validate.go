package exec

import (
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/leafql/leafql/errors"
	"github.com/leafql/leafql/internal/schema"
)

// validation walks an operation's selections against the resolver
// types before anything executes. Literal argument tokens are checked
// through the registered bindings here, so a malformed literal rejects
// the whole request instead of surfacing as a field error.
type validation struct {
	schema   *schema.Schema
	doc      *ast.QueryDocument
	maxDepth int
	errs     []*errors.QueryError
}

// Validate checks the operation's selections against the root resolver
// type. It reports token validation failures and depth overruns.
func Validate(s *schema.Schema, doc *ast.QueryDocument, op *ast.OperationDefinition, rootType reflect.Type, maxDepth int) []*errors.QueryError {
	v := &validation{schema: s, doc: doc, maxDepth: maxDepth}
	v.walk(op.SelectionSet, rootType, 1)
	return v.errs
}

func (v *validation) addError(pos *ast.Position, rule, format string, a ...interface{}) {
	err := errors.Errorf(format, a...)
	err.Rule = rule
	if pos != nil {
		err.Locations = []errors.Location{{Line: pos.Line, Column: pos.Column}}
	}
	v.errs = append(v.errs, err)
}

func (v *validation) walk(sels ast.SelectionSet, parent reflect.Type, depth int) {
	if v.maxDepth > 0 && depth > v.maxDepth {
		if len(sels) > 0 {
			pos := selectionPos(sels[0])
			v.addError(pos, "MaxDepthExceeded", "maximum query depth %d exceeded", v.maxDepth)
		}
		return
	}
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			v.walkField(sel, parent, depth)
		case *ast.FragmentSpread:
			if frag := v.doc.Fragments.ForName(sel.Name); frag != nil {
				v.walk(frag.SelectionSet, parent, depth)
			}
		case *ast.InlineFragment:
			v.walk(sel.SelectionSet, parent, depth)
		}
	}
}

func (v *validation) walkField(field *ast.Field, parent reflect.Type, depth int) {
	if isMetaField(field.Name) {
		return
	}
	sig, err := methodForField(parent, field.Name)
	if err != nil {
		// unknown fields surface as field errors at execution time
		return
	}
	if sig.ArgsType != nil {
		v.checkArgs(field, sig.ArgsType)
	}
	if len(field.SelectionSet) > 0 {
		if t := resultType(parent, sig); t != nil {
			v.walk(field.SelectionSet, t, depth+1)
		}
	}
}

func (v *validation) checkArgs(field *ast.Field, argsType reflect.Type) {
	for i := 0; i < argsType.NumField(); i++ {
		sf := argsType.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		arg := field.Arguments.ForName(fieldName(sf.Name))
		if arg == nil {
			continue
		}
		v.checkArgValue(arg.Value, sf.Type)
	}
}

// checkArgValue descends into the argument's literal structure, pairing
// list and object literals with the matching Go shape and handing leaf
// tokens to checkLiteral.
func (v *validation) checkArgValue(val *ast.Value, t reflect.Type) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch val.Kind {
	case ast.Variable, ast.NullValue, ast.BooleanValue, ast.EnumValue, ast.ObjectValue:
		return
	case ast.ListValue:
		if t.Kind() == reflect.Slice && v.schema.ScalarFor(t) == nil {
			for _, child := range val.Children {
				v.checkArgValue(child.Value, t.Elem())
			}
		}
		return
	}
	if t.Kind() == reflect.Slice && v.schema.ScalarFor(t) == nil {
		// single value against a list type validates as its element
		t = t.Elem()
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
	}
	v.checkLiteral(val, t)
}

func (v *validation) checkLiteral(val *ast.Value, t reflect.Type) {
	sc := v.schema.ScalarFor(t)
	if sc == nil || sc.ParseTokenFn == nil {
		return
	}
	tok, ok := tokenForLiteral(val)
	if !ok {
		return
	}
	if err := sc.ParseTokenFn(tok); err != nil {
		v.addError(val.Position, "ValuesOfCorrectType", "invalid value for scalar %q: %s", sc.Name, err)
	}
}

// resultType reports the composite type a field's subselections resolve
// against, or nil when the result is a scalar or otherwise opaque.
func resultType(parent reflect.Type, sig *methodSig) reflect.Type {
	m := parent.Method(sig.Index)
	t := m.Type.Out(0)
	for {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array:
			t = t.Elem()
		case reflect.Struct:
			return reflect.PtrTo(t)
		default:
			return nil
		}
	}
}

func isMetaField(name string) bool {
	return name == "__typename" || name == "__schema" || name == "__type"
}

func selectionPos(sel ast.Selection) *ast.Position {
	switch sel := sel.(type) {
	case *ast.Field:
		return sel.Position
	case *ast.FragmentSpread:
		return sel.Position
	case *ast.InlineFragment:
		return sel.Position
	}
	return nil
}

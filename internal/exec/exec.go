// Package exec evaluates a parsed query document against the schema's
// root resolver. All scalar conversions funnel through the bindings in
// the schema registry; the executor itself never inspects a concrete
// union variant.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/leafql/leafql/errors"
	"github.com/leafql/leafql/internal/schema"
	"github.com/leafql/leafql/introspection"
	"github.com/leafql/leafql/log"
	"github.com/leafql/leafql/trace"
	"github.com/leafql/leafql/value"
)

// Execution evaluates one operation of a parsed document.
type Execution struct {
	Schema    *schema.Schema
	Doc       *ast.QueryDocument
	Operation *ast.OperationDefinition
	Vars      map[string]interface{}
	Root      interface{}
	Logger    log.Logger
	Tracer    trace.Tracer
	Context   context.Context

	errs []*errors.QueryError
}

// Execute runs the operation and returns the serialized response data
// together with the field errors collected along the way.
func (e *Execution) Execute() ([]byte, []*errors.QueryError) {
	root := reflect.ValueOf(e.Root)
	fields := e.execSelections(nil, e.Operation.SelectionSet, root, e.Schema.QueryType.Name, true)

	var buf bytes.Buffer
	writeOutput(&buf, value.ObjectOutput(fields...))
	return buf.Bytes(), e.errs
}

func (e *Execution) addError(err *errors.QueryError) {
	e.errs = append(e.errs, err)
}

func (e *Execution) execSelections(path []interface{}, sels ast.SelectionSet, parent reflect.Value, typeName string, isRoot bool) []value.OutputField {
	var fields []value.OutputField
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if e.skipByDirectives(sel.Directives) {
				continue
			}
			alias := sel.Alias
			if alias == "" {
				alias = sel.Name
			}
			fpath := appendPath(path, alias)
			fields = append(fields, value.OutputField{
				Name:  alias,
				Value: e.resolveField(fpath, sel, parent, typeName, isRoot),
			})
		case *ast.FragmentSpread:
			if frag := e.Doc.Fragments.ForName(sel.Name); frag != nil {
				fields = append(fields, e.execSelections(path, frag.SelectionSet, parent, typeName, isRoot)...)
			}
		case *ast.InlineFragment:
			fields = append(fields, e.execSelections(path, sel.SelectionSet, parent, typeName, isRoot)...)
		}
	}
	return fields
}

func (e *Execution) resolveField(path []interface{}, field *ast.Field, parent reflect.Value, typeName string, isRoot bool) value.Output {
	if field.Name == "__typename" {
		return value.StringOutput(typeName)
	}
	if isRoot {
		switch field.Name {
		case "__schema":
			return e.encode(path, field.SelectionSet, reflect.ValueOf(introspection.WrapSchema(e.Schema)))
		case "__type":
			name := e.typeNameArg(field)
			t := e.Schema.Resolve(name)
			if t == nil {
				return value.NullOutput()
			}
			return e.encode(path, field.SelectionSet, reflect.ValueOf(introspection.WrapType(t)))
		}
	}

	sig, err := methodForField(parent.Type(), field.Name)
	if err != nil {
		e.fieldError(path, field.Position, err)
		return value.NullOutput()
	}

	label := fmt.Sprintf("%s.%s", typeName, field.Name)
	trivial := sig.ArgsType == nil && !sig.HasError
	ctx, finish := e.Tracer.TraceField(e.Context, label, typeName, field.Name, trivial, rawArgs(field))

	result, qerr := e.callResolver(ctx, path, field, parent, sig)
	finish(qerr)
	if qerr != nil {
		e.addError(qerr)
		return value.NullOutput()
	}
	return e.encode(path, field.SelectionSet, result)
}

// typeNameArg coerces the name argument of a __type field.
func (e *Execution) typeNameArg(field *ast.Field) string {
	arg := field.Arguments.ForName("name")
	if arg == nil {
		return ""
	}
	in, err := inputFromAST(e.Schema.Source, arg.Value, e.Vars)
	if err != nil {
		return ""
	}
	name, _ := in.Str()
	return name
}

// callResolver coerces the field's arguments and invokes the resolver
// method. Decode failures and resolver errors are field-local: the
// returned QueryError carries the field's path and sibling fields keep
// resolving.
func (e *Execution) callResolver(ctx context.Context, path []interface{}, field *ast.Field, parent reflect.Value, sig *methodSig) (res reflect.Value, qerr *errors.QueryError) {
	var callArgs []reflect.Value
	if sig.HasContext {
		callArgs = append(callArgs, reflect.ValueOf(ctx))
	}
	if sig.ArgsType != nil {
		argsVal := reflect.New(sig.ArgsType).Elem()
		for i := 0; i < sig.ArgsType.NumField(); i++ {
			sf := sig.ArgsType.Field(i)
			if sf.PkgPath != "" {
				continue
			}
			name := fieldName(sf.Name)
			arg := field.Arguments.ForName(name)
			if arg == nil {
				continue // absent nullable argument, keep the zero value
			}
			in, err := inputFromAST(e.Schema.Source, arg.Value, e.Vars)
			if err == nil {
				err = e.decodeInto(argsVal.Field(i), in)
			}
			if err != nil {
				qerr = errors.Errorf("could not decode argument %q: %s", name, err)
				qerr.ResolverError = err
				qerr.Path = path
				if arg.Position != nil {
					qerr.Locations = []errors.Location{{Line: arg.Position.Line, Column: arg.Position.Column}}
				}
				return reflect.Value{}, qerr
			}
		}
		if sig.ArgsPtr {
			callArgs = append(callArgs, argsVal.Addr())
		} else {
			callArgs = append(callArgs, argsVal)
		}
	}

	// resolver panics must not escape the field
	defer func() {
		if p := recover(); p != nil {
			e.Logger.LogPanic(e.Context, p)
			qerr = errors.Errorf("panic occurred: %v", p)
			qerr.Path = path
			res = reflect.Value{}
		}
	}()

	outs := parent.Method(sig.Index).Call(callArgs)
	if sig.HasError && !outs[1].IsNil() {
		resolverErr := outs[1].Interface().(error)
		qerr = errors.Errorf("%s", resolverErr)
		qerr.ResolverError = resolverErr
		qerr.Path = path
		if field.Position != nil {
			qerr.Locations = []errors.Location{{Line: field.Position.Line, Column: field.Position.Column}}
		}
		return reflect.Value{}, qerr
	}
	return outs[0], nil
}

// decodeInto converts an input value tree into the native Go value dst
// through the scalar binding registered for its type. Pointers express
// nullability; slices apply the list coercion rule (a single value
// becomes a one-element list).
func (e *Execution) decodeInto(dst reflect.Value, in value.Input) error {
	t := dst.Type()
	if t.Kind() == reflect.Ptr {
		if in.IsNull() {
			return nil
		}
		p := reflect.New(t.Elem())
		if err := e.decodeInto(p.Elem(), in); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}
	if in.IsNull() {
		// pointers are the nullability channel; a nil slice is fine too
		if t.Kind() == reflect.Slice && e.Schema.ScalarFor(t) == nil {
			return nil
		}
		return fmt.Errorf("cannot decode null into %s", t)
	}
	if t.Kind() == reflect.Slice && e.Schema.ScalarFor(t) == nil {
		items := in.List
		if in.Kind != value.InputList {
			items = []value.Input{in}
		}
		s := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			if err := e.decodeInto(s.Index(i), item); err != nil {
				return err
			}
		}
		dst.Set(s)
		return nil
	}

	sc := e.Schema.ScalarFor(t)
	if sc == nil {
		return fmt.Errorf("no scalar binding for native type %s", t)
	}
	res, err := sc.UnmarshalFn(in)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(res)
	if rv.Type() != t {
		if !rv.Type().ConvertibleTo(t) {
			return fmt.Errorf("cannot convert %s to %s", rv.Type(), t)
		}
		rv = rv.Convert(t)
	}
	dst.Set(rv)
	return nil
}

// encode turns a resolver result into an output value tree. Registered
// scalar bindings take precedence; pointers express nullability and
// structs resolve their subselections.
func (e *Execution) encode(path []interface{}, sels ast.SelectionSet, v reflect.Value) value.Output {
	if !v.IsValid() {
		return value.NullOutput()
	}
	t := v.Type()

	if sc := e.Schema.ScalarFor(t); sc != nil {
		out, err := e.safeMarshal(sc, v)
		if err != nil {
			qerr := errors.Errorf("%s", err)
			qerr.Path = path
			e.addError(qerr)
			return value.NullOutput()
		}
		return out
	}

	switch t.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return value.NullOutput()
		}
		if t.Elem().Kind() == reflect.Struct && e.Schema.ScalarFor(t.Elem()) == nil {
			return value.ObjectOutput(e.execSelections(path, sels, v, objectTypeName(t.Elem()), false)...)
		}
		return e.encode(path, sels, v.Elem())
	case reflect.Interface:
		if v.IsNil() {
			return value.NullOutput()
		}
		return e.encode(path, sels, v.Elem())
	case reflect.Slice, reflect.Array:
		items := make([]value.Output, v.Len())
		for i := range items {
			items[i] = e.encode(appendPath(path, i), sels, v.Index(i))
		}
		return value.ListOutput(items...)
	case reflect.Struct:
		// make the value addressable so pointer-receiver methods resolve
		p := reflect.New(t)
		p.Elem().Set(v)
		return value.ObjectOutput(e.execSelections(path, sels, p, objectTypeName(t), false)...)
	}

	qerr := errors.Errorf("cannot encode %s as a GraphQL value", t)
	qerr.Path = path
	e.addError(qerr)
	return value.NullOutput()
}

// safeMarshal invokes the binding's encoder. Encoding is total by
// contract, so a panic here is a programming defect: it is logged and
// contained as a field error instead of crashing the request.
func (e *Execution) safeMarshal(sc *schema.Scalar, v reflect.Value) (out value.Output, err error) {
	defer func() {
		if p := recover(); p != nil {
			e.Logger.LogPanic(e.Context, p)
			err = fmt.Errorf("panic occurred: %v", p)
		}
	}()
	return sc.MarshalFn(v.Interface()), nil
}

func (e *Execution) fieldError(path []interface{}, pos *ast.Position, err error) {
	qerr := errors.Errorf("%s", err)
	qerr.Path = path
	if pos != nil {
		qerr.Locations = []errors.Location{{Line: pos.Line, Column: pos.Column}}
	}
	e.addError(qerr)
}

func (e *Execution) skipByDirectives(ds ast.DirectiveList) bool {
	if d := ds.ForName("skip"); d != nil && e.directiveIf(d) {
		return true
	}
	if d := ds.ForName("include"); d != nil && !e.directiveIf(d) {
		return true
	}
	return false
}

func (e *Execution) directiveIf(d *ast.Directive) bool {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false
	}
	in, err := inputFromAST(e.Schema.Source, arg.Value, e.Vars)
	if err != nil {
		return false
	}
	b, _ := in.Boolean()
	return b
}

func rawArgs(field *ast.Field) map[string]interface{} {
	if len(field.Arguments) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(field.Arguments))
	for _, a := range field.Arguments {
		m[a.Name] = a.Value.String()
	}
	return m
}

func appendPath(path []interface{}, elem interface{}) []interface{} {
	p := make([]interface{}, len(path), len(path)+1)
	copy(p, path)
	return append(p, elem)
}

// objectTypeName reports the GraphQL type name of a composite resolver
// value. The introspection wrappers surface under their spec names.
func objectTypeName(t reflect.Type) string {
	if strings.HasSuffix(t.PkgPath(), "leafql/introspection") {
		return "__" + t.Name()
	}
	return t.Name()
}

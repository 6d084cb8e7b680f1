// Package leafql implements a GraphQL execution engine whose scalar
// layer is fully pluggable: native Go types become schema scalars
// through declarative configs, methods from package decode, or
// derivation from the type's wrapped primitive.
package leafql

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/leafql/leafql/errors"
	"github.com/leafql/leafql/internal/exec"
	"github.com/leafql/leafql/internal/schema"
	"github.com/leafql/leafql/introspection"
	"github.com/leafql/leafql/log"
	"github.com/leafql/leafql/trace"
	"github.com/leafql/leafql/value"
)

// Schema is an executable schema: the compiled type registry plus the
// root resolver. It is immutable after BuildSchema and safe for
// concurrent use.
type Schema struct {
	registry *schema.Schema
	root     interface{}

	logger           log.Logger
	tracer           trace.Tracer
	validationTracer trace.ValidationTracer
	maxDepth         int

	scalarDefs []ScalarDef
	source     value.Source
}

// SchemaOpt configures BuildSchema.
type SchemaOpt func(*Schema)

// Scalars registers custom scalar bindings.
func Scalars(defs ...ScalarDef) SchemaOpt {
	return func(s *Schema) {
		s.scalarDefs = append(s.scalarDefs, defs...)
	}
}

// ScalarValues substitutes the scalar value source used to construct
// wire values. The default source produces the variants from package
// value; a custom source can carry a richer union, e.g. 64-bit
// integers.
func ScalarValues(src value.Source) SchemaOpt {
	return func(s *Schema) {
		s.source = src
	}
}

// Logger is used to log panics during query execution. It defaults to
// log.DefaultLogger.
func Logger(logger log.Logger) SchemaOpt {
	return func(s *Schema) {
		s.logger = logger
	}
}

// Tracer is used to trace queries and fields. It defaults to
// trace.NoopTracer.
func Tracer(tracer trace.Tracer) SchemaOpt {
	return func(s *Schema) {
		s.tracer = tracer
	}
}

// ValidationTracer is used to trace validation runs. It defaults to
// trace.NoopValidationTracer.
func ValidationTracer(tracer trace.ValidationTracer) SchemaOpt {
	return func(s *Schema) {
		s.validationTracer = tracer
	}
}

// MaxDepth specifies the maximum field nesting depth in any query.
// The default is 50. A value of 0 disables the check.
func MaxDepth(n int) SchemaOpt {
	return func(s *Schema) {
		s.maxDepth = n
	}
}

// BuildSchema compiles a schema from the root resolver's exported
// methods and the configured scalar bindings. Built-in scalars are
// registered first, so a user scalar colliding with one is rejected. A
// construction error never yields a partial schema.
func BuildSchema(root interface{}, opts ...SchemaOpt) (*Schema, error) {
	s := &Schema{
		root:             root,
		logger:           &log.DefaultLogger{},
		tracer:           trace.NoopTracer{},
		validationTracer: trace.NoopValidationTracer{},
		maxDepth:         50,
		source:           value.DefaultSource{},
	}
	for _, opt := range opts {
		opt(s)
	}

	reg := schema.New()
	reg.Source = s.source
	if err := reg.RegisterBuiltins(); err != nil {
		return nil, err
	}
	if err := registerCommonScalars(reg); err != nil {
		return nil, err
	}
	for _, def := range s.scalarDefs {
		if err := def.define(reg); err != nil {
			return nil, err
		}
	}

	if root == nil {
		return nil, fmt.Errorf("graphql: root resolver must not be nil")
	}
	rootType := reflect.TypeOf(root)
	fields, err := exec.FieldsOf(rootType)
	if err != nil {
		return nil, err
	}
	queryType := &schema.Object{Name: "Query", GoType: rootType, Fields: fields}
	if err := reg.Register(queryType); err != nil {
		return nil, err
	}
	reg.QueryType = queryType

	s.registry = reg
	return s, nil
}

// MustBuildSchema is like BuildSchema but panics on error.
func MustBuildSchema(root interface{}, opts ...SchemaOpt) *Schema {
	s, err := BuildSchema(root, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Response is the result of executing a query.
type Response struct {
	Data   json.RawMessage      `json:"data,omitempty"`
	Errors []*errors.QueryError `json:"errors,omitempty"`
}

// Exec executes the given query with the schema's resolver. Token
// validation runs first; any validation error aborts the request with
// no data.
func (s *Schema) Exec(ctx context.Context, queryString string, operationName string, variables map[string]interface{}) *Response {
	doc, err := parser.ParseQuery(&ast.Source{Input: queryString})
	if err != nil {
		return &Response{Errors: convertGqlError(err)}
	}

	op := doc.Operations.ForName(operationName)
	if op == nil {
		if operationName == "" {
			return &Response{Errors: []*errors.QueryError{errors.Errorf("must provide operation name if query contains multiple operations")}}
		}
		return &Response{Errors: []*errors.QueryError{errors.Errorf("no operation with name %q", operationName)}}
	}
	if op.Operation != ast.Query {
		return &Response{Errors: []*errors.QueryError{errors.Errorf("%s operations are not supported", op.Operation)}}
	}

	finishValidation := s.validationTracer.TraceValidation(ctx)
	validationErrs := exec.Validate(s.registry, doc, op, reflect.TypeOf(s.root), s.maxDepth)
	finishValidation(validationErrs)
	if len(validationErrs) != 0 {
		return &Response{Errors: validationErrs}
	}

	traceCtx, finish := s.tracer.TraceQuery(ctx, queryString, operationName, variables)
	e := &exec.Execution{
		Schema:    s.registry,
		Doc:       doc,
		Operation: op,
		Vars:      variables,
		Root:      s.root,
		Logger:    s.logger,
		Tracer:    s.tracer,
		Context:   traceCtx,
	}
	data, errs := e.Execute()
	finish(errs)

	return &Response{Data: data, Errors: errs}
}

// Validate runs the document checks, token validation included, without
// executing anything.
func (s *Schema) Validate(queryString string) []*errors.QueryError {
	doc, err := parser.ParseQuery(&ast.Source{Input: queryString})
	if err != nil {
		return convertGqlError(err)
	}
	var errs []*errors.QueryError
	for _, op := range doc.Operations {
		errs = append(errs, exec.Validate(s.registry, doc, op, reflect.TypeOf(s.root), s.maxDepth)...)
	}
	return errs
}

// Inspect gives programmatic access to the schema's type metadata.
func (s *Schema) Inspect() *introspection.Schema {
	return introspection.WrapSchema(s.registry)
}

func convertGqlError(err error) []*errors.QueryError {
	var list gqlerror.List
	switch err := err.(type) {
	case gqlerror.List:
		list = err
	case *gqlerror.Error:
		list = gqlerror.List{err}
	default:
		return []*errors.QueryError{errors.Errorf("%s", err)}
	}

	out := make([]*errors.QueryError, len(list))
	for i, gerr := range list {
		qerr := &errors.QueryError{Message: gerr.Message}
		for _, loc := range gerr.Locations {
			qerr.Locations = append(qerr.Locations, errors.Location{Line: loc.Line, Column: loc.Column})
		}
		out[i] = qerr
	}
	return out
}

// Package trace provides tracing hooks around query validation and
// execution.
package trace

import (
	"context"

	"github.com/leafql/leafql/errors"
)

type TraceQueryFinishFunc func([]*errors.QueryError)
type TraceFieldFinishFunc func(*errors.QueryError)

// Tracer is notified at the start of a query and of every non-trivial
// field resolution. Each call returns the context to execute under and
// a finish callback invoked with the errors attributed to that span.
type Tracer interface {
	TraceQuery(ctx context.Context, queryString string, operationName string, variables map[string]interface{}) (context.Context, TraceQueryFinishFunc)
	TraceField(ctx context.Context, label, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, TraceFieldFinishFunc)
}

// ValidationTracer is notified around the document validation phase.
type ValidationTracer interface {
	TraceValidation(ctx context.Context) TraceQueryFinishFunc
}

// NoopTracer is the default tracer. It does nothing.
type NoopTracer struct{}

func (NoopTracer) TraceQuery(ctx context.Context, queryString string, operationName string, variables map[string]interface{}) (context.Context, TraceQueryFinishFunc) {
	return ctx, func([]*errors.QueryError) {}
}

func (NoopTracer) TraceField(ctx context.Context, label, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, TraceFieldFinishFunc) {
	return ctx, func(*errors.QueryError) {}
}

// NoopValidationTracer is the default validation tracer.
type NoopValidationTracer struct{}

func (NoopValidationTracer) TraceValidation(ctx context.Context) TraceQueryFinishFunc {
	return func([]*errors.QueryError) {}
}

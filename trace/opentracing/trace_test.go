package opentracing

import (
	"context"
	"testing"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leafql/leafql/errors"
)

func withMockTracer(t *testing.T) *mocktracer.MockTracer {
	t.Helper()
	mock := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(mock)
	t.Cleanup(func() { opentracing.SetGlobalTracer(prev) })
	return mock
}

func TestTraceQuery(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceQuery(context.Background(), "{ counter }", "Op", map[string]interface{}{"v": 1})
	finish(nil)

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GraphQL request", spans[0].OperationName)
	assert.Equal(t, "{ counter }", spans[0].Tag("graphql.query"))
	assert.Equal(t, "Op", spans[0].Tag("graphql.operationName"))
	assert.Nil(t, spans[0].Tag("error"))
}

func TestTraceQueryWithErrors(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceQuery(context.Background(), "{ counter }", "", nil)
	finish([]*errors.QueryError{
		errors.Errorf("first"),
		errors.Errorf("second"),
	})

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, true, spans[0].Tag("error"))
	assert.Equal(t, "graphql: first (and 1 more errors)", spans[0].Tag("graphql.error"))
}

func TestTraceFieldTrivial(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceField(context.Background(), "Query.counter", "Query", "counter", true, nil)
	finish(nil)

	assert.Empty(t, mock.FinishedSpans())
}

func TestTraceField(t *testing.T) {
	mock := withMockTracer(t)

	_, finish := Tracer{}.TraceField(context.Background(), "Query.counter", "Query", "counter", false, map[string]interface{}{"value": "3"})
	finish(errors.Errorf("bad value"))

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "Query.counter", spans[0].OperationName)
	assert.Equal(t, "Query", spans[0].Tag("graphql.type"))
	assert.Equal(t, "counter", spans[0].Tag("graphql.field"))
	assert.Equal(t, "3", spans[0].Tag("graphql.args.value"))
	assert.Equal(t, true, spans[0].Tag("error"))
}

func TestTraceValidation(t *testing.T) {
	mock := withMockTracer(t)

	finish := Tracer{}.TraceValidation(context.Background())
	finish(nil)

	spans := mock.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "Validate Query", spans[0].OperationName)
}

package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// installSpanRecorder swaps the global tracer provider for one backed by an
// in-memory recorder and restores the original when the test ends.
func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	return sr
}

func attributeMap(attrs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value.AsInterface()
	}
	return m
}

func TestStartSpan(t *testing.T) {
	sr := installSpanRecorder(t)

	t.Run("defaults to an internal span", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "search.products")
		require.NotNil(t, span)
		span.End()

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "search.products", spans[0].Name())
		assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
	})

	t.Run("applies start options", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "catalog.fetch",
			telemetry.WithAttribute(telemetry.SpanAttrTenantID, "tenant-acme"),
			telemetry.WithSpanKind(trace.SpanKindClient),
		)
		span.End()

		spans := sr.Ended()
		recorded := spans[len(spans)-1]
		assert.Equal(t, trace.SpanKindClient, recorded.SpanKind())
		assert.Equal(t, "tenant-acme", attributeMap(recorded.Attributes())[telemetry.SpanAttrTenantID])
	})
}

func TestStartServiceSpan(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "recommendation", "trending")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "recommendation.trending", spans[0].Name())
}

func TestSetAttributes(t *testing.T) {
	sr := installSpanRecorder(t)

	t.Run("records typed pairs", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "search.products")
		telemetry.SetAttributes(span,
			telemetry.SpanAttrQuery, "aviator",
			telemetry.SpanAttrResultCount, 7,
			"cache_hit", true,
		)
		span.End()

		spans := sr.Ended()
		attrs := attributeMap(spans[len(spans)-1].Attributes())
		assert.Equal(t, "aviator", attrs[telemetry.SpanAttrQuery])
		assert.Equal(t, int64(7), attrs[telemetry.SpanAttrResultCount])
		assert.Equal(t, true, attrs["cache_hit"])
	})

	t.Run("drops a trailing unpaired key", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "search.products")
		telemetry.SetAttributes(span,
			telemetry.SpanAttrBrand, "Wayfarer",
			telemetry.SpanAttrCategory, "sunglasses",
			"orphan_key",
		)
		span.End()

		spans := sr.Ended()
		assert.Len(t, spans[len(spans)-1].Attributes(), 2)
	})

	t.Run("skips non-string keys", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "search.products")
		telemetry.SetAttributes(span,
			telemetry.SpanAttrBrand, "Rayban",
			123, "not_a_key",
		)
		span.End()

		spans := sr.Ended()
		assert.Len(t, spans[len(spans)-1].Attributes(), 1)
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		telemetry.SetAttributes(nil, telemetry.SpanAttrBrand, "Aviator")
	})
}

func TestSetAttribute(t *testing.T) {
	sr := installSpanRecorder(t)

	t.Run("string value", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "variant.create")
		telemetry.SetAttribute(span, telemetry.SpanAttrProductSKU, "FRAME-001")
		span.End()

		spans := sr.Ended()
		attrs := attributeMap(spans[len(spans)-1].Attributes())
		assert.Equal(t, "FRAME-001", attrs[telemetry.SpanAttrProductSKU])
	})

	t.Run("stringer value", func(t *testing.T) {
		productID := uuid.New()
		_, span := telemetry.StartSpan(context.Background(), "variant.create")
		telemetry.SetAttribute(span, telemetry.SpanAttrProductID, productID)
		span.End()

		spans := sr.Ended()
		attrs := attributeMap(spans[len(spans)-1].Attributes())
		assert.Equal(t, productID.String(), attrs[telemetry.SpanAttrProductID])
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		telemetry.SetAttribute(nil, "key", "value")
	})
}

func TestRecordError(t *testing.T) {
	sr := installSpanRecorder(t)

	t.Run("marks the span and adds an exception event", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "token.issue")
		telemetry.RecordError(span, errors.New("client lookup failed"))
		span.End()

		spans := sr.Ended()
		recorded := spans[len(spans)-1]
		assert.Equal(t, codes.Error, recorded.Status().Code)
		assert.Equal(t, "client lookup failed", recorded.Status().Description)

		events := recorded.Events()
		require.NotEmpty(t, events)
		assert.Equal(t, "exception", events[0].Name)
	})

	t.Run("nil error leaves the span untouched", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "token.issue")
		telemetry.RecordError(span, nil)
		span.End()

		spans := sr.Ended()
		assert.NotEqual(t, codes.Error, spans[len(spans)-1].Status().Code)
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		telemetry.RecordError(nil, errors.New("ignored"))
	})
}

func TestSetOK(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "search.reindex")
	telemetry.SetOK(span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	assert.NotPanics(t, func() { telemetry.SetOK(nil) })
}

func TestAddEvent(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "recommendation.track_view")
	telemetry.AddEvent(span, "view_recorded",
		telemetry.SpanAttrProductID, "3f8be2a1-5a8e-4f2e-9a35-52a1c4b0f001",
		"rating", 5,
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "view_recorded", events[0].Name)

	attrs := attributeMap(events[0].Attributes)
	assert.Equal(t, "3f8be2a1-5a8e-4f2e-9a35-52a1c4b0f001", attrs[telemetry.SpanAttrProductID])
	assert.Equal(t, int64(5), attrs["rating"])

	assert.NotPanics(t, func() { telemetry.AddEvent(nil, "ignored") })
}

func TestSpanContextHelpers(t *testing.T) {
	installSpanRecorder(t)

	t.Run("SpanFromContext returns a noop span when absent", func(t *testing.T) {
		span := telemetry.SpanFromContext(context.Background())
		assert.NotNil(t, span)
	})

	t.Run("round trip through ContextWithSpan", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "search.products")
		defer span.End()

		ctx := telemetry.ContextWithSpan(context.Background(), span)
		assert.Equal(t, span.SpanContext().SpanID(), telemetry.SpanFromContext(ctx).SpanContext().SpanID())
	})

	t.Run("trace and span IDs", func(t *testing.T) {
		assert.Empty(t, telemetry.GetTraceID(context.Background()))
		assert.Empty(t, telemetry.GetSpanID(context.Background()))

		ctx, span := telemetry.StartSpan(context.Background(), "search.products")
		defer span.End()

		assert.Len(t, telemetry.GetTraceID(ctx), 32)
		assert.Len(t, telemetry.GetSpanID(ctx), 16)
	})
}

func TestNestedSpans(t *testing.T) {
	sr := installSpanRecorder(t)

	ctx, parent := telemetry.StartSpan(context.Background(), "recommendation.similar")
	_, child := telemetry.StartSpan(ctx, "catalog.find_by_category")
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	byName := make(map[string]sdktrace.ReadOnlySpan, len(spans))
	for _, s := range spans {
		byName[s.Name()] = s
	}
	parentSpan, ok := byName["recommendation.similar"]
	require.True(t, ok)
	childSpan, ok := byName["catalog.find_by_category"]
	require.True(t, ok)

	assert.Equal(t, parentSpan.SpanContext().TraceID(), childSpan.SpanContext().TraceID())
	assert.Equal(t, parentSpan.SpanContext().SpanID(), childSpan.Parent().SpanID())
}

func TestAttributeTypes(t *testing.T) {
	sr := installSpanRecorder(t)

	_, span := telemetry.StartSpan(context.Background(), "search.products")
	telemetry.SetAttributes(span,
		"string", "value",
		"int", 42,
		"int64", int64(100),
		"float64", 3.14,
		"bool", true,
		"string_slice", []string{"aviator", "wayfarer"},
		"int_slice", []int{1, 2, 3},
		"int64_slice", []int64{10, 20},
		"float64_slice", []float64{1.1, 2.2},
		"bool_slice", []bool{true, false},
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Attributes(), 10)
}

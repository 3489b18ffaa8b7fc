package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracing_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracing(ctx, &TracingConfig{ServiceName: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp.Tracer() == nil {
		t.Fatal("expected non-nil tracer")
	}
	if err := tp.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestInitTracing_NilConfig(t *testing.T) {
	tp, err := InitTracing(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tp == nil {
		t.Fatal("expected non-nil tracer provider")
	}
}

func TestForceFlush(t *testing.T) {
	ctx := context.Background()

	noop, _ := InitTracing(ctx, nil)
	if err := noop.ForceFlush(ctx); err != nil {
		t.Errorf("no-op ForceFlush() error = %v", err)
	}

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tp := &TracerProvider{provider: provider, tracer: provider.Tracer(TracerName)}
	defer tp.Shutdown(ctx)

	_, span := tp.Tracer().Start(ctx, "api.login")
	span.End()

	if err := tp.ForceFlush(ctx); err != nil {
		t.Fatalf("ForceFlush() error = %v", err)
	}
	if len(recorder.Ended()) != 1 {
		t.Errorf("expected 1 ended span, got %d", len(recorder.Ended()))
	}
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	ctx := context.Background()

	_, llmSpan := StartLLMSpan(ctx, "rest", "gemini-test")
	RecordError(llmSpan, errors.New("upstream failed"))
	llmSpan.End()

	_, opSpan := StartOperationSpan(ctx, "question")
	RecordStatus(opSpan, 500)
	opSpan.End()

	_, storeSpan := StartStoreSpan(ctx, "memory", "get", "config/password")
	RecordError(storeSpan, nil)
	storeSpan.End()

	spans := recorder.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	if spans[0].Name() != "llm.generate" || spans[0].Status().Code != codes.Error {
		t.Errorf("llm span = %s status %v", spans[0].Name(), spans[0].Status().Code)
	}
	if spans[1].Name() != "api.question" || spans[1].Status().Code != codes.Error {
		t.Errorf("operation span = %s status %v", spans[1].Name(), spans[1].Status().Code)
	}
	if spans[2].Name() != "docstore.get" || spans[2].Status().Code == codes.Error {
		t.Errorf("store span = %s status %v", spans[2].Name(), spans[2].Status().Code)
	}
}

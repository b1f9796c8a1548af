// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func restoreGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestInitDisabled(t *testing.T) {
	restoreGlobalProvider(t)

	ctx := context.Background()
	tp, shutdown, err := Init(ctx, Options{Enabled: false})
	if err != nil {
		t.Fatalf("Init(disabled) returned error: %v", err)
	}
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}

	if _, ok := tp.(noop.TracerProvider); !ok {
		t.Errorf("expected noop.TracerProvider, got %T", tp)
	}
}

func TestInitEnabledNoneExporter(t *testing.T) {
	restoreGlobalProvider(t)

	ctx := context.Background()
	tp, shutdown, err := Init(ctx, Options{
		Enabled:      true,
		Exporter:     ExporterNone,
		ServiceName:  "test-service",
		SamplingRate: 1.0,
		Logger:       zap.NewNop().Sugar(),
	})
	if err != nil {
		t.Fatalf("Init(none exporter) returned error: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			t.Errorf("shutdown returned error: %v", err)
		}
	}()

	if _, ok := tp.(*sdktrace.TracerProvider); !ok {
		t.Fatalf("expected *sdktrace.TracerProvider, got %T", tp)
	}
	if otel.GetTracerProvider() != tp {
		t.Error("global TracerProvider was not replaced")
	}

	_, span := tp.Tracer("test").Start(ctx, "probe")
	if !span.SpanContext().IsSampled() {
		t.Error("expected span to be sampled at rate 1.0")
	}
	span.End()
}

func TestInitEnabledStdoutExporter(t *testing.T) {
	restoreGlobalProvider(t)

	ctx := context.Background()
	tp, shutdown, err := Init(ctx, Options{
		Enabled:      true,
		Exporter:     ExporterStdout,
		SamplingRate: 0.5,
	})
	if err != nil {
		t.Fatalf("Init(stdout) returned error: %v", err)
	}
	if tp == nil {
		t.Fatal("TracerProvider is nil")
	}
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown returned error: %v", err)
	}
}

func TestInitInvalidExporter(t *testing.T) {
	_, _, err := Init(context.Background(), Options{
		Enabled:  true,
		Exporter: "otlp",
	})
	if err == nil {
		t.Fatal("expected error for unsupported exporter, got nil")
	}
}

func TestInitSamplingRateOutOfRange(t *testing.T) {
	for _, rate := range []float64{-0.5, 1.5} {
		restoreGlobalProvider(t)

		core, logs := observer.New(zap.WarnLevel)
		ctx := context.Background()
		_, shutdown, err := Init(ctx, Options{
			Enabled:      true,
			Exporter:     ExporterNone,
			SamplingRate: rate,
			Logger:       zap.New(core).Sugar(),
		})
		if err != nil {
			t.Fatalf("Init(rate=%v) returned error: %v", rate, err)
		}
		_ = shutdown(ctx)

		if logs.FilterMessageSnippet("sampling rate out of range").Len() != 1 {
			t.Errorf("expected a warning for sampling rate %v", rate)
		}
	}
}

func TestShutdownIdempotent(t *testing.T) {
	restoreGlobalProvider(t)

	ctx := context.Background()
	_, shutdown, err := Init(ctx, Options{Enabled: true, Exporter: ExporterNone})
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if err := shutdown(ctx); err != nil {
		t.Fatalf("first shutdown returned error: %v", err)
	}
	// sdktrace.TracerProvider.Shutdown is safe to call twice.
	if err := shutdown(ctx); err != nil {
		t.Errorf("second shutdown returned error: %v", err)
	}
}

package xlookup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/omeyang/xoui/pkg/observability/xmetrics"
	"github.com/omeyang/xoui/pkg/oui/xsource"
)

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string, want attribute.KeyValue) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(want.Key); ok && v == want.Value {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestMetrics_LookupAndRefresh(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	obs, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp), xmetrics.WithTracerProvider(tp))
	require.NoError(t, err)
	counter, err := xmetrics.NewOTelCounter("xoui.lookup.total", "lookups by result", xmetrics.WithMeterProvider(mp))
	require.NoError(t, err)

	s := newService(t,
		WithFetcher(xsource.NewStaticFetcher(testRegistry)),
		WithObserver(obs),
		WithLookupCounter(counter),
	)

	ctx := context.Background()
	s.Lookup(ctx, "30:23:03:00:00:01")
	s.Lookup(ctx, "00:1B:63:00:00:01")
	s.Lookup(ctx, "02:00:00:00:00:01")
	s.Lookup(ctx, "nope")

	assert.Equal(t, int64(2), collectSum(t, reader, "xoui.lookup.total", attribute.String("result", "vendor")))
	assert.Equal(t, int64(1), collectSum(t, reader, "xoui.lookup.total", attribute.String("result", "private")))
	assert.Equal(t, int64(1), collectSum(t, reader, "xoui.lookup.total", attribute.String("result", "no_match")))

	assert.Equal(t, int64(1), collectSum(t, reader, "xoui.operation.total", attribute.String("operation", "update")))
	assert.Equal(t, int64(1), collectSum(t, reader, "xoui.operation.total", attribute.String("operation", "fetch")))

	names := make([]string, 0)
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.Contains(t, names, "xlookup.update")
	assert.Contains(t, names, "xlookup.fetch")
}

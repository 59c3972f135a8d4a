package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"github.com/horologe/storefront/internal/infrastructure/config"
)

func TestConfigFrom(t *testing.T) {
	tc := config.TelemetryConfig{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		SamplingRatio:     0.25,
		ServiceName:       "storefront",
		Insecure:          true,
	}

	cfg := ConfigFrom(tc, "1.2.3")
	assert.Equal(t, Config{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		SamplingRatio:     0.25,
		ServiceName:       "storefront",
		ServiceVersion:    "1.2.3",
		Insecure:          true,
	}, cfg)

	mc := MetricsConfigFrom(cfg)
	assert.True(t, mc.Enabled)
	assert.Equal(t, "otel:4317", mc.CollectorEndpoint)

	assert.False(t, LogsConfigFrom(cfg, false).Enabled)
	assert.True(t, LogsConfigFrom(cfg, true).Enabled)
	cfg.Enabled = false
	assert.False(t, LogsConfigFrom(cfg, true).Enabled)
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), samplerFor(0).Description())
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased{0.5}")
}

func TestProviders_Disabled(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	tp, err := NewTracerProvider(ctx, Config{ServiceName: "test"}, logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.IsSpanProfilesEnabled())
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, MetricsConfig{ServiceName: "test"}, logger)
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("x"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, LogsConfig{ServiceName: "test"}, logger)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.ForceFlush(ctx))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestNewZapOTELCore_DisabledIsNop(t *testing.T) {
	core := NewZapOTELCore(ZapBridgeConfig{ServiceName: "test"})
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestLevelFilterCore(t *testing.T) {
	inner := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{}),
		zapcore.AddSync(&nopWriter{}),
		zapcore.DebugLevel,
	)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}

	assert.False(t, core.Enabled(zapcore.InfoLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))
	assert.Nil(t, core.Check(zapcore.Entry{Level: zapcore.InfoLevel}, nil))
	assert.NotNil(t, core.Check(zapcore.Entry{Level: zapcore.WarnLevel}, nil))

	with := core.With(nil)
	assert.False(t, with.Enabled(zapcore.InfoLevel))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

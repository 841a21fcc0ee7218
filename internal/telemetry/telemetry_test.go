package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
)

func TestInit(t *testing.T) {
	t.Run("Disabled telemetry touches nothing", func(t *testing.T) {
		// Given: telemetry switched off
		path := filepath.Join(t.TempDir(), "traces.json")

		// When: initialising it
		shutdown, err := Init(config.Telemetry{Enabled: false, File: path})

		// Then: shutdown is a no-op and no file is created
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
		assert.NoFileExists(t, path)
	})

	t.Run("Enabled telemetry writes spans and metrics to the file", func(t *testing.T) {
		previousTracer, previousMeter := otel.GetTracerProvider(), otel.GetMeterProvider()
		t.Cleanup(func() {
			otel.SetTracerProvider(previousTracer)
			otel.SetMeterProvider(previousMeter)
		})

		// Given: telemetry pointed at a temp file
		path := filepath.Join(t.TempDir(), "traces.json")
		shutdown, err := Init(config.Telemetry{Enabled: true, File: path})
		require.NoError(t, err)

		// When: a span and a counter are recorded and the providers shut down
		ctx, span := otel.Tracer("test").Start(context.Background(), "bot.MakeTurn")
		counter, err := otel.Meter("test").Int64Counter("bot.moves")
		require.NoError(t, err)
		counter.Add(ctx, 1)
		span.End()
		require.NoError(t, shutdown(context.Background()))

		// Then: the span, the counter and the service name are in the file
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "bot.MakeTurn")
		assert.Contains(t, string(data), "bot.moves")
		assert.Contains(t, string(data), serviceName)
	})

	t.Run("Unwritable file is reported", func(t *testing.T) {
		_, err := Init(config.Telemetry{Enabled: true, File: filepath.Join(t.TempDir(), "missing", "traces.json")})

		require.Error(t, err)
	})
}

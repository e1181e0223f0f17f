package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndExtractRequestID(t *testing.T) {
	assert.Equal(t, "abc-123", ValidateAndExtractRequestID("abc-123"))
	assert.Equal(t, "abc-123", ValidateAndExtractRequestID("  abc-123 "))

	for _, input := range []string{"", "has space", "semi;colon", string(bytes.Repeat([]byte("a"), 129))} {
		got := ValidateAndExtractRequestID(input)
		_, err := uuid.Parse(got)
		assert.NoError(t, err, "input %q", input)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
}

func TestHandlerAddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerConfig{
		Service:       ServiceInfo{Name: "focus", Version: "v1"},
		Environment:   EnvProd,
		DefaultModule: Module("focus-assistant"),
		Level:         slog.LevelInfo,
	}))

	ctx := WithModule(WithRequestID(context.Background(), "req-9"), Module("notes"))
	logger.With(slog.String("component", "test")).InfoContext(ctx, "hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "focus", entry["service"])
	assert.Equal(t, "req-9", entry["request_id"])
	assert.Equal(t, "notes", entry["module"])
	assert.Equal(t, "test", entry["component"])
}

func TestHandlerDefaultModuleAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, HandlerConfig{
		Environment:   EnvProd,
		DefaultModule: Module("focus-assistant"),
		Level:         slog.LevelWarn,
	}))

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "focus-assistant", entry["module"])
	assert.NotContains(t, entry, "request_id")
}

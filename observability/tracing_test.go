package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitTracerExportsSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracer("hotel-tracker-test", "test", &buf)
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "BookRoom")
	span.End()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"BookRoom"`)
	assert.Contains(t, buf.String(), "hotel-tracker-test")
}

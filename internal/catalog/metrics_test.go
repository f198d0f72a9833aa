package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/averlon/catalog-api/internal/domain/product"
)

func TestTelemetrySink(t *testing.T) {
	sink, err := NewTelemetrySink(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		sink.Record(context.Background(), CreationMetrics{
			OperationID:        "a1b2c3d4",
			ProductName:        "Ceramic Vase",
			SKU:                "CV-VASE-10",
			Category:           product.CategoryHome,
			ValidationDuration: 3 * time.Millisecond,
			TotalDuration:      5 * time.Millisecond,
			Success:            false,
			ErrorReason:        "Home products must have a maximum price of $200.00.",
		})
	})
}

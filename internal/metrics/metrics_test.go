package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSettlement(2, 3*time.Millisecond)
	m.ObserveSettlement(0, time.Millisecond)
	m.ObserveFailure(ResultInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Computations().WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations().WithLabelValues(ResultInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Computations().WithLabelValues(ResultError)))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"splitwiser_settlement_computations_total",
		"splitwiser_settlement_transfers",
		"splitwiser_settlement_duration_seconds",
	}, names)
}

func TestNewWithoutRegistry(t *testing.T) {
	m := New(nil)
	m.ObserveFailure(ResultError)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Computations().WithLabelValues(ResultError)))
}

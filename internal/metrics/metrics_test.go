package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Polls.WithLabelValues(ResultOK).Inc()
	m.StageChanges.WithLabelValues("eskom").Add(2)
	m.CurrentStage.WithLabelValues("eskom").Set(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Polls.WithLabelValues(ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StageChanges.WithLabelValues("eskom")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CurrentStage.WithLabelValues("eskom")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestNewAPIRegistersUpstreamCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAPI(reg)

	m.Upstream.WithLabelValues("status", ResultError).Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Upstream.WithLabelValues("status", ResultError)))

	// Independent of the watcher instruments.
	assert.NotPanics(t, func() { New(reg) })
}

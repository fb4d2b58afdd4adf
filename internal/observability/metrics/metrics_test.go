package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func gatherValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mf := gatherFamily(t, reg, name)
	if mf == nil {
		return 0
	}
	total := 0.0
	for _, m := range mf.GetMetric() {
		if c := m.GetCounter(); c != nil {
			total += c.GetValue()
		}
		if h := m.GetHistogram(); h != nil {
			total += float64(h.GetSampleCount())
		}
	}
	return total
}

func TestChatMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewChatMetrics(reg)

	m.ObserveTurn("text", 0.02)
	m.ObserveTurn("properties", 0.05)
	m.ObserveSessionStarted()
	m.ObserveReset()

	assert.Equal(t, 2.0, gatherValue(t, reg, "realty_chat_turns_total"))
	assert.Equal(t, 2.0, gatherValue(t, reg, "realty_chat_turn_latency_seconds"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "realty_chat_sessions_started_total"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "realty_chat_session_resets_total"))
}

func TestBookingMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveSubmission("api", true)
	m.ObserveSubmission("chat", true)
	m.ObserveSubmission("api", false)
	m.ObserveConflict()

	assert.Equal(t, 3.0, gatherValue(t, reg, "realty_bookings_submitted_total"))
	assert.Equal(t, 1.0, gatherValue(t, reg, "realty_bookings_calendar_conflicts_total"))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var chat *ChatMetrics
	var bookings *BookingMetrics

	assert.NotPanics(t, func() {
		chat.ObserveTurn("text", 0.1)
		chat.ObserveSessionStarted()
		chat.ObserveReset()
		bookings.ObserveSubmission("api", true)
		bookings.ObserveConflict()
	})
}

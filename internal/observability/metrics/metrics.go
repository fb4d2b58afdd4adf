package metrics

import "github.com/prometheus/client_golang/prometheus"

// ChatMetrics exposes counters/histograms for assistant conversation turns.
type ChatMetrics struct {
	turnsTotal      *prometheus.CounterVec
	turnLatency     *prometheus.HistogramVec
	sessionsStarted prometheus.Counter
	resetsTotal     prometheus.Counter
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realty",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total assistant conversation turns",
		}, []string{"reply_kind"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "realty",
			Subsystem: "chat",
			Name:      "turn_latency_seconds",
			Help:      "Latency of assistant turn processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"reply_kind"}),
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realty",
			Subsystem: "chat",
			Name:      "sessions_started_total",
			Help:      "Total new chat sessions",
		}),
		resetsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realty",
			Subsystem: "chat",
			Name:      "session_resets_total",
			Help:      "Total chat session resets",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.turnLatency, m.sessionsStarted, m.resetsTotal)
	return m
}

func (m *ChatMetrics) ObserveTurn(replyKind string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(replyKind).Inc()
	m.turnLatency.WithLabelValues(replyKind).Observe(seconds)
}

func (m *ChatMetrics) ObserveSessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

func (m *ChatMetrics) ObserveReset() {
	if m == nil {
		return
	}
	m.resetsTotal.Inc()
}

// BookingMetrics exposes counters for booking submissions.
type BookingMetrics struct {
	submittedTotal *prometheus.CounterVec
	conflictsTotal prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "realty",
			Subsystem: "bookings",
			Name:      "submitted_total",
			Help:      "Total booking submissions",
		}, []string{"source", "status"}),
		conflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "realty",
			Subsystem: "bookings",
			Name:      "calendar_conflicts_total",
			Help:      "Total bookings that overlapped an existing calendar event",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submittedTotal, m.conflictsTotal)
	return m
}

func (m *BookingMetrics) ObserveSubmission(source string, accepted bool) {
	if m == nil {
		return
	}
	status := "accepted"
	if !accepted {
		status = "rejected"
	}
	m.submittedTotal.WithLabelValues(source, status).Inc()
}

func (m *BookingMetrics) ObserveConflict() {
	if m == nil {
		return
	}
	m.conflictsTotal.Inc()
}

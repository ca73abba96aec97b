package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type SagaMetrics struct {
	EventsPublished *prometheus.CounterVec
	Reservations    *prometheus.CounterVec
}

func NewSagaMetrics() *SagaMetrics {
	eventsPublished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "events_published_total",
		Help:      "Total number of saga events published.",
	}, []string{"event"})
	reservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shop",
		Name:      "stock_reservations_total",
		Help:      "Reservation decisions by outcome.",
	}, []string{"outcome"})

	prometheus.MustRegister(eventsPublished, reservations)
	return &SagaMetrics{EventsPublished: eventsPublished, Reservations: reservations}
}

func (m *SagaMetrics) EventPublished(event string) {
	m.EventsPublished.WithLabelValues(event).Inc()
}

func (m *SagaMetrics) ReservationDecided(outcome string) {
	m.Reservations.WithLabelValues(outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}

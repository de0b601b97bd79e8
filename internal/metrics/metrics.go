package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "procurement",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route, method and status code.",
	}, []string{"route", "method", "code"})

	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "procurement",
		Subsystem: "analysis",
		Name:      "runs_total",
		Help:      "Proposal ranking runs by category.",
	}, []string{"category"})

	statusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "procurement",
		Subsystem: "workflow",
		Name:      "status_transitions_total",
		Help:      "Proposal status transitions.",
	}, []string{"from", "to"})

	notificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "procurement",
		Subsystem: "notifications",
		Name:      "stored_total",
		Help:      "Stored user notifications.",
	})

	distanceLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "procurement",
		Subsystem: "distance",
		Name:      "lookups_total",
		Help:      "Distance resolver lookups by outcome.",
	}, []string{"outcome"})
)

// CollectRequest фиксирует длительность обработки HTTP запроса.
func CollectRequest(route, method string, code int, seconds float64) {
	requestDuration.WithLabelValues(route, method, strconv.Itoa(code)).Observe(seconds)
}

// CollectAnalysisRun фиксирует запуск анализа предложений.
func CollectAnalysisRun(category string) {
	analysesTotal.WithLabelValues(category).Inc()
}

// CollectStatusTransition фиксирует переход статуса предложения.
func CollectStatusTransition(from, to string) {
	statusTransitionsTotal.WithLabelValues(from, to).Inc()
}

// CollectNotification фиксирует сохранённое уведомление.
func CollectNotification() {
	notificationsTotal.Inc()
}

// CollectDistanceLookup фиксирует результат запроса расстояния.
func CollectDistanceLookup(outcome string) {
	distanceLookupsTotal.WithLabelValues(outcome).Inc()
}

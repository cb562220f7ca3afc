// Package metrics provides Prometheus metrics for the bot.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the bot's Prometheus registry. All methods are safe to call on
// a nil Manager, which makes metrics strictly optional at the call sites.
type Manager struct {
	registry *prometheus.Registry

	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	apiRequests     *prometheus.CounterVec
	apiDuration     *prometheus.HistogramVec
}

func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Manager{
		registry: registry,
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schnose",
			Subsystem: "bot",
			Name:      "commands_total",
			Help:      "Slash command invocations by command and outcome.",
		}, []string{"command", "status"}),
		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schnose",
			Subsystem: "bot",
			Name:      "command_duration_seconds",
			Help:      "Slash command handling duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"command"}),
		apiRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schnose",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream API requests by service, path and status code.",
		}, []string{"service", "path", "status"}),
		apiDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schnose",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Upstream API request duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "path"}),
	}
}

// ObserveCommand records one slash command invocation.
func (m *Manager) ObserveCommand(command, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command, status).Inc()
	m.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// ObserveAPIRequest records one upstream HTTP request.
func (m *Manager) ObserveAPIRequest(service, path string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(service, path, strconv.Itoa(statusCode)).Inc()
	m.apiDuration.WithLabelValues(service, path).Observe(elapsed.Seconds())
}

// Handler exposes the registry for a /metrics listener.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics live on a private registry so several servers can run in one process
type metrics struct {
	registry       *prometheus.Registry
	logins         *prometheus.CounterVec
	forcedLogouts  *prometheus.CounterVec
	guardRedirects *prometheus.CounterVec
	backendErrors  *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskflow",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		forcedLogouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskflow",
			Name:      "forced_logouts_total",
			Help:      "Sessions ended because the backend answered 401.",
		}, []string{"method"}),
		guardRedirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskflow",
			Name:      "guard_redirects_total",
			Help:      "Navigations redirected by the route guard, by reason.",
		}, []string{"reason"}),
		backendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskflow",
			Name:      "backend_errors_total",
			Help:      "Backend failures shown to users, by kind.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.logins,
		m.forcedLogouts,
		m.guardRedirects,
		m.backendErrors,
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *metrics) login(result string) {
	m.logins.WithLabelValues(result).Inc()
}

// forcedLogout matches the gateway's unauthorized hook
func (m *metrics) forcedLogout(method, _ string) {
	m.forcedLogouts.WithLabelValues(method).Inc()
}

func (m *metrics) guardRedirect(reason string) {
	m.guardRedirects.WithLabelValues(reason).Inc()
}

func (m *metrics) backendError(kind string) {
	m.backendErrors.WithLabelValues(kind).Inc()
}

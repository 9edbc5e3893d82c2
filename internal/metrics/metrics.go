// Package metrics exposes Prometheus instrumentation for the realtime
// broadcast path.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the broadcast counters and subscriber gauge on a
// private registry so tests can create collectors without hitting the
// global default registry's duplicate-registration panic.
type Collector struct {
	registry *prometheus.Registry

	BroadcastsTotal     prometheus.Counter
	BroadcastDropsTotal prometheus.Counter
	Subscribers         prometheus.Gauge
}

// NewCollector constructs a Collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		BroadcastsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fms",
			Subsystem: "realtime",
			Name:      "broadcasts_total",
			Help:      "Trip status broadcasts published to subscriber groups.",
		}),
		BroadcastDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fms",
			Subsystem: "realtime",
			Name:      "broadcast_drops_total",
			Help:      "Broadcast messages dropped because a subscriber's send buffer was full.",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fms",
			Subsystem: "realtime",
			Name:      "subscribers",
			Help:      "Currently connected websocket subscribers across all trips.",
		}),
	}

	c.registry.MustRegister(c.BroadcastsTotal, c.BroadcastDropsTotal, c.Subscribers)
	return c
}

// Handler returns the HTTP handler serving the collector's registry in the
// Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

package provenanceapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/provgraph/conflict"
	"github.com/c360studio/provgraph/provenance"
)

// metrics holds the Prometheus instruments for a provenance-api instance.
// Each component owns its registry so multiple instances (and parallel
// tests) never collide on registration.
type metrics struct {
	registry *prometheus.Registry

	evaluations *prometheus.CounterVec
	violations  prometheus.Counter
	warnings    prometheus.Counter
	graphNodes  *prometheus.GaugeVec
	graphEdges  *prometheus.GaugeVec
	ingested    *prometheus.CounterVec
	reloads     *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "evaluations_total",
			Help:      "Change evaluations by resulting risk level.",
		}, []string{"risk_level"}),
		violations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "violations_total",
			Help:      "Hard constraint violations reported by evaluations.",
		}),
		warnings: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "warnings_total",
			Help:      "Soft constraint warnings reported by evaluations.",
		}),
		graphNodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "graph_nodes",
			Help:      "Nodes in the current snapshot per team.",
		}, []string{"team"}),
		graphEdges: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "graph_edges",
			Help:      "Edges in the current snapshot per team.",
		}, []string{"team"}),
		ingested: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "ingested_entities_total",
			Help:      "Ingested entities by kind and outcome.",
		}, []string{"kind", "outcome"}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "provgraph",
			Subsystem: "api",
			Name:      "data_reloads_total",
			Help:      "Data file reloads by outcome.",
		}, []string{"outcome"}),
	}
}

// handler serves the component's registry in Prometheus text format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observeReport records the outcome of a single change evaluation.
func (m *metrics) observeReport(report *conflict.ConflictReport) {
	m.evaluations.WithLabelValues(string(report.RiskLevel)).Inc()
	m.violations.Add(float64(len(report.Violations())))
	m.warnings.Add(float64(len(report.Warnings())))
}

// observeGraph records snapshot sizes for a team.
func (m *metrics) observeGraph(team string, g *provenance.Graph) {
	m.graphNodes.WithLabelValues(team).Set(float64(len(g.Nodes)))
	m.graphEdges.WithLabelValues(team).Set(float64(len(g.Edges)))
}

// recordIngest counts one ingested entity.
func (m *metrics) recordIngest(kind, outcome string) {
	m.ingested.WithLabelValues(kind, outcome).Inc()
}

// recordReload counts one data file reload.
func (m *metrics) recordReload(outcome string) {
	m.reloads.WithLabelValues(outcome).Inc()
}

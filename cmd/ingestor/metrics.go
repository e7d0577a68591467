package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/predatorx7/thoth/pkg/broker"
	"github.com/predatorx7/thoth/pkg/model"
)

const metricsNamespace = "thoth"

var receivedEnvelopes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: metricsNamespace,
	Subsystem: "ingestor",
	Name:      "envelopes_received_total",
	Help:      "Envelopes accepted, by log type.",
}, []string{"type"})

var rejectedEnvelopes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: metricsNamespace,
	Subsystem: "ingestor",
	Name:      "envelopes_rejected_total",
	Help:      "Envelopes refused, by reason.",
}, []string{"reason"})

func registerMetrics(reg prometheus.Registerer, b broker.Broker) {
	reg.MustRegister(receivedEnvelopes, rejectedEnvelopes)
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "broker",
			Name:      "records_ingested_total",
			Help:      "Records published to the broker.",
		}, func() float64 {
			ingested, _ := b.Stats()
			return float64(ingested)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "broker",
			Name:      "records_dropped_total",
			Help:      "Records dropped because a subscriber buffer was full.",
		}, func() float64 {
			_, dropped := b.Stats()
			return float64(dropped)
		}),
	)

	for _, t := range model.LogTypes {
		receivedEnvelopes.WithLabelValues(string(t)).Add(0)
	}
	for _, reason := range []string{"missing_key", "invalid_key", "bad_payload", "bad_envelope", "broker"} {
		rejectedEnvelopes.WithLabelValues(reason).Add(0)
	}
}

package graphql

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_graphql_operations_total",
			Help: "Total number of GraphQL operations sent to the content API",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_graphql_operation_duration_seconds",
			Help:    "Duration of GraphQL operations sent to the content API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(operationsTotal, operationDuration)
}

// Outcome label values.
const (
	outcomeOK        = "ok"
	outcomeGraphQL   = "graphql_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricGridRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grid_rendered_total",
			Help: "Number of grids rendered, by output format",
		},
		[]string{"format"},
	)

	MetricGridRenderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grid_render_latency_seconds",
			Help:    "Time spent rendering a grid, by output format",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	MetricDeletionVetoes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deletion_vetoes_total",
			Help: "Number of deletions refused by a deletion handler",
		},
		[]string{"handler", "kind"},
	)
)

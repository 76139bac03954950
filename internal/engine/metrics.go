package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	engineLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_engine_loads_total",
		Help: "total number of engine constructions by status",
	}, []string{"engine", "lang", "status"})
	engineLoadHist = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ocr_engine_load_duration_seconds",
		Help:    "histogram of engine construction times",
		Buckets: prometheus.ExponentialBucketsRange(0.01, 120, 20),
	}, []string{"engine"})
	enginesLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ocr_engines_loaded",
		Help: "number of engines currently held by the pool",
	})
)

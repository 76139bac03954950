package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_requests_total",
		Help: "total number of recognize calls by status and language",
	}, []string{"status", "lang"})
	requestHist = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ocr_request_duration_seconds",
		Help:    "histogram of recognize call times",
		Buckets: prometheus.ExponentialBucketsRange(0.005, 60, 20),
	}, []string{"status"})
	linesRecognized = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ocr_lines_recognized",
		Help:    "number of text lines returned per successful call",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)

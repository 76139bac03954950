package grpcserver

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var (
	handled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ocr_grpc_handled_total",
		Help: "total number of completed rpcs by method and status code",
	}, []string{"method", "code"})
	handlingHist = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ocr_grpc_handling_seconds",
		Help:    "histogram of rpc handling times",
		Buckets: prometheus.ExponentialBucketsRange(0.001, 60, 20),
	}, []string{"method"})
)

func metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	handled.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	handlingHist.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	return resp, err
}

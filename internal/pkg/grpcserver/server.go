package grpcserver

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/cp25sy5-modjot/ocr-service/internal/pkg/logger"
)

type Options struct {
	// Workers sets grpc.NumStreamWorkers, 0 keeps a goroutine per stream.
	Workers        int
	MaxRecvMsgSize int
	Log            zerolog.Logger
}

type Server struct {
	addr   string
	mu     sync.Mutex
	lis    net.Listener
	Server *grpc.Server
	Health *health.Server

	calls *inflight
	log   zerolog.Logger
}

func New(addr string, opts Options) *Server {
	log := opts.Log.With().Str("component", "grpc").Logger()
	calls := newInflight()

	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			calls.interceptor,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
				log.Error().Interface("panic", p).Msg("recovered from panic")
				return status.Errorf(codes.Internal, "panic: %v", p)
			})),
			metricsInterceptor,
			logging.UnaryServerInterceptor(logger.InterceptorLogger(log),
				logging.WithLogOnEvents(logging.StartCall, logging.FinishCall)),
		),
	}
	if opts.Workers > 0 {
		serverOpts = append(serverOpts, grpc.NumStreamWorkers(uint32(opts.Workers)))
	}
	if opts.MaxRecvMsgSize > 0 {
		serverOpts = append(serverOpts, grpc.MaxRecvMsgSize(opts.MaxRecvMsgSize))
	}

	s := grpc.NewServer(serverOpts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return &Server{
		addr:   addr,
		Server: s,
		Health: hs,
		calls:  calls,
		log:    log,
	}
}

// SetServing marks the named services, and the server as a whole, as serving
// or not.
func (s *Server) SetServing(serving bool, services ...string) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.Health.SetServingStatus("", st)
	for _, name := range services {
		s.Health.SetServingStatus(name, st)
	}
}

func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	s.lis = lis
	s.mu.Unlock()
	return s.Server.Serve(lis)
}

// Stop closes all connections immediately; in-flight calls are cancelled.
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.Server.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

// Serving reports the overall health status.
func (s *Server) Serving() bool {
	resp, err := s.Health.Check(context.Background(), &healthpb.HealthCheckRequest{})
	return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
}

// Shutdown turns away new calls and waits up to grace for the running ones
// to finish. Calls still running after grace are cancelled by Stop; their
// handlers are not waited for.
func (s *Server) Shutdown(grace time.Duration) {
	if grace <= 0 {
		s.Stop()
		return
	}
	idle := s.calls.drain()
	s.Health.Shutdown()

	t := time.NewTimer(grace)
	defer t.Stop()
	select {
	case <-idle:
	case <-t.C:
		s.log.Warn().Dur("grace", grace).Msg("calls still running after grace period, stopping")
		s.Stop()
		return
	}
	// nothing is left in a handler, so this only flushes responses
	s.Server.GracefulStop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	ocrv1 "github.com/cp25sy5-modjot/ocr-service/gen/go/ocr"
	"github.com/cp25sy5-modjot/ocr-service/internal/adapters/grpc"
	"github.com/cp25sy5-modjot/ocr-service/internal/adapters/ocr"
	"github.com/cp25sy5-modjot/ocr-service/internal/config"
	"github.com/cp25sy5-modjot/ocr-service/internal/domain"
	"github.com/cp25sy5-modjot/ocr-service/internal/engine"
	"github.com/cp25sy5-modjot/ocr-service/internal/pkg/grpcserver"
	"github.com/cp25sy5-modjot/ocr-service/internal/pkg/logger"
	"github.com/cp25sy5-modjot/ocr-service/internal/pkg/metricsserver"
	"github.com/cp25sy5-modjot/ocr-service/internal/ports"
	"github.com/cp25sy5-modjot/ocr-service/internal/usecase"
)

func serve(c *cli.Context) error {
	cfg, err := config.FromCLI(c)
	if err != nil {
		return err
	}
	log := logger.New(logger.Options{Debug: cfg.Debug, Format: cfg.LogFormat})

	// Adapters (infrastructure)
	factory, err := ocr.NewFactory(cfg)
	if err != nil {
		return err
	}
	pool, err := engine.NewPool(factory, cfg.MaxEngines, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close engines")
		}
	}()

	// Application service (use cases)
	svc := usecase.NewOCRService(pool, usecase.Options{
		DefaultLang:   domain.ParseLanguage(cfg.DefaultLang, "de"),
		MaxConcurrent: cfg.MaxConcurrentRecognitions,
		MaxPixels:     cfg.MaxImagePixels,
		MinConfidence: cfg.MinConfidence,
	}, log)

	// gRPC server (interface adapter)
	s := grpcserver.New(cfg.GRPCAddr, grpcserver.Options{
		Workers:        cfg.GRPCWorkers,
		MaxRecvMsgSize: cfg.MaxImageBytes,
		Log:            log,
	})
	grpc.RegisterOCRServer(s.Server, svc)

	var health ports.HealthPort = svc
	name := ocrv1.OCRService_ServiceDesc.ServiceName
	healthy := true
	if cfg.Preload {
		var msg string
		healthy, msg = health.Check(c.Context, name)
		log.Info().Bool("healthy", healthy).Str("engine", factory.Name()).Str("lang", cfg.DefaultLang).Msg(msg)
	}
	s.SetServing(healthy, name)

	var metrics *metricsserver.Server
	if cfg.MetricsAddr != "" {
		metrics = metricsserver.New(cfg.MetricsAddr, s.Serving)
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
			if err := metrics.Start(); err != nil {
				log.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	// Start
	errs := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.GRPCAddr).Str("engine", factory.Name()).Msg("OCR gRPC listening")
		errs <- s.Start()
	}()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case <-ctx.Done():
	case err := <-errs:
		return err
	}

	log.Info().Dur("grace", cfg.ShutdownGrace).Msg("shutting down")
	s.Shutdown(cfg.ShutdownGrace)
	if metrics != nil {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Stop(sctx); err != nil {
			log.Error().Err(err).Msg("failed to stop metrics server")
		}
	}
	return nil
}

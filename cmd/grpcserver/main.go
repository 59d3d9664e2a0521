package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/milad/energymonitor/internal/config"
	"github.com/milad/energymonitor/internal/logging"
	"github.com/milad/energymonitor/internal/repo/csvrepo"
	"github.com/milad/energymonitor/internal/rpc/energyv1"
	"github.com/milad/energymonitor/internal/service"
	grpcserver "github.com/milad/energymonitor/internal/transport/grpc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		addr        = flag.String("addr", cfg.GRPC.Addr, "listen address")
		metricsAddr = flag.String("metrics", cfg.GRPC.MetricsAddr, "metrics listen address (empty disables)")
		csvPath     = flag.String("csv", cfg.Store.CSVPath, "path to the seed readings CSV")
	)
	flag.Parse()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Billing.Location()
	if err != nil {
		logger.Fatal("invalid timezone", zap.Error(err))
	}

	repo, err := csvrepo.NewFromFile(*csvPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("seed csv not found, starting empty", zap.String("path", *csvPath))
		repo = csvrepo.New(nil)
	case err != nil && repo != nil:
		// A few bad rows (e.g. NaN) are skipped; keep going with the usable readings.
		logger.Warn("seed csv partially loaded", zap.String("path", *csvPath), zap.Error(err))
	case err != nil:
		logger.Fatal("failed to load csv", zap.String("path", *csvPath), zap.Error(err))
	}

	svc := service.NewEnergyService(repo,
		service.WithLocation(loc),
		service.WithDefaultRegion(cfg.Billing.Region),
		service.WithLogger(logger.Named("service")),
	)
	api := grpcserver.New(svc, logger.Named("grpc"))

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", *addr), zap.Error(err))
	}
	logger.Info("gRPC listening", zap.String("addr", *addr), zap.String("timezone", loc.String()))

	g := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcserver.UnaryMetrics(),
		grpcserver.UnaryLogging(logger.Named("grpc")),
	))
	energyv1.RegisterEnergyServiceServer(g, api)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(energyv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(g, hs)

	var metricsSrv *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: *metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC")
		hs.Shutdown()
		if metricsSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = metricsSrv.Shutdown(shutdownCtx)
			cancel()
		}
		ch := make(chan struct{})
		go func() {
			g.GracefulStop()
			close(ch)
		}()
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			g.Stop()
		}
	}()

	if err := g.Serve(lis); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/milad/energymonitor/internal/config"
	"github.com/milad/energymonitor/internal/logging"
	"github.com/milad/energymonitor/internal/rpc/energyv1"
	httpserver "github.com/milad/energymonitor/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var (
		addr     = flag.String("addr", cfg.HTTP.Addr, "listen address")
		grpcAddr = flag.String("grpc", cfg.HTTP.GRPCTarget, "gRPC target host:port")
	)
	flag.Parse()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := grpc.NewClient(*grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Fatal("dial gRPC", zap.String("target", *grpcAddr), zap.Error(err))
	}
	defer conn.Close()

	// Reduce docker-compose race: wait a bit for gRPC to be ready.
	waitForGRPC(ctx, logger, conn, cfg.HTTP.GRPCWait())

	client := energyv1.NewEnergyServiceClient(conn)
	srv := httpserver.New(client, logger.Named("http"))

	h := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", *addr), zap.Error(err))
	}
	logger.Info("HTTP listening", zap.String("addr", *addr), zap.String("grpc_target", *grpcAddr))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Shutdown(shutdownCtx)
	}()

	if err := h.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}

func waitForGRPC(ctx context.Context, logger *zap.Logger, conn *grpc.ClientConn, maxWait time.Duration) {
	if maxWait <= 0 {
		return
	}

	hc := healthpb.NewHealthClient(conn)
	deadline := time.Now().Add(maxWait)

	backoff := 100 * time.Millisecond
	for {
		if ctx.Err() != nil {
			return
		}

		reqCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
		_, err := hc.Check(reqCtx, &healthpb.HealthCheckRequest{Service: energyv1.ServiceName})
		cancel()
		if err == nil {
			logger.Info("gRPC is ready")
			return
		}

		if time.Now().After(deadline) {
			logger.Warn("gRPC not ready, continuing anyway", zap.Duration("waited", maxWait), zap.Error(err))
			return
		}

		time.Sleep(backoff)
		if backoff < 1*time.Second {
			backoff *= 2
			if backoff > 1*time.Second {
				backoff = 1 * time.Second
			}
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/wealthflow-forecast/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-forecast/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-forecast/internal/config"
	"github.com/simaogato/wealthflow-forecast/internal/usecase/projection"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// 1. Load configuration (.env, environment, rate tier schedule)
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Setup Database (read-only snapshot source)
	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.DBConnStr)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3. Initialize Repositories and Services
	snapshotRepo := postgres.NewTransactionSnapshotRepository(db)
	rateSchedule := config.NewStaticRateSchedule(cfg.RateTiers)
	forecastService := projection.NewForecastService(snapshotRepo, rateSchedule, logger)

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.RecoveryInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	grpcadapter.RegisterForecastServiceServer(grpcServer, grpcadapter.NewServer(forecastService, cfg.DefaultHorizonMonths))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		logger.Error("Failed to listen", "port", cfg.GRPCPort, "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("gRPC server listening", "port", cfg.GRPCPort, "rate_tiers", len(cfg.RateTiers))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC server", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, grpcServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(logger *slog.Logger, grpcServer *grpclib.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}

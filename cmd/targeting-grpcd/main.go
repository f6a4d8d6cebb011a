// Command targeting-grpcd runs the gRPC adapter: it loads a Config
// from disk, serves the Targeting.Target RPC, and exposes
// /healthz, /readyz, /metrics for orchestration.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/feature-mesh/targeting/grpcadapter"
	"github.com/feature-mesh/targeting/healthsrv"
	"github.com/feature-mesh/targeting/obslog"
	"github.com/feature-mesh/targeting/targeting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := obslog.New(envBool("TARGETING_VERBOSE"))
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	configPath := envOr("TARGETING_CONFIG", "targeting.json")
	cfg, err := targeting.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}

	metrics := healthsrv.NewMetrics()
	rps, burst := rateLimitFromEnv()
	server := grpcadapter.NewServer(logger, metrics, rps, burst)
	server.SetConfig(cfg)

	healthPort := envInt("HEALTH_PORT", 8080)
	healthsrv.Start(logger, healthPort, server.Ready)

	grpcPort := envInt("PORT", 50051)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", grpcPort, err)
	}

	grpcServer := grpc.NewServer()
	grpcadapter.Register(grpcServer, server)

	logger.Info("targeting-grpcd listening", zap.Int("port", grpcPort), zap.String("config", configPath))
	return grpcServer.Serve(lis)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func rateLimitFromEnv() (ratePerSecond float64, burst int) {
	ratePerSecond = 500
	burst = 100
	if v := os.Getenv("TARGETING_RATE_LIMIT_RPS"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			ratePerSecond = parsed
		}
	}
	if v := os.Getenv("TARGETING_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			burst = parsed
		}
	}
	return ratePerSecond, burst
}

package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"github.com/feature-mesh/targeting/grpcadapter"
	"github.com/feature-mesh/targeting/healthsrv"
	"github.com/feature-mesh/targeting/obslog"
	"github.com/feature-mesh/targeting/targeting"
)

var (
	servePort       int
	serveHealthPort int
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC adapter in the foreground",
	Long: `Serve loads the config and runs the Targeting.Target gRPC service
until interrupted, for local testing against the CLI's config flag.

Examples:
  targetingctl serve --config targeting.json --port 50051
`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 50051, "gRPC listen port")
	serveCmd.Flags().IntVar(&serveHealthPort, "health-port", 8080, "health/metrics listen port")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "use development-style logging")
}

func runServe(cmd *cobra.Command, args []string) error {
	path := viper.GetString("config")

	cfg, err := targeting.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	logger, err := obslog.New(serveVerbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := healthsrv.NewMetrics()
	server := grpcadapter.NewServer(logger, metrics, 500, 100)
	server.SetConfig(cfg)

	healthsrv.Start(logger, serveHealthPort, server.Ready)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", servePort))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", servePort, err)
	}

	grpcServer := grpc.NewServer()
	grpcadapter.Register(grpcServer, server)

	fmt.Fprintf(cmd.OutOrStdout(), "serving on :%d (health on :%d)\n", servePort, serveHealthPort)
	return grpcServer.Serve(lis)
}

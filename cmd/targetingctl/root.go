package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "targetingctl",
	Short: "targetingctl - operate the per-request feature-targeting engine",
	Long: `targetingctl validates and exercises targeting configs offline and
runs the gRPC adapter for local testing.

It supports:
- Validating a config against the expression schema
- Evaluating a config against an ad-hoc request
- Serving the gRPC adapter in the foreground`,
	Version: version,
}

func init() {
	cobra.OnInitialize(initViper)
	rootCmd.PersistentFlags().String("config", "targeting.json", "path to the targeting config file")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")) //nolint:errcheck

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func initViper() {
	viper.SetEnvPrefix("TARGETING")
	viper.AutomaticEnv()
}

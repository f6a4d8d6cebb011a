package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feature-mesh/targeting/request"
	"github.com/feature-mesh/targeting/targeting"
)

var evalAttrs []string

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a config against an ad-hoc request",
	Long: `Eval builds a request from repeated --attr key=value flags and prints
the resulting feature token header value.

Examples:
  targetingctl eval --config targeting.json --attr country=US --attr plan=pro
`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringArrayVar(&evalAttrs, "attr", nil, "request attribute as key=value, repeatable")
}

func runEval(cmd *cobra.Command, args []string) error {
	path := viper.GetString("config")

	cfg, err := targeting.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	attrs := make(map[string]string, len(evalAttrs))
	for _, kv := range evalAttrs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --attr %q, expected key=value", kv)
		}
		attrs[key] = value
	}

	value := targeting.Target(request.New(attrs), cfg)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", cfg.HeaderName, value)
	return nil
}

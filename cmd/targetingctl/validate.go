package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feature-mesh/targeting/targeting"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config against the expression schema",
	Long: `Validate checks a config file's shape against the shallow expression
schema and then attempts a full decode. Every schema violation is
printed to stderr; if the schema check passes, the decode error (if
any) is reported.

Examples:
  targetingctl validate --config targeting.json
`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := viper.GetString("config")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	errs, err := targeting.ValidateConfigSchema(data)
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", e.Field, e.Message)
		}
		return fmt.Errorf("%s failed schema validation", path)
	}

	if _, err := targeting.ParseConfig(data); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
	return nil
}

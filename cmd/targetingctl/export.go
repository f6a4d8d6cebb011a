package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/feature-mesh/targeting/targeting"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print a config as YAML for human review",
	Long: `Export loads a JSON config and re-renders it as YAML, the way an
operator would read it in a pull request diff.

Examples:
  targetingctl export --config targeting.json
`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	path := viper.GetString("config")

	cfg, err := targeting.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	encoded, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Round-trip through a generic map so yaml.v3 renders the same
	// tagged-union shape JSON produced, instead of Go field names.
	var doc map[string]any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return fmt.Errorf("converting to yaml: %w", err)
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling yaml: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/filegate/filegate/internal/adapters/outbound/config"
	"github.com/filegate/filegate/internal/domain"
)

const sampleSchemaName = "schema.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .filegate.yaml and a sample schema",
		Long:  "Create a commented .filegate.yaml with the default settings and a sample schema to start from.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if err := os.MkdirAll(absPath, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}

			files := []struct{ name, content string }{
				{config.FileName, generateConfig(domain.DefaultEngineConfig())},
				{sampleSchemaName, sampleSchema},
			}

			if !force {
				for _, f := range files {
					if _, err := os.Stat(filepath.Join(absPath, f.name)); err == nil {
						return fmt.Errorf("%s already exists (use --force to overwrite)", f.name)
					}
				}
			}

			for _, f := range files {
				if err := os.WriteFile(filepath.Join(absPath, f.name), []byte(f.content), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", f.name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", f.name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func generateConfig(cfg domain.EngineConfig) string {
	nulls := ""
	for _, n := range cfg.NullValues {
		nulls += fmt.Sprintf("\n  - %q", n)
	}

	return fmt.Sprintf(`# filegate configuration
# Every key can be overridden with FILEGATE_<KEY>, nested keys joined by "__"
# (FILEGATE_LOG__LEVEL=debug).

# Maximum offending values listed per failed check.
max_samples: %d

# Rule evaluations (and files, in scan mode) run concurrently.
workers: %d

# Cells equal to one of these are null.
null_values:%s

trim_space: %t

log:
  level: %s
  # file: filegate.log

history:
  enabled: %t
  limit: %d

cache:
  enabled: %t

# metrics_file: /var/lib/node_exporter/textfile/filegate.prom
`, cfg.MaxSamples, cfg.Workers, nulls, cfg.TrimSpace, cfg.Log.Level,
		cfg.History.Enabled, cfg.History.Limit, cfg.Cache.Enabled)
}

const sampleSchema = `metadata:
  file:
    filename: survey
    extension: csv
    separator: ","
    encoding: utf-8
  structure:
    num_columns: 3
  columns:
    - name: AGE
    - name: GENDER
    - name: VISIT_DATE
  validations:
    not_null:
      - name: AGE
    date_format:
      - name: VISIT_DATE
    string_length:
      - name: GENDER
        length: 1
`

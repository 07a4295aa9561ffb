package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filegate/filegate/internal/adapters/outbound/tui"
	"github.com/filegate/filegate/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		schemaPath string
		jsonOut    bool
		o          overrides
	)

	cmd := &cobra.Command{
		Use:   "validate <data-file>",
		Short: "Validate one data file against a schema",
		Long: "Check the header of a delimited data file against the schema, then run every " +
			"declared content rule. Exits non-zero when any check fails.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(cmd, o)
			if err != nil {
				return err
			}
			defer func() { _ = svc.log.Sync() }()

			report, err := svc.validate.ValidateFile(cmd.Context(), args[0], schemaPath)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}
			return reportError(report)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to the YAML schema")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the report as JSON")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "Concurrent rule evaluations (default from config)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "Rebuild the schema instead of using the cache")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "Do not record this run")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics to this .prom file")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// reportError turns a failed report into an error so the process exits 1.
func reportError(r *domain.ValidationReport) error {
	if r.Passed {
		return nil
	}
	_, failed := r.Counts()
	return fmt.Errorf("validation failed: %d check(s) failed for %s", failed, r.DataFile)
}

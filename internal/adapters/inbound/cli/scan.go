package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filegate/filegate/internal/adapters/outbound/tui"
)

func newScanCmd() *cobra.Command {
	var (
		schemaPath string
		jsonOut    bool
		o          overrides
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Validate every matching file in a directory",
		Long: "Validate, concurrently, every file under dir whose extension matches the " +
			"schema's file extension. Exits non-zero when any file fails.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(cmd, o)
			if err != nil {
				return err
			}
			defer func() { _ = svc.log.Sync() }()

			report, err := svc.validate.ScanDir(cmd.Context(), args[0], schemaPath)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderScan(report))
			}

			if !report.Passed {
				failed := len(report.Errors)
				for _, r := range report.Reports {
					if !r.Passed {
						failed++
					}
				}
				return fmt.Errorf("scan failed: %d of %d file(s) did not pass", failed, len(report.Reports)+len(report.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "Path to the YAML schema")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the scan report as JSON")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "Concurrent file validations (default from config)")
	cmd.Flags().BoolVar(&o.noHistory, "no-history", false, "Do not record these runs")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

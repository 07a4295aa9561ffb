package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filegate/filegate/internal/adapters/outbound/tui"
)

func newLintCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "lint <schema>",
		Short: "Check a schema file without any data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(cmd, overrides{})
			if err != nil {
				return err
			}

			report, err := svc.schemas.Lint(args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderLint(report))
			}

			if !report.Valid {
				return fmt.Errorf("schema %s has %d issue(s)", report.SchemaFile, len(report.Issues))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the lint report as JSON")
	return cmd
}

func newRulesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the registered rule kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(cmd, overrides{})
			if err != nil {
				return err
			}
			kinds := svc.schemas.Registry().Kinds()
			if jsonOut {
				return renderJSON(cmd, kinds)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(kinds))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the rule kinds as JSON")
	return cmd
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/filegate/filegate/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history [dir]",
		Short: "Show past validation runs recorded in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc, err := newServices(cmd, overrides{})
			if err != nil {
				return err
			}
			entries, err := svc.validate.History(absDir)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOut {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the runs as JSON")
	return cmd
}

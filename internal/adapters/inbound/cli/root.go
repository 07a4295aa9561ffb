package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filegate",
		Short: "Validate CSV files against a YAML schema",
		Long: "filegate checks a delimited data file against a declarative YAML schema: " +
			"header count, names and order first, then per-column content rules.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "Path to .filegate.yaml or the directory holding it")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newLintCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/datamapper/cli/internal/ui"
	"github.com/satishbabariya/datamapper/cli/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// The version does not depend on configuration or profiles.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			for _, kv := range version.Get().Fields() {
				ui.PrintKeyValue(cmd.OutOrStdout(), kv[0], kv[1])
			}
		},
	}
}

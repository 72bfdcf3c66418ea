package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/datamapper/cli/internal/ui"
	"github.com/satishbabariya/datamapper/database"
)

func newDriversCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drivers",
		Short: "List database systems and their registered drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registered := make(map[database.System]database.Driver)
			for _, d := range a.databases.Drivers() {
				registered[d.System] = d
			}

			rows := make([][]string, 0, len(database.Systems))
			for _, system := range database.Systems {
				name, library := "-", "-"
				if d, ok := registered[system]; ok {
					name = d.Name
					if c, ok := d.New(&database.Profile{System: string(system)}).(database.Connector); ok {
						library = c.DriverName()
					}
				}
				rows = append(rows, []string{string(system), name, library})
			}
			return ui.PrintTable(cmd.OutOrStdout(), []string{"SYSTEM", "DRIVER", "LIBRARY"}, rows)
		},
	}
}

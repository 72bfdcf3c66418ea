package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/datamapper/cli/internal/ui"
	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/registry"
)

func newResolveCommand(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the driver a mapper would use",
		Long: `Resolve a driver instance the way a mapper registration does and print its
connection string with the password masked.

Without --profile the configured default profile is used, else the last
profile in the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadProfiles(); err != nil {
				return err
			}

			var opts []registry.ResolveOption
			switch {
			case cmd.Flags().Changed("profile"):
				opts = append(opts, registry.WithProfileName(name))
			case a.cfg.DefaultProfile != "":
				opts = append(opts, registry.WithProfileName(a.cfg.DefaultProfile))
			}

			db, err := a.databases.GetDatabase(opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.PrintKeyValue(out, "Profile", db.Profile().Name)
			ui.PrintKeyValue(out, "System", db.System().String())

			library, conn, err := a.maskedConnection(db)
			if err != nil {
				return err
			}
			ui.PrintKeyValue(out, "Library", library)
			ui.PrintKeyValue(out, "DSN", conn)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "profile", "p", "", "profile name")
	return cmd
}

// maskedConnection describes db's connection with the profile password masked.
func (a *app) maskedConnection(db database.Database) (string, string, error) {
	for _, d := range a.databases.Drivers() {
		if d.System != db.System() {
			continue
		}
		c, ok := d.New(db.Profile().Masked()).(database.Connector)
		if !ok {
			return "-", "-", nil
		}
		conn, err := c.ConnectionString()
		if err != nil {
			return "", "", fmt.Errorf("failed to build connection string: %w", err)
		}
		return c.DriverName(), conn, nil
	}
	return "-", "-", nil
}

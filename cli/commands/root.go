// Package commands implements the datamapper CLI commands.
package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/datamapper/cli/internal/ui"
	"github.com/satishbabariya/datamapper/cli/internal/version"
	"github.com/satishbabariya/datamapper/internal/config"
	"github.com/satishbabariya/datamapper/internal/debug"
	"github.com/satishbabariya/datamapper/registry"
)

// app is the state shared by every command of one invocation.
type app struct {
	profilesFile string
	debug        bool

	cfg       *config.Config
	databases *registry.Registry
}

// NewRootCommand creates the datamapper root command.
func NewRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "datamapper",
		Short: "Inspect database drivers and connection profiles",
		Long: `datamapper manages the database profiles a mapped model resolves its driver from.

Profiles are read from an INI file with one section per profile:

    [main]
    system = mysql
    host = 127.0.0.1
    user = root
    db = app`,
		Version:           version.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.profilesFile, "profiles", "", "profile configuration file (default from config, else "+config.DefaultProfilesFile+")")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newDriversCommand(a))
	cmd.AddCommand(newProfilesCommand(a))
	cmd.AddCommand(newResolveCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the CLI until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		ui.PrintError(cmd.ErrOrStderr(), "%v", err)
		return err
	}
	return nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.profilesFile != "" {
		cfg.ProfilesFile = a.profilesFile
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg

	debug.InitWriter(cfg.Debug, cmd.ErrOrStderr())

	a.databases = registry.New(
		registry.WithFs(config.AppFs),
		registry.WithLogger(debug.Logger()),
	)
	return a.databases.Initialize()
}

// loadProfiles initializes the registry from the configured profiles file.
func (a *app) loadProfiles() error {
	return a.databases.Initialize(registry.FromFile(a.cfg.ProfilesFile))
}

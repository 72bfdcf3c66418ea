package commands

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/datamapper/cli/internal/ui"
	"github.com/satishbabariya/datamapper/cli/internal/watch"
	"github.com/satishbabariya/datamapper/database"
	"github.com/satishbabariya/datamapper/internal/config"
	"github.com/satishbabariya/datamapper/internal/debug"
	"github.com/satishbabariya/datamapper/registry"
)

func newProfilesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage database profiles",
	}

	cmd.AddCommand(newProfilesListCommand(a))
	cmd.AddCommand(newProfilesShowCommand(a))
	cmd.AddCommand(newProfilesAddCommand(a))
	cmd.AddCommand(newProfilesCheckCommand(a))

	return cmd
}

func newProfilesListCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadProfiles(); err != nil {
				return err
			}
			profiles := a.databases.Profiles()

			switch output {
			case "table":
				rows := make([][]string, 0, len(profiles))
				for _, p := range profiles {
					rows = append(rows, []string{p.Name, p.System, p.Host, p.Port, p.User, p.DB})
				}
				return ui.PrintTable(cmd.OutOrStdout(), []string{"NAME", "SYSTEM", "HOST", "PORT", "USER", "DB"}, rows)
			case "yaml":
				masked := make([]*database.Profile, 0, len(profiles))
				for _, p := range profiles {
					masked = append(masked, p.Masked())
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(masked); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q (want table or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table or yaml")
	return cmd
}

func newProfilesShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadProfiles(); err != nil {
				return err
			}
			p, err := a.databases.GetProfile(args[0])
			if err != nil {
				return err
			}
			return ui.PrintMarkdown(cmd.OutOrStdout(), profileMarkdown(p.Masked()))
		},
	}
}

func profileMarkdown(p *database.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Profile `%s`\n\n", p.Name)
	b.WriteString("| Key | Value |\n|---|---|\n")
	for _, kv := range [][2]string{
		{"system", p.System},
		{"host", p.Host},
		{"port", p.Port},
		{"user", p.User},
		{"password", p.Password},
		{"db", p.DB},
	} {
		if kv[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "| %s | `%s` |\n", kv[0], kv[1])
	}
	return b.String()
}

type addOptions struct {
	profile     database.Profile
	interactive bool
	force       bool
}

func newProfilesAddCommand(a *app) *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a profile to the profiles file",
		Long: `Add a profile to the profiles file, creating the file if needed.

The profile is validated against the registered drivers before it is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.interactive {
				if err := promptProfile(&opts.profile); err != nil {
					return err
				}
			}
			return a.addProfile(cmd, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.profile.Name, "name", "", "profile name")
	flags.StringVar(&opts.profile.System, "system", "", "database system ("+systemList()+")")
	flags.StringVar(&opts.profile.Host, "host", "", "database host")
	flags.StringVar(&opts.profile.Port, "port", "", "database port")
	flags.StringVar(&opts.profile.User, "user", "", "database user")
	flags.StringVar(&opts.profile.Password, "password", "", "database password")
	flags.StringVar(&opts.profile.DB, "db", "", "database name")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for the profile")
	flags.BoolVar(&opts.force, "force", false, "replace an existing profile with the same name")

	return cmd
}

func (a *app) addProfile(cmd *cobra.Command, opts *addOptions) error {
	path := a.cfg.ProfilesFile

	exists, err := afero.Exists(config.AppFs, path)
	if err != nil {
		return err
	}
	if exists {
		if err := a.loadProfiles(); err != nil {
			return err
		}
	}

	if opts.profile.Name == registry.ReservedProfileName {
		return registry.ErrReservedProfileName
	}
	if _, err := a.databases.GetProfile(opts.profile.Name); err == nil && !opts.force {
		return fmt.Errorf("profile %q already exists in %s (use --force to replace it)", opts.profile.Name, path)
	}
	if err := a.databases.RegisterProfile(&opts.profile); err != nil {
		return err
	}
	if err := registry.WriteProfilesFile(config.AppFs, path, a.databases.Profiles()); err != nil {
		return err
	}

	ui.PrintSuccess(cmd.OutOrStdout(), "Saved profile %s to %s", opts.profile.Name, path)
	return nil
}

func promptProfile(p *database.Profile) error {
	systems := make([]string, 0, len(database.Systems))
	for _, s := range database.Systems {
		systems = append(systems, string(s))
	}

	qs := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Profile name:", Default: p.Name},
			Validate: survey.Required,
		},
		{
			Name:   "system",
			Prompt: &survey.Select{Message: "Database system:", Options: systems, Default: systemDefault(p.System, systems)},
		},
		{Name: "host", Prompt: &survey.Input{Message: "Host:", Default: p.Host}},
		{Name: "port", Prompt: &survey.Input{Message: "Port:", Default: p.Port}},
		{Name: "user", Prompt: &survey.Input{Message: "User:", Default: p.User}},
		{Name: "password", Prompt: &survey.Password{Message: "Password:"}},
		{Name: "db", Prompt: &survey.Input{Message: "Database:", Default: p.DB}},
	}

	answers := struct {
		Name     string
		System   string
		Host     string
		Port     string
		User     string
		Password string
		DB       string `survey:"db"`
	}{}
	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}

	password := p.Password
	if answers.Password != "" {
		password = answers.Password
	}
	*p = database.Profile{
		Name:     answers.Name,
		System:   answers.System,
		Host:     answers.Host,
		Port:     answers.Port,
		User:     answers.User,
		Password: password,
		DB:       answers.DB,
	}
	return nil
}

func systemDefault(given string, systems []string) string {
	if s, ok := database.ParseSystem(given); ok {
		return string(s)
	}
	return systems[0]
}

func systemList() string {
	names := make([]string, 0, len(database.Systems))
	for _, s := range database.Systems {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func newProfilesCheckCommand(a *app) *cobra.Command {
	var watchFile bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the profiles file",
		Long: `Validate the profiles file against the registered drivers.

With --watch the file is validated again on every change until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !watchFile {
				return a.checkProfiles(cmd)
			}

			w, err := watch.NewWatcher(a.cfg.ProfilesFile, func() error {
				if err := a.checkProfiles(cmd); err != nil {
					ui.PrintError(cmd.OutOrStdout(), "%s: %v", a.cfg.ProfilesFile, err)
				}
				return nil
			}, watch.WithErrorHandler(func(err error) {
				debug.Warn("watch error", "error", err)
			}))
			if err != nil {
				return err
			}
			ui.PrintInfo(cmd.OutOrStdout(), "Watching %s for changes", a.cfg.ProfilesFile)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "validate again on every change")
	return cmd
}

func (a *app) checkProfiles(cmd *cobra.Command) error {
	if err := a.loadProfiles(); err != nil {
		return err
	}
	ui.PrintSuccess(cmd.OutOrStdout(), "%s: %d profiles valid", a.cfg.ProfilesFile, len(a.databases.Profiles()))
	return nil
}

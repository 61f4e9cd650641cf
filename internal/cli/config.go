package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/changelog-generator/internal/app"
	"github.com/runoshun/changelog-generator/internal/domain"
	"github.com/runoshun/changelog-generator/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container, root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage changelog-generator configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c, root))
	cmd.AddCommand(newConfigTemplateCommand(c, root))
	cmd.AddCommand(newConfigInitCommand(c, root))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective project configuration",
		Long: `Display the configuration files that were consulted and the effective
settings of the selected project, after the git remote was applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyLogging(c, root, "", ""); err != nil {
				return err
			}
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{
				GlobalPath: c.Config.GlobalConfigPath,
				Resolve: usecase.ResolveConfigInput{
					ConfigPath: root.configPath,
					Project:    root.project,
					Dir:        c.Config.WorkDir,
				},
			})
			if err != nil {
				return err
			}
			printWarnings(cmd, out.Warnings)

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if out.Global != nil {
				printConfigInfo(w, *out.Global)
			}
			printConfigInfo(w, out.File)
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatProjectConfig(w, out.ProjectName, out.Project)
		},
	}
}

func printConfigInfo(w io.Writer, info domain.ConfigInfo) {
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
		return
	}
	_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
}

// formatProjectConfig writes the project settings as a TOML project table.
func formatProjectConfig(w io.Writer, name string, project domain.ProjectConfig) error {
	if name == "" {
		name = "default"
	}
	doc := map[string]any{
		"projects": map[string]domain.ProjectConfig{name: project},
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template to stdout.

User and repository are prefilled from the origin remote when the working
directory is a git repository. The project name comes from --project, or
defaults to the repository name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigTemplateUseCase().Execute(cmd.Context(), usecase.ShowConfigTemplateInput{
				Project: root.project,
				Dir:     c.Config.WorkDir,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container, root *rootOptions) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a configuration file from the template.

By default, creates .changelog-generator.toml in the working directory, or the
file given with --config. A .yaml or .yml path is written as YAML.
With --global, creates the global configuration file at
~/.config/changelog-generator/config.toml.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := root.configPath
			if global {
				if path != "" {
					return errors.New("--global cannot be combined with --config")
				}
				if c.Config.GlobalConfigPath == "" {
					return errors.New("global config directory is not available")
				}
				path = c.Config.GlobalConfigPath
			}

			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				Path:    path,
				Project: root.project,
				Dir:     c.Config.WorkDir,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the global configuration file")

	return cmd
}

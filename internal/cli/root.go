// Package cli provides the command-line interface for changelog-generator.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/changelog-generator/internal/app"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	project    string
	logLevel   string
	logFile    string
}

// NewRootCommand creates the root command for changelog-generator.
// Running it without a subcommand generates a changelog.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &rootOptions{}
	gen := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "changelog-generator",
		Short: "Generate a Markdown changelog from GitHub milestones",
		Long: `changelog-generator builds a Markdown changelog from the closed issues and
pull requests of one or more GitHub milestones, grouped by label.

Settings come from .changelog-generator.toml (or the file given with --config)
and may be overridden with flags. Owner and repository default to the origin
remote of the current git repository.`,
		Example: `  changelog-generator --user=doctrine --repository=migrations --milestone=2.0
  changelog-generator --milestone=2.0 --label=Enhancement --label=Bug
  changelog-generator -p migrations --file --prepend`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, c, root, gen)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&root.configPath, "config", "c", "", "Path to a configuration file (.toml, .yaml or .yml)")
	cmd.PersistentFlags().StringVarP(&root.project, "project", "p", "", "Project from the configuration file to use")
	cmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&root.logFile, "log-file", "", "Also append logs to this file")

	addGenerateFlags(cmd, gen)

	cmd.AddCommand(
		newGenerateCommand(c, root),
		newConfigCommand(c, root),
	)

	return cmd
}

// applyLogging sets the container log level and log file. Flags win over
// the values of the config file. It runs once before the config file is
// read, with empty file values, and once after.
func applyLogging(c *app.Container, root *rootOptions, fileLevel, fileLog string) error {
	switch {
	case root.logLevel != "":
		c.SetLogLevel(root.logLevel)
	case fileLevel != "":
		c.SetLogLevel(fileLevel)
	}

	path := root.logFile
	if path == "" {
		path = fileLog
	}
	if err := c.SetLogFile(path); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return nil
}

// printWarnings writes config warnings to stderr.
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warningStyle.Render("Warning:"), w)
	}
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runoshun/changelog-generator/internal/app"
	"github.com/runoshun/changelog-generator/internal/domain"
	"github.com/runoshun/changelog-generator/internal/infra/output"
	"github.com/runoshun/changelog-generator/internal/infra/preview"
	"github.com/runoshun/changelog-generator/internal/usecase"
)

// generateOptions holds the flags of the generate command.
// Fields are ordered to minimize memory padding.
type generateOptions struct {
	user             string
	repository       string
	nonGroupedLabel  string
	rootGitHubURL    string
	dateFormat       string
	file             string
	previewStyle     string
	milestones       []string
	labels           []string
	concurrency      int
	previewWidth     int
	includeOpen      bool
	showContributors bool
	includeDate      bool
	appendFile       bool
	prependFile      bool
	preview          bool
}

// newGenerateCommand creates the generate command. It is the same as running
// the root command without a subcommand.
func newGenerateCommand(c *app.Container, root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a changelog",
		Long: `Generate a changelog Markdown document from one or more GitHub milestones.

Without a label filter every issue is listed, grouped by its first label.
With --label only issues carrying one of the labels are listed, grouped by
the first matching label. Pull requests that mention an issue as #N in their
description replace that issue in the listing.`,
		Example: `  changelog-generator generate --user=doctrine --repository=migrations --milestone=2.0
  changelog-generator generate --milestone=2.0 --label=Enhancement --label=Bug
  changelog-generator generate --milestone=2.0 --file=docs/CHANGELOG.md --append`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, c, root, opts)
		},
	}

	addGenerateFlags(cmd, opts)
	return cmd
}

// addGenerateFlags registers the generate flags on cmd.
func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.user, "user", "", "User or organization that owns the repository")
	f.StringVar(&opts.repository, "repository", "", "Repository name")
	f.StringArrayVar(&opts.milestones, "milestone", nil, "Milestone to build the changelog for (repeatable)")
	f.StringArrayVar(&opts.labels, "label", nil, "Only include issues with this label (repeatable)")
	f.BoolVarP(&opts.includeOpen, "include-open", "a", false, "Also include open issues")
	f.BoolVar(&opts.showContributors, "show-contributors", false, "Add a section listing the contributors")
	f.BoolVar(&opts.includeDate, "include-date", false, "Add the current date to the title")
	f.StringVar(&opts.dateFormat, "date-format", domain.DefaultDateFormat, "Go time layout of the title date")
	f.StringVar(&opts.nonGroupedLabel, "non-grouped-label", "", "Group name for issues without a label")
	f.StringVar(&opts.rootGitHubURL, "root-github-url", domain.DefaultRootGitHubURL, "GitHub API root URL")
	f.IntVar(&opts.concurrency, "concurrency", 0, "Number of search queries run in parallel")

	f.String("token", "", "GitHub token (default $CHANGELOG_GITHUB_TOKEN or $GITHUB_TOKEN)")
	f.String("username", "", "GitHub username for basic authentication")
	f.String("password", "", "GitHub password or token for basic authentication")

	f.StringVar(&opts.file, "file", "", "Write the changelog to a file (--file=PATH, default "+output.DefaultFileName+")")
	f.Lookup("file").NoOptDefVal = output.DefaultFileName
	f.BoolVar(&opts.appendFile, "append", false, "Append the changelog to the file")
	f.BoolVar(&opts.prependFile, "prepend", false, "Prepend the changelog to the file")
	f.BoolVar(&opts.preview, "preview", false, "Render the changelog for the terminal")
	f.StringVar(&opts.previewStyle, "preview-style", preview.AutoStyle, "Preview style: auto, dark, light, notty")
	f.IntVar(&opts.previewWidth, "preview-width", preview.DefaultWidth, "Preview word wrap width")

	cmd.MarkFlagsMutuallyExclusive("append", "prepend")
	cmd.MarkFlagsMutuallyExclusive("preview", "file")
	cmd.MarkFlagsMutuallyExclusive("preview", "append")
	cmd.MarkFlagsMutuallyExclusive("preview", "prepend")
}

// runGenerate resolves the configuration and writes the changelog.
func runGenerate(cmd *cobra.Command, c *app.Container, root *rootOptions, opts *generateOptions) error {
	if err := applyLogging(c, root, "", ""); err != nil {
		return err
	}
	creds, err := resolveCredentials(cmd.Flags())
	if err != nil {
		return err
	}

	resolved, err := c.ResolveConfigUseCase().Execute(cmd.Context(), usecase.ResolveConfigInput{
		Credentials: creds,
		ConfigPath:  root.configPath,
		Project:     root.project,
		Dir:         c.Config.WorkDir,
		Overrides:   opts.overrides(cmd.Flags()),
	})
	if err != nil {
		return err
	}
	if err := applyLogging(c, root, resolved.LogLevel, resolved.LogFile); err != nil {
		return err
	}
	printWarnings(cmd, resolved.Warnings)

	if err := resolved.Config.Validate(); err != nil {
		return fmt.Errorf("%w (pass a config file with --config or set --user, --repository and --milestone)", err)
	}

	out, file, err := opts.changelogOutput(cmd, c.Config.WorkDir, resolved.WriteStrategy)
	if err != nil {
		return err
	}

	result, err := c.GenerateChangelogUseCase().Execute(cmd.Context(), usecase.GenerateChangelogInput{
		Config: resolved.Config,
		Output: out,
	})
	if err != nil {
		return err
	}

	if file != nil {
		printWriteStatus(cmd, file, result)
	}
	return nil
}

// overrides collects the flags that were set on the command line.
func (o *generateOptions) overrides(flags *pflag.FlagSet) domain.ConfigOverrides {
	var ov domain.ConfigOverrides
	if flags.Changed("user") {
		ov.User = &o.user
	}
	if flags.Changed("repository") {
		ov.Repository = &o.repository
	}
	if flags.Changed("milestone") {
		ov.Milestones = o.milestones
	}
	if flags.Changed("label") {
		ov.Labels = o.labels
	}
	if flags.Changed("include-open") {
		ov.IncludeOpen = &o.includeOpen
	}
	if flags.Changed("show-contributors") {
		ov.ShowContributors = &o.showContributors
	}
	if flags.Changed("include-date") {
		ov.IncludeDate = &o.includeDate
	}
	if flags.Changed("date-format") {
		ov.DateFormat = &o.dateFormat
	}
	if flags.Changed("non-grouped-label") {
		ov.NonGroupedLabel = &o.nonGroupedLabel
	}
	if flags.Changed("root-github-url") {
		ov.RootGitHubURL = &o.rootGitHubURL
	}
	if flags.Changed("concurrency") {
		ov.Concurrency = &o.concurrency
	}
	return ov
}

// changelogOutput selects the destination of the changelog.
// --append and --prepend without --file write to the default file.
// Otherwise a file is written with the strategy of the project.
// The returned file is nil unless the changelog goes to a file.
func (o *generateOptions) changelogOutput(cmd *cobra.Command, dir, projectStrategy string) (domain.ChangelogOutput, *output.File, error) {
	name := projectStrategy
	switch {
	case o.appendFile:
		name = string(output.StrategyAppend)
	case o.prependFile:
		name = string(output.StrategyPrepend)
	}
	strategy, err := output.ParseWriteStrategy(name)
	if err != nil {
		return nil, nil, err
	}

	if o.preview {
		return preview.NewOutput(cmd.OutOrStdout(), o.previewStyle, o.previewWidth), nil, nil
	}

	flags := cmd.Flags()
	if !flags.Changed("file") && !o.appendFile && !o.prependFile {
		return output.NewWriter(cmd.OutOrStdout()), nil, nil
	}

	path := o.file
	if path == "" {
		path = output.DefaultFileName
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	file := output.NewFile(path, strategy)
	return file, file, nil
}

// printWriteStatus reports a written changelog file on stderr.
func printWriteStatus(cmd *cobra.Command, file *output.File, result *usecase.GenerateChangelogOutput) {
	w := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(w, "%s %s %s\n",
		successStyle.Render("✓"),
		titleStyle.Render(result.Title),
		mutedStyle.Render(fmt.Sprintf("(%s) → %s", file.Strategy(), file.Path())),
	)
	_, _ = fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  %d issues, %d pull requests, %d contributors",
		result.Issues, result.PullRequests, result.Contributors)))
}

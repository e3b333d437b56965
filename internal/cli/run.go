package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/analysis"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
	_ "github.com/yaklabco/quill/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/quill/pkg/reporter"
	"github.com/yaklabco/quill/pkg/runner"
)

// runFlags control file discovery and writing.
type runFlags struct {
	jobs           int
	ignore         []string
	dryRun         bool
	force          bool
	noBackups      bool
	followSymlinks bool
	stdinPath      string
}

func (f *runFlags) register(flags *pflag.FlagSet) {
	flags.IntVar(&f.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	flags.StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to ignore")
	flags.BoolVar(&f.dryRun, "dry-run", false, "show changes without writing them")
	flags.BoolVar(&f.force, "force", false, "write files even if they changed on disk during the run")
	flags.BoolVar(&f.noBackups, "no-backups", false, "disable backup creation when writing")
	flags.BoolVar(&f.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
	flags.StringVar(&f.stdinPath, "stdin-filepath", "",
		"read the source from stdin; the path selects the language and config overrides")
}

// reportFlags control the output of lint, check and format.
type reportFlags struct {
	format       string
	ruleFormat   string
	noContext    bool
	compact      bool
	ruleSummary  bool
	summaryOrder string
	summarySort  string
	quiet        bool
	strict       bool
}

func (f *reportFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.format, "format", "text", "output format: text, json, sarif")
	flags.StringVar(&f.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, qualified")
	flags.BoolVar(&f.noContext, "no-context", false, "hide source line context in output")
	flags.BoolVar(&f.compact, "compact", false, "minify JSON and SARIF output")
	flags.BoolVar(&f.ruleSummary, "summary", false, "append per-rule and per-file tables")
	flags.StringVar(&f.summaryOrder, "summary-order", string(reporter.SummaryOrderRules),
		"order of the summary tables: rules, files")
	flags.StringVar(&f.summarySort, "summary-sort", "count", "row order within summary tables: count, name, severity")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "omit the summary line")
	flags.BoolVar(&f.strict, "strict", false, "exit with status 2 when only warnings are found")
}

func (f *reportFlags) validate() error {
	if _, err := reporter.ParseFormat(f.format); err != nil {
		return withExitCode(ExitUsage, err)
	}
	switch config.RuleFormat(f.ruleFormat) {
	case config.RuleFormatName, config.RuleFormatQualified:
	default:
		return usageErrorf("invalid --rule-format %q: must be name or qualified", f.ruleFormat)
	}
	switch reporter.SummaryOrder(f.summaryOrder) {
	case reporter.SummaryOrderRules, reporter.SummaryOrderFiles:
	default:
		return usageErrorf("invalid --summary-order %q: must be rules or files", f.summaryOrder)
	}
	if _, err := analysis.ParseSortKey(f.summarySort); err != nil {
		return withExitCode(ExitUsage, err)
	}
	return nil
}

// session is one command invocation with its configuration loaded.
type session struct {
	cmd     *cobra.Command
	app     *app
	logger  *log.Logger
	load    *configloader.LoadResult
	workDir string
}

// newSession loads the configuration, with cli taking precedence over
// files and the environment.
func newSession(cmd *cobra.Command, state *app, cli *config.Config) (*session, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	load, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     workDir,
		ExplicitPath:   state.configPath,
		CLIConfig:      cli,
		Version:        state.info.Version,
		NonInteractive: cmd.Flags().Changed("stdin-filepath"),
	})
	if err != nil {
		return nil, withExitCode(ExitDataError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range load.Warnings {
		logger.Warn(warning)
	}
	if len(load.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, load.LoadedFrom)
	}

	return &session{cmd: cmd, app: state, logger: logger, load: load, workDir: workDir}, nil
}

func (s *session) config() *config.Config {
	return s.load.Config
}

func (s *session) runnerOptions(mode runner.Mode, paths []string, flags *runFlags, diff bool) runner.Options {
	return runner.Options{
		Paths:          paths,
		WorkingDir:     s.workDir,
		Root:           s.load.Root,
		Mode:           mode,
		Diff:           diff,
		DryRun:         flags.dryRun,
		Force:          flags.force,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           s.config().Jobs,
		Config:         s.config(),
	}
}

// run processes the files under paths.
func (s *session) run(opts runner.Options) (*runner.Result, error) {
	s.logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldFix, s.config().Fix,
		logging.FieldWrite, s.config().Write,
	)

	result, err := runner.NewDefault().Run(s.cmd.Context(), opts)
	if err != nil {
		if runner.IsNotExist(err) {
			return nil, withExitCode(ExitIOError, err)
		}
		return nil, fmt.Errorf("run failed: %w", err)
	}
	return result, nil
}

// processStdin processes stdin as if it were the file at path. It never
// writes to disk.
func (s *session) processStdin(opts runner.Options, path string) (runner.FileOutcome, error) {
	content, err := io.ReadAll(s.cmd.InOrStdin())
	if err != nil {
		return runner.FileOutcome{}, withExitCode(ExitIOError, fmt.Errorf("read stdin: %w", err))
	}

	opts.DryRun = true
	proc, err := runner.NewProcessor(lint.NewPipeline(lint.NewEngine(lint.DefaultRegistry)), opts)
	if err != nil {
		return runner.FileOutcome{}, err
	}

	lang := langdetect.Detect(path, content)
	if lang == langdetect.Unknown {
		return runner.FileOutcome{}, withExitCode(ExitDataError,
			fmt.Errorf("cannot determine the language of %q", path))
	}
	outcome := proc.Process(s.cmd.Context(), path, content, lang)
	if outcome.Error != nil {
		return outcome, outcome.Error
	}
	return outcome, nil
}

// report writes result with the reporter selected by flags.
func (s *session) report(result *runner.Result, flags *reportFlags, out io.Writer) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return withExitCode(ExitUsage, err)
	}

	sortKey, err := analysis.ParseSortKey(flags.summarySort)
	if err != nil {
		return withExitCode(ExitUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       out,
		Format:       format,
		Color:        s.app.color,
		ShowContext:  !flags.noContext,
		ShowSummary:  !flags.quiet,
		RuleSummary:  flags.ruleSummary,
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		SummarySort:  sortKey,
		Compact:      flags.compact,
		RuleFormat:   config.RuleFormat(flags.ruleFormat),
		Registry:     lint.DefaultRegistry,
		ToolVersion:  s.app.info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(s.cmd.Context(), result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}
	return nil
}

// finish reports result and converts it into the command's error.
func (s *session) finish(result *runner.Result, flags *reportFlags) error {
	if err := s.report(result, flags, s.cmd.OutOrStdout()); err != nil {
		return err
	}

	s.logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldFilesUnformatted, result.Stats.FilesUnformatted,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)
	return issuesFound(ExitCodeFromResult(result, flags.strict))
}

// cliConfig maps the flags every processing command shares onto a config.
func cliConfig(flags *runFlags) *config.Config {
	return &config.Config{
		Ignore:    flags.ignore,
		Jobs:      flags.jobs,
		NoBackups: flags.noBackups,
	}
}

// errStdinWithPaths is returned when --stdin-filepath is combined with paths.
var errStdinWithPaths = errors.New("--stdin-filepath cannot be combined with paths")

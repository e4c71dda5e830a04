package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/fishfix/internal/app"
	"github.com/doeshing/fishfix/internal/domain"
	"github.com/doeshing/fishfix/internal/pkg/filesystem"
	"github.com/doeshing/fishfix/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

type rootFlags struct {
	outPath     string
	appendMode  bool
	lint        bool
	noSort      bool
	noParseFix  bool
	noPathFix   bool
	verbose     bool
	archivePath string
	configPath  string
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(opts Options) *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "fishfix [flags] FISH_HISTORY...",
		Short: "Fix or lint fish_history files",
		Long: "fishfix repairs fish_history lines that are not valid YAML, merges several history files\n" +
			"and sorts the result by the 'when' field. Use - to read a history file from stdin.\n" +
			"Without --out-fname the merged history is written to stdout.",
		Version: version.Version,
		Args:    requireHistoryFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if opts.Stdin != nil {
		root.SetIn(opts.Stdin)
	}
	if opts.Stdout != nil {
		root.SetOut(opts.Stdout)
	}
	if opts.Stderr != nil {
		root.SetErr(opts.Stderr)
	}
	root.SetVersionTemplate(versionTemplate())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &domain.ConfigurationError{Reason: err.Error()}
	})

	f := root.Flags()
	f.StringVarP(&flags.outPath, "out-fname", "o", "", "Write fixed output to this file. Incompatible with --lint")
	f.BoolVarP(&flags.appendMode, "append", "a", false, "Append to --out-fname instead of overwriting it")
	f.BoolVar(&flags.lint, "lint", false, "Only count unparseable lines and unsorted entries, do not fix them")
	f.BoolVar(&flags.noSort, "nosort", false, "Do not sort entries by the 'when' field")
	f.BoolVar(&flags.noParseFix, "noparsefix", false, "Do not try to fix parse errors")
	f.BoolVar(&flags.noPathFix, "nopathfix", false, "Do not try to fix parse errors in 'paths' items")
	f.BoolVar(&flags.verbose, "verbose", false, "Enable debug logging, including YAML parse error details")
	f.StringVar(&flags.archivePath, "archive", "", "Also store the merged entries in this SQLite database")
	f.StringVar(&flags.configPath, "config", "", "Config file (default ~/.config/fishfix/config.yaml)")

	return root
}

func requireHistoryFiles(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return domain.NewConfigurationError(ErrHistoryFileRequired)
	}
	return nil
}

func run(cmd *cobra.Command, args []string, opts Options, flags rootFlags) error {
	ctx := cmd.Context()
	container, err := app.BuildContainer(ctx, flags.configPath, opts.Verbose || flags.verbose, app.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	req := buildRequest(args, flags, container.Config)
	req.Verbose = container.Logger.Verbose()
	container.Logger.Debug("request", map[string]interface{}{
		"inputs":   req.Inputs,
		"out":      req.OutPath,
		"lint":     req.Lint,
		"sort":     req.Sort,
		"parsefix": req.ParseFix,
		"pathfix":  req.FixPaths,
		"archive":  req.ArchivePath,
	})

	result, err := container.FixService.Run(ctx, req)
	if err != nil {
		return err
	}

	if req.Lint {
		RenderLintSummary(cmd.OutOrStdout(), result.Stats, isTerminal(cmd.OutOrStdout()))
		return nil
	}
	if req.Verbose {
		RenderRunSummary(cmd.ErrOrStderr(), result)
	}
	return nil
}

// buildRequest merges command line flags over the config file preferences.
func buildRequest(args []string, flags rootFlags, cfg domain.Config) domain.FixRequest {
	prefs := cfg.Preferences
	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		inputs = append(inputs, filesystem.ExpandHome(arg))
	}

	archivePath := flags.archivePath
	if archivePath == "" && !flags.lint {
		archivePath = cfg.Archive.Path
	}

	return domain.FixRequest{
		Inputs:      inputs,
		OutPath:     filesystem.ExpandHome(flags.outPath),
		Append:      flags.appendMode,
		Lint:        flags.lint,
		Sort:        prefs.Sort && !flags.noSort,
		ParseFix:    prefs.ParseFix && !flags.noParseFix,
		FixPaths:    prefs.FixPaths && !flags.noPathFix,
		ArchivePath: filesystem.ExpandHome(archivePath),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

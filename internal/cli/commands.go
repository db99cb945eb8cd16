package cli

import (
	"embed"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/overlay/internal/version"
	"github.com/arthur-debert/overlay/pkg/cobrax/topics"
	"github.com/arthur-debert/overlay/pkg/config"
	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/arthur-debert/overlay/pkg/filesystem"
	"github.com/arthur-debert/overlay/pkg/logging"
	"github.com/arthur-debert/overlay/pkg/output"
	"github.com/arthur-debert/overlay/pkg/overlay"
	"github.com/arthur-debert/overlay/pkg/patch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFiles embed.FS

// rootOptions holds the flag values shared by the command tree
type rootOptions struct {
	verbosity   int
	root        string
	configFile  string
	set         []string
	format      string
	patchEngine string
	logFile     bool

	overlay string
	list    bool
	backup  bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "overlay [overlay_name]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return errors.Wrap(err, errors.ErrConfigInvalid, MsgErrArgs)
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity, opts.logFile)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&opts.root, "root", "C", ".", MsgFlagRoot)
	pf.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	pf.StringArrayVar(&opts.set, "set", nil, MsgFlagSet)
	pf.StringVar(&opts.format, "format", "", MsgFlagFormat)
	pf.StringVar(&opts.patchEngine, "patch-engine", "", MsgFlagPatchEngine)
	pf.BoolVar(&opts.logFile, "log-file", false, MsgFlagLogFile)

	// Apply flags
	rootCmd.Flags().StringVarP(&opts.overlay, "overlay", "o", "", MsgFlagOverlay)
	rootCmd.Flags().BoolVarP(&opts.list, "list", "l", false, MsgFlagList)
	rootCmd.Flags().BoolVarP(&opts.backup, "backup", "b", false, MsgFlagBackup)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrConfigInvalid, MsgErrFlags)
	})
	rootCmd.SetVersionTemplate("overlay version {{.Version}}\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	initTopics(rootCmd)

	return rootCmd
}

// initTopics installs the embedded help topics. Markdown is rendered with
// glamour only when stdout is a color terminal.
func initTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(helpFiles, "help")
	if err != nil {
		return
	}

	var renderer topics.Renderer = &topics.PlainRenderer{}
	if output.DetectFormat(os.Stdout) == output.FormatTerminal {
		renderer = topics.NewGlamourRenderer()
	}

	// Logging is not set up yet, a failure just leaves the default help
	_, _ = topics.Initialize(rootCmd, sub, topics.Options{Renderer: renderer})
}

// loadConfig layers the configuration sources and the flags
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		Root: o.root,
		File: o.configFile,
		Set:  o.set,
		Overrides: &config.Config{
			Patch:   config.Patch{Engine: o.patchEngine},
			Logging: config.Logging{File: o.logFile},
			Output:  config.Output{Format: o.format},
		},
	})
	if err != nil {
		return nil, err
	}

	if cfg.Logging.File && !o.logFile {
		logging.SetupLogger(o.verbosity, true)
	}
	return cfg, nil
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("cli")

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	name, err := o.overlayName(cfg, args)
	if err != nil {
		return err
	}

	if cfg.Output.Styles != "" {
		if err := output.LoadStylesFromFile(cfg.Output.Styles); err != nil {
			return err
		}
	}

	fsys := filesystem.NewOS()
	engine, err := patch.NewEngine(cfg.Patch.Engine, fsys, cfg.Patch.Command)
	if err != nil {
		return err
	}

	printer := output.NewPrinter(cmd.OutOrStdout(), resolveFormat(cfg.OutputFormat(), cmd.OutOrStdout()))

	logger.Debug().
		Str("overlay", name).
		Str("root", o.root).
		Bool("list", o.list).
		Bool("backup", o.backup).
		Msg("Running overlay")

	applicator, err := overlay.New(name, overlay.Options{
		Root:        o.root,
		OverlaysDir: cfg.Paths.Overlays,
		BackupsDir:  cfg.Paths.Backups,
		Backup:      o.backup,
		FS:          fsys,
		Engine:      engine,
		Reporter:    printer,
	})
	if err != nil {
		return err
	}

	if o.list {
		printer.List(applicator.List())
	} else if _, err := applicator.Apply(cmd.Context()); err != nil {
		return err
	}

	if err := printer.Err(); err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrWriteOutput)
	}
	return nil
}

// overlayName picks the overlay from the positional argument, --overlay or
// the configured default, in that order
func (o *rootOptions) overlayName(cfg *config.Config, args []string) (string, error) {
	switch {
	case len(args) == 1 && o.overlay != "" && args[0] != o.overlay:
		return "", errors.Newf(errors.ErrConfigInvalid, MsgErrOverlayTwice, args[0], o.overlay)
	case len(args) == 1:
		return args[0], nil
	case o.overlay != "":
		return o.overlay, nil
	default:
		return cfg.Overlay.Default, nil
	}
}

// resolveFormat resolves FormatAuto against w, which only a terminal file
// can turn into FormatTerminal
func resolveFormat(f output.Format, w io.Writer) output.Format {
	if f != output.FormatAuto {
		return f
	}
	if file, ok := w.(*os.File); ok {
		return output.DetectFormat(file)
	}
	return output.FormatText
}

package cli

import (
	"fmt"

	"github.com/arthur-debert/overlay/internal/version"
	"github.com/arthur-debert/overlay/pkg/config"
	"github.com/arthur-debert/overlay/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  `Print detailed version information including commit hash and build date`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, MsgErrGenCompletion, args[0])
			}
			return nil
		},
	}
}

// newManCmd writes the man page of the whole tree to stdout
func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// ManHeader is the header of the overlay(1) man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "OVERLAY",
		Section: "1",
		Source:  "overlay " + version.Version,
		Manual:  "overlay manual",
	}
}

// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"finola/internal/config"
	"finola/internal/driver"
	ferrors "finola/internal/errors"
	"finola/internal/format"
	"finola/repl"
)

// app carries the persistent flags and the configuration they select.
type app struct {
	configPath string
	noColor    bool
	verbose    int

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "finola [file]",
		Short:        "Tokenize and parse Finola source",
		Long:         "Without a file argument finola starts an interactive session.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return repl.Start(cmd.InOrStdin(), cmd.OutOrStdout(), repl.Options{
					Prompt:       a.cfg.REPL.Prompt,
					Continuation: a.cfg.REPL.Continuation,
					Format:       a.cfg.Output.Format,
				})
			}
			return a.parseFile(cmd, args[0], driver.Options{}, a.cfg.Output.Format)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default: $FINOLA_CONFIG or ./finola.toml)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")

	cmd.AddCommand(newTokensCmd(a))
	cmd.AddCommand(newParseCmd(a))
	cmd.AddCommand(newGrammarCmd())
	cmd.AddCommand(newLSPCmd(a))

	return cmd
}

func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	commonlog.Configure(a.cfg.Log.Verbosity+a.verbose, a.cfg.LogPath())

	if a.noColor {
		color.NoColor = true
	} else if disable, decided := a.cfg.NoColor(); decided {
		color.NoColor = disable
	}
	return nil
}

func (a *app) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.Limits.Timeout.Duration)
}

// parseFile compiles path and writes the tree in the named format. Status
// lines and diagnostics go to stderr so the tree can be piped.
func (a *app) parseFile(cmd *cobra.Command, path string, opts driver.Options, formatName string) error {
	enc, err := format.New(formatName, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	source, err := driver.LoadFile(path)
	if err != nil {
		return err
	}

	ctx, cancel := a.timeout(cmd.Context())
	defer cancel()

	result, err := driver.Compile(ctx, path, source, opts)
	if err != nil {
		driver.Report(cmd.ErrOrStderr(), path, source, err)
		var ce ferrors.CompilerError
		if _, isText := enc.(*format.TextEncoder); !isText && stderrors.As(err, &ce) {
			if encErr := enc.EncodeDiagnostic(ce); encErr != nil {
				return fmt.Errorf("encode: %w", encErr)
			}
		}
		return fmt.Errorf("compilation of %s failed", path)
	}

	if err := enc.EncodeNode(result.Root()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), color.GreenString("Successfully processed %s in %s", path, driver.FormatDuration(result.Duration)))
	return nil
}

// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"finola/internal/driver"
	"finola/internal/format"
)

func newTokensCmd(a *app) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a Finola file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Output.Format
			}
			enc, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			path := args[0]
			source, err := driver.LoadFile(path)
			if err != nil {
				return err
			}

			ctx, cancel := a.timeout(cmd.Context())
			defer cancel()

			tokens, scanErr := driver.Tokens(ctx, source)
			if err := enc.EncodeTokens(tokens); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if scanErr != nil {
				driver.Report(cmd.ErrOrStderr(), path, source, scanErr)
				return fmt.Errorf("scanning %s failed", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Names, ", ")+")")

	return cmd
}

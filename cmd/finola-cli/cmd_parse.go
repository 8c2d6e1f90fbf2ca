// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"finola/internal/driver"
	"finola/internal/format"
)

func newParseCmd(a *app) *cobra.Command {
	var outputFormat string
	var engine string
	var expression bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Finola file and dump the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				outputFormat = a.cfg.Output.Format
			}

			switch engine {
			case driver.EngineHand, driver.EngineGrammar:
			default:
				return fmt.Errorf("unknown engine: %s", engine)
			}

			opts := driver.Options{Engine: engine, Expression: expression}
			return a.parseFile(cmd, args[0], opts, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVarP(&engine, "engine", "e", driver.EngineHand, "parser engine (hand, grammar)")
	cmd.Flags().BoolVar(&expression, "expr", false, "parse the file as a single expression")

	return cmd
}

// SPDX-License-Identifier: Apache-2.0
package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/glsp/server"

	"finola/internal/lsp"
)

const lsName = "finola"

func newLSPCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.NewServer(lsp.NewFinolaHandler().Handler(), lsName, a.verbose > 1)
			if address != "" {
				return s.RunTCP(address)
			}
			return s.RunStdio()
		},
	}

	cmd.Flags().StringVar(&address, "tcp", "", "listen on this address instead of stdio")

	return cmd
}

// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"finola/internal/config"
	"finola/internal/lsp"
)

const lsName = "finola"

var log = commonlog.GetLogger("finola.lsp")

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		cfg = config.Default()
	}

	// Logs go to stderr or the configured file; stdout carries the protocol.
	commonlog.Configure(max(cfg.Log.Verbosity, 1), cfg.LogPath())
	if err != nil {
		log.Warningf("using default configuration: %v", err)
	}

	s := server.NewServer(lsp.NewFinolaHandler().Handler(), lsName, false)

	log.Info("starting Finola language server")

	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %v", err)
		os.Exit(1)
	}
}

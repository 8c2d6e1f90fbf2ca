// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"finola/internal/config"
	"finola/internal/driver"
	"finola/internal/format"
	"finola/repl"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
	if disable, decided := cfg.NoColor(); decided {
		color.NoColor = disable
	}

	if len(os.Args) > 1 {
		os.Exit(compileFile(cfg, os.Args[1]))
	}

	if cfg.REPL.Banner {
		name := "there"
		if currentUser, err := user.Current(); err == nil {
			name = currentUser.Username
		}
		fmt.Printf("Welcome to the Finola REPL, %s!\n", name)
	}

	err = repl.Start(os.Stdin, os.Stdout, repl.Options{
		Prompt:       cfg.REPL.Prompt,
		Continuation: cfg.REPL.Continuation,
		Format:       cfg.Output.Format,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compileFile(cfg *config.Config, path string) int {
	source, err := driver.LoadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Limits.Timeout.Duration)
	defer cancel()

	result, err := driver.Compile(ctx, path, source, driver.Options{})
	if err != nil {
		driver.Report(os.Stderr, path, source, err)
		fmt.Fprintln(os.Stderr, color.RedString("Compilation failed"))
		return 1
	}

	enc, err := format.New(cfg.Output.Format, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := enc.EncodeNode(result.Root()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Fprintln(os.Stderr, color.GreenString("Successfully processed %s in %s", path, driver.FormatDuration(result.Duration)))
	return 0
}

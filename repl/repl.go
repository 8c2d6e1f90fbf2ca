// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/internal/format"
	"finola/internal/lexer"
	"finola/internal/parser"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

const replName = "<repl>"

var log = commonlog.GetLogger("finola.repl")

type Options struct {
	Prompt       string
	Continuation string
	// Format names the output encoder for trees and tokens: text, json or yaml.
	Format string
}

// Start reads lines from in until it is exhausted or ":quit" is entered.
// Each entry is parsed as an expression, or as a module when it starts with
// the module keyword. Input that ends before the construct is complete is
// kept and continued on the next line.
func Start(in io.Reader, out io.Writer, opts Options) error {
	if opts.Prompt == "" {
		opts.Prompt = PROMPT
	}
	if opts.Continuation == "" {
		opts.Continuation = CONTINUATION
	}

	enc, err := format.New(opts.Format, out)
	if err != nil {
		return err
	}

	prompt := color.New(color.FgCyan).SprintFunc()
	scanner := bufio.NewScanner(in)
	var pending []string

	for {
		if len(pending) == 0 {
			fmt.Fprint(out, prompt(opts.Prompt))
		} else {
			fmt.Fprint(out, prompt(opts.Continuation))
		}

		if !scanner.Scan() {
			if len(pending) > 0 {
				report(out, strings.Join(pending, "\n"))
			}
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if len(pending) == 0 {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "":
				continue
			case trimmed == ":quit":
				return nil
			case strings.HasPrefix(trimmed, ":tokens"):
				printTokens(out, enc, strings.TrimPrefix(trimmed, ":tokens"))
				continue
			}
		}

		pending = append(pending, line)
		source := strings.Join(pending, "\n")

		node, err := parse(source)
		var parseErr *parser.ParseError
		if err != nil && stderrors.As(err, &parseErr) && parseErr.AtEOF() {
			log.Debugf("continuing incomplete input at %s", parseErr.Position)
			continue
		}
		pending = nil

		if err != nil {
			printDiagnostic(out, source, err)
			continue
		}
		if err := enc.EncodeNode(node); err != nil {
			return err
		}
	}
}

func parse(source string) (ast.Node, error) {
	if strings.HasPrefix(strings.TrimSpace(source), "module") {
		return parser.ParseSource(source)
	}
	return parser.ParseExpr(source)
}

// report prints the diagnostic for input left incomplete at end of input.
func report(out io.Writer, source string) {
	if _, err := parse(source); err != nil {
		printDiagnostic(out, source, err)
	}
}

func printDiagnostic(out io.Writer, source string, err error) {
	ce, _ := ferrors.FromError(err)
	fmt.Fprint(out, ferrors.NewErrorReporter(replName, source).FormatError(ce))
}

func printTokens(out io.Writer, enc format.Encoder, source string) {
	source = strings.TrimSpace(source)
	tokens, err := lexer.Tokenize(source)
	if encErr := enc.EncodeTokens(tokens); encErr != nil {
		log.Errorf("failed to encode tokens: %v", encErr)
	}
	if err != nil {
		printDiagnostic(out, source, err)
	}
}

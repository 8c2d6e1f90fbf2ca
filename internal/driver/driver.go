package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"

	"finola/grammar"
	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/internal/lexer"
	"finola/internal/parser"
	"finola/token"
)

// Parsing engines accepted in Options.Engine.
const (
	EngineHand    = "hand"
	EngineGrammar = "grammar"
)

var log = commonlog.GetLogger("finola.driver")

type Options struct {
	// Engine selects the hand-written parser (default) or the participle
	// reference grammar.
	Engine string
	// Expression parses the source as a single expression instead of a module.
	Expression bool
}

// Result is a successful compilation.
type Result struct {
	Name     string
	Module   *ast.Module // set unless Options.Expression
	Expr     ast.Node    // set when Options.Expression
	Duration time.Duration
}

// Root returns the parsed tree, module or expression.
func (r *Result) Root() ast.Node {
	if r.Module != nil {
		return r.Module
	}
	return r.Expr
}

// LoadFile reads a source file.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// Compile parses source. Syntax errors are returned as ferrors.CompilerError
// values. When ctx ends first the parse is abandoned and ctx's error is
// returned.
func Compile(ctx context.Context, name, source string, opts Options) (*Result, error) {
	start := time.Now()

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := compile(name, source, opts)
		done <- outcome{result, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			log.Debugf("%s failed after %s: %v", name, time.Since(start), out.err)
			return nil, out.err
		}
		out.result.Duration = time.Since(start)
		log.Debugf("%s parsed in %s, %d nodes", name, out.result.Duration, ast.Count(out.result.Root()))
		return out.result, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("parsing %s: %w", name, ctx.Err())
	}
}

func compile(name, source string, opts Options) (*Result, error) {
	result := &Result{Name: name}

	switch opts.Engine {
	case "", EngineHand:
		var err error
		if opts.Expression {
			result.Expr, err = parser.ParseExpr(source)
		} else {
			result.Module, err = parser.ParseSource(source)
		}
		if err != nil {
			ce, _ := ferrors.FromError(err)
			return nil, ce
		}

	case EngineGrammar:
		if opts.Expression {
			expr, err := grammar.ParseExpression(name, source)
			if err != nil {
				ce, _ := grammar.AsCompilerError(source, err)
				return nil, ce
			}
			result.Expr = expr
		} else {
			program, err := grammar.ParseString(name, source)
			if err != nil {
				ce, _ := grammar.AsCompilerError(source, err)
				return nil, ce
			}
			result.Module = program.ToAST()
		}

	default:
		return nil, fmt.Errorf("unknown engine %q, expected %s or %s", opts.Engine, EngineHand, EngineGrammar)
	}

	return result, nil
}

// Tokens scans the whole of source. On a lexical error the tokens before it
// are returned together with the error.
func Tokens(ctx context.Context, source string) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := lexer.New(source)
	var tokens []token.Token
	for {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}

		tok, err := l.NextToken()
		if err != nil {
			ce, _ := ferrors.FromError(err)
			return tokens, ce
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// FormatDuration renders d with a unit that keeps it short.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

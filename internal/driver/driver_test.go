package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finola/internal/ast"
	ferrors "finola/internal/errors"
	"finola/token"
)

const adder = "module { func add(a: int, b: int) { a + b } }"

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adder.fn")
	require.NoError(t, os.WriteFile(path, []byte(adder), 0o644))

	source, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, adder, source)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.fn"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileEngines(t *testing.T) {
	for _, engine := range []string{"", EngineHand, EngineGrammar} {
		t.Run(engine, func(t *testing.T) {
			result, err := Compile(context.Background(), "adder.fn", adder, Options{Engine: engine})
			require.NoError(t, err)

			require.NotNil(t, result.Module)
			assert.Nil(t, result.Expr)
			assert.Equal(t, "adder.fn", result.Name)
			assert.Same(t, result.Module, result.Root())

			fns := result.Module.Functions()
			require.Len(t, fns, 1)
			assert.Equal(t, "add", fns[0].Name.Lexeme)
		})
	}
}

func TestCompileExpression(t *testing.T) {
	for _, engine := range []string{EngineHand, EngineGrammar} {
		t.Run(engine, func(t *testing.T) {
			result, err := Compile(context.Background(), "expr", "1 + 2 * 3", Options{Engine: engine, Expression: true})
			require.NoError(t, err)

			assert.Nil(t, result.Module)
			require.IsType(t, &ast.Binary{}, result.Root())
			assert.Equal(t, "(1 + (2 * 3))", result.Root().String())
		})
	}
}

func TestCompileReportsCompilerErrors(t *testing.T) {
	tests := []struct {
		engine string
		source string
		code   string
	}{
		{EngineHand, "module { func f( }", ferrors.ErrorUnexpectedToken},
		{EngineHand, "module {", ferrors.ErrorUnexpectedEOF},
		{EngineHand, "module { # }", ferrors.ErrorUnrecognizedCharacter},
		{EngineGrammar, "module {", ferrors.ErrorUnexpectedEOF},
		{EngineGrammar, "module { # }", ferrors.ErrorUnrecognizedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.engine+"/"+tt.source, func(t *testing.T) {
			_, err := Compile(context.Background(), "bad.fn", tt.source, Options{Engine: tt.engine})
			require.Error(t, err)

			var ce ferrors.CompilerError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.code, ce.Code)
		})
	}
}

func TestCompileUnknownEngine(t *testing.T) {
	_, err := Compile(context.Background(), "x", adder, Options{Engine: "yacc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown engine "yacc"`)
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either outcome is acceptable once the context is done, but a
	// cancellation must surface as context.Canceled.
	_, err := Compile(ctx, "x", adder, Options{})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestTokens(t *testing.T) {
	tokens, err := Tokens(context.Background(), "1 + 2")
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, token.EOF, tokens[3].Type)

	tokens, err = Tokens(context.Background(), "a @")
	require.Error(t, err)
	require.Len(t, tokens, 1)

	var ce ferrors.CompilerError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ferrors.ErrorUnrecognizedCharacter, ce.Code)
	assert.Equal(t, token.Position{Line: 0, Column: 2, Offset: 2}, ce.Position)
}

func TestTokensCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Tokens(ctx, "1 + 2")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ns", FormatDuration(500*time.Nanosecond))
	assert.Equal(t, "1.5µs", FormatDuration(1500*time.Nanosecond))
	assert.Equal(t, "2.5ms", FormatDuration(2500*time.Microsecond))
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.00min", FormatDuration(2*time.Minute))
}

func TestReport(t *testing.T) {
	color.NoColor = true

	source := "module { func f( }"
	_, err := Compile(context.Background(), "bad.fn", source, Options{})
	require.Error(t, err)

	var buf bytes.Buffer
	Report(&buf, "bad.fn", source, err)
	assert.Contains(t, buf.String(), "error[E0102]")
	assert.Contains(t, buf.String(), "bad.fn:1:18")

	buf.Reset()
	Report(&buf, "bad.fn", source, context.DeadlineExceeded)
	assert.Equal(t, "bad.fn: context deadline exceeded\n", buf.String())
}

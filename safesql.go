// Package safesql is the macro entry point: the adapter between a
// host's token buffer and the lexer/parser/analyzer pipeline. It
// mirrors the teacher lineage's SQLCodeParseErrors aggregation (see
// error.go) for combining per-statement diagnostics into one host-level
// compile error, and mints a correlation ID per invocation the way a
// request-scoped ID ties together one build's diagnostics.
package safesql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vippsas/safesql/analyzer"
	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/lexer"
	"github.com/vippsas/safesql/parser"
	"github.com/vippsas/safesql/schema"
)

// CompileError aggregates every diagnostic produced by a single Compile
// call. Its Error() rendering leads with the first diagnostic's primary
// span and message, then appends the rest, mirroring
// SQLCodeParseErrors.Error in the teacher lineage.
type CompileError struct {
	Diagnostics []diag.Diagnostic
}

func (e *CompileError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "safesql: compile failed with no diagnostics"
	}
	var b strings.Builder
	first := e.Diagnostics[0]
	fmt.Fprintf(&b, "safesql: %s at %s", first.Message, first.PrimarySpan())
	for _, d := range e.Diagnostics[1:] {
		fmt.Fprintf(&b, "\n  also: %s at %s", d.Message, d.PrimarySpan())
	}
	return b.String()
}

// Result is the successful output of a Compile call: a validated AST and
// an invocation correlation ID, for stitching this compile's log lines
// back together across a build with many invocations.
type Result struct {
	Command      ast.Command
	InvocationID uuid.UUID
	Diagnostics  []diag.Diagnostic // Warning/Note/Help only; Compile fails on any Error
}

// Compile lexes, parses, and (if schema is non-nil) semantically
// analyzes src, a single SQL statement embedded in host source. On
// success it returns a Result; on any lex, parse, or semantic error it
// returns a *CompileError aggregating every diagnostic produced.
//
// schema may be nil, in which case the semantic pass is skipped
// entirely and only syntax is validated -- the schema cache's "absent
// schema URL" behavior pushed up to the entry point.
func Compile(src []byte, snap *schema.Snapshot) (Result, error) {
	invocationID, err := uuid.NewV4()
	if err != nil {
		return Result{}, fmt.Errorf("safesql: minting invocation id: %w", err)
	}

	tokens, lexDiag := lexer.Lex(src)
	if lexDiag != nil {
		return Result{}, &CompileError{Diagnostics: []diag.Diagnostic{*lexDiag}}
	}

	cmd, parseDiag := parser.Parse(tokens)
	if parseDiag != nil {
		return Result{}, &CompileError{Diagnostics: []diag.Diagnostic{*parseDiag}}
	}

	ctx := analyzer.NewContext(snap)
	analyzer.Analyze(ctx, cmd)
	if ctx.HasErrors() {
		return Result{}, &CompileError{Diagnostics: ctx.Diags}
	}

	return Result{Command: cmd, InvocationID: invocationID, Diagnostics: ctx.Diags}, nil
}

// LoadSchema connects to dsn and loads the process-wide shared schema
// Snapshot, or returns a nil Snapshot if dsn is empty -- the signal to
// Compile that the semantic pass should be skipped.
func LoadSchema(ctx context.Context, dsn string) (*schema.Snapshot, error) {
	if dsn == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("safesql: connecting to schema database: %w", err)
	}
	return schema.Shared(ctx, pool)
}

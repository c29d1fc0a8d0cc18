// Package analyzer is the semantic pass: name resolution against a
// schema.Snapshot and bottom-up expression type inference, accumulating
// every error on a Context rather than aborting at the first one.
package analyzer

import (
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/schema"
)

// Context carries the schema snapshot consulted for name resolution and
// the diagnostics accumulated across a single statement's analysis. A
// nil Snapshot makes the whole analysis a no-op, per the schema cache's
// "absent schema URL" behavior.
type Context struct {
	Snapshot *schema.Snapshot
	Diags    []diag.Diagnostic
}

// NewContext builds a Context over snap, which may be nil.
func NewContext(snap *schema.Snapshot) *Context {
	return &Context{Snapshot: snap}
}

func (ctx *Context) report(d diag.Diagnostic) {
	ctx.Diags = append(ctx.Diags, d)
}

// HasErrors reports whether any Error-level diagnostic was accumulated.
func (ctx *Context) HasErrors() bool {
	for _, d := range ctx.Diags {
		if d.Level == diag.Error {
			return true
		}
	}
	return false
}

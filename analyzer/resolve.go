package analyzer

import (
	"github.com/vippsas/safesql/ast"
	"github.com/vippsas/safesql/diag"
	"github.com/vippsas/safesql/schema"
)

const defaultSchemaName = "public"

// resolveTable resolves tn against the context's snapshot. On a miss it
// reports an error with up to five near-miss suggestions and returns
// ok=false; callers should treat every column under an unresolved table
// as Unknown rather than reporting further errors about it.
func resolveTable(ctx *Context, tn ast.TableName) (cols map[string]schema.Column, ok bool) {
	if ctx.Snapshot == nil {
		return nil, false
	}

	schemaName := defaultSchemaName
	if tn.Schema != nil {
		schemaName = tn.Schema.Fold()
	}
	tableName := tn.Name.Fold()

	cols, ok = ctx.Snapshot.Table(schemaName, tableName)
	if ok {
		return cols, true
	}

	suggestions := diag.Suggest(tableName, ctx.Snapshot.TableNames())
	d := diag.Errorf(tn.Span(), "table does not exist: `%s`", tn.Name.String())
	if len(suggestions) > 0 {
		d = d.WithChild(diag.New(diag.Help, "did you mean "+diag.FormatSuggestions(suggestions)+"?"))
	}
	ctx.report(d)
	return nil, false
}

// resolveColumn resolves col.Name within an already-resolved table's
// column set. On a miss it reports an error with suggestions and
// returns ok=false.
func resolveColumn(ctx *Context, cols map[string]schema.Column, col ast.Column) (schema.Column, bool) {
	return resolveColumnName(ctx, cols, col.Name)
}

// resolveColumnName is the shared lookup behind resolveColumn and the
// bare-name column lists of INSERT's column list and UPDATE's SET list.
func resolveColumnName(ctx *Context, cols map[string]schema.Column, name ast.Name) (schema.Column, bool) {
	if cols == nil {
		return schema.Column{}, false
	}
	folded := name.Fold()
	c, ok := cols[folded]
	if ok {
		return c, true
	}

	suggestions := diag.Suggest(folded, schema.ColumnNames(cols))
	d := diag.Errorf(name.Span(), "column does not exist: `%s`", name.String())
	if len(suggestions) > 0 {
		d = d.WithChild(diag.New(diag.Help, "did you mean "+diag.FormatSuggestions(suggestions)+"?"))
	}
	ctx.report(d)
	return schema.Column{}, false
}

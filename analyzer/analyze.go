package analyzer

import (
	"github.com/vippsas/safesql/ast"
)

// Analyze runs name resolution and type inference over cmd, accumulating
// every diagnostic on ctx. It never aborts early: a SELECT with three
// unresolved columns reports all three. With a nil Snapshot it does
// nothing and reports no diagnostics.
func Analyze(ctx *Context, cmd ast.Command) {
	if ctx.Snapshot == nil {
		return
	}
	switch c := cmd.(type) {
	case *ast.SelectStmt:
		analyzeSelect(ctx, c)
	case *ast.InsertStmt:
		analyzeInsert(ctx, c)
	case *ast.UpdateStmt:
		analyzeUpdate(ctx, c)
	case *ast.DeleteStmt:
		analyzeDelete(ctx, c)
	}
}

func scopeFor(ctx *Context, table *ast.TableName) scope {
	if table == nil {
		return scope{}
	}
	cols, _ := resolveTable(ctx, *table)
	return scope{cols: cols}
}

func analyzeSelect(ctx *Context, s *ast.SelectStmt) {
	sc := scopeFor(ctx, s.From)
	for _, item := range s.Items {
		switch it := item.(type) {
		case *ast.ExprItem:
			inferType(ctx, sc, it.Value)
		case *ast.WildcardItem:
			analyzeWildcard(ctx, sc, it)
		}
	}
}

func analyzeWildcard(ctx *Context, sc scope, item *ast.WildcardItem) {
	if sc.cols == nil {
		return
	}
	for _, col := range item.Except {
		resolveColumn(ctx, sc.cols, col)
	}
}

func analyzeInsert(ctx *Context, s *ast.InsertStmt) {
	cols, ok := resolveTable(ctx, s.Table)
	if !ok {
		cols = nil
	}
	for _, name := range s.Columns {
		resolveColumnName(ctx, cols, name)
	}
	sc := scope{cols: cols}
	for _, row := range s.Rows {
		for _, v := range row.Values {
			if !v.Default {
				inferType(ctx, sc, v.Expr)
			}
		}
	}
}

func analyzeUpdate(ctx *Context, s *ast.UpdateStmt) {
	cols, ok := resolveTable(ctx, s.Table)
	if !ok {
		cols = nil
	}
	sc := scope{cols: cols}
	for _, set := range s.Sets {
		resolveColumnName(ctx, cols, set.Column)
		inferType(ctx, sc, set.Value)
	}
}

func analyzeDelete(ctx *Context, s *ast.DeleteStmt) {
	cols, ok := resolveTable(ctx, s.Table)
	if !ok {
		cols = nil
	}
	if s.Where != nil {
		inferType(ctx, scope{cols: cols}, s.Where)
	}
}

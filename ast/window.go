package ast

import "github.com/vippsas/safesql/token"

type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// SortItem is one entry of an ORDER BY list inside an OVER clause.
type SortItem struct {
	SpanAll   token.Span
	Expr      Expr
	Direction SortDirection
	Nulls     NullsOrder
}

type FrameKind int

const (
	FrameRows FrameKind = iota
	FrameRange
	FrameGroups
)

type FrameBoundKind int

const (
	BoundUnboundedPreceding FrameBoundKind = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

type FrameBound struct {
	SpanAll token.Span
	Kind    FrameBoundKind
	Offset  Expr // non-nil only for BoundPreceding/BoundFollowing
}

type ExcludeOption int

const (
	ExcludeNone ExcludeOption = iota
	ExcludeCurrentRow
	ExcludeGroup
	ExcludeTies
)

// FrameClause is the ROWS/RANGE/GROUP portion of an OVER clause: either
// BETWEEN start AND end, or a single start bound (End is then nil), with
// an optional EXCLUDE sub-clause.
type FrameClause struct {
	SpanAll token.Span
	Kind    FrameKind
	Start   FrameBound
	End     *FrameBound
	Exclude ExcludeOption
}

// WindowSpec is the body of an OVER (...) clause: optional PARTITION BY,
// optional ORDER BY, optional frame.
type WindowSpec struct {
	SpanAll    token.Span
	PartitionBy []Expr
	OrderBy    []SortItem
	Frame      *FrameClause
}

// OverClause attaches a WindowSpec to a window-function call.
type OverClause struct {
	SpanAll token.Span
	Spec    WindowSpec
}

// Package diag implements the diagnostic facility: levels, spans, child
// notes, and "did-you-mean" suggestions.
package diag

import (
	"fmt"
	"strings"

	"github.com/vippsas/safesql/token"
)

// Level is the diagnostic severity, in ascending order of severity.
type Level int

const (
	Note Level = iota
	Help
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Note:
		return "note"
	case Help:
		return "help"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a structured compiler message: a level, a primary message,
// one or more primary spans, and an arbitrary tree of child notes.
type Diagnostic struct {
	Level    Level
	Message  string
	Spans    []token.Span
	Children []Diagnostic
}

// New builds a Diagnostic at the given level with the given primary spans.
func New(level Level, message string, spans ...token.Span) Diagnostic {
	return Diagnostic{Level: level, Message: message, Spans: spans}
}

// Errorf builds an Error-level Diagnostic with a formatted message.
func Errorf(span token.Span, format string, args ...interface{}) Diagnostic {
	return New(Error, fmt.Sprintf(format, args...), span)
}

// WithChild returns a copy of d with child appended to its Children.
func (d Diagnostic) WithChild(child Diagnostic) Diagnostic {
	d.Children = append(d.Children, child)
	return d
}

// PrimarySpan returns the diagnostic's first primary span, or the zero
// span if it carries none.
func (d Diagnostic) PrimarySpan() token.Span {
	if len(d.Spans) == 0 {
		return token.Span{}
	}
	return d.Spans[0]
}

// Format renders the diagnostic as "level: message" followed by indented
// child notes, one per line. It does not resolve spans to line/column;
// callers that have the original buffer should use Locate for that.
func (d Diagnostic) Format() string {
	var b strings.Builder
	d.formatIndented(&b, 0)
	return strings.TrimRight(b.String(), "\n")
}

func (d Diagnostic) formatIndented(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s: %s\n", d.Level, d.Message)
	for _, c := range d.Children {
		c.formatIndented(b, depth+1)
	}
}

// Locate converts a byte offset into a 1-indexed line/column pair against
// buf, mirroring the teacher lineage's Pos type without baking a file
// reference into the core diagnostic (file attribution is a macro-boundary
// concern, see the safesql package).
func Locate(buf []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(buf); i++ {
		if buf[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}

// Package catalog is the table of built-in SQL functions this front end
// recognizes, keyed by canonical uppercased name with arity-based
// overloads (the same name can have distinct signatures at different
// argument counts, e.g. LOG(x) vs LOG(b, x)). Modeled after the
// category-tagged keyword table in pgsql/reserved.go, but for functions
// rather than reserved words.
package catalog

import "strings"

// ArgKind is the closed set of argument/return shapes a built-in
// function signature can demand or produce.
type ArgKind int

const (
	KindNumeric ArgKind = iota
	KindText
	KindAny
)

// FuncSpec is one arity-specific signature of a catalog entry.
type FuncSpec struct {
	Canonical string
	Aliases   []string
	Args      []ArgKind
	Returns   ArgKind
}

var table = buildTable()

// byName indexes specs by every name they're callable under (canonical
// and aliases), each bucket holding one entry per arity.
var byName = buildIndex(table)

func buildTable() []FuncSpec {
	return []FuncSpec{
		{Canonical: "ABS", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "CEIL", Aliases: []string{"CEILING"}, Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "FLOOR", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "ROUND", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "ROUND", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "SIGN", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},

		{Canonical: "COS", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "SIN", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "LN", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "SQRT", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "PI", Args: nil, Returns: KindNumeric},

		// LOG has both a one-argument (natural base) and a two-argument
		// (explicit base) form, hence two entries of the same name.
		{Canonical: "LOG", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "LOG", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "ATAN2", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "POWER", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},

		// Remaining trigonometric and exponential functions: recognized
		// by the catalog so they parse as ordinary function calls, but
		// §4.9 gives no type rule for them, so inference leaves them
		// Unknown rather than guessing a return type.
		{Canonical: "ACOS", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "ASIN", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "ATAN", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "COSH", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "COT", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "SINH", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "TAN", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "TANH", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "DEGREES", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "RADIANS", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "EXP", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "LOG10", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "MOD", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},

		{Canonical: "BITAND", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITOR", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITXOR", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITNOT", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		// Negated-bitwise and bit-inspection family: cataloged but
		// untyped by §4.9, same as the trig functions above.
		{Canonical: "BITNAND", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITNOR", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITXNOR", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITGET", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "BITCOUNT", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "LSHIFT", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "RSHIFT", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "ULSHIFT", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "URSHIFT", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "ROTATELEFT", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},
		{Canonical: "ROTATERIGHT", Args: []ArgKind{KindNumeric, KindNumeric}, Returns: KindNumeric},

		// Non-deterministic / hashing functions: arbitrary-expression or
		// no-argument forms, uncovered by §4.9's type rules.
		{Canonical: "ORA_HASH", Args: []ArgKind{KindAny}, Returns: KindNumeric},
		{Canonical: "RAND", Aliases: []string{"RANDOM"}, Args: []ArgKind{KindNumeric}, Returns: KindNumeric},
		{Canonical: "RANDOM_UUID", Aliases: []string{"UUID"}, Args: nil, Returns: KindText},
		{Canonical: "SECURE_RAND", Args: []ArgKind{KindNumeric}, Returns: KindNumeric},

		{Canonical: "ASCII", Args: []ArgKind{KindText}, Returns: KindNumeric},
		{Canonical: "CHAR_LENGTH", Aliases: []string{"CHARACTER_LENGTH", "LENGTH"}, Args: []ArgKind{KindText}, Returns: KindNumeric},
		{Canonical: "CONCAT", Args: []ArgKind{KindAny, KindAny}, Returns: KindText},
		{Canonical: "LOWER", Aliases: []string{"LCASE"}, Args: []ArgKind{KindText}, Returns: KindText},
		{Canonical: "UPPER", Aliases: []string{"UCASE"}, Args: []ArgKind{KindText}, Returns: KindText},
		{Canonical: "LEFT", Args: []ArgKind{KindText, KindNumeric}, Returns: KindText},
		{Canonical: "RIGHT", Args: []ArgKind{KindText, KindNumeric}, Returns: KindText},
		{Canonical: "REPEAT", Args: []ArgKind{KindText, KindNumeric}, Returns: KindText},
		{Canonical: "SPACE", Args: []ArgKind{KindNumeric}, Returns: KindText},

		// String functions §4.9 gives no inference rule for: cataloged
		// for parseability, typed Unknown until a rule is written.
		{Canonical: "CHAR", Aliases: []string{"CHR"}, Args: []ArgKind{KindNumeric}, Returns: KindText},
		{Canonical: "DIFFERENCE", Args: []ArgKind{KindText, KindText}, Returns: KindNumeric},
		{Canonical: "HEXTORAW", Args: []ArgKind{KindText}, Returns: KindText},
		{Canonical: "SOUNDEX", Args: []ArgKind{KindText}, Returns: KindText},
	}
}

func buildIndex(specs []FuncSpec) map[string][]FuncSpec {
	idx := make(map[string][]FuncSpec)
	for _, s := range specs {
		idx[s.Canonical] = append(idx[s.Canonical], s)
		for _, alias := range s.Aliases {
			idx[alias] = append(idx[alias], s)
		}
	}
	return idx
}

// Names returns every callable name in the catalog (canonical names and
// aliases), used to drive "did you mean" suggestions on an unresolved
// function reference.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}

// Lookup finds the FuncSpec matching name (case-insensitive) at exactly
// argCount arguments. ok is false if the name is unknown or no overload
// matches that arity.
func Lookup(name string, argCount int) (spec FuncSpec, ok bool) {
	specs, found := byName[strings.ToUpper(name)]
	if !found {
		return FuncSpec{}, false
	}
	for _, s := range specs {
		if len(s.Args) == argCount {
			return s, true
		}
	}
	return FuncSpec{}, false
}

// Known reports whether name matches any catalog entry, regardless of
// arity -- used to distinguish "wrong arity" from "unknown function"
// diagnostics.
func Known(name string) bool {
	_, found := byName[strings.ToUpper(name)]
	return found
}

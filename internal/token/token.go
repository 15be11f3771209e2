// Package token defines source positions and the L-dst lexical
// vocabulary the rest of the transformer shares: binary/unary operator
// tags, the Lua-family reserved word set, and the additional names the
// naming service (internal/naming) must never hand out because the
// runtime or the renderer already claims them.
package token

// Op identifies an L-dst operator. Op values are attached to
// internal/dstast.Binary and internal/dstast.Unary nodes; the
// renderer maps them to their textual form, and the dialect config
// decides which operators are native (modern) versus routed through a
// runtime helper call (classic).
type Op int

const (
	OpNone Op = iota

	// Arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpIDiv // integer division, "//" in modern dialect
	OpMod
	OpPow
	OpNeg // unary minus
	OpLen // unary "#"

	// Comparison
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Logical
	OpAnd
	OpOr
	OpNot

	// Bitwise (modern dialect only; classic routes through a runtime call)
	OpBAnd
	OpBOr
	OpBXor
	OpBNot
	OpShl
	OpShr

	// String
	OpConcat
)

// String renders the canonical modern-dialect spelling of op. Classic
// dialect substitutions for division and bitwise operators are the
// renderer's concern, not this package's.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpIDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpNeg:
		return "-"
	case OpLen:
		return "#"
	case OpEq:
		return "=="
	case OpNe:
		return "~="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpBAnd:
		return "&"
	case OpBOr:
		return "|"
	case OpBXor:
		return "~"
	case OpBNot:
		return "~"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpConcat:
		return ".."
	default:
		return "?"
	}
}

// Reserved is the set of L-dst keywords — words that occupy a reserved
// grammar position and can therefore never be handed out as a plain
// identifier by internal/naming.
var Reserved = buildSet([]string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "goto", "if", "in", "local", "nil", "not", "or",
	"repeat", "return", "then", "true", "until", "while",
})

// CompilerReserved is the curated list from spec.md §4.C rule 2: names
// the runtime namespace occupies, plus L-src keywords that would be
// confusing if reused as plain L-dst identifiers.
var CompilerReserved = buildSet([]string{
	"System", "Linq",
	// curated L-src keywords worth shielding against accidental reuse
	"this", "base", "class", "namespace", "interface", "struct", "enum",
	"delegate", "event", "using", "try", "catch", "finally", "throw",
	"new", "is", "as", "typeof", "sizeof", "default", "ref", "out",
	"params", "async", "await", "yield", "lock", "unsafe", "fixed",
	"override", "virtual", "abstract", "sealed", "partial", "static",
	"public", "private", "protected", "internal", "readonly", "const",
	"var", "void", "null", "true", "false",
})

// MetatableMethods lists the metatable hook names the L-dst runtime's
// object-model adapter looks up by convention (spec.md §4.C rule 3).
// Operator declarations land here via internal/transform's operator
// translation (op_Addition, op_Explicit, …) — those translated names are
// safe; it is the *raw* metatable hook spelling that must never collide
// with a plain user method name.
var MetatableMethods = buildSet([]string{
	"__add", "__sub", "__mul", "__div", "__mod", "__pow", "__unm",
	"__idiv", "__band", "__bor", "__bxor", "__bnot", "__shl", "__shr",
	"__concat", "__len", "__eq", "__lt", "__le", "__index", "__newindex",
	"__call", "__tostring", "__metatable", "__pairs", "__close",
})

// AdapterReserved lists the runtime's reserved adapter-facing member
// names (spec.md §4.C rule 3 / §6). User symbols that collide with these
// take the same guaranteed disambiguation as metatable methods.
var AdapterReserved = buildSet([]string{
	"__ctor__", "__base__", "__inherits__", "__interfaces__",
	"__default__", "__attributes__", "__clone__", "__name__", "__kind__",
})

// IsReservedAnywhere reports whether name collides with any of the four
// reserved sets above — the single check internal/naming needs before
// handing out an identifier.
func IsReservedAnywhere(name string) bool {
	return Reserved[name] || CompilerReserved[name] || MetatableMethods[name] || AdapterReserved[name]
}

func buildSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

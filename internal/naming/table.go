// Package naming assigns collision-free L-dst identifiers to user
// symbols. Where internal/semantic's symbol table resolves a name that
// already exists in source, a Table runs the opposite direction: it
// hands out a name a symbol does not have yet, and remembers the
// decision so every later reference to that symbol renders identically.
package naming

import (
	"fmt"

	"github.com/coregx/coregex"

	"github.com/kolkov/lunac/internal/srcast"
	"github.com/kolkov/lunac/internal/token"
)

// asciiIdent matches a name that is already safe to emit verbatim — a
// letter or `_` followed by bytes in [A-Za-z0-9_]. Anything that fails
// this check goes through the base-63 escape pass, which also guards a
// leading digit.
var asciiIdent = mustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("naming: invalid pattern %q: %v", pattern, err))
	}
	return re
}

// Table is a hierarchical scope of name assignments. A root Table is
// created once per compilation unit; NewScope derives a child table for
// each nested naming scope (a type's member scope, a function body, a
// block) the way internal/semantic.SymbolTable derives a child for a
// nested resolution scope — except a Table never looks a name up before
// it exists, only assigns one.
type Table struct {
	parent *Table
	root   *Table

	assigned map[*srcast.Symbol]string
	used     map[string]bool

	// typeNames holds the assigned name of every SymType symbol seen so
	// far, keyed by its source Name. Only the root table's map is ever
	// read or written; nested qualification (rule 4) looks up a type's
	// immediate container here regardless of which scope registered it.
	typeNames map[string]string
}

// NewRoot creates a fresh, empty root Table.
func NewRoot() *Table {
	t := &Table{
		assigned:  make(map[*srcast.Symbol]string),
		used:      make(map[string]bool),
		typeNames: make(map[string]string),
	}
	t.root = t
	return t
}

// NewScope derives a child scope. Names assigned in the child are
// checked for collisions only against siblings already assigned in that
// same child — exactly the "unique within its scope" rule in spec.md
// §4.C rule 2 — while Get still walks up to the parent chain so a
// reference deeper in the tree can resolve a name assigned higher up.
func (t *Table) NewScope() *Table {
	return &Table{
		parent:   t,
		root:     t.root,
		assigned: make(map[*srcast.Symbol]string),
		used:     make(map[string]bool),
	}
}

// Assign applies the four ordered rules to sym.Name and returns the
// final L-dst identifier. Assign panics if called twice for the same
// symbol — assignment is monotonic and write-once, matching the rest of
// this compiler's fail-fast error discipline.
func (t *Table) Assign(sym *srcast.Symbol) string {
	if sym == nil {
		panic("naming: cannot assign a name to a nil symbol")
	}
	if _, ok := t.assigned[sym]; ok {
		panic(fmt.Sprintf("naming: symbol %q already has an assigned name", sym.Name))
	}

	base := encodeNonASCII(sym.Name)
	disambiguated := t.disambiguate(base)
	final := t.qualify(sym, disambiguated)

	if sym.Kind == srcast.SymType {
		t.root.typeNames[sym.Name] = final
	}

	t.assigned[sym] = final
	t.used[disambiguated] = true
	return final
}

// ResolveTypeName looks up the assigned name of a type by its source
// name, for call sites that only carry a TypeRef (no *srcast.Symbol) —
// typeof/is-pattern targets and constructor dispatch both work from a
// TypeRef. It reports ok == false for a type Assign has not run on yet.
func (t *Table) ResolveTypeName(sourceName string) (string, bool) {
	name, ok := t.root.typeNames[sourceName]
	return name, ok
}

// Get returns the name previously assigned to sym, searching this scope
// and every ancestor scope. It never assigns — a symbol with no prior
// Assign call reports ok == false.
func (t *Table) Get(sym *srcast.Symbol) (string, bool) {
	for s := t; s != nil; s = s.parent {
		if name, ok := s.assigned[sym]; ok {
			return name, true
		}
	}
	return "", false
}

// disambiguate applies rules 2 and 3: a name that is a reserved word,
// a compiler-reserved name, a metatable method name, or an adapter
// reserved name (all folded together by token.IsReservedAnywhere), or
// that collides with a sibling already claimed in this scope, is
// renamed using the sequence N, N_, _N, N1, N2, … until one is free.
func (t *Table) disambiguate(base string) string {
	if t.nameFree(base) {
		return base
	}
	if t.nameFree(base + "_") {
		return base + "_"
	}
	if t.nameFree("_" + base) {
		return "_" + base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if t.nameFree(candidate) {
			return candidate
		}
	}
}

func (t *Table) nameFree(name string) bool {
	return !token.IsReservedAnywhere(name) && !t.used[name]
}

// qualify applies rule 4: a generic type carries an `_N` arity suffix
// (N the number of type parameters) so closed and open instantiations
// of the same definition stay textually distinct, and a nested type is
// qualified as `Outer.Inner` using its container's already-assigned
// name when one is on record, falling back to the container's source
// name otherwise.
func (t *Table) qualify(sym *srcast.Symbol, name string) string {
	if sym.Kind != srcast.SymType {
		return name
	}
	if n := len(sym.TypeArgs); n > 0 {
		name = fmt.Sprintf("%s_%d", name, n)
	}
	if sym.ContainingType != nil {
		outer := sym.ContainingType.Name
		if assigned, ok := t.root.typeNames[sym.ContainingType.Name]; ok {
			outer = assigned
		}
		name = outer + "." + name
	}
	return name
}

// base63Alphabet is the 63-character escape alphabet from spec.md §4.C
// rule 1: every byte a bare L-dst identifier may contain, digits first
// so a single-digit encoding never looks like a keyword fragment.
const base63Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"

// encodeNonASCII implements rule 1. A name asciiIdent already accepts is
// returned unchanged (the common case, checked with a single coregex
// scan); otherwise every rune outside [A-Za-z0-9_] is
// replaced with `_` followed by its code point written in base 63, and
// the whole result is prefixed with `_` if it would otherwise start
// with a digit.
func encodeNonASCII(name string) string {
	if asciiIdent.MatchString(name) {
		return name
	}

	out := make([]byte, 0, len(name))
	for _, r := range name {
		if isPlainIdentRune(r) {
			out = append(out, byte(r))
			continue
		}
		out = append(out, '_')
		out = append(out, encodeRune(r)...)
	}

	if len(out) > 0 && out[0] >= '0' && out[0] <= '9' {
		out = append([]byte{'_'}, out...)
	}
	return string(out)
}

func isPlainIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// encodeRune writes the code point of r in base 63, most significant
// digit first.
func encodeRune(r rune) []byte {
	n := uint32(r)
	if n == 0 {
		return []byte{base63Alphabet[0]}
	}
	var rev []byte
	for n > 0 {
		rev = append(rev, base63Alphabet[n%63])
		n /= 63
	}
	out := make([]byte, len(rev))
	for i, b := range rev {
		out[len(rev)-1-i] = b
	}
	return out
}

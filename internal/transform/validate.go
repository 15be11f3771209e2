package transform

import (
	"github.com/kolkov/lunac/internal/srcast"
	"github.com/kolkov/lunac/internal/token"
)

// validateUnit walks a compilation unit for semantic-input contract
// violations the type system cannot rule out on its own: every
// TypeDecl/member decl carries a Sym the naming service needs to assign
// an identifier, and it is the oracle's job — not this repository's — to
// guarantee one is always present. A fixture or front end that omits one
// would otherwise surface as a nil-pointer panic deep inside
// memberIdentName, escaping Compile's recover instead of becoming a
// normal *CompilationError. Running the check once, up front, keeps
// every lowering rule free to assume Sym is never nil.
func validateUnit(cu *srcast.CompilationUnit) {
	for _, d := range cu.Delegates {
		requireSym(d.Sym, d.Pos(), "delegate %q", d.Name)
	}
	for _, t := range cu.Types {
		validateTypeDecl(t)
	}
}

func validateTypeDecl(t *srcast.TypeDecl) {
	requireSym(t.Sym, t.Pos(), "type %q", t.Name)

	for _, f := range t.Fields {
		requireSym(f.Sym, f.Pos(), "field %q", f.Name)
	}
	for _, p := range t.Properties {
		requireSym(p.Sym, p.Pos(), "property %q", p.Name)
	}
	for _, e := range t.Events {
		requireSym(e.Sym, e.Pos(), "event %q", e.Name)
	}
	for _, m := range t.Methods {
		requireSym(m.Sym, m.Pos(), "method %q", m.Name)
	}
	for _, c := range t.Constructors {
		requireSym(c.Sym, c.Pos(), "constructor of %q", t.Name)
	}
	if t.StaticConstructor != nil {
		requireSym(t.StaticConstructor.Sym, t.StaticConstructor.Pos(), "static constructor of %q", t.Name)
	}
	for _, nested := range t.NestedTypes {
		validateTypeDecl(nested)
	}
}

// requireSym raises if sym is nil, identifying the offending
// declaration the way the rest of this package's messages do — by kind
// and name, not by Go field path.
func requireSym(sym *srcast.Symbol, pos token.Position, format string, args ...any) {
	if sym == nil {
		raise(pos, "missing symbol for "+format, args...)
	}
}

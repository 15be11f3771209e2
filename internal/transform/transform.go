// Package transform lowers one compilation unit's resolved semantic
// tree (internal/srcast) into the target AST (internal/dstast) the
// renderer turns into source text. It is a single-pass visitor with no
// separate analysis phase: every decision a rule needs is already
// sitting on the srcast tree via internal/srcast.Oracle, so lowering
// and emission happen together, depth-first, exactly once per node.
package transform

import (
	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/metadata"
	"github.com/kolkov/lunac/internal/naming"
	"github.com/kolkov/lunac/internal/srcast"
)

// NewUnit creates a Unit ready to lower a single compilation unit.
// oracle answers the symbol/type/constant questions spec.md §6 fixes at
// four methods; templates answers the metadata oracle's code-template
// override query. Passing metadata.Empty() is the correct choice when no
// override file applies.
func NewUnit(oracle srcast.Oracle, templates metadata.TemplateOracle) *Unit {
	return &Unit{
		oracle:    oracle,
		templates: templates,
		names:     naming.NewRoot(),
	}
}

// Compile lowers one L-src compilation unit to a complete L-dst
// Document. It never returns a partially built Document on error: the
// only way a rule signals failure is raise(...)'s panic, caught here
// and turned into a normal (nil, error) return, so the goroutine that
// called Compile sees the same fail-fast behavior described in spec.md
// §5 without itself needing a recover.
func (u *Unit) Compile(cu *srcast.CompilationUnit) (doc *dstast.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*CompilationError); ok {
				doc, err = nil, ce
				return
			}
			panic(r)
		}
	}()

	validateUnit(cu)

	for _, d := range cu.Delegates {
		u.memberIdentName(d.Sym, d.Name)
	}

	var types []*dstast.TypeDecl
	for _, t := range cu.Types {
		types = append(types, u.transformTypeDecl(t)...)
	}

	return &dstast.Document{
		Types:    types,
		TopLevel: u.topLevel,
		StartPos: cu.Pos(),
		EndPos:   cu.End(),
	}, nil
}

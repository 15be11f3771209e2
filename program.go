package lunac

import (
	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/render"
)

// Unit is one compiled compilation unit, ready to render. Rendering
// never mutates the tree, so the same Unit can be rendered more than
// once, with different render.Config values, without recompiling.
type Unit struct {
	doc      *dstast.Document
	fileName string
}

// FileName returns the source file name the unit was compiled from.
// Callers mirroring a fixture tree onto `.lua` output typically strip
// this name's extension and replace it before writing.
func (u *Unit) FileName() string {
	return u.fileName
}

// Document returns the lowered L-dst tree. Most callers want Render
// instead; Document exists for callers that need to inspect the tree
// directly, such as tests.
func (u *Unit) Document() *dstast.Document {
	return u.doc
}

// Render prints the unit as L-dst source text under the given
// formatting configuration.
func (u *Unit) Render(cfg render.Config) (string, error) {
	return render.Render(u.doc, cfg)
}

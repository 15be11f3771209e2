package lunac

import (
	"github.com/kolkov/lunac/internal/metadata"
	"github.com/kolkov/lunac/internal/srcast"
	"github.com/kolkov/lunac/internal/transform"
)

// Version is the lunac version string.
const Version = "0.1.0"

// Compile lowers one already-resolved compilation unit into a Unit ready
// to render. oracle answers the symbol/type/constant questions a front
// end would have computed while resolving cu; config may be nil for
// defaults.
//
// Example:
//
//	unit, err := lunac.Compile(cu, oracle, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := unit.Render(render.Config{})
func Compile(cu *srcast.CompilationUnit, oracle srcast.Oracle, config *Config) (*Unit, error) {
	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()

	templates := config.Templates
	if templates == nil {
		templates = metadata.Empty()
	}

	doc, err := transform.NewUnit(oracle, templates).Compile(cu)
	if err != nil {
		return nil, err
	}
	return &Unit{doc: doc, fileName: cu.FileName}, nil
}

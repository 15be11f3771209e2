package lunac

import (
	"github.com/kolkov/lunac/internal/metadata"
	"github.com/kolkov/lunac/internal/render"
)

// Config holds the options that vary across a compilation run: which
// method-template overrides apply, how the renderer formats output, and
// how many compilation units a driver is allowed to process at once.
type Config struct {
	// Templates answers the code-template-for(method) oracle query. When
	// nil, no method carries an override and every call lowers to its
	// default translation, matching "Missing → default translation".
	Templates metadata.TemplateOracle

	// Render controls the renderer's indent width, dialect, and
	// semicolon style. The zero value renders DialectModern, 2-space
	// indents, no trailing semicolons.
	Render render.Config

	// LibraryNames is an informational passthrough populated from a
	// reference list (cmd/lunac's -l flag); nothing in this repository
	// resolves member names against it — that is front-end work, out of
	// scope here.
	LibraryNames []string

	// Workers bounds how many compilation units a driver may lower
	// concurrently. Zero or negative means 1 (sequential). A single
	// *transform.Unit is still only ever touched by one goroutine;
	// Workers only controls how many independent Units run at once.
	Workers int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}
}

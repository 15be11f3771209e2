// Package lunac lowers a fully-resolved object-oriented semantic tree
// into a dynamic-language AST and renders it as source text.
//
// lunac does not parse or type-check source itself — internal/srcast
// models the resolved input a front end would hand it, and
// internal/fixture decodes that shape from a small JSON format so the
// transformer is exercisable without one. What this package does own is
// the lowering: expression, statement, and declaration rules that turn
// class-based, statically-typed constructs into their table-and-closure
// equivalents, plus the deterministic renderer that turns the result
// into text.
//
// # Quick Start
//
//	cu, oracle, err := fixture.Load("example.srcjson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	unit, err := lunac.Compile(cu, oracle, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := unit.Render(render.Config{})
//
// # Configuration
//
// The [Config] type controls method-template overrides, render
// formatting (indent width, dialect, semicolon style), and how many
// compilation units a driver may lower concurrently.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [CLIError]: a bad flag or unreadable path, from cmd/lunac
//   - transform.CompilationError: a lowering rule that could not
//     produce valid output, carrying the offending position
//
// # Thread Safety
//
// A [Unit] is safe for concurrent use; rendering never mutates the
// underlying tree. Compile itself builds a single-use transform.Unit
// internally and never shares it across goroutines, so callers lowering
// many compilation units concurrently should call Compile once per unit
// from its own goroutine rather than share one call across workers.
package lunac

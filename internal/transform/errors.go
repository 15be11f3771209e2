package transform

import (
	"fmt"

	"github.com/kolkov/lunac/internal/token"
)

// CompilationError is the one error type the transformer ever raises.
// Every raise point panics with a *CompilationError; Compile's deferred
// recover turns that back into a normal error return, exactly as
// compiler.Compile does in the pattern this package follows.
type CompilationError struct {
	Pos     token.Position
	Message string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// raise panics with a *CompilationError positioned at pos. Every
// lowering rule that hits a contract violation it cannot recover from
// calls this instead of returning an error, so the single recover in
// Compile is the only place that catches it. That recover does not
// restore the Unit's stacks: frames pushed without a deferred pop are
// still on them after a raise.
func raise(pos token.Position, format string, args ...any) {
	panic(&CompilationError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

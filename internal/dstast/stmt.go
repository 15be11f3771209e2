package dstast

// -----------------------------------------------------------------------------
// Basic statements
// -----------------------------------------------------------------------------

// ExprStmt represents an expression used as a statement — almost always
// an Invocation, since the target language has no other standalone
// expression-statement form.
type ExprStmt struct {
	BaseStmt
	X Expr
}

// AssignTargetKind distinguishes a plain assignment target from one that
// must route through a property setter call instead of `=`.
type AssignTargetKind int

const (
	TargetPlain    AssignTargetKind = iota
	TargetProperty                   // lowered to Setter(value) via PropertyAdapter
)

// AssignTarget is one left-hand-side slot of a (possibly multiple)
// assignment.
type AssignTarget struct {
	Kind     AssignTargetKind
	Plain    Expr // TargetPlain
	Setter   Expr // TargetProperty: the callee to invoke with the value
}

// Assignment represents `t1, t2 = v1, v2`.
type Assignment struct {
	BaseStmt
	Targets []AssignTarget
	Values  []Expr
}

// LocalVarDecl represents `local n1, n2 = v1, v2`.
type LocalVarDecl struct {
	BaseStmt
	Names []string
	Values []Expr // may have fewer entries than Names
}

// Do represents an explicit `do ... end` block, used to scope a set of
// locals that would otherwise leak into the enclosing block.
type Do struct {
	BaseStmt
	Body []Stmt
}

// -----------------------------------------------------------------------------
// Control flow
// -----------------------------------------------------------------------------

// If represents `if cond then ... elseif ... else ... end`. Else, when
// non-nil, holds either further statements or (for an else-if chain) a
// single-element slice containing another *If.
type If struct {
	BaseStmt
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// While represents `while cond do ... end`.
type While struct {
	BaseStmt
	Cond Expr
	Body []Stmt
}

// RepeatUntil represents `repeat ... until cond` — the natural lowering
// target for a do/while loop, since the condition is checked after the
// body runs exactly as in the source construct.
type RepeatUntil struct {
	BaseStmt
	Body []Stmt
	Cond Expr
}

// NumericFor represents `for i = start, stop, step do ... end`.
type NumericFor struct {
	BaseStmt
	Var   string
	Start Expr
	Stop  Expr
	Step  Expr // nil means the implicit step of 1
	Body  []Stmt
}

// GenericFor represents `for k, v in iterator do ... end`.
type GenericFor struct {
	BaseStmt
	Vars     []string
	Iterator Expr
	Body     []Stmt
}

// Break represents `break`.
type Break struct {
	BaseStmt
}

// Goto represents `goto label`.
type Goto struct {
	BaseStmt
	Label string
}

// Labeled represents a `::label::` definition point.
type Labeled struct {
	BaseStmt
	Label string
}

// Return represents `return v1, v2, ...` or a bare `return`.
type Return struct {
	BaseStmt
	Values []Expr
}

// -----------------------------------------------------------------------------
// Formatting pseudo-statements
// -----------------------------------------------------------------------------

// BlankLine represents a preserved blank line between statements, used
// by the renderer to keep generated output from reading as one
// undifferentiated block when the source had paragraph breaks.
type BlankLine struct {
	BaseStmt
}

// Comment represents a `--` line comment or `--[[ ]]` block comment
// carried over from a source doc-comment or metadata annotation.
type Comment struct {
	BaseStmt
	Text string
	Long bool
}

// -----------------------------------------------------------------------------
// Adapters — constructs with no native L-dst statement form
// -----------------------------------------------------------------------------

// TryCatch is one catch arm inside a TryAdapter: Type names the
// exception prototype the arm guards on ("" for a catch-all), Filter is
// an optional `when` clause, Bind is the local name the caught value is
// assigned to ("" if not bound). Any return reachable from Body has
// already been rewritten by the statement transformer to `return true,
// value` per the System.try return-propagation contract.
type TryCatch struct {
	Type   string
	Filter Expr
	Bind   string
	Body   []Stmt
}

// TryAdapter carries a try/catch/finally block. The renderer expands it
// into `System.try(tryFn, catchFn, finallyFn)`: the protected body and
// each catch arm become closures, and Propagate/VoidReturn record
// whether the call site needs the `local ok, v = ...; if ok then return
// v end` return-propagation wrapper (omitting `v` for a void-returning
// enclosing method).
type TryAdapter struct {
	BaseStmt
	Body       []Stmt
	Catches    []TryCatch
	Finally    []Stmt
	Propagate  bool
	VoidReturn bool
}

// UsingResource is one resource slot of a UsingAdapter.
type UsingResource struct {
	Var   string
	Value Expr
}

// UsingAdapter carries a using-block. One resource lowers to
// `System.using(r, function(r) ... end)`; more than one lowers to
// `System.usingX(function(a,b,c) ... end, a, b, c)`. It shares the same
// return-propagation contract as TryAdapter.
type UsingAdapter struct {
	BaseStmt
	Resources  []UsingResource
	Body       []Stmt
	Propagate  bool
	VoidReturn bool
}

// ConstructorAdapter carries a constructor body together with its
// base/this initializer call, if any. The renderer prints the
// initializer call, when present, followed by Body; it emits no
// self-table allocation of its own.
type ConstructorAdapter struct {
	BaseStmt
	InitializerCallee Expr   // nil if no base(...)/this(...) clause
	InitializerArgs   []Expr
	Body              []Stmt
}

// ContinueAdapter carries a `continue;` from the source. The renderer
// expands it into a `goto` to the loop's per-iteration continuation
// label, synthesized by the transformer for the enclosing loop.
type ContinueAdapter struct {
	BaseStmt
	ContinueLabel string
}

// GotoCaseAdapter carries a `goto case X;` / `goto default;`. The
// renderer expands it into a `goto` to the synthesized label of the
// target switch section, since the lowered switch is a flat run of
// labeled sections with no native case-fallthrough target to jump to
// directly.
type GotoCaseAdapter struct {
	BaseStmt
	TargetLabel string
}

// Compile-time interface checks.
var (
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Assignment)(nil)
	_ Stmt = (*LocalVarDecl)(nil)
	_ Stmt = (*Do)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*While)(nil)
	_ Stmt = (*RepeatUntil)(nil)
	_ Stmt = (*NumericFor)(nil)
	_ Stmt = (*GenericFor)(nil)
	_ Stmt = (*Break)(nil)
	_ Stmt = (*Goto)(nil)
	_ Stmt = (*Labeled)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*BlankLine)(nil)
	_ Stmt = (*Comment)(nil)
	_ Stmt = (*TryAdapter)(nil)
	_ Stmt = (*UsingAdapter)(nil)
	_ Stmt = (*ConstructorAdapter)(nil)
	_ Stmt = (*ContinueAdapter)(nil)
	_ Stmt = (*GotoCaseAdapter)(nil)
)

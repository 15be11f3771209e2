package srcast

// -----------------------------------------------------------------------------
// Blocks and simple statements
// -----------------------------------------------------------------------------

// BlockStmt represents a brace-delimited statement list.
type BlockStmt struct {
	StmtBase
	Stmts []Stmt
}

// ExprStmt represents an expression used as a statement (an invocation, an
// assignment, or a pre/post increment/decrement).
type ExprStmt struct {
	StmtBase
	X Expr
}

// EmptyStmt represents a bare `;`.
type EmptyStmt struct {
	StmtBase
}

// VarDeclStmt represents a local variable declaration, possibly
// multi-name (`var x = 1, y = 2;`) or deconstructing (`var (a, b) = t;`).
type VarDeclStmt struct {
	StmtBase
	Names  []string
	Type   *TypeRef // nil when inferred (`var`)
	Inits  []Expr   // parallel to Names; nil entry means no initializer
	Syms   []*Symbol
	IsTupleDeconstruction bool
	TupleSource           Expr // set when IsTupleDeconstruction
}

// LabeledStmt represents `label: stmt`, the target of a `goto label;`.
type LabeledStmt struct {
	StmtBase
	Label string
	Stmt  Stmt
}

// -----------------------------------------------------------------------------
// Control flow
// -----------------------------------------------------------------------------

// IfStmt represents `if (cond) then else else`. Else is nil when absent;
// it may itself be an *IfStmt for an `else if` chain.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

// WhileStmt represents `while (cond) body`.
type WhileStmt struct {
	StmtBase
	Cond Expr
	Body *BlockStmt
}

// DoWhileStmt represents `do body while (cond);`.
type DoWhileStmt struct {
	StmtBase
	Body *BlockStmt
	Cond Expr
}

// ForStmt represents a C-style `for (init; cond; post) body`. Init and
// Post are nil when the corresponding clause is empty.
type ForStmt struct {
	StmtBase
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

// ForEachStmt represents `foreach (T x in source) body`. IsRangeLike is
// set by the front end when source is a countable range the transformer
// may lower to a numeric `for` instead of a generic iterator loop.
type ForEachStmt struct {
	StmtBase
	VarName     string
	VarType     *TypeRef
	Source      Expr
	Body        *BlockStmt
	IsRangeLike bool
	Sym         *Symbol
}

// BreakStmt represents `break;`.
type BreakStmt struct {
	StmtBase
}

// ContinueStmt represents `continue;` — spec.md §4.E requires this to
// route through the ContinueAdapter marker at render time since L-dst has
// no native continue.
type ContinueStmt struct {
	StmtBase
}

// ReturnStmt represents `return expr;` or a bare `return;`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for a bare return
}

// ThrowStmt represents `throw expr;` or a bare rethrow `throw;` inside a
// catch clause (Value is nil in that case).
type ThrowStmt struct {
	StmtBase
	Value Expr
}

// YieldReturnStmt represents `yield return expr;`.
type YieldReturnStmt struct {
	StmtBase
	Value Expr
}

// YieldBreakStmt represents `yield break;`.
type YieldBreakStmt struct {
	StmtBase
}

// -----------------------------------------------------------------------------
// Exception handling, resource management, unsafe contexts
// -----------------------------------------------------------------------------

// CatchClause is one `catch (T x) when (filter) { ... }` clause. Type is
// nil for a catch-all (`catch { ... }`); VarName is "" when the exception
// is not bound to a name.
type CatchClause struct {
	StmtBase
	Type    *TypeRef
	VarName string
	Filter  Expr
	Body    *BlockStmt
}

// TryStmt represents `try { } catch (...) { } finally { }`. Finally is
// nil when absent.
type TryStmt struct {
	StmtBase
	Body    *BlockStmt
	Catches []CatchClause
	Finally *BlockStmt
}

// UsingResource is one resource acquisition inside a `using` statement.
type UsingResource struct {
	VarName string
	Value   Expr
}

// UsingStmt represents `using (resources) body`.
type UsingStmt struct {
	StmtBase
	Resources []UsingResource
	Body      *BlockStmt
}

// LockStmt represents `lock (expr) body`. spec.md §4.E treats this as a
// single-threaded no-op guard — the transformer only needs to preserve
// body's semantics, not the mutual exclusion itself.
type LockStmt struct {
	StmtBase
	Target Expr
	Body   *BlockStmt
}

// UnsafeStmt represents an `unsafe { }` block, preserved only so nested
// pointer syntax inside it type-checks on the L-src side; it carries no
// L-dst-visible effect beyond its body.
type UnsafeStmt struct {
	StmtBase
	Body *BlockStmt
}

// FixedStmt represents `fixed (T* p = expr) body`.
type FixedStmt struct {
	StmtBase
	VarName string
	Type    *TypeRef
	Value   Expr
	Body    *BlockStmt
}

// -----------------------------------------------------------------------------
// Switch / goto-case
// -----------------------------------------------------------------------------

// SwitchLabel is one `case value:` label; Value is nil for `default:`.
type SwitchLabel struct {
	Value Expr
}

// SwitchSection groups the (possibly multiple) labels that fall through
// to a shared statement list.
type SwitchSection struct {
	Labels []SwitchLabel
	Body   []Stmt
}

// SwitchStmt represents a `switch (selector) { ... }` statement.
type SwitchStmt struct {
	StmtBase
	Selector Expr
	Sections []SwitchSection
}

// GotoCaseStmt represents `goto case value;` — requires the
// GotoCaseAdapter at render time since a lowered switch is a flat run of
// labeled sections with no native case-fallthrough target.
type GotoCaseStmt struct {
	StmtBase
	Value Expr // nil for `goto default;`, which GotoDefaultStmt also covers
}

// GotoDefaultStmt represents `goto default;`.
type GotoDefaultStmt struct {
	StmtBase
}

// GotoStmt represents a plain `goto label;`.
type GotoStmt struct {
	StmtBase
	Label string
}

// -----------------------------------------------------------------------------
// Local functions
// -----------------------------------------------------------------------------

// LocalFunctionStmt represents a local function declaration nested inside
// a method body.
type LocalFunctionStmt struct {
	StmtBase
	Name   string
	Params []ParamInfo
	Body   *BlockStmt
	Sym    *Symbol
}

// Compile-time interface checks.
var (
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*EmptyStmt)(nil)
	_ Stmt = (*VarDeclStmt)(nil)
	_ Stmt = (*LabeledStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*DoWhileStmt)(nil)
	_ Stmt = (*ForStmt)(nil)
	_ Stmt = (*ForEachStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*ContinueStmt)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*ThrowStmt)(nil)
	_ Stmt = (*YieldReturnStmt)(nil)
	_ Stmt = (*YieldBreakStmt)(nil)
	_ Stmt = (*TryStmt)(nil)
	_ Stmt = (*UsingStmt)(nil)
	_ Stmt = (*LockStmt)(nil)
	_ Stmt = (*UnsafeStmt)(nil)
	_ Stmt = (*FixedStmt)(nil)
	_ Stmt = (*SwitchStmt)(nil)
	_ Stmt = (*GotoCaseStmt)(nil)
	_ Stmt = (*GotoDefaultStmt)(nil)
	_ Stmt = (*GotoStmt)(nil)
	_ Stmt = (*LocalFunctionStmt)(nil)
)

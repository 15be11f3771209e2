package dstast

import "github.com/kolkov/lunac/internal/token"

// -----------------------------------------------------------------------------
// Literals and references
// -----------------------------------------------------------------------------

// LiteralKind distinguishes the printed forms a Literal can take.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitNumber
	LitBool
	LitNil
	// LitVerbatim is emitted byte-for-byte, for text the transformer has
	// already rendered into a target-safe form (e.g. a folded constant).
	LitVerbatim
)

// Literal represents a literal value.
type Literal struct {
	BaseExpr
	Kind  LiteralKind
	Value string
}

// Identifier represents a plain name reference, already assigned by the
// naming service — by the time a tree reaches this package every name is
// final and collision-free.
type Identifier struct {
	BaseExpr
	Name string
}

// -----------------------------------------------------------------------------
// Access and invocation
// -----------------------------------------------------------------------------

// MemberAccess represents `t.m` or, when IsColonCall is true, the callee
// half of a method-call-style access that the renderer prints with `:`
// syntax (`t:m(...)`) instead of `.`.
type MemberAccess struct {
	BaseExpr
	Receiver     Expr
	Member       string
	IsColonCall  bool
}

// TableIndex represents `t[k]`.
type TableIndex struct {
	BaseExpr
	Receiver Expr
	Key      Expr
}

// Invocation represents a call `callee(args...)`. IsMethodCall mirrors
// MemberAccess.IsColonCall so the renderer does not need to re-inspect
// Callee's type to decide which call syntax to use.
type Invocation struct {
	BaseExpr
	Callee       Expr
	Args         []Expr
	IsMethodCall bool
}

// -----------------------------------------------------------------------------
// Functions, grouping, sequences
// -----------------------------------------------------------------------------

// FunctionLiteral represents an anonymous `function(params) ... end`
// expression — the lowering target for lambdas, local functions used as
// values, and delegate-typed expressions.
type FunctionLiteral struct {
	BaseExpr
	Params   []string
	Variadic bool
	Body     []Stmt
}

// Paren represents an explicit parenthesization, preserved where dropping
// it would change meaning (truncating a multi-value expression to one
// value is the canonical case in this target language).
type Paren struct {
	BaseExpr
	Inner Expr
}

// SequenceList represents a parenthesized or bare comma-list of
// expressions used where the target syntax expects several values at
// once (a multiple-assignment right-hand side, or call arguments that
// were built up rather than written literally).
type SequenceList struct {
	BaseExpr
	Elements []Expr
}

// -----------------------------------------------------------------------------
// Table construction
// -----------------------------------------------------------------------------

// TableFieldKind distinguishes the three table-constructor entry forms.
type TableFieldKind int

const (
	FieldPositional TableFieldKind = iota // bare value, array-style
	FieldKeyValue                          // [k] = v
	FieldStringKey                          // name = v
)

// TableField is one entry inside a TableInit constructor.
type TableField struct {
	Kind  TableFieldKind
	Key   Expr   // FieldKeyValue
	Name  string // FieldStringKey
	Value Expr
}

// TableInit represents a table constructor `{ ... }`.
type TableInit struct {
	BaseExpr
	Fields []TableField
}

// -----------------------------------------------------------------------------
// Operators
// -----------------------------------------------------------------------------

// Binary represents a binary operator expression.
type Binary struct {
	BaseExpr
	Op    token.Op
	Left  Expr
	Right Expr
}

// Unary represents a unary operator expression.
type Unary struct {
	BaseExpr
	Op      token.Op
	Operand Expr
}

// -----------------------------------------------------------------------------
// Adapters with no other natural expression form
// -----------------------------------------------------------------------------

// PropertyAdapter represents a property access lowered to a paired
// getter/setter method-table entry. Get is the expression to emit when
// the property is read; SetCallee lets the statement-level
// assignment lowering build the setter call without re-deriving the
// property's backing method names.
type PropertyAdapter struct {
	BaseExpr
	Get       Expr
	SetCallee Expr
}

// ArrayTypeAdapter represents a reference to an array's runtime type
// descriptor (used by typeof/is-pattern lowering over array-typed
// expressions, which have no single named prototype table to point at).
type ArrayTypeAdapter struct {
	BaseExpr
	ElemTypeExpr Expr
	Rank         int
}

// Compile-time interface checks.
var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Identifier)(nil)
	_ Expr = (*MemberAccess)(nil)
	_ Expr = (*TableIndex)(nil)
	_ Expr = (*Invocation)(nil)
	_ Expr = (*FunctionLiteral)(nil)
	_ Expr = (*Paren)(nil)
	_ Expr = (*SequenceList)(nil)
	_ Expr = (*TableInit)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*PropertyAdapter)(nil)
	_ Expr = (*ArrayTypeAdapter)(nil)
)

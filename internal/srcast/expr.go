package srcast

// -----------------------------------------------------------------------------
// Literals and references
// -----------------------------------------------------------------------------

// LiteralKind distinguishes the literal forms spec.md §3 lists.
type LiteralKind int

const (
	LitString LiteralKind = iota
	LitChar
	LitNumber
	LitBool
	LitNil
	// LitVerbatim carries source text the renderer should not otherwise
	// interpret (e.g. a raw/verbatim string). Value holds that text.
	LitVerbatim
)

// Literal represents a literal expression.
type Literal struct {
	ExprBase
	Kind  LiteralKind
	Value string // textual form; numeric/bool literals carry their printed form here
}

// Ident represents a simple name reference (local, parameter, or an
// unqualified reference to a static member via using-static).
type Ident struct {
	ExprBase
	Name string
	Sym  *Symbol
}

// ThisRef represents the `this` keyword.
type ThisRef struct {
	ExprBase
	Sym *Symbol // the enclosing instance's type symbol
}

// BaseRef represents the `base` keyword, used only as the receiver of a
// MemberAccess (base method/property call) — spec.md does not define a
// bare `base` value.
type BaseRef struct {
	ExprBase
	Sym *Symbol
}

// -----------------------------------------------------------------------------
// Access and invocation
// -----------------------------------------------------------------------------

// MemberAccess represents `receiver.Member`, resolved to a field,
// property, event, method group element, or nested type.
type MemberAccess struct {
	ExprBase
	Receiver Expr
	Member   string
	Sym      *Symbol
}

// IndexExpr represents `receiver[args...]` — an indexer access or array
// element access.
type IndexExpr struct {
	ExprBase
	Receiver Expr
	Args     []Expr
	Sym      *Symbol // the indexer symbol, if this is a user indexer
}

// Invocation represents a method call `callee(args...)`. Callee is
// typically a MemberAccess or Ident; Sym is the resolved method symbol
// (carrying the overload's ParamInfo, so the transformer never needs to
// re-derive arity/ref/out/params/default information).
type Invocation struct {
	ExprBase
	Callee Expr
	Args   []Expr
	Sym    *Symbol
}

// -----------------------------------------------------------------------------
// Object / delegate / array construction
// -----------------------------------------------------------------------------

// ObjectCreation represents `new T(args...)` with an optional object or
// collection initializer. Sym is the selected constructor overload
// (already resolved — overload resolution is the front end's job).
type ObjectCreation struct {
	ExprBase
	Type        *TypeRef
	Args        []Expr
	Initializer *InitializerExpr // nil if no `{ ... }` initializer
	Sym         *Symbol
}

// InitializerMemberKind distinguishes the three initializer-entry shapes
// spec.md §4.D names: `t.x = v`, `t:set(i, v)`, and `t:Add(...)`.
type InitializerMemberKind int

const (
	InitMember InitializerMemberKind = iota // object initializer: Name = Value
	InitIndex                                // indexer initializer: [Index...] = Value
	InitAdd                                  // collection initializer: Add(Args...)
)

// InitializerMember is one entry of an object or collection initializer.
type InitializerMember struct {
	Kind  InitializerMemberKind
	Name  string // InitMember
	Index []Expr // InitIndex
	Value Expr   // InitMember / InitIndex
	Args  []Expr // InitAdd
}

// InitializerExpr represents the `{ ... }` block following `new T(...)`.
type InitializerExpr struct {
	ExprBase
	Members []InitializerMember
}

// DelegateCreation represents `new D(expr)` — spec.md §4.D says this
// lowers to the identity on expr, so all this node carries is the
// wrapped expression and the delegate type for diagnostics.
type DelegateCreation struct {
	ExprBase
	Type   *TypeRef
	Target Expr
}

// ArrayCreation represents `new T[n]` / `new T[n1, n2]` / `new T[] { ... }`.
type ArrayCreation struct {
	ExprBase
	ElemType    *TypeRef
	Rank        int
	Sizes       []Expr // may be empty when only an initializer is given
	Initializer []Expr // flattened element expressions, nil if absent
}

// -----------------------------------------------------------------------------
// Conditional access, ternary, interpolation
// -----------------------------------------------------------------------------

// ConditionalLinkKind distinguishes a `?.` chain link.
type ConditionalLinkKind int

const (
	LinkMember ConditionalLinkKind = iota
	LinkIndex
	LinkInvoke
)

// ConditionalLink is one `?.member`, `?.[args]`, or `?.method(args)` hop
// in a conditional-access chain.
type ConditionalLink struct {
	Kind   ConditionalLinkKind
	Member string // LinkMember / LinkInvoke
	Args   []Expr // LinkIndex / LinkInvoke
	Sym    *Symbol
}

// ConditionalAccess represents `a?.b?.c` (spec.md §4.D). Root is `a`;
// Links is the ordered chain of `?.`-guarded hops after it. UsedAsValue
// and InFunctionContext are set by the front end (via the semantic
// model). The expression transformer does not read either flag: it
// lowers every chain through an immediately-invoked function.
type ConditionalAccess struct {
	ExprBase
	Root              Expr
	Links             []ConditionalLink
	UsedAsValue       bool
	InFunctionContext bool
}

// Conditional represents the ternary `cond ? then : else`.
type Conditional struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

// InterpPart is one piece of an interpolated string: either literal text
// (Expr == nil) or an interpolated expression (Text == "").
type InterpPart struct {
	Text string
	Expr Expr
}

// InterpolatedString represents `$"...{expr}..."`.
type InterpolatedString struct {
	ExprBase
	Parts []InterpPart
}

// -----------------------------------------------------------------------------
// Operators, assignment, tuples, patterns, type operators
// -----------------------------------------------------------------------------

// BinOp enumerates L-src binary operators the expression transformer
// must lower (arithmetic, comparison, logical, bitwise, null-coalescing).
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
	BinBAnd
	BinBOr
	BinBXor
	BinShl
	BinShr
	BinCoalesce // ??
)

// Binary represents a binary operator expression.
type Binary struct {
	ExprBase
	Op    BinOp
	Left  Expr
	Right Expr
}

// UnOp enumerates L-src unary operators.
type UnOp int

const (
	UnNeg UnOp = iota
	UnNot
	UnBNot
	UnIncr
	UnDecr
)

// Unary represents a unary (including pre/post increment/decrement)
// operator expression.
type Unary struct {
	ExprBase
	Op      UnOp
	Operand Expr
	Postfix bool
}

// AssignOp enumerates assignment forms, including compound assignment.
type AssignOp int

const (
	AsgSimple AssignOp = iota
	AsgAdd
	AsgSub
	AsgMul
	AsgDiv
	AsgMod
	AsgBAnd
	AsgBOr
	AsgBXor
	AsgShl
	AsgShr
	AsgCoalesce
)

// Assignment represents `target op= value`.
type Assignment struct {
	ExprBase
	Target Expr
	Op     AssignOp
	Value  Expr
}

// Paren represents an explicit parenthesized expression, preserved so
// the expression transformer's temporary-introduction rules see the
// user's grouping intent (spec.md §3 invariant 4).
type Paren struct {
	ExprBase
	Inner Expr
}

// TupleExpr represents a tuple literal `(a, b, c)`.
type TupleExpr struct {
	ExprBase
	Elements []Expr
	Names    []string // parallel to Elements; "" for unnamed elements
}

// IsPattern represents `subject is T t` (spec.md §4.D). Binding is "" for
// the type-test form `subject is T` with no declared variable.
type IsPattern struct {
	ExprBase
	Subject Expr
	Type    *TypeRef
	Binding string
}

// TypeOfExpr represents `typeof(T)`.
type TypeOfExpr struct {
	ExprBase
	Type *TypeRef
}

// SizeOfExpr represents `sizeof(T)`.
type SizeOfExpr struct {
	ExprBase
	Type *TypeRef
}

// DefaultExpr represents `default(T)` or the type-inferred `default`.
// Type is nil for the inferred form; the expression transformer asks the
// oracle for the target type via ConvertedTypeOf in that case.
type DefaultExpr struct {
	ExprBase
	Type *TypeRef
}

// CastExpr represents `(T)expr`.
type CastExpr struct {
	ExprBase
	Type    *TypeRef
	Operand Expr
}

// Lambda represents an anonymous function or lambda expression.
// ExprBody is set (and BlockBody nil) for `(x) => x + 1` style bodies.
type Lambda struct {
	ExprBase
	Params    []ParamInfo
	ExprBody  Expr
	BlockBody *BlockStmt
	Sym       *Symbol
}

// Compile-time interface checks.
var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*ThisRef)(nil)
	_ Expr = (*BaseRef)(nil)
	_ Expr = (*MemberAccess)(nil)
	_ Expr = (*IndexExpr)(nil)
	_ Expr = (*Invocation)(nil)
	_ Expr = (*ObjectCreation)(nil)
	_ Expr = (*InitializerExpr)(nil)
	_ Expr = (*DelegateCreation)(nil)
	_ Expr = (*ArrayCreation)(nil)
	_ Expr = (*ConditionalAccess)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*InterpolatedString)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Assignment)(nil)
	_ Expr = (*Paren)(nil)
	_ Expr = (*TupleExpr)(nil)
	_ Expr = (*IsPattern)(nil)
	_ Expr = (*TypeOfExpr)(nil)
	_ Expr = (*SizeOfExpr)(nil)
	_ Expr = (*DefaultExpr)(nil)
	_ Expr = (*CastExpr)(nil)
	_ Expr = (*Lambda)(nil)
)

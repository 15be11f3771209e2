package dstast

import "github.com/kolkov/lunac/internal/token"

// -----------------------------------------------------------------------------
// Functions
// -----------------------------------------------------------------------------

// FunctionDecl represents a named function declaration — either a
// free-standing function (`function name(...) ... end`) or, when
// Receiver is non-empty, a method written with colon syntax
// (`function Receiver:Name(...) ... end`).
type FunctionDecl struct {
	BaseDecl
	Name     string
	Receiver string // "" for a free function
	IsStatic bool   // true emits `function Receiver.Name(...)` instead of `:`
	Params   []string
	Variadic bool
	Body     []Stmt
}

// LocalFunctionStmt represents a local function declaration nested
// inside another function body. It is a statement, not a top-level
// declaration, since the target language scopes `local function` to its
// enclosing block exactly like any other local.
type LocalFunctionStmt struct {
	BaseStmt
	Name     string
	Params   []string
	Variadic bool
	Body     []Stmt
}

// -----------------------------------------------------------------------------
// Types
// -----------------------------------------------------------------------------

// TypeField is one field entry used to seed a type's instance defaults
// (emitted inside the constructor preamble) or its static table.
type TypeField struct {
	Name string
	Init Expr // nil means the runtime's default-for-type initializer
}

// TypeDeclKind mirrors the L-src declaration forms the naming service
// and renderer need to treat differently (an interface contributes no
// runtime table at all; an enum contributes a frozen value table instead
// of a prototype).
type TypeDeclKind int

const (
	TypeKindClass TypeDeclKind = iota
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
)

// TypeDecl is an adapter declaration: it carries everything the renderer
// needs to expand a class/struct/enum into the target's prototype-table
// idiom — a table literal, a constructor function, an inheritance link
// to BaseName's prototype via setmetatable, and one function per method —
// without any further rewriting pass. Interfaces carry no runtime
// representation and render as a comment-only marker, kept only for
// traceability.
type TypeDecl struct {
	BaseDecl
	Name       string
	Kind       TypeDeclKind
	BaseName   string   // "" if no base type
	Interfaces []string // interface names this type is documented as implementing

	InstanceFields []TypeField
	StaticFields   []TypeField
	EnumMembers    []TypeField // Kind == TypeKindEnum

	// Ctor is the sole constructor when the type declares exactly one.
	// Once there is more than one, __ctor__ has to be an array instead
	// (every constructor call site that dispatches by overload number
	// indexes into it), so Ctor is left nil and CtorOverflow carries the
	// whole thing.
	Ctor *FunctionDecl

	// CtorOverflow holds the single `T.__ctor__ = { function(self, ...)
	// ... end, ... }` assignment built once a type declares more than one
	// constructor, table order matching overload order. Left nil
	// whenever Ctor is non-nil.
	CtorOverflow []Stmt

	Methods   []*FunctionDecl
	Operators []*FunctionDecl // stable op_Addition/op_Equality/... names; the runtime's metatable adapter looks them up
}

// -----------------------------------------------------------------------------
// Compilation unit
// -----------------------------------------------------------------------------

// Document is the root node the renderer consumes: one L-dst source file.
type Document struct {
	Requires []string // module names pulled in via `local X = require("X")`
	Types    []*TypeDecl
	Functions []*FunctionDecl
	TopLevel []Stmt // top-level statements (static-constructor bodies, module init order)

	StartPos token.Position
	EndPos   token.Position
}

func (d *Document) Pos() token.Position { return d.StartPos }
func (d *Document) End() token.Position { return d.EndPos }

// Compile-time interface checks.
var (
	_ Decl = (*FunctionDecl)(nil)
	_ Decl = (*TypeDecl)(nil)
	_ Node = (*Document)(nil)
	_ Stmt = (*LocalFunctionStmt)(nil)
)

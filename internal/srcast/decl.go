package srcast

import "github.com/kolkov/lunac/internal/token"

// -----------------------------------------------------------------------------
// Type declarations
// -----------------------------------------------------------------------------

// TypeDeclKind distinguishes the L-src type-declaration forms.
type TypeDeclKind int

const (
	KindClass TypeDeclKind = iota
	KindStruct
	KindInterface
	KindEnum
)

// EnumMember is one `Name = value` entry of an enum declaration.
type EnumMember struct {
	Name  string
	Value ConstantValue
}

// TypeDecl represents a class, struct, interface, or enum declaration.
type TypeDecl struct {
	DeclBase
	Name       string
	Kind       TypeDeclKind
	TypeParams []string
	BaseType   *TypeRef   // nil for interfaces/enums and classes with no explicit base
	Interfaces []*TypeRef

	Fields             []*FieldDecl
	Properties         []*PropertyDecl
	Events             []*EventDecl
	Methods            []*MethodDecl
	Constructors       []*ConstructorDecl
	StaticConstructor  *ConstructorDecl // nil if absent
	NestedTypes        []*TypeDecl

	EnumMembers []EnumMember // populated only when Kind == KindEnum

	Sym *Symbol
}

// -----------------------------------------------------------------------------
// Members
// -----------------------------------------------------------------------------

// FieldDecl represents a field declaration, including an optional
// initializer.
type FieldDecl struct {
	DeclBase
	Name     string
	Type     *TypeRef
	Init     Expr // nil if uninitialized
	IsStatic bool
	IsConst  bool
	Sym      *Symbol
}

// PropertyDecl represents an auto- or explicit-accessor property.
// GetterBody/SetterBody are nil for an accessor that is compiler-
// synthesized (auto-property) rather than user-written; NoFieldAttr
// records whether the member carried the metadata override that
// suppresses the synthesized backing field (spec.md §4.G / the metadata
// oracle's `@NoField` attribute).
type PropertyDecl struct {
	DeclBase
	Name         string
	Type         *TypeRef
	HasGetter    bool
	HasSetter    bool
	GetterBody   *BlockStmt
	SetterBody   *BlockStmt
	IsStatic     bool
	IsOverride   bool
	IsInterfaceImpl bool
	NoFieldAttr  bool
	Sym          *Symbol
}

// EventDecl represents an event declaration.
type EventDecl struct {
	DeclBase
	Name     string
	Type     *TypeRef
	IsStatic bool
	Sym      *Symbol
}

// OperatorKind names the overloadable operator a MethodDecl implements,
// when IsOperator is true.
type OperatorKind int

const (
	OpKindNone OperatorKind = iota
	OpKindAddition
	OpKindSubtraction
	OpKindMultiply
	OpKindDivision
	OpKindModulus
	OpKindEquality
	OpKindInequality
	OpKindLessThan
	OpKindGreaterThan
	OpKindLessThanOrEqual
	OpKindGreaterThanOrEqual
	OpKindUnaryNegation
	OpKindExplicit // explicit conversion operator
	OpKindImplicit // implicit conversion operator
)

// MethodDecl represents a method, operator overload, or extension method.
type MethodDecl struct {
	DeclBase
	Name       string
	TypeParams []string
	Params     []ParamInfo
	ReturnType *TypeRef // nil for void
	Body       *BlockStmt

	IsStatic                bool
	IsOperator              bool
	OperatorKind            OperatorKind
	IsExtension             bool
	IsMain                  bool
	IsExplicitInterfaceImpl bool
	InterfaceMember         *Symbol // set when IsExplicitInterfaceImpl

	Sym *Symbol
}

// CtorInitKind distinguishes `: base(...)` from `: this(...)`.
type CtorInitKind int

const (
	CtorInitNone CtorInitKind = iota
	CtorInitBase
	CtorInitThis
)

// CtorInitializer represents a constructor initializer clause.
type CtorInitializer struct {
	Kind CtorInitKind
	Args []Expr
	Sym  *Symbol // the base/this constructor overload this call selects
}

// ConstructorDecl represents an instance constructor declaration.
// OverloadIndex disambiguates same-arity overloads for naming purposes
// when the naming service needs a stable per-overload suffix.
type ConstructorDecl struct {
	DeclBase
	Params        []ParamInfo
	Body          *BlockStmt
	Initializer   *CtorInitializer // nil when neither base(...) nor this(...) is written
	OverloadIndex int
	Sym           *Symbol
}

// DelegateDecl represents a delegate type declaration. It needs no
// lowering or emission of its own — delegate construction is the
// identity on the wrapped expression — but the declaration itself must
// still be modeled so the transformer can validate call sites against
// its signature and the naming service can reserve its name.
type DelegateDecl struct {
	DeclBase
	Name       string
	Params     []ParamInfo
	ReturnType *TypeRef
	Sym        *Symbol
}

// -----------------------------------------------------------------------------
// Compilation unit
// -----------------------------------------------------------------------------

// CompilationUnit is the root node handed to the transformer for one
// L-src source file.
type CompilationUnit struct {
	DeclBase
	FileName  string
	Usings    []string
	Namespace string
	Types     []*TypeDecl
	Delegates []*DelegateDecl
}

// Pos/End on CompilationUnit return DeclBase's stored fields unchanged;
// FileName is not folded into them.
func (u *CompilationUnit) Pos() token.Position { return u.StartPos }
func (u *CompilationUnit) End() token.Position { return u.EndPos }

// Compile-time interface checks.
var (
	_ Decl = (*TypeDecl)(nil)
	_ Decl = (*FieldDecl)(nil)
	_ Decl = (*PropertyDecl)(nil)
	_ Decl = (*EventDecl)(nil)
	_ Decl = (*MethodDecl)(nil)
	_ Decl = (*ConstructorDecl)(nil)
	_ Decl = (*DelegateDecl)(nil)
	_ Decl = (*CompilationUnit)(nil)
)

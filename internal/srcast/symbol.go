package srcast

import "github.com/kolkov/lunac/internal/token"

// SymbolKind categorizes a resolved L-src symbol.
type SymbolKind int

const (
	SymMethod SymbolKind = iota
	SymProperty
	SymEvent
	SymField
	SymParameter
	SymLocal
	SymType
	SymNamespace
)

func (k SymbolKind) String() string {
	switch k {
	case SymMethod:
		return "method"
	case SymProperty:
		return "property"
	case SymEvent:
		return "event"
	case SymField:
		return "field"
	case SymParameter:
		return "parameter"
	case SymLocal:
		return "local"
	case SymType:
		return "type"
	case SymNamespace:
		return "namespace"
	default:
		return "unknown"
	}
}

// Accessibility mirrors L-src's member visibility modifiers. The
// transformer does not enforce access control (that is the front end's
// job) but carries the value through for code-template conditions and
// diagnostics.
type Accessibility int

const (
	AccPublic Accessibility = iota
	AccPrivate
	AccProtected
	AccInternal
	AccProtectedInternal
	AccPrivateProtected
)

// ParamInfo describes one formal parameter, including the modifiers
// spec.md §3 requires the symbol to carry: ref/out/params-ness and
// default-value information.
type ParamInfo struct {
	Name       string
	Type       *TypeRef
	Ref        bool
	Out        bool
	IsParams   bool // C#-style "params T[] xs" rest parameter
	HasDefault bool
	Default    ConstantValue
}

// ConstantValue is a pre-evaluated compile-time constant, as produced by
// the semantic input's constant evaluator (Oracle.ConstantValueOf).
// Present is false when the front end could not fold the expression to a
// constant.
type ConstantValue struct {
	Present bool
	// Text is the constant rendered as an L-dst literal-safe textual
	// form (e.g. "0", `"ok"`, "nil", "true"). The front end — or, in this
	// repository, the fixture/test that stands in for it — is
	// responsible for producing a form the renderer can emit verbatim.
	Text string
}

// Symbol carries everything spec.md §3 requires to be attached to every
// expression, declaration, and member reference the transformer visits.
type Symbol struct {
	Name           string
	Kind           SymbolKind
	ContainingType *TypeRef
	Accessibility  Accessibility
	IsStatic       bool

	// Overrides points at the base-member symbol this one overrides, or
	// nil if it introduces a new member / is not virtual.
	Overrides *Symbol

	// Params is populated for methods, constructors, operators,
	// delegates, and indexers.
	Params []ParamInfo

	// TypeArgs is populated for constructed generic methods/types.
	TypeArgs []*TypeRef

	// IsFromSource is false for symbols that originate in a referenced
	// binary rather than in the compilation unit being translated.
	IsFromSource bool

	// Method-only flags.
	IsExtensionMethod       bool
	IsConstructor           bool
	IsOperator              bool
	IsExplicitInterfaceImpl bool
	IsMainEntryPoint        bool

	Pos token.Position
}

// TypeKind categorizes a TypeRef the way the object-creation and typeof
// lowering rules in spec.md §4.D need to distinguish.
type TypeKind int

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeEnum
	TypeDelegate
	TypeNullable
	TypeTuple
	TypeArray
	TypeGeneric
	TypeParam
	TypePrimitive
	TypeVoid
	TypeDynamic
)

// TypeRef is a resolved type reference, attached to expressions and
// declarations per the semantic-input contract.
type TypeRef struct {
	Kind      TypeKind
	Name      string
	Namespace string

	// TypeArgs is populated for TypeGeneric (and for TypeClass/TypeStruct
	// instantiated from a generic definition).
	TypeArgs []*TypeRef

	// ElemType is populated for TypeNullable (the wrapped T), TypeArray
	// (the element type), and TypeDelegate (unused).
	ElemType *TypeRef

	// ArrayRank is populated for TypeArray; 1 for a simple array, >1 for
	// a multi-dimensional array (System.MultiArray at the runtime ABI).
	ArrayRank int

	// TupleElems/TupleNames are populated for TypeTuple, positionally
	// aligned; TupleNames[i] is "" for an unnamed tuple element.
	TupleElems []*TypeRef
	TupleNames []string

	IsValueType bool
}

// IsSubtypeOf is a narrow, conservative subtype check used only by the
// is-pattern constant-folding rule in spec.md §4.D ("if the static type
// of subject is a subtype of T, constant-fold to true"). It recognises
// identity and Named\TypeArgs equality; anything else is reported as "not
// provably a subtype," which is the safe answer — the fold is skipped,
// never performed incorrectly.
func (t *TypeRef) IsSubtypeOf(other *TypeRef) bool {
	if t == nil || other == nil {
		return false
	}
	if t.Kind != other.Kind || t.Name != other.Name || t.Namespace != other.Namespace {
		return false
	}
	if len(t.TypeArgs) != len(other.TypeArgs) {
		return false
	}
	for i := range t.TypeArgs {
		if !t.TypeArgs[i].IsSubtypeOf(other.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// Oracle is the semantic-model read-only contract described in spec.md
// §6: symbol-of, type-of, converted-type-of, and constant-value-of. The
// transformer never constructs Symbol/TypeRef values on its own except
// where spec.md explicitly allows constant-folding; every other fact
// about the L-src tree is obtained through this interface.
type Oracle interface {
	// SymbolOf returns the resolved symbol attached to a declaration or
	// member-reference node, or nil if the node has none (e.g. a literal).
	SymbolOf(n Node) *Symbol

	// TypeOf returns the static type of an expression.
	TypeOf(e Expr) *TypeRef

	// ConvertedTypeOf returns the type an expression converts to at its
	// use site (e.g. the target of an implicit numeric or boxing
	// conversion), or the same value as TypeOf if no conversion applies.
	ConvertedTypeOf(e Expr) *TypeRef

	// ConstantValueOf returns the compile-time constant value of an
	// expression, if the front end's constant evaluator folded it.
	ConstantValueOf(e Expr) (ConstantValue, bool)
}

package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/kolkov/lunac/internal/srcast"
)

// -----------------------------------------------------------------------------
// Enum spellings
// -----------------------------------------------------------------------------

func literalKind(s string) srcast.LiteralKind {
	switch s {
	case "char":
		return srcast.LitChar
	case "number":
		return srcast.LitNumber
	case "bool":
		return srcast.LitBool
	case "nil":
		return srcast.LitNil
	case "verbatim":
		return srcast.LitVerbatim
	default:
		return srcast.LitString
	}
}

func binOp(s string) srcast.BinOp {
	switch s {
	case "sub":
		return srcast.BinSub
	case "mul":
		return srcast.BinMul
	case "div":
		return srcast.BinDiv
	case "mod":
		return srcast.BinMod
	case "eq":
		return srcast.BinEq
	case "ne":
		return srcast.BinNe
	case "lt":
		return srcast.BinLt
	case "le":
		return srcast.BinLe
	case "gt":
		return srcast.BinGt
	case "ge":
		return srcast.BinGe
	case "and":
		return srcast.BinAnd
	case "or":
		return srcast.BinOr
	case "band":
		return srcast.BinBAnd
	case "bor":
		return srcast.BinBOr
	case "bxor":
		return srcast.BinBXor
	case "shl":
		return srcast.BinShl
	case "shr":
		return srcast.BinShr
	case "coalesce":
		return srcast.BinCoalesce
	default:
		return srcast.BinAdd
	}
}

func unOp(s string) srcast.UnOp {
	switch s {
	case "not":
		return srcast.UnNot
	case "bnot":
		return srcast.UnBNot
	case "incr":
		return srcast.UnIncr
	case "decr":
		return srcast.UnDecr
	default:
		return srcast.UnNeg
	}
}

func assignOp(s string) srcast.AssignOp {
	switch s {
	case "add":
		return srcast.AsgAdd
	case "sub":
		return srcast.AsgSub
	case "mul":
		return srcast.AsgMul
	case "div":
		return srcast.AsgDiv
	case "mod":
		return srcast.AsgMod
	case "band":
		return srcast.AsgBAnd
	case "bor":
		return srcast.AsgBOr
	case "bxor":
		return srcast.AsgBXor
	case "shl":
		return srcast.AsgShl
	case "shr":
		return srcast.AsgShr
	case "coalesce":
		return srcast.AsgCoalesce
	default:
		return srcast.AsgSimple
	}
}

func linkKind(s string) srcast.ConditionalLinkKind {
	switch s {
	case "index":
		return srcast.LinkIndex
	case "invoke":
		return srcast.LinkInvoke
	default:
		return srcast.LinkMember
	}
}

func initMemberKind(s string) srcast.InitializerMemberKind {
	switch s {
	case "index":
		return srcast.InitIndex
	case "add":
		return srcast.InitAdd
	default:
		return srcast.InitMember
	}
}

func typeKind(s string) srcast.TypeKind {
	switch s {
	case "struct":
		return srcast.TypeStruct
	case "interface":
		return srcast.TypeInterface
	case "enum":
		return srcast.TypeEnum
	case "delegate":
		return srcast.TypeDelegate
	case "nullable":
		return srcast.TypeNullable
	case "tuple":
		return srcast.TypeTuple
	case "array":
		return srcast.TypeArray
	case "generic":
		return srcast.TypeGeneric
	case "param":
		return srcast.TypeParam
	case "primitive":
		return srcast.TypePrimitive
	case "void":
		return srcast.TypeVoid
	case "dynamic":
		return srcast.TypeDynamic
	default:
		return srcast.TypeClass
	}
}

func symbolKind(s string) srcast.SymbolKind {
	switch s {
	case "property":
		return srcast.SymProperty
	case "event":
		return srcast.SymEvent
	case "field":
		return srcast.SymField
	case "parameter":
		return srcast.SymParameter
	case "local":
		return srcast.SymLocal
	case "type":
		return srcast.SymType
	case "namespace":
		return srcast.SymNamespace
	default:
		return srcast.SymMethod
	}
}

func accessibility(s string) srcast.Accessibility {
	switch s {
	case "private":
		return srcast.AccPrivate
	case "protected":
		return srcast.AccProtected
	case "internal":
		return srcast.AccInternal
	case "protectedInternal":
		return srcast.AccProtectedInternal
	case "privateProtected":
		return srcast.AccPrivateProtected
	default:
		return srcast.AccPublic
	}
}

func operatorKind(s string) srcast.OperatorKind {
	switch s {
	case "addition":
		return srcast.OpKindAddition
	case "subtraction":
		return srcast.OpKindSubtraction
	case "multiply":
		return srcast.OpKindMultiply
	case "division":
		return srcast.OpKindDivision
	case "modulus":
		return srcast.OpKindModulus
	case "equality":
		return srcast.OpKindEquality
	case "inequality":
		return srcast.OpKindInequality
	case "lessThan":
		return srcast.OpKindLessThan
	case "greaterThan":
		return srcast.OpKindGreaterThan
	case "lessThanOrEqual":
		return srcast.OpKindLessThanOrEqual
	case "greaterThanOrEqual":
		return srcast.OpKindGreaterThanOrEqual
	case "unaryNegation":
		return srcast.OpKindUnaryNegation
	case "explicit":
		return srcast.OpKindExplicit
	case "implicit":
		return srcast.OpKindImplicit
	default:
		return srcast.OpKindNone
	}
}

func ctorInitKind(s string) srcast.CtorInitKind {
	switch s {
	case "base":
		return srcast.CtorInitBase
	case "this":
		return srcast.CtorInitThis
	default:
		return srcast.CtorInitNone
	}
}

func typeDeclKind(s string) srcast.TypeDeclKind {
	switch s {
	case "struct":
		return srcast.KindStruct
	case "interface":
		return srcast.KindInterface
	case "enum":
		return srcast.KindEnum
	default:
		return srcast.KindClass
	}
}

// -----------------------------------------------------------------------------
// TypeRef, Symbol, ParamInfo, ConstantValue
// -----------------------------------------------------------------------------

func (d *decoder) typeRef(raw json.RawMessage) (*srcast.TypeRef, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	t := &srcast.TypeRef{
		Kind:        typeKind(o.str("kind")),
		Name:        o.str("name"),
		Namespace:   o.str("namespace"),
		ArrayRank:   o.integer("arrayRank"),
		IsValueType: o.boolean("isValueType"),
	}
	if t.TypeArgs, err = d.typeRefList(o["typeArgs"]); err != nil {
		return nil, err
	}
	if o.has("elemType") {
		if t.ElemType, err = d.typeRef(o["elemType"]); err != nil {
			return nil, err
		}
	}
	if t.TupleElems, err = d.typeRefList(o["tupleElems"]); err != nil {
		return nil, err
	}
	t.TupleNames = o.strList("tupleNames")
	return t, nil
}

func (d *decoder) typeRefList(raw json.RawMessage) ([]*srcast.TypeRef, error) {
	var items []json.RawMessage
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	out := make([]*srcast.TypeRef, len(items))
	for i, it := range items {
		t, err := d.typeRef(it)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (d *decoder) constant(raw json.RawMessage) (srcast.ConstantValue, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return srcast.ConstantValue{}, err
	}
	return srcast.ConstantValue{Present: true, Text: o.str("text")}, nil
}

// symbol decodes a symbol reference: a bare JSON string looks an
// already-registered symbol up by id, an object decodes (and, if it
// carries an "id", registers) a fresh one. This is the one place the
// format interns by identity rather than decoding structurally, since
// constructor-overload and override-chain resolution compare *Symbol
// pointers directly.
func (d *decoder) symbol(raw json.RawMessage) (*srcast.Symbol, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var ref string
	if err := json.Unmarshal(raw, &ref); err == nil {
		sym, ok := d.symbols[ref]
		if !ok {
			return nil, fmt.Errorf("fixture: undefined symbol reference %q", ref)
		}
		return sym, nil
	}

	o, err := toObj(raw)
	if err != nil {
		return nil, err
	}
	sym := &srcast.Symbol{
		Name:                    o.str("name"),
		Kind:                    symbolKind(o.str("kind")),
		Accessibility:           accessibility(o.str("accessibility")),
		IsStatic:                o.boolean("isStatic"),
		IsFromSource:            !o.has("isFromSource") || o.boolean("isFromSource"),
		IsExtensionMethod:       o.boolean("isExtensionMethod"),
		IsConstructor:           o.boolean("isConstructor"),
		IsOperator:              o.boolean("isOperator"),
		IsExplicitInterfaceImpl: o.boolean("isExplicitInterfaceImpl"),
		IsMainEntryPoint:        o.boolean("isMainEntryPoint"),
		Pos:                     o.pos("pos"),
	}
	if sym.ContainingType, err = d.typeRef(o["containingType"]); err != nil {
		return nil, err
	}
	if sym.Params, err = d.paramInfos(o["params"]); err != nil {
		return nil, err
	}
	if sym.TypeArgs, err = d.typeRefList(o["typeArgs"]); err != nil {
		return nil, err
	}
	if o.has("overrides") {
		if sym.Overrides, err = d.symbol(o["overrides"]); err != nil {
			return nil, err
		}
	}
	if id := o.str("id"); id != "" {
		d.symbols[id] = sym
	}
	return sym, nil
}

func (d *decoder) paramInfos(raw json.RawMessage) ([]srcast.ParamInfo, error) {
	var items []json.RawMessage
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	out := make([]srcast.ParamInfo, len(items))
	for i, it := range items {
		po, err := toObj(it)
		if err != nil {
			return nil, err
		}
		p := srcast.ParamInfo{
			Name:     po.str("name"),
			Ref:      po.boolean("ref"),
			Out:      po.boolean("out"),
			IsParams: po.boolean("isParams"),
		}
		if p.Type, err = d.typeRef(po["type"]); err != nil {
			return nil, err
		}
		if po.has("default") {
			if p.Default, err = d.constant(po["default"]); err != nil {
				return nil, err
			}
			p.HasDefault = true
		}
		out[i] = p
	}
	return out, nil
}

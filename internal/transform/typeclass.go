package transform

import "github.com/kolkov/lunac/internal/srcast"

// The object-creation and typeof/is-pattern lowering rules in spec.md
// §4.D dispatch on a handful of TypeRef shapes; these helpers name that
// dispatch so the rules that consult it read as what they are checking
// for rather than as a raw Kind comparison.

func nullableElem(t *srcast.TypeRef) (*srcast.TypeRef, bool) {
	if t != nil && t.Kind == srcast.TypeNullable {
		return t.ElemType, true
	}
	return nil, false
}

func isTupleType(t *srcast.TypeRef) bool {
	return t != nil && t.Kind == srcast.TypeTuple
}

func isEnumType(t *srcast.TypeRef) bool {
	return t != nil && t.Kind == srcast.TypeEnum
}

func isArrayType(t *srcast.TypeRef) bool {
	return t != nil && t.Kind == srcast.TypeArray
}

func isValueTypeLike(t *srcast.TypeRef) bool {
	return t != nil && (t.IsValueType || t.Kind == srcast.TypePrimitive || t.Kind == srcast.TypeStruct || t.Kind == srcast.TypeEnum)
}

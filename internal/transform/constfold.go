package transform

import (
	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/srcast"
)

// foldSizeOf resolves `sizeof(T)` to the constant the semantic input's
// evaluator already folded it to — spec.md §4.D requires this to always
// be a compile-time constant, never a runtime computation, so a missing
// constant is a contract violation, not something this package can
// recover from on its own.
func (u *Unit) foldSizeOf(e *srcast.SizeOfExpr) dstast.Expr {
	if cv, ok := u.oracle.ConstantValueOf(e); ok && cv.Present {
		return litVerbatim(e, cv.Text)
	}
	raise(e.Pos(), "sizeof has no constant value from the semantic input")
	return nil
}

// foldDefault resolves `default(T)` / inferred `default`: the constant
// evaluator's answer when it folded one, otherwise a type-specific zero
// value.
func (u *Unit) foldDefault(e *srcast.DefaultExpr) dstast.Expr {
	if cv, ok := u.oracle.ConstantValueOf(e); ok && cv.Present {
		return litVerbatim(e, cv.Text)
	}
	t := e.Type
	if t == nil {
		t = u.oracle.ConvertedTypeOf(e)
	}
	return litVerbatim(e, zeroValueFor(t))
}

func zeroValueFor(t *srcast.TypeRef) string {
	if t == nil {
		return "nil"
	}
	switch {
	case t.Kind == srcast.TypeStruct || isTupleType(t):
		return "System.default(" + t.Name + ")"
	case isArrayType(t):
		return "nil"
	case isValueTypeLike(t):
		return "0"
	default:
		return "nil"
	}
}

// foldIsPatternConstant implements the constant-folding half of the is-pattern
// rule: when the subject's static type is already a provable subtype of
// the tested type, `subject is T` (and `subject is T t`) is always true
// and the runtime check is skipped entirely.
func (u *Unit) foldIsPatternConstant(subject srcast.Expr, target *srcast.TypeRef) (dstast.Expr, bool) {
	static := u.oracle.TypeOf(subject)
	if static != nil && static.IsSubtypeOf(target) {
		return litBool(subject, true), true
	}
	return nil, false
}

func litVerbatim(pos srcast.Node, text string) *dstast.Literal {
	return &dstast.Literal{
		BaseExpr: dstast.MakeBaseExpr(pos.Pos(), pos.End()),
		Kind:     dstast.LitVerbatim,
		Value:    text,
	}
}

func litBool(pos srcast.Node, v bool) *dstast.Literal {
	text := "false"
	if v {
		text = "true"
	}
	return &dstast.Literal{
		BaseExpr: dstast.MakeBaseExpr(pos.Pos(), pos.End()),
		Kind:     dstast.LitBool,
		Value:    text,
	}
}

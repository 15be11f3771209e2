package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/kolkov/lunac/internal/srcast"
)

func base(o obj) srcast.ExprBase {
	return srcast.ExprBase{StartPos: o.pos("pos"), EndPos: o.pos("end")}
}

// expr decodes one expression node and, if the wire object carries any
// of "valueType"/"convertedType"/"constant", registers the matching
// oracle answer for the node it just built — the three questions a real
// front end's semantic model would answer but which srcast's own
// structs have nowhere to store inline.
func (d *decoder) expr(raw json.RawMessage) (srcast.Expr, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	e, err := d.buildExpr(o)
	if err != nil {
		return nil, err
	}
	if o.has("valueType") {
		if t, err := d.typeRef(o["valueType"]); err == nil {
			d.typeOf[e] = t
		} else {
			return nil, err
		}
	}
	if o.has("convertedType") {
		if t, err := d.typeRef(o["convertedType"]); err == nil {
			d.convertedOf[e] = t
		} else {
			return nil, err
		}
	}
	if o.has("constant") {
		c, err := d.constant(o["constant"])
		if err != nil {
			return nil, err
		}
		d.constantOf[e] = c
	}
	return e, nil
}

func (d *decoder) exprList(raw json.RawMessage) ([]srcast.Expr, error) {
	items := d.rawListOf(raw)
	out := make([]srcast.Expr, len(items))
	for i, it := range items {
		e, err := d.expr(it)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (d *decoder) rawListOf(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	_ = json.Unmarshal(raw, &items)
	return items
}

func (d *decoder) buildExpr(o obj) (srcast.Expr, error) {
	var err error
	switch o.str("type") {
	case "Literal":
		return &srcast.Literal{ExprBase: base(o), Kind: literalKind(o.str("kind")), Value: o.str("value")}, nil

	case "Ident":
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.Ident{ExprBase: base(o), Name: o.str("name"), Sym: sym}, nil

	case "ThisRef":
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.ThisRef{ExprBase: base(o), Sym: sym}, nil

	case "BaseRef":
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.BaseRef{ExprBase: base(o), Sym: sym}, nil

	case "MemberAccess":
		recv, err := d.expr(o["receiver"])
		if err != nil {
			return nil, err
		}
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.MemberAccess{ExprBase: base(o), Receiver: recv, Member: o.str("member"), Sym: sym}, nil

	case "IndexExpr":
		recv, err := d.expr(o["receiver"])
		if err != nil {
			return nil, err
		}
		args, err := d.exprList(o["args"])
		if err != nil {
			return nil, err
		}
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.IndexExpr{ExprBase: base(o), Receiver: recv, Args: args, Sym: sym}, nil

	case "Invocation":
		callee, err := d.expr(o["callee"])
		if err != nil {
			return nil, err
		}
		args, err := d.exprList(o["args"])
		if err != nil {
			return nil, err
		}
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.Invocation{ExprBase: base(o), Callee: callee, Args: args, Sym: sym}, nil

	case "ObjectCreation":
		return d.buildObjectCreation(o)

	case "InitializerExpr":
		return d.buildInitializerExpr(o)

	case "DelegateCreation":
		t, err := d.typeRef(o["delegateType"])
		if err != nil {
			return nil, err
		}
		target, err := d.expr(o["target"])
		if err != nil {
			return nil, err
		}
		return &srcast.DelegateCreation{ExprBase: base(o), Type: t, Target: target}, nil

	case "ArrayCreation":
		return d.buildArrayCreation(o)

	case "ConditionalAccess":
		return d.buildConditionalAccess(o)

	case "Conditional":
		cond, err := d.expr(o["cond"])
		if err != nil {
			return nil, err
		}
		then, err := d.expr(o["then"])
		if err != nil {
			return nil, err
		}
		els, err := d.expr(o["else"])
		if err != nil {
			return nil, err
		}
		return &srcast.Conditional{ExprBase: base(o), Cond: cond, Then: then, Else: els}, nil

	case "InterpolatedString":
		return d.buildInterpolatedString(o)

	case "Binary":
		left, err := d.expr(o["left"])
		if err != nil {
			return nil, err
		}
		right, err := d.expr(o["right"])
		if err != nil {
			return nil, err
		}
		return &srcast.Binary{ExprBase: base(o), Op: binOp(o.str("op")), Left: left, Right: right}, nil

	case "Unary":
		operand, err := d.expr(o["operand"])
		if err != nil {
			return nil, err
		}
		return &srcast.Unary{ExprBase: base(o), Op: unOp(o.str("op")), Operand: operand, Postfix: o.boolean("postfix")}, nil

	case "Assignment":
		target, err := d.expr(o["target"])
		if err != nil {
			return nil, err
		}
		value, err := d.expr(o["value"])
		if err != nil {
			return nil, err
		}
		return &srcast.Assignment{ExprBase: base(o), Target: target, Op: assignOp(o.str("op")), Value: value}, nil

	case "Paren":
		inner, err := d.expr(o["inner"])
		if err != nil {
			return nil, err
		}
		return &srcast.Paren{ExprBase: base(o), Inner: inner}, nil

	case "TupleExpr":
		elems, err := d.exprList(o["elements"])
		if err != nil {
			return nil, err
		}
		return &srcast.TupleExpr{ExprBase: base(o), Elements: elems, Names: o.strList("names")}, nil

	case "IsPattern":
		subject, err := d.expr(o["subject"])
		if err != nil {
			return nil, err
		}
		t, err := d.typeRef(o["patternType"])
		if err != nil {
			return nil, err
		}
		return &srcast.IsPattern{ExprBase: base(o), Subject: subject, Type: t, Binding: o.str("binding")}, nil

	case "TypeOfExpr":
		t, err := d.typeRef(o["operandType"])
		if err != nil {
			return nil, err
		}
		return &srcast.TypeOfExpr{ExprBase: base(o), Type: t}, nil

	case "SizeOfExpr":
		t, err := d.typeRef(o["operandType"])
		if err != nil {
			return nil, err
		}
		return &srcast.SizeOfExpr{ExprBase: base(o), Type: t}, nil

	case "DefaultExpr":
		var t *srcast.TypeRef
		if o.has("operandType") {
			if t, err = d.typeRef(o["operandType"]); err != nil {
				return nil, err
			}
		}
		return &srcast.DefaultExpr{ExprBase: base(o), Type: t}, nil

	case "CastExpr":
		t, err := d.typeRef(o["castType"])
		if err != nil {
			return nil, err
		}
		operand, err := d.expr(o["operand"])
		if err != nil {
			return nil, err
		}
		return &srcast.CastExpr{ExprBase: base(o), Type: t, Operand: operand}, nil

	case "Lambda":
		return d.buildLambda(o)

	default:
		return nil, fmt.Errorf("fixture: unknown expression type %q", o.str("type"))
	}
}

func (d *decoder) buildObjectCreation(o obj) (srcast.Expr, error) {
	t, err := d.typeRef(o["objectType"])
	if err != nil {
		return nil, err
	}
	args, err := d.exprList(o["args"])
	if err != nil {
		return nil, err
	}
	sym, err := d.symbol(o["sym"])
	if err != nil {
		return nil, err
	}
	oc := &srcast.ObjectCreation{ExprBase: base(o), Type: t, Args: args, Sym: sym}
	if o.has("initializer") {
		init, err := d.buildInitializerExpr2(o["initializer"])
		if err != nil {
			return nil, err
		}
		oc.Initializer = init
	}
	return oc, nil
}

func (d *decoder) buildInitializerExpr(o obj) (srcast.Expr, error) {
	members, err := d.initializerMembers(o["members"])
	if err != nil {
		return nil, err
	}
	return &srcast.InitializerExpr{ExprBase: base(o), Members: members}, nil
}

func (d *decoder) buildInitializerExpr2(raw json.RawMessage) (*srcast.InitializerExpr, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	e, err := d.buildInitializerExpr(o)
	if err != nil {
		return nil, err
	}
	return e.(*srcast.InitializerExpr), nil
}

func (d *decoder) initializerMembers(raw json.RawMessage) ([]srcast.InitializerMember, error) {
	items := d.rawListOf(raw)
	out := make([]srcast.InitializerMember, len(items))
	for i, it := range items {
		mo, err := toObj(it)
		if err != nil {
			return nil, err
		}
		m := srcast.InitializerMember{Kind: initMemberKind(mo.str("kind")), Name: mo.str("name")}
		if m.Index, err = d.exprList(mo["index"]); err != nil {
			return nil, err
		}
		if m.Value, err = d.expr(mo["value"]); err != nil {
			return nil, err
		}
		if m.Args, err = d.exprList(mo["args"]); err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func (d *decoder) buildArrayCreation(o obj) (srcast.Expr, error) {
	elem, err := d.typeRef(o["elemType"])
	if err != nil {
		return nil, err
	}
	sizes, err := d.exprList(o["sizes"])
	if err != nil {
		return nil, err
	}
	init, err := d.exprList(o["initializer"])
	if err != nil {
		return nil, err
	}
	rank := o.integer("rank")
	if rank == 0 {
		rank = 1
	}
	return &srcast.ArrayCreation{ExprBase: base(o), ElemType: elem, Rank: rank, Sizes: sizes, Initializer: init}, nil
}

func (d *decoder) buildConditionalAccess(o obj) (srcast.Expr, error) {
	root, err := d.expr(o["root"])
	if err != nil {
		return nil, err
	}
	items := d.rawListOf(o["links"])
	links := make([]srcast.ConditionalLink, len(items))
	for i, it := range items {
		lo, err := toObj(it)
		if err != nil {
			return nil, err
		}
		link := srcast.ConditionalLink{Kind: linkKind(lo.str("kind")), Member: lo.str("member")}
		if link.Args, err = d.exprList(lo["args"]); err != nil {
			return nil, err
		}
		if link.Sym, err = d.symbol(lo["sym"]); err != nil {
			return nil, err
		}
		links[i] = link
	}
	return &srcast.ConditionalAccess{
		ExprBase:          base(o),
		Root:              root,
		Links:             links,
		UsedAsValue:       o.boolean("usedAsValue"),
		InFunctionContext: o.boolean("inFunctionContext"),
	}, nil
}

func (d *decoder) buildInterpolatedString(o obj) (srcast.Expr, error) {
	items := d.rawListOf(o["parts"])
	parts := make([]srcast.InterpPart, len(items))
	for i, it := range items {
		po, err := toObj(it)
		if err != nil {
			return nil, err
		}
		part := srcast.InterpPart{Text: po.str("text")}
		if po.has("expr") {
			if part.Expr, err = d.expr(po["expr"]); err != nil {
				return nil, err
			}
		}
		parts[i] = part
	}
	return &srcast.InterpolatedString{ExprBase: base(o), Parts: parts}, nil
}

func (d *decoder) buildLambda(o obj) (srcast.Expr, error) {
	params, err := d.paramInfos(o["params"])
	if err != nil {
		return nil, err
	}
	sym, err := d.symbol(o["sym"])
	if err != nil {
		return nil, err
	}
	l := &srcast.Lambda{ExprBase: base(o), Params: params, Sym: sym}
	if o.has("exprBody") {
		if l.ExprBody, err = d.expr(o["exprBody"]); err != nil {
			return nil, err
		}
	}
	if o.has("blockBody") {
		if l.BlockBody, err = d.block(o["blockBody"]); err != nil {
			return nil, err
		}
	}
	return l, nil
}

package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/kolkov/lunac/internal/srcast"
)

func stmtBase(o obj) srcast.StmtBase {
	return srcast.StmtBase{StartPos: o.pos("pos"), EndPos: o.pos("end")}
}

// block decodes a `{"stmts": [...]}` object directly into a *BlockStmt,
// used by every Body/Then/Finally field that is fixed to that concrete
// type rather than the general Stmt interface — those fields never need
// a "type" discriminator since the field itself already says what shape
// to expect.
func (d *decoder) block(raw json.RawMessage) (*srcast.BlockStmt, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	return d.blockFromObj(o)
}

func (d *decoder) blockFromObj(o obj) (*srcast.BlockStmt, error) {
	stmts, err := d.stmtList(o["stmts"])
	if err != nil {
		return nil, err
	}
	return &srcast.BlockStmt{StmtBase: stmtBase(o), Stmts: stmts}, nil
}

func (d *decoder) stmt(raw json.RawMessage) (srcast.Stmt, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	return d.buildStmt(o)
}

func (d *decoder) stmtList(raw json.RawMessage) ([]srcast.Stmt, error) {
	items := d.rawListOf(raw)
	out := make([]srcast.Stmt, len(items))
	for i, it := range items {
		s, err := d.stmt(it)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (d *decoder) buildStmt(o obj) (srcast.Stmt, error) {
	switch o.str("type") {
	case "Block":
		return d.blockFromObj(o)

	case "ExprStmt":
		x, err := d.expr(o["x"])
		if err != nil {
			return nil, err
		}
		return &srcast.ExprStmt{StmtBase: stmtBase(o), X: x}, nil

	case "EmptyStmt":
		return &srcast.EmptyStmt{StmtBase: stmtBase(o)}, nil

	case "VarDeclStmt":
		return d.buildVarDecl(o)

	case "LabeledStmt":
		inner, err := d.stmt(o["stmt"])
		if err != nil {
			return nil, err
		}
		return &srcast.LabeledStmt{StmtBase: stmtBase(o), Label: o.str("label"), Stmt: inner}, nil

	case "IfStmt":
		return d.buildIf(o)

	case "WhileStmt":
		cond, err := d.expr(o["cond"])
		if err != nil {
			return nil, err
		}
		body, err := d.block(o["body"])
		if err != nil {
			return nil, err
		}
		return &srcast.WhileStmt{StmtBase: stmtBase(o), Cond: cond, Body: body}, nil

	case "DoWhileStmt":
		body, err := d.block(o["body"])
		if err != nil {
			return nil, err
		}
		cond, err := d.expr(o["cond"])
		if err != nil {
			return nil, err
		}
		return &srcast.DoWhileStmt{StmtBase: stmtBase(o), Body: body, Cond: cond}, nil

	case "ForStmt":
		return d.buildFor(o)

	case "ForEachStmt":
		return d.buildForEach(o)

	case "BreakStmt":
		return &srcast.BreakStmt{StmtBase: stmtBase(o)}, nil

	case "ContinueStmt":
		return &srcast.ContinueStmt{StmtBase: stmtBase(o)}, nil

	case "ReturnStmt":
		v, err := d.expr(o["value"])
		if err != nil {
			return nil, err
		}
		return &srcast.ReturnStmt{StmtBase: stmtBase(o), Value: v}, nil

	case "ThrowStmt":
		v, err := d.expr(o["value"])
		if err != nil {
			return nil, err
		}
		return &srcast.ThrowStmt{StmtBase: stmtBase(o), Value: v}, nil

	case "YieldReturnStmt":
		v, err := d.expr(o["value"])
		if err != nil {
			return nil, err
		}
		return &srcast.YieldReturnStmt{StmtBase: stmtBase(o), Value: v}, nil

	case "YieldBreakStmt":
		return &srcast.YieldBreakStmt{StmtBase: stmtBase(o)}, nil

	case "TryStmt":
		return d.buildTry(o)

	case "UsingStmt":
		return d.buildUsing(o)

	case "LockStmt":
		target, err := d.expr(o["target"])
		if err != nil {
			return nil, err
		}
		body, err := d.block(o["body"])
		if err != nil {
			return nil, err
		}
		return &srcast.LockStmt{StmtBase: stmtBase(o), Target: target, Body: body}, nil

	case "UnsafeStmt":
		body, err := d.block(o["body"])
		if err != nil {
			return nil, err
		}
		return &srcast.UnsafeStmt{StmtBase: stmtBase(o), Body: body}, nil

	case "FixedStmt":
		t, err := d.typeRef(o["fixedType"])
		if err != nil {
			return nil, err
		}
		value, err := d.expr(o["value"])
		if err != nil {
			return nil, err
		}
		body, err := d.block(o["body"])
		if err != nil {
			return nil, err
		}
		return &srcast.FixedStmt{StmtBase: stmtBase(o), VarName: o.str("varName"), Type: t, Value: value, Body: body}, nil

	case "SwitchStmt":
		return d.buildSwitch(o)

	case "GotoCaseStmt":
		v, err := d.expr(o["value"])
		if err != nil {
			return nil, err
		}
		return &srcast.GotoCaseStmt{StmtBase: stmtBase(o), Value: v}, nil

	case "GotoDefaultStmt":
		return &srcast.GotoDefaultStmt{StmtBase: stmtBase(o)}, nil

	case "GotoStmt":
		return &srcast.GotoStmt{StmtBase: stmtBase(o), Label: o.str("label")}, nil

	case "LocalFunctionStmt":
		params, err := d.paramInfos(o["params"])
		if err != nil {
			return nil, err
		}
		body, err := d.block(o["body"])
		if err != nil {
			return nil, err
		}
		sym, err := d.symbol(o["sym"])
		if err != nil {
			return nil, err
		}
		return &srcast.LocalFunctionStmt{StmtBase: stmtBase(o), Name: o.str("name"), Params: params, Body: body, Sym: sym}, nil

	default:
		return nil, fmt.Errorf("fixture: unknown statement type %q", o.str("type"))
	}
}

func (d *decoder) buildVarDecl(o obj) (srcast.Stmt, error) {
	v := &srcast.VarDeclStmt{
		StmtBase:              stmtBase(o),
		Names:                 o.strList("names"),
		IsTupleDeconstruction: o.boolean("isTupleDeconstruction"),
	}
	var err error
	if o.has("varType") {
		if v.Type, err = d.typeRef(o["varType"]); err != nil {
			return nil, err
		}
	}
	inits := d.rawListOf(o["inits"])
	v.Syms = make([]*srcast.Symbol, len(d.rawListOf(o["syms"])))
	for i, it := range d.rawListOf(o["syms"]) {
		if v.Syms[i], err = d.symbol(it); err != nil {
			return nil, err
		}
	}
	v.Inits = make([]srcast.Expr, len(inits))
	for i, it := range inits {
		if v.Inits[i], err = d.expr(it); err != nil {
			return nil, err
		}
	}
	if o.has("tupleSource") {
		if v.TupleSource, err = d.expr(o["tupleSource"]); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (d *decoder) buildIf(o obj) (srcast.Stmt, error) {
	cond, err := d.expr(o["cond"])
	if err != nil {
		return nil, err
	}
	then, err := d.block(o["then"])
	if err != nil {
		return nil, err
	}
	var els srcast.Stmt
	if o.has("else") {
		if els, err = d.stmt(o["else"]); err != nil {
			return nil, err
		}
	}
	return &srcast.IfStmt{StmtBase: stmtBase(o), Cond: cond, Then: then, Else: els}, nil
}

func (d *decoder) buildFor(o obj) (srcast.Stmt, error) {
	f := &srcast.ForStmt{StmtBase: stmtBase(o)}
	var err error
	if o.has("init") {
		if f.Init, err = d.stmt(o["init"]); err != nil {
			return nil, err
		}
	}
	if o.has("cond") {
		if f.Cond, err = d.expr(o["cond"]); err != nil {
			return nil, err
		}
	}
	if o.has("post") {
		if f.Post, err = d.stmt(o["post"]); err != nil {
			return nil, err
		}
	}
	if f.Body, err = d.block(o["body"]); err != nil {
		return nil, err
	}
	return f, nil
}

func (d *decoder) buildForEach(o obj) (srcast.Stmt, error) {
	f := &srcast.ForEachStmt{
		StmtBase:    stmtBase(o),
		VarName:     o.str("varName"),
		IsRangeLike: o.boolean("isRangeLike"),
	}
	var err error
	if f.VarType, err = d.typeRef(o["varType"]); err != nil {
		return nil, err
	}
	if f.Source, err = d.expr(o["source"]); err != nil {
		return nil, err
	}
	if f.Body, err = d.block(o["body"]); err != nil {
		return nil, err
	}
	if f.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return f, nil
}

func (d *decoder) buildTry(o obj) (srcast.Stmt, error) {
	t := &srcast.TryStmt{StmtBase: stmtBase(o)}
	var err error
	if t.Body, err = d.block(o["body"]); err != nil {
		return nil, err
	}
	for _, it := range d.rawListOf(o["catches"]) {
		co, err := toObj(it)
		if err != nil {
			return nil, err
		}
		cc := srcast.CatchClause{StmtBase: stmtBase(co), VarName: co.str("varName")}
		if co.has("catchType") {
			if cc.Type, err = d.typeRef(co["catchType"]); err != nil {
				return nil, err
			}
		}
		if co.has("filter") {
			if cc.Filter, err = d.expr(co["filter"]); err != nil {
				return nil, err
			}
		}
		if cc.Body, err = d.block(co["body"]); err != nil {
			return nil, err
		}
		t.Catches = append(t.Catches, cc)
	}
	if o.has("finally") {
		if t.Finally, err = d.block(o["finally"]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (d *decoder) buildUsing(o obj) (srcast.Stmt, error) {
	u := &srcast.UsingStmt{StmtBase: stmtBase(o)}
	for _, it := range d.rawListOf(o["resources"]) {
		ro, err := toObj(it)
		if err != nil {
			return nil, err
		}
		val, err := d.expr(ro["value"])
		if err != nil {
			return nil, err
		}
		u.Resources = append(u.Resources, srcast.UsingResource{VarName: ro.str("varName"), Value: val})
	}
	body, err := d.block(o["body"])
	if err != nil {
		return nil, err
	}
	u.Body = body
	return u, nil
}

func (d *decoder) buildSwitch(o obj) (srcast.Stmt, error) {
	selector, err := d.expr(o["selector"])
	if err != nil {
		return nil, err
	}
	s := &srcast.SwitchStmt{StmtBase: stmtBase(o), Selector: selector}
	for _, it := range d.rawListOf(o["sections"]) {
		so, err := toObj(it)
		if err != nil {
			return nil, err
		}
		sec := srcast.SwitchSection{}
		for _, lraw := range d.rawListOf(so["labels"]) {
			lo, err := toObj(lraw)
			if err != nil {
				return nil, err
			}
			var val srcast.Expr
			if lo.has("value") {
				if val, err = d.expr(lo["value"]); err != nil {
					return nil, err
				}
			}
			sec.Labels = append(sec.Labels, srcast.SwitchLabel{Value: val})
		}
		if sec.Body, err = d.stmtList(so["body"]); err != nil {
			return nil, err
		}
		s.Sections = append(s.Sections, sec)
	}
	return s, nil
}

package transform

import (
	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/srcast"
	"github.com/kolkov/lunac/internal/token"
)

func baseStmtFrom(s srcast.Stmt) dstast.BaseStmt {
	return dstast.MakeBaseStmt(s.Pos(), s.End())
}

// transformBlock lowers a brace-delimited statement list inside its own
// naming scope, so a local declared in a nested block never collides
// with one from an enclosing block that happens to share a source name.
func (u *Unit) transformBlock(b *srcast.BlockStmt) []dstast.Stmt {
	if b == nil {
		return nil
	}
	u.pushNameScope()
	defer u.popNameScope()
	return u.transformStmtList(b.Stmts)
}

// transformStmtList lowers a flat statement sequence. Local function
// declarations sharing this list are hoisted to forward-declared locals
// first — `local f, g; f = function() ... end; g = function() ... end`
// instead of sequential `local function` forms — whenever more than one
// appears, since mutual recursion between them (f calling g before g's
// own declaration is reached) only works once both names exist up front.
func (u *Unit) transformStmtList(stmts []srcast.Stmt) []dstast.Stmt {
	var localFns []string
	for _, s := range stmts {
		if lf, ok := s.(*srcast.LocalFunctionStmt); ok {
			localFns = append(localFns, u.memberIdentName(lf.Sym, lf.Name))
		}
	}
	hoist := len(localFns) > 1

	var out []dstast.Stmt
	if hoist {
		out = append(out, &dstast.LocalVarDecl{Names: localFns})
	}
	for _, s := range stmts {
		out = append(out, u.transformStmt(s, hoist)...)
	}
	return out
}

// transformStmt lowers one L-src statement. hoistLocalFn threads the
// decision transformStmtList made about the enclosing list's local
// function declarations down to the one case that needs it.
func (u *Unit) transformStmt(s srcast.Stmt, hoistLocalFn bool) []dstast.Stmt {
	switch n := s.(type) {
	case *srcast.BlockStmt:
		return []dstast.Stmt{&dstast.Do{BaseStmt: baseStmtFrom(n), Body: u.transformBlock(n)}}
	case *srcast.ExprStmt:
		return u.transformExprStmt(n)
	case *srcast.EmptyStmt:
		return nil
	case *srcast.VarDeclStmt:
		return u.transformVarDecl(n)
	case *srcast.LabeledStmt:
		return append([]dstast.Stmt{&dstast.Labeled{BaseStmt: baseStmtFrom(n), Label: n.Label}}, u.transformStmt(n.Stmt, false)...)
	case *srcast.IfStmt:
		return []dstast.Stmt{u.transformIf(n)}
	case *srcast.WhileStmt:
		return []dstast.Stmt{u.transformWhile(n)}
	case *srcast.DoWhileStmt:
		return []dstast.Stmt{u.transformDoWhile(n)}
	case *srcast.ForStmt:
		return []dstast.Stmt{u.transformFor(n)}
	case *srcast.ForEachStmt:
		return []dstast.Stmt{u.transformForEach(n)}
	case *srcast.BreakStmt:
		return []dstast.Stmt{u.transformBreak(n)}
	case *srcast.ContinueStmt:
		label := u.enclosingLoopLabel()
		if label == "" {
			raise(n.Pos(), "continue outside a loop")
		}
		return []dstast.Stmt{&dstast.ContinueAdapter{BaseStmt: baseStmtFrom(n), ContinueLabel: label}}
	case *srcast.ReturnStmt:
		return []dstast.Stmt{u.transformReturn(n)}
	case *srcast.ThrowStmt:
		return []dstast.Stmt{u.transformThrow(n)}
	case *srcast.YieldReturnStmt:
		return []dstast.Stmt{u.transformYieldReturn(n)}
	case *srcast.YieldBreakStmt:
		return []dstast.Stmt{u.transformYieldBreak(n)}
	case *srcast.TryStmt:
		return []dstast.Stmt{u.transformTry(n)}
	case *srcast.UsingStmt:
		return []dstast.Stmt{u.transformUsing(n)}
	case *srcast.LockStmt:
		return u.transformLock(n)
	case *srcast.UnsafeStmt:
		return u.transformUnsafe(n)
	case *srcast.FixedStmt:
		return u.transformFixed(n)
	case *srcast.SwitchStmt:
		return u.transformSwitch(n)
	case *srcast.GotoCaseStmt:
		return []dstast.Stmt{u.transformGotoCase(n)}
	case *srcast.GotoDefaultStmt:
		return []dstast.Stmt{u.transformGotoDefault(n)}
	case *srcast.GotoStmt:
		return []dstast.Stmt{&dstast.Goto{BaseStmt: baseStmtFrom(n), Label: n.Label}}
	case *srcast.LocalFunctionStmt:
		return []dstast.Stmt{u.transformLocalFunction(n, hoistLocalFn)}
	default:
		raise(s.Pos(), "unsupported statement node %T", s)
		return nil
	}
}

// transformExprStmt special-cases the handful of expression forms that
// need statement-level treatment rather than the generic (and often
// IIFE-wrapping) expression lowering: a bare assignment is lowered
// directly by lowerAssignment instead of through transformAssignmentExpr's
// value-producing wrapper, and a bare increment/decrement becomes a
// compound assignment instead of the value-capturing closure
// transformIncDecValue builds for expression-position use.
func (u *Unit) transformExprStmt(n *srcast.ExprStmt) []dstast.Stmt {
	switch x := n.X.(type) {
	case *srcast.Assignment:
		return u.lowerAssignment(x)
	case *srcast.Unary:
		if x.Op == srcast.UnIncr || x.Op == srcast.UnDecr {
			return u.lowerIncDecStmt(x)
		}
	case *srcast.Invocation:
		if len(u.refOutArgExprs(x)) > 0 {
			return u.lowerRefOutCall(n, x, nil)
		}
	}
	return []dstast.Stmt{&dstast.ExprStmt{BaseStmt: baseStmtFrom(n), X: u.transformExpr(n.X)}}
}

// refOutArgExprs reports the subset of a call's own argument
// expressions that bind a ref/out parameter, in parameter order — the
// write-back targets a multi-return call site assigns the callee's
// trailing return values into, since the target language has no
// pass-by-reference parameter of its own to fall back on.
func (u *Unit) refOutArgExprs(e *srcast.Invocation) []dstast.Expr {
	if e.Sym == nil {
		return nil
	}
	var targets []dstast.Expr
	for i, p := range e.Sym.Params {
		if !p.Ref && !p.Out {
			continue
		}
		if i >= len(e.Args) {
			continue
		}
		targets = append(targets, u.transformExpr(e.Args[i]))
	}
	return targets
}

// callIsVoid reports whether an invocation's own return value is void,
// per the oracle's recorded static type for the call expression — the
// call-site equivalent of a void method declaration, which only the
// declaration side (MethodDecl.ReturnType == nil) carries directly.
func (u *Unit) callIsVoid(e *srcast.Invocation) bool {
	t := u.oracle.TypeOf(e)
	return t == nil || t.Kind == srcast.TypeVoid
}

// lowerRefOutCall rewrites a call carrying ref/out arguments into the
// multi-return form the target language needs in place of pass-by-
// reference: capture every return value — the callee's own value, if
// it has one, followed by each ref/out parameter's final value, in the
// order transformReturn emits them — into synthesized locals, then
// assign the ref/out ones back into their original argument
// expressions. primaryTarget is where the callee's own return value
// goes; nil discards it (a bare statement-position call).
func (u *Unit) lowerRefOutCall(pos srcast.Node, e *srcast.Invocation, primaryTarget dstast.Expr) []dstast.Stmt {
	refOut := u.refOutArgExprs(e)
	hasPrimary := !u.callIsVoid(e)

	capture := make([]string, 0, len(refOut)+1)
	primaryTemp := ""
	if hasPrimary {
		primaryTemp = u.nextCondTemp()
		capture = append(capture, primaryTemp)
	}
	refNames := make([]string, len(refOut))
	for i := range refOut {
		refNames[i] = u.nextCondTemp()
		capture = append(capture, refNames[i])
	}

	out := []dstast.Stmt{&dstast.LocalVarDecl{
		BaseStmt: dstast.MakeBaseStmt(pos.Pos(), pos.End()),
		Names:    capture,
		Values:   []dstast.Expr{u.transformExpr(e)},
	}}
	if hasPrimary && primaryTarget != nil {
		out = append(out, &dstast.Assignment{
			Targets: []dstast.AssignTarget{{Plain: primaryTarget}},
			Values:  []dstast.Expr{&dstast.Identifier{Name: primaryTemp}},
		})
	}
	for i, target := range refOut {
		out = append(out, &dstast.Assignment{
			Targets: []dstast.AssignTarget{{Plain: target}},
			Values:  []dstast.Expr{&dstast.Identifier{Name: refNames[i]}},
		})
	}
	return out
}

func (u *Unit) lowerIncDecStmt(x *srcast.Unary) []dstast.Stmt {
	op := token.OpAdd
	if x.Op == srcast.UnDecr {
		op = token.OpSub
	}
	target := u.transformExpr(x.Operand)
	value := &dstast.Binary{Op: op, Left: target, Right: &dstast.Literal{Kind: dstast.LitNumber, Value: "1"}}
	return []dstast.Stmt{&dstast.Assignment{
		Targets: []dstast.AssignTarget{{Plain: u.transformExpr(x.Operand)}},
		Values:  []dstast.Expr{value},
	}}
}

// -----------------------------------------------------------------------------
// Assignment lowering, shared by statement- and expression-position use
// -----------------------------------------------------------------------------

var compoundOpTable = map[srcast.AssignOp]token.Op{
	srcast.AsgAdd:  token.OpAdd,
	srcast.AsgSub:  token.OpSub,
	srcast.AsgMul:  token.OpMul,
	srcast.AsgDiv:  token.OpDiv,
	srcast.AsgMod:  token.OpMod,
	srcast.AsgBAnd: token.OpBAnd,
	srcast.AsgBOr:  token.OpBOr,
	srcast.AsgBXor: token.OpBXor,
	srcast.AsgShl:  token.OpShl,
	srcast.AsgShr:  token.OpShr,
}

// propertyTargetInfo reports the receiver/name/index-args an assignment
// target must route through a getter/setter pair for, versus a plain
// target that assigns directly.
func propertyTargetInfo(target srcast.Expr) (recv srcast.Expr, name string, sym *srcast.Symbol, args []srcast.Expr, ok bool) {
	switch t := target.(type) {
	case *srcast.MemberAccess:
		if t.Sym != nil && (t.Sym.Kind == srcast.SymProperty || t.Sym.Kind == srcast.SymEvent) {
			return t.Receiver, t.Member, t.Sym, nil, true
		}
	case *srcast.IndexExpr:
		if t.Sym != nil {
			return t.Receiver, "Item", t.Sym, t.Args, true
		}
	}
	return nil, "", nil, nil, false
}

// lowerAssignment lowers `target op= value` to one or more statements.
// A plain target assigns (or, for a compound operator, reads-then-
// assigns) directly; a property or indexer target routes through its
// get_X/set_X pair, producing a TargetProperty AssignTarget whose Setter
// already carries the full setter invocation (render.go's printer prints
// that verbatim, with no trailing `= value`).
func (u *Unit) lowerAssignment(a *srcast.Assignment) []dstast.Stmt {
	if recvSrc, name, sym, idxArgs, ok := propertyTargetInfo(a.Target); ok {
		return u.lowerPropertyAssignment(a, recvSrc, name, sym, idxArgs)
	}

	if a.Op == srcast.AsgSimple {
		if inv, ok := a.Value.(*srcast.Invocation); ok && len(u.refOutArgExprs(inv)) > 0 {
			return u.lowerRefOutCall(a, inv, u.transformExpr(a.Target))
		}
	}

	targetExpr := u.transformExpr(a.Target)
	if a.Op == srcast.AsgCoalesce {
		return []dstast.Stmt{&dstast.If{
			Cond: &dstast.Binary{Op: token.OpEq, Left: targetExpr, Right: &dstast.Literal{Kind: dstast.LitNil}},
			Then: []dstast.Stmt{&dstast.Assignment{
				Targets: []dstast.AssignTarget{{Plain: targetExpr}},
				Values:  []dstast.Expr{u.transformExpr(a.Value)},
			}},
		}}
	}

	value := u.compoundValue(a.Op, targetExpr, u.transformExpr(a.Value))
	return []dstast.Stmt{&dstast.Assignment{
		BaseStmt: baseStmtFrom(a),
		Targets:  []dstast.AssignTarget{{Plain: u.transformExpr(a.Target)}},
		Values:   []dstast.Expr{value},
	}}
}

func (u *Unit) compoundValue(op srcast.AssignOp, oldVal, newVal dstast.Expr) dstast.Expr {
	if op == srcast.AsgSimple {
		return newVal
	}
	binOp, ok := compoundOpTable[op]
	if !ok {
		raise(oldVal.Pos(), "unsupported compound assignment operator %d", op)
	}
	return &dstast.Binary{Op: binOp, Left: oldVal, Right: newVal}
}

func (u *Unit) lowerPropertyAssignment(a *srcast.Assignment, recvSrc srcast.Expr, name string, sym *srcast.Symbol, idxArgs []srcast.Expr) []dstast.Stmt {
	if sym.Kind == srcast.SymEvent {
		return u.lowerEventAssignment(a, recvSrc, name, sym)
	}

	recv := u.transformExpr(recvSrc)
	resolved := u.memberIdentName(sym, name)
	args := u.transformExprs(idxArgs)
	getCallee := &dstast.MemberAccess{Receiver: recv, Member: "get_" + resolved, IsColonCall: true}
	setCallee := &dstast.MemberAccess{Receiver: recv, Member: "set_" + resolved, IsColonCall: true}
	getExpr := &dstast.Invocation{Callee: getCallee, Args: args, IsMethodCall: true}

	setter := func(value dstast.Expr) dstast.Stmt {
		setArgs := append(append([]dstast.Expr{}, args...), value)
		return &dstast.Assignment{
			BaseStmt: baseStmtFrom(a),
			Targets: []dstast.AssignTarget{{
				Kind:   dstast.TargetProperty,
				Setter: &dstast.Invocation{Callee: setCallee, Args: setArgs, IsMethodCall: true},
			}},
		}
	}

	if a.Op == srcast.AsgCoalesce {
		return []dstast.Stmt{&dstast.If{
			Cond: &dstast.Binary{Op: token.OpEq, Left: getExpr, Right: &dstast.Literal{Kind: dstast.LitNil}},
			Then: []dstast.Stmt{setter(u.transformExpr(a.Value))},
		}}
	}
	value := u.compoundValue(a.Op, getExpr, u.transformExpr(a.Value))
	return []dstast.Stmt{setter(value)}
}

// lowerEventAssignment lowers `evt += handler` / `evt -= handler`, the
// only two assignment forms an event subscription supports. Unlike a
// property, there is no arithmetic/string meaning to borrow for the
// compound operator, so the binary-op table used for everything else
// does not apply here: `+=` combines the handler into the event's
// backing delegate via System.combine, `-=` removes it via
// System.remove, both routed through the event's add_X/remove_X pair.
func (u *Unit) lowerEventAssignment(a *srcast.Assignment, recvSrc srcast.Expr, name string, sym *srcast.Symbol) []dstast.Stmt {
	recv := u.transformExpr(recvSrc)
	resolved := u.memberIdentName(sym, name)
	handler := u.transformExpr(a.Value)

	var member string
	switch a.Op {
	case srcast.AsgAdd:
		member = "add_" + resolved
	case srcast.AsgSub:
		member = "remove_" + resolved
	default:
		raise(a.Pos(), "event %s only supports += and -=", name)
	}

	callee := &dstast.MemberAccess{Receiver: recv, Member: member, IsColonCall: true}
	return []dstast.Stmt{&dstast.Assignment{
		BaseStmt: baseStmtFrom(a),
		Targets: []dstast.AssignTarget{{
			Kind:   dstast.TargetProperty,
			Setter: &dstast.Invocation{Callee: callee, Args: []dstast.Expr{handler}, IsMethodCall: true},
		}},
	}}
}

// -----------------------------------------------------------------------------
// Declarations, control flow
// -----------------------------------------------------------------------------

func (u *Unit) transformVarDecl(n *srcast.VarDeclStmt) []dstast.Stmt {
	if n.IsTupleDeconstruction {
		names := make([]string, len(n.Names))
		for i, name := range n.Names {
			sym := symAt(n.Syms, i)
			names[i] = u.memberIdentName(sym, name)
		}
		return []dstast.Stmt{&dstast.LocalVarDecl{
			BaseStmt: baseStmtFrom(n),
			Names:    names,
			Values:   []dstast.Expr{u.transformExpr(n.TupleSource)},
		}}
	}

	if len(n.Names) == 1 && len(n.Inits) == 1 {
		if inv, ok := n.Inits[0].(*srcast.Invocation); ok && len(u.refOutArgExprs(inv)) > 0 {
			name := u.memberIdentName(symAt(n.Syms, 0), n.Names[0])
			decl := &dstast.LocalVarDecl{BaseStmt: baseStmtFrom(n), Names: []string{name}}
			return append([]dstast.Stmt{decl}, u.lowerRefOutCall(n, inv, &dstast.Identifier{Name: name})...)
		}
	}

	names := make([]string, len(n.Names))
	values := make([]dstast.Expr, 0, len(n.Names))
	for i, name := range n.Names {
		sym := symAt(n.Syms, i)
		names[i] = u.memberIdentName(sym, name)
		if i < len(n.Inits) && n.Inits[i] != nil {
			values = append(values, u.transformExpr(n.Inits[i]))
		}
	}
	return []dstast.Stmt{&dstast.LocalVarDecl{BaseStmt: baseStmtFrom(n), Names: names, Values: values}}
}

func symAt(syms []*srcast.Symbol, i int) *srcast.Symbol {
	if i < len(syms) {
		return syms[i]
	}
	return nil
}

// transformIf lowers `if`/`else if`/`else`. An is-pattern condition with
// a binding (`if (x is T t)`) introduces its bound local at the top of
// the then-branch, since that is the only place spec.md's binding scope
// rule makes it visible.
func (u *Unit) transformIf(n *srcast.IfStmt) dstast.Stmt {
	cond, binding := u.transformCondition(n.Cond)
	u.pushNameScope()
	then := append(binding, u.transformBlock(n.Then)...)
	u.popNameScope()

	var elseStmts []dstast.Stmt
	switch e := n.Else.(type) {
	case nil:
	case *srcast.IfStmt:
		elseStmts = []dstast.Stmt{u.transformIf(e)}
	case *srcast.BlockStmt:
		elseStmts = u.transformBlock(e)
	default:
		u.pushNameScope()
		elseStmts = u.transformStmt(e, false)
		u.popNameScope()
	}
	return &dstast.If{BaseStmt: baseStmtFrom(n), Cond: cond, Then: then, Else: elseStmts}
}

// transformCondition lowers a boolean condition, special-casing a
// top-level is-pattern so its bound name becomes a local declaration
// instead of being dropped on the floor the way a plain expression-value
// lowering would.
func (u *Unit) transformCondition(cond srcast.Expr) (dstast.Expr, []dstast.Stmt) {
	pat, ok := cond.(*srcast.IsPattern)
	if !ok || pat.Binding == "" {
		return u.transformExpr(cond), nil
	}
	test := u.transformIsPatternValue(pat)
	bind := &dstast.LocalVarDecl{Names: []string{pat.Binding}, Values: []dstast.Expr{u.transformExpr(pat.Subject)}}
	return test, []dstast.Stmt{bind}
}

func (u *Unit) transformWhile(n *srcast.WhileStmt) dstast.Stmt {
	label := u.nextLabel("continue_")
	u.pushBlock(&blockFrame{continueLabel: label})
	body := append(u.transformBlock(n.Body), &dstast.Labeled{Label: label})
	u.popBlock()
	return &dstast.While{BaseStmt: baseStmtFrom(n), Cond: u.transformExpr(n.Cond), Body: body}
}

func (u *Unit) transformDoWhile(n *srcast.DoWhileStmt) dstast.Stmt {
	label := u.nextLabel("continue_")
	u.pushBlock(&blockFrame{continueLabel: label})
	body := append(u.transformBlock(n.Body), &dstast.Labeled{Label: label})
	u.popBlock()
	return &dstast.RepeatUntil{BaseStmt: baseStmtFrom(n), Body: body, Cond: u.transformExpr(n.Cond)}
}

// transformFor lowers a C-style `for` loop to a `do ... while ... end`
// nest: the target language's numeric `for` only covers a fixed
// start/stop/step, not an arbitrary init/cond/post triple, so the general
// form needs the same init-then-loop structure a `while` desugars to in
// the source language itself. The outer `do` scopes the loop variable the
// way the source's own for-scoping rule requires.
func (u *Unit) transformFor(n *srcast.ForStmt) dstast.Stmt {
	u.pushNameScope()
	defer u.popNameScope()

	var init []dstast.Stmt
	if n.Init != nil {
		init = u.transformStmt(n.Init, false)
	}

	label := u.nextLabel("continue_")
	u.pushBlock(&blockFrame{continueLabel: label})
	body := u.transformBlock(n.Body)
	body = append(body, &dstast.Labeled{Label: label})
	if n.Post != nil {
		body = append(body, u.transformStmt(n.Post, false)...)
	}
	u.popBlock()

	whileCond := dstast.Expr(&dstast.Literal{Kind: dstast.LitBool, Value: "true"})
	if n.Cond != nil {
		whileCond = u.transformExpr(n.Cond)
	}

	loop := &dstast.While{Cond: whileCond, Body: body}
	return &dstast.Do{BaseStmt: baseStmtFrom(n), Body: append(init, loop)}
}

// transformForEach lowers `foreach` uniformly through the runtime's
// generic iterator entry point. spec.md's IsRangeLike flag marks sources
// the front end knows are countable ranges, which would let a numeric
// `for` replace the generic-iterator call as a fast path — but the
// semantic-input contract exposes that as a flag with no accompanying
// start/stop expressions to build a NumericFor from, so this lowering
// does not attempt the optimization and always goes through System.each.
func (u *Unit) transformForEach(n *srcast.ForEachStmt) dstast.Stmt {
	u.pushNameScope()
	defer u.popNameScope()

	varName := u.memberIdentName(n.Sym, n.VarName)
	label := u.nextLabel("continue_")
	u.pushBlock(&blockFrame{continueLabel: label})
	body := append(u.transformBlock(n.Body), &dstast.Labeled{Label: label})
	u.popBlock()

	iterator := &dstast.Invocation{
		Callee: &dstast.Identifier{Name: "System.each"},
		Args:   []dstast.Expr{u.transformExpr(n.Source)},
	}
	return &dstast.GenericFor{BaseStmt: baseStmtFrom(n), Vars: []string{"_", varName}, Iterator: iterator, Body: body}
}

// transformBreak routes a bare `break` to the innermost enclosing loop or
// switch. A loop break is native; a switch break has to jump to the
// switch's synthesized exit label, since the lowered switch is a flat
// dispatch block (see transformSwitch), not a construct the target
// language's native break can see.
func (u *Unit) transformBreak(n *srcast.BreakStmt) dstast.Stmt {
	top := u.topBlock()
	if top == nil {
		raise(n.Pos(), "break outside a loop or switch")
	}
	if top.breakLabel != "" {
		return &dstast.Goto{BaseStmt: baseStmtFrom(n), Label: top.breakLabel}
	}
	return &dstast.Break{BaseStmt: baseStmtFrom(n)}
}

// transformReturn lowers `return [value];`. When the enclosing method
// has ref/out parameters, every return statement additionally echoes
// each one back as a trailing return value — the method-info stack's
// ref/out parameter list exists precisely so this lowering can find
// them without walking back up to the declaration.
func (u *Unit) transformReturn(n *srcast.ReturnStmt) dstast.Stmt {
	refOut := u.currentRefOutIdents()
	if n.Value == nil {
		return &dstast.Return{BaseStmt: baseStmtFrom(n), Values: refOut}
	}
	values := append([]dstast.Expr{u.transformExpr(n.Value)}, refOut...)
	return &dstast.Return{BaseStmt: baseStmtFrom(n), Values: values}
}

func (u *Unit) currentRefOutIdents() []dstast.Expr {
	f := u.currentFunc()
	if f == nil || len(f.refOutParams) == 0 {
		return nil
	}
	idents := make([]dstast.Expr, len(f.refOutParams))
	for i, name := range f.refOutParams {
		idents[i] = &dstast.Identifier{Name: name}
	}
	return idents
}

// transformThrow lowers `throw expr;` to `System.throw(expr)` and a bare
// rethrow (`throw;`, valid only inside a catch clause) to
// `System.throw(e)`, forwarding the catch-bound exception value the
// enclosing TryAdapter lowering names "e" by convention.
func (u *Unit) transformThrow(n *srcast.ThrowStmt) dstast.Stmt {
	var arg dstast.Expr
	if n.Value != nil {
		arg = u.transformExpr(n.Value)
	} else {
		arg = &dstast.Identifier{Name: "e"}
	}
	return &dstast.ExprStmt{BaseStmt: baseStmtFrom(n), X: &dstast.Invocation{
		Callee: &dstast.Identifier{Name: "System.throw"},
		Args:   []dstast.Expr{arg},
	}}
}

// transformYieldReturn lowers `yield return expr;` inside an iterator
// method to a coroutine.yield call. lowerFunctionLike has already
// wrapped the enclosing method body in coroutine.wrap when it detected
// a yield anywhere in it, so this is simply handing the produced value
// to whatever is driving that coroutine.
func (u *Unit) transformYieldReturn(n *srcast.YieldReturnStmt) dstast.Stmt {
	f := u.currentFunc()
	if f == nil || !f.isIterator {
		raise(n.Pos(), "yield return outside an iterator method")
	}
	return &dstast.ExprStmt{BaseStmt: baseStmtFrom(n), X: &dstast.Invocation{
		Callee: &dstast.Identifier{Name: "coroutine.yield"},
		Args:   []dstast.Expr{u.transformExpr(n.Value)},
	}}
}

// transformYieldBreak lowers `yield break;` to a bare return, ending the
// coroutine.wrap closure lowerFunctionLike wraps an iterator body in —
// the same way falling off the end of that closure would.
func (u *Unit) transformYieldBreak(n *srcast.YieldBreakStmt) dstast.Stmt {
	f := u.currentFunc()
	if f == nil || !f.isIterator {
		raise(n.Pos(), "yield break outside an iterator method")
	}
	return &dstast.Return{BaseStmt: baseStmtFrom(n)}
}

// containsYield reports whether stmts contains a yield return/break at
// this method's own nesting level. It does not descend into a nested
// local function's body — that function would be its own separate
// iterator with its own yields, not part of the enclosing method's.
func containsYield(stmts []srcast.Stmt) bool {
	for _, s := range stmts {
		if stmtContainsYield(s) {
			return true
		}
	}
	return false
}

func stmtContainsYield(s srcast.Stmt) bool {
	switch n := s.(type) {
	case *srcast.YieldReturnStmt, *srcast.YieldBreakStmt:
		return true
	case *srcast.BlockStmt:
		return containsYield(n.Stmts)
	case *srcast.LabeledStmt:
		return stmtContainsYield(n.Stmt)
	case *srcast.IfStmt:
		if n.Then != nil && containsYield(n.Then.Stmts) {
			return true
		}
		return stmtContainsYield(n.Else)
	case *srcast.WhileStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.DoWhileStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.ForStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.ForEachStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.TryStmt:
		if n.Body != nil && containsYield(n.Body.Stmts) {
			return true
		}
		for _, c := range n.Catches {
			if c.Body != nil && containsYield(c.Body.Stmts) {
				return true
			}
		}
		return n.Finally != nil && containsYield(n.Finally.Stmts)
	case *srcast.UsingStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.LockStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.UnsafeStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.FixedStmt:
		return n.Body != nil && containsYield(n.Body.Stmts)
	case *srcast.SwitchStmt:
		for _, sec := range n.Sections {
			if containsYield(sec.Body) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// transformLock treats `lock (expr) body` as a single-threaded no-op
// guard: the target runtime has no threads to race, so only body's
// statements survive, wrapped in a `do` block to preserve its source
// scoping and a leading comment recording that the guard was dropped.
func (u *Unit) transformLock(n *srcast.LockStmt) []dstast.Stmt {
	comment := &dstast.Comment{Text: "lock elided: single-threaded target"}
	return []dstast.Stmt{comment, &dstast.Do{BaseStmt: baseStmtFrom(n), Body: u.transformBlock(n.Body)}}
}

func (u *Unit) transformUnsafe(n *srcast.UnsafeStmt) []dstast.Stmt {
	comment := &dstast.Comment{Text: "unsafe block: pointer syntax erased"}
	return []dstast.Stmt{comment, &dstast.Do{BaseStmt: baseStmtFrom(n), Body: u.transformBlock(n.Body)}}
}

// transformFixed lowers `fixed (T* p = expr) body` to a local binding
// plus the same no-op treatment as unsafe — the target has no pinning
// concept, so the only thing worth preserving is the name p is bound to.
func (u *Unit) transformFixed(n *srcast.FixedStmt) []dstast.Stmt {
	comment := &dstast.Comment{Text: "fixed block: pointer pinning erased"}
	u.pushNameScope()
	defer u.popNameScope()
	bind := &dstast.LocalVarDecl{Names: []string{n.VarName}, Values: []dstast.Expr{u.transformExpr(n.Value)}}
	return []dstast.Stmt{comment, &dstast.Do{BaseStmt: baseStmtFrom(n), Body: append([]dstast.Stmt{bind}, u.transformBlock(n.Body)...)}}
}

// -----------------------------------------------------------------------------
// Switch / goto-case
// -----------------------------------------------------------------------------

// transformSwitch lowers `switch (selector) { ... }` to a flat dispatch
// block rather than a nested if/elseif chain: every section needs to be
// a sibling label in the same enclosing block so a `goto case`/`goto
// default` elsewhere in the switch can jump directly to it — the target
// language only allows goto into a label visible from the jump's own
// block, and a label buried inside one if-branch is not visible from
// another. The shape is: bind the selector once, a run of `if selector
// == V then goto caseLabel end` tests (falling through to the default
// section's label, or the switch's exit label if there is none), then
// the sections themselves as flat, labeled statement runs each ending in
// a jump to the exit label (skipped when the section already ends in an
// unconditional return, since nothing may follow a return in the same
// block).
func (u *Unit) transformSwitch(n *srcast.SwitchStmt) []dstast.Stmt {
	selectorTmp := u.nextCondTemp()
	selectorID := &dstast.Identifier{Name: selectorTmp}
	endLabel := u.nextLabel("switchEnd_")

	type section struct {
		label  string
		values []string
		isDflt bool
		body   *srcast.SwitchSection
	}
	sections := make([]section, len(n.Sections))
	caseLabels := make(map[string]string)
	defaultLabel := ""

	for i, sec := range n.Sections {
		label := u.nextLabel("case_")
		s := section{label: label, body: &n.Sections[i]}
		for _, lbl := range sec.Labels {
			if lbl.Value == nil {
				s.isDflt = true
				defaultLabel = label
				continue
			}
			key := u.exprText(u.transformExpr(lbl.Value))
			caseLabels[key] = label
			s.values = append(s.values, key)
		}
		sections[i] = s
	}

	fallthroughLabel := endLabel
	if defaultLabel != "" {
		fallthroughLabel = defaultLabel
	}

	u.pushBlock(&blockFrame{caseLabels: caseLabels, defaultLabel: defaultLabel, breakLabel: endLabel})
	defer u.popBlock()

	out := []dstast.Stmt{&dstast.LocalVarDecl{Names: []string{selectorTmp}, Values: []dstast.Expr{u.transformExpr(n.Selector)}}}
	for _, s := range sections {
		for _, v := range s.values {
			out = append(out, &dstast.If{
				Cond: &dstast.Binary{Op: token.OpEq, Left: selectorID, Right: &dstast.Literal{Kind: dstast.LitVerbatim, Value: v}},
				Then: []dstast.Stmt{&dstast.Goto{Label: s.label}},
			})
		}
	}
	out = append(out, &dstast.Goto{Label: fallthroughLabel})

	for _, s := range sections {
		out = append(out, &dstast.Labeled{Label: s.label})
		body := u.transformStmtList(s.body.Body)
		out = append(out, body...)
		if !endsInReturn(body) {
			out = append(out, &dstast.Goto{Label: endLabel})
		}
	}
	out = append(out, &dstast.Labeled{Label: endLabel})
	return out
}

func endsInReturn(stmts []dstast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	_, ok := stmts[len(stmts)-1].(*dstast.Return)
	return ok
}

func (u *Unit) transformGotoCase(n *srcast.GotoCaseStmt) dstast.Stmt {
	sw := u.enclosingSwitch()
	if sw == nil {
		raise(n.Pos(), "goto case outside a switch")
	}
	if n.Value == nil {
		if sw.defaultLabel == "" {
			raise(n.Pos(), "goto default: switch has no default section")
		}
		return &dstast.GotoCaseAdapter{BaseStmt: baseStmtFrom(n), TargetLabel: sw.defaultLabel}
	}
	key := u.exprText(u.transformExpr(n.Value))
	label, ok := sw.caseLabels[key]
	if !ok {
		raise(n.Pos(), "goto case %s: no matching case label in the enclosing switch", key)
	}
	return &dstast.GotoCaseAdapter{BaseStmt: baseStmtFrom(n), TargetLabel: label}
}

func (u *Unit) transformGotoDefault(n *srcast.GotoDefaultStmt) dstast.Stmt {
	sw := u.enclosingSwitch()
	if sw == nil || sw.defaultLabel == "" {
		raise(n.Pos(), "goto default: no enclosing switch with a default section")
	}
	return &dstast.GotoCaseAdapter{BaseStmt: baseStmtFrom(n), TargetLabel: sw.defaultLabel}
}

// -----------------------------------------------------------------------------
// Exception handling, resource management
// -----------------------------------------------------------------------------

// transformTry lowers `try { } catch (...) { } finally { }` to a
// TryAdapter. Every `return` reachable from the protected body or a
// catch arm is rewritten to `return true, value` first, matching the
// System.try return-propagation contract render.go's printer expects;
// Propagate/VoidReturn then tell the printer whether the call site needs
// the `if ok then return [v] end` forwarding suffix.
func (u *Unit) transformTry(n *srcast.TryStmt) dstast.Stmt {
	f := u.currentFunc()
	voidReturn := f == nil || f.voidReturn

	body := rewriteReturnsForPropagation(u.transformBlock(n.Body))
	catches := make([]dstast.TryCatch, len(n.Catches))
	for i, c := range n.Catches {
		u.pushNameScope()
		var typeName string
		if c.Type != nil {
			typeName = u.exprText(u.typeNameExpr(c.Type))
		}
		var filter dstast.Expr
		if c.Filter != nil {
			filter = u.transformExpr(c.Filter)
		}
		catchBody := rewriteReturnsForPropagation(u.transformBlock(c.Body))
		catches[i] = dstast.TryCatch{Type: typeName, Filter: filter, Bind: c.VarName, Body: catchBody}
		u.popNameScope()
	}

	var finally []dstast.Stmt
	if n.Finally != nil {
		finally = u.transformBlock(n.Finally)
	}

	propagate := bodyOrCatchesReturn(n)
	return &dstast.TryAdapter{
		BaseStmt:   baseStmtFrom(n),
		Body:       body,
		Catches:    catches,
		Finally:    finally,
		Propagate:  propagate,
		VoidReturn: voidReturn,
	}
}

// rewriteReturnsForPropagation rewrites every top-level `return v`
// inside a try/catch body to `return true, v` (or `return true` for a
// bare return) so System.try's closures signal "this body returned"
// back to the call site instead of just returning the value, which would
// be indistinguishable from the closure finishing normally. Only
// top-level returns are rewritten — a return nested inside a further
// try/using adapter belongs to that adapter's own propagation contract,
// not this one.
func rewriteReturnsForPropagation(stmts []dstast.Stmt) []dstast.Stmt {
	out := make([]dstast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = rewriteReturnStmt(s)
	}
	return out
}

func rewriteReturnStmt(s dstast.Stmt) dstast.Stmt {
	switch n := s.(type) {
	case *dstast.Return:
		values := append([]dstast.Expr{&dstast.Literal{Kind: dstast.LitBool, Value: "true"}}, n.Values...)
		return &dstast.Return{BaseStmt: n.BaseStmt, Values: values}
	case *dstast.If:
		return &dstast.If{BaseStmt: n.BaseStmt, Cond: n.Cond, Then: rewriteReturnsForPropagation(n.Then), Else: rewriteReturnsForPropagation(n.Else)}
	case *dstast.Do:
		return &dstast.Do{BaseStmt: n.BaseStmt, Body: rewriteReturnsForPropagation(n.Body)}
	case *dstast.While:
		return &dstast.While{BaseStmt: n.BaseStmt, Cond: n.Cond, Body: rewriteReturnsForPropagation(n.Body)}
	case *dstast.RepeatUntil:
		return &dstast.RepeatUntil{BaseStmt: n.BaseStmt, Body: rewriteReturnsForPropagation(n.Body), Cond: n.Cond}
	case *dstast.GenericFor:
		return &dstast.GenericFor{BaseStmt: n.BaseStmt, Vars: n.Vars, Iterator: n.Iterator, Body: rewriteReturnsForPropagation(n.Body)}
	case *dstast.NumericFor:
		return &dstast.NumericFor{BaseStmt: n.BaseStmt, Var: n.Var, Start: n.Start, Stop: n.Stop, Step: n.Step, Body: rewriteReturnsForPropagation(n.Body)}
	default:
		return s
	}
}

// bodyOrCatchesReturn reports whether propagation wrapping is needed at
// all: if neither the protected body nor any catch arm can reach a
// return, System.try's call site has nothing to forward.
func bodyOrCatchesReturn(n *srcast.TryStmt) bool {
	if stmtListReturns(n.Body.Stmts) {
		return true
	}
	for _, c := range n.Catches {
		if c.Body != nil && stmtListReturns(c.Body.Stmts) {
			return true
		}
	}
	return false
}

func stmtListReturns(stmts []srcast.Stmt) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *srcast.ReturnStmt:
			return true
		case *srcast.IfStmt:
			if n.Then != nil && stmtListReturns(n.Then.Stmts) {
				return true
			}
			if blk, ok := n.Else.(*srcast.BlockStmt); ok && stmtListReturns(blk.Stmts) {
				return true
			}
			if other, ok := n.Else.(*srcast.IfStmt); ok && stmtListReturns([]srcast.Stmt{other}) {
				return true
			}
		case *srcast.BlockStmt:
			if stmtListReturns(n.Stmts) {
				return true
			}
		case *srcast.WhileStmt:
			if n.Body != nil && stmtListReturns(n.Body.Stmts) {
				return true
			}
		case *srcast.DoWhileStmt:
			if n.Body != nil && stmtListReturns(n.Body.Stmts) {
				return true
			}
		case *srcast.ForStmt:
			if n.Body != nil && stmtListReturns(n.Body.Stmts) {
				return true
			}
		case *srcast.ForEachStmt:
			if n.Body != nil && stmtListReturns(n.Body.Stmts) {
				return true
			}
		case *srcast.SwitchStmt:
			for _, sec := range n.Sections {
				if stmtListReturns(sec.Body) {
					return true
				}
			}
		}
	}
	return false
}

// transformUsing lowers `using (resources) body` to a UsingAdapter,
// sharing TryAdapter's return-propagation contract (System.using and
// System.usingX forward a handled return the same way System.try does).
func (u *Unit) transformUsing(n *srcast.UsingStmt) dstast.Stmt {
	f := u.currentFunc()
	voidReturn := f == nil || f.voidReturn

	u.pushNameScope()
	defer u.popNameScope()

	resources := make([]dstast.UsingResource, len(n.Resources))
	for i, r := range n.Resources {
		resources[i] = dstast.UsingResource{Var: r.VarName, Value: u.transformExpr(r.Value)}
	}
	body := rewriteReturnsForPropagation(u.transformBlock(n.Body))
	propagate := stmtListReturns(n.Body.Stmts)

	return &dstast.UsingAdapter{
		BaseStmt:   baseStmtFrom(n),
		Resources:  resources,
		Body:       body,
		Propagate:  propagate,
		VoidReturn: voidReturn,
	}
}

// -----------------------------------------------------------------------------
// Local functions
// -----------------------------------------------------------------------------

func (u *Unit) transformLocalFunction(n *srcast.LocalFunctionStmt, hoisted bool) dstast.Stmt {
	name := u.memberIdentName(n.Sym, n.Name)
	params, variadic := paramNames(n.Params)
	isIterator := n.Body != nil && containsYield(n.Body.Stmts)

	u.pushNameScope()
	f := &funcFrame{sym: n.Sym, refOutParams: refOutNames(n.Params), isIterator: isIterator}
	u.pushFunc(f)
	body := u.transformBlock(n.Body)
	u.popFunc()
	u.popNameScope()

	if isIterator {
		body = []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Invocation{
			Callee: &dstast.Identifier{Name: "coroutine.wrap"},
			Args:   []dstast.Expr{&dstast.FunctionLiteral{Body: body}},
		}}}}
	}

	if hoisted {
		fn := &dstast.FunctionLiteral{Params: params, Variadic: variadic, Body: body}
		return &dstast.Assignment{
			BaseStmt: baseStmtFrom(n),
			Targets:  []dstast.AssignTarget{{Plain: &dstast.Identifier{Name: name}}},
			Values:   []dstast.Expr{fn},
		}
	}
	// A single, non-hoisted local function must bind its own name inside
	// its body for self-recursion to resolve — `local name = function()
	// ... end` does not do that, since `name` is still undeclared at the
	// point the function literal on its right-hand side is evaluated.
	// `local function name(...) ... end` is the target language's own
	// sugar for declaring the local before assigning the closure.
	return &dstast.LocalFunctionStmt{
		BaseStmt: baseStmtFrom(n),
		Name:     name,
		Params:   params,
		Variadic: variadic,
		Body:     body,
	}
}

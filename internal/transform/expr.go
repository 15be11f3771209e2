package transform

import (
	"strconv"
	"strings"

	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/render"
	"github.com/kolkov/lunac/internal/srcast"
	"github.com/kolkov/lunac/internal/template"
	"github.com/kolkov/lunac/internal/token"
)

func baseFrom(e srcast.Expr) dstast.BaseExpr {
	return dstast.MakeBaseExpr(e.Pos(), e.End())
}

func (u *Unit) transformExprs(es []srcast.Expr) []dstast.Expr {
	out := make([]dstast.Expr, len(es))
	for i, e := range es {
		out[i] = u.transformExpr(e)
	}
	return out
}

// transformExpr lowers one L-src expression node to its L-dst
// equivalent. Every case here is grounded in spec.md §4.D; the handful
// of constructs with no direct L-dst counterpart (conditional access,
// the ternary, null-coalescing, compound/property assignment used as a
// value) lower to an immediately-invoked function literal — the same
// closure-based technique the try/using adapters use at the statement
// level, just without a dedicated adapter node since these never need
// the renderer to know their shape ahead of time.
func (u *Unit) transformExpr(e srcast.Expr) dstast.Expr {
	switch n := e.(type) {
	case *srcast.Literal:
		return u.transformLiteral(n)
	case *srcast.Ident:
		return u.transformIdent(n)
	case *srcast.ThisRef:
		return &dstast.Identifier{BaseExpr: baseFrom(n), Name: "self"}
	case *srcast.BaseRef:
		raise(n.Pos(), "base is only valid as the receiver of a member access")
		return nil
	case *srcast.MemberAccess:
		return u.transformMemberAccess(n)
	case *srcast.IndexExpr:
		return u.transformIndexExpr(n)
	case *srcast.Invocation:
		return u.transformInvocation(n)
	case *srcast.ObjectCreation:
		return u.transformObjectCreation(n)
	case *srcast.InitializerExpr:
		raise(n.Pos(), "an initializer block may only follow an object creation")
		return nil
	case *srcast.DelegateCreation:
		return u.transformExpr(n.Target)
	case *srcast.ArrayCreation:
		return u.transformArrayCreation(n)
	case *srcast.ConditionalAccess:
		return u.transformConditionalAccess(n)
	case *srcast.Conditional:
		return u.transformConditional(n)
	case *srcast.InterpolatedString:
		return u.transformInterpolatedString(n)
	case *srcast.Binary:
		return u.transformBinary(n)
	case *srcast.Unary:
		return u.transformUnaryExpr(n)
	case *srcast.Assignment:
		return u.transformAssignmentExpr(n)
	case *srcast.Paren:
		return &dstast.Paren{BaseExpr: baseFrom(n), Inner: u.transformExpr(n.Inner)}
	case *srcast.TupleExpr:
		return u.transformTupleExpr(n)
	case *srcast.IsPattern:
		return u.transformIsPatternValue(n)
	case *srcast.TypeOfExpr:
		if isEnumType(n.Type) {
			u.markEnumExported(n.Type)
		}
		return &dstast.Invocation{
			BaseExpr: baseFrom(n),
			Callee:   &dstast.Identifier{Name: "System.typeof"},
			Args:     []dstast.Expr{u.typeNameExpr(n.Type)},
		}
	case *srcast.SizeOfExpr:
		return u.foldSizeOf(n)
	case *srcast.DefaultExpr:
		return u.foldDefault(n)
	case *srcast.CastExpr:
		return u.transformExpr(n.Operand)
	case *srcast.Lambda:
		return u.transformLambda(n)
	default:
		raise(e.Pos(), "unsupported expression node %T", e)
		return nil
	}
}

func (u *Unit) transformLiteral(e *srcast.Literal) *dstast.Literal {
	base := baseFrom(e)
	switch e.Kind {
	case srcast.LitString, srcast.LitChar:
		return &dstast.Literal{BaseExpr: base, Kind: dstast.LitString, Value: e.Value}
	case srcast.LitNumber:
		return &dstast.Literal{BaseExpr: base, Kind: dstast.LitNumber, Value: e.Value}
	case srcast.LitBool:
		return &dstast.Literal{BaseExpr: base, Kind: dstast.LitBool, Value: e.Value}
	case srcast.LitNil:
		return &dstast.Literal{BaseExpr: base, Kind: dstast.LitNil}
	case srcast.LitVerbatim:
		return &dstast.Literal{BaseExpr: base, Kind: dstast.LitVerbatim, Value: e.Value}
	default:
		raise(e.Pos(), "unsupported literal kind %d", e.Kind)
		return nil
	}
}

// transformIdent resolves a bare name through the naming service for a
// source symbol, falling back to the symbol's own name verbatim for a
// symbol the naming service never assigned (an external/BCL reference,
// or a using-static member), and to the raw identifier text when no
// symbol was attached at all.
func (u *Unit) transformIdent(e *srcast.Ident) *dstast.Identifier {
	return &dstast.Identifier{BaseExpr: baseFrom(e), Name: u.memberIdentName(e.Sym, e.Name)}
}

// memberIdentName resolves the L-dst name for a source symbol, assigning
// one through the naming service the first time the symbol is seen and
// reusing it on every later reference — Table.Assign is write-once per
// symbol, and a single depth-first walk otherwise has no way to tell
// whether this is the symbol's declaration or a forward reference to one
// lowered later. A symbol from outside the unit being compiled (a BCL
// reference, the common case for base-type lookups) never goes through
// the naming service at all — foreign names are not this compiler's to
// rename.
func (u *Unit) memberIdentName(sym *srcast.Symbol, fallback string) string {
	if sym == nil {
		return fallback
	}
	if !sym.IsFromSource {
		return sym.Name
	}
	names := u.currentNames()
	if name, ok := names.Get(sym); ok {
		return name
	}
	return names.Assign(sym)
}

// transformMemberAccess lowers `receiver.Member`. A property-valued
// access always reads through its getter (spec.md §4.G): the result is
// wrapped in a PropertyAdapter so the statement-level assignment
// lowering can reuse its SetCallee instead of re-deriving "get_"/"set_"
// naming when the same access appears as an assignment target.
func (u *Unit) transformMemberAccess(e *srcast.MemberAccess) dstast.Expr {
	if _, ok := e.Receiver.(*srcast.BaseRef); ok {
		raise(e.Pos(), "a bare base member access must be the callee of an invocation")
		return nil
	}

	recv := u.transformExpr(e.Receiver)
	name := u.memberIdentName(e.Sym, e.Member)

	if e.Sym != nil && (e.Sym.Kind == srcast.SymProperty || e.Sym.Kind == srcast.SymEvent) {
		return u.propertyRead(baseFrom(e), recv, name)
	}
	return &dstast.MemberAccess{BaseExpr: baseFrom(e), Receiver: recv, Member: name}
}

func (u *Unit) propertyRead(base dstast.BaseExpr, recv dstast.Expr, name string) *dstast.PropertyAdapter {
	get := &dstast.Invocation{
		Callee:       &dstast.MemberAccess{Receiver: recv, Member: "get_" + name, IsColonCall: true},
		IsMethodCall: true,
	}
	setCallee := &dstast.MemberAccess{Receiver: recv, Member: "set_" + name, IsColonCall: true}
	return &dstast.PropertyAdapter{BaseExpr: base, Get: get, SetCallee: setCallee}
}

// transformIndexExpr lowers `receiver[args...]`. A user-defined indexer
// (Sym set, backed by get_Item/set_Item methods) reads through its
// getter exactly like a property; a plain array/table element access
// lowers straight to table indexing. A user indexer passes every index
// argument to its getter; the plain table form uses only the first
// index argument.
func (u *Unit) transformIndexExpr(e *srcast.IndexExpr) dstast.Expr {
	recv := u.transformExpr(e.Receiver)
	if e.Sym != nil {
		name := u.memberIdentName(e.Sym, "Item")
		args := u.transformExprs(e.Args)
		get := &dstast.Invocation{
			Callee:       &dstast.MemberAccess{Receiver: recv, Member: "get_" + name, IsColonCall: true},
			Args:         args,
			IsMethodCall: true,
		}
		setCallee := &dstast.MemberAccess{Receiver: recv, Member: "set_" + name, IsColonCall: true}
		return &dstast.PropertyAdapter{BaseExpr: baseFrom(e), Get: get, SetCallee: setCallee}
	}
	var key dstast.Expr
	if len(e.Args) > 0 {
		key = u.transformExpr(e.Args[0])
	}
	return &dstast.TableIndex{BaseExpr: baseFrom(e), Receiver: recv, Key: key}
}

// transformInvocation lowers `callee(args...)`. A call whose resolved
// symbol has a registered code template (the XML metadata oracle's job)
// always wins over the structural lowering rules below, since a
// template encodes a deliberate BCL-surface mapping the generic rules
// cannot reproduce.
func (u *Unit) transformInvocation(e *srcast.Invocation) dstast.Expr {
	if e.Sym != nil {
		if tmpl, ok := u.templates.TemplateFor(e.Sym); ok {
			return u.expandCallTemplate(e, tmpl)
		}
	}

	ma, isMember := e.Callee.(*srcast.MemberAccess)
	if !isMember {
		return &dstast.Invocation{
			BaseExpr: baseFrom(e),
			Callee:   u.transformExpr(e.Callee),
			Args:     u.transformExprs(e.Args),
		}
	}

	if _, isBase := ma.Receiver.(*srcast.BaseRef); isBase {
		var baseType *srcast.TypeRef
		if e.Sym != nil {
			baseType = e.Sym.ContainingType
		}
		name := u.memberIdentName(e.Sym, ma.Member)
		args := append([]dstast.Expr{&dstast.Identifier{Name: "self"}}, u.transformExprs(e.Args)...)
		return &dstast.Invocation{
			BaseExpr: baseFrom(e),
			Callee:   &dstast.MemberAccess{Receiver: u.typeNameExpr(baseType), Member: name},
			Args:     args,
		}
	}

	recv := u.transformExpr(ma.Receiver)
	name := u.memberIdentName(e.Sym, ma.Member)
	instance := e.Sym == nil || !e.Sym.IsStatic
	return &dstast.Invocation{
		BaseExpr:     baseFrom(e),
		Callee:       &dstast.MemberAccess{Receiver: recv, Member: name, IsColonCall: instance},
		Args:         u.transformExprs(e.Args),
		IsMethodCall: instance,
	}
}

func (u *Unit) expandCallTemplate(e *srcast.Invocation, tmpl string) dstast.Expr {
	args := template.Args{
		Positional: make([]string, len(e.Args)),
	}
	for i, a := range e.Args {
		args.Positional[i] = u.exprText(u.transformExpr(a))
	}
	if ma, ok := e.Callee.(*srcast.MemberAccess); ok {
		if _, isBase := ma.Receiver.(*srcast.BaseRef); !isBase {
			args.This = u.exprText(u.transformExpr(ma.Receiver))
			args.HasThis = true
		}
	}
	if e.Sym != nil && len(e.Sym.TypeArgs) > 0 {
		args.TypeArgs = make([]string, len(e.Sym.TypeArgs))
		for i, t := range e.Sym.TypeArgs {
			args.TypeArgs[i] = u.exprText(u.typeNameExpr(t))
		}
	}
	args.Star = starArgs(e.Sym, args.Positional)

	expanded, err := template.Expand(tmpl, args)
	if err != nil {
		raise(e.Pos(), "code template %q: %v", tmpl, err)
	}
	return &dstast.Literal{BaseExpr: baseFrom(e), Kind: dstast.LitVerbatim, Value: expanded}
}

// starArgs slices positional down to the run of arguments a C#-style
// "params" rest parameter swallows, for a template's {*} placeholder.
// Returns nil when sym has no rest parameter, leaving {*} to expand to
// the empty string.
func starArgs(sym *srcast.Symbol, positional []string) []string {
	if sym == nil {
		return nil
	}
	for i, p := range sym.Params {
		if p.IsParams {
			if i < len(positional) {
				return positional[i:]
			}
			return nil
		}
	}
	return nil
}

func (u *Unit) exprText(e dstast.Expr) string {
	text, err := render.RenderExpr(e, render.Config{})
	if err != nil {
		panic(err)
	}
	return text
}

// transformObjectCreation lowers `new T(args)` / `new T(args) { ... }`
// through the ordered cases a constructor call can fall into before the
// default System.new dispatch applies: a registered code template wins
// outright; a nullable-of-T creation collapses to its wrapped argument,
// since a nullable value type has no boxed representation at the
// runtime level; a tuple type builds a ValueTuple directly. System.new
// always dispatches to the type's first (`__ctor__`) constructor — the
// semantic-input Symbol carried on ObjectCreation identifies the
// selected overload but does not expose its index, so the Nth-overload
// dot-call form (`T.__ctor__[N](args)`) spec.md §4.D describes is only
// reachable from a this(...)/base(...) initializer, which names its
// target constructor explicitly (see ctorInitializerCall).
func (u *Unit) transformObjectCreation(e *srcast.ObjectCreation) dstast.Expr {
	if e.Sym != nil {
		if tmpl, ok := u.templates.TemplateFor(e.Sym); ok {
			return u.expandObjectCreationTemplate(e, tmpl)
		}
	}
	if _, ok := nullableElem(e.Type); ok {
		if len(e.Args) == 0 {
			return &dstast.Literal{BaseExpr: baseFrom(e), Kind: dstast.LitNil}
		}
		return u.transformExpr(e.Args[0])
	}
	if isTupleType(e.Type) {
		call := &dstast.Invocation{
			BaseExpr: baseFrom(e),
			Callee:   &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: "System.ValueTuple"}, Member: "create"},
			Args:     u.transformExprs(e.Args),
		}
		if e.Initializer == nil {
			return call
		}
		return u.applyInitializer(e, call)
	}

	typeExpr := u.typeNameExpr(e.Type)
	args := u.transformExprs(e.Args)
	call := &dstast.Invocation{
		BaseExpr: baseFrom(e),
		Callee:   &dstast.Identifier{Name: "System.new"},
		Args:     append([]dstast.Expr{typeExpr}, args...),
	}
	if e.Initializer == nil {
		return call
	}
	return u.applyInitializer(e, call)
}

// expandObjectCreationTemplate mirrors expandCallTemplate for a
// constructor call: {this} never applies (there is no receiver to
// construct against yet), so args.HasThis stays false and a template
// referencing {this} fails arity exactly as it would for a static call.
func (u *Unit) expandObjectCreationTemplate(e *srcast.ObjectCreation, tmpl string) dstast.Expr {
	args := template.Args{
		Positional: make([]string, len(e.Args)),
	}
	for i, a := range e.Args {
		args.Positional[i] = u.exprText(u.transformExpr(a))
	}
	if e.Sym != nil && len(e.Sym.TypeArgs) > 0 {
		args.TypeArgs = make([]string, len(e.Sym.TypeArgs))
		for i, t := range e.Sym.TypeArgs {
			args.TypeArgs[i] = u.exprText(u.typeNameExpr(t))
		}
	}
	args.Star = starArgs(e.Sym, args.Positional)

	expanded, err := template.Expand(tmpl, args)
	if err != nil {
		raise(e.Pos(), "code template %q: %v", tmpl, err)
	}
	return &dstast.Literal{BaseExpr: baseFrom(e), Kind: dstast.LitVerbatim, Value: expanded}
}

// applyInitializer wraps a freshly constructed value in an
// immediately-invoked function that binds it to a temporary, applies
// every initializer member in order, and returns the temporary —
// spec.md §4.D's object/collection initializer lowering.
func (u *Unit) applyInitializer(e *srcast.ObjectCreation, ctorCall dstast.Expr) dstast.Expr {
	tmp := u.nextCondTemp()
	body := []dstast.Stmt{
		&dstast.LocalVarDecl{Names: []string{tmp}, Values: []dstast.Expr{ctorCall}},
	}
	for _, m := range e.Initializer.Members {
		switch m.Kind {
		case srcast.InitMember:
			body = append(body, &dstast.Assignment{
				Targets: []dstast.AssignTarget{{Plain: &dstast.MemberAccess{
					Receiver: &dstast.Identifier{Name: tmp}, Member: m.Name,
				}}},
				Values: []dstast.Expr{u.transformExpr(m.Value)},
			})
		case srcast.InitIndex:
			var key dstast.Expr
			if len(m.Index) > 0 {
				key = u.transformExpr(m.Index[0])
			}
			body = append(body, &dstast.Assignment{
				Targets: []dstast.AssignTarget{{Plain: &dstast.TableIndex{
					Receiver: &dstast.Identifier{Name: tmp}, Key: key,
				}}},
				Values: []dstast.Expr{u.transformExpr(m.Value)},
			})
		case srcast.InitAdd:
			body = append(body, &dstast.ExprStmt{X: &dstast.Invocation{
				Callee:       &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: tmp}, Member: "Add", IsColonCall: true},
				Args:         u.transformExprs(m.Args),
				IsMethodCall: true,
			}})
		}
	}
	body = append(body, &dstast.Return{Values: []dstast.Expr{&dstast.Identifier{Name: tmp}}})
	return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: body}}
}

// transformArrayCreation lowers `new T[n]`/`new T[n1,n2]`/`new T[]{...}`
// onto the three array-shaped runtime ABI entries: an initializer always
// builds a plain table literal handed to System.Array, a multi-rank
// creation with no initializer goes through System.MultiArray, and the
// single-rank sized form goes through System.Array with the size as its
// argument.
func (u *Unit) transformArrayCreation(e *srcast.ArrayCreation) dstast.Expr {
	base := baseFrom(e)
	if len(e.Initializer) > 0 {
		fields := make([]dstast.TableField, len(e.Initializer))
		for i, el := range e.Initializer {
			fields[i] = dstast.TableField{Kind: dstast.FieldPositional, Value: u.transformExpr(el)}
		}
		return &dstast.Invocation{
			BaseExpr: base,
			Callee:   &dstast.Identifier{Name: "System.Array"},
			Args:     []dstast.Expr{&dstast.TableInit{Fields: fields}},
		}
	}
	sizes := u.transformExprs(e.Sizes)
	if e.Rank > 1 {
		return &dstast.Invocation{BaseExpr: base, Callee: &dstast.Identifier{Name: "System.MultiArray"}, Args: sizes}
	}
	return &dstast.Invocation{BaseExpr: base, Callee: &dstast.Identifier{Name: "System.Array"}, Args: sizes}
}

// transformConditionalAccess lowers `a?.b?.c` to an immediately-invoked
// function: bind the root to a temporary, short-circuit to nil the
// instant it is nil, and re-bind the same temporary through each chain
// link, guarding after every hop exactly as every `?.` in the source
// chain does.
func (u *Unit) transformConditionalAccess(e *srcast.ConditionalAccess) dstast.Expr {
	tmp := u.nextCondTemp()
	tmpID := &dstast.Identifier{Name: tmp}

	body := []dstast.Stmt{
		&dstast.LocalVarDecl{Names: []string{tmp}, Values: []dstast.Expr{u.transformExpr(e.Root)}},
		condNilGuard(tmpID),
	}
	for _, link := range e.Links {
		var next dstast.Expr
		name := u.memberIdentName(link.Sym, link.Member)
		switch link.Kind {
		case srcast.LinkMember:
			next = &dstast.MemberAccess{Receiver: tmpID, Member: name}
		case srcast.LinkIndex:
			var key dstast.Expr
			if len(link.Args) > 0 {
				key = u.transformExpr(link.Args[0])
			}
			next = &dstast.TableIndex{Receiver: tmpID, Key: key}
		case srcast.LinkInvoke:
			next = &dstast.Invocation{
				Callee:       &dstast.MemberAccess{Receiver: tmpID, Member: name, IsColonCall: true},
				Args:         u.transformExprs(link.Args),
				IsMethodCall: true,
			}
		}
		body = append(body,
			&dstast.Assignment{Targets: []dstast.AssignTarget{{Plain: tmpID}}, Values: []dstast.Expr{next}},
			condNilGuard(tmpID),
		)
	}
	body = append(body, &dstast.Return{Values: []dstast.Expr{tmpID}})
	return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: body}}
}

func condNilGuard(id *dstast.Identifier) *dstast.If {
	return &dstast.If{
		Cond: &dstast.Binary{Op: token.OpEq, Left: id, Right: &dstast.Literal{Kind: dstast.LitNil}},
		Then: []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Literal{Kind: dstast.LitNil}}}},
	}
}

// transformConditional lowers the ternary `cond ? then : else` through an
// immediately-invoked function rather than the `cond and a or b` Lua
// idiom, since that idiom silently picks b whenever a is falsy (not just
// when cond is false) — a correctness trap the source language's strict
// ternary must not inherit.
func (u *Unit) transformConditional(e *srcast.Conditional) dstast.Expr {
	body := []dstast.Stmt{
		&dstast.If{
			Cond: u.transformExpr(e.Cond),
			Then: []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{u.transformExpr(e.Then)}}},
			Else: []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{u.transformExpr(e.Else)}}},
		},
	}
	return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: body}}
}

// transformInterpolatedString lowers `$"...{expr}..."` to a self-call on
// the rewritten format-string literal: `("...{0}..."):format(expr, ...)`.
// The literal itself is the colon-call receiver — not a "string" library
// reference — so the runtime's :format method sees the template text as
// its implicit self argument, exactly as it would for any other string
// value. Placeholders are positional ({0}, {1}, ...) rather than the
// host language's %s, and each interpolated part is forwarded as-is:
// :format is expected to stringify its own arguments.
func (u *Unit) transformInterpolatedString(e *srcast.InterpolatedString) dstast.Expr {
	var format strings.Builder
	var args []dstast.Expr
	for _, part := range e.Parts {
		if part.Expr == nil {
			format.WriteString(part.Text)
			continue
		}
		format.WriteString("{")
		format.WriteString(strconv.Itoa(len(args)))
		format.WriteString("}")
		args = append(args, u.transformExpr(part.Expr))
	}
	receiver := &dstast.Paren{Inner: &dstast.Literal{Kind: dstast.LitString, Value: format.String()}}
	return &dstast.Invocation{
		BaseExpr:     baseFrom(e),
		Callee:       &dstast.MemberAccess{Receiver: receiver, Member: "format", IsColonCall: true},
		Args:         args,
		IsMethodCall: true,
	}
}

var binOpTable = map[srcast.BinOp]token.Op{
	srcast.BinAdd:  token.OpAdd,
	srcast.BinSub:  token.OpSub,
	srcast.BinMul:  token.OpMul,
	srcast.BinDiv:  token.OpDiv,
	srcast.BinMod:  token.OpMod,
	srcast.BinEq:   token.OpEq,
	srcast.BinNe:   token.OpNe,
	srcast.BinLt:   token.OpLt,
	srcast.BinLe:   token.OpLe,
	srcast.BinGt:   token.OpGt,
	srcast.BinGe:   token.OpGe,
	srcast.BinAnd:  token.OpAnd,
	srcast.BinOr:   token.OpOr,
	srcast.BinBAnd: token.OpBAnd,
	srcast.BinBOr:  token.OpBOr,
	srcast.BinBXor: token.OpBXor,
	srcast.BinShl:  token.OpShl,
	srcast.BinShr:  token.OpShr,
}

// transformBinary maps every binary operator except null-coalescing,
// which has no native L-dst operator and lowers through the same
// immediately-invoked-function technique as the ternary.
func (u *Unit) transformBinary(e *srcast.Binary) dstast.Expr {
	if e.Op == srcast.BinCoalesce {
		return u.transformCoalesce(e)
	}
	op, ok := binOpTable[e.Op]
	if !ok {
		raise(e.Pos(), "unsupported binary operator %d", e.Op)
	}
	return &dstast.Binary{
		BaseExpr: baseFrom(e),
		Op:       op,
		Left:     u.transformExpr(e.Left),
		Right:    u.transformExpr(e.Right),
	}
}

func (u *Unit) transformCoalesce(e *srcast.Binary) dstast.Expr {
	tmp := u.nextCondTemp()
	tmpID := &dstast.Identifier{Name: tmp}
	body := []dstast.Stmt{
		&dstast.LocalVarDecl{Names: []string{tmp}, Values: []dstast.Expr{u.transformExpr(e.Left)}},
		&dstast.If{
			Cond: &dstast.Binary{Op: token.OpNe, Left: tmpID, Right: &dstast.Literal{Kind: dstast.LitNil}},
			Then: []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{tmpID}}},
		},
		&dstast.Return{Values: []dstast.Expr{u.transformExpr(e.Right)}},
	}
	return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: body}}
}

var unOpTable = map[srcast.UnOp]token.Op{
	srcast.UnNeg:  token.OpNeg,
	srcast.UnNot:  token.OpNot,
	srcast.UnBNot: token.OpBNot,
}

// transformUnaryExpr handles the value-producing unary operators.
// Increment/decrement used as a value (rather than as a bare statement,
// which internal/transform's statement lowering rewrites directly into
// a compound assignment) is a rare enough source pattern that it lowers
// through an immediately-invoked function capturing the pre-increment
// value, matching the C family's "expression returns the old value"
// postfix rule and "returns the new value" prefix rule.
func (u *Unit) transformUnaryExpr(e *srcast.Unary) dstast.Expr {
	if e.Op == srcast.UnIncr || e.Op == srcast.UnDecr {
		return u.transformIncDecValue(e)
	}
	op, ok := unOpTable[e.Op]
	if !ok {
		raise(e.Pos(), "unsupported unary operator %d", e.Op)
	}
	return &dstast.Unary{BaseExpr: baseFrom(e), Op: op, Operand: u.transformExpr(e.Operand)}
}

func (u *Unit) transformIncDecValue(e *srcast.Unary) dstast.Expr {
	delta := "1"
	op := token.OpAdd
	if e.Op == srcast.UnDecr {
		op = token.OpSub
	}
	target := u.transformExpr(e.Operand)
	updated := &dstast.Binary{Op: op, Left: target, Right: &dstast.Literal{Kind: dstast.LitNumber, Value: delta}}

	if e.Postfix {
		tmp := u.nextCondTemp()
		tmpID := &dstast.Identifier{Name: tmp}
		body := []dstast.Stmt{
			&dstast.LocalVarDecl{Names: []string{tmp}, Values: []dstast.Expr{target}},
			&dstast.Assignment{Targets: []dstast.AssignTarget{{Plain: u.transformExpr(e.Operand)}}, Values: []dstast.Expr{updated}},
			&dstast.Return{Values: []dstast.Expr{tmpID}},
		}
		return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: body}}
	}

	body := []dstast.Stmt{
		&dstast.Assignment{Targets: []dstast.AssignTarget{{Plain: u.transformExpr(e.Operand)}}, Values: []dstast.Expr{updated}},
		&dstast.Return{Values: []dstast.Expr{target}},
	}
	return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: body}}
}

// transformAssignmentExpr handles assignment used as a value (the
// `while ((line = reader.ReadLine()) != nil)` idiom). It delegates the
// actual target/value lowering to lowerAssignment and then re-reads the
// target to produce the assignment's value, accepting the double
// evaluation of the target's receiver as the cost of this uncommon
// expression-position use; statement-position assignment (the overwhelming
// majority of call sites) goes through lowerAssignment directly without
// this wrapper.
func (u *Unit) transformAssignmentExpr(e *srcast.Assignment) dstast.Expr {
	stmts := u.lowerAssignment(e)
	stmts = append(stmts, &dstast.Return{Values: []dstast.Expr{u.transformExpr(e.Target)}})
	return &dstast.Invocation{BaseExpr: baseFrom(e), Callee: &dstast.FunctionLiteral{Body: stmts}}
}

func (u *Unit) transformTupleExpr(e *srcast.TupleExpr) dstast.Expr {
	return &dstast.Invocation{
		BaseExpr: baseFrom(e),
		Callee:   &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: "System.ValueTuple"}, Member: "create"},
		Args:     u.transformExprs(e.Elements),
	}
}

// transformIsPatternValue lowers the boolean-test half of `subject is T`
// and `subject is T t`; the binding half (introducing local t) is the
// statement transformer's job when the pattern appears directly as an
// if-condition, via extractPatternBinding.
func (u *Unit) transformIsPatternValue(e *srcast.IsPattern) dstast.Expr {
	if folded, ok := u.foldIsPatternConstant(e.Subject, e.Type); ok {
		return folded
	}
	return &dstast.Invocation{
		BaseExpr: baseFrom(e),
		Callee:   &dstast.Identifier{Name: "System.is"},
		Args:     []dstast.Expr{u.transformExpr(e.Subject), u.typeNameExpr(e.Type)},
	}
}

// typeNameExpr builds the expression a typeof/is-pattern check compares
// against: a named type's assigned prototype identifier, an array type's
// ArrayTypeAdapter, a nullable's unwrapped element (nullability carries
// no runtime representation in the target), and a plain name literal for
// every other TypeRef kind — primitives, tuples, and type parameters have
// no single named runtime table, so they compare by name text instead.
func (u *Unit) typeNameExpr(t *srcast.TypeRef) dstast.Expr {
	if t == nil {
		return &dstast.Literal{Kind: dstast.LitNil}
	}
	switch t.Kind {
	case srcast.TypeArray:
		return &dstast.ArrayTypeAdapter{ElemTypeExpr: u.typeNameExpr(t.ElemType), Rank: t.ArrayRank}
	case srcast.TypeNullable:
		return u.typeNameExpr(t.ElemType)
	case srcast.TypeClass, srcast.TypeStruct, srcast.TypeInterface, srcast.TypeEnum:
		name := t.Name
		if resolved, ok := u.currentNames().ResolveTypeName(t.Name); ok {
			name = resolved
		}
		return &dstast.Identifier{Name: name}
	default:
		return &dstast.Literal{Kind: dstast.LitString, Value: t.Name}
	}
}

// transformLambda lowers an anonymous function or local-function value.
// Parameters are emitted under their source names directly: ParamInfo
// carries no *srcast.Symbol for the naming service's Table.Assign to key
// on, so collision disambiguation for parameters (unlike locals, fields,
// and methods) is not attempted — the front end's own duplicate-parameter
// check already rules out the only case that would matter.
func (u *Unit) transformLambda(e *srcast.Lambda) dstast.Expr {
	params, variadic := paramNames(e.Params)
	u.pushNameScope()
	defer u.popNameScope()

	f := &funcFrame{sym: e.Sym}
	u.pushFunc(f)
	defer u.popFunc()

	var body []dstast.Stmt
	if e.ExprBody != nil {
		body = []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{u.transformExpr(e.ExprBody)}}}
	} else {
		body = u.transformStmtList(e.BlockBody.Stmts)
	}
	return &dstast.FunctionLiteral{BaseExpr: baseFrom(e), Params: params, Variadic: variadic, Body: body}
}

func paramNames(params []srcast.ParamInfo) ([]string, bool) {
	names := make([]string, 0, len(params))
	variadic := false
	for _, p := range params {
		if p.IsParams {
			variadic = true
			continue
		}
		names = append(names, p.Name)
	}
	return names, variadic
}

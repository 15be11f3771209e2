package transform

import (
	"strconv"

	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/srcast"
)

func baseDeclFrom(d srcast.Decl) dstast.BaseDecl {
	return dstast.MakeBaseDecl(d.Pos(), d.End())
}

// transformTypeDecl lowers one class/struct/interface/enum, flattening
// its nested types into the same slice (outer type first, each nested
// type immediately after the one that declares it) since the renderer
// has no notion of nesting — L-dst has one flat table per type and the
// naming service's qualify step has already folded `Outer.Inner` into
// the nested type's own assigned name.
func (u *Unit) transformTypeDecl(n *srcast.TypeDecl) []*dstast.TypeDecl {
	name := u.memberIdentName(n.Sym, n.Name)

	t := &dstast.TypeDecl{
		BaseDecl:   baseDeclFrom(n),
		Name:       name,
		Kind:       typeDeclKind(n.Kind),
		Interfaces: interfaceNames(u, n.Interfaces),
	}
	if n.BaseType != nil {
		t.BaseName = u.exprText(u.typeNameExpr(n.BaseType))
	}

	if n.Kind == srcast.KindEnum {
		t.EnumMembers = make([]dstast.TypeField, len(n.EnumMembers))
		for i, m := range n.EnumMembers {
			t.EnumMembers[i] = dstast.TypeField{Name: m.Name, Init: enumMemberValue(n, m)}
		}
		out := []*dstast.TypeDecl{t}
		for _, nested := range n.NestedTypes {
			out = append(out, u.transformTypeDecl(nested)...)
		}
		return out
	}

	instanceInit := u.lowerFields(t, n)
	instanceInit = append(instanceInit, u.lowerProperties(t, n)...)
	u.lowerEvents(t, n)
	for _, m := range n.Methods {
		u.lowerMethod(t, name, m)
	}
	u.lowerConstructors(t, name, n, instanceInit)
	if n.StaticConstructor != nil {
		u.emitTopLevel(u.lowerStaticConstructor(name, n.StaticConstructor))
	}

	out := []*dstast.TypeDecl{t}
	for _, nested := range n.NestedTypes {
		out = append(out, u.transformTypeDecl(nested)...)
	}
	return out
}

func typeDeclKind(k srcast.TypeDeclKind) dstast.TypeDeclKind {
	switch k {
	case srcast.KindStruct:
		return dstast.TypeKindStruct
	case srcast.KindInterface:
		return dstast.TypeKindInterface
	case srcast.KindEnum:
		return dstast.TypeKindEnum
	default:
		return dstast.TypeKindClass
	}
}

func interfaceNames(u *Unit, ifaces []*srcast.TypeRef) []string {
	if len(ifaces) == 0 {
		return nil
	}
	names := make([]string, len(ifaces))
	for i, ref := range ifaces {
		names[i] = u.exprText(u.typeNameExpr(ref))
	}
	return names
}

func enumMemberValue(n *srcast.TypeDecl, m srcast.EnumMember) dstast.Expr {
	if !m.Value.Present {
		return nil
	}
	return litVerbatim(n, m.Value.Text)
}

// -----------------------------------------------------------------------------
// Fields
// -----------------------------------------------------------------------------

// lowerFields splits a type's fields into the renderer-facing
// StaticFields/InstanceFields lists and returns the `self.X = ...`
// preamble statements every instance constructor needs spliced in ahead
// of its own body, in declaration order, exactly mirroring how the
// source language runs field initializers before the constructor body
// that was actually called.
func (u *Unit) lowerFields(t *dstast.TypeDecl, n *srcast.TypeDecl) []dstast.Stmt {
	var instanceInit []dstast.Stmt
	for _, f := range n.Fields {
		name := u.memberIdentName(f.Sym, f.Name)
		init := u.fieldInitExpr(f)
		tf := dstast.TypeField{Name: name, Init: init}
		if f.IsStatic {
			t.StaticFields = append(t.StaticFields, tf)
			continue
		}
		t.InstanceFields = append(t.InstanceFields, tf)
		if init != nil {
			instanceInit = append(instanceInit, fieldAssign(f, &dstast.Identifier{Name: "self"}, name, init))
		}
	}
	return instanceInit
}

func (u *Unit) fieldInitExpr(f *srcast.FieldDecl) dstast.Expr {
	if f.Init != nil {
		return u.transformExpr(f.Init)
	}
	zero := zeroValueFor(f.Type)
	if zero == "nil" {
		// Lua already reads an unset table key as nil; writing it out
		// would just restate the target language's own default.
		return nil
	}
	return litVerbatim(f, zero)
}

// -----------------------------------------------------------------------------
// Properties and events
// -----------------------------------------------------------------------------

// lowerProperties always emits a get_X/set_X pair (DESIGN.md decision
// 8) — an explicit accessor body is transformed as written, an
// auto-property synthesizes a backing `_X` instance field plus a
// trivial getter/setter pair over it. A NoField property with no
// accessor bodies at all (legal per the metadata override but otherwise
// unreachable data) gets a no-op pair: there is no backing storage to
// read or write, and spec.md gives no other contract for that
// combination.
func (u *Unit) lowerProperties(t *dstast.TypeDecl, n *srcast.TypeDecl) []dstast.Stmt {
	var instanceInit []dstast.Stmt
	for _, p := range n.Properties {
		name := u.memberIdentName(p.Sym, p.Name)
		backing := "_" + name
		auto := p.GetterBody == nil && p.SetterBody == nil && !p.NoFieldAttr
		recv := fieldReceiver(p.IsStatic, t.Name)

		if auto && p.IsStatic {
			t.StaticFields = append(t.StaticFields, dstast.TypeField{Name: backing, Init: zeroValueExpr(p, p.Type)})
		} else if auto {
			init := zeroValueExpr(p, p.Type)
			t.InstanceFields = append(t.InstanceFields, dstast.TypeField{Name: backing, Init: init})
			if init != nil {
				instanceInit = append(instanceInit, fieldAssign(p, recv, backing, init))
			}
		}

		t.Methods = append(t.Methods, u.lowerAccessor(p, t.Name, "get_"+name, nil, p.IsStatic, p.GetterBody, func() []dstast.Stmt {
			if !auto {
				return noOpGetterBody(p)
			}
			return []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{backingField(recv, backing)}}}
		}))
		t.Methods = append(t.Methods, u.lowerAccessor(p, t.Name, "set_"+name, []string{"value"}, p.IsStatic, p.SetterBody, func() []dstast.Stmt {
			if !auto {
				return nil
			}
			return []dstast.Stmt{fieldAssign(p, recv, backing, &dstast.Identifier{Name: "value"})}
		}))
	}
	return instanceInit
}

// lowerEvents mirrors lowerProperties with the add_X/remove_X pair
// DESIGN.md decision 9 calls for in place of set_X — an event's only
// legal mutations are delegate combination and removal, never plain
// assignment.
func (u *Unit) lowerEvents(t *dstast.TypeDecl, n *srcast.TypeDecl) {
	for _, e := range n.Events {
		name := u.memberIdentName(e.Sym, e.Name)
		backing := "_" + name
		recv := fieldReceiver(e.IsStatic, t.Name)
		if e.IsStatic {
			t.StaticFields = append(t.StaticFields, dstast.TypeField{Name: backing})
		} else {
			t.InstanceFields = append(t.InstanceFields, dstast.TypeField{Name: backing})
		}

		t.Methods = append(t.Methods,
			simpleAccessor(e, t.Name, "get_"+name, nil, e.IsStatic,
				[]dstast.Stmt{&dstast.Return{Values: []dstast.Expr{backingField(recv, backing)}}}),
			simpleAccessor(e, t.Name, "add_"+name, []string{"handler"}, e.IsStatic,
				[]dstast.Stmt{fieldAssign(e, recv, backing, combineCall("System.combine", recv, backing))}),
			simpleAccessor(e, t.Name, "remove_"+name, []string{"handler"}, e.IsStatic,
				[]dstast.Stmt{fieldAssign(e, recv, backing, combineCall("System.remove", recv, backing))}),
		)
	}
}

// fieldReceiver is the expression backing-field access goes through:
// `self` for an instance member, the type table itself for a static
// one — the same table StaticFields already addresses by name.
func fieldReceiver(static bool, typeName string) dstast.Expr {
	if static {
		return &dstast.Identifier{Name: typeName}
	}
	return &dstast.Identifier{Name: "self"}
}

func backingField(recv dstast.Expr, name string) *dstast.MemberAccess {
	return &dstast.MemberAccess{Receiver: recv, Member: name}
}

func fieldAssign(pos srcast.Node, recv dstast.Expr, name string, value dstast.Expr) dstast.Stmt {
	target := backingField(recv, name)
	return &dstast.Assignment{
		BaseStmt: dstast.MakeBaseStmt(pos.Pos(), pos.End()),
		Targets:  []dstast.AssignTarget{{Kind: dstast.TargetPlain, Plain: target}},
		Values:   []dstast.Expr{value},
	}
}

func combineCall(callee string, recv dstast.Expr, backing string) *dstast.Invocation {
	return &dstast.Invocation{
		Callee: &dstast.Identifier{Name: callee},
		Args:   []dstast.Expr{backingField(recv, backing), &dstast.Identifier{Name: "handler"}},
	}
}

func noOpGetterBody(p *srcast.PropertyDecl) []dstast.Stmt {
	return []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Literal{
		BaseExpr: dstast.MakeBaseExpr(p.Pos(), p.End()), Kind: dstast.LitNil,
	}}}}
}

func zeroValueExpr(pos srcast.Node, t *srcast.TypeRef) dstast.Expr {
	zero := zeroValueFor(t)
	if zero == "nil" {
		return nil
	}
	return litVerbatim(pos, zero)
}

// lowerAccessor transforms an explicit accessor body when one was
// written, or falls back to synth() for an auto-property/no-field
// member. params is nil for a getter (no explicit parameter; the
// colon-call convention supplies `self` only) and ["value"] for a
// setter.
func (u *Unit) lowerAccessor(pos srcast.Node, recv, name string, params []string, isStatic bool, body *srcast.BlockStmt, synth func() []dstast.Stmt) *dstast.FunctionDecl {
	var stmts []dstast.Stmt
	if body != nil {
		u.pushNameScope()
		f := &funcFrame{voidReturn: params != nil}
		u.pushFunc(f)
		stmts = u.transformBlock(body)
		u.popFunc()
		u.popNameScope()
	} else {
		stmts = synth()
	}
	return &dstast.FunctionDecl{
		BaseDecl: dstast.MakeBaseDecl(pos.Pos(), pos.End()),
		Name:     name,
		Receiver: recv,
		IsStatic: isStatic,
		Params:   params,
		Body:     stmts,
	}
}

func simpleAccessor(pos srcast.Node, recv, name string, params []string, isStatic bool, body []dstast.Stmt) *dstast.FunctionDecl {
	return &dstast.FunctionDecl{
		BaseDecl: dstast.MakeBaseDecl(pos.Pos(), pos.End()),
		Name:     name,
		Receiver: recv,
		IsStatic: isStatic,
		Params:   params,
		Body:     body,
	}
}

// -----------------------------------------------------------------------------
// Methods and operators
// -----------------------------------------------------------------------------

func (u *Unit) lowerMethod(t *dstast.TypeDecl, typeName string, m *srcast.MethodDecl) {
	f := u.lowerFunctionLike(typeName, m.Sym, m.Params, m.Body, m.IsStatic, m.ReturnType == nil)
	f.BaseDecl = baseDeclFrom(m)

	if m.IsOperator {
		f.Name = operatorMethodName(m.OperatorKind)
		t.Operators = append(t.Operators, f)
		return
	}
	f.Name = u.memberIdentName(m.Sym, m.Name)
	t.Methods = append(t.Methods, f)
}

// lowerFunctionLike builds the shared shape behind every method: a
// naming scope for its parameters and locals, and a funcFrame so nested
// try/using/conditional-access lowering can find the enclosing
// function. An instance method relies on the colon-call convention to
// supply `self` rather than listing it in Params; isStatic flips the
// renderer to the dot-call form instead.
func (u *Unit) lowerFunctionLike(typeName string, sym *srcast.Symbol, params []srcast.ParamInfo, body *srcast.BlockStmt, isStatic, voidReturn bool) *dstast.FunctionDecl {
	names, variadic := paramNames(params)
	isIterator := body != nil && containsYield(body.Stmts)

	u.pushNameScope()
	f := &funcFrame{sym: sym, voidReturn: voidReturn, refOutParams: refOutNames(params), isIterator: isIterator}
	u.pushFunc(f)
	stmts := u.transformBlock(body)
	u.popFunc()
	u.popNameScope()

	// An iterator method has no target-language generator of its own, so
	// its whole lowered body becomes the closure a coroutine drives:
	// yield return/break inside it were already lowered to
	// coroutine.yield/return by transformStmt, keyed off funcFrame's own
	// isIterator flag.
	if isIterator {
		stmts = []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Invocation{
			Callee: &dstast.Identifier{Name: "coroutine.wrap"},
			Args:   []dstast.Expr{&dstast.FunctionLiteral{Body: stmts}},
		}}}}
	}

	return &dstast.FunctionDecl{
		Receiver: typeName,
		IsStatic: isStatic,
		Params:   names,
		Variadic: variadic,
		Body:     stmts,
	}
}

// refOutNames returns, in declaration order, the emitted name of every
// ref/out parameter in params — the method-info stack's ref/out
// parameter list spec.md §4.E's state-machine section requires, used by
// transformReturn to echo each one back as a trailing return value.
func refOutNames(params []srcast.ParamInfo) []string {
	var names []string
	for _, p := range params {
		if p.IsParams {
			continue
		}
		if p.Ref || p.Out {
			names = append(names, p.Name)
		}
	}
	return names
}

// operatorMethodName maps an overloaded operator to the stable method
// name the runtime's metatable adapter looks up (spec.md §4.F).
func operatorMethodName(k srcast.OperatorKind) string {
	switch k {
	case srcast.OpKindAddition:
		return "op_Addition"
	case srcast.OpKindSubtraction:
		return "op_Subtraction"
	case srcast.OpKindMultiply:
		return "op_Multiply"
	case srcast.OpKindDivision:
		return "op_Division"
	case srcast.OpKindModulus:
		return "op_Modulus"
	case srcast.OpKindEquality:
		return "op_Equality"
	case srcast.OpKindInequality:
		return "op_Inequality"
	case srcast.OpKindLessThan:
		return "op_LessThan"
	case srcast.OpKindGreaterThan:
		return "op_GreaterThan"
	case srcast.OpKindLessThanOrEqual:
		return "op_LessThanOrEqual"
	case srcast.OpKindGreaterThanOrEqual:
		return "op_GreaterThanOrEqual"
	case srcast.OpKindUnaryNegation:
		return "op_UnaryNegation"
	case srcast.OpKindExplicit:
		return "op_Explicit"
	case srcast.OpKindImplicit:
		return "op_Implicit"
	default:
		return "op_Unknown"
	}
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// lowerConstructors implements DESIGN.md decision 11: a single
// constructor becomes TypeDecl.Ctor directly; more than one moves the
// whole set, first overload included, into a `T.__ctor__ = {...}` table
// assignment carried in CtorOverflow, with Ctor left nil.
func (u *Unit) lowerConstructors(t *dstast.TypeDecl, typeName string, n *srcast.TypeDecl, instanceInit []dstast.Stmt) {
	if len(n.Constructors) == 0 {
		if len(instanceInit) > 0 {
			t.Ctor = u.synthesizeDefaultConstructor(typeName, n, instanceInit)
		}
		return
	}
	if len(n.Constructors) == 1 {
		t.Ctor = u.lowerConstructor(typeName, n, n.Constructors[0], instanceInit)
		return
	}

	fields := make([]dstast.TableField, len(n.Constructors))
	for i, c := range n.Constructors {
		fn := u.lowerConstructor(typeName, n, c, instanceInit)
		fields[i] = dstast.TableField{
			Kind:  dstast.FieldPositional,
			Value: &dstast.FunctionLiteral{Params: fn.Params, Variadic: fn.Variadic, Body: fn.Body},
		}
	}
	assign := &dstast.Assignment{
		BaseStmt: dstast.MakeBaseStmt(n.Pos(), n.End()),
		Targets: []dstast.AssignTarget{{
			Kind:  dstast.TargetPlain,
			Plain: &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: typeName}, Member: "__ctor__"},
		}},
		Values: []dstast.Expr{&dstast.TableInit{Fields: fields}},
	}
	t.CtorOverflow = []dstast.Stmt{assign}
}

// synthesizeDefaultConstructor builds the implicit parameterless
// constructor a class with field or auto-property initializers but no
// user-declared constructor still receives at the source level — field
// initializers run as though wrapped in an empty public constructor, so
// instanceInit would otherwise be dropped on the floor entirely.
func (u *Unit) synthesizeDefaultConstructor(typeName string, n *srcast.TypeDecl, instanceInit []dstast.Stmt) *dstast.FunctionDecl {
	var callee dstast.Expr
	var args []dstast.Expr
	if n.BaseType != nil && !isRootBaseType(n.BaseType) {
		callee = &dstast.MemberAccess{Receiver: u.typeNameExpr(n.BaseType), Member: "__ctor__"}
		args = []dstast.Expr{&dstast.Identifier{Name: "self"}}
	}
	return &dstast.FunctionDecl{
		BaseDecl: baseDeclFrom(n),
		Name:     "__ctor__",
		Receiver: typeName,
		IsStatic: true,
		Params:   []string{"self"},
		Body: []dstast.Stmt{&dstast.ConstructorAdapter{
			BaseStmt:          dstast.MakeBaseStmt(n.Pos(), n.End()),
			InitializerCallee: callee,
			InitializerArgs:   args,
			Body:              instanceInit,
		}},
	}
}

func (u *Unit) lowerConstructor(typeName string, n *srcast.TypeDecl, c *srcast.ConstructorDecl, instanceInit []dstast.Stmt) *dstast.FunctionDecl {
	params, variadic := paramNames(c.Params)
	params = append([]string{"self"}, params...)

	u.pushNameScope()
	f := &funcFrame{sym: c.Sym, voidReturn: true, refOutParams: refOutNames(c.Params)}
	u.pushFunc(f)
	userBody := u.transformBlock(c.Body)
	u.popFunc()
	u.popNameScope()

	callee, args := u.ctorInitializerCall(typeName, n, c)
	body := make([]dstast.Stmt, 0, len(instanceInit)+len(userBody))
	body = append(body, instanceInit...)
	body = append(body, userBody...)

	return &dstast.FunctionDecl{
		BaseDecl: baseDeclFrom(c),
		Name:     "__ctor__",
		Receiver: typeName,
		IsStatic: true,
		Params:   params,
		Variadic: variadic,
		Body: []dstast.Stmt{&dstast.ConstructorAdapter{
			BaseStmt:          dstast.MakeBaseStmt(c.Pos(), c.End()),
			InitializerCallee: callee,
			InitializerArgs:   args,
			Body:              body,
		}},
	}
}

// ctorInitializerCall builds the `Base.__ctor__(self, ...)` or
// `T.__ctor__[N](self, ...)` call a constructor issues before its own
// body, per DESIGN.md decision 11. It returns nil, nil when neither an
// explicit base(...)/this(...) clause nor an implicit base call applies
// (no base type, or the direct base is System.Object/System.ValueType).
func (u *Unit) ctorInitializerCall(typeName string, n *srcast.TypeDecl, c *srcast.ConstructorDecl) (dstast.Expr, []dstast.Expr) {
	self := dstast.Expr(&dstast.Identifier{Name: "self"})

	if c.Initializer == nil {
		if n.BaseType == nil || isRootBaseType(n.BaseType) {
			return nil, nil
		}
		return &dstast.MemberAccess{Receiver: u.typeNameExpr(n.BaseType), Member: "__ctor__"}, []dstast.Expr{self}
	}

	args := append([]dstast.Expr{self}, u.transformExprs(c.Initializer.Args)...)

	if c.Initializer.Kind == srcast.CtorInitBase {
		return &dstast.MemberAccess{Receiver: u.typeNameExpr(n.BaseType), Member: "__ctor__"}, args
	}

	// this(...): resolve which of this type's own overloads is targeted.
	// __ctor__ itself is only a bare function when the type has a single
	// constructor; with more than one, it is the table CtorOverflow
	// builds, so every this(...) call site — regardless of which
	// overload it targets — must index into it.
	idx := ctorOverloadIndex(n.Constructors, c.Initializer.Sym)
	self2 := &dstast.Identifier{Name: typeName}
	if len(n.Constructors) <= 1 {
		return &dstast.MemberAccess{Receiver: self2, Member: "__ctor__"}, args
	}
	return &dstast.TableIndex{
		Receiver: &dstast.MemberAccess{Receiver: self2, Member: "__ctor__"},
		Key:      litVerbatim(c, strconv.Itoa(idx)),
	}, args
}

// ctorOverloadIndex finds target's 1-based position in ctors by symbol
// identity, falling back to the bare (first) overload when the symbol
// cannot be found there — a this(...) initializer always names a
// constructor of the very type being lowered, so a miss only happens
// for a hand-built fixture that skipped wiring Sym.
func ctorOverloadIndex(ctors []*srcast.ConstructorDecl, target *srcast.Symbol) int {
	for i, c := range ctors {
		if c.Sym == target {
			return i + 1
		}
	}
	return 1
}

func isRootBaseType(t *srcast.TypeRef) bool {
	return t.Namespace == "System" && (t.Name == "Object" || t.Name == "ValueType")
}

func (u *Unit) lowerStaticConstructor(typeName string, c *srcast.ConstructorDecl) []dstast.Stmt {
	u.pushNameScope()
	f := &funcFrame{sym: c.Sym, voidReturn: true}
	u.pushFunc(f)
	body := u.transformBlock(c.Body)
	u.popFunc()
	u.popNameScope()
	return body
}

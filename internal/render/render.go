// Package render turns an internal/dstast tree into L-dst source text.
// Rendering is pure and deterministic: the same tree, indent width, and
// dialect always produce byte-identical output, and the renderer never
// consults the naming service or metadata oracle — every name in the
// tree it receives has already been assigned and is printed verbatim.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/token"
)

// Dialect selects which operator spellings the target runtime supports
// natively versus through a helper call.
type Dialect int

const (
	// DialectModern targets a runtime with native integer division ("//"),
	// native bitwise operators, and goto/label support.
	DialectModern Dialect = iota
	// DialectClassic targets a runtime lacking those; integer division and
	// bitwise operators route through `System.Ops.*` helper calls instead.
	// Goto statements and labels are printed the same way in both dialects.
	DialectClassic
)

// Config controls output formatting.
type Config struct {
	// IndentWidth is the number of spaces per indent level. Zero means 2.
	IndentWidth int
	Dialect     Dialect
	// Semicolons, when true, terminates simple statements with `;` the
	// way the classic dialect's reference tooling expects. It applies to
	// both dialects; when false, no semicolons are printed.
	Semicolons bool
}

func (c Config) indentWidth() int {
	if c.IndentWidth <= 0 {
		return 2
	}
	return c.IndentWidth
}

// Error reports a node the renderer does not know how to print. This
// should never happen against a tree produced entirely by
// internal/transform; it exists to fail loudly rather than silently
// print garbage if a future node kind is added to dstast without a
// matching render case.
type Error struct {
	Node dstast.Node
}

func (e *Error) Error() string {
	return fmt.Sprintf("render: unsupported node %T at %s", e.Node, e.Node.Pos())
}

// Render prints doc as L-dst source text.
func Render(doc *dstast.Document, cfg Config) (string, error) {
	var sb strings.Builder
	p := &printer{w: &sb, cfg: cfg}
	p.printDocument(doc)
	if p.err != nil {
		return "", p.err
	}
	return sb.String(), nil
}

// RenderExpr prints a single expression in isolation. The code-template
// engine uses this to turn an already-lowered argument subtree back into
// text before splicing it into a template-expanded call — the one place
// outside Render itself that needs the printer's expression logic.
func RenderExpr(e dstast.Expr, cfg Config) (string, error) {
	var sb strings.Builder
	p := &printer{w: &sb, cfg: cfg}
	p.printExpr(e)
	if p.err != nil {
		return "", p.err
	}
	return sb.String(), nil
}

type printer struct {
	w      io.Writer
	cfg    Config
	indent int
	err    error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) fail(n dstast.Node) {
	if p.err == nil {
		p.err = &Error{Node: n}
	}
}

func (p *printer) writeIndent() {
	if p.err != nil {
		return
	}
	pad := strings.Repeat(" ", p.cfg.indentWidth())
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, pad)
		if p.err != nil {
			return
		}
	}
}

func (p *printer) semi() {
	if p.cfg.Semicolons {
		p.printf(";")
	}
}

// -----------------------------------------------------------------------------
// Document
// -----------------------------------------------------------------------------

func (p *printer) printDocument(doc *dstast.Document) {
	for _, req := range doc.Requires {
		p.printf("local %s = require(%q)\n", req, req)
	}
	if len(doc.Requires) > 0 {
		p.printf("\n")
	}

	for _, t := range doc.Types {
		p.printTypeDecl(t)
		p.printf("\n")
	}

	for _, f := range doc.Functions {
		p.printFunctionDecl(f)
		p.printf("\n")
	}

	for _, s := range doc.TopLevel {
		p.writeIndent()
		p.printStmt(s)
		p.printf("\n")
	}
}

// -----------------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------------

func (p *printer) printFunctionDecl(f *dstast.FunctionDecl) {
	p.writeIndent()
	p.printf("function ")
	switch {
	case f.Receiver == "":
		p.printf("%s(", f.Name)
	case f.IsStatic:
		p.printf("%s.%s(", f.Receiver, f.Name)
	default:
		p.printf("%s:%s(", f.Receiver, f.Name)
	}
	p.printParamList(f.Params, f.Variadic)
	p.printf(")\n")
	p.indent++
	p.printStmtList(f.Body)
	p.indent--
	p.writeIndent()
	p.printf("end\n")
}

func (p *printer) printParamList(params []string, variadic bool) {
	for i, name := range params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", name)
	}
	if variadic {
		if len(params) > 0 {
			p.printf(", ")
		}
		p.printf("...")
	}
}

func (p *printer) printTypeDecl(t *dstast.TypeDecl) {
	p.writeIndent()
	if t.Kind == dstast.TypeKindInterface {
		p.printf("-- interface %s", t.Name)
		if len(t.Interfaces) > 0 {
			p.printf(" : %s", strings.Join(t.Interfaces, ", "))
		}
		p.printf("\n")
		return
	}

	p.printf("local %s = {}\n", t.Name)
	p.printTypeMetatable(t)

	if t.Kind == dstast.TypeKindEnum {
		for _, m := range t.EnumMembers {
			p.writeIndent()
			p.printf("%s.%s = ", t.Name, m.Name)
			p.printExprOrNil(m.Init)
			p.printf("\n")
		}
		return
	}

	for _, f := range t.StaticFields {
		p.writeIndent()
		p.printf("%s.%s = ", t.Name, f.Name)
		p.printExprOrNil(f.Init)
		p.printf("\n")
	}

	if t.Ctor != nil {
		p.printFunctionDecl(t.Ctor)
	}
	p.printStmtList(t.CtorOverflow)
	for _, m := range t.Methods {
		p.printFunctionDecl(m)
	}
	for _, op := range t.Operators {
		p.printFunctionDecl(op)
	}
}

// printTypeMetatable emits the single setmetatable call that wires both
// a base-type __index link and a __call hook to T's constructor, when
// either applies — a type has only one metatable, so the two links that
// used to be separate setmetatable calls must share one table literal.
func (p *printer) printTypeMetatable(t *dstast.TypeDecl) {
	if t.BaseName == "" && t.Ctor == nil {
		return
	}
	p.writeIndent()
	p.printf("setmetatable(%s, {", t.Name)
	fields := 0
	if t.BaseName != "" {
		p.printf(" __index = %s", t.BaseName)
		fields++
	}
	if t.Ctor != nil {
		if fields > 0 {
			p.printf(",")
		}
		p.printf(" __call = function(cls, ...) local self = setmetatable({}, cls); cls.%s(self, ...); return self end", t.Ctor.Name)
	}
	p.printf(" })\n")
}

func (p *printer) printExprOrNil(e dstast.Expr) {
	if e == nil {
		p.printf("nil")
		return
	}
	p.printExpr(e)
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *printer) printStmtList(stmts []dstast.Stmt) {
	prevBlank := false
	for _, s := range stmts {
		if _, ok := s.(*dstast.BlankLine); ok {
			// Consecutive blank lines coalesce into one.
			if !prevBlank {
				p.printf("\n")
			}
			prevBlank = true
			continue
		}
		prevBlank = false
		p.writeIndent()
		p.printStmt(s)
		p.printf("\n")
	}
}

func (p *printer) printStmt(s dstast.Stmt) {
	if s == nil {
		return
	}

	switch n := s.(type) {
	case *dstast.ExprStmt:
		p.printExpr(n.X)
		p.semi()

	case *dstast.Assignment:
		p.printAssignTargets(n.Targets)
		if len(n.Targets) > 0 && !p.allPropertyTargets(n.Targets) {
			p.printf(" = ")
			p.printExprList(n.Values)
		}
		p.semi()

	case *dstast.LocalVarDecl:
		p.printf("local ")
		for i, name := range n.Names {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%s", name)
		}
		if len(n.Values) > 0 {
			p.printf(" = ")
			p.printExprList(n.Values)
		}
		p.semi()

	case *dstast.Do:
		p.printf("do\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end")

	case *dstast.If:
		p.printIf(n)

	case *dstast.While:
		p.printf("while ")
		p.printExpr(n.Cond)
		p.printf(" do\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end")

	case *dstast.RepeatUntil:
		p.printf("repeat\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("until ")
		p.printExpr(n.Cond)

	case *dstast.NumericFor:
		p.printf("for %s = ", n.Var)
		p.printExpr(n.Start)
		p.printf(", ")
		p.printExpr(n.Stop)
		if n.Step != nil {
			p.printf(", ")
			p.printExpr(n.Step)
		}
		p.printf(" do\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end")

	case *dstast.GenericFor:
		p.printf("for %s in ", strings.Join(n.Vars, ", "))
		p.printExpr(n.Iterator)
		p.printf(" do\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end")

	case *dstast.Break:
		p.printf("break")

	case *dstast.Goto:
		p.printf("goto %s", n.Label)

	case *dstast.Labeled:
		p.printf("::%s::", n.Label)

	case *dstast.Return:
		p.printf("return")
		if len(n.Values) > 0 {
			p.printf(" ")
			p.printExprList(n.Values)
		}

	case *dstast.Comment:
		// A leading `///` doc-comment marker on any line is stripped.
		lines := strings.Split(n.Text, "\n")
		for i, line := range lines {
			if trimmed := strings.TrimLeft(line, " \t"); strings.HasPrefix(trimmed, "///") {
				lines[i] = strings.TrimPrefix(trimmed, "///")
			}
		}
		text := strings.Join(lines, "\n")
		if n.Long {
			p.printf("--[[%s]]", text)
		} else {
			p.printf("-- %s", text)
		}

	case *dstast.ContinueAdapter:
		p.printf("goto %s", n.ContinueLabel)

	case *dstast.GotoCaseAdapter:
		p.printf("goto %s", n.TargetLabel)

	case *dstast.TryAdapter:
		p.printTryAdapter(n)

	case *dstast.UsingAdapter:
		p.printUsingAdapter(n)

	case *dstast.ConstructorAdapter:
		p.printConstructorAdapter(n)

	case *dstast.LocalFunctionStmt:
		p.printf("local function %s(", n.Name)
		p.printParamList(n.Params, n.Variadic)
		p.printf(")\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end")

	case *dstast.BlankLine:
		// handled by printStmtList

	default:
		p.fail(n)
	}
}

func (p *printer) allPropertyTargets(targets []dstast.AssignTarget) bool {
	for _, t := range targets {
		if t.Kind != dstast.TargetProperty {
			return false
		}
	}
	return len(targets) > 0
}

func (p *printer) printAssignTargets(targets []dstast.AssignTarget) {
	// Property targets were already lowered to setter calls by the
	// statement transformer; a mixed plain/property assignment never
	// occurs because spec.md's assignment-lowering rule processes one
	// target at a time when any target is a property.
	if p.allPropertyTargets(targets) {
		for i, t := range targets {
			if i > 0 {
				p.printf("\n")
				p.writeIndent()
			}
			p.printExpr(t.Setter)
		}
		return
	}
	for i, t := range targets {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(t.Plain)
	}
}

func (p *printer) printIf(n *dstast.If) {
	p.printf("if ")
	p.printExpr(n.Cond)
	p.printf(" then\n")
	p.indent++
	p.printStmtList(n.Then)
	p.indent--

	switch {
	case len(n.Else) == 0:
		p.writeIndent()
		p.printf("end")
	case len(n.Else) == 1 && isIf(n.Else[0]):
		p.writeIndent()
		p.printf("else")
		p.printElseIf(n.Else[0].(*dstast.If))
	default:
		p.writeIndent()
		p.printf("else\n")
		p.indent++
		p.printStmtList(n.Else)
		p.indent--
		p.writeIndent()
		p.printf("end")
	}
}

// printElseIf prints a chained else-if without an intervening "end",
// following the Lua-family `elseif` keyword rather than nested
// `else if`.
func (p *printer) printElseIf(n *dstast.If) {
	p.printf("if ")
	p.printExpr(n.Cond)
	p.printf(" then\n")
	p.indent++
	p.printStmtList(n.Then)
	p.indent--

	switch {
	case len(n.Else) == 0:
		p.writeIndent()
		p.printf("end")
	case len(n.Else) == 1 && isIf(n.Else[0]):
		p.writeIndent()
		p.printf("else")
		p.printElseIf(n.Else[0].(*dstast.If))
	default:
		p.writeIndent()
		p.printf("else\n")
		p.indent++
		p.printStmtList(n.Else)
		p.indent--
		p.writeIndent()
		p.printf("end")
	}
}

func isIf(s dstast.Stmt) bool {
	_, ok := s.(*dstast.If)
	return ok
}

// printTryAdapter expands `System.try(tryFn, catchFn, finallyFn)` per
// the runtime contract: the protected body and every catch arm have
// already had their reachable returns rewritten to `return true, value`
// by the statement transformer, so this function only needs to print
// the closures and, when Propagate is set, the call-site binding that
// forwards a handled return to the enclosing function.
func (p *printer) printTryAdapter(n *dstast.TryAdapter) {
	if n.Propagate {
		if n.VoidReturn {
			p.printf("local ok = ")
		} else {
			p.printf("local ok, v = ")
		}
	}
	p.printf("System.try(function()\n")
	p.indent++
	p.printStmtList(n.Body)
	p.indent--
	p.writeIndent()
	p.printf("end, function(e)\n")
	p.indent++
	p.printCatchChain(n.Catches)
	p.indent--
	p.writeIndent()
	p.printf("end, ")
	if len(n.Finally) > 0 {
		p.printf("function()\n")
		p.indent++
		p.printStmtList(n.Finally)
		p.indent--
		p.writeIndent()
		p.printf("end)")
	} else {
		p.printf("nil)")
	}
	p.printPropagation(n.Propagate, n.VoidReturn)
}

// printCatchChain prints the body of a TryAdapter's catchFn: a
// disjunction of `if System.is(e, T) [and filter] then ... end`
// branches, with an implicit `else return true, e end` rethrow appended
// when no unconditional catch-all arm is present.
func (p *printer) printCatchChain(catches []dstast.TryCatch) {
	if len(catches) == 0 {
		p.writeIndent()
		p.printf("return true, e\n")
		return
	}
	if len(catches) == 1 && catches[0].Type == "" {
		p.printCatchBody(catches[0])
		return
	}

	hasCatchAll := false
	opened := false
	for _, c := range catches {
		p.writeIndent()
		if c.Type == "" {
			hasCatchAll = true
			p.printf("else\n")
		} else {
			if opened {
				p.printf("elseif System.is(e, %s)", c.Type)
			} else {
				p.printf("if System.is(e, %s)", c.Type)
			}
			if c.Filter != nil {
				p.printf(" and ")
				p.printExpr(c.Filter)
			}
			p.printf(" then\n")
			opened = true
		}
		p.indent++
		p.printCatchBody(c)
		p.indent--
	}
	if !hasCatchAll {
		p.writeIndent()
		p.printf("else\n")
		p.indent++
		p.writeIndent()
		p.printf("return true, e\n")
		p.indent--
	}
	p.writeIndent()
	p.printf("end\n")
}

func (p *printer) printCatchBody(c dstast.TryCatch) {
	if c.Bind != "" {
		p.writeIndent()
		p.printf("local %s = e\n", c.Bind)
	}
	p.printStmtList(c.Body)
}

// printPropagation prints the call-site `if ok then return [v] end`
// suffix shared by TryAdapter and UsingAdapter.
func (p *printer) printPropagation(propagate, voidReturn bool) {
	if !propagate {
		return
	}
	p.printf("\n")
	p.writeIndent()
	p.printf("if ok then return")
	if !voidReturn {
		p.printf(" v")
	}
	p.printf(" end")
}

func (p *printer) printUsingAdapter(n *dstast.UsingAdapter) {
	if n.Propagate {
		if n.VoidReturn {
			p.printf("local ok = ")
		} else {
			p.printf("local ok, v = ")
		}
	}

	if len(n.Resources) == 1 {
		r := n.Resources[0]
		p.printf("System.using(")
		p.printExpr(r.Value)
		p.printf(", function(%s)\n", r.Var)
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end)")
		p.printPropagation(n.Propagate, n.VoidReturn)
		return
	}

	names := make([]string, len(n.Resources))
	for i, r := range n.Resources {
		names[i] = r.Var
	}
	p.printf("System.usingX(function(%s)\n", strings.Join(names, ", "))
	p.indent++
	p.printStmtList(n.Body)
	p.indent--
	p.writeIndent()
	p.printf("end")
	for _, r := range n.Resources {
		p.printf(", ")
		p.printExpr(r.Value)
	}
	p.printf(")")
	p.printPropagation(n.Propagate, n.VoidReturn)
}

// printConstructorAdapter owns a full statement list rather than a
// single printed expression; the caller (printStmtList, via the
// constructor function's body) has already written this line's indent
// before invoking printStmt, so only the initializer call uses it —
// every body statement manages its own indent through printStmtList.
func (p *printer) printConstructorAdapter(n *dstast.ConstructorAdapter) {
	if n.InitializerCallee != nil {
		p.printExpr(n.InitializerCallee)
		p.printf("(")
		p.printExprList(n.InitializerArgs)
		p.printf(")\n")
	}
	p.printStmtList(n.Body)
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (p *printer) printExprList(exprs []dstast.Expr) {
	for i, e := range exprs {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(e)
	}
}

func (p *printer) printExpr(e dstast.Expr) {
	if e == nil {
		p.printf("nil")
		return
	}

	switch n := e.(type) {
	case *dstast.Literal:
		p.printLiteral(n)

	case *dstast.Identifier:
		p.printf("%s", n.Name)

	case *dstast.MemberAccess:
		p.printExpr(n.Receiver)
		if n.IsColonCall {
			p.printf(":%s", n.Member)
		} else {
			p.printf(".%s", n.Member)
		}

	case *dstast.TableIndex:
		p.printExpr(n.Receiver)
		p.printf("[")
		p.printExpr(n.Key)
		p.printf("]")

	case *dstast.Invocation:
		p.printExpr(n.Callee)
		p.printf("(")
		p.printExprList(n.Args)
		p.printf(")")

	case *dstast.FunctionLiteral:
		p.printf("function(")
		p.printParamList(n.Params, n.Variadic)
		p.printf(")\n")
		p.indent++
		p.printStmtList(n.Body)
		p.indent--
		p.writeIndent()
		p.printf("end")

	case *dstast.Paren:
		p.printf("(")
		p.printExpr(n.Inner)
		p.printf(")")

	case *dstast.SequenceList:
		p.printExprList(n.Elements)

	case *dstast.TableInit:
		p.printTableInit(n)

	case *dstast.Binary:
		p.printBinary(n)

	case *dstast.Unary:
		p.printUnary(n)

	case *dstast.PropertyAdapter:
		p.printExpr(n.Get)

	case *dstast.ArrayTypeAdapter:
		if n.Rank > 1 {
			p.printf("System.MultiArray(")
			p.printExpr(n.ElemTypeExpr)
			p.printf(", %d)", n.Rank)
		} else {
			p.printf("System.Array(")
			p.printExpr(n.ElemTypeExpr)
			p.printf(")")
		}

	default:
		p.fail(n)
	}
}

func (p *printer) printLiteral(n *dstast.Literal) {
	switch n.Kind {
	case dstast.LitString:
		p.printf("%s", strconv.Quote(n.Value))
	case dstast.LitNumber, dstast.LitBool, dstast.LitVerbatim:
		p.printf("%s", n.Value)
	case dstast.LitNil:
		p.printf("nil")
	default:
		p.fail(n)
	}
}

func (p *printer) printTableInit(n *dstast.TableInit) {
	p.printf("{")
	for i, f := range n.Fields {
		if i > 0 {
			p.printf(", ")
		}
		switch f.Kind {
		case dstast.FieldPositional:
			p.printExpr(f.Value)
		case dstast.FieldKeyValue:
			p.printf("[")
			p.printExpr(f.Key)
			p.printf("] = ")
			p.printExpr(f.Value)
		case dstast.FieldStringKey:
			p.printf("%s = ", f.Name)
			p.printExpr(f.Value)
		}
	}
	p.printf("}")
}

// binOpNeedsParens reports whether operand e must be parenthesized when
// printed as a direct child of a binary/unary operator, preserving the
// grouping the transformer decided was necessary (spec.md §3 invariant
// 4: explicit Paren nodes, plus any compound expression kind whose
// printed form would otherwise read ambiguously).
func binOpNeedsParens(e dstast.Expr) bool {
	switch e.(type) {
	case *dstast.Binary, *dstast.FunctionLiteral:
		return true
	default:
		return false
	}
}

func (p *printer) printBinary(n *dstast.Binary) {
	op := n.Op
	useHelper := p.cfg.Dialect == DialectClassic && isClassicHelperOp(op)

	if useHelper {
		p.printf("%s(", classicHelperName(op))
		p.printExpr(n.Left)
		p.printf(", ")
		p.printExpr(n.Right)
		p.printf(")")
		return
	}

	left, right := n.Left, n.Right
	lp := binOpNeedsParens(left)
	rp := binOpNeedsParens(right)

	if lp {
		p.printf("(")
	}
	p.printExpr(left)
	if lp {
		p.printf(")")
	}

	if op == token.OpConcat {
		p.printf(" .. ")
	} else {
		p.printf(" %s ", op.String())
	}

	if rp {
		p.printf("(")
	}
	p.printExpr(right)
	if rp {
		p.printf(")")
	}
}

func (p *printer) printUnary(n *dstast.Unary) {
	op := n.Op
	if p.cfg.Dialect == DialectClassic && op == token.OpBNot {
		p.printf("System.Ops.BNot(")
		p.printExpr(n.Operand)
		p.printf(")")
		return
	}

	needsSpace := op == token.OpNot
	p.printf("%s", op.String())
	if needsSpace {
		p.printf(" ")
	}
	np := binOpNeedsParens(n.Operand)
	if np {
		p.printf("(")
	}
	p.printExpr(n.Operand)
	if np {
		p.printf(")")
	}
}

// isClassicHelperOp reports whether op has no native spelling in the
// classic dialect and must route through a System.Ops helper call.
func isClassicHelperOp(op token.Op) bool {
	switch op {
	case token.OpIDiv, token.OpBAnd, token.OpBOr, token.OpBXor, token.OpShl, token.OpShr:
		return true
	default:
		return false
	}
}

func classicHelperName(op token.Op) string {
	switch op {
	case token.OpIDiv:
		return "System.Ops.IDiv"
	case token.OpBAnd:
		return "System.Ops.BAnd"
	case token.OpBOr:
		return "System.Ops.BOr"
	case token.OpBXor:
		return "System.Ops.BXor"
	case token.OpShl:
		return "System.Ops.Shl"
	case token.OpShr:
		return "System.Ops.Shr"
	default:
		return "System.Ops.Unknown"
	}
}

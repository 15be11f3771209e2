package dstast

// Visitor defines the generic visitor pattern for L-dst AST traversal.
// Type parameter T is the return type of every visit method, following
// the same double-dispatch shape the rest of this compiler's trees use.
type Visitor[T any] interface {
	VisitDocument(*Document) T

	VisitLiteral(*Literal) T
	VisitIdentifier(*Identifier) T
	VisitMemberAccess(*MemberAccess) T
	VisitTableIndex(*TableIndex) T
	VisitInvocation(*Invocation) T
	VisitFunctionLiteral(*FunctionLiteral) T
	VisitParen(*Paren) T
	VisitSequenceList(*SequenceList) T
	VisitTableInit(*TableInit) T
	VisitBinary(*Binary) T
	VisitUnary(*Unary) T
	VisitPropertyAdapter(*PropertyAdapter) T
	VisitArrayTypeAdapter(*ArrayTypeAdapter) T

	VisitExprStmt(*ExprStmt) T
	VisitAssignment(*Assignment) T
	VisitLocalVarDecl(*LocalVarDecl) T
	VisitDo(*Do) T
	VisitIf(*If) T
	VisitWhile(*While) T
	VisitRepeatUntil(*RepeatUntil) T
	VisitNumericFor(*NumericFor) T
	VisitGenericFor(*GenericFor) T
	VisitBreak(*Break) T
	VisitGoto(*Goto) T
	VisitLabeled(*Labeled) T
	VisitReturn(*Return) T
	VisitBlankLine(*BlankLine) T
	VisitComment(*Comment) T
	VisitTryAdapter(*TryAdapter) T
	VisitUsingAdapter(*UsingAdapter) T
	VisitConstructorAdapter(*ConstructorAdapter) T
	VisitContinueAdapter(*ContinueAdapter) T
	VisitGotoCaseAdapter(*GotoCaseAdapter) T
	VisitLocalFunctionStmt(*LocalFunctionStmt) T

	VisitFunctionDecl(*FunctionDecl) T
	VisitTypeDecl(*TypeDecl) T
}

// walkStmts walks a statement slice.
func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Walk(s, fn)
	}
}

// walkExprs walks an expression slice.
func walkExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		Walk(e, fn)
	}
}

// Walk traverses an L-dst AST in depth-first order. If fn returns false
// for a node, that node's children are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Document:
		for _, t := range n.Types {
			Walk(t, fn)
		}
		for _, f := range n.Functions {
			Walk(f, fn)
		}
		walkStmts(n.TopLevel, fn)

	case *Literal, *Identifier:
		// no children

	case *MemberAccess:
		Walk(n.Receiver, fn)

	case *TableIndex:
		Walk(n.Receiver, fn)
		Walk(n.Key, fn)

	case *Invocation:
		Walk(n.Callee, fn)
		walkExprs(n.Args, fn)

	case *FunctionLiteral:
		walkStmts(n.Body, fn)

	case *Paren:
		Walk(n.Inner, fn)

	case *SequenceList:
		walkExprs(n.Elements, fn)

	case *TableInit:
		for _, f := range n.Fields {
			Walk(f.Key, fn)
			Walk(f.Value, fn)
		}

	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *Unary:
		Walk(n.Operand, fn)

	case *PropertyAdapter:
		Walk(n.Get, fn)
		Walk(n.SetCallee, fn)

	case *ArrayTypeAdapter:
		Walk(n.ElemTypeExpr, fn)

	case *ExprStmt:
		Walk(n.X, fn)

	case *Assignment:
		for _, t := range n.Targets {
			Walk(t.Plain, fn)
			Walk(t.Setter, fn)
		}
		walkExprs(n.Values, fn)

	case *LocalVarDecl:
		walkExprs(n.Values, fn)

	case *Do:
		walkStmts(n.Body, fn)

	case *If:
		Walk(n.Cond, fn)
		walkStmts(n.Then, fn)
		walkStmts(n.Else, fn)

	case *While:
		Walk(n.Cond, fn)
		walkStmts(n.Body, fn)

	case *RepeatUntil:
		walkStmts(n.Body, fn)
		Walk(n.Cond, fn)

	case *NumericFor:
		Walk(n.Start, fn)
		Walk(n.Stop, fn)
		Walk(n.Step, fn)
		walkStmts(n.Body, fn)

	case *GenericFor:
		Walk(n.Iterator, fn)
		walkStmts(n.Body, fn)

	case *Break, *Goto, *Labeled, *BlankLine, *Comment, *ContinueAdapter, *GotoCaseAdapter:
		// no children

	case *Return:
		walkExprs(n.Values, fn)

	case *TryAdapter:
		walkStmts(n.Body, fn)
		for _, c := range n.Catches {
			Walk(c.Filter, fn)
			walkStmts(c.Body, fn)
		}
		walkStmts(n.Finally, fn)

	case *UsingAdapter:
		for _, r := range n.Resources {
			Walk(r.Value, fn)
		}
		walkStmts(n.Body, fn)

	case *ConstructorAdapter:
		Walk(n.InitializerCallee, fn)
		walkExprs(n.InitializerArgs, fn)
		walkStmts(n.Body, fn)

	case *LocalFunctionStmt:
		walkStmts(n.Body, fn)

	case *FunctionDecl:
		walkStmts(n.Body, fn)

	case *TypeDecl:
		for _, f := range n.InstanceFields {
			Walk(f.Init, fn)
		}
		for _, f := range n.StaticFields {
			Walk(f.Init, fn)
		}
		for _, f := range n.EnumMembers {
			Walk(f.Init, fn)
		}
		if n.Ctor != nil {
			Walk(n.Ctor, fn)
		}
		walkStmts(n.CtorOverflow, fn)
		for _, m := range n.Methods {
			Walk(m, fn)
		}
		for _, o := range n.Operators {
			Walk(o, fn)
		}
	}
}

// Accept dispatches to the appropriate visitor method based on node type.
func Accept[T any](node Node, v Visitor[T]) T {
	switch n := node.(type) {
	case *Document:
		return v.VisitDocument(n)

	case *Literal:
		return v.VisitLiteral(n)
	case *Identifier:
		return v.VisitIdentifier(n)
	case *MemberAccess:
		return v.VisitMemberAccess(n)
	case *TableIndex:
		return v.VisitTableIndex(n)
	case *Invocation:
		return v.VisitInvocation(n)
	case *FunctionLiteral:
		return v.VisitFunctionLiteral(n)
	case *Paren:
		return v.VisitParen(n)
	case *SequenceList:
		return v.VisitSequenceList(n)
	case *TableInit:
		return v.VisitTableInit(n)
	case *Binary:
		return v.VisitBinary(n)
	case *Unary:
		return v.VisitUnary(n)
	case *PropertyAdapter:
		return v.VisitPropertyAdapter(n)
	case *ArrayTypeAdapter:
		return v.VisitArrayTypeAdapter(n)

	case *ExprStmt:
		return v.VisitExprStmt(n)
	case *Assignment:
		return v.VisitAssignment(n)
	case *LocalVarDecl:
		return v.VisitLocalVarDecl(n)
	case *Do:
		return v.VisitDo(n)
	case *If:
		return v.VisitIf(n)
	case *While:
		return v.VisitWhile(n)
	case *RepeatUntil:
		return v.VisitRepeatUntil(n)
	case *NumericFor:
		return v.VisitNumericFor(n)
	case *GenericFor:
		return v.VisitGenericFor(n)
	case *Break:
		return v.VisitBreak(n)
	case *Goto:
		return v.VisitGoto(n)
	case *Labeled:
		return v.VisitLabeled(n)
	case *Return:
		return v.VisitReturn(n)
	case *BlankLine:
		return v.VisitBlankLine(n)
	case *Comment:
		return v.VisitComment(n)
	case *TryAdapter:
		return v.VisitTryAdapter(n)
	case *UsingAdapter:
		return v.VisitUsingAdapter(n)
	case *ConstructorAdapter:
		return v.VisitConstructorAdapter(n)
	case *ContinueAdapter:
		return v.VisitContinueAdapter(n)
	case *GotoCaseAdapter:
		return v.VisitGotoCaseAdapter(n)
	case *LocalFunctionStmt:
		return v.VisitLocalFunctionStmt(n)

	case *FunctionDecl:
		return v.VisitFunctionDecl(n)
	case *TypeDecl:
		return v.VisitTypeDecl(n)

	default:
		var zero T
		return zero
	}
}

package dstast

import (
	"testing"

	"github.com/kolkov/lunac/internal/token"
)

func TestMakeBaseExprReportsConstructedPositions(t *testing.T) {
	start := token.Position{Line: 3, Column: 1}
	end := token.Position{Line: 3, Column: 9}
	b := MakeBaseExpr(start, end)
	if b.Pos() != start {
		t.Errorf("Pos() = %v, want %v", b.Pos(), start)
	}
	if b.End() != end {
		t.Errorf("End() = %v, want %v", b.End(), end)
	}
}

func TestMakeBaseStmtReportsConstructedPositions(t *testing.T) {
	start := token.Position{Line: 5, Column: 1}
	end := token.Position{Line: 7, Column: 4}
	b := MakeBaseStmt(start, end)
	if b.Pos() != start || b.End() != end {
		t.Errorf("Pos/End = %v/%v, want %v/%v", b.Pos(), b.End(), start, end)
	}
}

func TestMakeBaseDeclReportsConstructedPositions(t *testing.T) {
	start := token.Position{Line: 1, Column: 1}
	end := token.Position{Line: 20, Column: 1}
	b := MakeBaseDecl(start, end)
	if b.Pos() != start || b.End() != end {
		t.Errorf("Pos/End = %v/%v, want %v/%v", b.Pos(), b.End(), start, end)
	}
}

func TestZeroValueNodesSatisfyTheirInterfaces(t *testing.T) {
	var _ Expr = &Identifier{}
	var _ Stmt = &ExprStmt{}
	var _ Decl = &FunctionDecl{}
	var _ Node = &Document{}
}

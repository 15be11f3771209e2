// Package dstast defines the abstract syntax tree for the L-dst output
// language: a Lua-family dynamic scripting language built on prototype
// tables, first-class functions, metatables, and goto/label control flow.
//
// Unlike internal/srcast, this tree is produced by the transformer, not
// handed in from outside — every node here is something the renderer
// (internal/render) knows how to print back out deterministically.
// Several node kinds have no direct L-src counterpart and exist purely
// to carry constructs the target language lacks a native form for
// (TryAdapter, UsingAdapter, ConstructorAdapter, ContinueAdapter,
// GotoCaseAdapter) — the renderer expands each into a valid statement
// sequence with no further rewriting pass required.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	├── Stmt (interface) - statements that perform actions
//	└── Decl (interface) - top-level function/type declarations
package dstast

import "github.com/kolkov/lunac/internal/token"

// Node is the interface implemented by every L-dst AST node.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is the interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// BaseExpr provides common position fields for expression nodes.
type BaseExpr struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseExpr) Pos() token.Position { return b.StartPos }
func (b *BaseExpr) End() token.Position { return b.EndPos }
func (b *BaseExpr) exprNode()           {}

// BaseStmt provides common position fields for statement nodes.
type BaseStmt struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseStmt) Pos() token.Position { return b.StartPos }
func (b *BaseStmt) End() token.Position { return b.EndPos }
func (b *BaseStmt) stmtNode()           {}

// BaseDecl provides common position fields for declaration nodes.
type BaseDecl struct {
	StartPos token.Position
	EndPos   token.Position
}

func (b *BaseDecl) Pos() token.Position { return b.StartPos }
func (b *BaseDecl) End() token.Position { return b.EndPos }
func (b *BaseDecl) declNode()           {}

// MakeBaseExpr creates a BaseExpr with the given positions.
func MakeBaseExpr(start, end token.Position) BaseExpr {
	return BaseExpr{StartPos: start, EndPos: end}
}

// MakeBaseStmt creates a BaseStmt with the given positions.
func MakeBaseStmt(start, end token.Position) BaseStmt {
	return BaseStmt{StartPos: start, EndPos: end}
}

// MakeBaseDecl creates a BaseDecl with the given positions.
func MakeBaseDecl(start, end token.Position) BaseDecl {
	return BaseDecl{StartPos: start, EndPos: end}
}

package fixture

import (
	"testing"

	"github.com/kolkov/lunac/internal/srcast"
)

func TestDecodeMinimalUnit(t *testing.T) {
	doc := `{
		"fileName": "Example.cs",
		"namespace": "Example",
		"types": [
			{
				"name": "Greeter",
				"kind": "class",
				"fields": [
					{"name": "count", "fieldType": {"kind": "primitive", "name": "Int32"}, "sym": {"name": "count", "kind": "field"}}
				],
				"methods": [
					{
						"name": "Hello",
						"isStatic": true,
						"returnType": {"kind": "primitive", "name": "String"},
						"body": {"stmts": [
							{"type": "ReturnStmt", "value": {"type": "Literal", "kind": "string", "value": "hi"}}
						]},
						"sym": {"name": "Hello", "kind": "method"}
					}
				],
				"sym": {"name": "Greeter", "kind": "type"}
			}
		]
	}`

	cu, oracle, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cu.FileName != "Example.cs" {
		t.Errorf("FileName = %q", cu.FileName)
	}
	if len(cu.Types) != 1 {
		t.Fatalf("Types = %d, want 1", len(cu.Types))
	}
	ty := cu.Types[0]
	if ty.Name != "Greeter" || ty.Kind != srcast.KindClass {
		t.Errorf("type = %+v", ty)
	}
	if len(ty.Fields) != 1 || ty.Fields[0].Name != "count" {
		t.Fatalf("Fields = %+v", ty.Fields)
	}
	if len(ty.Methods) != 1 || ty.Methods[0].Name != "Hello" || !ty.Methods[0].IsStatic {
		t.Fatalf("Methods = %+v", ty.Methods)
	}
	ret, ok := ty.Methods[0].Body.Stmts[0].(*srcast.ReturnStmt)
	if !ok {
		t.Fatalf("first stmt = %T", ty.Methods[0].Body.Stmts[0])
	}
	lit, ok := ret.Value.(*srcast.Literal)
	if !ok || lit.Value != "hi" {
		t.Fatalf("return value = %+v", ret.Value)
	}

	if oracle.SymbolOf(ty) != ty.Sym {
		t.Error("SymbolOf(TypeDecl) did not return the decoded symbol")
	}
}

func TestDecodeSymbolInterning(t *testing.T) {
	doc := `{
		"types": [
			{
				"name": "Base",
				"constructors": [
					{"sym": {"id": "ctor0", "name": ".ctor", "kind": "method", "isConstructor": true}, "body": {"stmts": []}}
				],
				"sym": {"name": "Base", "kind": "type"}
			},
			{
				"name": "Derived",
				"constructors": [
					{
						"sym": {"name": ".ctor", "kind": "method", "isConstructor": true},
						"body": {"stmts": []},
						"initializer": {"kind": "base", "sym": "ctor0", "args": []}
					}
				],
				"sym": {"name": "Derived", "kind": "type"}
			}
		]
	}`

	cu, _, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	base := cu.Types[0]
	derived := cu.Types[1]
	gotInit := derived.Constructors[0].Initializer.Sym
	wantSym := base.Constructors[0].Sym
	if gotInit != wantSym {
		t.Errorf("interned symbol pointer mismatch: got %p, want %p", gotInit, wantSym)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	if _, _, err := Decode([]byte("")); err == nil {
		t.Error("expected an error decoding an empty document")
	}
}

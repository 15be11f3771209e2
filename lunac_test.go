package lunac_test

import (
	"strings"
	"testing"

	"github.com/kolkov/lunac"
	"github.com/kolkov/lunac/internal/fixture"
	"github.com/kolkov/lunac/internal/render"
)

func TestCompileAndRender(t *testing.T) {
	doc := `{
		"fileName": "Greeter.cs",
		"types": [
			{
				"name": "Greeter",
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

	cu, oracle, err := fixture.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("fixture.Decode: %v", err)
	}

	unit, err := lunac.Compile(cu, oracle, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if unit.FileName() != "Greeter.cs" {
		t.Errorf("FileName = %q", unit.FileName())
	}

	text, err := unit.Render(render.Config{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(text, "Greeter") || !strings.Contains(text, "hi") {
		t.Errorf("rendered output missing expected content:\n%s", text)
	}
}

func TestCompileNilConfigUsesDefaults(t *testing.T) {
	doc := `{"types": [{"name": "Empty", "sym": {"name": "Empty", "kind": "type"}}]}`
	cu, oracle, err := fixture.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("fixture.Decode: %v", err)
	}
	if _, err := lunac.Compile(cu, oracle, nil); err != nil {
		t.Fatalf("Compile with nil config: %v", err)
	}
}

func TestCompilePropagatesLoweringErrors(t *testing.T) {
	// A bare `base.Member` that is not the callee of an invocation has
	// no valid lowering; the rule raises a *transform.CompilationError
	// rather than letting the panic escape Compile.
	doc := `{
		"types": [
			{
				"name": "Broken",
				"methods": [
					{
						"name": "M",
						"isStatic": true,
						"body": {"stmts": [
							{"type": "ExprStmt", "x": {
								"type": "MemberAccess",
								"receiver": {"type": "BaseRef"},
								"member": "Missing"
							}}
						]},
						"sym": {"name": "M", "kind": "method"}
					}
				],
				"sym": {"name": "Broken", "kind": "type"}
			}
		]
	}`
	cu, oracle, err := fixture.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("fixture.Decode: %v", err)
	}
	if _, err := lunac.Compile(cu, oracle, nil); err == nil {
		t.Error("expected a lowering error for a bare base member access")
	}
}

package transform_test

import (
	"strings"
	"testing"

	"github.com/kolkov/lunac/internal/fixture"
	"github.com/kolkov/lunac/internal/metadata"
	"github.com/kolkov/lunac/internal/render"
	"github.com/kolkov/lunac/internal/transform"
)

// compile is the shared fixture-to-text pipeline every case below drives:
// decode a wire document, lower it, render the result. Any error at any
// stage fails the test immediately, since every fixture here is meant to
// be a valid, fully-resolved compilation unit.
func compile(t *testing.T, doc string) string {
	t.Helper()
	cu, oracle, err := fixture.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("fixture.Decode: %v", err)
	}
	unit := transform.NewUnit(oracle, metadata.Empty())
	out, err := unit.Compile(cu)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	text, err := render.Render(out, render.Config{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return text
}

func TestTryCatchFinally(t *testing.T) {
	doc := `{"types": [{
		"name": "Worker",
		"methods": [{
			"name": "Run",
			"isStatic": true,
			"body": {"stmts": [{
				"type": "TryStmt",
				"body": {"stmts": [
					{"type": "ExprStmt", "x": {"type": "Invocation", "callee": {"type": "Ident", "name": "Risky"}, "args": []}}
				]},
				"catches": [{
					"catchType": {"kind": "class", "name": "IOException"},
					"varName": "ex",
					"body": {"stmts": [
						{"type": "ThrowStmt"}
					]}
				}],
				"finally": {"stmts": [
					{"type": "ExprStmt", "x": {"type": "Invocation", "callee": {"type": "Ident", "name": "Cleanup"}, "args": []}}
				]}
			}]},
			"sym": {"name": "Run", "kind": "method"}
		}],
		"sym": {"name": "Worker", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "System.try(function()") {
		t.Errorf("missing System.try wrapper:\n%s", text)
	}
	if !strings.Contains(text, "System.is(e, IOException)") {
		t.Errorf("missing catch-type guard:\n%s", text)
	}
	if !strings.Contains(text, "local ex = e") {
		t.Errorf("missing catch binding:\n%s", text)
	}
	if !strings.Contains(text, "System.throw(e)") {
		t.Errorf("missing rethrow lowering:\n%s", text)
	}
	if !strings.Contains(text, "function()\n") || !strings.Contains(text, "Cleanup()") {
		t.Errorf("missing finally closure:\n%s", text)
	}
}

func TestConstructorDispatchSingle(t *testing.T) {
	doc := `{"types": [{
		"name": "Point",
		"constructors": [{
			"overloadIndex": 0,
			"params": [{"name": "x"}, {"name": "y"}],
			"body": {"stmts": []},
			"sym": {"name": ".ctor", "kind": "method", "isConstructor": true}
		}],
		"sym": {"name": "Point", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "function Point.__ctor__(self, x, y)") {
		t.Errorf("single constructor should lower to a bare function, got:\n%s", text)
	}
	if strings.Contains(text, "__ctor__ = {") {
		t.Errorf("single constructor should not build an overload table:\n%s", text)
	}
}

func TestConstructorDispatchOverflow(t *testing.T) {
	doc := `{"types": [{
		"name": "Point",
		"constructors": [
			{
				"overloadIndex": 0,
				"params": [],
				"body": {"stmts": []},
				"sym": {"name": ".ctor", "kind": "method", "isConstructor": true}
			},
			{
				"overloadIndex": 1,
				"params": [{"name": "x"}, {"name": "y"}],
				"body": {"stmts": []},
				"sym": {"name": ".ctor", "kind": "method", "isConstructor": true}
			}
		],
		"sym": {"name": "Point", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "Point.__ctor__ = {") {
		t.Errorf("overloaded constructors should build a dispatch table, got:\n%s", text)
	}
	if strings.Contains(text, "function Point.__ctor__(self") {
		t.Errorf("overloaded constructors should not also emit a bare __ctor__ function:\n%s", text)
	}
}

func TestDefaultConstructorSynthesizedFromFieldInitializers(t *testing.T) {
	doc := `{"types": [{
		"name": "Counter",
		"fields": [{
			"name": "count",
			"fieldType": {"kind": "primitive", "name": "Int32"},
			"init": {"type": "Literal", "kind": "number", "value": "0"},
			"sym": {"name": "count", "kind": "field"}
		}],
		"sym": {"name": "Counter", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "function Counter.__ctor__(self)") {
		t.Errorf("expected a synthesized default constructor, got:\n%s", text)
	}
	if !strings.Contains(text, "self.count = 0") {
		t.Errorf("synthesized constructor should still carry the field initializer, got:\n%s", text)
	}
}

func TestConditionalAccessUsesGuardedTemporary(t *testing.T) {
	doc := `{"types": [{
		"name": "Tree",
		"methods": [{
			"name": "LeftName",
			"isStatic": true,
			"params": [{"name": "n"}],
			"body": {"stmts": [{
				"type": "ReturnStmt",
				"value": {
					"type": "ConditionalAccess",
					"root": {"type": "Ident", "name": "n"},
					"links": [
						{"kind": "member", "member": "Left"},
						{"kind": "member", "member": "Name"}
					]
				}
			}]},
			"sym": {"name": "LeftName", "kind": "method", "params": [{"name": "n"}]}
		}],
		"sym": {"name": "Tree", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "if t0 == nil then") {
		t.Errorf("expected a nil guard on the conditional-access temporary, got:\n%s", text)
	}
	if !strings.Contains(text, "t0 = t0.Left") || !strings.Contains(text, "t0 = t0.Name") {
		t.Errorf("expected each chain link re-bound through the temporary, got:\n%s", text)
	}
}

func TestContinueAndGotoCase(t *testing.T) {
	doc := `{"types": [{
		"name": "Loops",
		"methods": [{
			"name": "Scan",
			"isStatic": true,
			"params": [{"name": "n"}],
			"body": {"stmts": [
				{
					"type": "WhileStmt",
					"cond": {"type": "Literal", "kind": "bool", "value": "true"},
					"body": {"stmts": [
						{"type": "ContinueStmt"}
					]}
				},
				{
					"type": "SwitchStmt",
					"selector": {"type": "Ident", "name": "n"},
					"sections": [
						{"labels": [{"value": {"type": "Literal", "kind": "number", "value": "1"}}],
						 "body": [{"type": "GotoCaseStmt", "value": {"type": "Literal", "kind": "number", "value": "2"}}]},
						{"labels": [{"value": {"type": "Literal", "kind": "number", "value": "2"}}],
						 "body": [{"type": "BreakStmt"}]}
					]
				}
			]},
			"sym": {"name": "Scan", "kind": "method", "params": [{"name": "n"}]}
		}],
		"sym": {"name": "Loops", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "goto continue_") {
		t.Errorf("continue should lower to a goto on the loop's continuation label, got:\n%s", text)
	}
	if !strings.Contains(text, "goto case_") {
		t.Errorf("goto case should target a synthesized case label, got:\n%s", text)
	}
	if !strings.Contains(text, "goto switchEnd_") {
		t.Errorf("switch break should target the synthesized exit label, got:\n%s", text)
	}
}

func TestTupleDeconstructionAssignment(t *testing.T) {
	doc := `{"types": [{
		"name": "Pair",
		"methods": [{
			"name": "Swap",
			"isStatic": true,
			"params": [{"name": "a"}, {"name": "b"}],
			"body": {"stmts": [{
				"type": "VarDeclStmt",
				"names": ["a", "b"],
				"isTupleDeconstruction": true,
				"tupleSource": {
					"type": "TupleExpr",
					"elements": [{"type": "Ident", "name": "b"}, {"type": "Ident", "name": "a"}]
				},
				"inits": [],
				"syms": [
					{"name": "a", "kind": "local"},
					{"name": "b", "kind": "local"}
				]
			}]},
			"sym": {"name": "Swap", "kind": "method", "params": [{"name": "a"}, {"name": "b"}]}
		}],
		"sym": {"name": "Pair", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "local a, b = System.ValueTuple.create(b, a)") {
		t.Errorf("expected the deconstruction to bind from a single ValueTuple.create call, got:\n%s", text)
	}
}

func TestStringInterpolation(t *testing.T) {
	doc := `{"types": [{
		"name": "Greeter",
		"methods": [{
			"name": "Greet",
			"isStatic": true,
			"params": [{"name": "name"}],
			"body": {"stmts": [{
				"type": "ReturnStmt",
				"value": {
					"type": "InterpolatedString",
					"parts": [
						{"text": "Hello, "},
						{"text": "", "expr": {"type": "Ident", "name": "name"}},
						{"text": "!"}
					]
				}
			}]},
			"sym": {"name": "Greet", "kind": "method", "params": [{"name": "name"}]}
		}],
		"sym": {"name": "Greeter", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, `("Hello, {0}!"):format(name)`) {
		t.Errorf("expected a positional :format call, got:\n%s", text)
	}
}

func TestSelfRecursiveLocalFunctionUsesNativeForm(t *testing.T) {
	doc := `{"types": [{
		"name": "Math",
		"methods": [{
			"name": "Factorial",
			"isStatic": true,
			"params": [{"name": "n"}],
			"body": {"stmts": [
				{
					"type": "LocalFunctionStmt",
					"name": "fact",
					"params": [{"name": "k"}],
					"body": {"stmts": [{
						"type": "ReturnStmt",
						"value": {
							"type": "Invocation",
							"callee": {"type": "Ident", "name": "fact"},
							"args": [{"type": "Ident", "name": "k"}]
						}
					}]},
					"sym": {"name": "fact", "kind": "method"}
				},
				{
					"type": "ReturnStmt",
					"value": {
						"type": "Invocation",
						"callee": {"type": "Ident", "name": "fact"},
						"args": [{"type": "Ident", "name": "n"}]
					}
				}
			]},
			"sym": {"name": "Factorial", "kind": "method", "params": [{"name": "n"}]}
		}],
		"sym": {"name": "Math", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "local function fact(k)") {
		t.Errorf("a single local function must bind its own name via the native local-function form, got:\n%s", text)
	}
	if strings.Contains(text, "local fact = function") {
		t.Errorf("a single local function must not use the pre-declare-then-assign form, got:\n%s", text)
	}
}

func TestHoistedLocalFunctionsPredeclare(t *testing.T) {
	doc := `{"types": [{
		"name": "Mutual",
		"methods": [{
			"name": "Run",
			"isStatic": true,
			"body": {"stmts": [
				{
					"type": "LocalFunctionStmt",
					"name": "isEven",
					"params": [{"name": "k"}],
					"body": {"stmts": [{"type": "ReturnStmt"}]},
					"sym": {"name": "isEven", "kind": "method"}
				},
				{
					"type": "LocalFunctionStmt",
					"name": "isOdd",
					"params": [{"name": "k"}],
					"body": {"stmts": [{"type": "ReturnStmt"}]},
					"sym": {"name": "isOdd", "kind": "method"}
				}
			]},
			"sym": {"name": "Run", "kind": "method"}
		}],
		"sym": {"name": "Mutual", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "local isEven, isOdd") {
		t.Errorf("more than one local function in a list must be forward-declared together, got:\n%s", text)
	}
	if !strings.Contains(text, "isEven = function(k)") || !strings.Contains(text, "isOdd = function(k)") {
		t.Errorf("each hoisted local function should assign a function literal to its forward-declared name, got:\n%s", text)
	}
}

func TestYieldLowersToCoroutine(t *testing.T) {
	doc := `{"types": [{
		"name": "Fib",
		"methods": [{
			"name": "Sequence",
			"isStatic": true,
			"body": {"stmts": [
				{"type": "YieldReturnStmt", "value": {"type": "Literal", "kind": "number", "value": "1"}},
				{"type": "YieldBreakStmt"}
			]},
			"sym": {"name": "Sequence", "kind": "method"}
		}],
		"sym": {"name": "Fib", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "return coroutine.wrap(function()") {
		t.Errorf("an iterator method should lower to coroutine.wrap, got:\n%s", text)
	}
	if !strings.Contains(text, "coroutine.yield(1)") {
		t.Errorf("yield return should lower to coroutine.yield, got:\n%s", text)
	}
}

// A lambda body is never inspected for yield statements the way a
// method/local-function body is, so a yield reaching one still finds
// isIterator unset on its funcFrame and must be rejected.
func TestYieldOutsideIteratorIsRejected(t *testing.T) {
	doc := `{"types": [{
		"name": "Bad",
		"methods": [{
			"name": "NotAnIterator",
			"isStatic": true,
			"body": {"stmts": [{
				"type": "VarDeclStmt",
				"names": ["f"],
				"inits": [{
					"type": "Lambda",
					"params": [],
					"blockBody": {"stmts": [
						{"type": "YieldReturnStmt", "value": {"type": "Literal", "kind": "number", "value": "1"}}
					]},
					"sym": {"name": "f_lambda", "kind": "local"}
				}],
				"syms": [{"name": "f", "kind": "local"}]
			}]},
			"sym": {"name": "NotAnIterator", "kind": "method"}
		}],
		"sym": {"name": "Bad", "kind": "type"}
	}]}`
	cu, oracle, err := fixture.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("fixture.Decode: %v", err)
	}
	unit := transform.NewUnit(oracle, metadata.Empty())
	if _, err := unit.Compile(cu); err == nil {
		t.Fatalf("expected a yield inside a lambda body to be rejected")
	}
}

func TestPlainMethodCompilesWithoutError(t *testing.T) {
	doc := `{"types": [{
		"name": "Bad",
		"methods": [{
			"name": "NotAnIterator",
			"isStatic": true,
			"body": {"stmts": []},
			"sym": {"name": "NotAnIterator", "kind": "method"}
		}],
		"sym": {"name": "Bad", "kind": "type"}
	}]}`
	cu, oracle, err := fixture.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("fixture.Decode: %v", err)
	}
	unit := transform.NewUnit(oracle, metadata.Empty())
	if _, err := unit.Compile(cu); err != nil {
		t.Fatalf("unexpected error compiling a plain method: %v", err)
	}
}

func TestRefOutParameterEchoedAsTrailingReturn(t *testing.T) {
	doc := `{"types": [{
		"name": "Parser",
		"methods": [{
			"name": "TryParse",
			"isStatic": true,
			"params": [{"name": "text"}, {"name": "value", "out": true}],
			"body": {"stmts": [
				{"type": "ReturnStmt", "value": {"type": "Literal", "kind": "bool", "value": "true"}}
			]},
			"sym": {"name": "TryParse", "kind": "method", "params": [
				{"name": "text"}, {"name": "value", "out": true}
			]}
		}],
		"sym": {"name": "Parser", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "return true, value") {
		t.Errorf("a return inside a method with an out parameter should echo it as a trailing value, got:\n%s", text)
	}
}

func TestRefOutCallSiteCapturesMultiReturn(t *testing.T) {
	doc := `{"types": [{
		"name": "Caller",
		"methods": [{
			"name": "Use",
			"isStatic": true,
			"params": [{"name": "text"}, {"name": "result"}],
			"body": {"stmts": [{
				"type": "ExprStmt",
				"x": {
					"type": "Invocation",
					"callee": {"type": "Ident", "name": "TryParse"},
					"args": [{"type": "Ident", "name": "text"}, {"type": "Ident", "name": "result"}],
					"sym": {"name": "TryParse", "kind": "method", "params": [
						{"name": "text"}, {"name": "value", "out": true}
					]},
					"valueType": {"kind": "primitive", "name": "Boolean"}
				}
			}]},
			"sym": {"name": "Use", "kind": "method", "params": [{"name": "text"}, {"name": "result"}]}
		}],
		"sym": {"name": "Caller", "kind": "type"}
	}]}`

	text := compile(t, doc)
	if !strings.Contains(text, "local t0, t1 = TryParse(text, result)") {
		t.Errorf("an out-parameter call statement should capture every return value into temporaries, got:\n%s", text)
	}
	if !strings.Contains(text, "result = t1") {
		t.Errorf("the out argument should be assigned back from its captured temporary, got:\n%s", text)
	}
}

package render

import (
	"strings"
	"testing"

	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/token"
)

func mustRender(t *testing.T, doc *dstast.Document, cfg Config) string {
	t.Helper()
	text, err := Render(doc, cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return text
}

func TestRenderFunctionDeclReceiverForms(t *testing.T) {
	tests := []struct {
		name string
		fn   *dstast.FunctionDecl
		want string
	}{
		{"free function", &dstast.FunctionDecl{Name: "DoWork", Params: []string{"x"}}, "function DoWork(x)"},
		{"static method", &dstast.FunctionDecl{Name: "Create", Receiver: "Point", IsStatic: true, Params: []string{"x", "y"}}, "function Point.Create(x, y)"},
		{"instance method", &dstast.FunctionDecl{Name: "Move", Receiver: "Point", Params: []string{"dx"}}, "function Point:Move(dx)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &dstast.Document{Functions: []*dstast.FunctionDecl{tt.fn}}
			text := mustRender(t, doc, Config{})
			if !strings.Contains(text, tt.want) {
				t.Errorf("got:\n%s\nwant substring %q", text, tt.want)
			}
		})
	}
}

func TestRenderTryAdapterWithFinally(t *testing.T) {
	try := &dstast.TryAdapter{
		Body: []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.Identifier{Name: "Risky"}}}},
		Catches: []dstast.TryCatch{
			{Type: "IOException", Bind: "ex", Body: []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Identifier{Name: "ex"}}}}},
		},
		Finally: []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.Identifier{Name: "Cleanup"}}}},
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{try}}}}
	text := mustRender(t, doc, Config{})

	for _, want := range []string{
		"System.try(function()",
		"Risky()",
		"end, function(e)",
		"if System.is(e, IOException) then",
		"local ex = e",
		"end, function()",
		"Cleanup()",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in:\n%s", want, text)
		}
	}
}

func TestRenderTryAdapterWithoutFinally(t *testing.T) {
	try := &dstast.TryAdapter{
		Body:    []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.Identifier{Name: "Risky"}}}},
		Catches: nil,
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{try}}}}
	text := mustRender(t, doc, Config{})

	if !strings.Contains(text, "end, nil)") {
		t.Errorf("a try with no finally should pass nil as the third System.try argument, got:\n%s", text)
	}
	if !strings.Contains(text, "return true, e") {
		t.Errorf("an empty catch chain should rethrow unconditionally, got:\n%s", text)
	}
}

func TestRenderTryAdapterMultiCatchRethrowsWithoutCatchAll(t *testing.T) {
	try := &dstast.TryAdapter{
		Body: []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.Identifier{Name: "Risky"}}}},
		Catches: []dstast.TryCatch{
			{Type: "IOException", Body: []dstast.Stmt{&dstast.Return{}}},
			{Type: "FormatException", Body: []dstast.Stmt{&dstast.Return{}}},
		},
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{try}}}}
	text := mustRender(t, doc, Config{})

	if !strings.Contains(text, "if System.is(e, IOException) then") {
		t.Errorf("first catch should open the chain with if, got:\n%s", text)
	}
	if !strings.Contains(text, "elseif System.is(e, FormatException) then") {
		t.Errorf("second catch should chain with elseif, got:\n%s", text)
	}
	if !strings.Contains(text, "else\n") || !strings.Contains(text, "return true, e") {
		t.Errorf("no catch-all arm should still append an implicit rethrow, got:\n%s", text)
	}
}

func TestRenderTryAdapterPropagation(t *testing.T) {
	tests := []struct {
		name       string
		voidReturn bool
		want       string
	}{
		{"value-returning enclosing method", false, "local ok, v = System.try("},
		{"void enclosing method", true, "local ok = System.try("},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			try := &dstast.TryAdapter{
				Body:       []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Literal{Kind: dstast.LitBool, Value: "true"}, &dstast.Identifier{Name: "v"}}}},
				Propagate:  true,
				VoidReturn: tt.voidReturn,
			}
			doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{try}}}}
			text := mustRender(t, doc, Config{})
			if !strings.Contains(text, tt.want) {
				t.Errorf("got:\n%s\nwant substring %q", text, tt.want)
			}
			if !strings.Contains(text, "if ok then") {
				t.Errorf("propagating adapter should test ok at the call site, got:\n%s", text)
			}
		})
	}
}

func TestRenderUsingAdapterSingleResource(t *testing.T) {
	using := &dstast.UsingAdapter{
		Resources: []dstast.UsingResource{{Var: "f", Value: &dstast.Identifier{Name: "file"}}},
		Body:      []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: "f"}, Member: "Read", IsColonCall: true}}}},
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{using}}}}
	text := mustRender(t, doc, Config{})

	if !strings.Contains(text, "System.using(file, function(f)") {
		t.Errorf("single-resource using should lower to System.using, got:\n%s", text)
	}
}

func TestRenderUsingAdapterMultiResource(t *testing.T) {
	using := &dstast.UsingAdapter{
		Resources: []dstast.UsingResource{
			{Var: "a", Value: &dstast.Identifier{Name: "resA"}},
			{Var: "b", Value: &dstast.Identifier{Name: "resB"}},
		},
		Body: []dstast.Stmt{&dstast.Return{}},
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{using}}}}
	text := mustRender(t, doc, Config{})

	if !strings.Contains(text, "System.usingX(") {
		t.Errorf("multi-resource using should lower to System.usingX, got:\n%s", text)
	}
	if !strings.Contains(text, "a, b") {
		t.Errorf("multi-resource using should name every resource variable, got:\n%s", text)
	}
}

func TestRenderConstructorAdapterWithBaseCall(t *testing.T) {
	ctor := &dstast.ConstructorAdapter{
		InitializerCallee: &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: "Base"}, Member: "__ctor__", IsColonCall: true},
		InitializerArgs:   []dstast.Expr{&dstast.Identifier{Name: "self"}},
		Body:              []dstast.Stmt{&dstast.Assignment{Targets: []dstast.AssignTarget{{Plain: &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: "self"}, Member: "x"}}}, Values: []dstast.Expr{&dstast.Literal{Kind: dstast.LitNumber, Value: "0"}}}},
	}
	doc := &dstast.Document{Types: []*dstast.TypeDecl{{
		Name: "Point",
		Ctor: &dstast.FunctionDecl{Name: "__ctor__", Receiver: "Point", IsStatic: true, Params: []string{"self"}, Body: []dstast.Stmt{ctor}},
	}}}
	text := mustRender(t, doc, Config{})

	if !strings.Contains(text, "Base:__ctor__(self)") {
		t.Errorf("expected the base initializer call before the constructor body, got:\n%s", text)
	}
	if !strings.Contains(text, "self.x = 0") {
		t.Errorf("expected the constructor body after the initializer call, got:\n%s", text)
	}
	if !strings.Contains(text, "__call = function(cls, ...) local self = setmetatable({}, cls); cls.__ctor__(self, ...); return self end") {
		t.Errorf("a type with a single constructor should wire __call through setmetatable, got:\n%s", text)
	}
}

func TestRenderTypeDeclBaseIndexLink(t *testing.T) {
	doc := &dstast.Document{Types: []*dstast.TypeDecl{{Name: "Derived", BaseName: "Base"}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "setmetatable(Derived, { __index = Base })") {
		t.Errorf("a type with a base but no own constructor should still link __index, got:\n%s", text)
	}
}

func TestRenderTypeDeclInterfaceIsCommentOnly(t *testing.T) {
	doc := &dstast.Document{Types: []*dstast.TypeDecl{{Name: "Comparable", Kind: dstast.TypeKindInterface, Interfaces: []string{"Equatable"}}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "-- interface Comparable : Equatable") {
		t.Errorf("an interface should render as a traceability comment, not a runtime table, got:\n%s", text)
	}
	if strings.Contains(text, "local Comparable = {}") {
		t.Errorf("an interface should not allocate a prototype table, got:\n%s", text)
	}
}

func TestRenderTypeDeclEnumMembers(t *testing.T) {
	doc := &dstast.Document{Types: []*dstast.TypeDecl{{
		Name: "Color",
		Kind: dstast.TypeKindEnum,
		EnumMembers: []dstast.TypeField{
			{Name: "Red", Init: &dstast.Literal{Kind: dstast.LitNumber, Value: "0"}},
			{Name: "Green", Init: &dstast.Literal{Kind: dstast.LitNumber, Value: "1"}},
		},
	}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "Color.Red = 0") || !strings.Contains(text, "Color.Green = 1") {
		t.Errorf("expected every enum member assigned onto the frozen value table, got:\n%s", text)
	}
}

func TestRenderTypeDeclConstructorOverflow(t *testing.T) {
	doc := &dstast.Document{Types: []*dstast.TypeDecl{{
		Name: "Point",
		CtorOverflow: []dstast.Stmt{&dstast.Assignment{
			Targets: []dstast.AssignTarget{{Plain: &dstast.MemberAccess{Receiver: &dstast.Identifier{Name: "Point"}, Member: "__ctor__"}}},
			Values: []dstast.Expr{&dstast.TableInit{Fields: []dstast.TableField{
				{Kind: dstast.FieldPositional, Value: &dstast.FunctionLiteral{Params: []string{"self"}}},
				{Kind: dstast.FieldPositional, Value: &dstast.FunctionLiteral{Params: []string{"self", "x", "y"}}},
			}}},
		}},
	}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "Point.__ctor__ = {") {
		t.Errorf("an overflowing constructor set should assign a table of overloads, got:\n%s", text)
	}
	if strings.Contains(text, "function Point.__ctor__(") {
		t.Errorf("an overflowing constructor set should not also emit a bare function, got:\n%s", text)
	}
}

func TestRenderLocalFunctionStmt(t *testing.T) {
	lf := &dstast.LocalFunctionStmt{Name: "fact", Params: []string{"n"}, Body: []dstast.Stmt{&dstast.Return{Values: []dstast.Expr{&dstast.Identifier{Name: "n"}}}}}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{lf}}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "local function fact(n)") {
		t.Errorf("expected native local function syntax, got:\n%s", text)
	}
}

func TestRenderGenericForWithContinueLabel(t *testing.T) {
	loop := &dstast.GenericFor{
		Vars:     []string{"_", "item"},
		Iterator: &dstast.Invocation{Callee: &dstast.Identifier{Name: "System.each"}, Args: []dstast.Expr{&dstast.Identifier{Name: "items"}}},
		Body: []dstast.Stmt{
			&dstast.ContinueAdapter{ContinueLabel: "continue_1"},
			&dstast.Labeled{Label: "continue_1"},
		},
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{loop}}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "for _, item in System.each(items) do") {
		t.Errorf("expected a generic for over System.each, got:\n%s", text)
	}
	if !strings.Contains(text, "goto continue_1") || !strings.Contains(text, "::continue_1::") {
		t.Errorf("expected the continue adapter to jump to its labeled continuation point, got:\n%s", text)
	}
}

func TestRenderNumericForImplicitStep(t *testing.T) {
	loop := &dstast.NumericFor{Var: "i", Start: &dstast.Literal{Kind: dstast.LitNumber, Value: "0"}, Stop: &dstast.Literal{Kind: dstast.LitNumber, Value: "9"}}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{loop}}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "for i = 0, 9 do") {
		t.Errorf("a NumericFor with a nil step should omit the step argument, got:\n%s", text)
	}
}

func TestRenderGotoCaseAdapter(t *testing.T) {
	stmt := &dstast.GotoCaseAdapter{TargetLabel: "case_2"}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Run", Body: []dstast.Stmt{stmt}}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "goto case_2") {
		t.Errorf("expected a goto to the target case label, got:\n%s", text)
	}
}

func TestRenderMultiTargetAssignment(t *testing.T) {
	assign := &dstast.Assignment{
		Targets: []dstast.AssignTarget{{Plain: &dstast.Identifier{Name: "a"}}, {Plain: &dstast.Identifier{Name: "b"}}},
		Values:  []dstast.Expr{&dstast.Identifier{Name: "b"}, &dstast.Identifier{Name: "a"}},
	}
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{Name: "Swap", Body: []dstast.Stmt{assign}}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "a, b = b, a") {
		t.Errorf("expected a single multi-target swap assignment, got:\n%s", text)
	}
}

func TestRenderArrayTypeAdapterRank(t *testing.T) {
	tests := []struct {
		name string
		n    *dstast.ArrayTypeAdapter
		want string
	}{
		{"rank 1", &dstast.ArrayTypeAdapter{ElemTypeExpr: &dstast.Identifier{Name: "Int32"}, Rank: 1}, "System.Array(Int32)"},
		{"rank 2", &dstast.ArrayTypeAdapter{ElemTypeExpr: &dstast.Identifier{Name: "Int32"}, Rank: 2}, "System.MultiArray(Int32, 2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := RenderExpr(tt.n, Config{})
			if err != nil {
				t.Fatalf("RenderExpr: %v", err)
			}
			if text != tt.want {
				t.Errorf("got %q, want %q", text, tt.want)
			}
		})
	}
}

func TestRenderClassicDialectHelperOps(t *testing.T) {
	tests := []struct {
		op   token.Op
		want string
	}{
		{token.OpIDiv, "System.Ops.IDiv(a, b)"},
		{token.OpBAnd, "System.Ops.BAnd(a, b)"},
		{token.OpBOr, "System.Ops.BOr(a, b)"},
		{token.OpBXor, "System.Ops.BXor(a, b)"},
		{token.OpShl, "System.Ops.Shl(a, b)"},
		{token.OpShr, "System.Ops.Shr(a, b)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			bin := &dstast.Binary{Op: tt.op, Left: &dstast.Identifier{Name: "a"}, Right: &dstast.Identifier{Name: "b"}}
			text, err := RenderExpr(bin, Config{Dialect: DialectClassic})
			if err != nil {
				t.Fatalf("RenderExpr: %v", err)
			}
			if text != tt.want {
				t.Errorf("got %q, want %q", text, tt.want)
			}
		})
	}
}

func TestRenderModernDialectUsesNativeOperators(t *testing.T) {
	bin := &dstast.Binary{Op: token.OpIDiv, Left: &dstast.Identifier{Name: "a"}, Right: &dstast.Identifier{Name: "b"}}
	text, err := RenderExpr(bin, Config{Dialect: DialectModern})
	if err != nil {
		t.Fatalf("RenderExpr: %v", err)
	}
	if text != "a // b" {
		t.Errorf("modern dialect should use the native integer-division operator, got %q", text)
	}
}

func TestRenderBinaryParenthesizesFunctionLiteralOperand(t *testing.T) {
	bin := &dstast.Binary{
		Op:    token.OpEq,
		Left:  &dstast.FunctionLiteral{Body: []dstast.Stmt{&dstast.Return{}}},
		Right: &dstast.Identifier{Name: "nil"},
	}
	text, err := RenderExpr(bin, Config{})
	if err != nil {
		t.Fatalf("RenderExpr: %v", err)
	}
	if !strings.HasPrefix(text, "(function(") {
		t.Errorf("a function literal operand should be parenthesized to keep the binary operator outside its body, got %q", text)
	}
}

func TestRenderSemicolonsConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"disabled by default", Config{}, false},
		{"enabled explicitly", Config{Semicolons: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{
				Name: "Run",
				Body: []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.Identifier{Name: "DoWork"}}}},
			}}}
			text := mustRender(t, doc, tt.cfg)
			got := strings.Contains(text, "DoWork();")
			if got != tt.want {
				t.Errorf("DoWork(); present = %v, want %v, text:\n%s", got, tt.want, text)
			}
		})
	}
}

func TestRenderIndentWidthDefaultsToTwo(t *testing.T) {
	doc := &dstast.Document{Functions: []*dstast.FunctionDecl{{
		Name: "Run",
		Body: []dstast.Stmt{&dstast.ExprStmt{X: &dstast.Invocation{Callee: &dstast.Identifier{Name: "DoWork"}}}},
	}}}
	text := mustRender(t, doc, Config{})
	if !strings.Contains(text, "\n  DoWork()") {
		t.Errorf("expected a two-space indent by default, got:\n%s", text)
	}
}

func TestRenderUnsupportedNodeReturnsError(t *testing.T) {
	doc := &dstast.Document{TopLevel: []dstast.Stmt{&unsupportedStmt{}}}
	if _, err := Render(doc, Config{}); err == nil {
		t.Fatalf("expected an error for a node the renderer has no case for")
	}
}

type unsupportedStmt struct{ dstast.BaseStmt }

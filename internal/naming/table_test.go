package naming

import (
	"testing"

	"github.com/kolkov/lunac/internal/srcast"
)

func TestAssignPlainName(t *testing.T) {
	tab := NewRoot()
	sym := &srcast.Symbol{Name: "DoWork", Kind: srcast.SymMethod}

	got := tab.Assign(sym)
	if got != "DoWork" {
		t.Errorf("got %q, want %q", got, "DoWork")
	}
}

func TestAssignReservedWord(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"end", "end_"},
		{"function", "function_"},
		{"System", "System_"},
		{"__index", "__index_"},
		{"__ctor__", "__ctor___"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := NewRoot()
			sym := &srcast.Symbol{Name: tt.name, Kind: srcast.SymField}
			got := tab.Assign(sym)
			if got != tt.want {
				t.Errorf("Assign(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestAssignSiblingCollisionSequence(t *testing.T) {
	tab := NewRoot()

	a := &srcast.Symbol{Name: "x", Kind: srcast.SymLocal}
	b := &srcast.Symbol{Name: "x", Kind: srcast.SymLocal}
	c := &srcast.Symbol{Name: "x", Kind: srcast.SymLocal}
	d := &srcast.Symbol{Name: "x", Kind: srcast.SymLocal}

	names := []string{tab.Assign(a), tab.Assign(b), tab.Assign(c), tab.Assign(d)}
	want := []string{"x", "x_", "_x", "x1"}
	for i := range names {
		if names[i] != want[i] {
			t.Errorf("assignment %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestAssignIsScopedNotGlobal(t *testing.T) {
	root := NewRoot()
	scopeA := root.NewScope()
	scopeB := root.NewScope()

	symA := &srcast.Symbol{Name: "value", Kind: srcast.SymLocal}
	symB := &srcast.Symbol{Name: "value", Kind: srcast.SymLocal}

	gotA := scopeA.Assign(symA)
	gotB := scopeB.Assign(symB)

	if gotA != "value" || gotB != "value" {
		t.Errorf("sibling scopes should not collide: got %q and %q", gotA, gotB)
	}
}

func TestAssignTwiceForSameSymbolPanics(t *testing.T) {
	tab := NewRoot()
	sym := &srcast.Symbol{Name: "once", Kind: srcast.SymField}
	tab.Assign(sym)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic on the second Assign for the same symbol")
		}
	}()
	tab.Assign(sym)
}

func TestGetFindsNameAssignedInAncestorScope(t *testing.T) {
	root := NewRoot()
	child := root.NewScope()

	sym := &srcast.Symbol{Name: "shared", Kind: srcast.SymField}
	root.Assign(sym)

	got, ok := child.Get(sym)
	if !ok || got != "shared" {
		t.Errorf("Get from child scope = (%q, %v), want (%q, true)", got, ok, "shared")
	}
}

func TestGetUnassignedSymbolReportsNotOK(t *testing.T) {
	tab := NewRoot()
	sym := &srcast.Symbol{Name: "never", Kind: srcast.SymField}

	if _, ok := tab.Get(sym); ok {
		t.Error("Get on an unassigned symbol should report ok == false")
	}
}

func TestEncodeNonASCIIIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"ascii passthrough", "plainName"},
		{"leading digit guarded", "2fast"},
		{"non-ascii escaped", "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := encodeNonASCII(tt.in)
			if !asciiIdent.MatchString(got) {
				t.Errorf("encodeNonASCII(%q) = %q, not a plain ASCII identifier", tt.in, got)
			}
			if got[0] >= '0' && got[0] <= '9' {
				t.Errorf("encodeNonASCII(%q) = %q starts with a digit", tt.in, got)
			}
		})
	}
}

func TestAssignGenericTypeArity(t *testing.T) {
	tab := NewRoot()
	sym := &srcast.Symbol{
		Name:     "Box",
		Kind:     srcast.SymType,
		TypeArgs: []*srcast.TypeRef{{Kind: srcast.TypeParam, Name: "T"}},
	}

	got := tab.Assign(sym)
	if got != "Box_1" {
		t.Errorf("got %q, want %q", got, "Box_1")
	}
}

func TestAssignNestedTypeQualification(t *testing.T) {
	tab := NewRoot()
	outer := &srcast.Symbol{Name: "Outer", Kind: srcast.SymType}
	inner := &srcast.Symbol{
		Name:           "Inner",
		Kind:           srcast.SymType,
		ContainingType: &srcast.TypeRef{Kind: srcast.TypeClass, Name: "Outer"},
	}

	if got := tab.Assign(outer); got != "Outer" {
		t.Fatalf("outer: got %q, want %q", got, "Outer")
	}
	if got := tab.Assign(inner); got != "Outer.Inner" {
		t.Errorf("inner: got %q, want %q", got, "Outer.Inner")
	}
}

func TestResolveTypeName(t *testing.T) {
	tab := NewRoot()
	sym := &srcast.Symbol{Name: "Widget", Kind: srcast.SymType}
	tab.Assign(sym)

	child := tab.NewScope()
	got, ok := child.ResolveTypeName("Widget")
	if !ok || got != "Widget" {
		t.Errorf("ResolveTypeName(%q) = (%q, %v), want (%q, true)", "Widget", got, ok, "Widget")
	}

	if _, ok := tab.ResolveTypeName("Nope"); ok {
		t.Error("ResolveTypeName on an unassigned type should report ok == false")
	}
}

func TestAssignNestedTypeQualificationFallsBackToSourceName(t *testing.T) {
	tab := NewRoot()
	inner := &srcast.Symbol{
		Name:           "Inner",
		Kind:           srcast.SymType,
		ContainingType: &srcast.TypeRef{Kind: srcast.TypeClass, Name: "Outer"},
	}

	got := tab.Assign(inner)
	if got != "Outer.Inner" {
		t.Errorf("got %q, want %q", got, "Outer.Inner")
	}
}

package metadata

import (
	"strings"
	"testing"

	"github.com/kolkov/lunac/internal/srcast"
)

func TestLoadAndTemplateFor(t *testing.T) {
	xmlDoc := `<templates>
  <method sig="System.String.Format(System.String,System.Object[])">
    <template>({0}):format({*})</template>
  </method>
</templates>`

	o, err := Load(strings.NewReader(xmlDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sym := &srcast.Symbol{
		Name:           "Format",
		Kind:           srcast.SymMethod,
		ContainingType: &srcast.TypeRef{Namespace: "System", Name: "String"},
		Params: []srcast.ParamInfo{
			{Type: &srcast.TypeRef{Namespace: "System", Name: "String"}},
			{Type: &srcast.TypeRef{Namespace: "System", Name: "Object[]"}},
		},
	}

	got, ok := o.TemplateFor(sym)
	if !ok {
		t.Fatal("TemplateFor: not found")
	}
	if got != "({0}):format({*})" {
		t.Errorf("got %q", got)
	}
}

func TestTemplateForMiss(t *testing.T) {
	o := Empty()
	sym := &srcast.Symbol{Name: "Whatever", Kind: srcast.SymMethod}
	if _, ok := o.TemplateFor(sym); ok {
		t.Error("expected no template in an empty oracle")
	}
}

func TestScanDocComment(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantIgnore  bool
		wantNoField bool
		wantText    string
	}{
		{
			name:     "plain comment",
			raw:      "Returns the current count.",
			wantText: "Returns the current count.",
		},
		{
			name:       "ignore tag stripped",
			raw:        "Internal helper.\n@CSharpLua.Ignore",
			wantIgnore: true,
			wantText:   "Internal helper.",
		},
		{
			name:        "nofield tag stripped",
			raw:         "@CSharpLua.NoField\nAlways backed by accessors.",
			wantNoField: true,
			wantText:    "Always backed by accessors.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanDocComment(tt.raw)
			if got.Ignore != tt.wantIgnore {
				t.Errorf("Ignore = %v, want %v", got.Ignore, tt.wantIgnore)
			}
			if got.NoField != tt.wantNoField {
				t.Errorf("NoField = %v, want %v", got.NoField, tt.wantNoField)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	sym := &srcast.Symbol{
		Name:           "Add",
		ContainingType: &srcast.TypeRef{Namespace: "System.Collections", Name: "List"},
		Params: []srcast.ParamInfo{
			{Type: &srcast.TypeRef{Name: "Int32"}},
		},
	}
	got := Signature(sym)
	want := "System.Collections.List.Add(Int32)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

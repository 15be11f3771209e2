package template

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		args Args
		want string
	}{
		{
			name: "no placeholders",
			tmpl: "System.Object.Equals",
			args: Args{},
			want: "System.Object.Equals",
		},
		{
			name: "this and positional",
			tmpl: "{this}:Equals({0})",
			args: Args{This: "a", HasThis: true, Positional: []string{"b"}},
			want: "a:Equals(b)",
		},
		{
			name: "star expansion",
			tmpl: "System.String.Format({0}, {*})",
			args: Args{Positional: []string{`"{0}"`}, Star: []string{"x", "y", "z"}},
			want: `System.String.Format("{0}", x, y, z)`,
		},
		{
			name: "star expansion empty",
			tmpl: "f({*})",
			args: Args{},
			want: "f()",
		},
		{
			name: "type argument",
			tmpl: "System.default({T0})",
			args: Args{TypeArgs: []string{"Number"}},
			want: "System.default(Number)",
		},
		{
			name: "unused argument slot is not an error",
			tmpl: "{0}",
			args: Args{Positional: []string{"a", "b", "c"}},
			want: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.tmpl, tt.args)
			if err != nil {
				t.Fatalf("Expand(%q) returned error: %v", tt.tmpl, err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestExpandArityMismatch(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		args Args
	}{
		{"positional out of range", "{1}", Args{Positional: []string{"a"}}},
		{"this with no receiver", "{this}", Args{}},
		{"type arg out of range", "{T1}", Args{TypeArgs: []string{"a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.tmpl, tt.args)
			if err == nil {
				t.Fatalf("Expand(%q) did not return an error", tt.tmpl)
			}
			if _, ok := err.(*Error); !ok {
				t.Errorf("Expand(%q) returned %T, want *Error", tt.tmpl, err)
			}
		})
	}
}

func TestExpandMalformedIndexIsUnreachableThroughPattern(t *testing.T) {
	// The placeholder pattern itself only matches well-formed indices, so
	// a malformed one never reaches substitute; this just documents that
	// text outside {…} form is passed through untouched.
	got, err := Expand("cost: {0} and {nonsense}", Args{Positional: []string{"5"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cost: 5 and {nonsense}" {
		t.Errorf("got %q", got)
	}
}

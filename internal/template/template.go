// Package template implements the code-template substitution language the
// declaration and expression transformers use to honor a method's XML
// override template instead of generating a call from scratch. A
// template is ordinary L-dst source text with placeholders scattered
// through it; Expand scans for those placeholders the way the front
// end's own lexer scans source text — a byte cursor walking forward,
// recognizing one construct at a time — except here the alphabet of
// "tokens" is just the fixed set of placeholder spellings.
package template

import (
	"fmt"
	"strings"

	"github.com/coregx/coregex"
)

// placeholderPattern matches one `{...}` placeholder: {this}, {*}, a
// bare non-negative integer, or a type-parameter reference T0, T1, ….
var placeholderPattern = mustCompile(`\{(this|\*|[0-9]+|T[0-9]+)\}`)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("template: invalid placeholder pattern %q: %v", pattern, err))
	}
	return re
}

// Args supplies the substitution values for one Expand call. HasThis
// distinguishes "the receiver expression is the empty string" (valid,
// e.g. a discarded result) from "there is no receiver at all" (a static
// call, where a template referencing {this} is an arity mismatch).
type Args struct {
	This    string
	HasThis bool

	// Star is the overflow argument list {*} expands to, rendered as a
	// comma-separated list — the template author's way of forwarding
	// "every remaining argument" without naming each one.
	Star []string

	// Positional holds {0}, {1}, … substitutions, one per method argument.
	Positional []string

	// TypeArgs holds {T0}, {T1}, … substitutions, one per type argument.
	TypeArgs []string
}

// Error reports a malformed placeholder or an arity mismatch between a
// template and the Args it was expanded against. The declaration and
// expression transformers attach the offending method's position before
// re-raising this as a *transform.CompilationError.
type Error struct {
	Template string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("template %q: %s", e.Template, e.Message)
}

// Expand substitutes every placeholder in tmpl using args and returns the
// resulting text. A placeholder referencing an argument slot Args does
// not have is an arity mismatch and returns a *Error; an argument slot
// the template never references is simply never read — there is
// nothing to drop but the placeholder occurrences themselves, and only
// those actually present in tmpl are ever touched.
func Expand(tmpl string, args Args) (string, error) {
	spans := placeholderPattern.FindAllStringIndex(tmpl, -1)
	if len(spans) == 0 {
		return tmpl, nil
	}

	var out strings.Builder
	cursor := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		out.WriteString(tmpl[cursor:start])

		inner := tmpl[start+1 : end-1] // strip the surrounding { }
		repl, err := substitute(inner, args)
		if err != nil {
			return "", &Error{Template: tmpl, Message: err.Error()}
		}
		out.WriteString(repl)
		cursor = end
	}
	out.WriteString(tmpl[cursor:])
	return out.String(), nil
}

func substitute(inner string, args Args) (string, error) {
	switch {
	case inner == "this":
		if !args.HasThis {
			return "", fmt.Errorf("{this} used with no receiver argument supplied")
		}
		return args.This, nil

	case inner == "*":
		return strings.Join(args.Star, ", "), nil

	case inner[0] == 'T':
		n, err := parseIndex(inner[1:])
		if err != nil {
			return "", err
		}
		if n >= len(args.TypeArgs) {
			return "", fmt.Errorf("{T%d} exceeds the %d type argument(s) supplied", n, len(args.TypeArgs))
		}
		return args.TypeArgs[n], nil

	default:
		n, err := parseIndex(inner)
		if err != nil {
			return "", err
		}
		if n >= len(args.Positional) {
			return "", fmt.Errorf("{%d} exceeds the %d argument(s) supplied", n, len(args.Positional))
		}
		return args.Positional[n], nil
	}
}

func parseIndex(digits string) (int, error) {
	n := 0
	if digits == "" {
		return 0, fmt.Errorf("empty placeholder index")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("malformed placeholder index %q", digits)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

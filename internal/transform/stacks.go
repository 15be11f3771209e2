package transform

import (
	"strconv"

	"github.com/kolkov/lunac/internal/dstast"
	"github.com/kolkov/lunac/internal/metadata"
	"github.com/kolkov/lunac/internal/naming"
	"github.com/kolkov/lunac/internal/srcast"
)

// funcFrame tracks the method or constructor currently being lowered.
// voidReturn decides whether a try/using call-site propagation wrapper
// needs to forward a value (spec.md §4.E's `local ok, v = ...; if ok
// then return v end` versus the `v`-less void form). refOutParams holds
// the method-info stack's ref/out parameter list: the emitted name of
// every ref/out parameter, in declaration order, that transformReturn
// must echo back as trailing return values since the target language
// has no pass-by-reference parameter of its own. isIterator marks a
// method body containing yield return/break, which lowerFunctionLike
// wraps in coroutine.wrap rather than emitting directly.
type funcFrame struct {
	sym          *srcast.Symbol
	voidReturn   bool
	refOutParams []string
	isIterator   bool
	tempCount    int // conditional-access temporary counter, scoped per function
}

// blockFrame tracks the nearest enclosing loop or switch, giving
// continue/goto-case lowering a label to jump to without needing to
// walk back up the srcast tree to find it.
type blockFrame struct {
	// continueLabel is set while lowering a loop body; ContinueAdapter
	// reads it to target the loop's synthesized continuation label.
	continueLabel string
	// caseLabels/defaultLabel are set while lowering a switch statement's
	// sections; GotoCaseAdapter reads the matching entry to target a
	// section's flat label. breakLabel is the switch's exit label — a
	// bare `break` inside a switch cannot use the target language's
	// native break (the switch is not a loop), so it goes through this
	// label instead.
	caseLabels   map[string]string
	defaultLabel string
	breakLabel   string
}

// Unit owns the whole single-pass walk for one compilation unit. It is
// not safe for concurrent use — one *Unit belongs to exactly one
// goroutine for its entire lifetime, per spec.md §5 — but cmd/lunac may
// run several Units concurrently, one per file, with a worker pool.
type Unit struct {
	oracle    srcast.Oracle
	templates metadata.TemplateOracle
	names     *naming.Table

	funcStack  []*funcFrame
	blockStack []*blockFrame
	namesStack []*naming.Table

	labelCount int

	// topLevel accumulates statements that belong at module scope rather
	// than inside any type — static-constructor bodies, run in source
	// declaration order exactly like spec.md §5's "module init order."
	topLevel []dstast.Stmt

	// exportedEnums records, by qualified source name, every enum a
	// typeof expression has referenced so far. It only ever grows during
	// a walk — spec.md §5's "export-required enums accumulated
	// monotonically" — and exists purely to keep markEnumExported from
	// emitting the same side declaration twice.
	exportedEnums map[string]bool
}

func (u *Unit) emitTopLevel(stmts []dstast.Stmt) {
	u.topLevel = append(u.topLevel, stmts...)
}

// markEnumExported records t as export-required and, the first time it
// is seen, emits the side declaration spec.md §4.D requires typeof to
// leave behind for an enum: a `__export__` flag on its prototype table,
// following the same per-type dunder-field convention as __ctor__,
// __name__, and __kind__.
func (u *Unit) markEnumExported(t *srcast.TypeRef) {
	key := t.Namespace + "." + t.Name
	if u.exportedEnums == nil {
		u.exportedEnums = make(map[string]bool)
	}
	if u.exportedEnums[key] {
		return
	}
	u.exportedEnums[key] = true

	name := t.Name
	if resolved, ok := u.currentNames().ResolveTypeName(t.Name); ok {
		name = resolved
	}
	u.emitTopLevel([]dstast.Stmt{&dstast.Assignment{
		Targets: []dstast.AssignTarget{{Kind: dstast.TargetPlain, Plain: &dstast.MemberAccess{
			Receiver: &dstast.Identifier{Name: name}, Member: "__export__",
		}}},
		Values: []dstast.Expr{&dstast.Literal{Kind: dstast.LitBool, Value: "true"}},
	}})
}

// nextLabel synthesizes a document-unique goto target for a loop's
// continuation point or a switch section's fallthrough entry. Labels
// live in a flat per-unit namespace rather than per-function, since
// L-dst label scope is the enclosing function body and a single
// incrementing counter is simplest way to guarantee no two synthesized
// labels in the same unit ever collide, nested or not.
func (u *Unit) nextLabel(prefix string) string {
	u.labelCount++
	return prefix + strconv.Itoa(u.labelCount)
}

func (u *Unit) pushFunc(f *funcFrame) {
	u.funcStack = append(u.funcStack, f)
}

func (u *Unit) popFunc() {
	u.funcStack = u.funcStack[:len(u.funcStack)-1]
}

func (u *Unit) currentFunc() *funcFrame {
	if len(u.funcStack) == 0 {
		return nil
	}
	return u.funcStack[len(u.funcStack)-1]
}

func (u *Unit) pushBlock(b *blockFrame) {
	u.blockStack = append(u.blockStack, b)
}

func (u *Unit) popBlock() {
	u.blockStack = u.blockStack[:len(u.blockStack)-1]
}

// enclosingLoopLabel walks the block stack from the top down to find the
// nearest loop's continuation label, skipping any switch frames a
// continue statement needs to pass through on its way out.
func (u *Unit) enclosingLoopLabel() string {
	for i := len(u.blockStack) - 1; i >= 0; i-- {
		if u.blockStack[i].continueLabel != "" {
			return u.blockStack[i].continueLabel
		}
	}
	return ""
}

// topBlock returns the innermost enclosing loop or switch, the construct
// a bare `break` always targets regardless of which kind it is.
func (u *Unit) topBlock() *blockFrame {
	if len(u.blockStack) == 0 {
		return nil
	}
	return u.blockStack[len(u.blockStack)-1]
}

func (u *Unit) enclosingSwitch() *blockFrame {
	for i := len(u.blockStack) - 1; i >= 0; i-- {
		if u.blockStack[i].caseLabels != nil {
			return u.blockStack[i]
		}
	}
	return nil
}

func (u *Unit) pushNameScope() {
	parent := u.names
	if len(u.namesStack) > 0 {
		parent = u.namesStack[len(u.namesStack)-1]
	}
	u.namesStack = append(u.namesStack, parent.NewScope())
}

func (u *Unit) popNameScope() {
	u.namesStack = u.namesStack[:len(u.namesStack)-1]
}

func (u *Unit) currentNames() *naming.Table {
	if len(u.namesStack) == 0 {
		return u.names
	}
	return u.namesStack[len(u.namesStack)-1]
}

// nextCondTemp returns the next `t0`, `t1`, … temporary name for a
// conditional-access chain inside the current function, implementing
// the conditional-temp stack as a per-function counter: nested chains
// at different syntactic positions never run concurrently within one
// function body, so reusing the counter space (rather than threading a
// true stack of live names) is sufficient and keeps every generated name
// traceable to "the Nth conditional chain in this function."
func (u *Unit) nextCondTemp() string {
	f := u.currentFunc()
	n := f.tempCount
	f.tempCount++
	return tempName(n)
}

func tempName(n int) string {
	// t0, t1, t2, ... — never collides with a user identifier because
	// the naming service only ever hands out user symbols, and this
	// counter is consulted directly by the renderer-facing expr builders,
	// bypassing Table.Assign entirely.
	return "t" + strconv.Itoa(n)
}

package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/kolkov/lunac/internal/srcast"
	"github.com/kolkov/lunac/internal/token"
)

// obj is one decoded JSON object, kept as raw per-field messages so each
// field can be decoded on demand into whatever concrete shape its key
// calls for (a single Expr, a list of Stmt, a TypeRef, ...).
type obj map[string]json.RawMessage

// decoder carries the state shared across one compilation unit's decode
// pass: the symbol-interning registry and the three oracle side tables
// that answer TypeOf/ConvertedTypeOf/ConstantValueOf for an already-
// decoded expression.
type decoder struct {
	symbols map[string]*srcast.Symbol

	typeOf      map[srcast.Expr]*srcast.TypeRef
	convertedOf map[srcast.Expr]*srcast.TypeRef
	constantOf  map[srcast.Expr]srcast.ConstantValue
}

func newDecoder() *decoder {
	return &decoder{
		symbols:     make(map[string]*srcast.Symbol),
		typeOf:      make(map[srcast.Expr]*srcast.TypeRef),
		convertedOf: make(map[srcast.Expr]*srcast.TypeRef),
		constantOf:  make(map[srcast.Expr]srcast.ConstantValue),
	}
}

func toObj(raw json.RawMessage) (obj, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var o obj
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return o, nil
}

func (o obj) has(key string) bool {
	_, ok := o[key]
	return ok && string(o[key]) != "null"
}

func (o obj) str(key string) string {
	if !o.has(key) {
		return ""
	}
	var s string
	_ = json.Unmarshal(o[key], &s)
	return s
}

func (o obj) boolean(key string) bool {
	if !o.has(key) {
		return false
	}
	var b bool
	_ = json.Unmarshal(o[key], &b)
	return b
}

func (o obj) integer(key string) int {
	if !o.has(key) {
		return 0
	}
	var n int
	_ = json.Unmarshal(o[key], &n)
	return n
}

func (o obj) strList(key string) []string {
	if !o.has(key) {
		return nil
	}
	var ss []string
	_ = json.Unmarshal(o[key], &ss)
	return ss
}

// pos decodes the "pos"/"end" position pair every node wire object may
// carry; a fixture that leaves both out gets the zero Position, which
// is fine everywhere but the one or two diagnostics that print it.
func (o obj) pos(key string) token.Position {
	if !o.has(key) {
		return token.NoPos
	}
	var p token.Position
	_ = json.Unmarshal(o[key], &p)
	return p
}


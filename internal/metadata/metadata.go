// Package metadata implements the two boundary inputs the transformer
// consults alongside the semantic-input oracle: an XML file of per-method
// code-template overrides, and the doc-comment attribute convention
// (`@CSharpLua.Ignore`, `@CSharpLua.NoField`) a member's documentation
// may carry. Both are read-only lookups; nothing in this package
// mutates an AST or decides how a template's placeholders get filled —
// that is internal/template's and internal/transform's job.
package metadata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kolkov/lunac/internal/srcast"
)

// TemplateOracle is the read-only contract the declaration and
// expression transformers use to ask "does this method have an override
// template?" without caring where the answer came from — an *Oracle
// backed by an XML file in production, a hand-built map in tests.
type TemplateOracle interface {
	TemplateFor(sym *srcast.Symbol) (string, bool)
}

// xmlFile is the on-disk shape of an override file: one <method> entry
// per overridden signature.
type xmlFile struct {
	XMLName xml.Name    `xml:"templates"`
	Methods []xmlMethod `xml:"method"`
}

type xmlMethod struct {
	Sig      string `xml:"sig,attr"`
	Template string `xml:"template"`
}

// Oracle is a TemplateOracle loaded from an XML override file, keyed by
// the same canonical signature Signature produces for a call-site
// symbol, so a lookup never depends on overload order or parameter
// names — only on the parameter types the front end resolved.
type Oracle struct {
	templates map[string]string
}

// Empty returns an Oracle with no overrides — every TemplateFor call
// reports ok == false. Used where no metadata file was supplied.
func Empty() *Oracle {
	return &Oracle{templates: map[string]string{}}
}

// Load reads an override file from r.
func Load(r io.Reader) (*Oracle, error) {
	var doc xmlFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	o := &Oracle{templates: make(map[string]string, len(doc.Methods))}
	for _, m := range doc.Methods {
		o.templates[m.Sig] = strings.TrimSpace(m.Template)
	}
	return o, nil
}

// LoadFile reads an override file from disk.
func LoadFile(path string) (*Oracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// TemplateFor reports the override template registered for sym's
// signature, if any.
func (o *Oracle) TemplateFor(sym *srcast.Symbol) (string, bool) {
	t, ok := o.templates[Signature(sym)]
	return t, ok
}

// Signature builds the canonical "Namespace.Type.Method(ArgType,...)"
// key an override file's sig attribute must match. It depends only on
// resolved parameter types, which is what makes the lookup stable
// across overload sets: the front end has already frozen which overload
// a call site selects before the transformer ever asks this question.
func Signature(sym *srcast.Symbol) string {
	var owner string
	if sym.ContainingType != nil {
		owner = qualifiedTypeName(sym.ContainingType)
	}
	argTypes := make([]string, len(sym.Params))
	for i, p := range sym.Params {
		argTypes[i] = qualifiedTypeName(p.Type)
	}
	return fmt.Sprintf("%s.%s(%s)", owner, sym.Name, strings.Join(argTypes, ","))
}

func qualifiedTypeName(t *srcast.TypeRef) string {
	if t == nil {
		return ""
	}
	if t.Namespace != "" {
		return t.Namespace + "." + t.Name
	}
	return t.Name
}

// Attributes is the result of scanning a doc comment for the two
// recognized tag lines.
type Attributes struct {
	// Ignore marks a member the declaration transformer must skip
	// entirely — it contributes no output at all.
	Ignore bool
	// NoField marks a property that must lower to a get_X/set_X method
	// pair even though it would otherwise qualify as field-like.
	NoField bool
	// Text is raw with every recognized tag line removed, ready to carry
	// over as a rendered comment without leaking the tag itself.
	Text string
}

const (
	tagIgnore  = "@CSharpLua.Ignore"
	tagNoField = "@CSharpLua.NoField"
)

// ScanDocComment extracts Attributes from a doc comment's raw text.
func ScanDocComment(raw string) Attributes {
	var attrs Attributes
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case tagIgnore:
			attrs.Ignore = true
		case tagNoField:
			attrs.NoField = true
		default:
			kept = append(kept, line)
		}
	}
	attrs.Text = strings.Join(kept, "\n")
	return attrs
}

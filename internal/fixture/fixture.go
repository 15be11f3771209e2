package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kolkov/lunac/internal/srcast"
)

// Oracle answers the four srcast.Oracle questions from the side tables
// a decode pass filled in, plus the Sym field every annotated node
// already carries inline. It is read-only and safe to share across
// goroutines once decoding has finished, same as metadata.Oracle.
type Oracle struct {
	typeOf      map[srcast.Expr]*srcast.TypeRef
	convertedOf map[srcast.Expr]*srcast.TypeRef
	constantOf  map[srcast.Expr]srcast.ConstantValue
}

func (o *Oracle) SymbolOf(n srcast.Node) *srcast.Symbol {
	switch v := n.(type) {
	case *srcast.Ident:
		return v.Sym
	case *srcast.ThisRef:
		return v.Sym
	case *srcast.BaseRef:
		return v.Sym
	case *srcast.MemberAccess:
		return v.Sym
	case *srcast.IndexExpr:
		return v.Sym
	case *srcast.Invocation:
		return v.Sym
	case *srcast.ObjectCreation:
		return v.Sym
	case *srcast.Lambda:
		return v.Sym
	case *srcast.ForEachStmt:
		return v.Sym
	case *srcast.LocalFunctionStmt:
		return v.Sym
	case *srcast.TypeDecl:
		return v.Sym
	case *srcast.FieldDecl:
		return v.Sym
	case *srcast.PropertyDecl:
		return v.Sym
	case *srcast.EventDecl:
		return v.Sym
	case *srcast.MethodDecl:
		return v.Sym
	case *srcast.ConstructorDecl:
		return v.Sym
	case *srcast.DelegateDecl:
		return v.Sym
	default:
		return nil
	}
}

func (o *Oracle) TypeOf(e srcast.Expr) *srcast.TypeRef {
	return o.typeOf[e]
}

func (o *Oracle) ConvertedTypeOf(e srcast.Expr) *srcast.TypeRef {
	if t, ok := o.convertedOf[e]; ok {
		return t
	}
	return o.typeOf[e]
}

func (o *Oracle) ConstantValueOf(e srcast.Expr) (srcast.ConstantValue, bool) {
	c, ok := o.constantOf[e]
	return c, ok
}

// Compile-time interface check: an *Oracle must satisfy srcast.Oracle.
var _ srcast.Oracle = (*Oracle)(nil)

// Decode parses one `*.srcjson` document into the compilation unit it
// describes, plus the Oracle that answers TypeOf/ConvertedTypeOf/
// ConstantValueOf/SymbolOf for everything in it.
func Decode(data []byte) (*srcast.CompilationUnit, *Oracle, error) {
	d := newDecoder()
	cu, err := d.compilationUnit(data)
	if err != nil {
		return nil, nil, err
	}
	return cu, &Oracle{typeOf: d.typeOf, convertedOf: d.convertedOf, constantOf: d.constantOf}, nil
}

// Load reads and decodes a single `*.srcjson` file from disk.
func Load(path string) (*srcast.CompilationUnit, *Oracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: %w", err)
	}
	cu, oracle, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: %s: %w", path, err)
	}
	if cu.FileName == "" {
		cu.FileName = filepath.Base(path)
	}
	return cu, oracle, nil
}

// LoadDir walks dir for every `*.srcjson` file and decodes each one,
// returning them sorted by path so a caller mirroring the tree onto
// output files gets a deterministic write order.
func LoadDir(dir string) ([]*srcast.CompilationUnit, []*Oracle, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && filepath.Ext(path) == ".srcjson" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("fixture: %w", err)
	}
	sort.Strings(paths)

	units := make([]*srcast.CompilationUnit, len(paths))
	oracles := make([]*Oracle, len(paths))
	for i, p := range paths {
		cu, oracle, err := Load(p)
		if err != nil {
			return nil, nil, err
		}
		units[i] = cu
		oracles[i] = oracle
	}
	return units, oracles, nil
}

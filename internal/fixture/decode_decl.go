package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/kolkov/lunac/internal/srcast"
)

func declBase(o obj) srcast.DeclBase {
	return srcast.DeclBase{StartPos: o.pos("pos"), EndPos: o.pos("end")}
}

func (d *decoder) typeDecl(raw json.RawMessage) (*srcast.TypeDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	t := &srcast.TypeDecl{
		DeclBase:   declBase(o),
		Name:       o.str("name"),
		Kind:       typeDeclKind(o.str("kind")),
		TypeParams: o.strList("typeParams"),
	}
	if o.has("baseType") {
		if t.BaseType, err = d.typeRef(o["baseType"]); err != nil {
			return nil, err
		}
	}
	for _, it := range d.rawListOf(o["interfaces"]) {
		ref, err := d.typeRef(it)
		if err != nil {
			return nil, err
		}
		t.Interfaces = append(t.Interfaces, ref)
	}
	for _, it := range d.rawListOf(o["fields"]) {
		f, err := d.fieldDecl(it)
		if err != nil {
			return nil, err
		}
		t.Fields = append(t.Fields, f)
	}
	for _, it := range d.rawListOf(o["properties"]) {
		p, err := d.propertyDecl(it)
		if err != nil {
			return nil, err
		}
		t.Properties = append(t.Properties, p)
	}
	for _, it := range d.rawListOf(o["events"]) {
		e, err := d.eventDecl(it)
		if err != nil {
			return nil, err
		}
		t.Events = append(t.Events, e)
	}
	for _, it := range d.rawListOf(o["methods"]) {
		m, err := d.methodDecl(it)
		if err != nil {
			return nil, err
		}
		t.Methods = append(t.Methods, m)
	}
	for _, it := range d.rawListOf(o["constructors"]) {
		c, err := d.constructorDecl(it)
		if err != nil {
			return nil, err
		}
		t.Constructors = append(t.Constructors, c)
	}
	if o.has("staticConstructor") {
		if t.StaticConstructor, err = d.constructorDecl(o["staticConstructor"]); err != nil {
			return nil, err
		}
	}
	for _, it := range d.rawListOf(o["nestedTypes"]) {
		nt, err := d.typeDecl(it)
		if err != nil {
			return nil, err
		}
		t.NestedTypes = append(t.NestedTypes, nt)
	}
	for _, it := range d.rawListOf(o["enumMembers"]) {
		mo, err := toObj(it)
		if err != nil {
			return nil, err
		}
		m := srcast.EnumMember{Name: mo.str("name")}
		if mo.has("value") {
			if m.Value, err = d.constant(mo["value"]); err != nil {
				return nil, err
			}
		}
		t.EnumMembers = append(t.EnumMembers, m)
	}
	if t.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return t, nil
}

func (d *decoder) fieldDecl(raw json.RawMessage) (*srcast.FieldDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	f := &srcast.FieldDecl{
		DeclBase: declBase(o),
		Name:     o.str("name"),
		IsStatic: o.boolean("isStatic"),
		IsConst:  o.boolean("isConst"),
	}
	if f.Type, err = d.typeRef(o["fieldType"]); err != nil {
		return nil, err
	}
	if o.has("init") {
		if f.Init, err = d.expr(o["init"]); err != nil {
			return nil, err
		}
	}
	if f.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return f, nil
}

func (d *decoder) propertyDecl(raw json.RawMessage) (*srcast.PropertyDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	p := &srcast.PropertyDecl{
		DeclBase:        declBase(o),
		Name:            o.str("name"),
		HasGetter:       o.boolean("hasGetter"),
		HasSetter:       o.boolean("hasSetter"),
		IsStatic:        o.boolean("isStatic"),
		IsOverride:      o.boolean("isOverride"),
		IsInterfaceImpl: o.boolean("isInterfaceImpl"),
		NoFieldAttr:     o.boolean("noFieldAttr"),
	}
	if p.Type, err = d.typeRef(o["propertyType"]); err != nil {
		return nil, err
	}
	if o.has("getterBody") {
		if p.GetterBody, err = d.block(o["getterBody"]); err != nil {
			return nil, err
		}
	}
	if o.has("setterBody") {
		if p.SetterBody, err = d.block(o["setterBody"]); err != nil {
			return nil, err
		}
	}
	if p.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return p, nil
}

func (d *decoder) eventDecl(raw json.RawMessage) (*srcast.EventDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	e := &srcast.EventDecl{DeclBase: declBase(o), Name: o.str("name"), IsStatic: o.boolean("isStatic")}
	if e.Type, err = d.typeRef(o["eventType"]); err != nil {
		return nil, err
	}
	if e.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return e, nil
}

func (d *decoder) methodDecl(raw json.RawMessage) (*srcast.MethodDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	m := &srcast.MethodDecl{
		DeclBase:                declBase(o),
		Name:                    o.str("name"),
		TypeParams:              o.strList("typeParams"),
		IsStatic:                o.boolean("isStatic"),
		IsOperator:              o.boolean("isOperator"),
		OperatorKind:            operatorKind(o.str("operatorKind")),
		IsExtension:             o.boolean("isExtension"),
		IsMain:                  o.boolean("isMain"),
		IsExplicitInterfaceImpl: o.boolean("isExplicitInterfaceImpl"),
	}
	if m.Params, err = d.paramInfos(o["params"]); err != nil {
		return nil, err
	}
	if o.has("returnType") {
		if m.ReturnType, err = d.typeRef(o["returnType"]); err != nil {
			return nil, err
		}
	}
	if o.has("body") {
		if m.Body, err = d.block(o["body"]); err != nil {
			return nil, err
		}
	}
	if o.has("interfaceMember") {
		if m.InterfaceMember, err = d.symbol(o["interfaceMember"]); err != nil {
			return nil, err
		}
	}
	if m.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *decoder) constructorDecl(raw json.RawMessage) (*srcast.ConstructorDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	c := &srcast.ConstructorDecl{DeclBase: declBase(o), OverloadIndex: o.integer("overloadIndex")}
	if c.Params, err = d.paramInfos(o["params"]); err != nil {
		return nil, err
	}
	if c.Body, err = d.block(o["body"]); err != nil {
		return nil, err
	}
	if o.has("initializer") {
		io, err := toObj(o["initializer"])
		if err != nil {
			return nil, err
		}
		init := &srcast.CtorInitializer{Kind: ctorInitKind(io.str("kind"))}
		if init.Args, err = d.exprList(io["args"]); err != nil {
			return nil, err
		}
		if init.Sym, err = d.symbol(io["sym"]); err != nil {
			return nil, err
		}
		c.Initializer = init
	}
	if c.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return c, nil
}

func (d *decoder) delegateDecl(raw json.RawMessage) (*srcast.DelegateDecl, error) {
	o, err := toObj(raw)
	if err != nil || o == nil {
		return nil, err
	}
	del := &srcast.DelegateDecl{DeclBase: declBase(o), Name: o.str("name")}
	if del.Params, err = d.paramInfos(o["params"]); err != nil {
		return nil, err
	}
	if o.has("returnType") {
		if del.ReturnType, err = d.typeRef(o["returnType"]); err != nil {
			return nil, err
		}
	}
	if del.Sym, err = d.symbol(o["sym"]); err != nil {
		return nil, err
	}
	return del, nil
}

// compilationUnit decodes the root `*.srcjson` object.
func (d *decoder) compilationUnit(raw []byte) (*srcast.CompilationUnit, error) {
	o, err := toObj(raw)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("fixture: empty document")
	}
	cu := &srcast.CompilationUnit{
		DeclBase:  declBase(o),
		FileName:  o.str("fileName"),
		Usings:    o.strList("usings"),
		Namespace: o.str("namespace"),
	}
	for _, it := range d.rawListOf(o["types"]) {
		t, err := d.typeDecl(it)
		if err != nil {
			return nil, err
		}
		cu.Types = append(cu.Types, t)
	}
	for _, it := range d.rawListOf(o["delegates"]) {
		del, err := d.delegateDecl(it)
		if err != nil {
			return nil, err
		}
		cu.Delegates = append(cu.Delegates, del)
	}
	return cu, nil
}

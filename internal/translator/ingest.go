package translator

import (
	"strconv"

	"github.com/kornilova-l/scala-native-bindgen/internal/cdecl"
	"github.com/kornilova-l/scala-native-bindgen/internal/diag"
	"github.com/kornilova-l/scala-native-bindgen/internal/ir"
)

// Ingest walks a decoded declaration stream in order and populates a fresh
// ir.Container, the Go counterpart of the AST-visitor pass
// (original_source/bindgen/visitor/TreeVisitor.cpp VisitFunctionDecl/
// VisitTypedefDecl/VisitEnumDecl/VisitRecordDecl/VisitVarDecl). Functions
// and variables outside the main file are skipped at this stage exactly as
// the original does; typedefs/records/enums are always ingested since a
// main-file declaration may depend on a type defined in an included
// header, with main-file filtering for those deferred to reachability
// (spec.md §4.4).
func Ingest(stream cdecl.DeclStream, lm cdecl.LocationManager, sink diag.Sink) (*ir.Container, error) {
	c := &ir.Container{LocationManager: adaptLocationManager{lm}}
	t := New(c, sink)

	for _, d := range stream.Decls {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if err := ingestOne(t, c, d, lm); err != nil {
			return nil, err
		}
	}

	for _, ld := range stream.LiteralDefines {
		typ, err := t.Translate(ld.Type)
		if err != nil {
			return nil, err
		}
		if typ == nil {
			continue
		}
		c.AddLiteralDefine(ld.Name, ld.Literal, typ)
	}

	for _, pvd := range stream.PossibleVarDefines {
		c.AddPossibleVarDefine(pvd.MacroName, pvd.VarName)
	}

	resolveVarDefines(c)

	return c, nil
}

func ingestOne(t *Translator, c *ir.Container, d cdecl.Decl, lm cdecl.LocationManager) error {
	switch d.Kind {
	case cdecl.DeclFunction:
		if d.Location != nil && lm != nil && !lm.InMainFile(*d.Location) {
			return nil
		}
		return ingestFunction(t, c, d)

	case cdecl.DeclTypedef:
		return ingestTypedef(t, c, d)

	case cdecl.DeclEnum:
		return ingestEnum(t, c, d)

	case cdecl.DeclRecord:
		return ingestRecord(t, c, d)

	case cdecl.DeclVariable:
		if d.Location != nil && lm != nil && !lm.InMainFile(*d.Location) {
			return nil
		}
		return ingestVariable(t, c, d)
	}
	return nil
}

func ingestFunction(t *Translator, c *ir.Container, d cdecl.Decl) error {
	fd := d.Function
	ret, err := t.Translate(fd.Return)
	if err != nil {
		return err
	}
	params := make([]ir.Parameter, 0, len(fd.Parameters))
	for i, p := range fd.Parameters {
		name := p.Name
		if name == "" {
			name = anonymousParamName(i)
		}
		pt, err := t.Translate(p.Type)
		if err != nil {
			return err
		}
		params = append(params, ir.Parameter{Name: name, Type: pt})
	}
	c.AddFunction(fd.Name, params, ret, fd.Variadic, toIRLocation(d.Location))
	return nil
}

func ingestTypedef(t *Translator, c *ir.Container, d cdecl.Decl) error {
	td := d.Typedef
	typ, err := t.Translate(td.Type)
	if err != nil {
		return err
	}
	if typ == nil {
		// translate() returning (nil, nil) for a bare function type: a
		// typedef naming a function type is legal C but never usable as
		// a stored value, matching TreeVisitor::VisitTypedefDecl's
		// `if (type) { ir.addTypeDef(...) }` guard.
		return nil
	}
	c.AddTypeDef(td.Name, typ, toIRLocation(d.Location))
	return nil
}

func ingestEnum(t *Translator, c *ir.Container, d cdecl.Decl) error {
	ed := d.Enum
	enumerators := make([]ir.Enumerator, 0, len(ed.Enumerators))
	for _, en := range ed.Enumerators {
		enumerators = append(enumerators, ir.Enumerator{Name: en.Name, Value: en.Value})
	}
	underlying, ok := LookupPrimitive(ed.UnderlyingType)
	if !ok {
		underlying = "native.CInt"
	}
	c.AddEnum(ed.Name, underlying, enumerators, toIRLocation(d.Location))
	return nil
}

func ingestRecord(t *Translator, c *ir.Container, d cdecl.Decl) error {
	rd := d.Record
	if !rd.IsDefinition {
		// A forward declaration with no fields: nothing to register yet,
		// the eventual definition (or an opaque reference from another
		// type) registers the TypeDef (spec.md §3.3).
		return nil
	}
	fields := make([]ir.Field, 0, len(rd.Fields))
	for _, f := range rd.Fields {
		ft, err := t.Translate(f.Type)
		if err != nil {
			return err
		}
		fields = append(fields, ir.Field{Name: f.Name, Type: ft, BitOffset: f.BitOffset})
	}
	if rd.IsUnion {
		c.AddUnion(rd.Name, fields, rd.SizeBits, toIRLocation(d.Location))
	} else {
		c.AddStruct(rd.Name, fields, rd.SizeBits, toIRLocation(d.Location), rd.Packed, rd.Bitfield)
	}
	return nil
}

func ingestVariable(t *Translator, c *ir.Container, d cdecl.Decl) error {
	vd := d.Variable
	typ, err := t.Translate(vd.Type)
	if err != nil {
		return err
	}
	c.AddVariable(vd.Name, typ, toIRLocation(d.Location))
	return nil
}

// resolveVarDefines pairs each possible-var-define against the variables
// that were actually ingested, exactly as TreeVisitor::VisitVarDecl's
// ir.getDefineForVar(variableName) lookup does inline; here it is a
// separate pass since Ingest doesn't require PossibleVarDefines to appear
// before the matching VarDecl in the stream.
func resolveVarDefines(c *ir.Container) {
	for _, v := range c.Variables {
		macroName := c.GetDefineForVar(v.Name)
		if macroName != "" {
			c.AddVarDefine(macroName, v)
		}
	}
}

func anonymousParamName(i int) string {
	return "anonymous" + strconv.Itoa(i)
}

func toIRLocation(l *cdecl.Location) *ir.Location {
	if l == nil {
		return nil
	}
	return &ir.Location{File: l.File, Line: l.Line}
}

// adaptLocationManager bridges cdecl.LocationManager (this package's input
// contract) to ir.LocationManager (the container's query interface),
// avoiding a direct internal/ir -> internal/cdecl dependency.
type adaptLocationManager struct {
	lm cdecl.LocationManager
}

func (a adaptLocationManager) InMainFile(loc ir.Location) bool {
	if a.lm == nil {
		return true
	}
	return a.lm.InMainFile(cdecl.Location{File: loc.File, Line: loc.Line})
}

package ir

import (
	"strconv"
	"strings"

	"github.com/kornilova-l/scala-native-bindgen/internal/common"
)

// Container is the sole owner of every declaration entity produced while
// visiting a translation unit (spec.md §2 item 3, §3.4 "Ownership"). Types
// reference declarations through shared, non-owning Go pointers; cycles
// between records are expected (spec.md §3.4).
//
// Construction happens exclusively through the AddX methods during
// frontend traversal (spec.md §3.4 "Creation"); the only later mutation is
// opaque-typedef fill-in, performed by AddStruct/AddUnion, and
// prefix-filter splicing and function renaming, performed by Generate.
type Container struct {
	TypeDefs           []*TypeDef
	Structs            []*Struct
	Unions             []*Union
	Enums              []*Enum
	Functions          []*Function
	Variables          []*Variable
	LiteralDefines     []*LiteralDefine
	PossibleVarDefines []*PossibleVarDefine
	VarDefines         []*VarDefine

	// LocationManager answers "is this declaration in the main
	// translation-unit file" queries (spec.md §4.4, §6). May be nil in
	// tests that don't exercise main-file pruning; nil is treated as
	// "everything is in the main file".
	LocationManager LocationManager

	generated bool
}

// LocationManager is the external collaborator that knows which header a
// location came from (spec.md §4.4 "Main file", §6).
type LocationManager interface {
	InMainFile(loc Location) bool
}

func (c *Container) inMainFile(loc *Location) bool {
	if loc == nil {
		return true
	}
	if c.LocationManager == nil {
		return true
	}
	return c.LocationManager.InMainFile(*loc)
}

// AddFunction appends a new Function (spec.md §4.2).
func (c *Container) AddFunction(name string, params []Parameter, ret Type, variadic bool, loc *Location) *Function {
	f := &Function{Name: name, Parameters: params, Return: ret, Variadic: variadic, Location: loc}
	c.Functions = append(c.Functions, f)
	return f
}

// AddTypeDef appends and returns a new TypeDef. typ may be nil to register
// an opaque placeholder (spec.md §4.2).
func (c *Container) AddTypeDef(name string, typ Type, loc *Location) *TypeDef {
	td := &TypeDef{Name: name, Type: typ, Location: loc}
	c.TypeDefs = append(c.TypeDefs, td)
	return td
}

// AddEnum appends a new Enum and, if named, a generated TypeDef pointing
// at it (spec.md §3.3 invariant, §4.2).
func (c *Container) AddEnum(name, underlying string, enumerators []Enumerator, loc *Location) *Enum {
	e := &Enum{Name: name, UnderlyingType: underlying, Enumerators: enumerators, Location: loc}
	c.Enums = append(c.Enums, e)
	if e.Name != "" {
		c.TypeDefs = append(c.TypeDefs, &TypeDef{Name: e.Name, Type: e})
	}
	return e
}

// AddStruct appends a new Struct. If a prior opaque TypeDef named
// "struct_<name>" exists (registered by the translator for a
// forward-declared record, spec.md §4.1 translateRecord), its inner type
// is filled in place; otherwise a new TypeDef is appended (spec.md §4.2,
// §3.3 invariant). This is the IR's opaque-resolution path
// (original_source/bindgen/ir/IR.cpp addStruct).
func (c *Container) AddStruct(name string, fields []Field, sizeBits int, loc *Location, packed, bitfield bool) *Struct {
	s := NewStruct(name, fields, sizeBits, loc, packed, bitfield)
	c.Structs = append(c.Structs, s)
	if s.Name == "" {
		return s
	}
	typeDefName := "struct_" + s.Name
	if td := c.GetTypeDefWithName(typeDefName); td != nil {
		td.Type = s
		if td.Location == nil {
			td.Location = loc
		}
	} else {
		c.TypeDefs = append(c.TypeDefs, &TypeDef{Name: typeDefName, Type: s, Location: loc})
	}
	return s
}

// AddUnion is symmetric with AddStruct, using the "union_" prefix
// (spec.md §4.2).
func (c *Container) AddUnion(name string, fields []Field, sizeBits int, loc *Location) *Union {
	u := NewUnion(name, fields, sizeBits, loc)
	c.Unions = append(c.Unions, u)
	if u.Name == "" {
		return u
	}
	typeDefName := "union_" + u.Name
	if td := c.GetTypeDefWithName(typeDefName); td != nil {
		td.Type = u
		if td.Location == nil {
			td.Location = loc
		}
	} else {
		c.TypeDefs = append(c.TypeDefs, &TypeDef{Name: typeDefName, Type: u, Location: loc})
	}
	return u
}

// AddLiteralDefine appends a new LiteralDefine (spec.md §4.2).
func (c *Container) AddLiteralDefine(name, literal string, typ Type) *LiteralDefine {
	l := &LiteralDefine{Name: name, Literal: literal, Type: typ}
	c.LiteralDefines = append(c.LiteralDefines, l)
	return l
}

// AddPossibleVarDefine registers a pending macro-to-variable
// correspondence (spec.md §4.2).
func (c *Container) AddPossibleVarDefine(macroName, varName string) *PossibleVarDefine {
	p := &PossibleVarDefine{MacroName: macroName, VarName: varName}
	c.PossibleVarDefines = append(c.PossibleVarDefines, p)
	return p
}

// AddVarDefine records a resolved macro alias (spec.md §4.2).
func (c *Container) AddVarDefine(name string, variable *Variable) *VarDefine {
	v := &VarDefine{Name: name, Variable: variable}
	c.VarDefines = append(c.VarDefines, v)
	return v
}

// AddVariable appends and returns a new Variable (spec.md §4.2).
func (c *Container) AddVariable(name string, typ Type, loc *Location) *Variable {
	v := &Variable{Name: name, Type: typ, Location: loc}
	c.Variables = append(c.Variables, v)
	return v
}

// GetTypeDefWithName performs the linear, first-match lookup spec.md §4.2
// and §8 Invariant 2 require.
func (c *Container) GetTypeDefWithName(name string) *TypeDef {
	for _, td := range c.TypeDefs {
		if td.Name == name {
			return td
		}
	}
	return nil
}

// GetDefineForVar scans possibleVarDefines for one whose VarName matches
// (spec.md §4.2).
func (c *Container) GetDefineForVar(varName string) string {
	for _, p := range c.PossibleVarDefines {
		if p.VarName == varName {
			return p.MacroName
		}
	}
	return ""
}

// RemoveDefine purges name from all three define collections (spec.md
// §4.2).
func (c *Container) RemoveDefine(name string) {
	c.LiteralDefines = filterOutByName(c.LiteralDefines, name)
	c.PossibleVarDefines = filterOutByName(c.PossibleVarDefines, name)
	c.VarDefines = filterOutByName(c.VarDefines, name)
}

func filterOutByName[T Declaration](decls []T, name string) []T {
	out := decls[:0]
	for _, d := range decls {
		if d.DeclName() != name {
			out = append(out, d)
		}
	}
	return out
}

// Generate finalizes the container: it synthesizes reserved-word-safe
// function names and applies prefix filtering. It is idempotent after the
// first call (spec.md §4.2, §5).
func (c *Container) Generate(excludePrefix string) {
	if c.generated {
		return
	}
	c.setReservedNames()
	c.filterByPrefix(excludePrefix)
	c.generated = true
}

// setReservedNames implements spec.md §4.2's reserved-word rule: any
// function whose name collides with a target-language keyword (the
// canonical offender is the literal "native") gets an alternate output
// name of the form "nativeFunc" or "nativeFuncN", the first such value (in
// the order nativeFunc, nativeFunc0, nativeFunc1, ...) not already in use
// by another function's *source* name (original_source/bindgen/ir/IR.cpp
// setScalaNames: existsFunctionWithName checks getName(), not the
// renamed value).
func (c *Container) setReservedNames() {
	for _, f := range c.Functions {
		if !common.IsReserved(f.Name) {
			continue
		}
		candidate := "nativeFunc"
		i := 0
		for c.existsFunctionNamed(candidate) {
			candidate = "nativeFunc" + strconv.Itoa(i)
			i++
		}
		f.RenamedName = candidate
	}
}

func (c *Container) existsFunctionNamed(name string) bool {
	for _, f := range c.Functions {
		if f.Name == name {
			return true
		}
	}
	return false
}

// filterByPrefix implements spec.md §4.3 in full: typedefs referenced only
// by other typedefs are spliced out, and functions/literal-defines/
// var-defines/variables are dropped outright. Enums/structs/unions are
// left for reachability pruning (spec.md §4.4).
func (c *Container) filterByPrefix(excludePrefix string) {
	if excludePrefix == "" {
		return
	}
	c.filterTypeDefsByPrefix(excludePrefix)
	c.Functions = filterDeclsByPrefix(c.Functions, excludePrefix)
	c.LiteralDefines = filterDeclsByPrefix(c.LiteralDefines, excludePrefix)
	c.VarDefines = filterDeclsByPrefix(c.VarDefines, excludePrefix)
	c.Variables = filterDeclsByPrefix(c.Variables, excludePrefix)
}

func filterDeclsByPrefix[T Declaration](decls []T, prefix string) []T {
	out := decls[:0]
	for _, d := range decls {
		if !strings.HasPrefix(d.DeclName(), prefix) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Container) filterTypeDefsByPrefix(excludePrefix string) {
	kept := c.TypeDefs[:0]
	for _, td := range c.TypeDefs {
		if strings.HasPrefix(td.Name, excludePrefix) && c.typeIsUsedOnlyInTypeDefs(td) {
			c.spliceTypeDef(td)
			continue
		}
		kept = append(kept, td)
	}
	c.TypeDefs = kept
}

// spliceTypeDef replaces every other typedef's reference to td's type
// with td.Type directly, preserving the meaning of surviving declarations
// (spec.md §8 Invariant 3, original_source/bindgen/ir/IR.cpp
// replaceTypeInTypeDefs).
func (c *Container) spliceTypeDef(td *TypeDef) {
	for _, other := range c.TypeDefs {
		if other == td {
			continue
		}
		if other.Type == Type(td) {
			other.Type = td.Type
		}
	}
}

// typeIsUsedOnlyInTypeDefs reports whether td is referenced exclusively by
// other typedefs — not by any function, struct/union field, variable, or
// literal-define — using stopOnTypeDefs=true so typedef-to-typedef edges
// don't count (spec.md §4.3, §4.4). VarDefines are deliberately excluded:
// they are aliases for variables, already covered by the Variables check
// (original_source/bindgen/ir/IR.cpp typeIsUsedOnlyInTypeDefs comment).
func (c *Container) typeIsUsedOnlyInTypeDefs(td *TypeDef) bool {
	target := Type(td)
	if anyUsesType(c.Functions, target, true) {
		return false
	}
	if anyUsesType(c.Structs, target, true) {
		return false
	}
	if anyUsesType(c.Unions, target, true) {
		return false
	}
	if anyUsesType(c.Variables, target, true) {
		return false
	}
	if anyUsesType(c.LiteralDefines, target, true) {
		return false
	}
	return true
}

func anyUsesType[T Declaration](decls []T, target Type, stopOnTypeDefs bool) bool {
	for _, d := range decls {
		visited := map[Type]bool{}
		if d.usesType(target, stopOnTypeDefs, visited) {
			return true
		}
	}
	return false
}

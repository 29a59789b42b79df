package ir

import "strconv"

// Location is the absolute file path + line number of a declaration, as
// delivered by the frontend collaborator (spec.md §3.2, §6).
type Location struct {
	File string
	Line int
}

// Declaration is implemented by every named entity the container owns:
// Function, Variable, LiteralDefine, VarDefine, and (doubling as Types)
// TypeDef, Struct, Union, Enum. Reachability (reachability.go) walks this
// interface uniformly, mirroring spec.md §4.4's "Declarations use
// analogous rules over their components."
type Declaration interface {
	DeclName() string
	usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool
}

// TypeDef is both a declaration and a Type: a name plus a possibly-absent
// referenced type. A nil Type means opaque (spec.md §3.3): the real record
// was only forward-declared and has not been seen yet. Filling Type in
// place, once, is the IR's only form of delayed mutation (spec.md §3.3,
// §3.4, §5).
type TypeDef struct {
	Name     string
	Type     Type
	Location *Location
}

func (t *TypeDef) DeclName() string { return t.Name }

// Str renders a *use* of this typedef: other declarations reference it by
// its own name, not by inlining what it stands for (spec.md §8 S1: `foo_t`
// renders as `struct_foo`, not as the fully expanded struct). Rendering
// produces the typedef's own definition-line right-hand side.
func (t *TypeDef) Str() string { return t.Name }

// Rendering is the right-hand side of this typedef's own `type N = ...`
// definition line: the inner type's Str() one level down, or the opaque
// stub when still unresolved (spec.md §3.3, §4.7).
func (t *TypeDef) Rendering() string {
	if t.Type == nil {
		return "native.CStruct0 // incomplete type"
	}
	return t.Type.Str()
}

func (t *TypeDef) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	if stopOnTypeDefs {
		return false
	}
	if t.Type == nil {
		return false
	}
	if visited[t] {
		return false
	}
	visited[t] = true
	result := typeEquals(t.Type, target) || t.Type.usesType(target, stopOnTypeDefs, visited)
	if !result {
		// This node is not on the path to target: let other paths
		// explore through it too (original_source/bindgen/ir/TypeDef.cpp
		// pops itself off visitedTypes on a negative result).
		delete(visited, t)
	}
	return result
}

// Field is a member of a Struct or Union. BitOffset is nil when the
// frontend did not report an explicit bit offset (spec.md §3.2).
type Field struct {
	Name      string
	Type      Type
	BitOffset *int
}

// Struct is both a declaration and a Type. Name is empty for an anonymous
// record (spec.md §3.3 invariant: only non-anonymous records also get a
// generated TypeDef).
type Struct struct {
	Name     string
	Fields   []Field
	Size     int // byte size; always a multiple of 1 (bits asserted %8==0 at construction, see NewStruct)
	Packed   bool
	Bitfield bool
	Location *Location
}

// NewStruct validates the byte-size invariant from spec.md §3.3 ("Byte
// size of any composite type is always a multiple of 8 bits") before
// returning the record. sizeBits is the size as reported by the frontend.
func NewStruct(name string, fields []Field, sizeBits int, loc *Location, packed, bitfield bool) *Struct {
	if sizeBits%8 != 0 {
		panic("struct size in bits must be a multiple of 8")
	}
	return &Struct{Name: name, Fields: fields, Size: sizeBits / 8, Packed: packed, Bitfield: bitfield, Location: loc}
}

func (s *Struct) DeclName() string { return s.Name }

func (s *Struct) Str() string {
	str := "native.CStruct" + strconv.Itoa(len(s.Fields)) + "["
	for i, f := range s.Fields {
		if i > 0 {
			str += ", "
		}
		str += f.Type.Str()
	}
	return str + "]"
}

func (s *Struct) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	for _, f := range s.Fields {
		if typeEquals(f.Type, target) || f.Type.usesType(target, stopOnTypeDefs, visited) {
			return true
		}
	}
	return false
}

// HasHelperMethods reports whether this struct needs a hand-written
// helper class in the emitted Helpers object (spec.md §4.6 step 7, §4.8
// supplemented feature): true when it participates in a pointer-free
// composite cycle or exceeds LargeRecordThreshold bytes.
func (s *Struct) HasHelperMethods(cyclic bool) bool {
	return cyclic || s.Size > LargeRecordThreshold
}

// LargeRecordThreshold is the byte-size cutoff past which a record gets a
// hand-rolled helper class rather than a flat CStructN tuple type. See
// SPEC_FULL.md §4.8 and DESIGN.md's Open Question decision #3.
const LargeRecordThreshold = 256

// Union is both a declaration and a Type.
type Union struct {
	Name     string
	Fields   []Field
	Size     int // byte size
	Location *Location
}

// NewUnion validates the byte-size invariant (spec.md §3.3), symmetric
// with NewStruct.
func NewUnion(name string, fields []Field, sizeBits int, loc *Location) *Union {
	if sizeBits%8 != 0 {
		panic("union size in bits must be a multiple of 8")
	}
	return &Union{Name: name, Fields: fields, Size: sizeBits / 8, Location: loc}
}

func (u *Union) DeclName() string { return u.Name }

func (u *Union) Str() string {
	// A union's members overlap in storage; the target FFI dialect has no
	// native union type, so it is represented as its raw backing bytes
	// (same approach the translator uses for anonymous/local records at
	// field position, spec.md §3.3).
	return "native.CArray[native.CUnsignedChar, native.Nat._" + strconv.Itoa(u.Size) + "]"
}

func (u *Union) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	for _, f := range u.Fields {
		if typeEquals(f.Type, target) || f.Type.usesType(target, stopOnTypeDefs, visited) {
			return true
		}
	}
	return false
}

// HasHelperMethods mirrors Struct.HasHelperMethods.
func (u *Union) HasHelperMethods(cyclic bool) bool {
	return cyclic || u.Size > LargeRecordThreshold
}

// Enumerator is one member of an Enum.
type Enumerator struct {
	Name  string
	Value int64
}

// Enum is both a declaration and a Type. UnderlyingType is the already
// target-mapped token for the enum's underlying integer C type (spec.md
// §3.1).
type Enum struct {
	Name           string
	UnderlyingType string
	Enumerators    []Enumerator
	Location       *Location
}

func (e *Enum) DeclName() string { return e.Name }

// Str: as a type, a C enum degrades to its underlying integer type for
// FFI purposes — the emitted Enums object (spec.md §4.6 step 6) carries
// the named members, but any field/parameter typed as the enum simply
// uses the integer representation.
func (e *Enum) Str() string { return e.UnderlyingType }

func (e *Enum) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	// Enums do not reference other types (spec.md §4.4).
	return false
}

// Parameter is a Function argument: a non-empty name (synthesized
// anonymousN by the caller when the C source had none) plus an IrType.
type Parameter struct {
	Name string
	Type Type
}

// Function is a named declaration referencing ordered parameters and a
// return type. RenamedName is set by reserved-name resolution
// (spec.md §4.2); empty means the source name is used unmodified.
type Function struct {
	Name        string
	Parameters  []Parameter
	Return      Type
	Variadic    bool
	RenamedName string
	Location    *Location
}

func (f *Function) DeclName() string { return f.Name }

// OutputName is the name under which this function is emitted: the
// reserved-name replacement if one was assigned, else the source name.
func (f *Function) OutputName() string {
	if f.RenamedName != "" {
		return f.RenamedName
	}
	return f.Name
}

func (f *Function) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	if typeEquals(f.Return, target) || f.Return.usesType(target, stopOnTypeDefs, visited) {
		return true
	}
	for _, p := range f.Parameters {
		if typeEquals(p.Type, target) || p.Type.usesType(target, stopOnTypeDefs, visited) {
			return true
		}
	}
	return false
}

// PassesCompositeByValue reports whether any parameter or the return type
// is itself a Struct/Union/Array (passed/returned by value), which the
// target FFI cannot represent (spec.md §7, §8 S6).
func (f *Function) PassesCompositeByValue() bool {
	if isByValueComposite(f.Return) {
		return true
	}
	for _, p := range f.Parameters {
		if isByValueComposite(p.Type) {
			return true
		}
	}
	return false
}

func isByValueComposite(t Type) bool {
	switch v := t.(type) {
	case *Struct, *Union, *Array:
		return true
	case *TypeDef:
		// Every record reference the translator produces is a TypeDef
		// (translateOpaqueLookup), never a bare *Struct/*Union, so the
		// by-value check must see through it to the record it names.
		if v.Type == nil {
			return false
		}
		return isByValueComposite(v.Type)
	default:
		return false
	}
}

// Variable is a named declaration referencing an IrType.
type Variable struct {
	Name     string
	Type     Type
	Location *Location
}

func (v *Variable) DeclName() string { return v.Name }

func (v *Variable) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	return typeEquals(v.Type, target) || v.Type.usesType(target, stopOnTypeDefs, visited)
}

// LiteralDefine is a `#define NAME literal` with a resolved literal type.
type LiteralDefine struct {
	Name    string
	Literal string
	Type    Type
}

func (l *LiteralDefine) DeclName() string { return l.Name }

func (l *LiteralDefine) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	return typeEquals(l.Type, target) || l.Type.usesType(target, stopOnTypeDefs, visited)
}

// PossibleVarDefine is a macro name paired with an identifier whose
// definition as a variable is not yet known (spec.md §3.2, §6).
type PossibleVarDefine struct {
	MacroName string
	VarName   string
}

func (p *PossibleVarDefine) DeclName() string { return p.MacroName }

func (p *PossibleVarDefine) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	// Not yet resolved to a Variable: carries no type reference of its own.
	return false
}

// VarDefine is a macro resolved to alias a known Variable.
type VarDefine struct {
	Name     string
	Variable *Variable
}

func (v *VarDefine) DeclName() string { return v.Name }

func (v *VarDefine) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	return v.Variable.usesType(target, stopOnTypeDefs, visited)
}


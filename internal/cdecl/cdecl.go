// Package cdecl is the observable output shape of the out-of-scope Clang
// frontend (spec.md §1, §6 "Input"): a plain Go data model for "a C
// declaration" plus a JSON decoder, so the in-scope core (internal/ir,
// internal/translator, internal/codegen) can be driven and tested without a
// real Clang frontend. It plays the role the teacher's types.Root/
// types.ReadJSONIr play for the FIDL JSON IR
// (garnet/go/src/fidl/compiler/backend/types/types.go), adapted to a
// preprocessed-C-declaration-stream shape instead of a FIDL library shape.
package cdecl

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Location is the file+line a declaration or type use came from
// (spec.md §3.2, §6).
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// LocationManager answers "is this location in the main translation-unit
// file" (spec.md §4.4 main-file rule, §6).
type LocationManager interface {
	InMainFile(loc Location) bool
}

// CTypeKind tags the variant held by a CType (spec.md §4.1's case list,
// mirroring clang::Type's query methods isFunctionType/isPointerType/
// isStructureType/... that TypeTranslator.cpp dispatches on).
type CTypeKind string

const (
	KindBuiltin         CTypeKind = "builtin"
	KindFunction        CTypeKind = "function"         // bare function type (not a pointer to one)
	KindPointer         CTypeKind = "pointer"
	KindFunctionPointer CTypeKind = "function_pointer"
	KindRecord          CTypeKind = "record" // struct or union
	KindEnum            CTypeKind = "enum"
	KindConstantArray   CTypeKind = "constant_array"
	KindIncompleteArray CTypeKind = "incomplete_array" // non-constant/VLA, decays to pointer
	KindNamed           CTypeKind = "named"            // anything else: typedef name or typeMap lookup by spelling
)

// CType is the frontend's description of a single C type use, enough
// information for internal/translator to apply spec.md §4.1's decision
// order without needing a real clang.QualType.
type CType struct {
	Kind CTypeKind `json:"kind"`

	// Spelling is the type's unqualified textual name: a builtin spelling
	// for KindBuiltin/KindNamed ("int", "size_t", ...), or the
	// struct/union/enum tag name for KindRecord/KindEnum (possibly empty
	// for an anonymous record/enum).
	Spelling string `json:"spelling,omitempty"`

	// IsUnion disambiguates a KindRecord reference between struct and
	// union, needed by the translator to pick the right opaque-typedef
	// name prefix ("struct_"/"union_", matching Container.AddStruct/
	// AddUnion's own naming convention).
	IsUnion bool `json:"is_union,omitempty"`

	// Anonymous is true for a struct/union used at field position with no
	// tag and no prior declaration (spec.md §3.3's "local/anonymous
	// record" case, qtpe->hasUnnamedOrLocalType() in the original).
	Anonymous bool `json:"anonymous,omitempty"`
	// SizeBits is populated only when Anonymous is true, letting the
	// translator fall back to a raw byte array (spec.md §4.1
	// translateStructOrUnion).
	SizeBits int `json:"size_bits,omitempty"`

	Pointee *CType `json:"pointee,omitempty"`

	Element      *CType `json:"element,omitempty"`
	ElementCount int    `json:"element_count,omitempty"`

	Return     *CType  `json:"return,omitempty"`
	Parameters []CType `json:"parameters,omitempty"`
	Variadic   bool    `json:"variadic,omitempty"`
}

// Decl is the frontend's description of one top-level declaration
// (spec.md §3.2, §6). Exactly one of the Kind-specific fields is
// populated, chosen by Kind.
type Decl struct {
	Kind     DeclKind  `json:"kind"`
	Location *Location `json:"location,omitempty"`

	Function *FunctionDecl `json:"function,omitempty"`
	Typedef  *TypedefDecl  `json:"typedef,omitempty"`
	Enum     *EnumDecl     `json:"enum,omitempty"`
	Record   *RecordDecl   `json:"record,omitempty"`
	Variable *VariableDecl `json:"variable,omitempty"`
}

// DeclKind tags which of Decl's fields is populated.
type DeclKind string

const (
	DeclFunction DeclKind = "function"
	DeclTypedef  DeclKind = "typedef"
	DeclEnum     DeclKind = "enum"
	DeclRecord   DeclKind = "record"
	DeclVariable DeclKind = "variable"
)

// FunctionDecl mirrors a clang::FunctionDecl: name, parameters, return
// type, variadic flag (spec.md §3.2).
type FunctionDecl struct {
	Name       string          `json:"name"`
	Parameters []ParameterDecl `json:"parameters"`
	Return     CType           `json:"return"`
	Variadic   bool            `json:"variadic"`
}

// ParameterDecl is one function parameter; Name may be empty (the
// translator synthesizes anonymousN, spec.md §3.2).
type ParameterDecl struct {
	Name string `json:"name"`
	Type CType  `json:"type"`
}

// TypedefDecl is a C `typedef` declaration.
type TypedefDecl struct {
	Name string `json:"name"`
	Type CType  `json:"type"`
}

// EnumDecl is a C `enum` declaration; Name is empty for an anonymous enum.
type EnumDecl struct {
	Name           string             `json:"name"`
	UnderlyingType string             `json:"underlying_type"`
	Enumerators    []EnumeratorDecl   `json:"enumerators"`
}

// EnumeratorDecl is one member of an EnumDecl.
type EnumeratorDecl struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// RecordDecl is a C `struct`/`union` declaration, forward declaration, or
// definition. IsUnion distinguishes the two; IsDefinition false means this
// is a forward declaration only (no Fields/SizeBits to trust).
type RecordDecl struct {
	Name         string      `json:"name"`
	IsUnion      bool        `json:"is_union"`
	IsDefinition bool        `json:"is_definition"`
	Fields       []FieldDecl `json:"fields"`
	SizeBits     int         `json:"size_bits"`
	Packed       bool        `json:"packed"`
	Bitfield     bool        `json:"bitfield"`
}

// FieldDecl is one member of a RecordDecl.
type FieldDecl struct {
	Name      string `json:"name"`
	Type      CType  `json:"type"`
	BitOffset *int   `json:"bit_offset,omitempty"`
}

// VariableDecl is a C global variable declaration.
type VariableDecl struct {
	Name string `json:"name"`
	Type CType  `json:"type"`
}

// LiteralDefine is a preprocessor `#define NAME literal` whose literal has
// a resolvable constant type (spec.md §3.2, §6).
type LiteralDefine struct {
	Name    string `json:"name"`
	Literal string `json:"literal"`
	Type    CType  `json:"type"`
}

// PossibleVarDefine is a macro name paired with the identifier it expands
// to, emitted by the preprocessor collaborator before it is known whether
// that identifier names a variable (spec.md §3.2, §6).
type PossibleVarDefine struct {
	MacroName string `json:"macro_name"`
	VarName   string `json:"var_name"`
}

// DeclStream is the full frontend output for one translation unit: the
// ordered declarations plus the preprocessor's define observations
// (spec.md §6 "Input").
type DeclStream struct {
	Decls              []Decl              `json:"decls"`
	LiteralDefines     []LiteralDefine      `json:"literal_defines"`
	PossibleVarDefines []PossibleVarDefine  `json:"possible_var_defines"`
}

// ReadDeclStream decodes a DeclStream from JSON, the same role
// types.ReadJSONIrContent plays for the teacher's FIDL JSON IR.
func ReadDeclStream(data []byte) (DeclStream, error) {
	var stream DeclStream
	if err := json.Unmarshal(data, &stream); err != nil {
		return stream, errors.Wrap(err, "parsing declaration stream")
	}
	return stream, nil
}

func (k DeclKind) String() string { return string(k) }

// Validate reports a descriptive error if kind doesn't match which field
// of Decl is populated, catching malformed frontend output early instead
// of nil-dereferencing deep inside the translator.
func (d Decl) Validate() error {
	switch d.Kind {
	case DeclFunction:
		if d.Function == nil {
			return fmt.Errorf("decl kind %q missing function payload", d.Kind)
		}
	case DeclTypedef:
		if d.Typedef == nil {
			return fmt.Errorf("decl kind %q missing typedef payload", d.Kind)
		}
	case DeclEnum:
		if d.Enum == nil {
			return fmt.Errorf("decl kind %q missing enum payload", d.Kind)
		}
	case DeclRecord:
		if d.Record == nil {
			return fmt.Errorf("decl kind %q missing record payload", d.Kind)
		}
	case DeclVariable:
		if d.Variable == nil {
			return fmt.Errorf("decl kind %q missing variable payload", d.Kind)
		}
	default:
		return fmt.Errorf("unknown decl kind %q", d.Kind)
	}
	return nil
}

package translator

import (
	"testing"

	"github.com/kornilova-l/scala-native-bindgen/internal/cdecl"
	"github.com/kornilova-l/scala-native-bindgen/internal/diag"
	"github.com/kornilova-l/scala-native-bindgen/internal/ir"
)

// TestTranslatePointerSpecialCases covers spec.md §8 Scenario S2: void*
// becomes a pointer to a raw byte, char*/signed char* become the opaque
// C-string primitive rather than a Pointer at all.
func TestTranslatePointerSpecialCases(t *testing.T) {
	tr := New(&ir.Container{}, &diag.RecordingSink{})

	voidPtr, err := tr.Translate(cdecl.CType{Kind: cdecl.KindPointer, Pointee: &cdecl.CType{Kind: cdecl.KindBuiltin, Spelling: "void"}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := voidPtr.Str(), "native.Ptr[Byte]"; got != want {
		t.Errorf("void* = %q, want %q", got, want)
	}

	charPtr, err := tr.Translate(cdecl.CType{Kind: cdecl.KindPointer, Pointee: &cdecl.CType{Kind: cdecl.KindBuiltin, Spelling: "char"}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := charPtr.Str(), "native.CString"; got != want {
		t.Errorf("char* = %q, want %q", got, want)
	}

	ucharPtr, err := tr.Translate(cdecl.CType{Kind: cdecl.KindPointer, Pointee: &cdecl.CType{Kind: cdecl.KindBuiltin, Spelling: "unsigned char"}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ucharPtr.Str(), "native.Ptr[native.CUnsignedChar]"; got != want {
		t.Errorf("unsigned char* = %q, want %q", got, want)
	}
}

// TestTranslateRecordResolvesSameTypeDefAsContainerAddStruct covers the
// struct_/union_ opaque-typedef key agreement between the translator and
// Container.AddStruct/AddUnion (spec.md §8 Invariant 1, Scenario S1): a
// forward reference to "struct foo" and the later definition of "foo" as a
// struct must resolve to the same TypeDef.
func TestTranslateRecordResolvesSameTypeDefAsContainerAddStruct(t *testing.T) {
	c := &ir.Container{}
	tr := New(c, &diag.RecordingSink{})

	forwardRef, err := tr.Translate(cdecl.CType{Kind: cdecl.KindRecord, Spelling: "foo", IsUnion: false})
	if err != nil {
		t.Fatal(err)
	}
	opaqueTD, ok := forwardRef.(*ir.TypeDef)
	if !ok {
		t.Fatalf("expected a *ir.TypeDef for a record reference, got %T", forwardRef)
	}
	if got, want := opaqueTD.Str(), "struct_foo"; got != want {
		t.Errorf("forward reference TypeDef name = %q, want %q", got, want)
	}

	s := c.AddStruct("foo", []ir.Field{{Name: "x", Type: &ir.Primitive{Name: "native.CInt"}}}, 32, nil, false, false)

	if opaqueTD.Type != ir.Type(s) {
		t.Fatal("expected the translator's forward-reference TypeDef to be the same one AddStruct fills in place")
	}
	if len(c.TypeDefs) != 1 {
		t.Errorf("expected exactly one TypeDef (no disconnected duplicate), got %d", len(c.TypeDefs))
	}
}

func TestTranslateRecordUnionPrefix(t *testing.T) {
	c := &ir.Container{}
	tr := New(c, &diag.RecordingSink{})

	ref, err := tr.Translate(cdecl.CType{Kind: cdecl.KindRecord, Spelling: "tag", IsUnion: true})
	if err != nil {
		t.Fatal(err)
	}
	td := ref.(*ir.TypeDef)
	if got, want := td.Name, "union_tag"; got != want {
		t.Errorf("union reference TypeDef name = %q, want %q", got, want)
	}
}

func TestTranslateAnonymousRecordDecaysToByteArray(t *testing.T) {
	tr := New(&ir.Container{}, &diag.RecordingSink{})
	typ, err := tr.Translate(cdecl.CType{Kind: cdecl.KindRecord, Anonymous: true, SizeBits: 64})
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := typ.(*ir.Array)
	if !ok {
		t.Fatalf("expected an *ir.Array for an anonymous record, got %T", typ)
	}
	if arr.ElementCount != 8 {
		t.Errorf("expected 8 byte elements for a 64-bit anonymous record, got %d", arr.ElementCount)
	}
}

func TestTranslateAnonymousRecordRejectsNonByteAlignedSize(t *testing.T) {
	tr := New(&ir.Container{}, &diag.RecordingSink{})
	if _, err := tr.Translate(cdecl.CType{Kind: cdecl.KindRecord, Anonymous: true, SizeBits: 5}); err == nil {
		t.Fatal("expected an error for a non-byte-aligned anonymous record size")
	}
}

func TestTranslateFunctionPointer(t *testing.T) {
	tr := New(&ir.Container{}, &diag.RecordingSink{})
	typ, err := tr.Translate(cdecl.CType{
		Kind: cdecl.KindFunctionPointer,
		Pointee: &cdecl.CType{
			Kind:   cdecl.KindFunction,
			Return: &cdecl.CType{Kind: cdecl.KindBuiltin, Spelling: "int"},
			Parameters: []cdecl.CType{
				{Kind: cdecl.KindBuiltin, Spelling: "int"},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := typ.Str(), "native.CFuncPtr1[native.CInt, native.CInt]"; got != want {
		t.Errorf("Str() = %q, want %q", got, want)
	}
}

func TestTranslateFunctionPointerRejectsMalformedPointee(t *testing.T) {
	tr := New(&ir.Container{}, &diag.RecordingSink{})
	_, err := tr.Translate(cdecl.CType{Kind: cdecl.KindFunctionPointer, Pointee: &cdecl.CType{Kind: cdecl.KindBuiltin, Spelling: "int"}})
	if err == nil {
		t.Fatal("expected an error when a function-pointer's pointee is not a function-prototype type")
	}
}

func TestTranslateNamedFallsBackToTypedefLookup(t *testing.T) {
	c := &ir.Container{}
	expected := c.AddTypeDef("my_int_t", &ir.Primitive{Name: "native.CInt"}, nil)
	tr := New(c, &diag.RecordingSink{})

	typ, err := tr.Translate(cdecl.CType{Kind: cdecl.KindNamed, Spelling: "my_int_t"})
	if err != nil {
		t.Fatal(err)
	}
	if typ != ir.Type(expected) {
		t.Errorf("expected the registered TypeDef to be returned for a named-type reference")
	}
}

func TestTranslateNamedUnresolvedIsAbsentNotAnError(t *testing.T) {
	tr := New(&ir.Container{}, &diag.RecordingSink{})
	typ, err := tr.Translate(cdecl.CType{Kind: cdecl.KindNamed, Spelling: "never_declared_t"})
	if err != nil {
		t.Fatalf("expected silent degradation to absent, got error: %v", err)
	}
	if typ != nil {
		t.Errorf("expected a nil Type for an unresolved name, got %v", typ)
	}
}

func TestTranslateConstantArrayFallsBackOnNilElement(t *testing.T) {
	sink := &diag.RecordingSink{}
	tr := New(&ir.Container{}, sink)

	typ, err := tr.Translate(cdecl.CType{
		Kind:         cdecl.KindConstantArray,
		Element:      &cdecl.CType{Kind: cdecl.KindFunction},
		ElementCount: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	arr := typ.(*ir.Array)
	if got, want := arr.Element.Str(), "Byte"; got != want {
		t.Errorf("fallback element Str() = %q, want %q", got, want)
	}
	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Level != diag.Warning {
		t.Errorf("expected one warning diagnostic, got %v", sink.Diagnostics)
	}
}

func TestLookupPrimitiveTable(t *testing.T) {
	cases := map[string]string{
		"void":   "Unit",
		"size_t": "native.CSize",
		"double": "native.CDouble",
	}
	for spelling, want := range cases {
		got, ok := LookupPrimitive(spelling)
		if !ok {
			t.Errorf("LookupPrimitive(%q): missing from table", spelling)
			continue
		}
		if got != want {
			t.Errorf("LookupPrimitive(%q) = %q, want %q", spelling, got, want)
		}
	}
}

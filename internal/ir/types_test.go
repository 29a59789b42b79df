package ir

import (
	"testing"
	"time"
)

func TestPrimitiveStr(t *testing.T) {
	p := &Primitive{Name: "native.CInt"}
	if got := p.Str(); got != "native.CInt" {
		t.Errorf("Str() = %q, want %q", got, "native.CInt")
	}
}

func TestPointerStr(t *testing.T) {
	p := &Pointer{Pointee: &Primitive{Name: "native.CInt"}}
	want := "native.Ptr[native.CInt]"
	if got := p.Str(); got != want {
		t.Errorf("Str() = %q, want %q", got, want)
	}
}

func TestArrayStr(t *testing.T) {
	a := &Array{Element: &Primitive{Name: "native.CChar"}, ElementCount: 16}
	want := "native.CArray[native.CChar, native.Nat._16]"
	if got := a.Str(); got != want {
		t.Errorf("Str() = %q, want %q", got, want)
	}
}

func TestFunctionPointerStr(t *testing.T) {
	fp := &FunctionPointer{
		Return:     &Primitive{Name: "native.CInt"},
		Parameters: []Type{&Primitive{Name: "native.CInt"}, &Primitive{Name: "native.CInt"}},
	}
	want := "native.CFuncPtr2[native.CInt, native.CInt, native.CInt]"
	if got := fp.Str(); got != want {
		t.Errorf("Str() = %q, want %q", got, want)
	}
}

func TestTypeEqualsStructuralSameVariant(t *testing.T) {
	a := &Primitive{Name: "native.CInt"}
	b := &Primitive{Name: "native.CInt"}
	if !typeEquals(a, b) {
		t.Errorf("expected two distinct *Primitive with the same Name to be equal")
	}
	c := &Primitive{Name: "native.CLong"}
	if typeEquals(a, c) {
		t.Errorf("expected different primitives to be unequal")
	}
}

func TestTypeEqualsDifferentVariantsNeverEqual(t *testing.T) {
	a := &Primitive{Name: "native.CInt"}
	b := &Pointer{Pointee: a}
	if typeEquals(a, Type(b)) {
		t.Errorf("a Primitive and a Pointer must never compare equal")
	}
}

// TestTypeEqualsTerminatesOnSelfReferentialStruct guards spec.md's
// termination invariant for structural equality: a struct that (through a
// pointer field) reaches itself must not hang typeEquals.
func TestTypeEqualsTerminatesOnSelfReferentialStruct(t *testing.T) {
	node := &Struct{Name: "node_t"}
	node.Fields = []Field{{Name: "next", Type: &Pointer{Pointee: node}}}

	other := &Struct{Name: "node_t"}
	other.Fields = []Field{{Name: "next", Type: &Pointer{Pointee: other}}}

	done := make(chan bool, 1)
	go func() {
		done <- typeEquals(node, other)
	}()
	select {
	case eq := <-done:
		if !eq {
			t.Errorf("expected structurally identical self-referential structs to be equal")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("typeEquals did not terminate on a self-referential struct")
	}
}

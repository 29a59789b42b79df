package ir

import "testing"

// TestAddStructFillsPriorOpaqueTypeDef covers spec.md §8 Scenario S1: a
// forward reference registers an opaque "struct_foo" TypeDef, and the
// later AddStruct call must fill that same TypeDef in place rather than
// creating a second, disconnected one.
func TestAddStructFillsPriorOpaqueTypeDef(t *testing.T) {
	c := &Container{}
	opaque := c.AddTypeDef("struct_foo", nil, nil)

	s := c.AddStruct("foo", []Field{{Name: "x", Type: &Primitive{Name: "native.CInt"}}}, 32, nil, false, false)

	if opaque.Type != Type(s) {
		t.Fatalf("expected the prior opaque TypeDef to be filled in place with the new Struct")
	}
	if len(c.TypeDefs) != 1 {
		t.Fatalf("expected no second TypeDef to be created, got %d TypeDefs", len(c.TypeDefs))
	}
	if got, want := opaque.Rendering(), "native.CStruct1[native.CInt]"; got != want {
		t.Errorf("Rendering() after fill-in = %q, want %q", got, want)
	}
}

func TestAddStructWithoutPriorOpaqueAppendsTypeDef(t *testing.T) {
	c := &Container{}
	c.AddStruct("bar", nil, 0, nil, false, false)

	td := c.GetTypeDefWithName("struct_bar")
	if td == nil {
		t.Fatal("expected AddStruct to append a struct_bar TypeDef when none existed")
	}
}

func TestAddUnionUsesUnionPrefix(t *testing.T) {
	c := &Container{}
	opaque := c.AddTypeDef("union_u", nil, nil)
	u := c.AddUnion("u", []Field{{Name: "i", Type: &Primitive{Name: "native.CInt"}}}, 32, nil)

	if opaque.Type != Type(u) {
		t.Fatalf("expected the prior opaque union_u TypeDef to be filled in place")
	}
}

// TestGetTypeDefWithNameFirstMatch covers spec.md §8 Invariant 2: lookup is
// linear, first-match.
func TestGetTypeDefWithNameFirstMatch(t *testing.T) {
	c := &Container{}
	first := c.AddTypeDef("dup", &Primitive{Name: "native.CInt"}, nil)
	c.AddTypeDef("dup", &Primitive{Name: "native.CLong"}, nil)

	if got := c.GetTypeDefWithName("dup"); got != first {
		t.Errorf("expected the first-registered TypeDef named %q to win", "dup")
	}
}

// TestSetReservedNamesRenamesAgainstSourceNames covers spec.md §8 Scenario
// S3: "native" collides with the target keyword and is renamed, and the
// candidate check is against functions' own source names, not any
// already-assigned renamed value.
func TestSetReservedNamesRenamesAgainstSourceNames(t *testing.T) {
	c := &Container{}
	reserved := c.AddFunction("native", nil, &Primitive{Name: "Unit"}, false, nil)
	collision := c.AddFunction("nativeFunc", nil, &Primitive{Name: "Unit"}, false, nil)
	plain := c.AddFunction("doStuff", nil, &Primitive{Name: "Unit"}, false, nil)

	c.setReservedNames()

	if reserved.OutputName() == "native" {
		t.Errorf("expected the reserved name %q to be renamed", "native")
	}
	if reserved.OutputName() == collision.Name {
		t.Errorf("renamed function must not collide with an existing function's source name %q", collision.Name)
	}
	if plain.RenamedName != "" {
		t.Errorf("a non-reserved function must not be renamed, got %q", plain.RenamedName)
	}
}

func TestSetReservedNamesIsIdempotentUnderGenerate(t *testing.T) {
	c := &Container{}
	f := c.AddFunction("native", nil, &Primitive{Name: "Unit"}, false, nil)
	c.Generate("")
	first := f.RenamedName
	c.Generate("")
	if f.RenamedName != first {
		t.Errorf("Generate must be idempotent: renamed name changed from %q to %q on second call", first, f.RenamedName)
	}
}

// TestFilterByPrefixSplicesTypeDefOnlyReferencedByTypeDefs covers spec.md
// §8 Scenario S4: a typedef matching the exclude prefix and referenced
// only by other typedefs gets spliced out, with its referrer updated to
// point directly at its inner type.
func TestFilterByPrefixSplicesTypeDefOnlyReferencedByTypeDefs(t *testing.T) {
	c := &Container{}
	internal := c.AddTypeDef("priv_word_t", &Primitive{Name: "native.CInt"}, nil)
	public := c.AddTypeDef("word_t", internal, nil)

	c.filterByPrefix("priv_")

	if got := c.GetTypeDefWithName("priv_word_t"); got != nil {
		t.Errorf("expected priv_word_t to be spliced out")
	}
	if !typeEquals(public.Type, &Primitive{Name: "native.CInt"}) {
		t.Errorf("expected word_t to now point directly at native.CInt, got %#v", public.Type)
	}
}

func TestFilterByPrefixKeepsTypeDefStillUsedElsewhere(t *testing.T) {
	c := &Container{}
	shared := c.AddTypeDef("priv_shared_t", &Primitive{Name: "native.CInt"}, nil)
	c.AddFunction("use", []Parameter{{Name: "p", Type: shared}}, &Primitive{Name: "Unit"}, false, nil)

	c.filterByPrefix("priv_")

	if got := c.GetTypeDefWithName("priv_shared_t"); got == nil {
		t.Errorf("expected priv_shared_t to survive: it is referenced by a function, not only by other typedefs")
	}
}

func TestFilterByPrefixDropsFunctionsDefinesAndVariables(t *testing.T) {
	c := &Container{}
	c.AddFunction("priv_helper", nil, &Primitive{Name: "Unit"}, false, nil)
	c.AddFunction("public_fn", nil, &Primitive{Name: "Unit"}, false, nil)
	c.AddVariable("priv_var", &Primitive{Name: "native.CInt"}, nil)
	c.AddLiteralDefine("priv_lit", "1", &Primitive{Name: "native.CInt"})

	c.filterByPrefix("priv_")

	if len(c.Functions) != 1 || c.Functions[0].Name != "public_fn" {
		t.Errorf("expected only public_fn to survive prefix filtering, got %v", c.Functions)
	}
	if len(c.Variables) != 0 {
		t.Errorf("expected priv_ variable to be dropped")
	}
	if len(c.LiteralDefines) != 0 {
		t.Errorf("expected priv_ literal define to be dropped")
	}
}

func TestGetDefineForVarAndRemoveDefine(t *testing.T) {
	c := &Container{}
	c.AddPossibleVarDefine("FOO", "foo_var")
	if got, want := c.GetDefineForVar("foo_var"), "FOO"; got != want {
		t.Errorf("GetDefineForVar() = %q, want %q", got, want)
	}

	c.AddLiteralDefine("BAR", "2", &Primitive{Name: "native.CInt"})
	c.RemoveDefine("BAR")
	if c.GetTypeDefWithName("BAR") != nil {
		t.Fatal("unreachable: BAR is a define, not a typedef")
	}
	for _, l := range c.LiteralDefines {
		if l.Name == "BAR" {
			t.Errorf("expected RemoveDefine to purge BAR from LiteralDefines")
		}
	}
}

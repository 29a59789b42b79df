// Package ir holds the intermediate representation of a translated C
// translation unit: a closed family of types (this file), the declaration
// entities that reference them (decls.go), the container that owns and
// looks them up (container.go), and the reachability/cycle queries used to
// decide what gets emitted (reachability.go, cycles.go).
package ir

import "fmt"

// Type is the closed family of IR type variants described in spec.md §3.1.
// Every C type translates to exactly one of these. TypeDef, Struct, Union
// and Enum are simultaneously declaration entities (decls.go) and usable as
// types: the same *TypeDef/*Struct/*Union/*Enum value fills both roles.
type Type interface {
	// Str renders the entity's textual schema (spec.md §4.7). It must
	// terminate on cyclic graphs by only ever looking at a node's own
	// immediate fields, never recursing through a TypeDef's referenced
	// type beyond one level when that type is itself composite (the
	// composite's own Str is responsible for its own members, and the
	// container only ever calls Str on already-finalized declarations).
	Str() string

	// usesType reports whether this type references target in its
	// subtree. stopOnTypeDefs makes TypeDef edges opaque to the search
	// (used by the prefix-filter "referenced only by other typedefs"
	// check, spec.md §4.3). visited is a set of node identities used to
	// terminate on cycles; re-entry returns false (spec.md §4.4, §5).
	usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool
}

// Primitive is a target-language primitive, already mapped from a C
// spelling via the table in spec.md §4.1 (including the single opaque
// C-string primitive and the Unit/void primitive).
type Primitive struct {
	// Name is the target-language token, e.g. "native.CInt", "Unit", or
	// the C-string primitive's token.
	Name string
}

func (p *Primitive) Str() string { return p.Name }

func (p *Primitive) usesType(target Type, _ bool, _ map[Type]bool) bool {
	return false
}

// Pointer wraps a pointee IrType. The translator (internal/translator)
// special-cases void* into Pointer{Byte} and char*/signed char* into the
// CString primitive, so the latter two never become a Pointer, per spec.md
// §4.1 rule 3.
type Pointer struct {
	Pointee Type
}

func (p *Pointer) Str() string { return fmt.Sprintf("native.Ptr[%s]", p.Pointee.Str()) }

func (p *Pointer) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	return typeEquals(p.Pointee, target) || p.Pointee.usesType(target, stopOnTypeDefs, visited)
}

// Array is a fixed-size element array; ElementCount is non-negative per
// spec.md §3.1.
type Array struct {
	Element      Type
	ElementCount int
}

func (a *Array) Str() string {
	return fmt.Sprintf("native.CArray[%s, native.Nat._%d]", a.Element.Str(), a.ElementCount)
}

func (a *Array) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	return typeEquals(a.Element, target) || a.Element.usesType(target, stopOnTypeDefs, visited)
}

// FunctionPointer is a pointer-to-function-prototype IrType: a return
// type, an ordered parameter list, and a variadic flag (spec.md §3.1).
type FunctionPointer struct {
	Return     Type
	Parameters []Type
	Variadic   bool
}

func (f *FunctionPointer) Str() string {
	s := fmt.Sprintf("native.CFuncPtr%d[", len(f.Parameters))
	for _, p := range f.Parameters {
		s += p.Str() + ", "
	}
	s += f.Return.Str() + "]"
	return s
}

func (f *FunctionPointer) usesType(target Type, stopOnTypeDefs bool, visited map[Type]bool) bool {
	if typeEquals(f.Return, target) || f.Return.usesType(target, stopOnTypeDefs, visited) {
		return true
	}
	for _, p := range f.Parameters {
		if typeEquals(p, target) || p.usesType(target, stopOnTypeDefs, visited) {
			return true
		}
	}
	return false
}

// typeEquals implements the structural equality law of spec.md §3.1:
// same variant, component-wise equal; named composites (Struct/Union/Enum/
// TypeDef) fall back to name+content equality. visited is reset per call
// site and records every (a, b) pair currently being compared, which
// guarantees termination on cyclic graphs: if a and b are the same Go
// pointer the types are trivially equal, a pair met again further down the
// comparison is treated as equal, and otherwise distinct pointers with
// identical names and identical content are equal by the named-composite
// rule below.
func typeEquals(a, b Type) bool {
	return typeEqualsVisited(a, b, map[[2]Type]bool{})
}

func typeEqualsVisited(a, b Type, visited map[[2]Type]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	key := [2]Type{a, b}
	if visited[key] {
		// Already comparing this exact pair further up the stack:
		// treat as equal to break the cycle, consistent with the
		// identity-based reentry rule used throughout this package.
		return true
	}
	visited[key] = true

	switch av := a.(type) {
	case *Primitive:
		bv, ok := b.(*Primitive)
		return ok && av.Name == bv.Name
	case *Pointer:
		bv, ok := b.(*Pointer)
		return ok && typeEqualsVisited(av.Pointee, bv.Pointee, visited)
	case *Array:
		bv, ok := b.(*Array)
		return ok && av.ElementCount == bv.ElementCount && typeEqualsVisited(av.Element, bv.Element, visited)
	case *FunctionPointer:
		bv, ok := b.(*FunctionPointer)
		if !ok || av.Variadic != bv.Variadic || len(av.Parameters) != len(bv.Parameters) {
			return false
		}
		if !typeEqualsVisited(av.Return, bv.Return, visited) {
			return false
		}
		for i := range av.Parameters {
			if !typeEqualsVisited(av.Parameters[i], bv.Parameters[i], visited) {
				return false
			}
		}
		return true
	case *TypeDef:
		bv, ok := b.(*TypeDef)
		if !ok || av.Name != bv.Name {
			return false
		}
		if av.Type == nil || bv.Type == nil {
			return av.Type == nil && bv.Type == nil
		}
		return typeEqualsVisited(av.Type, bv.Type, visited)
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && av.Name == bv.Name && structContentEquals(av, bv, visited)
	case *Union:
		bv, ok := b.(*Union)
		return ok && av.Name == bv.Name && unionContentEquals(av, bv, visited)
	case *Enum:
		bv, ok := b.(*Enum)
		return ok && av.Name == bv.Name && enumContentEquals(av, bv)
	default:
		return false
	}
}

func structContentEquals(a, b *Struct, visited map[[2]Type]bool) bool {
	if a.Size != b.Size || a.Packed != b.Packed || a.Bitfield != b.Bitfield || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name {
			return false
		}
		if !typeEqualsVisited(a.Fields[i].Type, b.Fields[i].Type, visited) {
			return false
		}
	}
	return true
}

func unionContentEquals(a, b *Union, visited map[[2]Type]bool) bool {
	if a.Size != b.Size || len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name {
			return false
		}
		if !typeEqualsVisited(a.Fields[i].Type, b.Fields[i].Type, visited) {
			return false
		}
	}
	return true
}

func enumContentEquals(a, b *Enum) bool {
	if a.UnderlyingType != b.UnderlyingType || len(a.Enumerators) != len(b.Enumerators) {
		return false
	}
	for i := range a.Enumerators {
		if a.Enumerators[i] != b.Enumerators[i] {
			return false
		}
	}
	return true
}

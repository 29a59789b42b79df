package ir

// This file implements the reachability/pruning queries of spec.md §4.4:
// a record, enum or typedef is emitted if something that is itself emitted
// depends on it, starting from the unconditionally-emitted roots
// (functions, variables, var-defines, literal-defines), or else if it is
// declared in the main file (see shouldOutputStruct below). The mutual
// recursion between isTypeUsed and shouldOutput, threaded through a single
// shared visited set, is what makes this terminate on the record cycles
// spec.md §3.4 allows (original_source/bindgen/ir/IR.cpp
// isTypeUsed/shouldOutputStruct/shouldOutputUnion/shouldOutputTypeDef).

// isTypeUsed reports whether target is referenced, directly or
// transitively, by any always-emitted root or by any other declaration
// that shouldOutput judges emitted. visited is shared across the whole
// query so a record cycle is only ever explored once per root (spec.md
// §4.4, §9 Open Question on shared-visited-set factoring).
func (c *Container) isTypeUsed(target Type) bool {
	visited := map[Type]bool{}
	return c.isTypeUsedVisited(target, visited)
}

func (c *Container) isTypeUsedVisited(target Type, visited map[Type]bool) bool {
	for _, f := range c.Functions {
		if typeEquals(f.Return, target) || f.usesType(target, false, visited) {
			return true
		}
	}
	for _, v := range c.Variables {
		if typeEquals(v.Type, target) || v.usesType(target, false, visited) {
			return true
		}
	}
	for _, l := range c.LiteralDefines {
		if typeEquals(l.Type, target) || l.usesType(target, false, visited) {
			return true
		}
	}
	for _, vd := range c.VarDefines {
		if vd.usesType(target, false, visited) {
			return true
		}
	}
	for _, s := range c.Structs {
		if Type(s) == target || visited[s] {
			continue
		}
		visited[s] = true
		used := c.shouldOutputStruct(s, visited) && s.usesType(target, false, visited)
		if used {
			return true
		}
		delete(visited, s)
	}
	for _, u := range c.Unions {
		if Type(u) == target || visited[u] {
			continue
		}
		visited[u] = true
		used := c.shouldOutputUnion(u, visited) && u.usesType(target, false, visited)
		if used {
			return true
		}
		delete(visited, u)
	}
	for _, td := range c.TypeDefs {
		if Type(td) == target || td.Type == nil || visited[td] {
			continue
		}
		visited[td] = true
		used := c.shouldOutputTypeDef(td, visited) && td.usesType(target, false, visited)
		if used {
			return true
		}
		delete(visited, td)
	}
	return false
}

// ShouldOutput is the public entry point codegen uses to decide whether a
// declaration belongs in the emitted module (spec.md §4.4).
func (c *Container) ShouldOutput(decl Declaration) bool {
	return c.shouldOutput(decl)
}

// shouldOutput reports whether decl belongs in the emitted module: records,
// enums and typedefs are emitted if reachable from a root, or if unreachable
// but declared in the main file (spec.md §4.4; opaque typedef aliases are
// the exception); functions/variables/defines are always-emitted roots
// themselves.
func (c *Container) shouldOutput(decl Declaration) bool {
	visited := map[Type]bool{}
	switch d := decl.(type) {
	case *Struct:
		return c.shouldOutputStruct(d, visited)
	case *Union:
		return c.shouldOutputUnion(d, visited)
	case *Enum:
		return c.shouldOutputEnum(d, visited)
	case *TypeDef:
		return c.shouldOutputTypeDef(d, visited)
	default:
		return true
	}
}

// Each shouldOutput* checks reachability before the main-file filter, in
// original_source/bindgen/ir/IR.cpp shouldOutput's order: "if isTypeUsed:
// emit; else if not in main file: don't; else: emit" (struct/union/enum)
// "... else: emit unless it's an alias for an opaque type" (typedef). A
// declaration reachable from an emitted root is emitted regardless of
// which header defined it; an unreachable one is emitted anyway as long as
// it's in the main file — only unreachable declarations from an included
// header are actually pruned.

func (c *Container) shouldOutputStruct(s *Struct, visited map[Type]bool) bool {
	if c.isTypeUsedVisited(Type(s), visited) {
		return true
	}
	return c.inMainFile(s.Location)
}

func (c *Container) shouldOutputUnion(u *Union, visited map[Type]bool) bool {
	if c.isTypeUsedVisited(Type(u), visited) {
		return true
	}
	return c.inMainFile(u.Location)
}

func (c *Container) shouldOutputEnum(e *Enum, visited map[Type]bool) bool {
	if c.isTypeUsedVisited(Type(e), visited) {
		return true
	}
	return c.inMainFile(e.Location)
}

func (c *Container) shouldOutputTypeDef(td *TypeDef, visited map[Type]bool) bool {
	if c.isTypeUsedVisited(Type(td), visited) {
		return true
	}
	if !c.inMainFile(td.Location) {
		return false
	}
	// An unused main-file typedef is still printed unless it's an alias
	// for an opaque (unresolved) type, which has nothing to splice into
	// callers and is never itself a root (see HasIllegalOpaqueUsage below
	// for what happens when a variable references it anyway).
	return td.Type != nil
}

// HasIllegalOpaqueUsage implements spec.md §9's literal resolution for the
// "illegal opaque usage" open question: after Generate, a variable whose
// reachable type tree contains a TypeDef with an absent inner type is
// illegal-opaque, including reachability through a pointer — the spec's
// resolution text draws no by-value/by-reference distinction, so neither
// does this.
func (c *Container) HasIllegalOpaqueUsage(v *Variable) bool {
	return containsOpaqueTypeDef(v.Type, map[Type]bool{})
}

func containsOpaqueTypeDef(t Type, visited map[Type]bool) bool {
	if t == nil || visited[t] {
		return false
	}
	visited[t] = true
	switch v := t.(type) {
	case *TypeDef:
		if v.Type == nil {
			return true
		}
		return containsOpaqueTypeDef(v.Type, visited)
	case *Pointer:
		return containsOpaqueTypeDef(v.Pointee, visited)
	case *Array:
		return containsOpaqueTypeDef(v.Element, visited)
	case *FunctionPointer:
		if containsOpaqueTypeDef(v.Return, visited) {
			return true
		}
		for _, p := range v.Parameters {
			if containsOpaqueTypeDef(p, visited) {
				return true
			}
		}
		return false
	case *Struct:
		for _, f := range v.Fields {
			if containsOpaqueTypeDef(f.Type, visited) {
				return true
			}
		}
		return false
	case *Union:
		for _, f := range v.Fields {
			if containsOpaqueTypeDef(f.Type, visited) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

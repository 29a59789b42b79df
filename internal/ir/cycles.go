package ir

// CycleNode is one step of a detected composite-member cycle, carrying
// enough identity to let codegen name the helper class it forces (spec.md
// §4.5, §4.8 supplemented feature).
type CycleNode struct {
	// Record is the *Struct or *Union at this step.
	Record Type
	// FieldName is the member that continues the cycle.
	FieldName string
}

// FindAllCycles walks every pointer-free (composite-by-value) member edge
// reachable from start and reports every cycle found, each as the ordered
// path of CycleNodes from start back to itself. A pointer or
// array-of-pointer member ends that edge without continuing the walk:
// storage through a pointer is a fixed-size handle regardless of what it
// points to, so it can never be the edge that makes a record's own layout
// self-referential (spec.md §4.5).
func FindAllCycles(start Type) [][]CycleNode {
	var cycles [][]CycleNode
	var path []CycleNode
	onPath := map[Type]int{}
	visit(start, &path, onPath, &cycles)
	return cycles
}

func visit(node Type, path *[]CycleNode, onPath map[Type]int, cycles *[][]CycleNode) {
	fields, ok := recordFields(node)
	if !ok {
		return
	}
	if startIdx, seen := onPath[node]; seen {
		// Only a cycle that returns to start (index 0 on the path) is
		// reported; a cycle merely reachable from start is not start's own.
		if startIdx == 0 {
			cyclePath := append([]CycleNode(nil), (*path)[startIdx:]...)
			*cycles = append(*cycles, cyclePath)
		}
		return
	}
	onPath[node] = len(*path)
	for _, f := range fields {
		next, ok := compositeMemberTarget(f.Type)
		if !ok {
			continue
		}
		*path = append(*path, CycleNode{Record: node, FieldName: f.Name})
		visit(next, path, onPath, cycles)
		*path = (*path)[:len(*path)-1]
	}
	delete(onPath, node)
}

func recordFields(t Type) ([]Field, bool) {
	switch v := t.(type) {
	case *Struct:
		return v.Fields, true
	case *Union:
		return v.Fields, true
	case *TypeDef:
		if v.Type == nil {
			return nil, false
		}
		return recordFields(v.Type)
	default:
		return nil, false
	}
}

// compositeMemberTarget reports the record this member continues the
// by-value composite chain into, if any. Pointer and FunctionPointer
// members never continue it (spec.md §4.5); an Array of a composite
// element does, since its storage still embeds the element by value.
func compositeMemberTarget(t Type) (Type, bool) {
	switch v := t.(type) {
	case *Struct, *Union:
		return t, true
	case *TypeDef:
		if v.Type == nil {
			return nil, false
		}
		return compositeMemberTarget(v.Type)
	case *Array:
		return compositeMemberTarget(v.Element)
	default:
		return nil, false
	}
}

package engine

// topoSort returns a depth-first post-order over the parent relation rooted
// at terminal: every node appears strictly after all of its parents, and a
// node shared by several paths (a diamond) appears exactly once. The
// backward executor walks the result in reverse, which guarantees a node
// only propagates after all of its consumers have accumulated into it.
//
// The traversal uses an explicit stack rather than recursion, so depth is
// bounded by the heap, not the goroutine stack. The visited set is keyed by
// node id and never touches a node guard, so no handle is ever compared or
// inspected while a lock is held.
func topoSort(terminal *Value) []*Value {
	type frame struct {
		node *Value
		next int // index of the next parent to descend into
	}

	var order []*Value
	visited := map[uint64]struct{}{terminal.id: {}}
	stack := []frame{{node: terminal}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next < len(f.node.prev) {
			parent := f.node.prev[f.next]
			f.next++
			if _, ok := visited[parent.id]; !ok {
				visited[parent.id] = struct{}{}
				stack = append(stack, frame{node: parent})
			}
			continue
		}
		order = append(order, f.node)
		stack = stack[:len(stack)-1]
	}
	return order
}

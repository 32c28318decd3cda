package workflow

// VisitFunc receives each node with its zero-based depth. Returning false
// stops the walk early.
type VisitFunc func(node *ActivityNode, depth int) bool

type walkFrame struct {
	node  *ActivityNode
	depth int
}

// Walk traverses the activity tree iteratively with an explicit stack, so
// deep or adversarial structures cannot exhaust the call stack. Siblings are
// visited in document order.
func Walk(activities []ActivityNode, visit VisitFunc) {
	if len(activities) == 0 {
		return
	}

	// Push roots in reverse so the stack pops them in document order.
	stack := make([]walkFrame, 0, len(activities))
	for i := len(activities) - 1; i >= 0; i-- {
		stack = append(stack, walkFrame{node: &activities[i], depth: 0})
	}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(frame.node, frame.depth) {
			return
		}

		children := frame.node.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkFrame{node: &children[i], depth: frame.depth + 1})
		}
	}
}

// MaxDepth returns the maximum nesting depth of the tree. A root with no
// children contributes depth 0; each nesting level adds 1.
func MaxDepth(activities []ActivityNode) int {
	max := 0
	Walk(activities, func(_ *ActivityNode, depth int) bool {
		if depth > max {
			max = depth
		}
		return true
	})
	return max
}

// CountNodes returns the total number of activity nodes in the tree
func CountNodes(activities []ActivityNode) int {
	count := 0
	Walk(activities, func(_ *ActivityNode, _ int) bool {
		count++
		return true
	})
	return count
}

package engine

import "math"

// ruleKind enumerates the primitive backward rules. Composed operators
// (sub, div, neg) reuse the primitives of their building blocks, so the
// diagnostic Op tag and the rule kind can differ.
type ruleKind int

const (
	ruleAdd ruleKind = iota
	ruleMul
	rulePow
	ruleReLU
)

// rule is the deferred backward computation of a node, as a tagged record
// instead of a heap-allocated closure: the kind, the operand handles the
// gradient flows to, and the forward-pass scalars the local derivatives
// need. A single dispatch in the executor interprets it, and consumption is
// structural: the node's rule pointer is cleared after it runs.
type rule struct {
	kind ruleKind
	x, y *Value

	// xData and yData are the operands' forward values at construction time
	// (mul needs the opposite operand, pow needs its base).
	xData, yData float64

	// exp is the pow exponent.
	exp float64
}

// Backward runs reverse-mode differentiation from v: it seeds dv/dv = 1 and
// propagates gradient to every node reachable through the parent relation,
// each node's rule firing exactly once, only after all of its consumers
// have contributed. Afterwards every reachable node's Grad holds the partial
// derivative of v with respect to it.
//
// Rules are one-shot. Calling Backward on a value with no forward history
// just seeds its gradient; calling it again over an already-drained graph
// re-seeds the terminal and is otherwise a no-op. Two concurrent Backward
// passes over graphs sharing nodes are not synchronized here: callers hold
// an external barrier (the usual zero/forward/backward/step cycle).
func (v *Value) Backward() {
	order := topoSort(v)
	v.setGrad(1.0)
	for i := len(order) - 1; i >= 0; i-- {
		order[i].propagate()
	}
}

// propagate takes and runs the node's backward rule, accumulating into the
// parents' gradients. Leaves and already-drained nodes are no-ops.
func (v *Value) propagate() {
	r := v.rule
	if r == nil {
		if len(v.prev) > 0 && !v.consumed {
			panic(ErrMissingRule)
		}
		return
	}
	v.rule = nil
	v.consumed = true

	outGrad := v.Grad()
	switch r.kind {
	case ruleAdd:
		r.x.accumulate(outGrad)
		r.y.accumulate(outGrad)
	case ruleMul:
		r.x.accumulate(r.yData * outGrad)
		r.y.accumulate(r.xData * outGrad)
	case rulePow:
		r.x.accumulate(r.exp * math.Pow(r.xData, r.exp-1) * outGrad)
	case ruleReLU:
		if v.Data() > 0 {
			r.x.accumulate(outGrad)
		}
	}
}

package engine

import (
	"fmt"
	"sync/atomic"
)

// Op identifies the operation that produced a Value. It is informational
// only: the backward pass dispatches on the node's rule, never on Op.
type Op int

const (
	// OpLeaf marks a value created directly from a scalar.
	OpLeaf Op = iota
	OpAdd
	OpSub
	OpMul
	OpNeg
	OpDiv
	OpPow
	OpReLU
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpLeaf:
		return "leaf"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpNeg:
		return "neg"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	case OpReLU:
		return "relu"
	default:
		return fmt.Sprintf("unknown(%d)", int(op))
	}
}

// lastID is the source of process-unique node identifiers.
var lastID atomic.Uint64

// Value is a node in the computation graph: a scalar, its accumulated
// gradient, the operation that produced it, the deduplicated set of nodes it
// was computed from, and the rule that pushes gradient onto them.
//
// A *Value is the shareable handle to the node. Copying the pointer shares
// the node; identity is the node id, not the scalar, so structurally equal
// but distinct nodes are never conflated.
type Value struct {
	id    uint64
	guard guard

	data float64
	grad float64
	op   Op

	// prev holds this node's parents, deduplicated by identity. It is fixed
	// at construction and never mutated afterwards.
	prev []*Value

	// rule is nil for leaves and for nodes that have already propagated;
	// consumed distinguishes the two.
	rule     *rule
	consumed bool
}

// New creates a leaf value from a scalar. Leaves have no parents and no
// backward rule; their gradient is only ever written by consumers.
func New(data float64) *Value {
	return newNode(data, OpLeaf, nil)
}

func newNode(data float64, op Op, prev []*Value) *Value {
	return &Value{
		id:    lastID.Add(1),
		guard: newGuard(),
		data:  data,
		op:    op,
		prev:  prev,
	}
}

// ID returns the process-unique identifier of the underlying node. It is
// stable for the node's lifetime.
func (v *Value) ID() uint64 { return v.id }

// Op returns the operation tag of the underlying node.
func (v *Value) Op() Op { return v.op }

// Equal reports whether both handles reference the same underlying node.
// Equality never inspects data, and never takes the node lock: ids are
// immutable.
func (v *Value) Equal(other *Value) bool {
	return other != nil && v.id == other.id
}

// Data returns the forward-pass scalar.
func (v *Value) Data() float64 {
	v.guard.lock()
	defer v.guard.unlock()
	return v.data
}

// Grad returns the accumulated gradient of the terminal with respect to this
// value, valid after a Backward pass over a graph containing it.
func (v *Value) Grad() float64 {
	v.guard.lock()
	defer v.guard.unlock()
	return v.grad
}

// ZeroGrad resets the accumulated gradient to zero in place.
func (v *Value) ZeroGrad() {
	v.guard.lock()
	defer v.guard.unlock()
	v.grad = 0
}

// Step applies one gradient-descent update, data -= lr * grad.
func (v *Value) Step(lr float64) {
	v.guard.lock()
	defer v.guard.unlock()
	v.data -= lr * v.grad
}

// SetData overwrites the forward-pass scalar. Intended for leaves, to load
// parameters back from a saved snapshot; derived nodes are not recomputed.
func (v *Value) SetData(data float64) {
	v.guard.lock()
	defer v.guard.unlock()
	v.data = data
}

// String renders the node for diagnostics.
func (v *Value) String() string {
	v.guard.lock()
	defer v.guard.unlock()
	return fmt.Sprintf("id: %d, data: %v, grad: %v, op: %s", v.id, v.data, v.grad, v.op)
}

// accumulate adds a partial-derivative contribution to the gradient.
func (v *Value) accumulate(delta float64) {
	v.guard.lock()
	v.grad += delta
	v.guard.unlock()
}

// setGrad overwrites the gradient. Used only to seed the terminal node.
func (v *Value) setGrad(g float64) {
	v.guard.lock()
	v.grad = g
	v.guard.unlock()
}

// read returns the forward value under the node guard. Operators use it to
// take a consistent snapshot of each operand without holding any lock across
// node construction.
func (v *Value) read() float64 {
	v.guard.lock()
	defer v.guard.unlock()
	return v.data
}

// dedup collapses duplicate handles (a.Mul(a), a.Add(a)) to a single parent
// entry by node identity. The backward rule still applies every partial
// contribution.
func dedup(vs ...*Value) []*Value {
	out := vs[:0:0]
	for _, v := range vs {
		dup := false
		for _, seen := range out {
			if seen.id == v.id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// Package engine implements a reverse-mode automatic differentiation engine
// over scalar values.
//
// The central type is Value: a node in a computation graph that records the
// result of a forward-pass operation, the nodes it was computed from, and a
// backward rule describing how gradient flows to those nodes. Ordinary
// arithmetic on Values builds the graph as a side effect:
//
//	x := engine.New(-4.0)
//	z := engine.New(2.0).Mul(x).Add(engine.New(2.0)).Add(x)
//	q := z.ReLU().Add(z.Mul(x))
//	h := z.Mul(z).ReLU()
//	y := h.Add(q).Add(q.Mul(x))
//
//	y.Backward()
//	fmt.Println(y.Data()) // -20
//	fmt.Println(x.Grad()) // 46
//
// # Backward Pass
//
// Backward performs a depth-first post-order topological sort over the parent
// relation, seeds the terminal node's gradient with 1 and then walks the order
// in reverse, dispatching each node's backward rule exactly once. Gradient
// accumulation is additive, so a value used in several places (x*x, shared
// model parameters) receives the sum of all its partial-derivative
// contributions.
//
// Backward rules are one-shot: once a node has propagated, its rule is
// consumed. Re-running Backward on an already-drained graph only re-seeds the
// terminal gradient; rebuild the forward graph to differentiate again.
//
// # Composed Operators
//
// Sub, Div and Neg are composed from the primitive rules: a.Sub(b) is
// a.Add(b.Neg()), a.Div(b) is a.Mul(b.Pow(-1)), and Neg multiplies by a -1
// leaf. The composition allocates intermediate nodes, which is visible in the
// topological order but not in the resulting gradients. The operation tag of
// the composed result is corrected for diagnostics.
//
// # Concurrency Modes
//
// The engine supports two access disciplines, selected once per program with
// SetMode before any Values are created:
//
//   - ModeShared (default): every node carries a mutex. Independent goroutines
//     may build independent subgraphs concurrently, even when they share
//     parameter leaves. A single Backward over the combined terminal must be
//     the only writer of gradients; callers serialize epochs externally
//     (zero gradients, forward, backward, step).
//   - ModeSingleOwner: no locking. Nodes carry a borrow flag instead, and an
//     overlapping exclusive access panics with ErrAlreadyBorrowed. Use when
//     all graph construction and backward passes happen on one goroutine.
//
// Numeric edge cases (division by zero, zero raised to a negative power)
// follow ordinary floating-point semantics: Inf and NaN propagate through the
// graph and are never reported as errors.
package engine

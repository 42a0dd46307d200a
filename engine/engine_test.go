package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaf(t *testing.T) {
	x := New(4.0)
	assert.Equal(t, 4.0, x.Data())
	assert.Equal(t, 0.0, x.Grad())
	assert.Equal(t, OpLeaf, x.Op())
	assert.Empty(t, x.prev)
	assert.Nil(t, x.rule)
}

func TestUniqueIDs(t *testing.T) {
	// Identity is minted per node, never derived from the scalar.
	a := New(1.0)
	b := New(1.0)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestAdd(t *testing.T) {
	x := New(4.0)
	y := New(2.0)
	z := x.Add(y)
	assert.Equal(t, 6.0, z.Data())
	assert.Equal(t, OpAdd, z.Op())
	assert.Len(t, z.prev, 2)
}

func TestMul(t *testing.T) {
	z := New(2.0).Mul(New(6.0))
	assert.Equal(t, 12.0, z.Data())

	z = New(-2.0).Mul(New(6.0))
	assert.Equal(t, -12.0, z.Data())
}

func TestSelfOperandDedup(t *testing.T) {
	// x*x keeps a single parent entry but both derivative contributions.
	x := New(3.0)
	sq := x.Mul(x)
	assert.Len(t, sq.prev, 1)

	sq.Backward()
	assert.Equal(t, 6.0, x.Grad()) // d(x^2)/dx = 2x
}

func TestAddSelfAccumulates(t *testing.T) {
	x := New(5.0)
	y := x.Add(x)
	y.Backward()
	assert.Equal(t, 10.0, y.Data())
	assert.Equal(t, 2.0, x.Grad())
}

func TestComposedOperatorTags(t *testing.T) {
	a := New(3.0)
	b := New(2.0)

	sub := a.Sub(b)
	assert.Equal(t, 1.0, sub.Data())
	assert.Equal(t, OpSub, sub.Op())

	div := New(8.0).Div(New(2.0))
	assert.Equal(t, 4.0, div.Data())
	assert.Equal(t, OpDiv, div.Op())

	neg := New(7.0).Neg()
	assert.Equal(t, -7.0, neg.Data())
	assert.Equal(t, OpNeg, neg.Op())
}

func TestComposedOperatorsAllocateIntermediates(t *testing.T) {
	// a - b builds a + (-1 * b): the -1 leaf, the product and the sum are
	// all distinct nodes in the traversal.
	a := New(3.0)
	b := New(2.0)
	out := a.Sub(b)

	order := topoSort(out)
	assert.Len(t, order, 5) // a, b, -1, b*-1, a+(b*-1)
}

func TestBackwardSanityCheck(t *testing.T) {
	// Cross-checked against pytorch by the reference implementation.
	x := New(-4.0)
	z := New(2.0).Mul(x).Add(New(2.0)).Add(x)
	q := z.ReLU().Add(z.Mul(x))
	h := z.Mul(z).ReLU()
	y := h.Add(q).Add(q.Mul(x))
	y.Backward()

	assert.Equal(t, -20.0, y.Data())
	assert.Equal(t, 46.0, x.Grad())
}

func TestBackwardMoreOps(t *testing.T) {
	// Cross-checked against pytorch by the reference implementation.
	a := New(-4.0)
	b := New(2.0)
	c := a.Add(b)
	d := a.Mul(b).Add(b.Pow(3.0))
	c = c.Add(c.Add(New(1.0)))
	c = c.Add(New(1.0).Add(c).Add(a.Neg()))
	d = d.Add(d.Mul(New(2.0)).Add(b.Add(a).ReLU()))
	d = d.Add(New(3.0).Mul(d).Add(b.Sub(a).ReLU()))
	e := c.Sub(d)
	f := e.Pow(2.0)
	g := f.Div(New(2.0))
	g = g.Add(New(10.0).Div(f))
	g.Backward()

	assert.InDelta(t, 24.7040816327, g.Data(), 1e-6)
	assert.InDelta(t, 138.8338192420, a.Grad(), 1e-6)
	assert.InDelta(t, 645.5772594752, b.Grad(), 1e-6)
}

func TestReLUAtZero(t *testing.T) {
	x := New(0.0)
	y := x.ReLU()
	y.Backward()

	assert.Equal(t, 0.0, y.Data())
	assert.Equal(t, 0.0, x.Grad())
}

func TestReLUNegative(t *testing.T) {
	x := New(-3.0)
	y := x.ReLU()
	y.Backward()

	assert.Equal(t, 0.0, y.Data())
	assert.Equal(t, 0.0, x.Grad())
}

func TestZeroGrad(t *testing.T) {
	x := New(2.0)
	y := x.Mul(x)
	y.Backward()
	require.NotZero(t, x.Grad())

	x.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())

	// Idempotent regardless of prior state.
	x.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())
}

func TestStep(t *testing.T) {
	x := New(2.0)
	x.Mul(x).Backward()
	require.Equal(t, 4.0, x.Grad())

	x.Step(0.5)
	assert.Equal(t, 0.0, x.Data()) // 2 - 0.5*4
}

func TestBackwardOnLeafIsDegenerate(t *testing.T) {
	x := New(3.0)
	x.Backward()
	assert.Equal(t, 1.0, x.Grad())
	assert.Equal(t, 3.0, x.Data())
}

func TestBackwardRulesAreOneShot(t *testing.T) {
	x := New(-4.0)
	y := x.Mul(x).Add(x)
	y.Backward()
	require.Equal(t, -7.0, x.Grad()) // 2x + 1

	// Second pass over the drained graph re-seeds the terminal but cannot
	// double-apply any contribution.
	y.Backward()
	assert.Equal(t, -7.0, x.Grad())
	assert.Equal(t, 1.0, y.Grad())
}

func TestDivPowRoundTrip(t *testing.T) {
	for _, v := range []float64{3.0, -0.5, 1e6} {
		a := New(v)
		out := a.Div(a)
		assert.InDelta(t, 1.0, out.Data(), 1e-9)

		out.Backward()
		// d/dv (v/v) = 0
		assert.InDelta(t, 0.0, a.Grad(), 1e-9)
	}
}

func TestDegenerateNumericInputsPropagate(t *testing.T) {
	inf := New(0.0).Pow(-1.0)
	assert.True(t, math.IsInf(inf.Data(), 1))

	nan := inf.Mul(New(0.0))
	assert.True(t, math.IsNaN(nan.Data()))

	// Backward also stays total: gradients may be Inf/NaN, never a panic.
	nan.Backward()
}

func TestString(t *testing.T) {
	x := New(1.5)
	s := x.String()
	assert.Contains(t, s, "data: 1.5")
	assert.Contains(t, s, "op: leaf")
}

func TestMissingRulePanics(t *testing.T) {
	// Unreachable through the public constructors; simulate the corrupted
	// node directly.
	x := New(1.0)
	broken := newNode(2.0, OpAdd, []*Value{x})

	assert.PanicsWithValue(t, ErrMissingRule, func() {
		broken.Backward()
	})
}

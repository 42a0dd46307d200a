package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/scalargrad/engine"
)

func TestNeuronForward(t *testing.T) {
	// Two rngs with the same seed draw the same weights, so the expected
	// activation can be computed outside the graph.
	n := NewNeuron(rand.New(rand.NewSource(42)), 2, false)

	ref := rand.New(rand.NewSource(42))
	w0 := ref.Float64()*2 - 1
	w1 := ref.Float64()*2 - 1

	out := n.Forward([]*engine.Value{engine.New(3.0), engine.New(4.0)})
	assert.InDelta(t, w0*3.0+w1*4.0, out.Data(), 1e-12)
}

func TestNeuronNonlinearClamps(t *testing.T) {
	n := NewNeuron(rand.New(rand.NewSource(42)), 2, true)

	ref := rand.New(rand.NewSource(42))
	w0 := ref.Float64()*2 - 1
	w1 := ref.Float64()*2 - 1

	// Drive the pre-activation negative and expect the clamp.
	x0, x1 := -10*w0, -10*w1
	out := n.Forward([]*engine.Value{engine.New(x0), engine.New(x1)})
	require.Negative(t, w0*x0+w1*x1)
	assert.Equal(t, 0.0, out.Data())
}

func TestNeuronInputMismatchPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n := NewNeuron(rng, 3, false)
	assert.Panics(t, func() {
		n.Forward([]*engine.Value{engine.New(1.0)})
	})
}

func TestNeuronInit(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := NewNeuron(rng, 16, true)

	for _, w := range n.weights {
		assert.GreaterOrEqual(t, w.Data(), -1.0)
		assert.Less(t, w.Data(), 1.0)
	}
	assert.Equal(t, 0.0, n.bias.Data())
	assert.Len(t, n.Parameters(), 17)
}

func TestMLPParameterCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := NewMLP(rng, 2, 16, 16, 1)

	// (2*16+16) + (16*16+16) + (16*1+1)
	assert.Len(t, model.Parameters(), 337)
}

func TestMLPForwardShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := NewMLP(rng, 2, 4, 3)

	out := model.Forward([]*engine.Value{engine.New(0.5), engine.New(-0.5)})
	assert.Len(t, out, 3)
}

func TestMLPHiddenLayersAreNonlinear(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := NewMLP(rng, 2, 4, 1)

	for _, n := range model.layers[0].neurons {
		assert.True(t, n.nonlinear)
	}
	for _, n := range model.layers[1].neurons {
		assert.False(t, n.nonlinear)
	}
}

func TestMLPZeroGradAndStep(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	model := NewMLP(rng, 2, 4, 1)

	out := model.Forward([]*engine.Value{engine.New(1.0), engine.New(2.0)})[0]
	out.Backward()

	anyGrad := false
	for _, p := range model.Parameters() {
		if p.Grad() != 0 {
			anyGrad = true
			break
		}
	}
	require.True(t, anyGrad)

	before := model.Parameters()[0].Data()
	grad := model.Parameters()[0].Grad()
	model.Step(0.1)
	assert.InDelta(t, before-0.1*grad, model.Parameters()[0].Data(), 1e-12)

	model.ZeroGrad()
	for _, p := range model.Parameters() {
		assert.Equal(t, 0.0, p.Grad())
	}
}

func TestMLPString(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	model := NewMLP(rng, 2, 2, 1)

	s := model.String()
	assert.Contains(t, s, "MLP:")
	assert.Contains(t, s, "Neuron: (2, ReLU)")
	assert.Contains(t, s, "Neuron: (2, Linear)")
}

func TestNewMLPTooFewDimsPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { NewMLP(rng, 2) })
}

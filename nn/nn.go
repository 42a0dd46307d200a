package nn

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/smallnest/scalargrad/engine"
)

// Module is anything holding trainable parameters.
type Module interface {
	// Parameters returns every trainable leaf of the module.
	Parameters() []*engine.Value

	// ZeroGrad resets the gradient of every parameter.
	ZeroGrad()
}

// Neuron computes relu(w·x + b), or the linear w·x + b when nonlinear is
// false. Weights start uniform in [-1, 1), the bias at zero.
type Neuron struct {
	weights   []*engine.Value
	bias      *engine.Value
	nonlinear bool
	inDim     int
}

// NewNeuron creates a neuron with inDim inputs.
func NewNeuron(rng *rand.Rand, inDim int, nonlinear bool) *Neuron {
	weights := make([]*engine.Value, inDim)
	for i := range weights {
		weights[i] = engine.New(rng.Float64()*2 - 1)
	}
	return &Neuron{
		weights:   weights,
		bias:      engine.New(0),
		nonlinear: nonlinear,
		inDim:     inDim,
	}
}

// Forward computes the neuron's activation for one datapoint.
func (n *Neuron) Forward(x []*engine.Value) *engine.Value {
	if len(x) != n.inDim {
		panic(fmt.Sprintf("nn: neuron expects %d inputs, got %d", n.inDim, len(x)))
	}
	act := n.bias
	for i, wi := range n.weights {
		act = act.Add(wi.Mul(x[i]))
	}
	if n.nonlinear {
		return act.ReLU()
	}
	return act
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*engine.Value {
	params := make([]*engine.Value, 0, len(n.weights)+1)
	params = append(params, n.weights...)
	return append(params, n.bias)
}

// ZeroGrad resets the gradients of the neuron's parameters.
func (n *Neuron) ZeroGrad() {
	for _, p := range n.Parameters() {
		p.ZeroGrad()
	}
}

// Layer is a fully connected set of neurons sharing an input.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer mapping inDim inputs to outDim outputs.
func NewLayer(rng *rand.Rand, inDim, outDim int, nonlinear bool) *Layer {
	neurons := make([]*Neuron, outDim)
	for i := range neurons {
		neurons[i] = NewNeuron(rng, inDim, nonlinear)
	}
	return &Layer{neurons: neurons}
}

// Forward applies every neuron to x.
func (l *Layer) Forward(x []*engine.Value) []*engine.Value {
	outs := make([]*engine.Value, len(l.neurons))
	for i, n := range l.neurons {
		outs[i] = n.Forward(x)
	}
	return outs
}

// Parameters returns the parameters of all neurons in the layer.
func (l *Layer) Parameters() []*engine.Value {
	var params []*engine.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// ZeroGrad resets the gradients of the layer's parameters.
func (l *Layer) ZeroGrad() {
	for _, p := range l.Parameters() {
		p.ZeroGrad()
	}
}

// MLP is a multilayer perceptron. Hidden layers use ReLU, the output layer
// is linear.
type MLP struct {
	layers []*Layer
	dims   []int
}

// NewMLP creates a perceptron from layer sizes, input first:
// NewMLP(rng, 2, 16, 16, 1) is two inputs, two hidden layers of sixteen and
// one linear output.
func NewMLP(rng *rand.Rand, dims ...int) *MLP {
	if len(dims) < 2 {
		panic("nn: an MLP needs at least an input and an output dimension")
	}
	layers := make([]*Layer, len(dims)-1)
	for i := range layers {
		nonlinear := i != len(layers)-1
		layers[i] = NewLayer(rng, dims[i], dims[i+1], nonlinear)
	}
	return &MLP{layers: layers, dims: dims}
}

// Forward runs one datapoint through every layer.
func (m *MLP) Forward(x []*engine.Value) []*engine.Value {
	for _, layer := range m.layers {
		x = layer.Forward(x)
	}
	return x
}

// Parameters returns the parameters of all layers.
func (m *MLP) Parameters() []*engine.Value {
	var params []*engine.Value
	for _, layer := range m.layers {
		params = append(params, layer.Parameters()...)
	}
	return params
}

// ZeroGrad resets the gradients of all parameters.
func (m *MLP) ZeroGrad() {
	for _, p := range m.Parameters() {
		p.ZeroGrad()
	}
}

// Step applies one gradient-descent update to every parameter.
func (m *MLP) Step(lr float64) {
	for _, p := range m.Parameters() {
		p.Step(lr)
	}
}

// String describes the architecture.
func (m *MLP) String() string {
	var sb strings.Builder
	sb.WriteString("MLP:")
	for _, layer := range m.layers {
		sb.WriteString("\nLayer:")
		for _, n := range layer.neurons {
			kind := "Linear"
			if n.nonlinear {
				kind = "ReLU"
			}
			fmt.Fprintf(&sb, "\nNeuron: (%d, %s)", n.inDim, kind)
		}
	}
	return sb.String()
}

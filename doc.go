// Scalargrad - Reverse-Mode Automatic Differentiation over Scalars in Go
//
// Scalargrad builds dynamic computation graphs out of scalar values, runs
// reverse-mode automatic differentiation over them, and trains small neural
// networks with plain gradient descent. The graph is defined by running
// ordinary Go code: every arithmetic operation records its inputs and a
// backward rule, and a single Backward call propagates gradients from the
// terminal to every leaf.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/scalargrad
//
// Basic example:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/smallnest/scalargrad/engine"
//	)
//
//	func main() {
//		a := engine.New(-4.0)
//		b := engine.New(2.0)
//
//		c := a.Add(b)
//		d := a.Mul(b).Add(b.Pow(3))
//		e := c.Sub(d)
//		f := e.Pow(2).Div(engine.New(4.0)).Add(engine.New(1.0))
//
//		f.Backward()
//
//		fmt.Println(f.Data()) // forward value
//		fmt.Println(a.Grad()) // df/da
//		fmt.Println(b.Grad()) // df/db
//	}
//
// # Packages
//
//   - engine: the Value graph, operators, and the Backward pass
//   - nn: neurons, layers, and multi-layer perceptrons built on engine
//   - dataset: the two-moons toy dataset and small numeric helpers
//   - train: the gradient-descent epoch loop with listeners and snapshots
//   - store: parameter snapshot persistence (memory, sqlite, redis, postgres)
//   - plot: terminal scatter and decision-region rendering
//   - log: leveled logging used across the module
//
// # Concurrency
//
// The engine runs in one of two modes. In shared mode (the default) every
// node carries a mutex, and goroutines may build private subgraphs over
// shared leaves, which is how batched forward passes are parallelized. In
// single-owner mode the mutex is replaced with a cheap borrow flag that
// panics on reentrant access, for strictly single-goroutine use.
//
// # Training
//
//	rng := rand.New(rand.NewSource(42))
//	points, labels := dataset.MakeMoons(rng, 100, true, 0.1)
//
//	model := nn.NewMLP(rng, 2, 16, 16, 1)
//	trainer := train.NewTrainer(train.Config{Epochs: 100, LearningRate: 1.0})
//	trainer.AddListener(train.NewLoggingListener(10))
//
//	metrics, err := trainer.Run(ctx, model, xs, ys)
//
// See examples/moons for a complete run, including snapshot persistence and
// a terminal rendering of the learned decision boundary.
package scalargrad

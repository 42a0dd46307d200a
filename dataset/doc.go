// Package dataset generates the synthetic data used by the training
// examples: the two-moons binary classification set, plus the linspace and
// parallel-slice shuffle helpers it is built from.
package dataset

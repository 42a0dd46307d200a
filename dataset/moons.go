package dataset

import (
	"math"
	"math/rand"
)

// Point is a 2D datapoint.
type Point struct {
	X, Y float64
}

// Linspace returns n evenly spaced samples over [lo, hi], endpoints
// included. n must be at least 2.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		panic("dataset: linspace needs at least two samples")
	}
	dx := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*dx
	}
	return out
}

// Shuffle permutes all columns with the same random permutation, keeping
// rows aligned across them. Columns must share a length.
func Shuffle(rng *rand.Rand, cols ...[]float64) {
	if len(cols) == 0 {
		return
	}
	n := len(cols[0])
	for _, col := range cols {
		if len(col) != n {
			panic("dataset: shuffle columns must have equal length")
		}
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		for _, col := range cols {
			col[i], col[j] = col[j], col[i]
		}
	}
}

// MakeMoons generates two interleaving half circles of n points each, with
// optional row shuffling and gaussian noise on the coordinates. Labels are
// 0 for the outer moon and 1 for the inner one.
//
// The layout follows scikit-learn's generator: the outer moon is the upper
// unit half circle, the inner moon is its reflection shifted to
// (1, 0.5).
func MakeMoons(rng *rand.Rand, n int, shuffle bool, noise float64) ([]Point, []float64) {
	theta := Linspace(0, math.Pi, n)

	xs := make([]Point, 0, 2*n)
	ys := make([]float64, 0, 2*n)
	for _, t := range theta {
		xs = append(xs, Point{X: math.Cos(t), Y: math.Sin(t)})
		ys = append(ys, 0)
	}
	for _, t := range theta {
		xs = append(xs, Point{X: 1 - math.Cos(t), Y: 0.5 - math.Sin(t)})
		ys = append(ys, 1)
	}

	if shuffle {
		x1 := make([]float64, len(xs))
		x2 := make([]float64, len(xs))
		for i, p := range xs {
			x1[i], x2[i] = p.X, p.Y
		}
		Shuffle(rng, x1, x2, ys)
		for i := range xs {
			xs[i] = Point{X: x1[i], Y: x2[i]}
		}
	}

	if noise > 0 {
		for i := range xs {
			xs[i].X += rng.NormFloat64() * noise
			xs[i].Y += rng.NormFloat64() * noise
		}
	}
	return xs, ys
}

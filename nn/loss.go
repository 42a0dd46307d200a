package nn

import (
	"sync"

	"github.com/smallnest/scalargrad/engine"
)

// regAlpha is the L2 regularization strength of MaxMarginLoss.
const regAlpha = 1e-4

// MaxMarginLoss computes the SVM max-margin loss over a batch of
// predictions against -1/+1 labels, plus an L2 penalty over the module's
// parameters. It returns the differentiable total loss and the batch
// accuracy (fraction of predictions with the right sign).
func MaxMarginLoss(m Module, preds []*engine.Value, ys []float64) (*engine.Value, float64) {
	if len(preds) == 0 || len(preds) != len(ys) {
		panic("nn: predictions and labels must be non-empty and the same length")
	}

	// Mean of relu(1 - y*pred).
	var dataLoss *engine.Value
	for i, pred := range preds {
		li := engine.New(1.0).Add(engine.New(-ys[i]).Mul(pred)).ReLU()
		if dataLoss == nil {
			dataLoss = li
		} else {
			dataLoss = dataLoss.Add(li)
		}
	}
	n := float64(len(preds))
	dataLoss = dataLoss.Mul(engine.New(1.0).Div(engine.New(n)))

	var regLoss *engine.Value
	for _, p := range m.Parameters() {
		sq := p.Mul(p)
		if regLoss == nil {
			regLoss = sq
		} else {
			regLoss = regLoss.Add(sq)
		}
	}

	total := dataLoss
	if regLoss != nil {
		total = dataLoss.Add(engine.New(regAlpha).Mul(regLoss))
	}

	correct := 0
	for i, pred := range preds {
		if (ys[i] > 0) == (pred.Data() > 0) {
			correct++
		}
	}
	return total, float64(correct) / n
}

// ForwardBatch runs the model's forward pass for each datapoint in its own
// goroutine and returns the single-output predictions in input order. Each
// goroutine builds a private subgraph over the shared parameter leaves, so
// the engine must be in shared mode.
func ForwardBatch(m *MLP, xs [][]float64) []*engine.Value {
	preds := make([]*engine.Value, len(xs))
	var wg sync.WaitGroup
	for i, x := range xs {
		wg.Add(1)
		go func(i int, x []float64) {
			defer wg.Done()
			in := make([]*engine.Value, len(x))
			for j, xj := range x {
				in[j] = engine.New(xj)
			}
			preds[i] = m.Forward(in)[0]
		}(i, x)
	}
	wg.Wait()
	return preds
}

// Package nn builds a small multilayer perceptron on top of the scalar
// autograd engine.
//
// Neurons, layers and the MLP compose engine.Value arithmetic, so a forward
// pass records the full computation graph and a single Backward on the loss
// yields gradients for every parameter. The package also provides the SVM
// max-margin loss with L2 regularization used for binary classification,
// and a batched forward helper that runs one goroutine per example (the
// engine's shared mode makes the parameter leaves safe to read
// concurrently).
//
//	model := nn.NewMLP(2, 16, 16, 1)
//	preds := nn.ForwardBatch(model, xs)
//	loss, acc := nn.MaxMarginLoss(model, preds, ys)
//	model.ZeroGrad()
//	loss.Backward()
//	model.Step(0.05)
package nn

// Package train runs gradient descent over an MLP and a labeled dataset.
//
// A Trainer owns the epoch loop: forward passes over the whole batch in
// parallel, the max-margin loss, one backward pass, and a parameter step
// with a linearly decaying learning rate. Progress is reported through
// EpochListener callbacks, and parameter snapshots can be persisted after
// each epoch through a store.SnapshotStore.
//
//	model := nn.NewMLP(rng, 2, 16, 16, 1)
//	trainer := train.NewTrainer(train.Config{
//		Epochs:       100,
//		LearningRate: 1.0,
//	})
//	trainer.AddListener(train.NewLoggingListener(1))
//	metrics, err := trainer.Run(ctx, model, xs, ys)
package train

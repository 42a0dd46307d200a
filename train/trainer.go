package train

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smallnest/scalargrad/nn"
	"github.com/smallnest/scalargrad/store"
)

// Config controls a training run
type Config struct {
	// Epochs is the number of gradient descent steps. Default 100.
	Epochs int

	// LearningRate is the step size at epoch 0. Default 1.0.
	LearningRate float64

	// Decay is the fraction of the learning rate that is linearly decayed
	// away over the run: lr(e) = LearningRate * (1 - Decay*e/Epochs).
	// Default 0.9.
	Decay float64

	// Snapshots persists the parameter vector after epochs when set.
	Snapshots store.SnapshotStore

	// SnapshotInterval is the number of epochs between snapshots.
	// Default 1 (every epoch). Ignored when Snapshots is nil.
	SnapshotInterval int

	// RunID groups the snapshots of this run. A random UUID is minted
	// when empty.
	RunID string
}

// Metrics describes one completed epoch
type Metrics struct {
	Epoch        int
	Loss         float64
	Accuracy     float64
	LearningRate float64
	Duration     time.Duration
}

// Trainer drives the epoch loop for a model over a fixed dataset
type Trainer struct {
	cfg       Config
	listeners []EpochListener
	mutex     sync.RWMutex
}

// NewTrainer creates a trainer with defaults filled in
func NewTrainer(cfg Config) *Trainer {
	if cfg.Epochs <= 0 {
		cfg.Epochs = 100
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 1.0
	}
	if cfg.Decay == 0 {
		cfg.Decay = 0.9
	}
	if cfg.SnapshotInterval <= 0 {
		cfg.SnapshotInterval = 1
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	return &Trainer{cfg: cfg}
}

// RunID returns the identifier snapshots of this run are grouped under
func (t *Trainer) RunID() string {
	return t.cfg.RunID
}

// AddListener registers a listener for per-epoch metrics
func (t *Trainer) AddListener(listener EpochListener) *Trainer {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.listeners = append(t.listeners, listener)
	return t
}

// Run trains the model on the dataset and returns the metrics of every
// completed epoch. On context cancellation or a snapshot store failure it
// returns the metrics collected so far together with the error.
func (t *Trainer) Run(ctx context.Context, model *nn.MLP, xs [][]float64, ys []float64) ([]Metrics, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("dataset size mismatch: %d inputs, %d labels", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("empty dataset")
	}

	history := make([]Metrics, 0, t.cfg.Epochs)

	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		start := time.Now()

		preds := nn.ForwardBatch(model, xs)
		loss, accuracy := nn.MaxMarginLoss(model, preds, ys)

		model.ZeroGrad()
		loss.Backward()

		lr := t.cfg.LearningRate * (1.0 - t.cfg.Decay*float64(epoch)/float64(t.cfg.Epochs))
		model.Step(lr)

		m := Metrics{
			Epoch:        epoch,
			Loss:         loss.Data(),
			Accuracy:     accuracy,
			LearningRate: lr,
			Duration:     time.Since(start),
		}
		history = append(history, m)

		t.notifyListeners(ctx, m)

		if t.cfg.Snapshots != nil && (epoch+1)%t.cfg.SnapshotInterval == 0 {
			if err := t.saveSnapshot(ctx, model, m); err != nil {
				return history, err
			}
		}
	}

	return history, nil
}

func (t *Trainer) saveSnapshot(ctx context.Context, model *nn.MLP, m Metrics) error {
	params := model.Parameters()
	flat := make([]float64, len(params))
	for i, p := range params {
		flat[i] = p.Data()
	}

	snap := &store.Snapshot{
		ID:        uuid.NewString(),
		RunID:     t.cfg.RunID,
		Epoch:     m.Epoch,
		Params:    flat,
		Loss:      m.Loss,
		Accuracy:  m.Accuracy,
		Timestamp: time.Now().UTC(),
		Version:   1,
	}

	if err := t.cfg.Snapshots.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot for epoch %d: %w", m.Epoch, err)
	}
	return nil
}

func (t *Trainer) notifyListeners(ctx context.Context, m Metrics) {
	t.mutex.RLock()
	listeners := make([]EpochListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mutex.RUnlock()

	var wg sync.WaitGroup
	for _, listener := range listeners {
		wg.Add(1)
		go func(l EpochListener) {
			defer wg.Done()
			defer func() {
				// a panicking listener must not kill the run
				_ = recover()
			}()
			l.OnEpoch(ctx, m)
		}(listener)
	}
	wg.Wait()
}

// Restore loads a snapshot's parameter vector back into the model. The
// model must have the same architecture the snapshot was taken from.
func Restore(model *nn.MLP, snap *store.Snapshot) error {
	params := model.Parameters()
	if len(params) != len(snap.Params) {
		return fmt.Errorf("parameter count mismatch: model has %d, snapshot has %d", len(params), len(snap.Params))
	}
	for i, p := range params {
		p.SetData(snap.Params[i])
	}
	return nil
}

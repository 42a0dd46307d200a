package train

import (
	"context"

	"github.com/smallnest/scalargrad/log"
)

// EpochListener receives the metrics of each completed epoch
type EpochListener interface {
	OnEpoch(ctx context.Context, metrics Metrics)
}

// EpochListenerFunc is a function adapter for EpochListener
type EpochListenerFunc func(ctx context.Context, metrics Metrics)

// OnEpoch implements the EpochListener interface
func (f EpochListenerFunc) OnEpoch(ctx context.Context, metrics Metrics) {
	f(ctx, metrics)
}

// LoggingListener reports epoch metrics through the log package
type LoggingListener struct {
	every  int
	logger log.Logger
}

// NewLoggingListener creates a listener that logs every n-th epoch.
// n <= 1 logs every epoch.
func NewLoggingListener(every int) *LoggingListener {
	if every < 1 {
		every = 1
	}
	return &LoggingListener{every: every, logger: log.GetDefaultLogger()}
}

// WithLogger overrides the destination logger
func (l *LoggingListener) WithLogger(logger log.Logger) *LoggingListener {
	l.logger = logger
	return l
}

// OnEpoch implements the EpochListener interface
func (l *LoggingListener) OnEpoch(_ context.Context, m Metrics) {
	if m.Epoch%l.every != 0 {
		return
	}
	l.logger.Info("epoch %d: loss %.6f, accuracy %.1f%%, lr %.4f (%s)",
		m.Epoch, m.Loss, m.Accuracy*100, m.LearningRate, m.Duration)
}

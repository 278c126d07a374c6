package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/project-tracker/internal/api/dto"
)

// Dispatcher executes one command and returns its result, if any.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd dto.Command) *dto.Result
}

// StopSignal reports whether the replay must halt before the next command.
type StopSignal interface {
	Stopped() bool
}

// ReplayWorker feeds commands to the router strictly one at a time. The
// store behind the router is not safe for concurrent use, so Run holds a
// lock for the whole replay.
type ReplayWorker struct {
	mu         sync.Mutex
	dispatcher Dispatcher
	stop       StopSignal
	logger     *zap.Logger
}

// NewReplayWorker constructs the worker.
func NewReplayWorker(dispatcher Dispatcher, stop StopSignal, logger *zap.Logger) *ReplayWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayWorker{dispatcher: dispatcher, stop: stop, logger: logger}
}

// Run executes commands in order and collects the produced results. It
// returns early once the stop signal is raised or ctx is cancelled.
func (w *ReplayWorker) Run(ctx context.Context, commands []dto.Command) []*dto.Result {
	w.mu.Lock()
	defer w.mu.Unlock()

	results := make([]*dto.Result, 0, len(commands))
	for i, cmd := range commands {
		if w.stop != nil && w.stop.Stopped() {
			w.logger.Info("replay stopped", zap.Int("executed", i), zap.Int("skipped", len(commands)-i))
			break
		}
		if err := ctx.Err(); err != nil {
			w.logger.Warn("replay cancelled", zap.Int("executed", i), zap.Error(err))
			break
		}
		if result := w.dispatcher.Dispatch(ctx, cmd); result != nil {
			results = append(results, result)
		}
	}
	return results
}

package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/experiment/trackers"
)

// Result holds the outcome of an experiment
type Result struct {
	// Returns holds the return of every training episode, in order
	Returns []float64

	// EvalReturn is the average return of the greedy policy. It is only
	// valid if Evaluated is true.
	EvalReturn float64
	Evaluated  bool

	// Interrupted is true if training was cancelled before all episodes
	// were run
	Interrupted bool
}

// Online is an experiment that trains an agent online and then
// evaluates its greedy policy. Trackers registered with the
// experiment's Monitor see the training episodes only.
type Online struct {
	monitor      *trackers.Monitor
	agent        agent.Agent
	episodes     int
	maxSteps     int
	evalEpisodes int

	logger   *slog.Logger
	progress []agent.ProgressFunc
}

// NewOnline creates and returns a new online experiment. The agent a
// must have been created on the Environment wrapped by monitor. If
// logger is nil, slog.Default() is used.
func NewOnline(monitor *trackers.Monitor, a agent.Agent, episodes,
	maxSteps, evalEpisodes int, logger *slog.Logger) *Online {
	if logger == nil {
		logger = slog.Default()
	}
	return &Online{
		monitor:      monitor,
		agent:        a,
		episodes:     episodes,
		maxSteps:     maxSteps,
		evalEpisodes: evalEpisodes,
		logger:       logger,
	}
}

// Agent returns the agent being trained
func (o *Online) Agent() agent.Agent {
	return o.agent
}

// Monitor returns the Monitor which tracks the experiment
func (o *Online) Monitor() *trackers.Monitor {
	return o.monitor
}

// OnProgress registers a function to be called with training progress,
// in addition to the progress log messages of the experiment
func (o *Online) OnProgress(f agent.ProgressFunc) {
	o.progress = append(o.progress, f)
}

// Run runs the experiment. Training stops after the current episode
// once ctx is cancelled, in which case evaluation is skipped and the
// returned Result is marked as interrupted.
func (o *Online) Run(ctx context.Context) (Result, error) {
	var result Result

	o.logger.Info("training", "episodes", o.episodes, "maxSteps", o.maxSteps)
	start := time.Now()

	o.monitor.SetPaused(false)
	returns, err := o.train(ctx)
	result.Returns = returns

	// The last episode has no last TimeStep if the agent cut it off
	o.monitor.Flush()

	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		o.logger.Warn("training interrupted", "completed", len(returns),
			"episodes", o.episodes)
		result.Interrupted = true
		return result, nil
	} else if err != nil {
		return result, fmt.Errorf("run: %w", err)
	}

	o.logger.Info("training complete", "episodes", len(returns),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if o.evalEpisodes <= 0 {
		return result, nil
	}

	o.monitor.SetPaused(true)
	defer o.monitor.SetPaused(false)

	avg, err := o.agent.Evaluate(o.evalEpisodes, false)
	if err != nil {
		return result, fmt.Errorf("run: %w", err)
	}
	result.EvalReturn = avg
	result.Evaluated = true

	o.logger.Info("evaluation complete", "episodes", o.evalEpisodes,
		"avgReturn", avg)

	return result, nil
}

// train trains the agent, interruptibly if the agent supports it
func (o *Online) train(ctx context.Context) ([]float64, error) {
	progress := func(done, total int, avg float64) {
		o.logger.Info(fmt.Sprintf("Episode %d/%d - Avg Reward: %.2f", done,
			total, avg))
		for _, f := range o.progress {
			f(done, total, avg)
		}
	}

	if trainer, ok := o.agent.(agent.ContextTrainer); ok {
		return trainer.TrainContext(ctx, o.episodes, o.maxSteps, progress)
	}
	return o.agent.Train(o.episodes, o.maxSteps, progress)
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	if err := o.monitor.Save(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uilive"
	"github.com/samuelfneumann/qtaxi/experiment"
	"github.com/samuelfneumann/qtaxi/experiment/plot"
	"github.com/samuelfneumann/qtaxi/experiment/trackers"
	"github.com/samuelfneumann/qtaxi/utils/progressbar"
	"github.com/spf13/cobra"
)

const progressBarWidth = 40

var (
	returnsPath  string
	lengthsPath  string
	plotPath     string
	plotWindow   int
	showProgress bool
)

func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent and evaluate its greedy policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := experimentConfig(cmd)
			if err != nil {
				return err
			}

			var t []trackers.Tracker
			if returnsPath != "" {
				t = append(t, trackers.NewReturn(returnsPath))
			}
			if lengthsPath != "" {
				t = append(t, trackers.NewEpisodeLength(lengthsPath))
			}

			ctx, cancel := interruptContext(cmd.Context())
			defer cancel()

			exp, result, err := train(ctx, c, showProgress, cmd.ErrOrStderr(),
				t...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trained for %d episodes\n", len(result.Returns))
			if result.Evaluated {
				fmt.Fprintf(out, "Average evaluation reward over %d "+
					"episodes: %.2f\n", c.EvalEpisodes, result.EvalReturn)
			}

			if len(t) > 0 {
				if err := exp.Save(); err != nil {
					return err
				}
				logger.Info("saved tracked data", "returns", returnsPath,
					"lengths", lengthsPath)
			}

			if plotPath != "" {
				if err := writePlot(plotPath, result.Returns); err != nil {
					return err
				}
				logger.Info("saved learning curve", "path", plotPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&returnsPath, "returns", "", "Save training episode returns to this gob file")
	cmd.Flags().StringVar(&lengthsPath, "lengths", "", "Save training episode lengths to this gob file")
	cmd.Flags().StringVar(&plotPath, "plot", "", "Write an HTML learning curve to this file")
	cmd.Flags().IntVar(&plotWindow, "window", 100, "Moving average window of the learning curve")
	cmd.Flags().BoolVar(&showProgress, "progress", true, "Show a live progress bar while training")

	return cmd
}

// train creates and runs the experiment described by c. If progress is
// true, a live progress bar is drawn on out and log records are written
// above it.
func train(ctx context.Context, c experiment.Config, progress bool,
	out io.Writer, t ...trackers.Tracker) (*experiment.Online,
	experiment.Result, error) {
	runLogger := logger
	var w *uilive.Writer
	if progress {
		w = uilive.New()
		w.Out = out
		w.Start()
		defer w.Stop()

		var err error
		if runLogger, err = newLogger(w.Bypass(), logLevel, noColor); err != nil {
			return nil, experiment.Result{}, err
		}
	}

	exp, err := c.CreateExp(seed, runLogger, t...)
	if err != nil {
		return nil, experiment.Result{}, err
	}

	if progress {
		bar := progressbar.NewManualProgressBar(w, progressBarWidth,
			c.Episodes)
		exp.OnProgress(func(done, total int, avg float64) {
			bar.Set(done)
			if err := bar.Display(fmt.Sprintf("Avg Reward: %.2f", avg)); err != nil {
				runLogger.Debug("could not draw progress bar", "err", err)
			}
		})
	}

	result, err := exp.Run(ctx)
	if err != nil {
		return nil, experiment.Result{}, err
	}
	if result.Interrupted {
		runLogger.Warn("stopped early", "episodes", len(result.Returns))
	}
	return exp, result, nil
}

func writePlot(path string, returns []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create plot: %w", err)
	}

	name := fmt.Sprintf("seed %d", seed)
	err = plot.Returns(f, "Training Returns", plotWindow, plot.Series{
		Name:    name,
		Returns: returns,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

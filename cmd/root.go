// Package cmd implements the qtaxi command line interface
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var logger = slog.Default()

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qtaxi",
		Short: "Train and replay tabular Q-learning agents on Taxi",
		Long: "qtaxi trains an epsilon-greedy tabular Q-learning agent on the " +
			"Taxi problem and replays the learned greedy policy step by step.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logOutput, logLevel, noColor)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		TrainCommand(),
		ReplayCommand(),
	)

	return cmd
}

// interruptContext returns a context which is cancelled on the first
// interrupt. A second interrupt kills the process as usual.
func interruptContext(parent context.Context) (context.Context,
	context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)

	go func() {
		<-ctx.Done()
		stop()
	}()

	return ctx, stop
}

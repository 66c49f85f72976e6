package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/samuelfneumann/qtaxi/agent"
	"github.com/samuelfneumann/qtaxi/environment/envconfig"
	"github.com/samuelfneumann/qtaxi/environment/taxi"
	"github.com/samuelfneumann/qtaxi/experiment"
	"github.com/spf13/cobra"
)

var (
	taxiRow     int
	taxiCol     int
	passenger   string
	destination string
	delay       time.Duration
	framesDir   string
	render      bool
)

func ReplayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Train an agent, then replay its greedy policy from a chosen start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := experimentConfig(cmd)
			if err != nil {
				return err
			}
			if c.EnvConf.Environment != envconfig.Taxi {
				return fmt.Errorf("replay needs the %v environment, got %v",
					envconfig.Taxi, c.EnvConf.Environment)
			}

			start, err := replayStart()
			if err != nil {
				return err
			}
			env, err := envconfig.CreateTaxi(start, taxi.EpisodeSteps, seed)
			if err != nil {
				return err
			}

			ctx, cancel := interruptContext(cmd.Context())
			defer cancel()

			exp, result, err := train(ctx, c, showProgress, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if result.Interrupted {
				return ctx.Err()
			}

			p, ok := exp.Agent().(agent.EGreedyPolicy)
			if !ok {
				return fmt.Errorf("agent %T has no greedy policy",
					exp.Agent())
			}

			return replay(ctx, cmd, env, p, start)
		},
	}

	cmd.Flags().IntVar(&taxiRow, "taxi-row", 0, "Starting row of the taxi")
	cmd.Flags().IntVar(&taxiCol, "taxi-col", 0, "Starting column of the taxi")
	cmd.Flags().StringVar(&passenger, "passenger", "R", "Passenger depot (R, G, Y, B or 0-3)")
	cmd.Flags().StringVar(&destination, "destination", "G", "Destination depot (R, G, Y, B or 0-3)")
	cmd.Flags().DurationVar(&delay, "delay", 500*time.Millisecond, "Pause between replayed steps")
	cmd.Flags().StringVar(&framesDir, "frames", "", "Write a PNG frame of every step to this directory")
	cmd.Flags().BoolVar(&render, "render", true, "Draw the grid after every step")
	cmd.Flags().BoolVar(&showProgress, "progress", true, "Show a live progress bar while training")

	return cmd
}

// replayStart returns the starting state given on the command line
func replayStart() (*envconfig.StartConfig, error) {
	p, err := parseDepot(passenger)
	if err != nil {
		return nil, fmt.Errorf("passenger: %w", err)
	}
	d, err := parseDepot(destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	start := &envconfig.StartConfig{
		Row:         taxiRow,
		Col:         taxiCol,
		Passenger:   p,
		Destination: d,
	}

	// Validate before spending time on training
	if _, err := taxi.NewStart(start.Row, start.Col, start.Passenger,
		start.Destination); err != nil {
		return nil, err
	}
	return start, nil
}

// parseDepot parses a depot given by name or index
func parseDepot(s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 || i >= len(taxi.Depots) {
			return 0, fmt.Errorf("depot %d not in [0, %d)", i,
				len(taxi.Depots))
		}
		return i, nil
	}
	return taxi.DepotIndex(s)
}

func replay(ctx context.Context, cmd *cobra.Command, env *taxi.Taxi,
	p agent.EGreedyPolicy, start *envconfig.StartConfig) error {
	out := cmd.OutOrStdout()
	env.SetOutput(out)
	env.SetColor(!noColor)

	if framesDir != "" {
		if err := os.MkdirAll(framesDir, 0o755); err != nil {
			return fmt.Errorf("could not create frame directory: %w", err)
		}
	}
	saveFrame := func(k int) error {
		if framesDir == "" {
			return nil
		}
		path := filepath.Join(framesDir, fmt.Sprintf("frame_%03d.png", k))
		return env.SavePNG(path)
	}

	fmt.Fprintln(out, "Start: Taxi at", fmt.Sprintf("(%d,%d)", start.Row,
		start.Col))
	fmt.Fprintln(out, "Passenger at:", taxi.DepotName(start.Passenger))
	fmt.Fprintf(out, "Destination: %v\n\n", taxi.DepotName(start.Destination))

	observer := func(s experiment.ReplayStep) error {
		fmt.Fprintf(out, "Step %d: %v (Reward: %v)\n", s.Number,
			taxi.ActionNames[s.Action], s.Reward)
		if render {
			if err := env.Render(); err != nil {
				return err
			}
		}
		if err := saveFrame(s.Number); err != nil {
			return err
		}

		if s.Last || delay <= 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			return nil
		}
	}

	// The environment starts in the fixed starting state, which the
	// replay resets it to again
	if err := saveFrame(0); err != nil {
		return err
	}
	path, err := experiment.Replay(env, p, taxi.EpisodeSteps, observer)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nCompleted!\nTotal Steps: %d\nTotal Reward: %v\n",
		len(path), experiment.TotalReward(path))
	return nil
}

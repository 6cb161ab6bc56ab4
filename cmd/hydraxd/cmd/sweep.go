package cmd

import (
	"context"
	"fmt"
	"runtime"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const flagParallel = "parallel"

// SweepCmd runs several scenario files side by side, each on its own
// in-memory chain, and prints their reports in argument order.
func SweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [config]...",
		Short: "Run several scenarios concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			parallel, err := cmd.Flags().GetInt(flagParallel)
			if err != nil {
				return err
			}

			configs := make([]Config, len(args))
			for i, path := range args {
				cfg, err := LoadConfig(path)
				if err != nil {
					return err
				}
				if err := applyRunFlags(cmd, &cfg); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				configs[i] = cfg
			}

			reports, err := Sweep(cmd.Context(), logger, configs, parallel)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), reports)
		},
	}

	cmd.Flags().Int(flagParallel, runtime.GOMAXPROCS(0), "maximum scenarios running at once")
	cmd.Flags().Int64(flagBlocks, 0, "override every scenario's final height")
	return cmd
}

// Sweep runs every config on a fresh in-memory chain, at most parallel at a
// time. Storage, serving and tracing settings are ignored. The first failing
// run cancels the rest.
func Sweep(ctx context.Context, logger log.Logger, configs []Config, parallel int) ([]Report, error) {
	if parallel < 1 {
		parallel = 1
	}

	reports := make([]Report, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, cfg := range configs {
		cfg.Home = ""
		cfg.Listen = ""
		cfg.Telemetry.Enabled = false

		g.Go(func() error {
			report, err := runScenario(ctx, logger, cfg, false)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", cfg.Scenario.Name, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

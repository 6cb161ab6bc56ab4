package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/paw-chain/hydrax/app/health"
	"github.com/paw-chain/hydrax/app/telemetry"
)

const (
	flagBlocks        = "blocks"
	flagHome          = "home"
	flagListen        = "listen"
	flagBlockInterval = "block-interval"
	flagServe         = "serve"
)

// RunCmd runs one scenario and prints its report as JSON.
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario to its final height",
		Long: `Run creates the chain from the scenario genesis, or resumes the chain stored in
--home, and delivers each step's message at its height. The report lists
failed messages, event counts, account balances and open DCA schedules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, &cfg); err != nil {
				return err
			}
			logger, err := newLogger(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			serve, err := cmd.Flags().GetBool(flagServe)
			if err != nil {
				return err
			}

			report, err := runScenario(cmd.Context(), logger, cfg, serve)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().Int64(flagBlocks, 0, "override the scenario's final height")
	cmd.Flags().String(flagHome, "", "directory for the chain database (default in memory)")
	cmd.Flags().String(flagListen, "", "address to serve /metrics and /health on")
	cmd.Flags().Duration(flagBlockInterval, 0, "wall-clock time between blocks")
	cmd.Flags().Bool(flagServe, false, "keep serving after the run until interrupted")
	return cmd
}

func applyRunFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed(flagBlocks) {
		cfg.Scenario.Blocks, err = flags.GetInt64(flagBlocks)
		if err != nil {
			return err
		}
	}
	if flags.Changed(flagHome) {
		cfg.Home, err = flags.GetString(flagHome)
		if err != nil {
			return err
		}
	}
	if flags.Changed(flagListen) {
		cfg.Listen, err = flags.GetString(flagListen)
		if err != nil {
			return err
		}
	}
	if flags.Changed(flagBlockInterval) {
		cfg.BlockInterval, err = flags.GetDuration(flagBlockInterval)
		if err != nil {
			return err
		}
	}
	return cfg.Validate()
}

// runScenario wires telemetry, storage and the optional HTTP server around
// one Runner.
func runScenario(ctx context.Context, logger log.Logger, cfg Config, serve bool) (report Report, err error) {
	cfg.Telemetry.ChainID = cfg.ChainID
	provider, err := telemetry.NewProvider(cfg.Telemetry)
	if err != nil {
		return Report{}, err
	}
	defer func() {
		err = multierr.Append(err, provider.Shutdown(context.Background()))
	}()

	db, err := openDB(cfg.Home)
	if err != nil {
		return Report{}, err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	runner, err := NewRunner(logger, cfg, db, provider)
	if err != nil {
		return Report{}, err
	}

	if cfg.Listen != "" {
		checker, err := health.NewChecker(logger, cfg.Health, runner.App(), health.WithTelemetry(provider))
		if err != nil {
			return Report{}, err
		}
		server := NewServer(logger, cfg.Listen, cfg.CORS, checker)
		if err := server.Start(); err != nil {
			return Report{}, fmt.Errorf("failed to listen on %s: %w", cfg.Listen, err)
		}
		defer func() {
			err = multierr.Append(err, server.Stop(context.Background()))
		}()
	}

	report, err = runner.Run(ctx)
	if err != nil {
		return Report{}, err
	}

	if serve && cfg.Listen != "" {
		logger.Info("run finished, serving until interrupted")
		<-ctx.Done()
	}
	return report, nil
}

func openDB(home string) (dbm.DB, error) {
	if home == "" {
		return dbm.NewMemDB(), nil
	}
	db, err := dbm.NewDB("application", dbm.GoLevelDBBackend, home)
	if err != nil {
		return nil, fmt.Errorf("failed to open database in %s: %w", home, err)
	}
	return db, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/paw-chain/hydrax/app"
	"github.com/paw-chain/hydrax/app/telemetry"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
)

var (
	scenarioBlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydraxd_scenario_blocks_total",
			Help: "Blocks committed by scenario runs",
		},
		[]string{"scenario"},
	)

	scenarioStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hydraxd_scenario_steps_total",
			Help: "Scenario messages delivered, by outcome",
		},
		[]string{"scenario", "outcome"},
	)

	scenarioHeight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hydraxd_scenario_height",
			Help: "Last committed height of a scenario run",
		},
		[]string{"scenario"},
	)
)

// Report summarizes a finished scenario run.
type Report struct {
	RunID     string                       `json:"run_id"`
	Scenario  string                       `json:"scenario"`
	Height    int64                        `json:"height"`
	AppHash   string                       `json:"app_hash"`
	Elapsed   string                       `json:"elapsed"`
	Delivered int                          `json:"delivered"`
	Failures  []StepFailure                `json:"failures,omitempty"`
	Events    map[string]int               `json:"events"`
	Balances  map[string]map[string]string `json:"balances"`
	Schedules []ScheduleReport             `json:"schedules"`
}

// StepFailure is a delivered message the chain rejected.
type StepFailure struct {
	Height int64  `json:"height"`
	Msg    string `json:"msg"`
	Error  string `json:"error"`
}

// ScheduleReport is a DCA schedule left in store when the run ended.
type ScheduleReport struct {
	ID        uint64 `json:"id"`
	Owner     string `json:"owner"`
	Remaining string `json:"remaining"`
	Status    string `json:"status"`
	NextBlock uint64 `json:"next_block,omitempty"`
}

// Runner drives one scenario through an in-process chain.
type Runner struct {
	logger   log.Logger
	cfg      Config
	app      *app.App
	accounts *accounts
	limiter  *rate.Limiter
	runID    string
}

// NewRunner opens the chain over db. A db that already holds blocks is
// resumed: genesis is skipped and only steps above the stored height run.
func NewRunner(logger log.Logger, cfg Config, db dbm.DB, provider *telemetry.Provider) (*Runner, error) {
	runID := uuid.NewString()
	logger = logger.With("scenario", cfg.Scenario.Name, "run", runID)

	chain, err := app.New(logger, db,
		app.WithChainID(cfg.ChainID),
		app.WithBlockTime(cfg.BlockTime),
		app.WithTelemetry(provider),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.BlockInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.BlockInterval), 1)
	}

	return &Runner{
		logger:   logger,
		cfg:      cfg,
		app:      chain,
		accounts: newAccounts(chain.Authority()),
		limiter:  limiter,
		runID:    runID,
	}, nil
}

// App returns the chain the runner drives.
func (r *Runner) App() *app.App {
	return r.app
}

// Run executes the scenario up to its final height and reports the result.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	scenario := r.cfg.Scenario

	steps, err := r.decodeSteps(scenario.Steps)
	if err != nil {
		return Report{}, err
	}

	if r.app.LastBlockHeight() == 0 {
		genesis, err := r.genesis(scenario.Genesis)
		if err != nil {
			return Report{}, err
		}
		if _, err := r.app.InitChain(genesis); err != nil {
			return Report{}, fmt.Errorf("init chain: %w", err)
		}
	} else {
		r.logger.Info("resuming chain", "height", r.app.LastBlockHeight())
	}

	report := Report{
		RunID:    r.runID,
		Scenario: scenario.Name,
		Events:   make(map[string]int),
	}

	for height := r.app.LastBlockHeight() + 1; height <= scenario.Blocks; height++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return Report{}, err
		}

		result, err := r.app.NextBlock(ctx, steps[height]...)
		if err != nil {
			return Report{}, fmt.Errorf("block %d: %w", height, err)
		}
		r.record(&report, result)
	}

	report.Height = r.app.LastBlockHeight()
	report.AppHash = hex.EncodeToString(r.app.LastCommitID().Hash)
	report.Elapsed = time.Since(start).Round(time.Millisecond).String()
	report.Balances = r.balances()
	report.Schedules = r.schedules()

	r.logger.Info("scenario finished",
		"height", report.Height,
		"delivered", report.Delivered,
		"failed", len(report.Failures),
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func (r *Runner) record(report *Report, result app.BlockResult) {
	name := r.cfg.Scenario.Name
	scenarioBlocksTotal.WithLabelValues(name).Inc()
	scenarioHeight.WithLabelValues(name).Set(float64(result.Height))

	for _, tx := range result.Txs {
		report.Delivered++
		if tx.Error == "" {
			scenarioStepsTotal.WithLabelValues(name, "ok").Inc()
			continue
		}
		scenarioStepsTotal.WithLabelValues(name, "failed").Inc()
		report.Failures = append(report.Failures, StepFailure{
			Height: result.Height,
			Msg:    tx.MsgType,
			Error:  tx.Error,
		})
		r.logger.Debug("message failed", "height", result.Height, "msg", tx.MsgType, "error", tx.Error)
	}
	// block events include those of successful messages
	for _, event := range result.Events {
		report.Events[event.Type]++
	}
}

// genesis resolves account references in the configured endowments.
func (r *Runner) genesis(cfg app.GenesisConfig) (app.GenesisState, error) {
	balances := make([]ledgertypes.Balance, len(cfg.Balances))
	for i, balance := range cfg.Balances {
		balance.Address = r.accounts.address(balance.Address)
		balances[i] = balance
	}
	cfg.Balances = balances
	return app.NewGenesisStateFromConfig(cfg)
}

// decodeSteps builds the messages of every step, grouped by height in
// scenario order.
func (r *Runner) decodeSteps(steps []Step) (map[int64][]app.Msg, error) {
	byHeight := make(map[int64][]app.Msg)
	for i, step := range steps {
		msg, err := app.NewMsg(step.Msg)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if err := decodeValue(r.accounts.resolve(step.Value), msg); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Msg, err)
		}
		byHeight[step.Height] = append(byHeight[step.Height], msg)
	}
	return byHeight, nil
}

// balances lists the free and reserved balances of every named account.
func (r *Runner) balances() map[string]map[string]string {
	ctx := r.app.QueryContext()
	assets := r.app.LedgerKeeper.GetAllAssets(ctx)

	out := make(map[string]map[string]string, len(r.accounts.names))
	for name, addr := range r.accounts.names {
		holdings := make(map[string]string)
		for _, asset := range assets {
			free := r.app.LedgerKeeper.FreeBalance(ctx, addr, asset.Denom)
			if free.IsPositive() {
				holdings[asset.Denom] = free.String()
			}
			reserved := r.app.LedgerKeeper.ReservedBalance(ctx, addr, asset.Denom)
			if reserved.IsPositive() {
				holdings[asset.Denom+"/reserved"] = reserved.String()
			}
		}
		out[name] = holdings
	}
	return out
}

func (r *Runner) schedules() []ScheduleReport {
	ctx := r.app.QueryContext()
	schedules := r.app.DCAKeeper.GetAllSchedules(ctx)

	out := make([]ScheduleReport, 0, len(schedules))
	for _, schedule := range schedules {
		status, err := r.app.DCAKeeper.GetStatus(ctx, schedule.ID)
		if err != nil {
			continue
		}
		next, _ := r.app.DCAKeeper.GetScheduleExecutionBlock(ctx, schedule.ID)
		out = append(out, ScheduleReport{
			ID:        schedule.ID,
			Owner:     r.accountName(schedule.Owner),
			Remaining: schedule.TotalAmount.String(),
			Status:    string(status),
			NextBlock: next,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// accountName maps an address back to its scenario name when it has one.
func (r *Runner) accountName(address string) string {
	for name, addr := range r.accounts.names {
		if addr.String() == address {
			return "@" + name
		}
	}
	return address
}

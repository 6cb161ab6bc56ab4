package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	abci "github.com/cometbft/cometbft/abci/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/hydrax/app/telemetry"
	circuitbreakerkeeper "github.com/paw-chain/hydrax/x/circuitbreaker/keeper"
	circuitbreakertypes "github.com/paw-chain/hydrax/x/circuitbreaker/types"
	dcakeeper "github.com/paw-chain/hydrax/x/dca/keeper"
	dcatypes "github.com/paw-chain/hydrax/x/dca/types"
	lbpkeeper "github.com/paw-chain/hydrax/x/lbp/keeper"
	lbptypes "github.com/paw-chain/hydrax/x/lbp/types"
	ledgerkeeper "github.com/paw-chain/hydrax/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	omnipoolkeeper "github.com/paw-chain/hydrax/x/omnipool/keeper"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	oraclekeeper "github.com/paw-chain/hydrax/x/oracle/keeper"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routerkeeper "github.com/paw-chain/hydrax/x/router/keeper"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
	stableswapkeeper "github.com/paw-chain/hydrax/x/stableswap/keeper"
	stableswaptypes "github.com/paw-chain/hydrax/x/stableswap/types"
	xykkeeper "github.com/paw-chain/hydrax/x/xyk/keeper"
	xyktypes "github.com/paw-chain/hydrax/x/xyk/types"
)

const (
	// AppName is the name of the runtime
	AppName = "hydrax"

	// DefaultChainID is used when no chain id option is given.
	DefaultChainID = "hydrax-local-1"

	// DefaultBlockTime is the wall-clock distance between simulated blocks.
	DefaultBlockTime = 6 * time.Second
)

// App is an in-process hydrax chain. It mounts every module store on one
// commit multistore, wires the keepers and drives the block lifecycle:
// begin blockers, message delivery, end blockers and commit.
type App struct {
	logger      log.Logger
	cms         storetypes.CommitMultiStore
	chainID     string
	authority   string
	blockTime   time.Duration
	genesisTime time.Time

	keys  map[string]*storetypes.KVStoreKey
	tkeys map[string]*storetypes.TransientStoreKey

	LedgerKeeper         ledgerkeeper.Keeper
	CircuitBreakerKeeper circuitbreakerkeeper.Keeper
	OracleKeeper         oraclekeeper.Keeper
	OmnipoolKeeper       omnipoolkeeper.Keeper
	StableswapKeeper     stableswapkeeper.Keeper
	XYKKeeper            xykkeeper.Keeper
	LBPKeeper            lbpkeeper.Keeper
	RouterKeeper         routerkeeper.Keeper
	DCAKeeper            dcakeeper.Keeper

	msgs msgServers

	telemetry *telemetry.Provider
	tracer    trace.Tracer
	metrics   *telemetry.BlockMetrics

	mtx    sync.Mutex
	height int64
	block  *blockState
}

type blockState struct {
	ctx    sdk.Context
	header cmtproto.Header
	span   trace.Span
	txs    []TxResult
}

// TxResult is the outcome of one delivered message.
type TxResult struct {
	MsgType  string       `json:"msg_type"`
	Response any          `json:"response,omitempty"`
	Error    string       `json:"error,omitempty"`
	Events   []abci.Event `json:"events,omitempty"`
}

// BlockResult is the outcome of one committed block.
type BlockResult struct {
	Height  int64        `json:"height"`
	Time    time.Time    `json:"time"`
	AppHash []byte       `json:"app_hash"`
	Txs     []TxResult   `json:"txs"`
	Events  []abci.Event `json:"events"`
}

// Option configures an App.
type Option func(*App)

// WithChainID sets the chain id written into block headers.
func WithChainID(chainID string) Option {
	return func(a *App) { a.chainID = chainID }
}

// WithBlockTime sets the header time increment between blocks.
func WithBlockTime(d time.Duration) Option {
	return func(a *App) { a.blockTime = d }
}

// WithGenesisTime sets the time of block 1.
func WithGenesisTime(t time.Time) Option {
	return func(a *App) { a.genesisTime = t.UTC() }
}

// WithTelemetry instruments the block lifecycle with provider.
func WithTelemetry(provider *telemetry.Provider) Option {
	return func(a *App) { a.telemetry = provider }
}

// New creates the runtime on db, loading its latest committed version.
func New(logger log.Logger, db dbm.DB, opts ...Option) (*App, error) {
	SetConfig()

	a := &App{
		logger:      logger.With(log.ModuleKey, AppName),
		chainID:     DefaultChainID,
		blockTime:   DefaultBlockTime,
		genesisTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		authority:   authtypes.NewModuleAddress(govtypes.ModuleName).String(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.keys = storetypes.NewKVStoreKeys(
		ledgertypes.StoreKey,
		circuitbreakertypes.StoreKey,
		oracletypes.StoreKey,
		omnipooltypes.StoreKey,
		stableswaptypes.StoreKey,
		xyktypes.StoreKey,
		lbptypes.StoreKey,
		routertypes.StoreKey,
		dcatypes.StoreKey,
	)
	a.tkeys = storetypes.NewTransientStoreKeys(
		ledgertypes.TStoreKey,
		circuitbreakertypes.TStoreKey,
		oracletypes.TStoreKey,
	)

	a.cms = store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range a.keys {
		a.cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	for _, key := range a.tkeys {
		a.cms.MountStoreWithDB(key, storetypes.StoreTypeTransient, nil)
	}
	if err := a.cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}
	a.height = a.cms.LastCommitID().Version

	a.LedgerKeeper = ledgerkeeper.NewKeeper(a.keys[ledgertypes.StoreKey], a.tkeys[ledgertypes.TStoreKey], a.authority)
	a.CircuitBreakerKeeper = circuitbreakerkeeper.NewKeeper(
		a.keys[circuitbreakertypes.StoreKey], a.tkeys[circuitbreakertypes.TStoreKey], a.authority,
	)
	a.OracleKeeper = oraclekeeper.NewKeeper(a.keys[oracletypes.StoreKey], a.tkeys[oracletypes.TStoreKey], a.authority)

	hooks := routertypes.NewMultiTradeHooks(a.OracleKeeper)
	a.OmnipoolKeeper = omnipoolkeeper.NewKeeper(
		a.keys[omnipooltypes.StoreKey], a.authority, a.LedgerKeeper, a.CircuitBreakerKeeper, hooks,
	)
	a.StableswapKeeper = stableswapkeeper.NewKeeper(
		a.keys[stableswaptypes.StoreKey], a.authority, a.LedgerKeeper, a.CircuitBreakerKeeper, hooks,
	)
	a.XYKKeeper = xykkeeper.NewKeeper(
		a.keys[xyktypes.StoreKey], a.authority, a.LedgerKeeper, a.CircuitBreakerKeeper, hooks,
	)
	a.LBPKeeper = lbpkeeper.NewKeeper(
		a.keys[lbptypes.StoreKey], a.authority, a.LedgerKeeper, a.CircuitBreakerKeeper, hooks,
	)
	a.RouterKeeper = routerkeeper.NewKeeper(
		a.keys[routertypes.StoreKey],
		a.authority,
		a.LedgerKeeper,
		a.OmnipoolKeeper,
		a.StableswapKeeper,
		a.XYKKeeper,
		a.LBPKeeper,
	)
	a.DCAKeeper = dcakeeper.NewKeeper(
		a.keys[dcatypes.StoreKey], a.authority, a.LedgerKeeper, a.RouterKeeper, a.OracleKeeper,
	)
	a.msgs = newMsgServers(a)

	a.tracer = a.telemetry.Tracer()
	blockMetrics, err := telemetry.NewBlockMetrics(a.telemetry.Meter())
	if err != nil {
		return nil, fmt.Errorf("failed to create block metrics: %w", err)
	}
	a.metrics = blockMetrics

	return a, nil
}

// Logger returns the runtime logger.
func (a *App) Logger() log.Logger {
	return a.logger
}

// Authority returns the governance address every module accepts as authority.
func (a *App) Authority() string {
	return a.authority
}

// ChainID returns the chain id written into block headers.
func (a *App) ChainID() string {
	return a.chainID
}

// LastBlockHeight returns the height of the last committed block.
func (a *App) LastBlockHeight() int64 {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return a.height
}

// LastCommitID returns the version and hash of the last committed block.
func (a *App) LastCommitID() storetypes.CommitID {
	return a.cms.LastCommitID()
}

func (a *App) headerAt(height int64) cmtproto.Header {
	return cmtproto.Header{
		ChainID: a.chainID,
		Height:  height,
		Time:    a.genesisTime.Add(time.Duration(height-1) * a.blockTime),
	}
}

// QueryContext returns a read-only context over the last committed state.
// Writes made through it are discarded.
func (a *App) QueryContext() sdk.Context {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return sdk.NewContext(a.cms.CacheMultiStore(), a.headerAt(a.height), true, a.logger)
}

// BeginBlock opens the next block and runs the begin blockers: the circuit
// breaker resets its per-block counters before DCA executes due schedules.
func (a *App) BeginBlock(ctx context.Context) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.block != nil {
		return ErrBlockInProgress.Wrapf("block %d", a.block.header.Height)
	}
	header := a.headerAt(a.height + 1)
	spanCtx, span := telemetry.StartBlockSpan(ctx, a.tracer, header.Height)
	sdkCtx := sdk.NewContext(a.cms, header, false, a.logger).WithContext(spanCtx)
	a.block = &blockState{ctx: sdkCtx, header: header, span: span}

	if err := a.runModule(sdkCtx, circuitbreakertypes.ModuleName, "begin_block", a.CircuitBreakerKeeper.BeginBlocker); err != nil {
		return err
	}
	return a.runModule(sdkCtx, dcatypes.ModuleName, "begin_block", a.DCAKeeper.BeginBlocker)
}

func (a *App) runModule(ctx sdk.Context, module, operation string, hook func(context.Context) error) error {
	spanCtx, span := telemetry.StartModuleSpan(ctx.Context(), a.tracer, module, operation)
	defer span.End()

	start := time.Now()
	err := hook(ctx.WithContext(spanCtx))
	a.metrics.RecordModuleExecution(spanCtx, module, time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("%s %s: %w", module, operation, err)
	}
	return nil
}

// Deliver executes msg inside the open block. A failing message leaves no
// state behind; its error is returned and recorded in the block result.
func (a *App) Deliver(msg Msg) (any, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.block == nil {
		return nil, ErrNoBlockInProgress
	}
	msgType := MsgTypeURL(msg)
	spanCtx, span := telemetry.StartMsgSpan(a.block.ctx.Context(), a.tracer, msgType, a.block.header.Height)
	defer span.End()

	start := time.Now()
	cacheCtx, write := a.block.ctx.WithContext(spanCtx).WithEventManager(sdk.NewEventManager()).CacheContext()
	resp, err := a.route(cacheCtx, msg)
	a.metrics.RecordMsg(spanCtx, msgType, time.Since(start), err == nil)

	result := TxResult{MsgType: msgType}
	if err != nil {
		telemetry.RecordError(span, err)
		result.Error = err.Error()
		a.block.txs = append(a.block.txs, result)
		a.logger.Debug("message failed", "type", msgType, "height", a.block.header.Height, "err", err)
		return nil, err
	}
	write()
	result.Response = resp
	result.Events = cacheCtx.EventManager().ABCIEvents()
	a.block.ctx.EventManager().EmitEvents(cacheCtx.EventManager().Events())
	a.block.txs = append(a.block.txs, result)
	return resp, nil
}

// EndBlock runs the end blockers: the oracle folds the block's trades into
// its moving averages.
func (a *App) EndBlock() error {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.block == nil {
		return ErrNoBlockInProgress
	}
	return a.runModule(a.block.ctx, oracletypes.ModuleName, "end_block", a.OracleKeeper.EndBlocker)
}

// Commit persists the open block and clears the transient stores.
func (a *App) Commit() (BlockResult, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.block == nil {
		return BlockResult{}, ErrNoBlockInProgress
	}
	b := a.block
	a.block = nil
	defer b.span.End()

	commitID := a.cms.Commit()
	a.height = commitID.Version
	if a.height != b.header.Height {
		return BlockResult{}, fmt.Errorf("committed version %d does not match block %d", a.height, b.header.Height)
	}

	events := b.ctx.EventManager().ABCIEvents()
	a.metrics.RecordBlock(b.ctx.Context(), a.height, len(events))
	a.logger.Debug("committed block", "height", a.height, "txs", len(b.txs), "events", len(events))
	return BlockResult{
		Height:  a.height,
		Time:    b.header.Time,
		AppHash: commitID.Hash,
		Txs:     b.txs,
		Events:  events,
	}, nil
}

// NextBlock runs a whole block: begin blockers, every msg in order, end
// blockers and commit. Failing messages are reported in the result and do
// not abort the block.
func (a *App) NextBlock(ctx context.Context, msgs ...Msg) (BlockResult, error) {
	if err := a.BeginBlock(ctx); err != nil {
		return BlockResult{}, err
	}
	for _, msg := range msgs {
		_, _ = a.Deliver(msg)
	}
	if err := a.EndBlock(); err != nil {
		return BlockResult{}, err
	}
	return a.Commit()
}

// InitChain writes genesis into the empty store and commits it as block 1
// without running any blockers.
func (a *App) InitChain(genesis GenesisState) (BlockResult, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	if a.height != 0 {
		return BlockResult{}, ErrAlreadyInitialized.Wrapf("height %d", a.height)
	}
	header := a.headerAt(1)
	ctx := sdk.NewContext(a.cms, header, false, a.logger)
	if err := a.initGenesis(ctx, genesis); err != nil {
		return BlockResult{}, err
	}
	commitID := a.cms.Commit()
	a.height = commitID.Version
	a.logger.Info("initialized chain", "chain_id", a.chainID, "height", a.height)
	return BlockResult{
		Height:  a.height,
		Time:    header.Time,
		AppHash: commitID.Hash,
		Events:  ctx.EventManager().ABCIEvents(),
	}, nil
}

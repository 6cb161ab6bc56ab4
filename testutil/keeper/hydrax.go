package keeper

import (
	"crypto/sha256"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/hydrax/app"
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

// ONE is one whole unit of every test asset.
const ONE int64 = 1_000_000_000_000

// Native is the native denom of the test ledger.
const Native = "hdx"

// Test asset denoms registered by NewEnv besides the native asset.
const (
	DAI  = "dai"
	DOT  = "dot"
	USDT = "usdt"
	USDC = "usdc"
	WETH = "weth"
)

// Units returns n whole units.
func Units(n int64) math.Int {
	return math.NewInt(n).Mul(math.NewInt(ONE))
}

// TestAddr derives a deterministic account address from name.
func TestAddr(name string) sdk.AccAddress {
	sum := sha256.Sum256([]byte("hydrax/test/" + name))
	return sdk.AccAddress(sum[:20])
}

// Env holds every keeper of the chain over one in-memory multistore, with
// a context positioned at the current test block.
type Env struct {
	Ctx       sdk.Context
	Store     storetypes.CommitMultiStore
	Authority string

	Ledger         ledgerkeeper.Keeper
	CircuitBreaker circuitbreakerkeeper.Keeper
	Oracle         oraclekeeper.Keeper
	Omnipool       omnipoolkeeper.Keeper
	Stableswap     stableswapkeeper.Keeper
	XYK            xykkeeper.Keeper
	LBP            lbpkeeper.Keeper
	Router         routerkeeper.Keeper
	DCA            dcakeeper.Keeper
}

// NewEnv mounts all module stores, registers the test assets and returns
// an environment at block 1.
func NewEnv(t testing.TB) *Env {
	app.SetConfig()

	keys := storetypes.NewKVStoreKeys(
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
	tkeys := storetypes.NewTransientStoreKeys(
		ledgertypes.TStoreKey,
		circuitbreakertypes.TStoreKey,
		oracletypes.TStoreKey,
	)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	for _, key := range tkeys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeTransient, nil)
	}
	require.NoError(t, stateStore.LoadLatestVersion())

	authority := authtypes.NewModuleAddress(govtypes.ModuleName).String()
	e := &Env{Store: stateStore, Authority: authority}

	e.Ledger = ledgerkeeper.NewKeeper(keys[ledgertypes.StoreKey], tkeys[ledgertypes.TStoreKey], authority)
	e.CircuitBreaker = circuitbreakerkeeper.NewKeeper(keys[circuitbreakertypes.StoreKey], tkeys[circuitbreakertypes.TStoreKey], authority)
	e.Oracle = oraclekeeper.NewKeeper(keys[oracletypes.StoreKey], tkeys[oracletypes.TStoreKey], authority)
	hooks := routertypes.NewMultiTradeHooks(e.Oracle)
	e.Omnipool = omnipoolkeeper.NewKeeper(keys[omnipooltypes.StoreKey], authority, e.Ledger, e.CircuitBreaker, hooks)
	e.Stableswap = stableswapkeeper.NewKeeper(keys[stableswaptypes.StoreKey], authority, e.Ledger, e.CircuitBreaker, hooks)
	e.XYK = xykkeeper.NewKeeper(keys[xyktypes.StoreKey], authority, e.Ledger, e.CircuitBreaker, hooks)
	e.LBP = lbpkeeper.NewKeeper(keys[lbptypes.StoreKey], authority, e.Ledger, e.CircuitBreaker, hooks)
	e.Router = routerkeeper.NewKeeper(keys[routertypes.StoreKey], authority, e.Ledger, e.Omnipool, e.Stableswap, e.XYK, e.LBP)
	e.DCA = dcakeeper.NewKeeper(keys[dcatypes.StoreKey], authority, e.Ledger, e.Router, e.Oracle)

	e.Ctx = e.newContext(1)

	genesis := ledgertypes.DefaultGenesis()
	for _, denom := range []string{DAI, DOT, USDT, USDC, WETH} {
		genesis.Assets = append(genesis.Assets, ledgertypes.Asset{
			Denom:              denom,
			ExistentialDeposit: math.NewInt(1_000),
			Sufficient:         true,
		})
	}
	require.NoError(t, e.Ledger.InitGenesis(e.Ctx, *genesis))
	return e
}

func (e *Env) newContext(height int64) sdk.Context {
	header := cmtproto.Header{
		ChainID: "hydrax-test-1",
		Height:  height,
		Time:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(height) * 6 * time.Second),
	}
	return sdk.NewContext(e.Store, header, false, log.NewNopLogger())
}

// Fund credits amount of denom to addr.
func (e *Env) Fund(t testing.TB, addr sdk.AccAddress, denom string, amount math.Int) {
	require.NoError(t, e.Ledger.Deposit(e.Ctx, addr, denom, amount))
}

// EndBlock folds the block's trades into the oracle and commits, which
// clears the transient stores.
func (e *Env) EndBlock(t testing.TB) {
	require.NoError(t, e.Oracle.EndBlocker(e.Ctx))
	e.Store.Commit()
}

// BeginBlock opens the next block and runs the circuit breaker and DCA
// begin blockers.
func (e *Env) BeginBlock(t testing.TB) {
	e.Ctx = e.newContext(e.Ctx.BlockHeight() + 1)
	require.NoError(t, e.CircuitBreaker.BeginBlocker(e.Ctx))
	require.NoError(t, e.DCA.BeginBlocker(e.Ctx))
}

// NextBlock ends the current block and begins the next one.
func (e *Env) NextBlock(t testing.TB) {
	e.EndBlock(t)
	e.BeginBlock(t)
}

// AdvanceTo runs blocks until the context reaches height.
func (e *Env) AdvanceTo(t testing.TB, height int64) {
	for e.Ctx.BlockHeight() < height {
		e.NextBlock(t)
	}
}

// Events returns the events emitted in the current block so far.
func (e *Env) Events() sdk.Events {
	return e.Ctx.EventManager().Events()
}

// LiquidityProvider funds the omnipool seeding account.
var LiquidityProvider = TestAddr("liquidity-provider")

// SeedOmnipool lists every asset in the omnipool with amount of reserve at
// the given price in hub units.
func (e *Env) SeedOmnipool(t testing.TB, tokens ...OmnipoolToken) {
	for _, token := range tokens {
		e.Fund(t, LiquidityProvider, token.Denom, token.Amount)
		_, err := e.Omnipool.AddToken(e.Ctx, LiquidityProvider, token.Denom, token.Amount, token.Price)
		require.NoError(t, err)
	}
}

// OmnipoolToken describes one asset listed by SeedOmnipool.
type OmnipoolToken struct {
	Denom  string
	Amount math.Int
	Price  math.LegacyDec
}

// DefaultOmnipool lists the native asset, DAI and DOT with deep reserves so
// that test trades stay far inside the circuit breaker limits.
func (e *Env) DefaultOmnipool(t testing.TB) {
	e.SeedOmnipool(t,
		OmnipoolToken{Denom: Native, Amount: Units(1_000_000), Price: math.LegacyOneDec()},
		OmnipoolToken{Denom: DAI, Amount: Units(1_000_000), Price: math.LegacyNewDec(2)},
		OmnipoolToken{Denom: DOT, Amount: Units(100_000), Price: math.LegacyNewDec(20)},
	)
}

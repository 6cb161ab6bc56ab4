package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/hydrax/app"
	keepertest "github.com/paw-chain/hydrax/testutil/keeper"
	dcatypes "github.com/paw-chain/hydrax/x/dca/types"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

var (
	provider = keepertest.TestAddr("provider")
	trader   = keepertest.TestAddr("trader")
)

func testGenesis(t *testing.T) app.GenesisState {
	t.Helper()
	genesis, err := app.NewGenesisStateFromConfig(app.GenesisConfig{
		Assets: []ledgertypes.Asset{
			{Denom: keepertest.DAI, ExistentialDeposit: math.NewInt(1_000), Sufficient: true},
		},
		Balances: []ledgertypes.Balance{
			{Address: provider.String(), Denom: app.NativeDenom, Amount: keepertest.Units(1_000_000)},
			{Address: provider.String(), Denom: keepertest.DAI, Amount: keepertest.Units(1_000_000)},
			{Address: trader.String(), Denom: app.NativeDenom, Amount: keepertest.Units(1_000)},
		},
	})
	require.NoError(t, err)
	return genesis
}

func newApp(t *testing.T, db dbm.DB) *app.App {
	t.Helper()
	a, err := app.New(log.NewNopLogger(), db)
	require.NoError(t, err)
	return a
}

func addTokens(a *app.App) []app.Msg {
	return []app.Msg{
		&omnipooltypes.MsgAddToken{
			Authority:    a.Authority(),
			Provider:     provider.String(),
			Asset:        app.NativeDenom,
			Amount:       keepertest.Units(1_000_000),
			InitialPrice: math.LegacyOneDec(),
		},
		&omnipooltypes.MsgAddToken{
			Authority:    a.Authority(),
			Provider:     provider.String(),
			Asset:        keepertest.DAI,
			Amount:       keepertest.Units(1_000_000),
			InitialPrice: math.LegacyNewDec(2),
		},
	}
}

func hasEvent(result app.BlockResult, eventType string) bool {
	for _, event := range result.Events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}

func TestInitChain(t *testing.T) {
	a := newApp(t, dbm.NewMemDB())
	require.Zero(t, a.LastBlockHeight())

	result, err := a.InitChain(testGenesis(t))
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Height)
	require.NotEmpty(t, result.AppHash)

	ctx := a.QueryContext()
	require.Equal(t, keepertest.Units(1_000), a.LedgerKeeper.FreeBalance(ctx, trader, app.NativeDenom))
	require.True(t, a.LedgerKeeper.AssetExists(ctx, keepertest.DAI))
	params := a.DCAKeeper.GetParams(ctx)
	require.Equal(t, dcatypes.DefaultParams().MaxSchedulesPerBlock, params.MaxSchedulesPerBlock)
	require.True(t, dcatypes.DefaultParams().ExecutionFee.Equal(params.ExecutionFee))

	_, err = a.InitChain(testGenesis(t))
	require.ErrorIs(t, err, app.ErrAlreadyInitialized)
}

func TestInvalidGenesis(t *testing.T) {
	_, err := app.NewGenesisStateFromConfig(app.GenesisConfig{
		Balances: []ledgertypes.Balance{
			{Address: trader.String(), Denom: "unknown", Amount: keepertest.Units(1)},
		},
	})
	require.ErrorIs(t, err, app.ErrInvalidGenesis)

	params := dcatypes.DefaultParams()
	params.MaxSchedulesPerBlock = 0
	_, err = app.NewGenesisStateFromConfig(app.GenesisConfig{DCA: &params})
	require.ErrorIs(t, err, app.ErrInvalidGenesis)
}

func TestBlockLifecycle(t *testing.T) {
	a := newApp(t, dbm.NewMemDB())
	_, err := a.InitChain(testGenesis(t))
	require.NoError(t, err)

	_, err = a.Deliver(&ledgertypes.MsgTransfer{})
	require.ErrorIs(t, err, app.ErrNoBlockInProgress)
	_, err = a.Commit()
	require.ErrorIs(t, err, app.ErrNoBlockInProgress)

	require.NoError(t, a.BeginBlock(context.Background()))
	require.ErrorIs(t, a.BeginBlock(context.Background()), app.ErrBlockInProgress)
	require.NoError(t, a.EndBlock())
	result, err := a.Commit()
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Height)
	require.Equal(t, int64(2), a.LastBlockHeight())
}

func TestTradeAndScheduleAcrossBlocks(t *testing.T) {
	ctx := context.Background()
	db := dbm.NewMemDB()
	a := newApp(t, db)
	_, err := a.InitChain(testGenesis(t))
	require.NoError(t, err)

	msgs := append(addTokens(a),
		&routertypes.MsgSell{
			Trader:   trader.String(),
			AssetIn:  app.NativeDenom,
			AssetOut: keepertest.DAI,
			AmountIn: keepertest.Units(10),
			MinOut:   math.ZeroInt(),
		},
		// more than the trader holds
		&ledgertypes.MsgTransfer{
			From:   trader.String(),
			To:     provider.String(),
			Denom:  app.NativeDenom,
			Amount: keepertest.Units(5_000),
		},
	)
	result, err := a.NextBlock(ctx, msgs...)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Height)
	require.Len(t, result.Txs, 4)
	for _, tx := range result.Txs[:3] {
		require.Empty(t, tx.Error, tx.MsgType)
	}
	require.Equal(t, "/ledger.MsgTransfer", result.Txs[3].MsgType)
	require.NotEmpty(t, result.Txs[3].Error)

	sold, ok := result.Txs[2].Response.(*routertypes.MsgSellResponse)
	require.True(t, ok)
	require.True(t, sold.AmountOut.IsPositive())
	require.Equal(t, sold.AmountOut, a.LedgerKeeper.FreeBalance(a.QueryContext(), trader, keepertest.DAI))

	result, err = a.NextBlock(ctx, &dcatypes.MsgSchedule{
		Schedule: dcatypes.Schedule{
			Owner:       trader.String(),
			Period:      5,
			TotalAmount: keepertest.Units(100),
			Order: dcatypes.Order{
				Kind:     dcatypes.OrderKindSell,
				AssetIn:  app.NativeDenom,
				AssetOut: keepertest.DAI,
				Amount:   keepertest.Units(10),
				Limit:    math.ZeroInt(),
			},
		},
	})
	require.NoError(t, err)
	require.Empty(t, result.Txs[0].Error)
	require.True(t, hasEvent(result, dcatypes.EventTypeScheduled))

	result, err = a.NextBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), result.Height)
	require.True(t, hasEvent(result, dcatypes.EventTypeTradeExecuted))
	bought := a.LedgerKeeper.FreeBalance(a.QueryContext(), trader, keepertest.DAI)
	require.True(t, bought.GT(sold.AmountOut))

	// state survives reopening the store
	reopened := newApp(t, db)
	require.Equal(t, int64(4), reopened.LastBlockHeight())
	require.Equal(t, a.LastCommitID(), reopened.LastCommitID())
	schedules := reopened.DCAKeeper.GetAllSchedules(reopened.QueryContext())
	require.Len(t, schedules, 1)
	require.Equal(t, bought, reopened.LedgerKeeper.FreeBalance(reopened.QueryContext(), trader, keepertest.DAI))

	result, err = reopened.NextBlock(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), result.Height)
}

func TestDecodeMsg(t *testing.T) {
	for _, url := range app.MsgTypeURLs() {
		msg, err := app.DecodeMsg(url, nil)
		require.NoError(t, err, url)
		require.Equal(t, url, app.MsgTypeURL(msg))
	}

	value, err := json.Marshal(dcatypes.MsgPause{Owner: trader.String(), ScheduleID: 7})
	require.NoError(t, err)
	msg, err := app.DecodeMsg("/dca.MsgPause", value)
	require.NoError(t, err)
	pause, ok := msg.(*dcatypes.MsgPause)
	require.True(t, ok)
	require.Equal(t, uint64(7), pause.ScheduleID)

	_, err = app.DecodeMsg("/dca.MsgUnknown", nil)
	require.ErrorIs(t, err, app.ErrUnknownMsg)
	_, err = app.DecodeMsg("/dca.MsgPause", json.RawMessage(`{"schedule_id":"x"}`))
	require.Error(t, err)
}

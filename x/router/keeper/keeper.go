package keeper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/router/types"
)

// Keeper executes trades along routes of pool hops and stores the default
// route of each asset pair.
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	ledger    types.LedgerKeeper
	executors []types.TradeExecution
	metrics   *RouterMetrics
}

// NewKeeper creates a new router Keeper. Every hop is offered to the
// executors in order until one does not answer ErrNotSupported.
func NewKeeper(
	storeKey storetypes.StoreKey,
	authority string,
	ledger types.LedgerKeeper,
	executors ...types.TradeExecution,
) Keeper {
	return Keeper{
		storeKey:  storeKey,
		authority: authority,
		ledger:    ledger,
		executors: executors,
		metrics:   NewRouterMetrics(),
	}
}

// Authority returns the module authority address.
func (k Keeper) Authority() string {
	return k.authority
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// dispatch runs fn against the first executor that supports the pool.
func dispatch[T any](k Keeper, pool types.PoolType, fn func(types.TradeExecution) (T, error)) (T, error) {
	var zero T
	for _, exec := range k.executors {
		res, err := fn(exec)
		if errors.Is(err, types.ErrNotSupported) {
			continue
		}
		return res, err
	}
	return zero, types.ErrNotSupported.Wrapf("no executor for %s", pool)
}

func (k Keeper) calculateSell(ctx context.Context, hop types.Trade, amountIn math.Int) (math.Int, error) {
	return dispatch(k, hop.Pool, func(e types.TradeExecution) (math.Int, error) {
		return e.CalculateSell(ctx, hop.Pool, hop.AssetIn, hop.AssetOut, amountIn)
	})
}

func (k Keeper) calculateBuy(ctx context.Context, hop types.Trade, amountOut math.Int) (math.Int, error) {
	return dispatch(k, hop.Pool, func(e types.TradeExecution) (math.Int, error) {
		return e.CalculateBuy(ctx, hop.Pool, hop.AssetIn, hop.AssetOut, amountOut)
	})
}

func (k Keeper) executeSell(ctx context.Context, who sdk.AccAddress, hop types.Trade, amountIn, minLimit math.Int) error {
	_, err := dispatch(k, hop.Pool, func(e types.TradeExecution) (struct{}, error) {
		return struct{}{}, e.ExecuteSell(ctx, who, hop.Pool, hop.AssetIn, hop.AssetOut, amountIn, minLimit)
	})
	return err
}

func (k Keeper) executeBuy(ctx context.Context, who sdk.AccAddress, hop types.Trade, amountOut, maxLimit math.Int) error {
	_, err := dispatch(k, hop.Pool, func(e types.TradeExecution) (struct{}, error) {
		return struct{}{}, e.ExecuteBuy(ctx, who, hop.Pool, hop.AssetIn, hop.AssetOut, amountOut, maxLimit)
	})
	return err
}

func (k Keeper) liquidityDepth(ctx context.Context, pool types.PoolType, assetA, assetB string) (math.Int, error) {
	return dispatch(k, pool, func(e types.TradeExecution) (math.Int, error) {
		return e.GetLiquidityDepth(ctx, pool, assetA, assetB)
	})
}

func (k Keeper) spotPrice(ctx context.Context, hop types.Trade) (math.LegacyDec, error) {
	return dispatch(k, hop.Pool, func(e types.TradeExecution) (math.LegacyDec, error) {
		return e.CalculateSpotPrice(ctx, hop.Pool, hop.AssetIn, hop.AssetOut)
	})
}

func getJSON[T any](store storetypes.KVStore, key []byte) (T, bool) {
	var v T
	bz := store.Get(key)
	if bz == nil {
		return v, false
	}
	if err := json.Unmarshal(bz, &v); err != nil {
		panic(fmt.Errorf("unmarshal %T: %w", v, err))
	}
	return v, true
}

func setJSON(store storetypes.KVStore, key []byte, v any) {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("marshal %T: %w", v, err))
	}
	store.Set(key, bz)
}

package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// TradeExecution is implemented once per AMM. Every method returns
// ErrNotSupported when pool is not of the implementer's kind, which lets
// the router try executors in turn.
//
// Calculate* never write state. Execute* either apply the whole trade or
// return an error with no effects visible to the caller.
type TradeExecution interface {
	CalculateSell(ctx context.Context, pool PoolType, assetIn, assetOut string, amountIn math.Int) (math.Int, error)
	CalculateBuy(ctx context.Context, pool PoolType, assetIn, assetOut string, amountOut math.Int) (math.Int, error)
	ExecuteSell(ctx context.Context, who sdk.AccAddress, pool PoolType, assetIn, assetOut string, amountIn, minLimit math.Int) error
	ExecuteBuy(ctx context.Context, who sdk.AccAddress, pool PoolType, assetIn, assetOut string, amountOut, maxLimit math.Int) error
	// GetLiquidityDepth returns the reserve of assetA in the pool trading it against assetB.
	GetLiquidityDepth(ctx context.Context, pool PoolType, assetA, assetB string) (math.Int, error)
	// CalculateSpotPrice returns the amount of assetB one unit of assetA is worth.
	CalculateSpotPrice(ctx context.Context, pool PoolType, assetA, assetB string) (math.LegacyDec, error)
}

// TradeHooks is notified after every executed pool trade and liquidity
// change. Spot prices are in units of the second asset per the first.
type TradeHooks interface {
	OnTrade(ctx context.Context, source, assetIn, assetOut string, amountIn, amountOut math.Int, spotPrice math.LegacyDec)
	OnLiquidityChange(ctx context.Context, source, assetA, assetB string, spotPrice math.LegacyDec)
}

// MultiTradeHooks fans a notification out to several hooks.
type MultiTradeHooks []TradeHooks

// NewMultiTradeHooks creates a new MultiTradeHooks from a list of hooks.
func NewMultiTradeHooks(hooks ...TradeHooks) MultiTradeHooks {
	return hooks
}

// OnTrade calls OnTrade on all registered hooks.
func (h MultiTradeHooks) OnTrade(ctx context.Context, source, assetIn, assetOut string, amountIn, amountOut math.Int, spotPrice math.LegacyDec) {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		hook.OnTrade(ctx, source, assetIn, assetOut, amountIn, amountOut, spotPrice)
	}
}

// OnLiquidityChange calls OnLiquidityChange on all registered hooks.
func (h MultiTradeHooks) OnLiquidityChange(ctx context.Context, source, assetA, assetB string, spotPrice math.LegacyDec) {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		hook.OnLiquidityChange(ctx, source, assetA, assetB, spotPrice)
	}
}

package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
)

// LedgerKeeper defines the expected ledger interface for stableswap pools.
type LedgerKeeper interface {
	FreeBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int
	Transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error
	Deposit(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error
	Withdraw(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error
	AssetExists(ctx context.Context, denom string) bool
	EnsureAsset(ctx context.Context, asset ledgertypes.Asset) error
	SetEdExempt(ctx context.Context, addr sdk.AccAddress)
	SetSkipEd(ctx context.Context, skip bool)
}

// CircuitBreakerKeeper defines the expected circuit breaker interface.
type CircuitBreakerKeeper interface {
	EnsureTradeLimit(ctx context.Context, assetIn string, reserveIn, amountIn math.Int, assetOut string, reserveOut, amountOut math.Int) error
	EnsureAddLiquidityLimit(ctx context.Context, who sdk.AccAddress, asset string, reserve, amount math.Int) error
	EnsureRemoveLiquidityLimit(ctx context.Context, who sdk.AccAddress, asset string, reserve, amount math.Int) error
}

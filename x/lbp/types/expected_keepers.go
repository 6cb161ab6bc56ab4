package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LedgerKeeper defines the expected ledger interface for lbp pools.
type LedgerKeeper interface {
	FreeBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int
	Transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error
	AssetExists(ctx context.Context, denom string) bool
	SetEdExempt(ctx context.Context, addr sdk.AccAddress)
}

// CircuitBreakerKeeper defines the expected circuit breaker interface.
type CircuitBreakerKeeper interface {
	EnsureTradeLimit(ctx context.Context, assetIn string, reserveIn, amountIn math.Int, assetOut string, reserveOut, amountOut math.Int) error
}

package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

// LedgerKeeper is the subset of the ledger the scheduler needs.
type LedgerKeeper interface {
	FreeBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int
	ReservedBalanceNamed(ctx context.Context, id string, addr sdk.AccAddress, denom string) math.Int
	ReserveNamed(ctx context.Context, id string, addr sdk.AccAddress, denom string, amount math.Int) error
	UnreserveNamed(ctx context.Context, id string, addr sdk.AccAddress, denom string, amount math.Int) math.Int
	Transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error
	AssetExists(ctx context.Context, denom string) bool
	NativeAsset(ctx context.Context) string
}

// RouterKeeper executes the scheduled trades.
type RouterKeeper interface {
	Sell(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, amountIn, minLimit math.Int, route routertypes.Route) (math.Int, error)
	Buy(ctx context.Context, who sdk.AccAddress, assetIn, assetOut string, amountOut, maxLimit math.Int, route routertypes.Route) (math.Int, error)
	GetRoute(ctx context.Context, pair routertypes.AssetPair) (routertypes.Route, error)
	SpotPrice(ctx context.Context, route routertypes.Route) (math.LegacyDec, error)
}

// OracleKeeper provides smoothed prices in units of assetB per assetA.
type OracleKeeper interface {
	Price(ctx context.Context, source, assetA, assetB string, period oracletypes.Period) (math.LegacyDec, error)
}

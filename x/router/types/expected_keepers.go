package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LedgerKeeper defines the expected ledger interface for the router.
type LedgerKeeper interface {
	FreeBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int
	IsSufficient(ctx context.Context, denom string) bool
	SetSkipEd(ctx context.Context, skip bool)
}

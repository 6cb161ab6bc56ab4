package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BeginBlocker wipes the previous block's trade and liquidity counters.
func (k Keeper) BeginBlocker(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cleared := k.ClearCounters(ctx)
	if cleared > 0 {
		sdkCtx.Logger().Debug("cleared circuit breaker counters", "height", sdkCtx.BlockHeight(), "count", cleared)
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			"circuitbreaker_begin_block",
			sdk.NewAttribute("height", fmt.Sprintf("%d", sdkCtx.BlockHeight())),
			sdk.NewAttribute("cleared", fmt.Sprintf("%d", cleared)),
		),
	)
	return nil
}

package keeper

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/dca/types"
)

// TradeLimits exposes the per-execution amounts derived from the spot
// price. amount is the amount sold by a sell and bought by a buy.
func TradeLimits(schedule types.Schedule, params types.Params, spot math.LegacyDec, fee math.Int) (amount, limit, unreserve math.Int) {
	t := newTrade(schedule, params, spot, fee)
	if schedule.Order.Kind == types.OrderKindSell {
		return t.amountIn, t.limit, t.unreserve
	}
	return t.amountOut, t.limit, t.unreserve
}

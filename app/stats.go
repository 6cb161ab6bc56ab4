package app

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ModuleStats summarizes module state at the current height. It holds the
// block lock while reading so it never observes a half-applied message.
func (a *App) ModuleStats(_ context.Context) (map[string]any, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	ctx := sdk.NewContext(a.cms.CacheMultiStore(), a.headerAt(a.height), true, a.logger)

	schedules := a.DCAKeeper.GetAllSchedules(ctx)
	suspended := 0
	for _, schedule := range schedules {
		if a.DCAKeeper.IsSuspended(ctx, schedule.ID) {
			suspended++
		}
	}

	return map[string]any{
		"height":           a.height,
		"dca_schedules":    len(schedules),
		"dca_suspended":    suspended,
		"omnipool_assets":  len(a.OmnipoolKeeper.GetAllAssets(ctx)),
		"stableswap_pools": len(a.StableswapKeeper.GetAllPools(ctx)),
		"xyk_pools":        len(a.XYKKeeper.GetAllPools(ctx)),
		"lbp_pools":        len(a.LBPKeeper.GetAllPools(ctx)),
	}, nil
}

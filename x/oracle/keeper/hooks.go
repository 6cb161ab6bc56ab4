package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/oracle/types"
)

// OnTrade records a trade of amountIn of assetIn for amountOut of assetOut.
// spotPrice is the pool price after the trade in units of assetOut per
// assetIn. Values are accumulated for the block and folded into the EMA
// entries by EndBlocker.
func (k Keeper) OnTrade(
	ctx context.Context,
	source, assetIn, assetOut string,
	amountIn, amountOut math.Int,
	spotPrice math.LegacyDec,
) {
	k.accumulate(ctx, source, assetIn, assetOut, amountIn, amountOut, spotPrice)
}

// OnLiquidityChange records the pool price of assetA in assetB after a
// liquidity operation, without volume.
func (k Keeper) OnLiquidityChange(ctx context.Context, source, assetA, assetB string, spotPrice math.LegacyDec) {
	k.accumulate(ctx, source, assetA, assetB, math.ZeroInt(), math.ZeroInt(), spotPrice)
}

func (k Keeper) accumulate(
	ctx context.Context,
	source, assetA, assetB string,
	volumeA, volumeB math.Int,
	price math.LegacyDec,
) {
	if assetA == assetB || price.IsNil() || !price.IsPositive() {
		return
	}
	if assetA > assetB {
		assetA, assetB = assetB, assetA
		volumeA, volumeB = volumeB, volumeA
		price = math.LegacyOneDec().Quo(price)
	}

	height := sdk.UnwrapSDKContext(ctx).BlockHeight()
	store := k.getTransientStore(ctx)
	key := types.AccumulatorKey(source, assetA, assetB)
	acc, found := getJSON[types.Entry](store, key)
	if !found {
		acc = types.NewEntry(price, height)
	}
	acc.Price = price
	acc.VolumeA = acc.VolumeA.Add(volumeA)
	acc.VolumeB = acc.VolumeB.Add(volumeB)
	setJSON(store, key, acc)
}

package keeper

import (
	"context"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/circuitbreaker/types"
)

// EnsureTradeLimit records a trade of amountIn of assetIn for amountOut of
// assetOut and fails if either asset's net volume this block exceeds its
// limit. Reserves are the pool reserves before the trade; they only matter
// for the first trade of the block touching an asset.
//
// Callers run it before mutating reserves, inside the trade's cache
// context, so a failing trade leaves no counter behind.
func (k Keeper) EnsureTradeLimit(
	ctx context.Context,
	assetIn string, reserveIn, amountIn math.Int,
	assetOut string, reserveOut, amountOut math.Int,
) error {
	in := k.initTradeVolume(ctx, assetIn, reserveIn)
	out := k.initTradeVolume(ctx, assetOut, reserveOut)

	in.VolumeIn = in.VolumeIn.Add(amountIn)
	if in.Exceeded() {
		k.emitLimitReached(ctx, "trade_volume", assetIn, in.Limit, amountIn)
		return types.ErrMaxTradeVolumePerBlockReached.Wrapf("asset %s: in %s, out %s, limit %s", assetIn, in.VolumeIn, in.VolumeOut, in.Limit)
	}
	out.VolumeOut = out.VolumeOut.Add(amountOut)
	if out.Exceeded() {
		k.emitLimitReached(ctx, "trade_volume", assetOut, out.Limit, amountOut)
		return types.ErrMaxTradeVolumePerBlockReached.Wrapf("asset %s: in %s, out %s, limit %s", assetOut, out.VolumeIn, out.VolumeOut, out.Limit)
	}

	store := k.getTransientStore(ctx)
	setJSON(store, types.TradeVolumeKey(assetIn), in)
	setJSON(store, types.TradeVolumeKey(assetOut), out)
	return nil
}

func (k Keeper) initTradeVolume(ctx context.Context, asset string, reserve math.Int) types.TradeVolume {
	if volume, found := k.GetTradeVolume(ctx, asset); found {
		return volume
	}
	return types.NewTradeVolume(types.CalculateLimit(reserve, k.TradeVolumeLimit(ctx, asset)))
}

// EnsureAddLiquidityLimit records amount of asset added to a pool holding
// reserve and fails once the block total exceeds the add liquidity limit.
func (k Keeper) EnsureAddLiquidityLimit(ctx context.Context, who sdk.AccAddress, asset string, reserve, amount math.Int) error {
	return k.ensureLiquidityLimit(ctx, who, types.AddLiquidityKey(asset), k.AddLiquidityLimit(ctx, asset), "add_liquidity", asset, reserve, amount)
}

// EnsureRemoveLiquidityLimit records amount of asset removed from a pool
// holding reserve and fails once the block total exceeds the limit.
func (k Keeper) EnsureRemoveLiquidityLimit(ctx context.Context, who sdk.AccAddress, asset string, reserve, amount math.Int) error {
	return k.ensureLiquidityLimit(ctx, who, types.RemoveLiquidityKey(asset), k.RemoveLiquidityLimit(ctx, asset), "remove_liquidity", asset, reserve, amount)
}

func (k Keeper) ensureLiquidityLimit(
	ctx context.Context,
	who sdk.AccAddress,
	key []byte,
	limit *types.Fraction,
	kind, asset string,
	reserve, amount math.Int,
) error {
	if limit == nil || k.IsWhitelisted(ctx, who) {
		return nil
	}
	store := k.getTransientStore(ctx)
	volume, found := getJSON[types.LiquidityVolume](store, key)
	if !found {
		volume = types.NewLiquidityVolume(types.CalculateLimit(reserve, *limit))
	}
	volume.Amount = volume.Amount.Add(amount)
	if volume.Amount.GT(volume.Limit) {
		k.emitLimitReached(ctx, kind, asset, volume.Limit, amount)
		return types.ErrMaxLiquidityLimitPerBlockReached.Wrapf("%s %s: %s > %s", kind, asset, volume.Amount, volume.Limit)
	}
	setJSON(store, key, volume)
	return nil
}

// GetTradeVolume returns the trade volume of asset in the current block.
func (k Keeper) GetTradeVolume(ctx context.Context, asset string) (types.TradeVolume, bool) {
	return getJSON[types.TradeVolume](k.getTransientStore(ctx), types.TradeVolumeKey(asset))
}

// GetAddLiquidityVolume returns the liquidity added to asset in the current block.
func (k Keeper) GetAddLiquidityVolume(ctx context.Context, asset string) (types.LiquidityVolume, bool) {
	return getJSON[types.LiquidityVolume](k.getTransientStore(ctx), types.AddLiquidityKey(asset))
}

// GetRemoveLiquidityVolume returns the liquidity removed from asset in the current block.
func (k Keeper) GetRemoveLiquidityVolume(ctx context.Context, asset string) (types.LiquidityVolume, bool) {
	return getJSON[types.LiquidityVolume](k.getTransientStore(ctx), types.RemoveLiquidityKey(asset))
}

// ClearCounters deletes every per-block counter and returns how many were removed.
func (k Keeper) ClearCounters(ctx context.Context) int {
	store := k.getTransientStore(ctx)
	var keys [][]byte
	for _, prefix := range [][]byte{types.TradeVolumeKeyPrefix, types.AddLiquidityKeyPrefix, types.RemoveLiquidityKeyPrefix} {
		iter := storetypes.KVStorePrefixIterator(store, prefix)
		for ; iter.Valid(); iter.Next() {
			keys = append(keys, append([]byte{}, iter.Key()...))
		}
		iter.Close()
	}
	for _, key := range keys {
		store.Delete(key)
	}
	return len(keys)
}

func (k Keeper) emitLimitReached(ctx context.Context, kind, asset string, limit, amount math.Int) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLimitReached,
			sdk.NewAttribute(types.AttributeKeyKind, kind),
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyLimit, limit.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}

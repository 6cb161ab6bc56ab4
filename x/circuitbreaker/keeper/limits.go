package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/circuitbreaker/types"
)

// SetTradeVolumeLimit overrides the trade volume limit of asset.
func (k Keeper) SetTradeVolumeLimit(ctx context.Context, asset string, limit types.Fraction) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	setJSON(k.getStore(ctx), types.TradeVolumeLimitKey(asset), limit)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTradeVolumeLimitChanged,
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyLimit, limit.String()),
		),
	)
	return nil
}

// TradeVolumeLimit returns the trade volume limit that applies to asset.
func (k Keeper) TradeVolumeLimit(ctx context.Context, asset string) types.Fraction {
	if limit, found := getJSON[types.Fraction](k.getStore(ctx), types.TradeVolumeLimitKey(asset)); found {
		return limit
	}
	return k.GetParams(ctx).DefaultTradeVolumeLimit
}

// SetAddLiquidityLimit overrides the add liquidity limit of asset. A nil
// limit disables the check for asset.
func (k Keeper) SetAddLiquidityLimit(ctx context.Context, asset string, limit *types.Fraction) error {
	return k.setLiquidityLimit(ctx, types.AddLiquidityLimitKey(asset), types.EventTypeAddLiquidityLimitChanged, asset, limit)
}

// SetRemoveLiquidityLimit overrides the remove liquidity limit of asset.
func (k Keeper) SetRemoveLiquidityLimit(ctx context.Context, asset string, limit *types.Fraction) error {
	return k.setLiquidityLimit(ctx, types.RemoveLiquidityLimitKey(asset), types.EventTypeRemoveLiquidityLimitChanged, asset, limit)
}

func (k Keeper) setLiquidityLimit(ctx context.Context, key []byte, eventType, asset string, limit *types.Fraction) error {
	if limit != nil {
		if err := limit.Validate(); err != nil {
			return err
		}
	}
	// stored as a pointer so that "no limit" overrides a default
	setJSON(k.getStore(ctx), key, limit)

	value := "none"
	if limit != nil {
		value = limit.String()
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			eventType,
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyLimit, value),
		),
	)
	return nil
}

// AddLiquidityLimit returns the add liquidity limit of asset, or nil.
func (k Keeper) AddLiquidityLimit(ctx context.Context, asset string) *types.Fraction {
	if limit, found := getJSON[*types.Fraction](k.getStore(ctx), types.AddLiquidityLimitKey(asset)); found {
		return limit
	}
	return k.GetParams(ctx).DefaultAddLiquidityLimit
}

// RemoveLiquidityLimit returns the remove liquidity limit of asset, or nil.
func (k Keeper) RemoveLiquidityLimit(ctx context.Context, asset string) *types.Fraction {
	if limit, found := getJSON[*types.Fraction](k.getStore(ctx), types.RemoveLiquidityLimitKey(asset)); found {
		return limit
	}
	return k.GetParams(ctx).DefaultRemoveLiquidityLimit
}

// AddToWhitelist exempts addr from liquidity limits.
func (k Keeper) AddToWhitelist(ctx context.Context, addr sdk.AccAddress) {
	k.getStore(ctx).Set(types.LiquidityWhitelistKey(addr), []byte{1})
}

// IsWhitelisted reports whether addr is exempt from liquidity limits.
func (k Keeper) IsWhitelisted(ctx context.Context, addr sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.LiquidityWhitelistKey(addr))
}

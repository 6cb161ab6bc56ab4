package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
)

// RegisterAsset adds an asset to the registry.
func (k Keeper) RegisterAsset(ctx context.Context, asset types.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	if k.AssetExists(ctx, asset.Denom) {
		return types.ErrAssetAlreadyExists.Wrap(asset.Denom)
	}
	k.setAsset(ctx, asset)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAssetRegistered,
			sdk.NewAttribute(types.AttributeKeyDenom, asset.Denom),
			sdk.NewAttribute("sufficient", fmt.Sprintf("%t", asset.Sufficient)),
		),
	)
	return nil
}

// EnsureAsset registers asset unless it already exists. Pool modules use it
// for share tokens.
func (k Keeper) EnsureAsset(ctx context.Context, asset types.Asset) error {
	if k.AssetExists(ctx, asset.Denom) {
		return nil
	}
	return k.RegisterAsset(ctx, asset)
}

func (k Keeper) setAsset(ctx context.Context, asset types.Asset) {
	bz, err := json.Marshal(asset)
	if err != nil {
		panic(fmt.Errorf("marshal asset: %w", err))
	}
	k.getStore(ctx).Set(types.AssetKey(asset.Denom), bz)
}

// GetAsset returns a registered asset.
func (k Keeper) GetAsset(ctx context.Context, denom string) (types.Asset, bool) {
	bz := k.getStore(ctx).Get(types.AssetKey(denom))
	if bz == nil {
		return types.Asset{}, false
	}
	var asset types.Asset
	if err := json.Unmarshal(bz, &asset); err != nil {
		panic(fmt.Errorf("unmarshal asset %s: %w", denom, err))
	}
	return asset, true
}

// AssetExists reports whether denom is registered.
func (k Keeper) AssetExists(ctx context.Context, denom string) bool {
	return k.getStore(ctx).Has(types.AssetKey(denom))
}

// GetAllAssets returns every registered asset ordered by denom.
func (k Keeper) GetAllAssets(ctx context.Context) []types.Asset {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AssetKeyPrefix)
	defer iter.Close()

	var assets []types.Asset
	for ; iter.Valid(); iter.Next() {
		var asset types.Asset
		if err := json.Unmarshal(iter.Value(), &asset); err != nil {
			panic(fmt.Errorf("unmarshal asset: %w", err))
		}
		assets = append(assets, asset)
	}
	return assets
}

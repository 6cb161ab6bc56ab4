package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/omnipool/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

const source = string(routertypes.PoolKindOmnipool)

// Keeper manages the omnipool: every asset trades against the hub asset
// and all reserves sit in one pool account.
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	ledger    types.LedgerKeeper
	breaker   types.CircuitBreakerKeeper
	hooks     routertypes.TradeHooks
}

// NewKeeper creates a new omnipool Keeper instance. hooks may be nil.
func NewKeeper(
	storeKey storetypes.StoreKey,
	authority string,
	ledger types.LedgerKeeper,
	breaker types.CircuitBreakerKeeper,
	hooks routertypes.TradeHooks,
) Keeper {
	return Keeper{
		storeKey:  storeKey,
		authority: authority,
		ledger:    ledger,
		breaker:   breaker,
		hooks:     hooks,
	}
}

// Authority returns the module authority address.
func (k Keeper) Authority() string {
	return k.authority
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

// GetParams returns the current parameters from the store.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		panic(fmt.Errorf("GetParams: unmarshal: %w", err))
	}
	return params
}

// SetParams sets the parameters in the store.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// HubAsset returns the hub asset denom.
func (k Keeper) HubAsset(ctx context.Context) string {
	return k.GetParams(ctx).HubAsset
}

// GetAssetState returns the stored state of asset.
func (k Keeper) GetAssetState(ctx context.Context, asset string) (types.AssetState, bool) {
	bz := k.getStore(ctx).Get(types.AssetStateKey(asset))
	if bz == nil {
		return types.AssetState{}, false
	}
	var state types.AssetState
	if err := json.Unmarshal(bz, &state); err != nil {
		panic(fmt.Errorf("unmarshal omnipool asset %s: %w", asset, err))
	}
	return state, true
}

func (k Keeper) setAssetState(ctx context.Context, asset string, state types.AssetState) {
	bz, err := json.Marshal(state)
	if err != nil {
		panic(fmt.Errorf("marshal omnipool asset %s: %w", asset, err))
	}
	k.getStore(ctx).Set(types.AssetStateKey(asset), bz)
}

func (k Keeper) deleteAssetState(ctx context.Context, asset string) {
	k.getStore(ctx).Delete(types.AssetStateKey(asset))
}

// GetAllAssets returns the denoms of all pool assets in store order.
func (k Keeper) GetAllAssets(ctx context.Context) []string {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AssetStateKeyPrefix)
	defer iter.Close()

	var assets []string
	for ; iter.Valid(); iter.Next() {
		assets = append(assets, string(iter.Key()[len(types.AssetStateKeyPrefix):]))
	}
	return assets
}

// GetLiquidity returns the state of asset with its current reserve.
func (k Keeper) GetLiquidity(ctx context.Context, asset string) (types.Liquidity, error) {
	state, found := k.GetAssetState(ctx, asset)
	if !found {
		return types.Liquidity{}, types.ErrAssetNotFound.Wrap(asset)
	}
	return types.Liquidity{
		Asset:      asset,
		Reserve:    k.ledger.FreeBalance(ctx, types.PoolAccount(), asset),
		HubReserve: state.HubReserve,
		Shares:     state.Shares,
	}, nil
}

// HoldsAsset reports whether asset is tradable in the omnipool. The hub
// asset is always tradable.
func (k Keeper) HoldsAsset(ctx context.Context, asset string) bool {
	if asset == k.HubAsset(ctx) {
		return true
	}
	_, found := k.GetAssetState(ctx, asset)
	return found
}

func (k Keeper) notifyTrade(ctx context.Context, hub string, in, out *types.Liquidity, result types.TradeResult) {
	if k.hooks == nil {
		return
	}
	if in != nil {
		if price, err := in.HubPrice(); err == nil {
			k.hooks.OnTrade(ctx, source, in.Asset, hub, result.AmountIn, result.HubIn, price)
		}
	}
	if price, err := out.HubPrice(); err == nil && price.IsPositive() {
		k.hooks.OnTrade(ctx, source, hub, out.Asset, result.HubOut, result.AmountOut, math.LegacyOneDec().Quo(price))
	}
}

func (k Keeper) notifyLiquidity(ctx context.Context, hub string, l types.Liquidity) {
	if k.hooks == nil {
		return
	}
	if price, err := l.HubPrice(); err == nil {
		k.hooks.OnLiquidityChange(ctx, source, l.Asset, hub, price)
	}
}

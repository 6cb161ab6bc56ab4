package keeper

import (
	"context"
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/lbp/types"
)

// CreatePool opens a bootstrapping pool funded by the pool owner.
func (k Keeper) CreatePool(ctx context.Context, pool types.Pool, amountA, amountB math.Int) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	owner, err := sdk.AccAddressFromBech32(pool.Owner)
	if err != nil {
		return types.ErrInvalidAddress.Wrapf("owner: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(pool.FeeCollector); err != nil {
		return types.ErrInvalidAddress.Wrapf("fee collector: %s", err)
	}
	for _, asset := range []string{pool.AssetA, pool.AssetB} {
		if !k.ledger.AssetExists(ctx, asset) {
			return types.ErrAssetNotRegistered.Wrap(asset)
		}
	}
	if _, err := k.GetPool(ctx, pool.AssetA, pool.AssetB); err == nil {
		return types.ErrPoolAlreadyExists.Wrapf("%s/%s", pool.AssetA, pool.AssetB)
	}
	params := k.GetParams(ctx)
	if amountA.LT(params.MinPoolLiquidity) || amountB.LT(params.MinPoolLiquidity) {
		return types.ErrInsufficientLiquidity.Wrapf("initial liquidity below %s", params.MinPoolLiquidity)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	account := types.PoolAccount(pool.AssetA, pool.AssetB)
	k.ledger.SetEdExempt(cacheCtx, account)
	if err := k.ledger.Transfer(cacheCtx, owner, account, pool.AssetA, amountA); err != nil {
		return err
	}
	if err := k.ledger.Transfer(cacheCtx, owner, account, pool.AssetB, amountB); err != nil {
		return err
	}
	k.setPool(cacheCtx, pool)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
			sdk.NewAttribute(types.AttributeKeyAssetA, pool.AssetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, pool.AssetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyStart, strconv.FormatInt(pool.Start, 10)),
			sdk.NewAttribute(types.AttributeKeyEnd, strconv.FormatInt(pool.End, 10)),
		),
	)
	if k.hooks != nil {
		wa, wb := pool.WeightsAt(sdkCtx.BlockHeight())
		if price, err := types.SpotPrice(amountA, amountB, wa, wb); err == nil {
			k.hooks.OnLiquidityChange(cacheCtx, source, pool.AssetA, pool.AssetB, price)
		}
	}
	write()
	sdkCtx.Logger().Info("lbp pool created", "asset_a", pool.AssetA, "asset_b", pool.AssetB, "start", pool.Start, "end", pool.End)
	return nil
}

// RemoveLiquidity pays both reserves to the owner and destroys the pool.
// It is refused while the sale is running.
func (k Keeper) RemoveLiquidity(ctx context.Context, owner sdk.AccAddress, assetA, assetB string) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if pool.Owner != owner.String() {
		return math.Int{}, math.Int{}, types.ErrNotOwner.Wrapf("%s does not own %s/%s", owner, assetA, assetB)
	}
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if pool.Running(sdkCtx.BlockHeight()) {
		return math.Int{}, math.Int{}, types.ErrSaleNotEnded.Wrapf("sale ends at %d", pool.End)
	}
	amountA, amountB := k.Reserves(ctx, assetA, assetB)

	cacheCtx, write := sdkCtx.CacheContext()
	account := types.PoolAccount(assetA, assetB)
	if err := k.ledger.Transfer(cacheCtx, account, owner, assetA, amountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, account, owner, assetB, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}
	k.deletePool(cacheCtx, pool)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyOwner, pool.Owner),
			sdk.NewAttribute(types.AttributeKeyAssetA, assetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, assetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
		),
	)
	write()
	return amountA, amountB, nil
}

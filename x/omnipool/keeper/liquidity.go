package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	"github.com/paw-chain/hydrax/x/omnipool/types"
)

// AddToken lists asset in the omnipool. The provider supplies amount of
// the asset, the matching hub reserve is minted at initialPrice and the
// provider receives amount shares.
func (k Keeper) AddToken(ctx context.Context, provider sdk.AccAddress, asset string, amount math.Int, initialPrice math.LegacyDec) (math.Int, error) {
	params := k.GetParams(ctx)
	if asset == params.HubAsset {
		return math.Int{}, types.ErrNotAllowed.Wrap("hub asset cannot be listed")
	}
	registered, found := k.ledger.GetAsset(ctx, asset)
	if !found {
		return math.Int{}, types.ErrAssetNotFound.Wrapf("%s is not registered", asset)
	}
	if _, exists := k.GetAssetState(ctx, asset); exists {
		return math.Int{}, types.ErrAssetAlreadyExists.Wrap(asset)
	}
	if initialPrice.IsNil() || !initialPrice.IsPositive() {
		return math.Int{}, types.ErrInvalidInitialPrice.Wrapf("%v", initialPrice)
	}
	hubAmount := math.LegacyNewDecFromInt(amount).Mul(initialPrice).TruncateInt()
	if !hubAmount.IsPositive() {
		return math.Int{}, types.ErrInvalidInitialPrice.Wrapf("%s %s at %s mints no hub", amount, asset, initialPrice)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	pool := types.PoolAccount()
	k.ledger.SetEdExempt(cacheCtx, pool)
	if err := k.ledger.EnsureAsset(cacheCtx, ledgertypes.Asset{Denom: params.HubAsset, ExistentialDeposit: math.OneInt(), Sufficient: true}); err != nil {
		return math.Int{}, err
	}
	share := ledgertypes.Asset{Denom: types.ShareDenom(asset), ExistentialDeposit: registered.ExistentialDeposit, Sufficient: true}
	if err := k.ledger.EnsureAsset(cacheCtx, share); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, provider, pool, asset, amount); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Deposit(cacheCtx, pool, params.HubAsset, hubAmount); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Deposit(cacheCtx, provider, share.Denom, amount); err != nil {
		return math.Int{}, err
	}
	k.setAssetState(cacheCtx, asset, types.AssetState{HubReserve: hubAmount, Shares: amount})

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenAdded,
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyHubAmount, hubAmount.String()),
			sdk.NewAttribute(types.AttributeKeyPrice, initialPrice.String()),
		),
	)
	k.notifyLiquidity(cacheCtx, params.HubAsset, types.Liquidity{Asset: asset, Reserve: amount, HubReserve: hubAmount, Shares: amount})
	write()

	sdkCtx.Logger().Info("omnipool token added", "asset", asset, "amount", amount.String(), "price", initialPrice.String())
	return amount, nil
}

// AddLiquidity deposits amount of a listed asset and mints shares
// proportional to the pool state.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, asset string, amount math.Int) (math.Int, error) {
	params := k.GetParams(ctx)
	l, err := k.GetLiquidity(ctx, asset)
	if err != nil {
		return math.Int{}, err
	}
	hubAmount, shares, err := types.SharesForLiquidity(l, amount)
	if err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.breaker.EnsureAddLiquidityLimit(cacheCtx, provider, asset, l.Reserve, amount); err != nil {
		return math.Int{}, err
	}
	pool := types.PoolAccount()
	if err := k.ledger.Transfer(cacheCtx, provider, pool, asset, amount); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Deposit(cacheCtx, pool, params.HubAsset, hubAmount); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Deposit(cacheCtx, provider, types.ShareDenom(asset), shares); err != nil {
		return math.Int{}, err
	}
	l.Reserve = l.Reserve.Add(amount)
	l.HubReserve = l.HubReserve.Add(hubAmount)
	l.Shares = l.Shares.Add(shares)
	k.setAssetState(cacheCtx, asset, types.AssetState{HubReserve: l.HubReserve, Shares: l.Shares})

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	k.notifyLiquidity(cacheCtx, params.HubAsset, l)
	write()
	return shares, nil
}

// RemoveLiquidity burns shares and pays out the proportional reserve. The
// matching hub reserve is burned. An asset whose shares reach zero is
// delisted.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider sdk.AccAddress, asset string, shares math.Int) (math.Int, error) {
	params := k.GetParams(ctx)
	l, err := k.GetLiquidity(ctx, asset)
	if err != nil {
		return math.Int{}, err
	}
	held := k.ledger.FreeBalance(ctx, provider, types.ShareDenom(asset))
	if held.LT(shares) {
		return math.Int{}, types.ErrInsufficientShares.Wrapf("have %s, redeem %s", held, shares)
	}
	amount, hubAmount, err := types.LiquidityForShares(l, shares)
	if err != nil {
		return math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.breaker.EnsureRemoveLiquidityLimit(cacheCtx, provider, asset, l.Reserve, amount); err != nil {
		return math.Int{}, err
	}
	pool := types.PoolAccount()
	if err := k.ledger.Withdraw(cacheCtx, provider, types.ShareDenom(asset), shares); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Withdraw(cacheCtx, pool, params.HubAsset, hubAmount); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, pool, provider, asset, amount); err != nil {
		return math.Int{}, err
	}
	l.Reserve = l.Reserve.Sub(amount)
	l.HubReserve = l.HubReserve.Sub(hubAmount)
	l.Shares = l.Shares.Sub(shares)
	if l.Shares.IsZero() {
		k.deleteAssetState(cacheCtx, asset)
	} else {
		k.setAssetState(cacheCtx, asset, types.AssetState{HubReserve: l.HubReserve, Shares: l.Shares})
		k.notifyLiquidity(cacheCtx, params.HubAsset, l)
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	write()
	return amount, nil
}

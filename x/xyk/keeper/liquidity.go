package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	"github.com/paw-chain/hydrax/x/shared/amm"
	"github.com/paw-chain/hydrax/x/xyk/types"
)

// CreatePool creates the assetA/assetB pool funded by the creator and
// mints the initial shares.
func (k Keeper) CreatePool(ctx context.Context, creator sdk.AccAddress, assetA string, amountA math.Int, assetB string, amountB math.Int) (math.Int, error) {
	if assetA == assetB {
		return math.Int{}, types.ErrSameAsset.Wrap(assetA)
	}
	for _, asset := range []string{assetA, assetB} {
		if !k.ledger.AssetExists(ctx, asset) {
			return math.Int{}, types.ErrAssetNotRegistered.Wrap(asset)
		}
	}
	if _, err := k.GetPool(ctx, assetA, assetB); err == nil {
		return math.Int{}, types.ErrPoolAlreadyExists.Wrapf("%s/%s", assetA, assetB)
	}
	params := k.GetParams(ctx)
	if amountA.LT(params.MinPoolLiquidity) || amountB.LT(params.MinPoolLiquidity) {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("initial liquidity below %s", params.MinPoolLiquidity)
	}
	shares, err := types.InitialShares(amountA, amountB)
	if err != nil {
		return math.Int{}, err
	}
	if !shares.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("initial liquidity mints no shares")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	account := types.PoolAccount(assetA, assetB)
	k.ledger.SetEdExempt(cacheCtx, account)
	shareDenom := types.ShareDenom(assetA, assetB)
	if err := k.ledger.EnsureAsset(cacheCtx, ledgertypes.Asset{Denom: shareDenom, ExistentialDeposit: math.OneInt(), Sufficient: true}); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, creator, account, assetA, amountA); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, creator, account, assetB, amountB); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Deposit(cacheCtx, creator, shareDenom, shares); err != nil {
		return math.Int{}, err
	}
	a, b := types.OrderedPair(assetA, assetB)
	k.setPool(cacheCtx, types.Pool{AssetA: a, AssetB: b, TotalShares: shares})

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyWho, creator.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, assetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, assetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	k.notifyLiquidity(cacheCtx, assetA, assetB, amountA, amountB)
	write()
	return shares, nil
}

// AddLiquidity deposits amountA of assetA with the proportional amount of
// assetB, capped by maxAmountB.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, assetA, assetB string, amountA, maxAmountB math.Int) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	reserveA, reserveB := k.Reserves(ctx, assetA, assetB)
	if !reserveA.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInsufficientLiquidity.Wrapf("%s reserve is empty", assetA)
	}
	amountB, err := amm.MulDivCeil(amountA, reserveB, reserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountB.GT(maxAmountB) {
		return math.Int{}, math.Int{}, types.ErrAssetAmountExceededLimit.Wrapf("needs %s %s, max %s", amountB, assetB, maxAmountB)
	}
	shares, err := amm.MulDiv(amountA, pool.TotalShares, reserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !shares.IsPositive() {
		return math.Int{}, math.Int{}, types.ErrInvalidAmount.Wrap("liquidity mints no shares")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.breaker.EnsureAddLiquidityLimit(cacheCtx, provider, assetA, reserveA, amountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.breaker.EnsureAddLiquidityLimit(cacheCtx, provider, assetB, reserveB, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}
	account := types.PoolAccount(assetA, assetB)
	if err := k.ledger.Transfer(cacheCtx, provider, account, assetA, amountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, provider, account, assetB, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Deposit(cacheCtx, provider, types.ShareDenom(assetA, assetB), shares); err != nil {
		return math.Int{}, math.Int{}, err
	}
	pool.TotalShares = pool.TotalShares.Add(shares)
	k.setPool(cacheCtx, pool)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, assetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, assetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	k.notifyLiquidity(cacheCtx, assetA, assetB, reserveA.Add(amountA), reserveB.Add(amountB))
	write()
	return amountB, shares, nil
}

// RemoveLiquidity burns shares and pays out both reserves proportionally.
// The pool is destroyed when its last share is burned.
func (k Keeper) RemoveLiquidity(ctx context.Context, provider sdk.AccAddress, assetA, assetB string, shares math.Int) (math.Int, math.Int, error) {
	pool, err := k.GetPool(ctx, assetA, assetB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	shareDenom := types.ShareDenom(assetA, assetB)
	if held := k.ledger.FreeBalance(ctx, provider, shareDenom); held.LT(shares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf("have %s, redeem %s", held, shares)
	}
	if shares.GT(pool.TotalShares) {
		return math.Int{}, math.Int{}, types.ErrInsufficientShares.Wrapf("%s > total %s", shares, pool.TotalShares)
	}
	reserveA, reserveB := k.Reserves(ctx, assetA, assetB)
	amountA, err := amm.MulDiv(reserveA, shares, pool.TotalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountB, err := amm.MulDiv(reserveB, shares, pool.TotalShares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.breaker.EnsureRemoveLiquidityLimit(cacheCtx, provider, assetA, reserveA, amountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.breaker.EnsureRemoveLiquidityLimit(cacheCtx, provider, assetB, reserveB, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}
	account := types.PoolAccount(assetA, assetB)
	if err := k.ledger.Withdraw(cacheCtx, provider, shareDenom, shares); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, account, provider, assetA, amountA); err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, account, provider, assetB, amountB); err != nil {
		return math.Int{}, math.Int{}, err
	}
	pool.TotalShares = pool.TotalShares.Sub(shares)
	if pool.TotalShares.IsZero() {
		k.deletePool(cacheCtx, pool)
	} else {
		k.setPool(cacheCtx, pool)
		k.notifyLiquidity(cacheCtx, assetA, assetB, reserveA.Sub(amountA), reserveB.Sub(amountB))
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, assetA),
			sdk.NewAttribute(types.AttributeKeyAssetB, assetB),
			sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	write()
	return amountA, amountB, nil
}

func (k Keeper) notifyLiquidity(ctx context.Context, assetA, assetB string, reserveA, reserveB math.Int) {
	if k.hooks == nil || !reserveA.IsPositive() {
		return
	}
	price := math.LegacyNewDecFromInt(reserveB).Quo(math.LegacyNewDecFromInt(reserveA))
	k.hooks.OnLiquidityChange(ctx, source, assetA, assetB, price)
}

package keeper

import (
	"context"
	"strconv"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	"github.com/paw-chain/hydrax/x/shared/amm"
	"github.com/paw-chain/hydrax/x/stableswap/types"
)

// CreatePool registers an empty pool over assets and returns its id.
func (k Keeper) CreatePool(ctx context.Context, assets []string, amplification uint64, fee math.LegacyDec) (uint64, error) {
	params := k.GetParams(ctx)
	if err := types.ValidatePool(assets, amplification, params.MaxAmplification, fee); err != nil {
		return 0, err
	}
	for _, asset := range assets {
		if !k.ledger.AssetExists(ctx, asset) {
			return 0, types.ErrAssetNotRegistered.Wrap(asset)
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	id := k.nextPoolID(cacheCtx)
	k.ledger.SetEdExempt(cacheCtx, types.PoolAccount(id))
	if err := k.ledger.EnsureAsset(cacheCtx, ledgertypes.Asset{Denom: types.ShareDenom(id), ExistentialDeposit: math.OneInt(), Sufficient: true}); err != nil {
		return 0, err
	}
	k.setPool(cacheCtx, types.Pool{
		ID:            id,
		Assets:        append([]string(nil), assets...),
		Amplification: amplification,
		Fee:           fee,
		TotalShares:   math.ZeroInt(),
	})

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(id, 10)),
			sdk.NewAttribute(types.AttributeKeyAssets, strings.Join(assets, ",")),
			sdk.NewAttribute(types.AttributeKeyAmplification, strconv.FormatUint(amplification, 10)),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
		),
	)
	write()
	sdkCtx.Logger().Info("stableswap pool created", "pool_id", id, "assets", assets)
	return id, nil
}

// AddLiquidity deposits amounts of pool assets and mints shares in
// proportion to the invariant growth. The first deposit must cover every
// asset.
func (k Keeper) AddLiquidity(ctx context.Context, provider sdk.AccAddress, poolID uint64, deposits []types.AssetAmount) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	amounts := make([]math.Int, len(pool.Assets))
	for i := range amounts {
		amounts[i] = math.ZeroInt()
	}
	for _, d := range deposits {
		i, ok := pool.IndexOf(d.Asset)
		if !ok {
			return math.Int{}, types.ErrAssetNotInPool.Wrapf("%s in pool %d", d.Asset, poolID)
		}
		if d.Amount.IsNil() || !d.Amount.IsPositive() {
			return math.Int{}, types.ErrInvalidAmount.Wrapf("%s amount must be positive", d.Asset)
		}
		amounts[i] = amounts[i].Add(d.Amount)
	}
	params := k.GetParams(ctx)
	if pool.TotalShares.IsZero() {
		for i, amount := range amounts {
			if amount.LT(params.MinPoolLiquidity) {
				return math.Int{}, types.ErrInsufficientLiquidity.Wrapf("initial %s below %s", pool.Assets[i], params.MinPoolLiquidity)
			}
		}
	}

	reserves := k.Reserves(ctx, pool)
	shares, err := types.CalculateShares(reserves, amounts, pool.TotalShares, pool.Amplification)
	if err != nil {
		return math.Int{}, err
	}
	if !shares.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("liquidity mints no shares")
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	account := types.PoolAccount(poolID)
	for i, amount := range amounts {
		if amount.IsZero() {
			continue
		}
		if !pool.TotalShares.IsZero() {
			if err := k.breaker.EnsureAddLiquidityLimit(cacheCtx, provider, pool.Assets[i], reserves[i], amount); err != nil {
				return math.Int{}, err
			}
		}
		if err := k.ledger.Transfer(cacheCtx, provider, account, pool.Assets[i], amount); err != nil {
			return math.Int{}, err
		}
	}
	if err := k.ledger.Deposit(cacheCtx, provider, types.ShareDenom(poolID), shares); err != nil {
		return math.Int{}, err
	}
	pool.TotalShares = pool.TotalShares.Add(shares)
	k.setPool(cacheCtx, pool)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityAdded,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	k.notifyLiquidity(cacheCtx, pool)
	write()
	return shares, nil
}

// RemoveLiquidityOneAsset burns shares and pays out a single asset, less
// the pool fee.
func (k Keeper) RemoveLiquidityOneAsset(ctx context.Context, provider sdk.AccAddress, poolID uint64, asset string, shares, minReceived math.Int) (math.Int, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, err
	}
	j, ok := pool.IndexOf(asset)
	if !ok {
		return math.Int{}, types.ErrAssetNotInPool.Wrapf("%s in pool %d", asset, poolID)
	}
	shareDenom := types.ShareDenom(poolID)
	if held := k.ledger.FreeBalance(ctx, provider, shareDenom); held.LT(shares) {
		return math.Int{}, types.ErrInsufficientShares.Wrapf("have %s, redeem %s", held, shares)
	}
	reserves := k.Reserves(ctx, pool)
	gross, err := types.CalculateWithdrawOneAsset(reserves, j, shares, pool.TotalShares, pool.Amplification)
	if err != nil {
		return math.Int{}, err
	}
	amount, _ := amm.DeductFee(gross, pool.Fee)
	if !amount.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("withdrawal pays nothing")
	}
	if !minReceived.IsNil() && amount.LT(minReceived) {
		return math.Int{}, types.ErrBuyLimitNotReached.Wrapf("out %s < min %s", amount, minReceived)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := k.breaker.EnsureRemoveLiquidityLimit(cacheCtx, provider, asset, reserves[j], amount); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Withdraw(cacheCtx, provider, shareDenom, shares); err != nil {
		return math.Int{}, err
	}
	if err := k.ledger.Transfer(cacheCtx, types.PoolAccount(poolID), provider, asset, amount); err != nil {
		return math.Int{}, err
	}
	pool.TotalShares = pool.TotalShares.Sub(shares)
	k.setPool(cacheCtx, pool)

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeLiquidityRemoved,
			sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
			sdk.NewAttribute(types.AttributeKeyWho, provider.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
			sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
		),
	)
	if pool.TotalShares.IsPositive() {
		k.notifyLiquidity(cacheCtx, pool)
	}
	write()
	return amount, nil
}

// notifyLiquidity reports the marginal price of every asset pair.
func (k Keeper) notifyLiquidity(ctx context.Context, pool types.Pool) {
	if k.hooks == nil {
		return
	}
	reserves := k.Reserves(ctx, pool)
	for i := range pool.Assets {
		for j := i + 1; j < len(pool.Assets); j++ {
			price, err := k.marginalPrice(ctx, pool, reserves, i, j)
			if err != nil || !price.IsPositive() {
				continue
			}
			k.hooks.OnLiquidityChange(ctx, source, pool.Assets[i], pool.Assets[j], price)
		}
	}
}

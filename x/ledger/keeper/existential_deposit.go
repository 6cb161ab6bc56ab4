package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
)

// SetSkipEd toggles the transient flag that suspends existential deposit
// rules. The route executor sets it around multi-hop trades through
// insufficient assets and clears it before committing.
func (k Keeper) SetSkipEd(ctx context.Context, skip bool) {
	store := k.getTransientStore(ctx)
	if skip {
		store.Set(types.SkipEdKey, []byte{1})
		return
	}
	store.Delete(types.SkipEdKey)
}

// SkipEd reports whether existential deposit rules are suspended.
func (k Keeper) SkipEd(ctx context.Context) bool {
	return k.getTransientStore(ctx).Has(types.SkipEdKey)
}

// SetEdExempt exempts a module account from existential deposit rules.
func (k Keeper) SetEdExempt(ctx context.Context, addr sdk.AccAddress) {
	k.getStore(ctx).Set(types.EdExemptKey(addr), []byte{1})
}

// IsEdExempt reports whether addr is exempt from existential deposit rules.
func (k Keeper) IsEdExempt(ctx context.Context, addr sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.EdExemptKey(addr))
}

// IsSufficient reports whether denom is a registered sufficient asset.
func (k Keeper) IsSufficient(ctx context.Context, denom string) bool {
	asset, found := k.GetAsset(ctx, denom)
	return found && asset.Sufficient
}

// HasEdCharge reports whether addr paid the insufficient-asset deposit for denom.
func (k Keeper) HasEdCharge(ctx context.Context, addr sdk.AccAddress, denom string) bool {
	return k.getStore(ctx).Has(types.EdChargeKey(addr, denom))
}

func (k Keeper) chargeInsufficientAssetDeposit(ctx context.Context, addr sdk.AccAddress, denom string) error {
	params := k.GetParams(ctx)
	deposit := params.InsufficientAssetDeposit
	if deposit.IsZero() {
		return nil
	}
	if err := k.moveNative(ctx, addr, types.TreasuryAccount(), params.NativeAsset, deposit); err != nil {
		return types.ErrInsufficientNativeForEd.Wrapf("%s holding %s: %s", addr, denom, err)
	}
	k.getStore(ctx).Set(types.EdChargeKey(addr, denom), []byte{1})

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEdCharged,
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, deposit.String()),
		),
	)
	return nil
}

func (k Keeper) refundInsufficientAssetDeposit(ctx context.Context, addr sdk.AccAddress, denom string) error {
	store := k.getStore(ctx)
	if !store.Has(types.EdChargeKey(addr, denom)) {
		return nil
	}
	params := k.GetParams(ctx)
	if err := k.moveNative(ctx, types.TreasuryAccount(), addr, params.NativeAsset, params.InsufficientAssetDeposit); err != nil {
		return err
	}
	store.Delete(types.EdChargeKey(addr, denom))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeEdRefunded,
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, params.InsufficientAssetDeposit.String()),
		),
	)
	return nil
}

// moveNative transfers the native asset without applying deposit rules.
func (k Keeper) moveNative(ctx context.Context, from, to sdk.AccAddress, native string, amount math.Int) error {
	store := k.getStore(ctx)
	free := getInt(store, types.BalanceKey(from, native))
	if free.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s: have %s%s, need %s%s", from, free, native, amount, native)
	}
	setInt(store, types.BalanceKey(from, native), free.Sub(amount))
	setInt(store, types.BalanceKey(to, native), getInt(store, types.BalanceKey(to, native)).Add(amount))
	return nil
}

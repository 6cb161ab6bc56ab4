package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
)

// ReservedBalanceNamed returns the amount reserved under id.
func (k Keeper) ReservedBalanceNamed(ctx context.Context, id string, addr sdk.AccAddress, denom string) math.Int {
	return getInt(k.getStore(ctx), types.NamedReserveKey(id, addr, denom))
}

// ReserveNamed moves amount from the free balance into the reservation id.
func (k Keeper) ReserveNamed(ctx context.Context, id string, addr sdk.AccAddress, denom string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	store := k.getStore(ctx)
	free := getInt(store, types.BalanceKey(addr, denom))
	if free.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("reserve %s%s: free balance %s", amount, denom, free)
	}
	setInt(store, types.BalanceKey(addr, denom), free.Sub(amount))
	setInt(store, types.ReservedKey(addr, denom), getInt(store, types.ReservedKey(addr, denom)).Add(amount))
	setInt(store, types.NamedReserveKey(id, addr, denom), getInt(store, types.NamedReserveKey(id, addr, denom)).Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeReserved,
			sdk.NewAttribute(types.AttributeKeyReserveID, id),
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// UnreserveNamed moves up to amount from the reservation id back to the
// free balance and returns the amount actually moved.
func (k Keeper) UnreserveNamed(ctx context.Context, id string, addr sdk.AccAddress, denom string, amount math.Int) math.Int {
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt()
	}
	store := k.getStore(ctx)
	named := getInt(store, types.NamedReserveKey(id, addr, denom))
	actual := math.MinInt(named, amount)
	if actual.IsZero() {
		return actual
	}
	setInt(store, types.NamedReserveKey(id, addr, denom), named.Sub(actual))
	setInt(store, types.ReservedKey(addr, denom), getInt(store, types.ReservedKey(addr, denom)).Sub(actual))
	setInt(store, types.BalanceKey(addr, denom), getInt(store, types.BalanceKey(addr, denom)).Add(actual))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeUnreserved,
			sdk.NewAttribute(types.AttributeKeyReserveID, id),
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, actual.String()),
		),
	)
	return actual
}

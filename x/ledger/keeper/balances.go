package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
)

// FreeBalance returns the spendable balance of addr in denom.
func (k Keeper) FreeBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int {
	return getInt(k.getStore(ctx), types.BalanceKey(addr, denom))
}

// ReservedBalance returns the sum of all named reservations of addr in denom.
func (k Keeper) ReservedBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int {
	return getInt(k.getStore(ctx), types.ReservedKey(addr, denom))
}

// TotalBalance returns free plus reserved balance.
func (k Keeper) TotalBalance(ctx context.Context, addr sdk.AccAddress, denom string) math.Int {
	return k.FreeBalance(ctx, addr, denom).Add(k.ReservedBalance(ctx, addr, denom))
}

// TotalIssuance returns the total amount of denom in existence.
func (k Keeper) TotalIssuance(ctx context.Context, denom string) math.Int {
	return getInt(k.getStore(ctx), types.IssuanceKey(denom))
}

// Deposit mints amount of denom into addr's free balance.
func (k Keeper) Deposit(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	if err := k.credit(ctx, addr, denom, amount); err != nil {
		return err
	}
	store := k.getStore(ctx)
	setInt(store, types.IssuanceKey(denom), getInt(store, types.IssuanceKey(denom)).Add(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposited,
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Withdraw burns amount of denom from addr's free balance.
func (k Keeper) Withdraw(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}
	store := k.getStore(ctx)
	issuance := getInt(store, types.IssuanceKey(denom))
	if issuance.LT(amount) {
		return types.ErrIssuanceUnderflow.Wrapf("%s: issuance %s, burn %s", denom, issuance, amount)
	}
	if err := k.debit(ctx, addr, denom, amount); err != nil {
		return err
	}
	setInt(store, types.IssuanceKey(denom), issuance.Sub(amount))

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawn,
			sdk.NewAttribute(types.AttributeKeyAccount, addr.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves free balance from one account to another.
func (k Keeper) Transfer(ctx context.Context, from, to sdk.AccAddress, denom string, amount math.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() || from.Equals(to) {
		return nil
	}
	if err := k.debit(ctx, from, denom, amount); err != nil {
		return err
	}
	if err := k.credit(ctx, to, denom, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

func validateAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("amount must be non-negative, got %v", amount)
	}
	return nil
}

// credit adds to the free balance, enforcing the existential deposit rules
// when the account starts holding denom.
func (k Keeper) credit(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error {
	asset, found := k.GetAsset(ctx, denom)
	if !found {
		return types.ErrAssetNotFound.Wrap(denom)
	}
	store := k.getStore(ctx)
	free := getInt(store, types.BalanceKey(addr, denom))
	newFree := free.Add(amount)

	if free.IsZero() && k.ReservedBalance(ctx, addr, denom).IsZero() && !k.IsEdExempt(ctx, addr) && !k.SkipEd(ctx) {
		if newFree.LT(asset.ExistentialDeposit) {
			return types.ErrBelowExistentialDeposit.Wrapf("%s%s < %s", newFree, denom, asset.ExistentialDeposit)
		}
		if !asset.Sufficient {
			if err := k.chargeInsufficientAssetDeposit(ctx, addr, denom); err != nil {
				return err
			}
		}
	}

	setInt(store, types.BalanceKey(addr, denom), newFree)
	return nil
}

// debit removes from the free balance and refunds the insufficient-asset
// deposit once the account holds nothing of denom.
func (k Keeper) debit(ctx context.Context, addr sdk.AccAddress, denom string, amount math.Int) error {
	store := k.getStore(ctx)
	free := getInt(store, types.BalanceKey(addr, denom))
	if free.LT(amount) {
		return types.ErrInsufficientBalance.Wrapf("%s: have %s%s, need %s%s", addr, free, denom, amount, denom)
	}
	newFree := free.Sub(amount)
	setInt(store, types.BalanceKey(addr, denom), newFree)

	if newFree.IsZero() && k.ReservedBalance(ctx, addr, denom).IsZero() && !k.SkipEd(ctx) {
		return k.refundInsufficientAssetDeposit(ctx, addr, denom)
	}
	return nil
}

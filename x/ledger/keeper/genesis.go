package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
)

// InitGenesis initializes the ledger from genesis.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	if err := k.SetParams(ctx, gs.Params); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	for _, asset := range gs.Assets {
		if err := k.RegisterAsset(ctx, asset); err != nil {
			return fmt.Errorf("InitGenesis: asset %s: %w", asset.Denom, err)
		}
	}
	k.SetEdExempt(ctx, types.TreasuryAccount())
	for _, b := range gs.Balances {
		addr := sdk.MustAccAddressFromBech32(b.Address)
		if err := k.Deposit(ctx, addr, b.Denom, b.Amount); err != nil {
			return fmt.Errorf("InitGenesis: balance %s %s: %w", b.Address, b.Denom, err)
		}
	}
	return nil
}

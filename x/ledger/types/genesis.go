package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is a genesis account endowment.
type Balance struct {
	Address string   `json:"address"`
	Denom   string   `json:"denom"`
	Amount  math.Int `json:"amount"`
}

// GenesisState defines the ledger genesis state.
type GenesisState struct {
	Params   Params    `json:"params"`
	Assets   []Asset   `json:"assets"`
	Balances []Balance `json:"balances"`
}

// DefaultGenesis registers only the native asset.
func DefaultGenesis() *GenesisState {
	params := DefaultParams()
	return &GenesisState{
		Params: params,
		Assets: []Asset{
			{Denom: params.NativeAsset, ExistentialDeposit: math.NewInt(1_000_000_000), Sufficient: true},
		},
	}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(gs.Assets))
	for _, a := range gs.Assets {
		if err := a.Validate(); err != nil {
			return err
		}
		if seen[a.Denom] {
			return fmt.Errorf("duplicate asset %s", a.Denom)
		}
		seen[a.Denom] = true
	}
	if !seen[gs.Params.NativeAsset] {
		return fmt.Errorf("native asset %s not registered", gs.Params.NativeAsset)
	}
	for _, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return fmt.Errorf("invalid balance address %s: %w", b.Address, err)
		}
		if !seen[b.Denom] {
			return fmt.Errorf("balance for unregistered asset %s", b.Denom)
		}
		if b.Amount.IsNil() || !b.Amount.IsPositive() {
			return fmt.Errorf("balance of %s for %s must be positive", b.Denom, b.Address)
		}
	}
	return nil
}

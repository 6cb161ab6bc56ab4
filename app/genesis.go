package app

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	circuitbreakertypes "github.com/paw-chain/hydrax/x/circuitbreaker/types"
	dcatypes "github.com/paw-chain/hydrax/x/dca/types"
	lbptypes "github.com/paw-chain/hydrax/x/lbp/types"
	ledgertypes "github.com/paw-chain/hydrax/x/ledger/types"
	omnipooltypes "github.com/paw-chain/hydrax/x/omnipool/types"
	oracletypes "github.com/paw-chain/hydrax/x/oracle/types"
	stableswaptypes "github.com/paw-chain/hydrax/x/stableswap/types"
	xyktypes "github.com/paw-chain/hydrax/x/xyk/types"
)

// GenesisState is the genesis state of the chain, keyed by module name.
// The ledger entry holds a full ledger genesis; every other module holds
// its params.
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default genesis: the native asset
// only, no balances and default params everywhere.
func NewDefaultGenesisState() GenesisState {
	genesis := make(GenesisState)
	genesis[ledgertypes.ModuleName] = mustMarshalJSON(ledgertypes.DefaultGenesis())
	genesis[circuitbreakertypes.ModuleName] = mustMarshalJSON(circuitbreakertypes.DefaultParams())
	genesis[oracletypes.ModuleName] = mustMarshalJSON(oracletypes.DefaultParams())
	genesis[omnipooltypes.ModuleName] = mustMarshalJSON(omnipooltypes.DefaultParams())
	genesis[stableswaptypes.ModuleName] = mustMarshalJSON(stableswaptypes.DefaultParams())
	genesis[xyktypes.ModuleName] = mustMarshalJSON(xyktypes.DefaultParams())
	genesis[lbptypes.ModuleName] = mustMarshalJSON(lbptypes.DefaultParams())
	genesis[dcatypes.ModuleName] = mustMarshalJSON(dcatypes.DefaultParams())
	return genesis
}

// GenesisConfig holds the parts of genesis a scenario usually changes.
type GenesisConfig struct {
	Assets   []ledgertypes.Asset   `json:"assets"`
	Balances []ledgertypes.Balance `json:"balances"`
	DCA      *dcatypes.Params      `json:"dca,omitempty"`
}

// NewGenesisStateFromConfig extends the default genesis with extra assets,
// endowments and DCA params.
func NewGenesisStateFromConfig(config GenesisConfig) (GenesisState, error) {
	SetConfig()
	genesis := NewDefaultGenesisState()

	var ledgerGenesis ledgertypes.GenesisState
	mustUnmarshalJSON(genesis[ledgertypes.ModuleName], &ledgerGenesis)
	for _, asset := range config.Assets {
		if asset.Denom == ledgerGenesis.Params.NativeAsset {
			ledgerGenesis.Assets[0] = asset
			continue
		}
		ledgerGenesis.Assets = append(ledgerGenesis.Assets, asset)
	}
	ledgerGenesis.Balances = append(ledgerGenesis.Balances, config.Balances...)
	if err := ledgerGenesis.Validate(); err != nil {
		return nil, ErrInvalidGenesis.Wrapf("ledger: %s", err)
	}
	genesis[ledgertypes.ModuleName] = mustMarshalJSON(ledgerGenesis)

	if config.DCA != nil {
		if err := config.DCA.Validate(); err != nil {
			return nil, ErrInvalidGenesis.Wrapf("dca: %s", err)
		}
		genesis[dcatypes.ModuleName] = mustMarshalJSON(config.DCA)
	}
	return genesis, nil
}

func initParams[P any](ctx sdk.Context, genesis GenesisState, module string, set func(sdk.Context, P) error) error {
	raw, ok := genesis[module]
	if !ok {
		return nil
	}
	var params P
	if err := json.Unmarshal(raw, &params); err != nil {
		return ErrInvalidGenesis.Wrapf("%s params: %s", module, err)
	}
	if err := set(ctx, params); err != nil {
		return fmt.Errorf("%s: %w", module, err)
	}
	return nil
}

func (a *App) initGenesis(ctx sdk.Context, genesis GenesisState) error {
	raw, ok := genesis[ledgertypes.ModuleName]
	if !ok {
		return ErrInvalidGenesis.Wrap("missing ledger genesis")
	}
	var ledgerGenesis ledgertypes.GenesisState
	if err := json.Unmarshal(raw, &ledgerGenesis); err != nil {
		return ErrInvalidGenesis.Wrapf("ledger: %s", err)
	}
	if err := a.LedgerKeeper.InitGenesis(ctx, ledgerGenesis); err != nil {
		return err
	}

	if err := initParams(ctx, genesis, circuitbreakertypes.ModuleName, func(ctx sdk.Context, p circuitbreakertypes.Params) error {
		return a.CircuitBreakerKeeper.SetParams(ctx, p)
	}); err != nil {
		return err
	}
	if err := initParams(ctx, genesis, oracletypes.ModuleName, func(ctx sdk.Context, p oracletypes.Params) error {
		return a.OracleKeeper.SetParams(ctx, p)
	}); err != nil {
		return err
	}
	if err := initParams(ctx, genesis, omnipooltypes.ModuleName, func(ctx sdk.Context, p omnipooltypes.Params) error {
		return a.OmnipoolKeeper.SetParams(ctx, p)
	}); err != nil {
		return err
	}
	if err := initParams(ctx, genesis, stableswaptypes.ModuleName, func(ctx sdk.Context, p stableswaptypes.Params) error {
		return a.StableswapKeeper.SetParams(ctx, p)
	}); err != nil {
		return err
	}
	if err := initParams(ctx, genesis, xyktypes.ModuleName, func(ctx sdk.Context, p xyktypes.Params) error {
		return a.XYKKeeper.SetParams(ctx, p)
	}); err != nil {
		return err
	}
	if err := initParams(ctx, genesis, lbptypes.ModuleName, func(ctx sdk.Context, p lbptypes.Params) error {
		return a.LBPKeeper.SetParams(ctx, p)
	}); err != nil {
		return err
	}
	return initParams(ctx, genesis, dcatypes.ModuleName, func(ctx sdk.Context, p dcatypes.Params) error {
		return a.DCAKeeper.SetParams(ctx, p)
	})
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}

func mustUnmarshalJSON(bz []byte, v interface{}) {
	if err := json.Unmarshal(bz, v); err != nil {
		panic(err)
	}
}

package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/oracle/types"
)

// Keeper maintains EMA prices per (source, pair, period), fed by the AMMs.
type Keeper struct {
	storeKey  storetypes.StoreKey
	tStoreKey storetypes.StoreKey
	authority string
}

// NewKeeper creates a new oracle Keeper instance.
func NewKeeper(storeKey, tStoreKey storetypes.StoreKey, authority string) Keeper {
	return Keeper{
		storeKey:  storeKey,
		tStoreKey: tStoreKey,
		authority: authority,
	}
}

// Authority returns the module authority address.
func (k Keeper) Authority() string {
	return k.authority
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

func (k Keeper) getTransientStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).TransientStore(k.tStoreKey)
}

// GetParams returns the current parameters from the store.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	params, found := getJSON[types.Params](k.getStore(ctx), types.ParamsKey)
	if !found {
		return types.DefaultParams()
	}
	return params
}

// SetParams sets the parameters in the store.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	setJSON(k.getStore(ctx), types.ParamsKey, params)
	return nil
}

func getJSON[T any](store storetypes.KVStore, key []byte) (T, bool) {
	var v T
	bz := store.Get(key)
	if bz == nil {
		return v, false
	}
	if err := json.Unmarshal(bz, &v); err != nil {
		panic(fmt.Errorf("unmarshal %X: %w", key, err))
	}
	return v, true
}

func setJSON(store storetypes.KVStore, key []byte, v any) {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("marshal %X: %w", key, err))
	}
	store.Set(key, bz)
}

package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/ledger/types"
)

// Keeper is the multi-asset currency ledger.
type Keeper struct {
	storeKey  storetypes.StoreKey
	tStoreKey storetypes.StoreKey
	authority string
}

// NewKeeper creates a new ledger Keeper instance.
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
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		panic(fmt.Errorf("GetParams: unmarshal: %w", err))
	}
	return params
}

// SetParams sets the parameters in the store.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// NativeAsset returns the native asset denom.
func (k Keeper) NativeAsset(ctx context.Context) string {
	return k.GetParams(ctx).NativeAsset
}

func getInt(store storetypes.KVStore, key []byte) math.Int {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("corrupted amount at %X: %w", key, err))
	}
	return v
}

func setInt(store storetypes.KVStore, key []byte, v math.Int) {
	if v.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := v.Marshal()
	if err != nil {
		panic(fmt.Errorf("marshal amount: %w", err))
	}
	store.Set(key, bz)
}

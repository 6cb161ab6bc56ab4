package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/lbp/types"
	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

const source = string(routertypes.PoolKindLBP)

// Keeper manages liquidity bootstrapping pools, one per asset pair.
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	ledger    types.LedgerKeeper
	breaker   types.CircuitBreakerKeeper
	hooks     routertypes.TradeHooks
}

// NewKeeper creates a new lbp Keeper instance. hooks may be nil.
func NewKeeper(
	storeKey storetypes.StoreKey,
	authority string,
	ledger types.LedgerKeeper,
	breaker types.CircuitBreakerKeeper,
	hooks routertypes.TradeHooks,
) Keeper {
	return Keeper{
		storeKey:  storeKey,
		authority: authority,
		ledger:    ledger,
		breaker:   breaker,
		hooks:     hooks,
	}
}

// Authority returns the module authority address.
func (k Keeper) Authority() string {
	return k.authority
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
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

// GetPool returns the pool trading a and b in either order.
func (k Keeper) GetPool(ctx context.Context, a, b string) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(a, b))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("%s/%s", a, b)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		panic(fmt.Errorf("unmarshal lbp pool %s/%s: %w", a, b, err))
	}
	return pool, nil
}

func (k Keeper) setPool(ctx context.Context, pool types.Pool) {
	bz, err := json.Marshal(pool)
	if err != nil {
		panic(fmt.Errorf("marshal lbp pool: %w", err))
	}
	k.getStore(ctx).Set(types.PoolKey(pool.AssetA, pool.AssetB), bz)
}

func (k Keeper) deletePool(ctx context.Context, pool types.Pool) {
	k.getStore(ctx).Delete(types.PoolKey(pool.AssetA, pool.AssetB))
}

// GetAllPools returns every pool in store order.
func (k Keeper) GetAllPools(ctx context.Context) []types.Pool {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iter.Close()

	var pools []types.Pool
	for ; iter.Valid(); iter.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iter.Value(), &pool); err != nil {
			panic(fmt.Errorf("unmarshal lbp pool: %w", err))
		}
		pools = append(pools, pool)
	}
	return pools
}

// Reserves returns the pool balances of a and b.
func (k Keeper) Reserves(ctx context.Context, a, b string) (math.Int, math.Int) {
	account := types.PoolAccount(a, b)
	return k.ledger.FreeBalance(ctx, account, a), k.ledger.FreeBalance(ctx, account, b)
}

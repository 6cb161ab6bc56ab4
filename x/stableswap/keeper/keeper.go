package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	routertypes "github.com/paw-chain/hydrax/x/router/types"
	"github.com/paw-chain/hydrax/x/stableswap/types"
)

const source = string(routertypes.PoolKindStableswap)

// Keeper manages stableswap pools.
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	ledger    types.LedgerKeeper
	breaker   types.CircuitBreakerKeeper
	hooks     routertypes.TradeHooks
}

// NewKeeper creates a new stableswap Keeper instance. hooks may be nil.
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

// nextPoolID returns the next pool id and advances the counter. Ids start at 1.
func (k Keeper) nextPoolID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	id := uint64(1)
	if bz := store.Get(types.NextPoolIDKey); bz != nil {
		id = sdk.BigEndianToUint64(bz)
	}
	store.Set(types.NextPoolIDKey, sdk.Uint64ToBigEndian(id+1))
	return id
}

// GetPool returns pool id.
func (k Keeper) GetPool(ctx context.Context, id uint64) (types.Pool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(id))
	if bz == nil {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %d", id)
	}
	var pool types.Pool
	if err := json.Unmarshal(bz, &pool); err != nil {
		panic(fmt.Errorf("unmarshal stableswap pool %d: %w", id, err))
	}
	return pool, nil
}

func (k Keeper) setPool(ctx context.Context, pool types.Pool) {
	bz, err := json.Marshal(pool)
	if err != nil {
		panic(fmt.Errorf("marshal stableswap pool: %w", err))
	}
	k.getStore(ctx).Set(types.PoolKey(pool.ID), bz)
}

// GetAllPools returns every pool ordered by id.
func (k Keeper) GetAllPools(ctx context.Context) []types.Pool {
	iter := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iter.Close()

	var pools []types.Pool
	for ; iter.Valid(); iter.Next() {
		var pool types.Pool
		if err := json.Unmarshal(iter.Value(), &pool); err != nil {
			panic(fmt.Errorf("unmarshal stableswap pool: %w", err))
		}
		pools = append(pools, pool)
	}
	return pools
}

// Reserves returns the pool balances in asset order.
func (k Keeper) Reserves(ctx context.Context, pool types.Pool) []math.Int {
	account := types.PoolAccount(pool.ID)
	reserves := make([]math.Int, len(pool.Assets))
	for i, asset := range pool.Assets {
		reserves[i] = k.ledger.FreeBalance(ctx, account, asset)
	}
	return reserves
}

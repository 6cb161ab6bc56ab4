package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/dca/types"
)

// Keeper stores schedules, plans them into future blocks and executes the
// due ones through the router at the start of every block.
type Keeper struct {
	storeKey  storetypes.StoreKey
	authority string
	ledger    types.LedgerKeeper
	router    types.RouterKeeper
	oracle    types.OracleKeeper
	metrics   *DCAMetrics
}

// NewKeeper creates a new dca Keeper.
func NewKeeper(
	storeKey storetypes.StoreKey,
	authority string,
	ledger types.LedgerKeeper,
	router types.RouterKeeper,
	oracle types.OracleKeeper,
) Keeper {
	return Keeper{
		storeKey:  storeKey,
		authority: authority,
		ledger:    ledger,
		router:    router,
		oracle:    oracle,
		metrics:   NewDCAMetrics(),
	}
}

// Authority returns the module authority address.
func (k Keeper) Authority() string {
	return k.authority
}

func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(k.storeKey)
}

func (k Keeper) logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetParams returns the current dca parameters.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.DefaultParams()
	}
	return params
}

// SetParams validates and stores the dca parameters.
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

func getUint64(store storetypes.KVStore, key []byte) (uint64, bool) {
	bz := store.Get(key)
	if len(bz) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

func setUint64(store storetypes.KVStore, key []byte, v uint64) {
	store.Set(key, sdk.Uint64ToBigEndian(v))
}

func (k Keeper) nextScheduleID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	id, found := getUint64(store, types.NextScheduleIDKey)
	if !found {
		id = 1
	}
	setUint64(store, types.NextScheduleIDKey, id+1)
	return id
}

// GetSchedule returns schedule id.
func (k Keeper) GetSchedule(ctx context.Context, id uint64) (types.Schedule, error) {
	bz := k.getStore(ctx).Get(types.ScheduleKey(id))
	if bz == nil {
		return types.Schedule{}, types.ErrScheduleNotFound.Wrapf("id %d", id)
	}
	var schedule types.Schedule
	if err := json.Unmarshal(bz, &schedule); err != nil {
		return types.Schedule{}, fmt.Errorf("GetSchedule: unmarshal %d: %w", id, err)
	}
	return schedule, nil
}

func (k Keeper) setSchedule(ctx context.Context, schedule types.Schedule) {
	bz, err := json.Marshal(schedule)
	if err != nil {
		panic(fmt.Errorf("marshal schedule %d: %w", schedule.ID, err))
	}
	k.getStore(ctx).Set(types.ScheduleKey(schedule.ID), bz)
}

// GetAllSchedules returns every stored schedule in id order.
func (k Keeper) GetAllSchedules(ctx context.Context) []types.Schedule {
	iter := prefix.NewStore(k.getStore(ctx), types.ScheduleKeyPrefix).Iterator(nil, nil)
	defer iter.Close()

	var schedules []types.Schedule
	for ; iter.Valid(); iter.Next() {
		var schedule types.Schedule
		if err := json.Unmarshal(iter.Value(), &schedule); err != nil {
			continue
		}
		schedules = append(schedules, schedule)
	}
	return schedules
}

// GetScheduleIdsPerBlock returns the ids planned at block in insertion order.
func (k Keeper) GetScheduleIdsPerBlock(ctx context.Context, block uint64) []uint64 {
	bz := k.getStore(ctx).Get(types.ScheduleIdsPerBlockKey(block))
	if bz == nil {
		return nil
	}
	var ids []uint64
	if err := json.Unmarshal(bz, &ids); err != nil {
		panic(fmt.Errorf("unmarshal ids of block %d: %w", block, err))
	}
	return ids
}

func (k Keeper) setScheduleIdsPerBlock(ctx context.Context, block uint64, ids []uint64) {
	store := k.getStore(ctx)
	if len(ids) == 0 {
		store.Delete(types.ScheduleIdsPerBlockKey(block))
		return
	}
	bz, err := json.Marshal(ids)
	if err != nil {
		panic(fmt.Errorf("marshal ids of block %d: %w", block, err))
	}
	store.Set(types.ScheduleIdsPerBlockKey(block), bz)
}

// GetScheduleExecutionBlock returns the block schedule id is planned at.
func (k Keeper) GetScheduleExecutionBlock(ctx context.Context, id uint64) (uint64, bool) {
	return getUint64(k.getStore(ctx), types.ExecutionBlockKey(id))
}

// GetRetries returns the number of consecutive failed executions of id.
func (k Keeper) GetRetries(ctx context.Context, id uint64) uint32 {
	v, _ := getUint64(k.getStore(ctx), types.RetriesKey(id))
	return uint32(v)
}

func (k Keeper) setRetries(ctx context.Context, id uint64, retries uint32) {
	if retries == 0 {
		k.getStore(ctx).Delete(types.RetriesKey(id))
		return
	}
	setUint64(k.getStore(ctx), types.RetriesKey(id), uint64(retries))
}

// IsSuspended reports whether schedule id is suspended.
func (k Keeper) IsSuspended(ctx context.Context, id uint64) bool {
	return k.getStore(ctx).Has(types.SuspendedKey(id))
}

// GetStatus returns the status of a stored schedule.
func (k Keeper) GetStatus(ctx context.Context, id uint64) (types.ScheduleStatus, error) {
	if _, err := k.GetSchedule(ctx, id); err != nil {
		return "", err
	}
	if k.IsSuspended(ctx, id) {
		return types.StatusSuspended, nil
	}
	return types.StatusActive, nil
}

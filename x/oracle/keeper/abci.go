package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/hydrax/x/oracle/types"
	sharedabci "github.com/paw-chain/hydrax/x/shared/abci"
)

type accumulated struct {
	key     []byte
	source  string
	assetA  string
	assetB  string
	current types.Entry
}

// EndBlocker folds the block's accumulated trades into every tracked EMA
// period and clears the accumulator.
func (k Keeper) EndBlocker(ctx context.Context) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	handler := sharedabci.NewBlockerErrorHandler(sdkCtx, types.ModuleName)
	params := k.GetParams(ctx)
	height := sdkCtx.BlockHeight()

	tstore := k.getTransientStore(ctx)
	var pending []accumulated
	iter := storetypes.KVStorePrefixIterator(tstore, types.AccumulatorKeyPrefix)
	for ; iter.Valid(); iter.Next() {
		key := append([]byte{}, iter.Key()...)
		source, assetA, assetB, ok := types.ParseAccumulatorKey(key)
		if !ok {
			handler.HandleError("parse_accumulator", sharedabci.SeverityCritical, types.ErrInvalidSource.Wrapf("malformed key %X", key))
			continue
		}
		acc, _ := getJSON[types.Entry](tstore, key)
		acc.UpdatedAt = height
		pending = append(pending, accumulated{key: key, source: source, assetA: assetA, assetB: assetB, current: acc})
	}
	iter.Close()

	for _, p := range pending {
		for _, period := range params.Periods {
			entry := k.updateEntry(ctx, p.source, p.assetA, p.assetB, period, p.current)
			if period == types.LastBlock {
				sdkCtx.EventManager().EmitEvent(
					sdk.NewEvent(
						types.EventTypeEntryUpdated,
						sdk.NewAttribute(types.AttributeKeySource, p.source),
						sdk.NewAttribute(types.AttributeKeyAssetA, p.assetA),
						sdk.NewAttribute(types.AttributeKeyAssetB, p.assetB),
						sdk.NewAttribute(types.AttributeKeyPeriod, period.String()),
						sdk.NewAttribute(types.AttributeKeyPrice, entry.Price.String()),
					),
				)
			}
		}
		tstore.Delete(p.key)
	}

	if len(pending) > 0 {
		sdkCtx.Logger().Debug("oracle entries updated", "height", height, "pairs", len(pending))
	}
	return nil
}

func (k Keeper) updateEntry(ctx context.Context, source, assetA, assetB string, period types.Period, current types.Entry) types.Entry {
	store := k.getStore(ctx)
	key := types.EntryKey(source, assetA, assetB, period)
	prev, found := getJSON[types.Entry](store, key)

	next := current
	if found && period != types.LastBlock {
		var elapsed uint64
		if current.UpdatedAt > prev.UpdatedAt {
			elapsed = uint64(current.UpdatedAt - prev.UpdatedAt)
		}
		next = prev.Update(current, period, elapsed)
	}
	setJSON(store, key, next)
	return next
}

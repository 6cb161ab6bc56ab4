package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/oracle/types"
)

// GetEntry returns the entry of (source, assetA, assetB, period) oriented
// as requested.
func (k Keeper) GetEntry(ctx context.Context, source, assetA, assetB string, period types.Period) (types.Entry, error) {
	if err := period.Validate(); err != nil {
		return types.Entry{}, err
	}
	flipped := assetA > assetB
	a, b := assetA, assetB
	if flipped {
		a, b = b, a
	}
	entry, found := getJSON[types.Entry](k.getStore(ctx), types.EntryKey(source, a, b, period))
	if !found || !entry.Price.IsPositive() {
		return types.Entry{}, types.ErrOracleNotAvailable.Wrapf("%s %s/%s %s", source, assetA, assetB, period)
	}
	if flipped {
		return entry.Inverted()
	}
	return entry, nil
}

// Price returns the amount of assetB one unit of assetA is worth according
// to source over period. Pairs without an entry are priced through the
// source's quote asset when one is configured.
func (k Keeper) Price(ctx context.Context, source, assetA, assetB string, period types.Period) (math.LegacyDec, error) {
	if assetA == assetB {
		return math.LegacyOneDec(), nil
	}
	entry, err := k.GetEntry(ctx, source, assetA, assetB, period)
	if err == nil {
		return entry.Price, nil
	}

	quote, ok := k.GetParams(ctx).QuoteAssetOf(source)
	if !ok || quote == assetA || quote == assetB {
		return math.LegacyDec{}, err
	}
	first, errA := k.GetEntry(ctx, source, assetA, quote, period)
	if errA != nil {
		return math.LegacyDec{}, errA
	}
	second, errB := k.GetEntry(ctx, source, quote, assetB, period)
	if errB != nil {
		return math.LegacyDec{}, errB
	}
	return first.Price.Mul(second.Price), nil
}

package types

import (
	"cosmossdk.io/math"
)

// Entry is an oracle value for an ordered pair (A, B). Price is the amount
// of B one unit of A is worth. Volumes are the traded amounts of each side.
type Entry struct {
	Price     math.LegacyDec `json:"price"`
	VolumeA   math.Int       `json:"volume_a"`
	VolumeB   math.Int       `json:"volume_b"`
	UpdatedAt int64          `json:"updated_at"`
}

// NewEntry creates an entry with zero volume.
func NewEntry(price math.LegacyDec, height int64) Entry {
	return Entry{
		Price:     price,
		VolumeA:   math.ZeroInt(),
		VolumeB:   math.ZeroInt(),
		UpdatedAt: height,
	}
}

// Update folds a newer value into the EMA. blocks is the number of blocks
// since the entry was last updated; every skipped block is treated as
// repeating the previous value, so the effective factor is 1-(1-alpha)^blocks.
func (e Entry) Update(next Entry, period Period, blocks uint64) Entry {
	if blocks == 0 {
		blocks = 1
	}
	alpha := period.Alpha()
	if !alpha.Equal(math.LegacyOneDec()) && blocks < 20*period.Blocks() {
		alpha = math.LegacyOneDec().Sub(math.LegacyOneDec().Sub(alpha).Power(blocks))
	} else {
		alpha = math.LegacyOneDec()
	}
	return Entry{
		Price:     emaDec(e.Price, next.Price, alpha),
		VolumeA:   emaInt(e.VolumeA, next.VolumeA, alpha),
		VolumeB:   emaInt(e.VolumeB, next.VolumeB, alpha),
		UpdatedAt: next.UpdatedAt,
	}
}

// Inverted returns the entry seen from the reversed pair.
func (e Entry) Inverted() (Entry, error) {
	if !e.Price.IsPositive() {
		return Entry{}, ErrInvalidPrice.Wrapf("cannot invert price %s", e.Price)
	}
	return Entry{
		Price:     math.LegacyOneDec().Quo(e.Price),
		VolumeA:   e.VolumeB,
		VolumeB:   e.VolumeA,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func emaDec(prev, next, alpha math.LegacyDec) math.LegacyDec {
	return prev.Add(next.Sub(prev).Mul(alpha))
}

func emaInt(prev, next math.Int, alpha math.LegacyDec) math.Int {
	return emaDec(math.LegacyNewDecFromInt(prev), math.LegacyNewDecFromInt(next), alpha).TruncateInt()
}

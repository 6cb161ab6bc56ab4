package types

import (
	"strings"

	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

const (
	MinAssets        = 2
	MaxAssets        = 5
	MinAmplification = 1
)

// Pool is a stableswap pool of 2 to 5 assets. Reserves are the pool
// account balances, listed in Assets order.
type Pool struct {
	ID            uint64         `json:"id"`
	Assets        []string       `json:"assets"`
	Amplification uint64         `json:"amplification"`
	Fee           math.LegacyDec `json:"fee"`
	TotalShares   math.Int       `json:"total_shares"`
}

// IndexOf returns the position of asset in the pool.
func (p Pool) IndexOf(asset string) (int, bool) {
	for i, a := range p.Assets {
		if a == asset {
			return i, true
		}
	}
	return -1, false
}

// ValidatePool checks the asset list, amplification and fee of a new pool.
func ValidatePool(assets []string, amplification, maxAmplification uint64, fee math.LegacyDec) error {
	if len(assets) < MinAssets || len(assets) > MaxAssets {
		return ErrInvalidAssets.Wrapf("pool needs %d to %d assets, got %d", MinAssets, MaxAssets, len(assets))
	}
	seen := make(map[string]bool, len(assets))
	for _, a := range assets {
		if a == "" || seen[a] {
			return ErrInvalidAssets.Wrapf("duplicate or empty asset in %s", strings.Join(assets, ","))
		}
		seen[a] = true
	}
	if amplification < MinAmplification || amplification > maxAmplification {
		return ErrInvalidAmplification.Wrapf("%d not in [%d, %d]", amplification, MinAmplification, maxAmplification)
	}
	return amm.ValidateFee(fee)
}

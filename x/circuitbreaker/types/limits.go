package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// Fraction is a limit expressed as Numerator/Denominator of a reserve.
type Fraction struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// NewFraction creates a Fraction.
func NewFraction(numerator, denominator uint64) Fraction {
	return Fraction{Numerator: numerator, Denominator: denominator}
}

// Validate requires 0 < Numerator <= Denominator.
func (f Fraction) Validate() error {
	if f.Denominator == 0 || f.Numerator == 0 || f.Numerator > f.Denominator {
		return ErrInvalidLimitValue.Wrapf("%d/%d", f.Numerator, f.Denominator)
	}
	return nil
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

var maxInt = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), math.MaxBitLen), big.NewInt(1))

// CalculateLimit returns floor(reserve * fraction), saturating at the
// largest representable amount.
func CalculateLimit(reserve math.Int, f Fraction) math.Int {
	if reserve.IsNil() || !reserve.IsPositive() || f.Denominator == 0 {
		return math.ZeroInt()
	}
	limit := new(big.Int).Mul(reserve.BigInt(), new(big.Int).SetUint64(f.Numerator))
	limit.Quo(limit, new(big.Int).SetUint64(f.Denominator))
	if limit.Cmp(maxInt) > 0 {
		return math.NewIntFromBigInt(maxInt)
	}
	return math.NewIntFromBigInt(limit)
}

// Package amm holds the rounding-aware integer helpers the pool modules share.
package amm

import (
	"math/big"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
)

const codespace = "amm"

var (
	ErrOverflow       = errors.Register(codespace, 2, "arithmetic overflow")
	ErrDivisionByZero = errors.Register(codespace, 3, "division by zero")
	ErrInvalidFee     = errors.Register(codespace, 4, "invalid fee")
)

func toInt(v *big.Int) (math.Int, error) {
	if v.BitLen() > math.MaxBitLen {
		return math.Int{}, ErrOverflow.Wrapf("%d bits", v.BitLen())
	}
	return math.NewIntFromBigInt(v), nil
}

// MulDiv returns floor(a*b/c). The product is computed without bound.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrDivisionByZero.Wrapf("%s*%s/0", a, b)
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return toInt(num.Quo(num, c.BigInt()))
}

// MulDivCeil returns ceil(a*b/c) for non-negative operands.
func MulDivCeil(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, ErrDivisionByZero.Wrapf("%s*%s/0", a, b)
	}
	num := new(big.Int).Mul(a.BigInt(), b.BigInt())
	q, r := new(big.Int).QuoRem(num, c.BigInt(), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return toInt(q)
}

// FeeAmount returns ceil(amount*fee).
func FeeAmount(amount math.Int, fee math.LegacyDec) math.Int {
	if fee.IsNil() || fee.IsZero() {
		return math.ZeroInt()
	}
	return math.LegacyNewDecFromInt(amount).Mul(fee).Ceil().TruncateInt()
}

// DeductFee returns amount minus the fee on it, and the fee.
func DeductFee(amount math.Int, fee math.LegacyDec) (net, feeAmount math.Int) {
	feeAmount = FeeAmount(amount, fee)
	if feeAmount.GT(amount) {
		feeAmount = amount
	}
	return amount.Sub(feeAmount), feeAmount
}

// GrossUp returns the smallest gross amount whose net after fee covers amount.
func GrossUp(amount math.Int, fee math.LegacyDec) (math.Int, error) {
	if fee.IsNil() || fee.IsZero() {
		return amount, nil
	}
	if fee.IsNegative() || fee.GTE(math.LegacyOneDec()) {
		return math.Int{}, ErrInvalidFee.Wrapf("fee %s", fee)
	}
	gross := math.LegacyNewDecFromInt(amount).Quo(math.LegacyOneDec().Sub(fee)).Ceil().TruncateInt()
	for {
		net, _ := DeductFee(gross, fee)
		if net.GTE(amount) {
			return gross, nil
		}
		gross = gross.AddRaw(1)
	}
}

// ValidateFee checks that fee lies in [0, 1).
func ValidateFee(fee math.LegacyDec) error {
	if fee.IsNil() || fee.IsNegative() || fee.GTE(math.LegacyOneDec()) {
		return ErrInvalidFee.Wrapf("fee must be in [0, 1), got %v", fee)
	}
	return nil
}

// Ratio returns num/den as a decimal, or an error for a zero denominator.
func Ratio(num, den math.Int) (math.LegacyDec, error) {
	if den.IsZero() {
		return math.LegacyDec{}, ErrDivisionByZero.Wrapf("%s/0", num)
	}
	return math.LegacyNewDecFromInt(num).Quo(math.LegacyNewDecFromInt(den)), nil
}

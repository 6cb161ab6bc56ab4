package types

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/ALTree/bigfloat"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

const precision = 256

func newFloat(i math.Int) *big.Float {
	return new(big.Float).SetPrec(precision).SetInt(i.BigInt())
}

func weightRatio(num, den uint32) *big.Float {
	n := new(big.Float).SetPrec(precision).SetUint64(uint64(num))
	return n.Quo(n, new(big.Float).SetPrec(precision).SetUint64(uint64(den)))
}

func floatToInt(f *big.Float, roundUp bool) (math.Int, error) {
	if f.Sign() <= 0 {
		return math.ZeroInt(), nil
	}
	i, acc := f.Int(nil)
	if roundUp && acc == big.Below {
		i.Add(i, big.NewInt(1))
	}
	if i.BitLen() > math.MaxBitLen {
		return math.Int{}, amm.ErrOverflow.Wrapf("%d bits", i.BitLen())
	}
	return math.NewIntFromBigInt(i), nil
}

// CalculateOutGivenIn returns
//
//	out = Rout * (1 - (Rin / (Rin + in))^(wIn/wOut))
//
// rounded down.
func CalculateOutGivenIn(reserveIn, reserveOut math.Int, weightIn, weightOut uint32, amountIn math.Int) (math.Int, error) {
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, ErrInsufficientLiquidity.Wrap("empty reserve")
	}
	if weightIn == 0 || weightOut == 0 {
		return math.Int{}, ErrInvalidWeight.Wrap("zero weight")
	}
	rin := newFloat(reserveIn)
	base := new(big.Float).SetPrec(precision).Quo(rin, new(big.Float).SetPrec(precision).Add(rin, newFloat(amountIn)))
	factor := bigfloat.Pow(base, weightRatio(weightIn, weightOut))
	one := new(big.Float).SetPrec(precision).SetInt64(1)
	out := new(big.Float).SetPrec(precision).Mul(newFloat(reserveOut), one.Sub(one, factor))
	amount, err := floatToInt(out, false)
	if err != nil {
		return math.Int{}, err
	}
	if amount.GTE(reserveOut) {
		return math.Int{}, ErrInsufficientLiquidity.Wrapf("out %s drains reserve %s", amount, reserveOut)
	}
	return amount, nil
}

// CalculateInGivenOut returns
//
//	in = Rin * ((Rout / (Rout - out))^(wOut/wIn) - 1)
//
// rounded up.
func CalculateInGivenOut(reserveIn, reserveOut math.Int, weightIn, weightOut uint32, amountOut math.Int) (math.Int, error) {
	if !reserveIn.IsPositive() || amountOut.GTE(reserveOut) {
		return math.Int{}, ErrInsufficientLiquidity.Wrapf("reserve %s cannot cover %s", reserveOut, amountOut)
	}
	if weightIn == 0 || weightOut == 0 {
		return math.Int{}, ErrInvalidWeight.Wrap("zero weight")
	}
	rout := newFloat(reserveOut)
	base := new(big.Float).SetPrec(precision).Quo(rout, new(big.Float).SetPrec(precision).Sub(rout, newFloat(amountOut)))
	factor := bigfloat.Pow(base, weightRatio(weightOut, weightIn))
	factor.Sub(factor, new(big.Float).SetPrec(precision).SetInt64(1))
	in := new(big.Float).SetPrec(precision).Mul(newFloat(reserveIn), factor)
	return floatToInt(in, true)
}

// SpotPrice returns the units of out one unit of in is worth:
// (Rout/wOut) / (Rin/wIn).
func SpotPrice(reserveIn, reserveOut math.Int, weightIn, weightOut uint32) (math.LegacyDec, error) {
	if !reserveIn.IsPositive() || weightOut == 0 {
		return math.LegacyDec{}, ErrInsufficientLiquidity.Wrap("empty reserve")
	}
	num := math.LegacyNewDecFromInt(reserveOut).MulInt64(int64(weightIn))
	den := math.LegacyNewDecFromInt(reserveIn).MulInt64(int64(weightOut))
	return num.Quo(den), nil
}

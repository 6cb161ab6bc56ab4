package types

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

const maxIterations = 255

var bigOne = big.NewInt(1)

func toInt(v *big.Int) (math.Int, error) {
	if v.Sign() < 0 {
		return math.ZeroInt(), nil
	}
	if v.BitLen() > math.MaxBitLen {
		return math.Int{}, amm.ErrOverflow.Wrapf("%d bits", v.BitLen())
	}
	return math.NewIntFromBigInt(v), nil
}

// ann returns A * n^n.
func ann(amplification uint64, n int) *big.Int {
	nn := new(big.Int).Exp(big.NewInt(int64(n)), big.NewInt(int64(n)), nil)
	return nn.Mul(nn, new(big.Int).SetUint64(amplification))
}

func converged(a, b *big.Int) bool {
	diff := new(big.Int).Sub(a, b)
	return diff.CmpAbs(bigOne) <= 0
}

// CalculateD solves the stableswap invariant
//
//	A*n^n*sum(x) + D = A*n^n*D + D^(n+1) / (n^n * prod(x))
//
// for D by Newton's method.
func CalculateD(reserves []math.Int, amplification uint64) (math.Int, error) {
	n := big.NewInt(int64(len(reserves)))
	sum := new(big.Int)
	for _, r := range reserves {
		if r.IsNil() || !r.IsPositive() {
			return math.ZeroInt(), nil
		}
		sum.Add(sum, r.BigInt())
	}
	a := ann(amplification, len(reserves))
	annMinusOne := new(big.Int).Sub(a, bigOne)
	nPlusOne := new(big.Int).Add(n, bigOne)

	d := new(big.Int).Set(sum)
	for i := 0; i < maxIterations; i++ {
		dp := new(big.Int).Set(d)
		for _, r := range reserves {
			dp.Mul(dp, d)
			dp.Quo(dp, new(big.Int).Mul(r.BigInt(), n))
		}
		prev := d
		num := new(big.Int).Mul(a, sum)
		num.Add(num, new(big.Int).Mul(dp, n))
		num.Mul(num, d)
		den := new(big.Int).Mul(annMinusOne, d)
		den.Add(den, new(big.Int).Mul(nPlusOne, dp))
		if den.Sign() == 0 {
			return math.Int{}, amm.ErrDivisionByZero.Wrap("invariant denominator")
		}
		d = num.Quo(num, den)
		if converged(d, prev) {
			return toInt(d)
		}
	}
	return math.Int{}, ErrMathConvergence.Wrap("D")
}

// CalculateY returns the reserve of asset j that keeps the invariant at d
// given the other reserves.
func CalculateY(reserves []math.Int, j int, d math.Int, amplification uint64) (math.Int, error) {
	n := big.NewInt(int64(len(reserves)))
	a := ann(amplification, len(reserves))
	bigD := d.BigInt()

	c := new(big.Int).Set(bigD)
	s := new(big.Int)
	for k, r := range reserves {
		if k == j {
			continue
		}
		if !r.IsPositive() {
			return math.Int{}, ErrInsufficientLiquidity.Wrapf("reserve %d is empty", k)
		}
		s.Add(s, r.BigInt())
		c.Mul(c, bigD)
		c.Quo(c, new(big.Int).Mul(r.BigInt(), n))
	}
	c.Mul(c, bigD)
	c.Quo(c, new(big.Int).Mul(a, n))
	b := new(big.Int).Add(s, new(big.Int).Quo(bigD, a))

	y := new(big.Int).Set(bigD)
	for i := 0; i < maxIterations; i++ {
		prev := y
		num := new(big.Int).Mul(y, y)
		num.Add(num, c)
		den := new(big.Int).Mul(y, big.NewInt(2))
		den.Add(den, b)
		den.Sub(den, bigD)
		if den.Sign() <= 0 {
			return math.Int{}, ErrMathConvergence.Wrap("Y denominator")
		}
		y = num.Quo(num, den)
		if converged(y, prev) {
			return toInt(y)
		}
	}
	return math.Int{}, ErrMathConvergence.Wrap("Y")
}

func withDelta(reserves []math.Int, i int, delta math.Int) []math.Int {
	updated := make([]math.Int, len(reserves))
	copy(updated, reserves)
	updated[i] = updated[i].Add(delta)
	return updated
}

// CalculateOutGivenIn returns the amount of asset j received for amountIn
// of asset i, before fees. One unit is kept back for rounding.
func CalculateOutGivenIn(reserves []math.Int, i, j int, amountIn math.Int, amplification uint64) (math.Int, error) {
	d, err := CalculateD(reserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	y, err := CalculateY(withDelta(reserves, i, amountIn), j, d, amplification)
	if err != nil {
		return math.Int{}, err
	}
	out := reserves[j].Sub(y).SubRaw(1)
	if !out.IsPositive() {
		return math.ZeroInt(), nil
	}
	return out, nil
}

// CalculateInGivenOut returns the amount of asset i needed to receive
// amountOut of asset j, before fees. One unit is added for rounding.
func CalculateInGivenOut(reserves []math.Int, i, j int, amountOut math.Int, amplification uint64) (math.Int, error) {
	if amountOut.GTE(reserves[j]) {
		return math.Int{}, ErrInsufficientLiquidity.Wrapf("reserve %s cannot cover %s", reserves[j], amountOut)
	}
	d, err := CalculateD(reserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	y, err := CalculateY(withDelta(reserves, j, amountOut.Neg()), i, d, amplification)
	if err != nil {
		return math.Int{}, err
	}
	return y.Sub(reserves[i]).AddRaw(1), nil
}

// CalculateShares returns the shares minted for adding amounts to a pool
// holding reserves with totalShares outstanding.
func CalculateShares(reserves, amounts []math.Int, totalShares math.Int, amplification uint64) (math.Int, error) {
	updated := make([]math.Int, len(reserves))
	for i := range reserves {
		updated[i] = reserves[i].Add(amounts[i])
	}
	d1, err := CalculateD(updated, amplification)
	if err != nil {
		return math.Int{}, err
	}
	if totalShares.IsZero() {
		return d1, nil
	}
	d0, err := CalculateD(reserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	if d0.IsZero() || d1.LTE(d0) {
		return math.ZeroInt(), nil
	}
	return amm.MulDiv(totalShares, d1.Sub(d0), d0)
}

// CalculateWithdrawOneAsset returns the amount of asset j paid for burning
// shares, before fees.
func CalculateWithdrawOneAsset(reserves []math.Int, j int, shares, totalShares math.Int, amplification uint64) (math.Int, error) {
	if shares.GT(totalShares) {
		return math.Int{}, ErrInsufficientShares.Wrapf("%s > total %s", shares, totalShares)
	}
	d0, err := CalculateD(reserves, amplification)
	if err != nil {
		return math.Int{}, err
	}
	burned, err := amm.MulDiv(d0, shares, totalShares)
	if err != nil {
		return math.Int{}, err
	}
	y, err := CalculateY(reserves, j, d0.Sub(burned), amplification)
	if err != nil {
		return math.Int{}, err
	}
	out := reserves[j].Sub(y).SubRaw(1)
	if !out.IsPositive() {
		return math.ZeroInt(), nil
	}
	return out, nil
}

package types

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

// Pool is a constant product pool. Reserves are the pool account balances.
type Pool struct {
	AssetA      string   `json:"asset_a"`
	AssetB      string   `json:"asset_b"`
	TotalShares math.Int `json:"total_shares"`
}

// Has reports whether asset is one of the pool assets.
func (p Pool) Has(asset string) bool {
	return asset == p.AssetA || asset == p.AssetB
}

// InitialShares returns the shares minted on pool creation, the floor of
// the geometric mean of the deposited amounts.
func InitialShares(amountA, amountB math.Int) (math.Int, error) {
	product, err := amountA.SafeMul(amountB)
	if err != nil {
		return math.Int{}, amm.ErrOverflow.Wrapf("%s*%s: %s", amountA, amountB, err)
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(product.BigInt())), nil
}

// CalculateOut returns the amount out for selling amountIn, with the fee
// taken from the output, and the fee.
func CalculateOut(reserveIn, reserveOut, amountIn math.Int, fee math.LegacyDec) (math.Int, math.Int, error) {
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, math.Int{}, ErrInsufficientLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}
	gross, err := amm.MulDiv(reserveOut, amountIn, reserveIn.Add(amountIn))
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	out, feeAmount := amm.DeductFee(gross, fee)
	return out, feeAmount, nil
}

// CalculateIn returns the amount in needed to buy amountOut, with the fee
// added to the input, and the fee.
func CalculateIn(reserveIn, reserveOut, amountOut math.Int, fee math.LegacyDec) (math.Int, math.Int, error) {
	if !reserveIn.IsPositive() || amountOut.GTE(reserveOut) {
		return math.Int{}, math.Int{}, ErrInsufficientLiquidity.Wrapf("reserve %s cannot cover %s", reserveOut, amountOut)
	}
	net, err := amm.MulDivCeil(reserveIn, amountOut, reserveOut.Sub(amountOut))
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	feeAmount := amm.FeeAmount(net, fee)
	return net.Add(feeAmount), feeAmount, nil
}

package types

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/hydrax/x/shared/amm"
)

// TradeResult describes the state changes of one omnipool trade.
type TradeResult struct {
	AmountIn  math.Int
	AmountOut math.Int
	// HubIn leaves the hub reserve of the sold asset. When the hub asset
	// itself is sold it is what the trader pays.
	HubIn math.Int
	// HubOut enters the hub reserve of the bought asset.
	HubOut math.Int
	// ProtocolFee is the hub amount burned, HubIn minus HubOut.
	ProtocolFee math.Int
	// AssetFee is kept in the bought asset's reserve.
	AssetFee math.Int
}

func checkTradeAmount(amount math.Int, params Params) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrInvalidAmount.Wrapf("amount must be positive, got %v", amount)
	}
	if amount.LT(params.MinTradeAmount) {
		return ErrInsufficientTradingAmount.Wrapf("%s < %s", amount, params.MinTradeAmount)
	}
	return nil
}

func checkInRatio(amountIn, reserve math.Int, params Params) error {
	if amountIn.GT(reserve.QuoRaw(int64(params.MaxInRatio))) {
		return ErrMaxInRatioExceeded.Wrapf("in %s, reserve %s, ratio 1/%d", amountIn, reserve, params.MaxInRatio)
	}
	return nil
}

func checkOutRatio(amountOut, reserve math.Int, params Params) error {
	if amountOut.GT(reserve.QuoRaw(int64(params.MaxOutRatio))) {
		return ErrMaxOutRatioExceeded.Wrapf("out %s, reserve %s, ratio 1/%d", amountOut, reserve, params.MaxOutRatio)
	}
	return nil
}

func checkLiquidity(l Liquidity) error {
	if !l.Reserve.IsPositive() || !l.HubReserve.IsPositive() {
		return ErrInsufficientLiquidity.Wrapf("%s: reserve %s, hub reserve %s", l.Asset, l.Reserve, l.HubReserve)
	}
	return nil
}

// CalculateSell computes selling amountIn of in for out:
//
//	hubIn  = Q_in * a / (R_in + a)
//	hubOut = hubIn - protocol fee
//	out    = R_out * hubOut / (Q_out + hubOut) - asset fee
func CalculateSell(in, out Liquidity, amountIn math.Int, params Params) (TradeResult, error) {
	if err := checkTradeAmount(amountIn, params); err != nil {
		return TradeResult{}, err
	}
	if err := checkLiquidity(in); err != nil {
		return TradeResult{}, err
	}
	if err := checkLiquidity(out); err != nil {
		return TradeResult{}, err
	}
	if err := checkInRatio(amountIn, in.Reserve, params); err != nil {
		return TradeResult{}, err
	}

	hubIn, err := amm.MulDiv(in.HubReserve, amountIn, in.Reserve.Add(amountIn))
	if err != nil {
		return TradeResult{}, err
	}
	hubOut, protocolFee := amm.DeductFee(hubIn, params.ProtocolFee)
	result, err := sellHub(out, hubOut, params)
	if err != nil {
		return TradeResult{}, err
	}
	result.AmountIn = amountIn
	result.HubIn = hubIn
	result.ProtocolFee = protocolFee
	return result, nil
}

// CalculateSellHub computes selling hubIn of the hub asset for out. No
// protocol fee applies.
func CalculateSellHub(out Liquidity, hubIn math.Int, params Params) (TradeResult, error) {
	if err := checkTradeAmount(hubIn, params); err != nil {
		return TradeResult{}, err
	}
	if err := checkLiquidity(out); err != nil {
		return TradeResult{}, err
	}
	if err := checkInRatio(hubIn, out.HubReserve, params); err != nil {
		return TradeResult{}, err
	}
	result, err := sellHub(out, hubIn, params)
	if err != nil {
		return TradeResult{}, err
	}
	result.AmountIn = hubIn
	result.HubIn = hubIn
	result.ProtocolFee = math.ZeroInt()
	return result, nil
}

func sellHub(out Liquidity, hubOut math.Int, params Params) (TradeResult, error) {
	grossOut, err := amm.MulDiv(out.Reserve, hubOut, out.HubReserve.Add(hubOut))
	if err != nil {
		return TradeResult{}, err
	}
	amountOut, assetFee := amm.DeductFee(grossOut, params.AssetFee)
	if !amountOut.IsPositive() {
		return TradeResult{}, ErrInsufficientTradingAmount.Wrapf("trade yields zero %s", out.Asset)
	}
	if err := checkOutRatio(amountOut, out.Reserve, params); err != nil {
		return TradeResult{}, err
	}
	return TradeResult{
		AmountOut: amountOut,
		HubOut:    hubOut,
		AssetFee:  assetFee,
	}, nil
}

// CalculateBuy computes the amount of in needed to buy amountOut of out.
// Every step rounds against the trader.
func CalculateBuy(in, out Liquidity, amountOut math.Int, params Params) (TradeResult, error) {
	if err := checkLiquidity(in); err != nil {
		return TradeResult{}, err
	}
	result, err := buyHub(out, amountOut, params)
	if err != nil {
		return TradeResult{}, err
	}
	hubIn, err := amm.GrossUp(result.HubOut, params.ProtocolFee)
	if err != nil {
		return TradeResult{}, err
	}
	if hubIn.GTE(in.HubReserve) {
		return TradeResult{}, ErrInsufficientLiquidity.Wrapf("%s hub reserve %s cannot cover %s", in.Asset, in.HubReserve, hubIn)
	}
	amountIn, err := amm.MulDivCeil(in.Reserve, hubIn, in.HubReserve.Sub(hubIn))
	if err != nil {
		return TradeResult{}, err
	}
	if err := checkTradeAmount(amountIn, params); err != nil {
		return TradeResult{}, err
	}
	if err := checkInRatio(amountIn, in.Reserve, params); err != nil {
		return TradeResult{}, err
	}
	result.AmountIn = amountIn
	result.HubIn = hubIn
	result.ProtocolFee = hubIn.Sub(result.HubOut)
	return result, nil
}

// CalculateBuyWithHub computes the hub amount needed to buy amountOut of out.
func CalculateBuyWithHub(out Liquidity, amountOut math.Int, params Params) (TradeResult, error) {
	result, err := buyHub(out, amountOut, params)
	if err != nil {
		return TradeResult{}, err
	}
	if err := checkInRatio(result.HubOut, out.HubReserve, params); err != nil {
		return TradeResult{}, err
	}
	result.AmountIn = result.HubOut
	result.HubIn = result.HubOut
	result.ProtocolFee = math.ZeroInt()
	return result, nil
}

func buyHub(out Liquidity, amountOut math.Int, params Params) (TradeResult, error) {
	if err := checkTradeAmount(amountOut, params); err != nil {
		return TradeResult{}, err
	}
	if err := checkLiquidity(out); err != nil {
		return TradeResult{}, err
	}
	if err := checkOutRatio(amountOut, out.Reserve, params); err != nil {
		return TradeResult{}, err
	}
	grossOut, err := amm.GrossUp(amountOut, params.AssetFee)
	if err != nil {
		return TradeResult{}, err
	}
	if grossOut.GTE(out.Reserve) {
		return TradeResult{}, ErrInsufficientLiquidity.Wrapf("%s reserve %s cannot cover %s", out.Asset, out.Reserve, grossOut)
	}
	hubOut, err := amm.MulDivCeil(out.HubReserve, grossOut, out.Reserve.Sub(grossOut))
	if err != nil {
		return TradeResult{}, err
	}
	return TradeResult{
		AmountOut: amountOut,
		HubOut:    hubOut,
		AssetFee:  grossOut.Sub(amountOut),
	}, nil
}

// SharesForLiquidity returns the hub amount and shares minted for adding
// amount to l, proportional to the current state.
func SharesForLiquidity(l Liquidity, amount math.Int) (hub, shares math.Int, err error) {
	if err := checkLiquidity(l); err != nil {
		return math.Int{}, math.Int{}, err
	}
	hub, err = amm.MulDiv(l.HubReserve, amount, l.Reserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	shares, err = amm.MulDiv(l.Shares, amount, l.Reserve)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if !shares.IsPositive() {
		return math.Int{}, math.Int{}, ErrInvalidAmount.Wrapf("adding %s %s mints no shares", amount, l.Asset)
	}
	return hub, shares, nil
}

// LiquidityForShares returns the asset and hub amounts redeemed by shares.
func LiquidityForShares(l Liquidity, shares math.Int) (amount, hub math.Int, err error) {
	if shares.GT(l.Shares) {
		return math.Int{}, math.Int{}, ErrInsufficientShares.Wrapf("%s > %s", shares, l.Shares)
	}
	amount, err = amm.MulDiv(l.Reserve, shares, l.Shares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	hub, err = amm.MulDiv(l.HubReserve, shares, l.Shares)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amount, hub, nil
}

package types

import (
	"fmt"

	"cosmossdk.io/math"

	routertypes "github.com/paw-chain/hydrax/x/router/types"
)

// OrderKind tells a sell order from a buy order.
type OrderKind string

const (
	OrderKindSell OrderKind = "sell"
	OrderKindBuy  OrderKind = "buy"
)

// Order is the trade a schedule repeats. Amount is the amount sold by a
// sell order and the amount bought by a buy order. Limit is the minimum
// received by a sell and the maximum paid by a buy.
type Order struct {
	Kind     OrderKind         `json:"kind"`
	AssetIn  string            `json:"asset_in"`
	AssetOut string            `json:"asset_out"`
	Amount   math.Int          `json:"amount"`
	Limit    math.Int          `json:"limit"`
	Route    routertypes.Route `json:"route,omitempty"`
}

// Validate checks the order without touching state.
func (o Order) Validate() error {
	if o.Kind != OrderKindSell && o.Kind != OrderKindBuy {
		return ErrInvalidScheduleOrderData.Wrapf("unknown order kind %q", o.Kind)
	}
	if o.AssetIn == "" || o.AssetOut == "" || o.AssetIn == o.AssetOut {
		return ErrInvalidScheduleOrderData.Wrapf("invalid asset pair %s/%s", o.AssetIn, o.AssetOut)
	}
	if o.Amount.IsNil() || !o.Amount.IsPositive() {
		return ErrInvalidScheduleOrderData.Wrap("amount must be positive")
	}
	if o.Limit.IsNil() || o.Limit.IsNegative() {
		return ErrInvalidScheduleOrderData.Wrap("limit cannot be negative")
	}
	if len(o.Route) > 0 {
		if err := o.Route.Validate(o.AssetIn, o.AssetOut); err != nil {
			return ErrInvalidScheduleOrderData.Wrapf("route: %s", err)
		}
	}
	return nil
}

// Schedule is a recurring trade funded by a reserved budget.
// TotalAmount is the remaining budget.
type Schedule struct {
	ID          uint64          `json:"id"`
	Owner       string          `json:"owner"`
	Period      uint64          `json:"period"`
	TotalAmount math.Int        `json:"total_amount"`
	MaxRetries  *uint32         `json:"max_retries,omitempty"`
	Slippage    *math.LegacyDec `json:"slippage,omitempty"`
	Order       Order           `json:"order"`
}

// Validate checks the schedule without touching state.
func (s Schedule) Validate() error {
	if s.Period == 0 {
		return ErrPeriodTooShort.Wrap("period cannot be zero")
	}
	if s.TotalAmount.IsNil() || !s.TotalAmount.IsPositive() {
		return ErrInvalidScheduleOrderData.Wrap("total amount must be positive")
	}
	if s.Slippage != nil && (s.Slippage.IsNil() || s.Slippage.IsNegative() || s.Slippage.GT(math.LegacyOneDec())) {
		return ErrInvalidScheduleOrderData.Wrapf("slippage %v not in [0, 1]", s.Slippage)
	}
	if s.MaxRetries != nil && *s.MaxRetries == 0 {
		return ErrInvalidScheduleOrderData.Wrap("max retries cannot be zero")
	}
	return s.Order.Validate()
}

func (s Schedule) String() string {
	return fmt.Sprintf("schedule %d (%s %s %s->%s every %d blocks)", s.ID, s.Order.Kind, s.Order.Amount, s.Order.AssetIn, s.Order.AssetOut, s.Period)
}

// ScheduleStatus is the state of a schedule still in store. Completed and
// terminated schedules are removed.
type ScheduleStatus string

const (
	StatusActive    ScheduleStatus = "active"
	StatusSuspended ScheduleStatus = "suspended"
)

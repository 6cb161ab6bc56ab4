package types

import (
	"cosmossdk.io/errors"
)

// DCA module sentinel errors
var (
	ErrScheduleNotFound         = errors.Register(ModuleName, 2, "schedule not found")
	ErrForbidden                = errors.Register(ModuleName, 3, "only the schedule owner may do this")
	ErrInvalidScheduleOrderData = errors.Register(ModuleName, 4, "invalid schedule order data")
	ErrZeroPrice                = errors.Register(ModuleName, 5, "price is zero or unavailable")
	ErrRouteNotFound            = errors.Register(ModuleName, 6, "no route for the order")
	ErrInsufficientBudget       = errors.Register(ModuleName, 7, "budget below minimum")
	ErrPeriodTooShort           = errors.Register(ModuleName, 8, "period below minimal period")
	ErrNoFreeBlockFound         = errors.Register(ModuleName, 9, "no free block found to plan execution")
	ErrBlockNumberNotInFuture   = errors.Register(ModuleName, 10, "execution block must be in the future")
	ErrInvalidState             = errors.Register(ModuleName, 11, "schedule is not in the required state")
	ErrPriceUnstable            = errors.Register(ModuleName, 12, "spot price deviates too far from oracle price")
	ErrInvalidAddress           = errors.Register(ModuleName, 13, "invalid address")
	ErrAssetNotRegistered       = errors.Register(ModuleName, 14, "asset not registered")
)

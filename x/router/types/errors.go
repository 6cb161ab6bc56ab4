package types

import (
	"cosmossdk.io/errors"
)

// Router sentinel errors
var (
	ErrNotSupported               = errors.Register(ModuleName, 2, "pool type not supported by trade executor")
	ErrRouteNotFound              = errors.Register(ModuleName, 3, "route not found")
	ErrInvalidRoute               = errors.Register(ModuleName, 4, "invalid route")
	ErrMaxHopsExceeded            = errors.Register(ModuleName, 5, "route exceeds maximum number of hops")
	ErrTradingLimitReached        = errors.Register(ModuleName, 6, "trading limit reached")
	ErrInsufficientBalance        = errors.Register(ModuleName, 7, "insufficient balance for trade")
	ErrRouteUpdateIsNotSuccessful = errors.Register(ModuleName, 8, "new route is not better than the existing one")
	ErrRouteCalculationFailed     = errors.Register(ModuleName, 9, "route calculation failed")
	ErrInvalidAmount              = errors.Register(ModuleName, 10, "invalid amount")
	ErrInvalidAddress             = errors.Register(ModuleName, 11, "invalid address")
	ErrUnexpectedAmountReceived   = errors.Register(ModuleName, 12, "hop delivered a different amount than calculated")
)

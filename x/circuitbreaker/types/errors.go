package types

import (
	"cosmossdk.io/errors"
)

// Circuit breaker sentinel errors
var (
	ErrInvalidLimitValue                = errors.Register(ModuleName, 2, "invalid limit value")
	ErrMaxTradeVolumePerBlockReached    = errors.Register(ModuleName, 3, "maximum trade volume per block reached")
	ErrMaxLiquidityLimitPerBlockReached = errors.Register(ModuleName, 4, "maximum liquidity limit per block reached")
	ErrInvalidAddress                   = errors.Register(ModuleName, 5, "invalid address")
)

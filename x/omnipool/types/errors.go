package types

import (
	"cosmossdk.io/errors"
)

// Omnipool module sentinel errors
var (
	ErrAssetNotFound             = errors.Register(ModuleName, 2, "asset not in omnipool")
	ErrAssetAlreadyExists        = errors.Register(ModuleName, 3, "asset already in omnipool")
	ErrInsufficientTradingAmount = errors.Register(ModuleName, 4, "trade amount below minimum")
	ErrMaxInRatioExceeded        = errors.Register(ModuleName, 5, "max in ratio exceeded")
	ErrMaxOutRatioExceeded       = errors.Register(ModuleName, 6, "max out ratio exceeded")
	ErrNotAllowed                = errors.Register(ModuleName, 7, "operation not allowed")
	ErrBuyLimitNotReached        = errors.Register(ModuleName, 8, "amount out below minimum")
	ErrSellLimitExceeded         = errors.Register(ModuleName, 9, "amount in above maximum")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 10, "insufficient liquidity")
	ErrInvalidInitialPrice       = errors.Register(ModuleName, 11, "invalid initial price")
	ErrInsufficientShares        = errors.Register(ModuleName, 12, "insufficient shares")
	ErrSameAssetTrade            = errors.Register(ModuleName, 13, "cannot trade asset for itself")
	ErrInvalidAmount             = errors.Register(ModuleName, 14, "invalid amount")
	ErrInvalidAddress            = errors.Register(ModuleName, 15, "invalid address")
)

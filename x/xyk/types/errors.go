package types

import (
	"cosmossdk.io/errors"
)

// XYK module sentinel errors
var (
	ErrPoolNotFound              = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists         = errors.Register(ModuleName, 3, "pool already exists")
	ErrInsufficientTradingAmount = errors.Register(ModuleName, 4, "trade amount below minimum")
	ErrMaxInRatioExceeded        = errors.Register(ModuleName, 5, "max in ratio exceeded")
	ErrMaxOutRatioExceeded       = errors.Register(ModuleName, 6, "max out ratio exceeded")
	ErrBuyLimitNotReached        = errors.Register(ModuleName, 7, "amount out below minimum")
	ErrSellLimitExceeded         = errors.Register(ModuleName, 8, "amount in above maximum")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 9, "insufficient liquidity")
	ErrInsufficientShares        = errors.Register(ModuleName, 10, "insufficient shares")
	ErrInvalidAmount             = errors.Register(ModuleName, 11, "invalid amount")
	ErrInvalidAddress            = errors.Register(ModuleName, 12, "invalid address")
	ErrSameAsset                 = errors.Register(ModuleName, 13, "pool assets must differ")
	ErrAssetAmountExceededLimit  = errors.Register(ModuleName, 14, "required amount exceeds limit")
	ErrAssetNotRegistered        = errors.Register(ModuleName, 15, "asset not registered")
)

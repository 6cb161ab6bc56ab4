package types

import (
	"cosmossdk.io/errors"
)

// LBP module sentinel errors
var (
	ErrPoolNotFound              = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists         = errors.Register(ModuleName, 3, "pool already exists")
	ErrSaleNotRunning            = errors.Register(ModuleName, 4, "sale is not running")
	ErrSaleNotEnded              = errors.Register(ModuleName, 5, "sale has not ended")
	ErrInvalidWeight             = errors.Register(ModuleName, 6, "invalid weight")
	ErrInvalidBlockRange         = errors.Register(ModuleName, 7, "invalid sale block range")
	ErrInsufficientTradingAmount = errors.Register(ModuleName, 8, "trade amount below minimum")
	ErrMaxInRatioExceeded        = errors.Register(ModuleName, 9, "trade exceeds max in ratio")
	ErrMaxOutRatioExceeded       = errors.Register(ModuleName, 10, "trade exceeds max out ratio")
	ErrBuyLimitNotReached        = errors.Register(ModuleName, 11, "amount out below minimum")
	ErrSellLimitExceeded         = errors.Register(ModuleName, 12, "amount in above maximum")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 13, "insufficient liquidity")
	ErrInvalidAmount             = errors.Register(ModuleName, 14, "invalid amount")
	ErrInvalidAddress            = errors.Register(ModuleName, 15, "invalid address")
	ErrSameAsset                 = errors.Register(ModuleName, 16, "cannot trade asset for itself")
	ErrAssetNotRegistered        = errors.Register(ModuleName, 17, "asset not registered")
	ErrNotOwner                  = errors.Register(ModuleName, 18, "not the pool owner")
)

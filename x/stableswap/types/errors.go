package types

import (
	"cosmossdk.io/errors"
)

// Stableswap module sentinel errors
var (
	ErrPoolNotFound              = errors.Register(ModuleName, 2, "pool not found")
	ErrAssetNotInPool            = errors.Register(ModuleName, 3, "asset not in pool")
	ErrInvalidAssets             = errors.Register(ModuleName, 4, "invalid pool assets")
	ErrInvalidAmplification      = errors.Register(ModuleName, 5, "invalid amplification")
	ErrInsufficientTradingAmount = errors.Register(ModuleName, 6, "trade amount below minimum")
	ErrBuyLimitNotReached        = errors.Register(ModuleName, 7, "amount out below minimum")
	ErrSellLimitExceeded         = errors.Register(ModuleName, 8, "amount in above maximum")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 9, "insufficient liquidity")
	ErrInsufficientShares        = errors.Register(ModuleName, 10, "insufficient shares")
	ErrInvalidAmount             = errors.Register(ModuleName, 11, "invalid amount")
	ErrInvalidAddress            = errors.Register(ModuleName, 12, "invalid address")
	ErrMathConvergence           = errors.Register(ModuleName, 13, "invariant did not converge")
	ErrSameAsset                 = errors.Register(ModuleName, 14, "cannot trade asset for itself")
	ErrAssetNotRegistered        = errors.Register(ModuleName, 15, "asset not registered")
)
